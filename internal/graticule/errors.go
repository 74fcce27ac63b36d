package graticule

import (
	"fmt"

	"github.com/paulmach/orb/maptile"
)

// ParseError indicates a malformed tile identifier.
type ParseError struct {
	Ref    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("graticule: parse tile %q: %s", e.Ref, e.Reason)
}

// ConfigError indicates an invalid configuration value, either at
// construction time or returned by a policy function for a tile.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("graticule: invalid %s: %s", e.Field, e.Reason)
}

// BoundsError indicates that the Geodesy returned unusable bounds for a tile.
type BoundsError struct {
	Tile   maptile.Tile
	Bounds Bounds
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("graticule: degenerate bounds for tile %d/%d/%d: %+v", e.Tile.Z, e.Tile.X, e.Tile.Y, e.Bounds)
}
