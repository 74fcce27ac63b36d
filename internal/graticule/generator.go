// Package graticule generates longitude/latitude grid lines for map tiles
// and encodes them as Mapbox Vector Tiles.
package graticule

import (
	"fmt"
	"io"
	"math"

	"github.com/paulmach/orb/maptile"
	"github.com/sirupsen/logrus"
)

// Bounds describes a tile both geographically, in degrees, and as the
// rectangle {OX, OY, W, H} it covers in the provider's projected plane.
type Bounds struct {
	West, East   float64
	South, North float64

	OX, OY float64
	W, H   float64
}

// Geodesy supplies projection and tile geometry. The generator never
// projects coordinates itself.
type Geodesy interface {
	// Project converts a longitude/latitude to plane coordinates.
	Project(lng, lat float64) (x, y float64)
	TileBounds(t maptile.Tile) Bounds
}

// GridLine is one meridian or parallel clipped to a tile.
type GridLine struct {
	Label  string
	ID     uint64
	Coords [4]int64 // x1, y1, x2, y2 in tile-local coordinates
}

// Generator produces graticule tiles. It holds no per-request state and is
// safe for concurrent use.
type Generator struct {
	cfg Config
	geo Geodesy
	log logrus.FieldLogger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for per-tile debug output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// New validates cfg and returns a generator using geo for all projections.
func New(cfg Config, geo Geodesy, opts ...Option) (*Generator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if geo == nil {
		return nil, &ConfigError{Field: "geodesy", Reason: "not set"}
	}

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	g := &Generator{cfg: cfg, geo: geo, log: quiet}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Extent returns the configured tile extent.
func (g *Generator) Extent() int { return g.cfg.Extent }

// Generate parses ref and returns the encoded tile.
func (g *Generator) Generate(ref string) ([]byte, error) {
	t, err := ParseTileID(ref)
	if err != nil {
		return nil, err
	}
	return g.GenerateTile(t)
}

// GenerateTile returns the encoded graticule for t.
func (g *Generator) GenerateTile(t maptile.Tile) ([]byte, error) {
	lines, err := g.Lines(t)
	if err != nil {
		return nil, err
	}
	data, err := Encode(lines, g.cfg.Extent)
	if err != nil {
		return nil, err
	}
	g.log.WithFields(logrus.Fields{
		"tile":  fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y),
		"lines": len(lines),
		"bytes": len(data),
	}).Debug("graticule tile encoded")
	return data, nil
}

// Lines returns the meridians followed by the parallels that fall inside t.
func (g *Generator) Lines(t maptile.Tile) ([]GridLine, error) {
	iv := g.cfg.Interval(t)
	if iv.Lon <= 0 {
		return nil, &ConfigError{Field: "interval", Reason: fmt.Sprintf("longitude step %d at zoom %d", iv.Lon, t.Z)}
	}
	if iv.Lat <= 0 {
		return nil, &ConfigError{Field: "interval", Reason: fmt.Sprintf("latitude step %d at zoom %d", iv.Lat, t.Z)}
	}

	b := g.geo.TileBounds(t)
	if !finite(b.West, b.East, b.South, b.North, b.OX, b.OY, b.W, b.H) || b.W <= 0 || b.H <= 0 {
		return nil, &BoundsError{Tile: t, Bounds: b}
	}

	extent := int64(g.cfg.Extent)
	ext := float64(extent)
	var lines []GridLine

	for s, end := floorStep(b.West, iv.Lon), floorStep(b.East, iv.Lon); s <= end; s += iv.Lon {
		mx, _ := g.geo.Project(float64(s)/float64(ArcDegree), 0)
		tx, ok := toTile(ext, mx-b.OX, b.W)
		if !ok {
			continue
		}
		lines = append(lines, GridLine{
			Label:  g.cfg.LonLabel(s),
			ID:     LonID(s),
			Coords: [4]int64{tx, 0, tx, extent},
		})
	}

	for s, end := floorStep(b.South, iv.Lat), floorStep(b.North, iv.Lat); s <= end; s += iv.Lat {
		_, my := g.geo.Project(0, float64(s)/float64(ArcDegree))
		ty, ok := toTile(ext, my-b.OY, b.H)
		if !ok {
			continue
		}
		lines = append(lines, GridLine{
			Label:  g.cfg.LatLabel(s),
			ID:     LatID(s),
			Coords: [4]int64{0, ty, extent, ty},
		})
	}

	return lines, nil
}

// floorStep converts deg to arc-seconds rounded down to a multiple of step.
func floorStep(deg float64, step int64) int64 {
	return int64(math.Floor(deg*float64(ArcDegree)/float64(step))) * step
}

// toTile scales an offset within a tile of the given size to [0, extent].
func toTile(extent, offset, size float64) (int64, bool) {
	v := math.Floor(extent * offset / size)
	if v < 0 || v > extent || math.IsNaN(v) {
		return 0, false
	}
	return int64(v), true
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
