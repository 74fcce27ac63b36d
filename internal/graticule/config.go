package graticule

import "math"

// DefaultExtent is the tile-local coordinate span.
const DefaultExtent = 4096

// Config holds the generator settings. It is read-only once passed to New.
type Config struct {
	Extent   int
	LonLabel LabelFunc
	LatLabel LabelFunc
	Interval IntervalFunc
}

// DefaultConfig returns a 4096 extent with the default labels and zoom intervals.
func DefaultConfig() Config {
	return Config{
		Extent:   DefaultExtent,
		LonLabel: LonLabel,
		LatLabel: LatLabel,
		Interval: DefaultZoomIntervals().Interval,
	}
}

func (c Config) validate() error {
	switch {
	case c.Extent <= 0:
		return &ConfigError{Field: "extent", Reason: "must be positive"}
	case uint64(c.Extent) > math.MaxUint32:
		return &ConfigError{Field: "extent", Reason: "exceeds uint32"}
	case c.LonLabel == nil:
		return &ConfigError{Field: "lon2label", Reason: "not set"}
	case c.LatLabel == nil:
		return &ConfigError{Field: "lat2label", Reason: "not set"}
	case c.Interval == nil:
		return &ConfigError{Field: "interval", Reason: "not set"}
	}
	return nil
}
