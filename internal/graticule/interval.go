package graticule

import "github.com/paulmach/orb/maptile"

// Interval is the sampling step in arc-seconds along each axis.
type Interval struct {
	Lon int64
	Lat int64
}

// Uniform uses the same step on both axes.
func Uniform(sec int64) Interval {
	return Interval{Lon: sec, Lat: sec}
}

// IntervalFunc selects the sampling step for a tile.
type IntervalFunc func(t maptile.Tile) Interval

// ZoomIntervals draws whole degrees below DegreeBelow, whole minutes below
// MinuteBelow and seconds from there on.
type ZoomIntervals struct {
	DegreeBelow maptile.Zoom
	MinuteBelow maptile.Zoom
}

// DefaultZoomIntervals returns the 5/10 zoom thresholds.
func DefaultZoomIntervals() ZoomIntervals {
	return ZoomIntervals{DegreeBelow: 5, MinuteBelow: 10}
}

// Interval implements IntervalFunc.
func (p ZoomIntervals) Interval(t maptile.Tile) Interval {
	switch {
	case t.Z < p.DegreeBelow:
		return Uniform(ArcDegree)
	case t.Z < p.MinuteBelow:
		return Uniform(ArcMinute)
	}
	return Uniform(ArcSecond)
}
