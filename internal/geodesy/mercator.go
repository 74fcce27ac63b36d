// Package geodesy provides the Web Mercator projection used by slippy map
// tiles, normalized so the world spans [0, 1] on both plane axes.
package geodesy

import (
	"math"

	"github.com/paulmach/orb/maptile"

	"gridtiler/internal/graticule"
)

// WebMercator implements graticule.Geodesy.
type WebMercator struct{}

var _ graticule.Geodesy = WebMercator{}

// Project returns the normalized plane position of lng/lat. x grows east
// from the antimeridian, y grows south from the top of the world.
func (WebMercator) Project(lng, lat float64) (x, y float64) {
	x = (180 + lng) / 360
	y = (180 - (180/math.Pi)*math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))) / 360
	return
}

// TileBounds returns t's geographic box and its square in the plane.
func (WebMercator) TileBounds(t maptile.Tile) graticule.Bounds {
	n := math.Exp2(float64(t.Z))
	bound := t.Bound()
	return graticule.Bounds{
		West:  bound.Min[0],
		East:  bound.Max[0],
		South: bound.Min[1],
		North: bound.Max[1],
		OX:    float64(t.X) / n,
		OY:    float64(t.Y) / n,
		W:     1 / n,
		H:     1 / n,
	}
}
