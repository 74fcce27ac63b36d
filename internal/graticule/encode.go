package graticule

import (
	"math"

	"gridtiler/internal/vt"
)

// Layer and attribute names of the encoded tile.
const (
	LayerName = "line"
	LabelKey  = "label"
)

// Encode writes lines as line-string features of a single layer. Labels
// become string values in first-seen order.
func Encode(lines []GridLine, extent int) ([]byte, error) {
	if extent <= 0 {
		return nil, &ConfigError{Field: "extent", Reason: "must be positive"}
	}
	if uint64(extent) > math.MaxUint32 {
		return nil, &ConfigError{Field: "extent", Reason: "exceeds uint32"}
	}

	l := vt.NewLayer(LayerName, uint32(extent))
	key := l.AddKey(LabelKey)
	for _, ln := range lines {
		c := ln.Coords
		l.AddFeature(&vt.Feature{
			ID:       ln.ID,
			Tags:     []uint32{key, l.AddValue(vt.StringValue(ln.Label))},
			Type:     vt.LineString,
			Geometry: vt.LineGeometry(c[0], c[1], c[2], c[3]),
		})
	}
	return vt.Marshal(&vt.Tile{Layers: []*vt.Layer{l}})
}
