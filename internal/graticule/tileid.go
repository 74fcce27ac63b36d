package graticule

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb/maptile"
)

// maxZoom is the deepest level whose tile bounds stay finite in float64.
const maxZoom = 31

// ParseTileID extracts the tile from an identifier whose last three path
// segments are {z}/{x}/{y}, optionally followed by ".pbf".
func ParseTileID(ref string) (maptile.Tile, error) {
	tokens := strings.Split(strings.TrimSuffix(ref, ".pbf"), "/")
	if len(tokens) < 3 {
		return maptile.Tile{}, &ParseError{Ref: ref, Reason: "want {z}/{x}/{y}"}
	}
	tokens = tokens[len(tokens)-3:]

	var zxy [3]uint32
	for i, name := range []string{"z", "x", "y"} {
		v, err := strconv.ParseUint(tokens[i], 10, 32)
		if err != nil {
			return maptile.Tile{}, &ParseError{Ref: ref, Reason: name + " " + strconv.Quote(tokens[i]) + " is not an integer"}
		}
		zxy[i] = uint32(v)
	}
	if zxy[0] > maxZoom {
		return maptile.Tile{}, &ParseError{Ref: ref, Reason: "zoom " + strconv.Itoa(int(zxy[0])) + " out of range"}
	}
	return maptile.New(zxy[1], zxy[2], maptile.Zoom(zxy[0])), nil
}
