package geodesy

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb/maptile"

	"gridtiler/internal/graticule"
	"gridtiler/internal/vt"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProject(t *testing.T) {
	var m WebMercator
	tests := []struct {
		lng, lat float64
		x, y     float64
	}{
		{0, 0, 0.5, 0.5},
		{-180, 0, 0, 0.5},
		{180, 0, 1, 0.5},
		{90, 0, 0.75, 0.5},
		{0, 85.0511287798066, 0.5, 0},
		{0, -85.0511287798066, 0.5, 1},
	}
	for _, tt := range tests {
		x, y := m.Project(tt.lng, tt.lat)
		if !near(x, tt.x) || !near(y, tt.y) {
			t.Errorf("Project(%v, %v) = (%v, %v), want (%v, %v)", tt.lng, tt.lat, x, y, tt.x, tt.y)
		}
	}
}

func TestTileBounds(t *testing.T) {
	var m WebMercator
	b := m.TileBounds(maptile.New(1, 0, 1))
	if !near(b.West, 0) || !near(b.East, 180) || !near(b.South, 0) || !near(b.North, 85.0511287798066) {
		t.Errorf("bounds = %+v", b)
	}
	if b.OX != 0.5 || b.OY != 0 || b.W != 0.5 || b.H != 0.5 {
		t.Errorf("plane rect = %+v", b)
	}

	// the plane rectangle must agree with the projected geographic corners
	x, y := m.Project(b.West, b.North)
	if !near(x, b.OX) || !near(y, b.OY) {
		t.Errorf("north-west corner projects to (%v, %v)", x, y)
	}
	x, y = m.Project(b.East, b.South)
	if !near(x, b.OX+b.W) || !near(y, b.OY+b.H) {
		t.Errorf("south-east corner projects to (%v, %v)", x, y)
	}
}

func TestGraticuleOnMercatorTile(t *testing.T) {
	g, err := graticule.New(graticule.DefaultConfig(), WebMercator{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	lines, err := g.Lines(maptile.New(0, 0, 1))
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}

	byLabel := make(map[string]graticule.GridLine)
	var meridians int
	for _, l := range lines {
		byLabel[l.Label] = l
		if l.Coords[1] == 0 && l.Coords[3] == 4096 && l.Coords[0] == l.Coords[2] {
			meridians++
		}
	}
	if meridians != 181 {
		t.Errorf("meridians = %d, want 181", meridians)
	}
	if l, ok := byLabel["W 180 00 00"]; !ok || l.Coords[0] != 0 {
		t.Errorf("antimeridian = %+v", l)
	}
	if l, ok := byLabel["W 090 00 00"]; !ok || l.Coords[0] != 2048 {
		t.Errorf("90W = %+v", l)
	}
	if l, ok := byLabel["N 00 00 00"]; !ok || l.Coords[1] != 4096 || l.ID != 40000000 {
		t.Errorf("equator = %+v", l)
	}
	if _, ok := byLabel["N 85 00 00"]; !ok {
		t.Error("missing 85N")
	}
	if _, ok := byLabel["S 01 00 00"]; ok {
		t.Error("southern parallel in northern tile")
	}

	data, err := g.Generate("1/0/0.pbf")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	tile, err := vt.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if n := len(tile.Layers[0].Features); n != len(lines) {
		t.Errorf("features = %d, want %d", n, len(lines))
	}
}

func TestHighZoomUsesSeconds(t *testing.T) {
	g, err := graticule.New(graticule.DefaultConfig(), WebMercator{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// a z16 tile near Tokyo spans well under a minute of arc
	tile := maptile.New(58211, 25806, 16)
	lines, err := g.Lines(tile)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) == 0 {
		t.Fatal("no lines")
	}
	for _, l := range lines {
		if l.Coords[0] < 0 || l.Coords[0] > 4096 || l.Coords[1] < 0 || l.Coords[1] > 4096 {
			t.Errorf("line %q outside tile: %v", l.Label, l.Coords)
		}
	}
}

func TestDeepestZoom(t *testing.T) {
	g, err := graticule.New(graticule.DefaultConfig(), WebMercator{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := g.Generate("31/5/5"); err != nil {
		t.Errorf("31/5/5: %v", err)
	}
	_, err = g.Generate("32/5/5")
	var pe *graticule.ParseError
	if !errors.As(err, &pe) {
		t.Errorf("32/5/5: err = %v, want *graticule.ParseError", err)
	}
}
