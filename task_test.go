package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/paulmach/orb/maptile/tilecover"

	"gridtiler/internal/graticule"
	"gridtiler/internal/vt"
)

func testGenerator(t *testing.T) *graticule.Generator {
	t.Helper()
	c := &Conf{}
	c.Grid.Extent = graticule.DefaultExtent
	c.Grid.DegreeZoom = 5
	c.Grid.MinuteZoom = 10
	gen, err := newGenerator(c)
	if err != nil {
		t.Fatal(err)
	}
	return gen
}

func worldLayers(zooms ...int) []Layer {
	var layers []Layer
	for _, z := range zooms {
		layers = append(layers, Layer{Zoom: z, Collection: worldCollection()})
	}
	return layers
}

func TestTaskRender(t *testing.T) {
	dir := t.TempDir()
	tm := testTileMap()
	store, err := newFileStore(filepath.Join(dir, tm.Name), tm.Format)
	if err != nil {
		t.Fatal(err)
	}
	bp, err := NewBreakPoint(filepath.Join(dir, "breakpoint"), tm.Name, 4)
	if err != nil {
		t.Fatal(err)
	}

	task := NewTask(worldLayers(0, 1), tm, testGenerator(t), store, TaskOptions{Workers: 2, BufSize: 4, BreakPoint: bp})
	if task.ID == "" {
		t.Error("task id not set")
	}
	task.Render()
	if err := bp.Close(); err != nil {
		t.Fatal(err)
	}

	if task.Failed != 0 {
		t.Errorf("failed = %d", task.Failed)
	}
	if task.Total == 0 || task.Current != task.Total {
		t.Errorf("rendered %d of %d", task.Current, task.Total)
	}

	data, err := os.ReadFile(filepath.Join(dir, tm.Name, "0", "0", "0.pbf"))
	if err != nil {
		t.Fatal(err)
	}
	tile, err := vt.Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(tile.Layers) != 1 || tile.Layers[0].Name != graticule.LayerName || len(tile.Layers[0].Features) == 0 {
		t.Fatalf("unexpected tile %+v", tile)
	}

	// a second run over the same break point has nothing left to do
	bp, err = NewBreakPoint(filepath.Join(dir, "breakpoint"), tm.Name, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer bp.Close()
	if !bp.IsSuccessed(maptile.New(0, 0, 0)) {
		t.Fatal("0/0/0 not recorded")
	}
	again := NewTask(worldLayers(0, 1), tm, testGenerator(t), store, TaskOptions{Workers: 2, BreakPoint: bp})
	again.Render()
	if again.Current != 0 {
		t.Errorf("re-rendered %d tiles", again.Current)
	}
}

func TestWorldCollectionCover(t *testing.T) {
	for z := 0; z <= 3; z++ {
		want := int64(1) << uint(2*z)
		if got := tilecover.CollectionCount(worldCollection(), maptile.Zoom(z)); got != want {
			t.Errorf("z%d count = %d, want %d", z, got, want)
		}
		for tile := range tilecover.Collection(worldCollection(), maptile.Zoom(z)) {
			if !validTile(tile) {
				t.Errorf("z%d covers %v", z, tile)
			}
		}
	}
}

func TestValidTile(t *testing.T) {
	tests := []struct {
		tile maptile.Tile
		want bool
	}{
		{maptile.New(0, 0, 0), true},
		{maptile.New(1, 0, 0), false},
		{maptile.New(0, 1, 0), false},
		{maptile.New(1, 1, 1), true},
		{maptile.New(2, 0, 1), false},
		{maptile.New(0, 2, 1), false},
		{maptile.New(4194303, 4194303, 22), true},
	}
	for _, tt := range tests {
		if got := validTile(tt.tile); got != tt.want {
			t.Errorf("validTile(%v) = %v, want %v", tt.tile, got, tt.want)
		}
	}
}

func TestRenderSkipsOutOfRangeTiles(t *testing.T) {
	dir := t.TempDir()
	tm := testTileMap()
	store, err := newFileStore(filepath.Join(dir, tm.Name), tm.Format)
	if err != nil {
		t.Fatal(err)
	}
	// exact ±180 edges make the cover spill into column 2^z
	ring := orb.Ring{{-180, -85}, {180, -85}, {180, 85}, {-180, 85}, {-180, -85}}
	edge := orb.Collection{orb.Polygon{ring}}
	layers := []Layer{{Zoom: 0, Collection: edge}, {Zoom: 1, Collection: edge}}

	task := NewTask(layers, tm, testGenerator(t), store, TaskOptions{Workers: 2})
	task.Render()

	if task.Current != 5 || task.Failed != 0 {
		t.Errorf("current = %d, failed = %d, want 5 and 0", task.Current, task.Failed)
	}
	for _, p := range []string{"0/1", "1/2"} {
		if _, err := os.Stat(filepath.Join(dir, tm.Name, filepath.FromSlash(p))); !os.IsNotExist(err) {
			t.Errorf("%s written: %v", p, err)
		}
	}
}

func TestTaskGzip(t *testing.T) {
	dir := t.TempDir()
	tm := testTileMap()
	store, err := openStore(MBTILES, dir, tm)
	if err != nil {
		t.Fatal(err)
	}
	task := NewTask(worldLayers(0), tm, testGenerator(t), store, TaskOptions{Workers: 1, Gzip: true})
	task.Render()
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	if task.Current != 1 || task.Failed != 0 {
		t.Errorf("current = %d, failed = %d", task.Current, task.Failed)
	}
}

func TestTaskAbort(t *testing.T) {
	tm := testTileMap()
	store, err := newFileStore(filepath.Join(t.TempDir(), tm.Name), tm.Format)
	if err != nil {
		t.Fatal(err)
	}
	task := NewTask(worldLayers(0, 1, 2), tm, testGenerator(t), store, TaskOptions{})
	task.AbortFun()
	task.AbortFun()
	task.Render()
	if task.Current != 0 {
		t.Errorf("rendered %d tiles after abort", task.Current)
	}
}

func TestNewTaskEmpty(t *testing.T) {
	if task := NewTask(nil, testTileMap(), testGenerator(t), nil, TaskOptions{}); task != nil {
		t.Error("expected nil task without layers")
	}
}

func TestCheckTemplate(t *testing.T) {
	tests := []struct {
		url string
		ok  bool
	}{
		{"grid/{z}/{x}/{y}.pbf", true},
		{"{z}/{x}/{y}", true},
		{"{x}/{y}/{z}", false},
		{"grid.pbf", false},
	}
	for _, tt := range tests {
		err := checkTemplate(TileMap{URL: tt.url})
		if (err == nil) != tt.ok {
			t.Errorf("checkTemplate(%q) = %v", tt.url, err)
		}
	}
}

func TestLoadLayers(t *testing.T) {
	c, err := loadConf(writeConf(t, `
[tm]
min = 0
max = 2
`))
	if err != nil {
		t.Fatal(err)
	}
	layers, err := loadLayers(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(layers) != 3 || layers[2].Zoom != 2 {
		t.Errorf("layers = %+v", layers)
	}

	c, err = loadConf(writeConf(t, `
[[lrs]]
min = 1
max = 2

[[lrs]]
min = 4
max = 4
`))
	if err != nil {
		t.Fatal(err)
	}
	layers, err = loadLayers(c)
	if err != nil {
		t.Fatal(err)
	}
	var zooms []int
	for _, l := range layers {
		zooms = append(zooms, l.Zoom)
	}
	if len(zooms) != 3 || zooms[0] != 1 || zooms[1] != 2 || zooms[2] != 4 {
		t.Errorf("zooms = %v", zooms)
	}

	c, err = loadConf(writeConf(t, `
[[lrs]]
min = 1
max = 1
geojson = "missing.geojson"
`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := loadLayers(c); err == nil {
		t.Error("expected error for missing geojson")
	}
}
