package main

import (
	"testing"

	"github.com/paulmach/orb/maptile"

	"gridtiler/internal/graticule"
)

func TestGetTileURL(t *testing.T) {
	tests := []struct {
		url  string
		tile maptile.Tile
		want string
	}{
		{"grid/{z}/{x}/{y}.pbf", maptile.New(3, 5, 4), "grid/4/3/5.pbf"},
		{"{z}/{x}/{y}", maptile.New(0, 0, 0), "0/0/0"},
		{"http://host/{z}/{x}/{y}?v={z}", maptile.New(1, 2, 3), "http://host/3/1/2?v=3"},
	}
	for _, tt := range tests {
		m := TileMap{URL: tt.url}
		if got := m.GetTileURL(tt.tile); got != tt.want {
			t.Errorf("GetTileURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestTileURLRoundTrip(t *testing.T) {
	m := TileMap{URL: "grid/{z}/{x}/{y}.pbf"}
	for _, tile := range []maptile.Tile{maptile.New(0, 0, 0), maptile.New(58211, 25806, 16), maptile.New(7, 3, 3)} {
		got, err := graticule.ParseTileID(m.GetTileURL(tile))
		if err != nil {
			t.Fatal(err)
		}
		if got != tile {
			t.Errorf("round trip %v -> %v", tile, got)
		}
	}
}
