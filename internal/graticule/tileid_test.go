package graticule

import (
	"errors"
	"testing"

	"github.com/paulmach/orb/maptile"
)

func TestParseTileID(t *testing.T) {
	tests := []struct {
		ref  string
		want maptile.Tile
	}{
		{"0/0/0", maptile.New(0, 0, 0)},
		{"5/12/9.pbf", maptile.New(12, 9, 5)},
		{"grid://14/8529/5975.pbf", maptile.New(8529, 5975, 14)},
		{"https://example.com/tiles/3/1/2", maptile.New(1, 2, 3)},
		{"31/5/5", maptile.New(5, 5, 31)},
	}
	for _, tt := range tests {
		got, err := ParseTileID(tt.ref)
		if err != nil {
			t.Errorf("ParseTileID(%q): %v", tt.ref, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTileID(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestParseTileIDErrors(t *testing.T) {
	refs := []string{
		"",
		"1/2",
		"z/0/0",
		"1/x/0",
		"1/0/y.pbf",
		"1/0/0.png",
		"1/-1/0",
		"1.5/0/0",
		"32/5/5",
		"33/0/0",
	}
	for _, ref := range refs {
		_, err := ParseTileID(ref)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseTileID(%q) err = %v, want *ParseError", ref, err)
		}
	}
}

func TestIDsAndLabels(t *testing.T) {
	tests := []struct {
		sec      int64
		lonID    uint64
		latID    uint64
		lonLabel string
		latLabel string
	}{
		{0, 20000000, 40000000, "E 000 00 00", "N 00 00 00"},
		{3600, 20010000, 40010000, "E 001 00 00", "N 01 00 00"},
		{-3600, 10010000, 30010000, "W 001 00 00", "S 01 00 00"},
		{12*3600 + 30*60 + 5, 20123005, 40123005, "E 012 30 05", "N 12 30 05"},
		{-(139*3600 + 45*60 + 59), 11394559, 31394559, "W 139 45 59", "S 139 45 59"},
		{-30, 10000030, 30000030, "W 000 00 30", "S 00 00 30"},
	}
	for _, tt := range tests {
		if got := LonID(tt.sec); got != tt.lonID {
			t.Errorf("LonID(%d) = %d, want %d", tt.sec, got, tt.lonID)
		}
		if got := LatID(tt.sec); got != tt.latID {
			t.Errorf("LatID(%d) = %d, want %d", tt.sec, got, tt.latID)
		}
		if got := LonLabel(tt.sec); got != tt.lonLabel {
			t.Errorf("LonLabel(%d) = %q, want %q", tt.sec, got, tt.lonLabel)
		}
		if got := LatLabel(tt.sec); got != tt.latLabel {
			t.Errorf("LatLabel(%d) = %q, want %q", tt.sec, got, tt.latLabel)
		}
	}
}

func TestZoomIntervals(t *testing.T) {
	def := DefaultZoomIntervals()
	tests := []struct {
		z    maptile.Zoom
		want int64
	}{
		{0, 3600}, {4, 3600}, {5, 60}, {9, 60}, {10, 1}, {18, 1},
	}
	for _, tt := range tests {
		if got := def.Interval(maptile.New(0, 0, tt.z)); got != Uniform(tt.want) {
			t.Errorf("z%d: interval = %+v, want %d", tt.z, got, tt.want)
		}
	}

	eight := ZoomIntervals{DegreeBelow: 5, MinuteBelow: 8}
	if got := eight.Interval(maptile.New(0, 0, 8)); got != Uniform(1) {
		t.Errorf("MinuteBelow 8 at z8 = %+v", got)
	}
	if got := eight.Interval(maptile.New(0, 0, 7)); got != Uniform(60) {
		t.Errorf("MinuteBelow 8 at z7 = %+v", got)
	}
}
