package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb/maptile"
)

func TestBreakPoint(t *testing.T) {
	dir := t.TempDir()
	bp, err := NewBreakPoint(dir, "grid", 2)
	if err != nil {
		t.Fatal(err)
	}
	done := []maptile.Tile{maptile.New(0, 0, 0), maptile.New(1, 0, 1), maptile.New(3, 2, 2)}
	for _, tile := range done {
		bp.SetSuccessed(tile)
	}
	if err := bp.Close(); err != nil {
		t.Fatal(err)
	}
	// closing twice is harmless
	if err := bp.Close(); err != nil {
		t.Fatal(err)
	}
	// writes after close are dropped
	bp.SetSuccessed(maptile.New(9, 9, 9))

	data, err := os.ReadFile(filepath.Join(dir, "grid.log"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Fields(string(data)); len(lines) != len(done) {
		t.Errorf("log lines = %q", lines)
	}

	bp, err = NewBreakPoint(dir, "grid", 2)
	if err != nil {
		t.Fatal(err)
	}
	defer bp.Close()
	for _, tile := range done {
		if !bp.IsSuccessed(tile) {
			t.Errorf("%v not restored", tile)
		}
	}
	if bp.IsSuccessed(maptile.New(1, 1, 1)) {
		t.Error("unexpected tile restored")
	}
}
