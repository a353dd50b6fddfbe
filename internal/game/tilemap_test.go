package game

import (
	"errors"
	"testing"
)

func TestNewTileGrid_Default(t *testing.T) {
	tg, err := NewTileGrid(defaultLayout)
	if err != nil {
		t.Fatalf("default layout: %v", err)
	}
	if tg.Cols != 30 || tg.Rows != 20 {
		t.Fatalf("expected 30x20, got %dx%d", tg.Cols, tg.Rows)
	}
	if tg.At(0, 0) != TileWall {
		t.Fatal("corner should be wall")
	}
	if tg.At(1, 1) != TileFloor {
		t.Fatal("(1,1) should be floor")
	}
}

func TestNewTileGrid_Malformed(t *testing.T) {
	cases := map[string][][]uint8{
		"empty":   {},
		"no cols": {{}},
		"ragged":  {{0, 0}, {0}},
		"code":    {{0, 4}},
	}
	for name, layout := range cases {
		if _, err := NewTileGrid(layout); !errors.Is(err, ErrMalformedLayout) {
			t.Fatalf("%s: err=%v, want ErrMalformedLayout", name, err)
		}
	}
}

func TestTileGrid_OutOfRangeIsWall(t *testing.T) {
	tg, _ := NewTileGrid([][]uint8{{0, 0}, {0, 0}})
	for _, p := range [][2]float64{{-0.1, 1}, {1, -0.1}, {8, 1}, {1, 8}, {100, 100}} {
		if k := tg.TileAt(p[0], p[1]); k != TileWall {
			t.Fatalf("TileAt(%v,%v)=%s, want wall", p[0], p[1], k)
		}
		if tg.IsWalkable(p[0], p[1]) {
			t.Fatalf("(%v,%v) should not be walkable", p[0], p[1])
		}
	}
	if !tg.IsWalkable(7.9, 7.9) {
		t.Fatal("last floor cell should be walkable")
	}
}

func TestTileGrid_PlatformsWalkable(t *testing.T) {
	tg, _ := NewTileGrid([][]uint8{{2, 3, 1}})
	if !tg.IsWalkable(1, 1) || !tg.IsWalkable(5, 1) {
		t.Fatal("platform tiles should be walkable")
	}
	if tg.IsWalkable(9, 1) {
		t.Fatal("wall tile should not be walkable")
	}
}
