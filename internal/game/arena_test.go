package game

import (
	"math"
	"math/rand"
	"testing"
)

func randomLayout(rng *rand.Rand, cols, rows int) [][]uint8 {
	layout := make([][]uint8, rows)
	for r := range layout {
		layout[r] = make([]uint8, cols)
		for c := range layout[r] {
			layout[r][c] = uint8(rng.Intn(int(tileKindCount)))
		}
	}
	return layout
}

func TestGreedyMesh_ExactCover(t *testing.T) {
	rng := rand.New(rand.NewSource(7)) // #nosec G404 -- deterministic test data
	for trial := 0; trial < 200; trial++ {
		cols, rows := 1+rng.Intn(12), 1+rng.Intn(12)
		tg, err := NewTileGrid(randomLayout(rng, cols, rows))
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		for _, k := range []TileKind{TileWall, TileLowPlatform, TileHighPlatform} {
			covered := make([]int, len(tg.Tiles))
			for _, r := range greedyMesh(tg, k) {
				if r.w <= 0 || r.h <= 0 {
					t.Fatalf("trial %d %s: degenerate rect %+v", trial, k, r)
				}
				for y := r.row; y < r.row+r.h; y++ {
					for x := r.col; x < r.col+r.w; x++ {
						if got := tg.At(x, y); got != k {
							t.Fatalf("trial %d %s: rect %+v covers %s cell (%d,%d)", trial, k, r, got, x, y)
						}
						covered[y*tg.Cols+x]++
					}
				}
			}
			for i, n := range covered {
				want := 0
				if tg.Tiles[i] == k {
					want = 1
				}
				if n != want {
					t.Fatalf("trial %d %s: cell %d covered %d times, want %d", trial, k, i, n, want)
				}
			}
		}
	}
}

func TestGreedyMesh_MergesBlocks(t *testing.T) {
	tg, _ := NewTileGrid([][]uint8{
		{1, 1, 1},
		{1, 1, 1},
		{0, 0, 0},
	})
	rects := greedyMesh(tg, TileWall)
	if len(rects) != 1 {
		t.Fatalf("expected 1 merged rect, got %d", len(rects))
	}
	if r := rects[0]; r.w != 3 || r.h != 2 {
		t.Fatalf("rect=%+v, want 3x2", r)
	}
}

func TestDefaultArena_Geometry(t *testing.T) {
	a := MustDefaultArena()
	if a.Width() != 120 || a.Height() != 80 {
		t.Fatalf("world size %vx%v, want 120x80", a.Width(), a.Height())
	}
	if w, h := a.PaintSize(); w != 240 || h != 160 {
		t.Fatalf("paint size %dx%d, want 240x160", w, h)
	}
	wallCells := 0
	for _, s := range a.Walls() {
		wallCells += s.Cols * s.Rows
		if s.TopY != wallHeight {
			t.Fatalf("wall top %v, want %v", s.TopY, wallHeight)
		}
	}
	if want := a.Grid().Count(TileWall); wallCells != want {
		t.Fatalf("walls cover %d cells, want %d", wallCells, want)
	}
	if len(a.Walls()) >= a.Grid().Count(TileWall) {
		t.Fatal("expected merging to reduce wall surface count")
	}
	for _, s := range a.Platforms() {
		if s.TopY >= wallHeight || s.TopY <= 0 {
			t.Fatalf("platform %s top %v out of range", s.Kind, s.TopY)
		}
	}
}

func TestCollideWalls_InsidePushesOut(t *testing.T) {
	a, _ := NewArena([][]uint8{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 1, 1, 1, 0, 0},
		{0, 0, 1, 1, 1, 0, 0},
		{0, 0, 1, 1, 1, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
	})
	w := a.Walls()[0]
	const radius = 0.8
	const eps = 1e-9
	for x := w.MinX + 0.25; x < w.MaxX; x += 0.5 {
		for z := w.MinZ + 0.25; z < w.MaxZ; z += 0.5 {
			nx, nz := a.CollideWalls(x, z, radius)
			out := nx <= w.MinX-radius+eps || nx >= w.MaxX+radius-eps ||
				nz <= w.MinZ-radius+eps || nz >= w.MaxZ+radius-eps
			if !out {
				t.Fatalf("(%v,%v) resolved to (%v,%v), still within radius of wall", x, z, nx, nz)
			}
			// Least penetration: only one axis moves.
			if nx != x && nz != z {
				t.Fatalf("(%v,%v) moved on both axes to (%v,%v)", x, z, nx, nz)
			}
			moved := math.Abs(nx-x) + math.Abs(nz-z)
			pen := math.Min(math.Min(x-w.MinX, w.MaxX-x), math.Min(z-w.MinZ, w.MaxZ-z))
			if math.Abs(moved-(pen+radius)) > 1e-9 {
				t.Fatalf("(%v,%v) moved %v, want least penetration %v", x, z, moved, pen+radius)
			}
		}
	}
}

func TestCollideWalls_TouchingPushesToRadius(t *testing.T) {
	a, _ := NewArena([][]uint8{{0, 1, 0}})
	nx, nz := a.CollideWalls(3.7, 2, 0.8)
	if math.Abs(nx-3.2) > 1e-9 || nz != 2 {
		t.Fatalf("got (%v,%v), want (3.2,2)", nx, nz)
	}
	// Clear of the wall: unchanged.
	if nx, nz := a.CollideWalls(2, 2, 0.8); nx != 2 || nz != 2 {
		t.Fatalf("free point moved to (%v,%v)", nx, nz)
	}
}

func TestGroundY(t *testing.T) {
	a, _ := NewArena([][]uint8{{0, 2, 3, 1}})
	if g := a.GroundY(2, 2, 0); g != 0 {
		t.Fatalf("floor ground=%v, want 0", g)
	}
	if g := a.GroundY(6, 2, 2); g != lowPlatformHeight {
		t.Fatalf("standing on low platform ground=%v", g)
	}
	if g := a.GroundY(6, 2, 1.3); g != lowPlatformHeight {
		t.Fatalf("within landing tolerance ground=%v", g)
	}
	if g := a.GroundY(6, 2, 0.5); g != 0 {
		t.Fatalf("below low platform should not tunnel up, got %v", g)
	}
	if g := a.GroundY(10, 2, 5); g != highPlatformHeight {
		t.Fatalf("high platform ground=%v", g)
	}
	if g := a.GroundY(14, 2, 6); g != wallHeight {
		t.Fatalf("wall top ground=%v", g)
	}
}

func TestPaintAt_NeverPaintsWalls(t *testing.T) {
	a := MustDefaultArena()
	rng := rand.New(rand.NewSource(3)) // #nosec G404 -- deterministic test data
	for i := 0; i < 500; i++ {
		team := TeamCyan
		if i%2 == 1 {
			team = TeamPink
		}
		a.PaintAt(rng.Float64()*140-10, rng.Float64()*100-10, team, rng.Float64()*12)
	}
	pw, ph := a.PaintSize()
	painted := 0
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			owner := a.Ownership()[y*pw+x]
			if owner == TeamNone {
				continue
			}
			painted++
			if a.Grid().At(x/paintPerTile, y/paintPerTile) == TileWall {
				t.Fatalf("wall pixel (%d,%d) painted %s", x, y, owner)
			}
		}
	}
	if painted == 0 {
		t.Fatal("expected some floor to be painted")
	}
}

func TestPaintAt_TeamAtAndDirty(t *testing.T) {
	a := MustDefaultArena()
	a.TakePaintDirty()
	a.PaintAt(30, 30, TeamPink, 2)
	if !a.TakePaintDirty() {
		t.Fatal("paint should raise the dirty flag")
	}
	if a.TakePaintDirty() {
		t.Fatal("dirty flag should clear after being taken")
	}
	if got := a.TeamAt(30, 30); got != TeamPink {
		t.Fatalf("TeamAt=%s, want pink", got)
	}
	if got := a.TeamAt(-5, 30); got != TeamNone {
		t.Fatalf("out of range TeamAt=%s, want none", got)
	}
	a.PaintAt(30, 30, TeamCyan, 2)
	if got := a.TeamAt(30, 30); got != TeamCyan {
		t.Fatalf("last writer should win, got %s", got)
	}
}

func TestPaintWallAt(t *testing.T) {
	a, _ := NewArena([][]uint8{{0, 1, 0}})
	w := a.Walls()[0]
	if !a.PaintWallAt(Vec3{X: 3.9, Y: 3, Z: 2}, TeamCyan, 1) {
		t.Fatal("expected wall decal paint")
	}
	if got := w.DecalAt(0, 4); got != TeamCyan {
		t.Fatalf("decal pixel=%s, want cyan", got)
	}
	if a.PaintWallAt(Vec3{X: 3.9, Y: 9, Z: 2}, TeamCyan, 1) {
		t.Fatal("point above the wall should not paint it")
	}
	if a.PaintWallAt(Vec3{X: 1, Y: 3, Z: 2}, TeamCyan, 1) {
		t.Fatal("point far from the wall should not paint it")
	}
	if a.TeamAt(3.9, 2) != TeamNone {
		t.Fatal("wall paint must not touch the floor buffer")
	}
}

func TestScores_Bounds(t *testing.T) {
	a := MustDefaultArena()
	if s := a.Scores(); s.Cyan != 0 || s.Pink != 0 {
		t.Fatalf("fresh arena scores %+v", s)
	}
	rng := rand.New(rand.NewSource(11)) // #nosec G404 -- deterministic test data
	for i := 0; i < 2000; i++ {
		a.PaintAt(rng.Float64()*120, rng.Float64()*80, Team(1+i%2), 1+rng.Float64()*6)
		if i%100 == 0 {
			s := a.Scores()
			if s.Cyan < 0 || s.Cyan > 100 || s.Pink < 0 || s.Pink > 100 {
				t.Fatalf("scores out of range: %+v", s)
			}
			if s.Cyan+s.Pink > 100+1e-9 {
				t.Fatalf("scores sum %v > 100", s.Cyan+s.Pink)
			}
		}
	}
	if s := a.Scores(); s.Of(TeamCyan) == 0 || s.Of(TeamPink) == 0 || s.Of(TeamNone) != 0 {
		t.Fatalf("unexpected scores after painting: %+v", s)
	}
}

func TestArenaReset(t *testing.T) {
	a := MustDefaultArena()
	a.PaintAt(60, 40, TeamCyan, 5)
	a.PaintWallAt(Vec3{X: a.Walls()[0].MinX, Y: 1, Z: a.Walls()[0].MinZ}, TeamPink, 2)
	a.Reset()
	for i, owner := range a.Ownership() {
		if owner != TeamNone {
			t.Fatalf("pixel %d still %s after reset", i, owner)
		}
	}
	for _, s := range append(a.Walls(), a.Platforms()...) {
		w, h := s.DecalSize()
		for v := 0; v < h; v++ {
			for u := 0; u < w; u++ {
				if s.DecalAt(u, v) != TeamNone {
					t.Fatal("decal still painted after reset")
				}
			}
		}
	}
}
