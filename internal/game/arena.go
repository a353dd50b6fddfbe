package game

import (
	"fmt"
	"math"
)

const (
	landingTolerance = 0.8 // how far below a surface top a body may be and still land on it
	wallPaintReach   = 0.5 // height above a surface top that still counts as hitting its side
	paintSplatter    = 1.5 // ownership stamp radius relative to the requested radius
	decalRadiusScale = 2.0 // decal pixels per world unit of paint radius
	scoreStride      = paintPerTile
)

// Surface is one merged wall or platform block. Each surface carries its own
// decal canvas, independent of the floor ownership buffer.
type Surface struct {
	Kind                   TileKind
	Col, Row, Cols, Rows   int // tile-space footprint
	MinX, MaxX, MinZ, MaxZ float64
	TopY                   float64

	decal          []Team
	decalW, decalH int
}

func newSurface(k TileKind, r tileRect) *Surface {
	s := &Surface{
		Kind: k,
		Col:  r.col, Row: r.row, Cols: r.w, Rows: r.h,
		MinX: float64(r.col) * tileSize,
		MaxX: float64(r.col+r.w) * tileSize,
		MinZ: float64(r.row) * tileSize,
		MaxZ: float64(r.row+r.h) * tileSize,
		TopY: surfaceHeight(k),
	}
	s.decalW = r.w * decalPerTile
	s.decalH = r.h * decalPerTile
	s.decal = make([]Team, s.decalW*s.decalH)
	return s
}

// Contains reports whether (x, z) lies within the footprint, edges included.
func (s *Surface) Contains(x, z float64) bool {
	return x >= s.MinX && x <= s.MaxX && z >= s.MinZ && z <= s.MaxZ
}

// DecalSize returns the decal canvas dimensions in pixels.
func (s *Surface) DecalSize() (int, int) { return s.decalW, s.decalH }

// DecalAt returns the team that painted decal pixel (u, v), or TeamNone.
func (s *Surface) DecalAt(u, v int) Team {
	if u < 0 || u >= s.decalW || v < 0 || v >= s.decalH {
		return TeamNone
	}
	return s.decal[v*s.decalW+u]
}

func (s *Surface) clearDecal() {
	for i := range s.decal {
		s.decal[i] = TeamNone
	}
}

// Terrain is the read-only geometry and paint capability the simulation
// moves against. Only the paint calls mutate state.
type Terrain interface {
	Width() float64
	Height() float64
	TileAt(x, z float64) TileKind
	IsWalkable(x, z float64) bool
	TeamAt(x, z float64) Team
	CollideWalls(x, z, radius float64) (float64, float64)
	GroundY(x, z, y float64) float64
	PaintAt(x, z float64, team Team, radius float64)
	PaintWallAt(pos Vec3, team Team, radius float64) bool
	HasLineOfSight(ax, az, bx, bz float64) bool
}

// Arena owns the tile grid, the merged collision geometry and the paint state.
type Arena struct {
	grid      *TileGrid
	walls     []*Surface
	platforms []*Surface

	paint      []Team // row-major ownership buffer, pw*ph
	pw, ph     int
	paintDirty bool
}

var _ Terrain = (*Arena)(nil)

// NewArena builds an arena from a layout, merging its geometry once.
func NewArena(layout [][]uint8) (*Arena, error) {
	grid, err := NewTileGrid(layout)
	if err != nil {
		return nil, fmt.Errorf("build arena: %w", err)
	}
	a := &Arena{
		grid: grid,
		pw:   grid.Cols * paintPerTile,
		ph:   grid.Rows * paintPerTile,
	}
	a.paint = make([]Team, a.pw*a.ph)
	a.BuildGeometry()
	return a, nil
}

// MustDefaultArena builds the fixed match arena.
func MustDefaultArena() *Arena {
	a, err := NewArena(defaultLayout)
	if err != nil {
		panic(err)
	}
	return a
}

// BuildGeometry (re)computes the merged wall and platform surfaces.
func (a *Arena) BuildGeometry() {
	a.walls = a.walls[:0]
	a.platforms = a.platforms[:0]
	for _, r := range greedyMesh(a.grid, TileWall) {
		a.walls = append(a.walls, newSurface(TileWall, r))
	}
	for _, k := range []TileKind{TileLowPlatform, TileHighPlatform} {
		for _, r := range greedyMesh(a.grid, k) {
			a.platforms = append(a.platforms, newSurface(k, r))
		}
	}
}

// Grid exposes the static tile layout.
func (a *Arena) Grid() *TileGrid { return a.grid }

// Walls returns the merged wall surfaces.
func (a *Arena) Walls() []*Surface { return a.walls }

// Platforms returns the merged low and high platform surfaces.
func (a *Arena) Platforms() []*Surface { return a.platforms }

// Width is the arena extent along X in world units.
func (a *Arena) Width() float64 { return float64(a.grid.Cols) * tileSize }

// Height is the arena extent along Z in world units.
func (a *Arena) Height() float64 { return float64(a.grid.Rows) * tileSize }

// PaintSize returns the ownership buffer dimensions.
func (a *Arena) PaintSize() (int, int) { return a.pw, a.ph }

// Ownership returns the ownership buffer. Callers must treat it as read-only.
func (a *Arena) Ownership() []Team { return a.paint }

// TakePaintDirty reports whether any paint changed since the last call and
// clears the flag.
func (a *Arena) TakePaintDirty() bool {
	d := a.paintDirty
	a.paintDirty = false
	return d
}

func (a *Arena) TileAt(x, z float64) TileKind { return a.grid.TileAt(x, z) }
func (a *Arena) IsWalkable(x, z float64) bool { return a.grid.IsWalkable(x, z) }

// toPaint converts a world position to ownership-buffer coordinates.
func (a *Arena) toPaint(x, z float64) (float64, float64) {
	return x / a.Width() * float64(a.pw), z / a.Height() * float64(a.ph)
}

// TeamAt returns the owner of the floor under (x, z), TeamNone off the map.
func (a *Arena) TeamAt(x, z float64) Team {
	fx, fz := a.toPaint(x, z)
	px, py := int(math.Floor(fx)), int(math.Floor(fz))
	if px < 0 || px >= a.pw || py < 0 || py >= a.ph {
		return TeamNone
	}
	return a.paint[py*a.pw+px]
}

// CollideWalls pushes a circle at (x, z) out of every wall rectangle.
// Callers run it more than once to settle corners.
func (a *Arena) CollideWalls(x, z, radius float64) (float64, float64) {
	nx, nz := x, z
	for _, w := range a.walls {
		cx := clamp(nx, w.MinX, w.MaxX)
		cz := clamp(nz, w.MinZ, w.MaxZ)
		dx, dz := nx-cx, nz-cz
		d := math.Sqrt(dx*dx + dz*dz)
		switch {
		case d <= 0.001:
			// Centre inside the block: leave by the nearest face.
			dL := math.Abs(nx - w.MinX)
			dR := math.Abs(nx - w.MaxX)
			dT := math.Abs(nz - w.MinZ)
			dB := math.Abs(nz - w.MaxZ)
			m := math.Min(math.Min(dL, dR), math.Min(dT, dB))
			switch m {
			case dL:
				nx = w.MinX - radius
			case dR:
				nx = w.MaxX + radius
			case dT:
				nz = w.MinZ - radius
			default:
				nz = w.MaxZ + radius
			}
		case d < radius:
			o := radius - d
			nx += dx / d * o
			nz += dz / d * o
		}
	}
	return nx, nz
}

// GroundY returns the highest surface top under (x, z) that a body at height
// y can stand on, or 0 for the arena floor. Tops more than landingTolerance
// above y are ignored so nothing tunnels up through a block.
func (a *Arena) GroundY(x, z, y float64) float64 {
	best := 0.0
	for _, group := range [][]*Surface{a.platforms, a.walls} {
		for _, s := range group {
			if s.Contains(x, z) && y >= s.TopY-landingTolerance && s.TopY > best {
				best = s.TopY
			}
		}
	}
	return best
}

// PaintAt stamps a filled circle of team ownership into the floor buffer.
// Pixels over wall tiles are skipped.
func (a *Arena) PaintAt(x, z float64, team Team, radius float64) {
	if !team.Valid() || radius <= 0 {
		return
	}
	px, py := a.toPaint(x, z)
	pr := radius / a.Width() * float64(a.pw) * paintSplatter
	x0 := max(0, int(math.Floor(px-pr)))
	x1 := min(a.pw-1, int(math.Ceil(px+pr)))
	y0 := max(0, int(math.Floor(py-pr)))
	y1 := min(a.ph-1, int(math.Ceil(py+pr)))
	r2 := pr * pr
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)-px, float64(y)-py
			if dx*dx+dy*dy >= r2 {
				continue
			}
			if a.grid.At(x/paintPerTile, y/paintPerTile) == TileWall {
				continue
			}
			a.paint[y*a.pw+x] = team
		}
	}
	a.paintDirty = true
}

// PaintWallAt paints the decal of every wall or platform whose footprint,
// widened by radius, contains pos and whose side spans pos.Y. It reports
// whether any surface was painted.
func (a *Arena) PaintWallAt(pos Vec3, team Team, radius float64) bool {
	if !team.Valid() {
		return false
	}
	hit := false
	for _, group := range [][]*Surface{a.walls, a.platforms} {
		for _, s := range group {
			if pos.X < s.MinX-radius || pos.X > s.MaxX+radius ||
				pos.Z < s.MinZ-radius || pos.Z > s.MaxZ+radius {
				continue
			}
			if pos.Y < 0 || pos.Y > s.TopY+wallPaintReach {
				continue
			}
			u := (pos.X - s.MinX) / (s.MaxX - s.MinX) * float64(s.decalW)
			v := (pos.Z - s.MinZ) / (s.MaxZ - s.MinZ) * float64(s.decalH)
			s.stamp(u, v, radius*decalRadiusScale, team)
			hit = true
		}
	}
	if hit {
		a.paintDirty = true
	}
	return hit
}

func (s *Surface) stamp(u, v, r float64, team Team) {
	x0 := max(0, int(math.Floor(u-r)))
	x1 := min(s.decalW-1, int(math.Ceil(u+r)))
	y0 := max(0, int(math.Floor(v-r)))
	y1 := min(s.decalH-1, int(math.Ceil(v+r)))
	r2 := r * r
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)-u, float64(y)-v
			if dx*dx+dy*dy < r2 {
				s.decal[y*s.decalW+x] = team
			}
		}
	}
}

// Scores holds each team's painted share of the sampled floor, in percent.
type Scores struct {
	Cyan float64
	Pink float64
}

// Of returns the score of team t (0 for neutral).
func (s Scores) Of(t Team) float64 {
	switch t {
	case TeamCyan:
		return s.Cyan
	case TeamPink:
		return s.Pink
	default:
		return 0
	}
}

// Scores samples every scoreStride-th buffer pixel and returns each team's
// share of the sampled pixels.
func (a *Arena) Scores() Scores {
	var cyan, pink, total int
	for i := 0; i < len(a.paint); i += scoreStride {
		total++
		switch a.paint[i] {
		case TeamCyan:
			cyan++
		case TeamPink:
			pink++
		}
	}
	if total == 0 {
		return Scores{}
	}
	return Scores{
		Cyan: float64(cyan) / float64(total) * 100,
		Pink: float64(pink) / float64(total) * 100,
	}
}

// Reset clears the floor buffer and every decal to unpainted.
func (a *Arena) Reset() {
	for i := range a.paint {
		a.paint[i] = TeamNone
	}
	for _, s := range a.walls {
		s.clearDecal()
	}
	for _, s := range a.platforms {
		s.clearDecal()
	}
	a.paintDirty = true
}
