package game

import (
	"errors"
	"fmt"
	"math"
)

// TileKind identifies the static content of one arena cell.
type TileKind uint8

const (
	TileFloor        TileKind = iota // open ground, paintable
	TileWall                         // impassable, never painted
	TileLowPlatform                  // raised block, walkable on top
	TileHighPlatform                 // taller raised block
	tileKindCount                    // sentinel
)

func (k TileKind) String() string {
	switch k {
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	case TileLowPlatform:
		return "low-platform"
	case TileHighPlatform:
		return "high-platform"
	default:
		return "unknown"
	}
}

// surfaceHeight returns the top height of a raised tile kind. Floor is 0.
func surfaceHeight(k TileKind) float64 {
	switch k {
	case TileWall:
		return wallHeight
	case TileHighPlatform:
		return highPlatformHeight
	case TileLowPlatform:
		return lowPlatformHeight
	default:
		return 0
	}
}

const (
	tileSize           = 4.0 // world units per tile edge
	paintPerTile       = 8   // ownership-buffer pixels per tile edge
	decalPerTile       = 8   // wall/platform decal pixels per tile edge
	wallHeight         = 6.0
	highPlatformHeight = 4.0
	lowPlatformHeight  = 2.0
)

// ErrMalformedLayout is returned for a layout that is empty, ragged, or uses
// an unknown tile code.
var ErrMalformedLayout = errors.New("malformed arena layout")

// defaultLayout is the fixed arena: 0=floor, 1=wall, 2=low platform, 3=high platform.
var defaultLayout = [][]uint8{
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 2, 2, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 2, 2, 0, 0, 1},
	{1, 0, 0, 2, 3, 3, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 3, 3, 2, 0, 0, 1},
	{1, 0, 0, 0, 3, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 3, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 2, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 2, 2, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 2, 2, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 2, 2, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 2, 2, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 2, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 3, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 3, 0, 0, 0, 1},
	{1, 0, 0, 2, 3, 3, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 3, 3, 2, 0, 0, 1},
	{1, 0, 0, 2, 2, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 2, 2, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
}

// TileGrid is the immutable per-cell arena layout.
type TileGrid struct {
	Cols  int
	Rows  int
	Tiles []TileKind // row-major: index = row*Cols + col
}

// NewTileGrid validates a layout and converts it into a grid.
func NewTileGrid(layout [][]uint8) (*TileGrid, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, fmt.Errorf("empty layout: %w", ErrMalformedLayout)
	}
	rows, cols := len(layout), len(layout[0])
	tiles := make([]TileKind, 0, rows*cols)
	for r, line := range layout {
		if len(line) != cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", r, len(line), cols, ErrMalformedLayout)
		}
		for c, v := range line {
			if TileKind(v) >= tileKindCount {
				return nil, fmt.Errorf("cell (%d,%d) has code %d: %w", c, r, v, ErrMalformedLayout)
			}
			tiles = append(tiles, TileKind(v))
		}
	}
	return &TileGrid{Cols: cols, Rows: rows, Tiles: tiles}, nil
}

// inBounds returns true if (col, row) is within the grid.
func (tg *TileGrid) inBounds(col, row int) bool {
	return col >= 0 && col < tg.Cols && row >= 0 && row < tg.Rows
}

// At returns the tile at (col, row). Out-of-range cells read as wall.
func (tg *TileGrid) At(col, row int) TileKind {
	if !tg.inBounds(col, row) {
		return TileWall
	}
	return tg.Tiles[row*tg.Cols+col]
}

// TileAt returns the tile under world position (x, z).
func (tg *TileGrid) TileAt(x, z float64) TileKind {
	return tg.At(int(math.Floor(x/tileSize)), int(math.Floor(z/tileSize)))
}

// IsWalkable returns true if the tile under (x, z) is not a wall.
func (tg *TileGrid) IsWalkable(x, z float64) bool {
	return tg.TileAt(x, z) != TileWall
}

// Count returns how many cells hold kind k.
func (tg *TileGrid) Count(k TileKind) int {
	n := 0
	for _, t := range tg.Tiles {
		if t == k {
			n++
		}
	}
	return n
}
