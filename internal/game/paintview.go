package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	floorColour        = color.RGBA{R: 54, G: 57, B: 66, A: 255}
	lowPlatformColour  = color.RGBA{R: 76, G: 80, B: 92, A: 255}
	highPlatformColour = color.RGBA{R: 98, G: 102, B: 116, A: 255}
	wallColour         = color.RGBA{R: 24, G: 25, B: 31, A: 255}
	gridLineColour     = color.RGBA{R: 70, G: 74, B: 86, A: 255}
)

// tileColour is the unpainted colour of a tile kind.
func tileColour(k TileKind) color.RGBA {
	switch k {
	case TileWall:
		return wallColour
	case TileLowPlatform:
		return lowPlatformColour
	case TileHighPlatform:
		return highPlatformColour
	default:
		return floorColour
	}
}

// mix blends a toward b by f in [0,1].
func mix(a, b color.RGBA, f float64) color.RGBA {
	l := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*f) }
	return color.RGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: 255}
}

// paintPixel is the top-down colour of one ownership-buffer pixel. decal is
// the wall decal owner for wall pixels and ignored elsewhere.
func paintPixel(k TileKind, owner, decal Team, gridLine bool) color.RGBA {
	base := tileColour(k)
	if k == TileWall {
		if decal.Valid() {
			return mix(base, decal.Colour(), 0.55)
		}
		return base
	}
	if owner.Valid() {
		f := 0.9
		if k != TileFloor {
			f = 0.75
		}
		return mix(base, owner.Colour(), f)
	}
	if gridLine && k == TileFloor {
		return gridLineColour
	}
	return base
}

// fillPaintPixels writes the whole arena as RGBA into pix, one pixel per
// ownership cell. pix must hold 4*pw*ph bytes.
func fillPaintPixels(a *Arena, pix []byte) {
	pw, ph := a.PaintSize()
	own := a.Ownership()
	decals := wallDecalOwners(a)
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			i := y*pw + x
			k := a.grid.At(x/paintPerTile, y/paintPerTile)
			grid := x%paintPerTile == 0 || y%paintPerTile == 0
			c := paintPixel(k, own[i], decals[i], grid)
			pix[4*i], pix[4*i+1], pix[4*i+2], pix[4*i+3] = c.R, c.G, c.B, c.A
		}
	}
}

// wallDecalOwners projects every wall decal onto the ownership grid. Decals
// share the floor buffer's resolution, so the mapping is one to one.
func wallDecalOwners(a *Arena) []Team {
	pw, ph := a.PaintSize()
	out := make([]Team, pw*ph)
	for _, s := range a.Walls() {
		dw, dh := s.DecalSize()
		x0, y0 := s.Col*paintPerTile, s.Row*paintPerTile
		for v := 0; v < dh; v++ {
			for u := 0; u < dw; u++ {
				x, y := x0+u*paintPerTile/decalPerTile, y0+v*paintPerTile/decalPerTile
				if x < pw && y < ph {
					out[y*pw+x] = s.DecalAt(u, v)
				}
			}
		}
	}
	return out
}

// paintView mirrors the arena paint into a GPU image, rebuilt only when the
// arena reports new paint.
type paintView struct {
	pix []byte
	img *ebiten.Image
}

func newPaintView(a *Arena) *paintView {
	pw, ph := a.PaintSize()
	pv := &paintView{pix: make([]byte, 4*pw*ph), img: ebiten.NewImage(pw, ph)}
	pv.refresh(a)
	return pv
}

func (pv *paintView) refresh(a *Arena) {
	fillPaintPixels(a, pv.pix)
	pv.img.WritePixels(pv.pix)
}

// sync uploads the paint if it changed since the last call.
func (pv *paintView) sync(a *Arena) {
	if a.TakePaintDirty() {
		pv.refresh(a)
	}
}
