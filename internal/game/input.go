package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DefaultMouseSensitivity is radians of look per pixel of mouse travel.
const DefaultMouseSensitivity = 0.0025

// rawInput is one frame of device state before it becomes a HumanInput.
type rawInput struct {
	Forward, Back, Left, Right bool
	Jump                       bool
	MouseDX, MouseDY           float64
	Fire, Squid                bool
	Bomb, Special, Recall      bool // edge-triggered
	Slot                       int  // 1..3 pressed this frame, else 0
	Wheel                      float64
}

// finite replaces NaN and ±Inf with zero.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// toHumanInput converts raw device state into simulation input. Turning the
// mouse right turns the view clockwise on the top-down map.
func toHumanInput(r rawInput, sensitivity float64, current WeaponKind) HumanInput {
	var mv MoveIntent
	if r.Forward {
		mv.Z++
	}
	if r.Back {
		mv.Z--
	}
	if r.Right {
		mv.X++
	}
	if r.Left {
		mv.X--
	}
	mv.Jump = r.Jump

	sens := finite(sensitivity)
	in := HumanInput{
		Move: mv,
		Look: LookIntent{
			Yaw:   finite(-finite(r.MouseDX) * sens),
			Pitch: finite(-finite(r.MouseDY) * sens),
		},
		Fire:       r.Fire,
		Squid:      r.Squid,
		Bomb:       r.Bomb,
		Special:    r.Special,
		Recall:     r.Recall,
		WeaponSlot: r.Slot,
	}
	if in.WeaponSlot == 0 {
		in.WeaponSlot = wheelSlot(current, finite(r.Wheel))
	}
	return in
}

// wheelSlot cycles from current by the wheel direction, wrapping around.
// It returns 0 when the wheel did not move.
func wheelSlot(current WeaponKind, wheel float64) int {
	n := int(weaponKindCount)
	switch {
	case wheel > 0:
		return (int(current)+n-1)%n + 1
	case wheel < 0:
		return (int(current)+1)%n + 1
	default:
		return 0
	}
}

// readRawInput samples ebiten's keyboard and mouse. Mouse deltas are taken
// against the previous cursor position.
func (g *Game) readRawInput() rawInput {
	mx, my := ebiten.CursorPosition()
	var dx, dy float64
	if g.cursorKnown {
		dx, dy = float64(mx-g.lastCursorX), float64(my-g.lastCursorY)
	}
	g.lastCursorX, g.lastCursorY, g.cursorKnown = mx, my, true
	if ebiten.CursorMode() != ebiten.CursorModeCaptured {
		dx, dy = 0, 0
	}

	r := rawInput{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD),
		Jump:    ebiten.IsKeyPressed(ebiten.KeySpace),
		MouseDX: dx,
		MouseDY: dy,
		Fire:    ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Squid:   ebiten.IsKeyPressed(ebiten.KeyShift),
		Bomb:    inpututil.IsKeyJustPressed(ebiten.KeyE),
		Special: inpututil.IsKeyJustPressed(ebiten.KeyQ),
		Recall:  inpututil.IsKeyJustPressed(ebiten.KeyR),
	}
	for i, k := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3} {
		if inpututil.IsKeyJustPressed(k) {
			r.Slot = i + 1
		}
	}
	_, r.Wheel = ebiten.Wheel()
	return r
}
