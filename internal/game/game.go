package game

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Ink-Arena/internal/audio"
)

const (
	borderWidth = 24 // gap between the window edge and the arena
	topBarH     = 36 // score and timer strip above the arena
	bottomBarH  = 64 // player status strip below the arena
	pxPerUnit   = 8  // screen pixels per world unit
	statusTTL   = 3 * time.Second
)

// GameConfig configures the windowed front end.
type GameConfig struct {
	Match            []MatchOption
	MouseSensitivity float64
	Sound            CuePlayer          // nil plays nothing
	Clipboard        func(string) error // nil uses the system clipboard
}

// Game is the ebiten front end: a top-down view of one Match with the
// human steering the cyan C0 slot.
type Game struct {
	width, height int
	offX, offY    int // arena origin on screen
	fieldW        int
	fieldH        int

	match    *Match
	reporter *MatchReporter
	matchLog *MatchLog
	paint    *paintView
	face     *text.GoXFace

	sound     CuePlayer
	copyText  func(string) error
	sens      float64
	phase     phase
	countdown countdown

	lastCursorX, lastCursorY int
	cursorKnown              bool

	status      string
	statusUntil time.Time
}

// New builds the front end on a fresh match sitting at the title screen.
func New(cfg GameConfig) *Game {
	m := NewMatch(cfg.Match...)
	a := m.Arena()
	g := &Game{
		fieldW:   int(a.Width() * pxPerUnit),
		fieldH:   int(a.Height() * pxPerUnit),
		offX:     borderWidth,
		offY:     borderWidth + topBarH,
		match:    m,
		reporter: NewMatchReporter(reportWindowTicks, false),
		matchLog: NewMatchLog(),
		face:     text.NewGoXFace(basicfont.Face7x13),
		sound:    cfg.Sound,
		copyText: cfg.Clipboard,
		sens:     cfg.MouseSensitivity,
	}
	if g.copyText == nil {
		g.copyText = clipboard.WriteAll
	}
	if g.sens <= 0 {
		g.sens = DefaultMouseSensitivity
	}
	g.width = borderWidth + g.fieldW + borderWidth + logPanelWidth
	g.height = g.offY + g.fieldH + bottomBarH + borderWidth
	g.paint = newPaintView(a)
	return g
}

// Match exposes the match being played.
func (g *Game) Match() *Match { return g.match }

// Size returns the logical screen size.
func (g *Game) Size() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	switch g.phase {
	case phaseTitle:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.beginCountdown()
		}
	case phaseCountdown:
		beep, done := g.countdown.advance(dt)
		if beep {
			g.play(audio.CueCountdown)
		}
		if done {
			g.match.Start()
			g.phase = phasePlaying
			g.play(audio.CueGo)
			g.captureCursor(true)
		}
	case phasePlaying:
		g.updatePlaying(dt)
	case phaseResult:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.rematch()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			g.copyReport()
		}
	}
	return nil
}

func (g *Game) updatePlaying(dt float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.captureCursor(false)
	}
	captured := ebiten.CursorMode() == ebiten.CursorModeCaptured
	if !captured && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.captureCursor(true)
	}

	var in HumanInput
	if h := g.match.Human(); h != nil {
		r := g.readRawInput()
		if !captured {
			r.Fire = false
		}
		in = toHumanInput(r, g.sens, h.WeaponKind())
	}
	events := g.match.Step(dt, in)
	g.playEvents(events)
	g.matchLog.Record(events, g.match)
	if g.match.Tick()%60 == 0 {
		g.reporter.Collect(g.match)
	}
	g.paint.sync(g.match.Arena())

	if g.match.Finished() {
		g.reporter.Collect(g.match)
		g.phase = phaseResult
		g.captureCursor(false)
	}
}

func (g *Game) beginCountdown() {
	g.countdown = newCountdown()
	g.phase = phaseCountdown
	g.play(audio.CueCountdown)
}

func (g *Game) rematch() {
	g.match.Reset()
	g.reporter = NewMatchReporter(reportWindowTicks, false)
	g.matchLog.Reset()
	g.paint.refresh(g.match.Arena())
	g.beginCountdown()
}

func (g *Game) copyReport() {
	if err := g.copyText(matchReportText(g.match, g.reporter)); err != nil {
		g.setStatus("clipboard unavailable: " + err.Error())
		return
	}
	g.setStatus("match report copied to clipboard")
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusUntil = time.Now().Add(statusTTL)
}

func (g *Game) captureCursor(on bool) {
	g.cursorKnown = false
	if on {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}

// toScreen maps a world (x, z) to screen pixels.
func (g *Game) toScreen(x, z float64) (float32, float32) {
	return float32(float64(g.offX) + x*pxPerUnit), float32(float64(g.offY) + z*pxPerUnit)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 14, G: 14, B: 20, A: 255})

	g.drawArena(screen)
	g.drawProjectiles(screen)
	g.drawCombatants(screen)
	g.drawDamageNumbers(screen)

	ox, oy := float32(g.offX), float32(g.offY)
	fw, fh := float32(g.fieldW), float32(g.fieldH)
	vector.StrokeRect(screen, ox-1, oy-1, fw+2, fh+2, 2.0, color.RGBA{R: 80, G: 80, B: 110, A: 255}, false)
	vector.StrokeRect(screen, ox-3, oy-3, fw+6, fh+6, 1.0, color.RGBA{R: 50, G: 50, B: 80, A: 100}, false)

	g.drawTopBar(screen)
	g.drawBottomBar(screen)
	g.drawKillFeed(screen)
	g.matchLog.Draw(screen, g.offX+g.fieldW+borderWidth, g.height)

	switch g.phase {
	case phaseTitle:
		g.drawTitle(screen)
	case phaseCountdown:
		g.drawCentred(screen, fmt.Sprintf("%d", g.countdown.shown()), 8, color.White)
	case phaseResult:
		g.drawResult(screen)
	}
	if g.status != "" && time.Now().Before(g.statusUntil) {
		g.drawText(screen, g.status, float64(g.offX+8), float64(g.offY+g.fieldH-24), 1, color.RGBA{R: 255, G: 230, B: 120, A: 255})
	}
}

func (g *Game) drawArena(screen *ebiten.Image) {
	pw, _ := g.match.Arena().PaintSize()
	s := float64(g.fieldW) / float64(pw)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.paint.img, op)

	for _, p := range g.match.Arena().Platforms() {
		x, y := g.toScreen(p.MinX, p.MinZ)
		w, h := float32((p.MaxX-p.MinX)*pxPerUnit), float32((p.MaxZ-p.MinZ)*pxPerUnit)
		vector.StrokeRect(screen, x, y, w, h, 1.5, color.RGBA{R: 150, G: 155, B: 175, A: 200}, false)
	}
	for _, wl := range g.match.Arena().Walls() {
		x, y := g.toScreen(wl.MinX, wl.MinZ)
		w, h := float32((wl.MaxX-wl.MinX)*pxPerUnit), float32((wl.MaxZ-wl.MinZ)*pxPerUnit)
		vector.StrokeRect(screen, x, y, w, h, 1, color.RGBA{R: 8, G: 8, B: 12, A: 255}, false)
	}
}

func (g *Game) drawProjectiles(screen *ebiten.Image) {
	for _, p := range g.match.Projectiles() {
		x, y := g.toScreen(p.Pos.X, p.Pos.Z)
		r := float32(math.Max(1.5, p.Size*pxPerUnit))
		col := p.Team.Colour()
		// Shadow offset grows with height.
		lift := float32(p.Pos.Y * 1.5)
		vector.FillCircle(screen, x, y, r, color.RGBA{A: 90}, false)
		if p.Kind == KindBomb {
			vector.FillCircle(screen, x, y-lift, r+1.5, color.RGBA{R: 20, G: 20, B: 20, A: 255}, false)
		}
		vector.FillCircle(screen, x, y-lift, r, col, false)
	}
}

func (g *Game) drawCombatants(screen *ebiten.Image) {
	for _, c := range g.match.Combatants() {
		x, y := g.toScreen(c.Pos().X, c.Pos().Z)
		col := c.Team().Colour()
		if !c.Alive() {
			d := float32(5)
			vector.StrokeLine(screen, x-d, y-d, x+d, y+d, 2, col, false)
			vector.StrokeLine(screen, x-d, y+d, x+d, y-d, 2, col, false)
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f", math.Ceil(c.RespawnIn())), int(x)+7, int(y)-8)
			continue
		}

		r := float32(bodyRadius * pxPerUnit)
		if c.IsSquid() {
			r *= 0.6
		}
		lift := float32(c.Pos().Y * 1.5)
		vector.FillCircle(screen, x, y, r, color.RGBA{A: 80}, false)
		y -= lift

		fill := col
		if c.DamageFlash() > 0 {
			fill = mix(col, color.RGBA{R: 255, G: 255, B: 255, A: 255}, 0.7)
		}
		vector.FillCircle(screen, x, y, r, fill, true)
		if c.SpecialActive() {
			vector.StrokeCircle(screen, x, y, r+4, 2, color.RGBA{R: 255, G: 230, B: 80, A: 255}, true)
		}
		if c.Charging() {
			vector.StrokeCircle(screen, x, y, r+2+float32(c.ChargeLevel()*6), 1.5, color.White, true)
		}
		if c.IsHuman() {
			vector.StrokeCircle(screen, x, y, r+1, 1.5, color.White, true)
		}

		f := c.Forward()
		aim := float32(3 * pxPerUnit)
		vector.StrokeLine(screen, x, y, x+float32(f.X)*aim, y+float32(f.Z)*aim, 1.5, mix(col, color.RGBA{A: 255}, 0.4), true)
		ebitenutil.DebugPrintAt(screen, c.Label(), int(x+r)+2, int(y-r)-10)
	}
}

func (g *Game) drawDamageNumbers(screen *ebiten.Image) {
	now := time.Now()
	for _, d := range g.match.DamageNumbers() {
		age := now.Sub(d.At).Seconds() / damageNumberTTL.Seconds()
		x, y := g.toScreen(d.Pos.X, d.Pos.Z)
		y -= float32(damageNumberLift*pxPerUnit) + float32(age*20)
		label := fmt.Sprintf("%d", d.Amount)
		if d.Killed {
			label += "!"
		}
		ebitenutil.DebugPrintAt(screen, label, int(x)-6, int(y))
	}
}

func (g *Game) drawKillFeed(screen *ebiten.Image) {
	x := float64(g.offX + g.fieldW - 220)
	y := float64(g.offY + 6)
	for _, k := range g.match.KillFeed() {
		line := fmt.Sprintf("%s [%s] %s", k.AttackerLabel, k.Cause, k.VictimLabel)
		vector.FillRect(screen, float32(x-4), float32(y-1), 216, 16, color.RGBA{R: 0, G: 0, B: 0, A: 150}, false)
		vector.FillRect(screen, float32(x-4), float32(y-1), 3, 16, k.Attacker.Colour(), false)
		g.drawText(screen, line, x+2, y, 1, color.White)
		y += 18
	}
}

func (g *Game) drawTopBar(screen *ebiten.Image) {
	s := g.match.Scores()
	x, y := float32(g.offX), float32(borderWidth)
	w := float32(g.fieldW)
	vector.FillRect(screen, x, y, w, 10, color.RGBA{R: 40, G: 40, B: 50, A: 255}, false)
	cw := w * float32(s.Cyan/100)
	pw := w * float32(s.Pink/100)
	vector.FillRect(screen, x, y, cw, 10, TeamCyan.Colour(), false)
	vector.FillRect(screen, x+w-pw, y, pw, 10, TeamPink.Colour(), false)

	left := g.match.TimeLeft()
	clock := fmt.Sprintf("%d:%02d", int(left)/60, int(left)%60)
	g.drawText(screen, fmt.Sprintf("CYAN %5.1f%%", s.Cyan), float64(x), float64(y+14), 1, TeamCyan.Colour())
	g.drawCentredAt(screen, clock, float64(x+w/2), float64(y+12), 1.5, color.White)
	pink := fmt.Sprintf("%5.1f%% PINK", s.Pink)
	g.drawText(screen, pink, float64(x+w)-g.textWidth(pink, 1), float64(y+14), 1, TeamPink.Colour())
}

func (g *Game) drawBottomBar(screen *ebiten.Image) {
	h := g.match.Human()
	x := float64(g.offX)
	y := float64(g.offY + g.fieldH + 10)
	if h == nil {
		g.drawText(screen, "SPECTATING: all combatants are AI", x, y, 1, color.White)
		return
	}
	g.drawBar(screen, x, y, 160, "HP", h.Health()/maxHealth, color.RGBA{R: 240, G: 80, B: 80, A: 255})
	g.drawBar(screen, x, y+18, 160, "INK", h.Ink()/maxInk, h.Team().Colour())
	g.drawBar(screen, x+220, y, 160, "SPECIAL", h.Special()/maxSpecial, color.RGBA{R: 255, G: 220, B: 80, A: 255})
	if h.WeaponKind() == WeaponCharger {
		g.drawBar(screen, x+220, y+18, 160, "CHARGE", h.ChargeLevel(), color.White)
	}

	bomb := "ready"
	if !h.BombReady() {
		bomb = "cooling"
	}
	info := fmt.Sprintf("%s  [1-3/wheel]   bomb %s   K/D %d/%d", h.Weapon().Name, bomb, h.Kills(), h.Deaths())
	if !h.Alive() {
		info = fmt.Sprintf("SPLATTED - respawn in %.1fs", h.RespawnIn())
	}
	g.drawText(screen, info, x+460, y, 1, color.White)
	g.drawText(screen, "WASD move  Space jump  Shift squid  Click fire  E bomb  Q special  R recall  Esc cursor", x+460, y+18, 1, color.RGBA{R: 150, G: 150, B: 170, A: 255})
}

func (g *Game) drawBar(screen *ebiten.Image, x, y, w float64, label string, frac float64, col color.Color) {
	frac = clamp(frac, 0, 1)
	lw := 64.0
	g.drawText(screen, label, x, y, 1, color.White)
	vector.FillRect(screen, float32(x+lw), float32(y+2), float32(w), 10, color.RGBA{R: 40, G: 40, B: 50, A: 255}, false)
	vector.FillRect(screen, float32(x+lw), float32(y+2), float32(w*frac), 10, col, false)
}

func (g *Game) drawTitle(screen *ebiten.Image) {
	g.dim(screen)
	g.drawCentred(screen, "INK ARENA", 5, color.White)
	cx := float64(g.offX + g.fieldW/2)
	cy := float64(g.offY + g.fieldH/2)
	g.drawCentredAt(screen, "Cover the most floor in your colour before time runs out.", cx, cy+60, 1.2, color.RGBA{R: 200, G: 200, B: 220, A: 255})
	g.drawCentredAt(screen, "Press Enter or click to start", cx, cy+90, 1.5, TeamCyan.Colour())
}

func (g *Game) drawResult(screen *ebiten.Image) {
	g.dim(screen)
	o := g.match.Outcome()
	headline, col := "DRAW", color.RGBA{R: 230, G: 230, B: 230, A: 255}
	if w := o.Outcome.Winner(); w.Valid() {
		headline, col = strings.ToUpper(w.String())+" WINS", w.Colour()
		if h := g.match.Human(); h != nil {
			if h.Team() == w {
				headline = "VICTORY"
			} else {
				headline = "DEFEAT"
			}
		}
	}
	g.drawCentred(screen, headline, 5, col)
	cx := float64(g.offX + g.fieldW/2)
	cy := float64(g.offY + g.fieldH/2)
	g.drawCentredAt(screen, fmt.Sprintf("cyan %.1f%%   pink %.1f%%", o.CyanPct, o.PinkPct), cx, cy+60, 1.5, color.White)
	g.drawCentredAt(screen, fmt.Sprintf("splats  cyan %d   pink %d", o.CyanKills, o.PinkKills), cx, cy+90, 1.2, color.White)
	g.drawCentredAt(screen, "Enter: rematch    C: copy report", cx, cy+130, 1.2, color.RGBA{R: 180, G: 180, B: 200, A: 255})
}

func (g *Game) dim(screen *ebiten.Image) {
	vector.FillRect(screen, float32(g.offX), float32(g.offY), float32(g.fieldW), float32(g.fieldH), color.RGBA{A: 170}, false)
}

func (g *Game) drawText(dst *ebiten.Image, s string, x, y, scale float64, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	op.LineSpacing = 16
	text.Draw(dst, s, g.face, op)
}

func (g *Game) textWidth(s string, scale float64) float64 {
	w, _ := text.Measure(s, g.face, 0)
	return w * scale
}

func (g *Game) drawCentredAt(dst *ebiten.Image, s string, cx, y, scale float64, col color.Color) {
	g.drawText(dst, s, cx-g.textWidth(s, scale)/2, y, scale, col)
}

// drawCentred writes s large in the middle of the arena.
func (g *Game) drawCentred(dst *ebiten.Image, s string, scale float64, col color.Color) {
	cx := float64(g.offX + g.fieldW/2)
	cy := float64(g.offY+g.fieldH/2) - 13*scale
	g.drawCentredAt(dst, s, cx, cy, scale, col)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
