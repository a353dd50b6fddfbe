// Package termview renders an all-AI match in a terminal.
package termview

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Ink-Arena/internal/game"
)

// Cell is one rendered terminal cell.
type Cell struct {
	Rune   rune
	Fg, Bg tcell.Color
}

var (
	neutralBg = tcell.NewRGBColor(40, 42, 50)
	wallBg    = tcell.NewRGBColor(12, 12, 16)
	cyanBg    = tcell.NewRGBColor(10, 90, 100)
	pinkBg    = tcell.NewRGBColor(110, 16, 58)
	cyanFg    = tcell.NewRGBColor(38, 217, 230)
	pinkFg    = tcell.NewRGBColor(245, 36, 123)
)

func teamFg(t game.Team) tcell.Color {
	switch t {
	case game.TeamCyan:
		return cyanFg
	case game.TeamPink:
		return pinkFg
	default:
		return tcell.ColorWhite
	}
}

// Layout maps the arena onto a terminal area, keeping the world's aspect
// with cells twice as tall as they are wide.
type Layout struct {
	Cols, Rows  int
	unitsPerCol float64
	unitsPerRow float64
}

// Fit returns the largest layout for arena a inside w×h cells.
func Fit(a *game.Arena, w, h int) Layout {
	if w < 1 || h < 1 {
		return Layout{}
	}
	upc := a.Width() / float64(w)
	if alt := a.Height() / float64(h) / 2; alt > upc {
		upc = alt
	}
	l := Layout{unitsPerCol: upc, unitsPerRow: 2 * upc}
	l.Cols = min(w, int(a.Width()/l.unitsPerCol))
	l.Rows = min(h, int(a.Height()/l.unitsPerRow))
	return l
}

// CellOf returns the cell containing world (x, z).
func (l Layout) CellOf(x, z float64) (int, int) {
	return int(x / l.unitsPerCol), int(z / l.unitsPerRow)
}

// Grid renders m into l.Rows rows of l.Cols cells. Each cell shows the
// majority content of the paint pixels it covers, then combatants and
// projectiles are drawn on top.
func Grid(m *game.Match, l Layout) [][]Cell {
	a := m.Arena()
	pw, ph := a.PaintSize()
	own := a.Ownership()
	sx := float64(pw) / a.Width()
	sy := float64(ph) / a.Height()

	grid := make([][]Cell, l.Rows)
	for r := range grid {
		grid[r] = make([]Cell, l.Cols)
		for c := range grid[r] {
			x0, x1 := int(float64(c)*l.unitsPerCol*sx), int(float64(c+1)*l.unitsPerCol*sx)
			y0, y1 := int(float64(r)*l.unitsPerRow*sy), int(float64(r+1)*l.unitsPerRow*sy)
			var counts [3]int
			walls, total := 0, 0
			for y := y0; y < min(y1, ph); y++ {
				for x := x0; x < min(x1, pw); x++ {
					total++
					wx, wz := (float64(x)+0.5)/sx, (float64(y)+0.5)/sy
					if a.TileAt(wx, wz) == game.TileWall {
						walls++
						continue
					}
					counts[own[y*pw+x]]++
				}
			}
			grid[r][c] = cellFor(counts, walls, total)
		}
	}

	for _, p := range m.Projectiles() {
		col, row := l.CellOf(p.Pos.X, p.Pos.Z)
		if row >= 0 && row < l.Rows && col >= 0 && col < l.Cols {
			grid[row][col].Rune = '·'
			grid[row][col].Fg = teamFg(p.Team)
		}
	}
	for _, cb := range m.Combatants() {
		col, row := l.CellOf(cb.Pos().X, cb.Pos().Z)
		if row < 0 || row >= l.Rows || col < 0 || col >= l.Cols {
			continue
		}
		grid[row][col].Rune = glyph(cb)
		grid[row][col].Fg = teamFg(cb.Team())
	}
	return grid
}

func cellFor(counts [3]int, walls, total int) Cell {
	if total == 0 || walls*2 >= total {
		return Cell{Rune: ' ', Bg: wallBg, Fg: tcell.ColorWhite}
	}
	cell := Cell{Rune: ' ', Bg: neutralBg, Fg: tcell.ColorWhite}
	best := counts[game.TeamNone]
	if counts[game.TeamCyan] > best {
		cell.Bg, best = cyanBg, counts[game.TeamCyan]
	}
	if counts[game.TeamPink] > best {
		cell.Bg = pinkBg
	}
	return cell
}

func glyph(c *game.Combatant) rune {
	switch {
	case !c.Alive():
		return 'x'
	case c.IsSquid():
		return '~'
	}
	switch c.WeaponKind() {
	case game.WeaponRoller:
		return 'R'
	case game.WeaponCharger:
		return 'C'
	default:
		return 'S'
	}
}

// StatusLine is the one-line score and timer readout.
func StatusLine(m *game.Match) string {
	s := m.Scores()
	left := m.TimeLeft()
	line := fmt.Sprintf(" CYAN %5.1f%%   %d:%02d   PINK %5.1f%%   q quit", s.Cyan, int(left)/60, int(left)%60, s.Pink)
	if m.Finished() {
		o := m.Outcome()
		line = fmt.Sprintf(" FINAL  cyan %.1f%%  pink %.1f%%  %s   any key exits", o.CyanPct, o.PinkPct, o.Outcome)
	}
	return line
}

// Draw paints the whole frame onto s.
func Draw(s tcell.Screen, m *game.Match) {
	w, h := s.Size()
	s.Clear()
	l := Fit(m.Arena(), w, h-1)
	for r, row := range Grid(m, l) {
		for c, cell := range row {
			s.SetContent(c, r, cell.Rune, nil, tcell.StyleDefault.Foreground(cell.Fg).Background(cell.Bg))
		}
	}
	status := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, ch := range []rune(StatusLine(m)) {
		if i >= w {
			break
		}
		s.SetContent(i, h-1, ch, nil, status)
	}
	s.Show()
}

// Run plays m to the end at tps ticks per second, redrawing every tick.
// It returns when the match is over and a key is pressed, on q/Esc/Ctrl-C,
// or when ctx is done.
func Run(ctx context.Context, s tcell.Screen, m *game.Match, tps int) error {
	if tps <= 0 {
		tps = 60
	}
	if !m.Running() && !m.Finished() {
		m.Start()
	}
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	dt := 1.0 / float64(tps)
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if m.Finished() || quitKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				s.Sync()
			}
		case <-ticker.C:
			if !m.Finished() {
				m.Step(dt, game.HumanInput{})
			}
			Draw(s, m)
		}
	}
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
