package game

import (
	"fmt"
	"math"
	"strings"
)

// phase is the front end's screen state.
type phase uint8

const (
	phaseTitle phase = iota
	phaseCountdown
	phasePlaying
	phaseResult
)

func (p phase) String() string {
	switch p {
	case phaseTitle:
		return "title"
	case phaseCountdown:
		return "countdown"
	case phasePlaying:
		return "playing"
	case phaseResult:
		return "result"
	default:
		return "unknown"
	}
}

const countdownSeconds = 3

// countdown is the 3-2-1 before a match.
type countdown struct {
	left float64
}

func newCountdown() countdown { return countdown{left: countdownSeconds} }

// advance runs the count down by dt. beep is set when a new whole second is
// shown; done when the count reaches zero.
func (c *countdown) advance(dt float64) (beep, done bool) {
	before := math.Ceil(c.left)
	c.left -= dt
	if c.left <= 0 {
		c.left = 0
		return false, true
	}
	return math.Ceil(c.left) < before, false
}

// shown is the number on screen.
func (c countdown) shown() int { return int(math.Ceil(c.left)) }

// matchReportText is the plain-text result copied to the clipboard.
func matchReportText(m *Match, r *MatchReporter) string {
	var sb strings.Builder
	o := m.Outcome()
	fmt.Fprintf(&sb, "Ink Arena match %s\n", m.ID)
	fmt.Fprintf(&sb, "Result: %s (%s)\n", o.Outcome, o.Description)
	fmt.Fprintf(&sb, "Turf: cyan %.1f%%  pink %.1f%%\n", o.CyanPct, o.PinkPct)
	fmt.Fprintf(&sb, "Splats: cyan %d  pink %d\n\n", o.CyanKills, o.PinkKills)
	for _, c := range m.Combatants() {
		who := "bot"
		if c.IsHuman() {
			who = "you"
		}
		fmt.Fprintf(&sb, "  %-4s %-5s %-8s %-3s k/d=%d/%d\n", c.Label(), c.Team(), c.WeaponKind(), who, c.Kills(), c.Deaths())
	}
	if r != nil {
		sb.WriteByte('\n')
		sb.WriteString(r.WindowSummary().Format())
	}
	return sb.String()
}
