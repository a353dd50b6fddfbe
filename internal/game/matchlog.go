package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 14
)

// LogEntry is a single line in the match log.
type LogEntry struct {
	Tick    int
	Label   string // acting combatant, e.g. "C0"
	Team    Team
	Message string
}

// MatchLog is a ring buffer of notable match events rendered beside the
// arena. Unlike the kill feed it keeps history for the whole match.
type MatchLog struct {
	entries []LogEntry
	head    int
	count   int
}

// NewMatchLog creates a match log with a fixed capacity.
func NewMatchLog() *MatchLog {
	return &MatchLog{entries: make([]LogEntry, logMaxEntries)}
}

// Add appends an entry, overwriting the oldest when full.
func (ml *MatchLog) Add(tick int, label string, team Team, msg string) {
	ml.entries[ml.head] = LogEntry{Tick: tick, Label: label, Team: team, Message: msg}
	ml.head = (ml.head + 1) % logMaxEntries
	if ml.count < logMaxEntries {
		ml.count++
	}
}

// Reset empties the log.
func (ml *MatchLog) Reset() {
	ml.head, ml.count = 0, 0
}

// Recent returns entries in chronological order (oldest first).
func (ml *MatchLog) Recent() []LogEntry {
	out := make([]LogEntry, ml.count)
	for i := 0; i < ml.count; i++ {
		out[i] = ml.entries[(ml.head-ml.count+i+logMaxEntries)%logMaxEntries]
	}
	return out
}

// describeEvent turns an event into a log line. Frequent low-value events
// (shots, landings, non-lethal hits) are skipped.
func describeEvent(ev Event, m *Match) (LogEntry, bool) {
	actor := m.combatantByID(ev.Actor)
	victim := m.combatantByID(ev.Victim)
	e := LogEntry{Tick: m.Tick(), Team: ev.Team}
	if actor != nil {
		e.Label = actor.Label()
	}
	switch ev.Kind {
	case EventHit:
		if !ev.Killed || victim == nil {
			return e, false
		}
		e.Message = fmt.Sprintf("splatted %s (%.0f)", victim.Label(), ev.Damage)
	case EventSpecial:
		e.Message = "special activated"
	case EventBomb:
		e.Message = "threw a bomb"
	case EventRespawn:
		e.Message = "respawned"
	case EventMatchEnd:
		e.Label = "--"
		e.Message = "time up"
	default:
		return e, false
	}
	return e, true
}

// Record logs every describable event.
func (ml *MatchLog) Record(events []Event, m *Match) {
	for _, ev := range events {
		if e, ok := describeEvent(ev, m); ok {
			ml.Add(e.Tick, e.Label, e.Team, e.Message)
		}
	}
}

// Draw renders the log panel on the right side of the screen.
func (ml *MatchLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 12, G: 12, B: 16, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 24, G: 24, B: 34, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "MATCH LOG", panelX+8, 0)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 60, G: 60, B: 90, A: 200}, false)

	entries := ml.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	const highlighted = 3

	y := 20
	for i, e := range entries {
		if i >= len(entries)-highlighted {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 34, G: 34, B: 48, A: 160}, false)
		}
		if e.Team.Valid() {
			vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, e.Team.Colour(), false)
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d [%s] %s", e.Tick, e.Label, e.Message), panelX+12, y-1)
		y += logLineHeight
	}
}
