package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless test simulation.
type SimLogEntry struct {
	Tick     int
	Label    string  // combatant label e.g. "C0", "P5", or "--" for match events
	Team     string  // "cyan", "pink", or "--"
	Category string  // fire, paint, combat, life, ai, move, stats, match
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] P5   ai        state_change     roam → attack
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-4s %-9s %-16s %s",
		e.Tick, e.Label, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless simulation.
// Unlike the on-screen kill feed, SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position and
// resource entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, label, team, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Label:    label,
		Team:     team,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, label, team, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, label, team, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	n := 0
	for _, e := range sl.entries {
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			n++
		}
	}
	return n
}

// SumNum totals NumVal over entries matching category and key.
func (sl *SimLog) SumNum(category, key string) float64 {
	total := 0.0
	for _, e := range sl.Filter(category, key) {
		total += e.NumVal
	}
	return total
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the match state.
func (sl *SimLog) Summary(m *Match) string {
	var sb strings.Builder
	snap := m.Snapshot()
	fmt.Fprintf(&sb, "--- Summary at T=%04d (%.1fs left) ---\n", snap.Tick, snap.TimeLeft)
	fmt.Fprintf(&sb, "Turf: cyan=%.1f%%  pink=%.1f%%\n", snap.Scores.Cyan, snap.Scores.Pink)

	for _, team := range []Team{TeamCyan, TeamPink} {
		alive, kills, deaths := 0, 0, 0
		states := map[string]int{}
		for _, c := range snap.Combatants {
			if c.Team != team {
				continue
			}
			if c.Alive {
				alive++
			}
			kills += c.Kills
			deaths += c.Deaths
			if c.AIState != "" {
				states[c.AIState]++
			}
		}
		fmt.Fprintf(&sb, "%s: alive=%d kills=%d deaths=%d  ", team, alive, kills, deaths)
		for _, st := range []AIState{AIRoam, AIAttack, AIChargeAttack, AIRetreat} {
			if n := states[st.String()]; n > 0 {
				fmt.Fprintf(&sb, "%s=%d  ", st, n)
			}
		}
		sb.WriteByte('\n')
	}

	if len(snap.KillFeed) == 0 {
		sb.WriteString("Kill feed: empty\n")
	}
	for _, k := range snap.KillFeed {
		fmt.Fprintf(&sb, "Kill: %s → %s (%s)\n", k.AttackerLabel, k.VictimLabel, k.Cause)
	}
	return sb.String()
}
