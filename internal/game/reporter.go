package game

import (
	"fmt"
	"sort"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports (~10s at 60TPS).
const reportWindowTicks = 600

// --- Snapshot types ---

// TeamSample captures one team's state at one point in time.
type TeamSample struct {
	Turf     float64 // percent of paintable floor
	Alive    int
	Dead     int
	Squid    int
	Kills    int
	Deaths   int
	AvgInk   float64
	AvgHP    float64
	AIStates map[AIState]int
}

// CombatantReport captures a single combatant's state.
type CombatantReport struct {
	ID      int
	Label   string
	Team    Team
	Weapon  WeaponKind
	AIState string
	Health  float64
	Ink     float64
	Kills   int
	Deaths  int
	Pos     Vec3
}

// MatchReport is a full snapshot of the match at one tick.
type MatchReport struct {
	Tick     int
	TimeLeft float64
	Teams    [teamCount]TeamSample

	// Combatant detail, verbose mode only.
	Combatants []CombatantReport
}

// Team returns the sample for t.
func (r *MatchReport) Team(t Team) *TeamSample { return &r.Teams[t] }

// --- Reporter ---

// MatchReporter collects periodic reports from a match and can produce
// summaries over sliding time windows.
type MatchReporter struct {
	history     []MatchReport
	windowTicks int
	verbose     bool
}

// NewMatchReporter creates a reporter with the given window size.
func NewMatchReporter(windowTicks int, verbose bool) *MatchReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &MatchReporter{
		windowTicks: windowTicks,
		verbose:     verbose,
	}
}

// Collect gathers a snapshot from the current match state.
// Call this periodically (e.g. every 60 ticks / 1s).
func (r *MatchReporter) Collect(m *Match) {
	report := MatchReport{
		Tick:     m.Tick(),
		TimeLeft: m.TimeLeft(),
	}
	scores := m.Scores()
	for _, t := range []Team{TeamCyan, TeamPink} {
		report.Teams[t] = TeamSample{Turf: scores.Of(t), AIStates: make(map[AIState]int)}
	}
	for i, c := range m.Combatants() {
		r.tallyCombatant(c, m.Controller(i), &report)
	}
	for _, t := range []Team{TeamCyan, TeamPink} {
		ts := &report.Teams[t]
		if n := ts.Alive; n > 0 {
			ts.AvgInk /= float64(n)
			ts.AvgHP /= float64(n)
		}
	}
	r.history = append(r.history, report)

	// Trim history older than 10× window to bound memory.
	maxHistory := r.windowTicks * 10
	if len(r.history) > 0 && report.Tick-r.history[0].Tick > maxHistory {
		cutoff := report.Tick - maxHistory
		i := 0
		for i < len(r.history) && r.history[i].Tick < cutoff {
			i++
		}
		r.history = r.history[i:]
	}
}

func (r *MatchReporter) tallyCombatant(c *Combatant, ai *AIController, report *MatchReport) {
	ts := &report.Teams[c.Team()]
	ts.Kills += c.Kills()
	ts.Deaths += c.Deaths()
	if !c.Alive() {
		ts.Dead++
	} else {
		ts.Alive++
		ts.AvgInk += c.Ink()
		ts.AvgHP += c.Health()
		if c.IsSquid() {
			ts.Squid++
		}
	}
	state := ""
	if ai != nil {
		ts.AIStates[ai.State()]++
		state = ai.State().String()
	}

	if r.verbose {
		report.Combatants = append(report.Combatants, CombatantReport{
			ID:      c.ID(),
			Label:   c.Label(),
			Team:    c.Team(),
			Weapon:  c.WeaponKind(),
			AIState: state,
			Health:  c.Health(),
			Ink:     c.Ink(),
			Kills:   c.Kills(),
			Deaths:  c.Deaths(),
			Pos:     c.Pos(),
		})
	}
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *MatchReporter) Latest() *MatchReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected reports.
func (r *MatchReporter) History() []MatchReport {
	return r.history
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	Teams [teamCount]TeamWindow
}

// TeamWindow is one team's aggregate over a window.
type TeamWindow struct {
	// AI state distribution as percentages (0-100).
	StatePct map[AIState]float64

	AvgTurf  float64
	AvgAlive float64
	AvgSquid float64
	AvgInk   float64

	// Turf change from the first to the last sample in the window.
	TurfDelta float64

	// Cumulative at the end of the window.
	Kills, Deaths int
}

// WindowSummary returns an aggregated summary over the recent time window.
func (r *MatchReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []MatchReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}
	if len(window) == 0 {
		return nil
	}

	n := float64(len(window))
	newest, oldest := window[0], window[len(window)-1]
	wr := &WindowReport{
		FromTick:    oldest.Tick,
		ToTick:      newest.Tick,
		SampleCount: len(window),
	}
	for _, t := range []Team{TeamCyan, TeamPink} {
		tw := &wr.Teams[t]
		tw.StatePct = make(map[AIState]float64)
		stateTotal := 0.0
		for _, rpt := range window {
			ts := rpt.Teams[t]
			tw.AvgTurf += ts.Turf
			tw.AvgAlive += float64(ts.Alive)
			tw.AvgSquid += float64(ts.Squid)
			tw.AvgInk += ts.AvgInk
			for s, c := range ts.AIStates {
				tw.StatePct[s] += float64(c)
				stateTotal += float64(c)
			}
		}
		if stateTotal > 0 {
			for s, c := range tw.StatePct {
				tw.StatePct[s] = c / stateTotal * 100
			}
		}
		tw.AvgTurf /= n
		tw.AvgAlive /= n
		tw.AvgSquid /= n
		tw.AvgInk /= n
		tw.TurfDelta = newest.Teams[t].Turf - oldest.Teams[t].Turf
		tw.Kills = newest.Teams[t].Kills
		tw.Deaths = newest.Teams[t].Deaths
	}
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Match Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)

	allStates := []AIState{AIRoam, AIAttack, AIChargeAttack, AIRetreat}
	for _, t := range []Team{TeamCyan, TeamPink} {
		tw := wr.Teams[t]
		fmt.Fprintf(&sb, "\n--- %s AI State Distribution ---\n", strings.ToUpper(t.String()))
		for _, s := range allStates {
			if pct, ok := tw.StatePct[s]; ok && pct > 0.5 {
				fmt.Fprintf(&sb, "  %-14s %5.1f%%\n", s, pct)
			}
		}
	}

	sb.WriteString("\n--- Turf ---\n")
	for _, t := range []Team{TeamCyan, TeamPink} {
		tw := wr.Teams[t]
		fmt.Fprintf(&sb, "  %-5s avg=%5.1f%%  delta=%+.1f (%s)\n",
			t.String()+":", tw.AvgTurf, tw.TurfDelta, momentumLabel(tw.TurfDelta))
	}

	sb.WriteString("\n--- Combat ---\n")
	for _, t := range []Team{TeamCyan, TeamPink} {
		tw := wr.Teams[t]
		fmt.Fprintf(&sb, "  %-5s alive=%.1f  squid=%.1f  ink=%.0f  kills=%d  deaths=%d\n",
			t.String()+":", tw.AvgAlive, tw.AvgSquid, tw.AvgInk, tw.Kills, tw.Deaths)
	}
	return sb.String()
}

func momentumLabel(delta float64) string {
	switch {
	case delta > 5:
		return "surging"
	case delta > 1:
		return "gaining"
	case delta > -1:
		return "holding"
	case delta > -5:
		return "slipping"
	default:
		return "collapsing"
	}
}

// FormatLatest returns a concise snapshot of the most recent collected report.
func (r *MatchReporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Snapshot T=%d (%.0fs left) ---\n", rpt.Tick, rpt.TimeLeft)
	for _, t := range []Team{TeamCyan, TeamPink} {
		ts := rpt.Teams[t]
		fmt.Fprintf(&sb, "%-5s turf=%.1f%% alive=%d dead=%d squid=%d kills=%d deaths=%d\n",
			t.String()+":", ts.Turf, ts.Alive, ts.Dead, ts.Squid, ts.Kills, ts.Deaths)
		states := make([]AIState, 0, len(ts.AIStates))
		for s := range ts.AIStates {
			states = append(states, s)
		}
		sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
		sb.WriteString("       ai: ")
		for _, s := range states {
			fmt.Fprintf(&sb, "%s=%d ", s, ts.AIStates[s])
		}
		sb.WriteByte('\n')
	}
	for _, c := range rpt.Combatants {
		fmt.Fprintf(&sb, "  %-4s %-5s %-8s %-13s hp=%3.0f ink=%3.0f k/d=%d/%d\n",
			c.Label, c.Team, c.Weapon, c.AIState, c.Health, c.Ink, c.Kills, c.Deaths)
	}
	return sb.String()
}

// StateProportions computes the proportion of each AI state across all live
// AI-driven combatants at the current moment.
func StateProportions(m *Match) map[AIState]float64 {
	counts := make(map[AIState]int)
	total := 0
	for i, c := range m.Combatants() {
		ai := m.Controller(i)
		if ai == nil || !c.Alive() {
			continue
		}
		counts[ai.State()]++
		total++
	}
	props := make(map[AIState]float64, len(counts))
	if total > 0 {
		for s, c := range counts {
			props[s] = float64(c) / float64(total)
		}
	}
	return props
}
