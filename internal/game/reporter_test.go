package game

import (
	"strings"
	"testing"
)

func TestMatchReporter_CollectsPerTeam(t *testing.T) {
	ts := NewTestSim(WithSimSeed(12), WithSimDuration(60))
	ts.RunTicks(20 * 60)

	hist := ts.Reporter.History()
	if len(hist) != 20 {
		t.Fatalf("samples=%d after 20s, want one per second", len(hist))
	}
	rpt := ts.Reporter.Latest()
	for _, team := range []Team{TeamCyan, TeamPink} {
		s := rpt.Team(team)
		if s.Alive+s.Dead != 4 {
			t.Fatalf("%s alive=%d dead=%d, want 4 total", team, s.Alive, s.Dead)
		}
		states := 0
		for _, n := range s.AIStates {
			states += n
		}
		if states != 4 {
			t.Fatalf("%s AI states cover %d combatants, want 4", team, states)
		}
		if s.Turf != ts.Match.Scores().Of(team) {
			t.Fatalf("%s turf=%v, match says %v", team, s.Turf, ts.Match.Scores().Of(team))
		}
	}
}

func TestMatchReporter_WindowSummary(t *testing.T) {
	r := NewMatchReporter(0, false)
	if r.WindowSummary() != nil || r.Latest() != nil {
		t.Fatal("empty reporter should have no summary")
	}
	if got := r.WindowSummary().Format(); !strings.Contains(got, "No data") {
		t.Fatalf("nil window format=%q", got)
	}

	ts := NewTestSim(WithSimSeed(13), WithSimDuration(60))
	ts.RunTicks(15 * 60)
	wr := ts.Reporter.WindowSummary()
	if wr == nil {
		t.Fatal("expected a window summary")
	}
	if wr.SampleCount != 11 || wr.ToTick != 15*60 || wr.FromTick != 5*60 {
		t.Fatalf("window=%d..%d n=%d, want 300..900 n=11", wr.FromTick, wr.ToTick, wr.SampleCount)
	}
	for _, team := range []Team{TeamCyan, TeamPink} {
		total := 0.0
		for _, pct := range wr.Teams[team].StatePct {
			total += pct
		}
		if total < 99.9 || total > 100.1 {
			t.Fatalf("%s state percentages sum to %v", team, total)
		}
	}
	out := wr.Format()
	for _, want := range []string{"Match Report", "CYAN", "PINK", "Turf", "Combat"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestMatchReporter_VerboseDetail(t *testing.T) {
	ts := NewTestSim(WithSimSeed(14), WithVerbose(true))
	ts.RunTicks(60)
	rpt := ts.Reporter.Latest()
	if rpt == nil || len(rpt.Combatants) != 8 {
		t.Fatalf("verbose report should list every combatant, got %v", rpt)
	}
	if !strings.Contains(ts.Reporter.FormatLatest(), rpt.Combatants[0].Label) {
		t.Fatal("FormatLatest should include combatant rows in verbose mode")
	}
}

func TestStateProportions(t *testing.T) {
	m := NewMatch(WithSeed(1), WithAllAI())
	props := StateProportions(m)
	if props[AIRoam] != 1 {
		t.Fatalf("fresh match proportions=%v, want all roam", props)
	}
}
