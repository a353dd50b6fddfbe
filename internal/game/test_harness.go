package game

import (
	"fmt"
	"time"
)

// TestSim is a headless match harness for tests and batch runs. It drives a
// Match at a fixed tick rate with a simulated clock, so runs are fully
// deterministic for a given seed.
type TestSim struct {
	Match    *Match
	SimLog   *SimLog
	Reporter *MatchReporter

	dt     float64
	hz     int
	now    time.Time
	input  func(tick int, m *Match) HumanInput
	seed   int64
	dur    float64
	los    bool
	roster []Slot
	places map[int]placement

	tick int
}

type placement struct{ x, z, yaw float64 }

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // seed, tick rate, duration, verbosity
	simOptRoster                      // combatants, applied before the match is built
	simOptWorld                       // applied to the built match
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSimSeed sets the RNG seed for deterministic runs.
func WithSimSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.seed = seed }}
}

// WithTickRate sets the fixed number of ticks per simulated second.
func WithTickRate(hz int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		if hz > 0 {
			ts.hz = hz
			ts.dt = 1 / float64(hz)
		}
	}}
}

// WithSimDuration sets the match length in seconds.
func WithSimDuration(seconds float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.dur = seconds }}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.SimLog = NewSimLog(v) }}
}

// WithSimLineOfSight turns on wall-aware AI targeting.
func WithSimLineOfSight() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.los = true }}
}

// WithCombatant appends one roster slot. The first human slot is driven by
// the input script; without one every slot is AI.
func WithCombatant(team Team, weapon WeaponKind, human bool) SimOption {
	return SimOption{simOptRoster, func(ts *TestSim) {
		ts.roster = append(ts.roster, Slot{Team: team, Weapon: weapon, Human: human})
	}}
}

// WithPlacement moves combatant id to (x, z) facing yaw after the match is built.
func WithPlacement(id int, x, z, yaw float64) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) {
		ts.places[id] = placement{x: x, z: z, yaw: yaw}
	}}
}

// WithInput scripts the human controls per tick.
func WithInput(fn func(tick int, m *Match) HumanInput) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.input = fn }}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (seed, tick rate, duration, verbosity)
//  2. Roster (defaults to the full 4v4 all-AI lineup)
//  3. Match construction and placements
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		SimLog: NewSimLog(false),
		dt:     1.0 / 60,
		hz:     60,
		now:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		seed:   1,
		dur:    DefaultMatchDuration,
		places: map[int]placement{},
	}
	for _, kind := range []simOptionKind{simOptInfra, simOptRoster, simOptWorld} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(ts)
			}
		}
	}

	mopts := []MatchOption{
		WithSeed(ts.seed),
		WithDuration(ts.dur),
		WithClock(func() time.Time { return ts.now }),
	}
	if len(ts.roster) > 0 {
		mopts = append(mopts, WithRoster(ts.roster))
	} else {
		mopts = append(mopts, WithAllAI())
	}
	if ts.los {
		mopts = append(mopts, WithLineOfSight())
	}
	ts.Match = NewMatch(mopts...)
	ts.Reporter = NewMatchReporter(ts.hz*10, ts.SimLog.verbose)
	for id, p := range ts.places {
		if c := ts.Match.combatantByID(id); c != nil {
			c.Respawn(p.x, p.z, p.yaw)
		}
	}
	ts.Match.Start()
	return ts
}

// Dt returns the fixed tick length in seconds.
func (ts *TestSim) Dt() float64 { return ts.dt }

// Now returns the simulated wall clock.
func (ts *TestSim) Now() time.Time { return ts.now }

// Combatant returns the combatant with the given id, or nil.
func (ts *TestSim) Combatant(id int) *Combatant { return ts.Match.combatantByID(id) }

// RunTicks advances the simulation n ticks, logging events to SimLog.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.tick
		}
	}
	return -1
}

// RunToEnd runs until the match finishes or maxTicks pass.
func (ts *TestSim) RunToEnd(maxTicks int) bool {
	return ts.RunUntil(func(ts *TestSim) bool { return ts.Match.Finished() }, maxTicks) >= 0
}

func (ts *TestSim) runOneTick() {
	m := ts.Match
	ts.tick++
	tick := ts.tick

	prevStates := make([]AIState, len(m.combatants))
	for i := range m.combatants {
		if ai := m.controllers[i]; ai != nil {
			prevStates[i] = ai.State()
		}
	}

	var in HumanInput
	if ts.input != nil && m.human != nil {
		in = ts.input(tick, m)
	}
	ts.now = ts.now.Add(time.Duration(ts.dt * float64(time.Second)))
	events := m.Step(ts.dt, in)

	for _, e := range events {
		ts.logEvent(tick, e)
	}

	for i, c := range m.combatants {
		tStr := teamLabel(c.Team())
		if ai := m.controllers[i]; ai != nil && ai.State() != prevStates[i] {
			ts.SimLog.Add(tick, c.Label(), tStr, "ai", "state_change",
				fmt.Sprintf("%s → %s", prevStates[i], ai.State()), 0)
		}
		ts.SimLog.AddVerbose(tick, c.Label(), tStr, "move", "position",
			fmt.Sprintf("(%.1f,%.1f,%.1f)", c.Pos().X, c.Pos().Y, c.Pos().Z), 0)
		ts.SimLog.AddVerbose(tick, c.Label(), tStr, "stats", "ink",
			fmt.Sprintf("%.1f", c.Ink()), c.Ink())
	}
	if tick%ts.hz == 0 {
		ts.Reporter.Collect(m)
	}
	ts.SimLog.AddVerbose(tick, "--", "--", "match", "score",
		fmt.Sprintf("cyan=%.1f pink=%.1f", m.scores.Cyan, m.scores.Pink), m.scores.Cyan-m.scores.Pink)
}

func (ts *TestSim) logEvent(tick int, e Event) {
	label, tStr := "--", teamLabel(e.Team)
	if c := ts.Match.combatantByID(e.Actor); c != nil {
		label = c.Label()
	}
	switch e.Kind {
	case EventShot, EventMelee, EventBomb:
		ts.SimLog.Add(tick, label, tStr, "fire", e.Kind.String(), "", 0)
	case EventSpecial:
		ts.SimLog.Add(tick, label, tStr, "fire", "special", "", 0)
	case EventLanding, EventExplosion:
		ts.SimLog.Add(tick, label, tStr, "paint", e.Kind.String(),
			fmt.Sprintf("(%.1f,%.1f,%.1f)", e.Pos.X, e.Pos.Y, e.Pos.Z), 0)
	case EventHit:
		victim := "--"
		if v := ts.Match.combatantByID(e.Victim); v != nil {
			victim = v.Label()
		}
		ts.SimLog.Add(tick, label, tStr, "combat", "hit",
			fmt.Sprintf("%s for %.0f", victim, e.Damage), e.Damage)
		if e.Killed {
			ts.SimLog.Add(tick, label, tStr, "combat", "kill", victim, 0)
		}
	case EventRespawn:
		ts.SimLog.Add(tick, label, tStr, "life", "respawn",
			fmt.Sprintf("(%.0f,%.0f)", e.Pos.X, e.Pos.Z), 0)
	case EventMatchEnd:
		s := ts.Match.Scores()
		ts.SimLog.Add(tick, "--", "--", "match", "end",
			fmt.Sprintf("cyan=%.1f pink=%.1f", s.Cyan, s.Pink), s.Cyan-s.Pink)
	}
}

// teamLabel returns a short string for a team.
func teamLabel(t Team) string {
	if t.Valid() {
		return t.String()
	}
	return "--"
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.tick
}
