package game

import (
	"testing"
)

// --- Invariant helpers ---

// checkCombatantBounds verifies gauges, charge and position limits for every
// combatant at the current tick.
func checkCombatantBounds(t *testing.T, ts *TestSim) {
	t.Helper()
	a := ts.Match.Arena()
	for _, c := range ts.Match.Combatants() {
		tick := ts.CurrentTick()
		if c.Health() < 0 || c.Health() > maxHealth {
			t.Fatalf("T=%d %s health=%v", tick, c.Label(), c.Health())
		}
		if c.Ink() < 0 || c.Ink() > maxInk {
			t.Fatalf("T=%d %s ink=%v", tick, c.Label(), c.Ink())
		}
		if c.Special() < 0 || c.Special() > maxSpecial {
			t.Fatalf("T=%d %s special=%v", tick, c.Label(), c.Special())
		}
		if l := c.ChargeLevel(); l < 0 || l > 1 {
			t.Fatalf("T=%d %s charge=%v", tick, c.Label(), l)
		}
		p := c.Pos()
		if p.X < edgeMargin || p.X > a.Width()-edgeMargin || p.Z < edgeMargin || p.Z > a.Height()-edgeMargin {
			t.Fatalf("T=%d %s outside arena at %+v", tick, c.Label(), p)
		}
		if !c.Alive() && (c.IsSquid() || c.Charging() || c.Health() != 0) {
			t.Fatalf("T=%d %s dead but squid=%v charging=%v health=%v",
				tick, c.Label(), c.IsSquid(), c.Charging(), c.Health())
		}
	}
}

// checkScoresBounded verifies each team's turf share and their sum.
func checkScoresBounded(t *testing.T, ts *TestSim) {
	t.Helper()
	s := ts.Match.Scores()
	if s.Cyan < 0 || s.Pink < 0 || s.Cyan+s.Pink > 100+1e-9 {
		t.Fatalf("T=%d scores out of range: %+v", ts.CurrentTick(), s)
	}
}

// checkWallsUnpainted verifies no floor-buffer pixel over a wall tile has an owner.
func checkWallsUnpainted(t *testing.T, a *Arena) {
	t.Helper()
	pw, ph := a.PaintSize()
	own := a.Ownership()
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if own[y*pw+x] != TeamNone && a.Grid().At(x/paintPerTile, y/paintPerTile) == TileWall {
				t.Fatalf("wall pixel (%d,%d) owned by %s", x, y, own[y*pw+x])
			}
		}
	}
}

// --- Invariant tests ---

func TestInvariant_BoundsHoldAllMatch(t *testing.T) {
	ts := NewTestSim(WithSimSeed(21), WithSimDuration(45))
	for !ts.Match.Finished() {
		ts.RunTicks(1)
		checkCombatantBounds(t, ts)
		checkScoresBounded(t, ts)
		if ts.CurrentTick() > 50*60 {
			t.Fatal("match did not finish")
		}
	}
	checkWallsUnpainted(t, ts.Match.Arena())
}

func TestInvariant_KillsEqualDeaths(t *testing.T) {
	ts := NewTestSim(WithSimSeed(22), WithSimDuration(60))
	ts.RunToEnd(61 * 60)
	kills, deaths := 0, 0
	for _, c := range ts.Match.Combatants() {
		kills += c.Kills()
		deaths += c.Deaths()
	}
	if kills != deaths {
		t.Fatalf("kills=%d deaths=%d, every death should credit a kill", kills, deaths)
	}
	if logged := ts.SimLog.CountCategory("combat", "kill"); logged != kills {
		t.Fatalf("logged kills=%d, counters say %d", logged, kills)
	}
}

func TestInvariant_NoFriendlyFire(t *testing.T) {
	ts := NewTestSim(WithSimSeed(23), WithSimDuration(40))
	ts.RunToEnd(41 * 60)
	for _, e := range ts.SimLog.Filter("combat", "hit") {
		victim := e.Value[:2]
		if victim[0] == e.Label[0] {
			t.Fatalf("friendly hit logged: %s", e.String())
		}
	}
}

func TestInvariant_DeadStayDeadUntilRespawn(t *testing.T) {
	ts := NewTestSim(WithSimSeed(24))
	victim := ts.Combatant(5)
	victim.TakeDamage(500)

	// 2.9 seconds is inside the respawn delay.
	ts.RunTicks(174)
	if victim.Alive() {
		t.Fatalf("%s revived early", victim.Label())
	}
	ts.RunTicks(10)
	if !victim.Alive() {
		t.Fatalf("%s still dead after the respawn delay", victim.Label())
	}
	if !ts.SimLog.HasEntry("life", "respawn", "") {
		t.Fatal("respawn should be logged")
	}
}
