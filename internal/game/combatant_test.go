package game

import (
	"math"
	"math/rand"
	"testing"
)

// flatArena builds an all-floor arena of cols×rows tiles.
func flatArena(t *testing.T, cols, rows int) *Arena {
	t.Helper()
	layout := make([][]uint8, rows)
	for r := range layout {
		layout[r] = make([]uint8, cols)
	}
	a, err := NewArena(layout)
	if err != nil {
		t.Fatalf("arena: %v", err)
	}
	return a
}

func idle(c *Combatant, a *Arena, dt float64, fire, squid bool) FireResult {
	return c.Update(dt, a, MoveIntent{}, LookIntent{}, fire, squid)
}

func TestCombatant_ShooterCadence(t *testing.T) {
	a := flatArena(t, 10, 10)
	c := NewCombatant(0, TeamCyan, true, WeaponShooter, 20, 20, 0)
	shots := 0
	for i := 0; i < 120; i++ {
		if idle(c, a, 1.0/120, true, false).Shot {
			shots++
		}
	}
	if shots != 11 {
		t.Fatalf("shots=%d in one second, want 11", shots)
	}
	if want := 100 - 11*Weapons[WeaponShooter].InkCost; math.Abs(c.Ink()-want) > 1e-9 {
		t.Fatalf("ink=%v, want %v (no regen while firing)", c.Ink(), want)
	}
}

func TestCombatant_ShooterNeedsInk(t *testing.T) {
	a := flatArena(t, 10, 10)
	c := NewCombatant(0, TeamCyan, true, WeaponShooter, 20, 20, 0)
	c.ink = 1
	if idle(c, a, 1.0/60, true, false).Shot {
		t.Fatal("fired without enough ink")
	}
	if c.Ink() != 1 {
		t.Fatalf("ink changed to %v on a refused shot", c.Ink())
	}
}

func TestCombatant_RollerSwingIsMelee(t *testing.T) {
	a := flatArena(t, 10, 10)
	c := NewCombatant(0, TeamCyan, true, WeaponRoller, 20, 20, 0)
	res := idle(c, a, 1.0/60, true, false)
	if !res.Shot || !res.Melee {
		t.Fatalf("roller swing=%+v, want shot and melee", res)
	}
}

func TestCombatant_ChargerRelease(t *testing.T) {
	a := flatArena(t, 10, 10)
	c := NewCombatant(0, TeamCyan, true, WeaponCharger, 20, 20, 0)
	const dt = 1.0 / 60
	for i := 0; i < 30; i++ {
		if idle(c, a, dt, true, false).Shot {
			t.Fatalf("tick %d: charger fired while held", i)
		}
	}
	if !c.Charging() || math.Abs(c.ChargeLevel()-0.5) > 1e-9 {
		t.Fatalf("charging=%v level=%v, want true 0.5", c.Charging(), c.ChargeLevel())
	}
	res := idle(c, a, dt, false, false)
	if !res.Shot || math.Abs(res.Charge-0.5) > 1e-9 {
		t.Fatalf("release=%+v, want shot at 0.5", res)
	}
	if c.Charging() || c.ChargeLevel() != 0 {
		t.Fatal("charge should reset after release")
	}
	cost := Weapons[WeaponCharger].InkCost * 0.5 * chargeInkFactor
	if math.Abs(c.Ink()-(100-cost)) > 1e-9 {
		t.Fatalf("ink=%v, want %v", c.Ink(), 100-cost)
	}
}

func TestCombatant_ChargerWeakReleaseFizzles(t *testing.T) {
	a := flatArena(t, 10, 10)
	c := NewCombatant(0, TeamCyan, true, WeaponCharger, 20, 20, 0)
	for i := 0; i < 5; i++ {
		idle(c, a, 1.0/60, true, false)
	}
	if res := idle(c, a, 1.0/60, false, false); res.Shot {
		t.Fatalf("release at %v fired", res.Charge)
	}
	if c.ChargeLevel() != 0 || c.Ink() != 100 {
		t.Fatalf("level=%v ink=%v after fizzle", c.ChargeLevel(), c.Ink())
	}
}

func TestCombatant_ChargerHoldsChargeInSquidForm(t *testing.T) {
	a := flatArena(t, 10, 10)
	a.PaintAt(20, 20, TeamCyan, 3)
	c := NewCombatant(0, TeamCyan, true, WeaponCharger, 20, 20, 0)
	const dt = 1.0 / 60
	for i := 0; i < 30; i++ {
		idle(c, a, dt, true, false)
	}
	for i := 0; i < 10; i++ {
		if res := idle(c, a, dt, true, true); res.Shot {
			t.Fatalf("tick %d: charger fired in squid form with fire held", i)
		}
	}
	if !c.IsSquid() || !c.Charging() || math.Abs(c.ChargeLevel()-0.5) > 1e-9 {
		t.Fatalf("squid=%v charging=%v level=%v, want frozen 0.5 charge", c.IsSquid(), c.Charging(), c.ChargeLevel())
	}
	res := idle(c, a, dt, false, false)
	if !res.Shot || math.Abs(res.Charge-0.5) > 1e-9 {
		t.Fatalf("release=%+v, want shot at 0.5", res)
	}
}

func TestCombatant_ChargeLevelBounded(t *testing.T) {
	a := flatArena(t, 10, 10)
	c := NewCombatant(0, TeamCyan, true, WeaponCharger, 20, 20, 0)
	rng := rand.New(rand.NewSource(11)) // #nosec G404 -- deterministic test data
	prev := 0.0
	for i := 0; i < 500; i++ {
		hold := rng.Float64() < 0.8
		idle(c, a, rng.Float64()*0.05, hold, false)
		lvl := c.ChargeLevel()
		if lvl < 0 || lvl > 1 {
			t.Fatalf("tick %d: charge level %v out of [0,1]", i, lvl)
		}
		if hold && lvl < prev {
			t.Fatalf("tick %d: charge fell from %v to %v while held", i, prev, lvl)
		}
		prev = lvl
	}
}

func TestCombatant_TakeDamage(t *testing.T) {
	c := NewCombatant(0, TeamPink, false, WeaponShooter, 20, 20, 0)
	if c.TakeDamage(30) {
		t.Fatal("30 damage should not kill")
	}
	if c.Health() != 70 || c.DamageFlash() != damageFlashTime {
		t.Fatalf("health=%v flash=%v", c.Health(), c.DamageFlash())
	}
	if !c.TakeDamage(500) {
		t.Fatal("overkill should report a kill")
	}
	if c.Alive() || c.Health() != 0 || c.Deaths() != 1 || c.RespawnIn() != respawnDelay {
		t.Fatalf("alive=%v health=%v deaths=%d respawn=%v", c.Alive(), c.Health(), c.Deaths(), c.RespawnIn())
	}
	if c.TakeDamage(10) {
		t.Fatal("damage to the dead must not kill again")
	}
	if c.Deaths() != 1 || c.Health() != 0 {
		t.Fatalf("dead combatant changed: deaths=%d health=%v", c.Deaths(), c.Health())
	}
}

func TestCombatant_HealthNeverRisesWithoutSquid(t *testing.T) {
	a := flatArena(t, 10, 10)
	c := NewCombatant(0, TeamCyan, false, WeaponShooter, 20, 20, 0)
	c.TakeDamage(40)
	for i := 0; i < 120; i++ {
		idle(c, a, 1.0/60, false, false)
		if c.Health() != 60 {
			t.Fatalf("tick %d: health=%v outside squid form", i, c.Health())
		}
	}
}

func TestCombatant_RespawnAfterDelay(t *testing.T) {
	a := flatArena(t, 10, 10)
	c := NewCombatant(0, TeamCyan, false, WeaponShooter, 20, 20, 0)
	c.TakeDamage(200)
	for i := 0; i < 29; i++ {
		if res := idle(c, a, 0.1, true, false); res.Shot {
			t.Fatal("dead combatant fired")
		}
	}
	if c.Alive() {
		t.Fatal("revived before the respawn delay")
	}
	idle(c, a, 0.1, false, false)
	idle(c, a, 0.1, false, false)
	if !c.Alive() || c.Health() != maxHealth || c.Ink() != maxInk {
		t.Fatalf("alive=%v health=%v ink=%v after delay", c.Alive(), c.Health(), c.Ink())
	}
	if c.Deaths() != 1 {
		t.Fatalf("deaths=%d, want 1 kept across respawn", c.Deaths())
	}
}

func TestCombatant_SquidNeedsOwnInk(t *testing.T) {
	a := flatArena(t, 10, 10)
	c := NewCombatant(0, TeamCyan, true, WeaponShooter, 20, 20, 0)
	idle(c, a, 1.0/60, false, true)
	if c.IsSquid() {
		t.Fatal("squid on neutral ground")
	}
	a.PaintAt(20, 20, TeamPink, 2)
	idle(c, a, 1.0/60, false, true)
	if c.IsSquid() {
		t.Fatal("squid on enemy ink")
	}
	a.PaintAt(20, 20, TeamCyan, 2)
	idle(c, a, 1.0/60, false, true)
	if !c.IsSquid() {
		t.Fatal("expected squid on own ink")
	}
	if idle(c, a, 1.0/60, true, true).Shot {
		t.Fatal("fired in squid form")
	}
}

func TestCombatant_SquidDropsOffInk(t *testing.T) {
	a := flatArena(t, 10, 10)
	c := NewCombatant(0, TeamCyan, true, WeaponShooter, 20, 20, 0)
	a.PaintAt(20, 20, TeamCyan, 0.5)
	c.Update(0.1, a, MoveIntent{Z: 1}, LookIntent{}, false, true)
	if c.IsSquid() {
		t.Fatalf("still squid at %+v after leaving own ink", c.Pos())
	}
}

func TestCombatant_SquidRegen(t *testing.T) {
	a := flatArena(t, 10, 10)
	a.PaintAt(20, 20, TeamCyan, 4)
	c := NewCombatant(0, TeamCyan, true, WeaponShooter, 20, 20, 0)
	c.TakeDamage(50)
	c.ink = 10
	for i := 0; i < 60; i++ {
		idle(c, a, 1.0/60, false, true)
	}
	if math.Abs(c.Ink()-(10+squidInkRegen)) > 1e-6 {
		t.Fatalf("ink=%v after 1s squid, want %v", c.Ink(), 10+squidInkRegen)
	}
	if math.Abs(c.Health()-(50+squidHealthRegen)) > 1e-6 {
		t.Fatalf("health=%v after 1s squid, want %v", c.Health(), 50+squidHealthRegen)
	}
}

func TestCombatant_JumpAndLand(t *testing.T) {
	a := flatArena(t, 10, 10)
	c := NewCombatant(0, TeamCyan, true, WeaponShooter, 20, 20, 0)
	c.Update(1.0/60, a, MoveIntent{Jump: true}, LookIntent{}, false, false)
	if c.Grounded() || c.Pos().Y <= 0 {
		t.Fatalf("jump did not leave the ground: y=%v", c.Pos().Y)
	}
	for i := 0; i < 120 && !c.Grounded(); i++ {
		idle(c, a, 1.0/60, false, false)
	}
	if !c.Grounded() || c.Pos().Y != 0 {
		t.Fatalf("grounded=%v y=%v after landing", c.Grounded(), c.Pos().Y)
	}
}

func TestCombatant_WallClimbBudget(t *testing.T) {
	a := losArena(t)
	// Facing +X into the wall column at x=8.
	c := NewCombatant(0, TeamCyan, true, WeaponShooter, 6.5, 10, -math.Pi/2)
	push := MoveIntent{Z: 1, Jump: true}
	const dt = 1.0 / 60

	climbTicks, left, landed := 0, false, false
	for i := 0; i < 400; i++ {
		c.Update(dt, a, push, LookIntent{}, false, false)
		if c.WallClimbing() {
			climbTicks++
		}
		if !c.Grounded() {
			left = true
		} else if left {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatal("never came back down from the climb")
	}
	if climbTicks < 55 || climbTicks > 61 {
		t.Fatalf("climbed %d ticks in one airborne stretch, want about %v s", climbTicks, climbBudget)
	}

	// Landing refills the budget.
	again := false
	for i := 0; i < 10 && !again; i++ {
		c.Update(dt, a, push, LookIntent{}, false, false)
		again = c.WallClimbing()
	}
	if !again {
		t.Fatal("climb budget not restored after landing")
	}
}

func TestCombatant_StaysInsideArena(t *testing.T) {
	a := flatArena(t, 10, 10)
	c := NewCombatant(0, TeamCyan, true, WeaponShooter, 20, 20, 0)
	for i := 0; i < 300; i++ {
		c.Update(1.0/60, a, MoveIntent{Z: 1, X: 1}, LookIntent{}, false, false)
	}
	p := c.Pos()
	if p.X < edgeMargin || p.X > a.Width()-edgeMargin || p.Z < edgeMargin || p.Z > a.Height()-edgeMargin {
		t.Fatalf("escaped arena: %+v", p)
	}
}

func TestCombatant_WalkingPaintsAndCharges(t *testing.T) {
	a := flatArena(t, 10, 10)
	c := NewCombatant(0, TeamPink, true, WeaponShooter, 20, 20, 0)
	c.Update(1.0/60, a, MoveIntent{Z: 1}, LookIntent{}, false, false)
	if a.TeamAt(c.Pos().X, c.Pos().Z) != TeamPink {
		t.Fatal("walking should paint under the combatant")
	}
	if c.Special() <= 0 {
		t.Fatal("walking paint should build the special gauge")
	}
}

func TestCombatant_PitchClamped(t *testing.T) {
	a := flatArena(t, 10, 10)
	c := NewCombatant(0, TeamCyan, true, WeaponShooter, 20, 20, 0)
	c.Update(1.0/60, a, MoveIntent{}, LookIntent{Pitch: 5}, false, false)
	if c.Pitch() != pitchLimit {
		t.Fatalf("pitch=%v, want %v", c.Pitch(), pitchLimit)
	}
	c.Update(1.0/60, a, MoveIntent{}, LookIntent{Pitch: -10, Yaw: 4 * math.Pi}, false, false)
	if c.Pitch() != -pitchLimit {
		t.Fatalf("pitch=%v, want %v", c.Pitch(), -pitchLimit)
	}
	if c.Yaw() < -math.Pi || c.Yaw() > math.Pi {
		t.Fatalf("yaw=%v not normalised", c.Yaw())
	}
}

func TestCombatant_ThrowBomb(t *testing.T) {
	rng := rand.New(rand.NewSource(1)) // #nosec G404 -- deterministic test data
	c := NewCombatant(0, TeamCyan, true, WeaponShooter, 20, 20, 0)

	b, ok := c.ThrowBomb(rng)
	if !ok {
		t.Fatal("first throw refused")
	}
	if b.Team != TeamCyan || math.Abs(b.Dir.Len()-1) > 1e-9 || b.Dir.Y <= 0 {
		t.Fatalf("throw=%+v", b)
	}
	if c.Ink() != maxInk-bombInkCost {
		t.Fatalf("ink=%v after throw", c.Ink())
	}
	if _, ok := c.ThrowBomb(rng); ok {
		t.Fatal("throw allowed during cooldown")
	}

	c.bombCD = 0
	c.ink = bombInkCost - 1
	if _, ok := c.ThrowBomb(rng); ok {
		t.Fatal("throw allowed without ink")
	}

	c.ink = maxInk
	c.squid = true
	if _, ok := c.ThrowBomb(rng); ok {
		t.Fatal("throw allowed in squid form")
	}

	c.squid = false
	c.TakeDamage(500)
	if _, ok := c.ThrowBomb(rng); ok {
		t.Fatal("throw allowed while dead")
	}
}

func TestCombatant_Special(t *testing.T) {
	c := NewCombatant(0, TeamCyan, true, WeaponShooter, 20, 20, 0)
	if c.ActivateSpecial() {
		t.Fatal("special activated on an empty gauge")
	}
	c.special = maxSpecial
	if !c.ActivateSpecial() || c.Special() != 0 || !c.SpecialActive() {
		t.Fatal("full gauge should activate the special")
	}
	c.ink = 5
	c.tickSpecial(1)
	if c.Ink() != maxInk {
		t.Fatalf("ink=%v during special, want max", c.Ink())
	}
	c.tickSpecial(specialDuration)
	if c.SpecialActive() {
		t.Fatal("special should expire")
	}
}

func TestCombatant_SwitchWeapon(t *testing.T) {
	c := NewCombatant(0, TeamCyan, true, WeaponCharger, 20, 20, 0)
	c.charging, c.chargeLevel = true, 0.7
	if c.SwitchWeapon(WeaponCharger) {
		t.Fatal("switching to the current weapon should be ignored")
	}
	if c.SwitchWeapon(weaponKindCount) {
		t.Fatal("unknown weapon accepted")
	}
	if !c.SwitchWeapon(WeaponRoller) || c.WeaponKind() != WeaponRoller {
		t.Fatal("switch to roller failed")
	}
	if c.Charging() || c.ChargeLevel() != 0 {
		t.Fatal("switch should drop the charge")
	}
}

func TestCombatant_RecallAndReset(t *testing.T) {
	c := NewCombatant(3, TeamPink, false, WeaponRoller, 60, 40, 0)
	if c.Label() != "P3" {
		t.Fatalf("label=%q", c.Label())
	}
	c.creditKill()
	if !c.Recall(108, 70) {
		t.Fatal("grounded recall refused")
	}
	if c.Pos().X != 108 || c.Pos().Z != 70 || c.Vel().Y != recallLaunch || c.Grounded() {
		t.Fatalf("recall pos=%+v vel=%+v", c.Pos(), c.Vel())
	}
	if c.Recall(12, 10) {
		t.Fatal("airborne recall allowed")
	}
	if c.Kills() != 1 {
		t.Fatal("recall must keep the kill count")
	}
	c.Reset(12, 10, math.Pi)
	if c.Kills() != 0 || c.WeaponKind() != WeaponShooter || !c.Grounded() || c.Yaw() != math.Pi {
		t.Fatalf("reset kills=%d weapon=%s grounded=%v", c.Kills(), c.WeaponKind(), c.Grounded())
	}
}
