package game

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	moveSpeed         = 18.0 // world units/s
	squidSpeedMul     = 1.6
	jumpImpulse       = 14.0
	bodyGravity       = 35.0 // world units/s²
	pitchLimit        = 1.2  // radians
	bodyRadius        = 0.8
	moveSubsteps      = 3
	collidePasses     = 2
	snapTolerance     = 0.4 // descending bodies this close above ground snap onto it
	edgeMargin        = 2.0 // positions are clamped this far inside the arena edge
	maxHealth         = 100.0
	maxInk            = 100.0
	maxSpecial        = 100.0
	squidInkRegen     = 40.0 // per second
	idleInkRegen      = 12.0
	squidHealthRegen  = 15.0
	walkPaintRadius   = 0.6
	rollerTrailRadius = 2.5
	specialGain       = 3.0 // per second of moving paint
	climbProbe        = 1.5
	climbSpeed        = 12.0
	climbBudget       = 1.0 // seconds per airborne stretch
	respawnDelay      = 3.0
	damageFlashTime   = 0.2
	chargeMinRelease  = 0.15
	chargeInkFactor   = 3.0
	chargeSpreadDamp  = 0.8
	bombInkCost       = 25.0
	bombCooldown      = 2.0
	bombUpBias        = 0.4
	specialDuration   = 6.0
	muzzleForward     = 0.8
	muzzleHeight      = 1.2
	recallLaunch      = 25.0
)

// MoveIntent is a local-space movement request: Z forward, X right.
type MoveIntent struct {
	X, Z float64
	Jump bool
}

// LookIntent is a yaw/pitch delta in radians.
type LookIntent struct {
	Yaw, Pitch float64
}

// FireResult reports what a Combatant did with its weapon this tick.
type FireResult struct {
	Shot   bool
	Melee  bool
	Charge float64 // charge level behind a charger shot, 0 otherwise
}

// BombThrow describes a thrown bomb for the projectile engine.
type BombThrow struct {
	Origin Vec3
	Dir    Vec3
	Team   Team
}

// Combatant is one player body, human or AI driven. Both run the same
// state machine; only the source of intents differs.
type Combatant struct {
	id    int
	label string
	team  Team
	human bool

	pos, vel   Vec3
	yaw, pitch float64
	grounded   bool
	moving     bool

	health, ink, special float64

	squid         bool
	charging      bool
	chargeLevel   float64
	specialActive bool
	specialTimer  float64
	climbing      bool
	climbTime     float64

	weapon WeaponKind
	fireCD float64
	bombCD float64

	alive        bool
	respawnTimer float64
	kills        int
	deaths       int
	damageFlash  float64
}

// NewCombatant creates a live Combatant at (x, z) facing yaw.
func NewCombatant(id int, team Team, human bool, weapon WeaponKind, x, z, yaw float64) *Combatant {
	c := &Combatant{
		id:    id,
		label: fmt.Sprintf("%s%d", team.labelPrefix(), id),
		team:  team,
		human: human,
	}
	c.Reset(x, z, yaw)
	c.weapon = weapon
	return c
}

func (c *Combatant) ID() int                { return c.id }
func (c *Combatant) Label() string          { return c.label }
func (c *Combatant) Team() Team             { return c.team }
func (c *Combatant) IsHuman() bool          { return c.human }
func (c *Combatant) Pos() Vec3              { return c.pos }
func (c *Combatant) Vel() Vec3              { return c.vel }
func (c *Combatant) Yaw() float64           { return c.yaw }
func (c *Combatant) Pitch() float64         { return c.pitch }
func (c *Combatant) Grounded() bool         { return c.grounded }
func (c *Combatant) Moving() bool           { return c.moving }
func (c *Combatant) Health() float64        { return c.health }
func (c *Combatant) Ink() float64           { return c.ink }
func (c *Combatant) Special() float64       { return c.special }
func (c *Combatant) IsSquid() bool          { return c.squid }
func (c *Combatant) Charging() bool         { return c.charging }
func (c *Combatant) ChargeLevel() float64   { return c.chargeLevel }
func (c *Combatant) SpecialActive() bool    { return c.specialActive }
func (c *Combatant) WallClimbing() bool     { return c.climbing }
func (c *Combatant) WeaponKind() WeaponKind { return c.weapon }
func (c *Combatant) Weapon() WeaponDef      { return Weapon(c.weapon) }
func (c *Combatant) Alive() bool            { return c.alive }
func (c *Combatant) RespawnIn() float64     { return c.respawnTimer }
func (c *Combatant) Kills() int             { return c.kills }
func (c *Combatant) Deaths() int            { return c.deaths }
func (c *Combatant) DamageFlash() float64   { return c.damageFlash }
func (c *Combatant) BombReady() bool        { return c.bombCD <= 0 }

// Forward is the horizontal unit vector the Combatant faces.
func (c *Combatant) Forward() Vec3 { return forwardOf(c.yaw) }

func forwardOf(yaw float64) Vec3 { return Vec3{X: -math.Sin(yaw), Z: -math.Cos(yaw)} }
func rightOf(yaw float64) Vec3   { return Vec3{X: math.Cos(yaw), Z: -math.Sin(yaw)} }

// Update advances the Combatant one tick. It only signals firing; the
// caller spawns projectiles using ShootOrigin and ShootDirection.
func (c *Combatant) Update(dt float64, t Terrain, move MoveIntent, look LookIntent, fire, wantSquid bool) FireResult {
	c.damageFlash = math.Max(0, c.damageFlash-dt)
	c.bombCD = math.Max(0, c.bombCD-dt)

	if !c.alive {
		c.respawnTimer -= dt
		if c.respawnTimer <= 0 {
			c.respawnTimer = 0
			c.alive = true
			c.health = maxHealth
			c.ink = maxInk
		}
		return FireResult{}
	}

	c.yaw = normalizeAngle(c.yaw + look.Yaw)
	c.pitch = clamp(c.pitch+look.Pitch, -pitchLimit, pitchLimit)

	onOwn := t.TeamAt(c.pos.X, c.pos.Z) == c.team
	c.squid = wantSquid && onOwn && c.grounded

	c.move(dt, t, move)

	// Squid form never survives leaving own ground.
	onOwn = t.TeamAt(c.pos.X, c.pos.Z) == c.team
	if c.squid && !(onOwn && c.grounded) {
		c.squid = false
	}

	c.regen(dt, onOwn, fire)

	w := c.Weapon()
	if c.moving && !c.squid && c.grounded {
		t.PaintAt(c.pos.X, c.pos.Z, c.team, w.trailRadius())
		c.special = math.Min(maxSpecial, c.special+specialGain*dt)
	}

	return c.fire(dt, w, fire)
}

func (c *Combatant) move(dt float64, t Terrain, in MoveIntent) {
	fwd, right := forwardOf(c.yaw), rightOf(c.yaw)
	dir := fwd.Scale(in.Z).Add(right.Scale(in.X)).Normalize()
	c.moving = dir.LenSq() > 0

	spd := moveSpeed
	if c.squid {
		spd *= squidSpeedMul
	}
	c.vel.X, c.vel.Z = dir.X*spd, dir.Z*spd

	c.climbing = false
	if !c.grounded && in.Jump && c.climbTime < climbBudget {
		probes := []Vec3{
			c.pos.Add(fwd.Scale(climbProbe)),
			c.pos.Add(right.Scale(climbProbe)),
			c.pos.Sub(right.Scale(climbProbe)),
		}
		for _, p := range probes {
			if !t.IsWalkable(p.X, p.Z) {
				c.climbing = true
				break
			}
		}
		if c.climbing {
			c.climbTime += dt
			c.vel.Y = climbSpeed
		}
	}
	if c.grounded {
		c.climbTime = 0
		if in.Jump {
			c.vel.Y = jumpImpulse
			c.grounded = false
		}
	}
	if !c.climbing {
		c.vel.Y -= bodyGravity * dt
	}

	sub := dt / moveSubsteps
	for s := 0; s < moveSubsteps; s++ {
		c.pos.X += c.vel.X * sub
		c.pos.Z += c.vel.Z * sub
		for p := 0; p < collidePasses; p++ {
			c.pos.X, c.pos.Z = t.CollideWalls(c.pos.X, c.pos.Z, bodyRadius)
		}
	}
	c.pos.Y += c.vel.Y * dt

	ground := t.GroundY(c.pos.X, c.pos.Z, c.pos.Y)
	if c.pos.Y <= ground || (c.vel.Y <= 0 && c.pos.Y-ground < snapTolerance) {
		c.pos.Y = ground
		c.vel.Y = 0
		c.grounded = true
	} else {
		c.grounded = false
	}
	c.pos.X = clamp(c.pos.X, edgeMargin, t.Width()-edgeMargin)
	c.pos.Z = clamp(c.pos.Z, edgeMargin, t.Height()-edgeMargin)
}

func (c *Combatant) regen(dt float64, onOwn, firing bool) {
	if c.squid && onOwn && c.grounded {
		c.ink = math.Min(maxInk, c.ink+squidInkRegen*dt)
		c.health = math.Min(maxHealth, c.health+squidHealthRegen*dt)
		return
	}
	if !firing {
		c.ink = math.Min(maxInk, c.ink+idleInkRegen*dt)
	}
}

func (c *Combatant) fire(dt float64, w WeaponDef, held bool) FireResult {
	c.fireCD = math.Max(0, c.fireCD-dt)

	switch w.Kind {
	case WeaponCharger:
		if held {
			// Squid form freezes the charge until fire is released.
			if !c.squid {
				c.charging = true
				c.chargeLevel += dt / w.ChargeTime
				if c.chargeLevel >= 1-1e-9 {
					c.chargeLevel = 1
				}
			}
			return FireResult{}
		}
		if !c.charging {
			return FireResult{}
		}
		level := c.chargeLevel
		c.charging = false
		c.chargeLevel = 0
		cost := w.InkCost * level * chargeInkFactor
		if level > chargeMinRelease && c.ink >= cost {
			c.ink -= cost
			return FireResult{Shot: true, Charge: level}
		}
		return FireResult{}

	default:
		if !held || c.squid || c.fireCD > 0 || c.ink < w.InkCost {
			return FireResult{}
		}
		c.ink -= w.InkCost
		c.fireCD = w.FireRate
		return FireResult{Shot: true, Melee: w.Kind == WeaponRoller}
	}
}

// TakeDamage applies damage and reports whether it killed. Dead Combatants
// ignore damage.
func (c *Combatant) TakeDamage(amount float64) bool {
	if !c.alive {
		return false
	}
	c.health -= amount
	c.damageFlash = damageFlashTime
	if c.health > 0 {
		return false
	}
	c.health = 0
	c.alive = false
	c.respawnTimer = respawnDelay
	c.deaths++
	c.squid = false
	c.charging = false
	c.chargeLevel = 0
	return true
}

// ShootOrigin is the muzzle position in world space.
func (c *Combatant) ShootOrigin() Vec3 {
	f := c.Forward()
	return Vec3{X: c.pos.X + f.X*muzzleForward, Y: c.pos.Y + muzzleHeight, Z: c.pos.Z + f.Z*muzzleForward}
}

// ShootDirection is the unit aim vector with weapon spread applied. Charger
// spread narrows as charge builds. Pitch is applied undamped.
func (c *Combatant) ShootDirection(rng *rand.Rand) Vec3 {
	w := c.Weapon()
	sp := w.Spread
	if w.Kind == WeaponCharger {
		sp *= 1 - c.chargeLevel*chargeSpreadDamp
	}
	sx := (rng.Float64() - 0.5) * sp
	sz := (rng.Float64() - 0.5) * sp
	return Vec3{
		X: -math.Sin(c.yaw) + sx,
		Y: math.Sin(c.pitch),
		Z: -math.Cos(c.yaw) + sz,
	}.Normalize()
}

// ThrowBomb spends ink and starts the bomb cooldown. It fails while dead, in
// squid form, on cooldown or short of ink.
func (c *Combatant) ThrowBomb(rng *rand.Rand) (BombThrow, bool) {
	if c.bombCD > 0 || c.ink < bombInkCost || !c.alive || c.squid {
		return BombThrow{}, false
	}
	c.ink -= bombInkCost
	c.bombCD = bombCooldown
	dir := c.ShootDirection(rng)
	dir.Y += bombUpBias
	return BombThrow{Origin: c.ShootOrigin(), Dir: dir.Normalize(), Team: c.team}, true
}

// ActivateSpecial starts the special if the gauge is full.
func (c *Combatant) ActivateSpecial() bool {
	if c.special < maxSpecial || c.specialActive || !c.alive {
		return false
	}
	c.special = 0
	c.specialActive = true
	c.specialTimer = specialDuration
	return true
}

// tickSpecial holds ink at max while the special runs and counts it down.
func (c *Combatant) tickSpecial(dt float64) {
	if !c.specialActive {
		return
	}
	c.ink = maxInk
	c.specialTimer -= dt
	if c.specialTimer <= 0 {
		c.specialTimer = 0
		c.specialActive = false
	}
}

// SwitchWeapon selects a weapon kind. Unknown or current kinds are ignored.
func (c *Combatant) SwitchWeapon(k WeaponKind) bool {
	if k >= weaponKindCount || k == c.weapon {
		return false
	}
	c.weapon = k
	c.charging = false
	c.chargeLevel = 0
	return true
}

// Respawn restores a Combatant at a spawn point. Kill and death counts survive.
func (c *Combatant) Respawn(x, z, yaw float64) {
	c.alive = true
	c.respawnTimer = 0
	c.health = maxHealth
	c.ink = maxInk
	c.pos = Vec3{X: x, Z: z}
	c.vel = Vec3{}
	c.yaw = yaw
	c.pitch = 0
	c.grounded = true
	c.moving = false
	c.squid = false
	c.charging = false
	c.chargeLevel = 0
	c.climbing = false
	c.climbTime = 0
	c.damageFlash = 0
	c.fireCD = 0
}

// Reset restores a Combatant to match-start state, clearing counters, gauges
// and weapon choice.
func (c *Combatant) Reset(x, z, yaw float64) {
	c.Respawn(x, z, yaw)
	c.kills = 0
	c.deaths = 0
	c.weapon = WeaponShooter
	c.bombCD = 0
	c.special = 0
	c.specialActive = false
	c.specialTimer = 0
}

// Recall teleports a live, grounded Combatant to (x, z) and launches it
// upward.
func (c *Combatant) Recall(x, z float64) bool {
	if !c.alive || !c.grounded {
		return false
	}
	c.pos = Vec3{X: x, Y: c.pos.Y, Z: z}
	c.vel = Vec3{Y: recallLaunch}
	c.grounded = false
	c.squid = false
	return true
}

// AddImpulse adds to the Combatant's velocity. Horizontal velocity is
// overwritten by movement next tick; vertical persists under gravity.
func (c *Combatant) AddImpulse(v Vec3) {
	c.vel = c.vel.Add(v)
}

func (c *Combatant) creditKill() { c.kills++ }
