package game

import (
	"math"
	"math/rand"
)

const (
	aiDetectRange    = 40.0
	aiRetreatHealth  = 30.0
	aiWaypointTime   = 5.0 // seconds before a fresh roam waypoint
	aiWaypointReach  = 2.0
	aiTurnRoam       = 2.0 // proportional turn gains, 1/s
	aiTurnAttack     = 10.0
	aiTurnCharge     = 5.0
	aiTurnPitch      = 5.0
	aiRoamPitchGain  = 1.0
	aiEyeHeight      = 1.5
	aiAimHeight      = 1.0
	aiRoamFireChance = 0.3 // per tick
	aiRoamPitch      = -0.5
	aiRollerClose    = 3.0
	aiStrafeMin      = 1.0 // seconds; plus U(0,1)
	aiAdvanceDist    = 15.0
	aiBackoffDist    = 8.0
	aiBombChance     = 0.01 // per tick
	aiBombMinInk     = 50.0
	aiSquidMinInk    = 10.0
	aiJumpProbe      = 2.0
	aiJumpCooldown   = 2.0
)

// AIState is the behaviour an AI controller is executing.
type AIState uint8

const (
	AIRoam AIState = iota
	AIAttack
	AIChargeAttack
	AIRetreat
)

func (s AIState) String() string {
	switch s {
	case AIRoam:
		return "roam"
	case AIAttack:
		return "attack"
	case AIChargeAttack:
		return "charge_attack"
	case AIRetreat:
		return "retreat"
	default:
		return "unknown"
	}
}

// Intent is everything a controller asks of its Combatant for one tick.
type Intent struct {
	Move    MoveIntent
	Look    LookIntent
	Fire    bool
	Squid   bool
	Bomb    bool
	Special bool
}

// AIController drives one non-human Combatant. It reads world state and
// returns intents; it never mutates the Combatant.
type AIController struct {
	self *Combatant
	rng  *rand.Rand
	los  bool // test walls for visibility instead of assuming it

	state       AIState
	target      *Combatant
	waypoint    Vec3
	wpTimer     float64
	strafeDir   float64
	strafeTimer float64
	jumpTimer   float64
}

// NewAIController binds a controller to a Combatant.
func NewAIController(self *Combatant, rng *rand.Rand, lineOfSight bool) *AIController {
	return &AIController{self: self, rng: rng, los: lineOfSight, strafeDir: 1}
}

// Self returns the controlled Combatant.
func (ai *AIController) Self() *Combatant { return ai.self }

// State returns the behaviour chosen on the last Decide.
func (ai *AIController) State() AIState { return ai.state }

// Target returns the Combatant targeted on the last Decide, or nil.
func (ai *AIController) Target() *Combatant { return ai.target }

// Reset forgets the target and behaviour, as after a respawn.
func (ai *AIController) Reset() {
	ai.state = AIRoam
	ai.target = nil
	ai.wpTimer = 0
	ai.strafeTimer = 0
	ai.jumpTimer = 0
}

// Decide computes this tick's intent from the other Combatants and terrain.
func (ai *AIController) Decide(dt float64, all []*Combatant, t Terrain) Intent {
	var in Intent
	me := ai.self
	if !me.Alive() {
		return in
	}

	ai.target = ai.pickTarget(all, t)
	switch {
	case me.Health() < aiRetreatHealth:
		ai.state = AIRetreat
	case ai.target != nil && me.WeaponKind() == WeaponCharger:
		ai.state = AIChargeAttack
	case ai.target != nil:
		ai.state = AIAttack
	default:
		ai.state = AIRoam
	}

	switch ai.state {
	case AIRetreat:
		if ai.target != nil {
			away := me.Pos().Sub(ai.target.Pos())
			ai.steerToward(&in, me.Pos().Add(away), aiTurnAttack, dt)
			in.Move.Z = 1
		} else {
			ai.roam(&in, t, dt)
		}
		in.Squid = me.Ink() >= aiSquidMinInk

	case AIChargeAttack:
		ai.aim(&in, aiTurnCharge, dt)
		// Release for a single tick at full charge.
		in.Fire = me.ChargeLevel() < 1

	case AIAttack:
		dist := ai.aim(&in, aiTurnAttack, dt)
		if me.WeaponKind() == WeaponRoller {
			if dist > aiRollerClose {
				in.Move.Z = 1
				in.Squid = true
			} else {
				in.Fire = true
			}
			break
		}
		ai.strafeTimer -= dt
		if ai.strafeTimer <= 0 {
			ai.strafeDir = -ai.strafeDir
			ai.strafeTimer = aiStrafeMin + ai.rng.Float64()
		}
		in.Move.X = ai.strafeDir
		switch {
		case dist > aiAdvanceDist:
			in.Move.Z = 1
		case dist < aiBackoffDist:
			in.Move.Z = -1
		}
		in.Fire = true
		if ai.rng.Float64() < aiBombChance && me.Ink() > aiBombMinInk {
			in.Bomb = true
		}

	default:
		ai.roam(&in, t, dt)
		if ai.rng.Float64() < aiRoamFireChance {
			in.Fire = true
			in.Look.Pitch = (aiRoamPitch - me.Pitch()) * aiRoamPitchGain * dt
		}
	}

	if (ai.state == AIAttack || ai.state == AIChargeAttack) && me.Special() >= maxSpecial {
		in.Special = true
	}

	ai.jumpTimer -= dt
	if ai.jumpTimer <= 0 && ai.state != AIChargeAttack {
		probe := me.Pos().Add(me.Forward().Scale(aiJumpProbe))
		if t.TileAt(probe.X, probe.Z) == TileWall {
			in.Move.Jump = true
			ai.jumpTimer = aiJumpCooldown
		}
	}
	return in
}

// pickTarget returns the nearest live, visible opponent in range.
func (ai *AIController) pickTarget(all []*Combatant, t Terrain) *Combatant {
	me := ai.self
	var best *Combatant
	bestDist := aiDetectRange
	for _, o := range all {
		if o == me || !o.Alive() || o.Team() == me.Team() {
			continue
		}
		d := me.Pos().Dist(o.Pos())
		if d >= bestDist || !ai.visible(o, t) {
			continue
		}
		best, bestDist = o, d
	}
	return best
}

func (ai *AIController) visible(o *Combatant, t Terrain) bool {
	if !ai.los {
		return true
	}
	a, b := ai.self.Pos(), o.Pos()
	return t.HasLineOfSight(a.X, a.Z, b.X, b.Z)
}

// aim turns toward the target and returns the horizontal distance to it.
func (ai *AIController) aim(in *Intent, turn, dt float64) float64 {
	me, tg := ai.self, ai.target
	ai.steerToward(in, tg.Pos(), turn, dt)
	dx, dz := tg.Pos().X-me.Pos().X, tg.Pos().Z-me.Pos().Z
	dist := math.Hypot(dx, dz)
	dy := (tg.Pos().Y + aiAimHeight) - (me.Pos().Y + aiEyeHeight)
	in.Look.Pitch = (math.Atan2(dy, dist) - me.Pitch()) * aiTurnPitch * dt
	return dist
}

// steerToward sets a yaw delta proportional to the heading error to p.
func (ai *AIController) steerToward(in *Intent, p Vec3, turn, dt float64) {
	me := ai.self
	dx, dz := p.X-me.Pos().X, p.Z-me.Pos().Z
	want := math.Atan2(-dx, -dz)
	in.Look.Yaw = normalizeAngle(want-me.Yaw()) * turn * dt
}

func (ai *AIController) roam(in *Intent, t Terrain, dt float64) {
	me := ai.self
	ai.wpTimer -= dt
	flat := Vec3{X: me.Pos().X, Z: me.Pos().Z}
	if ai.wpTimer <= 0 || flat.Dist(ai.waypoint) < aiWaypointReach {
		ai.waypoint = Vec3{X: ai.rng.Float64() * t.Width(), Z: ai.rng.Float64() * t.Height()}
		ai.wpTimer = aiWaypointTime
	}
	ai.steerToward(in, ai.waypoint, aiTurnRoam, dt)
	in.Move.Z = 1
}
