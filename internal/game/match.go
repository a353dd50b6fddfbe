package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultMatchDuration = 180.0 // seconds
	scoreInterval        = 0.5
	maxStep              = 0.1 // largest dt a single Step will simulate
	meleeKnockback       = 10.0
	rollerJitterXZ       = 0.5 // full width of the per-pellet direction jitter
	rollerJitterY        = 0.2
	rollerSpeedMin       = 0.8
	rollerSpeedRange     = 0.4
	shooterSpeedJitter   = 5.0
)

var (
	cyanSpawns = [][2]float64{{12, 10}, {8, 14}, {16, 14}, {12, 18}}
	pinkSpawns = [][2]float64{{108, 70}, {104, 66}, {112, 66}, {108, 62}}
)

func spawnsFor(t Team) [][2]float64 {
	if t == TeamPink {
		return pinkSpawns
	}
	return cyanSpawns
}

// spawnYaw faces each team toward the arena centre.
func spawnYaw(t Team) float64 {
	if t == TeamPink {
		return math.Pi
	}
	return 0
}

// Slot is one roster entry.
type Slot struct {
	Team   Team
	Weapon WeaponKind
	Human  bool
}

// DefaultRoster is four per side with the human on cyan slot 0.
func DefaultRoster() []Slot {
	return []Slot{
		{Team: TeamCyan, Weapon: WeaponShooter, Human: true},
		{Team: TeamCyan, Weapon: WeaponRoller},
		{Team: TeamCyan, Weapon: WeaponCharger},
		{Team: TeamCyan, Weapon: WeaponShooter},
		{Team: TeamPink, Weapon: WeaponShooter},
		{Team: TeamPink, Weapon: WeaponRoller},
		{Team: TeamPink, Weapon: WeaponCharger},
		{Team: TeamPink, Weapon: WeaponShooter},
	}
}

type matchConfig struct {
	seed     int64
	clock    func() time.Time
	duration float64
	allAI    bool
	los      bool
	roster   []Slot
}

// MatchOption configures a Match.
type MatchOption func(*matchConfig)

// WithSeed fixes the random source.
func WithSeed(seed int64) MatchOption {
	return func(c *matchConfig) { c.seed = seed }
}

// WithClock replaces the wall clock used to age the kill feed and damage numbers.
func WithClock(clock func() time.Time) MatchOption {
	return func(c *matchConfig) { c.clock = clock }
}

// WithDuration sets the match length in seconds.
func WithDuration(seconds float64) MatchOption {
	return func(c *matchConfig) { c.duration = seconds }
}

// WithAllAI puts every slot, including the human one, under AI control.
func WithAllAI() MatchOption {
	return func(c *matchConfig) { c.allAI = true }
}

// WithLineOfSight makes AI targeting test walls instead of assuming sight.
func WithLineOfSight() MatchOption {
	return func(c *matchConfig) { c.los = true }
}

// WithRoster replaces the default team lineup.
func WithRoster(slots []Slot) MatchOption {
	return func(c *matchConfig) { c.roster = slots }
}

// HumanInput is one tick of already-sanitised human controls.
type HumanInput struct {
	Move       MoveIntent
	Look       LookIntent
	Fire       bool
	Squid      bool
	Bomb       bool
	Special    bool
	Recall     bool
	WeaponSlot int // 1..3 selects a weapon, 0 keeps the current one
}

// Match wires the arena, combatants, AI and projectiles into one fixed-order
// tick.
type Match struct {
	ID string

	arena       *Arena
	projectiles *ProjectileEngine
	combatants  []*Combatant
	controllers []*AIController // parallel to combatants, nil for the human
	human       *Combatant

	rng   *rand.Rand
	clock func() time.Time
	cfg   matchConfig

	tick       int
	timer      float64
	scoreTimer float64
	running    bool
	finished   bool
	scores     Scores

	kills  *timedLog[KillEntry]
	damage *timedLog[DamageNumber]
}

// NewMatch builds a match on the default arena. Call Start to begin play.
func NewMatch(opts ...MatchOption) *Match {
	cfg := matchConfig{
		seed:     time.Now().UnixNano(),
		clock:    time.Now,
		duration: DefaultMatchDuration,
		roster:   DefaultRoster(),
	}
	for _, o := range opts {
		o(&cfg)
	}

	m := &Match{
		ID:          uuid.NewString(),
		arena:       MustDefaultArena(),
		projectiles: NewProjectileEngine(),
		rng:         rand.New(rand.NewSource(cfg.seed)), // #nosec G404 -- gameplay randomness, not security
		clock:       cfg.clock,
		cfg:         cfg,
		timer:       cfg.duration,
		kills:       newTimedLog(killFeedTTL, func(e KillEntry) time.Time { return e.At }),
		damage:      newTimedLog(damageNumberTTL, func(e DamageNumber) time.Time { return e.At }),
	}

	perTeam := map[Team]int{}
	for i, s := range cfg.roster {
		spawns := spawnsFor(s.Team)
		sp := spawns[perTeam[s.Team]%len(spawns)]
		perTeam[s.Team]++
		human := s.Human && !cfg.allAI && m.human == nil
		c := NewCombatant(i, s.Team, human, s.Weapon, sp[0], sp[1], spawnYaw(s.Team))
		m.combatants = append(m.combatants, c)
		if human {
			m.human = c
			m.controllers = append(m.controllers, nil)
			continue
		}
		m.controllers = append(m.controllers, NewAIController(c, m.rng, cfg.los))
	}
	return m
}

func (m *Match) Arena() *Arena                 { return m.arena }
func (m *Match) Combatants() []*Combatant      { return m.combatants }
func (m *Match) Human() *Combatant             { return m.human }
func (m *Match) Projectiles() []*Projectile    { return m.projectiles.Live() }
func (m *Match) Scores() Scores                { return m.scores }
func (m *Match) TimeLeft() float64             { return m.timer }
func (m *Match) Duration() float64             { return m.cfg.duration }
func (m *Match) Running() bool                 { return m.running }
func (m *Match) Finished() bool                { return m.finished }
func (m *Match) Tick() int                     { return m.tick }
func (m *Match) KillFeed() []KillEntry         { return m.kills.snapshot() }
func (m *Match) DamageNumbers() []DamageNumber { return m.damage.snapshot() }

// Controller returns the AI driving combatant id, or nil.
func (m *Match) Controller(id int) *AIController {
	if id < 0 || id >= len(m.controllers) {
		return nil
	}
	return m.controllers[id]
}

// Start starts the match clock and clears the logs.
func (m *Match) Start() {
	m.timer = m.cfg.duration
	m.scoreTimer = 0
	m.running = true
	m.finished = false
	m.kills.reset()
	m.damage.reset()
}

// Reset restores match-start state everywhere, ready for Start.
func (m *Match) Reset() {
	m.arena.Reset()
	m.projectiles.Reset()
	perTeam := map[Team]int{}
	for i, c := range m.combatants {
		spawns := spawnsFor(c.Team())
		sp := spawns[perTeam[c.Team()]%len(spawns)]
		perTeam[c.Team()]++
		c.Reset(sp[0], sp[1], spawnYaw(c.Team()))
		c.weapon = m.cfg.roster[i].Weapon
		if ai := m.controllers[i]; ai != nil {
			ai.Reset()
		}
	}
	m.tick = 0
	m.timer = m.cfg.duration
	m.scoreTimer = 0
	m.running = false
	m.finished = false
	m.scores = Scores{}
	m.kills.reset()
	m.damage.reset()
}

// Finish stops the match and takes a final score sample.
func (m *Match) Finish() {
	m.running = false
	m.finished = true
	m.scores = m.arena.Scores()
}

// Step advances the match by dt seconds (capped) and returns what happened.
// It does nothing unless the match is running.
func (m *Match) Step(dt float64, in HumanInput) []Event {
	if !m.running || m.finished {
		return nil
	}
	dt = clamp(dt, 0, maxStep)
	m.timer -= dt
	if m.timer <= 0 {
		m.timer = 0
		m.Finish()
		return []Event{{Kind: EventMatchEnd, Actor: -1, Victim: -1}}
	}

	var events []Event
	emit := func(e Event) { events = append(events, e) }

	// Every AI decides against the same pre-tick world.
	intents := make([]Intent, len(m.combatants))
	for i, ai := range m.controllers {
		if ai != nil {
			intents[i] = ai.Decide(dt, m.combatants, m.arena)
		}
	}
	if h := m.human; h != nil {
		intents[h.ID()] = m.humanIntent(in)
	}

	for i, c := range m.combatants {
		wasAlive := c.Alive()
		it := intents[i]
		res := c.Update(dt, m.arena, it.Move, it.Look, it.Fire, it.Squid)

		if res.Shot {
			m.spawnShots(c, res)
			emit(Event{Kind: EventShot, Team: c.Team(), Actor: c.ID(), Victim: -1, Pos: c.ShootOrigin()})
		}
		if res.Melee {
			emit(Event{Kind: EventMelee, Team: c.Team(), Actor: c.ID(), Victim: -1, Pos: c.Pos()})
			m.melee(c, emit)
		}
		if it.Bomb {
			if b, ok := c.ThrowBomb(m.rng); ok {
				m.projectiles.ThrowBomb(b, c.ID())
				emit(Event{Kind: EventBomb, Team: c.Team(), Actor: c.ID(), Victim: -1, Pos: b.Origin})
			}
		}
		if it.Special && c.ActivateSpecial() {
			emit(Event{Kind: EventSpecial, Team: c.Team(), Actor: c.ID(), Victim: -1, Pos: c.Pos()})
		}
		c.tickSpecial(dt)

		if !wasAlive && c.Alive() {
			m.respawn(c)
			emit(Event{Kind: EventRespawn, Team: c.Team(), Actor: c.ID(), Victim: -1, Pos: c.Pos()})
		}
	}

	for _, pe := range m.projectiles.Update(dt, m.arena) {
		kind := EventLanding
		if pe.Kind == KindBomb {
			kind = EventExplosion
		}
		emit(Event{Kind: kind, Team: pe.Team, Actor: pe.Owner, Victim: -1, Pos: pe.Pos, Surface: pe.Surface})
		if pe.Kind == KindBomb {
			m.explode(pe, emit)
		}
	}
	m.directHits(emit)

	m.scoreTimer -= dt
	if m.scoreTimer <= 0 {
		m.scores = m.arena.Scores()
		m.scoreTimer = scoreInterval
	}

	now := m.clock()
	m.kills.prune(now)
	m.damage.prune(now)
	m.tick++
	return events
}

func (m *Match) humanIntent(in HumanInput) Intent {
	h := m.human
	if in.WeaponSlot >= 1 && in.WeaponSlot <= int(weaponKindCount) {
		h.SwitchWeapon(WeaponKind(in.WeaponSlot - 1))
	}
	if in.Recall {
		sp := m.pickSpawn(h.Team())
		h.Recall(sp[0], sp[1])
	}
	return Intent{
		Move:    in.Move,
		Look:    in.Look,
		Fire:    in.Fire,
		Squid:   in.Squid,
		Bomb:    in.Bomb,
		Special: in.Special,
	}
}

// spawnShots turns one fire action into projectiles, shaped per weapon.
func (m *Match) spawnShots(c *Combatant, res FireResult) {
	w := c.Weapon()
	origin := c.ShootOrigin()
	switch w.Kind {
	case WeaponRoller:
		base := c.ShootDirection(m.rng)
		for i := 0; i < w.ProjCount; i++ {
			dir := Vec3{
				X: base.X + (m.rng.Float64()-0.5)*rollerJitterXZ,
				Y: base.Y + (m.rng.Float64()-0.5)*rollerJitterY,
				Z: base.Z + (m.rng.Float64()-0.5)*rollerJitterXZ,
			}.Normalize()
			speed := w.ProjSpeed * (rollerSpeedMin + m.rng.Float64()*rollerSpeedRange)
			m.projectiles.Shoot(origin, dir, c.Team(), c.ID(), speed, w.PaintRadius, w.ProjSize, w.Damage)
		}
	case WeaponCharger:
		m.projectiles.Shoot(origin, c.ShootDirection(m.rng), c.Team(), c.ID(),
			w.ChargeMaxSpeed*res.Charge, w.PaintRadius, w.ProjSize, w.ChargeMaxDamage*res.Charge)
	default:
		m.projectiles.Shoot(origin, c.ShootDirection(m.rng), c.Team(), c.ID(),
			w.ProjSpeed+m.rng.Float64()*shooterSpeedJitter, w.PaintRadius, w.ProjSize, w.Damage)
	}
}

// melee hits every live opponent inside the roller's reach and arc.
func (m *Match) melee(attacker *Combatant, emit func(Event)) {
	w := attacker.Weapon()
	fwd := attacker.Forward()
	for _, v := range m.combatants {
		if !v.Alive() || v.Team() == attacker.Team() {
			continue
		}
		off := v.Pos().Sub(attacker.Pos())
		if off.Len() >= w.MeleeRange {
			continue
		}
		dir := off.Normalize()
		if fwd.AngleTo(dir) >= w.MeleeArc/2 {
			continue
		}
		killed := v.TakeDamage(w.MeleeDamage)
		m.recordHit(attacker.ID(), attacker.Team(), v, w.MeleeDamage, killed, "melee", emit)
		v.AddImpulse(dir.Scale(meleeKnockback))
	}
}

// explode applies bomb splash to opponents with linear falloff.
func (m *Match) explode(pe ProjectileEvent, emit func(Event)) {
	for _, v := range m.combatants {
		if !v.Alive() || v.Team() == pe.Team {
			continue
		}
		dmg := splashDamage(pe.Damage, v.Pos().Dist(pe.Pos), bombSplashRadius)
		if dmg <= 0 {
			continue
		}
		killed := v.TakeDamage(dmg)
		m.recordHit(pe.Owner, pe.Team, v, dmg, killed, "bomb", emit)
	}
}

// directHits checks live shots against opposing bodies. A shot stops at its
// first victim.
func (m *Match) directHits(emit func(Event)) {
	for _, p := range m.projectiles.Live() {
		if !p.Alive() || p.Kind == KindBomb {
			continue
		}
		for _, v := range m.combatants {
			if !v.Alive() || v.Team() == p.Team || !directHit(p, v) {
				continue
			}
			killed := v.TakeDamage(p.Damage)
			cause := "ink"
			if owner := m.combatantByID(p.Owner); owner != nil {
				cause = owner.Weapon().Name
			}
			m.recordHit(p.Owner, p.Team, v, p.Damage, killed, cause, emit)
			p.Destroy()
			break
		}
	}
	m.projectiles.Sweep()
}

func (m *Match) recordHit(ownerID int, team Team, victim *Combatant, dmg float64, killed bool, cause string, emit func(Event)) {
	now := m.clock()
	emit(Event{Kind: EventHit, Team: team, Actor: ownerID, Victim: victim.ID(), Pos: victim.Pos(), Damage: dmg, Killed: killed})

	if m.human == nil || team == m.human.Team() {
		m.damage.add(DamageNumber{
			Pos:    victim.Pos().Add(Vec3{Y: damageNumberLift}),
			Amount: int(math.Round(dmg)),
			Killed: killed,
			At:     now,
		})
	}
	if !killed {
		return
	}
	entry := KillEntry{Attacker: team, Victim: victim.Team(), VictimLabel: victim.Label(), Cause: cause, At: now}
	if owner := m.combatantByID(ownerID); owner != nil {
		owner.creditKill()
		entry.AttackerLabel = owner.Label()
	}
	m.kills.add(entry)
}

func (m *Match) combatantByID(id int) *Combatant {
	if id < 0 || id >= len(m.combatants) {
		return nil
	}
	return m.combatants[id]
}

func (m *Match) pickSpawn(t Team) [2]float64 {
	spawns := spawnsFor(t)
	return spawns[m.rng.Intn(len(spawns))]
}

// respawn moves a Combatant that just came back to life onto a team spawn.
func (m *Match) respawn(c *Combatant) {
	sp := m.pickSpawn(c.Team())
	c.Respawn(sp[0], sp[1], spawnYaw(c.Team()))
	if ai := m.controllers[c.ID()]; ai != nil {
		ai.Reset()
	}
}
