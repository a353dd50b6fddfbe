package game

// CombatantView is a read-only copy of one Combatant's visible state.
type CombatantView struct {
	ID            int
	Label         string
	Team          Team
	Human         bool
	Pos           Vec3
	Yaw, Pitch    float64
	Health        float64
	Ink           float64
	Special       float64
	Weapon        WeaponKind
	Alive         bool
	RespawnIn     float64
	Squid         bool
	Charging      bool
	ChargeLevel   float64
	SpecialActive bool
	DamageFlash   float64
	Kills, Deaths int
	AIState       string // empty for the human
}

// ProjectileView is a read-only copy of one live projectile.
type ProjectileView struct {
	Kind ProjectileKind
	Team Team
	Pos  Vec3
	Size float64
}

// MatchSnapshot is everything a renderer or reporter needs from one moment.
type MatchSnapshot struct {
	ID          string
	Tick        int
	TimeLeft    float64
	Running     bool
	Finished    bool
	Scores      Scores
	Combatants  []CombatantView
	Projectiles []ProjectileView
	KillFeed    []KillEntry
	Damage      []DamageNumber
}

// View copies a Combatant's state.
func (c *Combatant) View() CombatantView {
	return CombatantView{
		ID:            c.id,
		Label:         c.label,
		Team:          c.team,
		Human:         c.human,
		Pos:           c.pos,
		Yaw:           c.yaw,
		Pitch:         c.pitch,
		Health:        c.health,
		Ink:           c.ink,
		Special:       c.special,
		Weapon:        c.weapon,
		Alive:         c.alive,
		RespawnIn:     c.respawnTimer,
		Squid:         c.squid,
		Charging:      c.charging,
		ChargeLevel:   c.chargeLevel,
		SpecialActive: c.specialActive,
		DamageFlash:   c.damageFlash,
		Kills:         c.kills,
		Deaths:        c.deaths,
	}
}

// Snapshot copies the current match state. Paint and decals are read
// directly from Arena since they are large and change every tick.
func (m *Match) Snapshot() MatchSnapshot {
	s := MatchSnapshot{
		ID:       m.ID,
		Tick:     m.tick,
		TimeLeft: m.timer,
		Running:  m.running,
		Finished: m.finished,
		Scores:   m.scores,
		KillFeed: m.kills.snapshot(),
		Damage:   m.damage.snapshot(),
	}
	s.Combatants = make([]CombatantView, len(m.combatants))
	for i, c := range m.combatants {
		v := c.View()
		if ai := m.controllers[i]; ai != nil {
			v.AIState = ai.State().String()
		}
		s.Combatants[i] = v
	}
	live := m.projectiles.Live()
	s.Projectiles = make([]ProjectileView, 0, len(live))
	for _, p := range live {
		s.Projectiles = append(s.Projectiles, ProjectileView{Kind: p.Kind, Team: p.Team, Pos: p.Pos, Size: p.Size})
	}
	return s
}
