package game

// EventKind classifies what happened during a Step.
type EventKind uint8

const (
	EventShot      EventKind = iota // a weapon fired
	EventMelee                      // roller swing
	EventBomb                       // bomb thrown
	EventSpecial                    // special activated
	EventLanding                    // shot died on a surface
	EventExplosion                  // bomb detonated
	EventHit                        // a combatant took damage
	EventRespawn                    // a combatant came back at a spawn
	EventMatchEnd                   // timer ran out
)

func (k EventKind) String() string {
	switch k {
	case EventShot:
		return "shot"
	case EventMelee:
		return "melee"
	case EventBomb:
		return "bomb"
	case EventSpecial:
		return "special"
	case EventLanding:
		return "landing"
	case EventExplosion:
		return "explosion"
	case EventHit:
		return "hit"
	case EventRespawn:
		return "respawn"
	case EventMatchEnd:
		return "match_end"
	default:
		return "unknown"
	}
}

// Event is one fire-and-forget effect produced by a Step, for sound,
// particles and logging. Actor and Victim are combatant ids or -1.
type Event struct {
	Kind    EventKind
	Team    Team
	Actor   int
	Victim  int
	Pos     Vec3
	Surface ImpactSurface
	Damage  float64
	Killed  bool
}
