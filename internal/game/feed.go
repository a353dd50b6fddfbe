package game

import "time"

const (
	killFeedTTL      = 5 * time.Second
	damageNumberTTL  = 1200 * time.Millisecond
	damageNumberLift = 2.5 // world units above the victim's feet
)

// KillEntry is one line of the kill feed.
type KillEntry struct {
	Attacker      Team
	AttackerLabel string
	Victim        Team
	VictimLabel   string
	Cause         string // weapon name, "bomb" or "melee"
	At            time.Time
}

// DamageNumber is a floating damage readout anchored above a victim.
type DamageNumber struct {
	Pos    Vec3
	Amount int
	Killed bool
	At     time.Time
}

// timedLog is an append-only list whose entries expire after a fixed age.
type timedLog[T any] struct {
	ttl     time.Duration
	stamp   func(T) time.Time
	entries []T
}

func newTimedLog[T any](ttl time.Duration, stamp func(T) time.Time) *timedLog[T] {
	return &timedLog[T]{ttl: ttl, stamp: stamp}
}

func (l *timedLog[T]) add(e T) { l.entries = append(l.entries, e) }

// prune drops entries at least ttl older than now. Entries arrive in time
// order, so everything before the first survivor goes.
func (l *timedLog[T]) prune(now time.Time) {
	i := 0
	for i < len(l.entries) && now.Sub(l.stamp(l.entries[i])) >= l.ttl {
		i++
	}
	if i == 0 {
		return
	}
	n := copy(l.entries, l.entries[i:])
	clear(l.entries[n:])
	l.entries = l.entries[:n]
}

func (l *timedLog[T]) reset() {
	clear(l.entries)
	l.entries = l.entries[:0]
}

// snapshot returns a copy safe to hold across ticks.
func (l *timedLog[T]) snapshot() []T {
	out := make([]T, len(l.entries))
	copy(out, l.entries)
	return out
}
