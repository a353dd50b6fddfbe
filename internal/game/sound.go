package game

import "github.com/Garsondee/Ink-Arena/internal/audio"

// CuePlayer plays a sound cue. *audio.Player satisfies it.
type CuePlayer interface {
	Play(audio.Cue)
}

// cueFor picks the sound for a match event from the point of view of the
// human (humanID < 0 when spectating). Most events are only audible when
// the human is involved.
func cueFor(ev Event, humanID int) (audio.Cue, bool) {
	involved := humanID >= 0 && (ev.Actor == humanID || ev.Victim == humanID)
	switch ev.Kind {
	case EventShot, EventMelee:
		return audio.CueShoot, involved
	case EventBomb:
		return audio.CueBombThrow, involved
	case EventSpecial:
		return audio.CueSpecial, involved || humanID < 0
	case EventExplosion:
		return audio.CueSplat, true
	case EventHit:
		return audio.CueSplat, involved && ev.Killed
	case EventMatchEnd:
		return audio.CueWhistle, true
	default:
		return 0, false
	}
}

func (g *Game) playEvents(events []Event) {
	if g.sound == nil {
		return
	}
	humanID := -1
	if h := g.match.Human(); h != nil {
		humanID = h.ID()
	}
	for _, ev := range events {
		if cue, ok := cueFor(ev, humanID); ok {
			g.sound.Play(cue)
		}
	}
}

func (g *Game) play(c audio.Cue) {
	if g.sound != nil {
		g.sound.Play(c)
	}
}
