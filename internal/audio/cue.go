package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Cue is one short procedural sound effect.
type Cue uint8

const (
	CueShoot Cue = iota
	CueSplat
	CueBombThrow
	CueSpecial
	CueCountdown
	CueGo
	CueWhistle
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueShoot:
		return "shoot"
	case CueSplat:
		return "splat"
	case CueBombThrow:
		return "bomb_throw"
	case CueSpecial:
		return "special"
	case CueCountdown:
		return "countdown"
	case CueGo:
		return "go"
	case CueWhistle:
		return "whistle"
	default:
		return "unknown"
	}
}

// Cues lists every playable cue.
func Cues() []Cue {
	out := make([]Cue, 0, cueCount)
	for c := Cue(0); c < cueCount; c++ {
		out = append(out, c)
	}
	return out
}

// notes are played back to back; layers within a note are mixed.
var recipes = map[Cue][][]tone{
	CueShoot: {{
		{freq: 660, wave: WaveSquare, length: 60 * time.Millisecond, attack: 2 * time.Millisecond, release: 50 * time.Millisecond, gain: 0.2},
	}},
	CueSplat: {{
		{wave: WaveNoise, length: 120 * time.Millisecond, attack: 5 * time.Millisecond, release: 100 * time.Millisecond, gain: 0.3},
		{freq: 90, wave: WaveSine, length: 120 * time.Millisecond, attack: 5 * time.Millisecond, release: 100 * time.Millisecond, gain: 0.4},
	}},
	CueBombThrow: {{
		{freq: 220, wave: WaveSaw, length: 150 * time.Millisecond, attack: 10 * time.Millisecond, release: 120 * time.Millisecond, gain: 0.25},
	}},
	CueSpecial: {
		{{freq: 440, wave: WaveSine, length: 120 * time.Millisecond, attack: 5 * time.Millisecond, release: 40 * time.Millisecond, gain: 0.4}},
		{{freq: 660, wave: WaveSine, length: 120 * time.Millisecond, attack: 5 * time.Millisecond, release: 40 * time.Millisecond, gain: 0.4}},
		{
			{freq: 880, wave: WaveSine, length: 250 * time.Millisecond, attack: 5 * time.Millisecond, release: 200 * time.Millisecond, gain: 0.35},
			{freq: 1760, wave: WaveSine, length: 250 * time.Millisecond, attack: 5 * time.Millisecond, release: 200 * time.Millisecond, gain: 0.15},
		},
	},
	CueCountdown: {{
		{freq: 440, wave: WaveSine, length: 150 * time.Millisecond, attack: 5 * time.Millisecond, release: 60 * time.Millisecond, gain: 0.4},
	}},
	CueGo: {{
		{freq: 880, wave: WaveSine, length: 300 * time.Millisecond, attack: 5 * time.Millisecond, release: 150 * time.Millisecond, gain: 0.45},
	}},
	CueWhistle: {
		{{freq: 1200, wave: WaveSine, length: 250 * time.Millisecond, attack: 10 * time.Millisecond, release: 20 * time.Millisecond, gain: 0.35}},
		{{freq: 900, wave: WaveSine, length: 400 * time.Millisecond, attack: 10 * time.Millisecond, release: 300 * time.Millisecond, gain: 0.35}},
	},
}

// Length is how long c plays.
func (c Cue) Length() time.Duration {
	var total time.Duration
	for _, note := range recipes[c] {
		var longest time.Duration
		for _, t := range note {
			if t.length > longest {
				longest = t.length
			}
		}
		total += longest
	}
	return total
}

// Synth builds a fresh streamer for c at rate. Unknown cues are silent.
func Synth(c Cue, rate beep.SampleRate) beep.Streamer {
	notes := recipes[c]
	if len(notes) == 0 {
		return beep.Silence(0)
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, note := range notes {
		layers := make([]beep.Streamer, 0, len(note))
		for _, t := range note {
			layers = append(layers, t.streamer(rate))
		}
		if len(layers) == 1 {
			parts = append(parts, layers[0])
			continue
		}
		parts = append(parts, beep.Mix(layers...))
	}
	return beep.Seq(parts...)
}
