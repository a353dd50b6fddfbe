// Package audio synthesises and plays the short match sound cues.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the output rate for every cue.
const SampleRate = beep.SampleRate(44100)

// Player owns the speaker and mixes cues onto it. The zero state is silent
// until Init succeeds, so a machine without an audio device still plays.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	ready  bool
	muted  bool
	played map[Cue]int
}

// NewPlayer returns an uninitialised Player.
func NewPlayer(muted bool) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		muted:  muted,
		played: make(map[Cue]int),
	}
}

// Init opens the speaker with a 100ms buffer. Calling it twice is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Play queues c. Muted or uninitialised players only count it.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played[c]++
	if !p.ready || p.muted {
		return
	}
	s := Synth(c, SampleRate)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// SetMuted silences future cues and drops queued ones.
func (p *Player) SetMuted(m bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = m
	if m && p.ready {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
}

// Muted reports whether cues are silenced.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Played returns how many times c was requested.
func (p *Player) Played(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[c]
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.ready = false
}
