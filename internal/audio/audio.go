// Package audio plays simulation cues as short synthesized tones.
// Playback is best effort: when no audio device is available the
// player degrades to a silent sink and the game runs unchanged.
package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/minigames/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// DefaultVolume is the linear gain applied to every cue.
const DefaultVolume = 0.3

// Errors returned by Play.
var (
	ErrNotInitialized = errors.New("audio: speaker not initialized")
	ErrUnknownCue     = errors.New("audio: unknown cue")
)

// Sink receives cues. Implemented by *Player and Nop.
type Sink interface {
	Play(cue core.Cue) error
}

// Nop discards every cue.
type Nop struct{}

// Play does nothing.
func (Nop) Play(core.Cue) error { return nil }

// cueNotes maps each cue to its sound.
var cueNotes = map[core.Cue][]Note{
	core.CueCast: {
		{From: 880, To: 660, Duration: 40 * time.Millisecond, Wave: WaveSquare},
	},
	core.CueHit: {
		{From: 220, To: 110, Duration: 60 * time.Millisecond, Wave: WaveSquare},
	},
	core.CueCapture: {
		{From: 523, To: 523, Duration: 60 * time.Millisecond, Wave: WaveTriangle},
		{From: 784, To: 784, Duration: 90 * time.Millisecond, Wave: WaveTriangle},
	},
	core.CueDamage: {
		{From: 160, To: 80, Duration: 150 * time.Millisecond, Wave: WaveSquare},
	},
	core.CueLevelUp: {
		{From: 523, To: 523, Duration: 70 * time.Millisecond, Wave: WaveSine},
		{From: 659, To: 659, Duration: 70 * time.Millisecond, Wave: WaveSine},
		{From: 784, To: 784, Duration: 120 * time.Millisecond, Wave: WaveSine},
	},
	core.CueGameOver: {
		{From: 392, To: 392, Duration: 150 * time.Millisecond, Wave: WaveTriangle},
		{From: 330, To: 330, Duration: 150 * time.Millisecond, Wave: WaveTriangle},
		{From: 262, To: 196, Duration: 300 * time.Millisecond, Wave: WaveTriangle},
	},
}

// Player mixes cue tones into the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
}

// NewPlayer creates a player. Initialize must succeed before cues are heard.
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues the tone for a cue. Muted players accept and drop cues.
func (p *Player) Play(cue core.Cue) error {
	s, err := Streamer(cue, p.volume)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.muted {
		return nil
	}
	if !p.initialized {
		return ErrNotInitialized
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// SetMuted toggles output without closing the device.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Muted reports whether output is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// Streamer builds the finite stream for a cue.
func Streamer(cue core.Cue, volume float64) (beep.Streamer, error) {
	notes, ok := cueNotes[cue]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCue, cue)
	}
	return sequence(notes, sampleRate, volume), nil
}

// Open returns a ready player, or Nop when muted or when the speaker
// cannot be opened. The returned close function is always safe to call.
func Open(muted bool) (Sink, func(), error) {
	if muted {
		return Nop{}, func() {}, nil
	}
	p := NewPlayer(DefaultVolume)
	if err := p.Initialize(); err != nil {
		return Nop{}, func() {}, err
	}
	return p, p.Close, nil
}
