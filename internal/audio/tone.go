package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// Note is one segment of a cue: a frequency sweep with a fade out.
type Note struct {
	From, To float64 // Hz
	Duration time.Duration
	Wave     WaveType
}

// tone streams a single Note and stops when it is done.
type tone struct {
	note     Note
	rate     beep.SampleRate
	phase    float64
	position int
	samples  int
}

func newTone(n Note, rate beep.SampleRate) *tone {
	return &tone{note: n, rate: rate, samples: rate.N(n.Duration)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.samples {
			return i, i > 0
		}
		progress := float64(t.position) / float64(t.samples)
		freq := t.note.From + (t.note.To-t.note.From)*progress

		var val float64
		switch t.note.Wave {
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(t.phase-0.5) - 1
		default:
			val = math.Sin(2 * math.Pi * t.phase)
		}

		// Short attack, linear release
		env := min(float64(t.position)/float64(t.rate.N(5*time.Millisecond)+1), 1) * (1 - progress)
		val *= env

		samples[i][0] = val
		samples[i][1] = val

		t.phase += freq / float64(t.rate)
		if t.phase >= 1 {
			t.phase -= 1
		}
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// sequence plays notes back to back at the given volume (0..1).
func sequence(notes []Note, rate beep.SampleRate, volume float64) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = newTone(n, rate)
	}
	return newVolume(beep.Seq(parts...), volume)
}

// newVolume wraps s with a linear gain. Zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
