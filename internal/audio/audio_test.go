package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/minigames/internal/core"
)

// drain streams s to completion and returns all samples.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for range 10000 {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("stream never ended")
	return nil
}

func TestEveryCueHasASound(t *testing.T) {
	cues := []core.Cue{core.CueCast, core.CueHit, core.CueCapture, core.CueDamage, core.CueLevelUp, core.CueGameOver}

	for _, cue := range cues {
		t.Run(string(cue), func(t *testing.T) {
			s, err := Streamer(cue, DefaultVolume)
			if err != nil {
				t.Fatalf("Streamer: %v", err)
			}

			var want int
			for _, n := range cueNotes[cue] {
				want += sampleRate.N(n.Duration)
			}
			samples := drain(t, s)
			if len(samples) != want {
				t.Errorf("len = %d, want %d", len(samples), want)
			}

			peak := 0.0
			for _, smp := range samples {
				peak = max(peak, math.Abs(smp[0]))
			}
			if peak == 0 || peak > DefaultVolume+1e-9 {
				t.Errorf("peak = %v, want (0, %v]", peak, DefaultVolume)
			}
		})
	}
}

func TestUnknownCue(t *testing.T) {
	_, err := Streamer(core.Cue("explode"), 1)
	if !errors.Is(err, ErrUnknownCue) {
		t.Errorf("err = %v, want ErrUnknownCue", err)
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	s, err := Streamer(core.CueHit, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i, smp := range drain(t, s) {
		if smp[0] != 0 || smp[1] != 0 {
			t.Fatalf("sample %d = %v, want silence", i, smp)
		}
	}
}

func TestToneFades(t *testing.T) {
	n := Note{From: 440, To: 440, Duration: 100 * time.Millisecond, Wave: WaveSquare}
	samples := drain(t, newTone(n, sampleRate))

	last := samples[len(samples)-1][0]
	if math.Abs(last) > 0.01 {
		t.Errorf("last sample = %v, want near silence", last)
	}
	if samples[0][0] != 0 {
		t.Errorf("first sample = %v, want 0 at attack start", samples[0][0])
	}
}

func TestPlayerWithoutSpeaker(t *testing.T) {
	p := NewPlayer(DefaultVolume)

	if err := p.Play(core.CueHit); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Play before init: err = %v, want ErrNotInitialized", err)
	}

	p.SetMuted(true)
	if err := p.Play(core.CueHit); err != nil {
		t.Errorf("Play while muted: %v", err)
	}
	if !p.Muted() {
		t.Error("Muted() = false")
	}

	// Close without Initialize must not panic.
	p.Close()
}

func TestOpenMuted(t *testing.T) {
	sink, closeFn, err := Open(true)
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()

	if _, ok := sink.(Nop); !ok {
		t.Errorf("sink = %T, want Nop", sink)
	}
	if err := sink.Play(core.CueGameOver); err != nil {
		t.Errorf("Nop.Play: %v", err)
	}
}
