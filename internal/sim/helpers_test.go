package sim

import (
	"testing"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
)

// shooterConfig returns the shooter defaults with adaptive difficulty off so
// damage and speeds are exactly as configured.
func shooterConfig() config.GameConfig {
	cfg := config.DefaultShooterConfig()
	cfg.Difficulty.Enabled = false
	cfg.Difficulty.InitialLevel = 0
	return cfg
}

func fishingConfig() config.GameConfig {
	cfg := config.DefaultFishingConfig()
	cfg.Difficulty.Enabled = false
	cfg.Difficulty.InitialLevel = 0
	return cfg
}

func newEngine(t *testing.T, cfg config.GameConfig, field core.Rect, opts ...Option) *Engine {
	t.Helper()
	e, err := New(cfg, field, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

// startQuiet starts a session with automatic spawning switched off so a
// test controls every entity.
func startQuiet(t *testing.T, e *Engine) {
	t.Helper()
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	e.schedulers = nil
}

func insert(t *testing.T, e *Engine, ent Entity) *Entity {
	t.Helper()
	ent.ID = e.store.NextID()
	p := &ent
	if err := e.store.Insert(p); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	return p
}

func hostileAt(x, y float64, health, points int) Entity {
	return Entity{
		Category:  CategoryHostile,
		Motion:    MotionDirectedFall,
		Kind:      "target",
		Pos:       core.V(x, y),
		W:         3,
		H:         1,
		Health:    health,
		MaxHealth: health,
		Points:    points,
	}
}

func countCue(cues []core.Cue, c core.Cue) int {
	n := 0
	for _, x := range cues {
		if x == c {
			n++
		}
	}
	return n
}
