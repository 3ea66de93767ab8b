package sim

import (
	"math"

	"github.com/vovakirdan/minigames/internal/core"
)

// SpawnStatus is the scheduling state of one spawn table.
type SpawnStatus struct {
	Table     string
	Waiting   bool
	Remaining uint64 // Ticks until the next spawn
	Disabled  bool
}

// Snapshot is the immutable end-of-tick view consumed by renderers and
// audio. It shares no memory with the engine.
type Snapshot struct {
	Tick   uint64 // Play clock, frozen while paused
	Status Status

	Score    int
	Combo    int
	MaxCombo int
	Level    int
	Lives    int
	Health   int
	TimeLeft int

	Invulnerable int // Shield ticks left
	FireCooldown int

	Field     core.Rect
	PlayerID  EntityID
	Entities  []Entity // Id order
	Particles []Particle
	Hook      Hook
	Spawns    []SpawnStatus
	Cues      []core.Cue // Cues fired by the tick that produced the snapshot

	RNGState uint64
}

// Player returns the player entity, if live.
func (s Snapshot) Player() (Entity, bool) {
	for _, e := range s.Entities {
		if e.ID == s.PlayerID && e.Category == CategoryPlayer {
			return e, true
		}
	}
	return Entity{}, false
}

// Count returns the number of live entities of a category.
func (s Snapshot) Count(c Category) int {
	n := 0
	for _, e := range s.Entities {
		if e.Category == c {
			n++
		}
	}
	return n
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s Snapshot) Hash() uint64 {
	h := s.Tick
	h = h*31 + uint64(s.Status)       //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Score)        //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Combo)        //#nosec G115 -- hash computation
	h = h*31 + uint64(s.MaxCombo)     //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Level)        //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Lives)        //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Health)       //#nosec G115 -- hash computation
	h = h*31 + uint64(s.TimeLeft)     //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Invulnerable) //#nosec G115 -- hash computation
	h = h*31 + uint64(s.FireCooldown) //#nosec G115 -- hash computation

	for _, e := range s.Entities {
		h = h*31 + uint64(e.ID)
		h = h*31 + math.Float64bits(e.Pos.X)
		h = h*31 + math.Float64bits(e.Pos.Y)
		h = h*31 + math.Float64bits(e.Vel.X)
		h = h*31 + math.Float64bits(e.Vel.Y)
		h = h*31 + uint64(e.Health) //#nosec G115 -- hash computation
	}

	for _, p := range s.Particles {
		h = h*31 + math.Float64bits(p.Pos.X)
		h = h*31 + math.Float64bits(p.Pos.Y)
		h = h*31 + uint64(p.Life) //#nosec G115 -- hash computation
	}

	h = h*31 + uint64(s.Hook.State) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(s.Hook.Tip.Y)

	for _, sp := range s.Spawns {
		h = h*31 + sp.Remaining
	}

	h = h*31 + s.RNGState

	return h
}
