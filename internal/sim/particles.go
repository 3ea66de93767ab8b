package sim

import (
	"math"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
)

// Particle is a short-lived visual effect. It never takes part in gameplay.
type Particle struct {
	Pos         core.Vec
	Vel         core.Vec
	Life        int // Ticks remaining
	InitialLife int
	Color       core.Color
	Size        float64
	Origin      string // What emitted it ("kill", "capture", "damage")
}

// Alpha returns the fade factor in (0, 1] for renderers.
func (p Particle) Alpha() float64 {
	if p.InitialLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.InitialLife)
}

// ParticleSystem owns the transient particle collection.
type ParticleSystem struct {
	cfg   config.ParticleConfig
	rng   *RNG
	items []Particle
}

// NewParticleSystem creates an empty particle system drawing from rng.
func NewParticleSystem(cfg config.ParticleConfig, rng *RNG) *ParticleSystem {
	return &ParticleSystem{cfg: cfg, rng: rng}
}

// EmitBurst creates count particles at origin inside an upward cone.
func (ps *ParticleSystem) EmitBurst(origin core.Vec, color core.Color, count int, tag string) {
	if count <= 0 || ps.cfg.Life <= 0 {
		return
	}

	for range count {
		angle := -math.Pi/2 + ps.rng.Range(-ps.cfg.Spread, ps.cfg.Spread)
		speed := ps.cfg.Speed * ps.rng.Range(0.5, 1.0)
		ps.items = append(ps.items, Particle{
			Pos:         origin,
			Vel:         core.V(math.Cos(angle)*speed, math.Sin(angle)*speed-ps.cfg.UpwardBias),
			Life:        ps.cfg.Life,
			InitialLife: ps.cfg.Life,
			Color:       color,
			Size:        ps.cfg.Size,
			Origin:      tag,
		})
	}

	// Drop the oldest particles past the cap
	if limit := ps.cfg.MaxParticles; limit > 0 && len(ps.items) > limit {
		ps.items = append(ps.items[:0], ps.items[len(ps.items)-limit:]...)
	}
}

// Update integrates, damps and ages every particle, pruning expired ones.
func (ps *ParticleSystem) Update() {
	alive := ps.items[:0]
	for _, p := range ps.items {
		p.Pos = p.Pos.Add(p.Vel)
		p.Vel = p.Vel.Scale(ps.cfg.Damping)
		p.Life--
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	clear(ps.items[len(alive):])
	ps.items = alive
}

// Particles returns a copy of the live particles.
func (ps *ParticleSystem) Particles() []Particle {
	if len(ps.items) == 0 {
		return nil
	}
	out := make([]Particle, len(ps.items))
	copy(out, ps.items)
	return out
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int {
	return len(ps.items)
}

// Clear removes every particle.
func (ps *ParticleSystem) Clear() {
	ps.items = ps.items[:0]
}
