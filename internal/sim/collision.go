package sim

import (
	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
)

// Outcome summarizes what the collision pass resolved in one tick.
type Outcome struct {
	Hits     int        // Projectiles that landed
	Kills    []EntityID // Hostiles destroyed by projectiles
	Contacts int        // Hostiles that touched the player
	Damaged  bool       // Player took damage (not shielded)
	LifeLost bool
	Captured EntityID // Catchable hooked this tick, 0 if none
	Pruned   []EntityID
}

// Collisions resolves entity interactions in a fixed order:
// projectiles against hostiles, hostiles against the player, then the hook
// against catchables.
type Collisions struct {
	store     *Store
	combo     *ComboTracker
	particles *ParticleSystem
	combat    config.CombatConfig
	capture   config.CaptureConfig
	burst     int
}

// NewCollisions wires the collision pass to the systems it mutates.
func NewCollisions(store *Store, combo *ComboTracker, particles *ParticleSystem, cfg config.GameConfig) *Collisions {
	return &Collisions{
		store:     store,
		combo:     combo,
		particles: particles,
		combat:    cfg.Combat,
		capture:   cfg.Capture,
		burst:     cfg.Particles.BurstCount,
	}
}

// Contact describes the player side of the contact phase.
type Contact struct {
	Player   *Entity
	Shielded bool // Invulnerability window active
	Damage   int  // Contact damage after difficulty scaling
}

// Resolve runs every phase once. hook may be nil for games without one.
func (c *Collisions) Resolve(contact Contact, hook *Hook) Outcome {
	var out Outcome
	out.Pruned = c.pruneNonFinite()
	c.projectiles(&out)
	c.contact(contact, &out)
	if hook != nil {
		c.hook(hook, &out)
	}
	return out
}

// pruneNonFinite removes entities whose coordinates cannot take part in
// overlap tests.
func (c *Collisions) pruneNonFinite() []EntityID {
	var pruned []EntityID
	for _, e := range c.store.All() {
		if !e.Finite() {
			pruned = append(pruned, e.ID)
			c.store.Remove(e.ID)
		}
	}
	return pruned
}

// projectiles consumes each projectile on its first overlapping hostile.
// Consumed projectiles are removed once the phase is done.
func (c *Collisions) projectiles(out *Outcome) {
	hostiles := c.store.Category(CategoryHostile)
	var consumed []EntityID

	for _, p := range c.store.Category(CategoryProjectile) {
		pb := p.Bounds()
		for _, h := range hostiles {
			if h.Dead() || !pb.Intersects(h.Bounds()) {
				continue
			}

			consumed = append(consumed, p.ID)
			out.Hits++
			h.Health -= c.combat.ProjectileDamage
			if h.Dead() {
				c.store.Remove(h.ID)
				c.combo.Kill(h.Points)
				c.particles.EmitBurst(h.Center(), h.Color, c.burst, "kill")
				out.Kills = append(out.Kills, h.ID)
			}
			break
		}
	}

	for _, id := range consumed {
		c.store.Remove(id)
	}
}

// contact removes every hostile touching the player and applies damage
// unless the player is shielded. Damage lands at most once per tick.
func (c *Collisions) contact(contact Contact, out *Outcome) {
	player := contact.Player
	if player == nil {
		return
	}
	shielded := contact.Shielded
	pb := player.Bounds()

	for _, h := range c.store.Category(CategoryHostile) {
		if !pb.Intersects(h.Bounds()) {
			continue
		}
		c.store.Remove(h.ID)
		out.Contacts++
		c.particles.EmitBurst(h.Center(), h.Color, c.burst/2, "contact")

		if shielded {
			continue
		}
		out.Damaged = true
		if c.combo.Damage(contact.Damage) {
			out.LifeLost = true
		}
		shielded = true
	}
}

// hook captures the first catchable (in id order) whose center lies within
// its capture radius of the hook tip. One capture per cast.
func (c *Collisions) hook(h *Hook, out *Outcome) {
	if h.State != HookDescending {
		return
	}

	for _, e := range c.store.Category(CategoryCatchable) {
		if e.Captured {
			continue
		}
		r := e.CaptureRadius
		if r <= 0 {
			r = c.capture.Radius
		}
		if core.DistanceSquared(h.Tip, e.Center()) >= r*r {
			continue
		}

		e.Captured = true
		e.Vel = core.Vec{}
		e.ReleaseIn = max(c.capture.ReleaseDelay, 1)
		c.combo.Capture(e.Points)
		c.particles.EmitBurst(e.Center(), e.Color, c.burst, "capture")

		h.State = HookReeling
		h.Caught = e.ID
		out.Captured = e.ID
		return
	}
}
