package sim

import (
	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
)

// HookState is the phase of a fishing line.
type HookState int

const (
	HookIdle HookState = iota
	HookDescending
	HookReeling
)

// String returns the phase name.
func (s HookState) String() string {
	switch s {
	case HookIdle:
		return "idle"
	case HookDescending:
		return "descending"
	case HookReeling:
		return "reeling"
	default:
		return "unknown"
	}
}

// Hook is the capturing point of cast-style games. The line runs straight
// down from Origin to Tip.
type Hook struct {
	State  HookState
	Origin core.Vec
	Tip    core.Vec
	Caught EntityID
}

// Cast drops the hook from origin. Returns false if a line is already out.
func (h *Hook) Cast(origin core.Vec) bool {
	if h.State != HookIdle {
		return false
	}
	*h = Hook{State: HookDescending, Origin: origin, Tip: origin}
	return true
}

// Reel starts pulling a descending hook back early.
func (h *Hook) Reel() bool {
	if h.State != HookDescending {
		return false
	}
	h.State = HookReeling
	return true
}

// Update moves the tip and drags a caught entity along with it.
// depth is the lowest y the tip may reach.
func (h *Hook) Update(cfg config.CaptureConfig, depth float64, field core.Rect, store *Store) {
	switch h.State {
	case HookDescending:
		h.Tip.Y += cfg.HookSpeed
		if h.Tip.Y >= depth {
			h.Tip.Y = depth
			h.State = HookReeling
		}
	case HookReeling:
		h.Tip.Y -= cfg.ReelSpeed
		if h.Tip.Y <= h.Origin.Y {
			*h = Hook{}
			return
		}
	default:
		return
	}

	if e, ok := store.Get(h.Caught); ok && e.Captured {
		e.Pos.X = core.ClampF(h.Tip.X-e.W/2, field.X, max(field.Right()-e.W, field.X))
		e.Pos.Y = core.ClampF(h.Tip.Y-e.H/2, field.Y, max(field.Bottom()-e.H, field.Y))
	}
}
