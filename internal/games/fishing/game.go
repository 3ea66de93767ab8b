// Package fishing implements Deep Sea Fishing.
// A boat drifts along the surface and casts a hook into schools of fish;
// jellyfish rise from the depths and sting the boat on contact.
package fishing

import (
	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/games/draw"
	"github.com/vovakirdan/minigames/internal/games/runner"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/sim"
)

// ID is the registry key of the game.
const ID = "fishing"

// Visual characters for rendering
const (
	WaveChar = '~'
	LineChar = '│'
	HookChar = 'J'
)

// Fish glyphs facing right; left-facing ones are mirrored.
var fishRight = map[string]string{
	"sardine":   "=>",
	"clownfish": "}>",
	"tuna":      ">==>",
	"goldfish":  "o>",
}

var fishLeft = map[string]string{
	"sardine":   "<=",
	"clownfish": "<{",
	"tuna":      "<==<",
	"goldfish":  "<o",
}

var otherGlyphs = map[string][]string{
	"player":    {"\\__A__/"},
	"jellyfish": {"()", "ll"},
}

func init() {
	registry.Register(ID, func(opts registry.Options) registry.Game {
		return New(opts)
	})
}

// New creates a Deep Sea Fishing game.
func New(opts registry.Options) *runner.Game {
	return runner.New(Variant(), opts)
}

// Variant describes Deep Sea Fishing to the runner.
func Variant() runner.Variant {
	return runner.Variant{
		ID:         ID,
		Title:      "Deep Sea Fishing",
		ConfigID:   config.GameFishing,
		Horizontal: true,
		Glyph:      Glyph,
		Backdrop:   water,
		Help: []string{
			"Left/Right steer the boat",
			"SPACE casts, again to reel in",
			"Avoid the jellyfish",
		},
	}
}

// Glyph returns the rows used to draw an entity. Fish face their heading.
func Glyph(e sim.Entity) []string {
	if e.Category == sim.CategoryCatchable {
		src := fishRight
		if e.Vel.X < 0 {
			src = fishLeft
		}
		if g, ok := src[e.Kind]; ok {
			return []string{g}
		}
		return nil
	}
	return otherGlyphs[e.Kind]
}

// water draws the surface below the boat and the fishing line.
func water(dst *core.Screen, snap *sim.Snapshot) {
	f := snap.Field
	surface := draw.Cell(f.Y) + 1
	for x := draw.Cell(f.X); x < draw.Cell(f.Right()); x++ {
		dst.SetColored(x, surface, WaveChar, core.ColorBlue)
	}

	h := snap.Hook
	if h.State == sim.HookIdle {
		return
	}
	x := draw.Cell(h.Tip.X)
	tip := draw.Cell(h.Tip.Y)
	for y := draw.Cell(h.Origin.Y); y < tip; y++ {
		dst.SetColored(x, y, LineChar, core.ColorWhite)
	}
	dst.SetColored(x, tip, HookChar, core.ColorBrightWhite)
}
