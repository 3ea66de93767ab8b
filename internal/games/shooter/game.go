// Package shooter implements Star Defender, a vertical shooter.
// The ship holds the bottom row and fires upward at waves of invaders
// falling from the top of the field.
package shooter

import (
	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/games/draw"
	"github.com/vovakirdan/minigames/internal/games/runner"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/sim"
)

// ID is the registry key of the game.
const ID = "shooter"

// Visual characters for rendering
const (
	StarChar   = '.'
	StarSparse = 61 // One star per this many cells on average
)

var glyphs = map[string][]string{
	"player":     {"/-^-\\"},
	"projectile": {"|"},
	"scout":      {"\\V/"},
	"raider":     {"\\W/", "/ \\"},
	"bomber":     {"[###]", "\\###/"},
	"comet":      {"*"},
	"mothership": {"<=@@@=>", " \\_|_/ "},
}

func init() {
	registry.Register(ID, func(opts registry.Options) registry.Game {
		return New(opts)
	})
}

// New creates a Star Defender game.
func New(opts registry.Options) *runner.Game {
	return runner.New(Variant(), opts)
}

// Variant describes Star Defender to the runner.
func Variant() runner.Variant {
	return runner.Variant{
		ID:       ID,
		Title:    "Star Defender",
		ConfigID: config.GameShooter,
		Glyph:    Glyph,
		Backdrop: stars,
		Help: []string{
			"Arrows/WASD move the ship",
			"SPACE fires",
			"Chain kills for combo bonus",
		},
	}
}

// Glyph returns the rows used to draw an entity; unknown kinds are solid.
func Glyph(e sim.Entity) []string {
	return glyphs[e.Kind]
}

// stars scatters a fixed starfield over the playfield.
func stars(dst *core.Screen, snap *sim.Snapshot) {
	f := snap.Field
	x0, y0 := draw.Cell(f.X), draw.Cell(f.Y)
	for y := y0; y < draw.Cell(f.Bottom()); y++ {
		for x := x0; x < draw.Cell(f.Right()); x++ {
			if starAt(x, y) {
				dst.SetColored(x, y, StarChar, core.ColorGray)
			}
		}
	}
}

func starAt(x, y int) bool {
	h := uint32(x)*73856093 ^ uint32(y)*19349663 //#nosec G115 -- screen coordinates are small and non-negative
	return h%StarSparse == 0
}
