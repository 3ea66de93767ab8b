// Package draw renders simulation snapshots into the platform screen buffer.
// Games supply glyphs; layout of HUD, particles and message boxes is shared.
package draw

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/sim"
)

// Visual characters shared by the games
const (
	HeartChar    = '♥'
	ParticleHot  = '*'
	ParticleWarm = '+'
	ParticleCool = '.'
)

// Cell converts a playfield coordinate to a screen cell.
func Cell(v float64) int {
	return int(math.Floor(v))
}

// GlyphFunc returns the text rows used to draw an entity.
// Rows shorter than the entity are padded with their last rune.
type GlyphFunc func(e sim.Entity) []string

// Entities draws every entity of the snapshot with glyphs from fn.
// skip may hide individual entities (e.g. a blinking player); it may be nil.
func Entities(dst *core.Screen, snap *sim.Snapshot, fn GlyphFunc, skip func(sim.Entity) bool) {
	for _, e := range snap.Entities {
		if skip != nil && skip(e) {
			continue
		}
		Entity(dst, e, fn(e))
	}
}

// Entity draws one entity's glyph rows at its cell position.
func Entity(dst *core.Screen, e sim.Entity, rows []string) {
	x0, y0 := Cell(e.Pos.X), Cell(e.Pos.Y)
	w, h := max(int(math.Round(e.W)), 1), max(int(math.Round(e.H)), 1)

	for dy := range h {
		var row []rune
		if len(rows) > 0 {
			row = []rune(rows[min(dy, len(rows)-1)])
		}
		for dx := range w {
			r := '█'
			if len(row) > 0 {
				r = row[min(dx, len(row)-1)]
			}
			dst.SetColored(x0+dx, y0+dy, r, e.Color)
		}
	}
}

// Particles draws particles with a glyph that fades with their alpha.
func Particles(dst *core.Screen, snap *sim.Snapshot) {
	for _, p := range snap.Particles {
		dst.SetColored(Cell(p.Pos.X), Cell(p.Pos.Y), ParticleGlyph(p.Alpha()), p.Color)
	}
}

// ParticleGlyph picks a glyph for a fade factor.
func ParticleGlyph(alpha float64) rune {
	switch {
	case alpha > 0.66:
		return ParticleHot
	case alpha > 0.33:
		return ParticleWarm
	default:
		return ParticleCool
	}
}

// HUD draws the status line on row y.
func HUD(dst *core.Screen, y int, snap *sim.Snapshot, title string) {
	dst.FillRect(0, y, dst.Width(), 1, ' ', core.ColorDefault)

	left := fmt.Sprintf(" %s  Score: %d  Lv %d", title, snap.Score, snap.Level)
	dst.DrawTextColored(0, y, left, core.ColorBrightWhite)
	x := len([]rune(left)) + 2

	if snap.Combo > 1 {
		combo := fmt.Sprintf("Combo x%d", snap.Combo)
		dst.DrawTextColored(x, y, combo, core.ColorBrightYellow)
		x += len(combo) + 2
	}

	var right strings.Builder
	if snap.TimeLeft > 0 {
		fmt.Fprintf(&right, "%s  ", Clock(snap.TimeLeft))
	}
	fmt.Fprintf(&right, "HP %d", snap.Health)
	if snap.Lives > 0 {
		right.WriteString("  ")
		right.WriteString(strings.Repeat(string(HeartChar), min(snap.Lives, 9)))
	}
	text := right.String()
	rx := max(dst.Width()-len([]rune(text))-1, x)
	dst.DrawTextColored(rx, y, text, core.ColorBrightRed)
}

// Clock formats a tick count at 60 ticks per second as m:ss.
func Clock(ticks int) string {
	secs := (ticks + 59) / 60
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Message draws a boxed message centered on the screen.
func Message(dst *core.Screen, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)
	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(x, boxY+1+i, l, core.ColorBrightWhite)
	}
}

// TooSmall draws the minimum size notice.
func TooSmall(dst *core.Screen, minW, minH int) {
	dst.Clear()
	dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Terminal too small (need %dx%d)", minW, minH))
}
