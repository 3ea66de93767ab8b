// Package runner adapts the simulation engine to the platform Game interface.
// Each game supplies a Variant describing its config, controls and glyphs;
// the runner owns input mapping, playfield layout and the overlays.
package runner

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/games/draw"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/sim"
)

// Minimum screen size for a playable field.
const (
	MinWidth  = 40
	MinHeight = 12
)

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

// Presets cycled on the title screen.
var presets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

// Variant describes one game built on the engine.
type Variant struct {
	ID       string
	Title    string
	ConfigID string // Key for config.Load

	// Horizontal restricts player movement to the x axis.
	Horizontal bool

	Glyph draw.GlyphFunc

	// Backdrop draws behind the entities. May be nil.
	Backdrop func(dst *core.Screen, snap *sim.Snapshot)

	// Help lines shown on the title screen.
	Help []string
}

// Game runs a Variant.
type Game struct {
	v      Variant
	opts   registry.Options
	logger *log.Logger

	engine *sim.Engine
	snap   sim.Snapshot
	preset config.DifficultyPreset
	err    error

	seed     int64
	sessions int // Sessions started on the current engine

	screenW, screenH int
	tooSmall         bool
}

// New creates a game for a variant. Reset must be called before Step.
func New(v Variant, opts registry.Options) *Game {
	return &Game{
		v:      v,
		opts:   opts,
		logger: opts.Log().WithPrefix(v.ID),
		preset: opts.Difficulty,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.v.ID }

// Title returns the display name.
func (g *Game) Title() string { return g.v.Title }

// Reset loads the config and builds a fresh engine sized for the screen.
// The difficulty chosen on the title screen survives resets.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.screenW, g.screenH = rt.ScreenW, rt.ScreenH
	g.engine = nil
	g.snap = sim.Snapshot{}
	g.err = nil
	g.seed = rt.Seed
	g.sessions = 0
	g.tooSmall = rt.ScreenW < MinWidth || rt.ScreenH < MinHeight
	if g.tooSmall {
		return
	}

	cfg, err := config.Load(g.v.ConfigID, g.opts.ConfigPath)
	if err != nil {
		g.logger.Error("config load failed", "path", g.opts.ConfigPath, "err", err)
		g.err = err
		return
	}

	field := Field(cfg.Playfield, rt.ScreenW, rt.ScreenH)
	opts := []sim.Option{
		sim.WithLogger(g.logger),
		sim.WithSeed(rt.Seed),
	}
	if g.preset != "" {
		opts = append(opts, sim.WithPreset(g.preset))
	}
	e, err := sim.New(cfg, field, opts...)
	if err != nil {
		g.logger.Error("engine setup failed", "err", err)
		g.err = err
		return
	}
	g.engine = e
	g.snap = e.Snapshot()
	g.logger.Debug("reset", "field", fmt.Sprintf("%vx%v", field.W, field.H), "seed", rt.Seed)
}

// Field places the playfield below the HUD. Configured dimensions are
// capped by the screen and centered horizontally.
func Field(pf config.PlayfieldConfig, screenW, screenH int) core.Rect {
	w := float64(screenW)
	h := float64(screenH - hudRows)
	if pf.Width > 0 {
		w = min(pf.Width, w)
	}
	if pf.Height > 0 {
		h = min(pf.Height, h)
	}
	x := math.Floor((float64(screenW) - w) / 2)
	return core.NewRect(x, hudRows, w, h)
}

// Step maps the input frame to engine commands and advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil {
		return core.StepResult{State: g.State()}
	}

	e := g.engine
	var err error
	switch e.Status() {
	case sim.StatusMenu:
		if in.Has(core.ActionLeft) {
			err = g.cyclePreset(-1)
		} else if in.Has(core.ActionRight) {
			err = g.cyclePreset(1)
		}
		if in.Has(core.ActionConfirm) || in.Has(core.ActionPrimary) {
			g.begin()
			err = e.Start()
		}
	case sim.StatusPlaying:
		if in.Has(core.ActionPause) {
			err = e.Pause()
			break
		}
		dx, dy := in.Direction()
		if g.v.Horizontal {
			dy = 0
		}
		if dx != 0 || dy != 0 {
			e.MovePlayer(dx, dy)
		}
		if in.Has(core.ActionPrimary) {
			e.TriggerPrimaryAction()
		}
	case sim.StatusPaused:
		switch {
		case in.Has(core.ActionPause):
			err = e.Resume()
		case in.Has(core.ActionBack):
			err = e.Quit()
		}
	case sim.StatusGameOver:
		switch {
		case in.Has(core.ActionRestart):
			g.begin()
			err = e.Restart(true)
		case in.Has(core.ActionConfirm), in.Has(core.ActionBack):
			err = e.Restart(false)
		}
	}
	if err != nil {
		g.logger.Debug("command rejected", "status", e.Status(), "err", err)
	}

	g.snap = e.Tick()
	return core.StepResult{State: g.State(), Cues: g.snap.Cues}
}

// begin picks the seed of a new session. The first session on an engine
// uses the runtime seed so a given seed replays exactly.
func (g *Game) begin() {
	if g.sessions > 0 {
		g.seed = nextSeed(g.seed)
		if err := g.engine.SetSeed(g.seed); err != nil {
			g.logger.Debug("seed rejected", "err", err)
		}
	}
	g.sessions++
}

func nextSeed(seed int64) int64 {
	x := uint64(seed)*6364136223846793005 + 1442695040888963407 //#nosec G115 -- bit reinterpretation
	return int64(x >> 1)                                         //#nosec G115 -- fits after the shift
}

func (g *Game) cyclePreset(delta int) error {
	idx := 1 // Unset counts as normal
	for i, p := range presets {
		if p == g.preset {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(presets)) % len(presets)
	if err := g.engine.SetDifficulty(presets[idx]); err != nil {
		return err
	}
	g.preset = presets[idx]
	return nil
}

// State reports the session to the platform.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{InMenu: true}
	}
	st := g.engine.Status()
	return core.GameState{
		Score:    g.snap.Score,
		Level:    g.snap.Level,
		MaxCombo: g.snap.MaxCombo,
		GameOver: st == sim.StatusGameOver,
		Paused:   st == sim.StatusPaused,
		InMenu:   st == sim.StatusMenu,
	}
}

// Preset returns the difficulty preset selected for the next session.
func (g *Game) Preset() config.DifficultyPreset { return g.preset }

// Snapshot returns the snapshot of the last tick.
func (g *Game) Snapshot() sim.Snapshot { return g.snap }

// Err returns the setup error of the last Reset, if any.
func (g *Game) Err() error { return g.err }

// Render draws the field, HUD and any status overlay.
func (g *Game) Render(dst *core.Screen) {
	switch {
	case g.tooSmall:
		draw.TooSmall(dst, MinWidth, MinHeight)
		return
	case g.err != nil:
		draw.Message(dst, g.v.Title, "Config error:", g.err.Error(), "", "B to go back")
		return
	case g.engine == nil:
		return
	}

	snap := &g.snap
	if g.v.Backdrop != nil {
		g.v.Backdrop(dst, snap)
	}
	draw.Entities(dst, snap, g.v.Glyph, blinking(snap))
	draw.Particles(dst, snap)
	draw.HUD(dst, 0, snap, g.v.Title)

	switch snap.Status {
	case sim.StatusMenu:
		lines := append([]string{g.v.Title, ""}, g.v.Help...)
		lines = append(lines, "", fmt.Sprintf("< Difficulty: %s >", presetLabel(g.preset)), "", "ENTER to start")
		draw.Message(dst, lines...)
	case sim.StatusPaused:
		draw.Message(dst, "PAUSED", "", "P to resume", "B for title screen")
	case sim.StatusGameOver:
		draw.Message(dst, "GAME OVER", "",
			fmt.Sprintf("Score: %d", snap.Score),
			fmt.Sprintf("Level: %d  Best combo: %d", snap.Level, snap.MaxCombo),
			"", "R to play again", "ENTER for title screen")
	}
}

// blinking hides the player on alternate frames while invulnerable.
func blinking(snap *sim.Snapshot) func(sim.Entity) bool {
	if snap.Invulnerable == 0 {
		return nil
	}
	return func(e sim.Entity) bool {
		return e.ID == snap.PlayerID && (snap.Invulnerable/4)%2 == 1
	}
}

func presetLabel(p config.DifficultyPreset) string {
	if p == "" {
		return "default"
	}
	return string(p)
}
