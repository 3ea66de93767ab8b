// Package sim implements the fixed-tick arcade simulation shared by the
// games: entity storage, movement, weighted spawning, collisions, particles,
// combo scoring and the play-session state machine.
//
// The engine is driven by a single goroutine calling Tick. It is not safe
// for concurrent use.
package sim

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
)

// CueSink receives the cues fired by each tick. Errors are logged and dropped;
// the engine behaves the same without a sink.
//
// Interactive front ends read Snapshot.Cues instead and play them on their
// own audio device. A sink suits headless drivers and tests that want cues
// pushed to them as they fire.
type CueSink interface {
	Play(cue core.Cue) error
}

// CueSinkFunc adapts a function to CueSink.
type CueSinkFunc func(core.Cue) error

// Play calls f(cue).
func (f CueSinkFunc) Play(cue core.Cue) error {
	return f(cue)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCueSink pushes every tick's cues to s in firing order, the same cues
// the tick's Snapshot carries.
func WithCueSink(s CueSink) Option {
	return func(e *Engine) {
		e.sink = s
	}
}

// WithSeed sets the RNG seed used by every session.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithPreset sets the initial difficulty preset.
func WithPreset(p config.DifficultyPreset) Option {
	return func(e *Engine) {
		e.preset = p
	}
}

type commandKind int

const (
	cmdMove commandKind = iota
	cmdPrimary
)

type command struct {
	kind   commandKind
	dx, dy float64
}

// Engine owns every simulation system and exposes the command surface.
type Engine struct {
	base   config.GameConfig // As loaded
	cfg    config.GameConfig // With the active preset applied
	preset config.DifficultyPreset
	field  core.Rect
	seed   int64

	logger *log.Logger
	sink   CueSink

	rng        *RNG
	state      *SessionState
	machine    *Machine
	store      *Store
	particles  *ParticleSystem
	movement   *Movement
	combo      *ComboTracker
	collisions *Collisions
	difficulty *config.DifficultyManager
	schedulers []*Scheduler

	playerID     EntityID
	hook         Hook
	invulnerable int
	fireCooldown int
	pending      []command
	cues         []core.Cue
}

// New creates an engine in the menu state for a validated config and a
// playfield rectangle in screen cells.
func New(cfg config.GameConfig, field core.Rect, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if field.W <= 0 || field.H <= 0 {
		return nil, fmt.Errorf("sim: empty playfield %vx%v", field.W, field.H)
	}

	e := &Engine{
		base:    cfg,
		field:   field,
		logger:  log.New(io.Discard),
		rng:     NewRNG(0),
		state:   &SessionState{},
		machine: NewMachine(),
		store:   NewStore(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.preset != "" && !validPreset(e.preset) {
		return nil, fmt.Errorf("sim: preset %q: %w", e.preset, ErrUnknownPreset)
	}

	for _, tc := range cfg.Spawn {
		t, err := TableFromConfig(tc)
		s := NewScheduler(t)
		if err != nil {
			s.err = err
		}
		if s.Err() != nil {
			e.logger.Warn("spawn table disabled", "table", tc.Name, "err", s.Err())
		}
		e.schedulers = append(e.schedulers, s)
	}

	e.reset(StatusMenu)
	return e, nil
}

// configure rebuilds the systems from the base config and the active preset.
func (e *Engine) configure() {
	cfg := e.base
	if e.preset != "" {
		config.ApplyPreset(&cfg, e.preset)
	}
	e.cfg = cfg

	e.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	e.particles = NewParticleSystem(cfg.Particles, e.rng)
	e.movement = &Movement{Field: e.field, Margin: cfg.Playfield.Margin, Schooling: cfg.Schooling}
	e.combo = NewComboTracker(e.state, cfg.Combo, cfg.Level)
	e.collisions = NewCollisions(e.store, e.combo, e.particles, cfg)
}

// reset replaces the session and clears every store and deadline.
func (e *Engine) reset(status Status) {
	e.configure()
	e.rng.Seed(e.seed)
	e.store.Clear()
	for _, s := range e.schedulers {
		s.Cancel()
	}

	*e.state = NewSessionState(e.cfg, status)
	e.playerID = 0
	e.hook = Hook{}
	e.invulnerable = 0
	e.fireCooldown = 0
	e.pending = e.pending[:0]
	e.cues = e.cues[:0]

	if status == StatusPlaying {
		e.spawnPlayer()
	}
}

func (e *Engine) spawnPlayer() {
	p := e.cfg.Player
	color, err := core.ParseColor(p.Color)
	if err != nil {
		color = core.ColorDefault
	}

	y := e.field.Bottom() - p.Height
	if p.Anchor == "top" {
		y = e.field.Y
	}
	player := &Entity{
		ID:       e.store.NextID(),
		Category: CategoryPlayer,
		Motion:   MotionPlayerControlled,
		Kind:     "player",
		Pos:      core.V(e.field.X+math.Floor((e.field.W-p.Width)/2), y),
		W:        p.Width,
		H:        p.Height,
		Color:    color,
	}
	if err := e.store.Insert(player); err != nil {
		e.logger.Error("player rejected", "err", err)
		return
	}
	e.playerID = player.ID
}

// Start begins a session from the menu.
func (e *Engine) Start() error {
	if _, err := e.machine.Fire(TransitionStart); err != nil {
		return err
	}
	e.reset(StatusPlaying)
	e.logger.Debug("session started", "preset", e.preset, "seed", e.seed)
	return nil
}

// Pause freezes the session. Queued commands are dropped and spawn
// deadlines keep their remaining wait.
func (e *Engine) Pause() error {
	st, err := e.machine.Fire(TransitionPause)
	if err != nil {
		return err
	}
	e.state.Status = st
	for _, s := range e.schedulers {
		s.Suspend(e.state.Clock)
	}
	e.pending = e.pending[:0]
	e.cues = e.cues[:0]
	return nil
}

// Resume continues a paused session where it stopped.
func (e *Engine) Resume() error {
	st, err := e.machine.Fire(TransitionResume)
	if err != nil {
		return err
	}
	e.state.Status = st
	for _, s := range e.schedulers {
		s.Resume(e.state.Clock)
	}
	return nil
}

// Restart leaves game over, either to the menu or straight into a new session.
func (e *Engine) Restart(toPlaying bool) error {
	t := TransitionRestart
	if toPlaying {
		t = TransitionRestartPlaying
	}
	st, err := e.machine.Fire(t)
	if err != nil {
		return err
	}
	e.reset(st)
	e.logger.Debug("session restarted", "status", st)
	return nil
}

// Quit abandons a paused session and returns to the menu.
func (e *Engine) Quit() error {
	st, err := e.machine.Fire(TransitionQuit)
	if err != nil {
		return err
	}
	e.reset(st)
	return nil
}

// SetDifficulty selects the preset applied by the next start.
// Only valid on the menu or game over screens.
func (e *Engine) SetDifficulty(p config.DifficultyPreset) error {
	if !validPreset(p) {
		return fmt.Errorf("sim: preset %q: %w", p, ErrUnknownPreset)
	}
	if st := e.machine.Status(); st != StatusMenu && st != StatusGameOver {
		return fmt.Errorf("sim: set difficulty while %s: %w", st, ErrInvalidTransition)
	}
	e.preset = p
	return nil
}

// SetSeed replaces the RNG seed used from the next session on.
// Only valid on the menu or game over screens.
func (e *Engine) SetSeed(seed int64) error {
	if st := e.machine.Status(); st != StatusMenu && st != StatusGameOver {
		return fmt.Errorf("sim: set seed while %s: %w", st, ErrInvalidTransition)
	}
	e.seed = seed
	return nil
}

// Seed returns the seed of the current or next session.
func (e *Engine) Seed() int64 {
	return e.seed
}

func validPreset(p config.DifficultyPreset) bool {
	switch p {
	case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		return true
	default:
		return false
	}
}

// MovePlayer queues a move by (dx, dy) units of player speed for the next
// tick. Ignored unless playing, and ignored when either delta is NaN or
// infinite.
func (e *Engine) MovePlayer(dx, dy float64) {
	if e.machine.Status() != StatusPlaying {
		return
	}
	if !core.V(dx, dy).Finite() {
		e.logger.Warn("move dropped", "dx", dx, "dy", dy)
		return
	}
	e.pending = append(e.pending, command{kind: cmdMove, dx: dx, dy: dy})
}

// TriggerPrimaryAction queues a shot or cast for the next tick.
// Ignored unless playing.
func (e *Engine) TriggerPrimaryAction() {
	if e.machine.Status() != StatusPlaying {
		return
	}
	e.pending = append(e.pending, command{kind: cmdPrimary})
}

// Tick advances the simulation one step and returns the resulting snapshot.
// Nothing runs unless the session is playing.
func (e *Engine) Tick() Snapshot {
	e.cues = e.cues[:0]
	if e.machine.Status() != StatusPlaying {
		return e.Snapshot()
	}

	s := e.state
	s.Clock++
	if e.invulnerable > 0 {
		e.invulnerable--
	}
	if e.fireCooldown > 0 {
		e.fireCooldown--
	}

	e.applyCommands()

	e.movement.Update(e.store, 1)
	e.hook.Update(e.cfg.Capture, e.hookDepth(), e.field, e.store)

	e.spawn()

	player, _ := e.store.Get(e.playerID)
	out := e.collisions.Resolve(Contact{
		Player:   player,
		Shielded: e.invulnerable > 0,
		Damage:   e.contactDamage(),
	}, e.activeHook())
	if len(out.Pruned) > 0 {
		e.logger.Debug("pruned non-finite entities", "ids", out.Pruned)
	}
	if out.Hits > 0 {
		e.cue(core.CueHit)
	}
	if out.Captured != 0 {
		e.cue(core.CueCapture)
	}
	if out.Damaged {
		e.invulnerable = e.cfg.Player.InvulnerableTicks
		e.cue(core.CueDamage)
	}

	e.releaseCaptured()
	e.particles.Update()

	if e.combo.CheckLevel() {
		e.cue(core.CueLevelUp)
		e.logger.Debug("level up", "level", s.Level, "score", s.Score)
	}

	if s.TimeLeft > 0 {
		s.TimeLeft--
	}
	if e.combo.Dead() || (e.cfg.Round.TimeLimit > 0 && s.TimeLeft == 0) {
		e.die()
	}

	e.dispatch()
	return e.Snapshot()
}

func (e *Engine) applyCommands() {
	player, ok := e.store.Get(e.playerID)
	for _, c := range e.pending {
		if !ok {
			break
		}
		switch c.kind {
		case cmdMove:
			player.Pos = player.Pos.Add(core.V(c.dx, c.dy).Scale(e.cfg.Player.Speed))
		case cmdPrimary:
			e.primary(player)
		}
	}
	e.pending = e.pending[:0]
}

func (e *Engine) primary(player *Entity) {
	switch e.cfg.Combat.PrimaryAction {
	case "shoot":
		if e.fireCooldown > 0 {
			return
		}
		e.fireCooldown = e.cfg.Combat.FireCooldown
		e.fire(player)
		e.cue(core.CueCast)
	case "cast":
		if e.hook.Cast(core.V(player.Center().X, player.Pos.Y+player.H)) {
			e.cue(core.CueCast)
		} else {
			e.hook.Reel()
		}
	}
}

// fire launches a projectile from the player toward the far side of the field.
func (e *Engine) fire(player *Entity) {
	c := e.cfg.Combat
	w, h := max(c.ProjectileWidth, 1), max(c.ProjectileHeight, 1)
	color, err := core.ParseColor(c.ProjectileColor)
	if err != nil {
		color = core.ColorDefault
	}

	pos := core.V(player.Center().X-w/2, player.Pos.Y-h)
	vel := core.V(0, -c.ProjectileSpeed)
	if e.cfg.Player.Anchor == "top" {
		pos.Y = player.Pos.Y + player.H
		vel.Y = c.ProjectileSpeed
	}

	p := &Entity{
		ID:       e.store.NextID(),
		Category: CategoryProjectile,
		Motion:   MotionDirectedFall,
		Kind:     "projectile",
		Pos:      pos,
		Vel:      vel,
		W:        w,
		H:        h,
		Color:    color,
	}
	if err := e.store.Insert(p); err != nil {
		e.logger.Warn("projectile rejected", "err", err)
	}
}

func (e *Engine) spawn() {
	s := e.state
	speedScale := e.difficulty.SpeedMultiplier(s.Level)
	delayScale := e.difficulty.DelayMultiplier(s.Level)

	for _, sch := range e.schedulers {
		rule, ok := sch.Update(s.Clock, e.machine.Status(), s.Level, delayScale, e.rng)
		if !ok {
			continue
		}
		t := sch.Table()
		if t.MaxAlive > 0 && e.store.CountSource(t.Name) >= t.MaxAlive {
			continue
		}
		for _, ent := range Place(t, rule, e.field, e.cfg.Playfield.Margin, rule.SpeedAt(s.Level)*speedScale, e.rng) {
			ent.ID = e.store.NextID()
			if err := e.store.Insert(ent); err != nil {
				e.logger.Warn("spawn rejected", "table", t.Name, "err", err)
			}
		}
	}
}

// releaseCaptured detaches captured entities once their delay runs out.
// The delay only counts down while the hook is back at the boat.
func (e *Engine) releaseCaptured() {
	if e.hook.State != HookIdle {
		return
	}
	for _, c := range e.store.Category(CategoryCatchable) {
		if !c.Captured {
			continue
		}
		c.ReleaseIn--
		if c.ReleaseIn <= 0 {
			e.store.Remove(c.ID)
		}
	}
}

func (e *Engine) die() {
	st, err := e.machine.Fire(TransitionDeath)
	if err != nil {
		e.logger.Error("death transition", "err", err)
		return
	}
	e.state.Status = st
	for _, s := range e.schedulers {
		s.Cancel()
	}
	e.hook = Hook{}
	e.pending = e.pending[:0]
	e.cue(core.CueGameOver)
	e.logger.Debug("game over", "score", e.state.Score, "level", e.state.Level, "max_combo", e.state.MaxCombo)
}

func (e *Engine) activeHook() *Hook {
	if e.cfg.Combat.PrimaryAction != "cast" {
		return nil
	}
	return &e.hook
}

func (e *Engine) hookDepth() float64 {
	if d := e.cfg.Capture.MaxDepth; d > 0 {
		return min(e.field.Y+d, e.field.Bottom()-1)
	}
	return e.field.Bottom() - 1
}

func (e *Engine) contactDamage() int {
	return int(math.Round(float64(e.cfg.Combat.ContactDamage) * e.difficulty.DamageMultiplier(e.state.Level)))
}

func (e *Engine) cue(c core.Cue) {
	e.cues = append(e.cues, c)
}

// dispatch hands this tick's cues to the sink. Failures never reach the loop.
func (e *Engine) dispatch() {
	if e.sink == nil {
		return
	}
	for _, c := range e.cues {
		if err := e.sink.Play(c); err != nil {
			e.logger.Debug("cue dropped", "cue", c, "err", err)
		}
	}
}

// Snapshot copies the current state. It can be called at any time.
func (e *Engine) Snapshot() Snapshot {
	s := e.state
	snap := Snapshot{
		Tick:         s.Clock,
		Status:       e.machine.Status(),
		Score:        s.Score,
		Combo:        s.Combo,
		MaxCombo:     s.MaxCombo,
		Level:        s.Level,
		Lives:        s.Lives,
		Health:       s.Health,
		TimeLeft:     s.TimeLeft,
		Invulnerable: e.invulnerable,
		FireCooldown: e.fireCooldown,
		Field:        e.field,
		PlayerID:     e.playerID,
		Particles:    e.particles.Particles(),
		Hook:         e.hook,
		RNGState:     e.rng.State(),
	}

	for _, ent := range e.store.All() {
		snap.Entities = append(snap.Entities, *ent)
	}
	if len(e.cues) > 0 {
		snap.Cues = slices.Clone(e.cues)
	}
	for _, sch := range e.schedulers {
		rem, waiting := sch.Remaining(s.Clock)
		snap.Spawns = append(snap.Spawns, SpawnStatus{
			Table:     sch.Table().Name,
			Waiting:   waiting,
			Remaining: rem,
			Disabled:  sch.Err() != nil,
		})
	}
	return snap
}

// State returns a copy of the session state.
func (e *Engine) State() SessionState {
	return *e.state
}

// Status returns the session status.
func (e *Engine) Status() Status {
	return e.machine.Status()
}

// Config returns the config in effect, with the active preset applied.
func (e *Engine) Config() config.GameConfig {
	return e.cfg
}

// Preset returns the selected difficulty preset, empty when none was set.
func (e *Engine) Preset() config.DifficultyPreset {
	return e.preset
}

// Field returns the playfield rectangle.
func (e *Engine) Field() core.Rect {
	return e.field
}
