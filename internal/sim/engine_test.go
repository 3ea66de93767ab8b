package sim

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
)

var shooterField = core.NewRect(0, 0, 205, 150)

func TestTwoProjectileKillScenario(t *testing.T) {
	e := newEngine(t, shooterConfig(), shooterField)
	startQuiet(t, e)

	h := hostileAt(100, 100, 50, 10)
	target := insert(t, e, h)

	hits := 0
	for i := 0; i < 300; i++ {
		if _, alive := e.store.Get(target.ID); !alive {
			break
		}
		e.TriggerPrimaryAction()
		snap := e.Tick()
		hits += countCue(snap.Cues, core.CueHit)
	}

	if _, alive := e.store.Get(target.ID); alive {
		t.Fatal("hostile survived")
	}
	st := e.State()
	if hits != 2 {
		t.Errorf("hits = %d, want 2", hits)
	}
	if st.Score != 10 {
		t.Errorf("score = %d, want 10 (points once)", st.Score)
	}
	if st.Combo != 1 {
		t.Errorf("combo = %d, want 1", st.Combo)
	}
}

func TestContactDamageResetsComboOnTick(t *testing.T) {
	e := newEngine(t, shooterConfig(), shooterField)
	startQuiet(t, e)
	e.state.Combo = 9

	player, _ := e.store.Get(e.playerID)
	h := hostileAt(player.Pos.X, player.Pos.Y, 25, 10)
	insert(t, e, h)

	snap := e.Tick()
	if snap.Combo != 0 {
		t.Errorf("combo = %d, want 0", snap.Combo)
	}
	if snap.Health != 75 {
		t.Errorf("health = %d, want 75", snap.Health)
	}
	if snap.Invulnerable != e.cfg.Player.InvulnerableTicks {
		t.Errorf("invulnerable = %d, want %d", snap.Invulnerable, e.cfg.Player.InvulnerableTicks)
	}
	if countCue(snap.Cues, core.CueDamage) != 1 {
		t.Errorf("cues = %v, want one damage cue", snap.Cues)
	}

	// A second contact inside the shield window costs nothing
	insert(t, e, hostileAt(player.Pos.X, player.Pos.Y, 25, 10))
	snap = e.Tick()
	if snap.Health != 75 || snap.Count(CategoryHostile) != 0 {
		t.Errorf("shielded contact: health %d hostiles %d", snap.Health, snap.Count(CategoryHostile))
	}
}

func TestDeathAndRestart(t *testing.T) {
	cfg := shooterConfig()
	cfg.Player.Lives = 1
	cfg.Player.Health = 25
	var played []core.Cue
	e := newEngine(t, cfg, shooterField, WithCueSink(CueSinkFunc(func(c core.Cue) error {
		played = append(played, c)
		return nil
	})))
	startQuiet(t, e)

	e.state.Score = 120
	player, _ := e.store.Get(e.playerID)
	insert(t, e, hostileAt(player.Pos.X, player.Pos.Y, 25, 10))

	snap := e.Tick()
	if snap.Status != StatusGameOver {
		t.Fatalf("status = %s, want gameOver", snap.Status)
	}
	if countCue(played, core.CueGameOver) != 1 {
		t.Errorf("sink got %v, want a gameOver cue", played)
	}

	// Only restart leaves game over
	if err := e.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start from gameOver err = %v", err)
	}
	if err := e.Resume(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Resume from gameOver err = %v", err)
	}
	frozen := e.Tick()
	if frozen.Tick != snap.Tick {
		t.Error("clock advanced after game over")
	}

	for _, toPlaying := range []bool{false, true} {
		if toPlaying {
			// Get back to game over first
			e.schedulers = nil
			p, _ := e.store.Get(e.playerID)
			insert(t, e, hostileAt(p.Pos.X, p.Pos.Y, 25, 10))
			if s := e.Tick(); s.Status != StatusGameOver {
				t.Fatalf("status = %s, want gameOver", s.Status)
			}
		}

		if err := e.Restart(toPlaying); err != nil {
			t.Fatalf("Restart(%v): %v", toPlaying, err)
		}
		snap = e.Snapshot()
		want := StatusMenu
		if toPlaying {
			want = StatusPlaying
		}
		if snap.Status != want || snap.Score != 0 || snap.Combo != 0 || snap.Level != 1 {
			t.Errorf("after Restart(%v): status %s score %d combo %d level %d", toPlaying, snap.Status, snap.Score, snap.Combo, snap.Level)
		}
		if len(snap.Particles) != 0 {
			t.Errorf("particles left after restart: %d", len(snap.Particles))
		}
		if toPlaying {
			if len(snap.Entities) != 1 || snap.Entities[0].Category != CategoryPlayer {
				t.Errorf("entities after restart: %+v", snap.Entities)
			}
		} else if len(snap.Entities) != 0 {
			t.Errorf("entities after restart to menu: %d", len(snap.Entities))
		}
		if err := e.Start(); toPlaying == (err == nil) {
			t.Errorf("Start after Restart(%v) err = %v", toPlaying, err)
		}
	}
}

func TestPauseFreezesSnapshot(t *testing.T) {
	e := newEngine(t, shooterConfig(), shooterField, WithSeed(42))
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	for i := range 120 {
		e.MovePlayer(float64(i%3-1), 0)
		if i%4 == 0 {
			e.TriggerPrimaryAction()
		}
		e.Tick()
	}
	if e.Status() != StatusPlaying {
		t.Fatalf("status = %s before pause", e.Status())
	}

	e.MovePlayer(1, 0) // queued, dropped by pause
	if err := e.Pause(); err != nil {
		t.Fatal(err)
	}
	before := e.Snapshot()
	if len(before.Entities) < 2 {
		t.Fatalf("expected spawned entities, got %d", len(before.Entities))
	}

	for range 100 {
		e.MovePlayer(1, 1)
		e.TriggerPrimaryAction()
		got := e.Tick()
		if !reflect.DeepEqual(got, before) {
			t.Fatalf("paused tick changed the snapshot")
		}
		if got.Hash() != before.Hash() {
			t.Fatalf("hash changed while paused")
		}
	}

	if err := e.Resume(); err != nil {
		t.Fatal(err)
	}
	after := e.Tick()
	if after.Tick != before.Tick+1 {
		t.Errorf("clock = %d, want %d", after.Tick, before.Tick+1)
	}
	for i, sp := range before.Spawns {
		if sp.Waiting && sp.Remaining > 1 && after.Spawns[i].Remaining != sp.Remaining-1 {
			t.Errorf("table %s: remaining %d after resume, want %d", sp.Table, after.Spawns[i].Remaining, sp.Remaining-1)
		}
	}
	p, _ := after.Player()
	bp, _ := before.Player()
	if p.Pos != bp.Pos {
		t.Errorf("command issued while paused moved the player: %v -> %v", bp.Pos, p.Pos)
	}
}

func TestBoundsInvariant(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.GameConfig
		field core.Rect
	}{
		{"shooter", shooterConfig(), core.NewRect(0, 1, 80, 23)},
		{"fishing", fishingConfig(), core.NewRect(0, 1, 80, 23)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, tt.cfg, tt.field, WithSeed(7))
			if err := e.Start(); err != nil {
				t.Fatal(err)
			}
			outer := tt.field.Inset(-tt.cfg.Playfield.Margin)
			rng := NewRNG(11)

			for tick := range 3000 {
				e.MovePlayer(float64(rng.Intn(3)-1), float64(rng.Intn(3)-1))
				if rng.Intn(5) == 0 {
					e.TriggerPrimaryAction()
				}
				snap := e.Tick()

				for _, ent := range snap.Entities {
					area := tt.field
					if ent.Motion == MotionDirectedFall {
						area = outer
					}
					if !area.ContainsRect(ent.Bounds()) {
						t.Fatalf("tick %d: %s %d (%s) out of bounds at %+v", tick, ent.Category, ent.ID, ent.Motion, ent.Bounds())
					}
					if ent.Dead() {
						t.Fatalf("tick %d: dead entity %d survived", tick, ent.ID)
					}
				}
				for _, p := range snap.Particles {
					if p.Life <= 0 {
						t.Fatalf("tick %d: expired particle kept", tick)
					}
				}
				if snap.Status == StatusGameOver {
					break
				}
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		e := newEngine(t, fishingConfig(), core.NewRect(0, 1, 80, 23), WithSeed(12345))
		if err := e.Start(); err != nil {
			t.Fatal(err)
		}
		var snap Snapshot
		for i := range 600 {
			if i%7 < 3 {
				e.MovePlayer(1, 0)
			} else {
				e.MovePlayer(-1, 0)
			}
			if i%40 == 0 {
				e.TriggerPrimaryAction()
			}
			snap = e.Tick()
		}
		return snap
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("hashes differ: %d vs %d", a.Hash(), b.Hash())
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("snapshots differ for identical seed and input")
	}
}

func TestHookCaptureThroughEngine(t *testing.T) {
	cfg := fishingConfig()
	e := newEngine(t, cfg, core.NewRect(0, 0, 80, 30))
	startQuiet(t, e)

	player, _ := e.store.Get(e.playerID)
	c := player.Center()
	fish := insert(t, e, Entity{
		Category: CategoryCatchable,
		Motion:   MotionLinearReflecting,
		Kind:     "tuna",
		Pos:      core.V(c.X-1, 10),
		W:        2,
		H:        1,
		Points:   25,
	})

	e.TriggerPrimaryAction()
	snap := e.Tick()
	if countCue(snap.Cues, core.CueCast) != 1 || snap.Hook.State != HookDescending {
		t.Fatalf("cast failed: cues %v hook %+v", snap.Cues, snap.Hook)
	}

	captured := false
	for range 40 {
		snap = e.Tick()
		if countCue(snap.Cues, core.CueCapture) == 1 {
			captured = true
			break
		}
	}
	if !captured {
		t.Fatal("fish under the boat was never captured")
	}
	if snap.Score != 25 || snap.Combo != 1 || snap.Hook.State != HookReeling {
		t.Errorf("after capture: score %d combo %d hook %s", snap.Score, snap.Combo, snap.Hook.State)
	}

	for snap.Hook.State != HookIdle {
		if _, ok := e.store.Get(fish.ID); !ok {
			t.Fatalf("fish released at tip y %.1f before the hook returned", snap.Hook.Tip.Y)
		}
		snap = e.Tick()
	}
	for range cfg.Capture.ReleaseDelay - 1 {
		if _, ok := e.store.Get(fish.ID); !ok {
			t.Fatal("fish released before its delay ran out")
		}
		snap = e.Tick()
	}
	if _, ok := e.store.Get(fish.ID); ok {
		t.Error("captured fish not released after its delay")
	}
}

func TestDeepCatchStaysOnHookWhileReeling(t *testing.T) {
	cfg := fishingConfig()
	cfg.Capture.ReleaseDelay = 3
	e := newEngine(t, cfg, core.NewRect(0, 0, 80, 40))
	startQuiet(t, e)

	player, _ := e.store.Get(e.playerID)
	c := player.Center()
	fish := insert(t, e, Entity{
		Category: CategoryCatchable,
		Motion:   MotionLinearReflecting,
		Kind:     "grouper",
		Pos:      core.V(c.X-1, c.Y+20),
		W:        2,
		H:        1,
		Points:   40,
	})

	e.TriggerPrimaryAction()
	snap := e.Tick()
	for range 100 {
		if snap.Hook.Caught == fish.ID {
			break
		}
		snap = e.Tick()
	}
	if snap.Hook.Caught != fish.ID {
		t.Fatal("deep fish never captured")
	}

	reeling := 0
	for snap.Hook.State == HookReeling {
		if _, ok := e.store.Get(fish.ID); !ok {
			t.Fatalf("fish released after %d reeling ticks", reeling)
		}
		snap = e.Tick()
		reeling++
	}
	if reeling <= cfg.Capture.ReleaseDelay {
		t.Fatalf("reel took %d ticks, want more than the release delay", reeling)
	}

	for range cfg.Capture.ReleaseDelay - 1 {
		snap = e.Tick()
	}
	if _, ok := e.store.Get(fish.ID); ok {
		t.Error("fish still attached after the hook returned and the delay ran out")
	}
	if snap.Score != 40 {
		t.Errorf("score %d, want 40", snap.Score)
	}
}

func TestRoundTimerEndsSession(t *testing.T) {
	cfg := fishingConfig()
	cfg.Round.TimeLimit = 30
	e := newEngine(t, cfg, core.NewRect(0, 0, 80, 30))
	startQuiet(t, e)

	var snap Snapshot
	for range 29 {
		snap = e.Tick()
	}
	if snap.Status != StatusPlaying || snap.TimeLeft != 1 {
		t.Fatalf("status %s time left %d", snap.Status, snap.TimeLeft)
	}
	snap = e.Tick()
	if snap.Status != StatusGameOver || countCue(snap.Cues, core.CueGameOver) != 1 {
		t.Errorf("timer did not end the round: %s %v", snap.Status, snap.Cues)
	}
}

func TestLevelUpCue(t *testing.T) {
	e := newEngine(t, shooterConfig(), shooterField)
	startQuiet(t, e)
	e.state.Score = e.cfg.Level.Threshold

	snap := e.Tick()
	if snap.Level != 2 || countCue(snap.Cues, core.CueLevelUp) != 1 {
		t.Errorf("level %d cues %v", snap.Level, snap.Cues)
	}
	snap = e.Tick()
	if snap.Level != 2 {
		t.Errorf("level advanced without score: %d", snap.Level)
	}
}

func TestFireCooldown(t *testing.T) {
	e := newEngine(t, shooterConfig(), shooterField)
	startQuiet(t, e)

	shots := 0
	for range 12 {
		e.TriggerPrimaryAction()
		shots += countCue(e.Tick().Cues, core.CueCast)
	}
	// Cooldown 6: fires on ticks 1 and 7
	if shots != 2 {
		t.Errorf("shots = %d, want 2", shots)
	}
}

func TestCommandsIgnoredOutsidePlaying(t *testing.T) {
	e := newEngine(t, shooterConfig(), shooterField)

	e.MovePlayer(1, 0)
	e.TriggerPrimaryAction()
	if len(e.pending) != 0 {
		t.Error("commands queued on the menu")
	}
	if snap := e.Tick(); snap.Tick != 0 || snap.Status != StatusMenu {
		t.Errorf("menu tick ran systems: %+v", snap)
	}

	for _, fn := range []func() error{e.Pause, e.Resume, e.Quit, func() error { return e.Restart(true) }} {
		if err := fn(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("err = %v, want ErrInvalidTransition", err)
		}
	}
}

func TestPausedQuitReturnsToMenu(t *testing.T) {
	e := newEngine(t, shooterConfig(), shooterField)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	for range 10 {
		e.Tick()
	}
	if err := e.Quit(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Quit while playing err = %v", err)
	}
	if err := e.Pause(); err != nil {
		t.Fatal(err)
	}
	if err := e.Quit(); err != nil {
		t.Fatal(err)
	}
	snap := e.Snapshot()
	if snap.Status != StatusMenu || len(snap.Entities) != 0 || snap.Tick != 0 {
		t.Errorf("after quit: %+v", snap)
	}
}

func TestSetDifficulty(t *testing.T) {
	e := newEngine(t, shooterConfig(), shooterField)

	if err := e.SetDifficulty("brutal"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("unknown preset err = %v", err)
	}
	if err := e.SetDifficulty(config.DifficultyEasy); err != nil {
		t.Fatalf("SetDifficulty on menu: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	if got := e.State().Lives; got != 4 {
		t.Errorf("easy lives = %d, want 4", got)
	}
	if err := e.SetDifficulty(config.DifficultyHard); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SetDifficulty while playing err = %v", err)
	}
}

func TestSetSeed(t *testing.T) {
	run := func(e *Engine) uint64 {
		t.Helper()
		if err := e.Start(); err != nil {
			t.Fatal(err)
		}
		var snap Snapshot
		for range 300 {
			snap = e.Tick()
		}
		return snap.Hash()
	}

	a := newEngine(t, shooterConfig(), shooterField, WithSeed(1))
	b := newEngine(t, shooterConfig(), shooterField, WithSeed(2))
	if err := b.SetSeed(1); err != nil {
		t.Fatalf("SetSeed on menu: %v", err)
	}
	if b.Seed() != 1 {
		t.Errorf("Seed() = %d, want 1", b.Seed())
	}
	if ha, hb := run(a), run(b); ha != hb {
		t.Errorf("same seed diverged: %x != %x", ha, hb)
	}
	if err := b.SetSeed(5); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SetSeed while playing err = %v", err)
	}
}

func TestInvalidSpawnTableDisablesOnlyThatTable(t *testing.T) {
	cfg := shooterConfig()
	broken := cfg.Spawn[0]
	broken.Name = "broken"
	broken.Rules = []config.SpawnRuleConfig{{Name: "ghost", Category: "hostile", Motion: "directed_fall", Weight: 0}}
	cfg.Spawn = append(cfg.Spawn, broken)

	e := newEngine(t, cfg, shooterField, WithSeed(3))
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	var snap Snapshot
	for range 200 {
		snap = e.Tick()
	}

	if !snap.Spawns[1].Disabled || snap.Spawns[0].Disabled {
		t.Errorf("spawn status = %+v", snap.Spawns)
	}
	for _, ent := range snap.Entities {
		if ent.Source == "broken" {
			t.Fatal("disabled table spawned")
		}
	}
	if snap.Count(CategoryHostile) == 0 {
		t.Error("valid table stopped spawning")
	}
}

func TestCueSinkErrorsSwallowed(t *testing.T) {
	calls := 0
	e := newEngine(t, shooterConfig(), shooterField, WithCueSink(CueSinkFunc(func(core.Cue) error {
		calls++
		return errors.New("no audio device")
	})))
	startQuiet(t, e)

	e.TriggerPrimaryAction()
	snap := e.Tick()
	if calls != 1 || snap.Status != StatusPlaying {
		t.Errorf("calls %d status %s", calls, snap.Status)
	}
}

func TestCueSinkSeesSnapshotCues(t *testing.T) {
	var played []core.Cue
	e := newEngine(t, shooterConfig(), shooterField, WithCueSink(CueSinkFunc(func(c core.Cue) error {
		played = append(played, c)
		return nil
	})))
	startQuiet(t, e)

	var fired []core.Cue
	for tick := range 30 {
		if tick%10 == 0 {
			e.TriggerPrimaryAction()
		}
		fired = append(fired, e.Tick().Cues...)
	}
	if len(fired) == 0 {
		t.Fatal("no cues fired")
	}
	if !reflect.DeepEqual(played, fired) {
		t.Errorf("sink got %v, snapshots carried %v", played, fired)
	}
}

func TestNonFiniteMoveIgnored(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
	}{
		{"nan x", math.NaN(), 0},
		{"nan y", 0, math.NaN()},
		{"+inf x", math.Inf(1), 0},
		{"-inf y", 0, math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, shooterConfig(), shooterField)
			startQuiet(t, e)
			before, _ := e.Snapshot().Player()

			e.MovePlayer(tt.dx, tt.dy)
			snap := e.Tick()

			after, ok := snap.Player()
			if !ok {
				t.Fatal("player removed by a non-finite move")
			}
			if after.Pos != before.Pos {
				t.Errorf("player moved from %v to %v", before.Pos, after.Pos)
			}

			e.MovePlayer(1, 0)
			if moved, _ := e.Tick().Player(); moved.Pos == after.Pos {
				t.Error("finite move after a dropped one had no effect")
			}
		})
	}
}

func TestSnapshotIsolated(t *testing.T) {
	e := newEngine(t, shooterConfig(), shooterField)
	startQuiet(t, e)

	snap := e.Snapshot()
	snap.Entities[0].Pos = core.V(-100, -100)

	p, _ := e.store.Get(e.playerID)
	if p.Pos.X == -100 {
		t.Error("snapshot shares entity memory with the engine")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(shooterConfig(), core.Rect{}); err == nil {
		t.Error("expected error for empty playfield")
	}
	cfg := shooterConfig()
	cfg.Spawn = nil
	if _, err := New(cfg, shooterField); !errors.Is(err, config.ErrNoSpawnTables) {
		t.Errorf("err = %v, want ErrNoSpawnTables", err)
	}
	if _, err := New(shooterConfig(), shooterField, WithPreset("brutal")); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("err = %v, want ErrUnknownPreset", err)
	}
}
