package registry

import (
	"testing"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
)

type fakeGame struct{ opts Options }

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake Game" }
func (g *fakeGame) Reset(core.RuntimeConfig) {}
func (g *fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *fakeGame) Render(*core.Screen) {}
func (g *fakeGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("fake", func(opts Options) Game { return &fakeGame{opts: opts} })

	if !Exists("fake") {
		t.Fatal("Exists(fake) = false after Register")
	}

	var found bool
	for _, info := range List() {
		if info.ID == "fake" {
			found = true
			if info.Title != "Fake Game" {
				t.Errorf("title = %q, want Fake Game", info.Title)
			}
		}
	}
	if !found {
		t.Error("List() does not include fake")
	}

	g, err := Create("fake", Options{ConfigPath: "x.yaml", Difficulty: config.DifficultyHard})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	fg := g.(*fakeGame)
	if fg.opts.ConfigPath != "x.yaml" || fg.opts.Difficulty != config.DifficultyHard {
		t.Errorf("options not passed through: %+v", fg.opts)
	}
	if fg.opts.Log() == nil {
		t.Error("Log() returned nil for an unset logger")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-game", Options{}); err == nil {
		t.Error("Create(unknown) succeeded")
	}
	if Exists("no-such-game") {
		t.Error("Exists(unknown) = true")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup", func(Options) Game { return &fakeGame{} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("dup", func(Options) Game { return &fakeGame{} })
}

func TestListSorted(t *testing.T) {
	Register("zz-last", func(Options) Game { return &fakeGame{} })
	Register("aa-first", func(Options) Game { return &fakeGame{} })

	games := List()
	for i := 1; i < len(games); i++ {
		if games[i-1].ID > games[i].ID {
			t.Fatalf("List() not sorted: %q before %q", games[i-1].ID, games[i].ID)
		}
	}
}
