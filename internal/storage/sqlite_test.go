package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, s *Store, r Run) string {
	t.Helper()
	id, err := s.SaveRun(r)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTemp(t)

	save(t, store, Run{GameID: "shooter", Score: 100, Level: 1})
	save(t, store, Run{GameID: "shooter", Score: 50, Level: 1})
	save(t, store, Run{GameID: "shooter", Score: 200, Level: 2, MaxCombo: 7, Difficulty: "hard"})
	save(t, store, Run{GameID: "fishing", Score: 500})

	runs, err := store.TopScores("shooter", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	want := []int{200, 100, 50}
	for i, w := range want {
		if runs[i].Score != w {
			t.Errorf("runs[%d].Score = %d, want %d", i, runs[i].Score, w)
		}
	}

	top := runs[0]
	if top.Level != 2 || top.MaxCombo != 7 || top.Difficulty != "hard" {
		t.Errorf("top run = %+v, want level 2, combo 7, hard", top)
	}
	if _, err := uuid.Parse(top.ID); err != nil {
		t.Errorf("run id %q is not a UUID: %v", top.ID, err)
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt not restored")
	}

	fishing, err := store.TopScores("fishing", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(fishing) != 1 || fishing[0].Score != 500 {
		t.Errorf("fishing runs = %+v", fishing)
	}
}

func TestStoreSaveRunIDs(t *testing.T) {
	store := openTemp(t)

	a := save(t, store, Run{GameID: "shooter"})
	b := save(t, store, Run{GameID: "shooter"})
	if a == b {
		t.Errorf("generated ids collide: %s", a)
	}

	fixed := uuid.NewString()
	if got := save(t, store, Run{ID: fixed, GameID: "shooter"}); got != fixed {
		t.Errorf("SaveRun() = %s, want caller id %s", got, fixed)
	}

	if _, err := store.SaveRun(Run{ID: fixed, GameID: "shooter"}); err == nil {
		t.Error("duplicate id accepted")
	}
	if _, err := store.SaveRun(Run{ID: "not-a-uuid", GameID: "shooter"}); err == nil {
		t.Error("malformed id accepted")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTemp(t)

	for i := range 20 {
		save(t, store, Run{GameID: "shooter", Score: i * 10})
	}

	tests := []struct {
		limit int
		want  int
	}{
		{5, 5},
		{0, 10}, // default
		{50, 20},
	}
	for _, tt := range tests {
		runs, err := store.TopScores("shooter", tt.limit)
		if err != nil {
			t.Fatalf("TopScores(%d) failed: %v", tt.limit, err)
		}
		if len(runs) != tt.want {
			t.Errorf("TopScores(%d) returned %d runs, want %d", tt.limit, len(runs), tt.want)
		}
	}
}

func TestStoreTopScoresTieOrder(t *testing.T) {
	store := openTemp(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	late := save(t, store, Run{GameID: "fishing", Score: 40, CreatedAt: base.Add(time.Hour)})
	early := save(t, store, Run{GameID: "fishing", Score: 40, CreatedAt: base})

	runs, err := store.TopScores("fishing", 10)
	if err != nil {
		t.Fatal(err)
	}
	if runs[0].ID != early || runs[1].ID != late {
		t.Errorf("tie order = %s, %s; want earlier run first", runs[0].ID, runs[1].ID)
	}
	if !runs[0].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", runs[0].CreatedAt, base)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTemp(t)

	score, err := store.HighScore("shooter")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 0 {
		t.Errorf("Expected 0 for empty game, got %d", score)
	}

	save(t, store, Run{GameID: "shooter", Score: 100})
	save(t, store, Run{GameID: "shooter", Score: 300})
	save(t, store, Run{GameID: "shooter", Score: 200})

	score, err = store.HighScore("shooter")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 300 {
		t.Errorf("Expected high score 300, got %d", score)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTemp(t)

	save(t, store, Run{GameID: "shooter", Score: 100})
	save(t, store, Run{GameID: "fishing", Score: 100})

	if err := store.ClearScores("shooter"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	runs, _ := store.TopScores("shooter", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	runs, _ = store.TopScores("fishing", 10)
	if len(runs) != 1 {
		t.Errorf("Other game lost runs: got %d", len(runs))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTemp(t)

	empty, err := store.GameStats("shooter")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	last := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	save(t, store, Run{GameID: "shooter", Score: 100, Level: 2, MaxCombo: 3, CreatedAt: last.Add(-time.Hour)})
	save(t, store, Run{GameID: "shooter", Score: 300, Level: 4, MaxCombo: 9, CreatedAt: last})

	stats, err := store.GameStats("shooter")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 || stats.AvgScore != 200 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.BestCombo != 9 || stats.BestLevel != 4 {
		t.Errorf("best combo/level = %d/%d, want 9/4", stats.BestCombo, stats.BestLevel)
	}
	if !stats.LastPlayed.Equal(last) {
		t.Errorf("LastPlayed = %v, want %v", stats.LastPlayed, last)
	}
}

func TestStoreAllGamesStats(t *testing.T) {
	store := openTemp(t)

	save(t, store, Run{GameID: "shooter", Score: 10})
	save(t, store, Run{GameID: "shooter", Score: 30})
	save(t, store, Run{GameID: "fishing", Score: 5, MaxCombo: 2})

	all, err := store.AllGamesStats()
	if err != nil {
		t.Fatalf("AllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 games, got %d", len(all))
	}
	if s := all["shooter"]; s.GamesCount != 2 || s.HighScore != 30 {
		t.Errorf("shooter stats = %+v", s)
	}
	if s := all["fishing"]; s.BestCombo != 2 || s.LastPlayed.IsZero() {
		t.Errorf("fishing stats = %+v", s)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
