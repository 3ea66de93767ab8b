package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/minigames/internal/storage"
)

func TestScoreboardLoadsRunsPerGame(t *testing.T) {
	store := openTestStore(t)
	for _, r := range []storage.Run{
		{GameID: "fishing", Score: 40, Level: 1, MaxCombo: 2, Difficulty: "easy"},
		{GameID: "fishing", Score: 90, Level: 2, MaxCombo: 5},
		{GameID: "shooter", Score: 300, Level: 3, MaxCombo: 7, Difficulty: "hard"},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if got := m.games[m.gameCursor].ID; got != "fishing" {
		t.Fatalf("first game = %q, want fishing", got)
	}
	if len(m.scores) != 2 || m.scores[0].Score != 90 {
		t.Errorf("fishing scores = %+v", m.scores)
	}
	if m.stats == nil || m.stats.BestCombo != 5 {
		t.Errorf("fishing stats = %+v", m.stats)
	}
	if rows := m.table.Rows(); len(rows) != 2 || rows[1][4] != "easy" || rows[0][4] != "-" {
		t.Errorf("rows = %v", rows)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(ScoreboardModel)
	if got := m.games[m.gameCursor].ID; got != "shooter" {
		t.Fatalf("after right = %q, want shooter", got)
	}
	if len(m.scores) != 1 || m.scores[0].Difficulty != "hard" {
		t.Errorf("shooter scores = %+v", m.scores)
	}
	if !strings.Contains(m.View(), "Star Defender") {
		t.Error("view does not name the selected game")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if len(m.scores) != 0 || m.stats != nil {
		t.Errorf("scores = %v, stats = %v", m.scores, m.stats)
	}
	if !strings.Contains(m.View(), "No scores recorded yet.") {
		t.Error("empty scoreboard has no placeholder")
	}
}

func TestScoreboardBack(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc did not go back")
	}
	if cmd == nil {
		t.Error("standalone scoreboard did not quit its program on back")
	}
}
