package sim

import (
	"fmt"

	"github.com/vovakirdan/minigames/internal/config"
)

// Status is the play-session state.
type Status int

const (
	StatusMenu Status = iota
	StatusPlaying
	StatusPaused
	StatusGameOver
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusMenu:
		return "menu"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// SessionState holds the scoring and life counters of one session.
// It is replaced wholesale on start and restart.
type SessionState struct {
	Status    Status
	Score     int
	Combo     int
	MaxCombo  int
	Level     int
	Lives     int
	Health    int
	MaxHealth int
	Clock     uint64 // Ticks spent playing
	TimeLeft  int    // Round timer in ticks, 0 when the round is untimed
}

// NewSessionState returns the initial state for a config.
func NewSessionState(cfg config.GameConfig, status Status) SessionState {
	return SessionState{
		Status:    status,
		Level:     1,
		Lives:     cfg.Player.Lives,
		Health:    cfg.Player.Health,
		MaxHealth: cfg.Player.Health,
		TimeLeft:  max(cfg.Round.TimeLimit, 0),
	}
}

// Transition is a request to change the session status.
type Transition int

const (
	TransitionStart          Transition = iota // menu -> playing
	TransitionPause                            // playing -> paused
	TransitionResume                           // paused -> playing
	TransitionDeath                            // playing -> gameOver, internal only
	TransitionRestart                          // gameOver -> menu
	TransitionRestartPlaying                   // gameOver -> playing
	TransitionQuit                             // paused -> menu
)

// String returns the transition name.
func (t Transition) String() string {
	switch t {
	case TransitionStart:
		return "start"
	case TransitionPause:
		return "pause"
	case TransitionResume:
		return "resume"
	case TransitionDeath:
		return "death"
	case TransitionRestart:
		return "restart"
	case TransitionRestartPlaying:
		return "restart"
	case TransitionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

var transitions = map[Status]map[Transition]Status{
	StatusMenu: {
		TransitionStart: StatusPlaying,
	},
	StatusPlaying: {
		TransitionPause: StatusPaused,
		TransitionDeath: StatusGameOver,
	},
	StatusPaused: {
		TransitionResume: StatusPlaying,
		TransitionQuit:   StatusMenu,
	},
	StatusGameOver: {
		TransitionRestart:        StatusMenu,
		TransitionRestartPlaying: StatusPlaying,
	},
}

// Machine governs session status. Gameplay systems run only while it
// reports StatusPlaying.
type Machine struct {
	status Status
}

// NewMachine creates a machine in the menu state.
func NewMachine() *Machine {
	return &Machine{status: StatusMenu}
}

// Status returns the current status.
func (m *Machine) Status() Status {
	return m.status
}

// Can reports whether a transition is valid from the current status.
func (m *Machine) Can(t Transition) bool {
	_, ok := transitions[m.status][t]
	return ok
}

// Fire applies a transition and returns the new status.
func (m *Machine) Fire(t Transition) (Status, error) {
	next, ok := transitions[m.status][t]
	if !ok {
		return m.status, fmt.Errorf("sim: %s from %s: %w", t, m.status, ErrInvalidTransition)
	}
	m.status = next
	return next, nil
}
