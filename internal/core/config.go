package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Cue is a discrete named sound event emitted by a simulation tick.
// Consumers treat cues as fire-and-forget.
type Cue string

const (
	CueCast     Cue = "cast"    // Primary action fired (shot, cast)
	CueHit      Cue = "hit"     // Projectile landed on a hostile
	CueCapture  Cue = "capture" // Catchable hooked
	CueDamage   Cue = "damage"  // Player took contact damage
	CueLevelUp  Cue = "levelUp"
	CueGameOver Cue = "gameOver"
)

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Level    int  // Current level (1-based)
	MaxCombo int  // Best combo reached this session
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	InMenu   bool // Whether the game is on its title screen
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any cues that fired.
type StepResult struct {
	State GameState
	Cues  []Cue
}
