package sim

import "github.com/vovakirdan/minigames/internal/config"

// ComboTracker is the only writer of score, combo, level and the player's
// life counters.
type ComboTracker struct {
	state          *SessionState
	cfg            config.ComboConfig
	levelThreshold int
}

// NewComboTracker creates a tracker writing to state.
func NewComboTracker(state *SessionState, combo config.ComboConfig, level config.LevelConfig) *ComboTracker {
	return &ComboTracker{state: state, cfg: combo, levelThreshold: level.Threshold}
}

// Kill records a destroyed hostile and returns the points awarded.
func (c *ComboTracker) Kill(points int) int {
	return c.award(points)
}

// Capture records a captured catchable and returns the points awarded.
func (c *ComboTracker) Capture(points int) int {
	return c.award(points)
}

// award increments the combo once per target and adds the point value plus
// the combo bonus when the combo is past the threshold.
func (c *ComboTracker) award(points int) int {
	s := c.state
	s.Combo++
	s.MaxCombo = max(s.MaxCombo, s.Combo)

	gained := max(points, 0)
	if c.cfg.BonusFactor > 0 && s.Combo > c.cfg.BonusThreshold {
		gained += s.Combo * c.cfg.BonusFactor
	}
	s.Score += gained
	return gained
}

// Damage applies contact damage and resets the combo. When health runs out
// a life is lost and health refills if lives remain. Reports whether a life
// was lost.
func (c *ComboTracker) Damage(amount int) bool {
	s := c.state
	s.Combo = 0
	s.Health -= max(amount, 0)
	if s.Health > 0 {
		return false
	}

	s.Lives--
	if s.Lives > 0 {
		s.Health = s.MaxHealth
	} else {
		s.Lives = 0
		s.Health = 0
	}
	return true
}

// CheckLevel advances at most one level per call once the score reaches
// level*threshold. Reports whether the level changed.
func (c *ComboTracker) CheckLevel() bool {
	s := c.state
	if c.levelThreshold <= 0 || s.Score < s.Level*c.levelThreshold {
		return false
	}
	s.Level++
	return true
}

// Dead reports whether the player has no lives left.
func (c *ComboTracker) Dead() bool {
	return c.state.Lives <= 0
}
