package config

import (
	"fmt"
	"math"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI/UI string to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives++
		cfg.Player.InvulnerableTicks += cfg.Player.InvulnerableTicks / 2
	case DifficultyHard:
		if cfg.Player.Lives > 1 {
			cfg.Player.Lives--
		}
		cfg.Combat.ContactDamage += cfg.Combat.ContactDamage / 2
	}
}

// DifficultyManager derives adaptive multipliers from the session level.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the current difficulty level (0.0 to 1.0) for a session level.
func (d *DifficultyManager) Level(sessionLevel int) float64 {
	if !d.cfg.Enabled {
		return d.initialLevel
	}

	span := float64(d.cfg.MaxAtLevel - 1)
	if span <= 0 {
		span = 1 // Prevent division by zero
	}
	progress := clampF(float64(sessionLevel-1)/span, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// SpeedMultiplier scales entity speeds from 1 up to 1+SpeedScale.
func (d *DifficultyManager) SpeedMultiplier(sessionLevel int) float64 {
	return 1.0 + d.Level(sessionLevel)*d.cfg.SpeedScale
}

// DelayMultiplier scales spawn cooldowns down by up to DelayReduction.
// Never drops below 0.1 so spawning stays bounded.
func (d *DifficultyManager) DelayMultiplier(sessionLevel int) float64 {
	return math.Max(0.1, 1.0-d.Level(sessionLevel)*d.cfg.DelayReduction)
}

// DamageMultiplier scales contact damage from 1 up to 1+DamageScale.
func (d *DifficultyManager) DamageMultiplier(sessionLevel int) float64 {
	return 1.0 + d.Level(sessionLevel)*d.cfg.DamageScale
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
