// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
)

// GameConfig contains all tunables of one simulation variant.
// Distances are in cells, speeds in cells per tick, durations in ticks.
type GameConfig struct {
	Playfield  PlayfieldConfig    `yaml:"playfield"`
	Player     PlayerConfig       `yaml:"player"`
	Combat     CombatConfig       `yaml:"combat"`
	Combo      ComboConfig        `yaml:"combo"`
	Level      LevelConfig        `yaml:"level"`
	Particles  ParticleConfig     `yaml:"particles"`
	Schooling  SchoolingConfig    `yaml:"schooling"`
	Capture    CaptureConfig      `yaml:"capture"`
	Round      RoundConfig        `yaml:"round"`
	Spawn      []SpawnTableConfig `yaml:"spawn_tables"`
	Difficulty DifficultyConfig   `yaml:"difficulty"`
}

// PlayfieldConfig defines the simulated area.
// Zero width/height means "fit the screen".
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"` // Distance past an edge before fall-through entities are pruned
}

// PlayerConfig defines the controlled entity.
type PlayerConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	Speed             float64 `yaml:"speed"`
	Anchor            string  `yaml:"anchor"` // "bottom" or "top"
	Health            int     `yaml:"health"`
	Lives             int     `yaml:"lives"`
	InvulnerableTicks int     `yaml:"invulnerable_ticks"`
	Color             string  `yaml:"color"`
}

// CombatConfig defines the primary action and damage model.
type CombatConfig struct {
	PrimaryAction    string  `yaml:"primary_action"` // "shoot" or "cast"
	ProjectileSpeed  float64 `yaml:"projectile_speed"`
	ProjectileWidth  float64 `yaml:"projectile_width"`
	ProjectileHeight float64 `yaml:"projectile_height"`
	ProjectileDamage int     `yaml:"projectile_damage"`
	FireCooldown     int     `yaml:"fire_cooldown"`
	ContactDamage    int     `yaml:"contact_damage"`
	ProjectileColor  string  `yaml:"projectile_color"`
}

// ComboConfig defines combo bonus scoring.
type ComboConfig struct {
	BonusThreshold int `yaml:"bonus_threshold"` // Bonus applies once combo exceeds this
	BonusFactor    int `yaml:"bonus_factor"`    // Bonus = combo * factor
}

// LevelConfig defines level progression by score.
type LevelConfig struct {
	Threshold int `yaml:"threshold"` // Level n is left once score reaches n*threshold
}

// ParticleConfig defines burst effects.
type ParticleConfig struct {
	BurstCount   int     `yaml:"burst_count"`
	Life         int     `yaml:"life"`
	Speed        float64 `yaml:"speed"`
	Spread       float64 `yaml:"spread"` // Cone half-angle in radians around straight up
	UpwardBias   float64 `yaml:"upward_bias"`
	Damping      float64 `yaml:"damping"`
	Size         float64 `yaml:"size"`
	MaxParticles int     `yaml:"max_particles"`
}

// SchoolingConfig defines the grouping bias of steering entities.
type SchoolingConfig struct {
	NeighborX float64 `yaml:"neighbor_x"`
	NeighborY float64 `yaml:"neighbor_y"`
	Damping   float64 `yaml:"damping"`
}

// CaptureConfig defines the hook used by capture-style games.
type CaptureConfig struct {
	HookSpeed    float64 `yaml:"hook_speed"`
	ReelSpeed    float64 `yaml:"reel_speed"`
	MaxDepth     float64 `yaml:"max_depth"` // 0 = playfield bottom
	Radius       float64 `yaml:"radius"`    // Default capture radius for catchables without their own
	ReleaseDelay int     `yaml:"release_delay"`
}

// RoundConfig defines an optional time limit.
type RoundConfig struct {
	TimeLimit int `yaml:"time_limit"` // Ticks; 0 = unlimited
}

// SpawnTableConfig describes one weighted spawn table.
type SpawnTableConfig struct {
	Name        string            `yaml:"name"`
	Origin      string            `yaml:"origin"` // "top", "bottom" or "edges"
	BaseDelay   int               `yaml:"base_delay"`
	FloorDelay  int               `yaml:"floor_delay"`
	LevelFactor int               `yaml:"level_factor"`
	Jitter      int               `yaml:"jitter"`
	MaxAlive    int               `yaml:"max_alive"` // 0 = unlimited
	Rules       []SpawnRuleConfig `yaml:"rules"`
}

// SpawnRuleConfig describes one category entry in a spawn table.
type SpawnRuleConfig struct {
	Name             string  `yaml:"name"`
	Category         string  `yaml:"category"`
	Motion           string  `yaml:"motion"`
	Weight           float64 `yaml:"weight"`
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	Speed            float64 `yaml:"speed"`
	Health           int     `yaml:"health"`
	Points           int     `yaml:"points"`
	LevelSpeedFactor float64 `yaml:"level_speed_factor"`
	Color            string  `yaml:"color"`
	Group            int     `yaml:"group"`
	GroupSize        int     `yaml:"group_size"` // Steering rules spawn this many members at once
	CaptureRadius    float64 `yaml:"capture_radius"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled        bool    `yaml:"enabled"`
	InitialLevel   float64 `yaml:"initial_level"`   // 0.0 = easy, 1.0 = hard
	MaxAtLevel     int     `yaml:"max_at_level"`    // Session level at which progression peaks
	SpeedScale     float64 `yaml:"speed_scale"`     // Extra speed multiplier at max difficulty
	DelayReduction float64 `yaml:"delay_reduction"` // Fraction of spawn delay removed at max difficulty
	DamageScale    float64 `yaml:"damage_scale"`    // Extra contact damage multiplier at max difficulty
}

// Validation errors.
var (
	ErrNoSpawnTables = errors.New("config: no spawn tables")
	ErrBadPlayer     = errors.New("config: player needs positive size, health and lives")
)

// Validate checks the parts of the config the simulation cannot recover from.
// Spawn table weights are validated by the simulation itself so a single bad
// table only disables that table.
func (c GameConfig) Validate() error {
	if len(c.Spawn) == 0 {
		return ErrNoSpawnTables
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 || c.Player.Health <= 0 || c.Player.Lives <= 0 {
		return ErrBadPlayer
	}
	if c.Particles.Damping < 0 || c.Particles.Damping >= 1 {
		return fmt.Errorf("config: particle damping %v must be in [0, 1)", c.Particles.Damping)
	}
	switch c.Combat.PrimaryAction {
	case "shoot", "cast":
	default:
		return fmt.Errorf("config: unknown primary action %q", c.Combat.PrimaryAction)
	}
	switch c.Player.Anchor {
	case "top", "bottom":
	default:
		return fmt.Errorf("config: unknown player anchor %q", c.Player.Anchor)
	}
	return nil
}
