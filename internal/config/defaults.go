package config

import (
	_ "embed"
)

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

//go:embed defaults/fishing.yaml
var defaultFishingYAML []byte

// Game IDs with built-in defaults.
const (
	GameShooter = "shooter"
	GameFishing = "fishing"
)

// DefaultShooterConfig returns the hardcoded Star Defender configuration.
// Mirrors defaults/shooter.yaml and is used if the embedded file fails to parse.
func DefaultShooterConfig() GameConfig {
	return GameConfig{
		Playfield: PlayfieldConfig{Margin: 4},
		Player: PlayerConfig{
			Width:             5,
			Height:            1,
			Speed:             2,
			Anchor:            "bottom",
			Health:            100,
			Lives:             3,
			InvulnerableTicks: 30,
			Color:             "bright_cyan",
		},
		Combat: CombatConfig{
			PrimaryAction:    "shoot",
			ProjectileSpeed:  1.0,
			ProjectileWidth:  1,
			ProjectileHeight: 1,
			ProjectileDamage: 25,
			FireCooldown:     6,
			ContactDamage:    25,
			ProjectileColor:  "bright_yellow",
		},
		Combo: ComboConfig{BonusThreshold: 3, BonusFactor: 5},
		Level: LevelConfig{Threshold: 300},
		Particles: ParticleConfig{
			BurstCount:   8,
			Life:         18,
			Speed:        0.8,
			Spread:       1.2,
			UpwardBias:   0.2,
			Damping:      0.9,
			Size:         1,
			MaxParticles: 400,
		},
		Schooling: SchoolingConfig{NeighborX: 12, NeighborY: 3, Damping: 0.1},
		Capture:   CaptureConfig{HookSpeed: 0.6, ReelSpeed: 0.8, Radius: 1.5, ReleaseDelay: 12},
		Spawn: []SpawnTableConfig{
			{
				Name:        "invaders",
				Origin:      "top",
				BaseDelay:   60,
				FloorDelay:  12,
				LevelFactor: 6,
				Jitter:      10,
				Rules: []SpawnRuleConfig{
					{Name: "scout", Category: "hostile", Motion: "directed_fall", Weight: 0.6, Width: 3, Height: 1, Speed: 0.25, Health: 25, Points: 10, LevelSpeedFactor: 0.08, Color: "red"},
					{Name: "raider", Category: "hostile", Motion: "directed_fall", Weight: 0.25, Width: 3, Height: 2, Speed: 0.2, Health: 50, Points: 25, LevelSpeedFactor: 0.08, Color: "magenta"},
					{Name: "bomber", Category: "hostile", Motion: "directed_fall", Weight: 0.1, Width: 5, Height: 2, Speed: 0.15, Health: 100, Points: 50, LevelSpeedFactor: 0.06, Color: "orange"},
					{Name: "comet", Category: "hostile", Motion: "directed_fall", Weight: 0.04, Width: 1, Height: 1, Speed: 0.6, Health: 25, Points: 75, LevelSpeedFactor: 0.1, Color: "bright_yellow"},
					{Name: "mothership", Category: "hostile", Motion: "directed_fall", Weight: 0.01, Width: 7, Height: 2, Speed: 0.1, Health: 200, Points: 250, LevelSpeedFactor: 0.05, Color: "bright_magenta"},
				},
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:        true,
			InitialLevel:   0.0,
			MaxAtLevel:     10,
			SpeedScale:     0.8,
			DelayReduction: 0.5,
			DamageScale:    0.5,
		},
	}
}

// DefaultFishingConfig returns the hardcoded Deep Sea Fishing configuration.
// Mirrors defaults/fishing.yaml and is used if the embedded file fails to parse.
func DefaultFishingConfig() GameConfig {
	return GameConfig{
		Playfield: PlayfieldConfig{Margin: 4},
		Player: PlayerConfig{
			Width:             7,
			Height:            1,
			Speed:             2,
			Anchor:            "top",
			Health:            3,
			Lives:             1,
			InvulnerableTicks: 45,
			Color:             "yellow",
		},
		Combat: CombatConfig{
			PrimaryAction:   "cast",
			ContactDamage:   1,
			ProjectileColor: "white",
		},
		Combo: ComboConfig{BonusThreshold: 2, BonusFactor: 3},
		Level: LevelConfig{Threshold: 200},
		Particles: ParticleConfig{
			BurstCount:   6,
			Life:         14,
			Speed:        0.5,
			Spread:       0.9,
			UpwardBias:   0.3,
			Damping:      0.85,
			Size:         1,
			MaxParticles: 300,
		},
		Schooling: SchoolingConfig{NeighborX: 12, NeighborY: 3, Damping: 0.1},
		Capture:   CaptureConfig{HookSpeed: 0.6, ReelSpeed: 0.8, Radius: 1.5, ReleaseDelay: 12},
		Round:     RoundConfig{TimeLimit: 5400},
		Spawn: []SpawnTableConfig{
			{
				Name:        "fish",
				Origin:      "edges",
				BaseDelay:   45,
				FloorDelay:  15,
				LevelFactor: 3,
				Jitter:      15,
				MaxAlive:    24,
				Rules: []SpawnRuleConfig{
					{Name: "sardine", Category: "catchable", Motion: "steering", Weight: 0.5, Width: 2, Height: 1, Speed: 0.3, Points: 5, LevelSpeedFactor: 0.05, Color: "bright_blue", Group: 1, GroupSize: 4},
					{Name: "clownfish", Category: "catchable", Motion: "linear_reflecting", Weight: 0.3, Width: 2, Height: 1, Speed: 0.25, Points: 10, LevelSpeedFactor: 0.05, Color: "orange"},
					{Name: "tuna", Category: "catchable", Motion: "linear_reflecting", Weight: 0.15, Width: 4, Height: 1, Speed: 0.4, Points: 25, LevelSpeedFactor: 0.05, Color: "cyan", CaptureRadius: 2.5},
					{Name: "goldfish", Category: "catchable", Motion: "linear_reflecting", Weight: 0.05, Width: 2, Height: 1, Speed: 0.5, Points: 100, LevelSpeedFactor: 0.05, Color: "bright_yellow"},
				},
			},
			{
				Name:        "hazards",
				Origin:      "bottom",
				BaseDelay:   240,
				FloorDelay:  90,
				LevelFactor: 10,
				Jitter:      60,
				MaxAlive:    4,
				Rules: []SpawnRuleConfig{
					{Name: "jellyfish", Category: "hostile", Motion: "directed_fall", Weight: 1, Width: 2, Height: 2, Speed: 0.15, Health: 1, LevelSpeedFactor: 0.05, Color: "magenta"},
				},
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:        true,
			InitialLevel:   0.0,
			MaxAtLevel:     8,
			SpeedScale:     0.5,
			DelayReduction: 0.4,
		},
	}
}

// Default returns the hardcoded configuration for a game.
func Default(gameID string) (GameConfig, bool) {
	switch gameID {
	case GameShooter:
		return DefaultShooterConfig(), true
	case GameFishing:
		return DefaultFishingConfig(), true
	default:
		return GameConfig{}, false
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case GameShooter:
		return defaultShooterYAML
	case GameFishing:
		return defaultFishingYAML
	default:
		return nil
	}
}
