package config

import (
	"math"
	"testing"
)

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultShooterConfig()
	ApplyPreset(&cfg, DifficultyEasy)
	if cfg.Player.Lives != 4 {
		t.Errorf("easy lives = %d, want 4", cfg.Player.Lives)
	}
	if cfg.Player.InvulnerableTicks != 45 {
		t.Errorf("easy invulnerability = %d, want 45", cfg.Player.InvulnerableTicks)
	}

	cfg = DefaultShooterConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if cfg.Player.Lives != 2 {
		t.Errorf("hard lives = %d, want 2", cfg.Player.Lives)
	}
	if cfg.Combat.ContactDamage != 37 {
		t.Errorf("hard contact damage = %d, want 37", cfg.Combat.ContactDamage)
	}

	cfg = DefaultFishingConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if cfg.Player.Lives != 1 {
		t.Errorf("hard lives must not drop below 1, got %d", cfg.Player.Lives)
	}

	cfg = DefaultShooterConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestDifficultyManagerProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:        true,
		MaxAtLevel:     5,
		SpeedScale:     1.0,
		DelayReduction: 0.5,
		DamageScale:    0.5,
	})

	if got := dm.Level(1); got != 0 {
		t.Errorf("Level(1) = %v, want 0", got)
	}
	if got := dm.Level(3); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Level(3) = %v, want 0.5", got)
	}
	if got := dm.Level(50); got != 1 {
		t.Errorf("Level(50) = %v, want 1 (clamped)", got)
	}

	if got := dm.SpeedMultiplier(5); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("SpeedMultiplier(5) = %v, want 2", got)
	}
	if got := dm.DelayMultiplier(5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("DelayMultiplier(5) = %v, want 0.5", got)
	}
	if got := dm.DamageMultiplier(5); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("DamageMultiplier(5) = %v, want 1.5", got)
	}
}

func TestDifficultyManagerDisabled(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{Enabled: true, MaxAtLevel: 5, SpeedScale: 1})
	dm.SetInitialLevel(0.25)
	dm.SetEnabled(false)

	if dm.IsEnabled() {
		t.Error("manager should report disabled")
	}
	for _, lvl := range []int{1, 3, 10} {
		if got := dm.Level(lvl); got != 0.25 {
			t.Errorf("Level(%d) = %v, want initial 0.25", lvl, got)
		}
	}
}

func TestDelayMultiplierFloor(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{Enabled: true, MaxAtLevel: 2, DelayReduction: 5})
	if got := dm.DelayMultiplier(2); got != 0.1 {
		t.Errorf("DelayMultiplier = %v, want floor 0.1", got)
	}
}
