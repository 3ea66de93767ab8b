package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration for a game.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default.
// Files are decoded on top of the hardcoded defaults, so partial files only
// override the keys they set.
func Load(gameID, customPath string) (GameConfig, error) {
	base, ok := Default(gameID)
	if !ok {
		return GameConfig{}, fmt.Errorf("config: no defaults for game %q", gameID)
	}

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return base, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decode(base, data)
		if err != nil {
			return base, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(gameID + ".yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(base, data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", gameID+".yaml")); err == nil {
		if cfg, err := decode(base, data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if cfg, err := decode(base, GetDefaultYAML(gameID)); err == nil {
		return cfg, nil
	}
	return base, nil // Fallback to hardcoded if embed fails
}

// decode overlays YAML data on base and validates the result.
func decode(base GameConfig, data []byte) (GameConfig, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
