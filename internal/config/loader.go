package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceEmbedded marks a configuration built from the embedded defaults.
const SourceEmbedded = "embedded"

// Load loads the configuration.
// Search order: customPath -> ~/.t2048/config.yaml -> ./configs/config.yaml -> embedded default
//
// Files are decoded over Default(), so a partial file only overrides the
// fields it names. An explicit customPath that cannot be read or parsed is an
// error; the other locations are skipped silently.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Config{}, err
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, cfg.Validate()
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", "config.yaml")); err == nil {
		return cfg, cfg.Validate()
	}

	// Use embedded default YAML
	cfg := Default()
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		cfg = Default() // Fallback to hardcoded if embed fails
	}
	cfg.Source = SourceEmbedded
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", filename)
}
