package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HighScoreFile: "~/.t2048/highscore.txt",
		Database:      "~/.t2048/games.db",
		Log: LogConfig{
			Level: "info",
		},
		Keys: KeysConfig{
			Up:         []string{"up", "w", "k"},
			Down:       []string{"down", "s", "j"},
			Left:       []string{"left", "a", "h"},
			Right:      []string{"right", "d", "l"},
			Reset:      []string{"ctrl+r", "r"},
			Quit:       []string{"ctrl+c", "q", "esc"},
			Scores:     []string{"tab"},
			Screenshot: []string{"ctrl+s"},
		},
		SSH: SSHConfig{
			Address:     ":2048",
			HostKey:     "~/.t2048/host_key",
			IdleTimeout: "30m",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultConfigYAML
}
