// Package config provides YAML-based configuration loading for the game:
// storage paths, logging, key bindings and the SSH server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	HighScoreFile string     `yaml:"highscore_file"`
	Database      string     `yaml:"database"`
	Log           LogConfig  `yaml:"log"`
	Keys          KeysConfig `yaml:"keys"`
	SSH           SSHConfig  `yaml:"ssh"`

	// Source is the file the configuration was read from, or "embedded".
	Source string `yaml:"-"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
	File  string `yaml:"file"`  // Empty discards output during local play
}

// KeysConfig lists the key names bound to each action, as bubbletea
// reports them ("up", "w", "ctrl+r").
type KeysConfig struct {
	Up         []string `yaml:"up"`
	Down       []string `yaml:"down"`
	Left       []string `yaml:"left"`
	Right      []string `yaml:"right"`
	Reset      []string `yaml:"reset"`
	Quit       []string `yaml:"quit"`
	Scores     []string `yaml:"scores"`
	Screenshot []string `yaml:"screenshot"`
}

// SSHConfig configures the `serve` command.
type SSHConfig struct {
	Address     string `yaml:"address"`
	HostKey     string `yaml:"host_key"`
	IdleTimeout string `yaml:"idle_timeout"`
}

// Timeout parses IdleTimeout. An empty value disables the timeout.
func (c SSHConfig) Timeout() (time.Duration, error) {
	if c.IdleTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.IdleTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid ssh.idle_timeout %q: %w", c.IdleTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative ssh.idle_timeout %q", c.IdleTimeout)
	}
	return d, nil
}

// Bindings returns the action name to key list mapping in display order.
func (k KeysConfig) Bindings() []Binding {
	return []Binding{
		{"up", k.Up},
		{"down", k.Down},
		{"left", k.Left},
		{"right", k.Right},
		{"reset", k.Reset},
		{"quit", k.Quit},
		{"scores", k.Scores},
		{"screenshot", k.Screenshot},
	}
}

// Binding pairs an action name with its keys.
type Binding struct {
	Action string
	Keys   []string
}

// Validate checks that every action has at least one key, that no key is
// bound twice, and that the log level and idle timeout parse.
func (c Config) Validate() error {
	if c.HighScoreFile == "" {
		return fmt.Errorf("highscore_file must not be empty")
	}

	seen := make(map[string]string)
	for _, b := range c.Keys.Bindings() {
		if len(b.Keys) == 0 {
			return fmt.Errorf("keys.%s: no keys bound", b.Action)
		}
		for _, key := range b.Keys {
			if key == "" {
				return fmt.Errorf("keys.%s: empty key name", b.Action)
			}
			if prev, ok := seen[key]; ok {
				return fmt.Errorf("key %q bound to both %s and %s", key, prev, b.Action)
			}
			seen[key] = b.Action
		}
	}

	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
		}
	}

	if _, err := c.SSH.Timeout(); err != nil {
		return err
	}
	return nil
}

// YAML returns the configuration encoded as YAML.
func (c Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
