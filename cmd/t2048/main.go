// t2048 is the 2048 sliding tile game for the terminal.
//
// Usage:
//
//	t2048                    - Play a game (same as 'play')
//	t2048 play               - Play a game
//	t2048 serve              - Start SSH server for remote play
//	t2048 scores             - Show the high score and best games
//	t2048 config             - Print the effective configuration
//	t2048 simulate <moves>   - Apply moves to a seeded board without the UI
//
// Global flags:
//
//	--config <path>     - Configuration file (default: ~/.t2048/config.yaml)
//	--db <path>         - Game history database (default: ~/.t2048/games.db)
//	--highscore <path>  - High score file (default: ~/.t2048/highscore.txt)
//	--seed <value>      - RNG seed for reproducible boards
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagHighScore string
	flagLogLevel  string
	flagSeed      int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - Slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 puzzle for the terminal. Slide the board with the
arrow keys or WASD; equal tiles merge and add to your score. Reach the
2048 tile to win. The game ends when the board is full and nothing can merge.

Available commands:
  play     - Play a game (default)
  serve    - Start SSH server for remote play
  scores   - View the high score and game history
  config   - Print the effective configuration
  simulate - Apply moves to a seeded board without the UI

Examples:
  t2048
  t2048 play --seed 42
  t2048 serve --ssh :2048
  t2048 scores --limit 20`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to game history database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagHighScore, "highscore", "", "Path to high score file (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadConfig reads the configuration and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	cfg = applyOverrides(cfg)
	return cfg, cfg.Validate()
}

// applyOverrides copies non-empty global flags over cfg.
func applyOverrides(cfg config.Config) config.Config {
	if flagDBPath != "" {
		cfg.Database = flagDBPath
	}
	if flagHighScore != "" {
		cfg.HighScoreFile = flagHighScore
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg
}
