package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/highscore"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of 2048 in the terminal.

Controls (remappable in the config file):
  Arrows/WASD  - Slide tiles
  Ctrl+R/R     - New game
  Tab          - Show/hide scores
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  t2048 play
  t2048 play --seed 42
  t2048 play --highscore ./best.txt
  t2048 play --config ./my-config.yaml`,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Logs would corrupt the board, so local play only writes to a file.
	logger, closeLog, err := newLogger(cfg.Log, io.Discard, "t2048")
	if err != nil {
		return err
	}
	defer closeLog()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	highScores := highscore.New(cfg.HighScoreFile, logger)
	logger.Debug("using high score file", "path", highScores.Path())

	opts := tui.Options{
		Keys:       tui.NewKeyMap(cfg.Keys),
		HighScores: highScores,
		Logger:     logger,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
		},
	}

	// Open game history
	store, err := storage.Open(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open game database: %v\n", err)
		logger.Warn("game history disabled", "err", err)
		// Continue without storage - game still works
	} else {
		defer store.Close()
		opts.Games = store
		opts.Scores = store
	}

	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
