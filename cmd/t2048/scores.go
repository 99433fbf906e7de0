package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/highscore"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagLimit  int
	flagClear  bool
	flagRecent bool
	flagGameID string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score and best games",
	Long: `Display the stored high score, history stats and the best games.

Examples:
  t2048 scores
  t2048 scores --limit 25
  t2048 scores --recent
  t2048 scores --id 3f2a...
  t2048 scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded game history")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List the most recent games instead of the best")
	scoresCmd.Flags().StringVar(&flagGameID, "id", "", "Show a single game by ID")
}

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Open game history
	store, err := storage.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("error opening game database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagClear {
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Game history cleared.")
		return nil
	}

	if flagGameID != "" {
		return printGame(out, store, flagGameID)
	}

	best := highscore.New(cfg.HighScoreFile, nil).Load()
	return printScores(out, store, best, flagLimit, flagRecent)
}

// printScores writes the score report for store. recent lists games by end
// time instead of by score.
func printScores(out io.Writer, store *storage.Store, best, limit int, recent bool) error {
	title := "High Scores - 2048"
	list := store.TopGames
	if recent {
		title = "Recent Games - 2048"
		list = store.RecentGames
	}

	games, err := list(limit)
	if err != nil {
		return fmt.Errorf("error retrieving games: %w", err)
	}
	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}

	fmt.Fprintln(out, title)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d\n", max(best, stats.BestScore))

	if len(games) == 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "No games recorded yet.")
		fmt.Fprintln(out, "Play 't2048' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "Games: %d  Wins: %d  Avg: %.0f  Top tile: %d  Last played: %s\n",
		stats.Games, stats.Wins, stats.AvgScore, stats.BestTile,
		stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	fmt.Fprintln(out)

	// Print header
	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-6s  %-9s  %-9s  %s\n", "Rank", "Score", "Tile", "Moves", "Result", "Time", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-6s  %-9s  %-9s  %s\n", "----", "-----", "----", "-----", "------", "----", "----")

	// Print games
	for i, g := range games {
		dateStr := g.EndedAt.Local().Format("2006-01-02 15:04")
		fmt.Fprintf(out, "  %-4d  %-8d  %-6d  %-6d  %-9s  %-9s  %s\n",
			i+1, g.Score, g.MaxTile, g.Moves, g.Outcome, g.Duration().Round(time.Second), dateStr)
	}
	return nil
}

// printGame writes the details of one recorded game.
func printGame(out io.Writer, store *storage.Store, id string) error {
	g, err := store.GameByID(id)
	if err != nil {
		return fmt.Errorf("error retrieving game: %w", err)
	}
	if g == nil {
		return fmt.Errorf("no game with id %q", id)
	}

	fmt.Fprintf(out, "Game %s\n\n", g.ID)
	fmt.Fprintf(out, "  Score:    %d\n", g.Score)
	fmt.Fprintf(out, "  Max tile: %d\n", g.MaxTile)
	fmt.Fprintf(out, "  Moves:    %d\n", g.Moves)
	fmt.Fprintf(out, "  Result:   %s\n", g.Outcome)
	fmt.Fprintf(out, "  Started:  %s\n", g.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "  Ended:    %s\n", g.EndedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "  Time:     %s\n", g.Duration().Round(time.Second))
	return nil
}
