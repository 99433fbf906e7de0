// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome describes how a recorded game ended.
type Outcome string

const (
	OutcomeWon       Outcome = "won"
	OutcomeLost      Outcome = "lost"
	OutcomeAbandoned Outcome = "abandoned"
)

// timeLayout is the format used for timestamp columns.
const timeLayout = "2006-01-02 15:04:05.000"

// Store manages the SQLite database connection for game history.
type Store struct {
	db *sql.DB
}

// GameRecord is one finished or abandoned game.
type GameRecord struct {
	ID        string
	Score     int
	MaxTile   int
	Moves     int
	Outcome   Outcome
	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns how long the game lasted.
func (r GameRecord) Duration() time.Duration {
	if r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Stats summarizes the recorded history.
type Stats struct {
	Games      int
	BestScore  int
	AvgScore   float64
	Wins       int
	BestTile   int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_games_score ON games(score DESC);
		CREATE INDEX IF NOT EXISTS idx_games_ended_at ON games(ended_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame records a game. A record without an ID gets a fresh UUID, and a
// zero EndedAt is set to now. Returns the stored ID.
func (s *Store) SaveGame(rec GameRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.EndedAt.IsZero() {
		rec.EndedAt = time.Now()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = rec.EndedAt
	}
	switch rec.Outcome {
	case OutcomeWon, OutcomeLost, OutcomeAbandoned:
	default:
		return "", fmt.Errorf("storage: invalid outcome %q", rec.Outcome)
	}

	_, err := s.db.Exec(
		`INSERT INTO games (id, score, max_tile, moves, outcome, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Score,
		rec.MaxTile,
		rec.Moves,
		string(rec.Outcome),
		rec.StartedAt.UTC().Format(timeLayout),
		rec.EndedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}

	return rec.ID, nil
}

// TopGames retrieves the N best games ordered by score descending.
func (s *Store) TopGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryGames(
		`SELECT id, score, max_tile, moves, outcome, started_at, ended_at
		 FROM games
		 ORDER BY score DESC, ended_at ASC
		 LIMIT ?`,
		limit,
	)
}

// RecentGames retrieves the N most recently finished games.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryGames(
		`SELECT id, score, max_tile, moves, outcome, started_at, ended_at
		 FROM games
		 ORDER BY ended_at DESC
		 LIMIT ?`,
		limit,
	)
}

// GameByID retrieves a single game. Returns nil if it does not exist.
func (s *Store) GameByID(id string) (*GameRecord, error) {
	games, err := s.queryGames(
		`SELECT id, score, max_tile, moves, outcome, started_at, ended_at
		 FROM games
		 WHERE id = ?`,
		id,
	)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, nil
	}
	return &games[0], nil
}

func (s *Store) queryGames(query string, args ...any) ([]GameRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var rec GameRecord
		var outcome string
		var startedAt, endedAt any
		if err := rows.Scan(
			&rec.ID,
			&rec.Score,
			&rec.MaxTile,
			&rec.Moves,
			&outcome,
			&startedAt,
			&endedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		rec.Outcome = Outcome(outcome)
		rec.StartedAt = parseTime(startedAt)
		rec.EndedAt = parseTime(endedAt)
		games = append(games, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return games, nil
}

// BestScore returns the highest recorded score.
// Returns 0 if no games exist.
func (s *Store) BestScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM games").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Stats aggregates the whole history.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	var best, bestTile sql.NullInt64
	var avg sql.NullFloat64
	var wins sql.NullInt64
	var last sql.NullString

	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(score), AVG(score), MAX(max_tile),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), MAX(ended_at)
		 FROM games`,
		string(OutcomeWon),
	).Scan(&st.Games, &best, &avg, &bestTile, &wins, &last)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	if best.Valid {
		st.BestScore = int(best.Int64)
	}
	if avg.Valid {
		st.AvgScore = avg.Float64
	}
	if bestTile.Valid {
		st.BestTile = int(bestTile.Int64)
	}
	if wins.Valid {
		st.Wins = int(wins.Int64)
	}
	if last.Valid {
		st.LastPlayed = parseTime(last.String)
	}

	return st, nil
}

// Clear deletes the whole history.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM games")
	if err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string column values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	case []byte:
		return parseTime(string(v))
	}
	return time.Time{}
}
