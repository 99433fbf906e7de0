package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := GameRecord{
		Score:     1234,
		MaxTile:   128,
		Moves:     210,
		Outcome:   OutcomeLost,
		StartedAt: start,
		EndedAt:   start.Add(5 * time.Minute),
	}

	id, err := store.SaveGame(rec)
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveGame() returned non-UUID id %q", id)
	}

	got, err := store.GameByID(id)
	if err != nil {
		t.Fatalf("GameByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("GameByID() returned nil for a saved game")
	}
	if got.Score != 1234 || got.MaxTile != 128 || got.Moves != 210 || got.Outcome != OutcomeLost {
		t.Errorf("GameByID() = %+v, fields do not match saved record", got)
	}
	if !got.StartedAt.Equal(start) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, start)
	}
	if got.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %v, want 5m", got.Duration())
	}
}

func TestStoreSaveKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	want := uuid.NewString()
	id, err := store.SaveGame(GameRecord{ID: want, Score: 8, Outcome: OutcomeAbandoned})
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if id != want {
		t.Errorf("SaveGame() id = %q, want %q", id, want)
	}

	if _, err := store.SaveGame(GameRecord{ID: want, Score: 16, Outcome: OutcomeLost}); err == nil {
		t.Error("SaveGame() with a duplicate id should fail")
	}
}

func TestStoreSaveRejectsUnknownOutcome(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveGame(GameRecord{Score: 4, Outcome: "quit"}); err == nil {
		t.Error("SaveGame() with an unknown outcome should fail")
	}
}

func TestStoreGameByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.GameByID(uuid.NewString())
	if err != nil {
		t.Fatalf("GameByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("GameByID() = %+v, want nil", got)
	}
}

func TestStoreTopGamesLimit(t *testing.T) {
	store := openTestStore(t)

	// Save 5 games
	for i := 0; i < 5; i++ {
		store.SaveGame(GameRecord{Score: (i + 1) * 100, Outcome: OutcomeLost})
	}

	// Request only top 3
	games, err := store.TopGames(3)
	if err != nil {
		t.Fatalf("TopGames() failed: %v", err)
	}

	if len(games) != 3 {
		t.Fatalf("Expected 3 games with limit, got %d", len(games))
	}

	// Should be 500, 400, 300 (top 3)
	if games[0].Score != 500 || games[1].Score != 400 || games[2].Score != 300 {
		t.Errorf("Games not in expected order: %v", games)
	}
}

func TestStoreRecentGames(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, score := range []int{300, 100, 200} {
		end := base.Add(time.Duration(i) * time.Hour)
		store.SaveGame(GameRecord{Score: score, Outcome: OutcomeLost, StartedAt: end, EndedAt: end})
	}

	games, err := store.RecentGames(2)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("Expected 2 recent games, got %d", len(games))
	}
	if games[0].Score != 200 || games[1].Score != 100 {
		t.Errorf("Recent games not newest first: %d, %d", games[0].Score, games[1].Score)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	// No games yet
	best, err := store.BestScore()
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best score of 0 for empty history, got %d", best)
	}

	store.SaveGame(GameRecord{Score: 100, Outcome: OutcomeLost})
	store.SaveGame(GameRecord{Score: 300, Outcome: OutcomeWon})
	store.SaveGame(GameRecord{Score: 200, Outcome: OutcomeAbandoned})

	best, err = store.BestScore()
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best score of 300, got %d", best)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if empty.Games != 0 || empty.BestScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty store = %+v", empty)
	}

	last := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
	store.SaveGame(GameRecord{Score: 100, MaxTile: 16, Outcome: OutcomeLost, EndedAt: last.Add(-time.Hour)})
	store.SaveGame(GameRecord{Score: 20000, MaxTile: 2048, Outcome: OutcomeWon, EndedAt: last})
	store.SaveGame(GameRecord{Score: 200, MaxTile: 32, Outcome: OutcomeAbandoned, EndedAt: last.Add(-2 * time.Hour)})

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Games != 3 {
		t.Errorf("Games = %d, want 3", st.Games)
	}
	if st.BestScore != 20000 {
		t.Errorf("BestScore = %d, want 20000", st.BestScore)
	}
	if st.AvgScore < 6766.6 || st.AvgScore > 6766.7 {
		t.Errorf("AvgScore = %f, want about 6766.67", st.AvgScore)
	}
	if st.Wins != 1 {
		t.Errorf("Wins = %d, want 1", st.Wins)
	}
	if st.BestTile != 2048 {
		t.Errorf("BestTile = %d, want 2048", st.BestTile)
	}
	if !st.LastPlayed.Equal(last) {
		t.Errorf("LastPlayed = %v, want %v", st.LastPlayed, last)
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)

	store.SaveGame(GameRecord{Score: 100, Outcome: OutcomeLost})
	store.SaveGame(GameRecord{Score: 200, Outcome: OutcomeLost})

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	games, _ := store.TopGames(10)
	if len(games) != 0 {
		t.Errorf("Expected 0 games after clear, got %d", len(games))
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveGame(GameRecord{Score: 512, Outcome: OutcomeLost})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	best, err := store.BestScore()
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 512 {
		t.Errorf("BestScore() after reopen = %d, want 512", best)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestGameRecordDuration(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := GameRecord{StartedAt: start, EndedAt: start.Add(-time.Second)}
	if rec.Duration() != 0 {
		t.Errorf("Duration() with end before start = %v, want 0", rec.Duration())
	}
}
