package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		flagConfig, flagDBPath, flagHighScore, flagLogLevel = "", "", "", ""
	})
}

func TestApplyOverrides(t *testing.T) {
	resetFlags(t)
	flagDBPath = "/tmp/x.db"
	flagLogLevel = "debug"

	cfg := applyOverrides(config.Default())
	if cfg.Database != "/tmp/x.db" {
		t.Errorf("Database = %q, want /tmp/x.db", cfg.Database)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.HighScoreFile != config.Default().HighScoreFile {
		t.Errorf("HighScoreFile should keep its default, got %q", cfg.HighScoreFile)
	}
}

func TestLoadConfigRejectsBadOverride(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	flagConfig = filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(flagConfig, []byte("log:\n  level: info\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	flagLogLevel = "chatty"

	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig() should reject an invalid --log-level")
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "t2048.log")

	logger, closeLog, err := newLogger(config.LogConfig{Level: "debug", File: path}, nil, "test")
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}
	logger.Debug("hello", "k", 1)
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing message: %q", data)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := newLogger(config.LogConfig{Level: "warn"}, &buf, "test")
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}
	logger.Info("quiet")
	logger.Warn("loud")

	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Errorf("unexpected log output: %q", buf.String())
	}

	if _, _, err := newLogger(config.LogConfig{Level: "shout"}, &buf, "test"); err == nil {
		t.Error("newLogger() should reject an unknown level")
	}
}

func TestPrintScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "games.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	var buf bytes.Buffer
	if err := printScores(&buf, store, 64, 10, false); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Best: 64") || !strings.Contains(buf.String(), "No games recorded yet") {
		t.Errorf("empty report:\n%s", buf.String())
	}

	end := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	store.SaveGame(storage.GameRecord{Score: 900, MaxTile: 64, Moves: 90, Outcome: storage.OutcomeLost, EndedAt: end})
	store.SaveGame(storage.GameRecord{Score: 2500, MaxTile: 256, Moves: 200, Outcome: storage.OutcomeAbandoned, EndedAt: end})

	buf.Reset()
	if err := printScores(&buf, store, 64, 10, false); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Best: 2500", "Games: 2", "abandoned", "900"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "2500 ") > strings.Index(out, "900 ") {
		t.Errorf("games should be ordered by score:\n%s", out)
	}
}

func TestPrintScoresRecentAndGame(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "games.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	start := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	if _, err := store.SaveGame(storage.GameRecord{Score: 5000, MaxTile: 512, Moves: 300, Outcome: storage.OutcomeLost,
		StartedAt: start, EndedAt: start.Add(10 * time.Minute)}); err != nil {
		t.Fatal(err)
	}
	id, err := store.SaveGame(storage.GameRecord{Score: 120, MaxTile: 16, Moves: 30, Outcome: storage.OutcomeAbandoned,
		StartedAt: start.Add(time.Hour), EndedAt: start.Add(time.Hour + 90*time.Second)})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := printScores(&buf, store, 0, 10, true); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Recent Games") || !strings.Contains(out, "1m30s") || !strings.Contains(out, "10m0s") {
		t.Errorf("recent report:\n%s", out)
	}
	if strings.Index(out, "120 ") > strings.Index(out, "5000 ") {
		t.Errorf("recent games should be ordered by end time:\n%s", out)
	}

	buf.Reset()
	if err := printGame(&buf, store, id); err != nil {
		t.Fatalf("printGame() failed: %v", err)
	}
	for _, want := range []string{id, "Score:    120", "Result:   abandoned", "Time:     1m30s"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("game report missing %q:\n%s", want, buf.String())
		}
	}

	if err := printGame(&buf, store, "missing"); err == nil {
		t.Error("printGame() should fail for an unknown id")
	}
}

func TestSimulate(t *testing.T) {
	moves := []string{"left", "UP", "right", "down", "left"}

	var first, second bytes.Buffer
	if err := simulate(&first, 42, moves); err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if err := simulate(&second, 42, moves); err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("same seed should give the same result:\n%s\n---\n%s", first.String(), second.String())
	}
	if !strings.Contains(first.String(), "Seed: 42") || !strings.Contains(first.String(), "/5  Status: in_progress") {
		t.Errorf("unexpected summary:\n%s", first.String())
	}

	var buf bytes.Buffer
	if err := simulate(&buf, 42, []string{"left", "diagonal"}); err == nil {
		t.Error("simulate() should reject an unknown direction")
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be printed for bad input, got %q", buf.String())
	}
}
