package tui

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// HighScoreStore loads and persists the best score.
type HighScoreStore interface {
	Load() int
	Save(score int) error
}

// GameRecorder stores finished games.
type GameRecorder interface {
	SaveGame(rec storage.GameRecord) (string, error)
}

// Options configures a game or session model. Nil stores are skipped.
type Options struct {
	Keys       KeyMap
	Styles     Styles
	HighScores HighScoreStore
	Games      GameRecorder
	Scores     ScoreSource
	Logger     *log.Logger
	Runtime    core.RuntimeConfig

	// ScreenshotDir receives ctrl+s dumps. Empty means ~/.t2048/screenshots.
	ScreenshotDir string

	// Now returns the current time; tests replace it.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if len(o.Keys.Quit.Keys()) == 0 {
		o.Keys = DefaultKeyMap()
	}
	if o.Runtime.ScreenW == 0 && o.Runtime.ScreenH == 0 {
		def := core.DefaultConfig()
		o.Runtime.ScreenW, o.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	// Use time-based seed if not specified
	if o.Runtime.Seed == 0 {
		o.Runtime.Seed = time.Now().UnixNano()
	}
	if o.Styles.colors == nil {
		o.Styles = NewStyles(nil)
	}
	return o
}

// GameModel is the Bubble Tea model for one 2048 board.
type GameModel struct {
	engine *game.Engine
	screen *core.Screen
	opts   Options
	help   help.Model

	startedAt time.Time
	savedHigh int  // Last high score handed to the store
	recorded  bool // Whether the current game has been stored
	quitting  bool

	flash   string
	flashID int
}

// NewGameModel creates a model with a fresh board. The starting high score
// is read from opts.HighScores.
func NewGameModel(opts Options) GameModel {
	opts = opts.withDefaults()

	highScore := 0
	if opts.HighScores != nil {
		highScore = opts.HighScores.Load()
	}

	m := GameModel{
		engine:    game.NewEngine(rand.New(rand.NewSource(opts.Runtime.Seed)), highScore),
		screen:    core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		opts:      opts,
		help:      help.New(),
		startedAt: opts.Now(),
		savedHigh: highScore,
	}
	m.resize(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	opts.Logger.Debug("new game", "seed", opts.Runtime.Seed, "high_score", highScore)
	return m
}

// Init implements tea.Model. Input is event driven, so there is no tick loop.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case FlashExpiredMsg:
		if msg.ID == m.flashID {
			m.flash = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.opts.Keys.Action(msg)

	switch action {
	case core.ActionQuit:
		m = m.Close()
		return m, tea.Quit

	case core.ActionReset:
		m.finish()
		m.engine.NewGame()
		m.startedAt = m.opts.Now()
		m.recorded = false
		m.opts.Logger.Debug("board reset")
		return m, nil

	case core.ActionScreenshot:
		path, err := m.saveScreenshot()
		if err != nil {
			m.opts.Logger.Warn("screenshot failed", "err", err)
			return m.setFlash("Screenshot failed")
		}
		m.opts.Logger.Info("screenshot saved", "path", path)
		return m.setFlash("Saved " + filepath.Base(path))
	}

	dir, ok := Direction(action)
	if !ok {
		return m, nil
	}

	if m.engine.Move(dir) == game.Unchanged {
		return m, nil
	}

	state := m.engine.State()
	m.opts.Logger.Debug("move", "dir", dir, "gained", state.Gained, "spawned", state.Spawned)
	if state.HighScore > m.savedHigh {
		m.saveHighScore(state.HighScore)
	}
	if state.Status.Terminal() {
		m.record(state)
	}
	return m, nil
}

// Close persists the high score and records the current game if it has not
// been stored yet. The returned model is marked as quitting.
func (m GameModel) Close() GameModel {
	m.finish()
	m.quitting = true
	return m
}

// finish stores whatever the current board has produced.
func (m *GameModel) finish() {
	state := m.engine.State()
	if state.HighScore > m.savedHigh {
		m.saveHighScore(state.HighScore)
	}
	m.record(state)
}

func (m *GameModel) saveHighScore(score int) {
	if m.opts.HighScores == nil {
		m.savedHigh = score
		return
	}
	if err := m.opts.HighScores.Save(score); err != nil {
		m.opts.Logger.Warn("cannot save high score", "score", score, "err", err)
		return
	}
	m.savedHigh = score
}

// record stores the current game once. Games without an accepted move are
// not worth a row.
func (m *GameModel) record(state game.State) {
	if m.recorded || state.Moves == 0 {
		return
	}
	m.recorded = true

	outcome := storage.OutcomeAbandoned
	switch state.Status {
	case game.StatusWon:
		outcome = storage.OutcomeWon
	case game.StatusLost:
		outcome = storage.OutcomeLost
	}

	if m.opts.Games == nil {
		return
	}
	id, err := m.opts.Games.SaveGame(storage.GameRecord{
		Score:     state.Score,
		MaxTile:   state.MaxTile,
		Moves:     state.Moves,
		Outcome:   outcome,
		StartedAt: m.startedAt,
		EndedAt:   m.opts.Now(),
	})
	if err != nil {
		m.opts.Logger.Warn("cannot record game", "err", err)
		return
	}
	m.opts.Logger.Info("game recorded", "id", id, "score", state.Score, "outcome", outcome)
}

// resize fits the board area to the window, keeping one line for help.
func (m *GameModel) resize(w, h int) {
	boardH := max(h-1, 0)
	m.engine.Resize(w, boardH)
	m.screen.Resize(w, boardH)
	m.help.Width = w
}

func (m GameModel) setFlash(text string) (GameModel, tea.Cmd) {
	m.flashID++
	m.flash = text
	return m, flashCmd(m.flashID)
}

// saveScreenshot writes the plain-text board to the screenshot directory.
func (m *GameModel) saveScreenshot() (string, error) {
	m.engine.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot find home directory: %w", err)
		}
		dir = filepath.Join(home, ".t2048", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create %s: %w", dir, err)
	}

	// Generate filename with timestamp
	timestamp := m.opts.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("t2048_%s.txt", timestamp))
	lines := strings.Split(m.screen.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("cannot write %s: %w", path, err)
	}
	return path, nil
}

// State returns the engine state.
func (m GameModel) State() game.State {
	return m.engine.State()
}

// IsQuitting reports whether the user asked to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.engine.Render(m.screen)
	footer := m.opts.Styles.Help.Render(m.help.View(m.opts.Keys))
	if m.flash != "" {
		footer = m.opts.Styles.Flash.Render(m.flash)
	}
	return m.opts.Styles.RenderScreen(m.screen) + "\n" + footer
}

// Run starts the Bubble Tea program with a session model.
func Run(opts Options) error {
	model := NewSessionModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithFilter(closeOnExit),
	)

	final, err := p.Run()
	if errors.Is(err, tea.ErrInterrupted) {
		// closeOnExit already stored the board.
		return nil
	}
	if err != nil {
		// Killed programs bypass the filter.
		if sm, ok := final.(SessionModel); ok && !sm.quitting {
			sm.game.Close()
		}
		return err
	}
	return nil
}
