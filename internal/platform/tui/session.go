package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// SessionModel manages the full session flow: board <-> scoreboard.
// It is the top-level model for both local play and SSH sessions.
type SessionModel struct {
	opts       Options
	game       GameModel
	scoreboard *ScoreboardModel
	width      int
	height     int
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts Options) SessionModel {
	opts = opts.withDefaults()
	return SessionModel{
		opts:   opts,
		game:   NewGameModel(opts),
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.game.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Window size reaches both views so switching keeps the layout.
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = wsm.Width, wsm.Height
		m.game.resize(wsm.Width, wsm.Height)
		if m.scoreboard != nil {
			updated, _ := m.scoreboard.Update(wsm)
			sb := updated.(ScoreboardModel)
			m.scoreboard = &sb
		}
		return m, nil
	}

	if m.scoreboard != nil {
		return m.updateScoreboard(msg)
	}
	return m.updateGame(msg)
}

// updateGame handles updates when the board is shown.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && m.opts.Keys.Action(km) == core.ActionScores {
		sb := NewScoreboardModel(
			m.opts.Scores,
			m.game.State().HighScore,
			scoreboardKeysFor(m.opts.Keys),
			m.opts.Styles,
			m.width,
			m.height,
		)
		m.scoreboard = &sb
		return m, sb.Init()
	}

	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
	}
	return m, cmd
}

// updateScoreboard handles updates when the scoreboard is shown.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Flash timers belong to the board.
	if _, ok := msg.(FlashExpiredMsg); ok {
		return m.updateGame(msg)
	}

	newModel, cmd := m.scoreboard.Update(msg)
	sb, ok := newModel.(ScoreboardModel)
	if !ok {
		return m, cmd
	}
	m.scoreboard = &sb

	switch {
	case sb.IsQuitting():
		m.game = m.game.Close()
		m.quitting = true
		return m, tea.Quit
	case sb.IsGoingBack():
		m.scoreboard = nil
		return m, nil
	}
	return m, cmd
}

// closeOnExit is a program filter that stores the board when the program
// stops without the player quitting, as on SIGINT or a dropped SSH
// connection. Such exits never reach Update.
func closeOnExit(model tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.QuitMsg, tea.InterruptMsg:
		if sm, ok := model.(SessionModel); ok && !sm.quitting {
			sm.game.Close()
		}
	}
	return msg
}

// ShowingScores reports whether the scoreboard is on screen.
func (m SessionModel) ShowingScores() bool {
	return m.scoreboard != nil
}

// Game returns the board model.
func (m SessionModel) Game() GameModel {
	return m.game
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}
	return m.game.View()
}
