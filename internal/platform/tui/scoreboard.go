package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Scoreboard layout constants
const (
	maxScores     = 100 // Max games to load
	tableMinWidth = 50  // Below this the date column is dropped
)

// ScoreSource supplies the scoreboard contents.
type ScoreSource interface {
	TopGames(limit int) ([]storage.GameRecord, error)
	Stats() (storage.Stats, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/tab", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreboardKeysFor adapts the scoreboard keys to the game bindings: the
// scores key also goes back, and the configured quit keys quit. A key bound
// to Back is not offered as Quit.
func scoreboardKeysFor(game KeyMap) ScoreboardKeyMap {
	k := DefaultScoreboardKeyMap()
	back := append([]string{"esc", "b"}, game.Scores.Keys()...)
	k.Back = key.NewBinding(
		key.WithKeys(back...),
		key.WithHelp("esc/"+helpKeys(game.Scores.Keys()), "back"),
	)

	var quit []string
	for _, name := range game.Quit.Keys() {
		if !slices.Contains(back, name) {
			quit = append(quit, name)
		}
	}
	if len(quit) > 0 {
		k.Quit = key.NewBinding(
			key.WithKeys(quit...),
			key.WithHelp(helpKeys(quit), "quit"),
		)
	}
	return k
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	source    ScoreSource
	highScore int
	games     []storage.GameRecord
	stats     storage.Stats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	styles    Styles
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model. highScore is the value
// from the high score file, shown next to the history stats.
func NewScoreboardModel(source ScoreSource, highScore int, keys ScoreboardKeyMap, styles Styles, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ScoreboardModel{
		source:    source,
		highScore: highScore,
		keys:      keys,
		styles:    styles,
		help:      h,
		width:     width,
		height:    height,
	}

	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Tile", Width: 6},
		{Title: "Moves", Width: 6},
		{Title: "Result", Width: 9},
	}
	if m.width-4 >= tableMinWidth {
		columns = append(columns, table.Column{Title: "Date", Width: 14})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for header, stats, help
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the top games and stats.
func (m *ScoreboardModel) load() {
	m.games, m.stats, m.loadErr = nil, storage.Stats{}, nil
	if m.source != nil {
		games, err := m.source.TopGames(maxScores)
		if err != nil {
			m.loadErr = err
		} else {
			m.games = games
		}
		if stats, err := m.source.Stats(); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current games.
func (m *ScoreboardModel) updateTableRows() {
	withDate := len(m.table.Columns()) > 5
	rows := make([]table.Row, len(m.games))
	for i, g := range m.games {
		row := table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", g.Score),
			fmt.Sprintf("%d", g.MaxTile),
			fmt.Sprintf("%d", g.Moves),
			string(g.Outcome),
		}
		if withDate {
			row = append(row, g.EndedAt.Local().Format("Jan 02 15:04"))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString(centerText(m.styles.Title.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.styles.Border.Padding(0, 1).Render(m.renderTableContent()), m.width))

	// Help bar
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the history in one line.
func (m ScoreboardModel) statsLine() string {
	parts := []string{fmt.Sprintf("Best: %d", max(m.highScore, m.stats.BestScore))}
	if m.stats.Games > 0 {
		parts = append(parts,
			fmt.Sprintf("Games: %d", m.stats.Games),
			fmt.Sprintf("Wins: %d", m.stats.Wins),
			fmt.Sprintf("Avg: %.0f", m.stats.AvgScore),
			fmt.Sprintf("Top tile: %d", m.stats.BestTile),
		)
	}
	return strings.Join(parts, "  ")
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if m.loadErr != nil {
		return m.styles.Muted.Padding(2, 4).Render("Could not load history.")
	}
	if len(m.games) == 0 {
		return m.styles.Muted.Padding(2, 4).Render("No games recorded yet.\nFinish a game to see it here!")
	}

	return m.table.View()
}

// Games returns the loaded records.
func (m ScoreboardModel) Games() []storage.GameRecord {
	return m.games
}

// IsGoingBack returns true if user wants to go back to the board.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
