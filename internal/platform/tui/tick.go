// Package tui provides the Bubble Tea front end for the 2048 engine: key
// bindings, the game and scoreboard views, and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// flashDuration is how long a status message stays on screen.
const flashDuration = 2 * time.Second

// FlashExpiredMsg clears the status message with the matching id.
type FlashExpiredMsg struct {
	ID int
}

// flashCmd returns a command that expires flash id after flashDuration.
func flashCmd(id int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return FlashExpiredMsg{ID: id}
	})
}
