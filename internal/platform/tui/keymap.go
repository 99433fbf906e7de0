package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/game"
)

// KeyMap translates Bubble Tea key messages to game actions.
// Bindings come from the configuration so they can be remapped.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Reset      key.Binding
	Quit       key.Binding
	Scores     key.Binding
	Screenshot key.Binding
}

// NewKeyMap builds bindings from the configured key names.
func NewKeyMap(keys config.KeysConfig) KeyMap {
	return KeyMap{
		Up:         newBinding(keys.Up, "move up"),
		Down:       newBinding(keys.Down, "move down"),
		Left:       newBinding(keys.Left, "move left"),
		Right:      newBinding(keys.Right, "move right"),
		Reset:      newBinding(keys.Reset, "new game"),
		Quit:       newBinding(keys.Quit, "quit"),
		Scores:     newBinding(keys.Scores, "scores"),
		Screenshot: newBinding(keys.Screenshot, "screenshot"),
	}
}

// DefaultKeyMap returns the bindings of the built-in configuration.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.Default().Keys)
}

func newBinding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKeys(keys), desc),
	)
}

// helpKeys shows at most the first two key names.
func helpKeys(keys []string) string {
	if len(keys) > 2 {
		keys = keys[:2]
	}
	return strings.Join(keys, "/")
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.arrows(), k.Reset, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Reset, k.Scores, k.Screenshot, k.Quit},
	}
}

// arrows folds the four move bindings into one help entry.
func (k KeyMap) arrows() key.Binding {
	var keys []string
	for _, b := range []key.Binding{k.Up, k.Down, k.Left, k.Right} {
		keys = append(keys, b.Keys()...)
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(firstKey(k.Up)+firstKey(k.Left)+firstKey(k.Down)+firstKey(k.Right), "move"),
	)
}

func firstKey(b key.Binding) string {
	keys := b.Keys()
	if len(keys) == 0 {
		return ""
	}
	switch keys[0] {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	}
	return keys[0]
}

// Action maps a key message to a core action; unbound keys give ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Reset):
		return core.ActionReset
	case key.Matches(msg, k.Scores):
		return core.ActionScores
	case key.Matches(msg, k.Screenshot):
		return core.ActionScreenshot
	}
	return core.ActionNone
}

// Direction converts a move action to a board direction.
func Direction(a core.Action) (game.Direction, bool) {
	switch a {
	case core.ActionUp:
		return game.DirUp, true
	case core.ActionDown:
		return game.DirDown, true
	case core.ActionLeft:
		return game.DirLeft, true
	case core.ActionRight:
		return game.DirRight, true
	}
	return 0, false
}
