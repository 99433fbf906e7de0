package core

// Action represents a semantic player intent, abstracted from physical key
// presses. Key bindings resolve to actions; the engine never sees keys.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // Up arrow, W
	ActionDown              // Down arrow, S
	ActionLeft              // Left arrow, A
	ActionRight             // Right arrow, D
	ActionReset             // Ctrl+R, R - start a fresh board
	ActionQuit              // Q, Ctrl+C - end the session
	ActionScores            // Tab - toggle the scoreboard
	ActionScreenshot        // Ctrl+S - dump the screen to a text file
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionReset:
		return "Reset"
	case ActionQuit:
		return "Quit"
	case ActionScores:
		return "Scores"
	case ActionScreenshot:
		return "Screenshot"
	default:
		return "Unknown"
	}
}
