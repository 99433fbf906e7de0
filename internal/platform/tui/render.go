package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// colorCodes maps core.Color to ANSI 256-color codes.
var colorCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// Styles holds the lipgloss styles for one output. SSH sessions each get
// their own renderer so color detection follows the client terminal.
type Styles struct {
	colors map[core.Color]lipgloss.Style

	Title  lipgloss.Style
	Help   lipgloss.Style
	Flash  lipgloss.Style
	Muted  lipgloss.Style
	Border lipgloss.Style
}

// NewStyles builds styles bound to r. A nil renderer uses the default one.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	colors := make(map[core.Color]lipgloss.Style, len(colorCodes)+1)
	colors[core.ColorDefault] = r.NewStyle()
	for c, code := range colorCodes {
		colors[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}

	return Styles{
		colors: colors,
		Title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Help:   r.NewStyle().Foreground(lipgloss.Color("241")),
		Flash:  r.NewStyle().Foreground(lipgloss.Color("10")),
		Muted:  r.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Border: r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
	}
}

// Color returns the style for a core color.
func (s Styles) Color(c core.Color) lipgloss.Style {
	if style, ok := s.colors[c]; ok {
		return style
	}
	return s.colors[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (s Styles) RenderScreen(screen *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(screen.Width()*screen.Height()*2 + screen.Height())

	for y := range screen.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < screen.Width() {
			startColor := screen.GetCell(x, y).Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < screen.Width() {
				cell := screen.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if startColor == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(s.Color(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// centerText pads text on the left so it sits in the middle of width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
