package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/aether-rift/internal/core"
)

// palette lists every color a game may draw with.
var palette = []core.Color{
	core.ColorDefault,
	core.ColorRed,
	core.ColorGreen,
	core.ColorYellow,
	core.ColorBlue,
	core.ColorMagenta,
	core.ColorCyan,
	core.ColorWhite,
	core.ColorBrightRed,
	core.ColorBrightGreen,
	core.ColorBrightYellow,
	core.ColorBrightBlue,
	core.ColorBrightMagenta,
	core.ColorBrightCyan,
	core.ColorBrightWhite,
	core.ColorOrange,
	core.ColorGray,
	core.ColorBlack,
	core.ColorPurple,
}

// ColorStyles maps core.Color to lipgloss styles.
type ColorStyles map[core.Color]lipgloss.Style

// colorStyles uses the process-wide renderer.
var colorStyles = NewColorStyles(lipgloss.DefaultRenderer())

// NewColorStyles builds the palette for a renderer. SSH sessions pass their
// own renderer so colors follow the client terminal.
func NewColorStyles(r *lipgloss.Renderer) ColorStyles {
	styles := make(ColorStyles, len(palette))
	for _, c := range palette {
		style := r.NewStyle()
		if code := c.ANSI(); code >= 0 {
			style = style.Foreground(lipgloss.Color(strconv.Itoa(code)))
		}
		styles[c] = style
	}
	return styles
}

// Render converts a Screen buffer to a styled string.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (styles ColorStyles) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[startColor]
			if !ok {
				style = styles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText pads text on the left so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
