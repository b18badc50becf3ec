package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rain/internal/core"
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Trailing blanks of each row are left unstyled to keep escape sequences
// short.
func RenderScreen(s *core.Screen, style lipgloss.Style) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		row := s.Row(y)
		text := strings.TrimRight(row, " ")
		if text != "" {
			sb.WriteString(style.Render(text))
		}
		sb.WriteString(row[len(text):])
	}
	return sb.String()
}

// padRows returns exactly height lines, blank-filling any missing rows.
func padRows(rows []string, width, height int) []string {
	out := make([]string, height)
	blank := strings.Repeat(" ", max(width, 0))
	for i := range out {
		if i < len(rows) {
			out[i] = rows[i]
		} else {
			out[i] = blank
		}
	}
	return out
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
