package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderPanel draws rows inside a rounded box with the title set into the
// top border: ╭─ Title (hint) ───╮. Popovers use it for their frame.
func RenderPanel(rows []string, title, hint string, width int, focused bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = BorderFocusColor
	}
	border := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(borderColor)

	inner := max(width-2, 1)

	var top string
	if title == "" {
		top = border.Render(borderTopLeft + strings.Repeat(borderHorizontal, inner) + borderTopRight)
	} else {
		label := titleStyle.Render(title)
		if hint != "" {
			label += " " + HintStyle.Render("("+hint+")")
		}
		dashes := max(inner-lipgloss.Width(label)-3, 0)
		top = border.Render(borderTopLeft+borderHorizontal+" ") + label +
			border.Render(" "+strings.Repeat(borderHorizontal, dashes)+borderTopRight)
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, top)
	for _, row := range rows {
		pad := max(inner-lipgloss.Width(row), 0)
		lines = append(lines, border.Render(borderVertical)+row+strings.Repeat(" ", pad)+border.Render(borderVertical))
	}
	lines = append(lines, border.Render(borderBottomLeft+strings.Repeat(borderHorizontal, inner)+borderBottomRight))
	return strings.Join(lines, "\n")
}
