// Package help contains the keybinding overlay.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/inkwell/internal/keys"
	"github.com/zjrosen/inkwell/internal/ui/overlay"
	"github.com/zjrosen/inkwell/internal/ui/styles"
)

var (
	titleStyle   lipgloss.Style
	dividerStyle lipgloss.Style
	sectionStyle lipgloss.Style
	keyStyle     lipgloss.Style
	descStyle    lipgloss.Style
	boxStyle     lipgloss.Style
	contentStyle lipgloss.Style
	footerStyle  lipgloss.Style
)

func init() {
	rebuildStyles()
	styles.RegisterStyleRebuilder(rebuildStyles)
}

func rebuildStyles() {
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.ToolbarFocusBgColor).
		PaddingLeft(2)
	dividerStyle = lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)
	sectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.TextPrimaryColor).
		MarginTop(1)
	keyStyle = lipgloss.NewStyle().Foreground(styles.ToolbarButtonColor).Width(12)
	descStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	boxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderDefaultColor)
	contentStyle = lipgloss.NewStyle().Padding(0, 2)
	footerStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor).MarginTop(1)
}

// section is a titled column of bindings.
type section struct {
	title    string
	bindings []key.Binding
}

// Model holds the help overlay state.
type Model struct {
	width  int
	height int
}

// New creates a help overlay.
func New() Model {
	return Model{}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help box centered on an empty screen.
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	box := m.renderContent()
	if background == "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, box, background)
}

// sections reads the live keymaps so config overrides show up.
func sections() [][]section {
	ed, tb := keys.Editor, keys.Toolbar
	return [][]section{
		{
			{"Movement", []key.Binding{ed.Left, ed.Right, ed.Up, ed.Down, ed.LineStart, ed.LineEnd}},
			{"Selection", []key.Binding{ed.ExtendLeft, ed.ExtendRight, ed.ExtendUp, ed.ExtendDown, ed.SelectAll}},
		},
		{
			{"Formatting", []key.Binding{tb.Bold, tb.Italic, tb.Underline, tb.Strike, tb.Code, tb.Link, tb.Color, tb.Highlight}},
		},
		{
			{"Toolbar", []key.Binding{tb.Focus, tb.Prev, tb.Next, tb.Activate, tb.Leave}},
			{"General", []key.Binding{ed.Undo, ed.Redo, ed.Save, ed.Help, ed.Quit}},
		},
	}
}

func (m Model) renderContent() string {
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	cols := sections()
	rendered := make([]string, 0, len(cols))
	for i, col := range cols {
		var b strings.Builder
		for j, sec := range col {
			if j > 0 {
				b.WriteString("\n")
			}
			b.WriteString(sectionStyle.Render(sec.title))
			b.WriteString("\n")
			for _, kb := range sec.bindings {
				b.WriteString(renderBinding(kb))
			}
		}
		if i < len(cols)-1 {
			rendered = append(rendered, columnStyle.Render(b.String()))
		} else {
			rendered = append(rendered, b.String())
		}
	}
	columns := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	boxWidth := lipgloss.Width(columns) + 4
	body := contentStyle.Render(columns + "\n" + footerStyle.Render("Press f1 or Esc to close"))
	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Keybindings"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(body)

	return boxStyle.Width(boxWidth).Render(content.String())
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	return keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n"
}
