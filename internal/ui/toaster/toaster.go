// Package toaster shows short status notifications (saved, reloaded, errors)
// at the bottom of the screen.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/inkwell/internal/ui/overlay"
	"github.com/zjrosen/inkwell/internal/ui/styles"
)

// Style determines the visual appearance of the toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// Durations before a toast dismisses itself. Errors stay longer.
const (
	DefaultDuration = 2 * time.Second
	ErrorDuration   = 5 * time.Second
)

// DismissMsg dismisses the toast with the matching ID.
type DismissMsg struct {
	ID int
}

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	id      int
}

// New creates a hidden toaster.
func New() Model {
	return Model{}
}

// Show displays message and returns the command that dismisses it. A newer
// toast replaces the current one, and the older dismiss timer becomes a no-op.
func (m Model) Show(message string, style Style) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.id++

	d := DefaultDuration
	if style == StyleError {
		d = ErrorDuration
	}
	return m, ScheduleDismiss(m.id, d)
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.ID == m.id {
		return m.Hide()
	}
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the current text.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var icon string
	switch m.style {
	case StyleError:
		style = style.BorderForeground(styles.StatusErrorColor)
		icon = "✗"
	case StyleInfo:
		style = style.BorderForeground(styles.StatusInfoColor)
		icon = "i"
	case StyleWarn:
		style = style.BorderForeground(styles.StatusWarningColor)
		icon = "!"
	default:
		style = style.BorderForeground(styles.StatusSuccessColor)
		icon = "✓"
	}

	return style.Render(icon + " " + m.message)
}

// Overlay renders the toast bottom-center over bg.
func (m Model) Overlay(bg string, width, height int) string {
	fg := m.View()
	if fg == "" {
		return bg
	}

	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, fg, bg)
}

// ScheduleDismiss returns a command that dismisses toast id after d.
func ScheduleDismiss(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{ID: id}
	})
}
