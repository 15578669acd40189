// Package linkeditor is the URL popover behind the bubble menu's link button.
package linkeditor

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/inkwell/internal/keys"
	"github.com/zjrosen/inkwell/internal/ui/styles"
)

const width = 44

type focus int

const (
	focusInput focus = iota
	focusApply
	focusRemove
)

var instances atomic.Int64

// SubmitMsg carries the normalized href to apply.
type SubmitMsg struct {
	Href string
}

// RemoveMsg asks for the link mark to be removed.
type RemoveMsg struct{}

// CancelMsg closes the popover without changes.
type CancelMsg struct{}

// Model is the link popover state.
type Model struct {
	input      textinput.Model
	focus      focus
	existing   bool
	zonePrefix string
}

// New creates an empty link editor.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "https://example.com"
	ti.Prompt = ""
	ti.CharLimit = 2048
	ti.Width = width - 4
	return Model{
		input:      ti,
		zonePrefix: fmt.Sprintf("linkeditor-%d-", instances.Add(1)),
	}
}

// Open prefills the input with the active href and focuses it.
func (m Model) Open(href string) (Model, tea.Cmd) {
	m.input.SetValue(href)
	m.input.CursorEnd()
	m.existing = href != ""
	m.focus = focusInput
	return m, m.input.Focus()
}

// Reset clears the input and drops focus.
func (m Model) Reset() Model {
	m.input.SetValue("")
	m.input.Blur()
	m.focus = focusInput
	m.existing = false
	return m
}

// Value returns the raw input.
func (m Model) Value() string {
	return m.input.Value()
}

// Update handles keys and clicks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		switch {
		case zone.Get(m.zonePrefix + "apply").InBounds(msg):
			return m, m.submit()
		case zone.Get(m.zonePrefix + "remove").InBounds(msg):
			return m, removeCmd
		case zone.Get(m.zonePrefix + "input").InBounds(msg):
			m.focus = focusInput
			return m, m.input.Focus()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Popover.Close):
			return m, cancelCmd
		case key.Matches(msg, keys.Popover.Clear):
			return m, removeCmd
		case key.Matches(msg, keys.Popover.Confirm):
			if m.focus == focusRemove {
				return m, removeCmd
			}
			return m, m.submit()
		case msg.String() == "tab":
			m.setFocus((m.focus + 1) % 3)
			return m, nil
		case msg.String() == "shift+tab":
			m.setFocus((m.focus + 2) % 3)
			return m, nil
		}
	}

	if m.focus != focusInput {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m Model) submit() tea.Cmd {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" || strings.EqualFold(raw, "remove") {
		return removeCmd
	}
	href := NormalizeHref(raw)
	return func() tea.Msg { return SubmitMsg{Href: href} }
}

func removeCmd() tea.Msg { return RemoveMsg{} }

func cancelCmd() tea.Msg { return CancelMsg{} }

var opaqueSchemes = []string{"mailto:", "tel:"}

// NormalizeHref trims s and prefixes https:// when it has no scheme.
func NormalizeHref(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.Contains(s, "://") {
		return s
	}
	lower := strings.ToLower(s)
	for _, scheme := range opaqueSchemes {
		if strings.HasPrefix(lower, scheme) {
			return s
		}
	}
	return "https://" + s
}

// Width is the rendered width of the popover.
func (m Model) Width() int {
	return width
}

// View renders the popover box.
func (m Model) View() string {
	inputStyle := lipgloss.NewStyle().Width(width - 4)
	input := zone.Mark(m.zonePrefix+"input", inputStyle.Render(m.input.View()))

	apply := styles.ButtonStyle
	if m.focus == focusApply {
		apply = styles.ButtonFocusedStyle
	}
	remove := styles.ButtonStyle
	if m.focus == focusRemove {
		remove = styles.ButtonFocusedStyle
	}
	buttons := zone.Mark(m.zonePrefix+"apply", apply.Render("Apply"))
	if m.existing {
		buttons += " " + zone.Mark(m.zonePrefix+"remove", remove.Render("Remove"))
	}

	rows := []string{
		" " + input,
		" " + buttons,
	}
	return styles.RenderPanel(rows, "Link", "enter apply · esc close", width, true)
}
