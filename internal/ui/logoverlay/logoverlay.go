// Package logoverlay is the in-app debug log viewer (ctrl+x in debug mode).
package logoverlay

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/ui/overlay"
	"github.com/zjrosen/inkwell/internal/ui/styles"
)

const (
	viewportMaxHeight = 20
	viewportMinHeight = 5
	boxMaxWidth       = 140
	boxMinWidth       = 40
	bufferEntries     = 10000
)

// categories cycles with tab; "" shows everything.
var categories = []log.Category{
	"", log.CatEditor, log.CatToolbar, log.CatDB, log.CatConfig,
	log.CatWatcher, log.CatUI, log.CatCache, log.CatTrace,
}

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

// Model is the log viewer state.
type Model struct {
	visible  bool
	minLevel log.Level
	category int
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden overlay.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Update handles keys while visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			log.ClearBuffer()
		case "d":
			m.minLevel = log.LevelDebug
		case "i":
			m.minLevel = log.LevelInfo
		case "w":
			m.minLevel = log.LevelWarn
		case "e":
			m.minLevel = log.LevelError
		case "tab":
			m.category = (m.category + 1) % len(categories)
		case "j", "down":
			m.viewport.ScrollDown(1)
			return m, nil
		case "k", "up":
			m.viewport.ScrollUp(1)
			return m, nil
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		case "ctrl+x", "esc":
			m.visible = false
			return m, func() tea.Msg { return CloseMsg{} }
		default:
			return m, nil
		}
		m = m.refresh(true)
		return m, nil

	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	}

	return m, nil
}

// Refresh reloads entries, e.g. after a log line was published. The view
// follows the tail only if it was already at the bottom.
func (m Model) Refresh() Model {
	if !m.visible {
		return m
	}
	return m.refresh(m.viewport.AtBottom())
}

func (m Model) refresh(follow bool) Model {
	if m.width == 0 || m.height == 0 {
		return m
	}
	viewportHeight := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	offset := m.viewport.YOffset

	m.viewport = viewport.New(m.contentWidth(), viewportHeight)
	m.viewport.SetContent(m.buildContent())
	if follow {
		m.viewport.GotoBottom()
	} else {
		m.viewport.SetYOffset(offset)
	}
	return m
}

func (m Model) filtered() []string {
	var out []string
	cat := categories[m.category]
	for _, entry := range log.Recent(bufferEntries) {
		if !matchesLevel(entry, m.minLevel) {
			continue
		}
		if cat != "" && !strings.Contains(entry, "["+string(cat)+"]") {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (m Model) buildContent() string {
	entries := m.filtered()
	if len(entries) == 0 {
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).Render("No logs to display")
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, colorize(e, m.contentWidth()))
	}
	return strings.Join(lines, "\n")
}

// entryLevel parses the level tag written by log.Format.
func entryLevel(entry string) (log.Level, bool) {
	for _, l := range []log.Level{log.LevelError, log.LevelWarn, log.LevelInfo, log.LevelDebug} {
		if strings.Contains(entry, "["+l.String()+"]") {
			return l, true
		}
	}
	return 0, false
}

func matchesLevel(entry string, minLevel log.Level) bool {
	l, ok := entryLevel(entry)
	return !ok || l >= minLevel
}

func colorize(entry string, maxWidth int) string {
	entry = strings.TrimSuffix(entry, "\n")
	if ansi.StringWidth(entry) > maxWidth {
		entry = ansi.Truncate(entry, maxWidth-3, "...")
	}

	color := styles.TextPrimaryColor
	if l, ok := entryLevel(entry); ok {
		switch l {
		case log.LevelError:
			color = styles.StatusErrorColor
		case log.LevelWarn:
			color = styles.StatusWarningColor
		case log.LevelInfo:
			color = styles.StatusInfoColor
		default:
			color = styles.TextMutedColor
		}
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

// View renders the box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	width := m.boxWidth()
	divider := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor).Render(strings.Repeat("─", width))
	title := "Logs"
	if cat := categories[m.category]; cat != "" {
		title += " · " + string(cat)
	}
	header := lipgloss.NewStyle().Bold(true).Foreground(styles.BorderFocusColor).PaddingLeft(1).Render(title)

	body := strings.Join([]string{
		header,
		divider,
		m.viewport.View(),
		divider,
		m.filterHint(),
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderDefaultColor).
		Width(width).
		Render(body)
}

func (m Model) filterHint() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear"), hint.Render("[tab] Category")}
	for _, opt := range []struct {
		label string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	} {
		st := hint
		if m.minLevel == opt.level {
			st = active
		}
		parts = append(parts, st.Render(opt.label))
	}
	return strings.Join(parts, "  ")
}

// Overlay centers the viewer over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// Visible reports whether the viewer is open.
func (m Model) Visible() bool {
	return m.visible
}

// Toggle opens or closes the viewer.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m = m.refresh(true)
	}
	return m
}

// SetSize updates the screen size.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	return m.refresh(true)
}

// Category returns the category filter, "" for all.
func (m Model) Category() log.Category {
	return categories[m.category]
}

// MinLevel returns the level filter.
func (m Model) MinLevel() log.Level {
	return m.minLevel
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m Model) contentWidth() int {
	return m.boxWidth() - 2
}

// Categories lists the category filter cycle.
func Categories() []log.Category {
	return slices.Clone(categories)
}
