// Package colorpicker is the swatch popover behind the bubble menu's text
// color and highlight buttons.
package colorpicker

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

// Kind tells which mark the picker edits.
type Kind int

const (
	TextColor Kind = iota
	Highlight
)

func (k Kind) String() string {
	if k == Highlight {
		return "highlight"
	}
	return "color"
}

// PresetColor is a named swatch.
type PresetColor struct {
	Name string
	Hex  string
}

// TextPresets are offered by the text color popover.
var TextPresets = []PresetColor{
	{Name: "Gray", Hex: "#9B9A97"},
	{Name: "Brown", Hex: "#BA856F"},
	{Name: "Orange", Hex: "#FF9F43"},
	{Name: "Yellow", Hex: "#FECA57"},
	{Name: "Green", Hex: "#73F59F"},
	{Name: "Blue", Hex: "#54A0FF"},
	{Name: "Purple", Hex: "#A78BFA"},
	{Name: "Pink", Hex: "#F472B6"},
	{Name: "Red", Hex: "#FF8787"},
}

// HighlightPresets are offered by the highlight popover.
var HighlightPresets = []PresetColor{
	{Name: "Gray", Hex: "#3F4447"},
	{Name: "Brown", Hex: "#5C4033"},
	{Name: "Orange", Hex: "#6E4A1F"},
	{Name: "Yellow", Hex: "#6B5B1E"},
	{Name: "Green", Hex: "#1F4D36"},
	{Name: "Blue", Hex: "#1E3A5F"},
	{Name: "Purple", Hex: "#3E2F5B"},
	{Name: "Pink", Hex: "#5B2A45"},
	{Name: "Red", Hex: "#5F2A2A"},
}

const columnWidth = 14

var instances atomic.Int64

// SelectMsg is sent when a swatch or custom hex is chosen.
type SelectMsg struct {
	Kind Kind
	Hex  string
}

// ClearMsg is sent when the user removes the color.
type ClearMsg struct {
	Kind Kind
}

// CancelMsg is sent when the popover is dismissed without a choice.
type CancelMsg struct {
	Kind Kind
}

// Model holds the picker state.
type Model struct {
	kind        Kind
	columns     [][]PresetColor
	column      int
	selected    int
	current     string
	custom      textinput.Model
	inCustom    bool
	customError bool
	zonePrefix  string
}

// New creates a picker for kind with its preset column and, when recent is
// non-empty, a column of recently used colors.
func New(kind Kind, recent []string) Model {
	ti := textinput.New()
	ti.Placeholder = "#RRGGBB"
	ti.CharLimit = 7
	ti.Width = 10
	ti.Prompt = ""

	presets := TextPresets
	if kind == Highlight {
		presets = HighlightPresets
	}
	m := Model{
		kind:       kind,
		columns:    [][]PresetColor{presets},
		custom:     ti,
		zonePrefix: fmt.Sprintf("colorpicker-%d-", instances.Add(1)),
	}
	return m.SetRecent(recent)
}

// Kind returns which mark the picker edits.
func (m Model) Kind() Kind {
	return m.kind
}

// SetRecent replaces the recent colors column.
func (m Model) SetRecent(recent []string) Model {
	m.columns = m.columns[:1]
	if len(recent) > 0 {
		col := make([]PresetColor, 0, len(recent))
		for _, hex := range recent {
			col = append(col, PresetColor{Name: strings.ToUpper(hex), Hex: hex})
		}
		m.columns = append(m.columns, col)
	}
	m.column = min(m.column, len(m.columns)-1)
	m.selected = min(m.selected, len(m.columns[m.column])-1)
	return m
}

// SetSelected moves the cursor to hex and marks it as the current value.
// An unknown or empty hex resets the cursor to the first swatch.
func (m Model) SetSelected(hex string) Model {
	m = m.Reset()
	m.current = hex
	for col, presets := range m.columns {
		for row, p := range presets {
			if hex != "" && strings.EqualFold(p.Hex, hex) {
				m.column, m.selected = col, row
				return m
			}
		}
	}
	return m
}

// Reset leaves custom entry and moves the cursor home.
func (m Model) Reset() Model {
	m.inCustom = false
	m.customError = false
	m.custom.Blur()
	m.custom.SetValue("")
	m.column, m.selected = 0, 0
	return m
}

// Selected returns the swatch under the cursor.
func (m Model) Selected() PresetColor {
	if m.column < 0 || m.column >= len(m.columns) {
		return PresetColor{}
	}
	col := m.columns[m.column]
	if m.selected < 0 || m.selected >= len(col) {
		return PresetColor{}
	}
	return col[m.selected]
}

// InCustomMode reports whether hex entry is active.
func (m Model) InCustomMode() bool {
	return m.inCustom
}

// Update handles keys and clicks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if mouse, ok := msg.(tea.MouseMsg); ok {
		return m.handleMouse(mouse)
	}
	if m.inCustom {
		return m.updateCustom(msg)
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	col := m.columns[m.column]
	switch {
	case key.Matches(km, keys.Popover.Down):
		m.selected = min(m.selected+1, len(col)-1)
	case key.Matches(km, keys.Popover.Up):
		m.selected = max(m.selected-1, 0)
	case key.Matches(km, keys.Popover.Left):
		m.moveColumn(-1)
	case key.Matches(km, keys.Popover.Right):
		m.moveColumn(1)
	case key.Matches(km, keys.Popover.Confirm):
		return m, m.selectCmd(col[m.selected].Hex)
	case key.Matches(km, keys.Popover.Clear), km.String() == "x":
		return m, m.clearCmd()
	case key.Matches(km, keys.Popover.Close):
		return m, m.cancelCmd()
	case km.String() == "c":
		m.inCustom = true
		m.customError = false
		m.custom.SetValue("")
		m.custom.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) moveColumn(delta int) {
	next := m.column + delta
	if next < 0 || next >= len(m.columns) {
		return
	}
	m.column = next
	m.selected = min(m.selected, len(m.columns[next])-1)
}

func (m Model) updateCustom(msg tea.Msg) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Popover.Confirm):
			hex := strings.TrimSpace(m.custom.Value())
			if styles.IsHexColor(hex) {
				return m, m.selectCmd(hex)
			}
			m.customError = true
			return m, nil
		case key.Matches(km, keys.Popover.Close):
			m.inCustom = false
			m.customError = false
			m.custom.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.custom, cmd = m.custom.Update(msg)
	if m.customError && styles.IsHexColor(m.custom.Value()) {
		m.customError = false
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if zone.Get(m.zonePrefix + "clear").InBounds(msg) {
		return m, m.clearCmd()
	}
	for c, col := range m.columns {
		for r, p := range col {
			if zone.Get(m.swatchZone(c, r)).InBounds(msg) {
				m.column, m.selected = c, r
				return m, m.selectCmd(p.Hex)
			}
		}
	}
	return m, nil
}

func (m Model) swatchZone(col, row int) string {
	return fmt.Sprintf("%sswatch-%d-%d", m.zonePrefix, col, row)
}

func (m Model) title() string {
	if m.kind == Highlight {
		return "Highlight"
	}
	return "Text color"
}

// Width is the rendered width of the popover.
func (m Model) Width() int {
	return columnWidth*2 + 2
}

// View renders the popover box.
func (m Model) View() string {
	width := m.Width()
	inner := width - 2

	var rows []string
	if m.inCustom {
		line := m.custom.View()
		if hex := m.custom.Value(); styles.IsHexColor(hex) {
			line += " " + lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("   ")
		}
		rows = append(rows, " "+line)
		if m.customError {
			rows = append(rows, " "+styles.ErrorStyle.Render("Invalid hex"))
		}
		rows = append(rows, " "+styles.HintStyle.Render("enter apply  esc back"))
		return styles.RenderPanel(rows, "Custom "+strings.ToLower(m.title()), "", width, true)
	}

	height := 0
	for _, col := range m.columns {
		height = max(height, len(col))
	}
	for r := range height {
		var line strings.Builder
		for c, col := range m.columns {
			if r >= len(col) {
				line.WriteString(strings.Repeat(" ", columnWidth))
				continue
			}
			line.WriteString(m.renderSwatch(c, r, col[r]))
		}
		rows = append(rows, lipgloss.NewStyle().MaxWidth(inner).Render(line.String()))
	}

	remove := zone.Mark(m.zonePrefix+"clear", styles.HintStyle.Render("x remove"))
	rows = append(rows, " "+remove+styles.HintStyle.Render("  c custom"))

	hint := ""
	if len(m.columns) > 1 {
		hint = "recent →"
	}
	return styles.RenderPanel(rows, m.title(), hint, width, true)
}

func (m Model) renderSwatch(c, r int, p PresetColor) string {
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(p.Hex)).Render("  ")
	if m.kind == TextColor {
		swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Hex)).Bold(true).Render("A ")
	}
	marker := " "
	if c == m.column && r == m.selected {
		marker = ">"
	}
	check := " "
	if m.current != "" && strings.EqualFold(p.Hex, m.current) {
		check = "✓"
	}
	name := styles.TruncateString(p.Name, columnWidth-6)
	cell := lipgloss.NewStyle().Width(columnWidth).Render(marker + swatch + name + " " + check)
	return zone.Mark(m.swatchZone(c, r), cell)
}

func (m Model) selectCmd(hex string) tea.Cmd {
	kind := m.kind
	return func() tea.Msg { return SelectMsg{Kind: kind, Hex: hex} }
}

func (m Model) clearCmd() tea.Cmd {
	kind := m.kind
	return func() tea.Msg { return ClearMsg{Kind: kind} }
}

func (m Model) cancelCmd() tea.Cmd {
	kind := m.kind
	return func() tea.Msg { return CancelMsg{Kind: kind} }
}
