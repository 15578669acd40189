// Package toolbar is the bubble menu: a floating row of formatting buttons
// shown above a text selection, plus the color, highlight and link popovers it
// opens.
package toolbar

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/keys"
	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/ui/colorpicker"
	"github.com/zjrosen/inkwell/internal/ui/linkeditor"
	"github.com/zjrosen/inkwell/internal/ui/overlay"
	"github.com/zjrosen/inkwell/internal/ui/styles"
)

// MaxRecentColors caps the recent colors column in the pickers.
const MaxRecentColors = 5

// Action is a toolbar button.
type Action int

const (
	ActionLink Action = iota
	ActionBold
	ActionItalic
	ActionUnderline
	ActionStrike
	ActionCode
	ActionColor
	ActionHighlight
)

// Actions is the button order, left to right.
var Actions = []Action{
	ActionLink, ActionBold, ActionItalic, ActionUnderline,
	ActionStrike, ActionCode, ActionColor, ActionHighlight,
}

func (a Action) String() string {
	switch a {
	case ActionLink:
		return "link"
	case ActionBold:
		return "bold"
	case ActionItalic:
		return "italic"
	case ActionUnderline:
		return "underline"
	case ActionStrike:
		return "strike"
	case ActionCode:
		return "code"
	case ActionColor:
		return "color"
	case ActionHighlight:
		return "highlight"
	}
	return "unknown"
}

// mark returns the toggle mark behind a, if it is a mark button.
func (a Action) mark() (editor.MarkType, bool) {
	switch a {
	case ActionBold:
		return editor.MarkBold, true
	case ActionItalic:
		return editor.MarkItalic, true
	case ActionUnderline:
		return editor.MarkUnderline, true
	case ActionStrike:
		return editor.MarkStrike, true
	case ActionCode:
		return editor.MarkCode, true
	}
	return "", false
}

func (a Action) popover() Popover {
	switch a {
	case ActionLink:
		return PopoverLink
	case ActionColor:
		return PopoverColor
	case ActionHighlight:
		return PopoverHighlight
	}
	return PopoverNone
}

// HiddenMsg is emitted when the menu goes from shown to hidden.
type HiddenMsg struct{}

// ColorUsedMsg is emitted after a color or highlight is applied so the host
// can persist the recent colors list.
type ColorUsedMsg struct {
	Hex    string
	Recent []string
}

// Config holds the menu options read from the config file.
type Config struct {
	// HiddenNodeTypes suppress the menu when the selection is inside them.
	HiddenNodeTypes []editor.NodeType
	Placement       overlay.Placement
	// Offset is the number of rows between the selection and the menu.
	Offset       int
	RecentColors []string
	// SkipCache disables memoisation of the derived formatting state.
	SkipCache bool
}

// DefaultConfig matches the stock bubble menu: above the selection, one row
// gap, hidden on structural blocks.
func DefaultConfig() Config {
	return Config{
		HiddenNodeTypes: editor.StructuralNodeTypes(),
		Placement:       overlay.PlaceAbove,
		Offset:          1,
	}
}

var instances atomic.Int64

// Model is the bubble menu.
type Model struct {
	ed       editor.Editor
	cfg      Config
	popovers Popovers
	tracker  overlay.Tracker
	state    FormattingState
	cache    *stateCache

	focused bool
	cursor  int

	anchor        overlay.Rect
	width, height int

	colors     colorpicker.Model
	highlights colorpicker.Model
	link       linkeditor.Model
	recent     []string

	zonePrefix string
}

// New creates a hidden menu with no editor attached.
func New(cfg Config) Model {
	recent := slices.Clone(cfg.RecentColors)
	return Model{
		cfg:        cfg,
		cache:      newStateCache(cfg.SkipCache),
		colors:     colorpicker.New(colorpicker.TextColor, recent),
		highlights: colorpicker.New(colorpicker.Highlight, recent),
		link:       linkeditor.New(),
		recent:     recent,
		zonePrefix: fmt.Sprintf("toolbar-%d-", instances.Add(1)),
	}
}

// WithEditor attaches the editor handle. The handle is shared with the host;
// the menu never closes it.
func (m Model) WithEditor(ed editor.Editor) Model {
	m.ed = ed
	m.cache.reset()
	return m
}

// Editor returns the attached handle.
func (m Model) Editor() editor.Editor {
	return m.ed
}

// SetSize records the viewport size used for placement.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	return m
}

// SetAnchor sets the screen rectangle of the selection.
func (m Model) SetAnchor(r overlay.Rect) Model {
	m.anchor = r
	return m
}

// Sync re-derives formatting state and visibility from the editor. Hosts call
// it after every editor transaction.
func (m Model) Sync() (Model, tea.Cmd) {
	m.state = m.cache.get(m.ed)

	var tr overlay.Transition
	m.tracker, tr = m.tracker.Update(ShouldShow(m.ed, m.cfg.HiddenNodeTypes))
	switch tr {
	case overlay.Shown:
		log.Debug(log.CatToolbar, "shown", "revision", m.revision())
	case overlay.Hidden:
		return m.onHide()
	}
	return m, nil
}

// onHide resets the menu when it disappears.
func (m Model) onHide() (Model, tea.Cmd) {
	log.Debug(log.CatToolbar, "hidden", "popover", m.popovers.Active())
	m.popovers = m.popovers.Close()
	m.focused = false
	m.cursor = 0
	m.colors = m.colors.Reset()
	m.highlights = m.highlights.Reset()
	m.link = m.link.Reset()
	return m, func() tea.Msg { return HiddenMsg{} }
}

func (m Model) revision() uint64 {
	if m.ed == nil {
		return 0
	}
	return m.ed.Revision()
}

// Visible reports whether the menu is shown.
func (m Model) Visible() bool {
	return m.tracker.Visible()
}

// Focused reports whether keyboard focus is in the menu.
func (m Model) Focused() bool {
	return m.focused
}

// FocusedAction returns the button under the focus ring.
func (m Model) FocusedAction() Action {
	return Actions[m.cursor]
}

// State returns the last derived formatting state.
func (m Model) State() FormattingState {
	return m.state
}

// Popovers returns the popover state.
func (m Model) Popovers() Popovers {
	return m.popovers
}

// SetOpen opens or closes popover p. Opening prepares the child with the
// current selection's value.
func (m Model) SetOpen(p Popover, open bool) (Model, tea.Cmd) {
	m.popovers = m.popovers.SetOpen(p, open)
	if !open || p == PopoverNone {
		return m, nil
	}
	log.Debug(log.CatToolbar, "popover opened", "popover", p)
	switch p {
	case PopoverColor:
		m.colors = m.colors.SetSelected(m.state.Color)
	case PopoverHighlight:
		m.highlights = m.highlights.SetSelected(m.state.Highlight)
	case PopoverLink:
		var cmd tea.Cmd
		m.link, cmd = m.link.Open(m.state.Link)
		return m, cmd
	}
	return m, nil
}

// Toggle flips popover p.
func (m Model) Toggle(p Popover) (Model, tea.Cmd) {
	return m.SetOpen(p, !m.popovers.IsOpen(p))
}

// WantsKeys reports whether every key should be routed to the menu.
func (m Model) WantsKeys() bool {
	return m.Visible() && (m.focused || m.popovers.Active() != PopoverNone)
}

// Update handles popover results and mouse clicks. Keys go through HandleKey.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m, cmd, _ := m.HandleKey(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case colorpicker.SelectMsg:
		if msg.Kind == colorpicker.Highlight {
			m.run("setHighlight", func(c editor.Chain) editor.Chain { return c.SetHighlight(msg.Hex) })
		} else {
			m.run("setColor", func(c editor.Chain) editor.Chain { return c.SetColor(msg.Hex) })
		}
		m.popovers = m.popovers.Close()
		m.pushRecent(msg.Hex)
		recent := slices.Clone(m.recent)
		m, cmd := m.Sync()
		return m, tea.Batch(cmd, func() tea.Msg { return ColorUsedMsg{Hex: msg.Hex, Recent: recent} })

	case colorpicker.ClearMsg:
		if msg.Kind == colorpicker.Highlight {
			m.run("unsetHighlight", editor.Chain.UnsetHighlight)
		} else {
			m.run("unsetColor", editor.Chain.UnsetColor)
		}
		m.popovers = m.popovers.Close()
		return m.Sync()

	case colorpicker.CancelMsg:
		m.popovers = m.popovers.Close()
		return m, nil

	case linkeditor.SubmitMsg:
		m.run("setLink", func(c editor.Chain) editor.Chain {
			return c.ExtendMarkRange(editor.MarkLink).SetLink(msg.Href)
		})
		m.popovers = m.popovers.Close()
		m.link = m.link.Reset()
		return m.Sync()

	case linkeditor.RemoveMsg:
		m.run("unsetLink", func(c editor.Chain) editor.Chain {
			return c.ExtendMarkRange(editor.MarkLink).UnsetLink()
		})
		m.popovers = m.popovers.Close()
		m.link = m.link.Reset()
		return m.Sync()

	case linkeditor.CancelMsg:
		m.popovers = m.popovers.Close()
		m.link = m.link.Reset()
		return m, nil
	}

	// Cursor blink and other child messages.
	if m.popovers.IsOpen(PopoverLink) {
		var cmd tea.Cmd
		m.link, cmd = m.link.Update(msg)
		return m, cmd
	}
	return m, nil
}

// HandleKey processes a key and reports whether the menu consumed it.
func (m Model) HandleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if !m.Visible() || m.ed == nil {
		return m, nil, false
	}

	if p := m.popovers.Active(); p != PopoverNone {
		var cmd tea.Cmd
		switch p {
		case PopoverColor:
			m.colors, cmd = m.colors.Update(msg)
		case PopoverHighlight:
			m.highlights, cmd = m.highlights.Update(msg)
		case PopoverLink:
			m.link, cmd = m.link.Update(msg)
		}
		return m, cmd, true
	}

	if m.focused {
		switch {
		case key.Matches(msg, keys.Toolbar.Leave):
			m.focused = false
			return m, nil, true
		case key.Matches(msg, keys.Toolbar.Prev):
			m.cursor = (m.cursor + len(Actions) - 1) % len(Actions)
			return m, nil, true
		case key.Matches(msg, keys.Toolbar.Next):
			m.cursor = (m.cursor + 1) % len(Actions)
			return m, nil, true
		case key.Matches(msg, keys.Toolbar.Activate):
			m, cmd := m.Activate(Actions[m.cursor])
			return m, cmd, true
		}
	}

	if key.Matches(msg, keys.Toolbar.Focus) {
		m.focused = !m.focused
		return m, nil, true
	}

	if a, ok := shortcut(msg); ok {
		m, cmd := m.Activate(a)
		return m, cmd, true
	}

	// Anything else goes back to the document while focus sits in the menu.
	return m, nil, m.focused
}

func shortcut(msg tea.KeyMsg) (Action, bool) {
	k := keys.Toolbar
	bindings := map[Action]key.Binding{
		ActionLink:      k.Link,
		ActionBold:      k.Bold,
		ActionItalic:    k.Italic,
		ActionUnderline: k.Underline,
		ActionStrike:    k.Strike,
		ActionCode:      k.Code,
		ActionColor:     k.Color,
		ActionHighlight: k.Highlight,
	}
	for _, a := range Actions {
		if key.Matches(msg, bindings[a]) {
			return a, true
		}
	}
	return 0, false
}

// Activate presses button a: a mark button toggles its mark, a popover button
// toggles its popover. Nothing happens without an editor.
func (m Model) Activate(a Action) (Model, tea.Cmd) {
	if m.ed == nil {
		return m, nil
	}
	m.cursor = slices.Index(Actions, a)
	if mark, ok := a.mark(); ok {
		ToggleMark(m.ed, mark)
		return m.Sync()
	}
	return m.Toggle(a.popover())
}

// ToggleMark runs a focus plus toggle chain for mark on ed. It is a no-op on
// a nil handle.
func ToggleMark(ed editor.Editor, mark editor.MarkType) bool {
	if ed == nil {
		return false
	}
	ok := ed.Chain().Focus().ToggleMark(mark).Run()
	if !ok {
		log.Debug(log.CatToolbar, "chain not applied", "command", "toggle:"+string(mark))
	}
	return ok
}

// run builds a chain on a focused editor and runs it once.
func (m Model) run(name string, build func(editor.Chain) editor.Chain) {
	if m.ed == nil {
		return
	}
	if !build(m.ed.Chain().Focus()).Run() {
		log.Debug(log.CatToolbar, "chain not applied", "command", name)
	}
}

func (m *Model) pushRecent(hex string) {
	hex = strings.ToLower(hex)
	rest := slices.DeleteFunc(slices.Clone(m.recent), func(s string) bool { return strings.EqualFold(s, hex) })
	m.recent = append([]string{hex}, rest...)
	if len(m.recent) > MaxRecentColors {
		m.recent = m.recent[:MaxRecentColors]
	}
	m.colors = m.colors.SetRecent(m.recent)
	m.highlights = m.highlights.SetRecent(m.recent)
}

// Recent returns the recent colors, newest first.
func (m Model) Recent() []string {
	return slices.Clone(m.recent)
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if !m.Visible() || m.ed == nil {
		return m, nil
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for _, a := range Actions {
		if zone.Get(m.zoneID(a)).InBounds(msg) {
			return m.Activate(a)
		}
	}

	var cmd tea.Cmd
	switch m.popovers.Active() {
	case PopoverColor:
		m.colors, cmd = m.colors.Update(msg)
	case PopoverHighlight:
		m.highlights, cmd = m.highlights.Update(msg)
	case PopoverLink:
		m.link, cmd = m.link.Update(msg)
	}
	return m, cmd
}

func (m Model) zoneID(a Action) string {
	return m.zonePrefix + a.String()
}

// View renders the button row and the open popover beneath it, or "" when
// the menu is hidden.
func (m Model) View() string {
	if m.ed == nil || !m.Visible() {
		return ""
	}

	var row strings.Builder
	for i, a := range Actions {
		if a == ActionBold || a == ActionColor {
			row.WriteString(styles.SeparatorStyle.Render("│"))
		}
		row.WriteString(zone.Mark(m.zoneID(a), m.renderButton(i, a)))
	}
	bar := styles.ToolbarStyle.Render(row.String())

	var popover string
	switch m.popovers.Active() {
	case PopoverColor:
		popover = m.colors.View()
	case PopoverHighlight:
		popover = m.highlights.View()
	case PopoverLink:
		popover = m.link.View()
	}
	if popover == "" {
		return bar
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, popover)
}

func (m Model) renderButton(i int, a Action) string {
	label := m.label(a)

	style := styles.ButtonStyle
	switch {
	case !m.state.Editable:
		style = styles.ButtonDisabledStyle
	case m.focused && i == m.cursor:
		style = styles.ButtonFocusedStyle
	case m.isPressed(a):
		style = styles.ButtonActiveStyle
	}
	return style.Render(label)
}

func (m Model) isPressed(a Action) bool {
	if mark, ok := a.mark(); ok {
		return m.state.Active(mark)
	}
	return m.popovers.IsOpen(a.popover())
}

func (m Model) label(a Action) string {
	switch a {
	case ActionLink:
		if m.state.Link != "" {
			return "Link*"
		}
		return "Link"
	case ActionBold:
		return lipgloss.NewStyle().Bold(true).Render("B")
	case ActionItalic:
		return lipgloss.NewStyle().Italic(true).Render("I")
	case ActionUnderline:
		return lipgloss.NewStyle().Underline(true).Render("U")
	case ActionStrike:
		return lipgloss.NewStyle().Strikethrough(true).Render("S")
	case ActionCode:
		return "<>"
	case ActionColor:
		if m.state.Color != "" {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(m.state.Color)).Render("A") + "▾"
		}
		return "A▾"
	case ActionHighlight:
		if m.state.Highlight != "" {
			return lipgloss.NewStyle().Background(lipgloss.Color(m.state.Highlight)).Render("H") + "▾"
		}
		return "H▾"
	}
	return a.String()
}

// Overlay places the menu over bg next to the selection anchor.
func (m Model) Overlay(bg string) string {
	fg := m.View()
	if fg == "" {
		return bg
	}
	return overlay.Place(m.overlayConfig(), fg, bg)
}

// Contains reports whether screen cell (x, y) falls on the menu or its open
// popover, so hosts can keep such clicks away from the document.
func (m Model) Contains(x, y int) bool {
	fg := m.View()
	if fg == "" {
		return false
	}
	w, h := lipgloss.Width(fg), lipgloss.Height(fg)
	left, top := overlay.Resolve(m.overlayConfig(), w, h)
	return x >= left && x < left+w && y >= top && y < top+h
}

func (m Model) overlayConfig() overlay.Config {
	return overlay.Config{
		Width:     m.width,
		Height:    m.height,
		Position:  overlay.Anchored,
		Anchor:    m.anchor,
		Placement: m.cfg.Placement,
		Offset:    m.cfg.Offset,
	}
}

// ShortHelp implements help.KeyMap for the status bar.
func (m Model) ShortHelp() []key.Binding {
	if m.focused {
		return keys.Toolbar.ShortHelp()
	}
	return []key.Binding{keys.Toolbar.Bold, keys.Toolbar.Italic, keys.Toolbar.Link, keys.Toolbar.Focus}
}

// FullHelp implements help.KeyMap.
func (m Model) FullHelp() [][]key.Binding {
	return keys.Toolbar.FullHelp()
}
