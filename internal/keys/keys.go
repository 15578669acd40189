// Package keys contains keybinding definitions.
package keys

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// EditorKeys are active while the document has focus.
type EditorKeys struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	LineStart key.Binding
	LineEnd   key.Binding

	ExtendLeft      key.Binding
	ExtendRight     key.Binding
	ExtendUp        key.Binding
	ExtendDown      key.Binding
	ExtendLineStart key.Binding
	ExtendLineEnd   key.Binding

	Newline   key.Binding
	Backspace key.Binding
	Delete    key.Binding
	SelectAll key.Binding
	Undo      key.Binding
	Redo      key.Binding
	Save      key.Binding
	Help      key.Binding
	DebugLog  key.Binding
	Quit      key.Binding
}

// ToolbarKeys drive the bubble menu while it is visible.
type ToolbarKeys struct {
	Bold      key.Binding
	Italic    key.Binding
	Underline key.Binding
	Strike    key.Binding
	Code      key.Binding
	Link      key.Binding
	Color     key.Binding
	Highlight key.Binding

	Focus    key.Binding
	Prev     key.Binding
	Next     key.Binding
	Activate key.Binding
	Leave    key.Binding
}

// PopoverKeys are shared by the color picker and link editor.
type PopoverKeys struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Clear   key.Binding
	Close   key.Binding
}

// Editor is the active editor keymap.
var Editor = EditorKeys{
	Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
	Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
	Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	LineStart: key.NewBinding(key.WithKeys("home", "ctrl+home"), key.WithHelp("home", "line start")),
	LineEnd:   key.NewBinding(key.WithKeys("end", "ctrl+end"), key.WithHelp("end", "line end")),

	ExtendLeft:      key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
	ExtendRight:     key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
	ExtendUp:        key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "select up")),
	ExtendDown:      key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "select down")),
	ExtendLineStart: key.NewBinding(key.WithKeys("shift+home"), key.WithHelp("shift+home", "select to start")),
	ExtendLineEnd:   key.NewBinding(key.WithKeys("shift+end"), key.WithHelp("shift+end", "select to end")),

	Newline:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "new line")),
	Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete back")),
	Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete")),
	SelectAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
	Undo:      key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
	Redo:      key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),
	Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Help:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
	DebugLog:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "debug log")),
	Quit:      key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+q", "quit")),
}

// Toolbar is the active bubble menu keymap.
var Toolbar = DefaultToolbarKeys()

// DefaultToolbarKeys returns the stock bubble menu bindings.
func DefaultToolbarKeys() ToolbarKeys {
	return ToolbarKeys{
		Bold:      key.NewBinding(key.WithKeys("alt+b"), key.WithHelp("alt+b", "bold")),
		Italic:    key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "italic")),
		Underline: key.NewBinding(key.WithKeys("alt+u"), key.WithHelp("alt+u", "underline")),
		Strike:    key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "strike")),
		Code:      key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "code")),
		Link:      key.NewBinding(key.WithKeys("alt+l"), key.WithHelp("alt+l", "link")),
		Color:     key.NewBinding(key.WithKeys("alt+k"), key.WithHelp("alt+k", "color")),
		Highlight: key.NewBinding(key.WithKeys("alt+h"), key.WithHelp("alt+h", "highlight")),

		Focus:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "focus toolbar")),
		Prev:     key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←", "previous")),
		Next:     key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("→", "next")),
		Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "apply")),
		Leave:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to text")),
	}
}

// Popover is the shared popover keymap.
var Popover = PopoverKeys{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "left")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "right")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	Clear:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove")),
	Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
}

// actions maps config names to toolbar bindings.
func (k *ToolbarKeys) actions() map[string]*key.Binding {
	return map[string]*key.Binding{
		"bold":      &k.Bold,
		"italic":    &k.Italic,
		"underline": &k.Underline,
		"strike":    &k.Strike,
		"code":      &k.Code,
		"link":      &k.Link,
		"color":     &k.Color,
		"highlight": &k.Highlight,
		"focus":     &k.Focus,
	}
}

// ToolbarActions returns the action names accepted by ApplyOverrides.
func ToolbarActions() []string {
	var k ToolbarKeys
	names := make([]string, 0, 9)
	for name := range k.actions() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyOverrides rebinds toolbar actions from config, e.g. {"bold": "ctrl+b"}.
func (k *ToolbarKeys) ApplyOverrides(overrides map[string]string) error {
	actions := k.actions()
	for name, keystroke := range overrides {
		b, ok := actions[name]
		if !ok {
			return fmt.Errorf("unknown toolbar action %q (valid: %s)", name, strings.Join(ToolbarActions(), ", "))
		}
		keystroke = strings.TrimSpace(keystroke)
		if keystroke == "" {
			return fmt.Errorf("toolbar action %q: empty key", name)
		}
		b.SetKeys(keystroke)
		b.SetHelp(keystroke, b.Help().Desc)
	}
	return nil
}

// ShortHelp implements help.KeyMap.
func (k EditorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Undo, Toolbar.Focus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k EditorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.LineStart, k.LineEnd},
		{k.ExtendLeft, k.ExtendRight, k.SelectAll},
		{k.Undo, k.Redo, k.Save, k.Help, k.DebugLog, k.Quit},
	}
}

// ShortHelp implements help.KeyMap.
func (k ToolbarKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Activate, k.Leave}
}

// FullHelp implements help.KeyMap.
func (k ToolbarKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Bold, k.Italic, k.Underline, k.Strike, k.Code},
		{k.Link, k.Color, k.Highlight},
		{k.Focus, k.Prev, k.Next, k.Activate, k.Leave},
	}
}
