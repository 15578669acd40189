package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/keys"
	"github.com/zjrosen/inkwell/internal/richtext"
)

// moves maps plain and extending movement bindings to engine directions.
var moves = []struct {
	plain, extend *key.Binding
	dir           richtext.Direction
}{
	{&keys.Editor.Left, &keys.Editor.ExtendLeft, richtext.Left},
	{&keys.Editor.Right, &keys.Editor.ExtendRight, richtext.Right},
	{&keys.Editor.Up, &keys.Editor.ExtendUp, richtext.Up},
	{&keys.Editor.Down, &keys.Editor.ExtendDown, richtext.Down},
	{&keys.Editor.LineStart, &keys.Editor.ExtendLineStart, richtext.LineStart},
	{&keys.Editor.LineEnd, &keys.Editor.ExtendLineEnd, richtext.LineEnd},
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.debugMode && !m.logOverlay.Visible() && key.Matches(msg, keys.Editor.DebugLog) {
		m.logOverlay = m.logOverlay.Toggle()
		return m, nil
	}
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, keys.Editor.Quit) {
		return m.quit()
	}

	if m.showHelp {
		if key.Matches(msg, keys.Editor.Help) || msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}
	if key.Matches(msg, keys.Editor.Help) {
		m.showHelp = true
		return m, nil
	}

	var (
		cmd     tea.Cmd
		handled bool
	)
	m.toolbar, cmd, handled = m.toolbar.HandleKey(msg)
	if handled {
		if m.toolbar.Focused() {
			m.engine.Blur()
		}
		m, refreshCmd := m.refresh()
		return m, tea.Batch(cmd, refreshCmd)
	}

	switch {
	case key.Matches(msg, keys.Editor.Save):
		return m.save(true)
	case key.Matches(msg, keys.Editor.Undo):
		m.engine.Undo()
	case key.Matches(msg, keys.Editor.Redo):
		m.engine.Redo()
	case key.Matches(msg, keys.Editor.SelectAll):
		m.engine.SelectAll()
	case key.Matches(msg, keys.Editor.Newline):
		m.engine.InsertNewline()
	case key.Matches(msg, keys.Editor.Backspace):
		m.engine.Backspace()
	case key.Matches(msg, keys.Editor.Delete):
		m.engine.DeleteForward()
	case msg.Type == tea.KeyRunes && !msg.Alt:
		m.engine.InsertText(string(msg.Runes))
	case msg.Type == tea.KeySpace:
		m.engine.InsertText(" ")
	case msg.Type == tea.KeyEsc:
		sel := m.engine.Selection()
		if !sel.Empty() && !sel.IsNode() {
			m.engine.SetSelection(editor.Caret(sel.Head))
		}
	default:
		if !m.move(msg) {
			return m, nil
		}
	}
	return m.refresh()
}

// move applies a movement binding and reports whether msg was one.
func (m Model) move(msg tea.KeyMsg) bool {
	for _, mv := range moves {
		switch {
		case key.Matches(msg, *mv.extend):
			m.engine.Move(mv.dir, true)
			return true
		case key.Matches(msg, *mv.plain):
			m.engine.Move(mv.dir, false)
			return true
		}
	}
	return false
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.cfg.UI.Mouse || m.logOverlay.Visible() || m.showHelp {
		return m, nil
	}

	if m.toolbar.Contains(msg.X, msg.Y) {
		var cmd tea.Cmd
		m.toolbar, cmd = m.toolbar.Update(msg)
		m, refreshCmd := m.refresh()
		return m, tea.Batch(cmd, refreshCmd)
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.view = m.view.ScrollUp(1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.view = m.view.ScrollDown(1)
		return m, nil
	}

	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionMotion {
		return m, nil
	}

	pos, ok := m.view.HitTest(msg.X, msg.Y-headerRows)
	switch msg.Action {
	case tea.MouseActionPress:
		if !ok {
			return m, nil
		}
		m.dragging = true
		m.dragAnchor = pos
		m.engine.SetSelection(editor.Caret(pos))
	case tea.MouseActionMotion:
		if !m.dragging || !ok {
			return m, nil
		}
		m.engine.SetSelection(editor.Range(m.dragAnchor, pos))
	case tea.MouseActionRelease:
		m.dragging = false
		return m, nil
	}
	return m.refresh()
}
