package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkwell/internal/keys"
)

func TestHelp_SetSize(t *testing.T) {
	m := New().SetSize(120, 40)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)

	m2 := m.SetSize(80, 24)
	assert.Equal(t, 80, m2.width)
	assert.Equal(t, 120, m.width, "expected original model width unchanged")
}

func TestHelp_View_ContainsSections(t *testing.T) {
	view := New().SetSize(120, 40).View()

	for _, title := range []string{"Keybindings", "Movement", "Selection", "Formatting", "Toolbar", "General"} {
		assert.Contains(t, view, title)
	}
	assert.Contains(t, view, "Press f1 or Esc to close")
}

func TestHelp_View_ContainsBindings(t *testing.T) {
	view := New().SetSize(120, 40).View()

	assert.Contains(t, view, keys.Editor.Save.Help().Key)
	assert.Contains(t, view, keys.Toolbar.Bold.Help().Key)
	assert.Contains(t, view, "bold")
	assert.Contains(t, view, "select all")
}

func TestHelp_ReflectsOverrides(t *testing.T) {
	saved := keys.Toolbar
	t.Cleanup(func() { keys.Toolbar = saved })

	require.NoError(t, keys.Toolbar.ApplyOverrides(map[string]string{"italic": "ctrl+e"}))
	assert.Contains(t, New().SetSize(120, 40).View(), "ctrl+e")
}

func TestHelp_View_FillsScreen(t *testing.T) {
	view := New().SetSize(120, 40).View()
	assert.Equal(t, 40, lipgloss.Height(view))
	assert.Equal(t, 120, lipgloss.Width(view))
}

func TestHelp_Overlay_KeepsBackground(t *testing.T) {
	m := New().SetSize(120, 40)
	bg := strings.Repeat(strings.Repeat(".", 120)+"\n", 39) + strings.Repeat(".", 120)

	out := m.Overlay(bg)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 40)
	assert.Equal(t, strings.Repeat(".", 120), lines[0], "rows above the box are untouched")
	assert.Contains(t, out, "Keybindings")
}
