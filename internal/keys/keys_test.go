package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestDefaultToolbarKeys_Shortcuts(t *testing.T) {
	k := DefaultToolbarKeys()
	require.Equal(t, []string{"alt+b"}, k.Bold.Keys())
	require.Equal(t, []string{"alt+i"}, k.Italic.Keys())
	require.Equal(t, []string{"alt+u"}, k.Underline.Keys())
	require.Equal(t, []string{"alt+s"}, k.Strike.Keys())
	require.Equal(t, []string{"alt+c"}, k.Code.Keys())
	require.Equal(t, []string{"alt+l"}, k.Link.Keys())
	require.Equal(t, []string{"alt+k"}, k.Color.Keys())
	require.Equal(t, []string{"alt+h"}, k.Highlight.Keys())
	require.Equal(t, []string{"ctrl+t"}, k.Focus.Keys())
}

func TestToolbarKeys_MatchAltRune(t *testing.T) {
	k := DefaultToolbarKeys()
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}, Alt: true}
	require.True(t, key.Matches(msg, k.Bold))
	require.False(t, key.Matches(msg, k.Italic))
}

func TestApplyOverrides(t *testing.T) {
	k := DefaultToolbarKeys()
	require.NoError(t, k.ApplyOverrides(map[string]string{"bold": "ctrl+b"}))
	require.Equal(t, []string{"ctrl+b"}, k.Bold.Keys())
	require.Equal(t, "ctrl+b", k.Bold.Help().Key)
	require.Equal(t, "bold", k.Bold.Help().Desc)

	err := k.ApplyOverrides(map[string]string{"sparkle": "x"})
	require.ErrorContains(t, err, `unknown toolbar action "sparkle"`)

	err = k.ApplyOverrides(map[string]string{"code": " "})
	require.ErrorContains(t, err, "empty key")
}

func TestToolbarActions_Sorted(t *testing.T) {
	require.Equal(t, []string{
		"bold", "code", "color", "focus", "highlight", "italic", "link", "strike", "underline",
	}, ToolbarActions())
}

func TestEditor_QuitBindings(t *testing.T) {
	require.Equal(t, []string{"ctrl+c", "ctrl+q"}, Editor.Quit.Keys())
	require.NotEmpty(t, Editor.FullHelp())
	require.Len(t, Toolbar.ShortHelp(), 4)
}
