package linkeditor

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestNormalizeHref(t *testing.T) {
	cases := map[string]string{
		"example.com":           "https://example.com",
		"  example.com/a?b=1  ": "https://example.com/a?b=1",
		"http://example.com":    "http://example.com",
		"https://example.com":   "https://example.com",
		"mailto:someone@x.test": "mailto:someone@x.test",
		"localhost:8080/health": "https://localhost:8080/health",
		"":                      "",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeHref(in), in)
	}
}

func TestSubmit_PrependsScheme(t *testing.T) {
	m, _ := New().Open("")
	m = typeText(m, "go.dev")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, SubmitMsg{Href: "https://go.dev"}, cmd())
}

func TestSubmit_EmptyRemoves(t *testing.T) {
	m, _ := New().Open("https://old.example")
	require.Equal(t, "https://old.example", m.Value())

	for range len("https://old.example") {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, RemoveMsg{}, cmd())
}

func TestSubmit_RemoveKeyword(t *testing.T) {
	m, _ := New().Open("")
	m = typeText(m, "remove")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, RemoveMsg{}, cmd())
}

func TestKeys_CancelAndRemove(t *testing.T) {
	m, _ := New().Open("https://a.example")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, CancelMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	require.Equal(t, RemoveMsg{}, cmd())
}

func TestTabFocus_RemoveButton(t *testing.T) {
	m, _ := New().Open("https://a.example")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusApply, m.focus)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusRemove, m.focus)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, RemoveMsg{}, cmd())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, focusApply, m.focus)
}

func TestTyping_IgnoredOffInput(t *testing.T) {
	m, _ := New().Open("")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "abc")
	require.Empty(t, m.Value())
}

func TestView(t *testing.T) {
	m, _ := New().Open("")
	require.Contains(t, m.View(), "Link")
	require.Contains(t, m.View(), "Apply")
	require.NotContains(t, m.View(), "Remove", "nothing to remove on a new link")

	m, _ = m.Open("https://a.example")
	require.Contains(t, m.View(), "Remove")

	m = m.Reset()
	require.Empty(t, m.Value())
}
