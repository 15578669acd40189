package markdown

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

func TestNew(t *testing.T) {
	r, err := New("", 80)
	require.NoError(t, err)
	require.NotNil(t, r)
	require.Equal(t, 80, r.Width())
}

func TestNew_Styles(t *testing.T) {
	for _, style := range []string{"dark", "light", "notty"} {
		_, err := New(style, 60)
		require.NoError(t, err, style)
	}

	_, err := New("sepia", 60)
	require.ErrorContains(t, err, "unknown markdown style")
}

func TestRender_HeadingAndMarks(t *testing.T) {
	r, err := New("notty", 80)
	require.NoError(t, err)

	out, err := r.Render("# Notes\n\nSome **bold** and *italic* text")
	require.NoError(t, err)

	plain := stripANSI(out)
	require.Contains(t, plain, "Notes")
	require.Contains(t, plain, "bold")
	require.Contains(t, plain, "italic")
	// notty keeps emphasis markers as literal text.
	require.Contains(t, plain, "**bold**")
}

func TestRender_Link(t *testing.T) {
	r, err := New("dark", 80)
	require.NoError(t, err)

	out, err := r.Render("see [docs](https://example.com)")
	require.NoError(t, err)
	require.Contains(t, stripANSI(out), "docs")
}

func TestWrap(t *testing.T) {
	s := "one two three four five six"

	require.Equal(t, s, Wrap(s, 0))

	wrapped := Wrap(s, 10)
	for _, line := range strings.Split(wrapped, "\n") {
		require.LessOrEqual(t, len(strings.TrimRight(line, " ")), 10, line)
	}
	require.Equal(t, s, strings.Join(strings.Fields(wrapped), " "))
}

func TestValidStyle(t *testing.T) {
	require.True(t, ValidStyle(""))
	require.True(t, ValidStyle("light"))
	require.False(t, ValidStyle("auto"))
}
