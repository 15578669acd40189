package editorview

import (
	"fmt"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/richtext"
	"github.com/zjrosen/inkwell/internal/ui/overlay"
)

func doc(blocks ...richtext.Block) richtext.Document {
	return richtext.Document{Title: "test", Blocks: blocks}
}

func para(s string) richtext.Block {
	return richtext.Paragraph(richtext.Text(s))
}

func at(block, col int) editor.Pos {
	return editor.Pos{Block: block, Col: col}
}

func TestRender_PlainText(t *testing.T) {
	m := New(40, 5).Render(doc(para("hello world"), para("second")), editor.Caret(at(0, 0)), false)

	view := ansi.Strip(m.View())
	require.Contains(t, view, "hello world")
	require.Contains(t, view, "second")
	require.Len(t, m.lines, 2)
}

func TestRender_MarkedSpansKeepText(t *testing.T) {
	d := doc(richtext.Paragraph(
		richtext.Span{Text: "bold", Marks: richtext.Marks{Bold: true}},
		richtext.Text(" and "),
		richtext.Span{Text: "link", Marks: richtext.Marks{Link: "https://go.dev", Color: "#ff0000"}},
	))
	m := New(40, 3).Render(d, editor.Range(at(0, 0), at(0, 4)), true)
	require.Contains(t, ansi.Strip(m.View()), "bold and link")
}

func TestRender_StructuralBlock(t *testing.T) {
	d := doc(para("intro"), richtext.Reference(editor.NodePage, "Roadmap"))
	m := New(40, 3).Render(d, editor.Caret(at(0, 0)), false)
	require.Contains(t, ansi.Strip(m.View()), "page: Roadmap")
}

func TestAnchor_SingleRow(t *testing.T) {
	m := New(40, 5).Render(doc(para("hello world")), editor.Range(at(0, 6), at(0, 11)), true)

	rect, ok := m.Anchor()
	require.True(t, ok)
	require.Equal(t, overlay.Rect{Left: 6, Top: 0, Right: 11, Bottom: 0}, rect)
}

func TestAnchor_Backwards(t *testing.T) {
	m := New(40, 5).Render(doc(para("hello world")), editor.Range(at(0, 5), at(0, 0)), true)

	rect, ok := m.Anchor()
	require.True(t, ok)
	require.Equal(t, overlay.Rect{Left: 0, Top: 0, Right: 5, Bottom: 0}, rect)
}

func TestAnchor_MultiRowSpansWidth(t *testing.T) {
	m := New(5, 5).Render(doc(para("hello world")), editor.Range(at(0, 2), at(0, 8)), true)
	require.Len(t, m.lines, 3, "hello| worl|d")

	rect, ok := m.Anchor()
	require.True(t, ok)
	require.Equal(t, overlay.Rect{Left: 0, Top: 0, Right: 5, Bottom: 1}, rect)
}

func TestAnchor_NodeSelection(t *testing.T) {
	d := doc(para("intro"), richtext.Reference(editor.NodeDatabase, "Tasks"))
	m := New(30, 5).Render(d, editor.Node(1), true)

	rect, ok := m.Anchor()
	require.True(t, ok)
	require.Equal(t, overlay.Rect{Left: 0, Top: 1, Right: 30, Bottom: 1}, rect)
}

func TestAnchor_NoneForCaret(t *testing.T) {
	m := New(30, 5).Render(doc(para("intro")), editor.Caret(at(0, 2)), true)
	_, ok := m.Anchor()
	require.False(t, ok)
}

func TestHitTest(t *testing.T) {
	m := New(20, 5).Render(doc(para("hello world"), para("")), editor.Caret(at(0, 0)), false)

	pos, ok := m.HitTest(3, 0)
	require.True(t, ok)
	require.Equal(t, at(0, 3), pos)

	pos, ok = m.HitTest(15, 0)
	require.True(t, ok)
	require.Equal(t, at(0, 11), pos, "past the end lands on the end")

	pos, ok = m.HitTest(4, 1)
	require.True(t, ok)
	require.Equal(t, at(1, 0), pos)

	_, ok = m.HitTest(0, 4)
	require.False(t, ok)
}

func TestHitTest_WrappedAndWide(t *testing.T) {
	m := New(5, 5).Render(doc(para("hello world")), editor.Caret(at(0, 0)), false)
	pos, ok := m.HitTest(1, 1)
	require.True(t, ok)
	require.Equal(t, at(0, 6), pos)

	m = New(20, 5).Render(doc(para("日本")), editor.Caret(at(0, 0)), false)
	pos, _ = m.HitTest(3, 0)
	require.Equal(t, at(0, 1), pos, "second cell of a wide rune")
	pos, _ = m.HitTest(4, 0)
	require.Equal(t, at(0, 2), pos)
}

func TestRender_ScrollsToHead(t *testing.T) {
	var blocks []richtext.Block
	for i := range 20 {
		blocks = append(blocks, para(fmt.Sprintf("line %d", i)))
	}
	m := New(20, 5).Render(doc(blocks...), editor.Range(at(15, 0), at(15, 4)), true)

	require.Equal(t, 11, m.YOffset())
	rect, ok := m.Anchor()
	require.True(t, ok)
	require.Equal(t, 4, rect.Top)
	require.Contains(t, ansi.Strip(m.View()), "line 15")

	m = m.Render(doc(blocks...), editor.Caret(at(2, 0)), true)
	require.Equal(t, 2, m.YOffset())
}
