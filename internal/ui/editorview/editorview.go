// Package editorview lays out a rich-text document for the terminal: marks,
// selection, cursor and structural blocks. It also maps between document
// positions and screen cells so the bubble menu can anchor to the selection
// and mouse clicks can move the caret.
package editorview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/richtext"
	"github.com/zjrosen/inkwell/internal/ui/overlay"
	"github.com/zjrosen/inkwell/internal/ui/styles"
)

// cell is one rune on screen.
type cell struct {
	col int
	x   int
	w   int
}

// line is one visual row of a block.
type line struct {
	block int
	cells []cell
	// endCol is the column a click past the last cell lands on.
	endCol int
}

// Model renders a document into a scrollable viewport.
type Model struct {
	vp     viewport.Model
	lines  []line
	anchor overlay.Rect
	// hasAnchor is false when the selection is scrolled out of view.
	hasAnchor bool
}

// New creates an empty view.
func New(width, height int) Model {
	return Model{vp: viewport.New(width, height)}
}

// SetSize resizes the viewport.
func (m Model) SetSize(width, height int) Model {
	m.vp.Width = width
	m.vp.Height = height
	return m
}

// Width returns the viewport width.
func (m Model) Width() int {
	return m.vp.Width
}

// Height returns the viewport height.
func (m Model) Height() int {
	return m.vp.Height
}

type charStyle struct {
	marks    richtext.Marks
	selected bool
	cursor   bool
}

func (s charStyle) style() lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	m := s.marks
	if m.Bold {
		st = st.Bold(true)
	}
	if m.Italic {
		st = st.Italic(true)
	}
	if m.Underline {
		st = st.Underline(true)
	}
	if m.Strike {
		st = st.Strikethrough(true)
	}
	if m.Code {
		st = st.Foreground(styles.NodeBlockColor)
	}
	if m.Link != "" {
		st = st.Foreground(styles.TextLinkColor).Underline(true)
	}
	if m.Color != "" {
		st = st.Foreground(lipgloss.Color(m.Color))
	}
	if m.Highlight != "" {
		st = st.Background(lipgloss.Color(m.Highlight))
	}
	if s.selected {
		st = st.Background(styles.SelectionBgColor)
	}
	if s.cursor {
		st = st.Reverse(true)
	}
	return st
}

// Render lays out doc with sel and scrolls so the selection head is visible.
// The caret is drawn only when showCursor is set.
func (m Model) Render(doc richtext.Document, sel editor.Selection, showCursor bool) Model {
	width := max(m.vp.Width, 1)
	from, to := sel.From(), sel.To()

	var rows []string
	m.lines = nil
	headRow := 0
	anchorTop, anchorBottom := -1, -1
	var anchorLeft, anchorRight int

	for bi, b := range doc.Blocks {
		if b.Type.IsStructural() {
			if sel.IsNode() && sel.Anchor.Block == bi {
				headRow = len(rows)
				anchorTop, anchorBottom = len(rows), len(rows)
				anchorLeft, anchorRight = 0, width
			}
			rows = append(rows, renderReference(b, sel.IsNode() && sel.Anchor.Block == bi, width))
			m.lines = append(m.lines, line{block: bi})
			continue
		}

		runes := []rune(b.PlainText())
		marks := make([]richtext.Marks, 0, len(runes))
		for _, s := range b.Spans {
			for range []rune(s.Text) {
				marks = append(marks, s.Marks)
			}
		}

		var (
			row   strings.Builder
			cur   line
			x     int
			run   strings.Builder
			runSt charStyle
		)
		cur.block = bi
		flushRun := func() {
			if run.Len() > 0 {
				row.WriteString(runSt.style().Render(run.String()))
				run.Reset()
			}
		}
		flushRow := func(endCol int) {
			flushRun()
			cur.endCol = endCol
			rows = append(rows, row.String())
			m.lines = append(m.lines, cur)
			row.Reset()
			cur = line{block: bi}
			x = 0
		}
		emit := func(text string, st charStyle) {
			if st != runSt {
				flushRun()
				runSt = st
			}
			run.WriteString(text)
		}

		for col, r := range runes {
			w := runewidth.RuneWidth(r)
			if x+w > width && x > 0 {
				flushRow(col)
			}
			p := editor.Pos{Block: bi, Col: col}
			selected := !sel.IsNode() && !sel.Empty() &&
				editor.ComparePos(p, from) >= 0 && editor.ComparePos(p, to) < 0
			isCursor := showCursor && !sel.IsNode() && sel.Head == p

			if !sel.IsNode() && sel.Head == p {
				headRow = len(rows)
			}
			if !sel.IsNode() && p == from && !sel.Empty() {
				anchorTop, anchorLeft = len(rows), x
			}
			if !sel.IsNode() && p == to && !sel.Empty() {
				anchorBottom, anchorRight = len(rows), x
			}

			cur.cells = append(cur.cells, cell{col: col, x: x, w: w})
			emit(string(r), charStyle{marks: marks[col], selected: selected, cursor: isCursor})
			x += w
		}

		end := editor.Pos{Block: bi, Col: len(runes)}
		if !sel.IsNode() && !sel.Empty() && end == to {
			anchorBottom, anchorRight = len(rows), x
		}
		if !sel.IsNode() && sel.Head == end {
			headRow = len(rows)
			if showCursor {
				if x >= width && x > 0 {
					flushRow(len(runes))
				}
				emit(" ", charStyle{cursor: true})
			}
		}
		flushRow(len(runes))
	}

	m.vp.SetContent(strings.Join(rows, "\n"))

	if headRow < m.vp.YOffset {
		m.vp.SetYOffset(headRow)
	} else if headRow >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(headRow - m.vp.Height + 1)
	}

	m.hasAnchor = false
	if anchorTop >= 0 && anchorBottom >= 0 {
		if anchorTop != anchorBottom {
			anchorLeft, anchorRight = 0, width
		}
		top := anchorTop - m.vp.YOffset
		bottom := anchorBottom - m.vp.YOffset
		if bottom >= 0 && top < m.vp.Height {
			m.anchor = overlay.Rect{
				Left:   anchorLeft,
				Top:    max(top, 0),
				Right:  max(anchorRight, anchorLeft+1),
				Bottom: min(bottom, m.vp.Height-1),
			}
			m.hasAnchor = true
		}
	}
	return m
}

func renderReference(b richtext.Block, selected bool, width int) string {
	st := lipgloss.NewStyle().Foreground(styles.NodeBlockColor)
	if selected {
		st = st.Background(styles.SelectionBgColor).Bold(true)
	}
	text := "▸ " + string(b.Type) + ": " + b.Ref
	return st.Render(styles.TruncateString(text, width))
}

// Anchor returns the selection rectangle relative to the view's top-left
// corner. ok is false when there is no visible range selection.
func (m Model) Anchor() (overlay.Rect, bool) {
	return m.anchor, m.hasAnchor
}

// HitTest maps a click at (x, y), relative to the view, to a document
// position.
func (m Model) HitTest(x, y int) (editor.Pos, bool) {
	row := y + m.vp.YOffset
	if y < 0 || row < 0 || row >= len(m.lines) {
		return editor.Pos{}, false
	}
	l := m.lines[row]
	col := l.endCol
	for _, c := range l.cells {
		if c.x > x {
			break
		}
		col = c.col
		if c.x == x {
			break
		}
	}
	if n := len(l.cells); n > 0 && x >= l.cells[n-1].x+l.cells[n-1].w {
		col = l.endCol
	}
	return editor.Pos{Block: l.block, Col: col}, true
}

// ScrollUp and ScrollDown move the viewport by n rows.
func (m Model) ScrollUp(n int) Model {
	m.vp.ScrollUp(n)
	return m
}

func (m Model) ScrollDown(n int) Model {
	m.vp.ScrollDown(n)
	return m
}

// YOffset is the first visible row.
func (m Model) YOffset() int {
	return m.vp.YOffset
}

// View renders the visible rows.
func (m Model) View() string {
	return m.vp.View()
}
