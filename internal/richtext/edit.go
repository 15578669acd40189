package richtext

import (
	"slices"

	"github.com/rivo/uniseg"

	"github.com/zjrosen/inkwell/internal/editor"
)

// Direction is a caret movement.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
	LineStart
	LineEnd
)

func (e *Engine) apply(name string, fn func(d *draft) bool) bool {
	c := &chain{e: e, steps: []step{{name: name, apply: fn}}}
	return c.Run()
}

// InsertText replaces the selection with s. Newlines split blocks.
func (e *Engine) InsertText(s string) bool {
	return e.apply("insertText", func(d *draft) bool {
		if !d.editable || d.sel.IsNode() || s == "" {
			return false
		}
		if !d.sel.Empty() {
			d.deleteRange()
		}
		marks := d.cursorMarks()
		d.stored = nil
		for _, r := range s {
			if r == '\n' {
				d.splitBlock()
				continue
			}
			p := d.sel.Head
			b := &d.blocks[p.Block]
			b.chars = slices.Insert(b.chars, p.Col, char{r: r, m: marks})
			d.sel = editor.Caret(editor.Pos{Block: p.Block, Col: p.Col + 1})
		}
		d.docChanged = true
		return true
	})
}

// InsertNewline splits the current block, or opens a paragraph below a
// selected structural block.
func (e *Engine) InsertNewline() bool {
	return e.apply("newline", func(d *draft) bool {
		if !d.editable {
			return false
		}
		if d.sel.IsNode() {
			at := d.sel.Anchor.Block + 1
			d.blocks = slices.Insert(d.blocks, at, block{typ: editor.NodeParagraph})
			d.sel = editor.Caret(editor.Pos{Block: at})
		} else {
			if !d.sel.Empty() {
				d.deleteRange()
			}
			d.splitBlock()
		}
		d.stored = nil
		d.docChanged = true
		return true
	})
}

// InsertReference adds a structural block after the head block and selects it.
func (e *Engine) InsertReference(t editor.NodeType, ref string) bool {
	return e.apply("insertReference", func(d *draft) bool {
		if !d.editable || !t.IsStructural() {
			return false
		}
		at := d.sel.Head.Block + 1
		d.blocks = slices.Insert(d.blocks, at, block{typ: t, ref: ref})
		d.sel = editor.Node(at)
		d.stored = nil
		d.docChanged = true
		return true
	})
}

// Backspace deletes the selection or the grapheme before the caret, merging
// with the previous block at column zero.
func (e *Engine) Backspace() bool {
	return e.apply("backspace", func(d *draft) bool {
		if !d.editable {
			return false
		}
		switch {
		case d.sel.IsNode():
			d.removeBlock(d.sel.Anchor.Block)
		case !d.sel.Empty():
			d.deleteRange()
		default:
			p := d.sel.Head
			b := &d.blocks[p.Block]
			switch {
			case p.Col > 0:
				start := prevBoundary(b.chars, p.Col)
				b.chars = slices.Delete(b.chars, start, p.Col)
				d.sel = editor.Caret(editor.Pos{Block: p.Block, Col: start})
			case p.Block == 0:
				return false
			case d.blocks[p.Block-1].structural():
				d.sel = editor.Node(p.Block - 1)
				return true
			default:
				prev := &d.blocks[p.Block-1]
				col := len(prev.chars)
				prev.chars = append(prev.chars, b.chars...)
				d.blocks = slices.Delete(d.blocks, p.Block, p.Block+1)
				d.sel = editor.Caret(editor.Pos{Block: p.Block - 1, Col: col})
			}
		}
		d.stored = nil
		d.docChanged = true
		return true
	})
}

// DeleteForward deletes the selection or the grapheme after the caret,
// pulling the next block up at the end of a line.
func (e *Engine) DeleteForward() bool {
	return e.apply("delete", func(d *draft) bool {
		if !d.editable {
			return false
		}
		switch {
		case d.sel.IsNode():
			d.removeBlock(d.sel.Anchor.Block)
		case !d.sel.Empty():
			d.deleteRange()
		default:
			p := d.sel.Head
			b := &d.blocks[p.Block]
			switch {
			case p.Col < len(b.chars):
				end := nextBoundary(b.chars, p.Col)
				b.chars = slices.Delete(b.chars, p.Col, end)
			case p.Block == len(d.blocks)-1:
				return false
			case d.blocks[p.Block+1].structural():
				d.sel = editor.Node(p.Block + 1)
				return true
			default:
				next := d.blocks[p.Block+1]
				b.chars = append(b.chars, next.chars...)
				d.blocks = slices.Delete(d.blocks, p.Block+1, p.Block+2)
			}
		}
		d.stored = nil
		d.docChanged = true
		return true
	})
}

// Move moves the caret, or the selection head when extend is set.
func (e *Engine) Move(dir Direction, extend bool) {
	v := e.view()
	head := v.sel.Head
	if v.sel.IsNode() {
		head = editor.Pos{Block: v.sel.Anchor.Block}
	}

	if !extend && !v.sel.Empty() && !v.sel.IsNode() {
		switch dir {
		case Left:
			e.setSelection(editor.Caret(v.sel.From()))
			return
		case Right:
			e.setSelection(editor.Caret(v.sel.To()))
			return
		}
	}

	target := e.step(head, dir, v.sel.IsNode())
	if !extend {
		e.setSelection(e.caretOrNode(target))
		return
	}
	anchor := v.sel.Anchor
	if v.sel.IsNode() {
		anchor = head
	}
	e.setSelection(editor.Range(anchor, target))
}

func (e *Engine) step(p editor.Pos, dir Direction, fromNode bool) editor.Pos {
	b := e.blocks[p.Block]
	switch dir {
	case Left:
		if p.Col > 0 && !fromNode {
			return editor.Pos{Block: p.Block, Col: prevBoundary(b.chars, p.Col)}
		}
		if p.Block > 0 {
			prev := e.blocks[p.Block-1]
			return editor.Pos{Block: p.Block - 1, Col: len(prev.chars)}
		}
	case Right:
		if p.Col < len(b.chars) && !fromNode {
			return editor.Pos{Block: p.Block, Col: nextBoundary(b.chars, p.Col)}
		}
		if p.Block < len(e.blocks)-1 {
			return editor.Pos{Block: p.Block + 1}
		}
		if fromNode {
			return p
		}
	case Up:
		if p.Block > 0 {
			return e.clamp(editor.Pos{Block: p.Block - 1, Col: p.Col})
		}
		return editor.Pos{Block: p.Block}
	case Down:
		if p.Block < len(e.blocks)-1 {
			return e.clamp(editor.Pos{Block: p.Block + 1, Col: p.Col})
		}
		return editor.Pos{Block: p.Block, Col: len(b.chars)}
	case LineStart:
		return editor.Pos{Block: p.Block}
	case LineEnd:
		return editor.Pos{Block: p.Block, Col: len(b.chars)}
	}
	return p
}

// SelectAll selects from the start of the first block to the end of the last.
func (e *Engine) SelectAll() {
	last := len(e.blocks) - 1
	e.setSelection(editor.Range(
		editor.Pos{},
		editor.Pos{Block: last, Col: len(e.blocks[last].chars)},
	))
}

// SelectNode selects block as a whole.
func (e *Engine) SelectNode(block int) {
	e.SetSelection(editor.Node(block))
}

func (d *draft) splitBlock() {
	p := d.sel.Head
	b := &d.blocks[p.Block]
	tail := append([]char(nil), b.chars[p.Col:]...)
	b.chars = b.chars[:p.Col:p.Col]
	d.blocks = slices.Insert(d.blocks, p.Block+1, block{typ: editor.NodeParagraph, chars: tail})
	d.sel = editor.Caret(editor.Pos{Block: p.Block + 1})
}

// deleteRange removes the selected content and leaves a caret at its start.
// Paragraph ends are joined; structural blocks inside the range are dropped.
func (d *draft) deleteRange() {
	from, to := d.sel.From(), d.sel.To()
	first, last := d.blocks[from.Block], d.blocks[to.Block]

	var head, tail []char
	if !first.structural() {
		head = first.chars[:min(from.Col, len(first.chars))]
	}
	if !last.structural() {
		tail = last.chars[min(to.Col, len(last.chars)):]
	}
	merged := block{typ: editor.NodeParagraph, chars: append(append([]char(nil), head...), tail...)}

	col := 0
	if !first.structural() {
		col = len(head)
	}
	d.blocks = slices.Replace(d.blocks, from.Block, to.Block+1, merged)
	d.sel = editor.Caret(editor.Pos{Block: from.Block, Col: col})
}

func (d *draft) removeBlock(i int) {
	d.blocks = slices.Delete(d.blocks, i, i+1)
	if len(d.blocks) == 0 {
		d.blocks = []block{{typ: editor.NodeParagraph}}
	}
	if i > 0 {
		i--
		prev := d.blocks[i]
		if prev.structural() {
			d.sel = editor.Node(i)
			return
		}
		d.sel = editor.Caret(editor.Pos{Block: i, Col: len(prev.chars)})
		return
	}
	if d.blocks[0].structural() {
		d.sel = editor.Node(0)
		return
	}
	d.sel = editor.Caret(editor.Pos{})
}

// graphemeBounds returns the rune offsets at which grapheme clusters start,
// plus the end offset.
func graphemeBounds(cs []char) []int {
	rs := make([]rune, len(cs))
	for i, c := range cs {
		rs[i] = c.r
	}
	bounds := []int{0}
	n := 0
	gr := uniseg.NewGraphemes(string(rs))
	for gr.Next() {
		n += len(gr.Runes())
		bounds = append(bounds, n)
	}
	return bounds
}

func prevBoundary(cs []char, col int) int {
	bounds := graphemeBounds(cs)
	prev := 0
	for _, b := range bounds {
		if b >= col {
			break
		}
		prev = b
	}
	return prev
}

func nextBoundary(cs []char, col int) int {
	for _, b := range graphemeBounds(cs) {
		if b > col {
			return b
		}
	}
	return len(cs)
}
