package richtext

import "github.com/zjrosen/inkwell/internal/editor"

// view is a document plus selection. The engine reads through it and chains
// mutate a private copy of it before committing.
type view struct {
	blocks []block
	sel    editor.Selection
	stored *Marks
}

func (v *view) isActive(name string) bool {
	if nt := editor.NodeType(name); nt == editor.NodeParagraph || nt.IsStructural() {
		return v.blocks[v.sel.Head.Block].typ == nt
	}
	mark := editor.MarkType(name)
	if v.sel.IsNode() {
		return false
	}
	if v.sel.Empty() {
		return v.cursorMarks().Has(mark)
	}
	seen, active := false, true
	v.eachSelected(func(c *char) {
		seen = true
		if !c.m.Has(mark) {
			active = false
		}
	})
	return seen && active
}

func (v *view) markAttr(mark editor.MarkType, attr string) string {
	if v.sel.IsNode() {
		return ""
	}
	if v.sel.Empty() {
		return v.cursorMarks().Attr(mark, attr)
	}
	value, first, mixed := "", true, false
	v.eachSelected(func(c *char) {
		a := c.m.Attr(mark, attr)
		if first {
			value, first = a, false
		} else if a != value {
			mixed = true
		}
	})
	if mixed {
		return ""
	}
	return value
}

// cursorMarks are the marks new text would get at an empty selection.
func (v *view) cursorMarks() Marks {
	if v.stored != nil {
		return *v.stored
	}
	b := v.blocks[v.sel.Head.Block]
	col := v.sel.Head.Col
	switch {
	case col > 0 && col <= len(b.chars):
		return b.chars[col-1].m
	case col == 0 && len(b.chars) > 0:
		return b.chars[0].m
	}
	return Marks{}
}

// eachSelected visits every character inside a text selection.
func (v *view) eachSelected(fn func(c *char)) {
	from, to := v.sel.From(), v.sel.To()
	for bi := from.Block; bi <= to.Block && bi < len(v.blocks); bi++ {
		b := &v.blocks[bi]
		if b.structural() {
			continue
		}
		start, end := 0, len(b.chars)
		if bi == from.Block {
			start = min(from.Col, end)
		}
		if bi == to.Block {
			end = min(to.Col, end)
		}
		for i := start; i < end; i++ {
			fn(&b.chars[i])
		}
	}
}

// selectedCount returns the number of characters in the selection.
func (v *view) selectedCount() int {
	n := 0
	v.eachSelected(func(*char) { n++ })
	return n
}
