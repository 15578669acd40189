package richtext

import (
	"slices"

	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/log"
)

type step struct {
	name  string
	apply func(d *draft) bool
}

// draft is the working copy a chain mutates.
type draft struct {
	view
	editable   bool
	focus      bool
	docChanged bool
}

// chain queues steps and applies them on Run. If any step fails nothing is
// committed.
type chain struct {
	e     *Engine
	steps []step
}

var _ editor.Chain = (*chain)(nil)

// Chain implements editor.Editor.
func (e *Engine) Chain() editor.Chain {
	return &chain{e: e}
}

func (c *chain) add(name string, fn func(d *draft) bool) editor.Chain {
	c.steps = append(c.steps, step{name: name, apply: fn})
	return c
}

func (c *chain) Focus() editor.Chain {
	return c.add("focus", func(d *draft) bool {
		d.focus = true
		return true
	})
}

func (c *chain) ToggleMark(mark editor.MarkType) editor.Chain {
	return c.add("toggle:"+string(mark), func(d *draft) bool {
		return d.toggleMark(mark)
	})
}

func (c *chain) SetColor(color string) editor.Chain {
	return c.add("setColor", func(d *draft) bool {
		return color != "" && d.setAttr(func(m *Marks) { m.Color = color })
	})
}

func (c *chain) UnsetColor() editor.Chain {
	return c.add("unsetColor", func(d *draft) bool {
		return d.setAttr(func(m *Marks) { m.Color = "" })
	})
}

func (c *chain) SetHighlight(color string) editor.Chain {
	return c.add("setHighlight", func(d *draft) bool {
		return color != "" && d.setAttr(func(m *Marks) { m.Highlight = color })
	})
}

func (c *chain) UnsetHighlight() editor.Chain {
	return c.add("unsetHighlight", func(d *draft) bool {
		return d.setAttr(func(m *Marks) { m.Highlight = "" })
	})
}

func (c *chain) ExtendMarkRange(mark editor.MarkType) editor.Chain {
	return c.add("extend:"+string(mark), func(d *draft) bool {
		d.extendMarkRange(mark)
		return true
	})
}

func (c *chain) SetLink(href string) editor.Chain {
	return c.add("setLink", func(d *draft) bool {
		if href == "" || d.sel.Empty() {
			return false
		}
		return d.setAttr(func(m *Marks) { m.Link = href })
	})
}

func (c *chain) UnsetLink() editor.Chain {
	return c.add("unsetLink", func(d *draft) bool {
		return d.setAttr(func(m *Marks) { m.Link = "" })
	})
}

// Run applies every queued step as one transaction.
func (c *chain) Run() bool {
	e := c.e
	d := &draft{view: view{blocks: cloneBlocks(e.blocks), sel: e.sel}, editable: e.editable}
	if e.stored != nil {
		stored := *e.stored
		d.stored = &stored
	}

	names := make([]string, 0, len(c.steps))
	for _, s := range c.steps {
		names = append(names, s.name)
		if !s.apply(d) {
			log.Debug(log.CatEditor, "Chain step failed", "step", s.name, "steps", names)
			return false
		}
	}

	if d.focus {
		e.focused = true
	}

	storedChanged := !sameStored(d.stored, e.stored)
	switch {
	case d.docChanged:
		e.pushHistory()
		e.blocks, e.sel, e.stored = d.blocks, d.sel, d.stored
		e.commit(true, names...)
	case d.sel != e.sel || storedChanged:
		e.sel, e.stored = d.sel, d.stored
		e.commit(false, names...)
	}
	return true
}

func sameStored(a, b *Marks) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (d *draft) editableText() bool {
	return d.editable && !d.sel.IsNode()
}

// toggleMark removes mark when the whole selection carries it, otherwise adds
// it everywhere. At a caret it flips the stored marks for the next insert.
func (d *draft) toggleMark(mark editor.MarkType) bool {
	if !d.editableText() || !slices.Contains(editor.ToggleMarks, mark) {
		return false
	}
	on := !d.isActive(string(mark))
	if d.sel.Empty() {
		next, _ := d.cursorMarks().withToggle(mark, on)
		d.stored = &next
		return true
	}
	if d.selectedCount() == 0 {
		return false
	}
	d.eachSelected(func(c *char) {
		c.m, _ = c.m.withToggle(mark, on)
	})
	d.docChanged = true
	return true
}

// setAttr applies fn to every selected character, or to the stored marks at
// a caret.
func (d *draft) setAttr(fn func(m *Marks)) bool {
	if !d.editableText() {
		return false
	}
	if d.sel.Empty() {
		next := d.cursorMarks()
		fn(&next)
		d.stored = &next
		return true
	}
	changed := false
	d.eachSelected(func(c *char) {
		before := c.m
		fn(&c.m)
		if c.m != before {
			changed = true
		}
	})
	if changed {
		d.docChanged = true
	}
	return d.selectedCount() > 0
}

// extendMarkRange grows the selection to cover the whole run of mark
// touching each end. Both ends stay inside their blocks.
func (d *draft) extendMarkRange(mark editor.MarkType) {
	if d.sel.IsNode() {
		return
	}
	from, to := d.sel.From(), d.sel.To()

	fb := d.blocks[from.Block]
	if from.Col < len(fb.chars) && fb.chars[from.Col].m.Has(mark) {
		from.Col = runStart(fb.chars, from.Col, mark)
	} else if from.Col > 0 && from.Col <= len(fb.chars) && fb.chars[from.Col-1].m.Has(mark) {
		from.Col = runStart(fb.chars, from.Col-1, mark)
	}

	tb := d.blocks[to.Block]
	if to.Col > 0 && to.Col <= len(tb.chars) && tb.chars[to.Col-1].m.Has(mark) {
		to.Col = runEnd(tb.chars, to.Col-1, mark)
	} else if to.Col < len(tb.chars) && tb.chars[to.Col].m.Has(mark) {
		to.Col = runEnd(tb.chars, to.Col, mark)
	}

	if from != d.sel.From() || to != d.sel.To() {
		d.sel = editor.Range(from, to)
		d.stored = nil
	}
}

// runStart returns the first index of the run of mark containing i.
// For attribute marks the run stops where the attribute value changes.
func runStart(cs []char, i int, mark editor.MarkType) int {
	attr := cs[i].m.Attr(mark, attrFor(mark))
	for i > 0 && cs[i-1].m.Has(mark) && cs[i-1].m.Attr(mark, attrFor(mark)) == attr {
		i--
	}
	return i
}

// runEnd returns the index just past the run of mark containing i.
func runEnd(cs []char, i int, mark editor.MarkType) int {
	attr := cs[i].m.Attr(mark, attrFor(mark))
	for i < len(cs) && cs[i].m.Has(mark) && cs[i].m.Attr(mark, attrFor(mark)) == attr {
		i++
	}
	return i
}

func attrFor(mark editor.MarkType) string {
	if mark == editor.MarkLink {
		return editor.AttrHref
	}
	return editor.AttrColor
}
