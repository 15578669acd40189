// Package richtext is a small in-memory rich-text engine implementing
// editor.Editor. Documents are a flat list of blocks; paragraphs hold marked
// characters and structural blocks are selectable as a whole.
package richtext

import (
	"context"
	"slices"

	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/pubsub"
)

const maxHistory = 100

type snapshot struct {
	blocks []block
	sel    editor.Selection
}

// Engine owns one document and its selection. It is not safe for concurrent
// use; drive it from a single goroutine (the Bubble Tea update loop).
type Engine struct {
	id       string
	title    string
	blocks   []block
	sel      editor.Selection
	stored   *Marks
	editable bool
	focused  bool
	rev      uint64
	version  uint64
	undo     []snapshot
	redo     []snapshot
	broker   *pubsub.Broker[editor.Transaction]
}

var (
	_ editor.Editor     = (*Engine)(nil)
	_ editor.Subscriber = (*Engine)(nil)
)

// New loads doc with the caret at the start of the first block.
func New(doc Document) *Engine {
	e := &Engine{
		id:       doc.ID,
		title:    doc.Title,
		blocks:   toBlocks(doc),
		editable: true,
		broker:   pubsub.NewBroker[editor.Transaction](),
	}
	e.sel = e.caretOrNode(editor.Pos{})
	return e
}

// Close releases subscribers.
func (e *Engine) Close() {
	e.broker.Close()
}

// Subscribe streams applied transactions until ctx is done.
func (e *Engine) Subscribe(ctx context.Context) <-chan pubsub.Event[editor.Transaction] {
	return e.broker.Subscribe(ctx)
}

// Document returns a copy of the current content.
func (e *Engine) Document() Document {
	return Document{ID: e.id, Title: e.title, Blocks: fromBlocks(e.blocks)}
}

// Load replaces the content, clears history and places the caret at the start.
func (e *Engine) Load(doc Document) {
	e.id = doc.ID
	e.title = doc.Title
	e.blocks = toBlocks(doc)
	e.undo = nil
	e.redo = nil
	e.stored = nil
	e.sel = e.caretOrNode(editor.Pos{})
	e.commit(true, "load")
}

// SetEditable toggles read-only mode.
func (e *Engine) SetEditable(editable bool) {
	e.editable = editable
}

// IsEditable implements editor.Editor.
func (e *Engine) IsEditable() bool {
	return e.editable
}

// Focused reports whether the last chain requested focus.
func (e *Engine) Focused() bool {
	return e.focused
}

// Blur drops focus, e.g. when keyboard focus moves into the toolbar.
func (e *Engine) Blur() {
	e.focused = false
}

// Selection implements editor.Editor.
func (e *Engine) Selection() editor.Selection {
	return e.sel
}

// Revision implements editor.Editor.
func (e *Engine) Revision() uint64 {
	return e.rev
}

// ContentVersion counts content changes only; selection moves leave it alone.
func (e *Engine) ContentVersion() uint64 {
	return e.version
}

// BlockCount returns the number of blocks.
func (e *Engine) BlockCount() int {
	return len(e.blocks)
}

// IsActive implements editor.Editor. Node type names match the head block;
// mark names match when every selected character carries the mark.
func (e *Engine) IsActive(name string) bool {
	return e.view().isActive(name)
}

// MarkAttr implements editor.Editor.
func (e *Engine) MarkAttr(mark editor.MarkType, attr string) string {
	return e.view().markAttr(mark, attr)
}

func (e *Engine) view() *view {
	return &view{blocks: e.blocks, sel: e.sel, stored: e.stored}
}

// caretOrNode returns a caret at p, or a node selection when p lands on a
// structural block.
func (e *Engine) caretOrNode(p editor.Pos) editor.Selection {
	p = e.clamp(p)
	if e.blocks[p.Block].structural() {
		return editor.Node(p.Block)
	}
	return editor.Caret(p)
}

func (e *Engine) clamp(p editor.Pos) editor.Pos {
	p.Block = max(0, min(p.Block, len(e.blocks)-1))
	b := e.blocks[p.Block]
	if b.structural() {
		p.Col = 0
	} else {
		p.Col = max(0, min(p.Col, len(b.chars)))
	}
	return p
}

// SetSelection moves the selection, clamped to the document.
func (e *Engine) SetSelection(sel editor.Selection) {
	if sel.IsNode() {
		sel = editor.Node(e.clamp(sel.Anchor).Block)
	} else {
		sel.Anchor = e.clamp(sel.Anchor)
		sel.Head = e.clamp(sel.Head)
	}
	e.setSelection(sel)
}

func (e *Engine) setSelection(sel editor.Selection) {
	if sel == e.sel {
		return
	}
	e.sel = sel
	e.stored = nil
	e.commit(false, "select")
}

func (e *Engine) pushHistory() {
	e.undo = append(e.undo, snapshot{blocks: cloneBlocks(e.blocks), sel: e.sel})
	if len(e.undo) > maxHistory {
		e.undo = slices.Delete(e.undo, 0, len(e.undo)-maxHistory)
	}
	e.redo = nil
}

// commit bumps the revision and publishes the transaction.
func (e *Engine) commit(docChanged bool, steps ...string) {
	e.rev++
	if docChanged {
		e.version++
	}
	tx := editor.Transaction{
		Revision:   e.rev,
		DocChanged: docChanged,
		Selection:  e.sel,
		Steps:      steps,
	}
	eventType := pubsub.SelectionChanged
	if docChanged {
		eventType = pubsub.DocChanged
	}
	e.broker.Publish(eventType, tx)
	if docChanged {
		log.Debug(log.CatEditor, "Applied transaction", "rev", e.rev, "steps", steps)
	}
}

// Undo restores the state before the last content change.
func (e *Engine) Undo() bool {
	if !e.editable || len(e.undo) == 0 {
		return false
	}
	last := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, snapshot{blocks: cloneBlocks(e.blocks), sel: e.sel})
	e.blocks, e.sel, e.stored = last.blocks, last.sel, nil
	e.commit(true, "undo")
	return true
}

// Redo reapplies the last undone change.
func (e *Engine) Redo() bool {
	if !e.editable || len(e.redo) == 0 {
		return false
	}
	next := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, snapshot{blocks: cloneBlocks(e.blocks), sel: e.sel})
	e.blocks, e.sel, e.stored = next.blocks, next.sel, nil
	e.commit(true, "redo")
	return true
}
