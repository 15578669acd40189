// Package editor defines the contract between inkwell's UI and a rich-text
// editing engine: the handle the toolbar reads formatting state from, the
// selection it decides visibility with, and the command chain it issues
// formatting changes through.
package editor

import (
	"context"

	"github.com/zjrosen/inkwell/internal/pubsub"
)

// MarkType names an inline mark.
type MarkType string

const (
	MarkBold      MarkType = "bold"
	MarkItalic    MarkType = "italic"
	MarkUnderline MarkType = "underline"
	MarkStrike    MarkType = "strike"
	MarkCode      MarkType = "code"
	MarkLink      MarkType = "link"
	MarkTextStyle MarkType = "textStyle" // carries the text color attribute
	MarkHighlight MarkType = "highlight"
)

// Attribute keys read through MarkAttr.
const (
	AttrColor = "color"
	AttrHref  = "href"
)

// ToggleMarks are the marks with a plain on/off button, in toolbar order.
var ToggleMarks = []MarkType{MarkBold, MarkItalic, MarkUnderline, MarkStrike, MarkCode}

// NodeType names a block type.
type NodeType string

const (
	NodeParagraph NodeType = "paragraph"
	NodePage      NodeType = "page"
	NodeDatabase  NodeType = "database"
	NodeFolder    NodeType = "folder"
	NodeFile      NodeType = "file"
	NodeTempFile  NodeType = "tempFile"
)

// StructuralNodeTypes are the reference blocks that never show the toolbar.
func StructuralNodeTypes() []NodeType {
	return []NodeType{NodePage, NodeDatabase, NodeFolder, NodeFile, NodeTempFile}
}

// IsStructural reports whether t is one of StructuralNodeTypes.
func (t NodeType) IsStructural() bool {
	switch t {
	case NodePage, NodeDatabase, NodeFolder, NodeFile, NodeTempFile:
		return true
	}
	return false
}

// Editor is the handle the UI holds on the engine. It is shared, not owned:
// whoever constructs it controls its lifetime.
type Editor interface {
	IsEditable() bool
	// IsActive accepts a mark or node type name.
	IsActive(name string) bool
	// MarkAttr returns attr of mark at the selection, or "" when the mark is
	// absent or its value differs across the selection.
	MarkAttr(mark MarkType, attr string) string
	Selection() Selection
	// Revision increases with every applied transaction.
	Revision() uint64
	Chain() Chain
}

// Chain queues commands and applies them as one transaction on Run.
type Chain interface {
	Focus() Chain
	ToggleMark(mark MarkType) Chain
	SetColor(color string) Chain
	UnsetColor() Chain
	SetHighlight(color string) Chain
	UnsetHighlight() Chain
	ExtendMarkRange(mark MarkType) Chain
	SetLink(href string) Chain
	UnsetLink() Chain
	// Run applies the queued commands and reports whether anything changed.
	Run() bool
}

// Transaction describes one applied engine change.
type Transaction struct {
	Revision   uint64
	DocChanged bool
	Selection  Selection
	Steps      []string
}

// Subscriber is implemented by engines that publish their transactions.
type Subscriber interface {
	Subscribe(ctx context.Context) <-chan pubsub.Event[Transaction]
}
