package editor

// Pos points into a document by block index and rune column.
type Pos struct {
	Block int
	Col   int
}

// ComparePos orders positions in document order.
func ComparePos(a, b Pos) int {
	switch {
	case a.Block < b.Block:
		return -1
	case a.Block > b.Block:
		return 1
	case a.Col < b.Col:
		return -1
	case a.Col > b.Col:
		return 1
	}
	return 0
}

// SelectionKind distinguishes text ranges from whole-block selections.
type SelectionKind int

const (
	TextSelection SelectionKind = iota
	NodeSelection
)

func (k SelectionKind) String() string {
	if k == NodeSelection {
		return "node"
	}
	return "text"
}

// Selection is anchored where it started and extends to Head.
// A node selection targets the whole block at Anchor.Block.
type Selection struct {
	Anchor Pos
	Head   Pos
	Kind   SelectionKind
}

// Caret returns an empty text selection at p.
func Caret(p Pos) Selection {
	return Selection{Anchor: p, Head: p}
}

// Range returns a text selection from anchor to head.
func Range(anchor, head Pos) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// Node returns a node selection of block.
func Node(block int) Selection {
	return Selection{Anchor: Pos{Block: block}, Head: Pos{Block: block}, Kind: NodeSelection}
}

// Empty reports whether the selection covers no content.
// Node selections are never empty.
func (s Selection) Empty() bool {
	return s.Kind == TextSelection && s.Anchor == s.Head
}

// IsNode reports whether a whole block is selected.
func (s Selection) IsNode() bool {
	return s.Kind == NodeSelection
}

// From returns the earlier endpoint.
func (s Selection) From() Pos {
	if ComparePos(s.Anchor, s.Head) <= 0 {
		return s.Anchor
	}
	return s.Head
}

// To returns the later endpoint.
func (s Selection) To() Pos {
	if ComparePos(s.Anchor, s.Head) <= 0 {
		return s.Head
	}
	return s.Anchor
}
