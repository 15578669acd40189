package toolbar

import "github.com/zjrosen/inkwell/internal/editor"

// ShouldShow decides whether the bubble menu is visible for ed's current
// selection. Empty and node selections hide it, as does a selection inside any
// of the hidden node types.
func ShouldShow(ed editor.Editor, hidden []editor.NodeType) bool {
	if ed == nil {
		return false
	}
	sel := ed.Selection()
	if sel.Empty() || sel.IsNode() {
		return false
	}
	for _, t := range hidden {
		if ed.IsActive(string(t)) {
			return false
		}
	}
	return true
}
