package toolbar

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/inkwell/internal/cachemanager"
	"github.com/zjrosen/inkwell/internal/editor"
)

// FormattingState is what the buttons display for the current selection.
type FormattingState struct {
	Editable  bool
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Code      bool
	Color     string
	Highlight string
	Link      string
}

// Active reports the toggle state of mark.
func (s FormattingState) Active(mark editor.MarkType) bool {
	switch mark {
	case editor.MarkBold:
		return s.Bold
	case editor.MarkItalic:
		return s.Italic
	case editor.MarkUnderline:
		return s.Underline
	case editor.MarkStrike:
		return s.Strike
	case editor.MarkCode:
		return s.Code
	case editor.MarkLink:
		return s.Link != ""
	case editor.MarkTextStyle:
		return s.Color != ""
	case editor.MarkHighlight:
		return s.Highlight != ""
	}
	return false
}

// Derive reads the formatting state from ed. A nil handle yields the zero
// state.
func Derive(ed editor.Editor) FormattingState {
	if ed == nil {
		return FormattingState{}
	}
	return FormattingState{
		Editable:  ed.IsEditable(),
		Bold:      ed.IsActive(string(editor.MarkBold)),
		Italic:    ed.IsActive(string(editor.MarkItalic)),
		Underline: ed.IsActive(string(editor.MarkUnderline)),
		Strike:    ed.IsActive(string(editor.MarkStrike)),
		Code:      ed.IsActive(string(editor.MarkCode)),
		Color:     ed.MarkAttr(editor.MarkTextStyle, editor.AttrColor),
		Highlight: ed.MarkAttr(editor.MarkHighlight, editor.AttrColor),
		Link:      ed.MarkAttr(editor.MarkLink, editor.AttrHref),
	}
}

const stateTTL = 10 * time.Second

// stateCache memoises Derive per editor revision and selection.
type stateCache struct {
	rt *cachemanager.ReadThroughCache[string, FormattingState, editor.Editor]
}

func newStateCache(skip bool) *stateCache {
	return &stateCache{
		rt: cachemanager.NewReadThroughCache[string, FormattingState, editor.Editor](
			cachemanager.NewInMemoryCacheManager[string, FormattingState]("toolbar-state", stateTTL, cachemanager.DefaultCleanupInterval),
			func(_ context.Context, ed editor.Editor) (FormattingState, error) {
				return Derive(ed), nil
			},
			skip,
		),
	}
}

func stateKey(ed editor.Editor) string {
	sel := ed.Selection()
	return fmt.Sprintf("%d|%t|%d.%d-%d.%d|%s",
		ed.Revision(), ed.IsEditable(),
		sel.Anchor.Block, sel.Anchor.Col, sel.Head.Block, sel.Head.Col, sel.Kind)
}

func (c *stateCache) get(ed editor.Editor) FormattingState {
	if ed == nil {
		return FormattingState{}
	}
	// Derive cannot fail.
	s, _ := c.rt.Get(context.Background(), stateKey(ed), ed, stateTTL)
	return s
}

func (c *stateCache) reset() {
	_ = c.rt.Invalidate(context.Background())
}
