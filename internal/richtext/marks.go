package richtext

import "github.com/zjrosen/inkwell/internal/editor"

// Marks is the full set of inline formatting on one character.
type Marks struct {
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	Strike    bool   `json:"strike,omitempty"`
	Code      bool   `json:"code,omitempty"`
	Color     string `json:"color,omitempty"`
	Highlight string `json:"highlight,omitempty"`
	Link      string `json:"link,omitempty"`
}

// Has reports whether mark is present.
func (m Marks) Has(mark editor.MarkType) bool {
	switch mark {
	case editor.MarkBold:
		return m.Bold
	case editor.MarkItalic:
		return m.Italic
	case editor.MarkUnderline:
		return m.Underline
	case editor.MarkStrike:
		return m.Strike
	case editor.MarkCode:
		return m.Code
	case editor.MarkTextStyle:
		return m.Color != ""
	case editor.MarkHighlight:
		return m.Highlight != ""
	case editor.MarkLink:
		return m.Link != ""
	}
	return false
}

// Attr returns the attribute value carried by mark.
func (m Marks) Attr(mark editor.MarkType, attr string) string {
	switch {
	case mark == editor.MarkTextStyle && attr == editor.AttrColor:
		return m.Color
	case mark == editor.MarkHighlight && attr == editor.AttrColor:
		return m.Highlight
	case mark == editor.MarkLink && attr == editor.AttrHref:
		return m.Link
	}
	return ""
}

// withToggle returns m with a boolean mark switched to on.
// It reports false for marks that are not plain toggles.
func (m Marks) withToggle(mark editor.MarkType, on bool) (Marks, bool) {
	switch mark {
	case editor.MarkBold:
		m.Bold = on
	case editor.MarkItalic:
		m.Italic = on
	case editor.MarkUnderline:
		m.Underline = on
	case editor.MarkStrike:
		m.Strike = on
	case editor.MarkCode:
		m.Code = on
	default:
		return m, false
	}
	return m, true
}

// IsZero reports whether no mark is set.
func (m Marks) IsZero() bool {
	return m == Marks{}
}
