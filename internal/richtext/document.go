package richtext

import (
	"strings"

	"github.com/zjrosen/inkwell/internal/editor"
)

// Document is the persisted form of a note.
type Document struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Blocks []Block `json:"blocks"`
}

// Block is a paragraph of spans or a structural reference.
// Structural blocks carry the referenced item's name in Ref and no spans.
type Block struct {
	Type  editor.NodeType `json:"type"`
	Ref   string          `json:"ref,omitempty"`
	Spans []Span          `json:"spans,omitempty"`
}

// Span is a run of text sharing the same marks.
type Span struct {
	Text  string `json:"text"`
	Marks Marks  `json:"marks,omitzero"`
}

// Paragraph builds a paragraph block from spans.
func Paragraph(spans ...Span) Block {
	return Block{Type: editor.NodeParagraph, Spans: spans}
}

// Text builds an unmarked span.
func Text(s string) Span {
	return Span{Text: s}
}

// Reference builds a structural block pointing at ref.
func Reference(t editor.NodeType, ref string) Block {
	return Block{Type: t, Ref: ref}
}

// PlainText returns the text of a block with marks dropped.
func (b Block) PlainText() string {
	var sb strings.Builder
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// PlainText returns every paragraph's text joined by newlines.
func (d Document) PlainText() string {
	lines := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		if b.Type.IsStructural() {
			lines = append(lines, b.Ref)
			continue
		}
		lines = append(lines, b.PlainText())
	}
	return strings.Join(lines, "\n")
}

type char struct {
	r rune
	m Marks
}

type block struct {
	typ   editor.NodeType
	ref   string
	chars []char
}

func (b block) structural() bool {
	return b.typ.IsStructural()
}

func (b block) text() string {
	rs := make([]rune, len(b.chars))
	for i, c := range b.chars {
		rs[i] = c.r
	}
	return string(rs)
}

func (b block) clone() block {
	b.chars = append([]char(nil), b.chars...)
	return b
}

func cloneBlocks(bs []block) []block {
	out := make([]block, len(bs))
	for i, b := range bs {
		out[i] = b.clone()
	}
	return out
}

func toBlocks(doc Document) []block {
	out := make([]block, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		nb := block{typ: b.Type, ref: b.Ref}
		if nb.typ == "" {
			nb.typ = editor.NodeParagraph
		}
		if !nb.structural() {
			for _, s := range b.Spans {
				for _, r := range s.Text {
					nb.chars = append(nb.chars, char{r: r, m: s.Marks})
				}
			}
		}
		out = append(out, nb)
	}
	if len(out) == 0 {
		out = append(out, block{typ: editor.NodeParagraph})
	}
	return out
}

// spans merges adjacent characters with equal marks.
func (b block) spans() []Span {
	var out []Span
	var cur []rune
	var curMarks Marks
	for i, c := range b.chars {
		if i > 0 && c.m != curMarks {
			out = append(out, Span{Text: string(cur), Marks: curMarks})
			cur = cur[:0]
		}
		curMarks = c.m
		cur = append(cur, c.r)
	}
	if len(cur) > 0 {
		out = append(out, Span{Text: string(cur), Marks: curMarks})
	}
	return out
}

func fromBlocks(bs []block) []Block {
	out := make([]Block, len(bs))
	for i, b := range bs {
		out[i] = Block{Type: b.typ, Ref: b.ref}
		if !b.structural() {
			out[i].Spans = b.spans()
		}
	}
	return out
}
