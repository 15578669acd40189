package testutil

import (
	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/richtext"
)

// StandardDoc returns a document exercising every mark and a reference block.
func StandardDoc() richtext.Document {
	return NewDoc("Standard").
		Para("Plain opening line").
		Spans(
			Span("bold ", Bold()),
			Span("italic ", Italic()),
			Span("under ", Underline()),
			Span("struck ", Strike()),
			Span("code", Code()),
		).
		Spans(
			Span("red", Color("#e06c75")),
			Span(" and "),
			Span("marked", Highlight("#fde68a")),
			Span(" plus a "),
			Span("link", Link("https://example.com")),
		).
		Ref(editor.NodePage, "Roadmap").
		Para("Closing line").
		Build()
}
