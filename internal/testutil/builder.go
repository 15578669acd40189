// Package testutil provides document builders and database helpers for tests.
package testutil

import (
	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/richtext"
)

// DocBuilder accumulates blocks for a richtext.Document.
type DocBuilder struct {
	doc richtext.Document
}

// NewDoc starts a document with the given title.
func NewDoc(title string) *DocBuilder {
	return &DocBuilder{doc: richtext.Document{Title: title}}
}

// WithID sets the document ID.
func (b *DocBuilder) WithID(id string) *DocBuilder {
	b.doc.ID = id
	return b
}

// Para appends a paragraph holding a single span of text.
func (b *DocBuilder) Para(text string, opts ...SpanOption) *DocBuilder {
	return b.Spans(Span(text, opts...))
}

// Spans appends a paragraph made of the given spans.
func (b *DocBuilder) Spans(spans ...richtext.Span) *DocBuilder {
	b.doc.Blocks = append(b.doc.Blocks, richtext.Paragraph(spans...))
	return b
}

// Ref appends a structural reference block.
func (b *DocBuilder) Ref(t editor.NodeType, ref string) *DocBuilder {
	b.doc.Blocks = append(b.doc.Blocks, richtext.Reference(t, ref))
	return b
}

// Build returns the document.
func (b *DocBuilder) Build() richtext.Document {
	return b.doc
}

// Engine returns a richtext engine loaded with the document.
func (b *DocBuilder) Engine() *richtext.Engine {
	return richtext.New(b.doc)
}
