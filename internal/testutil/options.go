package testutil

import "github.com/zjrosen/inkwell/internal/richtext"

// SpanOption configures the marks of a span.
type SpanOption func(*richtext.Marks)

// Span builds a span with marks applied by opts.
func Span(text string, opts ...SpanOption) richtext.Span {
	s := richtext.Span{Text: text}
	for _, opt := range opts {
		opt(&s.Marks)
	}
	return s
}

func Bold() SpanOption      { return func(m *richtext.Marks) { m.Bold = true } }
func Italic() SpanOption    { return func(m *richtext.Marks) { m.Italic = true } }
func Underline() SpanOption { return func(m *richtext.Marks) { m.Underline = true } }
func Strike() SpanOption    { return func(m *richtext.Marks) { m.Strike = true } }
func Code() SpanOption      { return func(m *richtext.Marks) { m.Code = true } }

// Color sets the text color.
func Color(hex string) SpanOption {
	return func(m *richtext.Marks) { m.Color = hex }
}

// Highlight sets the background highlight.
func Highlight(hex string) SpanOption {
	return func(m *richtext.Marks) { m.Highlight = hex }
}

// Link sets the hyperlink target.
func Link(href string) SpanOption {
	return func(m *richtext.Marks) { m.Link = href }
}
