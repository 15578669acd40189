package richtext

import (
	"fmt"
	"strings"
)

// MarkdownOptions controls marks that plain markdown cannot express.
type MarkdownOptions struct {
	// HTML emits underline, color and highlight as inline HTML.
	HTML bool
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"~", `\~`,
)

// ToMarkdown serialises doc with the title as a level one heading.
func ToMarkdown(doc Document, opts MarkdownOptions) string {
	var b strings.Builder
	if doc.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	}
	for i, blk := range doc.Blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if blk.Type.IsStructural() {
			fmt.Fprintf(&b, "> **%s:** %s", blk.Type, mdEscaper.Replace(blk.Ref))
			continue
		}
		for _, s := range blk.Spans {
			b.WriteString(spanMarkdown(s, opts))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func spanMarkdown(s Span, opts MarkdownOptions) string {
	m := s.Marks
	var text string
	if m.Code {
		text = "`" + s.Text + "`"
	} else {
		text = mdEscaper.Replace(s.Text)
	}
	if strings.TrimSpace(s.Text) == "" {
		return text
	}
	if m.Strike {
		text = "~~" + text + "~~"
	}
	if m.Italic {
		text = "*" + text + "*"
	}
	if m.Bold {
		text = "**" + text + "**"
	}
	if opts.HTML {
		if m.Underline {
			text = "<u>" + text + "</u>"
		}
		if m.Highlight != "" {
			text = fmt.Sprintf(`<mark style="background-color:%s">%s</mark>`, m.Highlight, text)
		}
		if m.Color != "" {
			text = fmt.Sprintf(`<span style="color:%s">%s</span>`, m.Color, text)
		}
	}
	if m.Link != "" {
		text = fmt.Sprintf("[%s](%s)", text, m.Link)
	}
	return text
}
