// Package markdown renders exported documents for the terminal.
package markdown

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with inkwell's configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// ValidStyle reports whether style is a supported glamour standard style.
func ValidStyle(style string) bool {
	switch style {
	case "", "dark", "light", "notty":
		return true
	}
	return false
}

// New creates a renderer with the given standard style and wrap width.
// An empty style means "dark". WithAutoStyle is avoided because it queries
// the terminal background.
func New(style string, width int) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}
	if !ValidStyle(style) {
		return nil, fmt.Errorf("unknown markdown style %q", style)
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(md string) (string, error) {
	return r.renderer.Render(md)
}

// Wrap word-wraps plain markdown at width. Non-positive widths return s as is.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}
