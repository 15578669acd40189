// Package overlay splices floating content (the bubble menu, popovers, the
// log viewer) over an already rendered screen without clearing it.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the middle of the viewport.
	Center Position = iota
	// Top places the overlay at the top center of the viewport.
	Top
	// Bottom places the overlay at the bottom center of the viewport.
	Bottom
	// Anchored places the overlay next to Config.Anchor.
	Anchored
)

// Config controls overlay rendering behavior.
type Config struct {
	// Width and Height are the viewport size in cells.
	Width  int
	Height int
	// Position selects the placement strategy.
	Position Position
	// PadY is the distance from the edge for Top and Bottom.
	PadY int
	// Anchor is the screen rectangle Anchored content attaches to.
	Anchor Rect
	// Placement is the preferred side of the anchor.
	Placement Placement
	// Offset is the number of empty rows between anchor and content.
	Offset int
}

// Place renders fg over bg, preserving ANSI styling on both.
func Place(cfg Config, fg, bg string) string {
	x, y := Resolve(cfg, lipgloss.Width(fg), lipgloss.Height(fg))
	return PlaceAt(x, y, cfg.Height, fg, bg)
}

// PlaceAt splices fg into bg with its top-left corner at (x, y).
// bg is padded to height rows first.
func PlaceAt(x, y, height int, fg, bg string) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	for i, line := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 {
			continue
		}
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

// splice writes fg into bg starting at column x.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}

// Resolve returns the top-left corner for content of the given size.
func Resolve(cfg Config, fgWidth, fgHeight int) (x, y int) {
	if cfg.Position == Anchored {
		return anchored(cfg, fgWidth, fgHeight)
	}

	x = (cfg.Width - fgWidth) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - fgHeight - cfg.PadY
	default:
		y = (cfg.Height - fgHeight) / 2
	}
	return max(x, 0), max(y, 0)
}
