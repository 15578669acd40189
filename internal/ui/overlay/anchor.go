package overlay

// Rect is a screen rectangle in cells. Right is exclusive, Bottom inclusive,
// so a one-row selection has Top == Bottom.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Placement is the preferred side of the anchor.
type Placement int

const (
	PlaceAbove Placement = iota
	PlaceBelow
)

func (p Placement) String() string {
	if p == PlaceBelow {
		return "bottom"
	}
	return "top"
}

// ParsePlacement maps "top"/"bottom" to a Placement. Unknown values are top.
func ParsePlacement(s string) Placement {
	if s == "bottom" {
		return PlaceBelow
	}
	return PlaceAbove
}

// anchored centers the content on the anchor horizontally and puts it on the
// preferred side, flipping when it would leave the viewport. The result is
// clamped to the viewport.
func anchored(cfg Config, w, h int) (x, y int) {
	a := cfg.Anchor
	offset := max(cfg.Offset, 0)

	above := a.Top - offset - h
	below := a.Bottom + 1 + offset
	fitsAbove := above >= 0
	fitsBelow := below+h <= cfg.Height

	switch {
	case cfg.Placement == PlaceAbove && fitsAbove:
		y = above
	case cfg.Placement == PlaceAbove && fitsBelow:
		y = below
	case cfg.Placement == PlaceBelow && fitsBelow:
		y = below
	case cfg.Placement == PlaceBelow && fitsAbove:
		y = above
	case cfg.Placement == PlaceBelow:
		y = cfg.Height - h
	default:
		y = 0
	}

	center := a.Left + (a.Right-a.Left)/2
	x = center - w/2
	x = min(x, cfg.Width-w)
	return max(x, 0), max(y, 0)
}
