package toolbar

// Popover identifies the sub-menu that is currently open, if any.
type Popover int

const (
	PopoverNone Popover = iota
	PopoverColor
	PopoverLink
	PopoverHighlight
)

func (p Popover) String() string {
	switch p {
	case PopoverColor:
		return "color"
	case PopoverLink:
		return "link"
	case PopoverHighlight:
		return "highlight"
	}
	return "none"
}

// Popovers holds the single active popover. At most one is open because there
// is only one value to hold.
type Popovers struct {
	active Popover
}

// Active returns the open popover, or PopoverNone.
func (s Popovers) Active() Popover {
	return s.active
}

// IsOpen reports whether p is the open popover. IsOpen(PopoverNone) is true
// when nothing is open.
func (s Popovers) IsOpen(p Popover) bool {
	return s.active == p
}

// SetOpen opens p, closing any other. Closing always leaves nothing open,
// whichever popover was active.
func (s Popovers) SetOpen(p Popover, open bool) Popovers {
	if open {
		s.active = p
	} else {
		s.active = PopoverNone
	}
	return s
}

// Toggle opens p unless it is already open, in which case it closes.
func (s Popovers) Toggle(p Popover) Popovers {
	return s.SetOpen(p, s.active != p)
}

// Close is SetOpen(_, false).
func (s Popovers) Close() Popovers {
	s.active = PopoverNone
	return s
}
