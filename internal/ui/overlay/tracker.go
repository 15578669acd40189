package overlay

// Transition is what changed when a Tracker was updated.
type Transition int

const (
	NoChange Transition = iota
	Shown
	Hidden
)

func (t Transition) String() string {
	switch t {
	case Shown:
		return "shown"
	case Hidden:
		return "hidden"
	}
	return "none"
}

// Tracker remembers whether floating content is visible and reports the
// edges between visible and hidden. Owners run their hide handlers on Hidden.
type Tracker struct {
	visible bool
}

// Update records the new visibility and returns the edge, if any.
func (t Tracker) Update(show bool) (Tracker, Transition) {
	switch {
	case show && !t.visible:
		return Tracker{visible: true}, Shown
	case !show && t.visible:
		return Tracker{visible: false}, Hidden
	}
	return t, NoChange
}

// Visible reports the last recorded visibility.
func (t Tracker) Visible() bool {
	return t.visible
}
