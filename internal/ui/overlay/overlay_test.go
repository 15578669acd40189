package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grid(w, h int) string {
	return strings.TrimSuffix(strings.Repeat(strings.Repeat(".", w)+"\n", h), "\n")
}

func TestPlace_Center(t *testing.T) {
	result := Place(Config{Width: 5, Height: 3, Position: Center}, "X", "ABCDE\nFGHIJ\nKLMNO")

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "FGXIJ", lines[1])
}

func TestPlace_TopAndBottomPadding(t *testing.T) {
	bg := grid(5, 5)

	top := strings.Split(Place(Config{Width: 5, Height: 5, Position: Top, PadY: 1}, "XX", bg), "\n")
	assert.Equal(t, ".....", top[0])
	assert.Equal(t, ".XX..", top[1])

	bottom := strings.Split(Place(Config{Width: 5, Height: 5, Position: Bottom, PadY: 1}, "XX", bg), "\n")
	assert.Equal(t, ".XX..", bottom[3])
	assert.Equal(t, ".....", bottom[4])
}

func TestPlace_PadsShortBackground(t *testing.T) {
	result := Place(Config{Width: 5, Height: 3, Position: Center}, "XX\nXX", "")

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, " XX", lines[0])
	assert.Equal(t, " XX", lines[1])
}

func TestPlace_PreservesANSI(t *testing.T) {
	bg := "\x1b[31mRED\x1b[0m\n\x1b[31mRED\x1b[0m\n\x1b[31mRED\x1b[0m"
	result := Place(Config{Width: 3, Height: 3, Position: Center}, "X", bg)
	assert.Contains(t, result, "\x1b[31m")
}

func TestPlaceAt_SkipsRowsOutsideBackground(t *testing.T) {
	result := PlaceAt(1, -1, 2, "A\nB\nC", "...\n...")

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, ".B.", lines[0])
	assert.Equal(t, ".C.", lines[1])
}

func TestResolve_ClampsNegative(t *testing.T) {
	x, y := Resolve(Config{Width: 5, Height: 5, Position: Center}, 10, 10)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestResolve_AnchoredAbove(t *testing.T) {
	cfg := Config{
		Width: 40, Height: 20, Position: Anchored,
		Anchor:    Rect{Left: 10, Top: 8, Right: 20, Bottom: 8},
		Placement: PlaceAbove,
		Offset:    1,
	}

	x, y := Resolve(cfg, 6, 3)
	assert.Equal(t, 12, x, "centered over the selection")
	assert.Equal(t, 4, y, "three rows tall plus one row gap above row 8")
}

func TestResolve_AnchoredFlipsBelowWhenNoRoom(t *testing.T) {
	cfg := Config{
		Width: 40, Height: 20, Position: Anchored,
		Anchor:    Rect{Left: 0, Top: 1, Right: 4, Bottom: 2},
		Placement: PlaceAbove,
		Offset:    1,
	}

	x, y := Resolve(cfg, 6, 3)
	assert.Equal(t, 0, x, "clamped to the left edge")
	assert.Equal(t, 4, y, "below the last selected row plus the gap")
}

func TestResolve_AnchoredClampsRightEdge(t *testing.T) {
	cfg := Config{
		Width: 30, Height: 20, Position: Anchored,
		Anchor:    Rect{Left: 26, Top: 10, Right: 30, Bottom: 10},
		Placement: PlaceAbove,
	}

	x, _ := Resolve(cfg, 12, 1)
	assert.Equal(t, 18, x)
}

func TestResolve_AnchoredBelowFlipsUp(t *testing.T) {
	cfg := Config{
		Width: 40, Height: 10, Position: Anchored,
		Anchor:    Rect{Left: 5, Top: 8, Right: 9, Bottom: 8},
		Placement: PlaceBelow,
		Offset:    1,
	}

	_, y := Resolve(cfg, 4, 3)
	assert.Equal(t, 4, y)
}

func TestParsePlacement(t *testing.T) {
	assert.Equal(t, PlaceBelow, ParsePlacement("bottom"))
	assert.Equal(t, PlaceAbove, ParsePlacement("top"))
	assert.Equal(t, PlaceAbove, ParsePlacement("sideways"))
	assert.Equal(t, "bottom", PlaceBelow.String())
}
