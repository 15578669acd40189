package overlay

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestTracker_Edges(t *testing.T) {
	var tr Tracker
	var tn Transition

	tr, tn = tr.Update(false)
	require.Equal(t, NoChange, tn)

	tr, tn = tr.Update(true)
	require.Equal(t, Shown, tn)
	require.True(t, tr.Visible())

	tr, tn = tr.Update(true)
	require.Equal(t, NoChange, tn)

	tr, tn = tr.Update(false)
	require.Equal(t, Hidden, tn)
	require.False(t, tr.Visible())
}

func TestTracker_HiddenOnlyAfterShown(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		shows := rapid.SliceOf(rapid.Bool()).Draw(rt, "shows")
		var tr Tracker
		prev := false
		for _, show := range shows {
			var tn Transition
			tr, tn = tr.Update(show)
			switch {
			case prev && !show:
				require.Equal(rt, Hidden, tn)
			case !prev && show:
				require.Equal(rt, Shown, tn)
			default:
				require.Equal(rt, NoChange, tn)
			}
			require.Equal(rt, show, tr.Visible())
			prev = show
		}
	})
}
