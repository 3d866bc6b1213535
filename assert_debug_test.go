//go:build canvascore_debug

package canvascore

import "testing"

func TestCheckInvariantsPassesOnNormalUse(t *testing.T) {
	eng := New(4)
	eng.UpsertNode(1, 0, 0, 10, 10, 0, FlagHidden)
	eng.UpsertNode(1, 0, 0, 20, 20, 0, 0)
	eng.RemoveNode(1)
	eng.Clear()
	// Reaching here without a panic is the assertion.
}

func TestCheckInvariantsCatchesDivergence(t *testing.T) {
	eng := New(4)
	eng.flags[999] = FlagHidden // flag entry with no matching node entry

	defer func() {
		if recover() == nil {
			t.Fatal("expected checkInvariants to panic on a diverged key-set")
		}
	}()
	eng.checkInvariants()
}
