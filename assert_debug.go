//go:build canvascore_debug

package canvascore

import "fmt"

// checkInvariants panics if the node table and flag table key-sets have
// diverged (spec.md §3: "identical key-sets after every mutation"). Only
// compiled into debug builds (-tags canvascore_debug); see assert_release.go
// for the no-op default. Mirrors the teacher's debugCheckDisposed: a
// programmer-error assertion, not a recoverable condition a host should
// handle.
func (e *Engine) checkInvariants() {
	if e.index.Len() != len(e.flags) {
		panic(fmt.Sprintf("canvascore debug: node/flag table size mismatch: %d nodes, %d flags", e.index.Len(), len(e.flags)))
	}
	for h := range e.flags {
		if _, ok := e.index.GetBounds(h); !ok {
			panic(fmt.Sprintf("canvascore debug: flag table has handle %d with no node entry", h))
		}
	}
}
