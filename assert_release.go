//go:build !canvascore_debug

package canvascore

// checkInvariants is a no-op in release builds; see assert_debug.go for the
// -tags canvascore_debug version.
func (e *Engine) checkInvariants() {}
