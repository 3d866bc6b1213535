// Package canvascore is the compute core of an infinite-canvas graphical
// editor: an in-memory spatial engine that answers viewport-culling,
// hit-testing, snapping, and alignment-guide queries over a dynamic set of
// axis-aligned rectangular nodes.
//
// canvascore is designed to run off the rendering thread. A host feeds bulk
// bounds updates in via [Engine.UpsertNode] and [Engine.RemoveNode], and
// answers interactive queries — a few hundred per second during drags — with
// sub-millisecond latency for scenes of up to ~10^5 nodes.
//
// # Quick start
//
//	eng := canvascore.New(1024)
//	eng.UpsertNode(1, 0, 0, 100, 100, 0, 0)
//	eng.SetCamera(1, 0, 0, 800, 600, 1)
//	hits := eng.HitTestPoint(50, 50)
//
// # Scope
//
// canvascore owns exactly three pieces of state per [Engine]: a [Camera], a
// [SpatialIndex], and a handle-to-flags side table. Node *content*
// (geometry, styling, identity) is the host's concern — canvascore only ever
// sees rectangles, a z-order integer, and a flag bitmask. Rendering,
// persistence, undo, and network sync are explicitly out of scope; see
// SPEC_FULL.md for the full boundary.
//
// # Concurrency
//
// Every exported type in this package is single-threaded: operations run to
// completion synchronously and none suspends. An [Engine] (and its Camera
// and SpatialIndex) must not be used concurrently from multiple goroutines
// without external synchronization.
package canvascore
