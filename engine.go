package canvascore

import (
	"time"

	"github.com/google/uuid"
)

// Engine is the facade: it owns one [Camera], one [SpatialIndex], and a
// handle-to-flags side table, and composes them behind the single API
// surface a host binds to. Absence of an entry in the flag table is
// treated as zero flags (unrestricted).
//
// Engine is not safe for concurrent use; it is designed to be owned by one
// execution context (typically an off-main worker) at a time.
type Engine struct {
	// InstanceID is a per-Engine identifier minted once in New; it plays no
	// role in spatial, camera, or guide computation. It is not added to the
	// fields of the diagnostic events this Engine emits.
	InstanceID uuid.UUID

	Camera *Camera

	index  *SpatialIndex
	flags  map[Handle]Flags
	logger Logger
}

// New creates an Engine with a default Camera and a SpatialIndex /
// flag table pre-sized from capacity.
func New(capacity uint32) *Engine {
	return &Engine{
		InstanceID: uuid.New(),
		Camera:     NewCamera(),
		index:      NewSpatialIndex(int(capacity)),
		flags:      make(map[Handle]Flags, capacity),
		logger:     NopLogger{},
	}
}

// SetLogger installs l as the diagnostic sink. Passing nil restores the
// no-op default.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.logger = l
}

// UpsertNode inserts or replaces the node at handle h in both the spatial
// index and the flag table.
func (e *Engine) UpsertNode(h Handle, minX, minY, maxX, maxY float32, z int32, flags Flags) {
	start := time.Now()
	e.index.Upsert(h, Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, z)
	e.flags[h] = flags
	e.checkInvariants()
	timedEvent(e.logger, "upsert_node", start, map[string]any{"handle": h})
}

// RemoveNode deletes handle h from both the spatial index and the flag
// table. No-op if h is not present.
func (e *Engine) RemoveNode(h Handle) {
	start := time.Now()
	e.index.Remove(h)
	delete(e.flags, h)
	e.checkInvariants()
	timedEvent(e.logger, "remove_node", start, map[string]any{"handle": h})
}

// SetCamera replaces every camera parameter at once.
func (e *Engine) SetCamera(zoom, panX, panY, viewportW, viewportH, dpr float32) {
	e.Camera.Set(zoom, panX, panY, viewportW, viewportH, dpr)
}

// flagsOf returns the flags for h, or zero if h has no entry.
func (e *Engine) flagsOf(h Handle) Flags {
	return e.flags[h]
}

// CullVisible returns every non-hidden handle whose rectangle intersects
// the camera's visible world bounds.
func (e *Engine) CullVisible() []Handle {
	start := time.Now()
	candidates := e.index.QueryRect(e.Camera.VisibleBounds())
	out := make([]Handle, 0, len(candidates))
	for _, h := range candidates {
		if e.flagsOf(h)&FlagHidden == 0 {
			out = append(out, h)
		}
	}
	timedEvent(e.logger, "cull_visible", start, map[string]any{"result_count": len(out)})
	return out
}

// HitTestPoint returns every non-hidden, non-locked handle whose rectangle
// contains the world point (wx, wy), topmost (highest z-index) first.
func (e *Engine) HitTestPoint(wx, wy float32) []Handle {
	start := time.Now()
	candidates := e.index.QueryPoint(wx, wy)
	out := make([]Handle, 0, len(candidates))
	for _, h := range candidates {
		if e.flagsOf(h)&(FlagHidden|FlagLocked) == 0 {
			out = append(out, h)
		}
	}
	timedEvent(e.logger, "hit_test_point", start, map[string]any{"result_count": len(out)})
	return out
}

// QueryRect returns every handle whose rectangle intersects the given AABB,
// with no flag filtering applied.
func (e *Engine) QueryRect(minX, minY, maxX, maxY float32) []Handle {
	return e.index.QueryRect(Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY})
}

// QueryNear returns every handle within the rectangular neighborhood of
// radius around (wx, wy), with no flag filtering applied.
func (e *Engine) QueryNear(wx, wy, radius float32) []Handle {
	return e.index.QueryNear(wx, wy, radius)
}

// ScreenToWorld converts a screen-space point to world space using the
// current camera.
func (e *Engine) ScreenToWorld(sx, sy float32) (float32, float32) {
	return e.Camera.ScreenToWorld(sx, sy)
}

// WorldToScreen converts a world-space point to screen space using the
// current camera.
func (e *Engine) WorldToScreen(wx, wy float32) (float32, float32) {
	return e.Camera.WorldToScreen(wx, wy)
}

// SnapPoint resolves (wx, wy) against grid and/or object snap sources; see
// [SnapPoint] (the package function) for the algorithm.
func (e *Engine) SnapPoint(wx, wy, threshold, gridSize float32, gridOn, objOn bool) SnapResult {
	return SnapPoint(e.index, wx, wy, threshold, gridSize, gridOn, objOn)
}

// siblingRects resolves a visible-handle list into rectangles, skipping the
// moving handle itself and any handle with no stored bounds.
func (e *Engine) siblingRects(movingHandle Handle, visible []Handle) []Rect {
	rects := make([]Rect, 0, len(visible))
	for _, h := range visible {
		if h == movingHandle {
			continue
		}
		if r, ok := e.index.GetBounds(h); ok {
			rects = append(rects, r)
		}
	}
	return rects
}

// CalculateAlignmentGuides computes alignment guides between movingHandle
// and the rectangles of visible (movingHandle itself is excluded
// automatically). Returns no guides if movingHandle is not present.
func (e *Engine) CalculateAlignmentGuides(movingHandle Handle, visible []Handle, threshold float32) []AlignmentGuide {
	moving, ok := e.index.GetBounds(movingHandle)
	if !ok {
		return []AlignmentGuide{}
	}
	start := time.Now()
	guides := CalculateAlignmentGuides(moving, e.siblingRects(movingHandle, visible), threshold)
	timedEvent(e.logger, "calculate_alignment_guides", start, map[string]any{"result_count": len(guides)})
	return guides
}

// CalculateSpacingGuides computes spacing guides between movingHandle and
// the rectangles of visible. Returns no guides if movingHandle is not
// present.
func (e *Engine) CalculateSpacingGuides(movingHandle Handle, visible []Handle) []SpacingGuide {
	moving, ok := e.index.GetBounds(movingHandle)
	if !ok {
		return []SpacingGuide{}
	}
	start := time.Now()
	guides := CalculateSpacingGuides(moving, e.siblingRects(movingHandle, visible))
	timedEvent(e.logger, "calculate_spacing_guides", start, map[string]any{"result_count": len(guides)})
	return guides
}

// CalculateDistanceMeasurements computes distance measurements for
// movingHandle against the rectangles of visible, with an optional parent
// fallback. Returns no measurements if movingHandle is not present.
func (e *Engine) CalculateDistanceMeasurements(movingHandle Handle, visible []Handle, parent *ParentBounds) []DistanceMeasurement {
	moving, ok := e.index.GetBounds(movingHandle)
	if !ok {
		return []DistanceMeasurement{}
	}
	start := time.Now()
	measurements := CalculateDistanceMeasurements(moving, e.siblingRects(movingHandle, visible), parent)
	timedEvent(e.logger, "calculate_distance_measurements", start, map[string]any{"result_count": len(measurements)})
	return measurements
}

// GetNodeCount returns the number of live handles.
func (e *Engine) GetNodeCount() int {
	return e.index.Len()
}

// Clear removes every node from the spatial index and the flag table.
func (e *Engine) Clear() {
	start := time.Now()
	e.index.Clear()
	for k := range e.flags {
		delete(e.flags, k)
	}
	e.checkInvariants()
	timedEvent(e.logger, "clear", start, nil)
}
