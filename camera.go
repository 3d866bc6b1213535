package canvascore

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera is a pure functional view transform between screen space and
// world space, plus (as an additive convenience beyond the core transform,
// see SPEC_FULL.md §8) camera-follow and scroll-to animation.
//
//	world = (screen - viewport_center) / zoom + pan
//	screen = (world - pan) * zoom + viewport_center
//
// Zero value is not usable; construct with [NewCamera].
type Camera struct {
	Zoom       float32
	PanX, PanY float32
	ViewportW  float32
	ViewportH  float32
	DPR        float32 // device-pixel ratio; stored, never enters either transform

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	followTarget FollowTarget
	followOffX   float32
	followOffY   float32
	followLerp   float32

	scroll *scrollAnim
}

// scrollAnim holds the active scroll-to tween for PanX/PanY.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// FollowTarget is implemented by a host-owned object whose world position
// a [Camera] can track via [Camera.Follow]. canvascore never interprets
// anything about the target beyond its position.
type FollowTarget interface {
	Position() (x, y float32)
}

// NewCamera creates a Camera with the spec defaults: zoom=1, pan=(0,0),
// viewport=800x600, dpr=1.
func NewCamera() *Camera {
	return &Camera{
		Zoom:      1,
		ViewportW: 800,
		ViewportH: 600,
		DPR:       1,
		dirty:     true,
	}
}

// Set replaces every camera parameter at once, as the engine facade's
// SetCamera does.
func (c *Camera) Set(zoom, panX, panY, viewportW, viewportH, dpr float32) {
	c.Zoom = zoom
	c.PanX = panX
	c.PanY = panY
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.DPR = dpr
	c.dirty = true
}

// MarkDirty forces recomputation of the cached view matrix on next use.
func (c *Camera) MarkDirty() { c.dirty = true }

// computeViewMatrix rebuilds the cached affine matrix [a, b, c, d, tx, ty]
// if dirty. canvascore's camera carries no rotation/skew term (unlike the
// general affine camera this was adapted from), so b = c = 0 always; the
// matrix shape is kept anyway so VisibleBounds and ScreenToWorld share one
// code path with a general affine inverse.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	cx := float64(c.ViewportW) / 2
	cy := float64(c.ViewportH) / 2
	z := float64(c.Zoom)

	// screen = (world - pan) * zoom + center
	//        = z*world - z*pan + center
	a := z
	d := z
	tx := cx - z*float64(c.PanX)
	ty := cy - z*float64(c.PanY)

	c.viewMatrix = [6]float64{a, 0, 0, d, tx, ty}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// invertAffine computes the inverse of a 2D affine matrix [a,b,c,d,tx,ty].
// Returns the identity matrix if the matrix is singular (e.g. zoom == 0) —
// the spec leaves zero-zoom behavior undefined for the caller, not a crash
// for the core.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return [6]float64{1, 0, 0, 1, 0, 0}
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	cc := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, cc, d,
		-(a*m[4] + cc*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies affine matrix m to point (x, y).
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// WorldToScreen converts a world-space point to screen space.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	m := c.computeViewMatrix()
	x, y := transformPoint(m, float64(wx), float64(wy))
	return float32(x), float32(y)
}

// ScreenToWorld converts a screen-space point to world space.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	c.computeViewMatrix()
	x, y := transformPoint(c.invViewMatrix, float64(sx), float64(sy))
	return float32(x), float32(y)
}

// VisibleBounds returns the world-space AABB of the camera's viewport,
// i.e. (ScreenToWorld(0,0), ScreenToWorld(ViewportW, ViewportH)). Not
// clamped to any finite range.
func (c *Camera) VisibleBounds() Rect {
	minX, minY := c.ScreenToWorld(0, 0)
	maxX, maxY := c.ScreenToWorld(c.ViewportW, c.ViewportH)
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// Follow makes the camera track a target's world position with the given
// offset and per-update lerp factor (1.0 snaps immediately, lower values
// smooth the chase). Call [Camera.Update] once per host tick to advance it.
func (c *Camera) Follow(target FollowTarget, offsetX, offsetY, lerp float32) {
	c.followTarget = target
	c.followOffX = offsetX
	c.followOffY = offsetY
	c.followLerp = lerp
}

// Unfollow stops tracking the current follow target.
func (c *Camera) Unfollow() { c.followTarget = nil }

// ScrollTo animates PanX/PanY to (x, y) over duration seconds using easeFn.
// Call [Camera.Update] once per host tick to advance it.
func (c *Camera) ScrollTo(x, y, duration float32, easeFn ease.TweenFunc) {
	c.scroll = &scrollAnim{
		tweenX: gween.New(c.PanX, x, duration, easeFn),
		tweenY: gween.New(c.PanY, y, duration, easeFn),
	}
}

// Update advances follow tracking and any in-flight ScrollTo animation by
// dt seconds. It is the only source of camera mutation beyond Set; the
// pure ScreenToWorld/WorldToScreen/VisibleBounds transforms are untouched
// by it and remain exact functions of current state.
func (c *Camera) Update(dt float32) {
	prevX, prevY, prevZoom := c.PanX, c.PanY, c.Zoom

	if c.followTarget != nil {
		tx, ty := c.followTarget.Position()
		c.PanX += (tx + c.followOffX - c.PanX) * c.followLerp
		c.PanY += (ty + c.followOffY - c.PanY) * c.followLerp
	}

	if c.scroll != nil {
		if !c.scroll.doneX {
			v, done := c.scroll.tweenX.Update(dt)
			c.PanX = v
			c.scroll.doneX = done
		}
		if !c.scroll.doneY {
			v, done := c.scroll.tweenY.Update(dt)
			c.PanY = v
			c.scroll.doneY = done
		}
		if c.scroll.doneX && c.scroll.doneY {
			c.scroll = nil
		}
	}

	if c.PanX != prevX || c.PanY != prevY || c.Zoom != prevZoom {
		c.dirty = true
	}
}
