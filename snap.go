package canvascore

import "math"

// SnapPoint combines grid snapping and object-edge/center snapping within
// threshold to produce a single resolved point.
//
// Grid snapping rounds to the nearest multiple of gridSize on each axis
// independently. Object snapping collects handles within a rectangular
// neighborhood of radius threshold*3 around (wx, wy) — the 3x factor is
// load-bearing: it lets the query reach edges whose center is near (wx, wy)
// even when the query point itself is beyond the edge — and tests three
// candidates per axis (min, center, max) against threshold. Later matches
// overwrite earlier ones on the same axis; iteration order over nearby
// handles is whatever the spatial index returns, an accepted
// non-determinism (any match is a valid snap target, not a specific one).
func SnapPoint(idx *SpatialIndex, wx, wy, threshold, gridSize float32, gridOn, objOn bool) SnapResult {
	x, y := wx, wy
	snapped := false
	count := 0

	if gridOn && gridSize > 0 {
		gx := roundToGrid(wx, gridSize)
		if closeEnough(wx, gx, threshold) {
			x = gx
			snapped = true
			count++
		}
		gy := roundToGrid(wy, gridSize)
		if closeEnough(wy, gy, threshold) {
			y = gy
			snapped = true
			count++
		}
	}

	if objOn {
		for _, h := range idx.QueryNear(wx, wy, threshold*3) {
			rect, ok := idx.GetBounds(h)
			if !ok {
				continue
			}
			for _, cand := range [3]float32{rect.MinX, rect.CenterX(), rect.MaxX} {
				if closeEnough(wx, cand, threshold) {
					x = cand
					snapped = true
					count++
				}
			}
			for _, cand := range [3]float32{rect.MinY, rect.CenterY(), rect.MaxY} {
				if closeEnough(wy, cand, threshold) {
					y = cand
					snapped = true
					count++
				}
			}
		}
	}

	return SnapResult{Snapped: snapped, X: x, Y: y, GuideCount: count}
}

// roundToGrid rounds v to the nearest multiple of gridSize.
func roundToGrid(v, gridSize float32) float32 {
	return float32(math.Round(float64(v/gridSize))) * gridSize
}
