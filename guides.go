package canvascore

import "math"

// alignKey dedups alignment guides by (axis, bit-exact moving coordinate),
// so that coincident alignments against different siblings collapse into a
// single guide, as spec.md §4.3.1 requires.
type alignKey struct {
	axis Axis
	bits uint32
}

// closeEnough reports whether a and b differ by strictly less than
// threshold.
func closeEnough(a, b, threshold float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < threshold
}

// CalculateAlignmentGuides tests five candidate alignments per axis between
// moving and each of siblings: edge-to-edge (both same-side and
// opposite-side) and center-to-center. Guides are keyed by the moving
// node's own coordinate at the aligned edge, so identical positions across
// multiple siblings collapse into one guide with an incremented match
// count.
//
// The recorded Position is always the moving node's coordinate, never the
// sibling's or a midpoint, and AlignmentType records only the first kind
// observed at a given key — both are quirks carried forward unchanged from
// the original implementation (see DESIGN.md).
func CalculateAlignmentGuides(moving Rect, siblings []Rect, threshold float32) []AlignmentGuide {
	index := make(map[alignKey]int)
	guides := make([]AlignmentGuide, 0)

	record := func(axis Axis, position float32, kind AlignmentType) {
		key := alignKey{axis: axis, bits: math.Float32bits(position)}
		if i, ok := index[key]; ok {
			guides[i].Count++
			return
		}
		index[key] = len(guides)
		guides = append(guides, AlignmentGuide{Axis: axis, Position: position, AlignmentType: kind, Count: 1})
	}

	for _, sib := range siblings {
		if closeEnough(moving.MinX, sib.MinX, threshold) {
			record(AxisVertical, moving.MinX, AlignEdgeLeft)
		}
		if closeEnough(moving.MaxX, sib.MaxX, threshold) {
			record(AxisVertical, moving.MaxX, AlignEdgeRight)
		}
		if closeEnough(moving.CenterX(), sib.CenterX(), threshold) {
			record(AxisVertical, moving.CenterX(), AlignCenterX)
		}
		if closeEnough(moving.MinX, sib.MaxX, threshold) {
			record(AxisVertical, moving.MinX, AlignEdgeLeft)
		}
		if closeEnough(moving.MaxX, sib.MinX, threshold) {
			record(AxisVertical, moving.MaxX, AlignEdgeRight)
		}

		if closeEnough(moving.MinY, sib.MinY, threshold) {
			record(AxisHorizontal, moving.MinY, AlignEdgeTop)
		}
		if closeEnough(moving.MaxY, sib.MaxY, threshold) {
			record(AxisHorizontal, moving.MaxY, AlignEdgeBottom)
		}
		if closeEnough(moving.CenterY(), sib.CenterY(), threshold) {
			record(AxisHorizontal, moving.CenterY(), AlignCenterY)
		}
		if closeEnough(moving.MinY, sib.MaxY, threshold) {
			record(AxisHorizontal, moving.MinY, AlignEdgeTop)
		}
		if closeEnough(moving.MaxY, sib.MinY, threshold) {
			record(AxisHorizontal, moving.MaxY, AlignEdgeBottom)
		}
	}

	return guides
}

// CalculateSpacingGuides detects equal horizontal or vertical gaps between
// moving and a sibling, matching an existing sibling-to-sibling gap of the
// same magnitude. Equality is bit-exact on the IEEE-754 single-precision
// representation, not threshold-based: equal spacing arises from a user
// typing identical separations, which yield identical floats.
func CalculateSpacingGuides(moving Rect, siblings []Rect) []SpacingGuide {
	hGaps := make(map[uint32]struct{})
	vGaps := make(map[uint32]struct{})

	for i, a := range siblings {
		for j, b := range siblings {
			if i == j {
				continue
			}
			if b.MinX > a.MaxX {
				hGaps[math.Float32bits(b.MinX-a.MaxX)] = struct{}{}
			}
			if b.MinY > a.MaxY {
				vGaps[math.Float32bits(b.MinY-a.MaxY)] = struct{}{}
			}
		}
	}

	guides := make([]SpacingGuide, 0)
	for _, n := range siblings {
		if n.MinX > moving.MaxX {
			g := n.MinX - moving.MaxX
			if _, ok := hGaps[math.Float32bits(g)]; ok {
				guides = append(guides, SpacingGuide{Axis: SpacingHorizontal, From: moving, To: n, Spacing: g})
			}
		}
		if moving.MinX > n.MaxX {
			g := moving.MinX - n.MaxX
			if _, ok := hGaps[math.Float32bits(g)]; ok {
				guides = append(guides, SpacingGuide{Axis: SpacingHorizontal, From: n, To: moving, Spacing: g})
			}
		}
		if n.MinY > moving.MaxY {
			g := n.MinY - moving.MaxY
			if _, ok := vGaps[math.Float32bits(g)]; ok {
				guides = append(guides, SpacingGuide{Axis: SpacingVertical, From: moving, To: n, Spacing: g})
			}
		}
		if moving.MinY > n.MaxY {
			g := moving.MinY - n.MaxY
			if _, ok := vGaps[math.Float32bits(g)]; ok {
				guides = append(guides, SpacingGuide{Axis: SpacingVertical, From: n, To: moving, Spacing: g})
			}
		}
	}
	return guides
}

// CalculateDistanceMeasurements finds the nearest sibling on each of the
// four sides of moving, falling back to the corresponding parent edge when
// no sibling neighbor exists and the fallback distance is strictly
// positive. Siblings whose rectangle fully contains moving are excluded
// from all four searches — they represent a parent/group, not a
// measurable neighbor.
func CalculateDistanceMeasurements(moving Rect, siblings []Rect, parent *ParentBounds) []DistanceMeasurement {
	out := make([]DistanceMeasurement, 0, 4)
	midX, midY := moving.CenterX(), moving.CenterY()

	type best struct {
		idx  int
		dist float32
	}
	pickBest := func(ok func(s Rect) bool, dist func(s Rect) float32) best {
		b := best{idx: -1}
		for i, s := range siblings {
			if s.ContainsRect(moving) {
				continue
			}
			if !ok(s) {
				continue
			}
			d := dist(s)
			if b.idx == -1 || d < b.dist {
				b = best{idx: i, dist: d}
			}
		}
		return b
	}

	// Left
	if b := pickBest(
		func(s Rect) bool { return s.MaxX <= moving.MinX },
		func(s Rect) float32 { return moving.MinX - s.MaxX },
	); b.idx >= 0 {
		s := siblings[b.idx]
		out = append(out, DistanceMeasurement{Direction: DirectionHorizontal, FromX: moving.MinX, FromY: midY, ToX: s.MaxX, ToY: midY, Distance: b.dist})
	} else if parent != nil {
		p := parent.toRect()
		if d := moving.MinX - p.MinX; d > 0 {
			out = append(out, DistanceMeasurement{Direction: DirectionHorizontal, FromX: moving.MinX, FromY: midY, ToX: p.MinX, ToY: midY, Distance: d})
		}
	}

	// Right
	if b := pickBest(
		func(s Rect) bool { return s.MinX >= moving.MaxX },
		func(s Rect) float32 { return s.MinX - moving.MaxX },
	); b.idx >= 0 {
		s := siblings[b.idx]
		out = append(out, DistanceMeasurement{Direction: DirectionHorizontal, FromX: moving.MaxX, FromY: midY, ToX: s.MinX, ToY: midY, Distance: b.dist})
	} else if parent != nil {
		p := parent.toRect()
		if d := p.MaxX - moving.MaxX; d > 0 {
			out = append(out, DistanceMeasurement{Direction: DirectionHorizontal, FromX: moving.MaxX, FromY: midY, ToX: p.MaxX, ToY: midY, Distance: d})
		}
	}

	// Top
	if b := pickBest(
		func(s Rect) bool { return s.MaxY <= moving.MinY },
		func(s Rect) float32 { return moving.MinY - s.MaxY },
	); b.idx >= 0 {
		s := siblings[b.idx]
		out = append(out, DistanceMeasurement{Direction: DirectionVertical, FromX: midX, FromY: moving.MinY, ToX: midX, ToY: s.MaxY, Distance: b.dist})
	} else if parent != nil {
		p := parent.toRect()
		if d := moving.MinY - p.MinY; d > 0 {
			out = append(out, DistanceMeasurement{Direction: DirectionVertical, FromX: midX, FromY: moving.MinY, ToX: midX, ToY: p.MinY, Distance: d})
		}
	}

	// Bottom
	if b := pickBest(
		func(s Rect) bool { return s.MinY >= moving.MaxY },
		func(s Rect) float32 { return s.MinY - moving.MaxY },
	); b.idx >= 0 {
		s := siblings[b.idx]
		out = append(out, DistanceMeasurement{Direction: DirectionVertical, FromX: midX, FromY: moving.MaxY, ToX: midX, ToY: s.MinY, Distance: b.dist})
	} else if parent != nil {
		p := parent.toRect()
		if d := p.MaxY - moving.MaxY; d > 0 {
			out = append(out, DistanceMeasurement{Direction: DirectionVertical, FromX: midX, FromY: moving.MaxY, ToX: midX, ToY: p.MaxY, Distance: d})
		}
	}

	return out
}
