package canvascore

import "testing"

func TestAlignmentGuidesEdgeMatch(t *testing.T) {
	moving := Rect{MinX: 10, MinY: 0, MaxX: 110, MaxY: 50}
	sibling := Rect{MinX: 10, MinY: 200, MaxX: 110, MaxY: 250}

	guides := CalculateAlignmentGuides(moving, []Rect{sibling}, 1)
	if len(guides) == 0 {
		t.Fatal("expected at least one alignment guide")
	}
	found := false
	for _, g := range guides {
		if g.Axis == AxisVertical && g.AlignmentType == AlignEdgeLeft && g.Position == moving.MinX {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a vertical EDGE_LEFT guide at moving.MinX=%v, got %+v", moving.MinX, guides)
	}
}

func TestAlignmentGuidesDedupAndCount(t *testing.T) {
	moving := Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
	a := Rect{MinX: 0, MinY: 500, MaxX: 100, MaxY: 600}
	b := Rect{MinX: 0, MinY: 900, MaxX: 100, MaxY: 1000}

	guides := CalculateAlignmentGuides(moving, []Rect{a, b}, 1)
	var leftGuides []AlignmentGuide
	for _, g := range guides {
		if g.Axis == AxisVertical && g.Position == moving.MinX {
			leftGuides = append(leftGuides, g)
		}
	}
	if len(leftGuides) != 1 {
		t.Fatalf("expected exactly one collapsed guide at x=%v, got %d: %+v", moving.MinX, len(leftGuides), leftGuides)
	}
	if leftGuides[0].Count != 2 {
		t.Errorf("Count = %d, want 2 (matched against both siblings)", leftGuides[0].Count)
	}
}

func TestAlignmentGuidesPositionIsMovingSide(t *testing.T) {
	// Quirk: moving.left aligned to sibling.right still reports moving.left.
	moving := Rect{MinX: 100, MinY: 0, MaxX: 200, MaxY: 100}
	sibling := Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}

	guides := CalculateAlignmentGuides(moving, []Rect{sibling}, 1)
	found := false
	for _, g := range guides {
		if g.Position == moving.MinX {
			found = true
		}
		if g.Position == sibling.MaxX && sibling.MaxX != moving.MinX {
			t.Errorf("guide reported sibling coordinate %v instead of moving coordinate", g.Position)
		}
	}
	if !found {
		t.Errorf("expected guide position at moving.MinX=%v, got %+v", moving.MinX, guides)
	}
}

func TestAlignmentGuidesNoMatchBeyondThreshold(t *testing.T) {
	moving := Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
	sibling := Rect{MinX: 50, MinY: 500, MaxX: 150, MaxY: 600}

	guides := CalculateAlignmentGuides(moving, []Rect{sibling}, 1)
	if len(guides) != 0 {
		t.Errorf("expected no guides beyond threshold, got %+v", guides)
	}
}

func TestSpacingGuidesEqualGapDetected(t *testing.T) {
	a := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	b := Rect{MinX: 20, MinY: 0, MaxX: 30, MaxY: 10}
	moving := Rect{MinX: 40, MinY: 0, MaxX: 50, MaxY: 10}

	guides := CalculateSpacingGuides(moving, []Rect{a, b})

	found := false
	for _, g := range guides {
		if g.Spacing == 10 && g.Axis == SpacingHorizontal {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a horizontal spacing guide with spacing=10, got %+v", guides)
	}
}

func TestSpacingGuidesBitExactOnly(t *testing.T) {
	a := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	b := Rect{MinX: 20, MinY: 0, MaxX: 30.0001, MaxY: 10}
	moving := Rect{MinX: 40, MinY: 0, MaxX: 50, MaxY: 10}

	// Sibling-pair gap is 10.0 (20 - 10); moving-to-b gap is 40-30.0001 =
	// 9.9999, not bit-identical to 10.0 -> no guide.
	guides := CalculateSpacingGuides(moving, []Rect{a, b})
	for _, g := range guides {
		if g.Spacing == 10 {
			t.Errorf("expected no bit-exact match, got %+v", g)
		}
	}
}

func TestSpacingGuidesNoneWhenNoMatch(t *testing.T) {
	a := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	moving := Rect{MinX: 100, MinY: 0, MaxX: 110, MaxY: 10}

	guides := CalculateSpacingGuides(moving, []Rect{a})
	if len(guides) != 0 {
		t.Errorf("expected no guides with a single sibling (no sibling-pair gap to match), got %+v", guides)
	}
}

func TestDistanceMeasurementsNearestSide(t *testing.T) {
	moving := Rect{MinX: 100, MinY: 100, MaxX: 200, MaxY: 200}
	sibling := Rect{MinX: 0, MinY: 100, MaxX: 50, MaxY: 200}

	measurements := CalculateDistanceMeasurements(moving, []Rect{sibling}, nil)

	found := false
	for _, m := range measurements {
		if m.Direction == DirectionHorizontal && m.Distance == 50 &&
			m.FromX == 100 && m.FromY == 150 && m.ToX == 50 && m.ToY == 150 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected left-side measurement distance=50 from (100,150) to (50,150), got %+v", measurements)
	}
}

func TestDistanceMeasurementsTiedSiblings(t *testing.T) {
	moving := Rect{MinX: 100, MinY: 100, MaxX: 200, MaxY: 200}
	// Both siblings 10 units to the left, sharing the facing edge x=90; the
	// tie still yields a left measurement to that edge.
	first := Rect{MinX: 0, MinY: 100, MaxX: 90, MaxY: 200}
	second := Rect{MinX: 0, MinY: 120, MaxX: 90, MaxY: 210}

	measurements := CalculateDistanceMeasurements(moving, []Rect{first, second}, nil)
	for _, m := range measurements {
		if m.Direction == DirectionHorizontal && m.ToX == first.MaxX {
			return
		}
	}
	t.Errorf("expected a left measurement to the tied facing edge x=%v, got %+v", first.MaxX, measurements)
}

func TestDistanceMeasurementsContainerExcluded(t *testing.T) {
	moving := Rect{MinX: 100, MinY: 100, MaxX: 200, MaxY: 200}
	container := Rect{MinX: 0, MinY: 0, MaxX: 1000, MaxY: 1000}

	measurements := CalculateDistanceMeasurements(moving, []Rect{container}, nil)
	if len(measurements) != 0 {
		t.Errorf("container should be excluded from all four searches, got %+v", measurements)
	}
}

func TestDistanceMeasurementsParentFallback(t *testing.T) {
	moving := Rect{MinX: 100, MinY: 100, MaxX: 200, MaxY: 200}
	parent := &ParentBounds{X: 0, Y: 0, Width: 500, Height: 500}

	measurements := CalculateDistanceMeasurements(moving, nil, parent)
	found := false
	for _, m := range measurements {
		if m.Direction == DirectionHorizontal && m.ToX == 0 && m.Distance == 100 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected parent-edge fallback on the left side, got %+v", measurements)
	}
}

func TestDistanceMeasurementsParentFallbackSkippedWhenNonPositive(t *testing.T) {
	moving := Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
	parent := &ParentBounds{X: 0, Y: 0, Width: 500, Height: 500}

	measurements := CalculateDistanceMeasurements(moving, nil, parent)
	for _, m := range measurements {
		if m.Direction == DirectionHorizontal && m.ToX == parent.X {
			t.Errorf("expected no left measurement when distance to parent edge is zero, got %+v", m)
		}
	}
}
