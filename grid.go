package canvascore

import (
	"math"
	"sort"
)

// gridCellSize is the fixed cell size (world units) used by SpatialIndex.
// Empirical midpoint between per-node insertion cost (small cells -> many
// cells per node) and per-query cost (large cells -> many false-positive
// candidates); not tunable at runtime.
const gridCellSize float32 = 256

// cellCoord is an integer grid-cell coordinate.
type cellCoord struct {
	cx, cy int32
}

// nodeData is the record stored per live handle.
type nodeData struct {
	rect Rect
	z    int32
}

// SpatialIndex is a uniform-grid hash spatial index. Each node is stored
// once in a primary table keyed by [Handle] and replicated as a
// handle-membership entry in every grid cell its rectangle overlaps.
//
// SpatialIndex is not safe for concurrent use.
type SpatialIndex struct {
	nodes map[Handle]nodeData
	grid  map[cellCoord][]Handle
}

// NewSpatialIndex creates an index pre-sized for capacity live nodes.
func NewSpatialIndex(capacity int) *SpatialIndex {
	if capacity < 0 {
		capacity = 0
	}
	return &SpatialIndex{
		nodes: make(map[Handle]nodeData, capacity),
		grid:  make(map[cellCoord][]Handle, capacity*4),
	}
}

// cellOf returns the integer cell coordinate containing world point (x, y).
// Floor biases boundary points consistently: a point exactly on a cell edge
// maps to the cell whose min edge it is (the higher cell).
func cellOf(x, y float32) cellCoord {
	return cellCoord{
		cx: int32(math.Floor(float64(x) / float64(gridCellSize))),
		cy: int32(math.Floor(float64(y) / float64(gridCellSize))),
	}
}

// cellsFor enumerates every cell rect overlaps, inclusive of the max edge.
func cellsFor(rect Rect) []cellCoord {
	minC := cellOf(rect.MinX, rect.MinY)
	maxC := cellOf(rect.MaxX, rect.MaxY)

	cells := make([]cellCoord, 0, int(maxC.cx-minC.cx+1)*int(maxC.cy-minC.cy+1))
	for cy := minC.cy; cy <= maxC.cy; cy++ {
		for cx := minC.cx; cx <= maxC.cx; cx++ {
			cells = append(cells, cellCoord{cx, cy})
		}
	}
	return cells
}

// Upsert inserts or replaces the node at handle h. An existing entry is
// removed first so stale cell memberships never linger; a double-upsert
// with an identical rectangle is equivalent to a single upsert.
func (s *SpatialIndex) Upsert(h Handle, rect Rect, z int32) {
	if _, ok := s.nodes[h]; ok {
		s.Remove(h)
	}
	s.nodes[h] = nodeData{rect: rect, z: z}
	for _, c := range cellsFor(rect) {
		s.grid[c] = append(s.grid[c], h)
	}
}

// Remove deletes handle h from the index, evicting any cell left empty.
// No-op if h is not present.
func (s *SpatialIndex) Remove(h Handle) {
	nd, ok := s.nodes[h]
	if !ok {
		return
	}
	delete(s.nodes, h)

	for _, c := range cellsFor(nd.rect) {
		list := s.grid[c]
		for i, hh := range list {
			if hh == h {
				list = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(list) == 0 {
			delete(s.grid, c)
		} else {
			s.grid[c] = list
		}
	}
}

// QueryPoint returns every handle whose rectangle contains (x, y), using
// closed intervals, sorted by descending z-index (topmost first). Ties on
// z-index preserve cell-list order, which is stable within a single run.
func (s *SpatialIndex) QueryPoint(x, y float32) []Handle {
	list := s.grid[cellOf(x, y)]
	if len(list) == 0 {
		return []Handle{}
	}

	type hit struct {
		h Handle
		z int32
	}
	hits := make([]hit, 0, len(list))
	for _, h := range list {
		nd, ok := s.nodes[h]
		if !ok {
			continue
		}
		if nd.rect.Contains(x, y) {
			hits = append(hits, hit{h: h, z: nd.z})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].z > hits[j].z })

	out := make([]Handle, len(hits))
	for i, hh := range hits {
		out[i] = hh.h
	}
	return out
}

// QueryRect returns every handle whose rectangle intersects q, deduplicated
// (a multi-cell node is only ever reported once), in unspecified order.
func (s *SpatialIndex) QueryRect(q Rect) []Handle {
	cells := cellsFor(q)
	seen := make(map[Handle]struct{}, len(cells)*2)
	out := make([]Handle, 0, len(cells)*2)

	for _, c := range cells {
		for _, h := range s.grid[c] {
			if _, dup := seen[h]; dup {
				continue
			}
			nd, ok := s.nodes[h]
			if !ok {
				continue
			}
			if nd.rect.Intersects(q) {
				seen[h] = struct{}{}
				out = append(out, h)
			}
		}
	}
	return out
}

// QueryNear is a rectangular approximation of a radius query: it returns
// QueryRect over the square [x-radius, y-radius, x+radius, y+radius].
func (s *SpatialIndex) QueryNear(x, y, radius float32) []Handle {
	return s.QueryRect(Rect{MinX: x - radius, MinY: y - radius, MaxX: x + radius, MaxY: y + radius})
}

// GetBounds returns the rectangle stored for h, or false if h is not present.
func (s *SpatialIndex) GetBounds(h Handle) (Rect, bool) {
	nd, ok := s.nodes[h]
	if !ok {
		return Rect{}, false
	}
	return nd.rect, true
}

// Len returns the number of live handles.
func (s *SpatialIndex) Len() int {
	return len(s.nodes)
}

// Clear removes every node and every grid cell.
func (s *SpatialIndex) Clear() {
	for k := range s.nodes {
		delete(s.nodes, k)
	}
	for k := range s.grid {
		delete(s.grid, k)
	}
}
