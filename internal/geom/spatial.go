package geom

import (
	"math"
	"slices"
)

// DefaultCellSize is the edge length of a spatial index grid cell.
const DefaultCellSize = 100.0

// Segment is a straight piece of a sampled outline.
type Segment struct {
	A Point
	B Point
}

// Boundary returns the bounding box of the segment.
func (s Segment) Boundary() Boundary {
	return EmptyBoundary().Extend(s.A).Extend(s.B)
}

type cellKey struct {
	x, y int
}

// SpatialIndex is a uniform grid over the segments of a polyline. Each
// segment is registered in every cell its bounding box overlaps.
type SpatialIndex struct {
	cellSize float64
	segments []Segment
	cells    map[cellKey][]int
}

// NewSpatialIndex indexes the segments between consecutive points.
func NewSpatialIndex(pts []Point, cellSize float64) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	idx := &SpatialIndex{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int),
	}
	for i := 1; i < len(pts); i++ {
		seg := Segment{A: pts[i-1], B: pts[i]}
		n := len(idx.segments)
		idx.segments = append(idx.segments, seg)
		idx.eachCell(seg.Boundary(), func(k cellKey) {
			idx.cells[k] = append(idx.cells[k], n)
		})
	}
	return idx
}

func (s *SpatialIndex) cell(v float64) int {
	return int(math.Floor(v / s.cellSize))
}

func (s *SpatialIndex) eachCell(b Boundary, fn func(cellKey)) {
	x0, x1 := s.cell(b.Min.X), s.cell(b.Max.X)
	y0, y1 := s.cell(b.Min.Y), s.cell(b.Max.Y)
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			fn(cellKey{x, y})
		}
	}
}

// Len returns the number of indexed segments.
func (s *SpatialIndex) Len() int {
	return len(s.segments)
}

// Segment returns the i-th indexed segment.
func (s *SpatialIndex) Segment(i int) Segment {
	return s.segments[i]
}

// Query returns the sorted, de-duplicated indices of segments registered in
// any cell overlapping b.
func (s *SpatialIndex) Query(b Boundary) []int {
	if b.IsEmpty() {
		return nil
	}
	seen := make(map[int]bool)
	var out []int
	s.eachCell(b, func(k cellKey) {
		for _, i := range s.cells[k] {
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
		}
	})
	slices.Sort(out)
	return out
}

// Intersects reports whether seg touches or crosses any indexed segment.
func (s *SpatialIndex) Intersects(seg Segment) bool {
	for _, i := range s.Query(seg.Boundary()) {
		o := s.segments[i]
		if SegmentsIntersect(seg.A, seg.B, o.A, o.B) {
			return true
		}
	}
	return false
}

const intersectEpsilon = 1e-9

func orient(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

func onSegment(a, b, p Point) bool {
	return p.X >= math.Min(a.X, b.X)-intersectEpsilon && p.X <= math.Max(a.X, b.X)+intersectEpsilon &&
		p.Y >= math.Min(a.Y, b.Y)-intersectEpsilon && p.Y <= math.Max(a.Y, b.Y)+intersectEpsilon
}

func sign(v float64) int {
	switch {
	case v > intersectEpsilon:
		return 1
	case v < -intersectEpsilon:
		return -1
	default:
		return 0
	}
}

// SegmentsIntersect reports whether segments a1-a2 and b1-b2 share at least
// one point. Touching endpoints count as an intersection.
func SegmentsIntersect(a1, a2, b1, b2 Point) bool {
	d1 := sign(orient(b1, b2, a1))
	d2 := sign(orient(b1, b2, a2))
	d3 := sign(orient(a1, a2, b1))
	d4 := sign(orient(a1, a2, b2))
	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	switch {
	case d1 == 0 && onSegment(b1, b2, a1):
		return true
	case d2 == 0 && onSegment(b1, b2, a2):
		return true
	case d3 == 0 && onSegment(a1, a2, b1):
		return true
	case d4 == 0 && onSegment(a1, a2, b2):
		return true
	}
	return false
}

// PointInRing reports whether p lies inside the ring using an even-odd ray cast.
func PointInRing(p Point, ring []Point) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
