package geom

import (
	"math"
	"slices"
)

// DefaultSampleCount is the number of segments a path is split into for
// containment tests and area sums.
const DefaultSampleCount = 1000

// Polyshape is one continuous path made of end-to-end connected shapes.
// Derived values are cached and dropped by Touch whenever the path changes.
// A Polyshape is owned by a single goroutine; it performs no locking.
type Polyshape struct {
	shapes []Shape
	tol    float64
	cache  polyshapeCache
}

type indexKey struct {
	samples  int
	cellSize float64
}

type polyshapeCache struct {
	sample   []Point
	sampleN  int
	boundary *Boundary
	index    *SpatialIndex
	indexKey indexKey
}

var _ Shape = (*Polyshape)(nil)

// NewPolyshape builds a path from shapes, reversing any shape whose endpoints
// only meet its predecessor backwards. This pass only looks at neighbouring
// pairs, so shapes arriving from a branching junction may still be left
// discontinuous.
func NewPolyshape(tol float64, shapes ...Shape) *Polyshape {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	p := &Polyshape{shapes: slices.Clone(shapes), tol: tol}
	p.orient()
	return p
}

func (p *Polyshape) orient() {
	if len(p.shapes) < 2 {
		return
	}
	first, second := p.shapes[0], p.shapes[1]
	joinsForward := first.EndPoint().Coincident(second.StartPoint(), p.tol) ||
		first.EndPoint().Coincident(second.EndPoint(), p.tol)
	joinsBackward := first.StartPoint().Coincident(second.StartPoint(), p.tol) ||
		first.StartPoint().Coincident(second.EndPoint(), p.tol)
	if !joinsForward && joinsBackward {
		first.Reverse()
	}
	for i := 1; i < len(p.shapes); i++ {
		prev, cur := p.shapes[i-1], p.shapes[i]
		if cur.StartPoint().Coincident(prev.EndPoint(), p.tol) {
			continue
		}
		if cur.EndPoint().Coincident(prev.EndPoint(), p.tol) {
			cur.Reverse()
		}
	}
}

// Touch drops every cached value. Call it after mutating a child shape
// obtained from Shapes.
func (p *Polyshape) Touch() {
	p.cache = polyshapeCache{}
}

// Shapes returns the child shapes in path order.
func (p *Polyshape) Shapes() []Shape {
	return slices.Clone(p.shapes)
}

// Len returns the number of child shapes.
func (p *Polyshape) Len() int {
	return len(p.shapes)
}

// Tolerance returns the coincidence tolerance the path was built with.
func (p *Polyshape) Tolerance() float64 {
	return p.tol
}

// Append adds shapes to the end of the path.
func (p *Polyshape) Append(shapes ...Shape) {
	p.shapes = append(p.shapes, shapes...)
	p.Touch()
}

func (p *Polyshape) Kind() Kind { return KindPolyshape }

func (p *Polyshape) StartPoint() Point {
	if len(p.shapes) == 0 {
		return Point{}
	}
	return p.shapes[0].StartPoint()
}

func (p *Polyshape) EndPoint() Point {
	if len(p.shapes) == 0 {
		return Point{}
	}
	return p.shapes[len(p.shapes)-1].EndPoint()
}

// IsClosed reports whether the path ends where it starts.
func (p *Polyshape) IsClosed() bool {
	if len(p.shapes) == 0 {
		return false
	}
	return p.StartPoint().Coincident(p.EndPoint(), p.tol)
}

func (p *Polyshape) Boundary() Boundary {
	if p.cache.boundary != nil {
		return *p.cache.boundary
	}
	b := EmptyBoundary()
	for _, s := range p.shapes {
		b = b.Join(s.Boundary())
	}
	p.cache.boundary = &b
	return b
}

func (p *Polyshape) Length() float64 {
	var total float64
	for _, s := range p.shapes {
		total += s.Length()
	}
	return total
}

func (p *Polyshape) Area() (float64, bool) {
	if !p.IsClosed() {
		return 0, false
	}
	return SignedArea(p.Sample(DefaultSampleCount)), true
}

func (p *Polyshape) Orientation() Orientation {
	return OrientationOf(p.Sample(DefaultSampleCount))
}

// MiddlePoint returns the point halfway along the path.
func (p *Polyshape) MiddlePoint() Point {
	pts := p.Sample(DefaultSampleCount)
	half := PolylineLength(pts) / 2
	var walked float64
	for i := 1; i < len(pts); i++ {
		d := pts[i-1].Distance(pts[i])
		if walked+d >= half && d > 0 {
			return pts[i-1].Lerp(pts[i], (half-walked)/d)
		}
		walked += d
	}
	return p.StartPoint()
}

// Sample splits n segments across the children in proportion to their
// length, giving every child at least one segment. The result has n+1
// points unless the path has more children than n.
func (p *Polyshape) Sample(n int) []Point {
	if n < 1 {
		n = 1
	}
	if p.cache.sample != nil && p.cache.sampleN == n {
		return slices.Clone(p.cache.sample)
	}
	if len(p.shapes) == 0 {
		return nil
	}
	counts := p.allocate(n)
	pts := make([]Point, 0, n+1)
	for i, s := range p.shapes {
		sub := s.Sample(counts[i])
		if i > 0 {
			sub = sub[1:]
		}
		pts = append(pts, sub...)
	}
	p.cache.sample = pts
	p.cache.sampleN = n
	return slices.Clone(pts)
}

// allocate distributes n segments over the children by largest remainder.
func (p *Polyshape) allocate(n int) []int {
	counts := make([]int, len(p.shapes))
	lengths := make([]float64, len(p.shapes))
	var total float64
	for i, s := range p.shapes {
		lengths[i] = s.Length()
		total += lengths[i]
	}
	if total <= 0 || n <= len(p.shapes) {
		for i := range counts {
			counts[i] = 1
		}
		if total <= 0 && n > len(p.shapes) {
			counts[0] += n - len(p.shapes)
		}
		return counts
	}
	spare := n - len(p.shapes)
	type rem struct {
		idx  int
		frac float64
	}
	rems := make([]rem, len(p.shapes))
	used := 0
	for i := range p.shapes {
		share := float64(spare) * lengths[i] / total
		whole := int(math.Floor(share))
		counts[i] = 1 + whole
		used += whole
		rems[i] = rem{idx: i, frac: share - float64(whole)}
	}
	slices.SortStableFunc(rems, func(a, b rem) int {
		switch {
		case a.frac > b.frac:
			return -1
		case a.frac < b.frac:
			return 1
		default:
			return 0
		}
	})
	for i := 0; i < spare-used; i++ {
		counts[rems[i%len(rems)].idx]++
	}
	return counts
}

// Index returns the spatial index over the closed sampled outline, building
// it on first use.
func (p *Polyshape) Index(samples int, cellSize float64) *SpatialIndex {
	key := indexKey{samples: samples, cellSize: cellSize}
	if p.cache.index != nil && p.cache.indexKey == key {
		return p.cache.index
	}
	pts := p.Sample(samples)
	if len(pts) > 0 && !pts[0].Coincident(pts[len(pts)-1], p.tol) {
		pts = append(pts, pts[0])
	}
	p.cache.index = NewSpatialIndex(pts, cellSize)
	p.cache.indexKey = key
	return p.cache.index
}

func (p *Polyshape) Transform(t Transform) {
	for _, s := range p.shapes {
		s.Transform(t)
	}
	p.Touch()
}

func (p *Polyshape) Reverse() {
	slices.Reverse(p.shapes)
	for _, s := range p.shapes {
		s.Reverse()
	}
	p.Touch()
}

func (p *Polyshape) Clone() Shape {
	return p.ClonePolyshape()
}

// ClonePolyshape deep-copies the path and its children.
func (p *Polyshape) ClonePolyshape() *Polyshape {
	shapes := make([]Shape, len(p.shapes))
	for i, s := range p.shapes {
		shapes[i] = s.Clone()
	}
	return &Polyshape{shapes: shapes, tol: p.tol}
}
