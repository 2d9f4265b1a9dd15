package geom

import "math"

// Boundary is an axis-aligned bounding box.
type Boundary struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// EmptyBoundary returns a boundary that contains nothing and acts as the
// identity for Join.
func EmptyBoundary() Boundary {
	return Boundary{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// BoundaryOf returns the bounding box of the given points.
func BoundaryOf(pts []Point) Boundary {
	b := EmptyBoundary()
	for _, p := range pts {
		b = b.Extend(p)
	}
	return b
}

// IsEmpty reports whether b contains no points.
func (b Boundary) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Extend returns b grown to include p.
func (b Boundary) Extend(p Point) Boundary {
	return Boundary{
		Min: Point{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)},
		Max: Point{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)},
	}
}

// Join returns the smallest boundary containing both b and o.
func (b Boundary) Join(o Boundary) Boundary {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Width returns the horizontal extent.
func (b Boundary) Width() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent.
func (b Boundary) Height() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Max.Y - b.Min.Y
}

// Center returns the middle of the box.
func (b Boundary) Center() Point {
	return b.Min.Lerp(b.Max, 0.5)
}

// Contains reports whether o lies inside b (edges inclusive).
func (b Boundary) Contains(o Boundary) bool {
	if o.IsEmpty() || b.IsEmpty() {
		return false
	}
	return o.Min.X >= b.Min.X && o.Min.Y >= b.Min.Y &&
		o.Max.X <= b.Max.X && o.Max.Y <= b.Max.Y
}

// Intersects reports whether b and o overlap (edges inclusive).
func (b Boundary) Intersects(o Boundary) bool {
	if o.IsEmpty() || b.IsEmpty() {
		return false
	}
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}
