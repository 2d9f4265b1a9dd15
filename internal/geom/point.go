// Package geom holds the 2D shape model used by the cut planner: primitive
// shapes, composite paths, containment tests and chain building.
package geom

import "math"

// DefaultTolerance is the distance below which two points are coincident.
const DefaultTolerance = 0.005

// DefaultPrecision is the number of decimal places kept when rounding output coordinates.
const DefaultPrecision = 3

// Point represents a 2D coordinate in drawing units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Mul scales p by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of p and o taken as vectors.
func (p Point) Dot(o Point) float64 {
	return p.X*o.X + p.Y*o.Y
}

// Cross returns the z component of the cross product of p and o.
func (p Point) Cross(o Point) float64 {
	return p.X*o.Y - p.Y*o.X
}

// Hypot returns the length of p taken as a vector.
func (p Point) Hypot() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the euclidean distance between p and o.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Unit returns p scaled to length 1, or the zero vector for a zero-length p.
func (p Point) Unit() Point {
	l := p.Hypot()
	if l < 1e-12 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Perp returns p rotated 90 degrees counter-clockwise.
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Lerp interpolates between p (t=0) and o (t=1).
func (p Point) Lerp(o Point, t float64) Point {
	return Point{X: p.X + (o.X-p.X)*t, Y: p.Y + (o.Y-p.Y)*t}
}

// Coincident reports whether p and o are within tol of each other.
func (p Point) Coincident(o Point, tol float64) bool {
	return p.Distance(o) <= tol
}

// Round rounds both coordinates to the given number of decimal places.
func (p Point) Round(precision int) Point {
	f := math.Pow(10, float64(precision))
	return Point{X: math.Round(p.X*f) / f, Y: math.Round(p.Y*f) / f}
}

// Transform applies t to p.
func (p Point) Transform(t Transform) Point {
	return t.Apply(p)
}

// polarPoint returns the point at angle a on the circle around c with radius r.
func polarPoint(c Point, r, a float64) Point {
	return Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
}
