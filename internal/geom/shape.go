package geom

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOpenShape is returned when an operation needs a closed path.
	ErrOpenShape = errors.New("shape is not closed")
	// ErrUnknownShape is returned for a record with an unrecognised type tag.
	ErrUnknownShape = errors.New("unknown shape type")
)

// Kind tags the concrete variant behind a Shape.
type Kind int

const (
	KindLine Kind = iota
	KindArc
	KindCircle
	KindEllipse
	KindQuadraticCurve
	KindCubicCurve
	KindNurbsCurve
	KindPolyshape
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindArc:
		return "arc"
	case KindCircle:
		return "circle"
	case KindEllipse:
		return "ellipse"
	case KindQuadraticCurve:
		return "quadratic"
	case KindCubicCurve:
		return "cubic"
	case KindNurbsCurve:
		return "nurbs"
	case KindPolyshape:
		return "polyshape"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k := KindLine; k <= KindPolyshape; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Orientation is the winding direction of a shape.
type Orientation int

const (
	Colinear Orientation = iota
	Clockwise
	CounterClockwise
)

func (o Orientation) String() string {
	switch o {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counterclockwise"
	default:
		return "colinear"
	}
}

// MarshalText encodes the orientation by name.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (o *Orientation) UnmarshalText(text []byte) error {
	for _, c := range []Orientation{Colinear, Clockwise, CounterClockwise} {
		if c.String() == string(text) {
			*o = c
			return nil
		}
	}
	return fmt.Errorf("unknown orientation %q", text)
}

// Reverse returns the opposite winding. Colinear stays colinear.
func (o Orientation) Reverse() Orientation {
	switch o {
	case Clockwise:
		return CounterClockwise
	case CounterClockwise:
		return Clockwise
	default:
		return Colinear
	}
}

// Shape is the contract every drawing primitive satisfies. Transform and
// Reverse mutate the receiver.
type Shape interface {
	Kind() Kind
	StartPoint() Point
	EndPoint() Point
	Boundary() Boundary
	Orientation() Orientation
	Length() float64
	// Area returns the signed enclosed area (positive counter-clockwise)
	// and false when the shape is not closed.
	Area() (float64, bool)
	// Sample returns n+1 points from StartPoint to EndPoint inclusive.
	Sample(n int) []Point
	Transform(t Transform)
	Reverse()
	Clone() Shape
}

// lengthSamples is the sample count used to integrate curve lengths and
// bounds numerically.
const lengthSamples = 256

// IsClosed reports whether s starts where it ends.
func IsClosed(s Shape, tol float64) bool {
	return s.StartPoint().Coincident(s.EndPoint(), tol)
}

// SignedArea is the shoelace sum over a ring; the ring is closed implicitly.
func SignedArea(pts []Point) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pts[i].Cross(pts[j])
	}
	return sum / 2
}

// OrientationOf derives the winding of a point sequence from its signed area.
func OrientationOf(pts []Point) Orientation {
	a := SignedArea(pts)
	switch {
	case math.Abs(a) < 1e-12:
		return Colinear
	case a > 0:
		return CounterClockwise
	default:
		return Clockwise
	}
}

// PolylineLength sums the distances between consecutive points.
func PolylineLength(pts []Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Distance(pts[i])
	}
	return total
}

// sampleParam evaluates f at n+1 evenly spaced parameters in [0, 1] and pins
// the first and last points to the exact endpoints.
func sampleParam(n int, start, end Point, f func(t float64) Point) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = f(float64(i) / float64(n))
	}
	pts[0] = start
	pts[n] = end
	return pts
}

// closedArea computes the shoelace area of a dense sample when s is closed.
func closedArea(s Shape) (float64, bool) {
	if !IsClosed(s, DefaultTolerance) {
		return 0, false
	}
	return SignedArea(s.Sample(lengthSamples)), true
}
