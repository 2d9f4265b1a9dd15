package geom

import (
	"fmt"
	"slices"
)

// NurbsCurve is a rational B-spline evaluated with de Boor's algorithm.
type NurbsCurve struct {
	Degree        int       `json:"degree"`
	ControlPoints []Point   `json:"control_points"`
	Weights       []float64 `json:"weights"`
	Knots         []float64 `json:"knots"`
}

var _ Shape = (*NurbsCurve)(nil)

// NewNurbsCurve validates the knot vector against the control points. A nil
// weights slice means every weight is 1.
func NewNurbsCurve(degree int, ctrl []Point, weights, knots []float64) (*NurbsCurve, error) {
	if degree < 1 {
		return nil, fmt.Errorf("nurbs degree %d must be at least 1", degree)
	}
	if len(ctrl) < degree+1 {
		return nil, fmt.Errorf("nurbs of degree %d needs at least %d control points, got %d", degree, degree+1, len(ctrl))
	}
	if len(knots) != len(ctrl)+degree+1 {
		return nil, fmt.Errorf("nurbs needs %d knots, got %d", len(ctrl)+degree+1, len(knots))
	}
	for i := 1; i < len(knots); i++ {
		if knots[i] < knots[i-1] {
			return nil, fmt.Errorf("nurbs knots must be non-decreasing (index %d)", i)
		}
	}
	if weights == nil {
		weights = make([]float64, len(ctrl))
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != len(ctrl) {
		return nil, fmt.Errorf("nurbs needs %d weights, got %d", len(ctrl), len(weights))
	}
	return &NurbsCurve{
		Degree:        degree,
		ControlPoints: slices.Clone(ctrl),
		Weights:       slices.Clone(weights),
		Knots:         slices.Clone(knots),
	}, nil
}

// Domain returns the valid parameter interval.
func (c *NurbsCurve) Domain() (float64, float64) {
	return c.Knots[c.Degree], c.Knots[len(c.ControlPoints)]
}

// span finds k with Knots[k] <= u < Knots[k+1], clamped to the last
// non-empty span at the end of the domain.
func (c *NurbsCurve) span(u float64) int {
	n := len(c.ControlPoints) - 1
	if u >= c.Knots[n+1] {
		k := n
		for k > c.Degree && c.Knots[k] >= c.Knots[k+1] {
			k--
		}
		return k
	}
	k := c.Degree
	for k < n && u >= c.Knots[k+1] {
		k++
	}
	return k
}

// Eval returns the curve point at parameter u.
func (c *NurbsCurve) Eval(u float64) Point {
	p := c.Degree
	k := c.span(u)
	type hpoint struct{ x, y, w float64 }
	d := make([]hpoint, p+1)
	for j := 0; j <= p; j++ {
		cp := c.ControlPoints[j+k-p]
		w := c.Weights[j+k-p]
		d[j] = hpoint{cp.X * w, cp.Y * w, w}
	}
	for r := 1; r <= p; r++ {
		for j := p; j >= r; j-- {
			i := j + k - p
			den := c.Knots[i+1+p-r] - c.Knots[i]
			alpha := 0.0
			if den != 0 {
				alpha = (u - c.Knots[i]) / den
			}
			d[j] = hpoint{
				x: (1-alpha)*d[j-1].x + alpha*d[j].x,
				y: (1-alpha)*d[j-1].y + alpha*d[j].y,
				w: (1-alpha)*d[j-1].w + alpha*d[j].w,
			}
		}
	}
	if d[p].w == 0 {
		return Point{X: d[p].x, Y: d[p].y}
	}
	return Point{X: d[p].x / d[p].w, Y: d[p].y / d[p].w}
}

func (c *NurbsCurve) at(t float64) Point {
	a, b := c.Domain()
	return c.Eval(a + (b-a)*t)
}

func (c *NurbsCurve) Kind() Kind        { return KindNurbsCurve }
func (c *NurbsCurve) StartPoint() Point { return c.at(0) }
func (c *NurbsCurve) EndPoint() Point   { return c.at(1) }

func (c *NurbsCurve) Orientation() Orientation {
	return OrientationOf(c.Sample(lengthSamples))
}

func (c *NurbsCurve) Length() float64 {
	return PolylineLength(c.Sample(lengthSamples))
}

func (c *NurbsCurve) Area() (float64, bool) {
	return closedArea(c)
}

func (c *NurbsCurve) Boundary() Boundary {
	return BoundaryOf(c.Sample(lengthSamples))
}

func (c *NurbsCurve) Sample(n int) []Point {
	return sampleParam(n, c.StartPoint(), c.EndPoint(), c.at)
}

// Transform maps the control points; rational B-splines are affine invariant.
func (c *NurbsCurve) Transform(t Transform) {
	for i, p := range c.ControlPoints {
		c.ControlPoints[i] = t.Apply(p)
	}
}

// Reverse flips the parameter direction by mirroring the knot vector.
func (c *NurbsCurve) Reverse() {
	slices.Reverse(c.ControlPoints)
	slices.Reverse(c.Weights)
	lo, hi := c.Knots[0], c.Knots[len(c.Knots)-1]
	knots := make([]float64, len(c.Knots))
	for i, k := range c.Knots {
		knots[len(knots)-1-i] = lo + hi - k
	}
	c.Knots = knots
}

func (c *NurbsCurve) Clone() Shape {
	return &NurbsCurve{
		Degree:        c.Degree,
		ControlPoints: slices.Clone(c.ControlPoints),
		Weights:       slices.Clone(c.Weights),
		Knots:         slices.Clone(c.Knots),
	}
}
