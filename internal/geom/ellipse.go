package geom

import "math"

// Ellipse is an elliptical arc described by its center and two conjugate
// semi-axis vectors, so affine transforms map it exactly. The point at
// parameter p is Center + MajorAxis·cos(p) + MinorAxis·sin(p). Equal start and
// end parameters describe a full ellipse.
type Ellipse struct {
	Center     Point   `json:"center"`
	MajorAxis  Point   `json:"major_axis"`
	MinorAxis  Point   `json:"minor_axis"`
	StartParam float64 `json:"start_param"`
	EndParam   float64 `json:"end_param"`
	// Reversed walks the parameter downwards from StartParam to EndParam.
	Reversed bool `json:"reversed,omitempty"`
}

var _ Shape = (*Ellipse)(nil)

// NewEllipse builds an ellipse the way DXF stores it: the major semi-axis
// vector plus the minor/major ratio, with the minor axis 90 degrees
// counter-clockwise of the major axis.
func NewEllipse(center, majorAxis Point, ratio, startParam, endParam float64) *Ellipse {
	return &Ellipse{
		Center:     center,
		MajorAxis:  majorAxis,
		MinorAxis:  majorAxis.Perp().Mul(ratio),
		StartParam: normalizeAngle(startParam),
		EndParam:   normalizeAngle(endParam),
	}
}

func (e *Ellipse) Kind() Kind { return KindEllipse }

// Ratio returns the length of the minor axis relative to the major axis.
func (e *Ellipse) Ratio() float64 {
	m := e.MajorAxis.Hypot()
	if m == 0 {
		return 0
	}
	return e.MinorAxis.Hypot() / m
}

func (e *Ellipse) pointAtParam(p float64) Point {
	sin, cos := math.Sincos(p)
	return e.Center.Add(e.MajorAxis.Mul(cos)).Add(e.MinorAxis.Mul(sin))
}

// Sweep returns the unsigned parameter range travelled.
func (e *Ellipse) Sweep() float64 {
	var d float64
	if e.Reversed {
		d = normalizeAngle(e.StartParam - e.EndParam)
	} else {
		d = normalizeAngle(e.EndParam - e.StartParam)
	}
	if d < 1e-12 {
		return 2 * math.Pi
	}
	return d
}

// PointAt returns the point at fraction t of the sweep.
func (e *Ellipse) PointAt(t float64) Point {
	dir := 1.0
	if e.Reversed {
		dir = -1
	}
	return e.pointAtParam(e.StartParam + dir*t*e.Sweep())
}

func (e *Ellipse) StartPoint() Point { return e.pointAtParam(e.StartParam) }
func (e *Ellipse) EndPoint() Point   { return e.pointAtParam(e.EndParam) }

func (e *Ellipse) Orientation() Orientation {
	o := CounterClockwise
	if e.MajorAxis.Cross(e.MinorAxis) < 0 {
		o = Clockwise
	}
	if e.Reversed {
		o = o.Reverse()
	}
	return o
}

func (e *Ellipse) Length() float64 {
	return PolylineLength(e.Sample(lengthSamples))
}

func (e *Ellipse) Area() (float64, bool) {
	return closedArea(e)
}

func (e *Ellipse) Boundary() Boundary {
	return BoundaryOf(e.Sample(lengthSamples))
}

func (e *Ellipse) Sample(n int) []Point {
	return sampleParam(n, e.StartPoint(), e.EndPoint(), e.PointAt)
}

// Transform maps the center and both axis vectors; parameters are unchanged.
func (e *Ellipse) Transform(t Transform) {
	e.Center = t.Apply(e.Center)
	e.MajorAxis = t.ApplyVector(e.MajorAxis)
	e.MinorAxis = t.ApplyVector(e.MinorAxis)
}

func (e *Ellipse) Reverse() {
	e.StartParam, e.EndParam = e.EndParam, e.StartParam
	e.Reversed = !e.Reversed
}

func (e *Ellipse) Clone() Shape {
	c := *e
	return &c
}
