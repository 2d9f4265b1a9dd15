package geom

import "math"

// Arc is a circular arc between two angles. Its orientation is fixed at
// construction so that reversing only swaps the angles.
type Arc struct {
	Origin     Point   `json:"origin"`
	Radius     float64 `json:"radius"`
	StartAngle float64 `json:"start_angle"` // radians, [0, 2π)
	EndAngle   float64 `json:"end_angle"`   // radians, [0, 2π)

	orientation Orientation
}

var _ Shape = (*Arc)(nil)

// NewArc returns an arc around origin. Angles are in radians and normalized
// into [0, 2π). Equal angles describe a full turn. A Colinear orientation is
// read as counter-clockwise.
func NewArc(origin Point, radius, startAngle, endAngle float64, o Orientation) *Arc {
	if o != Clockwise {
		o = CounterClockwise
	}
	return &Arc{
		Origin:      origin,
		Radius:      radius,
		StartAngle:  normalizeAngle(startAngle),
		EndAngle:    normalizeAngle(endAngle),
		orientation: o,
	}
}

func (a *Arc) Kind() Kind        { return KindArc }
func (a *Arc) StartPoint() Point { return polarPoint(a.Origin, a.Radius, a.StartAngle) }
func (a *Arc) EndPoint() Point   { return polarPoint(a.Origin, a.Radius, a.EndAngle) }

// Sweep returns the unsigned angle travelled from start to end.
func (a *Arc) Sweep() float64 {
	var d float64
	if a.orientation == Clockwise {
		d = normalizeAngle(a.StartAngle - a.EndAngle)
	} else {
		d = normalizeAngle(a.EndAngle - a.StartAngle)
	}
	if d < 1e-12 {
		return 2 * math.Pi
	}
	return d
}

func (a *Arc) direction() float64 {
	if a.orientation == Clockwise {
		return -1
	}
	return 1
}

// PointAt returns the point at fraction t of the sweep.
func (a *Arc) PointAt(t float64) Point {
	return polarPoint(a.Origin, a.Radius, a.StartAngle+a.direction()*t*a.Sweep())
}

func (a *Arc) Length() float64 {
	return a.Radius * a.Sweep()
}

func (a *Arc) Area() (float64, bool) {
	return closedArea(a)
}

// inSweep reports whether angle lies on the arc.
func (a *Arc) inSweep(angle float64) bool {
	if a.orientation == Clockwise {
		return normalizeAngle(a.StartAngle-angle) <= a.Sweep()
	}
	return normalizeAngle(angle-a.StartAngle) <= a.Sweep()
}

func (a *Arc) Boundary() Boundary {
	b := EmptyBoundary().Extend(a.StartPoint()).Extend(a.EndPoint())
	for i := 0; i < 4; i++ {
		angle := float64(i) * math.Pi / 2
		if a.inSweep(angle) {
			b = b.Extend(polarPoint(a.Origin, a.Radius, angle))
		}
	}
	return b
}

func (a *Arc) Sample(n int) []Point {
	return sampleParam(n, a.StartPoint(), a.EndPoint(), a.PointAt)
}

// Transform moves the origin, scales the radius by ScaleX and re-derives the
// angles from the transformed endpoints. Mirroring flips the orientation.
func (a *Arc) Transform(t Transform) {
	start := t.Apply(a.StartPoint())
	end := t.Apply(a.EndPoint())
	sx, _ := t.scales()
	a.Origin = t.Apply(a.Origin)
	a.Radius *= math.Abs(sx)
	a.StartAngle = normalizeAngle(math.Atan2(start.Y-a.Origin.Y, start.X-a.Origin.X))
	a.EndAngle = normalizeAngle(math.Atan2(end.Y-a.Origin.Y, end.X-a.Origin.X))
	if t.Mirrors() {
		a.orientation = a.Orientation().Reverse()
	}
}

// Orientation defaults to counter-clockwise for a zero-value Arc.
func (a *Arc) Orientation() Orientation {
	if a.orientation == Clockwise {
		return Clockwise
	}
	return CounterClockwise
}

func (a *Arc) Reverse() {
	a.StartAngle, a.EndAngle = a.EndAngle, a.StartAngle
	a.orientation = a.Orientation().Reverse()
}

func (a *Arc) Clone() Shape {
	c := *a
	return &c
}
