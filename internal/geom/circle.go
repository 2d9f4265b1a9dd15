package geom

import "math"

// Circle is a full circle starting and ending at StartAngle.
type Circle struct {
	Origin     Point   `json:"origin"`
	Radius     float64 `json:"radius"`
	StartAngle float64 `json:"start_angle,omitempty"` // Radians

	orientation Orientation
}

var _ Shape = (*Circle)(nil)

// NewCircle returns a counter-clockwise circle.
func NewCircle(origin Point, radius float64) *Circle {
	return &Circle{Origin: origin, Radius: radius, orientation: CounterClockwise}
}

func (c *Circle) Kind() Kind        { return KindCircle }
func (c *Circle) StartPoint() Point { return polarPoint(c.Origin, c.Radius, c.StartAngle) }
func (c *Circle) EndPoint() Point   { return c.StartPoint() }
func (c *Circle) Length() float64   { return 2 * math.Pi * c.Radius }

func (c *Circle) Area() (float64, bool) {
	return closedArea(c)
}

func (c *Circle) Boundary() Boundary {
	r := Point{X: c.Radius, Y: c.Radius}
	return Boundary{Min: c.Origin.Sub(r), Max: c.Origin.Add(r)}
}

func (c *Circle) Sample(n int) []Point {
	dir := 1.0
	if c.orientation == Clockwise {
		dir = -1
	}
	start := c.StartPoint()
	return sampleParam(n, start, start, func(t float64) Point {
		return polarPoint(c.Origin, c.Radius, c.StartAngle+dir*2*math.Pi*t)
	})
}

// Transform moves the start point with the outline, so a rotated circle
// still starts where its old start point landed.
func (c *Circle) Transform(t Transform) {
	start := t.Apply(c.StartPoint())
	sx, _ := t.scales()
	c.Origin = t.Apply(c.Origin)
	c.Radius *= math.Abs(sx)
	c.StartAngle = normalizeAngle(math.Atan2(start.Y-c.Origin.Y, start.X-c.Origin.X))
	if t.Mirrors() {
		c.orientation = c.Orientation().Reverse()
	}
}

// Orientation defaults to counter-clockwise for a zero-value Circle.
func (c *Circle) Orientation() Orientation {
	if c.orientation == Clockwise {
		return Clockwise
	}
	return CounterClockwise
}

func (c *Circle) Reverse() {
	c.orientation = c.Orientation().Reverse()
}

func (c *Circle) Clone() Shape {
	cp := *c
	return &cp
}
