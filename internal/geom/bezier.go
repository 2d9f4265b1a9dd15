package geom

// QuadraticCurve is a quadratic Bézier segment.
type QuadraticCurve struct {
	Start   Point `json:"start"`
	Control Point `json:"control"`
	End     Point `json:"end"`
}

var _ Shape = (*QuadraticCurve)(nil)

// NewQuadraticCurve returns a quadratic Bézier segment.
func NewQuadraticCurve(start, control, end Point) *QuadraticCurve {
	return &QuadraticCurve{Start: start, Control: control, End: end}
}

// Eval returns the point at parameter t in [0, 1].
func (q *QuadraticCurve) Eval(t float64) Point {
	mt := 1 - t
	return q.Start.Mul(mt * mt).
		Add(q.Control.Mul(2 * mt * t)).
		Add(q.End.Mul(t * t))
}

func (q *QuadraticCurve) Kind() Kind        { return KindQuadraticCurve }
func (q *QuadraticCurve) StartPoint() Point { return q.Start }
func (q *QuadraticCurve) EndPoint() Point   { return q.End }

func (q *QuadraticCurve) Orientation() Orientation {
	return OrientationOf(q.Sample(lengthSamples))
}

func (q *QuadraticCurve) Length() float64 {
	return PolylineLength(q.Sample(lengthSamples))
}

func (q *QuadraticCurve) Area() (float64, bool) {
	return closedArea(q)
}

func (q *QuadraticCurve) Boundary() Boundary {
	return BoundaryOf(q.Sample(lengthSamples))
}

func (q *QuadraticCurve) Sample(n int) []Point {
	return sampleParam(n, q.Start, q.End, q.Eval)
}

func (q *QuadraticCurve) Transform(t Transform) {
	q.Start = t.Apply(q.Start)
	q.Control = t.Apply(q.Control)
	q.End = t.Apply(q.End)
}

func (q *QuadraticCurve) Reverse() {
	q.Start, q.End = q.End, q.Start
}

func (q *QuadraticCurve) Clone() Shape {
	c := *q
	return &c
}

// CubicCurve is a cubic Bézier segment.
type CubicCurve struct {
	Start    Point `json:"start"`
	Control1 Point `json:"control1"`
	Control2 Point `json:"control2"`
	End      Point `json:"end"`
}

var _ Shape = (*CubicCurve)(nil)

// NewCubicCurve returns a cubic Bézier segment.
func NewCubicCurve(start, c1, c2, end Point) *CubicCurve {
	return &CubicCurve{Start: start, Control1: c1, Control2: c2, End: end}
}

// Eval returns the point at parameter t in [0, 1].
func (c *CubicCurve) Eval(t float64) Point {
	mt := 1 - t
	return c.Start.Mul(mt * mt * mt).
		Add(c.Control1.Mul(3 * mt * mt * t)).
		Add(c.Control2.Mul(3 * mt * t * t)).
		Add(c.End.Mul(t * t * t))
}

func (c *CubicCurve) Kind() Kind        { return KindCubicCurve }
func (c *CubicCurve) StartPoint() Point { return c.Start }
func (c *CubicCurve) EndPoint() Point   { return c.End }

func (c *CubicCurve) Orientation() Orientation {
	return OrientationOf(c.Sample(lengthSamples))
}

func (c *CubicCurve) Length() float64 {
	return PolylineLength(c.Sample(lengthSamples))
}

func (c *CubicCurve) Area() (float64, bool) {
	return closedArea(c)
}

func (c *CubicCurve) Boundary() Boundary {
	return BoundaryOf(c.Sample(lengthSamples))
}

func (c *CubicCurve) Sample(n int) []Point {
	return sampleParam(n, c.Start, c.End, c.Eval)
}

func (c *CubicCurve) Transform(t Transform) {
	c.Start = t.Apply(c.Start)
	c.Control1 = t.Apply(c.Control1)
	c.Control2 = t.Apply(c.Control2)
	c.End = t.Apply(c.End)
}

func (c *CubicCurve) Reverse() {
	c.Start, c.End = c.End, c.Start
	c.Control1, c.Control2 = c.Control2, c.Control1
}

func (c *CubicCurve) Clone() Shape {
	cp := *c
	return &cp
}
