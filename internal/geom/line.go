package geom

// Line is a straight segment.
type Line struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

var _ Shape = (*Line)(nil)

// NewLine returns a line from start to end.
func NewLine(start, end Point) *Line {
	return &Line{Start: start, End: end}
}

func (l *Line) Kind() Kind               { return KindLine }
func (l *Line) StartPoint() Point        { return l.Start }
func (l *Line) EndPoint() Point          { return l.End }
func (l *Line) Orientation() Orientation { return Colinear }
func (l *Line) Length() float64          { return l.Start.Distance(l.End) }
func (l *Line) Area() (float64, bool)    { return 0, false }

func (l *Line) Boundary() Boundary {
	return EmptyBoundary().Extend(l.Start).Extend(l.End)
}

func (l *Line) Sample(n int) []Point {
	return sampleParam(n, l.Start, l.End, func(t float64) Point {
		return l.Start.Lerp(l.End, t)
	})
}

func (l *Line) Transform(t Transform) {
	l.Start = t.Apply(l.Start)
	l.End = t.Apply(l.End)
}

func (l *Line) Reverse() {
	l.Start, l.End = l.End, l.Start
}

func (l *Line) Clone() Shape {
	c := *l
	return &c
}
