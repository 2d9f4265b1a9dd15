package geom

import (
	"encoding/json"
	"fmt"
)

// Record is the serialisable form of any Shape, tagged by Type.
type Record struct {
	Type string `json:"type"`

	Start    *Point  `json:"start,omitempty"`
	End      *Point  `json:"end,omitempty"`
	Controls []Point `json:"controls,omitempty"`

	Origin     *Point  `json:"origin,omitempty"`
	Radius     float64 `json:"radius,omitempty"`
	StartAngle float64 `json:"start_angle,omitempty"`
	EndAngle   float64 `json:"end_angle,omitempty"`
	Clockwise  bool    `json:"clockwise,omitempty"`

	MajorAxis  *Point  `json:"major_axis,omitempty"`
	MinorAxis  *Point  `json:"minor_axis,omitempty"`
	StartParam float64 `json:"start_param,omitempty"`
	EndParam   float64 `json:"end_param,omitempty"`
	Reversed   bool    `json:"reversed,omitempty"`

	Degree        int       `json:"degree,omitempty"`
	ControlPoints []Point   `json:"control_points,omitempty"`
	Weights       []float64 `json:"weights,omitempty"`
	Knots         []float64 `json:"knots,omitempty"`

	Shapes []Record `json:"shapes,omitempty"`
}

func ptr(p Point) *Point { return &p }

func deref(p *Point) Point {
	if p == nil {
		return Point{}
	}
	return *p
}

// ToRecord converts a shape into its serialisable form.
func ToRecord(s Shape) (Record, error) {
	r := Record{Type: s.Kind().String()}
	switch s.Kind() {
	case KindLine:
		l := s.(*Line)
		r.Start, r.End = ptr(l.Start), ptr(l.End)
	case KindArc:
		a := s.(*Arc)
		r.Origin = ptr(a.Origin)
		r.Radius = a.Radius
		r.StartAngle, r.EndAngle = a.StartAngle, a.EndAngle
		r.Clockwise = a.Orientation() == Clockwise
	case KindCircle:
		c := s.(*Circle)
		r.Origin = ptr(c.Origin)
		r.Radius = c.Radius
		r.StartAngle = c.StartAngle
		r.Clockwise = c.Orientation() == Clockwise
	case KindEllipse:
		e := s.(*Ellipse)
		r.Origin = ptr(e.Center)
		r.MajorAxis, r.MinorAxis = ptr(e.MajorAxis), ptr(e.MinorAxis)
		r.StartParam, r.EndParam = e.StartParam, e.EndParam
		r.Reversed = e.Reversed
	case KindQuadraticCurve:
		q := s.(*QuadraticCurve)
		r.Start, r.End = ptr(q.Start), ptr(q.End)
		r.Controls = []Point{q.Control}
	case KindCubicCurve:
		c := s.(*CubicCurve)
		r.Start, r.End = ptr(c.Start), ptr(c.End)
		r.Controls = []Point{c.Control1, c.Control2}
	case KindNurbsCurve:
		n := s.(*NurbsCurve)
		r.Degree = n.Degree
		r.ControlPoints, r.Weights, r.Knots = n.ControlPoints, n.Weights, n.Knots
	case KindPolyshape:
		p := s.(*Polyshape)
		for _, child := range p.shapes {
			cr, err := ToRecord(child)
			if err != nil {
				return Record{}, err
			}
			r.Shapes = append(r.Shapes, cr)
		}
	default:
		return Record{}, fmt.Errorf("%w: kind %d", ErrUnknownShape, s.Kind())
	}
	return r, nil
}

// FromRecord rebuilds a shape. Polyshapes are rebuilt with tol.
func FromRecord(r Record, tol float64) (Shape, error) {
	kind, ok := ParseKind(r.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, r.Type)
	}
	orientation := CounterClockwise
	if r.Clockwise {
		orientation = Clockwise
	}
	switch kind {
	case KindLine:
		return NewLine(deref(r.Start), deref(r.End)), nil
	case KindArc:
		return NewArc(deref(r.Origin), r.Radius, r.StartAngle, r.EndAngle, orientation), nil
	case KindCircle:
		c := NewCircle(deref(r.Origin), r.Radius)
		c.StartAngle = r.StartAngle
		if r.Clockwise {
			c.Reverse()
		}
		return c, nil
	case KindEllipse:
		return &Ellipse{
			Center:     deref(r.Origin),
			MajorAxis:  deref(r.MajorAxis),
			MinorAxis:  deref(r.MinorAxis),
			StartParam: r.StartParam,
			EndParam:   r.EndParam,
			Reversed:   r.Reversed,
		}, nil
	case KindQuadraticCurve:
		if len(r.Controls) != 1 {
			return nil, fmt.Errorf("quadratic curve needs 1 control point, got %d", len(r.Controls))
		}
		return NewQuadraticCurve(deref(r.Start), r.Controls[0], deref(r.End)), nil
	case KindCubicCurve:
		if len(r.Controls) != 2 {
			return nil, fmt.Errorf("cubic curve needs 2 control points, got %d", len(r.Controls))
		}
		return NewCubicCurve(deref(r.Start), r.Controls[0], r.Controls[1], deref(r.End)), nil
	case KindNurbsCurve:
		return NewNurbsCurve(r.Degree, r.ControlPoints, r.Weights, r.Knots)
	case KindPolyshape:
		shapes := make([]Shape, 0, len(r.Shapes))
		for i, cr := range r.Shapes {
			s, err := FromRecord(cr, tol)
			if err != nil {
				return nil, fmt.Errorf("polyshape child %d: %w", i, err)
			}
			shapes = append(shapes, s)
		}
		return NewPolyshape(tol, shapes...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, r.Type)
}

// MarshalJSON encodes the path as a polyshape record.
func (p *Polyshape) MarshalJSON() ([]byte, error) {
	r, err := ToRecord(p)
	if err != nil {
		return nil, err
	}
	return json.Marshal(r)
}

// UnmarshalJSON decodes a polyshape record using the default tolerance
// unless the receiver already carries one.
func (p *Polyshape) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.Type != KindPolyshape.String() {
		return fmt.Errorf("%w: expected polyshape, got %q", ErrUnknownShape, r.Type)
	}
	tol := p.tol
	if tol <= 0 {
		tol = DefaultTolerance
	}
	s, err := FromRecord(r, tol)
	if err != nil {
		return err
	}
	*p = *s.(*Polyshape)
	return nil
}
