package plan

import (
	"encoding/json"
	"math"

	"github.com/google/uuid"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
)

// Rapid is a non-cutting travel move.
type Rapid struct {
	Start geom.Point `json:"start"`
	End   geom.Point `json:"end"`
}

// Length returns the travel distance.
func (r Rapid) Length() float64 {
	return r.Start.Distance(r.End)
}

// Lead is a short move into or out of a closed cut. Point is the free end:
// where a lead-in starts or a lead-out finishes.
type Lead struct {
	Type   model.LeadType
	Length float64
	Point  geom.Point
	Shape  geom.Shape
}

type leadJSON struct {
	Type   model.LeadType `json:"type"`
	Length float64        `json:"length"`
	Point  geom.Point     `json:"point"`
	Shape  geom.Record    `json:"shape"`
}

// MarshalJSON stores the lead geometry as a shape record.
func (l Lead) MarshalJSON() ([]byte, error) {
	rec, err := geom.ToRecord(l.Shape)
	if err != nil {
		return nil, err
	}
	return json.Marshal(leadJSON{Type: l.Type, Length: l.Length, Point: l.Point, Shape: rec})
}

// UnmarshalJSON restores a lead written by MarshalJSON.
func (l *Lead) UnmarshalJSON(data []byte) error {
	var in leadJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s, err := geom.FromRecord(in.Shape, geom.DefaultTolerance)
	if err != nil {
		return err
	}
	*l = Lead{Type: in.Type, Length: in.Length, Point: in.Point, Shape: s}
	return nil
}

// Cut is one planned tool pass. Shape is the drawn path and is never
// modified; Path is what the tool follows after kerf compensation.
type Cut struct {
	ID          string           `json:"id"`
	Shape       *geom.Polyshape  `json:"shape"`
	Path        *geom.Polyshape  `json:"path"`
	LeadIn      *Lead            `json:"lead_in,omitempty"`
	LeadOut     *Lead            `json:"lead_out,omitempty"`
	RapidIn     *Rapid           `json:"rapid_in,omitempty"`
	Orientation geom.Orientation `json:"orientation"`
	Hole        bool             `json:"hole"` // Set by part assembly for cuts nested in a shell
}

// NewCut wraps a path in a cut whose tool path starts as a clone of it.
func NewCut(shape *geom.Polyshape) *Cut {
	return &Cut{
		ID:          uuid.New().String(),
		Shape:       shape,
		Path:        shape.ClonePolyshape(),
		Orientation: shape.Orientation(),
	}
}

// IsClosed reports whether the drawn path is closed.
func (c *Cut) IsClosed() bool {
	return c.Shape.IsClosed()
}

// Area returns the unsigned area enclosed by the tool path, zero when open.
func (c *Cut) Area() float64 {
	a, ok := c.Path.Area()
	if !ok {
		return 0
	}
	return math.Abs(a)
}

// StartPoint is where cutting begins, at the start of the lead-in if any.
func (c *Cut) StartPoint() geom.Point {
	if c.LeadIn != nil {
		return c.LeadIn.Point
	}
	return c.Path.StartPoint()
}

// EndPoint is where cutting ends, at the end of the lead-out if any.
func (c *Cut) EndPoint() geom.Point {
	if c.LeadOut != nil {
		return c.LeadOut.Point
	}
	return c.Path.EndPoint()
}

// Boundary covers the tool path and its leads.
func (c *Cut) Boundary() geom.Boundary {
	b := c.Path.Boundary()
	for _, l := range []*Lead{c.LeadIn, c.LeadOut} {
		if l != nil {
			b = b.Join(l.Shape.Boundary())
		}
	}
	return b
}

// Length is the cutting distance including leads.
func (c *Cut) Length() float64 {
	total := c.Path.Length()
	for _, l := range []*Lead{c.LeadIn, c.LeadOut} {
		if l != nil {
			total += l.Shape.Length()
		}
	}
	return total
}

// AddLeads attaches a lead-in and lead-out on the waste side of a closed
// cut: outside a shell, inside a hole. Open cuts and LeadNone clear the
// leads.
func (c *Cut) AddLeads(t model.LeadType, length float64) {
	c.LeadIn, c.LeadOut = nil, nil
	if t == model.LeadNone || t == "" || length <= 0 || !c.Path.IsClosed() {
		return
	}
	pts := c.Path.Sample(geom.DefaultSampleCount)
	if len(pts) < 3 {
		return
	}
	orientation := geom.OrientationOf(pts)
	if orientation == geom.Colinear {
		return
	}

	startTangent := firstDirection(pts)
	endTangent := lastDirection(pts)
	start, end := pts[0], pts[len(pts)-1]

	c.LeadIn = newLead(t, length, start, startTangent, c.wasteNormal(startTangent, orientation), true)
	c.LeadOut = newLead(t, length, end, endTangent, c.wasteNormal(endTangent, orientation), false)
}

// wasteNormal points away from the material kept by this cut.
func (c *Cut) wasteNormal(tangent geom.Point, o geom.Orientation) geom.Point {
	// Outward normal of a counter-clockwise ring is the tangent turned clockwise.
	outward := geom.Point{X: tangent.Y, Y: -tangent.X}
	if o == geom.Clockwise {
		outward = outward.Mul(-1)
	}
	if c.Hole {
		return outward.Mul(-1)
	}
	return outward
}

func newLead(t model.LeadType, length float64, at, tangent, normal geom.Point, in bool) *Lead {
	switch t {
	case model.LeadArc:
		center := at.Add(normal.Mul(length))
		// The far end sits a quarter turn away, behind the path start for a
		// lead-in and ahead of the path end for a lead-out.
		far := center.Add(tangent.Mul(length))
		if in {
			far = center.Sub(tangent.Mul(length))
		}
		o := geom.Clockwise
		if at.Sub(center).Perp().Dot(tangent) > 0 {
			o = geom.CounterClockwise
		}
		angle := func(p geom.Point) float64 { return math.Atan2(p.Y-center.Y, p.X-center.X) }
		if in {
			return &Lead{Type: t, Length: length, Point: far, Shape: geom.NewArc(center, length, angle(far), angle(at), o)}
		}
		return &Lead{Type: t, Length: length, Point: far, Shape: geom.NewArc(center, length, angle(at), angle(far), o)}
	default:
		far := at.Add(normal.Mul(length))
		if in {
			return &Lead{Type: t, Length: length, Point: far, Shape: geom.NewLine(far, at)}
		}
		return &Lead{Type: t, Length: length, Point: far, Shape: geom.NewLine(at, far)}
	}
}

// firstDirection is the unit direction leaving the first distinct point.
func firstDirection(pts []geom.Point) geom.Point {
	for i := 1; i < len(pts); i++ {
		if d := pts[i].Sub(pts[0]); d.Hypot() > 1e-12 {
			return d.Unit()
		}
	}
	return geom.Point{X: 1}
}

// lastDirection is the unit direction arriving at the last point.
func lastDirection(pts []geom.Point) geom.Point {
	last := pts[len(pts)-1]
	for i := len(pts) - 2; i >= 0; i-- {
		if d := last.Sub(pts[i]); d.Hypot() > 1e-12 {
			return d.Unit()
		}
	}
	return geom.Point{X: 1}
}
