// Package plan turns drawn geometry into an ordered set of cuts: it chains
// shapes into paths, nests them into parts, compensates for kerf, adds leads
// and orders the travel between cuts.
package plan

import (
	"fmt"
	"log/slog"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/engine"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
)

// Plan is the ordered list of parts for one drawing.
type Plan struct {
	Name   string     `json:"name"`
	Origin geom.Point `json:"origin"` // Where the machine starts before the first rapid
	Parts  []*Part    `json:"parts"`
}

// New creates a plan over parts starting from the machine origin.
func New(name string, origin geom.Point, parts []*Part) *Plan {
	return &Plan{Name: name, Origin: origin, Parts: parts}
}

// UpdateRapids orders holes within every part, then orders the parts from
// the origin and links consecutive cuts with rapids. Afterwards every cut
// has a rapid and the first one starts at the origin.
func (p *Plan) UpdateRapids(opt *engine.Optimizer) {
	for _, part := range p.Parts {
		part.UpdateRapids(opt)
	}
	if len(p.Parts) == 0 {
		return
	}

	points := make([]geom.Point, len(p.Parts))
	for i, part := range p.Parts {
		points[i] = part.Shell().StartPoint()
	}
	origin := p.Origin
	order := opt.Order(points, &origin)

	parts := make([]*Part, 0, len(p.Parts))
	for _, i := range order {
		parts = append(parts, p.Parts[i])
	}

	from := origin
	for _, part := range parts {
		first := part.Cuts[0]
		first.RapidIn = &Rapid{Start: from, End: first.StartPoint()}
		from = part.Shell().EndPoint()
	}
	p.Parts = parts
}

// Cuts returns every cut in cutting order.
func (p *Plan) Cuts() []*Cut {
	var cuts []*Cut
	for _, part := range p.Parts {
		cuts = append(cuts, part.Cuts...)
	}
	return cuts
}

// CutLength is the total cutting distance including leads.
func (p *Plan) CutLength() float64 {
	var total float64
	for _, c := range p.Cuts() {
		total += c.Length()
	}
	return total
}

// RapidLength is the total non-cutting travel.
func (p *Plan) RapidLength() float64 {
	var total float64
	for _, c := range p.Cuts() {
		if c.RapidIn != nil {
			total += c.RapidIn.Length()
		}
	}
	return total
}

// Boundary joins the bounds of every part.
func (p *Plan) Boundary() geom.Boundary {
	b := geom.EmptyBoundary()
	for _, part := range p.Parts {
		b = b.Join(part.Boundary())
	}
	return b
}

// Build runs the whole pipeline over a drawing: chain, nest, assemble
// parts, kerf, leads, travel. Any structural failure aborts the plan.
func Build(d model.Drawing, s model.Settings) (*Plan, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	shapes := d.Shapes()
	paths := geom.ChainPolyshapes(shapes, s.CoincidenceTolerance)
	slog.Debug("chained shapes", "drawing", d.Name, "shapes", len(shapes), "paths", len(paths))

	cuts := make([]*Cut, 0, len(paths))
	for _, path := range paths {
		cuts = append(cuts, NewCut(path))
	}

	forest, err := Nest(cuts, s.ContainmentOptions())
	if err != nil {
		return nil, err
	}
	parts := ToParts(forest)
	slog.Debug("nested cuts", "drawing", d.Name, "cuts", len(cuts), "roots", len(forest.Roots), "parts", len(parts))

	for _, part := range parts {
		for _, c := range part.Cuts {
			position := s.KerfMode.Position(c.Hole, c.IsClosed())
			if err := c.KerfPrecision(s.KerfWidth, position, s.DecimalPrecision); err != nil {
				return nil, err
			}
			c.AddLeads(s.LeadType, s.LeadLength)
		}
	}

	pl := New(d.Name, s.Origin, parts)
	pl.UpdateRapids(engine.New(s.Tour))
	slog.Debug("ordered travel", "drawing", d.Name, "cut_length", pl.CutLength(), "rapid_length", pl.RapidLength())
	return pl, nil
}
