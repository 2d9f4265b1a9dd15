package plan

import (
	"github.com/google/uuid"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/engine"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
)

// Part is one shell cut and the holes directly inside it. Cuts lists the
// holes first and the shell last.
type Part struct {
	ID   string `json:"id"`
	Cuts []*Cut `json:"cuts"`
}

// NewPart groups holes with their shell and marks the holes.
func NewPart(shell *Cut, holes ...*Cut) *Part {
	cuts := make([]*Cut, 0, len(holes)+1)
	for _, h := range holes {
		h.Hole = true
		cuts = append(cuts, h)
	}
	shell.Hole = false
	cuts = append(cuts, shell)
	return &Part{ID: uuid.New().String(), Cuts: cuts}
}

// Shell returns the outer cut.
func (p *Part) Shell() *Cut {
	return p.Cuts[len(p.Cuts)-1]
}

// Holes returns the cuts inside the shell in cutting order.
func (p *Part) Holes() []*Cut {
	return p.Cuts[:len(p.Cuts)-1]
}

// StartPoint is where the part's first cut begins.
func (p *Part) StartPoint() geom.Point {
	return p.Cuts[0].StartPoint()
}

// Boundary joins the bounds of every cut.
func (p *Part) Boundary() geom.Boundary {
	b := geom.EmptyBoundary()
	for _, c := range p.Cuts {
		b = b.Join(c.Boundary())
	}
	return b
}

// UpdateRapids orders the holes for short travel and links each cut to the
// previous one with a rapid, ending at the shell. The first cut's rapid is
// left to the plan. A part without holes is left as is.
func (p *Part) UpdateRapids(opt *engine.Optimizer) {
	holes := p.Holes()
	if len(holes) == 0 {
		return
	}

	points := make([]geom.Point, len(holes))
	for i, h := range holes {
		points[i] = h.StartPoint()
	}
	order := opt.Order(points, nil)

	cuts := make([]*Cut, 0, len(p.Cuts))
	for _, i := range order {
		cuts = append(cuts, holes[i])
	}
	cuts = append(cuts, p.Shell())
	for i := 1; i < len(cuts); i++ {
		cuts[i].RapidIn = &Rapid{Start: cuts[i-1].EndPoint(), End: cuts[i].StartPoint()}
	}
	p.Cuts = cuts
}

// ToParts turns the forest into parts. Every node at an even depth is a
// shell; its children are its holes. Nodes two levels down are islands
// inside a hole and start parts of their own.
func ToParts(f *Forest) []*Part {
	var parts []*Part
	var walk func(i, depth int)
	walk = func(i, depth int) {
		n := f.Nodes[i]
		if depth%2 == 0 {
			holes := make([]*Cut, 0, len(n.Children))
			for _, c := range n.Children {
				holes = append(holes, f.Nodes[c].Cut)
			}
			parts = append(parts, NewPart(n.Cut, holes...))
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, r := range f.Roots {
		walk(r, 0)
	}
	return parts
}
