package export

import (
	"testing"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/plan"
)

func rectLines(x, y, w, h float64) []geom.Shape {
	a, b := geom.Pt(x, y), geom.Pt(x+w, y)
	c, d := geom.Pt(x+w, y+h), geom.Pt(x, y+h)
	return []geom.Shape{geom.NewLine(a, b), geom.NewLine(b, c), geom.NewLine(c, d), geom.NewLine(d, a)}
}

// buildTestPlan plans a bracket with two holes and a separate washer, with
// kerf and lead-ins applied.
func buildTestPlan(t *testing.T) (*plan.Plan, model.Settings) {
	t.Helper()
	d := model.NewDrawing("bracket")
	d.Add("outline", rectLines(0, 0, 100, 60)...)
	d.Add("holes", geom.NewCircle(geom.Pt(25, 30), 8), geom.NewCircle(geom.Pt(75, 30), 8))
	d.Add("washer", geom.NewCircle(geom.Pt(140, 30), 15), geom.NewCircle(geom.Pt(140, 30), 6))

	s := model.DefaultSettings()
	s.KerfWidth = 0.4
	s.KerfMode = model.KerfModeAuto
	s.LeadType = model.LeadLine
	s.LeadLength = 2

	p, err := plan.Build(d, s)
	if err != nil {
		t.Fatalf("plan.Build returned error: %v", err)
	}
	return p, s
}

// buildGridPlan plans n separate circles on a grid.
func buildGridPlan(t *testing.T, n int) *plan.Plan {
	t.Helper()
	d := model.NewDrawing("grid")
	for i := 0; i < n; i++ {
		d.Add("parts", geom.NewCircle(geom.Pt(float64(i%6)*30, float64(i/6)*30), 10))
	}
	p, err := plan.Build(d, model.DefaultSettings())
	if err != nil {
		t.Fatalf("plan.Build returned error: %v", err)
	}
	return p
}
