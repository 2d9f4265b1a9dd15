package plan

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/engine"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
)

// plateDrawing is a 100x100 plate with two holes and an island in the
// larger hole, plus a separate washer and an engraving line.
func plateDrawing() model.Drawing {
	d := model.NewDrawing("plate")
	d.Add("outline", squareLines(0, 0, 100)...)
	d.Add("holes",
		geom.NewCircle(geom.Pt(20, 20), 5),
		geom.NewCircle(geom.Pt(70, 70), 20),
	)
	d.Add("holes", geom.NewCircle(geom.Pt(70, 70), 5))
	d.Add("washer", geom.NewCircle(geom.Pt(150, 20), 10), geom.NewCircle(geom.Pt(150, 20), 4))
	d.Add("engrave", geom.NewLine(geom.Pt(40, 40), geom.Pt(45, 40)))
	return d
}

func assertTravelValid(t *testing.T, p *Plan, origin geom.Point) {
	t.Helper()
	cuts := p.Cuts()
	require.NotEmpty(t, cuts)
	for i, c := range cuts {
		require.NotNil(t, c.RapidIn, "cut %d has no rapid", i)
		assert.InDelta(t, c.StartPoint().X, c.RapidIn.End.X, 1e-9)
		assert.InDelta(t, c.StartPoint().Y, c.RapidIn.End.Y, 1e-9)
		if i > 0 {
			prev := cuts[i-1].EndPoint()
			assert.InDelta(t, prev.X, c.RapidIn.Start.X, 1e-9)
			assert.InDelta(t, prev.Y, c.RapidIn.Start.Y, 1e-9)
		}
	}
	assert.Equal(t, origin, cuts[0].RapidIn.Start)
}

func TestBuildPlate(t *testing.T) {
	p, err := Build(plateDrawing(), model.DefaultSettings())
	require.NoError(t, err)

	// plate with 2 holes, island in the big hole, washer, engraving
	require.Len(t, p.Parts, 4)
	assert.Len(t, p.Cuts(), 7)
	assertTravelValid(t, p, geom.Pt(0, 0))

	var holes int
	for _, c := range p.Cuts() {
		if c.Hole {
			holes++
		}
	}
	assert.Equal(t, 3, holes)

	for _, part := range p.Parts {
		assert.False(t, part.Shell().Hole)
		for _, h := range part.Holes() {
			assert.True(t, h.Hole)
		}
	}

	b := p.Boundary()
	assert.InDelta(t, 0, b.Min.X, 1e-9)
	assert.InDelta(t, 160, b.Max.X, 1e-9)
	assert.Greater(t, p.CutLength(), 0.0)
	assert.Greater(t, p.RapidLength(), 0.0)
}

func TestBuildAppliesKerfAndLeads(t *testing.T) {
	s := model.DefaultSettings()
	s.KerfWidth = 1
	s.KerfMode = model.KerfModeAuto
	s.LeadType = model.LeadLine
	s.LeadLength = 1

	p, err := Build(plateDrawing(), s)
	require.NoError(t, err)
	assertTravelValid(t, p, geom.Pt(0, 0))

	for _, c := range p.Cuts() {
		if !c.IsClosed() {
			assert.Nil(t, c.LeadIn)
			assert.Equal(t, c.Shape.Sample(4), c.Path.Sample(4), "open cuts are centered")
			continue
		}
		require.NotNil(t, c.LeadIn)
		drawn := area(c.Shape)
		if drawn < 0 {
			drawn = -drawn
		}
		if c.Hole {
			assert.Less(t, c.Area(), drawn)
		} else {
			assert.Greater(t, c.Area(), drawn)
		}
	}
}

func TestBuildRejectsInvalidSettings(t *testing.T) {
	s := model.DefaultSettings()
	s.CoincidenceTolerance = 0
	_, err := Build(plateDrawing(), s)
	assert.Error(t, err)
}

func TestBuildSurfacesUnplannableKerf(t *testing.T) {
	d := model.NewDrawing("bowtie")
	d.Add("0",
		geom.NewLine(geom.Pt(0, 0), geom.Pt(10, 10)),
		geom.NewLine(geom.Pt(10, 10), geom.Pt(10, 0)),
		geom.NewLine(geom.Pt(10, 0), geom.Pt(0, 10)),
		geom.NewLine(geom.Pt(0, 10), geom.Pt(0, 0)),
	)
	s := model.DefaultSettings()
	s.KerfWidth = 1
	s.KerfMode = model.KerfModeOutside
	_, err := Build(d, s)
	assert.ErrorIs(t, err, ErrUnplannable)
}

func TestBuildEmptyDrawing(t *testing.T) {
	p, err := Build(model.NewDrawing("empty"), model.DefaultSettings())
	require.NoError(t, err)
	assert.Empty(t, p.Parts)
	assert.Zero(t, p.RapidLength())
}

func TestBuildDoesNotMutateDrawing(t *testing.T) {
	d := plateDrawing()
	before, err := json.Marshal(d)
	require.NoError(t, err)

	s := model.DefaultSettings()
	s.KerfWidth = 2
	s.KerfMode = model.KerfModeAuto
	_, err = Build(d, s)
	require.NoError(t, err)

	after, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestUpdateRapidsNeverWorseThanGivenOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	var parts []*Part
	for i := 0; i < 25; i++ {
		x, y := rng.Float64()*500, rng.Float64()*300
		parts = append(parts, NewPart(NewCut(square(x, y, 5))))
	}

	naive := New("naive", geom.Point{}, append([]*Part(nil), parts...))
	from := geom.Point{}
	for _, part := range naive.Parts {
		part.Cuts[0].RapidIn = &Rapid{Start: from, End: part.StartPoint()}
		from = part.Shell().EndPoint()
	}
	naiveLength := naive.RapidLength()

	optimized := New("optimized", geom.Point{}, parts)
	optimized.UpdateRapids(engine.New(model.DefaultSettings().Tour))
	assertTravelValid(t, optimized, geom.Point{})
	assert.LessOrEqual(t, optimized.RapidLength(), naiveLength+1e-9)
}

func TestPartUpdateRapidsOrdersHoles(t *testing.T) {
	holes := []*Cut{
		NewCut(circle(80, 10, 2)),
		NewCut(circle(10, 10, 2)),
		NewCut(circle(50, 10, 2)),
		NewCut(circle(30, 10, 2)),
	}
	shell := NewCut(square(0, 0, 100))
	part := NewPart(shell, holes...)

	part.UpdateRapids(engine.New(model.DefaultSettings().Tour))

	require.Len(t, part.Cuts, 5)
	assert.Same(t, shell, part.Shell())
	assert.Nil(t, part.Cuts[0].RapidIn, "the plan links the first cut")
	for i := 1; i < len(part.Cuts); i++ {
		require.NotNil(t, part.Cuts[i].RapidIn)
	}
	// Holes on a line are visited end to end.
	var travel float64
	for _, c := range part.Holes()[1:] {
		travel += c.RapidIn.Length()
	}
	assert.InDelta(t, 70, travel, 1e-6)
}

func TestPartWithoutHolesIsNoOp(t *testing.T) {
	part := NewPart(NewCut(square(0, 0, 10)))
	part.UpdateRapids(engine.New(model.DefaultSettings().Tour))
	assert.Nil(t, part.Shell().RapidIn)
}

func TestPlanJSON(t *testing.T) {
	p, err := Build(plateDrawing(), model.DefaultSettings())
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var back Plan
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p.Name, back.Name)
	require.Len(t, back.Parts, len(p.Parts))
	assert.Len(t, back.Cuts(), len(p.Cuts()))
	assert.InDelta(t, p.RapidLength(), back.RapidLength(), 1e-9)
}
