package plan

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
)

func assertNear(t *testing.T, want, got geom.Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
}

func TestNewCut(t *testing.T) {
	s := square(0, 0, 10)
	c := NewCut(s)
	assert.NotEmpty(t, c.ID)
	assert.NotSame(t, s, c.Path)
	assert.Same(t, s, c.Shape)
	assert.Equal(t, geom.CounterClockwise, c.Orientation)
	assert.True(t, c.IsClosed())
	assert.InDelta(t, 100, c.Area(), 1e-9)
	assert.InDelta(t, 40, c.Length(), 1e-9)
	assert.NotEqual(t, c.ID, NewCut(s).ID)
}

func TestLineLeadsOnShellGoOutside(t *testing.T) {
	c := NewCut(square(0, 0, 10))
	c.AddLeads(model.LeadLine, 2)
	require.NotNil(t, c.LeadIn)
	require.NotNil(t, c.LeadOut)

	assertNear(t, geom.Pt(0, -2), c.LeadIn.Point)
	assertNear(t, geom.Pt(0, -2), c.StartPoint())
	assertNear(t, geom.Pt(0, 0), c.LeadIn.Shape.EndPoint())
	// The last edge runs down the left side, so the exit goes left.
	assertNear(t, geom.Pt(-2, 0), c.LeadOut.Point)
	assertNear(t, geom.Pt(-2, 0), c.EndPoint())

	assert.InDelta(t, 44, c.Length(), 1e-9)
	b := c.Boundary()
	assert.InDelta(t, -2, b.Min.X, 1e-9)
	assert.InDelta(t, -2, b.Min.Y, 1e-9)
}

func TestLineLeadsOnHoleGoInside(t *testing.T) {
	c := NewCut(square(0, 0, 10))
	c.Hole = true
	c.AddLeads(model.LeadLine, 2)
	assertNear(t, geom.Pt(0, 2), c.LeadIn.Point)
	assertNear(t, geom.Pt(2, 0), c.LeadOut.Point)
}

func TestArcLeadIsTangentQuarterTurn(t *testing.T) {
	c := NewCut(square(0, 0, 10))
	c.AddLeads(model.LeadArc, 2)
	require.NotNil(t, c.LeadIn)

	in := c.LeadIn.Shape
	assert.Equal(t, geom.KindArc, in.Kind())
	assertNear(t, geom.Pt(-2, -2), in.StartPoint())
	assertNear(t, geom.Pt(0, 0), in.EndPoint())
	assert.InDelta(t, math.Pi, in.Length(), 1e-9)
	assert.Equal(t, geom.Clockwise, in.Orientation())

	out := c.LeadOut.Shape
	assertNear(t, geom.Pt(0, 0), out.StartPoint())
	assertNear(t, c.LeadOut.Point, out.EndPoint())
	assert.InDelta(t, math.Pi, out.Length(), 1e-9)
}

func TestLeadsSkipOpenCuts(t *testing.T) {
	c := NewCut(geom.NewPolyshape(geom.DefaultTolerance, geom.NewLine(geom.Pt(0, 0), geom.Pt(5, 0))))
	c.AddLeads(model.LeadLine, 2)
	assert.Nil(t, c.LeadIn)
	assert.Nil(t, c.LeadOut)
	assertNear(t, geom.Pt(0, 0), c.StartPoint())
}

func TestLeadNoneClearsLeads(t *testing.T) {
	c := NewCut(square(0, 0, 10))
	c.AddLeads(model.LeadLine, 2)
	c.AddLeads(model.LeadNone, 2)
	assert.Nil(t, c.LeadIn)
	assert.Nil(t, c.LeadOut)
}

func TestCutJSON(t *testing.T) {
	c := NewCut(square(0, 0, 10))
	c.AddLeads(model.LeadArc, 1)
	c.RapidIn = &Rapid{Start: geom.Pt(0, 0), End: c.StartPoint()}

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"orientation":"counterclockwise"`)

	var back Cut
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c.ID, back.ID)
	assert.Equal(t, c.Orientation, back.Orientation)
	require.NotNil(t, back.LeadIn)
	assert.Equal(t, geom.KindArc, back.LeadIn.Shape.Kind())
	assertNear(t, c.StartPoint(), back.StartPoint())
	assert.InDelta(t, c.RapidIn.Length(), back.RapidIn.Length(), 1e-9)
	assert.InDelta(t, c.Length(), back.Length(), 1e-6)
}
