package plan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
)

func TestKerfInsideShrinks(t *testing.T) {
	c := NewCut(square(0, 0, 10))
	require.NoError(t, c.Kerf(1, model.KerfInside))

	assert.True(t, c.Path.IsClosed())
	assert.Less(t, area(c.Path), area(c.Shape))
	assert.InDelta(t, 81, area(c.Path), 0.01)
	assert.InDelta(t, 100, area(c.Shape), 1e-9, "drawn shape is untouched")
	assert.Equal(t, geom.CounterClockwise, c.Path.Orientation())
	assert.LessOrEqual(t, c.Path.StartPoint().Distance(geom.Pt(0, 0)), 0.75)
}

func TestKerfOutsideGrows(t *testing.T) {
	c := NewCut(square(0, 0, 10))
	require.NoError(t, c.Kerf(1, model.KerfOutside))

	assert.Greater(t, area(c.Path), area(c.Shape))
	// 11x11 with rounded corners of radius 0.5.
	assert.InDelta(t, 121-(1-math.Pi/4), area(c.Path), 0.05)
	assert.Equal(t, geom.CounterClockwise, c.Path.Orientation())
	assert.LessOrEqual(t, c.Path.StartPoint().Distance(geom.Pt(0, 0)), 0.55)
}

func TestKerfKeepsClockwiseWinding(t *testing.T) {
	s := square(0, 0, 10)
	s.Reverse()
	c := NewCut(s)
	require.NoError(t, c.Kerf(2, model.KerfInside))
	assert.Equal(t, geom.Clockwise, c.Path.Orientation())
	assert.InDelta(t, -64, area(c.Path), 0.01)
}

func TestKerfCircle(t *testing.T) {
	c := NewCut(circle(0, 0, 5))
	require.NoError(t, c.Kerf(2, model.KerfOutside))
	assert.InDelta(t, math.Pi*36, area(c.Path), 0.5)

	require.NoError(t, c.Kerf(2, model.KerfInside))
	assert.InDelta(t, math.Pi*16, area(c.Path), 0.5, "re-offset starts from the drawn shape")
}

func TestKerfNoneAndCentered(t *testing.T) {
	c := NewCut(square(0, 0, 10))
	require.NoError(t, c.Kerf(1, model.KerfNone))
	assert.Equal(t, c.Shape.Sample(40), c.Path.Sample(40))

	require.NoError(t, c.Kerf(1, model.KerfOutside))
	require.NoError(t, c.Kerf(1, model.KerfNone))
	assert.Greater(t, area(c.Path), 100.0, "none leaves the current path alone")

	require.NoError(t, c.Kerf(1, model.KerfCentered))
	assert.Equal(t, c.Shape.Sample(40), c.Path.Sample(40))
	assert.NotSame(t, c.Shape, c.Path)
}

func TestKerfOpenPathIsCentered(t *testing.T) {
	open := geom.NewPolyshape(geom.DefaultTolerance,
		geom.NewLine(geom.Pt(0, 0), geom.Pt(10, 0)),
		geom.NewLine(geom.Pt(10, 0), geom.Pt(10, 10)),
	)
	c := NewCut(open)
	require.NoError(t, c.Kerf(1, model.KerfInside))
	assert.Equal(t, c.Shape.Sample(10), c.Path.Sample(10))
}

func TestKerfRejectsSelfIntersection(t *testing.T) {
	bowtie := geom.NewPolyshape(geom.DefaultTolerance,
		geom.NewLine(geom.Pt(0, 0), geom.Pt(10, 10)),
		geom.NewLine(geom.Pt(10, 10), geom.Pt(10, 0)),
		geom.NewLine(geom.Pt(10, 0), geom.Pt(0, 10)),
		geom.NewLine(geom.Pt(0, 10), geom.Pt(0, 0)),
	)
	c := NewCut(bowtie)
	err := c.Kerf(1, model.KerfOutside)
	assert.ErrorIs(t, err, ErrUnplannable)
}

func TestKerfRejectsCollapse(t *testing.T) {
	c := NewCut(square(0, 0, 2))
	err := c.Kerf(3, model.KerfInside)
	assert.ErrorIs(t, err, ErrUnplannable)
}

func TestKerfUnknownPosition(t *testing.T) {
	c := NewCut(square(0, 0, 2))
	assert.Error(t, c.Kerf(1, model.KerfPosition("diagonal")))
}

func TestDedupe(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 0.001)}
	got := dedupe(pts, 0.005)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1)}, got)
}

func TestRotateToNearest(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)}
	got := rotateToNearest(pts, geom.Pt(1.1, 1.2))
	assert.Equal(t, []geom.Point{geom.Pt(1, 1), geom.Pt(0, 1), geom.Pt(0, 0), geom.Pt(1, 0)}, got)
}
