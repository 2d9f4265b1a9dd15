package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformApply(t *testing.T) {
	assertPointNear(t, Pt(2, 4), Translation(1, 2).Apply(Pt(1, 2)), 1e-12)
	assertPointNear(t, Pt(0, 1), Rotation(math.Pi/2).Apply(Pt(1, 0)), 1e-12)
	assertPointNear(t, Pt(2, -3), Scaling(2, -3).Apply(Pt(1, 1)), 1e-12)

	// Translate first, then rotate about the origin.
	tr := Transform{TranslateX: 1, Rotate: math.Pi / 2}
	assertPointNear(t, Pt(0, 2), tr.Apply(Pt(1, 0)), 1e-12)

	assertPointNear(t, Pt(3, 3), Transform{}.Apply(Pt(3, 3)), 0, "zero transform is identity")
	assertPointNear(t, Pt(1, 0), Translation(5, 5).ApplyVector(Pt(1, 0)), 0)
}

func TestTransformMirrors(t *testing.T) {
	assert.False(t, Identity().Mirrors())
	assert.True(t, Scaling(-1, 1).Mirrors())
	assert.False(t, Scaling(-1, -1).Mirrors())
}

func TestArcTransform(t *testing.T) {
	a := NewArc(Pt(0, 0), 1, 0, math.Pi/2, CounterClockwise)
	a.Transform(Rotation(math.Pi / 2))
	assert.InDelta(t, math.Pi/2, a.StartAngle, 1e-12)
	assert.InDelta(t, math.Pi, a.EndAngle, 1e-12)
	assert.Equal(t, CounterClockwise, a.Orientation())

	m := NewArc(Pt(0, 0), 1, 0, math.Pi/2, CounterClockwise)
	m.Transform(Scaling(-2, 2))
	assert.Equal(t, Clockwise, m.Orientation())
	assert.InDelta(t, 2, m.Radius, 1e-12)
	assertPointNear(t, Pt(-2, 0), m.StartPoint(), 1e-12)
	assertPointNear(t, Pt(0, 2), m.EndPoint(), 1e-12)
	assert.InDelta(t, math.Pi, m.Length(), 1e-9)
}

func TestCircleTransform(t *testing.T) {
	c := NewCircle(Pt(1, 1), 2)
	c.Transform(Transform{TranslateX: 1, ScaleX: 3, ScaleY: 3})
	assertPointNear(t, Pt(6, 3), c.Origin, 1e-12)
	assert.InDelta(t, 6, c.Radius, 1e-12)
}

func TestCircleRotationMovesStartPoint(t *testing.T) {
	c := NewCircle(Pt(1, 1), 2)
	c.Transform(Rotation(math.Pi / 2))
	assertPointNear(t, Pt(-1, 1), c.Origin, 1e-12)
	assertPointNear(t, Pt(-1, 3), c.StartPoint(), 1e-12)
	assertPointNear(t, c.StartPoint(), c.EndPoint(), 1e-12)

	pts := c.Sample(4)
	assertPointNear(t, Pt(-1, 3), pts[0], 1e-12)
	assertPointNear(t, Pt(-3, 1), pts[1], 1e-12)
	assertPointNear(t, Pt(-1, 3), pts[4], 1e-12)

	rec, err := ToRecord(c)
	require.NoError(t, err)
	back, err := FromRecord(rec, DefaultTolerance)
	require.NoError(t, err)
	assertPointNear(t, c.StartPoint(), back.StartPoint(), 1e-12)
}

func TestEllipseTransformKeepsShape(t *testing.T) {
	e := NewEllipse(Pt(0, 0), Pt(4, 0), 0.5, 0, 2*math.Pi)
	e.Transform(Rotation(math.Pi / 2))
	assertPointNear(t, Pt(0, 4), e.StartPoint(), 1e-12)
	assert.InDelta(t, 0.5, e.Ratio(), 1e-12)
}
