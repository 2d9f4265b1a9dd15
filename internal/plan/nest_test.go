package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
)

func concentric() (big, mid, small *Cut) {
	return NewCut(square(0, 0, 10)), NewCut(square(2, 2, 6)), NewCut(square(4, 4, 2))
}

func TestNestConcentricSquares(t *testing.T) {
	big, mid, small := concentric()
	f, err := Nest([]*Cut{small, big, mid}, geom.DefaultContainmentOptions())
	require.NoError(t, err)

	require.Len(t, f.Nodes, 3)
	assert.Same(t, big, f.Nodes[0].Cut)
	assert.Same(t, mid, f.Nodes[1].Cut)
	assert.Same(t, small, f.Nodes[2].Cut)

	assert.Equal(t, []int{0}, f.Roots)
	assert.Equal(t, []int{1}, f.Nodes[0].Children)
	assert.Equal(t, 0, f.Nodes[1].Parent)
	assert.Equal(t, []int{2}, f.Nodes[1].Children)
	assert.Equal(t, 1, f.Nodes[2].Parent, "tightest container is the parent")
	assert.Equal(t, 2, f.Depth(2))
}

func TestToPartsConcentricSquares(t *testing.T) {
	big, mid, small := concentric()
	f, err := Nest([]*Cut{big, mid, small}, geom.DefaultContainmentOptions())
	require.NoError(t, err)

	parts := ToParts(f)
	require.Len(t, parts, 2)

	assert.Same(t, big, parts[0].Shell())
	require.Len(t, parts[0].Holes(), 1)
	assert.Same(t, mid, parts[0].Holes()[0])
	assert.True(t, mid.Hole)
	assert.False(t, big.Hole)

	assert.Same(t, small, parts[1].Shell())
	assert.Empty(t, parts[1].Holes())
	assert.False(t, small.Hole, "an island is a shell")
	assert.NotEqual(t, parts[0].ID, parts[1].ID)
}

func TestNestSiblingsAndOpenPaths(t *testing.T) {
	outer := NewCut(square(0, 0, 100))
	holeA := NewCut(circle(20, 20, 5))
	holeB := NewCut(square(60, 60, 10))
	apart := NewCut(square(200, 0, 10))
	open := NewCut(geom.NewPolyshape(geom.DefaultTolerance, geom.NewLine(geom.Pt(40, 40), geom.Pt(50, 50))))

	f, err := Nest([]*Cut{holeA, open, outer, apart, holeB}, geom.DefaultContainmentOptions())
	require.NoError(t, err)
	require.Len(t, f.Nodes, 5)

	// Closed cuts by area: outer, apart and holeB (equal, input order kept), holeA, then open.
	assert.Same(t, outer, f.Nodes[0].Cut)
	assert.Same(t, open, f.Nodes[4].Cut)
	assert.Len(t, f.Nodes[0].Children, 2)
	assert.Len(t, f.Roots, 3)
	assert.Equal(t, NoParent, f.Nodes[4].Parent, "open paths are always roots")

	parts := ToParts(f)
	require.Len(t, parts, 3)
	assert.Len(t, parts[0].Holes(), 2)
}

func TestNestEmpty(t *testing.T) {
	f, err := Nest(nil, geom.DefaultContainmentOptions())
	require.NoError(t, err)
	assert.Empty(t, f.Roots)
	assert.Empty(t, ToParts(f))
}
