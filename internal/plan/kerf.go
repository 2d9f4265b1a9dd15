package plan

import (
	"fmt"
	"log/slog"
	"math"

	clipper "github.com/ctessum/go.clipper"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
)

// maxChord is the longest straight segment used to approximate a curve
// before offsetting, in drawing units.
const maxChord = 0.5

// Kerf compensates the tool path for a tool of the given width using the
// default coordinate precision. See KerfPrecision.
func (c *Cut) Kerf(width float64, position model.KerfPosition) error {
	return c.KerfPrecision(width, position, geom.DefaultPrecision)
}

// KerfPrecision recomputes Path from Shape. Inside and Outside move the path
// half the width into or out of the enclosed region; Centered keeps the
// drawn path; None leaves Path untouched. Offsetting works on integer
// coordinates scaled by 10^precision. Open paths are only ever cut
// centered.
func (c *Cut) KerfPrecision(width float64, position model.KerfPosition, precision int) error {
	if position == model.KerfNone || position == "" {
		return nil
	}
	if position == model.KerfCentered || width <= 0 {
		c.Path = c.Shape.ClonePolyshape()
		return nil
	}
	if !c.Shape.IsClosed() {
		slog.Debug("kerf offset skipped for open cut", "cut", c.ID, "position", position)
		c.Path = c.Shape.ClonePolyshape()
		return nil
	}

	delta := width / 2
	switch position {
	case model.KerfInside:
		delta = -delta
	case model.KerfOutside:
	default:
		return fmt.Errorf("unknown kerf position %q", position)
	}

	path, err := offset(c.Shape, delta, precision)
	if err != nil {
		return fmt.Errorf("kerf cut %s: %w", c.ID, err)
	}
	c.Path = path
	return nil
}

// offset returns a closed path delta units outside (positive) or inside
// (negative) of the closed shape, built from straight lines. It starts near
// the shape's start point and keeps its winding.
func offset(shape *geom.Polyshape, delta float64, precision int) (*geom.Polyshape, error) {
	scale := math.Pow(10, float64(precision))
	ring := outline(shape)
	if len(ring) < 3 {
		return nil, fmt.Errorf("%w: closed path has %d distinct vertices", ErrUnplannable, len(ring))
	}
	path := toClipper(ring, scale)

	simple := clipper.NewClipper(clipper.IoNone).SimplifyPolygon(path, clipper.PftEvenOdd)
	if len(simple) != 1 {
		return nil, fmt.Errorf("%w: path intersects itself", ErrUnplannable)
	}

	co := clipper.NewClipperOffset()
	co.AddPath(path, clipper.JtRound, clipper.EtClosedPolygon)
	solution := co.Execute(delta * scale)
	switch {
	case len(solution) == 0:
		return nil, fmt.Errorf("%w: offset of %g collapses the path", ErrUnplannable, delta)
	case len(solution) > 1:
		return nil, fmt.Errorf("%w: offset of %g splits the path into %d contours", ErrUnplannable, delta, len(solution))
	}

	pts := fromClipper(solution[0], scale)
	if len(pts) < 3 {
		return nil, fmt.Errorf("%w: offset of %g collapses the path", ErrUnplannable, delta)
	}
	if (geom.SignedArea(pts) > 0) != (geom.SignedArea(ring) > 0) {
		reverse(pts)
	}
	pts = rotateToNearest(pts, shape.StartPoint())

	lines := make([]geom.Shape, len(pts))
	for i := range pts {
		lines[i] = geom.NewLine(pts[i], pts[(i+1)%len(pts)])
	}
	return geom.NewPolyshape(shape.Tolerance(), lines...), nil
}

// outline flattens a closed path into a ring without the closing vertex.
// Lines keep their endpoints; curves are split into chords no longer than
// maxChord.
func outline(shape *geom.Polyshape) []geom.Point {
	var ring []geom.Point
	for _, s := range shape.Shapes() {
		n := 1
		if s.Kind() != geom.KindLine {
			n = int(math.Ceil(s.Length() / maxChord))
			n = min(max(n, 16), geom.DefaultSampleCount)
		}
		pts := s.Sample(n)
		ring = append(ring, pts[:len(pts)-1]...)
	}
	return dedupe(ring, shape.Tolerance())
}

// dedupe drops consecutive coincident points, including a last point that
// repeats the first.
func dedupe(pts []geom.Point, tol float64) []geom.Point {
	out := make([]geom.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].Coincident(p, tol) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1].Coincident(out[0], tol) {
		out = out[:len(out)-1]
	}
	return out
}

func toClipper(pts []geom.Point, scale float64) clipper.Path {
	path := make(clipper.Path, len(pts))
	for i, p := range pts {
		path[i] = &clipper.IntPoint{
			X: clipper.CInt(math.Round(p.X * scale)),
			Y: clipper.CInt(math.Round(p.Y * scale)),
		}
	}
	return path
}

func fromClipper(path clipper.Path, scale float64) []geom.Point {
	pts := make([]geom.Point, len(path))
	for i, ip := range path {
		pts[i] = geom.Point{X: float64(ip.X) / scale, Y: float64(ip.Y) / scale}
	}
	return pts
}

func reverse(pts []geom.Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// rotateToNearest cycles the ring so it begins at the vertex closest to p.
func rotateToNearest(pts []geom.Point, p geom.Point) []geom.Point {
	best, bestDist := 0, math.Inf(1)
	for i, q := range pts {
		if d := q.Distance(p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return append(pts[best:], pts[:best]...)
}
