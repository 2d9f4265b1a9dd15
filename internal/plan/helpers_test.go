package plan

import (
	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
)

func squareLines(x, y, size float64) []geom.Shape {
	a, b := geom.Pt(x, y), geom.Pt(x+size, y)
	c, d := geom.Pt(x+size, y+size), geom.Pt(x, y+size)
	return []geom.Shape{geom.NewLine(a, b), geom.NewLine(b, c), geom.NewLine(c, d), geom.NewLine(d, a)}
}

// square returns a counter-clockwise square path starting at its lower left corner.
func square(x, y, size float64) *geom.Polyshape {
	return geom.NewPolyshape(geom.DefaultTolerance, squareLines(x, y, size)...)
}

func circle(x, y, r float64) *geom.Polyshape {
	return geom.NewPolyshape(geom.DefaultTolerance, geom.NewCircle(geom.Pt(x, y), r))
}

func area(p *geom.Polyshape) float64 {
	a, _ := p.Area()
	return a
}
