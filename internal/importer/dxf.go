package importer

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// defaultLayer is the layer DXF assigns to entities without one.
const defaultLayer = "0"

// ImportDXF imports raw shapes from a DXF file. LINE, ARC, CIRCLE and
// LWPOLYLINE entities are converted; each lands on the drawing layer named
// after its DXF layer. Other entity types are skipped with a warning.
func ImportDXF(path string) ImportResult {
	result := ImportResult{Drawing: model.NewDrawing(drawingName(path))}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	skipped := map[string]int{}
	for _, ent := range entities {
		layer := entityLayer(ent)

		switch e := ent.(type) {
		case *entity.Line:
			start, end := dxfPoint(e.Start), dxfPoint(e.End)
			if start.Coincident(end, geom.DefaultTolerance) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Skipped zero-length LINE at (%.3f, %.3f)", start.X, start.Y))
				continue
			}
			result.Drawing.Add(layer, geom.NewLine(start, end))

		case *entity.Arc:
			if e.Circle.Radius <= 0 {
				result.Warnings = append(result.Warnings, "Skipped ARC with non-positive radius")
				continue
			}
			// DXF arcs always run counter-clockwise, angles in degrees.
			result.Drawing.Add(layer, geom.NewArc(
				dxfPoint(e.Circle.Center),
				e.Circle.Radius,
				degToRad(e.Angle[0]),
				degToRad(e.Angle[1]),
				geom.CounterClockwise,
			))

		case *entity.Circle:
			if e.Radius <= 0 {
				result.Warnings = append(result.Warnings, "Skipped CIRCLE with non-positive radius")
				continue
			}
			result.Drawing.Add(layer, geom.NewCircle(dxfPoint(e.Center), e.Radius))

		case *entity.LwPolyline:
			shapes := lwPolylineShapes(e)
			if len(shapes) == 0 {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 2 distinct vertices")
				continue
			}
			result.Drawing.Add(layer, shapes...)

		default:
			skipped[strings.TrimPrefix(fmt.Sprintf("%T", ent), "*entity.")]++
		}
	}

	kinds := make([]string, 0, len(skipped))
	for k := range skipped {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d unsupported %s entities", skipped[k], strings.ToUpper(k)))
	}

	if result.Drawing.ShapeCount() == 0 {
		result.Errors = append(result.Errors, "No supported shapes found in DXF file")
	}
	return result
}

func entityLayer(ent entity.Entity) string {
	l := ent.Layer()
	if l == nil || l.Name() == "" {
		return defaultLayer
	}
	return l.Name()
}

func dxfPoint(v []float64) geom.Point {
	if len(v) < 2 {
		return geom.Point{}
	}
	return geom.Point{X: v[0], Y: v[1]}
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}

// lwPolylineShapes converts an LWPOLYLINE into lines and, where a vertex
// carries a bulge, arcs. A closed polyline gets a closing segment.
func lwPolylineShapes(lw *entity.LwPolyline) []geom.Shape {
	n := len(lw.Vertices)
	if n < 2 {
		return nil
	}

	segments := n - 1
	if lw.Closed {
		segments = n
	}

	var shapes []geom.Shape
	for i := 0; i < segments; i++ {
		start := dxfPoint(lw.Vertices[i])
		end := dxfPoint(lw.Vertices[(i+1)%n])
		if start.Coincident(end, geom.DefaultTolerance) {
			continue
		}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) > 1e-9 {
			shapes = append(shapes, bulgeArc(start, end, bulge))
		} else {
			shapes = append(shapes, geom.NewLine(start, end))
		}
	}
	return shapes
}

// bulgeArc builds the arc from p1 to p2 described by a DXF bulge factor,
// the tangent of a quarter of the included angle. Positive bulges turn
// counter-clockwise.
func bulgeArc(p1, p2 geom.Point, bulge float64) *geom.Arc {
	chord := p2.Sub(p1)
	length := chord.Hypot()
	included := 4 * math.Atan(math.Abs(bulge))
	radius := length / (2 * math.Sin(included/2))

	// Signed distance from the chord midpoint to the centre, measured to the
	// left of travel. Negative once the arc passes a semicircle.
	dist := radius * math.Cos(included/2)
	orientation := geom.CounterClockwise
	if bulge < 0 {
		dist = -dist
		orientation = geom.Clockwise
	}

	left := chord.Unit().Perp()
	center := p1.Lerp(p2, 0.5).Add(left.Mul(dist))

	return geom.NewArc(
		center,
		radius,
		math.Atan2(p1.Y-center.Y, p1.X-center.X),
		math.Atan2(p2.Y-center.Y, p2.X-center.X),
		orientation,
	)
}

// drawingName derives a drawing name from a file path.
func drawingName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
