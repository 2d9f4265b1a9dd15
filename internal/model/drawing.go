package model

import (
	"encoding/json"
	"fmt"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
)

// Layer is a named group of raw shapes from an imported drawing.
type Layer struct {
	Name   string
	Shapes []geom.Shape
}

type layerJSON struct {
	Name   string        `json:"name"`
	Shapes []geom.Record `json:"shapes"`
}

// MarshalJSON stores each shape as a tagged record.
func (l Layer) MarshalJSON() ([]byte, error) {
	out := layerJSON{Name: l.Name, Shapes: make([]geom.Record, 0, len(l.Shapes))}
	for i, s := range l.Shapes {
		r, err := geom.ToRecord(s)
		if err != nil {
			return nil, fmt.Errorf("layer %q shape %d: %w", l.Name, i, err)
		}
		out.Shapes = append(out.Shapes, r)
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds shapes from tagged records.
func (l *Layer) UnmarshalJSON(data []byte) error {
	var in layerJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	l.Name = in.Name
	l.Shapes = make([]geom.Shape, 0, len(in.Shapes))
	for i, r := range in.Shapes {
		s, err := geom.FromRecord(r, geom.DefaultTolerance)
		if err != nil {
			return fmt.Errorf("layer %q shape %d: %w", in.Name, i, err)
		}
		l.Shapes = append(l.Shapes, s)
	}
	return nil
}

// Drawing is the planner input: raw shapes grouped into layers.
type Drawing struct {
	Name   string  `json:"name"`
	Units  string  `json:"units"` // "mm" or "in", informational
	Layers []Layer `json:"layers"`
}

// NewDrawing returns an empty drawing in millimetres.
func NewDrawing(name string) Drawing {
	return Drawing{Name: name, Units: "mm", Layers: []Layer{}}
}

// Add appends shapes to the named layer, creating it on first use.
func (d *Drawing) Add(layer string, shapes ...geom.Shape) {
	for i := range d.Layers {
		if d.Layers[i].Name == layer {
			d.Layers[i].Shapes = append(d.Layers[i].Shapes, shapes...)
			return
		}
	}
	d.Layers = append(d.Layers, Layer{Name: layer, Shapes: shapes})
}

// Layer returns the named layer.
func (d Drawing) Layer(name string) (Layer, bool) {
	for _, l := range d.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}

// Shapes returns clones of every shape in layer order, so planning never
// mutates the drawing.
func (d Drawing) Shapes() []geom.Shape {
	var out []geom.Shape
	for _, l := range d.Layers {
		for _, s := range l.Shapes {
			out = append(out, s.Clone())
		}
	}
	return out
}

// ShapeCount returns the number of shapes over all layers.
func (d Drawing) ShapeCount() int {
	n := 0
	for _, l := range d.Layers {
		n += len(l.Shapes)
	}
	return n
}

// Boundary joins the bounds of every shape.
func (d Drawing) Boundary() geom.Boundary {
	b := geom.EmptyBoundary()
	for _, l := range d.Layers {
		for _, s := range l.Shapes {
			b = b.Join(s.Boundary())
		}
	}
	return b
}
