package geom

import "math"

// Transform is applied in the order translate, rotate (about the drawing
// origin, radians counter-clockwise), scale. A zero scale factor is read as 1
// so a transform that only sets a translation stays usable.
type Transform struct {
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
	Rotate     float64 `json:"rotate"`
	ScaleX     float64 `json:"scale_x"`
	ScaleY     float64 `json:"scale_y"`
}

// Identity returns a transform that leaves points unchanged.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Translation returns a transform that only translates.
func Translation(dx, dy float64) Transform {
	return Transform{TranslateX: dx, TranslateY: dy, ScaleX: 1, ScaleY: 1}
}

// Rotation returns a transform that only rotates about the origin.
func Rotation(angle float64) Transform {
	return Transform{Rotate: angle, ScaleX: 1, ScaleY: 1}
}

// Scaling returns a transform that only scales.
func Scaling(sx, sy float64) Transform {
	return Transform{ScaleX: sx, ScaleY: sy}
}

// Apply maps p through the transform.
func (t Transform) Apply(p Point) Point {
	x := p.X + t.TranslateX
	y := p.Y + t.TranslateY
	if t.Rotate != 0 {
		sin, cos := math.Sincos(t.Rotate)
		x, y = x*cos-y*sin, x*sin+y*cos
	}
	sx, sy := t.scales()
	return Point{X: x * sx, Y: y * sy}
}

// ApplyVector maps a direction vector: translation is ignored.
func (t Transform) ApplyVector(v Point) Point {
	x, y := v.X, v.Y
	if t.Rotate != 0 {
		sin, cos := math.Sincos(t.Rotate)
		x, y = x*cos-y*sin, x*sin+y*cos
	}
	sx, sy := t.scales()
	return Point{X: x * sx, Y: y * sy}
}

func (t Transform) scales() (float64, float64) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

// Mirrors reports whether the transform flips handedness, which reverses
// the orientation of every curved shape it is applied to.
func (t Transform) Mirrors() bool {
	sx, sy := t.scales()
	return sx*sy < 0
}

// normalizeAngle maps a into [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
