package geom

import "fmt"

// ContainmentOptions tunes the sampling used by Contains.
type ContainmentOptions struct {
	Samples  int     `json:"samples"`
	CellSize float64 `json:"cell_size"`
}

// DefaultContainmentOptions samples 1000 segments per path on a 100 unit grid.
func DefaultContainmentOptions() ContainmentOptions {
	return ContainmentOptions{Samples: DefaultSampleCount, CellSize: DefaultCellSize}
}

// Contains reports whether inner lies inside the closed region of outer
// without touching or crossing its boundary. Both paths are sampled densely
// and every inner segment is tested against the outer segments found through
// the outer path's spatial index. Calling it with an open outer path is an
// error.
func Contains(outer, inner *Polyshape, opts ContainmentOptions) (bool, error) {
	if !outer.IsClosed() {
		return false, fmt.Errorf("containment test against %d-shape path: %w", outer.Len(), ErrOpenShape)
	}
	if opts.Samples < 1 {
		opts.Samples = DefaultSampleCount
	}
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultCellSize
	}
	if !outer.Boundary().Contains(inner.Boundary()) {
		return false, nil
	}

	index := outer.Index(opts.Samples, opts.CellSize)
	pts := inner.Sample(opts.Samples)
	for i := 1; i < len(pts); i++ {
		if index.Intersects(Segment{A: pts[i-1], B: pts[i]}) {
			return false, nil
		}
	}
	if len(pts) == 0 {
		return false, nil
	}

	// No crossings: inner is entirely inside or entirely outside, one point decides.
	ring := make([]Point, index.Len())
	for i := range ring {
		ring[i] = index.Segment(i).A
	}
	return PointInRing(pts[0], ring), nil
}
