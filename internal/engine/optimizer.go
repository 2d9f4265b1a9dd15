package engine

import (
	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
)

// Optimizer orders a set of points into a short open tour. The tour does not
// return to its first point.
type Optimizer struct {
	Config GeneticConfig
}

// New creates an optimizer from tour settings. Zero fields fall back to
// DefaultGeneticConfig.
func New(settings model.TourSettings) *Optimizer {
	return &Optimizer{Config: ConfigFromSettings(settings)}
}

// Order returns a permutation of point indices. When start is non-nil the
// tour begins there, so the first visited point is chosen relative to it.
// Fewer than two points are returned in their given order.
func (o *Optimizer) Order(points []geom.Point, start *geom.Point) []int {
	n := len(points)
	if n < 2 {
		return identity(n)
	}

	config := o.Config

	// Scale generations for larger problems
	if n > 20 && config.Generations < 150 {
		config.Generations = 150
	}
	if n > 50 {
		if config.Generations < 200 {
			config.Generations = 200
		}
		if config.PopulationSize < 80 {
			config.PopulationSize = 80
		}
	}

	ga := newGeneticOptimizer(config, points, start)
	order := ga.optimize()
	if config.TwoOpt {
		order = twoOpt(points, start, order)
	}
	return order
}

// TourLength is the length of the open path visiting points in order,
// starting from start when it is non-nil.
func TourLength(points []geom.Point, start *geom.Point, order []int) float64 {
	if len(order) == 0 {
		return 0
	}
	var total float64
	if start != nil {
		total += start.Distance(points[order[0]])
	}
	for i := 1; i < len(order); i++ {
		total += points[order[i-1]].Distance(points[order[i]])
	}
	return total
}

func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// nearestNeighbour builds a greedy tour from start, or from the first point
// when start is nil.
func nearestNeighbour(points []geom.Point, start *geom.Point) []int {
	n := len(points)
	if n == 0 {
		return nil
	}
	visited := make([]bool, n)
	order := make([]int, 0, n)

	var cur geom.Point
	if start != nil {
		cur = *start
	} else {
		visited[0] = true
		order = append(order, 0)
		cur = points[0]
	}
	for len(order) < n {
		best, bestDist := -1, 0.0
		for i, p := range points {
			if visited[i] {
				continue
			}
			if d := cur.Distance(p); best < 0 || d < bestDist {
				best, bestDist = i, d
			}
		}
		visited[best] = true
		order = append(order, best)
		cur = points[best]
	}
	return order
}

// maxTwoOptPasses bounds the polishing loop on pathological inputs.
const maxTwoOptPasses = 100

// twoOpt reverses sub-sequences of the tour while that shortens it. The
// ends of an open tour are free unless start pins the first edge.
func twoOpt(points []geom.Point, start *geom.Point, order []int) []int {
	n := len(order)
	tour := make([]int, n)
	copy(tour, order)

	dist := func(a, b int) float64 { return points[tour[a]].Distance(points[tour[b]]) }
	for pass := 0; pass < maxTwoOptPasses; pass++ {
		improved := false
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				var before, after float64
				switch {
				case i > 0:
					before += dist(i-1, i)
					after += dist(i-1, j)
				case start != nil:
					before += start.Distance(points[tour[i]])
					after += start.Distance(points[tour[j]])
				}
				if j < n-1 {
					before += dist(j, j+1)
					after += dist(i, j+1)
				}
				if after < before-1e-9 {
					for a, b := i, j; a < b; a, b = a+1, b-1 {
						tour[a], tour[b] = tour[b], tour[a]
					}
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}
	return tour
}
