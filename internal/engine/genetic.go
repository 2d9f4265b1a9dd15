package engine

import (
	"math/rand"
	"sort"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
)

// GeneticConfig holds parameters for the genetic tour solver.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	Seed           int64
	TwoOpt         bool
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
		Seed:           42,
		TwoOpt:         true,
	}
}

// ConfigFromSettings fills a GeneticConfig from settings, keeping defaults
// for zero fields. A negative Generations disables evolution so only the
// seeded tours compete.
func ConfigFromSettings(s model.TourSettings) GeneticConfig {
	c := DefaultGeneticConfig()
	if s.PopulationSize > 0 {
		c.PopulationSize = s.PopulationSize
	}
	switch {
	case s.Generations > 0:
		c.Generations = s.Generations
	case s.Generations < 0:
		c.Generations = 0
	}
	if s.MutationRate > 0 {
		c.MutationRate = s.MutationRate
	}
	if s.TournamentSize > 0 {
		c.TournamentSize = s.TournamentSize
	}
	if s.EliteCount > 0 {
		c.EliteCount = s.EliteCount
	}
	if s.Seed != 0 {
		c.Seed = s.Seed
	}
	c.TwoOpt = !s.SkipTwoOpt
	return c
}

// chromosome is a candidate tour: a permutation of point indices.
type chromosome struct {
	order []int
	cost  float64
}

// geneticOptimizer evolves tours over a fixed point set.
type geneticOptimizer struct {
	config GeneticConfig
	points []geom.Point
	start  *geom.Point
	rng    *rand.Rand
}

func newGeneticOptimizer(config GeneticConfig, points []geom.Point, start *geom.Point) *geneticOptimizer {
	if config.PopulationSize < 2 {
		config.PopulationSize = 2
	}
	if config.EliteCount < 1 {
		config.EliteCount = 1
	}
	if config.TournamentSize < 1 {
		config.TournamentSize = 1
	}
	return &geneticOptimizer{
		config: config,
		points: points,
		start:  start,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// optimize runs the genetic algorithm and returns the shortest tour found.
// The given order and the nearest-neighbour tour are part of the first
// generation and elitism keeps the best tour alive, so the result is never
// longer than either.
func (g *geneticOptimizer) optimize() []int {
	population := g.initPopulation()
	for i := range population {
		population[i].cost = g.evaluate(population[i])
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		// Sort by cost ascending (shorter is better)
		sort.SliceStable(population, func(i, j int) bool {
			return population[i].cost < population[j].cost
		})

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		// Elitism: carry over the best individuals unchanged
		eliteCount := g.config.EliteCount
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, g.copyChromosome(population[i]))
		}

		// Fill rest of population with offspring
		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)

			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)

			child.cost = g.evaluate(child)
			newPop = append(newPop, child)
		}

		population = newPop
	}

	sort.SliceStable(population, func(i, j int) bool {
		return population[i].cost < population[j].cost
	})
	return population[0].order
}

// initPopulation seeds the given order and the greedy tour, then fills the
// rest with random permutations.
func (g *geneticOptimizer) initPopulation() []chromosome {
	n := len(g.points)
	population := make([]chromosome, g.config.PopulationSize)
	population[0] = chromosome{order: identity(n)}
	population[1] = chromosome{order: nearestNeighbour(g.points, g.start)}
	for i := 2; i < len(population); i++ {
		population[i] = chromosome{order: g.rng.Perm(n)}
	}
	return population
}

// evaluate returns the open tour length.
func (g *geneticOptimizer) evaluate(c chromosome) float64 {
	return TourLength(g.points, g.start, c.order)
}

// tournamentSelect picks the best individual from a random tournament.
func (g *geneticOptimizer) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.cost < best.cost {
			best = candidate
		}
	}
	return g.copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1) for permutation chromosomes.
// It preserves the relative order of genes from both parents.
func (g *geneticOptimizer) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.order)
	if n <= 2 {
		return g.copyChromosome(parent1)
	}

	// Select two random crossover points
	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{order: make([]int, n)}

	// Copy segment from parent1
	inSegment := make([]bool, n)
	for i := point1; i <= point2; i++ {
		child.order[i] = parent1.order[i]
		inSegment[parent1.order[i]] = true
	}

	// Fill remaining positions with genes from parent2 in order
	childIdx := (point2 + 1) % n
	for _, gene := range parent2.order {
		if !inSegment[gene] {
			child.order[childIdx] = gene
			childIdx = (childIdx + 1) % n
		}
	}

	return child
}

// mutate applies random mutations to a chromosome.
func (g *geneticOptimizer) mutate(c *chromosome) {
	n := len(c.order)
	if n < 2 {
		return
	}

	// Swap mutation: swap two random genes' positions
	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.order[i], c.order[j] = c.order[j], c.order[i]
	}

	// Displacement mutation: move one gene to another position
	if g.rng.Float64() < g.config.MutationRate {
		from := g.rng.Intn(n)
		to := g.rng.Intn(n)
		gene := c.order[from]
		if from < to {
			copy(c.order[from:to], c.order[from+1:to+1])
		} else {
			copy(c.order[to+1:from+1], c.order[to:from])
		}
		c.order[to] = gene
	}

	// Inversion mutation: reverse a segment, the tour analogue of a 2-opt move
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.order[i], c.order[j] = c.order[j], c.order[i]
			i++
			j--
		}
	}
}

// copyChromosome creates a deep copy of a chromosome.
func (g *geneticOptimizer) copyChromosome(c chromosome) chromosome {
	order := make([]int, len(c.order))
	copy(order, c.order)
	return chromosome{order: order, cost: c.cost}
}
