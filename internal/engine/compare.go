package engine

import (
	"fmt"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
)

// ComparisonScenario defines a named set of tour settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.TourSettings
}

// ComparisonResult holds the tour found for a single scenario.
type ComparisonResult struct {
	Scenario ComparisonScenario
	Order    []int
	Length   float64
	// Saving is the percentage of travel saved against visiting the points
	// in their given order.
	Saving float64
}

// CompareScenarios solves the same tour once per scenario, in scenario
// order. This shows what the solver settings buy on a given drawing.
func CompareScenarios(scenarios []ComparisonScenario, points []geom.Point, start *geom.Point) []ComparisonResult {
	naive := TourLength(points, start, identity(len(points)))
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		order := New(scenario.Settings).Order(points, start)
		length := TourLength(points, start, order)

		var saving float64
		if naive > 0 {
			saving = (naive - length) / naive * 100.0
		}

		results = append(results, ComparisonResult{
			Scenario: scenario,
			Order:    order,
			Length:   length,
			Saving:   saving,
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if alternatives around the current
// settings.
func BuildDefaultScenarios(base model.TourSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	// Scenario: seeded tours only, no evolution or polishing
	greedy := base
	greedy.Generations = -1
	greedy.SkipTwoOpt = true
	scenarios = append(scenarios, ComparisonScenario{
		Name:     "Nearest Neighbour",
		Settings: greedy,
	})

	// Scenario: toggle 2-opt polishing
	toggled := base
	toggled.SkipTwoOpt = !base.SkipTwoOpt
	name := "With 2-opt"
	if !base.SkipTwoOpt {
		name = "Without 2-opt"
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     name,
		Settings: toggled,
	})

	// Scenario: longer evolution
	generations := ConfigFromSettings(base).Generations
	longer := base
	longer.Generations = generations * 3
	if longer.Generations > 0 {
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("%d Generations", longer.Generations),
			Settings: longer,
		})
	}

	return scenarios
}
