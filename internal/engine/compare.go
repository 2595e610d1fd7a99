package engine

import (
	"fmt"

	"github.com/piwi3910/BeamDetail/internal/model"
)

// Cutting strategies.
const (
	StrategyFirstFit = "first-fit"
	StrategyGenetic  = "genetic"
)

// ComparisonScenario defines a named set of cutting settings to compare.
type ComparisonScenario struct {
	Name        string
	Strategy    string
	StockLength float64
	Kerf        float64
}

// ComparisonResult holds the cutting plan and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Plan          CutPlan
	StockBars     int
	Utilization   float64
	WastePercent  float64
	UnplacedCount int
}

// CompareScenarios plans the cuts for each scenario and returns the results
// in scenario order.
func CompareScenarios(scenarios []ComparisonScenario, records []model.BarRecord, elements int) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		planner := NewCutPlanner(scenario.StockLength, scenario.Kerf)
		var plan CutPlan
		if scenario.Strategy == StrategyGenetic {
			plan = planner.PlanGenetic(records, elements, DefaultGeneticConfig())
		} else {
			plan = planner.Plan(records, elements)
		}

		utilization := plan.Utilization()
		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Plan:          plan,
			StockBars:     plan.StockBars(),
			Utilization:   utilization,
			WastePercent:  100.0 - utilization,
			UnplacedCount: len(plan.Unplaced()),
		})
	}

	return results
}

// BuildDefaultScenarios varies the current settings to show what-if
// alternatives: the other strategy, a thinner cut and the other common
// mill length.
func BuildDefaultScenarios(stockLength, kerf float64, strategy string) []ComparisonScenario {
	if stockLength <= 0 {
		stockLength = DefaultStockLength
	}
	if strategy != StrategyGenetic {
		strategy = StrategyFirstFit
	}
	scenarios := []ComparisonScenario{
		{Name: "Current settings", Strategy: strategy, StockLength: stockLength, Kerf: kerf},
	}

	alt := StrategyGenetic
	name := "Genetic algorithm"
	if strategy == StrategyGenetic {
		alt = StrategyFirstFit
		name = "First fit decreasing"
	}
	scenarios = append(scenarios, ComparisonScenario{Name: name, Strategy: alt, StockLength: stockLength, Kerf: kerf})

	if kerf > 1.0 {
		scenarios = append(scenarios, ComparisonScenario{
			Name:        fmt.Sprintf("Kerf %.1fmm (half)", kerf*0.5),
			Strategy:    strategy,
			StockLength: stockLength,
			Kerf:        kerf * 0.5,
		})
	}

	other := 6000.0
	if stockLength == 6000 {
		other = 12000
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:        fmt.Sprintf("Stock %s mm", model.FormatNumber(other)),
		Strategy:    strategy,
		StockLength: other,
		Kerf:        kerf,
	})

	return scenarios
}
