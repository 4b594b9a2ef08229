package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/piwi3910/kerfcut/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string            `json:"name"`
	Settings model.CutSettings `json:"settings"`
}

// ComparisonResult holds the optimization result and statistics for one scenario.
type ComparisonResult struct {
	Scenario ComparisonScenario       `json:"scenario"`
	Result   model.OptimizationResult `json:"result"`
	Stats    model.OptimizationStats  `json:"stats"`
}

// CompareScenarios runs every scenario and returns the results ranked best
// first by unplaced count, sheet count and waste. Scenarios with an unknown
// algorithm fail the whole comparison.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, stocks []model.Stock, cuts []model.Cut, opts ...Option) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := New(scenario.Settings, opts...).Optimize(ctx, stocks, cuts)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		results = append(results, ComparisonResult{
			Scenario: scenario,
			Result:   result,
			Stats:    CalculateStats(result),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Stats, results[j].Stats
		if a.Unplaced != b.Unplaced {
			return a.Unplaced < b.Unplaced
		}
		if a.Sheets != b.Sheets {
			return a.Sheets < b.Sheets
		}
		return a.Waste.LessThan(b.Waste)
	})

	return results, nil
}

// BuildDefaultScenarios returns one scenario per algorithm at the base
// settings, plus the guillotine strategy at every other kerf preset to show
// what a different blade would save.
func BuildDefaultScenarios(base model.CutSettings) []ComparisonScenario {
	var scenarios []ComparisonScenario
	for _, algo := range []model.Algorithm{model.AlgorithmGuillotine, model.AlgorithmShelf, model.AlgorithmOptimal} {
		s := base
		s.Algorithm = algo
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("%s (kerf %s\")", algo, model.ToFraction(base.Kerf)),
			Settings: s,
		})
	}

	for _, kp := range model.KerfPresets {
		if kp.Value == base.Kerf {
			continue
		}
		s := base
		s.Algorithm = model.AlgorithmGuillotine
		s.Kerf = kp.Value
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("guillotine (kerf %s)", kp.Label),
			Settings: s,
		})
	}

	return scenarios
}
