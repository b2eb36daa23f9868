package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/BarCut/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.CutSettings
}

// ComparisonResult holds the solve outcome and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Outcome       model.SolveOutcome
	BarsUsed      int
	PieceCount    int
	TotalLeftover float64
	WastePercent  float64
	ExtraPieces   int // pieces cut beyond the demanded quantity
}

// CompareScenarios solves the same demand under each scenario and returns
// the results in scenario order. Rejected input stops the comparison.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, demands []model.DemandLine) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))
	demanded := model.TotalPieces(demands)

	for _, scenario := range scenarios {
		outcome, err := New(scenario.Settings).Solve(ctx, demands)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		wastePercent := 0.0
		if len(outcome.Plan) > 0 {
			wastePercent = 100.0 - outcome.Efficiency()
		}
		extra := 0
		if outcome.Status.HasPlan() {
			extra = outcome.PieceCount() - demanded
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Outcome:       outcome,
			BarsUsed:      outcome.NumBarsUsed,
			PieceCount:    outcome.PieceCount(),
			TotalLeftover: outcome.TotalLeftover(),
			WastePercent:  wastePercent,
			ExtraPieces:   extra,
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates comparison scenarios from the current
// settings: the settings as given, then the other cut mode, then each
// inventory bar length that differs from the current one.
func BuildDefaultScenarios(baseSettings model.CutSettings, inv model.Inventory) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	alt := baseSettings
	if baseSettings.Mode == model.CutMinWaste {
		alt.Mode = model.CutExact
		scenarios = append(scenarios, ComparisonScenario{Name: "Exact Cuts", Settings: alt})
	} else {
		alt.Mode = model.CutMinWaste
		scenarios = append(scenarios, ComparisonScenario{Name: "Minimum Waste", Settings: alt})
	}

	for _, bar := range inv.Bars {
		if bar.Length == baseSettings.ParentWidth || bar.Length <= 0 {
			continue
		}
		s := baseSettings
		bar.ApplyToSettings(&s)
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("%s (%.0fmm)", bar.Name, bar.Length),
			Settings: s,
		})
	}

	return scenarios
}

// CompareModes solves demands once in exact mode and once in minWaste mode.
func CompareModes(ctx context.Context, demands []model.DemandLine, settings model.CutSettings) ([]ComparisonResult, error) {
	exact, minWaste := settings, settings
	exact.Mode = model.CutExact
	minWaste.Mode = model.CutMinWaste
	return CompareScenarios(ctx, []ComparisonScenario{
		{Name: "Exact Cuts", Settings: exact},
		{Name: "Minimum Waste", Settings: minWaste},
	}, demands)
}
