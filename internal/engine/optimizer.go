package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/piwi3910/BarCut/internal/milp"
	"github.com/piwi3910/BarCut/internal/model"
)

// Optimizer runs the 1D cutting-stock pipeline: bounds, model, solve,
// decode, assemble. The engine is handed a heuristic start plan as a hint.
// Each Solve builds its own backend model, so one Optimizer may be used from
// several goroutines.
type Optimizer struct {
	Settings model.CutSettings
	Log      logrus.FieldLogger

	// newBackend is replaced in tests.
	newBackend func(name string) Backend
}

func New(settings model.CutSettings) *Optimizer {
	return &Optimizer{
		Settings: settings,
		Log:      logrus.StandardLogger(),
	}
}

// Solve cuts demands out of bars of Settings.ParentWidth.
//
// Invalid input returns a *RejectedInputError and no outcome. Every other
// result, including INFEASIBLE and NOT_SOLVED, is an ordinary outcome with a
// nil error.
func (o *Optimizer) Solve(ctx context.Context, demands []model.DemandLine) (model.SolveOutcome, error) {
	parentWidth := o.Settings.ParentWidth
	if err := ValidateDemands(demands, parentWidth); err != nil {
		return model.SolveOutcome{}, err
	}
	mode, err := model.ParseCutMode(string(o.Settings.Mode))
	if err != nil {
		return model.SolveOutcome{}, &RejectedInputError{Line: -1, ParentWidth: parentWidth, Reason: err.Error()}
	}

	runID := uuid.New().String()[:8]
	log := o.logger().WithFields(logrus.Fields{
		"run":          runID,
		"parent_width": parentWidth,
		"mode":         mode,
		"lines":        len(demands),
	})
	log.Info("solve started")

	bounds := estimateBounds(demands, parentWidth)
	log.WithFields(logrus.Fields{
		"min_bars": bounds.MinBars,
		"max_bars": bounds.MaxBars,
	}).Debug("bounds estimated")

	m := buildModel(o.backend(runID), demands, parentWidth, bounds, mode)
	start := startPlan(demands, parentWidth, bounds)
	m.suggest(start, demands, parentWidth)
	log.WithField("start_bars", len(start)).Debug("start plan")
	status, raw := invoke(ctx, m, o.Settings.TimeLimit())

	var plan []model.CutBar
	if status.HasSolution() {
		plan = decodePlan(raw, demands)
	}

	outcome := assemble(status, plan, raw)
	outcome.RunID = runID
	outcome.ParentWidth = parentWidth
	outcome.Mode = mode
	outcome.Bounds = bounds

	log.WithFields(logrus.Fields{
		"status":  outcome.StatusName(),
		"bars":    outcome.NumBarsUsed,
		"wall_ms": outcome.WallTimeMs,
	}).Info("solve finished")
	if status.HasSolution() && int(raw.nb+0.5) != outcome.NumBarsUsed {
		log.WithField("nb", raw.nb).Warn("decoded plan differs from the model bar count")
	}

	return outcome, nil
}

func (o *Optimizer) logger() logrus.FieldLogger {
	if o.Log == nil {
		return logrus.StandardLogger()
	}
	return o.Log
}

func (o *Optimizer) backend(runID string) Backend {
	name := fmt.Sprintf("barcut-%s", runID)
	if o.newBackend != nil {
		return o.newBackend(name)
	}
	return milp.NewSolver(name)
}

// assemble builds the outcome. The status index maps positionally onto the
// display names; the bar count is taken from the decoded plan.
func assemble(status milp.Status, plan []model.CutBar, raw rawSolution) model.SolveOutcome {
	if plan == nil {
		plan = []model.CutBar{}
	}
	outcome := model.SolveOutcome{
		Status:      model.Status(status),
		NumBarsUsed: len(plan),
		Plan:        plan,
		WallTimeMs:  float64(raw.wallTime.Microseconds()) / 1000.0,
	}
	if status.HasSolution() {
		outcome.NumSolutions = 1
		outcome.NumUniqueSolutions = 1
	}
	return outcome
}

// Solve runs one solve with default settings for the given bar length and mode.
func Solve(ctx context.Context, demands []model.DemandLine, parentWidth float64, mode model.CutMode) (model.SolveOutcome, error) {
	settings := model.DefaultSettings()
	settings.ParentWidth = parentWidth
	settings.Mode = mode
	return New(settings).Solve(ctx, demands)
}
