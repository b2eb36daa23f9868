package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/piwi3910/BarCut/internal/milp"
	"github.com/piwi3910/BarCut/internal/model"
)

// Backend is the MILP capability the cutting model is written against.
// *milp.Solver satisfies it.
type Backend interface {
	IntVar(lb, ub float64, name string) *milp.Variable
	NumVar(lb, ub float64, name string) *milp.Variable
	BoolVar(name string) *milp.Variable
	AddNamedConstraint(name string, expr milp.Expr, sense milp.Sense, rhs float64) *milp.Constraint
	Minimize(expr milp.Expr)
	SetHint(vars []*milp.Variable, values []float64)
	SetTimeLimit(d time.Duration)
	Solve(ctx context.Context) milp.Status
	Value(v *milp.Variable) float64
	WallTime() time.Duration
}

var _ Backend = (*milp.Solver)(nil)

// cutModel keeps the variable arrays created for one solve.
type cutModel struct {
	backend Backend
	bounds  model.Bounds

	y  []*milp.Variable   // y[j] = 1 when bar j is used
	x  [][]*milp.Variable // x[i][j] = pieces of line i cut from bar j
	w  []*milp.Variable   // w[j] = leftover of bar j
	nb *milp.Variable     // number of bars used
}

// buildModel formulates the cutting-stock program on b.
func buildModel(b Backend, demands []model.DemandLine, parentWidth float64, bounds model.Bounds, mode model.CutMode) *cutModel {
	nBars := bounds.MaxBars
	m := &cutModel{
		backend: b,
		bounds:  bounds,
		y:       make([]*milp.Variable, nBars),
		x:       make([][]*milp.Variable, len(demands)),
		w:       make([]*milp.Variable, nBars),
	}

	for j := 0; j < nBars; j++ {
		m.y[j] = b.BoolVar(fmt.Sprintf("y_%d", j))
	}
	for i := range demands {
		m.x[i] = make([]*milp.Variable, nBars)
		for j := 0; j < nBars; j++ {
			m.x[i][j] = b.IntVar(0, float64(bounds.PerLineCap[i]), fmt.Sprintf("x_%d_%d", i, j))
		}
	}
	for j := 0; j < nBars; j++ {
		m.w[j] = b.NumVar(0, parentWidth, fmt.Sprintf("w_%d", j))
	}
	m.nb = b.IntVar(float64(bounds.MinBars), float64(bounds.MaxBars), "nb")

	// Demand
	for i, d := range demands {
		cut := milp.Sum(m.x[i]...)
		if mode == model.CutMinWaste {
			b.AddNamedConstraint(fmt.Sprintf("demand_%d", i), cut, milp.GE, float64(d.Quantity))
		} else {
			b.AddNamedConstraint(fmt.Sprintf("demand_%d", i), cut, milp.EQ, float64(d.Quantity))
		}
	}

	for j := 0; j < nBars; j++ {
		var used milp.Expr
		for i, d := range demands {
			used = used.AddTerm(d.Width, m.x[i][j])
		}

		// Capacity: sum width*x <= P*y
		b.AddNamedConstraint(fmt.Sprintf("capacity_%d", j),
			used.AddTerm(-parentWidth, m.y[j]), milp.LE, 0)

		// Leftover: P*y - sum width*x == w
		b.AddNamedConstraint(fmt.Sprintf("leftover_%d", j),
			milp.Term(parentWidth, m.y[j]).Minus(used).AddTerm(-1, m.w[j]), milp.EQ, 0)
	}

	// Bar j carries at least as many pieces as bar j+1.
	for j := 0; j+1 < nBars; j++ {
		var order milp.Expr
		for i := range demands {
			order = order.AddTerm(1, m.x[i][j]).AddTerm(-1, m.x[i][j+1])
		}
		b.AddNamedConstraint(fmt.Sprintf("order_%d", j), order, milp.GE, 0)
	}

	b.AddNamedConstraint("bars", milp.Term(1, m.nb).Minus(milp.Sum(m.y...)), milp.EQ, 0)

	// Weighting bar j by j+1 front-packs the plan without changing the bar count.
	var objective milp.Expr
	for j, y := range m.y {
		objective = objective.AddTerm(float64(j+1), y)
	}
	b.Minimize(objective)

	return m
}
