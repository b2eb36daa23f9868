package milp

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusNamesOrder(t *testing.T) {
	assert.Equal(t, []string{"OPTIMAL", "FEASIBLE", "INFEASIBLE", "UNBOUNDED", "ABNORMAL", "NOT_SOLVED"}, StatusNames())
	assert.Equal(t, "NOT_SOLVED", NotSolved.String())
	assert.Equal(t, "Status(9)", Status(9).String())
	assert.True(t, Feasible.HasSolution())
	assert.False(t, Infeasible.HasSolution())
}

func TestExprCompactMergesTerms(t *testing.T) {
	s := NewSolver("expr")
	x := s.NumVar(0, 10, "x")
	y := s.NumVar(0, 10, "y")

	e := Term(2, x).AddTerm(3, y).AddTerm(-2, x).Plus(Const(4))
	cols, coefs := e.compact()

	assert.Equal(t, []int{y.Index()}, cols)
	assert.Equal(t, []float64{3}, coefs)
	assert.Equal(t, 4.0, e.Constant())
	assert.InDelta(t, 3*5+4, e.Eval([]float64{1, 5}), 1e-12)
}

func TestExprIsValue(t *testing.T) {
	s := NewSolver("expr")
	x := s.NumVar(0, 1, "x")
	base := Sum(x)
	_ = base.AddTerm(1, x)
	assert.Equal(t, 1, base.Len())
}

func TestIntVarRoundsBounds(t *testing.T) {
	s := NewSolver("bounds")
	v := s.IntVar(0.5, 3.7, "v")
	lb, ub := v.Bounds()
	assert.Equal(t, 1.0, lb)
	assert.Equal(t, 3.0, ub)
	assert.True(t, v.Integer())
}

func TestSolveContinuousLP(t *testing.T) {
	s := NewSolver("lp")
	x := s.NumVar(0, math.Inf(1), "x")
	y := s.NumVar(0, math.Inf(1), "y")
	s.AddLE(Sum(x).AddTerm(2, y), 4)
	s.AddLE(Term(3, x).AddTerm(1, y), 6)
	s.Maximize(Sum(x, y))

	status := s.Solve(context.Background())

	require.Equal(t, Optimal, status)
	assert.InDelta(t, 1.6, s.Value(x), 1e-6)
	assert.InDelta(t, 1.2, s.Value(y), 1e-6)
	assert.InDelta(t, 2.8, s.ObjectiveValue(), 1e-6)
}

func TestSolveBranchesOnFractionalValue(t *testing.T) {
	s := NewSolver("branch")
	x := s.IntVar(0, 10, "x")
	s.AddLE(Term(2, x), 3)
	s.Maximize(Sum(x))

	require.Equal(t, Optimal, s.Solve(context.Background()))
	assert.Equal(t, 1.0, s.Value(x))
	assert.Greater(t, s.Nodes(), 1)
}

func TestSolveBinaryKnapsack(t *testing.T) {
	s := NewSolver("knapsack")
	weights := []float64{5, 7, 4, 3}
	values := []float64{8, 11, 6, 4}
	items := make([]*Variable, len(weights))
	for i := range items {
		items[i] = s.BoolVar("item")
	}
	s.AddLE(WeightedSum(weights, items), 14)
	s.Maximize(WeightedSum(values, items))

	require.Equal(t, Optimal, s.Solve(context.Background()))
	assert.InDelta(t, 21, s.ObjectiveValue(), 1e-6)
	assert.Equal(t, 0.0, s.Value(items[0]))
	for _, it := range items[1:] {
		assert.Equal(t, 1.0, s.Value(it))
	}
}

func TestSolveRoundsIntegralObjective(t *testing.T) {
	s := NewSolver("cover")
	x := s.IntVar(0, 10, "x")
	y := s.IntVar(0, 10, "y")
	s.AddGE(Sum(x, y), 2.5)
	s.AddEQ(Sum(x).Minus(Sum(y)), 1)
	s.Minimize(Sum(x, y))

	require.Equal(t, Optimal, s.Solve(context.Background()))
	assert.Equal(t, 2.0, s.Value(x))
	assert.Equal(t, 1.0, s.Value(y))
	assert.InDelta(t, 3, s.BestBound(), 1e-9)
}

func TestSolveInfeasible(t *testing.T) {
	s := NewSolver("infeasible")
	x := s.IntVar(0, 1, "x")
	y := s.IntVar(0, 1, "y")
	s.AddGE(Sum(x, y), 5)
	s.Minimize(Sum(x, y))

	assert.Equal(t, Infeasible, s.Solve(context.Background()))
	assert.Equal(t, 0.0, s.Value(x))
	assert.False(t, s.Solution().HasSolution())
}

func TestSolveUnbounded(t *testing.T) {
	s := NewSolver("unbounded")
	x := s.NumVar(0, math.Inf(1), "x")
	y := s.NumVar(0, math.Inf(1), "y")
	s.AddLE(Sum(x).Minus(Sum(y)), 1)
	s.Maximize(Sum(x))

	assert.Equal(t, Unbounded, s.Solve(context.Background()))
}

func TestSolveInvalidModelIsAbnormal(t *testing.T) {
	s := NewSolver("invalid")
	x := s.NumVar(math.Inf(-1), 1, "x")
	s.Minimize(Sum(x))

	assert.Equal(t, Abnormal, s.Solve(context.Background()))
}

func TestSolveExpiredContextWithoutIncumbent(t *testing.T) {
	s := NewSolver("expired")
	x := s.IntVar(0, 3, "x")
	s.AddLE(Sum(x), 2)
	s.Maximize(Sum(x))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, NotSolved, s.Solve(ctx))
	assert.Equal(t, 0.0, s.Value(x))
}

func TestSolveRecordsWallTimeAndSolution(t *testing.T) {
	s := NewSolver("snapshot")
	x := s.IntVar(0, 4, "x")
	s.AddLE(Sum(x), 3)
	s.Maximize(Sum(x))
	s.SetTimeLimit(time.Minute)

	require.Equal(t, Optimal, s.Solve(context.Background()))
	sol := s.Solution()
	assert.True(t, sol.IsOptimal())
	assert.Equal(t, 3.0, sol.Value(x.Index()))
	assert.Equal(t, 0.0, sol.Value(7))
	assert.GreaterOrEqual(t, s.WallTime(), time.Duration(0))
	assert.Equal(t, time.Minute, s.TimeLimit())
}

func TestSolveObjectiveOnlyColumn(t *testing.T) {
	s := NewSolver("free")
	x := s.IntVar(0, 5, "x")
	y := s.NumVar(0, 2, "y")
	s.AddLE(Sum(x), 3)
	s.Maximize(Sum(x, y))

	require.Equal(t, Optimal, s.Solve(context.Background()))
	assert.Equal(t, 3.0, s.Value(x))
	assert.Equal(t, 2.0, s.Value(y))
}

func TestConstraintActivity(t *testing.T) {
	s := NewSolver("activity")
	x := s.NumVar(0, 10, "x")
	y := s.NumVar(0, 10, "y")
	c := s.AddNamedConstraint("cap", Term(2, x).AddTerm(1, y).Plus(Const(1)), LE, 9)

	assert.Equal(t, "cap", c.Name())
	assert.Equal(t, LE, c.Sense())
	assert.Equal(t, 8.0, c.Rhs())
	assert.Equal(t, 7.0, c.Activity([]float64{3, 1}))
	assert.Equal(t, 2, s.NumVariables())
	assert.Equal(t, 1, s.NumConstraints())
}

func TestSolveGreaterOrEqualRows(t *testing.T) {
	s := NewSolver("cover")
	x := s.NumVar(0, math.Inf(1), "x")
	y := s.NumVar(0, math.Inf(1), "y")
	s.AddGE(Sum(x).AddTerm(2, y), 4)
	s.AddGE(Term(3, x).AddTerm(1, y), 6)
	s.Minimize(Sum(x, y))

	require.Equal(t, Optimal, s.Solve(context.Background()))
	assert.InDelta(t, 1.6, s.Value(x), 1e-6)
	assert.InDelta(t, 1.2, s.Value(y), 1e-6)
	assert.InDelta(t, 2.8, s.ObjectiveValue(), 1e-6)
}

func TestSolveRepeatedEqualityRows(t *testing.T) {
	s := NewSolver("repeated")
	x := s.NumVar(0, 10, "x")
	y := s.NumVar(0, 10, "y")
	s.AddEQ(Sum(x, y), 4)
	s.AddEQ(Sum(x, y), 4)
	s.AddEQ(Sum(x).Minus(Sum(y)), 0)
	s.Maximize(Sum(x).AddTerm(2, y))

	require.Equal(t, Optimal, s.Solve(context.Background()))
	assert.InDelta(t, 2, s.Value(x), 1e-6)
	assert.InDelta(t, 2, s.Value(y), 1e-6)
}

func TestSolveDegenerateLP(t *testing.T) {
	// Beale's example: every basis at the origin is degenerate.
	s := NewSolver("beale")
	a := s.NumVar(0, math.Inf(1), "a")
	b := s.NumVar(0, math.Inf(1), "b")
	c := s.NumVar(0, math.Inf(1), "c")
	d := s.NumVar(0, math.Inf(1), "d")
	vars := []*Variable{a, b, c, d}
	s.AddLE(WeightedSum([]float64{0.25, -8, -1, 9}, vars), 0)
	s.AddLE(WeightedSum([]float64{0.5, -12, -0.5, 3}, vars), 0)
	s.AddLE(Sum(c), 1)
	s.Maximize(WeightedSum([]float64{0.75, -20, 0.5, -6}, vars))

	require.Equal(t, Optimal, s.Solve(context.Background()))
	assert.InDelta(t, 1.25, s.ObjectiveValue(), 1e-6)
	assert.InDelta(t, 1, s.Value(a), 1e-6)
	assert.InDelta(t, 1, s.Value(c), 1e-6)
}

func TestSolveWithHint(t *testing.T) {
	tests := []struct {
		name  string
		hint  []float64
		nodes int
	}{
		{"none", nil, 3},
		{"optimal", []float64{2}, 1},
		{"out of bounds", []float64{20}, 3},
		{"infeasible", []float64{1}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSolver("hint")
			x := s.IntVar(0, 10, "x")
			s.AddGE(Term(2, x), 3)
			s.Minimize(Sum(x))
			if tt.hint != nil {
				s.SetHint([]*Variable{x}, tt.hint)
			}

			require.Equal(t, Optimal, s.Solve(context.Background()))
			assert.Equal(t, 2.0, s.Value(x))
			assert.Equal(t, tt.nodes, s.Nodes())
		})
	}
}

func TestSolveHintIgnoredOnExpiredContext(t *testing.T) {
	s := NewSolver("expired")
	x := s.IntVar(0, 3, "x")
	s.AddLE(Sum(x), 2)
	s.Maximize(Sum(x))
	s.SetHint([]*Variable{x}, []float64{2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, NotSolved, s.Solve(ctx))
	assert.False(t, s.Solution().HasSolution())
}

func TestSolutionIsValue(t *testing.T) {
	s := NewSolver("copy")
	x := s.IntVar(0, 4, "x")
	s.AddLE(Sum(x), 3)
	s.Maximize(Sum(x))
	require.Equal(t, Optimal, s.Solve(context.Background()))

	sol := s.Solution()
	assert.True(t, sol.HasSolution())
	assert.True(t, s.Solution().IsOptimal())
	assert.Equal(t, 3.0, s.Solution().Value(x.Index()))
}
