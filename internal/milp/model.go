// Package milp is a small mixed-integer linear programming engine.
//
// Models are built the usual way: create bounded integer or continuous
// variables, register linear constraints, set a linear objective and call
// Solve. LP relaxations are solved with gonum's simplex implementation and
// integrality is enforced with a depth-first branch-and-bound search that
// honours a wall-clock time limit.
//
// A Solver is not safe for concurrent use. Build one solver per model.
package milp

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Variable is a decision variable owned by a Solver.
type Variable struct {
	index   int
	name    string
	lb, ub  float64
	integer bool
}

// Name returns the variable name given at creation.
func (v *Variable) Name() string { return v.name }

// Index returns the column index of the variable in its solver.
func (v *Variable) Index() int { return v.index }

// Integer reports whether the variable is restricted to integral values.
func (v *Variable) Integer() bool { return v.integer }

// Bounds returns the lower and upper bound of the variable.
func (v *Variable) Bounds() (lb, ub float64) { return v.lb, v.ub }

// Sense is the relation of a linear constraint.
type Sense int

const (
	LE Sense = iota // expr <= rhs
	GE              // expr >= rhs
	EQ              // expr == rhs
)

func (s Sense) String() string {
	switch s {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "=="
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// Constraint is a registered linear row.
type Constraint struct {
	name  string
	cols  []int
	coefs []float64
	sense Sense
	rhs   float64
}

// Name returns the constraint name, if any.
func (c *Constraint) Name() string { return c.name }

// Sense returns the constraint relation.
func (c *Constraint) Sense() Sense { return c.sense }

// Rhs returns the right-hand side after constants were moved out of the expression.
func (c *Constraint) Rhs() float64 { return c.rhs }

// Activity evaluates the left-hand side for the given column values.
func (c *Constraint) Activity(values []float64) float64 {
	var sum float64
	for k, col := range c.cols {
		if col < len(values) {
			sum += c.coefs[k] * values[col]
		}
	}
	return sum
}

// Solver holds one model and, after Solve, its result.
type Solver struct {
	name      string
	vars      []*Variable
	rows      []*Constraint
	obj       Expr
	maximize  bool
	timeLimit time.Duration
	hint      map[int]float64

	mu sync.Mutex

	status    Status
	values    []float64
	objValue  float64
	bestBound float64
	wallTime  time.Duration
	nodes     int
}

// NewSolver returns an empty model. The status is NotSolved until Solve runs.
func NewSolver(name string) *Solver {
	return &Solver{name: name, status: NotSolved}
}

// Name returns the model name.
func (s *Solver) Name() string { return s.name }

func (s *Solver) newVar(lb, ub float64, integer bool, name string) *Variable {
	if integer {
		lb = math.Ceil(lb - integralityTol)
		if !math.IsInf(ub, 1) {
			ub = math.Floor(ub + integralityTol)
		}
	}
	v := &Variable{
		index:   len(s.vars),
		name:    name,
		lb:      lb,
		ub:      ub,
		integer: integer,
	}
	s.vars = append(s.vars, v)
	return v
}

// IntVar creates an integer variable in [lb, ub].
func (s *Solver) IntVar(lb, ub float64, name string) *Variable {
	return s.newVar(lb, ub, true, name)
}

// NumVar creates a continuous variable in [lb, ub].
func (s *Solver) NumVar(lb, ub float64, name string) *Variable {
	return s.newVar(lb, ub, false, name)
}

// BoolVar creates a 0/1 integer variable.
func (s *Solver) BoolVar(name string) *Variable {
	return s.newVar(0, 1, true, name)
}

// NumVariables returns the number of columns.
func (s *Solver) NumVariables() int { return len(s.vars) }

// NumConstraints returns the number of rows.
func (s *Solver) NumConstraints() int { return len(s.rows) }

// Variables returns the model columns in creation order.
func (s *Solver) Variables() []*Variable { return s.vars }

// Constraints returns the model rows in creation order.
func (s *Solver) Constraints() []*Constraint { return s.rows }

// AddConstraint registers expr (sense) rhs. Constants inside expr are moved
// to the right-hand side and repeated variables are merged.
func (s *Solver) AddConstraint(expr Expr, sense Sense, rhs float64) *Constraint {
	return s.AddNamedConstraint("", expr, sense, rhs)
}

// AddNamedConstraint is AddConstraint with a row name used in error messages.
func (s *Solver) AddNamedConstraint(name string, expr Expr, sense Sense, rhs float64) *Constraint {
	cols, coefs := expr.compact()
	c := &Constraint{
		name:  name,
		cols:  cols,
		coefs: coefs,
		sense: sense,
		rhs:   rhs - expr.constant,
	}
	s.rows = append(s.rows, c)
	return c
}

// AddLE registers expr <= rhs.
func (s *Solver) AddLE(expr Expr, rhs float64) *Constraint { return s.AddConstraint(expr, LE, rhs) }

// AddGE registers expr >= rhs.
func (s *Solver) AddGE(expr Expr, rhs float64) *Constraint { return s.AddConstraint(expr, GE, rhs) }

// AddEQ registers expr == rhs.
func (s *Solver) AddEQ(expr Expr, rhs float64) *Constraint { return s.AddConstraint(expr, EQ, rhs) }

// Minimize sets the objective to minimize expr.
func (s *Solver) Minimize(expr Expr) {
	s.obj = expr.clone()
	s.maximize = false
}

// Maximize sets the objective to maximize expr.
func (s *Solver) Maximize(expr Expr) {
	s.obj = expr.clone()
	s.maximize = true
}

// SetHint suggests values for vars. Before branching, Solve fixes the hinted
// columns, completes the rest with one relaxation and keeps the result as the
// first incumbent when it is integer feasible. A hint that does not lead to a
// solution is ignored. Calling SetHint again replaces the previous hint.
func (s *Solver) SetHint(vars []*Variable, values []float64) {
	s.hint = make(map[int]float64, len(vars))
	for k, v := range vars {
		if k < len(values) && v != nil {
			s.hint[v.index] = values[k]
		}
	}
}

// SetTimeLimit bounds the wall-clock duration of Solve. Zero means no limit.
func (s *Solver) SetTimeLimit(d time.Duration) { s.timeLimit = d }

// TimeLimit returns the configured limit.
func (s *Solver) TimeLimit() time.Duration { return s.timeLimit }

// validate checks that the model can be handed to the relaxation.
func (s *Solver) validate() error {
	for _, v := range s.vars {
		if math.IsInf(v.lb, 0) || math.IsNaN(v.lb) {
			return fmt.Errorf("variable %q: lower bound must be finite", v.name)
		}
		if math.IsNaN(v.ub) || math.IsInf(v.ub, -1) {
			return fmt.Errorf("variable %q: invalid upper bound", v.name)
		}
	}
	for i, c := range s.rows {
		if math.IsNaN(c.rhs) || math.IsInf(c.rhs, 0) {
			return fmt.Errorf("constraint %d %q: right-hand side must be finite", i, c.name)
		}
		for k, coef := range c.coefs {
			if math.IsNaN(coef) || math.IsInf(coef, 0) {
				return fmt.Errorf("constraint %d %q: invalid coefficient for column %d", i, c.name, c.cols[k])
			}
		}
	}
	for _, t := range s.obj.terms {
		if math.IsNaN(t.coef) || math.IsInf(t.coef, 0) {
			return fmt.Errorf("objective: invalid coefficient for %q", t.v.name)
		}
	}
	return nil
}
