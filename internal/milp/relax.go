package milp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	integralityTol = 1e-6
	feasibilityTol = 1e-7
	fixTol         = 1e-9
)

type relaxKind int

const (
	relaxOptimal relaxKind = iota
	relaxInfeasible
	relaxUnbounded
	relaxFailed
)

// relaxation is the LP optimum of one node with integrality dropped.
type relaxation struct {
	kind relaxKind
	x    []float64
	obj  float64
	err  error
}

// problem is the model in minimization form, shared by every search node.
type problem struct {
	n       int
	cost    []float64
	offset  float64
	rows    []*Constraint
	integer []bool
	inRow   []bool
}

func newProblem(s *Solver) *problem {
	p := &problem{
		n:       len(s.vars),
		cost:    make([]float64, len(s.vars)),
		rows:    s.rows,
		integer: make([]bool, len(s.vars)),
		inRow:   make([]bool, len(s.vars)),
	}
	sign := 1.0
	if s.maximize {
		sign = -1
	}
	for _, t := range s.obj.terms {
		p.cost[t.v.index] += sign * t.coef
	}
	p.offset = sign * s.obj.constant
	for k, v := range s.vars {
		p.integer[k] = v.integer
	}
	for _, c := range s.rows {
		for _, col := range c.cols {
			p.inRow[col] = true
		}
	}
	return p
}

// integralObjective reports whether every objective term is an integer
// variable with an integral coefficient, so objective values of integer
// solutions are integral and LP bounds may be rounded up.
func (p *problem) integralObjective() bool {
	for k, c := range p.cost {
		if c == 0 {
			continue
		}
		if !p.integer[k] || math.Abs(c-math.Round(c)) > fixTol {
			return false
		}
	}
	return math.Abs(p.offset-math.Round(p.offset)) <= fixTol
}

func (p *problem) objective(x []float64) float64 {
	obj := p.offset
	for k, c := range p.cost {
		obj += c * x[k]
	}
	return obj
}

// relax solves the LP relaxation for the column bounds [lo, hi].
//
// Fixed columns and columns that appear only in the objective are settled
// first; rows left without free columns are checked and dropped. The rest
// goes to the bounded simplex with one slack column per row, whose bounds
// carry the row sense.
func (p *problem) relax(lo, hi []float64) relaxation {
	fixed := make([]bool, p.n)
	value := make([]float64, p.n)
	for k := 0; k < p.n; k++ {
		if hi[k] < lo[k]-feasibilityTol {
			return relaxation{kind: relaxInfeasible}
		}
		value[k] = lo[k]
		switch {
		case hi[k]-lo[k] <= fixTol:
			fixed[k] = true
		case !p.inRow[k]:
			// Column only lives in the objective: settle it at the better bound.
			if p.cost[k] < 0 {
				if math.IsInf(hi[k], 1) {
					return relaxation{kind: relaxUnbounded}
				}
				value[k] = hi[k]
			}
			fixed[k] = true
		}
	}

	col := make([]int, p.n)
	nfree := 0
	for k := 0; k < p.n; k++ {
		if fixed[k] {
			col[k] = -1
			continue
		}
		col[k] = nfree
		nfree++
	}

	type sparseRow struct {
		cols  []int
		vals  []float64
		sense Sense
		rhs   float64
	}
	var rows []sparseRow
	for _, c := range p.rows {
		r := sparseRow{sense: c.sense, rhs: c.rhs}
		for i, k := range c.cols {
			if fixed[k] {
				r.rhs -= c.coefs[i] * value[k]
				continue
			}
			r.cols = append(r.cols, col[k])
			r.vals = append(r.vals, c.coefs[i])
		}
		if len(r.cols) == 0 {
			if !satisfied(c.sense, r.rhs, c.rhs) {
				return relaxation{kind: relaxInfeasible}
			}
			continue
		}
		rows = append(rows, r)
	}

	if len(rows) == 0 {
		x := make([]float64, p.n)
		for k := 0; k < p.n; k++ {
			x[k] = value[k]
			if !fixed[k] && p.cost[k] < 0 {
				if math.IsInf(hi[k], 1) {
					return relaxation{kind: relaxUnbounded}
				}
				x[k] = hi[k]
			}
		}
		return relaxation{kind: relaxOptimal, x: x, obj: p.objective(x)}
	}

	m := len(rows)
	ncols := nfree + m
	lp := &boundedLP{
		a:     mat.NewDense(m, ncols, nil),
		b:     make([]float64, m),
		c:     make([]float64, ncols),
		lo:    make([]float64, ncols),
		hi:    make([]float64, ncols),
		slack: make([]int, m),
	}
	for k := 0; k < p.n; k++ {
		if fixed[k] {
			continue
		}
		lp.c[col[k]] = p.cost[k]
		lp.lo[col[k]] = lo[k]
		lp.hi[col[k]] = hi[k]
	}
	for i, r := range rows {
		for j, c := range r.cols {
			lp.a.Set(i, c, lp.a.At(i, c)+r.vals[j])
		}
		s := nfree + i
		lp.a.Set(i, s, 1)
		lp.slack[i] = s
		lp.b[i] = r.rhs
		switch r.sense {
		case LE:
			lp.lo[s], lp.hi[s] = 0, math.Inf(1)
		case GE:
			lp.lo[s], lp.hi[s] = math.Inf(-1), 0
		}
	}

	rel := lp.solve()
	if rel.kind != relaxOptimal {
		return rel
	}

	x := make([]float64, p.n)
	for k := 0; k < p.n; k++ {
		if fixed[k] {
			x[k] = value[k]
			continue
		}
		x[k] = rel.x[col[k]]
	}
	return relaxation{kind: relaxOptimal, x: x, obj: p.objective(x)}
}

func satisfied(sense Sense, rhs, scale float64) bool {
	tol := feasibilityTol * (1 + math.Abs(scale))
	switch sense {
	case LE:
		return 0 <= rhs+tol
	case GE:
		return 0 >= rhs-tol
	default:
		return math.Abs(rhs) <= tol
	}
}
