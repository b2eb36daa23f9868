package milp

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	optimalityTol = 1e-9
	pivotTol      = 1e-9
	// blandAfter is the number of consecutive degenerate pivots after which
	// entering columns are chosen by smallest index to rule out cycling.
	blandAfter = 50
)

var errIterationLimit = errors.New("simplex: iteration limit reached")

type colState int8

const (
	atLower colState = iota
	atUpper
	basic
)

// boundedLP is min c'x subject to Ax = b and lo <= x <= hi.
//
// Every row must own a slack column with coefficient 1 (slack[i]); the
// slack bounds encode the row sense. Lower or upper bounds may be infinite
// but not both.
type boundedLP struct {
	a      *mat.Dense
	b      []float64
	c      []float64
	lo, hi []float64
	slack  []int
}

// tableau is the working state of the two-phase bounded simplex. Columns
// n..n+m-1 are the phase one artificials, one per row.
type tableau struct {
	m, n, cols int

	full  *mat.Dense // [A | diag(artSign)], kept for refreshes
	t     *mat.Dense // B^-1 * full
	b     []float64
	lo    []float64
	hi    []float64
	x     []float64
	state []colState
	head  []int // head[i] is the basic column of row i

	// initCol[i] is the column basic in row i at start, initCoef[i] its coefficient.
	initCol  []int
	initCoef []float64

	d          []float64
	degenerate int
	iterations int
	maxIter    int
}

// solve runs phase one to find a feasible basis and phase two to optimize.
// Rank deficient systems are fine: an artificial left basic on a redundant
// row is fixed at zero.
func (lp *boundedLP) solve() relaxation {
	tb := newTableau(lp)

	phase1 := make([]float64, tb.cols)
	needPhase1 := false
	for i := 0; i < tb.m; i++ {
		if tb.head[i] == tb.n+i {
			phase1[tb.n+i] = 1
			needPhase1 = true
		}
	}
	if needPhase1 {
		kind, err := tb.iterate(phase1)
		if err != nil {
			return relaxation{kind: relaxFailed, err: err}
		}
		if kind != relaxOptimal {
			return relaxation{kind: relaxFailed, err: errors.New("simplex: phase one did not converge")}
		}
		tb.refresh()

		scale := 1.0
		for _, v := range lp.b {
			scale = math.Max(scale, math.Abs(v))
		}
		var infeasibility float64
		for i := 0; i < tb.m; i++ {
			infeasibility += tb.x[tb.n+i]
		}
		if infeasibility > feasibilityTol*scale {
			return relaxation{kind: relaxInfeasible}
		}
		tb.dropArtificials()
	}

	cost := make([]float64, tb.cols)
	copy(cost, lp.c)
	kind, err := tb.iterate(cost)
	if err != nil {
		return relaxation{kind: relaxFailed, err: err}
	}
	if kind != relaxOptimal {
		return relaxation{kind: kind}
	}
	tb.refresh()

	x := make([]float64, tb.n)
	for j := range x {
		x[j] = math.Min(math.Max(tb.x[j], tb.lo[j]), tb.hi[j])
	}
	return relaxation{kind: relaxOptimal, x: x}
}

func newTableau(lp *boundedLP) *tableau {
	m, n := lp.a.Dims()
	tb := &tableau{
		m:        m,
		n:        n,
		cols:     n + m,
		b:        lp.b,
		lo:       make([]float64, n+m),
		hi:       make([]float64, n+m),
		x:        make([]float64, n+m),
		state:    make([]colState, n+m),
		head:     make([]int, m),
		initCol:  make([]int, m),
		initCoef: make([]float64, m),
		maxIter:  50*(n+2*m) + 1000,
	}
	copy(tb.lo, lp.lo)
	copy(tb.hi, lp.hi)

	isSlack := make([]bool, n)
	for _, j := range lp.slack {
		isSlack[j] = true
	}

	// Nonbasic columns start at a finite bound.
	for j := 0; j < n; j++ {
		if math.IsInf(tb.lo[j], -1) {
			tb.x[j], tb.state[j] = tb.hi[j], atUpper
		} else {
			tb.x[j], tb.state[j] = tb.lo[j], atLower
		}
	}

	tb.full = mat.NewDense(m, tb.cols, nil)
	for i := 0; i < m; i++ {
		row := tb.full.RawRowView(i)
		copy(row[:n], lp.a.RawRowView(i))

		s := lp.slack[i]
		residual := lp.b[i]
		for j := 0; j < n; j++ {
			if j != s {
				residual -= row[j] * tb.x[j]
			}
		}

		art := n + i
		if residual >= tb.lo[s] && residual <= tb.hi[s] {
			tb.x[s], tb.state[s] = residual, basic
			tb.head[i] = s
			tb.initCol[i], tb.initCoef[i] = s, 1
			row[art] = 1
			continue
		}

		bound := tb.lo[s]
		tb.state[s] = atLower
		if residual > tb.hi[s] {
			bound = tb.hi[s]
			tb.state[s] = atUpper
		}
		tb.x[s] = bound
		residual -= bound

		sign := 1.0
		if residual < 0 {
			sign = -1
		}
		row[art] = sign
		tb.hi[art] = math.Inf(1)
		tb.x[art], tb.state[art] = math.Abs(residual), basic
		tb.head[i] = art
		tb.initCol[i], tb.initCoef[i] = art, sign
	}

	// Artificials of rows that start feasible never enter.
	for i := 0; i < m; i++ {
		if tb.head[i] != n+i {
			tb.state[n+i] = atLower
		}
	}

	// The starting basis is diagonal with entries of +-1.
	tb.t = mat.DenseCopyOf(tb.full)
	for i := 0; i < m; i++ {
		if tb.initCoef[i] < 0 {
			floats.Scale(-1, tb.t.RawRowView(i))
		}
	}
	return tb
}

// iterate minimizes cost from the current basis.
func (tb *tableau) iterate(cost []float64) (relaxKind, error) {
	tb.d = make([]float64, tb.cols)
	copy(tb.d, cost)
	for i := 0; i < tb.m; i++ {
		if cb := cost[tb.head[i]]; cb != 0 {
			floats.AddScaled(tb.d, -cb, tb.t.RawRowView(i))
		}
	}
	tb.degenerate = 0

	for {
		if tb.iterations >= tb.maxIter {
			return relaxFailed, errIterationLimit
		}
		tb.iterations++

		q, dir := tb.entering()
		if q < 0 {
			return relaxOptimal, nil
		}

		r, step := tb.leaving(q, dir)
		span := tb.hi[q] - tb.lo[q]
		if r < 0 && math.IsInf(span, 1) {
			return relaxUnbounded, nil
		}

		if span <= step {
			// The entering column reaches its other bound first.
			tb.move(q, dir, span)
			if dir > 0 {
				tb.x[q], tb.state[q] = tb.hi[q], atUpper
			} else {
				tb.x[q], tb.state[q] = tb.lo[q], atLower
			}
			tb.degenerate = 0
			continue
		}

		if step <= 1e-12 {
			tb.degenerate++
		} else {
			tb.degenerate = 0
		}
		tb.move(q, dir, step)
		tb.pivot(r, q)
	}
}

// entering picks an improving nonbasic column and the direction it moves in.
func (tb *tableau) entering() (int, float64) {
	bland := tb.degenerate > blandAfter
	best, bestDir, bestScore := -1, 0.0, 0.0
	for j := 0; j < tb.cols; j++ {
		if tb.state[j] == basic || tb.hi[j]-tb.lo[j] <= fixTol {
			continue
		}
		var dir float64
		switch {
		case tb.state[j] == atLower && tb.d[j] < -optimalityTol:
			dir = 1
		case tb.state[j] == atUpper && tb.d[j] > optimalityTol:
			dir = -1
		default:
			continue
		}
		if bland {
			return j, dir
		}
		if score := math.Abs(tb.d[j]); score > bestScore {
			best, bestDir, bestScore = j, dir, score
		}
	}
	return best, bestDir
}

// leaving runs the ratio test for column q moving in direction dir and
// returns the blocking row and the step length, or -1 and +Inf.
func (tb *tableau) leaving(q int, dir float64) (int, float64) {
	bland := tb.degenerate > blandAfter
	best, bestStep, bestPivot := -1, math.Inf(1), 0.0
	for i := 0; i < tb.m; i++ {
		alpha := tb.t.At(i, q)
		if math.Abs(alpha) <= pivotTol {
			continue
		}
		bi := tb.head[i]
		rate := -dir * alpha
		var limit float64
		if rate < 0 {
			if math.IsInf(tb.lo[bi], -1) {
				continue
			}
			limit = (tb.x[bi] - tb.lo[bi]) / -rate
		} else {
			if math.IsInf(tb.hi[bi], 1) {
				continue
			}
			limit = (tb.hi[bi] - tb.x[bi]) / rate
		}
		if limit < 0 {
			limit = 0
		}

		switch {
		case best < 0 || limit < bestStep-1e-12:
		case limit <= bestStep+1e-12:
			// Ties go to the larger pivot, or to the smaller column under Bland.
			if bland {
				if bi > tb.head[best] {
					continue
				}
			} else if math.Abs(alpha) <= bestPivot {
				continue
			}
		default:
			continue
		}
		best, bestStep, bestPivot = i, limit, math.Abs(alpha)
	}
	return best, bestStep
}

// move advances column q by step in direction dir and updates the basics.
func (tb *tableau) move(q int, dir, step float64) {
	if step == 0 {
		return
	}
	tb.x[q] += dir * step
	for i := 0; i < tb.m; i++ {
		if alpha := tb.t.At(i, q); alpha != 0 {
			tb.x[tb.head[i]] -= dir * alpha * step
		}
	}
}

// pivot makes q basic in row r. The leaving column is parked on the bound it reached.
func (tb *tableau) pivot(r, q int) {
	out := tb.head[r]
	switch {
	case math.Abs(tb.x[out]-tb.lo[out]) <= math.Abs(tb.x[out]-tb.hi[out]):
		tb.x[out], tb.state[out] = tb.lo[out], atLower
	default:
		tb.x[out], tb.state[out] = tb.hi[out], atUpper
	}

	pr := tb.t.RawRowView(r)
	floats.Scale(1/pr[q], pr)
	for i := 0; i < tb.m; i++ {
		if i == r {
			continue
		}
		row := tb.t.RawRowView(i)
		if f := row[q]; f != 0 {
			floats.AddScaled(row, -f, pr)
			row[q] = 0
		}
	}
	if f := tb.d[q]; f != 0 {
		floats.AddScaled(tb.d, -f, pr)
		tb.d[q] = 0
	}

	tb.head[r] = q
	tb.state[q] = basic
}

// dropArtificials fixes every artificial at zero and pivots the basic ones
// out where the row still has a usable column.
func (tb *tableau) dropArtificials() {
	for i := 0; i < tb.m; i++ {
		art := tb.n + i
		tb.hi[art] = 0
		if tb.state[art] != basic {
			tb.x[art], tb.state[art] = 0, atLower
		}
	}
	for r := 0; r < tb.m; r++ {
		if tb.head[r] < tb.n {
			continue
		}
		row := tb.t.RawRowView(r)
		best, bestAbs := -1, 1e-7
		for j := 0; j < tb.n; j++ {
			if tb.state[j] != basic && math.Abs(row[j]) > bestAbs {
				best, bestAbs = j, math.Abs(row[j])
			}
		}
		if best < 0 {
			// Redundant row: the artificial stays basic at zero.
			tb.x[tb.head[r]] = 0
			continue
		}
		tb.d = make([]float64, tb.cols)
		tb.pivot(r, best)
	}
}

// refresh recomputes the basic values from the nonbasic ones to shed
// the error accumulated by incremental updates.
func (tb *tableau) refresh() {
	rhs := make([]float64, tb.m)
	for i := 0; i < tb.m; i++ {
		row := tb.full.RawRowView(i)
		v := tb.b[i]
		for j := 0; j < tb.cols; j++ {
			if tb.state[j] != basic && tb.x[j] != 0 {
				v -= row[j] * tb.x[j]
			}
		}
		rhs[i] = v
	}
	// Column initCol[k] of t is B^-1 times initCoef[k] * e_k.
	for i := 0; i < tb.m; i++ {
		row := tb.t.RawRowView(i)
		var v float64
		for k := 0; k < tb.m; k++ {
			v += row[tb.initCol[k]] / tb.initCoef[k] * rhs[k]
		}
		tb.x[tb.head[i]] = v
	}
}
