package milp

import (
	"context"
	"math"
	"time"
)

// node is one subproblem of the branch-and-bound tree, described by column bounds.
type node struct {
	lo, hi []float64
	depth  int
}

// search holds the branch-and-bound state for one Solve call.
type search struct {
	p        *problem
	integral bool

	incumbent []float64
	bestObj   float64

	nodes      int
	incomplete bool // a node was abandoned, so exhaustion no longer proves optimality
	rootBound  float64
}

func newSearch(p *problem) *search {
	return &search{
		p:         p,
		integral:  p.integralObjective(),
		bestObj:   math.Inf(1),
		rootBound: math.Inf(-1),
	}
}

// bound turns an LP objective into the pruning bound for integer solutions.
func (sr *search) bound(obj float64) float64 {
	if sr.integral {
		return math.Ceil(obj - integralityTol)
	}
	return obj
}

func (sr *search) prunable(obj float64) bool {
	if sr.incumbent == nil {
		return false
	}
	return sr.bound(obj) >= sr.bestObj-integralityTol*(1+math.Abs(sr.bestObj))
}

// branchColumn returns the integer column whose value is farthest from
// integral, or -1 when the relaxation is integer feasible.
func (sr *search) branchColumn(x []float64) int {
	best, bestFrac := -1, integralityTol
	for k, v := range x {
		if !sr.p.integer[k] {
			continue
		}
		frac := math.Abs(v - math.Round(v))
		if frac > bestFrac {
			best, bestFrac = k, frac
		}
	}
	return best
}

func (sr *search) accept(x []float64, obj float64) {
	sol := make([]float64, len(x))
	for k, v := range x {
		if sr.p.integer[k] {
			v = math.Round(v)
		}
		sol[k] = v
	}
	sr.incumbent = sol
	sr.bestObj = sr.p.objective(sol)
	if math.IsNaN(sr.bestObj) {
		sr.bestObj = obj
	}
}

// run explores the tree depth first until it is exhausted or ctx is done.
func (sr *search) run(ctx context.Context, lo, hi []float64) Status {
	stack := []node{{lo: lo, hi: hi}}
	for len(stack) > 0 {
		if ctx.Err() != nil {
			if sr.incumbent != nil {
				return Feasible
			}
			return NotSolved
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sr.nodes++

		rel := sr.p.relax(nd.lo, nd.hi)
		root := nd.depth == 0
		switch rel.kind {
		case relaxInfeasible:
			if root {
				return Infeasible
			}
			continue
		case relaxUnbounded:
			if root {
				return Unbounded
			}
			sr.incomplete = true
			continue
		case relaxFailed:
			if root && sr.incumbent == nil {
				return Abnormal
			}
			sr.incomplete = true
			continue
		}
		if root {
			sr.rootBound = sr.bound(rel.obj)
		}
		if sr.prunable(rel.obj) {
			continue
		}

		k := sr.branchColumn(rel.x)
		if k < 0 {
			sr.accept(rel.x, rel.obj)
			continue
		}

		v := rel.x[k]
		down := nd.child(k, nd.lo[k], math.Floor(v))
		up := nd.child(k, math.Ceil(v), nd.hi[k])
		// Depth first, visiting the side nearest to the relaxed value first.
		if v-math.Floor(v) < 0.5 {
			stack = append(stack, up, down)
		} else {
			stack = append(stack, down, up)
		}
	}

	switch {
	case sr.incumbent == nil && sr.incomplete:
		return Abnormal
	case sr.incumbent == nil:
		return Infeasible
	case sr.incomplete:
		return Feasible
	default:
		return Optimal
	}
}

// seed completes the hint with one relaxation and takes it as the incumbent
// when the result is integer feasible.
func (sr *search) seed(lo, hi []float64, hint map[int]float64) {
	if len(hint) == 0 {
		return
	}
	hlo := make([]float64, len(lo))
	hhi := make([]float64, len(hi))
	copy(hlo, lo)
	copy(hhi, hi)
	for k, v := range hint {
		if sr.p.integer[k] {
			v = math.Round(v)
		}
		if v < lo[k]-feasibilityTol || v > hi[k]+feasibilityTol {
			return
		}
		v = math.Min(math.Max(v, lo[k]), hi[k])
		hlo[k], hhi[k] = v, v
	}

	rel := sr.p.relax(hlo, hhi)
	if rel.kind != relaxOptimal || sr.branchColumn(rel.x) >= 0 {
		return
	}
	sr.accept(rel.x, rel.obj)
}

func (nd node) child(k int, lo, hi float64) node {
	c := node{
		lo:    make([]float64, len(nd.lo)),
		hi:    make([]float64, len(nd.hi)),
		depth: nd.depth + 1,
	}
	copy(c.lo, nd.lo)
	copy(c.hi, nd.hi)
	c.lo[k] = lo
	c.hi[k] = hi
	return c
}

// Solve runs branch-and-bound on the model and returns the result status.
//
// The call blocks until the search is exhausted, the time limit set with
// SetTimeLimit expires, or ctx is done. On expiry the best solution found so
// far is kept and reported as Feasible, or NotSolved when there is none.
// A second Solve issued while one is running returns Abnormal immediately.
// A hint set with SetHint is tried before the search starts.
func (s *Solver) Solve(ctx context.Context) Status {
	if !s.mu.TryLock() {
		return Abnormal
	}
	defer s.mu.Unlock()

	start := time.Now()
	if s.timeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeLimit)
		defer cancel()
	}

	s.values = nil
	s.objValue = 0
	s.bestBound = math.NaN()
	s.nodes = 0

	if err := s.validate(); err != nil {
		s.status = Abnormal
		s.wallTime = time.Since(start)
		return s.status
	}

	if ctx.Err() != nil {
		s.status = NotSolved
		s.wallTime = time.Since(start)
		return s.status
	}

	p := newProblem(s)
	lo := make([]float64, len(s.vars))
	hi := make([]float64, len(s.vars))
	for k, v := range s.vars {
		lo[k], hi[k] = v.lb, v.ub
	}

	sr := newSearch(p)
	sr.seed(lo, hi, s.hint)
	s.status = sr.run(ctx, lo, hi)
	s.nodes = sr.nodes
	if sr.incumbent != nil && s.status.HasSolution() {
		s.values = sr.incumbent
		s.objValue = s.userSense(sr.bestObj)
	}
	if s.status == Optimal {
		s.bestBound = s.objValue
	} else if !math.IsInf(sr.rootBound, 0) {
		s.bestBound = s.userSense(sr.rootBound)
	}
	s.wallTime = time.Since(start)
	return s.status
}

// userSense converts a minimization-form objective back to the model's direction.
func (s *Solver) userSense(obj float64) float64 {
	if s.maximize {
		return -obj
	}
	return obj
}
