package milp

import "time"

// Solution is a snapshot of a solve result, detached from the solver.
type Solution struct {
	// Status is the outcome of the solve.
	Status Status

	// ColValues holds one value per variable, in creation order.
	// Empty unless Status has a solution.
	ColValues []float64

	// Objective is the objective value of ColValues.
	Objective float64

	// BestBound is the best proven bound on the objective; NaN when unknown.
	BestBound float64

	// Nodes is the number of branch-and-bound nodes explored.
	Nodes int

	// WallTime is the duration of the solve call.
	WallTime time.Duration
}

// Value returns the value of column index, or 0 when it is out of range.
func (s Solution) Value(index int) float64 {
	if index < 0 || index >= len(s.ColValues) {
		return 0
	}
	return s.ColValues[index]
}

// IsOptimal returns true if the solution is proven optimal.
func (s Solution) IsOptimal() bool {
	return s.Status == Optimal
}

// HasSolution returns true if ColValues holds a valid assignment.
func (s Solution) HasSolution() bool {
	return s.Status.HasSolution() && len(s.ColValues) > 0
}

// Status returns the result of the last Solve, NotSolved before the first one.
func (s *Solver) Status() Status { return s.status }

// Value returns the value assigned to v by the last Solve, or 0 when no
// solution is available.
func (s *Solver) Value(v *Variable) float64 {
	if v == nil || v.index >= len(s.values) {
		return 0
	}
	return s.values[v.index]
}

// ObjectiveValue returns the objective of the solution, 0 when there is none.
func (s *Solver) ObjectiveValue() float64 { return s.objValue }

// BestBound returns the proven bound on the objective, NaN when unknown.
func (s *Solver) BestBound() float64 { return s.bestBound }

// WallTime returns the duration of the last Solve.
func (s *Solver) WallTime() time.Duration { return s.wallTime }

// Nodes returns the number of branch-and-bound nodes explored by the last Solve.
func (s *Solver) Nodes() int { return s.nodes }

// Solution returns a copy of the last result.
func (s *Solver) Solution() Solution {
	sol := Solution{
		Status:    s.status,
		Objective: s.objValue,
		BestBound: s.bestBound,
		Nodes:     s.nodes,
		WallTime:  s.wallTime,
	}
	if len(s.values) > 0 {
		sol.ColValues = make([]float64, len(s.values))
		copy(sol.ColValues, s.values)
	}
	return sol
}
