package milp

import "fmt"

// Status is the outcome of a Solve call.
//
// The numeric values follow the usual MIP solver result order, so a status
// can be used as an index into a name table without remapping.
type Status int

const (
	Optimal    Status = iota // Proven optimal solution
	Feasible                 // Valid solution, optimality not proven (limit reached)
	Infeasible               // Proven that no solution exists
	Unbounded                // Objective can be improved without limit
	Abnormal                 // Numerical trouble or invalid model
	NotSolved                // Limit reached before any solution was found
)

var statusNames = [...]string{
	"OPTIMAL",
	"FEASIBLE",
	"INFEASIBLE",
	"UNBOUNDED",
	"ABNORMAL",
	"NOT_SOLVED",
}

// StatusNames returns the display names in enumeration order.
func StatusNames() []string {
	names := make([]string, len(statusNames))
	copy(names, statusNames[:])
	return names
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// HasSolution reports whether variable values are available.
func (s Status) HasSolution() bool {
	return s == Optimal || s == Feasible
}
