package model

import (
	"fmt"
	"math"
)

// Status is the terminal state of a solve, as reported by the solving engine.
type Status int

const (
	StatusOptimal Status = iota
	StatusFeasible
	StatusInfeasible
	StatusUnbounded
	StatusAbnormal
	StatusNotSolved
)

// StatusNames is indexed by the status code returned by the solving engine.
// The order is fixed; do not reorder.
var StatusNames = []string{
	"OPTIMAL",
	"FEASIBLE",
	"INFEASIBLE",
	"UNBOUNDED",
	"ABNORMAL",
	"NOT_SOLVED",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(StatusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return StatusNames[s]
}

// HasPlan reports whether the status comes with a cutting plan.
func (s Status) HasPlan() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// MarshalText encodes the status as its display name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a display name.
func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range StatusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(text))
}

// Bounds is the cheap estimate computed before the model is built.
type Bounds struct {
	MinBars int `json:"min_bars"` // lower bound on bars needed
	MaxBars int `json:"max_bars"` // number of candidate bars in the model
	// PerLineCap[i] bounds how many pieces of line i one bar may carry.
	PerLineCap []int `json:"per_line_cap"`
}

// CutBar is one consumed parent bar of the plan.
type CutBar struct {
	Leftover float64   `json:"leftover"` // unused length, mm
	Pieces   []float64 `json:"pieces"`   // one entry per piece cut, in demand line order
}

// UsedLength returns the total length of the cut pieces.
func (b CutBar) UsedLength() float64 {
	var total float64
	for _, p := range b.Pieces {
		total += p
	}
	return total
}

// PieceCount returns the number of pieces cut from the bar.
func (b CutBar) PieceCount() int {
	return len(b.Pieces)
}

// SolveOutcome is the externally visible result of one solve.
type SolveOutcome struct {
	RunID       string   `json:"run_id"`
	Status      Status   `json:"status"`
	NumBarsUsed int      `json:"num_bars_used"`
	Plan        []CutBar `json:"plan"`
	WallTimeMs  float64  `json:"wall_time_ms"`

	ParentWidth float64 `json:"parent_width"`
	Mode        CutMode `json:"mode"`
	Bounds      Bounds  `json:"bounds"`

	// The model yields a single solution per run.
	NumSolutions       int `json:"num_solutions"`
	NumUniqueSolutions int `json:"num_unique_solutions"`
}

// StatusName returns the display name of the outcome status.
func (o SolveOutcome) StatusName() string {
	return o.Status.String()
}

// TotalLeftover sums the leftover over all bars of the plan.
func (o SolveOutcome) TotalLeftover() float64 {
	var total float64
	for _, b := range o.Plan {
		total += b.Leftover
	}
	return total
}

// PieceCount returns the number of pieces over all bars.
func (o SolveOutcome) PieceCount() int {
	n := 0
	for _, b := range o.Plan {
		n += b.PieceCount()
	}
	return n
}

// Efficiency returns the used share of the consumed bars in percent.
func (o SolveOutcome) Efficiency() float64 {
	total := float64(len(o.Plan)) * o.ParentWidth
	if total == 0 {
		return 0
	}
	var used float64
	for _, b := range o.Plan {
		used += b.UsedLength()
	}
	return used / total * 100.0
}

// PiecesOfWidth counts the pieces of the given width across the plan.
func (o SolveOutcome) PiecesOfWidth(width float64) int {
	n := 0
	for _, b := range o.Plan {
		for _, p := range b.Pieces {
			if math.Abs(p-width) <= 1e-9*math.Max(1, width) {
				n++
			}
		}
	}
	return n
}
