package engine

import (
	"context"
	"time"

	"github.com/piwi3910/BarCut/internal/milp"
)

// rawSolution holds the variable values read back after a solve.
// The slices are empty when the backend reports no solution.
type rawSolution struct {
	x        [][]float64 // x[i][j]
	w        []float64   // w[j]
	y        []float64   // y[j]
	nb       float64
	wallTime time.Duration
}

// invoke runs the single blocking solve on m and reads the assignment.
// The status is returned exactly as the backend reports it.
func invoke(ctx context.Context, m *cutModel, limit time.Duration) (milp.Status, rawSolution) {
	b := m.backend
	b.SetTimeLimit(limit)
	status := b.Solve(ctx)

	raw := rawSolution{wallTime: b.WallTime()}
	if !status.HasSolution() {
		return status, raw
	}

	raw.x = make([][]float64, len(m.x))
	for i, row := range m.x {
		raw.x[i] = make([]float64, len(row))
		for j, v := range row {
			raw.x[i][j] = b.Value(v)
		}
	}
	raw.w = make([]float64, len(m.w))
	raw.y = make([]float64, len(m.y))
	for j := range m.w {
		raw.w[j] = b.Value(m.w[j])
		raw.y[j] = b.Value(m.y[j])
	}
	raw.nb = b.Value(m.nb)
	return status, raw
}
