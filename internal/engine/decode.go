package engine

import (
	"math"

	"github.com/piwi3910/BarCut/internal/model"
)

// decodePlan turns raw assignments into the cutting plan, one entry per
// bar that carries at least one piece, in bar index order.
func decodePlan(raw rawSolution, demands []model.DemandLine) []model.CutBar {
	nBars := len(raw.w)
	plan := make([]model.CutBar, 0, nBars)

	for j := 0; j < nBars; j++ {
		var pieces []float64
		for i, d := range demands {
			if i >= len(raw.x) || j >= len(raw.x[i]) || raw.x[i][j] <= 0 {
				continue
			}
			n := int(math.Round(raw.x[i][j]))
			for k := 0; k < n; k++ {
				pieces = append(pieces, d.Width)
			}
		}
		if len(pieces) == 0 {
			continue
		}
		plan = append(plan, model.CutBar{
			// The engine may report -0 or tiny negatives.
			Leftover: math.Abs(raw.w[j]),
			Pieces:   pieces,
		})
	}
	return plan
}
