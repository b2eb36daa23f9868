package engine

import (
	"math"

	"github.com/piwi3910/BarCut/internal/model"
)

// boundsEps absorbs float noise when TT/P is integral.
const boundsEps = 1e-9

// estimateBounds sizes the model with a single first-fit pass over the
// demand lines in their given order.
//
// MaxBars is the number of bars the sequential packing opened; it is an
// upper bound because that packing is itself a feasible plan. MinBars is the
// ceiling of total demanded length over the parent width.
//
// PerLineCap[i] = min(q, round(P/w)) is a heuristic. Rounding P/w half to
// even never drops below floor(P/w), so it never excludes a bar layout that
// physically fits; it can admit one piece more than fits, which the capacity
// row then forbids.
//
// Every width must already be positive and at most parentWidth.
func estimateBounds(demands []model.DemandLine, parentWidth float64) model.Bounds {
	caps := make([]int, len(demands))
	maxBars := 1
	var fill, total float64

	for i, d := range demands {
		caps[i] = min(d.Quantity, int(math.RoundToEven(parentWidth/d.Width)))

		lineLength := float64(d.Quantity) * d.Width
		if fill+lineLength <= parentWidth {
			fill += lineLength
			total += lineLength
			continue
		}

		for q := d.Quantity; q > 0; {
			if fill+d.Width <= parentWidth {
				fill += d.Width
				total += d.Width
				q--
			} else {
				maxBars++
				fill = 0
			}
		}
	}

	minBars := int(math.Ceil(total/parentWidth - boundsEps))
	if minBars < 1 {
		minBars = 1
	}
	if minBars > maxBars {
		minBars = maxBars
	}

	return model.Bounds{
		MinBars:    minBars,
		MaxBars:    maxBars,
		PerLineCap: caps,
	}
}
