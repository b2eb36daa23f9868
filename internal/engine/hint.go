package engine

import (
	"sort"

	"github.com/piwi3910/BarCut/internal/milp"
	"github.com/piwi3910/BarCut/internal/model"
)

// startPlan packs the demand into bars without the solver. It returns
// counts[j][i], the pieces of line i cut from bar j, with bars ordered by
// piece count, most first.
//
// The shorter of first fit decreasing and minimum slack packing is used.
// When both need more bars than the model has, the sequential packing
// behind MaxBars is used instead, which always fits by construction.
func startPlan(demands []model.DemandLine, parentWidth float64, bounds model.Bounds) [][]int {
	counts := firstFitDecreasing(demands, parentWidth)
	if alt := minimumSlack(demands, parentWidth); len(alt) < len(counts) {
		counts = alt
	}
	if len(counts) > bounds.MaxBars {
		counts = sequentialFit(demands, parentWidth)
	}
	sort.SliceStable(counts, func(a, b int) bool {
		return pieceTotal(counts[a]) > pieceTotal(counts[b])
	})
	return counts
}

func firstFitDecreasing(demands []model.DemandLine, parentWidth float64) [][]int {
	order := make([]int, len(demands))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return demands[order[a]].Width > demands[order[b]].Width
	})

	var counts [][]int
	var fill []float64
	for _, i := range order {
		w := demands[i].Width
		for q := 0; q < demands[i].Quantity; q++ {
			j := 0
			for j < len(fill) && fill[j]+w > parentWidth {
				j++
			}
			if j == len(fill) {
				counts = append(counts, make([]int, len(demands)))
				fill = append(fill, 0)
			}
			counts[j][i]++
			fill[j] += w
		}
	}
	return counts
}

// slackSearchBudget caps the subsets tried per bar by minimumSlack.
const slackSearchBudget = 100000

// minimumSlack fills one bar at a time with the subset of the remaining
// pieces that leaves the smallest leftover. Every bar takes at least one
// piece of the longest remaining line.
func minimumSlack(demands []model.DemandLine, parentWidth float64) [][]int {
	n := len(demands)
	order := make([]int, n)
	remaining := make([]int, n)
	left := 0
	for i, d := range demands {
		order[i] = i
		remaining[i] = d.Quantity
		left += d.Quantity
	}
	sort.SliceStable(order, func(a, b int) bool {
		return demands[order[a]].Width > demands[order[b]].Width
	})

	var counts [][]int
	for left > 0 {
		first := -1
		for _, i := range order {
			if remaining[i] > 0 {
				first = i
				break
			}
		}

		cur := make([]int, n)
		cur[first] = 1
		best := append([]int(nil), cur...)
		bestFill := demands[first].Width
		nodes := 0

		var fill func(k int, used float64) bool
		fill = func(k int, used float64) bool {
			nodes++
			if used > bestFill {
				copy(best, cur)
				bestFill = used
			}
			if bestFill >= parentWidth || nodes > slackSearchBudget {
				return true
			}
			for kk := k; kk < n; kk++ {
				i := order[kk]
				if cur[i] < remaining[i] && used+demands[i].Width <= parentWidth {
					cur[i]++
					if fill(kk, used+demands[i].Width) {
						return true
					}
					cur[i]--
				}
			}
			return false
		}
		fill(0, demands[first].Width)

		for i, c := range best {
			remaining[i] -= c
			left -= c
		}
		counts = append(counts, best)
	}
	return counts
}

// sequentialFit replays the packing estimateBounds uses to size the model.
func sequentialFit(demands []model.DemandLine, parentWidth float64) [][]int {
	counts := [][]int{make([]int, len(demands))}
	var fill float64
	for i, d := range demands {
		if fill+float64(d.Quantity)*d.Width <= parentWidth {
			fill += float64(d.Quantity) * d.Width
			counts[len(counts)-1][i] += d.Quantity
			continue
		}
		for q := d.Quantity; q > 0; {
			if fill+d.Width <= parentWidth {
				fill += d.Width
				counts[len(counts)-1][i]++
				q--
			} else {
				counts = append(counts, make([]int, len(demands)))
				fill = 0
			}
		}
	}
	return counts
}

func pieceTotal(row []int) int {
	n := 0
	for _, c := range row {
		n += c
	}
	return n
}

// suggest hands a start plan to the backend as a solution hint.
func (m *cutModel) suggest(counts [][]int, demands []model.DemandLine, parentWidth float64) {
	nBars := len(m.y)
	if len(counts) > nBars {
		return
	}

	vars := make([]*milp.Variable, 0, len(m.y)*(len(demands)+2)+1)
	values := make([]float64, 0, cap(vars))
	for j := 0; j < nBars; j++ {
		var used, active float64
		if j < len(counts) {
			active = 1
			for i, d := range demands {
				used += float64(counts[j][i]) * d.Width
			}
		}
		vars = append(vars, m.y[j], m.w[j])
		values = append(values, active, active*parentWidth-used)
		for i := range demands {
			var n float64
			if j < len(counts) {
				n = float64(counts[j][i])
			}
			vars = append(vars, m.x[i][j])
			values = append(values, n)
		}
	}
	vars = append(vars, m.nb)
	values = append(values, float64(len(counts)))
	m.backend.SetHint(vars, values)
}
