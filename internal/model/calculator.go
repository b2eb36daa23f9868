package model

import "math"

// PurchaseEstimate holds the results of a bar purchasing calculation.
type PurchaseEstimate struct {
	TotalDemandLength float64 `json:"total_demand_length"` // Sum of all piece lengths (mm)
	TotalMeters       float64 `json:"total_meters"`        // Same in metres
	BarLength         float64 `json:"bar_length"`          // Length of one stock bar (mm)
	BarsNeededExact   float64 `json:"bars_needed_exact"`   // Exact fractional number of bars
	BarsNeededMin     int     `json:"bars_needed_min"`     // Minimum bars (ceiling of exact)
	BarsWithWaste     int     `json:"bars_with_waste"`     // Recommended bars including waste factor
	WastePercent      float64 `json:"waste_percent"`       // Waste factor applied (e.g., 10 for 10%)
	EstimatedCost     float64 `json:"estimated_cost"`      // Total cost if pricing available
	PricePerBar       float64 `json:"price_per_bar"`       // Price used for estimation
}

// CalculatePurchaseEstimate computes how many bars to buy for a demand list
// without running the optimizer. BarsNeededMin is a lower bound; the plan
// produced by the optimizer may need more.
func CalculatePurchaseEstimate(demands []DemandLine, barLength, wastePercent, pricePerBar float64) PurchaseEstimate {
	total := TotalDemandLength(demands)

	if barLength <= 0 {
		return PurchaseEstimate{
			TotalDemandLength: total,
			TotalMeters:       total / 1000.0,
			WastePercent:      wastePercent,
		}
	}

	exactBars := total / barLength
	minBars := int(math.Ceil(exactBars - 1e-9))

	// Apply waste factor
	wasteFactor := 1.0 + (wastePercent / 100.0)
	barsWithWaste := int(math.Ceil(exactBars*wasteFactor - 1e-9))
	if barsWithWaste < minBars {
		barsWithWaste = minBars
	}

	return PurchaseEstimate{
		TotalDemandLength: total,
		TotalMeters:       total / 1000.0,
		BarLength:         barLength,
		BarsNeededExact:   exactBars,
		BarsNeededMin:     minBars,
		BarsWithWaste:     barsWithWaste,
		WastePercent:      wastePercent,
		EstimatedCost:     float64(barsWithWaste) * pricePerBar,
		PricePerBar:       pricePerBar,
	}
}
