package model

import (
	"sort"

	"github.com/google/uuid"
)

// Offcut is a leftover piece of a consumed bar long enough to be reused.
type Offcut struct {
	ID       string  `json:"id"`
	BarIndex int     `json:"bar_index"` // Index of the source bar in the plan
	Length   float64 `json:"length"`    // mm
	Material string  `json:"material"`
	Price    float64 `json:"price"` // Share of the bar price proportional to length (0 if not set)
}

// ToBarPreset turns the offcut into a stock preset for a future run.
func (o Offcut) ToBarPreset() BarPreset {
	p := NewBarPreset("Offcut "+o.ID, o.Length, o.Material)
	p.PricePerBar = o.Price
	return p
}

// DetectOffcuts returns the leftovers of the plan that are at least minLength
// long, largest first. Prices are a length-proportional share of the bar price.
func DetectOffcuts(outcome SolveOutcome, minLength float64, settings CutSettings) []Offcut {
	var offcuts []Offcut
	for i, bar := range outcome.Plan {
		if bar.Leftover < minLength || bar.Leftover <= 0 {
			continue
		}
		o := Offcut{
			ID:       uuid.New().String()[:8],
			BarIndex: i,
			Length:   bar.Leftover,
			Material: settings.Material,
		}
		if settings.PricePerBar > 0 && outcome.ParentWidth > 0 {
			o.Price = bar.Leftover / outcome.ParentWidth * settings.PricePerBar
		}
		offcuts = append(offcuts, o)
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Length > offcuts[j].Length
	})
	return offcuts
}

// TotalOffcutLength returns the total length of all offcuts in mm.
func TotalOffcutLength(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Length
	}
	return total
}
