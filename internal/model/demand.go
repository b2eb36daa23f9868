package model

import (
	"fmt"

	"github.com/google/uuid"
)

// DemandLine is one distinct child piece specification: cut Quantity pieces
// of length Width out of the parent bars. Its index in the demand list is
// its identity throughout a solve.
type DemandLine struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Width    float64 `json:"width"` // mm
	Quantity int     `json:"quantity"`
}

func NewDemandLine(label string, width float64, qty int) DemandLine {
	return DemandLine{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    width,
		Quantity: qty,
	}
}

// TotalLength returns Width * Quantity.
func (d DemandLine) TotalLength() float64 {
	return d.Width * float64(d.Quantity)
}

func (d DemandLine) String() string {
	if d.Label != "" {
		return fmt.Sprintf("%s (%dx%g)", d.Label, d.Quantity, d.Width)
	}
	return fmt.Sprintf("%dx%g", d.Quantity, d.Width)
}

// TotalDemandLength sums the demanded length over all lines.
func TotalDemandLength(demands []DemandLine) float64 {
	var total float64
	for _, d := range demands {
		total += d.TotalLength()
	}
	return total
}

// TotalPieces sums the demanded quantities over all lines.
func TotalPieces(demands []DemandLine) int {
	total := 0
	for _, d := range demands {
		total += d.Quantity
	}
	return total
}

// CutMode selects how demand quantities are honoured.
type CutMode string

const (
	CutExact    CutMode = "exact"    // Cut exactly the demanded quantity of every line
	CutMinWaste CutMode = "minWaste" // Allow extra pieces when that reduces leftover
)

// ParseCutMode accepts the canonical names plus the "exactCuts" spelling
// used by older project files.
func ParseCutMode(s string) (CutMode, error) {
	switch s {
	case "exact", "exactCuts", "":
		return CutExact, nil
	case "minWaste", "minwaste", "min-waste":
		return CutMinWaste, nil
	default:
		return "", fmt.Errorf("unknown cut mode %q (want %q or %q)", s, CutExact, CutMinWaste)
	}
}

func (m CutMode) String() string { return string(m) }
