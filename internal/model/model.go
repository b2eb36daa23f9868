package model

import "time"

// DefaultParentWidth is the stock bar length offered when nothing else is configured.
const DefaultParentWidth = 6600.0

// DefaultTimeLimitMs caps the wall-clock time of one solve.
const DefaultTimeLimitMs = 120000

// CutSettings holds the parameters of one cutting run.
type CutSettings struct {
	ParentWidth float64 `json:"parent_width"`  // Length of every stock bar in mm
	Mode        CutMode `json:"mode"`          // "exact" or "minWaste"
	TimeLimitMs int     `json:"time_limit_ms"` // Solver wall-clock limit

	// Offcut and purchasing parameters
	MinOffcutLength float64 `json:"min_offcut_length"` // Shortest leftover worth keeping, mm
	WastePercent    float64 `json:"waste_percent"`     // Extra bars to buy, percent
	PricePerBar     float64 `json:"price_per_bar"`     // Price of one stock bar
	Material        string  `json:"material"`          // Free-form material name
}

// TimeLimit returns the solver limit as a duration, falling back to the default.
func (s CutSettings) TimeLimit() time.Duration {
	ms := s.TimeLimitMs
	if ms <= 0 {
		ms = DefaultTimeLimitMs
	}
	return time.Duration(ms) * time.Millisecond
}

func DefaultSettings() CutSettings {
	return CutSettings{
		ParentWidth:     DefaultParentWidth,
		Mode:            CutExact,
		TimeLimitMs:     DefaultTimeLimitMs,
		MinOffcutLength: 300.0,
		WastePercent:    0,
		PricePerBar:     0,
	}
}

// Project ties demand and settings together for save/load.
type Project struct {
	Name     string       `json:"name"`
	Demands  []DemandLine `json:"demands"`
	Settings CutSettings  `json:"settings"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Demands:  []DemandLine{},
		Settings: DefaultSettings(),
	}
}
