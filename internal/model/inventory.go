package model

import (
	"strings"

	"github.com/google/uuid"
)

// BarPreset is a reusable stock bar definition.
type BarPreset struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Length      float64 `json:"length"`
	Material    string  `json:"material"`
	PricePerBar float64 `json:"price_per_bar"`
}

// NewBarPreset creates a new BarPreset with a generated ID.
func NewBarPreset(name string, length float64, material string) BarPreset {
	return BarPreset{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Length:   length,
		Material: material,
	}
}

// ApplyToSettings copies the preset into the run settings.
func (bp BarPreset) ApplyToSettings(s *CutSettings) {
	s.ParentWidth = bp.Length
	s.Material = bp.Material
	if bp.PricePerBar > 0 {
		s.PricePerBar = bp.PricePerBar
	}
}

// Inventory holds the user's saved bar presets.
type Inventory struct {
	Bars []BarPreset `json:"bars"`
}

// DefaultInventory returns an inventory populated with common stock lengths.
func DefaultInventory() Inventory {
	return Inventory{
		Bars: []BarPreset{
			NewBarPreset("Aluminium profile 6600", 6600, "Aluminium"),
			NewBarPreset("Steel tube 6000", 6000, "Steel"),
			NewBarPreset("Timber 4800", 4800, "Timber"),
			NewBarPreset("PVC profile 6500", 6500, "PVC"),
		},
	}
}

// FindBar looks a preset up by ID or case-insensitive name.
func (inv Inventory) FindBar(key string) (BarPreset, bool) {
	for _, b := range inv.Bars {
		if b.ID == key || strings.EqualFold(b.Name, key) {
			return b, true
		}
	}
	return BarPreset{}, false
}

// AddBar appends a preset and returns it.
func (inv *Inventory) AddBar(p BarPreset) BarPreset {
	if p.ID == "" {
		p.ID = uuid.New().String()[:8]
	}
	inv.Bars = append(inv.Bars, p)
	return p
}

// RemoveBar deletes the preset with the given ID. It reports whether one was removed.
func (inv *Inventory) RemoveBar(id string) bool {
	for i, b := range inv.Bars {
		if b.ID == id {
			inv.Bars = append(inv.Bars[:i], inv.Bars[i+1:]...)
			return true
		}
	}
	return false
}
