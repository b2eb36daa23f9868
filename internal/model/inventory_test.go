package model

import (
	"testing"
)

func TestNewBarPreset(t *testing.T) {
	bp := NewBarPreset("Alu 6600", 6600, "Aluminium")
	if bp.Name != "Alu 6600" {
		t.Errorf("expected name 'Alu 6600', got %s", bp.Name)
	}
	if bp.Length != 6600 {
		t.Errorf("expected length 6600, got %.0f", bp.Length)
	}
	if len(bp.ID) != 8 {
		t.Errorf("expected 8 character ID, got %q", bp.ID)
	}
}

func TestBarPresetApplyToSettings(t *testing.T) {
	bp := NewBarPreset("Steel 6000", 6000, "Steel")
	bp.PricePerBar = 32.50
	s := DefaultSettings()
	bp.ApplyToSettings(&s)
	if s.ParentWidth != 6000 {
		t.Errorf("expected parent width 6000, got %.0f", s.ParentWidth)
	}
	if s.PricePerBar != 32.50 {
		t.Errorf("expected price 32.50, got %.2f", s.PricePerBar)
	}
	if s.Material != "Steel" {
		t.Errorf("expected material Steel, got %s", s.Material)
	}
}

func TestDefaultInventoryFindBar(t *testing.T) {
	inv := DefaultInventory()
	if len(inv.Bars) == 0 {
		t.Fatal("expected default bars")
	}
	bp, ok := inv.FindBar("steel tube 6000")
	if !ok {
		t.Fatal("expected to find steel tube by name")
	}
	if bp.Length != 6000 {
		t.Errorf("expected length 6000, got %.0f", bp.Length)
	}
	byID, ok := inv.FindBar(bp.ID)
	if !ok || byID.Name != bp.Name {
		t.Errorf("expected lookup by ID to return %s", bp.Name)
	}
	if _, ok := inv.FindBar("missing"); ok {
		t.Error("expected lookup of unknown preset to fail")
	}
}

func TestInventoryAddRemove(t *testing.T) {
	inv := Inventory{}
	added := inv.AddBar(BarPreset{Name: "Custom", Length: 3000})
	if added.ID == "" {
		t.Error("expected AddBar to assign an ID")
	}
	if len(inv.Bars) != 1 {
		t.Fatalf("expected 1 bar, got %d", len(inv.Bars))
	}
	if !inv.RemoveBar(added.ID) {
		t.Error("expected RemoveBar to succeed")
	}
	if inv.RemoveBar(added.ID) {
		t.Error("expected second RemoveBar to fail")
	}
	if len(inv.Bars) != 0 {
		t.Errorf("expected empty inventory, got %d bars", len(inv.Bars))
	}
}
