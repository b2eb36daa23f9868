package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.ParentWidth != 6600 {
		t.Errorf("expected parent width 6600, got %.0f", s.ParentWidth)
	}
	if s.Mode != CutExact {
		t.Errorf("expected exact mode, got %s", s.Mode)
	}
	if s.TimeLimit() != 120*time.Second {
		t.Errorf("expected 120s time limit, got %s", s.TimeLimit())
	}
}

func TestTimeLimitFallsBackToDefault(t *testing.T) {
	s := CutSettings{}
	if s.TimeLimit() != DefaultTimeLimitMs*time.Millisecond {
		t.Errorf("expected default time limit, got %s", s.TimeLimit())
	}
}

func TestParseCutMode(t *testing.T) {
	cases := map[string]CutMode{
		"exact":     CutExact,
		"exactCuts": CutExact,
		"":          CutExact,
		"minWaste":  CutMinWaste,
		"min-waste": CutMinWaste,
	}
	for in, want := range cases {
		got, err := ParseCutMode(in)
		if err != nil {
			t.Errorf("ParseCutMode(%q): unexpected error %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseCutMode(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseCutMode("bogus"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestDemandTotals(t *testing.T) {
	demands := []DemandLine{
		NewDemandLine("A", 30, 4),
		NewDemandLine("", 45, 2),
	}
	if TotalDemandLength(demands) != 210 {
		t.Errorf("expected total length 210, got %.0f", TotalDemandLength(demands))
	}
	if TotalPieces(demands) != 6 {
		t.Errorf("expected 6 pieces, got %d", TotalPieces(demands))
	}
	if demands[0].String() != "A (4x30)" {
		t.Errorf("unexpected label %q", demands[0].String())
	}
	if demands[1].String() != "2x45" {
		t.Errorf("unexpected label %q", demands[1].String())
	}
}

func TestStatusNames(t *testing.T) {
	want := []string{"OPTIMAL", "FEASIBLE", "INFEASIBLE", "UNBOUNDED", "ABNORMAL", "NOT_SOLVED"}
	for i, name := range want {
		if Status(i).String() != name {
			t.Errorf("Status(%d) = %s, want %s", i, Status(i), name)
		}
	}
	if Status(42).String() != "Status(42)" {
		t.Errorf("unexpected name for out of range status: %s", Status(42))
	}
	if !StatusFeasible.HasPlan() || StatusNotSolved.HasPlan() {
		t.Error("HasPlan mismatch")
	}
}

func TestStatusJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(SolveOutcome{Status: StatusInfeasible})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out SolveOutcome
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Status != StatusInfeasible {
		t.Errorf("expected INFEASIBLE after round trip, got %s", out.Status)
	}
}

func TestSolveOutcomeAggregates(t *testing.T) {
	o := SolveOutcome{
		ParentWidth: 100,
		Plan: []CutBar{
			{Leftover: 0, Pieces: []float64{50, 50}},
			{Leftover: 0, Pieces: []float64{100}},
		},
	}
	if o.TotalLeftover() != 0 {
		t.Errorf("expected no leftover, got %.0f", o.TotalLeftover())
	}
	if o.PieceCount() != 3 {
		t.Errorf("expected 3 pieces, got %d", o.PieceCount())
	}
	if o.Efficiency() != 100 {
		t.Errorf("expected 100%% efficiency, got %.2f", o.Efficiency())
	}
	if o.PiecesOfWidth(50) != 2 {
		t.Errorf("expected 2 pieces of width 50, got %d", o.PiecesOfWidth(50))
	}
}
