package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/model"
)

// solveReport is the JSON document printed by "solve --json".
type solveReport struct {
	model.SolveOutcome
	StatusName    string         `json:"status_name"`
	TotalLeftover float64        `json:"total_leftover"`
	Efficiency    float64        `json:"efficiency"`
	Offcuts       []model.Offcut `json:"offcuts,omitempty"`
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatPieces(pieces []float64) string {
	parts := make([]string, len(pieces))
	for i, p := range pieces {
		parts[i] = fmt.Sprintf("%g", p)
	}
	return strings.Join(parts, " ")
}

// writeOutcome prints the plan in the order the bars should be cut.
func writeOutcome(w io.Writer, outcome model.SolveOutcome, offcuts []model.Offcut) {
	fmt.Fprintf(w, "Status: %s\n", outcome.StatusName())
	fmt.Fprintf(w, "Bars used: %d (bar length %g, mode %s)\n", outcome.NumBarsUsed, outcome.ParentWidth, outcome.Mode)
	fmt.Fprintf(w, "Solve time: %.1f ms\n", outcome.WallTimeMs)
	if !outcome.Status.HasPlan() {
		fmt.Fprintln(w, "No cutting plan available.")
		return
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BAR\tPIECES\tLEFTOVER")
	for i, bar := range outcome.Plan {
		fmt.Fprintf(tw, "%d\t%s\t%g\n", i+1, formatPieces(bar.Pieces), bar.Leftover)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nTotal leftover: %g  Efficiency: %.1f%%\n", outcome.TotalLeftover(), outcome.Efficiency())
	if len(offcuts) > 0 {
		fmt.Fprintf(w, "Reusable offcuts: %d (%g total)\n", len(offcuts), model.TotalOffcutLength(offcuts))
		for _, o := range offcuts {
			fmt.Fprintf(w, "  bar %d: %g\n", o.BarIndex+1, o.Length)
		}
	}
}

func writeComparison(w io.Writer, results []engine.ComparisonResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tSTATUS\tBARS\tPIECES\tEXTRA\tLEFTOVER\tWASTE")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%g\t%.1f%%\n",
			r.Scenario.Name, r.Outcome.StatusName(), r.BarsUsed, r.PieceCount,
			r.ExtraPieces, r.TotalLeftover, r.WastePercent)
	}
	tw.Flush()
}

func writeEstimate(w io.Writer, est model.PurchaseEstimate) {
	fmt.Fprintf(w, "Total length: %g mm (%.2f m)\n", est.TotalDemandLength, est.TotalMeters)
	fmt.Fprintf(w, "Bar length: %g mm\n", est.BarLength)
	fmt.Fprintf(w, "Bars (exact): %.2f\n", est.BarsNeededExact)
	fmt.Fprintf(w, "Bars (minimum): %d\n", est.BarsNeededMin)
	fmt.Fprintf(w, "Bars to buy (+%g%% waste): %d\n", est.WastePercent, est.BarsWithWaste)
	if est.PricePerBar > 0 {
		fmt.Fprintf(w, "Estimated cost: %.2f\n", est.EstimatedCost)
	}
}

func writeDemands(w io.Writer, demands []model.DemandLine) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tLABEL\tLENGTH\tQTY")
	for i, d := range demands {
		fmt.Fprintf(tw, "%d\t%s\t%g\t%d\n", i+1, d.Label, d.Width, d.Quantity)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d lines, %d pieces, %g mm total\n", len(demands), model.TotalPieces(demands), model.TotalDemandLength(demands))
}
