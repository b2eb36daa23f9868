// BarCut is a 1D cutting-stock optimizer for bars, tubes and profiles.
//
// Computes how many stock bars of one length are needed to cut a list of
// pieces, and how to cut each bar, by solving a mixed-integer program.
//
// Build:
//   go build -o barcut ./cmd/barcut
//
// Examples:
//   barcut solve --parent 6600 --demand 4x1200 --demand 2x800
//   barcut solve --file pieces.xlsx --mode minWaste --json
//   barcut compare --project frame.barcut --presets

package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
