package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/BarCut/internal/model"
)

// dxfResolution is the rounding step (mm) used to group equal lengths.
const dxfResolution = 0.1

// minDXFLength drops zero-length and near-zero entities.
const minDXFLength = 0.01

// ImportDXF imports demand lines from a DXF drawing. Every LINE, every
// LWPOLYLINE segment and every ARC becomes one piece of its length; pieces of
// equal length (rounded to 0.1 mm) are grouped into one demand line.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	return demandsFromEntities(entities)
}

// demandsFromEntities measures the supported entities and aggregates them.
func demandsFromEntities(entities []entity.Entity) ImportResult {
	result := ImportResult{}
	var lengths []float64
	skipped := 0

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Line:
			lengths = append(lengths, distance(e.Start[0], e.Start[1], e.End[0], e.End[1]))

		case *entity.LwPolyline:
			if len(e.Vertices) < 2 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 2 vertices")
				continue
			}
			for i := 0; i+1 < len(e.Vertices); i++ {
				a, b := e.Vertices[i], e.Vertices[i+1]
				lengths = append(lengths, distance(a[0], a[1], b[0], b[1]))
			}
			if e.Closed {
				a, b := e.Vertices[len(e.Vertices)-1], e.Vertices[0]
				lengths = append(lengths, distance(a[0], a[1], b[0], b[1]))
			}

		case *entity.Arc:
			lengths = append(lengths, arcLength(e))

		default:
			skipped++
		}
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}
	return aggregateLengths(lengths, result)
}

// aggregateLengths groups measured lengths into demand lines, longest first.
func aggregateLengths(lengths []float64, result ImportResult) ImportResult {
	counts := make(map[int64]int)
	for _, l := range lengths {
		if l < minDXFLength {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped degenerate segment (%.3f mm)", l))
			continue
		}
		counts[int64(math.Round(l/dxfResolution))]++
	}

	if len(counts) == 0 {
		result.Errors = append(result.Errors, "No measurable lines found in DXF file")
		return result
	}

	keys := make([]int64, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] > keys[j] })

	for n, k := range keys {
		length := float64(k) * dxfResolution
		length = math.Round(length*10) / 10
		result.Demands = append(result.Demands,
			model.NewDemandLine(fmt.Sprintf("DXF Piece %d", n+1), length, counts[k]))
	}
	return result
}

func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// arcLength returns the developed length of a DXF ARC (angles in degrees,
// counter-clockwise from start to end).
func arcLength(a *entity.Arc) float64 {
	sweep := a.Angle[1] - a.Angle[0]
	for sweep <= 0 {
		sweep += 360
	}
	return a.Circle.Radius * sweep * math.Pi / 180
}
