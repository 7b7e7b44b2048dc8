// Package search finds shortest routes on an occupancy grid with A*.
//
// Costs are float64: an orthogonal step costs 1 and a diagonal step costs √2.
// Every heuristic is expressed in the same unit, so each one is admissible and
// consistent for the move set it selects (see Moves).
package search

import (
	"fmt"
	"math"
	"strings"

	"github.com/navarrs/a-star/pkg/engine/world"
)

// Heuristic selects the remaining-cost estimate and, through it, the move set
type Heuristic int

// Heuristic constants
const (
	Euclidean Heuristic = iota
	Manhattan
	Octagonal
)

// Heuristics returns every supported heuristic
func Heuristics() []Heuristic {
	return []Heuristic{Euclidean, Manhattan, Octagonal}
}

// String returns the lower-case name of the heuristic
func (h Heuristic) String() string {
	switch h {
	case Euclidean:
		return "euclidean"
	case Manhattan:
		return "manhattan"
	case Octagonal:
		return "octagonal"
	default:
		return fmt.Sprintf("heuristic(%d)", int(h))
	}
}

// Valid returns true if h names a supported heuristic
func (h Heuristic) Valid() bool {
	return h >= Euclidean && h <= Octagonal
}

// ParseHeuristic converts a case-insensitive name into a Heuristic
func ParseHeuristic(name string) (Heuristic, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, h := range Heuristics() {
		if h.String() == n {
			return h, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedHeuristic, name)
}

// Estimate returns the heuristic's estimate of the cost from a to b.
// Unsupported heuristics estimate zero, which degrades the search to Dijkstra.
func (h Heuristic) Estimate(a, b world.Cell) float64 {
	switch h {
	case Manhattan:
		return ManhattanDistance(a, b)
	case Euclidean:
		return EuclideanDistance(a, b)
	case Octagonal:
		return OctagonalDistance(a, b)
	default:
		return 0
	}
}

// ManhattanDistance is |Δrow| + |Δcol|
func ManhattanDistance(a, b world.Cell) float64 {
	dr, dc := absDelta(a, b)
	return float64(dr + dc)
}

// EuclideanDistance is the straight-line distance between cell centres
func EuclideanDistance(a, b world.Cell) float64 {
	dr, dc := absDelta(a, b)
	return math.Sqrt(float64(dr*dr + dc*dc))
}

// OctagonalDistance is (|Δrow| + |Δcol|) - min(|Δrow|, |Δcol|), the Chebyshev distance
func OctagonalDistance(a, b world.Cell) float64 {
	dr, dc := absDelta(a, b)
	return float64(dr + dc - min(dr, dc))
}

func absDelta(a, b world.Cell) (int, int) {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return dr, dc
}
