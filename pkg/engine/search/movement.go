package search

import (
	"math"

	"github.com/navarrs/a-star/pkg/engine/world"
)

// Step costs
const (
	OrthogonalCost = 1.0
	DiagonalCost   = math.Sqrt2
)

// Move is one legal step and what it costs
type Move struct {
	Dir  world.Direction
	Cost float64
}

// Moves returns the ordered move set for a heuristic: 4-connected for Manhattan,
// 8-connected for Euclidean and Octagonal.
func Moves(h Heuristic) ([]Move, error) {
	var dirs []world.Direction
	switch h {
	case Manhattan:
		dirs = world.CardinalDirections()
	case Euclidean, Octagonal:
		dirs = world.AllDirections()
	default:
		return nil, ErrUnsupportedHeuristic
	}

	moves := make([]Move, len(dirs))
	for i, d := range dirs {
		moves[i] = Move{Dir: d, Cost: StepCost(d)}
	}
	return moves, nil
}

// StepCost returns the cost of a single move in the given direction
func StepCost(d world.Direction) float64 {
	if d.IsDiagonal() {
		return DiagonalCost
	}
	return OrthogonalCost
}

// Connectivity returns 4 or 8 for supported heuristics, 0 otherwise
func (h Heuristic) Connectivity() int {
	moves, err := Moves(h)
	if err != nil {
		return 0
	}
	return len(moves)
}
