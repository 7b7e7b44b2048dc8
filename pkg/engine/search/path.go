package search

import (
	"math"
	"slices"

	"github.com/navarrs/a-star/pkg/engine/world"
)

// reconstructPath follows parent links from goal back to the start, whose parent
// is itself, and returns the cells in start-to-goal order. It only reads the
// table, so calling it again on the same table yields the same route.
func reconstructPath(table *nodeTable, goal world.Cell) ([]world.Cell, error) {
	if !table.contains(goal) || math.IsInf(table.at(goal).g, 1) {
		return nil, errIncompleteSearch
	}

	var path []world.Cell
	current := goal
	for steps := 0; ; steps++ {
		// A walk longer than the table means the parent links loop
		if steps > len(table.nodes) {
			return nil, errIncompleteSearch
		}

		path = append(path, current)
		parent := table.at(current).parent
		if parent == current {
			break
		}
		if !table.contains(parent) {
			return nil, errIncompleteSearch
		}
		current = parent
	}

	slices.Reverse(path)
	return path, nil
}

// PathCost sums the step costs along a route. It returns false if two
// consecutive cells are not one move apart.
func PathCost(path []world.Cell) (float64, bool) {
	cost := 0.0
	for i := 1; i < len(path); i++ {
		dir, ok := world.DirectionBetween(path[i-1], path[i])
		if !ok {
			return 0, false
		}
		cost += StepCost(dir)
	}
	return cost, true
}
