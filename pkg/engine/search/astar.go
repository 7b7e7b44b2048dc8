package search

import (
	"github.com/navarrs/a-star/pkg/engine/world"
)

// GridView is the read-only occupancy view a query runs against.
// The grid must not change while a query is running.
type GridView interface {
	Height() int
	Width() int
	IsBlocked(c world.Cell) bool
}

// Query describes one planning request
type Query struct {
	Start     world.Cell
	Goal      world.Cell
	Heuristic Heuristic

	// MaxExpansions bounds the number of expanded cells; zero means unbounded.
	MaxExpansions int
}

// Result is a successful route
type Result struct {
	Path      []world.Cell // start to goal, inclusive
	Cost      float64
	Expanded  int
	Heuristic Heuristic
}

// Steps returns the number of moves in the route
func (r *Result) Steps() int {
	if r == nil || len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// FindPath returns the cheapest route from start to goal, inclusive of both ends.
// When start equals goal the route is the single cell [start].
func FindPath(grid GridView, start, goal world.Cell, h Heuristic) ([]world.Cell, error) {
	res, err := Search(grid, Query{Start: start, Goal: goal, Heuristic: h})
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// Search runs A* for q on grid. All search state is local to the call, so
// concurrent calls on the same read-only grid are safe.
func Search(grid GridView, q Query) (*Result, error) {
	if err := validateQuery(grid, q); err != nil {
		return nil, err
	}

	moves, err := Moves(q.Heuristic)
	if err != nil {
		return nil, err
	}

	if q.Start == q.Goal {
		return &Result{Path: []world.Cell{q.Start}, Heuristic: q.Heuristic}, nil
	}

	table := newNodeTable(grid.Height(), grid.Width())
	open := newOpenSet()

	start := table.at(q.Start)
	start.g = 0
	start.h = q.Heuristic.Estimate(q.Start, q.Goal)
	start.parent = q.Start
	start.state = opened
	open.push(q.Start, start.g, start.h)

	expanded := 0
	for open.size() > 0 {
		entry, _ := open.pop()
		current := table.at(entry.cell)
		if current.state == closed || entry.g > current.g {
			continue // stale entry
		}

		if entry.cell == q.Goal {
			return finish(table, q, expanded)
		}

		if q.MaxExpansions > 0 && expanded >= q.MaxExpansions {
			return nil, ErrExpansionLimit
		}

		current.state = closed
		expanded++
		bound := current.g + current.h

		for _, m := range moves {
			next := entry.cell.Step(m.Dir)
			if !table.contains(next) {
				continue
			}

			n := table.at(next)
			if n.state == closed || grid.IsBlocked(next) {
				continue
			}

			g := current.g + m.Cost
			if g >= n.g {
				continue
			}

			if n.state == unseen {
				n.h = q.Heuristic.Estimate(next, q.Goal)
			}
			n.g = g
			n.parent = entry.cell
			n.state = opened

			// No frontier entry can beat the current f, so a goal reached
			// within that bound is already optimal.
			if next == q.Goal && g <= bound {
				return finish(table, q, expanded)
			}

			open.push(next, n.g, n.h)
		}
	}

	return nil, ErrNoPath
}

func finish(table *nodeTable, q Query, expanded int) (*Result, error) {
	path, err := reconstructPath(table, q.Goal)
	if err != nil {
		return nil, err
	}
	return &Result{
		Path:      path,
		Cost:      table.at(q.Goal).g,
		Expanded:  expanded,
		Heuristic: q.Heuristic,
	}, nil
}

func validateQuery(grid GridView, q Query) error {
	if grid == nil || grid.Height() <= 0 || grid.Width() <= 0 {
		return ErrEmptyGrid
	}
	if !q.Heuristic.Valid() {
		return ErrUnsupportedHeuristic
	}
	if !inBounds(grid, q.Start) {
		return &EndpointError{Endpoint: StartEndpoint, Cell: q.Start, Err: ErrOutOfRange}
	}
	if !inBounds(grid, q.Goal) {
		return &EndpointError{Endpoint: GoalEndpoint, Cell: q.Goal, Err: ErrOutOfRange}
	}
	if grid.IsBlocked(q.Start) {
		return &EndpointError{Endpoint: StartEndpoint, Cell: q.Start, Err: ErrBlocked}
	}
	if grid.IsBlocked(q.Goal) {
		return &EndpointError{Endpoint: GoalEndpoint, Cell: q.Goal, Err: ErrBlocked}
	}
	return nil
}

// inBounds checks c against the view's dimensions
func inBounds(grid GridView, c world.Cell) bool {
	return c.Row >= 0 && c.Row < grid.Height() && c.Col >= 0 && c.Col < grid.Width()
}
