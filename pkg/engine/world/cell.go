// Package world provides the 2D occupancy grid primitives used by the planner.
// These are engine-level constructs with no knowledge of images or rendering.
package world

import "fmt"

// Cell identifies a single grid location by row and column.
// Cells are plain values and compare with ==.
type Cell struct {
	Row int
	Col int
}

// NewCell returns the cell at the given position
func NewCell(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// Add returns the cell offset by the given row and column deltas
func (c Cell) Add(rowDelta, colDelta int) Cell {
	return Cell{Row: c.Row + rowDelta, Col: c.Col + colDelta}
}

// Step returns the adjacent cell in the given direction
func (c Cell) Step(dir Direction) Cell {
	dr, dc := dir.Delta()
	return c.Add(dr, dc)
}

// String returns the cell as "(row,col)"
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// State marks a cell as free or blocked
type State uint8

// State constants
const (
	Free State = iota
	Blocked
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case Free:
		return "Free"
	case Blocked:
		return "Blocked"
	default:
		return "Unknown"
	}
}
