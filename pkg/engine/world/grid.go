package world

import (
	"errors"
	"fmt"
	"strings"
)

// Symbols used by the text form of a grid
const (
	SymbolFree    = '.'
	SymbolBlocked = '#'
	SymbolStart   = 'S'
	SymbolGoal    = 'G'
	SymbolRoute   = '*'
)

// ErrEmptyGrid is returned when a grid is built from no rows or empty rows
var ErrEmptyGrid = errors.New("world: grid has no cells")

// Grid is a rectangular occupancy grid stored row-major.
// The zero value is an empty grid with no cells.
type Grid struct {
	cells []State
	rows  int
	cols  int
}

// NewGrid creates a new grid with the given dimensions, every cell free
func NewGrid(rows, cols int) *Grid {
	g := &Grid{}
	g.Build(rows, cols)
	return g
}

// NewGridFromRows builds a grid from a slice of rows. All rows must have the same length.
func NewGridFromRows(rows [][]State) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	cols := len(rows[0])
	g := NewGrid(len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("world: row %d has %d cells, want %d", r, len(row), cols)
		}
		copy(g.cells[r*cols:(r+1)*cols], row)
	}
	return g, nil
}

// ParseGrid reads the text form of a grid: one line per row, '#' for blocked cells
// and '.', 'S', 'G' or '*' for free ones. Blank lines and surrounding spaces are ignored.
func ParseGrid(text string) (*Grid, error) {
	var rows [][]State
	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]State, 0, len(line))
		for _, ch := range line {
			switch ch {
			case SymbolBlocked:
				row = append(row, Blocked)
			case SymbolFree, SymbolStart, SymbolGoal, SymbolRoute:
				row = append(row, Free)
			default:
				return nil, fmt.Errorf("world: line %d: unexpected symbol %q", lineNo+1, ch)
			}
		}
		rows = append(rows, row)
	}
	return NewGridFromRows(rows)
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	if g == nil {
		return 0
	}
	return g.rows
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	if g == nil {
		return 0
	}
	return g.cols
}

// InBounds checks if a cell is within grid bounds
func (g *Grid) InBounds(c Cell) bool {
	if g == nil {
		return false
	}
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// IsBlocked reports whether the cell is occupied. Cells outside the grid count as blocked.
func (g *Grid) IsBlocked(c Cell) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.cells[c.Row*g.cols+c.Col] == Blocked
}

// State returns the state of a cell, or Blocked if it is out of bounds
func (g *Grid) State(c Cell) State {
	if g.IsBlocked(c) {
		return Blocked
	}
	return Free
}

// SetBlocked marks the cell as blocked or free. Returns false if out of bounds.
func (g *Grid) SetBlocked(c Cell, blocked bool) bool {
	if !g.InBounds(c) {
		return false
	}
	state := Free
	if blocked {
		state = Blocked
	}
	g.cells[c.Row*g.cols+c.Col] = state
	return true
}

// FillRect sets every in-bounds cell of the inclusive rectangle from a to b
func (g *Grid) FillRect(a, b Cell, blocked bool) {
	r0, r1 := min(a.Row, b.Row), max(a.Row, b.Row)
	c0, c1 := min(a.Col, b.Col), max(a.Col, b.Col)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			g.SetBlocked(Cell{Row: row, Col: col}, blocked)
		}
	}
}

// Build initializes the grid with the given dimensions
func (g *Grid) Build(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		panic("Grid dimensions must be positive")
	}

	g.rows = rows
	g.cols = cols
	g.cells = make([]State, rows*cols)
}

// ForEachCell iterates over all cells in the grid, calling the provided function for each
func (g *Grid) ForEachCell(fn func(cell Cell, state State)) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			fn(Cell{Row: row, Col: col}, g.cells[row*g.cols+col])
		}
	}
}

// FreeCount returns the number of free cells
func (g *Grid) FreeCount() int {
	n := 0
	for _, s := range g.cells {
		if s == Free {
			n++
		}
	}
	return n
}

// String returns the text form of the grid accepted by ParseGrid
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			if g.cells[row*g.cols+col] == Blocked {
				sb.WriteRune(SymbolBlocked)
			} else {
				sb.WriteRune(SymbolFree)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Validate checks the grid for common issues and returns an error description or empty string if valid
func (g *Grid) Validate() string {
	if g.rows <= 0 || g.cols <= 0 {
		return "Grid has invalid dimensions"
	}

	if len(g.cells) != g.rows*g.cols {
		return "Grid storage does not match its dimensions"
	}

	if g.FreeCount() == 0 {
		return "Grid has no free cells"
	}

	return ""
}
