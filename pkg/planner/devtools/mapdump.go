// Package devtools provides developer tools for testing and debugging the planner.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zyedidia/generic/mapset"

	"github.com/navarrs/a-star/pkg/engine/search"
	"github.com/navarrs/a-star/pkg/engine/world"
)

// MapSectionHeader introduces the ASCII map in a dump. The lines after it, up to
// the next blank line, are accepted by world.ParseGrid.
const MapSectionHeader = "--- Map ---"

// cellSymbol returns the single-character symbol for a cell
func cellSymbol(g *world.Grid, c world.Cell, route *mapset.Set[world.Cell], start, goal world.Cell) rune {
	switch {
	case c == start:
		return world.SymbolStart
	case c == goal:
		return world.SymbolGoal
	case route.Has(c):
		return world.SymbolRoute
	case g.IsBlocked(c):
		return world.SymbolBlocked
	default:
		return world.SymbolFree
	}
}

// writeMapGrid writes one line per grid row with the route overlay
func writeMapGrid(w io.Writer, g *world.Grid, path []world.Cell, start, goal world.Cell) {
	route := mapset.New[world.Cell]()
	for _, c := range path {
		route.Put(c)
	}
	line := make([]rune, g.Width())
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			line[col] = cellSymbol(g, world.NewCell(row, col), &route, start, goal)
		}
		fmt.Fprintln(w, string(line))
	}
}

// DumpGrid writes a debug dump of the grid: metadata, legend, the map with the
// route overlaid, and the route as a list of cells.
// Format is human-readable (sections, key: value, consistent structure).
func DumpGrid(w io.Writer, g *world.Grid, path []world.Cell, start, goal world.Cell) {
	fmt.Fprintln(w, "=== GRID DUMP ===")
	fmt.Fprintln(w, "")

	// --- Metadata ---
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "grid_rows: %d\n", g.Height())
	fmt.Fprintf(w, "grid_cols: %d\n", g.Width())
	fmt.Fprintf(w, "free_cells: %d\n", g.FreeCount())
	fmt.Fprintf(w, "blocked_cells: %d\n", g.Height()*g.Width()-g.FreeCount())
	fmt.Fprintf(w, "coordinate_system: row,col (0-based, row=vertical, col=horizontal)\n")
	fmt.Fprintf(w, "start_cell: %d,%d\n", start.Row, start.Col)
	fmt.Fprintf(w, "goal_cell: %d,%d\n", goal.Row, goal.Col)
	if cost, ok := search.PathCost(path); ok && len(path) > 0 {
		fmt.Fprintf(w, "route_cells: %d\n", len(path))
		fmt.Fprintf(w, "route_cost: %.4f\n", cost)
	} else {
		fmt.Fprintln(w, "route_cells: 0")
	}
	fmt.Fprintln(w, "")

	// --- Legend ---
	fmt.Fprintln(w, "--- Legend (cell symbols) ---")
	fmt.Fprintf(w, "%c = free  %c = blocked  %c = route  %c = start  %c = goal\n",
		world.SymbolFree, world.SymbolBlocked, world.SymbolRoute, world.SymbolStart, world.SymbolGoal)
	fmt.Fprintln(w, "")

	// --- Map ---
	fmt.Fprintln(w, MapSectionHeader)
	writeMapGrid(w, g, path, start, goal)
	fmt.Fprintln(w, "")

	// --- Route ---
	fmt.Fprintln(w, "--- Route (row,col in order) ---")
	for i, c := range path {
		fmt.Fprintf(w, "  %d: %d,%d\n", i, c.Row, c.Col)
	}
}

// DumpToFile writes DumpGrid output to filename and returns its absolute path.
func DumpToFile(filename string, g *world.Grid, path []world.Cell, start, goal world.Cell) (string, error) {
	if g == nil {
		return "", fmt.Errorf("no grid")
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	DumpGrid(f, g, path, start, goal)
	return absPath, nil
}
