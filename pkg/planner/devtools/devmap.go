package devtools

import (
	"github.com/navarrs/a-star/pkg/engine/world"
)

// Cells of interest on the developer test grid
var (
	DevStart  = world.NewCell(1, 1)
	DevGoal   = world.NewCell(18, 38)
	DevPocket = world.NewCell(16, 5) // walled in, unreachable from DevStart
	DevSlit   = world.NewCell(5, 30) // reachable only through a diagonal gap
)

// DevGrid returns a hard-coded 20x40 developer testing grid.
// It contains a long wall with a single opening, a U-shaped trap facing the
// start, a walled pocket that nothing can reach, and a cell that is only
// reachable by squeezing diagonally between two blocked cells.
func DevGrid() *world.Grid {
	g := world.NewGrid(20, 40)

	// Long vertical wall at column 12 with an opening at row 17
	g.FillRect(world.NewCell(0, 12), world.NewCell(16, 12), true)
	g.FillRect(world.NewCell(18, 12), world.NewCell(19, 12), true)

	// U-shaped trap opening towards the start
	g.FillRect(world.NewCell(3, 20), world.NewCell(3, 28), true)
	g.FillRect(world.NewCell(11, 20), world.NewCell(11, 28), true)
	g.FillRect(world.NewCell(3, 28), world.NewCell(11, 28), true)

	// Walled pocket around DevPocket
	g.FillRect(world.NewCell(14, 3), world.NewCell(18, 7), true)
	g.FillRect(world.NewCell(15, 4), world.NewCell(17, 6), false)

	// DevSlit sits inside a 3x3 block; its only neighbour is the open corner
	// (4,31), reached diagonally between (4,30) and (5,31)
	g.FillRect(world.NewCell(4, 29), world.NewCell(6, 31), true)
	g.SetBlocked(DevSlit, false)
	g.SetBlocked(world.NewCell(4, 31), false)

	return g
}
