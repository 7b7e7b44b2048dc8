package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/zyedidia/generic/mapset"

	"github.com/navarrs/a-star/pkg/engine/terminal"
	"github.com/navarrs/a-star/pkg/engine/world"
)

// Lines kept free below the map for the route and status text
const reservedLines = 4

// cellWidth is the symbol plus a separating space
const cellWidth = 2

// Terminal renders grids as coloured text, clipped to the terminal size.
type Terminal struct {
	out    io.Writer
	width  int
	height int

	colorFree    color.Style
	colorBlocked color.Style
	colorRoute   color.Style
	colorStart   color.Style
	colorGoal    color.Style
	colorSubtle  color.Style
}

// NewTerminal creates a renderer writing to out, sized to the current terminal.
func NewTerminal(out io.Writer) *Terminal {
	w, h := terminal.GetSize()
	return &Terminal{
		out:          out,
		width:        w,
		height:       h,
		colorFree:    color.Style{color.FgGray},
		colorBlocked: color.Style{color.FgBlue, color.OpBold},
		colorRoute:   color.Style{color.FgRed, color.OpBold},
		colorStart:   color.Style{color.FgGreen, color.OpBold},
		colorGoal:    color.Style{color.FgYellow, color.OpBold},
		colorSubtle:  color.Style{color.FgGray, color.OpBold},
	}
}

// SetSize overrides the detected terminal size.
func (t *Terminal) SetSize(width, height int) {
	t.width, t.height = width, height
}

// Render prints the grid with the route marked. Rows and columns that do not
// fit on the terminal are cut off and a note says how much is shown.
func (t *Terminal) Render(g *world.Grid, path []world.Cell, start, goal world.Cell) {
	route := mapset.New[world.Cell]()
	for _, c := range path {
		route.Put(c)
	}

	rows, cols := terminal.Viewport(t.width, t.height, cellWidth, reservedLines, g.Height(), g.Width())
	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			sb.WriteString(t.renderCell(g, world.NewCell(row, col), &route, start, goal))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	fmt.Fprint(t.out, sb.String())

	if rows < g.Height() || cols < g.Width() {
		fmt.Fprintln(t.out, t.colorSubtle.Sprintf("(showing %dx%d of %dx%d cells)", rows, cols, g.Height(), g.Width()))
	}
}

func (t *Terminal) renderCell(g *world.Grid, c world.Cell, route *mapset.Set[world.Cell], start, goal world.Cell) string {
	switch {
	case c == start:
		return t.colorStart.Sprint(string(world.SymbolStart))
	case c == goal:
		return t.colorGoal.Sprint(string(world.SymbolGoal))
	case route.Has(c):
		return t.colorRoute.Sprint(string(world.SymbolRoute))
	case g.State(c) == world.Blocked:
		return t.colorBlocked.Sprint(string(world.SymbolBlocked))
	default:
		return t.colorFree.Sprint(string(world.SymbolFree))
	}
}

// PrintRoute writes the route as a ->(r,c) sequence followed by a newline.
func PrintRoute(w io.Writer, path []world.Cell) {
	var sb strings.Builder
	for _, c := range path {
		sb.WriteString("->")
		sb.WriteString(c.String())
	}
	sb.WriteByte('\n')
	fmt.Fprint(w, sb.String())
}
