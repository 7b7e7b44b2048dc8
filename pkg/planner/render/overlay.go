// Package render draws occupancy grids and routes, either onto a copy of the
// map image or as coloured text for a terminal.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/navarrs/a-star/pkg/engine/world"
	"github.com/navarrs/a-star/pkg/planner/mapgen"
)

// Overlay colours
var (
	GridLineColor = color.RGBA{0, 0, 0, 255}
	RouteColor    = color.RGBA{255, 0, 0, 255}
	StartColor    = color.RGBA{0, 200, 0, 255}
	GoalColor     = color.RGBA{255, 140, 0, 255}
)

const (
	routeWidth   = 2.0
	markerRadius = 4.0
	circleSteps  = 24
)

// Grid returns the obstacle image of m with the cell boundaries drawn on it.
func Grid(m *mapgen.Map) *image.RGBA {
	b := m.Obstacles.Bounds()
	dst := image.NewRGBA(b)
	draw.Copy(dst, b.Min, m.Obstacles, b, draw.Src, nil)

	w := m.Config.WindowSize
	for x := b.Min.X; x < b.Max.X; x += w {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			dst.SetRGBA(x, y, GridLineColor)
		}
	}
	for y := b.Min.Y; y < b.Max.Y; y += w {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(x, y, GridLineColor)
		}
	}
	return dst
}

// Overlay draws the grid, the route polyline between cell centres and the
// start and goal markers. An empty path draws only the grid and markers.
func Overlay(m *mapgen.Map, path []world.Cell, start, goal world.Cell) *image.RGBA {
	dst := Grid(m)
	b := dst.Bounds()

	if len(path) > 1 {
		z := vector.NewRasterizer(b.Dx(), b.Dy())
		z.DrawOp = draw.Over
		for i := 1; i < len(path); i++ {
			a, c := m.CellCenter(path[i-1]), m.CellCenter(path[i])
			segment(z, float32(a.X), float32(a.Y), float32(c.X), float32(c.Y), routeWidth)
		}
		z.Draw(dst, b, image.NewUniform(RouteColor), image.Point{})
	}

	marker(dst, m.CellCenter(start), StartColor)
	marker(dst, m.CellCenter(goal), GoalColor)
	return dst
}

// segment adds a filled quad of the given width around the line a-b
func segment(z *vector.Rasterizer, ax, ay, bx, by, width float32) {
	dx, dy := bx-ax, by-ay
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	z.MoveTo(ax+nx, ay+ny)
	z.LineTo(bx+nx, by+ny)
	z.LineTo(bx-nx, by-ny)
	z.LineTo(ax-nx, ay-ny)
	z.ClosePath()
}

// marker fills a small disc centred on p
func marker(dst *image.RGBA, p image.Point, c color.Color) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	cx, cy := float64(p.X), float64(p.Y)
	for i := 0; i < circleSteps; i++ {
		angle := 2 * math.Pi * float64(i) / circleSteps
		x := float32(cx + markerRadius*math.Cos(angle))
		y := float32(cy + markerRadius*math.Sin(angle))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// SavePNG writes img to path as a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("render: encoding %s: %w", path, err)
	}
	return f.Close()
}
