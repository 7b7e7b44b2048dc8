// Package mapgen converts a map image into an occupancy grid.
//
// The image is resized to the configured size, converted to grayscale and
// inverse-thresholded so dark pixels become obstacles. Obstacles are grown
// with an elliptical dilation, painted into a blue-on-white obstacle image,
// and finally each WindowSize x WindowSize window becomes one grid cell: free
// when its mean free intensity reaches FreeThresh, blocked otherwise.
package mapgen

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/navarrs/a-star/pkg/engine/world"
	"github.com/navarrs/a-star/pkg/planner/config"
)

// dilateIterations is how many times the elliptical kernel is applied
const dilateIterations = 3

var (
	// ObstacleColor paints obstacle pixels in the obstacle image
	ObstacleColor = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	// FreeColor paints free pixels in the obstacle image
	FreeColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// ErrNoImage is returned when Build is given a nil or empty image
var ErrNoImage = errors.New("mapgen: no image data")

// Map is a map image together with the occupancy grid derived from it.
type Map struct {
	Grid      *world.Grid
	Obstacles *image.RGBA // dilated obstacles, blue on white
	Input     *image.RGBA // source image resized to the configured size
	Config    config.MapConfig
}

// Load decodes the image at path (PNG, JPEG, GIF, BMP, TIFF or WebP) and builds a Map from it.
func Load(path string, cfg *config.MapConfig) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapgen: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("mapgen: decoding %s: %w", path, err)
	}
	return Build(img, cfg)
}

// Build runs the conversion pipeline on img.
func Build(img image.Image, cfg *config.MapConfig) (*Map, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrNoImage
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	input := resize(img, cfg.Width, cfg.Height)
	binary := threshold(grayscale(input), uint8(cfg.MinThresh), uint8(cfg.MaxThresh))
	kernel := ellipseKernel(cfg.Dilation)
	for i := 0; i < dilateIterations; i++ {
		binary = dilate(binary, kernel)
	}

	m := &Map{
		Obstacles: obstacleImage(binary, uint8(cfg.MaxThresh)),
		Input:     input,
		Config:    *cfg,
	}
	m.Grid = occupancy(m.Obstacles, cfg.WindowSize, uint8(cfg.FreeThresh))
	return m, nil
}

// FromGrid wraps an existing grid in a Map whose images draw each cell as a
// window x window block, so text grids can be viewed and rendered like images.
func FromGrid(g *world.Grid, window int) *Map {
	if window < 1 {
		window = 1
	}
	w, h := g.Width()*window, g.Height()*window
	obstacles := image.NewRGBA(image.Rect(0, 0, w, h))
	g.ForEachCell(func(c world.Cell, s world.State) {
		fill := FreeColor
		if s == world.Blocked {
			fill = ObstacleColor
		}
		r := image.Rect(c.Col*window, c.Row*window, (c.Col+1)*window, (c.Row+1)*window)
		draw.Draw(obstacles, r, image.NewUniform(fill), image.Point{}, draw.Src)
	})

	input := image.NewRGBA(obstacles.Bounds())
	draw.Copy(input, image.Point{}, obstacles, obstacles.Bounds(), draw.Src, nil)

	cfg := config.DefaultConfig()
	cfg.Width, cfg.Height, cfg.WindowSize, cfg.Dilation = w, h, window, 0
	return &Map{Grid: g, Obstacles: obstacles, Input: input, Config: *cfg}
}

// CellAt returns the grid cell containing pixel (x, y) of the map image.
func (m *Map) CellAt(x, y int) (world.Cell, bool) {
	if x < 0 || y < 0 {
		return world.Cell{}, false
	}
	c := world.NewCell(y/m.Config.WindowSize, x/m.Config.WindowSize)
	return c, m.Grid.InBounds(c)
}

// CellCenter returns the pixel at the centre of a cell's window.
func (m *Map) CellCenter(c world.Cell) image.Point {
	w := m.Config.WindowSize
	return image.Pt(c.Col*w+w/2, c.Row*w+w/2)
}

// CellBounds returns the pixel rectangle covered by a cell.
func (m *Map) CellBounds(c world.Cell) image.Rectangle {
	w := m.Config.WindowSize
	return image.Rect(c.Col*w, c.Row*w, (c.Col+1)*w, (c.Row+1)*w)
}

func resize(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func grayscale(img *image.RGBA) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.SetGray(x, y, color.GrayModel.Convert(img.RGBAAt(x, y)).(color.Gray))
		}
	}
	return gray
}

// threshold is an inverse binary threshold: pixels brighter than minThresh
// become 0, everything else becomes maxThresh.
func threshold(gray *image.Gray, minThresh, maxThresh uint8) *image.Gray {
	out := image.NewGray(gray.Bounds())
	for i, v := range gray.Pix {
		if v > minThresh {
			out.Pix[i] = 0
		} else {
			out.Pix[i] = maxThresh
		}
	}
	return out
}

// ellipseKernel returns the offsets of an elliptical structuring element of
// size (2r+1)x(2r+1), anchored at its centre.
func ellipseKernel(r int) []image.Point {
	if r <= 0 {
		return []image.Point{{}}
	}
	var pts []image.Point
	for dy := -r; dy <= r; dy++ {
		dx := int(math.Round(math.Sqrt(float64(r*r - dy*dy))))
		for x := -dx; x <= dx; x++ {
			pts = append(pts, image.Pt(x, dy))
		}
	}
	return pts
}

// dilate replaces every pixel with the maximum under the kernel. Kernel points
// falling outside the image are ignored.
func dilate(src *image.Gray, kernel []image.Point) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var best uint8
			for _, k := range kernel {
				p := image.Pt(x+k.X, y+k.Y)
				if !p.In(b) {
					continue
				}
				if v := src.GrayAt(p.X, p.Y).Y; v > best {
					best = v
				}
			}
			out.SetGray(x, y, color.Gray{Y: best})
		}
	}
	return out
}

func obstacleImage(binary *image.Gray, obstacle uint8) *image.RGBA {
	b := binary.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if binary.GrayAt(x, y).Y == obstacle {
				out.SetRGBA(x, y, ObstacleColor)
			} else {
				out.SetRGBA(x, y, FreeColor)
			}
		}
	}
	return out
}

// occupancy averages the free intensity of every whole window: 255 for free
// pixels, 0 for obstacle pixels. Windows whose mean is below freeThresh are blocked.
func occupancy(obstacles *image.RGBA, window int, freeThresh uint8) *world.Grid {
	b := obstacles.Bounds()
	rows, cols := b.Dy()/window, b.Dx()/window
	g := world.NewGrid(rows, cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			sum := 0
			for y := 0; y < window; y++ {
				for x := 0; x < window; x++ {
					if obstacles.RGBAAt(b.Min.X+col*window+x, b.Min.Y+row*window+y) == FreeColor {
						sum += 255
					}
				}
			}
			mean := sum / (window * window)
			g.SetBlocked(world.NewCell(row, col), mean < int(freeThresh))
		}
	}
	return g
}
