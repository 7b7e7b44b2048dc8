// Package viewer shows a map in a window and plans routes between cells
// picked with the mouse.
//
// Left click places the start, a second left click places the goal and the
// route is planned and drawn. Keys 1, 2 and 3 select the manhattan, euclidean
// and octagonal heuristics, R resets the selection, S saves a snapshot and
// Esc closes the window.
package viewer

import (
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/navarrs/a-star/pkg/engine/search"
	"github.com/navarrs/a-star/pkg/planner/messages"
	"github.com/navarrs/a-star/pkg/planner/render"
	"github.com/navarrs/a-star/pkg/planner/session"
)

// Height of the status bar below the map
const statusBarHeight = 36

var (
	colorStatusBar = color.RGBA{20, 20, 30, 255}
	colorRoute     = color.RGBA{255, 0, 0, 255}
)

// heuristicKeys maps the number keys to heuristics
var heuristicKeys = map[ebiten.Key]search.Heuristic{
	ebiten.Key1: search.Manhattan,
	ebiten.Key2: search.Euclidean,
	ebiten.Key3: search.Octagonal,
}

// Viewer is the Ebiten game driving a Controller.
type Viewer struct {
	*Controller

	background *ebiten.Image
	width      int
	height     int

	windowOpenedLogged bool
}

// New creates a viewer for the session's map.
func New(s *session.Session, h search.Heuristic, logger *slog.Logger) *Viewer {
	b := s.Map().Obstacles.Bounds()
	return &Viewer{
		Controller: NewController(s, h, logger),
		width:      b.Dx(),
		height:     b.Dy(),
	}
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() error {
	ebiten.SetWindowSize(v.width, v.height+statusBarHeight)
	ebiten.SetWindowTitle("A* planner")
	err := ebiten.RunGame(v)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

// Update handles input (Ebiten interface)
func (v *Viewer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !v.windowOpenedLogged {
		v.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		v.logger.Info("viewer window opened", "width", w, "height", h)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, h := range heuristicKeys {
		if inpututil.IsKeyJustPressed(key) {
			v.SetHeuristic(h)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if path, err := v.Snapshot(); err == nil {
			v.status = path
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		v.Click(x, y)
	}
	return nil
}

// Draw renders the map, the route, the markers and the status bar (Ebiten interface)
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.background == nil {
		v.background = ebiten.NewImageFromImage(render.Grid(v.session.Map()))
	}
	screen.DrawImage(v.background, nil)

	m := v.session.Map()
	route := v.Route()
	for i := 1; i < len(route); i++ {
		a, b := m.CellCenter(route[i-1]), m.CellCenter(route[i])
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, colorRoute, true)
	}
	if start, ok := v.Start(); ok {
		p := m.CellCenter(start)
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 4, render.StartColor, true)
	}
	if goal, ok := v.Goal(); ok {
		p := m.CellCenter(goal)
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 4, render.GoalColor, true)
	}

	vector.DrawFilledRect(screen, 0, float32(v.height), float32(v.width), statusBarHeight, colorStatusBar, false)
	ebitenutil.DebugPrintAt(screen, v.Status(), 4, v.height+2)
	ebitenutil.DebugPrintAt(screen, messages.Get("VIEWER_HELP"), 4, v.height+18)
}

// Layout keeps the logical screen at the map size plus the status bar (Ebiten interface)
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height + statusBarHeight
}
