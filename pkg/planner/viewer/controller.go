package viewer

import (
	"errors"
	"io"
	"log/slog"

	"github.com/navarrs/a-star/pkg/engine/search"
	"github.com/navarrs/a-star/pkg/engine/world"
	"github.com/navarrs/a-star/pkg/planner/devtools"
	"github.com/navarrs/a-star/pkg/planner/messages"
	"github.com/navarrs/a-star/pkg/planner/render"
	"github.com/navarrs/a-star/pkg/planner/session"
)

// Controller holds the selection state of the viewer and plans routes as
// cells are picked. It does not depend on a window, so it can be driven
// directly in tests.
type Controller struct {
	session *session.Session
	logger  *slog.Logger

	heuristic     search.Heuristic
	maxExpansions int

	// trace receives each planned route as a ->(r,c) sequence
	trace io.Writer
	// snapshotDir is where snapshots are written; empty disables them
	snapshotDir string

	start, goal       world.Cell
	hasStart, hasGoal bool
	route             []world.Cell
	status            string
}

// NewController creates a controller over the session's map.
func NewController(s *session.Session, h search.Heuristic, logger *slog.Logger) *Controller {
	return &Controller{
		session:   s,
		logger:    logger,
		heuristic: h,
		trace:     io.Discard,
		status:    messages.Get("SELECT_START"),
	}
}

// SetTrace sets where planned routes are printed.
func (c *Controller) SetTrace(w io.Writer) {
	c.trace = w
}

// SetMaxExpansions bounds every query the controller runs; zero means unbounded.
func (c *Controller) SetMaxExpansions(n int) {
	c.maxExpansions = n
}

// SetSnapshotDir enables snapshots into dir.
func (c *Controller) SetSnapshotDir(dir string) {
	c.snapshotDir = dir
}

// Click handles a left click at pixel (x, y) of the map. The first click
// places the start, the second places the goal and plans; a further click
// starts a new selection.
func (c *Controller) Click(x, y int) {
	cell, ok := c.session.Map().CellAt(x, y)
	if !ok {
		c.status = messages.Get("CELL_OUTSIDE_MAP")
		return
	}
	if c.session.Map().Grid.IsBlocked(cell) {
		c.logger.Debug("blocked cell clicked", "cell", cell.String())
		c.status = messages.Get("CELL_BLOCKED", cell.String())
		return
	}

	if !c.hasStart || c.hasGoal {
		c.start, c.hasStart = cell, true
		c.hasGoal = false
		c.route = nil
		c.logger.Info("start selected", "cell", cell.String(), "x", x, "y", y)
		c.status = messages.Get("SELECT_GOAL", cell.String())
		return
	}

	c.goal, c.hasGoal = cell, true
	c.logger.Info("goal selected", "cell", cell.String(), "x", x, "y", y)
	c.replan()
}

// SetHeuristic switches the heuristic and re-plans if both ends are placed.
func (c *Controller) SetHeuristic(h search.Heuristic) {
	if !h.Valid() {
		return
	}
	c.heuristic = h
	c.status = messages.Get("HEURISTIC_SELECTED", h.String())
	if c.hasStart && c.hasGoal {
		c.replan()
	}
}

// Reset clears the selection and the route.
func (c *Controller) Reset() {
	c.hasStart, c.hasGoal = false, false
	c.route = nil
	c.status = messages.Get("SELECT_START")
}

// Snapshot saves the current view as a PNG and returns its path.
func (c *Controller) Snapshot() (string, error) {
	if c.snapshotDir == "" {
		return "", errors.New("viewer: snapshots disabled")
	}
	path, err := devtools.SaveSnapshot(c.snapshotDir, c.session.Map(), c.route, c.start, c.goal)
	if err != nil {
		c.logger.Warn("snapshot failed", "error", err)
		return "", err
	}
	c.logger.Info("snapshot saved", "path", path)
	return path, nil
}

func (c *Controller) replan() {
	q := search.Query{
		Start:         c.start,
		Goal:          c.goal,
		Heuristic:     c.heuristic,
		MaxExpansions: c.maxExpansions,
	}
	res, err := c.session.Plan(q)
	if err != nil {
		c.route = nil
		switch {
		case errors.Is(err, search.ErrNoPath):
			c.status = messages.Get("NO_PATH", c.start.String(), c.goal.String())
		case errors.Is(err, search.ErrExpansionLimit):
			c.status = messages.Get("SEARCH_LIMIT", c.maxExpansions)
		default:
			c.status = messages.Get("INVALID_QUERY", err.Error())
		}
		return
	}

	c.route = res.Path
	render.PrintRoute(c.trace, res.Path)
	if res.Steps() == 0 {
		c.status = messages.Get("ALREADY_AT_GOAL")
		return
	}
	c.status = messages.Get("PATH_FOUND", len(res.Path), res.Cost, res.Expanded)
}

// Route returns the current route, nil when none is planned
func (c *Controller) Route() []world.Cell {
	return c.route
}

// Start returns the start cell and whether it is placed
func (c *Controller) Start() (world.Cell, bool) {
	return c.start, c.hasStart
}

// Goal returns the goal cell and whether it is placed
func (c *Controller) Goal() (world.Cell, bool) {
	return c.goal, c.hasGoal
}

// Heuristic returns the selected heuristic
func (c *Controller) Heuristic() search.Heuristic {
	return c.heuristic
}

// Status returns the status line text
func (c *Controller) Status() string {
	return c.status
}
