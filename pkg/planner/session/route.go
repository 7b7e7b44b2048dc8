package session

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/navarrs/a-star/pkg/engine/search"
	"github.com/navarrs/a-star/pkg/engine/world"
	"github.com/navarrs/a-star/pkg/planner/messages"
	"github.com/navarrs/a-star/pkg/planner/render"
)

// Output formats accepted by FormatRoute
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Point is a cell in serialised output
type Point struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

func pointOf(c world.Cell) Point {
	return Point{Row: c.Row, Col: c.Col}
}

// Cell converts the point back to a grid cell
func (p Point) Cell() world.Cell {
	return world.NewCell(p.Row, p.Col)
}

// Route is the serialisable form of a planned route.
type Route struct {
	QueryID   string  `json:"query_id" yaml:"query_id"`
	Heuristic string  `json:"heuristic" yaml:"heuristic"`
	Start     Point   `json:"start" yaml:"start"`
	Goal      Point   `json:"goal" yaml:"goal"`
	Cost      float64 `json:"cost" yaml:"cost"`
	Expanded  int     `json:"expanded" yaml:"expanded"`
	Path      []Point `json:"path" yaml:"path"`
}

// NewRoute builds a Route for the result of q.
func NewRoute(id string, q search.Query, res *search.Result) *Route {
	r := &Route{
		QueryID:   id,
		Heuristic: q.Heuristic.String(),
		Start:     pointOf(q.Start),
		Goal:      pointOf(q.Goal),
		Cost:      res.Cost,
		Expanded:  res.Expanded,
		Path:      make([]Point, len(res.Path)),
	}
	for i, c := range res.Path {
		r.Path[i] = pointOf(c)
	}
	return r
}

// Cells returns the route's path as grid cells
func (r *Route) Cells() []world.Cell {
	cells := make([]world.Cell, len(r.Path))
	for i, p := range r.Path {
		cells[i] = p.Cell()
	}
	return cells
}

// ValidFormat reports whether format is accepted by FormatRoute
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatText, FormatYAML, FormatJSON:
		return true
	}
	return false
}

// FormatRoute writes r to w as text, yaml or json.
func FormatRoute(w io.Writer, r *Route, format string) error {
	switch strings.ToLower(format) {
	case FormatText:
		fmt.Fprintln(w, messages.Get("ROUTE_HEADER", r.QueryID, r.Heuristic))
		fmt.Fprintln(w, messages.Get("PATH_FOUND", len(r.Path), r.Cost, r.Expanded))
		render.PrintRoute(w, r.Cells())
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("session: encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	default:
		return fmt.Errorf("session: unknown output format %q", format)
	}
}
