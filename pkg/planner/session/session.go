// Package session ties a loaded map to the search engine: it runs queries
// against the map's grid, logs each one, and turns results into routes.
package session

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/navarrs/a-star/pkg/engine/search"
	"github.com/navarrs/a-star/pkg/planner/logging"
	"github.com/navarrs/a-star/pkg/planner/mapgen"
)

// Session runs queries against one map. The grid is read-only while the
// session exists, so Plan may be called from several goroutines.
type Session struct {
	m      *mapgen.Map
	logger *slog.Logger
	newID  func() string
}

// New creates a session for m. A nil logger discards output.
func New(m *mapgen.Map, logger *slog.Logger) *Session {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Session{
		m:      m,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Map returns the session's map
func (s *Session) Map() *mapgen.Map {
	return s.m
}

// Plan runs q against the map's grid.
func (s *Session) Plan(q search.Query) (*search.Result, error) {
	res, _, err := s.plan(q)
	return res, err
}

// PlanRoute runs q and returns the result as a Route carrying the query id
// that was logged for it.
func (s *Session) PlanRoute(q search.Query) (*Route, error) {
	res, id, err := s.plan(q)
	if err != nil {
		return nil, err
	}
	return NewRoute(id, q, res), nil
}

func (s *Session) plan(q search.Query) (*search.Result, string, error) {
	id := s.newID()
	logger := s.logger.With(
		"query_id", id,
		"heuristic", q.Heuristic.String(),
		"connectivity", q.Heuristic.Connectivity(),
		"start", q.Start.String(),
		"goal", q.Goal.String(),
	)
	logger.Debug("planning route", "max_expansions", q.MaxExpansions)

	begin := time.Now()
	res, err := search.Search(s.m.Grid, q)
	elapsed := time.Since(begin)

	switch {
	case err == nil:
		logger.Info("route found",
			"steps", res.Steps(),
			"cost", res.Cost,
			"expanded", res.Expanded,
			"duration", elapsed,
		)
	case search.IsValidationError(err):
		logger.Warn("query rejected", "error", err)
	case errors.Is(err, search.ErrNoPath), errors.Is(err, search.ErrExpansionLimit):
		logger.Info("no route", "error", err, "duration", elapsed)
	default:
		logger.Error("search failed", "error", err)
	}
	return res, id, err
}
