package search

import (
	"errors"
	"fmt"

	"github.com/navarrs/a-star/pkg/engine/world"
)

// Errors returned by Search and FindPath. Validation failures are reported
// before any expansion; ErrNoPath and ErrExpansionLimit are search outcomes.
var (
	ErrEmptyGrid            = errors.New("search: grid is empty")
	ErrOutOfRange           = errors.New("search: cell out of range")
	ErrBlocked              = errors.New("search: cell is blocked")
	ErrUnsupportedHeuristic = errors.New("search: unsupported heuristic")
	ErrNoPath               = errors.New("search: no path found")
	ErrExpansionLimit       = errors.New("search: expansion limit reached")

	errIncompleteSearch = errors.New("search: goal was not reached")
)

// Endpoint names which end of a query an error refers to
type Endpoint int

// Endpoint constants
const (
	StartEndpoint Endpoint = iota
	GoalEndpoint
)

// String returns "start" or "goal"
func (e Endpoint) String() string {
	if e == GoalEndpoint {
		return "goal"
	}
	return "start"
}

// EndpointError reports a start or goal cell that is out of range or blocked.
// Err is ErrOutOfRange or ErrBlocked.
type EndpointError struct {
	Endpoint Endpoint
	Cell     world.Cell
	Err      error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("%v: %s %v", e.Err, e.Endpoint, e.Cell)
}

func (e *EndpointError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err was raised while checking the query,
// as opposed to a search that ran and found nothing.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyGrid) ||
		errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, ErrBlocked) ||
		errors.Is(err, ErrUnsupportedHeuristic)
}
