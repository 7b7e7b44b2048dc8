package search

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/zyedidia/generic/mapset"

	"github.com/navarrs/a-star/pkg/engine/world"
)

// mustParse builds a grid from its text form
func mustParse(t *testing.T, text string) *world.Grid {
	t.Helper()
	g, err := world.ParseGrid(text)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	return g
}

// assertValidPath checks endpoints, adjacency under h's move set, and that no cell is blocked
func assertValidPath(t *testing.T, g *world.Grid, path []world.Cell, start, goal world.Cell, h Heuristic) {
	t.Helper()
	if len(path) == 0 {
		t.Fatal("path is empty")
	}
	if path[0] != start {
		t.Errorf("path[0] = %v, want start %v", path[0], start)
	}
	if path[len(path)-1] != goal {
		t.Errorf("path[last] = %v, want goal %v", path[len(path)-1], goal)
	}
	for i, c := range path {
		if g.IsBlocked(c) {
			t.Errorf("path[%d] = %v is blocked", i, c)
		}
		if i == 0 {
			continue
		}
		dir, ok := world.DirectionBetween(path[i-1], c)
		if !ok {
			t.Fatalf("path[%d]=%v and path[%d]=%v are not adjacent", i-1, path[i-1], i, c)
		}
		if h == Manhattan && dir.IsDiagonal() {
			t.Errorf("path uses diagonal %v under Manhattan", dir)
		}
	}
}

// bfsSteps returns the 4-connected shortest step count, or -1 if unreachable
func bfsSteps(g *world.Grid, start, goal world.Cell) int {
	visited := mapset.New[world.Cell]()
	visited.Put(start)
	frontier := []world.Cell{start}
	for steps := 0; len(frontier) > 0; steps++ {
		var next []world.Cell
		for _, c := range frontier {
			if c == goal {
				return steps
			}
			for _, d := range world.CardinalDirections() {
				n := c.Step(d)
				if g.IsBlocked(n) || visited.Has(n) {
					continue
				}
				visited.Put(n)
				next = append(next, n)
			}
		}
		frontier = next
	}
	return -1
}

// dijkstraCost returns the cheapest cost under h's move set, or +Inf if unreachable
func dijkstraCost(g *world.Grid, start, goal world.Cell, h Heuristic) float64 {
	moves, _ := Moves(h)
	dist := map[world.Cell]float64{start: 0}
	done := mapset.New[world.Cell]()
	for {
		best, bestCost, found := world.Cell{}, math.Inf(1), false
		for c, d := range dist {
			if !done.Has(c) && (d < bestCost || (d == bestCost && found && (c.Row < best.Row || (c.Row == best.Row && c.Col < best.Col)))) {
				best, bestCost, found = c, d, true
			}
		}
		if !found {
			return math.Inf(1)
		}
		if best == goal {
			return bestCost
		}
		done.Put(best)
		for _, m := range moves {
			n := best.Step(m.Dir)
			if g.IsBlocked(n) || done.Has(n) {
				continue
			}
			if d, ok := dist[n]; !ok || bestCost+m.Cost < d {
				dist[n] = bestCost + m.Cost
			}
		}
	}
}

func randomGrid(rng *rand.Rand, rows, cols int, density float64) *world.Grid {
	g := world.NewGrid(rows, cols)
	g.ForEachCell(func(c world.Cell, _ world.State) {
		if rng.Float64() < density {
			g.SetBlocked(c, true)
		}
	})
	return g
}

func TestFindPath_OpenGridFromCorner(t *testing.T) {
	g := world.NewGrid(5, 5)
	start, goal := world.NewCell(0, 0), world.NewCell(4, 4)

	cases := []struct {
		h     Heuristic
		cells int
		cost  float64
	}{
		{Manhattan, 9, 8},
		{Euclidean, 5, 4 * math.Sqrt2},
		{Octagonal, 5, 4 * math.Sqrt2},
	}
	for _, tc := range cases {
		t.Run(tc.h.String(), func(t *testing.T) {
			res, err := Search(g, Query{Start: start, Goal: goal, Heuristic: tc.h})
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			assertValidPath(t, g, res.Path, start, goal, tc.h)
			if len(res.Path) != tc.cells {
				t.Errorf("len(path) = %d, want %d", len(res.Path), tc.cells)
			}
			if math.Abs(res.Cost-tc.cost) > 1e-9 {
				t.Errorf("Cost = %v, want %v", res.Cost, tc.cost)
			}
			if cost, ok := PathCost(res.Path); !ok || math.Abs(cost-res.Cost) > 1e-9 {
				t.Errorf("PathCost(path) = %v, %v, want %v, true", cost, ok, res.Cost)
			}
			if res.Steps() != tc.cells-1 {
				t.Errorf("Steps() = %d, want %d", res.Steps(), tc.cells-1)
			}
		})
	}
}

func TestFindPath_AroundWall(t *testing.T) {
	g := mustParse(t, `
		S...#....
		.##.#.##.
		.#..#..#.
		.#.###.#.
		.#.....#G
	`)
	start, goal := world.NewCell(0, 0), world.NewCell(4, 8)
	for _, h := range Heuristics() {
		path, err := FindPath(g, start, goal, h)
		if err != nil {
			t.Fatalf("FindPath(%v): %v", h, err)
		}
		assertValidPath(t, g, path, start, goal, h)
	}
}

func TestFindPath_ManhattanMatchesBFS(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 40; i++ {
		g := randomGrid(rng, 12, 15, 0.3)
		start, goal := world.NewCell(0, 0), world.NewCell(11, 14)
		g.SetBlocked(start, false)
		g.SetBlocked(goal, false)

		want := bfsSteps(g, start, goal)
		path, err := FindPath(g, start, goal, Manhattan)
		if want < 0 {
			if !errors.Is(err, ErrNoPath) {
				t.Errorf("grid %d: FindPath error = %v, want ErrNoPath", i, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("grid %d: FindPath: %v\n%s", i, err, g)
		}
		assertValidPath(t, g, path, start, goal, Manhattan)
		if len(path)-1 != want {
			t.Errorf("grid %d: path has %d steps, BFS says %d\n%s", i, len(path)-1, want, g)
		}
	}
}

func TestFindPath_EightConnectedMatchesDijkstra(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 30; i++ {
		g := randomGrid(rng, 10, 10, 0.25)
		start, goal := world.NewCell(rng.Intn(10), rng.Intn(10)), world.NewCell(rng.Intn(10), rng.Intn(10))
		g.SetBlocked(start, false)
		g.SetBlocked(goal, false)

		for _, h := range []Heuristic{Euclidean, Octagonal} {
			want := dijkstraCost(g, start, goal, h)
			res, err := Search(g, Query{Start: start, Goal: goal, Heuristic: h})
			if math.IsInf(want, 1) {
				if !errors.Is(err, ErrNoPath) {
					t.Errorf("grid %d %v: error = %v, want ErrNoPath", i, h, err)
				}
				continue
			}
			if err != nil {
				t.Fatalf("grid %d %v: Search: %v", i, h, err)
			}
			assertValidPath(t, g, res.Path, start, goal, h)
			if math.Abs(res.Cost-want) > 1e-9 {
				t.Errorf("grid %d %v: cost = %v, Dijkstra says %v\n%s", i, h, res.Cost, want, g)
			}
		}
	}
}

func TestSearch_AdjacentDiagonalGoal(t *testing.T) {
	g := mustParse(t, `
		S.
		..
	`)
	start, goal := world.NewCell(0, 0), world.NewCell(1, 1)
	res, err := Search(g, Query{Start: start, Goal: goal, Heuristic: Octagonal})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if math.Abs(res.Cost-math.Sqrt2) > 1e-12 || len(res.Path) != 2 {
		t.Errorf("Search = %v cost %v, want direct diagonal of cost √2", res.Path, res.Cost)
	}
	if res.Expanded != 1 {
		t.Errorf("Expanded = %d, want 1", res.Expanded)
	}
}

func TestFindPath_UnreachableGoal(t *testing.T) {
	g := mustParse(t, `
		S.#..
		..#..
		..#..
		..#..
		..#.G
	`)
	for _, h := range Heuristics() {
		path, err := FindPath(g, world.NewCell(0, 0), world.NewCell(4, 4), h)
		if !errors.Is(err, ErrNoPath) {
			t.Errorf("FindPath(%v) error = %v, want ErrNoPath", h, err)
		}
		if path != nil {
			t.Errorf("FindPath(%v) path = %v, want nil (no partial path)", h, path)
		}
		if IsValidationError(err) {
			t.Errorf("IsValidationError(%v) = true, want false", err)
		}
	}
}

func TestFindPath_DiagonalGapOnlyForEightConnected(t *testing.T) {
	g := mustParse(t, `
		S#
		#G
	`)
	start, goal := world.NewCell(0, 0), world.NewCell(1, 1)
	if _, err := FindPath(g, start, goal, Manhattan); !errors.Is(err, ErrNoPath) {
		t.Errorf("FindPath(Manhattan) error = %v, want ErrNoPath", err)
	}
	path, err := FindPath(g, start, goal, Euclidean)
	if err != nil {
		t.Fatalf("FindPath(Euclidean): %v", err)
	}
	if len(path) != 2 {
		t.Errorf("FindPath(Euclidean) = %v, want one diagonal step", path)
	}
}

func TestFindPath_OutOfRange(t *testing.T) {
	g := world.NewGrid(3, 3)
	cases := []struct {
		name  string
		start world.Cell
		goal  world.Cell
		which Endpoint
	}{
		{"start row negative", world.NewCell(-1, 0), world.NewCell(2, 2), StartEndpoint},
		{"start col too large", world.NewCell(0, 3), world.NewCell(2, 2), StartEndpoint},
		{"goal row too large", world.NewCell(0, 0), world.NewCell(3, 0), GoalEndpoint},
		{"goal col negative", world.NewCell(0, 0), world.NewCell(1, -1), GoalEndpoint},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FindPath(g, tc.start, tc.goal, Manhattan)
			if !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("error = %v, want ErrOutOfRange", err)
			}
			var epErr *EndpointError
			if !errors.As(err, &epErr) || epErr.Endpoint != tc.which {
				t.Errorf("error = %#v, want EndpointError for %v", err, tc.which)
			}
			if !IsValidationError(err) {
				t.Errorf("IsValidationError(%v) = false, want true", err)
			}
		})
	}
}

func TestFindPath_BlockedEndpoints(t *testing.T) {
	g := mustParse(t, `
		#..
		...
		..#
	`)
	_, err := FindPath(g, world.NewCell(0, 0), world.NewCell(1, 1), Octagonal)
	var epErr *EndpointError
	if !errors.Is(err, ErrBlocked) || !errors.As(err, &epErr) || epErr.Endpoint != StartEndpoint {
		t.Errorf("blocked start error = %v, want ErrBlocked for start", err)
	}

	_, err = FindPath(g, world.NewCell(1, 1), world.NewCell(2, 2), Octagonal)
	if !errors.Is(err, ErrBlocked) || !errors.As(err, &epErr) || epErr.Endpoint != GoalEndpoint {
		t.Errorf("blocked goal error = %v, want ErrBlocked for goal", err)
	}
}

type emptyView struct{}

func (emptyView) Height() int                 { return 0 }
func (emptyView) Width() int                  { return 4 }
func (emptyView) IsBlocked(_ world.Cell) bool { return false }

func TestFindPath_EmptyGrid(t *testing.T) {
	origin := world.NewCell(0, 0)
	if _, err := FindPath(emptyView{}, origin, origin, Manhattan); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("FindPath(empty view) error = %v, want ErrEmptyGrid", err)
	}
	if _, err := FindPath(nil, origin, origin, Manhattan); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("FindPath(nil) error = %v, want ErrEmptyGrid", err)
	}
	var g *world.Grid
	if _, err := FindPath(g, origin, origin, Manhattan); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("FindPath((*Grid)(nil)) error = %v, want ErrEmptyGrid", err)
	}
}

func TestFindPath_UnsupportedHeuristic(t *testing.T) {
	g := world.NewGrid(2, 2)
	_, err := FindPath(g, world.NewCell(0, 0), world.NewCell(1, 1), Heuristic(42))
	if !errors.Is(err, ErrUnsupportedHeuristic) {
		t.Errorf("error = %v, want ErrUnsupportedHeuristic", err)
	}
}

func TestFindPath_StartEqualsGoal(t *testing.T) {
	g := world.NewGrid(3, 3)
	c := world.NewCell(1, 1)
	res, err := Search(g, Query{Start: c, Goal: c, Heuristic: Euclidean})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !slices.Equal(res.Path, []world.Cell{c}) {
		t.Errorf("Path = %v, want [%v]", res.Path, c)
	}
	if res.Cost != 0 || res.Expanded != 0 || res.Steps() != 0 {
		t.Errorf("Cost/Expanded/Steps = %v/%d/%d, want 0/0/0", res.Cost, res.Expanded, res.Steps())
	}
}

func TestFindPath_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := randomGrid(rng, 20, 20, 0.2)
	start, goal := world.NewCell(0, 0), world.NewCell(19, 19)
	g.SetBlocked(start, false)
	g.SetBlocked(goal, false)

	for _, h := range Heuristics() {
		first, firstErr := FindPath(g, start, goal, h)
		for i := 0; i < 5; i++ {
			again, err := FindPath(g, start, goal, h)
			if !errors.Is(err, firstErr) || !slices.Equal(first, again) {
				t.Fatalf("%v run %d = %v, %v, want %v, %v", h, i, again, err, first, firstErr)
			}
		}
	}
}

func TestFindPath_DoesNotMutateGrid(t *testing.T) {
	g := mustParse(t, `
		....#
		.##.#
		....G
	`)
	before := g.String()
	if _, err := FindPath(g, world.NewCell(0, 0), world.NewCell(2, 4), Octagonal); err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if after := g.String(); after != before {
		t.Errorf("grid changed:\n%s\nwant\n%s", after, before)
	}
}

func TestSearch_ExpansionLimit(t *testing.T) {
	g := world.NewGrid(30, 30)
	q := Query{Start: world.NewCell(0, 0), Goal: world.NewCell(29, 29), Heuristic: Manhattan, MaxExpansions: 5}
	_, err := Search(g, q)
	if !errors.Is(err, ErrExpansionLimit) {
		t.Errorf("error = %v, want ErrExpansionLimit", err)
	}
	if IsValidationError(err) {
		t.Errorf("IsValidationError(%v) = true, want false", err)
	}

	q.MaxExpansions = 0
	if _, err := Search(g, q); err != nil {
		t.Errorf("unbounded Search error = %v, want nil", err)
	}
}

func TestSearch_FreshStatePerCall(t *testing.T) {
	small := world.NewGrid(2, 2)
	large := mustParse(t, `
		..#...
		..#.#.
		....#.
	`)
	if _, err := FindPath(large, world.NewCell(0, 0), world.NewCell(0, 5), Manhattan); err != nil {
		t.Fatalf("FindPath(large): %v", err)
	}
	path, err := FindPath(small, world.NewCell(0, 0), world.NewCell(1, 1), Octagonal)
	if err != nil {
		t.Fatalf("FindPath(small): %v", err)
	}
	if len(path) != 2 {
		t.Errorf("FindPath(small) = %v, want single diagonal step", path)
	}
}
