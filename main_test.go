package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/navarrs/a-star/pkg/engine/search"
	"github.com/navarrs/a-star/pkg/engine/world"
	"github.com/navarrs/a-star/pkg/planner/logging"
)

func TestParseCell(t *testing.T) {
	good := map[string]world.Cell{
		"0,0":     world.NewCell(0, 0),
		" 12, 7 ": world.NewCell(12, 7),
		"-1,3":    world.NewCell(-1, 3),
	}
	for in, want := range good {
		got, err := parseCell(in)
		if err != nil || got != want {
			t.Errorf("parseCell(%q) = %v, %v, want %v", in, got, err, want)
		}
	}

	for _, in := range []string{"", "3", "a,1", "1,b", "1;2"} {
		if _, err := parseCell(in); err == nil {
			t.Errorf("parseCell(%q) succeeded", in)
		}
	}
}

func TestBuildQuery(t *testing.T) {
	heuristicName, maxExpansions = "octagonal", 50
	t.Cleanup(func() { heuristicName, maxExpansions = search.Euclidean.String(), 0 })

	q, err := buildQuery("1,2", "3,4")
	if err != nil {
		t.Fatalf("buildQuery: %v", err)
	}
	want := search.Query{Start: world.NewCell(1, 2), Goal: world.NewCell(3, 4), Heuristic: search.Octagonal, MaxExpansions: 50}
	if q != want {
		t.Errorf("buildQuery = %+v, want %+v", q, want)
	}

	if _, err := buildQuery("1,2", "x"); err == nil || !strings.Contains(err.Error(), "--goal") {
		t.Errorf("buildQuery(bad goal) error = %v", err)
	}

	heuristicName = "dijkstra"
	if _, err := buildQuery("1,2", "3,4"); err == nil {
		t.Error("buildQuery accepted an unknown heuristic")
	}
}

// writeGrid writes a text grid fixture and returns its path
func writeGrid(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.txt")
	body := "....\n.##.\n....\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMap_RejectsGridWithoutFreeCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walls.txt")
	if err := os.WriteFile(path, []byte("###\n###\n"), 0644); err != nil {
		t.Fatal(err)
	}
	gridPath = path
	t.Cleanup(func() { gridPath = "" })

	_, err := loadMap(logging.NewDiscardLogger())
	if err == nil || !strings.Contains(err.Error(), "no free cells") {
		t.Errorf("loadMap(all blocked) error = %v, want no free cells", err)
	}
}

func TestCommands_PlanAndDump(t *testing.T) {
	grid := writeGrid(t)
	dir := t.TempDir()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{
		"plan", "--grid", grid, "--start", "2,0", "--goal", "0,3",
		"--heuristic", "manhattan", "--format", "json", "--log-level", "quiet",
		"--image", filepath.Join(dir, "route.png"),
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("plan: %v\n%s", err, out.String())
	}

	var route struct {
		Heuristic string  `json:"heuristic"`
		Cost      float64 `json:"cost"`
		Path      []struct {
			Row, Col int
		} `json:"path"`
	}
	if err := json.Unmarshal(out.Bytes(), &route); err != nil {
		t.Fatalf("plan output is not JSON: %v\n%s", err, out.String())
	}
	if route.Heuristic != "manhattan" || route.Cost != 5 || len(route.Path) != 6 {
		t.Errorf("plan route = %+v", route)
	}
	if _, err := os.Stat(filepath.Join(dir, "route.png")); err != nil {
		t.Errorf("route image not written: %v", err)
	}

	out.Reset()
	dumpFile := filepath.Join(dir, "dump.txt")
	rootCmd.SetArgs([]string{
		"dump", "--grid", grid, "--start", "2,0", "--goal", "0,3",
		"--heuristic", "manhattan", "--log-level", "quiet", "--out", dumpFile,
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("dump: %v\n%s", err, out.String())
	}
	data, err := os.ReadFile(dumpFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "route_cells: 6") {
		t.Errorf("dump =\n%s", data)
	}
}
