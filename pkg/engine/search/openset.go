package search

import (
	"math"

	"github.com/zyedidia/generic/heap"

	"github.com/navarrs/a-star/pkg/engine/world"
)

type nodeState uint8

const (
	unseen nodeState = iota
	opened
	closed
)

// node is the per-cell search record
type node struct {
	g      float64
	h      float64
	parent world.Cell
	state  nodeState
}

// nodeTable holds one node per grid cell, row-major, for a single query
type nodeTable struct {
	nodes []node
	rows  int
	cols  int
}

func newNodeTable(rows, cols int) *nodeTable {
	t := &nodeTable{
		nodes: make([]node, rows*cols),
		rows:  rows,
		cols:  cols,
	}
	for i := range t.nodes {
		t.nodes[i].g = math.Inf(1)
		t.nodes[i].parent = world.Cell{Row: -1, Col: -1}
	}
	return t
}

func (t *nodeTable) contains(c world.Cell) bool {
	return c.Row >= 0 && c.Row < t.rows && c.Col >= 0 && c.Col < t.cols
}

// at returns the node for c; callers check contains first
func (t *nodeTable) at(c world.Cell) *node {
	return &t.nodes[c.Row*t.cols+c.Col]
}

// openEntry is a frontier snapshot. A cell may have several entries; only the
// one whose g still matches the node table is live.
type openEntry struct {
	cell world.Cell
	g    float64
	h    float64
	seq  uint64
}

func (e openEntry) f() float64 {
	return e.g + e.h
}

// openSet is the frontier ordered by f, then h, then insertion order
type openSet struct {
	heap *heap.Heap[openEntry]
	seq  uint64
}

func newOpenSet() *openSet {
	return &openSet{heap: heap.New[openEntry](lessEntry)}
}

func lessEntry(a, b openEntry) bool {
	if fa, fb := a.f(), b.f(); fa != fb {
		return fa < fb
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (s *openSet) push(cell world.Cell, g, h float64) {
	s.heap.Push(openEntry{cell: cell, g: g, h: h, seq: s.seq})
	s.seq++
}

func (s *openSet) pop() (openEntry, bool) {
	return s.heap.Pop()
}

func (s *openSet) size() int {
	return s.heap.Size()
}
