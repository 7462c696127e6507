// Package graph implements the sparse decoding graph (spec.md §4.1, C1):
// a dense-index vertex/edge model with integer weights and per-vertex
// adjacency lists, mutable only between solves.
//
// The design mirrors github.com/katalvlaran/lvlath's core.Graph (string-keyed
// vertices guarded by separate RWMutex locks for vertex and edge/adjacency
// state) but trades string IDs for the dense integer indices spec.md's data
// model requires: a decoding graph's vertex count is fixed at construction
// and indices double as array offsets for the dual module.
//
// Errors:
//
//	ErrVertexOutOfRange - edge or virtual-vertex declaration referenced index >= V.
//	ErrSelfLoop         - an edge's two endpoints were equal.
//	ErrNegativeWeight   - an edge or SetWeight call used a negative weight.
//	ErrDuplicateVirtual - the same vertex was declared virtual twice.
//	ErrEdgeOutOfRange   - SetWeight used e >= E.
//	ErrUntouchedVertex  - a real (non-virtual) vertex had no incident edge.
package graph

import (
	"errors"
	"sync"

	"github.com/qecsim/fusionmatch/weight"
)

// Sentinel construction errors (spec.md §4.1, §7 "Construction").
var (
	ErrVertexOutOfRange = errors.New("graph: vertex index out of range")
	ErrSelfLoop         = errors.New("graph: self-loop is not a valid decoding edge")
	ErrNegativeWeight   = errors.New("graph: negative edge weight")
	ErrDuplicateVirtual = errors.New("graph: duplicate virtual-vertex declaration")
	ErrEdgeOutOfRange   = errors.New("graph: edge index out of range")
	ErrUntouchedVertex  = errors.New("graph: real vertex has no incident edge")
)

// WeightedEdge is the input shape for Create: an unordered pair (Left, Right)
// with a non-negative Weight. Dense edge indices are assigned in input order.
type WeightedEdge struct {
	Left, Right int
	Weight      weight.Weight
}

type edgeRecord struct {
	left, right int
	weight      weight.Weight
}

// Graph is the sparse decoding graph: V dense vertex indices [0,V), E dense
// edge indices [0,E), and per-vertex adjacency (edge-index lists).
//
// Concurrency: muTopology guards vertex/edge declarations and weight
// mutation (only legal between solves, per spec.md §4.1); muDefect guards
// the transient per-solve Defect flags, so concurrent base-unit solves in
// the parallel scheduler (C7) may mark disjoint vertex ranges without
// contending on topology reads. This mirrors the teacher's split between
// muVert and muEdgeAdj: never hold both locks at once.
type Graph struct {
	muTopology sync.RWMutex
	muDefect   sync.RWMutex

	vertexNum int
	isVirtual []bool
	edges     []edgeRecord
	adjacency [][]int // vertex -> incident edge indices

	defect []bool // transient per-solve flag, see SetDefect/ClearDefects
}

// Create builds a Graph with vertexNum vertices, the given weighted edges,
// and the given set of virtual (boundary) vertex indices.
//
// Complexity: O(V+E). Returns a construction error (spec.md §7) rather than
// panicking; runtime invariant violations are a separate, fatal, category
// (see internal/fatal).
func Create(vertexNum int, edges []WeightedEdge, virtuals []int) (*Graph, error) {
	g := &Graph{
		vertexNum: vertexNum,
		isVirtual: make([]bool, vertexNum),
		edges:     make([]edgeRecord, 0, len(edges)),
		adjacency: make([][]int, vertexNum),
		defect:    make([]bool, vertexNum),
	}

	for _, v := range virtuals {
		if v < 0 || v >= vertexNum {
			return nil, ErrVertexOutOfRange
		}
		if g.isVirtual[v] {
			return nil, ErrDuplicateVirtual
		}
		g.isVirtual[v] = true
	}

	touched := make([]bool, vertexNum)
	for _, e := range edges {
		if e.Left < 0 || e.Left >= vertexNum || e.Right < 0 || e.Right >= vertexNum {
			return nil, ErrVertexOutOfRange
		}
		if e.Left == e.Right {
			return nil, ErrSelfLoop
		}
		if e.Weight < 0 {
			return nil, ErrNegativeWeight
		}
		idx := len(g.edges)
		g.edges = append(g.edges, edgeRecord{left: e.Left, right: e.Right, weight: e.Weight})
		g.adjacency[e.Left] = append(g.adjacency[e.Left], idx)
		g.adjacency[e.Right] = append(g.adjacency[e.Right], idx)
		touched[e.Left] = true
		touched[e.Right] = true
	}

	for v := 0; v < vertexNum; v++ {
		if !g.isVirtual[v] && !touched[v] {
			return nil, ErrUntouchedVertex
		}
	}

	return g, nil
}

// VertexNum returns V, the number of dense vertex indices.
func (g *Graph) VertexNum() int {
	g.muTopology.RLock()
	defer g.muTopology.RUnlock()
	return g.vertexNum
}

// EdgeNum returns E, the number of dense edge indices.
func (g *Graph) EdgeNum() int {
	g.muTopology.RLock()
	defer g.muTopology.RUnlock()
	return len(g.edges)
}

// IsVirtual reports whether vertex v is a boundary sink (spec.md §3).
func (g *Graph) IsVirtual(v int) bool {
	g.muTopology.RLock()
	defer g.muTopology.RUnlock()
	return g.isVirtual[v]
}

// Neighbors returns the edge indices incident to v. The returned slice must
// not be mutated by the caller; it is the graph's own adjacency bucket.
//
// Complexity: O(1) (returns the stored slice header).
func (g *Graph) Neighbors(v int) []int {
	g.muTopology.RLock()
	defer g.muTopology.RUnlock()
	return g.adjacency[v]
}

// Weight returns edge e's current weight.
func (g *Graph) Weight(e int) weight.Weight {
	g.muTopology.RLock()
	defer g.muTopology.RUnlock()
	return g.edges[e].weight
}

// Endpoints returns edge e's (left, right) vertex indices.
func (g *Graph) Endpoints(e int) (left, right int) {
	g.muTopology.RLock()
	defer g.muTopology.RUnlock()
	r := g.edges[e]
	return r.left, r.right
}

// SetWeight mutates edge e's weight. Permitted only between solves
// (spec.md §4.1); calling it concurrently with an in-flight solve violates
// the stated contract and yields undefined dual state.
func (g *Graph) SetWeight(e int, w weight.Weight) error {
	if w < 0 {
		return ErrNegativeWeight
	}
	g.muTopology.Lock()
	defer g.muTopology.Unlock()
	if e < 0 || e >= len(g.edges) {
		return ErrEdgeOutOfRange
	}
	g.edges[e].weight = w
	return nil
}

// SetDefect marks/unmarks vertex v as a defect for the current solve. The
// dual/primal modules read this only through Defect; Graph itself assigns
// no parity semantics to the flag.
func (g *Graph) SetDefect(v int, defect bool) {
	g.muDefect.Lock()
	defer g.muDefect.Unlock()
	g.defect[v] = defect
}

// Defect reports vertex v's transient per-solve defect flag.
func (g *Graph) Defect(v int) bool {
	g.muDefect.RLock()
	defer g.muDefect.RUnlock()
	return g.defect[v]
}

// ClearDefects resets every vertex's defect flag to false. Called by
// SerialSolver.Solve (C4) before it marks each solve's defects.
func (g *Graph) ClearDefects() {
	g.muDefect.Lock()
	defer g.muDefect.Unlock()
	for i := range g.defect {
		g.defect[i] = false
	}
}
