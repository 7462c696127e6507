// Package solver implements the serial and parallel solver facades
// (spec.md §4.4, §6, C4): the programmatic entry points that glue the
// dual (package dual) and primal (package primal) modules together,
// apply per-solve erasures/dynamic weight overrides, and translate
// primal's vertex-level matching into the defect-index-based
// PerfectMatching shape spec.md §6 specifies for external callers.
//
// Package doc style (What & Why / Errors / Results) follows
// github.com/katalvlaran/lvlath's tsp/doc.go.
package solver

import (
	"errors"

	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/weight"
)

// Sentinel errors.
var (
	ErrNegativeDynamicWeight = errors.New("solver: dynamic_weights value must be >= 0")
	ErrUnknownDefectVertex   = errors.New("solver: defect vertex not found in resolved matching")
)

// SolverInitializer is the wire shape spec.md §6 names for constructing a
// solver's underlying graph.
type SolverInitializer struct {
	VertexNum      int
	WeightedEdges  []graph.WeightedEdge
	VirtualVertices []int
}

// BuildGraph constructs the graph.Graph described by init.
func (init SolverInitializer) BuildGraph() (*graph.Graph, error) {
	return graph.Create(init.VertexNum, init.WeightedEdges, init.VirtualVertices)
}

// SyndromePattern is one solve's input (spec.md §6).
type SyndromePattern struct {
	DefectVertices []int
	Erasures       []int
	DynamicWeights []DynamicWeight
}

// DynamicWeight overrides one edge's weight for a single solve.
type DynamicWeight struct {
	Edge   int
	Weight weight.Weight
}

// PeerMatching pairs two defect indices (positions into the triggering
// SyndromePattern.DefectVertices, per spec.md §6 — not vertex ids).
type PeerMatching struct{ DefectA, DefectB int }

// VirtualMatching pairs a defect index with the virtual vertex it matched.
type VirtualMatching struct {
	Defect  int
	Virtual int
}

// PerfectMatching is the external-facing result shape (spec.md §6).
type PerfectMatching struct {
	PeerMatchings    []PeerMatching
	VirtualMatchings []VirtualMatching
}

// Solver is the common facade SerialSolver and parsolver.ParallelSolver
// both implement (spec.md §6's solve/clear/subgraph/perfect_matching
// surface), letting VerifiedSolver wrap either one interchangeably.
type Solver interface {
	Solve(SyndromePattern) error
	Clear()
	Subgraph() ([]int, error)
	PerfectMatching() (*PerfectMatching, error)
}
