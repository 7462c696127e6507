// Package primal implements the primal module (spec.md §4.3, C3): it grows
// and contracts alternating trees, creates and expands blossoms, and drives
// the dual module (package dual) through its event loop until no obstacle
// remains.
//
// The odd-cycle / ancestor-path walks used for blossom formation and
// augmentation are grounded on github.com/katalvlaran/lvlath's
// dfs/topological.go ancestor-stack bookkeeping, adapted from string
// vertex IDs to dense dual.NodeID values. The max-tree-size degradation
// (spec.md §4.3 "Max-tree-size control") is grounded on
// github.com/spakin/disjoint, the union-find library used by
// lnz-BalancedGo/lib/search.go and lnz-log-k-decomp for connected-component
// bookkeeping during hypertree decomposition.
package primal

import (
	"errors"

	"github.com/qecsim/fusionmatch/dual"
	"github.com/qecsim/fusionmatch/graph"
)

// Sentinel errors.
var (
	// ErrNoSolve is returned by Subgraph/PerfectMatching before Run has completed.
	ErrNoSolve = errors.New("primal: no completed solve")
)

// target is a matched-to destination: either another dual node or a virtual
// vertex (spec.md §3 "matched_peer").
type target struct {
	isVirtual bool
	node      dual.NodeID
	virtual   int
}

// record is the per-dual-node bookkeeping primal maintains alongside the
// dual module's own node (spec.md §3 "Primal-module node record"):
// tree_parent/tree_depth/matched_peer plus the forest-navigation children
// list (first_child/sibling_next collapsed into a slice, since Go slices
// already give O(1) amortized append/iterate without an intrusive list).
type record struct {
	inTree   bool
	parent   dual.NodeID // NoNode if root or off-tree
	depth    int
	treeRoot dual.NodeID
	children []dual.NodeID
	viaEdge  int // edge connecting this node to its tree parent, -1 for the root

	matched     bool
	matchTo     target
	matchEdge   int // edge realizing the match, -1 if none
	virtualPeer int // -1 unless this (odd-depth, leaf) node's original grow partner was virtual
}

// Options configures the primal module.
type Options struct {
	// MaxTreeSize bounds the number of dual nodes an alternating tree may
	// contain before the primal module degrades locally to a union-find
	// cluster boundary instead of an exact grow/blossom (spec.md §4.3).
	// 0 means unlimited (exact MWPM).
	MaxTreeSize int
}

// DefaultOptions returns Options{MaxTreeSize: 0} (exact MWPM).
func DefaultOptions() Options {
	return Options{MaxTreeSize: 0}
}

// Module is the primal module for one decoding problem.
type Module struct {
	g  *graph.Graph
	dm *dual.Module

	opts Options

	recs  []record
	roots map[dual.NodeID]bool

	uf *unionFind // lazily created only if opts.MaxTreeSize > 0

	done bool
}

// New creates a Module driving dm over g.
func New(g *graph.Graph, dm *dual.Module, opts Options) *Module {
	return &Module{g: g, dm: dm, opts: opts, roots: make(map[dual.NodeID]bool)}
}

func (m *Module) ensure(id dual.NodeID) *record {
	for int(id) >= len(m.recs) {
		m.recs = append(m.recs, record{})
	}
	return &m.recs[id]
}

func (m *Module) reset(id dual.NodeID) *record {
	r := m.ensure(id)
	*r = record{parent: dual.NoNode, treeRoot: dual.NoNode, matchEdge: -1, virtualPeer: -1}
	return r
}

// AddDefects registers each vertex as a defect (spec.md §4.3 step 1): a
// syndrome dual node is created and marked as the +grow root of its own
// depth-0 tree.
func (m *Module) AddDefects(vertices []int) {
	for _, v := range vertices {
		id := m.dm.AddDefect(v)
		r := m.reset(id)
		r.inTree = true
		r.treeRoot = id
		r.viaEdge = -1
		m.dm.SetGrowState(id, dual.Grow)
		m.roots[id] = true
	}
}

// treeSize returns the number of dual nodes currently in root's tree.
func (m *Module) treeSize(root dual.NodeID) int {
	count := 0
	var walk func(dual.NodeID)
	walk = func(id dual.NodeID) {
		count++
		for _, c := range m.recs[id].children {
			walk(c)
		}
	}
	walk(root)
	return count
}
