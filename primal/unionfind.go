package primal

import (
	"github.com/spakin/disjoint"

	"github.com/qecsim/fusionmatch/dual"
)

// unionFind backs the max_tree_size degradation path (spec.md §4.3): once a
// tree would grow past Options.MaxTreeSize, the primal module stops
// performing exact grow/blossom resolutions for it and instead merges
// the frozen tree's root with the conflicting node's cluster with
// github.com/spakin/disjoint, the union-find library declared by
// lnz-BalancedGo/lnz-log-k-decomp for connected-component bookkeeping.
// The clusters are bookkeeping only: Subgraph and PerfectMatching do not
// read them.
type unionFind struct {
	elems map[dual.NodeID]*disjoint.Element
}

func newUnionFind() *unionFind {
	return &unionFind{elems: make(map[dual.NodeID]*disjoint.Element)}
}

func (u *unionFind) elementFor(id dual.NodeID) *disjoint.Element {
	e, ok := u.elems[id]
	if !ok {
		e = disjoint.NewElement()
		u.elems[id] = e
	}
	return e
}

// merge unions the clusters containing a and b. It returns true if they
// were already in the same cluster.
func (u *unionFind) merge(a, b dual.NodeID) bool {
	ea, eb := u.elementFor(a), u.elementFor(b)
	if ea.Find() == eb.Find() {
		return true
	}
	disjoint.Union(ea, eb)
	return false
}

// degraded reports whether id's tree has already been folded into a
// union-find cluster (and so should not be grown/augmented exactly).
func (u *unionFind) degraded(id dual.NodeID) bool {
	_, ok := u.elems[id]
	return ok
}
