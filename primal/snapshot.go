package primal

import "github.com/qecsim/fusionmatch/dual"

// NodeSnapshot exposes one dual node's primal-module bookkeeping for the
// visualizer (C8, spec.md §6 "primal_nodes").
type NodeSnapshot struct {
	Depth         int
	Parent        dual.NodeID // dual.NoNode if root or off-tree
	InTree        bool
	Matched       bool
	PeerNode      dual.NodeID // valid only if Matched && !PeerIsVirtual
	PeerIsVirtual bool
	Virtual       int // valid only if Matched && PeerIsVirtual
	Children      []dual.NodeID
}

// NumRecords returns one past the highest dual.NodeID the primal module has
// a record for (mirrors dual.Module.MaxNodeID, for enumeration).
func (m *Module) NumRecords() int { return len(m.recs) }

// Snapshot returns id's current primal bookkeeping. Valid only for ids
// within [0, NumRecords()) that dual.Module.Alive also reports alive.
func (m *Module) Snapshot(id dual.NodeID) NodeSnapshot {
	r := m.recs[id]
	return NodeSnapshot{
		Depth:         r.depth,
		Parent:        r.parent,
		InTree:        r.inTree,
		Matched:       r.matched,
		PeerNode:      r.matchTo.node,
		PeerIsVirtual: r.matchTo.isVirtual,
		Virtual:       r.matchTo.virtual,
		Children:      append([]dual.NodeID(nil), r.children...),
	}
}
