package primal

import (
	"github.com/qecsim/fusionmatch/dual"
	"github.com/qecsim/fusionmatch/weight"
)

// Run drives the dual module through compute_maximum_update_length / grow /
// resolve cycles until no active node remains (spec.md §4.3 step 2). Each
// batch of obstacles is resolved in the canonical priority order augment >
// expand > grow > blossom, since applying a higher-priority resolution can
// invalidate (make stale) a lower-priority obstacle reported in the same
// batch.
func (m *Module) Run() {
	for {
		delta, obstacles := m.dm.ComputeMaximumUpdateLength()
		if obstacles == nil {
			if delta == weight.Max {
				break
			}
			m.dm.Grow(delta)
			continue
		}
		m.resolveBatch(obstacles)
	}
	m.done = true
}

type edgeConflictRole int

const (
	roleStale edgeConflictRole = iota
	roleGrow
	roleBlossomSameTree
	roleAugmentDifferentTrees
)

func (m *Module) classifyEdgeConflict(o dual.Obstacle) edgeConflictRole {
	l, r := m.recs[o.LeftOwner], m.recs[o.RightOwner]
	switch {
	case l.inTree && r.inTree && l.treeRoot == r.treeRoot:
		return roleBlossomSameTree
	case l.inTree && r.inTree:
		return roleAugmentDifferentTrees
	case l.inTree && !r.inTree && r.matched:
		return roleGrow
	case r.inTree && !l.inTree && l.matched:
		return roleGrow
	default:
		return roleStale
	}
}

func (m *Module) resolveBatch(obstacles []dual.Obstacle) {
	var augments, expands, grows, blossoms []dual.Obstacle
	for _, o := range obstacles {
		switch o.Kind {
		case dual.VirtualConflict:
			augments = append(augments, o)
		case dual.BlossomNeedExpand:
			expands = append(expands, o)
		case dual.EdgeConflict:
			switch m.classifyEdgeConflict(o) {
			case roleGrow:
				grows = append(grows, o)
			case roleBlossomSameTree:
				blossoms = append(blossoms, o)
			case roleAugmentDifferentTrees:
				augments = append(augments, o)
			}
		}
	}

	for _, o := range augments {
		if o.Kind == dual.VirtualConflict {
			if !m.recs[o.Owner].inTree {
				continue // stale: already consumed by an earlier obstacle this batch
			}
			m.augmentToVirtual(o.Owner, o.Virtual, o.Edge)
			continue
		}
		if m.classifyEdgeConflict(o) != roleAugmentDifferentTrees {
			continue
		}
		m.augmentAcrossTrees(o.LeftOwner, o.RightOwner, o.Edge)
	}

	for _, o := range expands {
		if m.dm.Kind(o.Owner) != dual.Blossom || m.dm.GrowState(o.Owner) != dual.Shrink {
			continue
		}
		m.expandBlossomInTree(o.Owner)
	}

	for _, o := range grows {
		if m.classifyEdgeConflict(o) != roleGrow {
			continue
		}
		treeOwner, stayOwner := o.LeftOwner, o.RightOwner
		if !m.recs[treeOwner].inTree {
			treeOwner, stayOwner = o.RightOwner, o.LeftOwner
		}
		if m.opts.MaxTreeSize > 0 {
			if m.treeSize(m.recs[treeOwner].treeRoot)+1 > m.opts.MaxTreeSize {
				m.degradeTree(m.recs[treeOwner].treeRoot, stayOwner)
				continue
			}
		}
		m.growTree(treeOwner, stayOwner, o.Edge)
	}

	for _, o := range blossoms {
		if m.classifyEdgeConflict(o) != roleBlossomSameTree {
			continue
		}
		if m.opts.MaxTreeSize > 0 {
			if m.treeSize(m.recs[o.LeftOwner].treeRoot) > m.opts.MaxTreeSize {
				m.degradeTree(m.recs[o.LeftOwner].treeRoot, o.RightOwner)
				continue
			}
		}
		m.formBlossom(o.LeftOwner, o.RightOwner, o.Edge)
	}
}

// degradeTree implements the max_tree_size fallback (spec.md §4.3): root's
// tree is frozen (every member set Stay, so it stops competing for further
// growth) and unioned with other with spakin/disjoint, recording that this
// boundary has been folded into a cluster rather than exactly matched.
func (m *Module) degradeTree(root, other dual.NodeID) {
	if m.uf == nil {
		m.uf = newUnionFind()
	}
	for _, n := range m.collectTree(root) {
		m.dm.SetGrowState(n, dual.Stay)
		// A frozen node is no longer part of a live alternating tree: clear
		// inTree so a later tight edge touching it is classified as stale by
		// classifyEdgeConflict rather than mistaken for an active tree member.
		m.recs[n].inTree = false
	}
	m.uf.merge(root, other)
	delete(m.roots, root)
}
