package primal

import "github.com/qecsim/fusionmatch/dual"

// lowestCommonAncestor walks both ancestor chains to depth parity, then
// together, mirroring dfs/topological.go's explicit ancestor-stack probe
// (adapted here from a visited-set walk on string IDs to a depth-aligned
// walk on dense dual.NodeID values).
func (m *Module) lowestCommonAncestor(x, y dual.NodeID) dual.NodeID {
	for m.recs[x].depth > m.recs[y].depth {
		x = m.recs[x].parent
	}
	for m.recs[y].depth > m.recs[x].depth {
		y = m.recs[y].parent
	}
	for x != y {
		x = m.recs[x].parent
		y = m.recs[y].parent
	}
	return x
}

// formBlossom implements spec.md §4.3's blossom-formation resolution: an
// edge_conflict between x and y, both outermost nodes of the SAME tree.
// Their ancestor paths to the lowest common ancestor, joined by edge,
// describe an odd cycle; it is contracted via dual.Module.CreateBlossom and
// spliced back into the tree at the LCA's position.
func (m *Module) formBlossom(x, y dual.NodeID, edge int) dual.NodeID {
	lca := m.lowestCommonAncestor(x, y)

	var upX []dual.NodeID
	for n := x; n != lca; n = m.recs[n].parent {
		upX = append(upX, n)
	}
	var upY []dual.NodeID
	for n := y; n != lca; n = m.recs[n].parent {
		upY = append(upY, n)
	}

	// Cycle order: lca, reverse(upX) (lca->...->x), x-y edge, upY (y->...->lca).
	cycle := []dual.NodeID{lca}
	for i := len(upX) - 1; i >= 0; i-- {
		cycle = append(cycle, upX[i])
	}
	cycle = append(cycle, upY...)

	cycleEdges := make([]int, len(cycle))
	// cycleEdges[i] joins cycle[i] and cycle[(i+1)%len].
	for i := 1; i <= len(upX); i++ {
		cycleEdges[i-1] = m.recs[cycle[i]].viaEdge
	}
	cycleEdges[len(upX)] = edge
	for i := len(upX) + 1; i < len(cycle); i++ {
		cycleEdges[i] = m.recs[cycle[i]].viaEdge
	}

	lcaRec := m.recs[lca]
	blossomID := m.dm.CreateBlossom(cycle, cycleEdges)

	br := m.reset(blossomID)
	br.inTree = true
	br.parent = lcaRec.parent
	br.depth = lcaRec.depth
	br.treeRoot = lcaRec.treeRoot
	br.viaEdge = lcaRec.viaEdge
	br.children = lcaRec.children
	if lcaRec.parent != dual.NoNode {
		pr := &m.recs[lcaRec.parent]
		for i, c := range pr.children {
			if c == lca {
				pr.children[i] = blossomID
			}
		}
	}
	for _, c := range br.children {
		m.recs[c].parent = blossomID
	}

	if lcaRec.depth%2 == 1 {
		m.dm.SetGrowState(blossomID, dual.Shrink)
	} else {
		m.dm.SetGrowState(blossomID, dual.Grow)
	}

	if m.roots[lca] {
		delete(m.roots, lca)
		m.roots[blossomID] = true
	}

	return blossomID
}

// expandBlossomInTree implements spec.md §4.3's "expand" resolution: a
// Shrink blossom's dual variable reached 0. formBlossom only ever replaces
// the lowest common ancestor's tree slot (cycle[0]) with the blossom id;
// every other cycle member keeps its original, still-valid tree record
// (parent/depth/viaEdge) untouched underneath the contraction. So
// expanding only needs to restore cycle[0]'s slot from the blossom's
// current record and redirect any downstream children the blossom grew
// while contracted.
func (m *Module) expandBlossomInTree(id dual.NodeID) {
	br := m.recs[id]
	children, _ := m.dm.ExpandBlossom(id)
	entryChild := children[0]

	r := m.reset(entryChild)
	r.inTree = true
	r.parent = br.parent
	r.depth = br.depth
	r.treeRoot = br.treeRoot
	r.viaEdge = br.viaEdge
	r.children = append([]dual.NodeID(nil), br.children...)
	for _, gc := range r.children {
		m.recs[gc].parent = entryChild
	}
	if br.depth%2 == 1 {
		m.dm.SetGrowState(entryChild, dual.Shrink)
	} else {
		m.dm.SetGrowState(entryChild, dual.Grow)
	}

	if br.parent != dual.NoNode {
		pr := &m.recs[br.parent]
		for i, c := range pr.children {
			if c == id {
				pr.children[i] = entryChild
			}
		}
	}
	if m.roots[id] {
		delete(m.roots, id)
		m.roots[entryChild] = true
	}
}
