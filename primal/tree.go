package primal

import "github.com/qecsim/fusionmatch/dual"

// attachChild records c as a forest child of p (tree-growth edge, spec.md
// §4.3's "grow the tree"): c.depth = p.depth+1, c inherits p's tree root,
// and c's grow state follows the standard even/odd alternation (odd depth
// is Shrink, even depth is Grow).
func (m *Module) attachChild(p, c dual.NodeID, edge int) {
	pr := &m.recs[p]
	cr := m.reset(c)
	cr.inTree = true
	cr.parent = p
	cr.depth = pr.depth + 1
	cr.treeRoot = pr.treeRoot
	cr.viaEdge = edge
	pr.children = append(pr.children, c)
	if cr.depth%2 == 1 {
		m.dm.SetGrowState(c, dual.Shrink)
	} else {
		m.dm.SetGrowState(c, dual.Grow)
	}
}

// growTree implements the "grow the tree" resolution (spec.md §4.3): an
// edge_conflict where one owner (treeOwner) is already +grow and the other
// (stayOwner) is currently matched off-tree. stayOwner joins as treeOwner's
// child (Shrink); if stayOwner's previous match partner was a real dual
// node it joins too, one level deeper (Grow); if it was a virtual vertex
// the branch simply stops there.
func (m *Module) growTree(treeOwner, stayOwner dual.NodeID, edge int) {
	sr := &m.recs[stayOwner]
	prevMatch := sr.matchTo
	prevEdge := sr.matchEdge
	wasMatched := sr.matched

	m.attachChild(treeOwner, stayOwner, edge)
	sr = &m.recs[stayOwner]
	sr.matched = false

	if wasMatched && !prevMatch.isVirtual {
		peer := prevMatch.node
		pr := &m.recs[peer]
		pr.matched = false
		m.attachChild(stayOwner, peer, prevEdge)
	} else if wasMatched && prevMatch.isVirtual {
		m.recs[stayOwner].virtualPeer = prevMatch.virtual
	}
}

// collectTree returns every node currently in root's tree, in DFS order
// (root first), grounded on dfs/topological.go's explicit-stack ancestor
// walk.
func (m *Module) collectTree(root dual.NodeID) []dual.NodeID {
	var out []dual.NodeID
	stack := []dual.NodeID{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n)
		stack = append(stack, m.recs[n].children...)
	}
	return out
}

// pathToRoot returns [x, parent(x), ..., root].
func (m *Module) pathToRoot(x dual.NodeID) []dual.NodeID {
	var path []dual.NodeID
	for cur := x; ; {
		path = append(path, cur)
		p := m.recs[cur].parent
		if p == dual.NoNode {
			break
		}
		cur = p
	}
	return path
}

// commitMatch records a and b as matched to each other via edge, both off
// tree and Stay (spec.md §3: "a matched pair is stay").
func (m *Module) commitMatch(a, b dual.NodeID, edge int) {
	ar, br := &m.recs[a], &m.recs[b]
	ar.matched, ar.matchTo, ar.matchEdge = true, target{node: b}, edge
	br.matched, br.matchTo, br.matchEdge = true, target{node: a}, edge
	ar.inTree, br.inTree = false, false
	ar.parent, br.parent = dual.NoNode, dual.NoNode
	ar.treeRoot, br.treeRoot = dual.NoNode, dual.NoNode
	m.dm.SetGrowState(a, dual.Stay)
	m.dm.SetGrowState(b, dual.Stay)
}

func (m *Module) commitMatchVirtual(a dual.NodeID, virtual, edge int) {
	ar := &m.recs[a]
	ar.matched, ar.matchTo, ar.matchEdge = true, target{isVirtual: true, virtual: virtual}, edge
	ar.inTree = false
	ar.parent = dual.NoNode
	ar.treeRoot = dual.NoNode
	m.dm.SetGrowState(a, dual.Stay)
}

// teardownOffPath dissolves the off-path part of the tree rooted at root
// after an augmenting path has been found (onPath marks its nodes, root..X
// inclusive). Path nodes are skipped here and paired by the caller;
// everything else in the tree is committed to whatever its forest position
// already implies (spec.md §4.3: "free all tree members that become
// stay") — odd-depth off-path nodes are matched to their single forest
// child (or to their recorded virtual peer if they never grew further),
// and the corresponding even-depth child is freed alongside it.
func (m *Module) teardownOffPath(root dual.NodeID, onPath map[dual.NodeID]bool) {
	for _, n := range m.collectTree(root) {
		if onPath[n] {
			continue
		}
		r := &m.recs[n]
		if r.depth%2 == 0 {
			continue // handled via its odd-depth parent below
		}
		if len(r.children) == 1 {
			c := r.children[0]
			m.commitMatch(n, c, m.recs[c].viaEdge)
		} else {
			m.commitMatchVirtual(n, r.virtualPeer, -1)
		}
	}
}

// pairAlongPath matches path[0]-path[1], path[2]-path[3], ... leaving the
// last element (even count of prior pairs means len(path) is odd) for the
// caller to match externally.
func (m *Module) pairAlongPath(path []dual.NodeID) {
	for i := 0; i+1 < len(path); i += 2 {
		m.commitMatch(path[i], path[i+1], m.recs[path[i+1]].viaEdge)
	}
}

// augmentToVirtual implements augmentation via a virtual_conflict
// (spec.md §4.3): x (a +grow tree node) reaches virtual vertex virtual via
// edge. The whole path from x's tree root to x alternates into a matching,
// x is matched to the virtual vertex, and the rest of the tree is freed.
func (m *Module) augmentToVirtual(x dual.NodeID, virtual, edge int) {
	root := m.recs[x].treeRoot
	path := m.pathToRoot(x)
	reversed := make([]dual.NodeID, len(path))
	for i, n := range path {
		reversed[len(path)-1-i] = n
	}
	onPath := make(map[dual.NodeID]bool, len(reversed))
	for _, n := range reversed {
		onPath[n] = true
	}
	m.teardownOffPath(root, onPath)
	m.pairAlongPath(reversed)
	m.commitMatchVirtual(x, virtual, edge)
	delete(m.roots, root)
}

// augmentAcrossTrees implements augmentation via an edge_conflict between
// two different +grow tree nodes x (root rootX) and y (root rootY): both
// paths-to-root alternate into matchings and x is matched to y directly.
func (m *Module) augmentAcrossTrees(x, y dual.NodeID, edge int) {
	rootX, rootY := m.recs[x].treeRoot, m.recs[y].treeRoot

	pathX := m.pathToRoot(x)
	reversedX := make([]dual.NodeID, len(pathX))
	for i, n := range pathX {
		reversedX[len(pathX)-1-i] = n
	}
	onPathX := make(map[dual.NodeID]bool, len(reversedX))
	for _, n := range reversedX {
		onPathX[n] = true
	}
	m.teardownOffPath(rootX, onPathX)
	m.pairAlongPath(reversedX)

	pathY := m.pathToRoot(y)
	reversedY := make([]dual.NodeID, len(pathY))
	for i, n := range pathY {
		reversedY[len(pathY)-1-i] = n
	}
	onPathY := make(map[dual.NodeID]bool, len(reversedY))
	for _, n := range reversedY {
		onPathY[n] = true
	}
	m.teardownOffPath(rootY, onPathY)
	m.pairAlongPath(reversedY)

	m.commitMatch(x, y, edge)
	delete(m.roots, rootX)
	delete(m.roots, rootY)
}
