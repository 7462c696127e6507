package primal

import (
	"sort"

	"github.com/qecsim/fusionmatch/dual"
)

// PeerMatch pairs two defect (non-virtual) vertices matched to each other.
type PeerMatch struct{ A, B int }

// VirtualMatch pairs a defect vertex with the virtual (boundary) vertex it
// is matched to. Edge is the edge realizing the match, or -1 if the match
// was inherited from a freed tree branch rather than a direct augmentation
// (see teardownOffPath). A caller that induces its own virtual sinks on
// top of a real decoding graph (package parsolver's interface mirrors) can
// use Edge to drop a match's boundary-crossing edge from its committed
// subgraph when the match turns out to be provisional rather than final.
type VirtualMatch struct {
	Defect  int
	Virtual int
	Edge    int
}

func (m *Module) memberOf(id dual.NodeID, v int) bool {
	for _, mv := range m.dm.Members(id) {
		if mv == v {
			return true
		}
	}
	return false
}

// resolveNode resolves the single representative vertex where viaEdge
// attaches to id (recursing into nested blossoms per spec.md §4.4: "choose
// the odd-cardinality half-cycle whose endpoints are the entry/exit
// vertices"), and collects every internal edge and defect-level peer pair
// implied by id's own structure.
func (m *Module) resolveNode(id dual.NodeID, viaEdge int) (vertex int, edges []int, peers []PeerMatch) {
	if m.dm.Kind(id) == dual.Syndrome {
		return m.dm.Vertex(id), nil, nil
	}

	children, cycleEdges := m.dm.Children(id)
	n := len(children)
	left, right := m.g.Endpoints(viaEdge)
	inside := left
	if !m.memberOf(id, left) {
		inside = right
	}
	entry := 0
	for i, c := range children {
		if m.memberOf(c, inside) {
			entry = i
			break
		}
	}

	v, innerEdges, innerPeers := m.resolveNode(children[entry], viaEdge)
	edges = append(edges, innerEdges...)
	peers = append(peers, innerPeers...)

	for k := 1; k < n; k += 2 {
		ai := (entry + k) % n
		bi := (entry + k + 1) % n
		a, b := children[ai], children[bi]
		edge := cycleEdges[ai]

		va, ea, pa := m.resolveNode(a, edge)
		vb, eb, pb := m.resolveNode(b, edge)
		edges = append(edges, ea...)
		edges = append(edges, eb...)
		edges = append(edges, edge)
		peers = append(peers, pa...)
		peers = append(peers, pb...)
		peers = append(peers, PeerMatch{A: va, B: vb})
	}

	return v, edges, peers
}

// topLevelMatches iterates every currently outermost, matched dual node
// exactly once (each pair visited from whichever side is encountered
// first).
func (m *Module) topLevelMatches(visit func(id dual.NodeID, r record)) {
	visited := make(map[dual.NodeID]bool)
	for i := range m.recs {
		id := dual.NodeID(i)
		if !m.dm.Alive(id) || !m.dm.IsOutermost(id) || visited[id] {
			continue
		}
		r := m.recs[id]
		if !r.matched {
			continue
		}
		if !r.matchTo.isVirtual {
			if visited[r.matchTo.node] {
				continue
			}
			visited[r.matchTo.node] = true
		}
		visited[id] = true
		visit(id, r)
	}
}

// PerfectMatching returns the final pairing of defect vertices to each
// other and to virtual (boundary) vertices (spec.md §4.3 step 3's output).
// Run must have completed.
func (m *Module) PerfectMatching() ([]PeerMatch, []VirtualMatch, error) {
	if !m.done {
		return nil, nil, ErrNoSolve
	}
	var peers []PeerMatch
	var virtuals []VirtualMatch
	m.topLevelMatches(func(id dual.NodeID, r record) {
		if r.matchTo.isVirtual {
			v, _, innerPeers := m.resolveNode(id, r.matchEdge)
			virtuals = append(virtuals, VirtualMatch{Defect: v, Virtual: r.matchTo.virtual, Edge: r.matchEdge})
			peers = append(peers, innerPeers...)
			return
		}
		va, _, pa := m.resolveNode(id, r.matchEdge)
		vb, _, pb := m.resolveNode(r.matchTo.node, r.matchEdge)
		peers = append(peers, pa...)
		peers = append(peers, pb...)
		peers = append(peers, PeerMatch{A: va, B: vb})
	})
	return peers, virtuals, nil
}

// Subgraph returns the sorted, deduplicated set of edge indices forming
// the minimum-weight parity subgraph (spec.md §4.4). Run must have
// completed.
func (m *Module) Subgraph() ([]int, error) {
	if !m.done {
		return nil, ErrNoSolve
	}
	seen := make(map[int]bool)
	var edges []int
	add := func(es []int) {
		for _, e := range es {
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	m.topLevelMatches(func(id dual.NodeID, r record) {
		if r.matchTo.isVirtual {
			_, inner, _ := m.resolveNode(id, r.matchEdge)
			add(inner)
			add([]int{r.matchEdge})
			return
		}
		_, ea, _ := m.resolveNode(id, r.matchEdge)
		_, eb, _ := m.resolveNode(r.matchTo.node, r.matchEdge)
		add(ea)
		add(eb)
		add([]int{r.matchEdge})
	})
	sort.Ints(edges)
	return edges, nil
}
