package parsolver

import (
	"sort"

	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/partition"
	"github.com/qecsim/fusionmatch/solver"
)

// inducedSubgraph is one partition unit's self-contained decoding problem:
// a graph.Graph over a chosen local vertex/edge set, plus the translation
// tables back to the shared global graph (spec.md §4.5's "owned vertices/
// edges" made concrete as an actual sub-Graph to solve).
type inducedSubgraph struct {
	g                 *graph.Graph
	globalOfLocal     []int       // local vertex index -> global vertex id
	localOfGlobal     map[int]int // global vertex id -> local vertex index
	globalOfLocalEdge []int       // local edge index -> global edge id
	localOfGlobalEdge map[int]int // global edge id -> local edge index
}

// cutVertices reports, among vertices, which ones have at least one edge
// leaving id's own subtree — an interface vertex the rest of whose
// neighborhood is not yet in scope, mirroring spec.md §4.6's "unit
// boundary is provisionally virtual" until a later fusion brings it in.
func cutVertices(g *graph.Graph, pi *partition.PartitionInfo, id int, vertices []int) map[int]bool {
	subtree := pi.SubtreeVertices(id)
	inSubtree := make(map[int]bool, len(subtree))
	for _, v := range subtree {
		inSubtree[v] = true
	}

	cut := make(map[int]bool)
	for _, v := range vertices {
		for _, e := range g.Neighbors(v) {
			l, r := g.Endpoints(e)
			other := l
			if other == v {
				other = r
			}
			if !inSubtree[other] {
				cut[v] = true
			}
		}
	}
	return cut
}

// buildInduced assembles an inducedSubgraph from an explicit vertex set and
// candidate edge set (both already filtered to belong together — every
// edge's endpoints must be in vertices), marking a vertex virtual if it is
// globally virtual or genuinely cut relative to id's subtree (an interface
// mirror, spec.md §4.6's "enabled" flag, still open until a later fusion
// brings the rest of its neighborhood into scope).
func buildInduced(g *graph.Graph, pi *partition.PartitionInfo, id int, vertices, edges []int) (*inducedSubgraph, error) {
	localOfGlobal := make(map[int]int, len(vertices))
	for i, v := range vertices {
		localOfGlobal[v] = i
	}

	cut := cutVertices(g, pi, id, vertices)

	wedges := make([]graph.WeightedEdge, len(edges))
	globalOfLocalEdge := make([]int, len(edges))
	localOfGlobalEdge := make(map[int]int, len(edges))
	for i, e := range edges {
		l, r := g.Endpoints(e)
		wedges[i] = graph.WeightedEdge{Left: localOfGlobal[l], Right: localOfGlobal[r], Weight: g.Weight(e)}
		globalOfLocalEdge[i] = e
		localOfGlobalEdge[e] = i
	}

	var virtuals []int
	for _, v := range vertices {
		if g.IsVirtual(v) || cut[v] {
			virtuals = append(virtuals, localOfGlobal[v])
		}
	}

	lg, err := graph.Create(len(vertices), wedges, virtuals)
	if err != nil {
		return nil, err
	}

	return &inducedSubgraph{
		g:                 lg,
		globalOfLocal:     vertices,
		localOfGlobal:     localOfGlobal,
		globalOfLocalEdge: globalOfLocalEdge,
		localOfGlobalEdge: localOfGlobalEdge,
	}, nil
}

// induce builds a leaf unit's subtree-induced subgraph: its own owned
// vertices, every edge it owns, and its current base weights. A vertex is
// marked virtual in the induced graph if it is globally virtual, or if it
// has an edge leaving the leaf — an interface vertex acts as an open
// boundary mirror until a later fusion (see fusion.go) brings the rest of
// its edges into scope.
func induce(g *graph.Graph, pi *partition.PartitionInfo, id int) (*inducedSubgraph, error) {
	vertices := pi.SubtreeVertices(id)
	edges := pi.SubtreeEdges(id)
	return buildInduced(g, pi, id, vertices, edges)
}

// induceInterface builds an internal unit's *reduced* fusion subgraph
// (spec.md §4.6/§4.7's "absorb"): only the vertices still open from its
// two children (active) that gained at least one candidate edge this
// round, and only the edges this unit newly owns whose both endpoints are
// active. active vertices with no candidate edge at all are left out of
// the returned subgraph entirely — the caller passes them through
// unresolved rather than feeding a degree-0 real vertex to graph.Create.
// reachable reports whether any of active went into sub (nil sub, false
// reachable, means no vertex had a new edge this round).
func induceInterface(g *graph.Graph, pi *partition.PartitionInfo, id int, active []int) (sub *inducedSubgraph, reachable bool, err error) {
	activeSet := make(map[int]bool, len(active))
	for _, v := range active {
		activeSet[v] = true
	}

	var edges []int
	degree := make(map[int]int, len(active))
	for _, e := range pi.Units[id].OwnedEdges {
		l, r := g.Endpoints(e)
		if activeSet[l] && activeSet[r] {
			edges = append(edges, e)
			degree[l]++
			degree[r]++
		}
	}

	var reachableVerts []int
	for _, v := range active {
		if degree[v] > 0 {
			reachableVerts = append(reachableVerts, v)
		}
	}
	if len(reachableVerts) == 0 {
		return nil, false, nil
	}

	sort.Ints(reachableVerts)
	sort.Ints(edges)

	sub, err = buildInduced(g, pi, id, reachableVerts, edges)
	return sub, true, err
}

// translate restricts a global SyndromePattern to the portion that falls
// within sub: defects outside sub's vertex set are dropped (they belong
// to a sibling, to be accounted for at a later fusion), and erasures/
// dynamic_weights referencing an edge this unit does not own are dropped
// likewise.
func (sub *inducedSubgraph) translate(syn solver.SyndromePattern) solver.SyndromePattern {
	var local solver.SyndromePattern
	for _, v := range syn.DefectVertices {
		if lv, ok := sub.localOfGlobal[v]; ok {
			local.DefectVertices = append(local.DefectVertices, lv)
		}
	}
	for _, e := range syn.Erasures {
		if le, ok := sub.localOfGlobalEdge[e]; ok {
			local.Erasures = append(local.Erasures, le)
		}
	}
	for _, dw := range syn.DynamicWeights {
		if le, ok := sub.localOfGlobalEdge[dw.Edge]; ok {
			local.DynamicWeights = append(local.DynamicWeights, solver.DynamicWeight{Edge: le, Weight: dw.Weight})
		}
	}
	return local
}
