package parsolver

import (
	"sort"

	"github.com/qecsim/fusionmatch/dual"
	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/partition"
	"github.com/qecsim/fusionmatch/primal"
	"github.com/qecsim/fusionmatch/solver"
)

// unitResult is what a solved partition unit contributes toward the final
// answer: the matches it has already finalized (peers/virtuals/edges,
// never revisited by an ancestor) plus the still-open "temporary_match"
// loose ends (spec.md §4.7) an ancestor unit absorbs once the rest of
// their neighborhood comes into view.
type unitResult struct {
	peers    []primal.PeerMatch
	virtuals []primal.VirtualMatch
	edges    []int
	loose    []int // global vertex ids still matched to an interface mirror
}

// classify splits sub's locally solved matching into finalized matches and
// loose ends, translating every vertex/edge back to global ids. A local
// virtual vertex is a genuine match (final) only if it is globally
// virtual; otherwise it is one of sub's own induced interface mirrors, and
// the defect matched to it is a loose end the enclosing fusion step
// absorbs rather than a finished answer (spec.md §4.6 "enabled" mirror).
func classify(g *graph.Graph, sub *inducedSubgraph, peers []primal.PeerMatch, virtuals []primal.VirtualMatch, edges []int) unitResult {
	var res unitResult
	looseSet := make(map[int]bool)
	skipEdge := make(map[int]bool)

	for _, v := range virtuals {
		gd, gv := sub.globalOfLocal[v.Defect], sub.globalOfLocal[v.Virtual]
		if g.IsVirtual(gv) {
			ge := -1
			if v.Edge >= 0 {
				ge = sub.globalOfLocalEdge[v.Edge]
			}
			res.virtuals = append(res.virtuals, primal.VirtualMatch{Defect: gd, Virtual: gv, Edge: ge})
			continue
		}
		looseSet[gd] = true
		if v.Edge >= 0 {
			skipEdge[sub.globalOfLocalEdge[v.Edge]] = true
		}
	}
	for _, p := range peers {
		res.peers = append(res.peers, primal.PeerMatch{A: sub.globalOfLocal[p.A], B: sub.globalOfLocal[p.B]})
	}
	for _, e := range edges {
		ge := sub.globalOfLocalEdge[e]
		if !skipEdge[ge] {
			res.edges = append(res.edges, ge)
		}
	}
	for v := range looseSet {
		res.loose = append(res.loose, v)
	}
	sort.Ints(res.loose)
	sort.Ints(res.edges)
	return res
}

// solveLeaf fully solves a leaf unit's owned subgraph against syn, exactly
// as a from-scratch decode over just that subgraph, then splits the
// result into finalized matches and interface-mirror loose ends.
func solveLeaf(g *graph.Graph, pi *partition.PartitionInfo, id int, opts primal.Options, syn solver.SyndromePattern) (unitResult, error) {
	sub, err := induce(g, pi, id)
	if err != nil {
		return unitResult{}, err
	}

	ss := solver.NewSerialSolver(sub.g, opts)
	if err := ss.Solve(sub.translate(syn)); err != nil {
		return unitResult{}, err
	}

	peers, virtuals, err := ss.PrimalModule().PerfectMatching()
	if err != nil {
		return unitResult{}, err
	}
	edges, err := ss.PrimalModule().Subgraph()
	if err != nil {
		return unitResult{}, err
	}

	return classify(g, sub, peers, virtuals, edges), nil
}

func dedupSorted(a, b []int) []int {
	seen := make(map[int]bool, len(a)+len(b))
	var out []int
	for _, v := range append(append([]int{}, a...), b...) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

// solveInterface implements the fusion step (spec.md §4.7's four-step
// stitch): it never re-solves left and right's already-settled matches.
// It only imports their still-open loose ends, builds the small reduced
// subgraph of this unit's newly owned crossing edges between them
// (induceInterface), and resumes a fresh dual/primal event loop restricted
// to that reduced problem — recomputing crossing-edge growth from zero,
// since those edges were invisible to either child. Loose ends left
// unresolved (no candidate edge yet, or resolved to this unit's own
// still-open interface mirror) are carried up to the parent unchanged.
func solveInterface(g *graph.Graph, pi *partition.PartitionInfo, id int, left, right unitResult, opts primal.Options) (unitResult, error) {
	merged := unitResult{
		peers:    append(append([]primal.PeerMatch{}, left.peers...), right.peers...),
		virtuals: append(append([]primal.VirtualMatch{}, left.virtuals...), right.virtuals...),
		edges:    dedupSorted(left.edges, right.edges),
	}

	active := dedupSorted(left.loose, right.loose)
	if len(active) == 0 {
		return merged, nil
	}

	sub, any, err := induceInterface(g, pi, id, active)
	if err != nil {
		return unitResult{}, err
	}
	if !any {
		merged.loose = active
		return merged, nil
	}

	dm := dual.New(sub.g)
	pm := primal.New(sub.g, dm, opts)
	locals := make([]int, len(sub.globalOfLocal))
	for i := range locals {
		locals[i] = i
	}
	pm.AddDefects(locals)
	pm.Run()

	peers, virtuals, err := pm.PerfectMatching()
	if err != nil {
		return unitResult{}, err
	}
	edges, err := pm.Subgraph()
	if err != nil {
		return unitResult{}, err
	}

	step := classify(g, sub, peers, virtuals, edges)

	passthrough := make(map[int]bool, len(active))
	for _, v := range active {
		passthrough[v] = true
	}
	for _, v := range sub.globalOfLocal {
		delete(passthrough, v)
	}
	var passed []int
	for v := range passthrough {
		passed = append(passed, v)
	}

	merged.peers = append(merged.peers, step.peers...)
	merged.virtuals = append(merged.virtuals, step.virtuals...)
	merged.edges = dedupSorted(merged.edges, step.edges)
	merged.loose = dedupSorted(step.loose, passed)
	return merged, nil
}
