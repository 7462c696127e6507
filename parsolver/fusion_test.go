package parsolver

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/partition"
	"github.com/qecsim/fusionmatch/primal"
	"github.com/qecsim/fusionmatch/solver"
)

func canonicalPeers(peers []primal.PeerMatch) [][2]int {
	out := make([][2]int, len(peers))
	for i, p := range peers {
		a, b := p.A, p.B
		if a > b {
			a, b = b, a
		}
		out[i] = [2]int{a, b}
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] || (out[i][0] == out[j][0] && out[i][1] < out[j][1]) })
	return out
}

func canonicalVirtuals(vs []primal.VirtualMatch) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = v.Defect
	}
	sort.Ints(out)
	return out
}

// TestFusionMatchesSerialOverUnion exercises property 7: resuming the event
// loop from an intermediate fusion state (a non-root unit's loose ends,
// absorbed by solveInterface) is equivalent to running the serial solver
// directly over that unit's induced subtree, rather than re-solving the
// union from scratch the way a disguised no-op fusion would.
func TestFusionMatchesSerialOverUnion(t *testing.T) {
	require := require.New(t)

	var edges []graph.WeightedEdge
	for i := 0; i+1 < 9; i++ {
		edges = append(edges, graph.WeightedEdge{Left: i, Right: i + 1, Weight: 1})
	}
	g, err := graph.Create(9, edges, nil)
	require.NoError(err)

	pi, err := partition.Build(g, fourLeafPlan())
	require.NoError(err)

	syn := solver.SyndromePattern{DefectVertices: []int{0, 4}}
	opts := primal.DefaultOptions()

	// unit 4 fuses leaves 0 and 1 (vertex ranges [0,3) and [2,5)); both
	// defects fall within its subtree, so this fusion step is expected to
	// fully resolve them rather than leave a loose end.
	const fusedUnit = 4
	left, err := solveLeaf(g, pi, pi.Units[fusedUnit].Left, opts, syn)
	require.NoError(err)
	right, err := solveLeaf(g, pi, pi.Units[fusedUnit].Right, opts, syn)
	require.NoError(err)
	fused, err := solveInterface(g, pi, fusedUnit, left, right, opts)
	require.NoError(err)

	sub, err := induce(g, pi, fusedUnit)
	require.NoError(err)
	ss := solver.NewSerialSolver(sub.g, opts)
	require.NoError(ss.Solve(sub.translate(syn)))
	serPeers, serVirtuals, err := ss.PrimalModule().PerfectMatching()
	require.NoError(err)
	serEdges, err := ss.PrimalModule().Subgraph()
	require.NoError(err)
	want := classify(g, sub, serPeers, serVirtuals, serEdges)

	require.Equal(canonicalPeers(want.peers), canonicalPeers(fused.peers))
	require.Equal(canonicalVirtuals(want.virtuals), canonicalVirtuals(fused.virtuals))
	require.Equal(want.edges, fused.edges)
	require.Equal(want.loose, fused.loose)
}
