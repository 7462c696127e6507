package refmatch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/refmatch"
)

// chain builds a 0-1-2-...-(n-1) path graph with unit edge weights,
// vertex n-1 marked virtual.
func chain(t *testing.T, n int) *graph.Graph {
	t.Helper()
	edges := make([]graph.WeightedEdge, 0, n-1)
	for i := 0; i < n-1; i++ {
		edges = append(edges, graph.WeightedEdge{Left: i, Right: i + 1, Weight: 1})
	}
	g, err := graph.Create(n, edges, []int{n - 1})
	require.NoError(t, err)
	return g
}

func TestSolveTwoDefectsPairWithEachOther(t *testing.T) {
	g := chain(t, 5) // 0-1-2-3-4(virtual)
	w, peers, virtuals, err := refmatch.Solve(g, []int{0, 1})
	require.NoError(t, err)
	require.Equal(t, 1, int(w))
	require.Equal(t, []refmatch.PeerMatch{{DefectA: 0, DefectB: 1}}, peers)
	require.Empty(t, virtuals)
}

func TestSolveLoneDefectMatchesVirtual(t *testing.T) {
	g := chain(t, 5) // 0-1-2-3-4(virtual)
	w, peers, virtuals, err := refmatch.Solve(g, []int{0})
	require.NoError(t, err)
	require.Equal(t, 4, int(w))
	require.Empty(t, peers)
	require.Equal(t, []refmatch.VirtualMatch{{Defect: 0, Virtual: 4}}, virtuals)
}

func TestSolveChoosesCheaperOfPeerOrVirtual(t *testing.T) {
	// 0 - 1(virtual) - 2 - 3 - 4(virtual), defects at 1-adjacent vertex 2
	// and far vertex 3: vertex 2 is 1 step from virtual 1 and 1 step from
	// defect 3; the matcher should prefer whichever is cheaper overall.
	edges := []graph.WeightedEdge{
		{Left: 0, Right: 1, Weight: 1},
		{Left: 1, Right: 2, Weight: 1},
		{Left: 2, Right: 3, Weight: 5},
		{Left: 3, Right: 4, Weight: 1},
	}
	g, err := graph.Create(5, edges, []int{1, 4})
	require.NoError(t, err)

	w, peers, virtuals, err := refmatch.Solve(g, []int{2, 3})
	require.NoError(t, err)
	// Matching each defect to its nearest virtual (2->1 cost 1, 3->4 cost 1)
	// totals 2, cheaper than pairing them directly (cost 5).
	require.Equal(t, 2, int(w))
	require.Empty(t, peers)
	require.ElementsMatch(t, []refmatch.VirtualMatch{
		{Defect: 0, Virtual: 1},
		{Defect: 1, Virtual: 4},
	}, virtuals)
}

func TestSolveNoDefectsIsFreeMatching(t *testing.T) {
	g := chain(t, 3)
	w, peers, virtuals, err := refmatch.Solve(g, nil)
	require.NoError(t, err)
	require.Zero(t, w)
	require.Empty(t, peers)
	require.Empty(t, virtuals)
}

func TestSolveRejectsDefectsWithoutAnyVirtualVertex(t *testing.T) {
	edges := []graph.WeightedEdge{{Left: 0, Right: 1, Weight: 1}}
	g, err := graph.Create(2, edges, nil)
	require.NoError(t, err)

	_, _, _, err = refmatch.Solve(g, []int{0, 1})
	require.NoError(t, err) // two defects can still pair with each other

	edges2 := []graph.WeightedEdge{{Left: 0, Right: 1, Weight: 1}, {Left: 1, Right: 2, Weight: 1}}
	g2, err := graph.Create(3, edges2, nil)
	require.NoError(t, err)
	_, _, _, err = refmatch.Solve(g2, []int{0, 1, 2})
	require.ErrorIs(t, err, refmatch.ErrNoVirtualVertex)
}
