package primal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qecsim/fusionmatch/dual"
	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/primal"
)

// TestSingleDefectMatchesVirtual exercises spec.md E1 end to end through
// the primal module.
func TestSingleDefectMatchesVirtual(t *testing.T) {
	require := require.New(t)

	g, err := graph.Create(2, []graph.WeightedEdge{{Left: 0, Right: 1, Weight: 2}}, []int{1})
	require.NoError(err)

	dm := dual.New(g)
	pm := primal.New(g, dm, primal.DefaultOptions())
	pm.AddDefects([]int{0})
	pm.Run()

	peers, virtuals, err := pm.PerfectMatching()
	require.NoError(err)
	require.Empty(peers)
	require.Equal([]primal.VirtualMatch{{Defect: 0, Virtual: 1}}, virtuals)

	sub, err := pm.Subgraph()
	require.NoError(err)
	require.Equal([]int{0}, sub)
}

// TestAdjacentDefectsMatchEachOther exercises spec.md E2's repetition-code
// chain: two adjacent defects should pair with each other rather than with
// the (farther) boundary.
func TestAdjacentDefectsMatchEachOther(t *testing.T) {
	require := require.New(t)

	edges := []graph.WeightedEdge{
		{Left: 0, Right: 1, Weight: 2},
		{Left: 1, Right: 2, Weight: 2},
		{Left: 2, Right: 3, Weight: 2},
		{Left: 3, Right: 4, Weight: 2},
		{Left: 4, Right: 5, Weight: 2},
	}
	g, err := graph.Create(6, edges, []int{0, 5})
	require.NoError(err)

	dm := dual.New(g)
	pm := primal.New(g, dm, primal.DefaultOptions())
	pm.AddDefects([]int{2, 3})
	pm.Run()

	peers, virtuals, err := pm.PerfectMatching()
	require.NoError(err)
	require.Empty(virtuals)
	require.Equal([]primal.PeerMatch{{A: 2, B: 3}}, peers)

	sub, err := pm.Subgraph()
	require.NoError(err)
	require.Equal([]int{2}, sub)
}

// TestOddCycleRequiresBlossom drives five mutually-adjacent defects around
// a 5-cycle (an odd number, so they cannot perfectly pair among
// themselves without a blossom) plus a distant virtual escape hatch, and
// checks the defining parity property of spec.md §2 rather than hand
// deriving the exact growth schedule: every defect vertex ends up matched
// exactly once, and the returned subgraph has odd degree at every defect
// and even degree everywhere else.
func TestOddCycleRequiresBlossom(t *testing.T) {
	require := require.New(t)

	edges := []graph.WeightedEdge{
		{Left: 0, Right: 1, Weight: 2},
		{Left: 1, Right: 2, Weight: 2},
		{Left: 2, Right: 3, Weight: 2},
		{Left: 3, Right: 4, Weight: 2},
		{Left: 4, Right: 0, Weight: 2},
		{Left: 0, Right: 5, Weight: 100},
	}
	g, err := graph.Create(6, edges, []int{5})
	require.NoError(err)

	dm := dual.New(g)
	pm := primal.New(g, dm, primal.DefaultOptions())
	defects := []int{0, 1, 2, 3, 4}
	pm.AddDefects(defects)
	pm.Run()

	peers, virtuals, err := pm.PerfectMatching()
	require.NoError(err)

	seen := make(map[int]int)
	for _, p := range peers {
		seen[p.A]++
		seen[p.B]++
	}
	for _, v := range virtuals {
		seen[v.Defect]++
	}
	for _, d := range defects {
		require.Equalf(1, seen[d], "defect %d matched exactly once", d)
	}

	sub, err := pm.Subgraph()
	require.NoError(err)
	degree := make(map[int]int)
	for _, e := range sub {
		l, r := g.Endpoints(e)
		degree[l]++
		degree[r]++
	}
	defectSet := make(map[int]bool)
	for _, d := range defects {
		defectSet[d] = true
	}
	for v := 0; v < g.VertexNum(); v++ {
		if g.IsVirtual(v) {
			continue
		}
		if defectSet[v] {
			require.Equalf(1, degree[v]%2, "defect vertex %d must have odd subgraph degree, got %d", v, degree[v])
		} else {
			require.Equalf(0, degree[v]%2, "non-defect vertex %d must have even subgraph degree, got %d", v, degree[v])
		}
	}
}
