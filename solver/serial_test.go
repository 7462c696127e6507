package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/primal"
	"github.com/qecsim/fusionmatch/solver"
)

func mustGraph(t *testing.T, vertexNum int, edges []graph.WeightedEdge, virtuals []int) *graph.Graph {
	t.Helper()
	g, err := graph.Create(vertexNum, edges, virtuals)
	require.NoError(t, err)
	return g
}

// TestSolveTrivialTwoVertex exercises spec.md E1 through the full solver
// facade, including the defect-index translation spec.md §6 requires.
func TestSolveTrivialTwoVertex(t *testing.T) {
	require := require.New(t)

	g := mustGraph(t, 2, []graph.WeightedEdge{{Left: 0, Right: 1, Weight: 2}}, []int{1})
	s := solver.NewSerialSolver(g, primal.DefaultOptions())

	require.NoError(s.Solve(solver.SyndromePattern{DefectVertices: []int{0}}))

	sub, err := s.Subgraph()
	require.NoError(err)
	require.Equal([]int{0}, sub)

	pm, err := s.PerfectMatching()
	require.NoError(err)
	require.Empty(pm.PeerMatchings)
	require.Equal([]solver.VirtualMatching{{Defect: 0, Virtual: 1}}, pm.VirtualMatchings)
}

// TestIdempotentClear exercises spec.md §8 property 6: solving, clearing,
// and resolving the same syndrome reproduces the same result.
func TestIdempotentClear(t *testing.T) {
	require := require.New(t)

	edges := []graph.WeightedEdge{
		{Left: 0, Right: 1, Weight: 2},
		{Left: 1, Right: 2, Weight: 2},
		{Left: 2, Right: 3, Weight: 2},
		{Left: 3, Right: 4, Weight: 2},
		{Left: 4, Right: 5, Weight: 2},
	}
	g := mustGraph(t, 6, edges, []int{0, 5})
	s := solver.NewSerialSolver(g, primal.DefaultOptions())
	syn := solver.SyndromePattern{DefectVertices: []int{2, 3}}

	require.NoError(s.Solve(syn))
	first, err := s.Subgraph()
	require.NoError(err)

	s.Clear()
	require.NoError(s.Solve(syn))
	second, err := s.Subgraph()
	require.NoError(err)

	require.Equal(first, second)
}

// TestErasureZeroesWeight exercises spec.md E6: an erasure on the matched
// edge makes it free, and it still appears in the subgraph.
func TestErasureZeroesWeight(t *testing.T) {
	require := require.New(t)

	edges := []graph.WeightedEdge{
		{Left: 0, Right: 1, Weight: 10},
	}
	g := mustGraph(t, 2, edges, []int{1})
	s := solver.NewSerialSolver(g, primal.DefaultOptions())

	require.NoError(s.Solve(solver.SyndromePattern{DefectVertices: []int{0}, Erasures: []int{0}}))
	sub, err := s.Subgraph()
	require.NoError(err)
	require.Equal([]int{0}, sub)
	require.EqualValues(0, g.Weight(0))
}
