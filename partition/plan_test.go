package partition_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/partition"
)

// chainGraph builds a path 0-1-2-...-(n-1), each edge weight 1, no
// virtual vertices (partition ownership tests don't need decoding
// semantics).
func chainGraph(t *testing.T, n int) *graph.Graph {
	t.Helper()
	var edges []graph.WeightedEdge
	for i := 0; i+1 < n; i++ {
		edges = append(edges, graph.WeightedEdge{Left: i, Right: i + 1, Weight: 1})
	}
	g, err := graph.Create(n, edges, nil)
	require.NoError(t, err)
	return g
}

// TestBuildFourLeafBalancedTree exercises spec.md E5's shape: four leaf
// partitions along a chain, fused pairwise then at the root.
func TestBuildFourLeafBalancedTree(t *testing.T) {
	require := require.New(t)

	g := chainGraph(t, 9) // vertices 0..8, split into 4 contiguous quarters sharing boundary vertices
	spec := partition.PlanSpec{
		VertexNum: 9,
		Partitions: []partition.VertexRange{
			{Start: 0, End: 3},
			{Start: 2, End: 5},
			{Start: 4, End: 7},
			{Start: 6, End: 9},
		},
		Fusions: []partition.FusionPair{
			{Left: 0, Right: 1},
			{Left: 2, Right: 3},
			{Left: 4, Right: 5},
		},
	}

	pi, err := partition.Build(g, spec)
	require.NoError(err)
	require.Equal(6, pi.Root)
	require.Len(pi.Units, 7)

	total := 0
	for _, u := range pi.Units {
		total += len(u.OwnedEdges)
	}
	require.Equal(g.EdgeNum(), total)

	seen := make(map[int]bool)
	for _, u := range pi.Units {
		for _, e := range u.OwnedEdges {
			require.Falsef(seen[e], "edge %d owned by more than one unit", e)
			seen[e] = true
		}
	}
}

func TestBuildRejectsIncompleteFusionPlan(t *testing.T) {
	require := require.New(t)
	g := chainGraph(t, 4)
	spec := partition.PlanSpec{
		VertexNum:  4,
		Partitions: []partition.VertexRange{{Start: 0, End: 2}, {Start: 2, End: 4}},
		Fusions:    nil,
	}
	_, err := partition.Build(g, spec)
	require.ErrorIs(err, partition.ErrBadFusionPlan)
}

func TestBuildRejectsGapInRanges(t *testing.T) {
	require := require.New(t)
	g := chainGraph(t, 6)
	spec := partition.PlanSpec{
		VertexNum:  6,
		Partitions: []partition.VertexRange{{Start: 0, End: 2}, {Start: 3, End: 6}},
		Fusions:    []partition.FusionPair{{Left: 0, Right: 1}},
	}
	_, err := partition.Build(g, spec)
	require.ErrorIs(err, partition.ErrRangesNotContiguous)
}
