package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qecsim/fusionmatch/graph"
)

func TestCreate_Valid(t *testing.T) {
	require := require.New(t)

	g, err := graph.Create(6, []graph.WeightedEdge{
		{Left: 0, Right: 1, Weight: 2},
		{Left: 1, Right: 2, Weight: 2},
		{Left: 2, Right: 3, Weight: 2},
		{Left: 3, Right: 4, Weight: 2},
		{Left: 4, Right: 5, Weight: 2},
	}, []int{0, 5})
	require.NoError(err)
	require.Equal(6, g.VertexNum())
	require.Equal(5, g.EdgeNum())
	require.True(g.IsVirtual(0))
	require.True(g.IsVirtual(5))
	require.False(g.IsVirtual(2))

	left, right := g.Endpoints(2)
	require.Equal(2, left)
	require.Equal(3, right)
	require.EqualValues(2, g.Weight(2))
	require.Len(g.Neighbors(2), 2)
}

func TestCreate_Errors(t *testing.T) {
	cases := []struct {
		name     string
		vertices int
		edges    []graph.WeightedEdge
		virtuals []int
		wantErr  error
	}{
		{
			name:     "self loop",
			vertices: 2,
			edges:    []graph.WeightedEdge{{Left: 0, Right: 0, Weight: 1}},
			wantErr:  graph.ErrSelfLoop,
		},
		{
			name:     "negative weight",
			vertices: 2,
			edges:    []graph.WeightedEdge{{Left: 0, Right: 1, Weight: -1}},
			wantErr:  graph.ErrNegativeWeight,
		},
		{
			name:     "vertex out of range",
			vertices: 2,
			edges:    []graph.WeightedEdge{{Left: 0, Right: 5, Weight: 1}},
			wantErr:  graph.ErrVertexOutOfRange,
		},
		{
			name:     "duplicate virtual",
			vertices: 2,
			edges:    []graph.WeightedEdge{{Left: 0, Right: 1, Weight: 1}},
			virtuals: []int{0, 0},
			wantErr:  graph.ErrDuplicateVirtual,
		},
		{
			name:     "untouched real vertex",
			vertices: 3,
			edges:    []graph.WeightedEdge{{Left: 0, Right: 1, Weight: 1}},
			wantErr:  graph.ErrUntouchedVertex,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := graph.Create(tc.vertices, tc.edges, tc.virtuals)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSetWeight(t *testing.T) {
	require := require.New(t)
	g, err := graph.Create(2, []graph.WeightedEdge{{Left: 0, Right: 1, Weight: 4}}, nil)
	require.NoError(err)

	require.NoError(g.SetWeight(0, 0))
	require.EqualValues(0, g.Weight(0))

	require.ErrorIs(g.SetWeight(0, -1), graph.ErrNegativeWeight)
	require.ErrorIs(g.SetWeight(5, 1), graph.ErrEdgeOutOfRange)
}

func TestDefectFlags(t *testing.T) {
	require := require.New(t)
	g, err := graph.Create(2, []graph.WeightedEdge{{Left: 0, Right: 1, Weight: 1}}, nil)
	require.NoError(err)

	require.False(g.Defect(0))
	g.SetDefect(0, true)
	require.True(g.Defect(0))
	g.ClearDefects()
	require.False(g.Defect(0))
}
