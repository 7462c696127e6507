package bench_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qecsim/fusionmatch/bench"
	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/partition"
	"github.com/qecsim/fusionmatch/profiler"
	"github.com/qecsim/fusionmatch/solver"
)

func chainInitializer(n int) solver.SolverInitializer {
	edges := make([]graph.WeightedEdge, 0, n-1)
	for i := 0; i < n-1; i++ {
		edges = append(edges, graph.WeightedEdge{Left: i, Right: i + 1, Weight: 2})
	}
	return solver.SolverInitializer{VertexNum: n, WeightedEdges: edges, VirtualVertices: []int{0, n - 1}}
}

func TestRunSerialProducesOneRoundPerSyndrome(t *testing.T) {
	require := require.New(t)

	input := bench.Input{
		Initializer: chainInitializer(6),
		Syndromes: []solver.SyndromePattern{
			{DefectVertices: []int{2, 3}},
			{DefectVertices: []int{1, 4}},
		},
	}

	rounds, err := bench.Run(input, bench.Config{PrimalDualType: "serial"}, nil)
	require.NoError(err)
	require.Len(rounds, 2)
	for _, r := range rounds {
		require.True(r.Events.Decoded)
		require.False(r.Events.Verified)
	}
}

func TestRunParallelRequiresPartition(t *testing.T) {
	require := require.New(t)

	input := bench.Input{Initializer: chainInitializer(4), Syndromes: []solver.SyndromePattern{{DefectVertices: []int{1, 2}}}}
	_, err := bench.Run(input, bench.Config{PrimalDualType: "parallel"}, nil)
	require.ErrorIs(err, bench.ErrMissingPartition)
}

func TestRunParallelWritesProfileViaWriter(t *testing.T) {
	require := require.New(t)

	plan := partition.PlanSpec{
		VertexNum: 6,
		Partitions: []partition.VertexRange{
			{Start: 0, End: 3},
			{Start: 3, End: 6},
		},
		Fusions: []partition.FusionPair{{Left: 0, Right: 1}},
	}
	input := bench.Input{
		Initializer: chainInitializer(6),
		Syndromes:   []solver.SyndromePattern{{DefectVertices: []int{2, 3}}},
	}

	var buf bytes.Buffer
	w, err := profiler.NewWriter(&buf, plan, profiler.BenchmarkConfig{Rounds: 1, PrimalDualType: "parallel"})
	require.NoError(err)

	rounds, err := bench.Run(input, bench.Config{PrimalDualType: "parallel", Partition: &plan, MaxWorkers: 2}, w)
	require.NoError(err)
	require.Len(rounds, 1)
	require.True(rounds[0].Events.Decoded)
	require.NotEmpty(rounds[0].SolverProfile.Primal.EventTimeVec)

	// Header lines (plan, bench config) plus one round line.
	lines := bytes.Count(buf.Bytes(), []byte("\n"))
	require.Equal(3, lines)
}

func TestRunVerifierMarksCorrectRoundVerified(t *testing.T) {
	require := require.New(t)

	input := bench.Input{
		Initializer: chainInitializer(6),
		Syndromes:   []solver.SyndromePattern{{DefectVertices: []int{2, 3}}},
	}
	rounds, err := bench.Run(input, bench.Config{PrimalDualType: "serial", Verifier: true}, nil)
	require.NoError(err)
	require.Len(rounds, 1)
	require.True(rounds[0].Events.Verified)
	require.True(rounds[0].Events.Decoded)
}
