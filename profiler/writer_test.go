package profiler_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/qecsim/fusionmatch/parsolver"
	"github.com/qecsim/fusionmatch/partition"
	"github.com/qecsim/fusionmatch/profiler"
)

// TestWriterEmitsHeaderThenRounds exercises spec.md §6's profile
// file format: partition config, benchmark config, then one JSON round
// per line.
func TestWriterEmitsHeaderThenRounds(t *testing.T) {
	require := require.New(t)

	plan := partition.PlanSpec{
		VertexNum:  4,
		Partitions: []partition.VertexRange{{Start: 0, End: 2}, {Start: 2, End: 4}},
		Fusions:    []partition.FusionPair{{Left: 0, Right: 1}},
	}
	bench := profiler.BenchmarkConfig{CodeDistance: 3, Rounds: 1, P: 0.001, CodeType: "surface", PrimalDualType: "serial"}

	var buf bytes.Buffer
	w, err := profiler.NewWriter(&buf, plan, bench)
	require.NoError(err)

	events := []parsolver.UnitEvent{
		{UnitID: 0, IsLeaf: true, Depth: 1, Duration: 2 * time.Millisecond},
		{UnitID: 1, IsLeaf: true, Depth: 1, Duration: 3 * time.Millisecond},
		{UnitID: 2, IsLeaf: false, Depth: 0, Duration: 1 * time.Millisecond},
	}
	vec := profiler.EventTimeVec(events, 2)
	require.Len(vec, 3)
	// depth 1 (leaves) runs before depth 0 (root) in the synthetic timeline.
	require.Less(vec[0].Start, vec[2].Start)

	require.NoError(w.WriteRound(profiler.Round{
		RoundTime:     0.005,
		Events:        profiler.RoundEvents{Verified: true, Decoded: true},
		SolverProfile: profiler.SolverProfile{Primal: profiler.PrimalProfile{EventTimeVec: vec}},
		DefectNum:     2,
	}))

	scanner := bufio.NewScanner(&buf)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Len(lines, 3)

	var gotPlan partition.PlanSpec
	require.NoError(json.Unmarshal([]byte(lines[0]), &gotPlan))
	require.Equal(plan.VertexNum, gotPlan.VertexNum)

	var gotBench profiler.BenchmarkConfig
	require.NoError(json.Unmarshal([]byte(lines[1]), &gotBench))
	require.Equal(bench.CodeType, gotBench.CodeType)

	var gotRound profiler.Round
	require.NoError(json.Unmarshal([]byte(lines[2]), &gotRound))
	require.Equal(2, gotRound.DefectNum)
	require.Len(gotRound.SolverProfile.Primal.EventTimeVec, 3)
}
