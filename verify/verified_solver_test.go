package verify_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/primal"
	"github.com/qecsim/fusionmatch/solver"
	"github.com/qecsim/fusionmatch/verify"
)

func mustGraph(t *testing.T, vertexNum int, edges []graph.WeightedEdge, virtuals []int) *graph.Graph {
	t.Helper()
	g, err := graph.Create(vertexNum, edges, virtuals)
	require.NoError(t, err)
	return g
}

func TestVerifiedSolverAgreesOnOptimalSolve(t *testing.T) {
	require := require.New(t)

	edges := []graph.WeightedEdge{
		{Left: 0, Right: 1, Weight: 2},
		{Left: 1, Right: 2, Weight: 2},
		{Left: 2, Right: 3, Weight: 2},
		{Left: 3, Right: 4, Weight: 2},
		{Left: 4, Right: 5, Weight: 2},
	}
	g := mustGraph(t, 6, edges, []int{0, 5})
	inner := solver.NewSerialSolver(g, primal.DefaultOptions())
	v := verify.New(inner, g, "")

	err := v.Solve(solver.SyndromePattern{DefectVertices: []int{2, 3}})
	require.NoError(err)

	sub, err := v.Subgraph()
	require.NoError(err)
	require.Equal([]int{2}, sub)
}

// TestVerifiedSolverDetectsMismatch forces a disagreement by wrapping a
// fake Solver that always reports an empty (hence suboptimal, weight-0)
// matching, and checks that the wrapper flags it and dumps the syndrome.
func TestVerifiedSolverDetectsMismatch(t *testing.T) {
	require := require.New(t)

	edges := []graph.WeightedEdge{{Left: 0, Right: 1, Weight: 7}}
	g := mustGraph(t, 2, edges, []int{1})

	fake := &fakeSolver{}
	dumpPath := filepath.Join(t.TempDir(), "mismatch.json")
	v := verify.New(fake, g, dumpPath)

	err := v.Solve(solver.SyndromePattern{DefectVertices: []int{0}})
	require.Error(err)

	var mismatch *verify.ErrMismatch
	require.ErrorAs(err, &mismatch)
	require.EqualValues(0, mismatch.SolverWeight)
	require.EqualValues(7, mismatch.RefWeight)
	require.NoError(mismatch.DumpErr)

	data, readErr := os.ReadFile(dumpPath)
	require.NoError(readErr)
	require.Contains(string(data), "RefWeight")
}

// fakeSolver reports no matched edges regardless of input, so its
// implied weight (0) never matches the reference matcher's answer
// whenever there is at least one defect.
type fakeSolver struct{}

func (f *fakeSolver) Solve(solver.SyndromePattern) error { return nil }
func (f *fakeSolver) Clear()                             {}
func (f *fakeSolver) Subgraph() ([]int, error)            { return nil, nil }
func (f *fakeSolver) PerfectMatching() (*solver.PerfectMatching, error) {
	return &solver.PerfectMatching{}, nil
}
