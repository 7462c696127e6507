package visualizer_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/primal"
	"github.com/qecsim/fusionmatch/solver"
	"github.com/qecsim/fusionmatch/visualizer"
)

// TestRecorderWritesFusionBlossomDocument exercises spec.md §6's snapshot
// file format, including field-name preservation for external-viewer
// compatibility.
func TestRecorderWritesFusionBlossomDocument(t *testing.T) {
	require := require.New(t)

	g, err := graph.Create(2, []graph.WeightedEdge{{Left: 0, Right: 1, Weight: 2}}, []int{1})
	require.NoError(err)

	s := solver.NewSerialSolver(g, primal.DefaultOptions())
	require.NoError(s.Solve(solver.SyndromePattern{DefectVertices: []int{0}}))

	rec := visualizer.NewRecorder([]visualizer.Position{{I: 0, J: 0, T: 0}, {I: 1, J: 0, T: 0}})
	require.NoError(rec.Capture("final", g, s.DualModule(), s.PrimalModule(), true))

	var buf bytes.Buffer
	require.NoError(rec.WriteTo(&buf))

	var doc map[string]any
	require.NoError(json.Unmarshal(buf.Bytes(), &doc))
	require.Equal("fusion_blossom", doc["format"])

	snapshots, ok := doc["snapshots"].([]any)
	require.True(ok)
	require.Len(snapshots, 1)

	pair, ok := snapshots[0].([]any)
	require.True(ok)
	require.Equal("final", pair[0])

	snap, ok := pair[1].(map[string]any)
	require.True(ok)
	require.Contains(snap, "vertices")
	require.Contains(snap, "edges")
	require.Contains(snap, "dual_nodes")
	require.Contains(snap, "primal_nodes")
	require.Contains(snap, "subgraph")

	vertices, ok := snap["vertices"].([]any)
	require.True(ok)
	require.Len(vertices, 2)
	v0 := vertices[0].(map[string]any)
	require.Equal(true, v0["s"])
	v1 := vertices[1].(map[string]any)
	require.Equal(true, v1["v"])
}
