package visualizer

import (
	"encoding/json"
	"io"

	"github.com/qecsim/fusionmatch/dual"
	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/primal"
)

// Recorder accumulates named snapshots across a solve for later writing
// (spec.md §6's "format: fusion_blossom" document).
type Recorder struct {
	positions []Position
	snapshots []NamedSnapshot
}

// NewRecorder builds an empty Recorder with the given vertex positions
// (caller-supplied layout coordinates; the module has no notion of
// geometry of its own).
func NewRecorder(positions []Position) *Recorder {
	return &Recorder{positions: positions}
}

// Capture appends one named snapshot of g/dm/pm's current state.
func (r *Recorder) Capture(name string, g *graph.Graph, dm *dual.Module, pm *primal.Module, terminal bool) error {
	snap, err := Build(g, dm, pm, terminal)
	if err != nil {
		return err
	}
	r.snapshots = append(r.snapshots, NamedSnapshot{Name: name, Snapshot: snap})
	return nil
}

// WriteTo encodes the accumulated recording as the single top-level JSON
// document spec.md §6 describes.
func (r *Recorder) WriteTo(w io.Writer) error {
	doc := Document{Format: "fusion_blossom", Positions: r.positions, Snapshots: r.snapshots}
	enc := json.NewEncoder(w)
	return enc.Encode(doc)
}
