package profiler

import (
	"encoding/json"
	"io"

	"github.com/qecsim/fusionmatch/partition"
)

// BenchmarkConfig is the profile file's second line: the CLI-level
// benchmark settings in effect for this run (spec.md §6 CLI surface).
type BenchmarkConfig struct {
	CodeDistance   int     `json:"code_distance"`
	Rounds         int     `json:"rounds"`
	P              float64 `json:"p"`
	CodeType       string  `json:"code_type"`
	PrimalDualType string  `json:"primal_dual_type"`
	PartitionStrategy string `json:"partition_strategy"`
	Verifier       bool    `json:"verifier"`
}

// Writer emits the profile file format (spec.md §6): line 1 the partition
// config, line 2 the benchmark config, then one JSON object per round.
type Writer struct {
	w   io.Writer
	enc *json.Encoder
}

// NewWriter writes the two header lines and returns a Writer ready for
// per-round WriteRound calls.
func NewWriter(w io.Writer, plan partition.PlanSpec, bench BenchmarkConfig) (*Writer, error) {
	enc := json.NewEncoder(w)
	if err := enc.Encode(plan); err != nil {
		return nil, err
	}
	if err := enc.Encode(bench); err != nil {
		return nil, err
	}
	return &Writer{w: w, enc: enc}, nil
}

// WriteRound appends one round's profile line.
func (p *Writer) WriteRound(r Round) error {
	return p.enc.Encode(r)
}
