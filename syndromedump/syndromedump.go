// Package syndromedump writes the verifier mismatch artifact spec.md §7
// describes: when a solver's answer disagrees with the independent
// reference matcher (package refmatch), the offending syndrome and both
// weights are written to disk so the mismatch can be reproduced later.
//
// Grounded on profiler.Writer's JSON-lines convention (encoding/json
// only — a one-shot diagnostic dump has no third-party serialization
// need beyond what the teacher's own tooling reaches for).
package syndromedump

import (
	"encoding/json"
	"io"
	"os"

	"github.com/qecsim/fusionmatch/solver"
	"github.com/qecsim/fusionmatch/weight"
)

// Mismatch is one verifier disagreement: the triggering syndrome plus
// both algorithms' reported weight and matching.
type Mismatch struct {
	Syndrome     solver.SyndromePattern
	SolverWeight weight.Weight
	SolverResult solver.PerfectMatching
	RefWeight    weight.Weight
	RefResult    solver.PerfectMatching
	Diff         string `json:",omitempty"`
}

// Write encodes m as a single JSON document to w.
func Write(w io.Writer, m Mismatch) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// WriteFile encodes m as JSON and writes it to path, creating or
// truncating the file.
func WriteFile(path string, m Mismatch) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, m)
}
