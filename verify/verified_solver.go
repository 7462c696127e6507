// Package verify implements the verifier mode spec.md §6 names via
// "--verifier": it wraps a solver.Solver and independently recomputes
// every solve with the exhaustive reference matcher in package refmatch,
// comparing total weights as plain integers and, on mismatch, dumping the
// offending syndrome (package syndromedump) with a github.com/google/go-cmp
// diff of the two matchings attached.
//
// Kept out of package solver itself to avoid an import cycle: refmatch
// and syndromedump both need solver's types, so the wrapper that uses
// all three lives one level up.
package verify

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/refmatch"
	"github.com/qecsim/fusionmatch/solver"
	"github.com/qecsim/fusionmatch/syndromedump"
	"github.com/qecsim/fusionmatch/weight"
)

// ErrMismatch is returned when the wrapped solver and the reference
// matcher disagree on a solve's total weight.
type ErrMismatch struct {
	SolverWeight weight.Weight
	RefWeight    weight.Weight
	DumpPath     string
	DumpErr      error
}

func (e *ErrMismatch) Error() string {
	if e.DumpErr != nil {
		return fmt.Sprintf("verify: mismatch (solver=%d ref=%d), and dump to %q failed: %v",
			e.SolverWeight, e.RefWeight, e.DumpPath, e.DumpErr)
	}
	return fmt.Sprintf("verify: mismatch (solver=%d ref=%d), syndrome dumped to %q",
		e.SolverWeight, e.RefWeight, e.DumpPath)
}

// VerifiedSolver wraps a solver.Solver, double-checking every solve
// against refmatch.Solve.
type VerifiedSolver struct {
	inner    solver.Solver
	g        *graph.Graph
	dumpPath string // if empty, mismatches are not written to disk
}

// New wraps inner, verifying each solve against g via refmatch. dumpPath
// names the file a mismatch's syndrome is written to; empty disables
// the dump (the error is still returned).
func New(inner solver.Solver, g *graph.Graph, dumpPath string) *VerifiedSolver {
	return &VerifiedSolver{inner: inner, g: g, dumpPath: dumpPath}
}

// Clear forwards to the wrapped solver.
func (v *VerifiedSolver) Clear() { v.inner.Clear() }

// Solve runs the wrapped solver, then independently recomputes the same
// syndrome's minimum weight via refmatch and compares the two.
func (v *VerifiedSolver) Solve(syn solver.SyndromePattern) error {
	if err := v.inner.Solve(syn); err != nil {
		return err
	}

	edges, err := v.inner.Subgraph()
	if err != nil {
		return err
	}
	var solverWeight weight.Weight
	for _, e := range edges {
		solverWeight += v.g.Weight(e)
	}

	refWeight, refPeers, refVirtuals, err := refmatch.Solve(v.g, syn.DefectVertices)
	if err != nil {
		return fmt.Errorf("verify: reference matcher: %w", err)
	}

	if solverWeight != refWeight {
		result, perr := v.inner.PerfectMatching()
		mismatch := syndromedump.Mismatch{
			Syndrome:     syn,
			SolverWeight: solverWeight,
			RefWeight:    refWeight,
			RefResult:    toPerfectMatching(refPeers, refVirtuals),
		}
		if perr == nil && result != nil {
			mismatch.SolverResult = *result
			mismatch.Diff = cmp.Diff(*result, mismatch.RefResult)
		}

		mismatchErr := &ErrMismatch{SolverWeight: solverWeight, RefWeight: refWeight, DumpPath: v.dumpPath}
		if v.dumpPath != "" {
			mismatchErr.DumpErr = syndromedump.WriteFile(v.dumpPath, mismatch)
		}
		return mismatchErr
	}

	return nil
}

// Subgraph forwards to the wrapped solver.
func (v *VerifiedSolver) Subgraph() ([]int, error) { return v.inner.Subgraph() }

// PerfectMatching forwards to the wrapped solver.
func (v *VerifiedSolver) PerfectMatching() (*solver.PerfectMatching, error) {
	return v.inner.PerfectMatching()
}

// toPerfectMatching converts refmatch's result shape into
// solver.PerfectMatching's, for side-by-side diffing.
func toPerfectMatching(peers []refmatch.PeerMatch, virtuals []refmatch.VirtualMatch) solver.PerfectMatching {
	pm := solver.PerfectMatching{
		PeerMatchings:    make([]solver.PeerMatching, len(peers)),
		VirtualMatchings: make([]solver.VirtualMatching, len(virtuals)),
	}
	for i, p := range peers {
		pm.PeerMatchings[i] = solver.PeerMatching{DefectA: p.DefectA, DefectB: p.DefectB}
	}
	for i, vm := range virtuals {
		pm.VirtualMatchings[i] = solver.VirtualMatching{Defect: vm.Defect, Virtual: vm.Virtual}
	}
	return pm
}
