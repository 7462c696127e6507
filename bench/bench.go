// Package bench implements the benchmark runner cmd/fusionbench drives:
// given an already-built decoding problem and a list of syndrome rounds,
// it dispatches each round to a serial, parallel, or verified solver and
// reports per-round profile data.
//
// Graph/syndrome generation is out of scope per spec.md §1's Non-goals
// (this repo decodes, it does not simulate circuits); Input is the
// minimal concrete seam standing in for that: a caller (or, for
// cmd/fusionbench, a JSON payload read from stdin) supplies the graph
// and syndromes directly.
package bench

import (
	"errors"
	"time"

	"github.com/qecsim/fusionmatch/parsolver"
	"github.com/qecsim/fusionmatch/partition"
	"github.com/qecsim/fusionmatch/primal"
	"github.com/qecsim/fusionmatch/profiler"
	"github.com/qecsim/fusionmatch/solver"
	"github.com/qecsim/fusionmatch/verify"
)

// Input is the minimal ingestion shape: a graph initializer plus the
// syndrome rounds to decode against it.
type Input struct {
	Initializer solver.SolverInitializer
	Syndromes   []solver.SyndromePattern
}

// Config selects which solver backend runs the rounds and how it is
// configured (spec.md §6 CLI surface: --primal-dual-type,
// --partition-strategy/--partition-config, --verifier).
type Config struct {
	PrimalDualType string // "serial" or "parallel"
	MaxTreeSize    int
	Partition      *partition.PlanSpec // required when PrimalDualType == "parallel"
	Verifier       bool
	VerifierDumpPath string
	MaxWorkers     int // passed through to profiler.EventTimeVec for parallel runs
}

// ErrMissingPartition is returned when Config requests the parallel
// backend without supplying a partition plan.
var ErrMissingPartition = errors.New("bench: parallel primal_dual_type requires a partition plan")

// Run decodes every syndrome in input against cfg's backend, writing one
// profiler.Round per syndrome to out (if non-nil).
func Run(input Input, cfg Config, out *profiler.Writer) ([]profiler.Round, error) {
	g, err := input.Initializer.BuildGraph()
	if err != nil {
		return nil, err
	}

	opts := primal.Options{MaxTreeSize: cfg.MaxTreeSize}

	var (
		base    solver.Solver
		sched   *parsolver.ParallelSolver
		parMode bool
	)
	switch cfg.PrimalDualType {
	case "", "serial":
		base = solver.NewSerialSolver(g, opts)
	case "parallel":
		if cfg.Partition == nil {
			return nil, ErrMissingPartition
		}
		ps, err := parsolver.NewParallelSolver(g, *cfg.Partition, opts)
		if err != nil {
			return nil, err
		}
		base = ps
		sched = ps
		parMode = true
	default:
		return nil, errors.New("bench: unknown primal_dual_type " + cfg.PrimalDualType)
	}

	var active solver.Solver = base
	if cfg.Verifier {
		active = verify.New(base, g, cfg.VerifierDumpPath)
	}

	rounds := make([]profiler.Round, 0, len(input.Syndromes))
	for _, syn := range input.Syndromes {
		start := time.Now()
		solveErr := active.Solve(syn)
		elapsed := time.Since(start).Seconds()

		var mismatch *verify.ErrMismatch
		isMismatch := errors.As(solveErr, &mismatch)

		round := profiler.Round{
			RoundTime: elapsed,
			Events: profiler.RoundEvents{
				Verified: cfg.Verifier && !isMismatch,
				Decoded:  solveErr == nil || isMismatch,
			},
			DefectNum: len(syn.DefectVertices),
		}
		if parMode {
			round.SolverProfile.Primal.EventTimeVec = profiler.EventTimeVec(sched.Events(), cfg.MaxWorkers)
		}

		rounds = append(rounds, round)
		if out != nil {
			if werr := out.WriteRound(round); werr != nil {
				return rounds, werr
			}
		}

		active.Clear()
		if solveErr != nil && !isMismatch {
			return rounds, solveErr
		}
	}

	return rounds, nil
}
