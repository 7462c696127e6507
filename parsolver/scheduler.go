package parsolver

import (
	"context"
	"time"

	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/partition"
	"github.com/qecsim/fusionmatch/primal"
	"github.com/qecsim/fusionmatch/solver"
)

// UnitEvent is one partition unit's timed solve, surfaced to the profiler
// (C9's "per-unit timed events", spec.md §6).
type UnitEvent struct {
	UnitID   int
	IsLeaf   bool
	Depth    int
	Duration time.Duration
	Err      error
	// Loose is the number of defects this unit still carries as a
	// temporary_match to an interface mirror once its own solve/fusion
	// step finishes — the intermediate fusion state a leaf or internal
	// unit other than the root hands up to its parent (spec.md §4.7).
	// Always 0 for the root, whose subtree has no interface left to mirror.
	Loose int
}

// Scheduler drives a partition.PartitionInfo's fusion tree through the
// worker pool, one depth level at a time. Because partition.Build assigns
// every unit's Depth as exactly one more than its parent's, grouping units
// by Depth and working from the deepest level up is equivalent to "start a
// unit only once both its children are done" (spec.md §5's dependency
// ordering) without needing an explicit per-unit dependency counter.
//
// Leaf units solve their own owned subgraph from scratch (there is no
// child state to reuse yet); every internal unit instead fuses — it
// imports its two children's already-finalized matches verbatim and only
// resumes the event loop over the small reduced subgraph of its own newly
// owned crossing edges and its children's still-open interface mirrors
// (fusion.go's solveInterface). The root's result, once every level has
// fused up to it, is the final answer.
type Scheduler struct {
	g    *graph.Graph
	pi   *partition.PartitionInfo
	opts primal.Options
	pool *WorkerPool[int, unitResult]
}

// NewScheduler builds a scheduler over g's partition plan pi.
func NewScheduler(g *graph.Graph, pi *partition.PartitionInfo, opts primal.Options) *Scheduler {
	return &Scheduler{
		g:    g,
		pi:   pi,
		opts: opts,
		pool: NewWorkerPool[int, unitResult](DefaultPoolConfig()),
	}
}

// Run solves every leaf unit and fuses every internal unit against syn,
// deepest level first, returning the per-unit timed events it produced
// and the root unit's fully fused result.
func (s *Scheduler) Run(ctx context.Context, syn solver.SyndromePattern) ([]UnitEvent, *unitResult, error) {
	levels := make(map[int][]int)
	maxDepth := 0
	for _, u := range s.pi.Units {
		levels[u.Depth] = append(levels[u.Depth], u.ID)
		if u.Depth > maxDepth {
			maxDepth = u.Depth
		}
	}

	results := make(map[int]unitResult, len(s.pi.Units))
	var events []UnitEvent

	for depth := maxDepth; depth >= 0; depth-- {
		ids := levels[depth]
		if len(ids) == 0 {
			continue
		}
		out := s.pool.ExecuteFunc(ctx, ids, func(ctx context.Context, id int) (unitResult, error) {
			u := s.pi.Units[id]
			if u.IsLeaf {
				return solveLeaf(s.g, s.pi, id, s.opts, syn)
			}
			return solveInterface(s.g, s.pi, id, results[u.Left], results[u.Right], s.opts)
		})
		for i, r := range out {
			id := ids[i]
			events = append(events, UnitEvent{
				UnitID:   id,
				IsLeaf:   s.pi.Units[id].IsLeaf,
				Depth:    depth,
				Duration: r.Duration,
				Err:      r.Error,
				Loose:    len(r.Result.loose),
			})
			if r.Error != nil {
				return events, nil, r.Error
			}
			results[id] = r.Result
		}
	}

	root := results[s.pi.Root]
	return events, &root, nil
}
