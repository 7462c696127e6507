package parsolver

import (
	"context"

	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/partition"
	"github.com/qecsim/fusionmatch/primal"
	"github.com/qecsim/fusionmatch/solver"
)

// ParallelSolver is the parallel solver facade (spec.md §4.6/§4.7, §6): the
// same Solve/Subgraph/PerfectMatching/Clear surface as solver.SerialSolver,
// but driven by a Scheduler fusing partition units up to the root instead of
// a single from-scratch decode.
type ParallelSolver struct {
	g    *graph.Graph
	pi   *partition.PartitionInfo
	opts primal.Options

	lastEvents   []UnitEvent
	lastDefects  []int
	lastMatching *solver.PerfectMatching
	edges        []int
	solved       bool
}

// NewParallelSolver builds a parallel solver over g, partitioned per plan.
func NewParallelSolver(g *graph.Graph, plan partition.PlanSpec, opts primal.Options) (*ParallelSolver, error) {
	pi, err := partition.Build(g, plan)
	if err != nil {
		return nil, err
	}
	return &ParallelSolver{g: g, pi: pi, opts: opts}, nil
}

// Clear discards the last solve's state (spec.md §6 "clear()").
func (p *ParallelSolver) Clear() {
	p.lastEvents = nil
	p.lastDefects = nil
	p.lastMatching = nil
	p.edges = nil
	p.solved = false
}

// Solve runs one decode across every partition unit, fusing bottom-up level
// by level (spec.md §6 "solve(syndrome)"), and translates the root unit's
// fully fused result from global vertex ids into the defect-index-based
// PerfectMatching shape spec.md §6 requires of external callers.
func (p *ParallelSolver) Solve(syn solver.SyndromePattern) error {
	sched := NewScheduler(p.g, p.pi, p.opts)
	events, root, err := sched.Run(context.Background(), syn)
	p.lastEvents = events
	if err != nil {
		return err
	}

	index := make(map[int]int, len(syn.DefectVertices))
	for i, v := range syn.DefectVertices {
		index[v] = i
	}
	resolve := func(v int) (int, error) {
		i, ok := index[v]
		if !ok {
			return 0, solver.ErrUnknownDefectVertex
		}
		return i, nil
	}

	result := &solver.PerfectMatching{}
	for _, pm := range root.peers {
		a, err := resolve(pm.A)
		if err != nil {
			return err
		}
		b, err := resolve(pm.B)
		if err != nil {
			return err
		}
		result.PeerMatchings = append(result.PeerMatchings, solver.PeerMatching{DefectA: a, DefectB: b})
	}
	for _, vm := range root.virtuals {
		d, err := resolve(vm.Defect)
		if err != nil {
			return err
		}
		result.VirtualMatchings = append(result.VirtualMatchings, solver.VirtualMatching{Defect: d, Virtual: vm.Virtual})
	}

	p.lastDefects = syn.DefectVertices
	p.lastMatching = result
	p.edges = root.edges
	p.solved = true
	return nil
}

// Events returns the last solve's per-unit timed events (fed to the
// profiler, C9).
func (p *ParallelSolver) Events() []UnitEvent { return p.lastEvents }

// Subgraph returns the last solve's selected global edge indices.
func (p *ParallelSolver) Subgraph() ([]int, error) {
	if !p.solved {
		return nil, primal.ErrNoSolve
	}
	return p.edges, nil
}

// PerfectMatching returns the last solve's defect-index-based matching.
func (p *ParallelSolver) PerfectMatching() (*solver.PerfectMatching, error) {
	if !p.solved {
		return nil, primal.ErrNoSolve
	}
	return p.lastMatching, nil
}
