package solver

import (
	"fmt"

	"github.com/qecsim/fusionmatch/dual"
	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/primal"
	"github.com/qecsim/fusionmatch/weight"
)

// SerialSolver is the non-parallel solver (spec.md §4.4, C4): it glues one
// dual.Module and one primal.Module over a shared graph.Graph, restoring
// the graph's base weights before applying each solve's erasures/
// dynamic_weights overrides (spec.md §6 "Syndrome-pattern semantics").
type SerialSolver struct {
	g            *graph.Graph
	baseWeights  []weight.Weight
	dm           *dual.Module
	pm           *primal.Module
	opts         primal.Options
	lastDefects  []int
	lastMatching *PerfectMatching
	solved       bool
}

// NewSerialSolver builds a solver over g, preserving g's current per-edge
// weights as the baseline every subsequent Solve restores before applying
// that solve's overrides.
func NewSerialSolver(g *graph.Graph, opts primal.Options) *SerialSolver {
	base := make([]weight.Weight, g.EdgeNum())
	for e := range base {
		base[e] = g.Weight(e)
	}
	return &SerialSolver{g: g, baseWeights: base, dm: dual.New(g), opts: opts}
}

// Clear discards the last solve's state (spec.md §6 "clear()"). The graph
// and baseline weights are untouched; the next Solve restores them itself.
func (s *SerialSolver) Clear() {
	s.dm.Clear()
	s.lastDefects = nil
	s.lastMatching = nil
	s.solved = false
}

func (s *SerialSolver) applyOverrides(syn SyndromePattern) error {
	for e, w := range s.baseWeights {
		s.g.SetWeight(e, w)
	}
	for _, e := range syn.Erasures {
		if err := s.g.SetWeight(e, 0); err != nil {
			return fmt.Errorf("solver: erasure edge %d: %w", e, err)
		}
	}
	for _, dw := range syn.DynamicWeights {
		if dw.Weight < 0 {
			return ErrNegativeDynamicWeight
		}
		if err := s.g.SetWeight(dw.Edge, dw.Weight); err != nil {
			return fmt.Errorf("solver: dynamic_weights edge %d: %w", dw.Edge, err)
		}
	}
	return nil
}

// Solve runs one decode (spec.md §6 "solve(syndrome)"). Erasures and
// dynamic_weights are applied to the graph for the duration of this solve
// only; the next Solve restores the baseline first. Solve also replaces the
// graph's defect flags with syn's defect vertices (graph.Graph.SetDefect).
func (s *SerialSolver) Solve(syn SyndromePattern) error {
	if err := s.applyOverrides(syn); err != nil {
		return err
	}
	s.g.ClearDefects()
	for _, v := range syn.DefectVertices {
		s.g.SetDefect(v, true)
	}
	s.dm.Clear()

	pm := primal.New(s.g, s.dm, s.opts)
	pm.AddDefects(syn.DefectVertices)
	pm.Run()

	peers, virtuals, err := pm.PerfectMatching()
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
			return 0, ErrUnknownDefectVertex
		}
		return i, nil
	}

	result := &PerfectMatching{}
	for _, p := range peers {
		a, err := resolve(p.A)
		if err != nil {
			return err
		}
		b, err := resolve(p.B)
		if err != nil {
			return err
		}
		result.PeerMatchings = append(result.PeerMatchings, PeerMatching{DefectA: a, DefectB: b})
	}
	for _, v := range virtuals {
		d, err := resolve(v.Defect)
		if err != nil {
			return err
		}
		result.VirtualMatchings = append(result.VirtualMatchings, VirtualMatching{Defect: d, Virtual: v.Virtual})
	}

	s.pm = pm
	s.lastDefects = syn.DefectVertices
	s.lastMatching = result
	s.solved = true
	return nil
}

// DualModule exposes the underlying dual module, for tooling that needs
// direct state access (the visualizer, C8; the profiler, C9).
func (s *SerialSolver) DualModule() *dual.Module { return s.dm }

// PrimalModule exposes the last solve's primal module, or nil before the
// first Solve.
func (s *SerialSolver) PrimalModule() *primal.Module { return s.pm }

// Subgraph returns the last solve's selected edge indices.
func (s *SerialSolver) Subgraph() ([]int, error) {
	if !s.solved {
		return nil, primal.ErrNoSolve
	}
	return s.pm.Subgraph()
}

// PerfectMatching returns the last solve's defect-index-based matching.
func (s *SerialSolver) PerfectMatching() (*PerfectMatching, error) {
	if !s.solved {
		return nil, primal.ErrNoSolve
	}
	return s.lastMatching, nil
}
