// Package refmatch implements a reference minimum-weight perfect matching
// for verifier mode (spec.md §6 "--verifier"): an implementation
// independent of the blossom algorithm in dual/primal, used only to
// cross-check small instances in tests and verifier mode, never on the
// decode hot path.
//
// Design:
//   - All-pairs shortest paths over the decoding graph via Floyd-Warshall.
//   - Virtual (boundary) vertices have unlimited matching capacity in
//     spec.md's model, which an ordinary minimum-weight perfect matching
//     cannot express directly. The standard reduction applies: give each
//     defect its own private "boundary" twin (cost = its nearest virtual
//     vertex), let twins pair with each other for free, and solve an
//     exact perfect matching over defects-plus-twins instead.
//   - The exact matching itself is bitmask dynamic programming,
//     O(n² · 2ⁿ) for n = 2·len(defects) — tractable only for the small n
//     verifier mode is meant for, which is exactly why it never runs on
//     the hot path.
//
// Grounded on tsp/matching.go's greedyMatch (doc-comment register,
// tie-break-by-id determinism) but exhaustive rather than greedy.
package refmatch

import (
	"errors"

	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/weight"
)

// ErrNoVirtualVertex is returned when a defect cannot be matched to any
// virtual vertex because the graph declares none.
var ErrNoVirtualVertex = errors.New("refmatch: graph has no virtual vertex to match against")

// PeerMatch pairs two defect indices (positions within the defects slice
// passed to Solve), mirroring solver.PeerMatching's shape so the two can
// be compared directly.
type PeerMatch struct{ DefectA, DefectB int }

// VirtualMatch pairs a defect index with the virtual vertex it matched,
// mirroring solver.VirtualMatching's shape.
type VirtualMatch struct {
	Defect  int
	Virtual int
}

func shortestPaths(g *graph.Graph) [][]weight.Weight {
	n := g.VertexNum()
	dist := make([][]weight.Weight, n)
	for i := range dist {
		dist[i] = make([]weight.Weight, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = weight.Max
			}
		}
	}
	for e := 0; e < g.EdgeNum(); e++ {
		l, r := g.Endpoints(e)
		w := g.Weight(e)
		if w < dist[l][r] {
			dist[l][r] = w
			dist[r][l] = w
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if dist[i][k] == weight.Max {
				continue
			}
			for j := 0; j < n; j++ {
				if dist[k][j] == weight.Max {
					continue
				}
				if nd := dist[i][k] + dist[k][j]; nd < dist[i][j] {
					dist[i][j] = nd
				}
			}
		}
	}
	return dist
}

// Solve computes an exact minimum-weight perfect matching over defects
// (each either paired with another defect or with its nearest virtual
// vertex), returning the total weight and the matching.
func Solve(g *graph.Graph, defects []int) (weight.Weight, []PeerMatch, []VirtualMatch, error) {
	var virtuals []int
	for v := 0; v < g.VertexNum(); v++ {
		if g.IsVirtual(v) {
			virtuals = append(virtuals, v)
		}
	}
	if len(defects)%2 == 1 && len(virtuals) == 0 {
		return 0, nil, nil, ErrNoVirtualVertex
	}

	dist := shortestPaths(g)

	n := len(defects)
	boundaryCost := make([]weight.Weight, n)
	nearestVirtual := make([]int, n)
	for i, d := range defects {
		best := weight.Max
		bestV := -1
		for _, v := range virtuals {
			if dist[d][v] < best {
				best = dist[d][v]
				bestV = v
			}
		}
		boundaryCost[i] = best
		nearestVirtual[i] = bestV
	}

	// 2n nodes: [0,n) are the defects, [n,2n) are their private boundary twins.
	total := 2 * n
	cost := make([][]weight.Weight, total)
	for i := range cost {
		cost[i] = make([]weight.Weight, total)
		for j := range cost[i] {
			cost[i][j] = weight.Max
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			cost[i][j] = dist[defects[i]][defects[j]]
			cost[j][i] = cost[i][j]
		}
		cost[i][n+i] = boundaryCost[i]
		cost[n+i][i] = boundaryCost[i]
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			cost[n+i][n+j] = 0
			cost[n+j][n+i] = 0
		}
	}

	w, pairs := minWeightPerfectMatching(cost)

	var peers []PeerMatch
	var virtualMatches []VirtualMatch
	for _, p := range pairs {
		a, b := p[0], p[1]
		switch {
		case a < n && b < n:
			peers = append(peers, PeerMatch{DefectA: a, DefectB: b})
		case a < n && b >= n && b-n == a:
			virtualMatches = append(virtualMatches, VirtualMatch{Defect: a, Virtual: nearestVirtual[a]})
		case b < n && a >= n && a-n == b:
			virtualMatches = append(virtualMatches, VirtualMatch{Defect: b, Virtual: nearestVirtual[b]})
		}
		// a,b both twins (>=n, unrelated defects): free pairing, contributes
		// nothing to the reported matching.
	}

	return w, peers, virtualMatches, nil
}

// minWeightPerfectMatching solves exact minimum-weight perfect matching on
// a complete graph given by cost (weight.Max meaning "no edge"), via
// bitmask dynamic programming.
func minWeightPerfectMatching(cost [][]weight.Weight) (weight.Weight, [][2]int) {
	n := len(cost)
	full := (1 << n) - 1
	memo := make(map[int]weight.Weight)

	var solve func(mask int) weight.Weight
	solve = func(mask int) weight.Weight {
		if mask == full {
			return 0
		}
		if v, ok := memo[mask]; ok {
			return v
		}
		i := 0
		for (mask>>i)&1 == 1 {
			i++
		}
		best := weight.Max
		for j := i + 1; j < n; j++ {
			if (mask>>j)&1 == 1 || cost[i][j] == weight.Max {
				continue
			}
			sub := solve(mask | (1 << i) | (1 << j))
			if sub == weight.Max {
				continue
			}
			if total := cost[i][j] + sub; total < best {
				best = total
			}
		}
		memo[mask] = best
		return best
	}

	best := solve(0)

	var pairs [][2]int
	mask := 0
	for mask != full {
		i := 0
		for (mask>>i)&1 == 1 {
			i++
		}
		for j := i + 1; j < n; j++ {
			if (mask>>j)&1 == 1 || cost[i][j] == weight.Max {
				continue
			}
			rest := mask | (1 << i) | (1 << j)
			sub, ok := memo[rest]
			if !ok {
				sub = solve(rest)
			}
			if sub != weight.Max && cost[i][j]+sub == memo[mask] {
				pairs = append(pairs, [2]int{i, j})
				mask = rest
				break
			}
		}
	}

	return best, pairs
}
