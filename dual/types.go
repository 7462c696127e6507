// Package dual implements the dual module (spec.md §4.2, C2): it owns the
// non-negative dual variables attached to odd-cardinality vertex sets
// ("dual nodes" — either a single syndrome vertex or a blossom cycle of
// children), the per-edge growth accumulators, and the event detection
// (compute_maximum_update_length) that drives the primal module.
//
// The arena/generation design for dual nodes is grounded on the teacher's
// dense-index adjacency model (github.com/katalvlaran/lvlath core package):
// nodes live in a slice-backed arena addressed by NodeID, with a per-slot
// generation counter that alloc bumps when it reuses a slot freed by
// ExpandBlossom. NodeID itself carries no generation, so stale references
// are not checked against it; Clear empties the arena and ids restart at 0.
//
// Numeric note (spec.md §9 Open Question ii): edge weights are used exactly
// as given (not scaled). compute_maximum_update_length's obstacle distance
// for a simultaneously-growing pair of outermost nodes (rate 2) divides
// slack by 2; this is exact for any edge weight reachable by the blossom
// algorithm's structural invariant (the same approach taken by integer
// implementations such as Blossom V) and is defended defensively with
// internal/fatal.Invariant rather than silently rounding, since an inexact
// division would indicate a bug upstream, not a legitimate input shape.
package dual

import "github.com/qecsim/fusionmatch/weight"

// NodeID identifies a dual node (syndrome or blossom) within one Module's
// arena. It is only valid for the Module that produced it; NodeID(-1)
// denotes "no node" (e.g. an untouched vertex, or "no parent").
type NodeID int

// NoNode is the sentinel NodeID meaning "absent".
const NoNode NodeID = -1

// Kind distinguishes a single-vertex syndrome node from a blossom node.
type Kind uint8

const (
	Syndrome Kind = iota
	Blossom
)

// GrowState is the per-node dual-growth direction (spec.md §3).
type GrowState int8

const (
	Stay  GrowState = 0
	Grow  GrowState = 1
	Shrink GrowState = -1
)

func (s GrowState) coefficient() weight.Weight { return weight.Weight(s) }

// node is the internal arena record for one dual node.
type node struct {
	alive      bool
	generation int

	kind   Kind
	vertex int // valid iff kind == Syndrome, else -1

	children   []NodeID // cycle order, valid iff kind == Blossom
	cycleEdges []int    // len(children); cycleEdges[i] joins children[i] and children[(i+1)%len]
	members    []int    // real vertices contained transitively (spec.md §3 "Aggregate")

	dual   weight.Weight
	state  GrowState
	parent NodeID // NoNode if outermost

	boundary []int // edge indices with exactly one endpoint in members
}
