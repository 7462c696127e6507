// Package partition implements the partition planner (spec.md §4.5, C5):
// it turns a vertex-range partition spec and a fusion plan into per-unit
// ownership descriptors (owned vertices/edges for leaves, interface/bridge
// edges for internal units), validating that the fusion plan forms a full
// binary tree whose leaves are exactly the given partitions.
//
// The binary fusion tree and its ancestor bookkeeping are grounded on
// lnz-BalancedGo/lib/node.go's decomposition-tree shape (parent/children
// pointers over integer node ids) and lib/search.go's depth-aligned
// ancestor walk, adapted here from hypertree-decomposition nodes to
// fusion units.
package partition

import (
	"errors"
	"sort"
)

// Sentinel errors (spec.md §7 "Configuration").
var (
	ErrRangesNotContiguous = errors.New("partition: ranges must tile [0,vertex_num) contiguously")
	ErrEmptyRange          = errors.New("partition: a vertex range must be non-empty")
	ErrBadFusionPlan       = errors.New("partition: fusion plan is not a full binary tree over the given leaves")
)

// VertexRange is a half-open contiguous block [Start,End) of vertex
// indices. Two adjacent ranges may share their one boundary vertex
// (Partitions[i].End-1 == Partitions[i+1].Start) to designate it an
// interface vertex; otherwise they must abut exactly (no gap, no
// interior overlap).
type VertexRange struct{ Start, End int }

// FusionPair merges two existing unit ids into a new parent unit, in the
// order fusions are declared (spec.md §4.5).
type FusionPair struct{ Left, Right int }

// PlanSpec is spec.md §6's PartitionConfig.
type PlanSpec struct {
	VertexNum  int
	Partitions []VertexRange
	Fusions    []FusionPair
}

// Unit is one node of the fusion tree.
type Unit struct {
	ID     int
	IsLeaf bool
	Range  VertexRange // meaningful only when IsLeaf
	Parent int         // -1 for the root
	Left   int         // -1 for leaves
	Right  int         // -1 for leaves
	Depth  int

	OwnedEdges []int // edges whose lowest common ancestor is this unit
}

// PartitionInfo is the planner's output (spec.md §4.5).
type PartitionInfo struct {
	Units     []Unit
	Root      int
	EdgeOwner []int // edge index -> owning unit id

	leafOf [][]int // vertex -> leaf unit ids containing it (1, or 2 at an interface)
}

// SubtreeUnits returns id and every unit beneath it in the fusion tree.
func (pi *PartitionInfo) SubtreeUnits(id int) []int {
	u := pi.Units[id]
	if u.IsLeaf {
		return []int{id}
	}
	out := append([]int{id}, pi.SubtreeUnits(u.Left)...)
	return append(out, pi.SubtreeUnits(u.Right)...)
}

// SubtreeVertices returns the sorted, deduplicated vertex indices owned by
// id's subtree (a shared interface vertex appears once even though two
// sibling leaves both touch it).
func (pi *PartitionInfo) SubtreeVertices(id int) []int {
	seen := make(map[int]bool)
	for _, v := range pi.leavesUnder(id) {
		seen[v] = true
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// SubtreeEdges returns every edge owned by id or one of its descendants,
// i.e. every edge whose lowest common ancestor lies within id's subtree.
func (pi *PartitionInfo) SubtreeEdges(id int) []int {
	units := pi.SubtreeUnits(id)
	var out []int
	for _, u := range units {
		out = append(out, pi.Units[u].OwnedEdges...)
	}
	sort.Ints(out)
	return out
}

// OwnedVertices returns the vertex indices owned by leaf unit id.
func (pi *PartitionInfo) OwnedVertices(id int) []int {
	u := pi.Units[id]
	out := make([]int, 0, u.Range.End-u.Range.Start)
	for v := u.Range.Start; v < u.Range.End; v++ {
		out = append(out, v)
	}
	return out
}

// InterfaceVertices returns the vertices shared between unit's two
// children (spec.md §4.5's "interface vertex"). Only meaningful for
// internal units.
func (pi *PartitionInfo) InterfaceVertices(id int) []int {
	u := pi.Units[id]
	if u.IsLeaf {
		return nil
	}
	leftVerts := make(map[int]bool)
	for _, v := range pi.leavesUnder(u.Left) {
		leftVerts[v] = true
	}
	var out []int
	for _, v := range pi.leavesUnder(u.Right) {
		if leftVerts[v] {
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

func (pi *PartitionInfo) leavesUnder(id int) []int {
	u := pi.Units[id]
	if u.IsLeaf {
		out := make([]int, 0, u.Range.End-u.Range.Start)
		for v := u.Range.Start; v < u.Range.End; v++ {
			out = append(out, v)
		}
		return out
	}
	return append(pi.leavesUnder(u.Left), pi.leavesUnder(u.Right)...)
}

// lca returns the lowest common ancestor of units a and b, via a
// depth-aligned walk (grounded on lib/search.go's ancestor probe).
func (pi *PartitionInfo) lca(a, b int) int {
	da, db := pi.Units[a].Depth, pi.Units[b].Depth
	for da > db {
		a = pi.Units[a].Parent
		da--
	}
	for db > da {
		b = pi.Units[b].Parent
		db--
	}
	for a != b {
		a = pi.Units[a].Parent
		b = pi.Units[b].Parent
	}
	return a
}
