package partition

import "github.com/qecsim/fusionmatch/graph"

// Build validates spec and constructs the full fusion tree plus
// per-unit edge ownership (spec.md §4.5).
func Build(g *graph.Graph, spec PlanSpec) (*PartitionInfo, error) {
	if err := validateRanges(spec); err != nil {
		return nil, err
	}

	n := len(spec.Partitions)
	total := n + len(spec.Fusions)
	units := make([]Unit, total)
	for i, r := range spec.Partitions {
		units[i] = Unit{ID: i, IsLeaf: true, Range: r, Parent: -1, Left: -1, Right: -1}
	}
	for i, f := range spec.Fusions {
		id := n + i
		if f.Left < 0 || f.Left >= id || f.Right < 0 || f.Right >= id {
			return nil, ErrBadFusionPlan
		}
		if units[f.Left].Parent != -1 || units[f.Right].Parent != -1 {
			return nil, ErrBadFusionPlan
		}
		units[id] = Unit{ID: id, IsLeaf: false, Parent: -1, Left: f.Left, Right: f.Right}
		units[f.Left].Parent = id
		units[f.Right].Parent = id
	}

	if len(spec.Fusions) != n-1 {
		return nil, ErrBadFusionPlan
	}

	root := -1
	rootCount := 0
	for i := range units {
		if units[i].Parent == -1 {
			root = i
			rootCount++
		}
	}
	if rootCount != 1 {
		return nil, ErrBadFusionPlan
	}

	var assignDepth func(id, depth int)
	assignDepth = func(id, depth int) {
		units[id].Depth = depth
		if !units[id].IsLeaf {
			assignDepth(units[id].Left, depth+1)
			assignDepth(units[id].Right, depth+1)
		}
	}
	assignDepth(root, 0)

	pi := &PartitionInfo{Units: units, Root: root}

	pi.leafOf = make([][]int, spec.VertexNum)
	for i, r := range spec.Partitions {
		for v := r.Start; v < r.End; v++ {
			pi.leafOf[v] = append(pi.leafOf[v], i)
		}
	}

	pi.EdgeOwner = make([]int, g.EdgeNum())
	for e := 0; e < g.EdgeNum(); e++ {
		l, r := g.Endpoints(e)
		owner := pi.edgeOwner(l, r)
		pi.Units[owner].OwnedEdges = append(pi.Units[owner].OwnedEdges, e)
		pi.EdgeOwner[e] = owner
	}

	return pi, nil
}

// edgeOwner picks the lowest common ancestor leaf/unit owning edge (l,r)
// (spec.md §4.5: "each edge is owned by exactly one unit, the lowest
// common ancestor of its endpoints"). When an endpoint is an interface
// vertex shared by two leaves, any leaf containing the other endpoint
// that is also reachable resolves the ambiguity; otherwise the lowest id
// candidate is used deterministically.
func (pi *PartitionInfo) edgeOwner(l, r int) int {
	leavesL, leavesR := pi.leafOf[l], pi.leafOf[r]
	for _, a := range leavesL {
		for _, b := range leavesR {
			if a == b {
				return a
			}
		}
	}
	return pi.lca(leavesL[0], leavesR[0])
}

func validateRanges(spec PlanSpec) error {
	if len(spec.Partitions) == 0 {
		return ErrEmptyRange
	}
	if spec.Partitions[0].Start != 0 {
		return ErrRangesNotContiguous
	}
	for i, r := range spec.Partitions {
		if r.End <= r.Start {
			return ErrEmptyRange
		}
		if i > 0 {
			prev := spec.Partitions[i-1]
			if r.Start != prev.End && r.Start != prev.End-1 {
				return ErrRangesNotContiguous
			}
		}
	}
	if spec.Partitions[len(spec.Partitions)-1].End != spec.VertexNum {
		return ErrRangesNotContiguous
	}
	return nil
}
