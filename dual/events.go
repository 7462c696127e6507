package dual

// ObstacleKind enumerates the event kinds compute_maximum_update_length can
// report (spec.md §4.2).
type ObstacleKind uint8

const (
	// EdgeConflict: the edge is tight with both endpoints in outermost nodes
	// whose combined growth rate is positive and owned by different nodes.
	EdgeConflict ObstacleKind = iota
	// BlossomNeedExpand: a Shrink blossom's dual_variable has reached 0.
	BlossomNeedExpand
	// VirtualConflict: a Grow node touches a virtual vertex via a tight edge.
	VirtualConflict
)

// Obstacle is one reported event. Only the fields relevant to Kind are
// populated; the rest are zero/NoNode.
type Obstacle struct {
	Kind ObstacleKind

	Edge int // valid for EdgeConflict, VirtualConflict

	LeftOwner, RightOwner NodeID // valid for EdgeConflict
	Owner                 NodeID // valid for BlossomNeedExpand, VirtualConflict
	Virtual               int    // valid for VirtualConflict (vertex index)
}

// less implements the deterministic tie-break order spec.md §4.2 requires:
// "by event kind then by index." Index is the edge index for
// EdgeConflict/VirtualConflict and the node id for BlossomNeedExpand.
func (o Obstacle) less(other Obstacle) bool {
	if o.Kind != other.Kind {
		return o.Kind < other.Kind
	}
	switch o.Kind {
	case BlossomNeedExpand:
		return o.Owner < other.Owner
	default:
		return o.Edge < other.Edge
	}
}
