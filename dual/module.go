package dual

import (
	"sort"
	"sync"

	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/internal/fatal"
	"github.com/qecsim/fusionmatch/weight"
)

// Module is the dual module for one decoding problem (spec.md §4.2).
//
// Concurrency: Module is not safe for concurrent use by multiple
// goroutines — spec.md §5 assigns each unit exclusive write access to its
// own dual submodule, so the lock here guards only against accidental
// concurrent misuse from within one unit, not against the parallel
// scheduler's cross-unit fan-out (that ownership is enforced at a coarser
// grain, see package parsolver).
type Module struct {
	mu sync.Mutex

	g *graph.Graph

	edgeWeight        []weight.Weight
	leftGrown         []weight.Weight
	rightGrown        []weight.Weight
	vertexOwner       []NodeID

	nodes    []node
	freeIDs  []int
}

// New creates a dual Module bound to g. The graph's topology is read-only
// for the Module's lifetime (spec.md §5); edge weight mutation between
// solves is the caller's responsibility via graph.Graph.SetWeight before
// constructing (or Clear()-ing and reusing) the Module.
func New(g *graph.Graph) *Module {
	m := &Module{g: g}
	m.resetFromGraph()
	return m
}

func (m *Module) resetFromGraph() {
	v := m.g.VertexNum()
	e := m.g.EdgeNum()
	m.edgeWeight = make([]weight.Weight, e)
	for i := 0; i < e; i++ {
		m.edgeWeight[i] = m.g.Weight(i)
	}
	m.leftGrown = make([]weight.Weight, e)
	m.rightGrown = make([]weight.Weight, e)
	m.vertexOwner = make([]NodeID, v)
	for i := range m.vertexOwner {
		m.vertexOwner[i] = NoNode
	}
	m.nodes = m.nodes[:0]
	m.freeIDs = m.freeIDs[:0]
}

// Clear discards all dual-node state and zeroes edge-growth accumulators,
// per spec.md §3 "Lifecycle", by rebuilding the per-vertex and per-edge
// arrays from the graph in O(V+E) (edge weights are re-read from the
// graph). Graph topology/weights are untouched.
func (m *Module) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetFromGraph()
}

func (m *Module) alloc(n node) NodeID {
	n.alive = true
	if len(m.freeIDs) > 0 {
		id := m.freeIDs[len(m.freeIDs)-1]
		m.freeIDs = m.freeIDs[:len(m.freeIDs)-1]
		n.generation = m.nodes[id].generation + 1
		m.nodes[id] = n
		return NodeID(id)
	}
	id := len(m.nodes)
	m.nodes = append(m.nodes, n)
	return NodeID(id)
}

func (m *Module) at(id NodeID) *node {
	if id < 0 || int(id) >= len(m.nodes) || !m.nodes[id].alive {
		fatal.Invariantf("dual: dangling node reference", int(id), "node not alive")
	}
	return &m.nodes[id]
}

// AddDefect creates a syndrome node containing exactly vertex, with
// dual_variable 0 and grow_state Stay (spec.md §4.2).
func (m *Module) AddDefect(vertex int) NodeID {
	m.mu.Lock()
	defer m.mu.Unlock()

	boundary := append([]int(nil), m.g.Neighbors(vertex)...)
	id := m.alloc(node{
		kind:     Syndrome,
		vertex:   vertex,
		members:  []int{vertex},
		parent:   NoNode,
		state:    Stay,
		boundary: boundary,
	})
	m.vertexOwner[vertex] = id
	return id
}

// SetGrowState updates node's grow_state (spec.md §4.2).
func (m *Module) SetGrowState(id NodeID, state GrowState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.at(id).state = state
}

// GrowState returns node's current grow_state.
func (m *Module) GrowState(id NodeID) GrowState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.at(id).state
}

// Alive reports whether id currently addresses a live node, without
// fataling on a dangling or never-allocated id (unlike the other accessors,
// which assume the caller already knows id is live).
func (m *Module) Alive(id NodeID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return id >= 0 && int(id) < len(m.nodes) && m.nodes[id].alive
}

// IsOutermost reports whether node currently has no parent blossom.
func (m *Module) IsOutermost(id NodeID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.at(id).parent == NoNode
}

// Parent returns node's enclosing blossom, or NoNode if outermost.
func (m *Module) Parent(id NodeID) NodeID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.at(id).parent
}

// Kind returns node's Kind.
func (m *Module) Kind(id NodeID) Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.at(id).kind
}

// Vertex returns the contained vertex for a Syndrome node (undefined for Blossom).
func (m *Module) Vertex(id NodeID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.at(id).vertex
}

// Children returns a blossom's children in cycle order and the interleaving
// edge indices (cycleEdges[i] joins children[i] and children[(i+1)%len]).
func (m *Module) Children(id NodeID) (children []NodeID, cycleEdges []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.at(id)
	return append([]NodeID(nil), n.children...), append([]int(nil), n.cycleEdges...)
}

// Members returns the real vertices transitively contained in node.
func (m *Module) Members(id NodeID) []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.at(id).members...)
}

// DualVariable returns node's current non-negative dual variable.
func (m *Module) DualVariable(id NodeID) weight.Weight {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.at(id).dual
}

// VertexOwner returns the outermost dual node containing v, or (NoNode, false).
func (m *Module) VertexOwner(v int) (NodeID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.vertexOwner[v]
	if id == NoNode {
		return NoNode, false
	}
	return id, true
}

// EdgeGrowth returns edge e's (left_grown, right_grown) accumulators.
func (m *Module) EdgeGrowth(e int) (left, right weight.Weight) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leftGrown[e], m.rightGrown[e]
}

// EdgeWeight returns edge e's weight as seen by the dual module (a private
// snapshot taken at New/Clear time, per spec.md §4.1's "mutable only
// between solves").
func (m *Module) EdgeWeight(e int) weight.Weight {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.edgeWeight[e]
}

// Boundary returns node's boundary edges (edges with exactly one endpoint
// among its members), for the visualizer's `b` field (spec.md §6).
func (m *Module) Boundary(id NodeID) []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.at(id).boundary...)
}

// MaxNodeID returns one past the highest NodeID ever allocated, so a
// caller (the visualizer, C8) can enumerate every slot — including
// now-dead ones, skipped via Alive — without a dedicated iterator.
func (m *Module) MaxNodeID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.nodes)
}

// NumNodes returns the number of live (allocated, not-yet-freed) dual nodes.
func (m *Module) NumNodes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for i := range m.nodes {
		if m.nodes[i].alive {
			n++
		}
	}
	return n
}

// Grow advances duals of every outermost non-Stay node by delta (Grow: +delta,
// Shrink: -delta) and updates the growth accumulator of every incident edge
// (spec.md §4.2). delta must not exceed ComputeMaximumUpdateLength's result.
func (m *Module) Grow(delta weight.Weight) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if delta == 0 {
		return
	}
	for id := range m.nodes {
		n := &m.nodes[id]
		if !n.alive || n.parent != NoNode || n.state == Stay {
			continue
		}
		signed := n.state.coefficient() * delta
		n.dual += signed
		if n.dual < 0 {
			fatal.Invariantf("dual: negative dual_variable", id, "dual=%d after delta=%d", n.dual, delta)
		}
		for _, e := range n.boundary {
			left, _ := m.g.Endpoints(e)
			if m.vertexOwner[left] == NodeID(id) {
				m.leftGrown[e] += signed
			} else {
				m.rightGrown[e] += signed
			}
		}
	}
}

// ComputeMaximumUpdateLength returns the largest delta>=0 such that Grow(delta)
// violates no invariant, and — only when that delta is 0 — the non-empty,
// deterministically ordered list of obstacles blocking further growth
// (spec.md §4.2).
func (m *Module) ComputeMaximumUpdateLength() (weight.Weight, []Obstacle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	minDelta := weight.Max
	anyActive := false

	for id := range m.nodes {
		n := &m.nodes[id]
		if !n.alive || n.parent != NoNode || n.state != Shrink {
			continue
		}
		anyActive = true
		if n.dual < minDelta {
			minDelta = n.dual
		}
	}

	e := len(m.edgeWeight)
	rates := make([]int8, e)
	for edge := 0; edge < e; edge++ {
		left, right := m.g.Endpoints(edge)
		ownerL, hasL := m.vertexOwner[left], m.vertexOwner[left] != NoNode
		ownerR, hasR := m.vertexOwner[right], m.vertexOwner[right] != NoNode
		if hasL && hasR && ownerL == ownerR {
			continue // internal edge of a blossom, spec.md §3 invariant 2 exception
		}
		var coeffL, coeffR weight.Weight
		if hasL {
			coeffL = m.nodes[ownerL].state.coefficient()
		}
		if hasR {
			coeffR = m.nodes[ownerR].state.coefficient()
		}
		rate := coeffL + coeffR
		if rate <= 0 {
			continue
		}
		anyActive = true
		slack := m.edgeWeight[edge] - (m.leftGrown[edge] + m.rightGrown[edge])
		if slack < 0 {
			fatal.Invariantf("dual: negative slack", edge, "slack=%d", slack)
		}
		if slack%rate != 0 {
			fatal.Invariantf("dual: non-exact obstacle distance", edge, "slack=%d rate=%d", slack, rate)
		}
		rates[edge] = int8(rate)
		candidate := slack / rate
		if candidate < minDelta {
			minDelta = candidate
		}
	}

	if !anyActive {
		return weight.Max, nil
	}
	if minDelta > 0 {
		return minDelta, nil
	}

	var obstacles []Obstacle
	for id := range m.nodes {
		n := &m.nodes[id]
		if n.alive && n.parent == NoNode && n.state == Shrink && n.dual == 0 {
			obstacles = append(obstacles, Obstacle{Kind: BlossomNeedExpand, Owner: NodeID(id)})
		}
	}
	for edge := 0; edge < e; edge++ {
		if rates[edge] == 0 {
			continue
		}
		left, right := m.g.Endpoints(edge)
		slack := m.edgeWeight[edge] - (m.leftGrown[edge] + m.rightGrown[edge])
		if slack != 0 {
			continue
		}
		ownerL, ownerR := m.vertexOwner[left], m.vertexOwner[right]
		switch {
		case m.g.IsVirtual(left):
			obstacles = append(obstacles, Obstacle{Kind: VirtualConflict, Edge: edge, Owner: ownerR, Virtual: left})
		case m.g.IsVirtual(right):
			obstacles = append(obstacles, Obstacle{Kind: VirtualConflict, Edge: edge, Owner: ownerL, Virtual: right})
		default:
			obstacles = append(obstacles, Obstacle{Kind: EdgeConflict, Edge: edge, LeftOwner: ownerL, RightOwner: ownerR})
		}
	}

	sort.Slice(obstacles, func(i, j int) bool { return obstacles[i].less(obstacles[j]) })
	return 0, obstacles
}

// CreateBlossom shrinks an odd cycle of outermost dual nodes into a single
// new Blossom node (spec.md §4.2). children and cycleEdges must describe a
// valid odd-length cycle: cycleEdges[i] connects children[i] and
// children[(i+1)%len(children)]. The new node starts with dual_variable 0
// and grow_state Stay; callers set grow_state afterward.
func (m *Module) CreateBlossom(children []NodeID, cycleEdges []int) NodeID {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(children)%2 != 1 || len(children) < 3 || len(children) != len(cycleEdges) {
		fatal.Invariantf("dual: malformed blossom cycle", len(children), "children=%d edges=%d", len(children), len(cycleEdges))
	}

	var members []int
	seen := make(map[int]bool)
	for _, c := range children {
		members = append(members, m.nodes[c].members...)
	}

	id := m.alloc(node{
		kind:       Blossom,
		vertex:     -1,
		children:   append([]NodeID(nil), children...),
		cycleEdges: append([]int(nil), cycleEdges...),
		members:    members,
		parent:     NoNode,
		state:      Stay,
	})

	for _, v := range members {
		m.vertexOwner[v] = id
	}
	for _, c := range children {
		m.nodes[c].parent = id
	}

	var boundary []int
	for _, c := range children {
		for _, e := range m.nodes[c].boundary {
			if seen[e] {
				continue
			}
			seen[e] = true
			left, right := m.g.Endpoints(e)
			if m.vertexOwner[left] == id && m.vertexOwner[right] == id {
				continue // both endpoints absorbed: now internal
			}
			boundary = append(boundary, e)
		}
	}
	m.nodes[id].boundary = boundary

	return id
}

// ExpandBlossom reverses a blossom, restoring its children as outermost
// (spec.md §4.2). Returns the children in cycle order and the interleaving
// edge indices, so the primal module can re-insert the odd-cycle structure
// into the alternating tree.
func (m *Module) ExpandBlossom(id NodeID) (children []NodeID, cycleEdges []int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.at(id)
	if n.kind != Blossom {
		fatal.Invariantf("dual: expand of non-blossom node", int(id), "kind=%d", n.kind)
	}
	children = append([]NodeID(nil), n.children...)
	cycleEdges = append([]int(nil), n.cycleEdges...)

	for _, c := range children {
		m.nodes[c].parent = NoNode
		for _, v := range m.nodes[c].members {
			m.vertexOwner[v] = c
		}
	}

	n.alive = false
	m.freeIDs = append(m.freeIDs, int(id))

	return children, cycleEdges
}
