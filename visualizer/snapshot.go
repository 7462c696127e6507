// Package visualizer implements the snapshot sink (spec.md §6, C8): a
// newline-delimited JSON document capturing a graph/dual/primal module's
// state at named points during a solve, in the exact field-name shape an
// external browser-based viewer expects (field names are not ours to
// rename — they are a wire contract with that viewer).
//
// Grounded on github.com/katalvlaran/lvlath's core/api.go, whose
// Stats()-style methods build a read-only snapshot struct from a Graph's
// current state the same way Build does here.
package visualizer

import (
	"encoding/json"

	"github.com/qecsim/fusionmatch/dual"
	"github.com/qecsim/fusionmatch/graph"
	"github.com/qecsim/fusionmatch/primal"
	"github.com/qecsim/fusionmatch/weight"
)

// VertexSnapshot is one `vertices` entry (spec.md §6).
type VertexSnapshot struct {
	S  bool `json:"s"`
	V  bool `json:"v"`
	P  *int `json:"p,omitempty"`
	MI *int `json:"mi,omitempty"`
	ME *int `json:"me,omitempty"`
}

// EdgeSnapshot is one `edges` entry.
type EdgeSnapshot struct {
	L    int          `json:"l"`
	R    int          `json:"r"`
	W    weight.Weight `json:"w"`
	LG   weight.Weight `json:"lg"`
	RG   weight.Weight `json:"rg"`
	LD   *int         `json:"ld,omitempty"`
	RD   *int         `json:"rd,omitempty"`
}

// DualNodeSnapshot is one `dual_nodes` entry.
type DualNodeSnapshot struct {
	D weight.Weight `json:"d"`
	P *int          `json:"p,omitempty"`
	O []int         `json:"o,omitempty"`
	B []int         `json:"b"`
	S *int          `json:"s,omitempty"`
}

type primalTree struct {
	D int  `json:"d"`
	P *int `json:"p,omitempty"`
}

type primalMatch struct {
	P *int `json:"p,omitempty"`
	V *int `json:"v,omitempty"`
}

// PrimalNodeSnapshot is one `primal_nodes` entry.
type PrimalNodeSnapshot struct {
	T primalTree  `json:"t"`
	M primalMatch `json:"m"`
	O []int       `json:"o,omitempty"`
}

// Snapshot is one named state capture (spec.md §6).
type Snapshot struct {
	Vertices    []VertexSnapshot     `json:"vertices"`
	Edges       []EdgeSnapshot       `json:"edges"`
	DualNodes   []DualNodeSnapshot   `json:"dual_nodes"`
	PrimalNodes []PrimalNodeSnapshot `json:"primal_nodes"`
	Subgraph    []int                `json:"subgraph,omitempty"`
}

func intPtr(v int) *int { return &v }

func nodePtr(id dual.NodeID) *int {
	if id == dual.NoNode {
		return nil
	}
	return intPtr(int(id))
}

// Build captures g/dm/pm's current state. terminal selects whether the
// `subgraph` field is populated (spec.md §6: "present only in terminal
// snapshots") — pm must have completed Run() when terminal is true.
func Build(g *graph.Graph, dm *dual.Module, pm *primal.Module, terminal bool) (Snapshot, error) {
	var snap Snapshot

	for v := 0; v < g.VertexNum(); v++ {
		vs := VertexSnapshot{S: g.Defect(v), V: g.IsVirtual(v)}
		if owner, ok := dm.VertexOwner(v); ok && dm.IsOutermost(owner) {
			vs.P = intPtr(int(owner))
		}
		snap.Vertices = append(snap.Vertices, vs)
	}

	for e := 0; e < g.EdgeNum(); e++ {
		l, r := g.Endpoints(e)
		lg, rg := dm.EdgeGrowth(e)
		es := EdgeSnapshot{L: l, R: r, W: g.Weight(e), LG: lg, RG: rg}
		if owner, ok := dm.VertexOwner(l); ok {
			es.LD = intPtr(int(owner))
		}
		if owner, ok := dm.VertexOwner(r); ok {
			es.RD = intPtr(int(owner))
		}
		snap.Edges = append(snap.Edges, es)
	}

	for id := 0; id < dm.MaxNodeID(); id++ {
		nid := dual.NodeID(id)
		if !dm.Alive(nid) {
			continue
		}
		dns := DualNodeSnapshot{D: dm.DualVariable(nid), B: dm.Boundary(nid)}
		if p := dm.Parent(nid); p != dual.NoNode {
			dns.P = nodePtr(p)
		}
		if dm.Kind(nid) == dual.Blossom {
			children, _ := dm.Children(nid)
			for _, c := range children {
				dns.O = append(dns.O, int(c))
			}
		} else {
			dns.S = intPtr(dm.Vertex(nid))
		}
		snap.DualNodes = append(snap.DualNodes, dns)

		if int(nid) < pm.NumRecords() {
			ns := pm.Snapshot(nid)
			pns := PrimalNodeSnapshot{T: primalTree{D: ns.Depth, P: nodePtr(ns.Parent)}}
			if ns.Matched {
				if ns.PeerIsVirtual {
					pns.M.V = intPtr(ns.Virtual)
				} else {
					pns.M.P = nodePtr(ns.PeerNode)
				}
			}
			for _, c := range ns.Children {
				pns.O = append(pns.O, int(c))
			}
			snap.PrimalNodes = append(snap.PrimalNodes, pns)
		}
	}

	if terminal {
		sub, err := pm.Subgraph()
		if err != nil {
			return Snapshot{}, err
		}
		snap.Subgraph = sub
	}

	return snap, nil
}

// Position is one vertex's drawing coordinate (spec.md §6 `positions`).
type Position struct {
	I, J, T float64
}

// MarshalJSON encodes Position as {"i":...,"j":...,"t":...}.
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		I float64 `json:"i"`
		J float64 `json:"j"`
		T float64 `json:"t"`
	}{p.I, p.J, p.T})
}

// NamedSnapshot pairs a label with its Snapshot, encoding as the two-
// element array `[name, snapshot]` spec.md §6 requires.
type NamedSnapshot struct {
	Name     string
	Snapshot Snapshot
}

// MarshalJSON encodes NamedSnapshot as ["name", {...}].
func (n NamedSnapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{n.Name, n.Snapshot})
}

// Document is the top-level snapshot file (spec.md §6).
type Document struct {
	Format    string          `json:"format"`
	Positions []Position      `json:"positions"`
	Snapshots []NamedSnapshot `json:"snapshots"`
}
