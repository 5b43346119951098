package graph

import (
	"errors"

	"github.com/agenthands/pulse/internal/core/model"
)

// ErrNotFound is returned when a node id is not in the graph. Callers
// doing optional lookups (visualization, viewed-post resolution) treat it
// as an empty result rather than a failure.
var ErrNotFound = errors.New("node not found")

type Kind string

const (
	KindUser Kind = "user"
	KindPost Kind = "post"
)

// Relation tags a directed edge. Created and viewed are the relations the
// ranking engine cares about; user-to-user connections pass through with
// their own tags.
type Relation string

const (
	RelationCreated Relation = "created"
	RelationViewed  Relation = "viewed"
)

type Node struct {
	ID    string           `json:"id"`
	Kind  Kind             `json:"kind"`
	Attrs model.Attributes `json:"attributes"`
}

type Edge struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Relation Relation `json:"relation"`
}

// Graph is the in-memory social graph: insertion-ordered nodes plus a
// flat list of directed typed edges. Construction and ranking are
// separate phases; once a snapshot is handed to the ranking engine the
// graph is treated as read-only, so unlimited concurrent reads are safe.
type Graph struct {
	order []string
	nodes map[string]*Node
	edges []Edge
}

func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode inserts a node or updates an existing one. Re-insertion is an
// intentional update: the attribute bag is replaced, the original
// insertion position is kept (downstream tie-breaking depends on stable
// order), and the kind of an existing node never changes.
func (g *Graph) AddNode(id string, kind Kind, attrs model.Attributes) {
	if n, ok := g.nodes[id]; ok {
		n.Attrs = attrs
		return
	}
	g.nodes[id] = &Node{ID: id, Kind: kind, Attrs: attrs}
	g.order = append(g.order, id)
}

// AddEdge appends a directed edge. Endpoints need not exist yet; the
// dataset is assembled incrementally and dangling references are allowed.
// No dedup: repeat views are repeat edges.
func (g *Graph) AddEdge(source, target string, relation Relation) {
	g.edges = append(g.edges, Edge{Source: source, Target: target, Relation: relation})
}

// NodeIDs returns all node ids in insertion order.
func (g *Graph) NodeIDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return n, nil
}

// AttributesOf returns a copy of a node's attribute bag.
func (g *Graph) AttributesOf(id string) (model.Attributes, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return n.Attrs.Clone(), nil
}

// Edges returns every edge in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// EdgesFrom returns the edges leaving a node, in insertion order.
func (g *Graph) EdgesFrom(id string) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}

// Len is the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// Candidates collects the (id, attributes) pairs of every node of the
// given kind, in insertion order. This is the entry point of the
// filter → score → select pipeline.
func (g *Graph) Candidates(kind Kind) []model.Candidate {
	var out []model.Candidate
	for _, id := range g.order {
		n := g.nodes[id]
		if n.Kind == kind {
			out = append(out, model.Candidate{ID: id, Attrs: n.Attrs})
		}
	}
	return out
}
