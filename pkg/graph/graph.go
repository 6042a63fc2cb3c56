package graph

import "slices"

// Node is a graph vertex with its pre-formatted attributes.
type Node struct {
	ID    string   `json:"id"`
	Attrs []string `json:"attrs,omitempty"`
}

// Edge is a directed connection between two node identifiers.
type Edge struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Attrs []string `json:"attrs,omitempty"`
}

// Graph is an append-only accumulator of nodes and edges.
//
// The zero value is an empty graph ready to use.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes []Node
	edges []Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// AddNode appends a node record. Duplicate identifiers are kept.
func (g *Graph) AddNode(id string, attrs ...string) {
	g.nodes = append(g.nodes, Node{ID: id, Attrs: slices.Clone(attrs)})
}

// AddEdge appends an edge record. The endpoints need not have been added
// with AddNode.
func (g *Graph) AddEdge(from, to string, attrs ...string) {
	g.edges = append(g.edges, Edge{From: from, To: to, Attrs: slices.Clone(attrs)})
}

// Nodes returns the node records in insertion order.
// The returned slice must not be modified.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the edge records in insertion order.
// The returned slice must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// NodeCount returns the number of node records.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edge records.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Equal reports whether g and o hold the same records in the same order.
func (g *Graph) Equal(o *Graph) bool {
	return slices.EqualFunc(g.nodes, o.nodes, func(a, b Node) bool {
		return a.ID == b.ID && slices.Equal(a.Attrs, b.Attrs)
	}) && slices.EqualFunc(g.edges, o.edges, func(a, b Edge) bool {
		return a.From == b.From && a.To == b.To && slices.Equal(a.Attrs, b.Attrs)
	})
}
