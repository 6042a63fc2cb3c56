// Package export converts a built trie into a graph description.
//
// Every trie node becomes one graph node whose identifier is the node's
// prefix (the literal "root" for the root) and every parent-child link
// becomes one directed edge labeled with its character. Identifiers that are
// not bare DOT identifiers are quoted, so any keyword set yields valid DOT.
//
// Two visit orders are supported. [OrderStack] pops nodes from a LIFO
// work-list: edges leaving one node follow the children's creation order, but
// nodes of different subtrees come out in reverse discovery order.
// [OrderPreorder] walks the trie recursively and emits nodes root-to-leaf.
//
// With [Options.ClassAttrs] every node also carries a class attribute that
// Graphviz copies into SVG output: "node" followed by one of node-root,
// node-leaf or node-interior, then node-keyword for keyword terminators and
// node-cursor for the node named by [Options.Cursor].
package export

import (
	"fmt"
	"strings"

	"github.com/matzehuels/trieviz/pkg/graph"
	"github.com/matzehuels/trieviz/pkg/trie"
)

// Order selects how trie nodes are visited during export.
type Order int

const (
	// OrderStack visits nodes with an explicit stack seeded with the root.
	OrderStack Order = iota
	// OrderPreorder visits nodes depth-first, parents before children,
	// children in creation order.
	OrderPreorder
)

// String returns the flag spelling of o.
func (o Order) String() string {
	switch o {
	case OrderStack:
		return "stack"
	case OrderPreorder:
		return "preorder"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder parses "stack" or "preorder" (case-insensitive). The empty
// string selects [OrderStack].
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stack":
		return OrderStack, nil
	case "preorder", "dfs":
		return OrderPreorder, nil
	}
	return 0, fmt.Errorf("unknown order %q (must be 'stack' or 'preorder')", s)
}

// Options configures [FromTrie].
type Options struct {
	Order Order

	// MarkKeywords adds peripheries=2 to nodes where a keyword ends.
	MarkKeywords bool

	// ClassAttrs adds a class="node ..." attribute to every node.
	ClassAttrs bool

	// Cursor is the prefix of a node to highlight with penwidth=2 (and the
	// node-cursor class). Empty, or a prefix absent from the trie, highlights
	// nothing.
	Cursor string
}

// FromTrie builds a graph with one node per trie node and one edge per
// parent-child link.
func FromTrie(t *trie.Trie, opts Options) *graph.Graph {
	e := exporter{t: t, g: graph.New(), opts: opts, cursor: -1}
	if opts.Cursor != "" {
		if id, ok := t.Find(opts.Cursor); ok {
			e.cursor = id
		}
	}
	if opts.Order == OrderPreorder {
		e.preorder(trie.Root)
	} else {
		e.stack()
	}
	return e.g
}

type exporter struct {
	t      *trie.Trie
	g      *graph.Graph
	opts   Options
	cursor trie.NodeID // -1 for none
}

func (e *exporter) stack() {
	work := []trie.NodeID{trie.Root}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]

		e.addNode(cur)
		for r, child := range e.t.Children(cur) {
			e.addEdge(cur, child, r)
			work = append(work, child)
		}
	}
}

func (e *exporter) preorder(id trie.NodeID) {
	e.addNode(id)
	for r, child := range e.t.Children(id) {
		e.addEdge(id, child, r)
		e.preorder(child)
	}
}

func (e *exporter) addNode(id trie.NodeID) {
	label := e.t.Label(id)
	attrs := []string{graph.Attr("id", label)}
	if e.opts.ClassAttrs {
		attrs = append(attrs, graph.Attr("class", strings.Join(Classes(e.t, id, id == e.cursor), " ")))
	}
	if e.opts.MarkKeywords && e.t.IsKeyword(id) {
		attrs = append(attrs, "peripheries=2")
	}
	if id == e.cursor {
		attrs = append(attrs, "penwidth=2")
	}
	e.g.AddNode(graph.ID(label), attrs...)
}

func (e *exporter) addEdge(from, to trie.NodeID, r rune) {
	e.g.AddEdge(graph.ID(e.t.Label(from)), graph.ID(e.t.Label(to)), graph.Attr("label", string(r)))
}

// Classes returns the style classes of node id: "node", its position in the
// tree (node-root, node-leaf or node-interior), then node-keyword and
// node-cursor when they apply.
func Classes(t *trie.Trie, id trie.NodeID, cursor bool) []string {
	classes := []string{"node"}
	switch {
	case id == trie.Root:
		classes = append(classes, "node-root")
	case t.NumChildren(id) == 0:
		classes = append(classes, "node-leaf")
	default:
		classes = append(classes, "node-interior")
	}
	if t.IsKeyword(id) {
		classes = append(classes, "node-keyword")
	}
	if cursor {
		classes = append(classes, "node-cursor")
	}
	return classes
}
