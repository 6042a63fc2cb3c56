package trie

import (
	"iter"
	"strings"
)

// NodeID is a stable handle to a node in a [Trie].
type NodeID int

// Root is the handle of the root node of every trie.
const Root NodeID = 0

// RootLabel is the display label of the root node, whose prefix is empty.
const RootLabel = "root"

type edge struct {
	char  rune
	child NodeID
}

type node struct {
	prefix   string
	keyword  bool
	children []edge          // creation order
	index    map[rune]NodeID // char -> child
}

// Trie is a prefix tree over runes backed by a node arena.
//
// The zero value is not usable - use [New] or [FromKeywords].
type Trie struct {
	nodes []node
}

// New creates a trie containing only the root node.
func New() *Trie {
	return &Trie{nodes: []node{{}}}
}

// FromKeywords creates a trie and inserts keywords in slice order.
func FromKeywords(keywords []string) *Trie {
	t := New()
	t.InsertAll(keywords...)
	return t
}

// Insert adds keyword to the trie, creating nodes for characters not yet seen
// at their position. The node where keyword ends is marked as a keyword
// terminator; the empty keyword marks the root.
//
// Insert is idempotent and never fails.
func (t *Trie) Insert(keyword string) {
	cur := Root
	for _, r := range keyword {
		next, ok := t.nodes[cur].index[r]
		if !ok {
			next = t.addChild(cur, r)
		}
		cur = next
	}
	t.nodes[cur].keyword = true
}

// InsertAll inserts each keyword in order.
func (t *Trie) InsertAll(keywords ...string) {
	for _, kw := range keywords {
		t.Insert(kw)
	}
}

func (t *Trie) addChild(parent NodeID, r rune) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{prefix: t.nodes[parent].prefix + string(r)})

	p := &t.nodes[parent]
	if p.index == nil {
		p.index = make(map[rune]NodeID)
	}
	p.index[r] = id
	p.children = append(p.children, edge{char: r, child: id})
	return id
}

// Len returns the number of nodes, including the root.
func (t *Trie) Len() int { return len(t.nodes) }

// Prefix returns the characters on the path from the root to id.
func (t *Trie) Prefix(id NodeID) string { return t.nodes[id].prefix }

// IsKeyword reports whether an inserted keyword ends at id.
func (t *Trie) IsKeyword(id NodeID) bool { return t.nodes[id].keyword }

// Label returns the prefix of id, or [RootLabel] when the prefix is empty.
func (t *Trie) Label(id NodeID) string {
	if p := t.nodes[id].prefix; p != "" {
		return p
	}
	return RootLabel
}

// NumChildren returns the number of direct children of id.
func (t *Trie) NumChildren(id NodeID) int { return len(t.nodes[id].children) }

// Children yields the (character, child) pairs of id in the order the
// children were first created.
func (t *Trie) Children(id NodeID) iter.Seq2[rune, NodeID] {
	return func(yield func(rune, NodeID) bool) {
		for _, e := range t.nodes[id].children {
			if !yield(e.char, e.child) {
				return
			}
		}
	}
}

// Child returns the child of id reached over r.
func (t *Trie) Child(id NodeID, r rune) (NodeID, bool) {
	c, ok := t.nodes[id].index[r]
	return c, ok
}

// Find follows prefix from the root and returns the node it ends at.
// It reports false if no inserted keyword starts with prefix.
func (t *Trie) Find(prefix string) (NodeID, bool) {
	cur := Root
	for _, r := range prefix {
		next, ok := t.nodes[cur].index[r]
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

// Walk visits every node in pre-order, children in creation order. Returning
// false from fn skips the subtree below the visited node.
func (t *Trie) Walk(fn func(id NodeID, depth int) bool) {
	t.walk(Root, 0, fn)
}

func (t *Trie) walk(id NodeID, depth int, fn func(NodeID, int) bool) {
	if !fn(id, depth) {
		return
	}
	for _, e := range t.nodes[id].children {
		t.walk(e.child, depth+1, fn)
	}
}

// Keywords returns every inserted keyword once, in pre-order.
func (t *Trie) Keywords() []string {
	var out []string
	t.Walk(func(id NodeID, _ int) bool {
		if t.nodes[id].keyword {
			out = append(out, t.nodes[id].prefix)
		}
		return true
	})
	return out
}

// KeywordsUnder returns the keywords that start with prefix, in pre-order.
func (t *Trie) KeywordsUnder(prefix string) []string {
	start, ok := t.Find(prefix)
	if !ok {
		return nil
	}
	var out []string
	t.walk(start, 0, func(id NodeID, _ int) bool {
		if t.nodes[id].keyword {
			out = append(out, t.nodes[id].prefix)
		}
		return true
	})
	return out
}

// String renders the trie as an indented outline, one node per line:
//
//	Trie(root)
//	  Trie(a)
//	    Trie(ab)
func (t *Trie) String() string {
	var b strings.Builder
	t.Walk(func(id NodeID, depth int) bool {
		if id != Root {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString("Trie(")
		b.WriteString(t.Label(id))
		b.WriteString(")")
		return true
	})
	return b.String()
}
