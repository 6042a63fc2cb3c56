// Package trie builds multi-pattern prefix trees from keyword sets.
//
// # Overview
//
// A [Trie] merges a set of keywords into a shared prefix tree. Each edge is
// labeled with one character (a rune) and each path from the root spells a
// prefix of one or more inserted keywords. Nodes where a keyword ends are
// marked as keyword terminators.
//
// # Storage
//
// Nodes live in an arena: a flat slice addressed by [NodeID]. The root is
// always [Root] (index 0) and nodes are never removed, so handles stay valid
// for the lifetime of the trie. Each node keeps its children in the order
// they were first created; that order is observable through [Trie.Children]
// and drives edge order when the trie is exported as a graph.
//
// # Usage
//
//	t := trie.FromKeywords([]string{"arts", "star", "tsar", "tars", "start"})
//	for r, child := range t.Children(trie.Root) {
//	    fmt.Println(string(r), t.Prefix(child))
//	}
//
// A Trie is not safe for concurrent mutation. Once all keywords are inserted
// it may be read from multiple goroutines.
package trie
