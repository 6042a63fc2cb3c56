// Package pkg provides the libraries behind trieviz, which turns keyword
// sets into prefix-tree diagrams.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Core - [trie] (the prefix tree), [graph] (the digraph model and its
//     DOT serializer) and [export] (the traversal that turns one into the
//     other)
//  2. Infrastructure - [cache], [config], [keywords], [observability],
//     [errors] and [buildinfo]
//  3. Orchestration - [pipeline] (build → render) and [server] (HTTP API),
//     with [render] wrapping Graphviz, rsvg-convert and pandoc
//
// # Architecture
//
// The typical data flow through trieviz:
//
//	Keyword list or file
//	         ↓
//	    [keywords] package (load, normalize)
//	         ↓
//	    [trie] package (insert into the prefix tree)
//	         ↓
//	    [export] package (traverse, one node per prefix)
//	         ↓
//	    [graph] package (DOT text)
//	         ↓
//	    [render] package (SVG/PNG/JPG/PDF)
//
// # Quick Start
//
//	t := trie.FromKeywords([]string{"arts", "star", "tsar", "tars", "start"})
//	g := export.FromTrie(t, export.Options{})
//	fmt.Println(g)
//
// Or, with caching and rendering:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Keywords: []string{"cat", "car"},
//	    Formats:  []string{"dot", "svg"},
//	})
package pkg
