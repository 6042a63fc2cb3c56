// Package graph provides an append-only directed graph model and its
// textual DOT serialization.
//
// # Model
//
// A [Graph] accumulates nodes and edges in insertion order. Each record
// carries free-form attribute strings that the caller formats in advance
// (typically with [Attr]). The model performs no deduplication and no
// validation: duplicate node IDs produce duplicate lines, and edges may
// reference nodes that were never added. Problems like these surface in the
// tool that consumes the text, not here.
//
// # DOT Format
//
// [Graph.WriteDOT] emits:
//
//	digraph {
//	  rankdir=LR;
//	  root [id="root"];
//	  root -> a [label="a"];
//	}
//
// Nodes come first, then edges, both in insertion order. Identifiers and
// attributes are written verbatim; use [ID] and [Attr] to produce values
// that are valid DOT.
//
// # Round-trip
//
// [ParseDOT] reads text in exactly this shape back into a [Graph] with the
// same records in the same order. The JSON form ([Graph.MarshalJSON],
// [ReadJSON]) is used for caching and API responses.
package graph
