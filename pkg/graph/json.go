package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// document is the JSON wire form of a Graph.
type document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// MarshalJSON encodes the graph as {"nodes": [...], "edges": [...]}.
// Empty graphs encode both fields as empty arrays.
func (g *Graph) MarshalJSON() ([]byte, error) {
	doc := document{Nodes: g.nodes, Edges: g.edges}
	if doc.Nodes == nil {
		doc.Nodes = []Node{}
	}
	if doc.Edges == nil {
		doc.Edges = []Edge{}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON replaces the graph's records with the decoded ones.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	g.nodes = doc.Nodes
	g.edges = doc.Edges
	return nil
}

// WriteJSON writes the graph as indented JSON to w.
func (g *Graph) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}

// ReadJSON decodes a JSON graph from r.
func ReadJSON(r io.Reader) (*Graph, error) {
	g := New()
	if err := json.NewDecoder(r).Decode(g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

// WriteFile writes the graph to path as DOT, or as JSON when asJSON is set.
// The file is created with 0644 permissions.
func (g *Graph) WriteFile(path string, asJSON bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if asJSON {
		err = g.WriteJSON(f)
	} else {
		err = g.WriteDOT(f)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadFile reads a graph from path, as JSON when the name ends in .json and
// as DOT otherwise.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadJSON(f)
	}
	return ParseDOT(f)
}
