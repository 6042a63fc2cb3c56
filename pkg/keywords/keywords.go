// Package keywords loads and normalizes keyword sets for trie construction.
//
// Keyword order is preserved everywhere: it decides the order in which the
// trie creates children and therefore the order of the exported graph.
package keywords

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for keyword files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported keyword file format")

// Format identifies a keyword file encoding.
type Format string

// Supported keyword file formats.
const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Default returns the reference keyword set.
func Default() []string {
	return []string{"arts", "star", "tsar", "tars", "start"}
}

// FormatFromPath infers the format from a file extension. Files without an
// extension are read as text.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".txt", ".list":
		return FormatText, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads a keyword file, choosing the decoder by extension.
func Load(path string) ([]string, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	kws, err := Parse(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return kws, nil
}

// Parse decodes keywords from r.
//
// Text input holds one keyword per line; surrounding whitespace is trimmed
// and blank lines and lines starting with '#' are skipped. JSON and YAML
// accept either a bare list or an object with a "keywords" list. TOML needs
// a top-level "keywords" array.
func Parse(r io.Reader, format Format) ([]string, error) {
	switch format {
	case FormatText:
		return parseText(r)
	case FormatJSON:
		return parseJSON(r)
	case FormatYAML:
		return parseYAML(r)
	case FormatTOML:
		return parseTOML(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// ParseList splits a comma-separated flag value. Empty items are dropped.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseText(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

type document struct {
	Keywords []string `json:"keywords" yaml:"keywords" toml:"keywords"`
}

func parseJSON(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return list, nil
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return doc.Keywords, nil
}

func parseYAML(r io.Reader) ([]string, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	if root.Kind == yaml.SequenceNode {
		var list []string
		if err := root.Decode(&list); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return list, nil
	}
	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return doc.Keywords, nil
}

func parseTOML(r io.Reader) ([]string, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	return doc.Keywords, nil
}
