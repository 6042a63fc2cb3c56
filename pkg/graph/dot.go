package graph

import (
	"bytes"
	"io"
	"regexp"
	"strings"
)

const (
	dotHeader  = "digraph {"
	dotRankDir = "  rankdir=LR;"
	dotTrailer = "}"
)

// WriteDOT writes the graph as DOT text to w. The output ends without a
// trailing newline.
func (g *Graph) WriteDOT(w io.Writer) error {
	_, err := w.Write(g.dotBytes())
	return err
}

// DOT returns the graph as DOT text.
func (g *Graph) DOT() []byte { return g.dotBytes() }

// String returns the DOT text of the graph.
func (g *Graph) String() string { return string(g.dotBytes()) }

func (g *Graph) dotBytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(dotHeader)
	buf.WriteString("\n")
	buf.WriteString(dotRankDir)

	for _, n := range g.nodes {
		buf.WriteString("\n  ")
		buf.WriteString(n.ID)
		writeAttrs(&buf, n.Attrs)
	}
	for _, e := range g.edges {
		buf.WriteString("\n  ")
		buf.WriteString(e.From)
		buf.WriteString(" -> ")
		buf.WriteString(e.To)
		writeAttrs(&buf, e.Attrs)
	}

	buf.WriteString("\n")
	buf.WriteString(dotTrailer)
	return buf.Bytes()
}

func writeAttrs(buf *bytes.Buffer, attrs []string) {
	buf.WriteString(" [")
	buf.WriteString(strings.Join(attrs, " "))
	buf.WriteString("];")
}

// Attr formats a key="value" attribute, escaping the value for a DOT
// double-quoted string.
func Attr(key, value string) string {
	return key + `="` + escape(value) + `"`
}

var (
	plainIDRe = regexp.MustCompile(`^[A-Za-z_\x{80}-\x{10FFFF}][A-Za-z0-9_\x{80}-\x{10FFFF}]*$`)
	numeralRe = regexp.MustCompile(`^-?(\.[0-9]+|[0-9]+(\.[0-9]*)?)$`)
)

var dotKeywords = map[string]bool{
	"node": true, "edge": true, "graph": true,
	"digraph": true, "subgraph": true, "strict": true,
}

// ID returns s unchanged when it is a bare DOT identifier or numeral, and a
// double-quoted escaped string otherwise. DOT keywords are always quoted.
func ID(s string) string {
	if (plainIDRe.MatchString(s) || numeralRe.MatchString(s)) && !dotKeywords[strings.ToLower(s)] {
		return s
	}
	return `"` + escape(s) + `"`
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)

var unescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\n`, "\n", `\r`, "\r")

func escape(s string) string { return escaper.Replace(s) }

func unescape(s string) string { return unescaper.Replace(s) }
