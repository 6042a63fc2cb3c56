package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedDOT is returned by [ParseDOT] when the input does not follow
// the format produced by [Graph.WriteDOT].
var ErrMalformedDOT = errors.New("malformed DOT")

const maxLineSize = 16 << 20

// ParseDOT reads DOT text in the shape produced by [Graph.WriteDOT] and
// returns the node and edge records in the order they appear.
//
// Identifiers and attributes are returned as written, so quoted identifiers
// keep their quotes; use [Unquote] to recover the raw value. Attribute lists
// are split on single spaces outside double quotes, the inverse of the
// writer's join, so empty attributes survive. The one exception is a list
// holding a single empty attribute: it is written as [] and read back as no
// attributes. Graph attribute statements such as rankdir=LR; are skipped.
// Every bracketed statement is a record, including one whose identifier is
// a DOT keyword like node, since the model writes identifiers verbatim.
func ParseDOT(r io.Reader) (*Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	g := New()
	lineNo := 0
	opened, closed := false, false

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if closed {
			return nil, fmt.Errorf("%w: line %d: content after closing brace", ErrMalformedDOT, lineNo)
		}
		if !opened {
			if !strings.HasPrefix(line, "digraph") || !strings.HasSuffix(line, "{") {
				return nil, fmt.Errorf("%w: line %d: expected digraph header, got %q", ErrMalformedDOT, lineNo, line)
			}
			opened = true
			continue
		}
		if line == "}" {
			closed = true
			continue
		}
		if err := parseStatement(g, line); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedDOT, lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read DOT: %w", err)
	}
	if !opened {
		return nil, fmt.Errorf("%w: missing digraph header", ErrMalformedDOT)
	}
	if !closed {
		return nil, fmt.Errorf("%w: missing closing brace", ErrMalformedDOT)
	}
	return g, nil
}

func parseStatement(g *Graph, line string) error {
	if !strings.Contains(line, "[") && strings.Contains(line, "=") && strings.HasSuffix(line, ";") {
		return nil // graph attribute
	}

	from, rest, err := scanID(line)
	if err != nil {
		return err
	}
	rest = strings.TrimLeft(rest, " \t")

	to, isEdge := "", false
	if strings.HasPrefix(rest, "->") {
		isEdge = true
		to, rest, err = scanID(strings.TrimLeft(rest[2:], " \t"))
		if err != nil {
			return err
		}
		rest = strings.TrimLeft(rest, " \t")
	}

	attrs, rest, err := scanAttrs(rest)
	if err != nil {
		return err
	}
	if rest != ";" {
		return fmt.Errorf("expected ';' after attributes, got %q", rest)
	}

	if isEdge {
		g.AddEdge(from, to, attrs...)
	} else {
		g.AddNode(from, attrs...)
	}
	return nil
}

// scanID reads one identifier token from the start of s.
func scanID(s string) (id, rest string, err error) {
	if s == "" {
		return "", "", errors.New("missing identifier")
	}
	if s[0] == '"' {
		end, err := closingQuote(s)
		if err != nil {
			return "", "", err
		}
		return s[:end+1], s[end+1:], nil
	}
	end := strings.IndexAny(s, " \t[;")
	if end == 0 {
		return "", "", fmt.Errorf("missing identifier before %q", s)
	}
	if end < 0 {
		return s, "", nil
	}
	return s[:end], s[end:], nil
}

// closingQuote returns the index of the quote that closes the string
// starting at s[0].
func closingQuote(s string) (int, error) {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i, nil
		}
	}
	return 0, errors.New("unterminated quoted string")
}

// scanAttrs reads a bracketed attribute list and splits it on single
// spaces outside quotes.
func scanAttrs(s string) (attrs []string, rest string, err error) {
	if !strings.HasPrefix(s, "[") {
		return nil, "", fmt.Errorf("expected '[', got %q", s)
	}
	if strings.HasPrefix(s, "[]") {
		return nil, strings.TrimSpace(s[2:]), nil
	}

	var cur strings.Builder
	for i := 1; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			end, err := closingQuote(s[i:])
			if err != nil {
				return nil, "", err
			}
			cur.WriteString(s[i : i+end+1])
			i += end
		case ' ':
			attrs = append(attrs, cur.String())
			cur.Reset()
		case ']':
			attrs = append(attrs, cur.String())
			return attrs, strings.TrimSpace(s[i+1:]), nil
		default:
			cur.WriteByte(c)
		}
	}
	return nil, "", errors.New("unterminated attribute list")
}

// Unquote strips the surrounding quotes from a quoted identifier or
// attribute value and reverses the escaping applied by [ID] and [Attr].
// Unquoted input is returned unchanged.
func Unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return unescape(s[1 : len(s)-1])
	}
	return s
}

// AttrValue returns the unescaped value of the first key="value" attribute
// in attrs with the given key.
func AttrValue(attrs []string, key string) (string, bool) {
	for _, a := range attrs {
		k, v, ok := strings.Cut(a, "=")
		if ok && k == key {
			return Unquote(v), true
		}
	}
	return "", false
}
