package render

import (
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// Format is an output format of the pipeline.
type Format string

// Supported output formats.
const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJPG  Format = "jpg"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatDOT, FormatJSON, FormatSVG, FormatPNG, FormatJPG, FormatPDF}

// ParseFormat parses a format name. "jpeg" and "gv" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatDOT, FormatJSON, FormatSVG, FormatPNG, FormatJPG, FormatPDF:
		return f, nil
	case "gv":
		return FormatDOT, nil
	case "jpeg":
		return FormatJPG, nil
	}
	return "", fmt.Errorf("unknown format %q (must be one of dot, json, svg, png, jpg, pdf)", s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ContentType returns the MIME type used when serving f over HTTP.
func (f Format) ContentType() string {
	switch f {
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJPG:
		return "image/jpeg"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Binary reports whether f is rendered by an external engine rather than
// serialized from the graph model.
func (f Format) Binary() bool {
	switch f {
	case FormatSVG, FormatPNG, FormatJPG, FormatPDF:
		return true
	}
	return false
}

func (f Format) graphviz() (graphviz.Format, bool) {
	switch f {
	case FormatSVG:
		return graphviz.SVG, true
	case FormatPNG:
		return graphviz.PNG, true
	case FormatJPG:
		return graphviz.JPG, true
	}
	return "", false
}
