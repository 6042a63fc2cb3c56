package pipeline

import (
	"bytes"
	"context"
	"fmt"

	errs "github.com/matzehuels/trieviz/pkg/errors"
	"github.com/matzehuels/trieviz/pkg/graph"
	"github.com/matzehuels/trieviz/pkg/render"
)

func canonicalFormat(format string) (string, error) {
	f, err := render.ParseFormat(format)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidFormat, err, "invalid format %q", format)
	}
	return string(f), nil
}

// RenderDOT produces one artifact from DOT text without caching.
//
//   - dot: the text itself
//   - json: the graph re-parsed from the text, as JSON
//   - svg, png, jpg: Graphviz
//   - pdf: Graphviz SVG converted by rsvg-convert
func RenderDOT(ctx context.Context, dot []byte, format string) ([]byte, error) {
	f, err := render.ParseFormat(format)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "invalid format %q", format)
	}

	switch f {
	case render.FormatDOT:
		return bytes.Clone(dot), nil
	case render.FormatJSON:
		g, err := graph.ParseDOT(bytes.NewReader(dot))
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse DOT")
		}
		var buf bytes.Buffer
		if err := g.WriteJSON(&buf); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return buf.Bytes(), nil
	case render.FormatPDF:
		data, err := render.RenderPDF(ctx, dot)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeConversion, err, "render pdf")
		}
		return data, nil
	default:
		data, err := render.Render(ctx, dot, f)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeConversion, err, "render %s", f)
		}
		return data, nil
	}
}
