package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// Render lays out dot with Graphviz and draws it in format, which must be
// svg, png or jpg.
func Render(ctx context.Context, dot []byte, format Format) ([]byte, error) {
	gvFormat, ok := format.graphviz()
	if !ok {
		return nil, fmt.Errorf("graphviz cannot render %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

// RenderSVG renders a DOT document to SVG.
// The result can be converted further with [ToPDF] or [ToPNG].
func RenderSVG(ctx context.Context, dot []byte) ([]byte, error) {
	return Render(ctx, dot, FormatSVG)
}

// RenderPNG renders a DOT document to PNG with Graphviz's raster backend.
func RenderPNG(ctx context.Context, dot []byte) ([]byte, error) {
	return Render(ctx, dot, FormatPNG)
}

// RenderJPG renders a DOT document to JPEG.
func RenderJPG(ctx context.Context, dot []byte) ([]byte, error) {
	return Render(ctx, dot, FormatJPG)
}

// RenderPDF renders a DOT document as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot []byte) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return ToPDF(ctx, svg)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales from a
// zero origin with pixel width and height matching the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
