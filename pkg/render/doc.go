// Package render turns DOT text into images and documents.
//
// # Graphviz
//
// [RenderSVG], [RenderPNG] and [RenderJPG] lay out and draw a DOT document
// in-process with Graphviz compiled to WebAssembly
// ([github.com/goccy/go-graphviz]); no system Graphviz install is needed.
//
//	svg, err := render.RenderSVG(ctx, g.DOT())
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG to other formats with the external
// rsvg-convert tool (from librsvg). PDF output always goes through this path.
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// # Converters
//
// File-to-file conversion goes through the [Converter] interface. A failed
// conversion returns a [*ConversionError] naming the tool, both paths and
// the tool's stderr. [ForPaths] picks an implementation from the file
// extensions:
//
//   - [GraphvizConverter]: .dot/.gv to .svg, .png or .jpg
//   - [RSVG]: .svg to .pdf or .png
//   - [Pandoc]: .md to .html with a header file
package render
