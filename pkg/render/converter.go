package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ConvertOptions tunes a file conversion.
type ConvertOptions struct {
	// Scale multiplies raster output resolution (rsvg-convert only).
	Scale float64

	// Args are extra arguments passed verbatim to external tools.
	Args []string
}

// Converter transforms the file at inputPath into outputPath.
// Failures are returned as *ConversionError.
type Converter interface {
	Convert(ctx context.Context, inputPath, outputPath string, opts ConvertOptions) error
}

// ConversionError describes a failed conversion.
type ConversionError struct {
	Tool   string
	Input  string
	Output string
	Stderr string
	Err    error
}

func (e *ConversionError) Error() string {
	var b strings.Builder
	b.WriteString(e.Tool)
	if e.Input != "" || e.Output != "" {
		fmt.Fprintf(&b, " %s -> %s", e.Input, e.Output)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		b.WriteString(": ")
		b.WriteString(s)
	}
	return b.String()
}

func (e *ConversionError) Unwrap() error { return e.Err }

// ErrNoConverter is returned by [ForPaths] when no converter handles the
// extension pair.
var ErrNoConverter = errors.New("no converter for file types")

// GraphvizConverter renders DOT files to the format named by the output
// extension.
type GraphvizConverter struct{}

// Convert implements Converter.
func (GraphvizConverter) Convert(ctx context.Context, inputPath, outputPath string, opts ConvertOptions) error {
	fail := func(err error) error {
		return &ConversionError{Tool: "graphviz", Input: inputPath, Output: outputPath, Err: err}
	}

	format, err := ParseFormat(strings.TrimPrefix(filepath.Ext(outputPath), "."))
	if err != nil {
		return fail(err)
	}
	dot, err := os.ReadFile(inputPath)
	if err != nil {
		return fail(err)
	}

	var data []byte
	if format == FormatPDF {
		data, err = RenderPDF(ctx, dot)
	} else {
		data, err = Render(ctx, dot, format)
	}
	if err != nil {
		var ce *ConversionError
		if errors.As(err, &ce) {
			ce.Input, ce.Output = inputPath, outputPath
			return ce
		}
		return fail(err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fail(err)
	}
	return nil
}

// CommandConverter runs an external tool. Args is a template in which
// "{in}" and "{out}" are replaced by the paths; ConvertOptions.Args are
// inserted before the first template argument.
type CommandConverter struct {
	Tool string
	Args []string
}

// RSVG converts SVG files to the PDF or PNG named by the output extension.
func RSVG() CommandConverter {
	return CommandConverter{Tool: rsvgTool, Args: []string{"{in}", "-o", "{out}"}}
}

// Pandoc converts documents to standalone HTML with headerPath inserted
// into the document head. An empty headerPath omits -H.
func Pandoc(headerPath string) CommandConverter {
	args := []string{"-s"}
	if headerPath != "" {
		args = append(args, "-H", headerPath)
	}
	return CommandConverter{Tool: "pandoc", Args: append(args, "{in}", "-o", "{out}")}
}

// Convert implements Converter.
func (c CommandConverter) Convert(ctx context.Context, inputPath, outputPath string, opts ConvertOptions) error {
	cerr := &ConversionError{Tool: c.Tool, Input: inputPath, Output: outputPath}

	if _, err := os.Stat(inputPath); err != nil {
		cerr.Err = err
		return cerr
	}
	if _, err := exec.LookPath(c.Tool); err != nil {
		cerr.Err = fmt.Errorf("%s not found in PATH: %w", c.Tool, err)
		return cerr
	}

	cmd := exec.CommandContext(ctx, c.Tool, c.args(inputPath, outputPath, opts)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		cerr.Stderr = stderr.String()
		cerr.Err = err
		return cerr
	}
	return nil
}

func (c CommandConverter) args(in, out string, opts ConvertOptions) []string {
	var extra []string
	if c.Tool == rsvgTool {
		format := strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
		extra = append(extra, "-f", format)
		if opts.Scale > 0 {
			extra = append(extra, "-z", fmt.Sprintf("%.2f", opts.Scale))
		}
	}
	extra = append(extra, opts.Args...)

	args := make([]string, 0, len(c.Args)+len(extra))
	inserted := false
	for _, a := range c.Args {
		if !inserted && (a == "{in}" || a == "{out}") {
			args = append(args, extra...)
			inserted = true
		}
		a = strings.ReplaceAll(a, "{in}", in)
		a = strings.ReplaceAll(a, "{out}", out)
		args = append(args, a)
	}
	if !inserted {
		args = append(args, extra...)
	}
	return args
}

// ForPaths picks a converter by input and output extensions.
// headerPath is only used for document conversion.
func ForPaths(inputPath, outputPath, headerPath string) (Converter, error) {
	in := strings.ToLower(filepath.Ext(inputPath))
	out := strings.ToLower(filepath.Ext(outputPath))

	switch {
	case (in == ".dot" || in == ".gv") && (out == ".svg" || out == ".png" || out == ".jpg" || out == ".jpeg" || out == ".pdf"):
		return GraphvizConverter{}, nil
	case in == ".svg" && (out == ".pdf" || out == ".png"):
		return RSVG(), nil
	case (in == ".md" || in == ".markdown") && (out == ".html" || out == ".htm"):
		return Pandoc(headerPath), nil
	}
	return nil, fmt.Errorf("%w: %s -> %s", ErrNoConverter, in, out)
}
