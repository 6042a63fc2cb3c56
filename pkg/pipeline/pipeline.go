// Package pipeline provides the keywords → trie → graph → artifact pipeline
// for trieviz.
//
// This package implements the complete build → render pipeline that is used
// by the CLI and the HTTP server. By centralizing this logic, both entry
// points apply the same defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: Normalize keywords, insert them into a trie and export the trie
//     as a graph and its DOT text. Pure and fast; never cached.
//  2. Render: Turn DOT text into each requested format. Rendering shells
//     out to Graphviz or rsvg-convert, so results are cached by DOT hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Keywords: []string{"arts", "star", "tsar"},
//	    Formats:  []string{"dot", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trieviz/pkg/cache"
	errs "github.com/matzehuels/trieviz/pkg/errors"
	"github.com/matzehuels/trieviz/pkg/export"
	"github.com/matzehuels/trieviz/pkg/graph"
	"github.com/matzehuels/trieviz/pkg/keywords"
	"github.com/matzehuels/trieviz/pkg/render"
	"github.com/matzehuels/trieviz/pkg/trie"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultOrder is the default traversal order.
	DefaultOrder = "stack"

	// DefaultNormalize is the default keyword normalization.
	DefaultNormalize = "none"

	// DefaultFormat is the format produced when none is requested.
	DefaultFormat = "dot"

	// DefaultPNGScale is the scale used for PNG output converted from SVG.
	DefaultPNGScale = 2.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Keywords     []string `json:"keywords"`
	Order        string   `json:"order,omitempty"`
	MarkKeywords bool     `json:"mark_keywords,omitempty"`
	Normalize    string   `json:"normalize,omitempty"`
	Classes      bool     `json:"classes,omitempty"`
	Cursor       string   `json:"cursor,omitempty"` // prefix to highlight

	// Render options
	Formats []string `json:"formats,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	order     export.Order
	form      keywords.Form
	validated bool
}

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks the build options and applies their defaults.
func (o *Options) ValidateForBuild() error {
	if o.Order == "" {
		o.Order = DefaultOrder
	}
	order, err := export.ParseOrder(o.Order)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidOrder, err, "invalid order %q", o.Order)
	}
	o.order = order
	o.Order = order.String()

	if o.Normalize == "" {
		o.Normalize = DefaultNormalize
	}
	form, err := keywords.ParseForm(o.Normalize)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid normalization %q", o.Normalize)
	}
	o.form = form
	o.Normalize = string(form)

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForRender checks the requested formats, canonicalizes their
// names and drops duplicates.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	seen := make(map[render.Format]bool, len(o.Formats))
	formats := o.Formats[:0:0]
	for _, f := range o.Formats {
		format, err := render.ParseFormat(f)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidFormat, err, "invalid format %q", f)
		}
		if !seen[format] {
			seen[format] = true
			formats = append(formats, string(format))
		}
	}
	o.Formats = formats
	return nil
}

// ExportOptions returns the trie export options.
func (o *Options) ExportOptions() export.Options {
	return export.Options{
		Order:        o.order,
		MarkKeywords: o.MarkKeywords,
		ClassAttrs:   o.Classes,
		Cursor:       o.Cursor,
	}
}

// GraphKeyOpts returns cache key options for the built graph.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		Order:        o.Order,
		MarkKeywords: o.MarkKeywords,
		Normalize:    o.Normalize,
		Classes:      o.Classes,
		Cursor:       o.Cursor,
	}
}

// =============================================================================
// Build and Result
// =============================================================================

// Build is the output of the build stage.
type Build struct {
	// Keywords are the inserted keywords after normalization.
	Keywords []string

	Trie  *trie.Trie
	Graph *graph.Graph

	// Cursor is the normalized highlighted prefix, "" for none.
	Cursor string

	// DOT is the serialized graph.
	DOT []byte

	// Hash is the SHA-256 of DOT. Rendered artifacts are cached under it.
	Hash string
}

// NewBuild runs the build stage. It never touches a cache.
func NewBuild(opts Options) (*Build, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}

	kws, err := keywords.Normalize(opts.Keywords, opts.form)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidKeywords, err, "normalize keywords")
	}

	t := trie.FromKeywords(kws)
	if opts.Cursor != "" {
		cursor, err := keywords.Normalize([]string{opts.Cursor}, opts.form)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "normalize cursor")
		}
		if _, ok := t.Find(cursor[0]); !ok {
			return nil, errs.New(errs.ErrCodeInvalidInput, "cursor %q is not a prefix of any keyword", opts.Cursor)
		}
		opts.Cursor = cursor[0]
	}
	g := export.FromTrie(t, opts.ExportOptions())
	dot := g.DOT()

	return &Build{
		Keywords: kws,
		Trie:     t,
		Graph:    g,
		Cursor:   opts.Cursor,
		DOT:      dot,
		Hash:     cache.Hash(dot),
	}, nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	*Build

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	KeywordCount int
	NodeCount    int
	EdgeCount    int
	BuildTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool            // Whether all artifacts came from cache
	Hits      map[string]bool // Per-format cache hits
}
