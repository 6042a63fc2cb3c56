package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trieviz/pkg/cache"
	"github.com/matzehuels/trieviz/pkg/observability"
)

// Cache key types reported to cache hooks.
const (
	keyTypeGraph    = "graph"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// ArtifactTTL overrides cache.ArtifactTTL when positive.
	ArtifactTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Build runs the build stage and reports it to the pipeline hooks.
func (r *Runner) Build(ctx context.Context, opts Options) (*Build, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(opts.Keywords))

	start := time.Now()
	b, err := NewBuild(opts)
	duration := time.Since(start)

	var stats observability.BuildStats
	if b != nil {
		stats = observability.BuildStats{
			Keywords: len(b.Keywords),
			Nodes:    b.Graph.NodeCount(),
			Edges:    b.Graph.EdgeCount(),
		}
	}
	hooks.OnBuildComplete(ctx, stats, duration, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("built trie",
		"keywords", stats.Keywords,
		"nodes", stats.Nodes,
		"edges", stats.Edges,
		"duration", duration)
	return b, nil
}

// Execute runs the complete build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	buildStart := time.Now()
	b, err := r.Build(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	result := &Result{
		Build:     b,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		CacheInfo: CacheInfo{RenderHit: true, Hits: make(map[string]bool, len(opts.Formats))},
	}
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.KeywordCount = len(b.Keywords)
	result.Stats.NodeCount = b.Graph.NodeCount()
	result.Stats.EdgeCount = b.Graph.EdgeCount()

	r.rememberGraph(ctx, opts, b)

	renderStart := time.Now()
	for _, format := range opts.Formats {
		data, hit, err := r.RenderWithCacheInfo(ctx, b.DOT, format, opts.Refresh)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Artifacts[format] = data
		result.CacheInfo.Hits[format] = hit
		result.CacheInfo.RenderHit = result.CacheInfo.RenderHit && hit
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"nodes", result.Stats.NodeCount,
		"cached", result.CacheInfo.RenderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Artifact returns one rendered format for opts without building the trie
// when the cache already knows the result. It is the server's fast path.
func (r *Runner) Artifact(ctx context.Context, opts Options, format string) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	format, err := canonicalFormat(format)
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		if hash, ok := r.lookupGraph(ctx, opts); ok {
			key := r.Keyer.ArtifactKey(hash, format)
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				return data, true, nil
			}
		}
	}

	b, err := r.Build(ctx, opts)
	if err != nil {
		return nil, false, err
	}
	r.rememberGraph(ctx, opts, b)
	return r.RenderWithCacheInfo(ctx, b.DOT, format, opts.Refresh)
}

// RenderWithCacheInfo renders one format from DOT text with caching and
// reports whether the result came from the cache. refresh skips the lookup
// but still stores the fresh result.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, dot []byte, format string, refresh bool) ([]byte, bool, error) {
	format, err := canonicalFormat(format)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(cache.Hash(dot), format)

	if !refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache lookup failed", "format", format, "error", err)
		} else if hit {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			r.Logger.Debug("artifact from cache", "format", format)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()
	data, err := RenderDOT(ctx, dot, format)
	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	ttl := cache.ArtifactTTL
	if r.ArtifactTTL > 0 {
		ttl = r.ArtifactTTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache store failed", "format", format, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}
	return data, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, dot []byte, format string) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, dot, format, false)
	return data, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) graphKey(opts Options) string {
	return r.Keyer.GraphKey(cache.HashKeywords(opts.Keywords), opts.GraphKeyOpts())
}

// lookupGraph returns the DOT hash previously built for opts.
func (r *Runner) lookupGraph(ctx context.Context, opts Options) (string, bool) {
	data, hit, err := r.Cache.Get(ctx, r.graphKey(opts))
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeGraph)
		return "", false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeGraph)
	return string(data), true
}

// rememberGraph maps opts to the DOT hash of b.
func (r *Runner) rememberGraph(ctx context.Context, opts Options, b *Build) {
	if err := r.Cache.Set(ctx, r.graphKey(opts), []byte(b.Hash), cache.GraphTTL); err != nil {
		r.Logger.Warn("cache store failed", "key", keyTypeGraph, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeGraph, len(b.Hash))
}
