// Package observability lets trieviz report build, render, cache and HTTP
// events to a metrics backend without the pipeline depending on one.
//
// Hooks default to no-ops. The serve command registers [PrometheusHooks]:
//
//	prom := observability.NewPrometheusHooks("trieviz")
//	prom.Register()
//	defer observability.Reset()
//
// Emitters fetch the current hooks on every event:
//
//	observability.Pipeline().OnBuildStart(ctx, len(keywords))
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// BuildStats summarizes one trie build.
type BuildStats struct {
	Keywords int
	Nodes    int
	Edges    int
}

// PipelineHooks receives events from the build and render pipeline.
type PipelineHooks interface {
	// Build events
	OnBuildStart(ctx context.Context, keywordCount int)
	OnBuildComplete(ctx context.Context, stats BuildStats, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records a served request.
	OnRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, int)                                   {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, BuildStats, time.Duration, error)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var noop = registry{NoopPipelineHooks{}, NoopCacheHooks{}, NoopHTTPHooks{}}

var (
	current atomic.Pointer[registry]
	writeMu sync.Mutex
)

func init() { Reset() }

func load() *registry { return current.Load() }

// update applies fn to a copy of the registry and publishes it, so emitters
// never take a lock.
func update(fn func(*registry)) {
	writeMu.Lock()
	defer writeMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// SetPipelineHooks registers h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks registers h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks registers h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

func Pipeline() PipelineHooks { return load().pipeline }
func Cache() CacheHooks       { return load().cache }
func HTTP() HTTPHooks         { return load().http }

// Reset restores the no-op hooks.
func Reset() {
	writeMu.Lock()
	defer writeMu.Unlock()
	r := noop
	current.Store(&r)
}
