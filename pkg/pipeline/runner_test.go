package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/trieviz/pkg/cache"
	"github.com/matzehuels/trieviz/pkg/observability"
)

// memCache is an in-memory Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
	sets int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.ttls[key] = ttl
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

type countingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu      sync.Mutex
	builds  int
	renders int
	hits    int
	misses  int
}

func (h *countingHooks) OnBuildComplete(context.Context, observability.BuildStats, time.Duration, error) {
	h.mu.Lock()
	h.builds++
	h.mu.Unlock()
}

func (h *countingHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
	h.mu.Lock()
	h.renders++
	h.mu.Unlock()
}

func (h *countingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	h.hits++
	h.mu.Unlock()
}

func (h *countingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	h.misses++
	h.mu.Unlock()
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatal("NewRunner should fill nil dependencies")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestArtifactTTL(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	r.ArtifactTTL = time.Hour

	res, err := r.Execute(ctx, Options{Keywords: []string{"ab"}})
	if err != nil {
		t.Fatal(err)
	}
	artifact := r.Keyer.ArtifactKey(res.Hash, "dot")
	graph := r.Keyer.GraphKey(cache.HashKeywords([]string{"ab"}), cache.GraphKeyOpts{Order: "stack", Normalize: "none"})
	if got := c.ttls[artifact]; got != time.Hour {
		t.Errorf("artifact ttl = %v, want 1h", got)
	}
	if got := c.ttls[graph]; got != cache.GraphTTL {
		t.Errorf("graph ttl = %v, want %v", got, cache.GraphTTL)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	res, err := r.Execute(ctx, Options{Keywords: reference, Formats: []string{"dot", "json"}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.Stats.KeywordCount != 5 || res.Stats.NodeCount != 17 || res.Stats.EdgeCount != 16 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if string(res.Artifacts["dot"]) != string(res.DOT) {
		t.Error("dot artifact should equal the built DOT")
	}
	if !strings.Contains(string(res.Artifacts["json"]), `"nodes"`) {
		t.Error("json artifact should hold the graph document")
	}
	if res.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	again, err := r.Execute(ctx, Options{Keywords: reference, Formats: []string{"dot", "json"}})
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.RenderHit || !again.CacheInfo.Hits["json"] {
		t.Errorf("second run should hit the cache: %+v", again.CacheInfo)
	}

	fresh, err := r.Execute(ctx, Options{Keywords: reference, Formats: []string{"dot"}, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if fresh.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteInvalid(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Order: "sideways"}); err == nil {
		t.Error("invalid order should fail")
	}
}

func TestExecuteOrdersCachedSeparately(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)

	stack, err := r.Execute(ctx, Options{Keywords: reference})
	if err != nil {
		t.Fatal(err)
	}
	pre, err := r.Execute(ctx, Options{Keywords: reference, Order: "preorder"})
	if err != nil {
		t.Fatal(err)
	}
	if string(stack.Artifacts["dot"]) == string(pre.Artifacts["dot"]) {
		t.Error("stack and preorder output should differ")
	}
	if pre.CacheInfo.RenderHit {
		t.Error("preorder should not reuse the stack artifact")
	}
}

func TestArtifactFastPath(t *testing.T) {
	ctx := context.Background()
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	c := newMemCache()
	r := NewRunner(c, cache.NewScopedKeyer(nil, "test:"), nil)
	opts := Options{Keywords: reference, Order: "preorder"}

	first, hit, err := r.Artifact(ctx, opts, "dot")
	if err != nil {
		t.Fatalf("Artifact() error: %v", err)
	}
	if hit {
		t.Error("first call should miss")
	}
	if hooks.builds != 1 || hooks.renders != 1 {
		t.Errorf("first call: builds %d, renders %d", hooks.builds, hooks.renders)
	}

	second, hit, err := r.Artifact(ctx, opts, "gv")
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second call should hit")
	}
	if string(first) != string(second) {
		t.Error("cached artifact differs")
	}
	if hooks.builds != 1 {
		t.Errorf("cached call should not rebuild the trie, builds = %d", hooks.builds)
	}
	for k := range c.data {
		if !strings.HasPrefix(k, "test:") {
			t.Errorf("key %q not scoped", k)
		}
	}
}

func TestRenderCachesByDOT(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	dot := []byte("digraph {\n  rankdir=LR;\n  root [id=\"root\"];\n}")
	if _, err := r.Render(ctx, dot, "json"); err != nil {
		t.Fatal(err)
	}
	_, hit, err := r.RenderWithCacheInfo(ctx, dot, "json", false)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("same DOT and format should hit")
	}
	if _, err := r.Render(ctx, dot, "bmp"); err == nil {
		t.Error("unknown format should fail")
	}
}
