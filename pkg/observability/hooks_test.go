package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// recorder captures every hook call as a short event string.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) OnBuildStart(context.Context, int) { r.add("build.start") }
func (r *recorder) OnBuildComplete(_ context.Context, _ BuildStats, _ time.Duration, err error) {
	r.add("build.done:" + status(err))
}
func (r *recorder) OnRenderStart(_ context.Context, f string) { r.add("render.start:" + f) }
func (r *recorder) OnRenderComplete(_ context.Context, f string, _ int, _ time.Duration, err error) {
	r.add("render.done:" + f + ":" + status(err))
}
func (r *recorder) OnCacheHit(_ context.Context, kind string)        { r.add("hit:" + kind) }
func (r *recorder) OnCacheMiss(_ context.Context, kind string)       { r.add("miss:" + kind) }
func (r *recorder) OnCacheSet(_ context.Context, kind string, _ int) { r.add("set:" + kind) }
func (r *recorder) OnRequest(_ context.Context, method, route string, _ int, _ time.Duration) {
	r.add(method + " " + route)
}

func TestRegistryDispatch(t *testing.T) {
	t.Cleanup(Reset)
	rec := &recorder{}
	SetPipelineHooks(rec)
	SetCacheHooks(rec)
	SetHTTPHooks(rec)

	ctx := context.Background()
	Pipeline().OnBuildStart(ctx, 5)
	Pipeline().OnBuildComplete(ctx, BuildStats{Keywords: 5, Nodes: 17, Edges: 16}, time.Millisecond, nil)
	Cache().OnCacheMiss(ctx, "graph")
	Pipeline().OnRenderStart(ctx, "svg")
	Pipeline().OnRenderComplete(ctx, "svg", 0, time.Millisecond, errors.New("dot missing"))
	Cache().OnCacheSet(ctx, "artifact", 10)
	Cache().OnCacheHit(ctx, "artifact")
	HTTP().OnRequest(ctx, "GET", "/graph", 200, time.Millisecond)

	want := []string{
		"build.start", "build.done:ok", "miss:graph",
		"render.start:svg", "render.done:svg:error",
		"set:artifact", "hit:artifact", "GET /graph",
	}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, rec.events[i], want[i])
		}
	}
}

func TestRegistryDefaultsAndReset(t *testing.T) {
	Reset()
	rec := &recorder{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(rec) {
		t.Error("nil hooks should be ignored")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T after Reset", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T after Reset", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T after Reset", HTTP())
	}

	// Noop hooks accept any input.
	ctx := context.Background()
	Pipeline().OnRenderComplete(ctx, "", -1, 0, nil)
	Cache().OnCacheSet(ctx, "", -1)
	HTTP().OnRequest(ctx, "", "", 0, 0)
}
