package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/trieviz/pkg/cache"
	errs "github.com/matzehuels/trieviz/pkg/errors"
	"github.com/matzehuels/trieviz/pkg/observability"
	"github.com/matzehuels/trieviz/pkg/pipeline"
)

const catCarDOT = `digraph {
  rankdir=LR;
  root [id="root"];
  c [id="c"];
  ca [id="ca"];
  cat [id="cat"];
  car [id="car"];
  root -> c [label="c"];
  c -> ca [label="a"];
  ca -> cat [label="t"];
  ca -> car [label="r"];
}`

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(cache.NewRedisCacheFromClient(client, "test:"), nil, logger)
	t.Cleanup(func() { _ = runner.Close() })

	ts := httptest.NewServer(New(runner, logger, opts...).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func post(t *testing.T, url, body string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, string(data)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var h healthResponse
	if err := json.Unmarshal([]byte(body), &h); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if h.Status != "ok" || h.Build.Version == "" {
		t.Errorf("health = %+v", h)
	}
}

func TestGetGraph(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/graph?keyword=cat&keyword=car&order=preorder")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if body != catCarDOT {
		t.Errorf("body =\n%s\nwant\n%s", body, catCarDOT)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := resp.Header.Get("X-Cache"); got != "miss" {
		t.Errorf("first X-Cache = %q, want miss", got)
	}

	resp, body = get(t, ts.URL+"/graph?keywords=cat,car&order=preorder")
	if body != catCarDOT {
		t.Errorf("comma list body differs:\n%s", body)
	}
	if got := resp.Header.Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
}

func TestGetGraphCursor(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/graph?keywords=cat,car&cursor=ca")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, `  ca [id="ca" penwidth=2];`) {
		t.Errorf("cursor node not highlighted:\n%s", body)
	}
	if strings.Contains(body, "class=") {
		t.Errorf("classes should be off by default:\n%s", body)
	}

	resp, body = post(t, ts.URL+"/graph", `{"keywords":["cat","car"],"cursor":"ca","classes":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("post status = %d, body %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, `  ca [id="ca" class="node node-interior node-cursor" penwidth=2];`) {
		t.Errorf("cursor classes missing:\n%s", body)
	}
	if got := resp.Header.Get("X-Cache"); got != "miss" {
		t.Errorf("classes should use their own cache entry, X-Cache = %q", got)
	}
}

func TestPostGraph(t *testing.T) {
	ts := newTestServer(t)

	resp, body := post(t, ts.URL+"/graph", `{"keywords":["cat","car"],"order":"preorder","format":"gv"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if body != catCarDOT {
		t.Errorf("body =\n%s", body)
	}

	resp, body = post(t, ts.URL+"/graph", `{"keywords":["ab"],"format":"json"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("json status = %d, body %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !json.Valid([]byte(body)) {
		t.Errorf("json body invalid: %s", body)
	}
}

func TestGraphErrors(t *testing.T) {
	ts := newTestServer(t, WithKeywordLimits(errs.KeywordLimits{MaxKeywords: 2}))

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		wantCode errs.Code
	}{
		{"bad order", http.MethodGet, "/graph?keyword=a&order=bfs", "", errs.ErrCodeInvalidOrder},
		{"bad format", http.MethodGet, "/graph?keyword=a&format=gif", "", errs.ErrCodeInvalidFormat},
		{"bad mark", http.MethodGet, "/graph?keyword=a&mark=maybe", "", errs.ErrCodeInvalidInput},
		{"bad classes", http.MethodGet, "/graph?keyword=a&classes=maybe", "", errs.ErrCodeInvalidInput},
		{"unknown cursor", http.MethodGet, "/graph?keyword=ab&cursor=b", "", errs.ErrCodeInvalidInput},
		{"too many", http.MethodGet, "/graph?keywords=a,b,c", "", errs.ErrCodeInvalidKeywords},
		{"bad body", http.MethodPost, "/graph", `{"keywords":`, errs.ErrCodeInvalidInput},
		{"unknown field", http.MethodPost, "/graph", `{"words":["a"]}`, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				resp *http.Response
				body string
			)
			if tt.method == http.MethodPost {
				resp, body = post(t, ts.URL+tt.target, tt.body)
			} else {
				resp, body = get(t, ts.URL+tt.target)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", resp.StatusCode, body)
			}
			var e errorResponse
			if err := json.Unmarshal([]byte(body), &e); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if e.Code != string(tt.wantCode) {
				t.Errorf("code = %q, want %q", e.Code, tt.wantCode)
			}
			if e.RequestID != resp.Header.Get(RequestIDHeader) {
				t.Errorf("request_id %q does not match header %q", e.RequestID, resp.Header.Get(RequestIDHeader))
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := get(t, ts.URL+"/healthz")
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("generated request id %q is not a UUID", resp.Header.Get(RequestIDHeader))
	}

	id := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("malformed request id should be replaced")
	}
}

func TestMetrics(t *testing.T) {
	hooks := observability.NewPrometheusHooks("trieviz")
	hooks.Register()
	t.Cleanup(observability.Reset)

	ts := newTestServer(t, WithMetrics(hooks.Handler()))
	get(t, ts.URL+"/graph?keyword=star")

	resp, body := get(t, ts.URL+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{
		"trieviz_builds_total",
		`trieviz_http_requests_total{method="GET",route="/graph",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	ts := newTestServer(t)
	resp, _ := get(t, ts.URL+"/metrics")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServeShutdown(t *testing.T) {
	logger := log.New(io.Discard)
	s := New(pipeline.NewRunner(nil, nil, logger), logger)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln, Config{ShutdownTimeout: time.Second}) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	var resp *http.Response
	for i := 0; i < 50; i++ {
		if resp, err = http.Get(url); err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server did not come up: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
