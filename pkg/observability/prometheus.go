package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusHooks records pipeline, cache and HTTP events as Prometheus
// metrics in its own registry.
type PrometheusHooks struct {
	registry *prometheus.Registry

	builds        *prometheus.CounterVec
	buildDuration prometheus.Histogram
	trieNodes     prometheus.Histogram

	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderBytes    *prometheus.HistogramVec

	cacheOps *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewPrometheusHooks creates hooks whose metric names start with namespace.
func NewPrometheusHooks(namespace string) *PrometheusHooks {
	h := &PrometheusHooks{
		registry: prometheus.NewRegistry(),

		builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "builds_total",
				Help:      "Total number of trie builds",
			},
			[]string{"status"},
		),
		buildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "build_duration_seconds",
				Help:      "Trie build and export duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		trieNodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "trie_nodes",
				Help:      "Number of nodes per built trie",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
		),

		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "renders_total",
				Help:      "Total number of rendered artifacts",
			},
			[]string{"format", "status"},
		),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "render_duration_seconds",
				Help:      "Render duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		renderBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "render_bytes",
				Help:      "Size of rendered artifacts in bytes",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 10),
			},
			[]string{"format"},
		),

		cacheOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_operations_total",
				Help:      "Cache lookups and writes by key type and result",
			},
			[]string{"key_type", "result"},
		),

		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	h.registry.MustRegister(
		h.builds,
		h.buildDuration,
		h.trieNodes,
		h.renders,
		h.renderDuration,
		h.renderBytes,
		h.cacheOps,
		h.httpRequests,
		h.httpDuration,
	)
	return h
}

// Registry returns the registry holding the metrics.
func (h *PrometheusHooks) Registry() *prometheus.Registry { return h.registry }

// Handler serves the metrics in the Prometheus text format.
func (h *PrometheusHooks) Handler() http.Handler {
	return promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})
}

// Register installs h as the pipeline, cache and HTTP hooks.
func (h *PrometheusHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *PrometheusHooks) OnBuildStart(context.Context, int) {}

func (h *PrometheusHooks) OnBuildComplete(_ context.Context, stats BuildStats, d time.Duration, err error) {
	h.builds.WithLabelValues(status(err)).Inc()
	if err != nil {
		return
	}
	h.buildDuration.Observe(d.Seconds())
	h.trieNodes.Observe(float64(stats.Nodes))
}

func (h *PrometheusHooks) OnRenderStart(context.Context, string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.renders.WithLabelValues(format, status(err)).Inc()
	if err != nil {
		return
	}
	h.renderDuration.WithLabelValues(format).Observe(d.Seconds())
	h.renderBytes.WithLabelValues(format).Observe(float64(size))
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.cacheOps.WithLabelValues(keyType, "set").Inc()
}

func (h *PrometheusHooks) OnRequest(_ context.Context, method, route string, code int, d time.Duration) {
	h.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	h.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)
