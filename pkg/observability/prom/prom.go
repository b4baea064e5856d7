// Package prom implements the observability hooks with Prometheus metrics.
//
//	m := prom.New()
//	m.Register()
//	http.Handle("/metrics", m.Handler())
package prom

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/riskflow/pkg/observability"
)

const namespace = "riskflow"

var (
	_ observability.PipelineHooks    = (*Metrics)(nil)
	_ observability.CacheHooks       = (*Metrics)(nil)
	_ observability.InteractionHooks = (*Metrics)(nil)
	_ observability.HTTPHooks        = (*Metrics)(nil)
)

// Metrics holds every collector and implements all hook interfaces.
type Metrics struct {
	LoadsTotal      *prometheus.CounterVec
	LoadDuration    prometheus.Histogram
	DatasetNodes    prometheus.Gauge
	LayoutsTotal    *prometheus.CounterVec
	LayoutDuration  prometheus.Histogram
	LayoutLinks     prometheus.Gauge
	RendersTotal    *prometheus.CounterVec
	RenderDuration  *prometheus.HistogramVec
	CacheOpsTotal   *prometheus.CounterVec
	CacheBytesTotal *prometheus.CounterVec

	EventsTotal     *prometheus.CounterVec
	SelectionsTotal *prometheus.CounterVec
	SessionsActive  prometheus.Gauge

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	registry *prometheus.Registry
}

// New creates a Metrics instance backed by its own registry, which also
// carries the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := &Metrics{registry: reg}
	m.initPipelineMetrics()
	m.initCacheMetrics()
	m.initInteractionMetrics()
	m.initHTTPMetrics()
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Register installs m as the global hook implementation for every category.
func (m *Metrics) Register() {
	observability.Install(m)
}

func (m *Metrics) initPipelineMetrics() {
	f := promauto.With(m.registry)
	m.LoadsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataset_loads_total",
		Help:      "Total number of dataset loads",
	}, []string{"status"})
	m.LoadDuration = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dataset_load_duration_seconds",
		Help:      "Dataset load latency in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	m.DatasetNodes = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dataset_nodes",
		Help:      "Number of nodes in the most recently loaded dataset",
	})
	m.LayoutsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "layouts_total",
		Help:      "Total number of layout computations",
	}, []string{"status"})
	m.LayoutDuration = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "layout_duration_seconds",
		Help:      "Layout and ribbon computation latency in seconds",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
	})
	m.LayoutLinks = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "layout_ribbons",
		Help:      "Number of ribbons in the most recent layout",
	})
	m.RendersTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "renders_total",
		Help:      "Total number of render calls by format",
	}, []string{"format", "status"})
	m.RenderDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "render_duration_seconds",
		Help:      "Render latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"format"})
}

func (m *Metrics) initCacheMetrics() {
	f := promauto.With(m.registry)
	m.CacheOpsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_operations_total",
		Help:      "Cache lookups and writes by key type and result",
	}, []string{"key_type", "result"})
	m.CacheBytesTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_written_bytes_total",
		Help:      "Bytes written to the cache by key type",
	}, []string{"key_type"})
}

func (m *Metrics) initInteractionMetrics() {
	f := promauto.With(m.registry)
	m.EventsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interaction_events_total",
		Help:      "Interaction events by type and outcome",
	}, []string{"type", "status"})
	m.SelectionsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "selection_changes_total",
		Help:      "Selection changes by direction",
	}, []string{"change"})
	m.SessionsActive = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of open interaction sessions",
	})
}

func (m *Metrics) initHTTPMetrics() {
	f := promauto.With(m.registry)
	m.HTTPRequestsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "route", "status"})
	m.HTTPRequestDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	m.HTTPRequestsInFlight = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_flight",
		Help:      "Current number of HTTP requests being processed",
	})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// =============================================================================
// Hook implementations
// =============================================================================

func (m *Metrics) OnLoadStart(context.Context, string) {}

func (m *Metrics) OnLoadComplete(_ context.Context, _ string, nodeCount int, d time.Duration, err error) {
	m.LoadsTotal.WithLabelValues(status(err)).Inc()
	m.LoadDuration.Observe(d.Seconds())
	if err == nil {
		m.DatasetNodes.Set(float64(nodeCount))
	}
}

func (m *Metrics) OnLayoutStart(context.Context, int) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, _, linkCount int, d time.Duration, err error) {
	m.LayoutsTotal.WithLabelValues(status(err)).Inc()
	m.LayoutDuration.Observe(d.Seconds())
	if err == nil {
		m.LayoutLinks.Set(float64(linkCount))
	}
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	for _, f := range formats {
		m.RendersTotal.WithLabelValues(f, status(err)).Inc()
		m.RenderDuration.WithLabelValues(f).Observe(d.Seconds())
	}
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheOpsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheOpsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheOpsTotal.WithLabelValues(keyType, "set").Inc()
	m.CacheBytesTotal.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnEvent(_ context.Context, eventType string, err error) {
	m.EventsTotal.WithLabelValues(eventType, status(err)).Inc()
}

func (m *Metrics) OnSelect(_ context.Context, selected bool) {
	change := "cleared"
	if selected {
		change = "selected"
	}
	m.SelectionsTotal.WithLabelValues(change).Inc()
}

func (m *Metrics) OnSessionOpen(context.Context)  { m.SessionsActive.Inc() }
func (m *Metrics) OnSessionClose(context.Context) { m.SessionsActive.Dec() }

func (m *Metrics) OnRequest(context.Context, string, string) { m.HTTPRequestsInFlight.Inc() }

func (m *Metrics) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	m.HTTPRequestsInFlight.Dec()
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
