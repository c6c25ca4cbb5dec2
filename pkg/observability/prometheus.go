package observability

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "stackbar"

// PrometheusHooks implements RenderHooks, CacheHooks and ServerHooks by
// recording Prometheus metrics.
type PrometheusHooks struct {
	ingestDuration    *prometheus.HistogramVec
	layoutDuration    prometheus.Histogram
	renderDuration    *prometheus.HistogramVec
	stageErrors       *prometheus.CounterVec
	indicatorFailures *prometheus.CounterVec
	cacheEvents       *prometheus.CounterVec
	cacheBytes        *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

// NewPrometheusHooks creates the collectors and registers them with reg.
// It panics if a collector is already registered, like prometheus.MustRegister.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		ingestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "ingest_duration_seconds",
			Help:      "Duration of data ingestion by input format.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
		layoutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "layout_duration_seconds",
			Help:      "Duration of one chart layout pass.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "render_duration_seconds",
			Help:      "Duration of scene serialization by output formats.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"formats"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "errors_total",
			Help:      "Number of failed pipeline stages.",
		}, []string{"stage"}),
		indicatorFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "layout",
			Name:      "indicator_failures_total",
			Help:      "Number of contained indicator family failures.",
		}, []string{"family"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Number of cache hits, misses and writes by key type.",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Number of bytes written to the cache by key type.",
		}, []string{"key_type"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of served HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}

	reg.MustRegister(
		h.ingestDuration,
		h.layoutDuration,
		h.renderDuration,
		h.stageErrors,
		h.indicatorFailures,
		h.cacheEvents,
		h.cacheBytes,
		h.requestDuration,
	)
	return h
}

func (h *PrometheusHooks) OnIngest(_ context.Context, format string, _ int, d time.Duration, err error) {
	h.ingestDuration.WithLabelValues(format).Observe(d.Seconds())
	if err != nil {
		h.stageErrors.WithLabelValues("ingest").Inc()
	}
}

func (h *PrometheusHooks) OnLayoutComplete(_ context.Context, _ int, d time.Duration, err error) {
	h.layoutDuration.Observe(d.Seconds())
	if err != nil {
		h.stageErrors.WithLabelValues("layout").Inc()
	}
}

func (h *PrometheusHooks) OnIndicatorFailure(_ context.Context, family string, _ error) {
	h.indicatorFailures.WithLabelValues(family).Inc()
}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.renderDuration.WithLabelValues(strings.Join(formats, ",")).Observe(d.Seconds())
	if err != nil {
		h.stageErrors.WithLabelValues("render").Inc()
	}
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (h *PrometheusHooks) OnRequest(_ context.Context, method, route string, code int, d time.Duration) {
	h.requestDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(d.Seconds())
}
