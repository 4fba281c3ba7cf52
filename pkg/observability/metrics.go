package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "godswood"

// MetricsHooks records pipeline, cache and server events as Prometheus
// metrics.
type MetricsHooks struct {
	stageDuration   *prometheus.HistogramVec
	stageErrors     *prometheus.CounterVec
	woodsBuilt      prometheus.Counter
	nodesBuilt      prometheus.Counter
	cacheEvents     *prometheus.CounterVec
	cacheBytes      *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inflight        prometheus.Gauge
}

// NewMetricsHooks creates the collectors and registers them with reg.
func NewMetricsHooks(reg prometheus.Registerer) *MetricsHooks {
	f := promauto.With(reg)
	return &MetricsHooks{
		stageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"stage"}),
		stageErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_errors_total",
			Help:      "Pipeline stages that returned an error",
		}, []string{"stage"}),
		woodsBuilt: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "woods_built_total",
			Help:      "Woods built from tree documents",
		}),
		nodesBuilt: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "nodes_built_total",
			Help:      "Nodes created while building woods",
		}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Cache lookups and writes by key type",
		}, []string{"key_type", "event"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache by key type",
		}, []string{"key_type"}),
		requestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Served HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inflight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Requests currently being served",
		}),
	}
}

var _ Hooks = (*MetricsHooks)(nil)

func (m *MetricsHooks) OnBuildStart(context.Context, int) {}

func (m *MetricsHooks) OnBuildComplete(_ context.Context, woods, nodes int, d time.Duration, err error) {
	m.stage("build", d, err)
	m.woodsBuilt.Add(float64(woods))
	m.nodesBuilt.Add(float64(nodes))
}

func (m *MetricsHooks) OnLayoutStart(context.Context, string, int) {}

func (m *MetricsHooks) OnLayoutComplete(_ context.Context, _ string, d time.Duration, err error) {
	m.stage("layout", d, err)
}

func (m *MetricsHooks) OnRenderStart(context.Context, []string) {}

func (m *MetricsHooks) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.stage("render", d, err)
}

func (m *MetricsHooks) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *MetricsHooks) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *MetricsHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *MetricsHooks) OnRequest(context.Context, string, string) {
	m.inflight.Inc()
}

func (m *MetricsHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.inflight.Dec()
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *MetricsHooks) stage(name string, d time.Duration, err error) {
	m.stageDuration.WithLabelValues(name).Observe(d.Seconds())
	if err != nil {
		m.stageErrors.WithLabelValues(name).Inc()
	}
}
