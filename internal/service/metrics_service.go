package service

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "portal"

// MetricsService owns the portal's Prometheus registry. Every method is safe
// on a nil receiver so components can run uninstrumented.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	httpDuration *prometheus.HistogramVec
	httpTotal    *prometheus.CounterVec
	httpInFlight prometheus.Gauge

	cacheLookups  *prometheus.CounterVec
	cacheLatency  prometheus.Histogram
	cacheWrite    prometheus.Histogram
	cacheHitRatio prometheus.Gauge
	hits, misses  atomic.Uint64

	storeQuery *prometheus.HistogramVec

	engagementsLogged prometheus.Counter
	adminLogins       *prometheus.CounterVec
	insightsCompute   prometheus.Histogram
	catalogChanges    *prometheus.CounterVec
	exports           *prometheus.CounterVec
}

// NewMetricsService registers the portal collectors plus the Go runtime and
// process collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(registry)

	m := &MetricsService{
		registry: registry,
		handler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),

		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		httpTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Subsystem: "http", Name: "requests_in_flight",
			Help: "Requests currently being served.",
		}),

		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "cache", Name: "lookups_total",
			Help: "Insights cache lookups by result.",
		}, []string{"result"}),
		cacheLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace, Subsystem: "cache", Name: "lookup_seconds",
			Help:    "Insights cache lookup latency.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		cacheWrite: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace, Subsystem: "cache", Name: "write_seconds",
			Help:    "Insights cache write latency.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		cacheHitRatio: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Subsystem: "cache", Name: "hit_ratio",
			Help: "Share of cache lookups served from cache since start.",
		}),

		storeQuery: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace, Subsystem: "store", Name: "query_seconds",
			Help:    "Record store query latency by query.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query"}),

		engagementsLogged: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Name: "engagements_logged_total",
			Help: "Engagement records accepted.",
		}),
		adminLogins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Name: "admin_logins_total",
			Help: "Admin login attempts by result.",
		}, []string{"result"}),
		insightsCompute: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace, Name: "insights_compute_seconds",
			Help:    "Time spent aggregating engagement insights.",
			Buckets: prometheus.DefBuckets,
		}),
		catalogChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Name: "catalog_changes_total",
			Help: "Service catalog writes by operation.",
		}, []string{"op"}),
		exports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Name: "exports_total",
			Help: "Admin exports served by format.",
		}, []string{"format"}),
	}
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the exposition format. Without a registry it answers 503.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// TrackInFlight marks a request as started; call the returned func when done.
func (m *MetricsService) TrackInFlight() func() {
	if m == nil {
		return func() {}
	}
	m.httpInFlight.Inc()
	return m.httpInFlight.Dec
}

func (m *MetricsService) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.httpDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	m.httpTotal.WithLabelValues(method, route, code).Inc()
}

func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		m.hits.Add(1)
	} else {
		m.cacheLookups.WithLabelValues("miss").Inc()
		m.misses.Add(1)
	}
	hits, misses := m.hits.Load(), m.misses.Load()
	m.cacheHitRatio.Set(float64(hits) / float64(hits+misses))
}

func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

func (m *MetricsService) ObserveDBQuery(query string, duration time.Duration) {
	if m == nil {
		return
	}
	m.storeQuery.WithLabelValues(query).Observe(duration.Seconds())
}

func (m *MetricsService) IncEngagementsLogged() {
	if m == nil {
		return
	}
	m.engagementsLogged.Inc()
}

func (m *MetricsService) RecordLogin(success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.adminLogins.WithLabelValues(result).Inc()
}

func (m *MetricsService) ObserveInsightsCompute(duration time.Duration) {
	if m == nil {
		return
	}
	m.insightsCompute.Observe(duration.Seconds())
}

// RecordCatalogChange counts a catalog write; op is "upsert" or "delete".
func (m *MetricsService) RecordCatalogChange(op string) {
	if m == nil {
		return
	}
	m.catalogChanges.WithLabelValues(op).Inc()
}

// RecordExport counts a served export; format is "csv" or "pdf".
func (m *MetricsService) RecordExport(format string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format).Inc()
}
