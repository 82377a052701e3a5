package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"grailhunter/internal/ratelimit"
	"grailhunter/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits(namespace string)
	IncCacheMisses(namespace string)
	ObservePersistenceDuration(duration time.Duration)
	IncRateLimitDecision(endpoint string, allowed bool)
	ObserveUpstreamDuration(operation string, duration time.Duration)
	IncUpstreamErrors(operation string)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	rateLimitDecisions  *prometheus.CounterVec
	upstreamDuration    *prometheus.HistogramVec
	upstreamErrors      *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits(namespace string) {
	m.cacheHits.WithLabelValues(namespace).Inc()
}

func (m *MetricsProvider) IncCacheMisses(namespace string) {
	m.cacheMisses.WithLabelValues(namespace).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncRateLimitDecision(endpoint string, allowed bool) {
	m.rateLimitDecisions.WithLabelValues(endpoint, decisionLabel(allowed)).Inc()
}

func (m *MetricsProvider) ObserveUpstreamDuration(operation string, duration time.Duration) {
	m.upstreamDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncUpstreamErrors(operation string) {
	m.upstreamErrors.WithLabelValues(operation).Inc()
}

func decisionLabel(allowed bool) string {
	if allowed {
		return "allowed"
	}
	return "denied"
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, limiter *ratelimit.Limiter) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "grailhunter_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "grailhunter_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "grailhunter_cache_hits_total",
			Help: "Cache hits by key namespace",
		}, []string{"namespace"}),

		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "grailhunter_cache_misses_total",
			Help: "Cache misses by key namespace",
		}, []string{"namespace"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "grailhunter_persistence_duration_seconds",
			Help:    "Duration of usage snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		rateLimitDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "grailhunter_ratelimit_decisions_total",
			Help: "Rate limiter decisions by endpoint and outcome",
		}, []string{"endpoint", "decision"}),

		upstreamDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "grailhunter_upstream_duration_seconds",
			Help:    "Duration of generative model calls in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 45, 60},
		}, []string{"operation"}),

		upstreamErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "grailhunter_upstream_errors_total",
			Help: "Failed generative model calls",
		}, []string{"operation"}),
	}

	if limiter != nil {
		promauto.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "grailhunter_ratelimit_keys",
			Help: "Number of client:endpoint keys tracked by the limiter",
		}, func() float64 {
			return float64(limiter.Len())
		})
	}

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncCacheHits(_ string)                             {}
func (n *noopMetrics) IncCacheMisses(_ string)                           {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)        {}
func (n *noopMetrics) IncRateLimitDecision(_ string, _ bool)             {}
func (n *noopMetrics) ObserveUpstreamDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncUpstreamErrors(_ string)                        {}
