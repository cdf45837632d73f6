package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the news API service.
// Counters and histograms are registered via promauto against the supplied
// registerer; pass prometheus.DefaultRegisterer in production and a fresh
// prometheus.NewRegistry() in tests.
type Metrics struct {
	// RequestsTotal counts HTTP requests, labeled by method, route pattern and status code.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration observes HTTP request duration in seconds, labeled by method and route pattern.
	RequestDuration *prometheus.HistogramVec

	// RequestsInFlight tracks the number of requests currently being served.
	RequestsInFlight prometheus.Gauge

	// RequestsRateLimited counts requests rejected by the rate limiter.
	RequestsRateLimited prometheus.Counter

	// StoreErrors counts repository failures that mapped to a 500-class response.
	StoreErrors prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		RequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		}),

		RequestsRateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		}),

		StoreErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Total number of unexpected store failures",
		}),
	}
}
