// Package metrics provides API client metrics for observability
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetrics contains Prometheus metrics for backend API operations
type APIMetrics struct {
	registry *prometheus.Registry

	apiRequestsTotal *prometheus.CounterVec
	apiErrorsTotal   *prometheus.CounterVec
	apiDuration      *prometheus.HistogramVec
}

// NewAPIMetrics creates and registers new API client metrics
func NewAPIMetrics(registry *prometheus.Registry) (*APIMetrics, error) {
	m := &APIMetrics{registry: registry}
	if err := m.initMetrics(); err != nil {
		return nil, err
	}
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *APIMetrics) initMetrics() error {
	m.apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focal_api_requests_total",
			Help: "Total number of backend API requests",
		},
		[]string{"method", "code"},
	)

	m.apiErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focal_api_errors_total",
			Help: "Total number of failed backend API requests by error category",
		},
		[]string{"category"},
	)

	m.apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "focal_api_request_duration_seconds",
			Help:    "Backend API request round-trip duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	return nil
}

// Describe implements the prometheus.Collector interface
func (m *APIMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.apiRequestsTotal.Describe(ch)
	m.apiErrorsTotal.Describe(ch)
	m.apiDuration.Describe(ch)
}

// Collect implements the prometheus.Collector interface
func (m *APIMetrics) Collect(ch chan<- prometheus.Metric) {
	m.apiRequestsTotal.Collect(ch)
	m.apiErrorsTotal.Collect(ch)
	m.apiDuration.Collect(ch)
}

// ObserveRequest records one completed request
func (m *APIMetrics) ObserveRequest(method, code string, elapsed time.Duration) {
	m.apiRequestsTotal.WithLabelValues(method, code).Inc()
	m.apiDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveError records one failed request by error category
func (m *APIMetrics) ObserveError(category string) {
	m.apiErrorsTotal.WithLabelValues(category).Inc()
}
