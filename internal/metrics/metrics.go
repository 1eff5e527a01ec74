// Package metrics holds the Prometheus collectors of the service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ActiveRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Number of requests being served",
		},
	)

	DomainEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "microblog_events_total",
			Help: "Total number of domain events, by type and publish outcome",
		},
		[]string{"type", "outcome"},
	)
)

// Register adds every collector to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		HttpRequestsTotal,
		HttpRequestDuration,
		ActiveRequests,
		DomainEvents,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
