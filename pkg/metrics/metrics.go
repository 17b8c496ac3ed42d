package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// Request lifecycle metrics
	RequestsSent     prometheus.Counter
	RequestResponses *prometheus.CounterVec

	// Notification metrics
	NotificationsEmitted *prometheus.CounterVec
	NotificationsDropped prometheus.Counter

	// Key-value store metrics
	StoreOperations *prometheus.CounterVec
	StoreLatency    *prometheus.HistogramVec
}

// New creates application metrics. Registration is left to the caller so
// tests can construct metrics without touching the default registry.
func New(namespace string) *Metrics {
	return &Metrics{
		RequestsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "volunteer_requests_sent_total",
			Help:      "Total number of volunteer requests created",
		}),
		RequestResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "volunteer_request_responses_total",
			Help:      "Total number of volunteer request responses by decision",
		}, []string{"decision"}),
		NotificationsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_emitted_total",
			Help:      "Total number of notifications appended to the service store",
		}, []string{"type"}),
		NotificationsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_dropped_total",
			Help:      "Total number of notification writes swallowed by the fail-open policy",
		}),
		StoreOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kv_operations_total",
			Help:      "Total number of key-value store operations",
		}, []string{"operation", "status"}),
		StoreLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kv_operation_duration_seconds",
			Help:      "Duration of key-value store operations",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25},
		}, []string{"operation"}),
	}
}

// Register registers all metrics with the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.RequestsSent,
		m.RequestResponses,
		m.NotificationsEmitted,
		m.NotificationsDropped,
		m.StoreOperations,
		m.StoreLatency,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
