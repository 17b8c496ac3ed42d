package kvstore

import (
	"context"
	"time"

	"github.com/hostelmate/marketplace-api/pkg/metrics"
)

// Instrumented decorates a Store with operation counters and latency
// histograms. It changes no semantics.
type Instrumented struct {
	inner   Store
	metrics *metrics.Metrics
}

func NewInstrumented(inner Store, m *metrics.Metrics) *Instrumented {
	return &Instrumented{inner: inner, metrics: m}
}

func (s *Instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	value, ok, err := s.inner.Get(ctx, key)
	s.observe("get", start, err)
	return value, ok, err
}

func (s *Instrumented) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.inner.Set(ctx, key, value)
	s.observe("set", start, err)
	return err
}

func (s *Instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, key)
	s.observe("delete", start, err)
	return err
}

func (s *Instrumented) observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.StoreOperations.WithLabelValues(op, status).Inc()
	s.metrics.StoreLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
