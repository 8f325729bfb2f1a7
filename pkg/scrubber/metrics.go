package scrubber

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
)

// Request outcomes recorded on the inputguard.requests counter.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeTooLarge = "too_large"
)

// Instrument names.
const (
	MetricRequests     = "inputguard.requests"
	MetricDuration     = "inputguard.sanitize.duration_ms"
	MetricCacheSize    = "inputguard.cache.size"
	MetricCacheHitRate = "inputguard.cache.hit_rate"
)

// Metrics records middleware outcomes.
type Metrics interface {
	RecordRequest(ctx context.Context, outcome string, surfaces Surface, d time.Duration)
}

type otelMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewMetrics creates instruments on meter and registers cache gauges that read
// s.CacheStats on every collection.
func NewMetrics(meter metric.Meter, s *sanitizer.Sanitizer) (Metrics, error) {
	requests, err := meter.Int64Counter(
		MetricRequests,
		metric.WithDescription("Requests processed by the input scrubber"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		MetricDuration,
		metric.WithDescription("Time spent sanitizing a request in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	size, err := meter.Int64ObservableGauge(
		MetricCacheSize,
		metric.WithDescription("Entries in the sanitizer result cache"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	hitRate, err := meter.Float64ObservableGauge(
		MetricCacheHitRate,
		metric.WithDescription("Hit ratio of the sanitizer result cache"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		st := s.CacheStats()
		o.ObserveInt64(size, int64(st.Size))
		o.ObserveFloat64(hitRate, st.HitRate)
		return nil
	}, size, hitRate)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{requests: requests, duration: duration}, nil
}

func (m *otelMetrics) RecordRequest(ctx context.Context, outcome string, surfaces Surface, d time.Duration) {
	opt := metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("surfaces", surfaces.String()),
	)
	m.requests.Add(ctx, 1, opt)
	m.duration.Record(ctx, float64(d.Microseconds())/1000, opt)
}

type noopMetrics struct{}

func (noopMetrics) RecordRequest(context.Context, string, Surface, time.Duration) {}
