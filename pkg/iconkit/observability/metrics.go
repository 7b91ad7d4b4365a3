package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records iconkit metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordFetch records one settled fetch.
	RecordFetch(ctx context.Context, duration time.Duration, err error)

	// RecordSharedFetch records a caller whose fetch was shared with at
	// least one other concurrent caller.
	RecordSharedFetch(ctx context.Context)

	// RecordCacheLookup records a cache lookup. tier is "url", "named",
	// "set" or "store".
	RecordCacheLookup(ctx context.Context, tier string, hit bool)

	// RecordResolve records a completed resolution. op is "url" or "name".
	RecordResolve(ctx context.Context, op string, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	fetchRequests  metric.Int64Counter
	fetchErrors    metric.Int64Counter
	fetchLatency   metric.Float64Histogram
	fetchShared    metric.Int64Counter
	cacheHits      metric.Int64Counter
	cacheMisses    metric.Int64Counter
	resolves       metric.Int64Counter
	resolveLatency metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("iconkit")

	fetchRequests, err := meter.Int64Counter("iconkit.fetch.requests",
		metric.WithDescription("Number of settled icon fetches"),
	)
	if err != nil {
		return nil, err
	}

	fetchErrors, err := meter.Int64Counter("iconkit.fetch.errors",
		metric.WithDescription("Number of failed icon fetches"),
	)
	if err != nil {
		return nil, err
	}

	fetchLatency, err := meter.Float64Histogram("iconkit.fetch.latency_ms",
		metric.WithDescription("Icon fetch latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	fetchShared, err := meter.Int64Counter("iconkit.fetch.deduplicated",
		metric.WithDescription("Number of callers whose fetch was shared with another caller"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter("iconkit.cache.hits",
		metric.WithDescription("Number of icon cache hits"),
	)
	if err != nil {
		return nil, err
	}

	cacheMisses, err := meter.Int64Counter("iconkit.cache.misses",
		metric.WithDescription("Number of icon cache misses"),
	)
	if err != nil {
		return nil, err
	}

	resolves, err := meter.Int64Counter("iconkit.resolve.count",
		metric.WithDescription("Number of icon resolutions"),
	)
	if err != nil {
		return nil, err
	}

	resolveLatency, err := meter.Float64Histogram("iconkit.resolve.latency_ms",
		metric.WithDescription("Icon resolution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		fetchRequests:  fetchRequests,
		fetchErrors:    fetchErrors,
		fetchLatency:   fetchLatency,
		fetchShared:    fetchShared,
		cacheHits:      cacheHits,
		cacheMisses:    cacheMisses,
		resolves:       resolves,
		resolveLatency: resolveLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordFetch records a settled fetch.
func (m *otelMetrics) RecordFetch(ctx context.Context, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.Bool("success", err == nil))

	m.fetchRequests.Add(ctx, 1, attrs)
	m.fetchLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	if err != nil {
		m.fetchErrors.Add(ctx, 1)
	}
}

// RecordSharedFetch records a caller that shared a fetch.
func (m *otelMetrics) RecordSharedFetch(ctx context.Context) {
	m.fetchShared.Add(ctx, 1)
}

// RecordCacheLookup records a cache lookup.
func (m *otelMetrics) RecordCacheLookup(ctx context.Context, tier string, hit bool) {
	attrs := metric.WithAttributes(attribute.String("tier", tier))
	if hit {
		m.cacheHits.Add(ctx, 1, attrs)
		return
	}
	m.cacheMisses.Add(ctx, 1, attrs)
}

// RecordResolve records a resolution.
func (m *otelMetrics) RecordResolve(ctx context.Context, op string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("op", op),
		attribute.Bool("success", err == nil),
	)
	m.resolves.Add(ctx, 1, attrs)
	m.resolveLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}
