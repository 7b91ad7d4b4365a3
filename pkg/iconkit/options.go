package iconkit

import (
	"log/slog"

	"github.com/randalmurphal/iconkit/pkg/iconkit/cache"
	"github.com/randalmurphal/iconkit/pkg/iconkit/fetch"
	"github.com/randalmurphal/iconkit/pkg/iconkit/observability"
	"github.com/randalmurphal/iconkit/pkg/iconkit/sanitize"
)

// Option configures a Registry.
type Option func(*Registry)

// WithFetcher sets the capability used to load icons by URL.
// Without one, resolving anything that needs a fetch fails with ErrNoFetcher.
//
// Example:
//
//	reg := iconkit.New(iconkit.WithFetcher(fetch.NewHTTPFetcher()))
func WithFetcher(f fetch.Fetcher) Option {
	return func(r *Registry) {
		r.fetcher = f
	}
}

// WithSanitizer replaces the default sanitizer for URLs and inline markup.
func WithSanitizer(s sanitize.Sanitizer) Option {
	return func(r *Registry) {
		if s != nil {
			r.sanitizer = s
		}
	}
}

// WithLogger sets the logger. Default: slog.Default(). Nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics using the global meter provider.
// Default: false
func WithMetrics(enabled bool) Option {
	return func(r *Registry) {
		if enabled {
			r.metrics = observability.NewMetricsRecorder()
		} else {
			r.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry tracing using the global tracer provider.
// Default: false
func WithTracing(enabled bool) Option {
	return func(r *Registry) {
		if enabled {
			r.spans = observability.NewSpanManager()
		} else {
			r.spans = observability.NoopSpanManager{}
		}
	}
}

// WithMetricsRecorder sets a custom metrics recorder.
func WithMetricsRecorder(m observability.MetricsRecorder) Option {
	return func(r *Registry) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithSpanManager sets a custom span manager.
func WithSpanManager(s observability.SpanManager) Option {
	return func(r *Registry) {
		if s != nil {
			r.spans = s
		}
	}
}

// WithCacheStore adds a persistent tier holding raw fetched documents.
// The store is consulted before the fetcher and cleared by Dispose.
// The registry does not close it.
func WithCacheStore(s cache.Store) Option {
	return func(r *Registry) {
		r.store = s
	}
}

// WithMaxConcurrentFetches bounds how many icon sets a single ResolveByName
// fetches at once. Zero or negative means no limit.
func WithMaxConcurrentFetches(n int) Option {
	return func(r *Registry) {
		if n < 0 {
			n = 0
		}
		r.maxConcurrentFetches = n
	}
}
