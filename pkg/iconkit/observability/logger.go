// Package observability provides logging, metrics, and tracing for iconkit.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds resolution context to a logger.
// Returns a new logger with resolve_id and op fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "5f0c...", "resolve_name")
//	enriched.Info("resolving") // includes resolve_id, op
func EnrichLogger(logger *slog.Logger, resolveID, op string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("resolve_id", resolveID),
		slog.String("op", op),
	)
}

// LogResolveStart logs the start of a resolution.
func LogResolveStart(logger *slog.Logger, target string) {
	if logger == nil {
		return
	}
	logger.Debug("icon resolve starting",
		slog.String("target", target),
	)
}

// LogResolveComplete logs a successful resolution.
// source says where the icon came from: "cache", "inline", "fetch" or "set".
func LogResolveComplete(logger *slog.Logger, target, source string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("icon resolved",
		slog.String("target", target),
		slog.String("source", source),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogResolveError logs a failed resolution.
func LogResolveError(logger *slog.Logger, target string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Warn("icon resolve failed",
		slog.String("target", target),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogFetchStart logs the start of a network fetch.
func LogFetchStart(logger *slog.Logger, url string) {
	if logger == nil {
		return
	}
	logger.Debug("icon fetch starting",
		slog.String("url", url),
	)
}

// LogFetchComplete logs a completed fetch.
// fromStore is true when the text came from the persistent cache store.
func LogFetchComplete(logger *slog.Logger, url string, durationMs float64, sizeBytes int, fromStore bool) {
	if logger == nil {
		return
	}
	logger.Debug("icon fetch completed",
		slog.String("url", url),
		slog.Float64("duration_ms", durationMs),
		slog.Int("size_bytes", sizeBytes),
		slog.Bool("from_store", fromStore),
	)
}

// LogFetchError logs a failed fetch.
func LogFetchError(logger *slog.Logger, url string, err error, category string) {
	if logger == nil {
		return
	}
	logger.Error("icon fetch failed",
		slog.String("url", url),
		slog.String("error", err.Error()),
		slog.String("category", category),
	)
}

// LogSetLoadFailed logs an icon set that could not be loaded during a
// name search. The search carries on without it (non-fatal).
func LogSetLoadFailed(logger *slog.Logger, namespace, url string, err error, category string) {
	if logger == nil {
		return
	}
	logger.Warn("loading icon set failed",
		slog.String("namespace", namespace),
		slog.String("url", url),
		slog.String("error", err.Error()),
		slog.String("category", category),
	)
}

// LogStoreError logs a cache store failure (non-fatal).
func LogStoreError(logger *slog.Logger, op, url string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("icon cache store failed",
		slog.String("operation", op),
		slog.String("url", url),
		slog.String("error", err.Error()),
	)
}

// LogDispose logs registry teardown.
func LogDispose(logger *slog.Logger, icons, sets, cachedURLs int) {
	if logger == nil {
		return
	}
	logger.Debug("icon registry disposed",
		slog.Int("icons", icons),
		slog.Int("icon_sets", sets),
		slog.Int("cached_urls", cachedURLs),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
