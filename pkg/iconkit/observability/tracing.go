package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope of iconkit spans.
const tracerName = "iconkit"

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartResolveSpan starts a span for one resolution.
	// op is "url" or "name"; target is the URL or the icon key.
	StartResolveSpan(ctx context.Context, op, target, resolveID string) (context.Context, trace.Span)

	// StartFetchSpan starts a span for a shared fetch.
	StartFetchSpan(ctx context.Context, url string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager binds the global OTel tracer provider at construction.
// Configure the provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{tracer: otel.Tracer(tracerName)}
}

// StartResolveSpan starts a span for a resolution.
func (m *otelSpanManager) StartResolveSpan(ctx context.Context, op, target, resolveID string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "iconkit.resolve."+op,
		trace.WithAttributes(
			attribute.String("icon.target", target),
			attribute.String("resolve.id", resolveID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartFetchSpan starts a span for a fetch.
func (m *otelSpanManager) StartFetchSpan(ctx context.Context, url string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "iconkit.fetch",
		trace.WithAttributes(
			attribute.String("url.full", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
