package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the retain tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("retain")

// StartPersistSpan starts a span for a full registry persist pass.
func StartPersistSpan(ctx context.Context, presenters int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "retain.persist",
		trace.WithAttributes(
			attribute.Int("presenters", presenters),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartRestoreSpan starts a span for a full restoration pass.
func StartRestoreSpan(ctx context.Context, records int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "retain.restore",
		trace.WithAttributes(
			attribute.Int("records", records),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
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

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
