package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RegistryOperation represents the type of topic registry operation
// being traced.
type RegistryOperation string

const (
	// RegistryOperationEnumerate represents a full registry fetch.
	RegistryOperationEnumerate RegistryOperation = "enumerate"
	// RegistryOperationPing represents a connectivity check.
	RegistryOperationPing RegistryOperation = "ping"
)

// StartScoringSpan creates a new span for one scoring pass over a batch
// of content items. Returns the new context and a function to end the
// span.
//
// Example usage:
//
//	ctx, endSpan := tracing.StartScoringSpan(ctx, len(items))
//	defer endSpan(err)
func StartScoringSpan(ctx context.Context, itemCount int) (context.Context, func(error)) {
	tracer := otel.Tracer("newsrelevance/scoring")

	ctx, span := tracer.Start(ctx, "score_items",
		trace.WithAttributes(
			attribute.Int("scoring.item_count", itemCount),
		),
	)

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

// StartRegistrySpan creates a new span for a topic registry operation.
// Returns the new context and a function to end the span.
func StartRegistrySpan(ctx context.Context, operation RegistryOperation) (context.Context, func(error)) {
	tracer := otel.Tracer("newsrelevance/registry")

	ctx, span := tracer.Start(ctx, string(operation),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("registry.operation", string(operation)),
		),
	)

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

// StartSpan creates a new span for a general operation.
// Returns the new context and a function to end the span.
func StartSpan(ctx context.Context, name string) (context.Context, func(error)) {
	tracer := otel.Tracer("newsrelevance")

	ctx, span := tracer.Start(ctx, name)

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

// AddEvent adds an event to the current span.
func AddEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// SetAttributes sets attributes on the current span.
func SetAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attrs...)
}
