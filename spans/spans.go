// Package spans runs functions inside OpenTelemetry spans. The tracer is
// carried in the context; without one the function runs untraced and the
// gap is counted in sortedlist_spans_without_tracer_total.
package spans

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const tracerKey contextKey = "tracer"

var spanWithoutTracerCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "sortedlist",
		Subsystem: "spans",
		Name:      "without_tracer_total",
		Help:      "Total number of span executions without a tracer in context",
	},
	[]string{"span_name"},
)

// WithTracer stores tracer in the context for Run.
//
//	ctx = spans.WithTracer(ctx, otel.Tracer("sortedlist-soak"))
func WithTracer(ctx context.Context, tracer trace.Tracer) context.Context {
	return context.WithValue(ctx, tracerKey, tracer)
}

// TracerFromContext returns the tracer stored by WithTracer.
func TracerFromContext(ctx context.Context) (trace.Tracer, bool) {
	tracer, ok := ctx.Value(tracerKey).(trace.Tracer)

	return tracer, ok && tracer != nil
}

// Option configures a span started by Run.
type Option func(*runner)

// WithAttributes adds attributes to the span when it starts.
func WithAttributes(attrs ...attribute.KeyValue) Option {
	return func(r *runner) {
		r.attrs = append(r.attrs, attrs...)
	}
}

// WithErrorMessage prefixes the span status description on failure.
func WithErrorMessage(description string) Option {
	return func(r *runner) {
		r.failure = description
	}
}

// WithSpanKind overrides the default internal span kind.
func WithSpanKind(kind trace.SpanKind) Option {
	return func(r *runner) {
		r.kind = kind
	}
}

type runner struct {
	attrs   []attribute.KeyValue
	failure string
	kind    trace.SpanKind
}

// Run calls f inside a span named name. An error from f is recorded on the
// span and sets its status to Error. A panic is marked on the span and
// re-raised after the span ends.
func Run(
	ctx context.Context, name string,
	f func(ctx context.Context, span trace.Span) error,
	opts ...Option,
) (err error) {
	tracer, found := TracerFromContext(ctx)
	if !found {
		spanWithoutTracerCounter.WithLabelValues(name).Inc()

		return f(ctx, trace.SpanFromContext(ctx))
	}

	r := &runner{kind: trace.SpanKindInternal}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	ctx, span := tracer.Start(ctx, name, trace.WithSpanKind(r.kind), trace.WithAttributes(r.attrs...))
	defer span.End()

	defer func() {
		if p := recover(); p != nil {
			span.SetAttributes(attribute.Bool("panic", true))
			span.SetStatus(codes.Error, fmt.Sprintf("panic: %v", p))

			panic(p)
		}
	}()

	err = f(ctx, span)
	if err != nil {
		span.RecordError(err)

		if r.failure != "" {
			span.SetStatus(codes.Error, r.failure+": "+err.Error())
		} else {
			span.SetStatus(codes.Error, err.Error())
		}

		return err
	}

	span.SetStatus(codes.Ok, "ok")

	return nil
}
