package observe

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Dispatch kinds recorded by a Recorder.
const (
	KindGetter = "getter"
	KindSetter = "setter"
	KindMiss   = "miss"
)

// Recorder records accessor dispatch metrics.
// Use NewRecorder() for OTel metrics or NoopRecorder{} when disabled.
type Recorder interface {
	// RecordDispatch records one Call through the dispatch table.
	// kind is KindGetter, KindSetter, or KindMiss.
	RecordDispatch(ctx context.Context, schema, method, kind string, err error)

	// RecordTypeMismatch records a setter value rejected by a type check.
	RecordTypeMismatch(ctx context.Context, schema, field string)
}

// otelRecorder implements Recorder using OpenTelemetry.
type otelRecorder struct {
	dispatches     metric.Int64Counter
	dispatchErrors metric.Int64Counter
	typeMismatches metric.Int64Counter
}

var (
	defaultRecorder     *otelRecorder
	defaultRecorderOnce sync.Once
	defaultRecorderErr  error
)

// getDefaultRecorder returns the default OTel recorder instance,
// lazily initialized on first call.
func getDefaultRecorder() (*otelRecorder, error) {
	defaultRecorderOnce.Do(func() {
		defaultRecorder, defaultRecorderErr = newOtelRecorder()
	})
	return defaultRecorder, defaultRecorderErr
}

// newOtelRecorder creates a new OTel recorder.
func newOtelRecorder() (*otelRecorder, error) {
	meter := otel.Meter("propkit")

	dispatches, err := meter.Int64Counter("propkit.dispatch.calls",
		metric.WithDescription("Number of accessor calls routed through the dispatch table"),
	)
	if err != nil {
		return nil, err
	}

	dispatchErrors, err := meter.Int64Counter("propkit.dispatch.errors",
		metric.WithDescription("Number of accessor calls that returned an error"),
	)
	if err != nil {
		return nil, err
	}

	typeMismatches, err := meter.Int64Counter("propkit.typecheck.failures",
		metric.WithDescription("Number of setter values rejected by a declared type"),
	)
	if err != nil {
		return nil, err
	}

	return &otelRecorder{
		dispatches:     dispatches,
		dispatchErrors: dispatchErrors,
		typeMismatches: typeMismatches,
	}, nil
}

// NewRecorder returns a Recorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewRecorder() Recorder {
	r, err := getDefaultRecorder()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopRecorder{}
	}
	return r
}

// RecordDispatch records one dispatched call.
func (r *otelRecorder) RecordDispatch(ctx context.Context, schema, method, kind string, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("schema", schema),
		attribute.String("kind", kind),
	}

	r.dispatches.Add(ctx, 1, metric.WithAttributes(attrs...))

	if err != nil {
		r.dispatchErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordTypeMismatch records a rejected setter value.
func (r *otelRecorder) RecordTypeMismatch(ctx context.Context, schema, field string) {
	r.typeMismatches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("schema", schema),
		attribute.String("field", field),
	))
}
