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

// MetricsRecorder records retain metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordAdd records a presenter registration.
	RecordAdd(ctx context.Context)

	// RecordRemove records a presenter removal.
	RecordRemove(ctx context.Context)

	// RecordRestore records a restoration pass with its duration and error status.
	RecordRestore(ctx context.Context, duration time.Duration, err error)

	// RecordSnapshot records a snapshot save for a presenter kind.
	RecordSnapshot(ctx context.Context, kind string, sizeBytes int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	added          metric.Int64Counter
	removed        metric.Int64Counter
	restored       metric.Int64Counter
	restoreLatency metric.Float64Histogram
	snapshotSize   metric.Int64Histogram
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
	meter := otel.Meter("retain")

	added, err := meter.Int64Counter("retain.presenter.added",
		metric.WithDescription("Number of presenters registered"),
	)
	if err != nil {
		return nil, err
	}

	removed, err := meter.Int64Counter("retain.presenter.removed",
		metric.WithDescription("Number of presenters removed"),
	)
	if err != nil {
		return nil, err
	}

	restored, err := meter.Int64Counter("retain.presenter.restored",
		metric.WithDescription("Number of restoration passes"),
	)
	if err != nil {
		return nil, err
	}

	restoreLatency, err := meter.Float64Histogram("retain.restore.latency_ms",
		metric.WithDescription("Restoration pass latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	snapshotSize, err := meter.Int64Histogram("retain.snapshot.size_bytes",
		metric.WithDescription("Snapshot size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		added:          added,
		removed:        removed,
		restored:       restored,
		restoreLatency: restoreLatency,
		snapshotSize:   snapshotSize,
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

// RecordAdd records a presenter registration.
func (m *otelMetrics) RecordAdd(ctx context.Context) {
	m.added.Add(ctx, 1)
}

// RecordRemove records a presenter removal.
func (m *otelMetrics) RecordRemove(ctx context.Context) {
	m.removed.Add(ctx, 1)
}

// RecordRestore records a restoration pass.
func (m *otelMetrics) RecordRestore(ctx context.Context, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
	}
	m.restored.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.restoreLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordSnapshot records a snapshot save.
func (m *otelMetrics) RecordSnapshot(ctx context.Context, kind string, sizeBytes int64) {
	attrs := []attribute.KeyValue{
		attribute.String("kind", kind),
	}
	m.snapshotSize.Record(ctx, sizeBytes, metric.WithAttributes(attrs...))
}
