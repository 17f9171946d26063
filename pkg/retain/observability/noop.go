package observability

import (
	"context"
	"time"
)

// NoopMetrics is a MetricsRecorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordAdd does nothing.
func (NoopMetrics) RecordAdd(_ context.Context) {}

// RecordRemove does nothing.
func (NoopMetrics) RecordRemove(_ context.Context) {}

// RecordRestore does nothing.
func (NoopMetrics) RecordRestore(_ context.Context, _ time.Duration, _ error) {}

// RecordSnapshot does nothing.
func (NoopMetrics) RecordSnapshot(_ context.Context, _ string, _ int64) {}
