package retain

import (
	"log/slog"

	"github.com/quadible/retain/pkg/retain/observability"
)

// registryConfig holds construction-time configuration for a Registry.
type registryConfig struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	tracing bool
}

// defaultConfig returns the default registry configuration: no logging,
// no-op metrics, tracing disabled.
func defaultConfig() registryConfig {
	return registryConfig{
		metrics: observability.NoopMetrics{},
	}
}

// Option configures a Registry at construction.
type Option func(*registryConfig)

// WithLogger enables structured logging of registry operations.
// A nil logger disables logging (the default).
func WithLogger(logger *slog.Logger) Option {
	return func(c *registryConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics for registry operations.
//
// The recorder uses the global OTel meter provider; configure the provider
// before constructing the registry.
func WithMetrics(enabled bool) Option {
	return func(c *registryConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithMetricsRecorder sets a custom metrics recorder. A nil recorder
// disables metrics.
func WithMetricsRecorder(recorder observability.MetricsRecorder) Option {
	return func(c *registryConfig) {
		if recorder == nil {
			recorder = observability.NoopMetrics{}
		}
		c.metrics = recorder
	}
}

// WithTracing enables OpenTelemetry spans around Persist and RestoreAll.
//
// Spans use the global OTel tracer provider; configure the provider before
// constructing the registry.
func WithTracing(enabled bool) Option {
	return func(c *registryConfig) {
		c.tracing = enabled
	}
}
