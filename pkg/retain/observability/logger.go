// Package observability provides production-grade observability features
// for retain: structured logging, metrics, and distributed tracing.
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

	"github.com/google/uuid"
)

// EnrichLogger adds presenter context to a logger.
// Returns a new logger with presenter_id and kind fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, id, "counter")
//	enriched.Info("restoring") // includes presenter_id, kind
func EnrichLogger(logger *slog.Logger, id uuid.UUID, kind string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("presenter_id", id.String()),
		slog.String("kind", kind),
	)
}

// LogAdd logs a presenter registration.
func LogAdd(logger *slog.Logger, id uuid.UUID, size int) {
	if logger == nil {
		return
	}
	logger.Debug("presenter registered",
		slog.String("presenter_id", id.String()),
		slog.Int("registry_size", size),
	)
}

// LogRemove logs a presenter removal.
func LogRemove(logger *slog.Logger, id uuid.UUID, size int) {
	if logger == nil {
		return
	}
	logger.Debug("presenter removed",
		slog.String("presenter_id", id.String()),
		slog.Int("registry_size", size),
	)
}

// LogSnapshot logs a snapshot save.
func LogSnapshot(logger *slog.Logger, id uuid.UUID, kind string, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("snapshot saved",
		slog.String("presenter_id", id.String()),
		slog.String("kind", kind),
		slog.Int("size_bytes", sizeBytes),
	)
}

// LogRestoreStart logs the start of a restoration pass.
func LogRestoreStart(logger *slog.Logger, records int) {
	if logger == nil {
		return
	}
	logger.Info("restoration starting",
		slog.Int("records", records),
	)
}

// LogRestoreComplete logs a completed restoration pass.
func LogRestoreComplete(logger *slog.Logger, restored, skipped int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("restoration completed",
		slog.Int("restored", restored),
		slog.Int("skipped", skipped),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogRestoreError logs a failed presenter restoration.
func LogRestoreError(logger *slog.Logger, id uuid.UUID, kind string, err error) {
	if logger == nil {
		return
	}
	logger.Error("presenter restore failed",
		slog.String("presenter_id", id.String()),
		slog.String("kind", kind),
		slog.String("error", err.Error()),
	)
}

// LogUnknownKind logs a snapshot record skipped for lack of a factory.
func LogUnknownKind(logger *slog.Logger, id uuid.UUID, kind string) {
	if logger == nil {
		return
	}
	logger.Warn("no factory for snapshot kind, skipping",
		slog.String("presenter_id", id.String()),
		slog.String("kind", kind),
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
		return float64(time.Since(start).Milliseconds())
	}
}
