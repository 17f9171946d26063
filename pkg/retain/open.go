package retain

import (
	"log/slog"
	"os"

	"github.com/quadible/retain/pkg/retain/config"
	"github.com/quadible/retain/pkg/retain/snapshot"
)

// Open composes a registry and its snapshot store from resolved settings.
// This is the composition-root entry point: the caller owns both returned
// values and closes the store on shutdown.
//
// When settings.SnapshotPath is empty the returned store is nil and the
// registry is memory-only.
func Open(settings config.Settings) (*Registry, snapshot.Store, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: settings.LogLevel,
	}))

	registry := New(
		WithLogger(logger),
		WithMetrics(settings.Metrics),
		WithTracing(settings.Tracing),
	)

	if settings.SnapshotPath == "" {
		return registry, nil, nil
	}

	store, err := snapshot.NewSQLiteStore(settings.SnapshotPath)
	if err != nil {
		return nil, nil, err
	}
	return registry, store, nil
}
