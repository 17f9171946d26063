package retain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/quadible/retain/pkg/retain/observability"
	"github.com/quadible/retain/pkg/retain/snapshot"
)

// Persist writes a snapshot for every registered presenter that implements
// Snapshotter. Presenters that do not are skipped; they simply will not
// survive process death. Returns the number of snapshots written.
//
// Persist does not remove stale store records for presenters that were
// removed from the registry; pair it with store.Delete in Remove callers or
// store.Clear before a full pass if exact mirroring is needed.
func (r *Registry) Persist(ctx context.Context, store snapshot.Store) (int, error) {
	if store == nil {
		return 0, fmt.Errorf("snapshot store cannot be nil")
	}

	r.mu.RLock()
	candidates := make([]persistCandidate, 0, len(r.entries))
	for id, p := range r.entries {
		if s, ok := p.(Snapshotter); ok {
			candidates = append(candidates, persistCandidate{id: id, s: s})
		}
	}
	r.mu.RUnlock()

	var span trace.Span
	if r.tracing {
		ctx, span = observability.StartPersistSpan(ctx, len(candidates))
	}

	saved, err := r.persistAll(ctx, store, candidates)

	if span != nil {
		observability.EndSpanWithError(span, err)
	}
	return saved, err
}

// persistCandidate pairs a snapshottable presenter with its identifier.
type persistCandidate struct {
	id uuid.UUID
	s  Snapshotter
}

// persistAll snapshots each candidate into the store.
func (r *Registry) persistAll(ctx context.Context, store snapshot.Store, candidates []persistCandidate) (int, error) {
	saved := 0
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return saved, err
		}

		kind := c.s.Kind()
		state, err := c.s.Snapshot()
		if err != nil {
			return saved, fmt.Errorf("snapshot %s (kind %s): %w", c.id, kind, err)
		}
		if err := store.Save(c.id, kind, state); err != nil {
			return saved, fmt.Errorf("save %s (kind %s): %w", c.id, kind, err)
		}
		saved++

		observability.LogSnapshot(r.logger, c.id, kind, len(state))
		r.metrics.RecordSnapshot(ctx, kind, int64(len(state)))
	}
	return saved, nil
}

// RestoreAll rebuilds presenters from every record in the store and
// registers them under their original identifiers. Each restored presenter
// is notified via OnRestore after registration, so views that reattach by
// identifier find it fully rehydrated.
//
// Records whose kind has no registered factory are logged and skipped, not
// fatal: an upgrade may have removed a presenter type while its snapshot
// lingers. A factory, Restore, registration, or OnRestore failure aborts
// the pass with a *RestoreError; earlier restorations remain registered.
// Returns the number of presenters restored.
func (r *Registry) RestoreAll(ctx context.Context, store snapshot.Store, factories *Factories) (int, error) {
	if store == nil {
		return 0, fmt.Errorf("snapshot store cannot be nil")
	}
	if factories == nil {
		return 0, fmt.Errorf("factories cannot be nil")
	}

	infos, err := store.List()
	if err != nil {
		return 0, fmt.Errorf("list snapshots: %w", err)
	}

	var span trace.Span
	if r.tracing {
		ctx, span = observability.StartRestoreSpan(ctx, len(infos))
	}
	observability.LogRestoreStart(r.logger, len(infos))
	done := observability.TimedOperation()
	start := time.Now()

	restored, skipped, err := r.restoreRecords(ctx, store, factories, infos)

	observability.LogRestoreComplete(r.logger, restored, skipped, done())
	r.metrics.RecordRestore(ctx, time.Since(start), err)
	if span != nil {
		observability.EndSpanWithError(span, err)
	}
	return restored, err
}

// restoreRecords rebuilds one presenter per snapshot record.
func (r *Registry) restoreRecords(ctx context.Context, store snapshot.Store, factories *Factories, infos []snapshot.Info) (restored, skipped int, err error) {
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return restored, skipped, err
		}

		factory, ok := factories.Lookup(info.Kind)
		if !ok {
			observability.LogUnknownKind(r.logger, info.ID, info.Kind)
			skipped++
			continue
		}

		rec, err := store.Load(info.ID)
		if err != nil {
			return restored, skipped, &RestoreError{ID: info.ID, Kind: info.Kind, Op: "load", Err: err}
		}

		p := factory()
		if p == nil {
			return restored, skipped, &RestoreError{ID: info.ID, Kind: info.Kind, Op: "build", Err: ErrNilPresenter}
		}
		if err := p.Restore(rec.State); err != nil {
			observability.LogRestoreError(r.logger, info.ID, info.Kind, err)
			return restored, skipped, &RestoreError{ID: info.ID, Kind: info.Kind, Op: "restore", Err: err}
		}
		if err := r.Add(info.ID, p); err != nil {
			return restored, skipped, &RestoreError{ID: info.ID, Kind: info.Kind, Op: "register", Err: err}
		}
		if err := p.OnRestore(ctx); err != nil {
			observability.LogRestoreError(r.logger, info.ID, info.Kind, err)
			return restored, skipped, &RestoreError{ID: info.ID, Kind: info.Kind, Op: "on_restore", Err: err}
		}
		restored++
	}
	return restored, skipped, nil
}
