/*
Package retain keeps presenter objects alive across the destruction and
recreation of the views that use them.

# Overview

In MVP-style UIs the view object is torn down and rebuilt on events the
application does not control (window recreation, display changes), while the
presenter driving it should keep its state. retain stores live presenters in
a registry keyed by a UUID the view generates once; the recreated view uses
the same identifier to find its surviving presenter.

The library provides:
  - An explicitly owned, mutex-guarded Registry (no global singleton)
  - Typed recovery via generics instead of runtime casts
  - An embeddable Base presenter that buffers view actions while detached
  - Optional snapshot persistence (memory, SQLite) and restoration after
    process death
  - OpenTelemetry metrics and tracing, slog structured logging

# Basic Usage

Create a registry at the composition root and attach from views:

	type CounterView interface {
	    ShowCount(n int)
	}

	type CounterPresenter struct {
	    retain.Base[CounterView]
	    Count int
	}

	func (p *CounterPresenter) Increment() {
	    p.Count++
	    n := p.Count
	    p.Post(func(v CounterView) { v.ShowCount(n) })
	}

	registry := retain.New()

	// First creation: the view mints an identifier and registers.
	id := retain.NewID()
	p := &CounterPresenter{}
	if err := registry.Add(id, p); err != nil {
	    log.Fatal(err)
	}

	// After recreation: the view reattaches with the identifier it kept.
	p2, ok, err := retain.Lookup[*CounterPresenter](registry, id)
	// p2 == p, ok == true

	// Permanent close: notify and evict.
	_ = registry.Remove(id) // calls p.SetRemoved()

Attach combines both paths, creating only when absent:

	p, err := retain.AttachAs(registry, id, func() *CounterPresenter {
	    return &CounterPresenter{}
	})

# Restoration After Process Death

Presenters that implement Snapshotter can be persisted and rebuilt:

	store, _ := snapshot.NewSQLiteStore("./presenters.db")
	defer store.Close()

	// Before shutdown
	saved, err := registry.Persist(ctx, store)

	// After restart
	factories := retain.NewFactories()
	factories.MustRegister("counter", func() retain.Snapshotter {
	    return &CounterPresenter{}
	})
	restored, err := registry.RestoreAll(ctx, store, factories)

Each restored presenter receives OnRestore(ctx) after registration.

# Error Handling

Contract violations fail loudly with sentinel errors (ErrNilIdentifier,
ErrNilPresenter, ErrDuplicateIdentifier); a Get on an unknown identifier is
not an error and reports absence via its bool result:

	if err := registry.Add(id, p); errors.Is(err, retain.ErrDuplicateIdentifier) {
	    // identifier reused without an intervening Remove — caller bug
	}

# Observability

Enable logging, metrics, and tracing at construction:

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	registry := retain.New(
	    retain.WithLogger(logger),
	    retain.WithMetrics(true),
	    retain.WithTracing(true),
	)

OpenTelemetry metrics: retain.presenter.added, retain.presenter.removed,
retain.presenter.restored, retain.restore.latency_ms,
retain.snapshot.size_bytes. Tracing: retain.persist and retain.restore spans.

# Thread Safety

  - Registry IS safe for concurrent use (all operations mutex-guarded)
  - Base[V] IS safe for concurrent use
  - snapshot.Store implementations are safe for concurrent use

# Subpackages

  - snapshot: Snapshot storage (memory, SQLite)
  - config: Configuration loading (YAML/JSON) and Settings
  - observability: Logging, metrics, and tracing helpers
*/
package retain
