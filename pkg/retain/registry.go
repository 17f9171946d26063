package retain

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/quadible/retain/pkg/retain/observability"
)

// presenterIsNil reports whether p is nil or a nil pointer wrapped in a
// non-nil interface. A typed nil from a factory or caller would otherwise
// pass the plain == nil check, enter the registry, and panic on the first
// SetRemoved call.
func presenterIsNil(p Presenter) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// NewID mints a fresh identifier for associating a view with its presenter.
// Views generate the identifier once, on first creation, and carry it across
// their own destroy/recreate cycles.
func NewID() uuid.UUID {
	return uuid.New()
}

// Registry stores live presenters keyed by identifier so they survive the
// destruction and recreation of the views that use them. It holds
// in-process state only; persistence across process death goes through
// Persist and RestoreAll with a snapshot.Store.
//
// A Registry is safe for concurrent use. Construct one with New and own it
// at the application's composition root; there is no package-level instance.
type Registry struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]Presenter

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	tracing bool
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Registry{
		entries: make(map[uuid.UUID]Presenter),
		logger:  cfg.logger,
		metrics: cfg.metrics,
		tracing: cfg.tracing,
	}
}

// Add stores presenter under id. It fails with ErrNilIdentifier or
// ErrNilPresenter on absent arguments and with a *DuplicateIDError when id
// is already registered; the existing entry is left untouched in that case.
func (r *Registry) Add(id uuid.UUID, presenter Presenter) error {
	if id == uuid.Nil {
		return ErrNilIdentifier
	}
	if presenterIsNil(presenter) {
		return ErrNilPresenter
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		return &DuplicateIDError{ID: id}
	}
	r.entries[id] = presenter

	observability.LogAdd(r.logger, id, len(r.entries))
	r.metrics.RecordAdd(context.Background())
	return nil
}

// Get returns the presenter stored under id. An unknown id is not an error:
// Get returns (nil, false, nil), and distinguishing "never existed" from
// "removed" is the caller's bookkeeping. Only a nil id fails.
func (r *Registry) Get(id uuid.UUID) (Presenter, bool, error) {
	if id == uuid.Nil {
		return nil, false, ErrNilIdentifier
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.entries[id]
	return p, ok, nil
}

// Remove discards the entry under id, notifying the presenter via
// SetRemoved() before eviction. Removing an identifier that was never added
// (or was already removed) is a no-op. Only a nil id fails.
func (r *Registry) Remove(id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrNilIdentifier
	}

	r.mu.Lock()
	p, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	remaining := len(r.entries)
	r.mu.Unlock()

	if !ok {
		return nil
	}

	// Notify outside the lock; SetRemoved may take presenter-internal locks.
	p.SetRemoved()

	observability.LogRemove(r.logger, id, remaining)
	r.metrics.RecordRemove(context.Background())
	return nil
}

// Has reports whether a presenter is stored under id.
func (r *Registry) Has(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[id]
	return ok
}

// Len returns the number of registered presenters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// IDs returns the identifiers of all registered presenters.
// The order is not guaranteed.
func (r *Registry) IDs() []uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	return ids
}

// Range iterates over all entries. If fn returns false, iteration stops.
//
// Range iterates over a snapshot of the registry, so it is safe to call
// Add or Remove during iteration without affecting the current iteration.
func (r *Registry) Range(fn func(uuid.UUID, Presenter) bool) {
	r.mu.RLock()
	snapshot := make(map[uuid.UUID]Presenter, len(r.entries))
	for id, p := range r.entries {
		snapshot[id] = p
	}
	r.mu.RUnlock()

	for id, p := range snapshot {
		if !fn(id, p) {
			return
		}
	}
}

// Attach returns the presenter stored under id, creating and registering
// one with factory if absent. This is the reattach path for a recreated
// view: the first creation registers, later recreations find the survivor.
// The factory is called at most once per id, even under concurrent access.
func (r *Registry) Attach(id uuid.UUID, factory func() Presenter) (Presenter, error) {
	if id == uuid.Nil {
		return nil, ErrNilIdentifier
	}
	if factory == nil {
		return nil, ErrNilFactory
	}

	// Fast path: already registered.
	r.mu.RLock()
	p, ok := r.entries[id]
	r.mu.RUnlock()
	if ok {
		return p, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring the write lock.
	if p, ok := r.entries[id]; ok {
		return p, nil
	}

	p = factory()
	if presenterIsNil(p) {
		return nil, ErrNilPresenter
	}
	r.entries[id] = p

	observability.LogAdd(r.logger, id, len(r.entries))
	r.metrics.RecordAdd(context.Background())
	return p, nil
}

// Lookup returns the presenter stored under id as its concrete type P.
// An unknown id returns (zero, false, nil). Requesting a type other than
// the one stored fails with a *TypeMismatchError.
func Lookup[P Presenter](r *Registry, id uuid.UUID) (P, bool, error) {
	var zero P

	p, ok, err := r.Get(id)
	if err != nil || !ok {
		return zero, false, err
	}

	typed, ok := p.(P)
	if !ok {
		return zero, false, &TypeMismatchError{
			ID:   id,
			Want: fmt.Sprintf("%T", zero),
			Got:  fmt.Sprintf("%T", p),
		}
	}
	return typed, true, nil
}

// AttachAs is the typed variant of Attach. A presenter already stored under
// id with a different concrete type fails with a *TypeMismatchError.
func AttachAs[P Presenter](r *Registry, id uuid.UUID, factory func() P) (P, error) {
	var zero P

	if factory == nil {
		return zero, ErrNilFactory
	}
	p, err := r.Attach(id, func() Presenter { return factory() })
	if err != nil {
		return zero, err
	}

	typed, ok := p.(P)
	if !ok {
		return zero, &TypeMismatchError{
			ID:   id,
			Want: fmt.Sprintf("%T", zero),
			Got:  fmt.Sprintf("%T", p),
		}
	}
	return typed, nil
}
