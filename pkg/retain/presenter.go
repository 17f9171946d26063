package retain

import (
	"context"
	"sync"
)

// Presenter holds view-independent application logic that must outlive the
// view objects using it. Implementations are registered under a UUID and
// recovered by the recreated view.
type Presenter interface {
	// OnRestore is invoked after the presenter has been rebuilt from a
	// snapshot following process death, before the view reattaches.
	OnRestore(ctx context.Context) error

	// SetRemoved notifies the presenter that its registry entry has been
	// permanently discarded. No further views will attach.
	SetRemoved()
}

// Snapshotter is implemented by presenters whose state can be captured and
// rebuilt across process death. Kind must be stable across releases; it
// selects the factory used during restoration.
type Snapshotter interface {
	Presenter

	// Kind returns the stable name of this presenter type.
	Kind() string

	// Snapshot serializes the presenter's restorable state.
	Snapshot() ([]byte, error)

	// Restore rehydrates a freshly constructed presenter from state
	// previously produced by Snapshot.
	Restore(state []byte) error
}

// Base is an embeddable presenter that manages view attachment and buffers
// view actions while no view is attached. Actions posted while detached are
// replayed in order when the next view attaches; removal drops them.
//
// Base satisfies the Presenter interface with a no-op OnRestore, so concrete
// presenters only override what they need. All methods are safe for
// concurrent use.
type Base[V any] struct {
	mu       sync.Mutex
	view     V
	attached bool
	removed  bool
	pending  []func(V)
}

// AttachView binds a view and flushes any actions buffered while detached.
// Attaching after removal is a no-op.
func (b *Base[V]) AttachView(view V) {
	b.mu.Lock()
	if b.removed {
		b.mu.Unlock()
		return
	}
	b.view = view
	b.attached = true
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	// Run buffered actions outside the lock; they may call back into Base.
	for _, action := range pending {
		action(view)
	}
}

// DetachView unbinds the current view. Actions posted afterwards are
// buffered until the next AttachView.
func (b *Base[V]) DetachView() {
	b.mu.Lock()
	defer b.mu.Unlock()
	var zero V
	b.view = zero
	b.attached = false
}

// View returns the attached view and whether one is currently attached.
func (b *Base[V]) View() (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view, b.attached
}

// Post runs action against the attached view, or buffers it for replay on
// the next attach when detached. Actions posted after removal are dropped.
func (b *Base[V]) Post(action func(V)) {
	b.mu.Lock()
	if b.removed {
		b.mu.Unlock()
		return
	}
	if !b.attached {
		b.pending = append(b.pending, action)
		b.mu.Unlock()
		return
	}
	view := b.view
	b.mu.Unlock()

	action(view)
}

// Pending returns the number of actions buffered for the next attach.
func (b *Base[V]) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// OnRestore implements Presenter. The default does nothing.
func (b *Base[V]) OnRestore(ctx context.Context) error {
	return nil
}

// SetRemoved implements Presenter. It detaches the view and drops any
// buffered actions. SetRemoved is idempotent.
func (b *Base[V]) SetRemoved() {
	b.mu.Lock()
	defer b.mu.Unlock()
	var zero V
	b.view = zero
	b.attached = false
	b.removed = true
	b.pending = nil
}

// Removed reports whether SetRemoved has been called.
func (b *Base[V]) Removed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.removed
}
