package retain

import "sync"

// Factory constructs an empty presenter of a registered kind, ready to have
// Restore called on it.
type Factory func() Snapshotter

// Factories maps presenter kinds to constructors. It drives reconstruction
// of presenters from snapshot records after process death.
//
// Kinds are registered once, typically at startup. Registering the same
// kind twice fails: a silent replacement would make restoration depend on
// registration order.
type Factories struct {
	mu     sync.RWMutex
	byKind map[string]Factory
}

// NewFactories creates an empty factory set.
func NewFactories() *Factories {
	return &Factories{
		byKind: make(map[string]Factory),
	}
}

// Register adds a constructor for kind. It fails with ErrEmptyKind,
// ErrNilFactory, or ErrDuplicateKind.
func (f *Factories) Register(kind string, factory Factory) error {
	if kind == "" {
		return ErrEmptyKind
	}
	if factory == nil {
		return ErrNilFactory
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.byKind[kind]; exists {
		return ErrDuplicateKind
	}
	f.byKind[kind] = factory
	return nil
}

// MustRegister panics on registration error. Useful from init() blocks.
func (f *Factories) MustRegister(kind string, factory Factory) {
	if err := f.Register(kind, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the constructor for kind, if registered.
func (f *Factories) Lookup(kind string) (Factory, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	factory, ok := f.byKind[kind]
	return factory, ok
}

// Has reports whether a constructor is registered for kind.
func (f *Factories) Has(kind string) bool {
	_, ok := f.Lookup(kind)
	return ok
}

// Kinds returns all registered kinds. The order is not guaranteed.
func (f *Factories) Kinds() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	kinds := make([]string, 0, len(f.byKind))
	for kind := range f.byKind {
		kinds = append(kinds, kind)
	}
	return kinds
}
