package snapshot

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory snapshot store for tests and ephemeral use.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[uuid.UUID]storedRecord
	closed bool
}

// storedRecord holds snapshot data with metadata for List().
type storedRecord struct {
	kind      string
	state     []byte
	sequence  int
	timestamp time.Time
}

// NewMemoryStore creates a new in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[uuid.UUID]storedRecord),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(id uuid.UUID, kind string, state []byte) error {
	if id == uuid.Nil {
		return ErrNilID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Determine sequence number
	seq := 1
	for _, rec := range m.data {
		if rec.sequence >= seq {
			seq = rec.sequence + 1
		}
	}

	// Copy state to avoid retaining the caller's slice
	stored := make([]byte, len(state))
	copy(stored, state)

	m.data[id] = storedRecord{
		kind:      kind,
		state:     stored,
		sequence:  seq,
		timestamp: time.Now().UTC(),
	}

	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(id uuid.UUID) (Record, error) {
	if id == uuid.Nil {
		return Record{}, ErrNilID
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Record{}, ErrStoreClosed
	}

	rec, ok := m.data[id]
	if !ok {
		return Record{}, ErrNotFound
	}

	// Return a copy to prevent modification
	state := make([]byte, len(rec.state))
	copy(state, rec.state)

	return Record{
		ID:        id,
		Kind:      rec.kind,
		State:     state,
		Timestamp: rec.timestamp,
	}, nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.data))
	seqs := make(map[uuid.UUID]int, len(m.data))
	for id, rec := range m.data {
		seqs[id] = rec.sequence
		infos = append(infos, Info{
			ID:        id,
			Kind:      rec.kind,
			Timestamp: rec.timestamp,
			Size:      int64(len(rec.state)),
		})
	}

	// Oldest first
	sort.Slice(infos, func(i, j int) bool {
		return seqs[infos[i].ID] < seqs[infos[j].ID]
	})

	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, id)
	return nil
}

// Clear implements Store.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.data = make(map[uuid.UUID]storedRecord)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the number of stored snapshots. Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
