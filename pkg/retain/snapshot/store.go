// Package snapshot provides persistent storage of presenter state for
// restoration after process death.
package snapshot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Store persists presenter snapshots across process death.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a snapshot for a presenter.
	// Overwrites if a snapshot for id already exists.
	Save(id uuid.UUID, kind string, state []byte) error

	// Load retrieves a snapshot record.
	// Returns ErrNotFound if no snapshot exists for id.
	Load(id uuid.UUID) (Record, error)

	// List returns metadata for all stored snapshots, oldest first.
	// Returns an empty slice (not an error) when the store is empty.
	List() ([]Info, error)

	// Delete removes the snapshot for id.
	// Returns nil if no snapshot exists.
	Delete(id uuid.UUID) error

	// Clear removes all snapshots.
	Clear() error

	// Close releases any resources (connections, files).
	Close() error
}

// Record is a stored snapshot.
type Record struct {
	ID        uuid.UUID
	Kind      string
	State     []byte
	Timestamp time.Time
}

// Info provides snapshot metadata without loading the state payload.
type Info struct {
	ID        uuid.UUID
	Kind      string
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for snapshot operations.
var (
	// ErrNotFound indicates no snapshot exists for the identifier.
	ErrNotFound = errors.New("snapshot not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("snapshot store closed")

	// ErrNilID indicates an operation with the zero UUID.
	ErrNilID = errors.New("snapshot id cannot be nil")
)
