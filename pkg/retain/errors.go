package retain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for registry operations.
var (
	// ErrNilIdentifier indicates an operation was called with the zero UUID.
	ErrNilIdentifier = errors.New("identifier cannot be nil")

	// ErrNilPresenter indicates Add() was called with a nil presenter.
	ErrNilPresenter = errors.New("presenter cannot be nil")

	// ErrDuplicateIdentifier indicates Add() was called with an identifier
	// that is already registered. This signals identifier reuse without an
	// intervening Remove(), which is a caller bug.
	ErrDuplicateIdentifier = errors.New("identifier already registered")
)

// Sentinel errors for snapshot restoration.
var (
	// ErrDuplicateKind indicates a factory was registered twice for a kind.
	ErrDuplicateKind = errors.New("presenter kind already registered")

	// ErrEmptyKind indicates a factory registration with an empty kind.
	ErrEmptyKind = errors.New("presenter kind cannot be empty")

	// ErrNilFactory indicates a factory registration with a nil constructor.
	ErrNilFactory = errors.New("presenter factory cannot be nil")
)

// DuplicateIDError provides the offending identifier when Add() rejects a
// duplicate. The entry stored under the identifier is left unchanged.
type DuplicateIDError struct {
	// ID is the identifier that was already registered.
	ID uuid.UUID
}

// Error implements the error interface.
func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("identifier %s already registered", e.ID)
}

// Unwrap returns ErrDuplicateIdentifier for errors.Is support.
func (e *DuplicateIDError) Unwrap() error {
	return ErrDuplicateIdentifier
}

// TypeMismatchError indicates a typed Lookup requested a different concrete
// type than the one stored under the identifier.
type TypeMismatchError struct {
	// ID is the identifier that was looked up.
	ID uuid.UUID
	// Want is the requested type.
	Want string
	// Got is the stored presenter's dynamic type.
	Got string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("presenter %s is %s, not %s", e.ID, e.Got, e.Want)
}

// RestoreError wraps a failure while rebuilding a presenter from a snapshot.
type RestoreError struct {
	// ID is the identifier of the snapshot record.
	ID uuid.UUID
	// Kind is the registered presenter kind.
	Kind string
	// Op is the step that failed ("load", "build", "restore", "register",
	// "on_restore").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RestoreError) Error() string {
	return fmt.Sprintf("restore %s (kind %s): %s: %v", e.ID, e.Kind, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *RestoreError) Unwrap() error {
	return e.Err
}
