package repositories

import (
	"context"
	"fmt"

	"github.com/asakaida/edurecords/internal/entities"
)

// PersonRepository defines the interface for person data access
// Every operation is independent: it acquires a connection, runs one statement and releases it.
type PersonRepository interface {
	// Save inserts one row for the person. Duplicate names are allowed.
	Save(ctx context.Context, person entities.Person) error

	// FindAll returns every stored person in storage order
	FindAll(ctx context.Context) ([]entities.Person, error)

	// UpdateAge sets the age of every row matching name
	// Returns the number of affected rows (0 means not found)
	UpdateAge(ctx context.Context, name string, newAge int) (int64, error)

	// Delete removes every row matching name
	// Returns the number of affected rows (0 means not found)
	Delete(ctx context.Context, name string) (int64, error)
}

// StorageError wraps a failure of the backing store
type StorageError struct {
	Op  string // Operation that failed (e.g., "save person")
	Err error
}

// NewStorageError creates a StorageError for the given operation
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
