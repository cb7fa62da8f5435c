// Package store provides the knowledge store interface and SQLite implementation.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/julesjewels-ai/chronolog-memory-augmentation/internal/model"
)

// NoContextResponse is returned by Query when nothing matches.
const NoContextResponse = "I don't have enough context in my local database to answer that yet."

// answerTemplate wraps the joined contents of the matching entries.
const answerTemplate = "Based on your recent activity (%s), here is the answer found locally."

// ErrNotFound is returned when a requested entry does not exist.
var ErrNotFound = errors.New("entry not found")

// StorageError reports a failure of the underlying database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// ListParams holds parameters for listing entries.
type ListParams struct {
	Source string
	Limit  int
}

// Store defines the knowledge store interface.
type Store interface {
	// Ingest appends a new entry. Entries are never deduplicated.
	Ingest(ctx context.Context, source, content string) (*model.MemoryEntry, error)

	// Query answers a free-text question from stored entries.
	Query(ctx context.Context, question string) (string, error)

	// Close closes the store.
	Close() error
}
