package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskops-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
//
// Implementations must be safe for concurrent use by any number of callers.
// Concurrent writes to the same task resolve as last writer wins; there is no
// version check. Absence is reported through boolean results, never as an error.
type TaskStore interface {
	// GetAll returns a snapshot of every stored task in no particular order.
	// Modifications made while the snapshot is taken never fail the caller.
	GetAll(ctx context.Context) []domain.Task

	// GetByID returns a copy of the task with the given ID and whether it exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Task, bool)

	// Add inserts the task unless a task with the same ID is already stored.
	// An existing entry is never overwritten. Reports whether the insert happened.
	Add(ctx context.Context, task domain.Task) bool

	// Update replaces the stored task with the same ID.
	// It does nothing when no such task exists. Reports whether the replace happened.
	Update(ctx context.Context, task domain.Task) bool

	// Delete removes the task with the given ID if present.
	// Reports whether a task was removed.
	Delete(ctx context.Context, id uuid.UUID) bool

	// Len returns the number of stored tasks.
	Len(ctx context.Context) int
}
