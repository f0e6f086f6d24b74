package ports

import (
	"context"

	"github.com/aretw0/replica/pkg/domain"
)

// RunStore defines the interface for persisting reconstruction run records.
type RunStore interface {
	// Save persists the run under run.ID, replacing any previous record.
	Save(ctx context.Context, run *domain.Run) error

	// Load retrieves a run by ID.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, id string) (*domain.Run, error)

	// List returns all runs ordered by start time, oldest first.
	List(ctx context.Context) ([]domain.Run, error)

	// Delete removes a run. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}
