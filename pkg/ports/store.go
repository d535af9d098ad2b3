package ports

import (
	"context"

	"github.com/mfeilner/unimach/pkg/domain"
)

// RunStore defines the interface for persisting run records.
// It backs the run history of the CLI and the HTTP service.
type RunStore interface {
	// Save persists a record under its ID, overwriting any previous
	// record with the same ID.
	Save(ctx context.Context, record *domain.RunRecord) error

	// Load retrieves a record by ID.
	// Returns domain.ErrRunNotFound if the ID does not exist.
	Load(ctx context.Context, id string) (*domain.RunRecord, error)

	// Delete removes a record. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all records, most recently started first.
	List(ctx context.Context) ([]*domain.RunRecord, error)
}
