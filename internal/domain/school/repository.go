package school

import (
	"context"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/shared"
)

// Filter narrows school listings
type Filter struct {
	IsActive *bool
}

// Repository defines the interface for school persistence
type Repository interface {
	// FindByID returns shared.ErrNotFound when the school does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*School, error)

	// Exists reports whether a school with the given ID exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// List returns a page of schools ordered by name
	List(ctx context.Context, filter Filter, page shared.PageRequest) ([]School, error)

	// Count counts schools matching the filter
	Count(ctx context.Context, filter Filter) (int64, error)

	// Save creates or updates a school
	Save(ctx context.Context, s *School) error

	// Delete removes the school row only; children are removed by the caller
	Delete(ctx context.Context, id uuid.UUID) error
}
