package student

import (
	"context"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/shared"
)

// Filter narrows student listings
type Filter struct {
	SchoolID *uuid.UUID
	IsActive *bool
}

// Repository defines the interface for student persistence
type Repository interface {
	// FindByID returns shared.ErrNotFound when the student does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Student, error)

	// FindByEmail returns shared.ErrNotFound when no student has the email
	FindByEmail(ctx context.Context, email string) (*Student, error)

	// FindByCode finds a student by its code within a school
	FindByCode(ctx context.Context, schoolID uuid.UUID, code string) (*Student, error)

	// List returns a page of students ordered by last and first name
	List(ctx context.Context, filter Filter, page shared.PageRequest) ([]Student, error)

	// ListIDsBySchool returns every student ID of a school, active or not
	ListIDsBySchool(ctx context.Context, schoolID uuid.UUID) ([]uuid.UUID, error)

	// Count counts students matching the filter
	Count(ctx context.Context, filter Filter) (int64, error)

	// Save creates or updates a student
	Save(ctx context.Context, s *Student) error

	// Delete removes the student row only
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteBySchool removes every student of a school
	DeleteBySchool(ctx context.Context, schoolID uuid.UUID) error
}
