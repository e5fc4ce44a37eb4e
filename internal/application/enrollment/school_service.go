package enrollment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	appaccount "github.com/mattilda/backend/internal/application/account"
	appshared "github.com/mattilda/backend/internal/application/shared"
	"github.com/mattilda/backend/internal/domain/school"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SchoolService manages schools
type SchoolService struct {
	txScope appshared.TransactionScope
	schools school.Repository
	cache   *appaccount.StatementCache
	logger  *zap.Logger
}

// NewSchoolService creates a new SchoolService
func NewSchoolService(
	txScope appshared.TransactionScope,
	schools school.Repository,
	cache *appaccount.StatementCache,
	logger *zap.Logger,
) *SchoolService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchoolService{
		txScope: txScope,
		schools: schools,
		cache:   cache,
		logger:  logger,
	}
}

// SchoolInput carries the descriptive fields of a school
type SchoolInput struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// UpdateSchoolRequest carries the fields to change; nil fields are kept
type UpdateSchoolRequest struct {
	Name     *string
	Address  *string
	Phone    *string
	Email    *string
	IsActive *bool
}

// Create creates an active school
func (s *SchoolService) Create(ctx context.Context, in SchoolInput) (*school.School, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "school", "create")
	defer span.End()

	sc, err := school.NewSchool(in.Name, in.Address, in.Phone, in.Email)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.schools.Save(ctx, sc); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("save school: %w", err)
	}
	s.logger.Info("School created", zap.String("school_id", sc.ID.String()), zap.String("name", sc.Name))
	return sc, nil
}

// Get returns a school by ID
func (s *SchoolService) Get(ctx context.Context, id uuid.UUID) (*school.School, error) {
	return s.schools.FindByID(ctx, id)
}

// List returns a page of schools
func (s *SchoolService) List(ctx context.Context, filter school.Filter, page shared.PageRequest) (shared.Page[school.School], error) {
	total, err := s.schools.Count(ctx, filter)
	if err != nil {
		return shared.Page[school.School]{}, fmt.Errorf("count schools: %w", err)
	}
	items, err := s.schools.List(ctx, filter, page)
	if err != nil {
		return shared.Page[school.School]{}, fmt.Errorf("list schools: %w", err)
	}
	return shared.NewPage(items, total, page), nil
}

// Count counts schools matching the filter
func (s *SchoolService) Count(ctx context.Context, filter school.Filter) (int64, error) {
	return s.schools.Count(ctx, filter)
}

// Update changes a school. The school name appears in statements, so its namespace is dropped.
func (s *SchoolService) Update(ctx context.Context, id uuid.UUID, req UpdateSchoolRequest) (*school.School, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "school", "update")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrSchoolID, id.String())

	sc, err := s.schools.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	name, address, phone, email := sc.Name, sc.Address, sc.Phone, sc.Email
	if req.Name != nil {
		name = *req.Name
	}
	if req.Address != nil {
		address = *req.Address
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Email != nil {
		email = *req.Email
	}
	if err := sc.Update(name, address, phone, email); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if req.IsActive != nil {
		if *req.IsActive {
			sc.Activate()
		} else {
			sc.Deactivate()
		}
	}

	if err := s.schools.Save(ctx, sc); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("save school: %w", err)
	}
	s.cache.InvalidateSchool(ctx, sc.ID)
	return sc, nil
}

// Delete removes a school with its students, invoices and payments in one transaction.
// Children are deleted explicitly, leaves first.
func (s *SchoolService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "school", "delete")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrSchoolID, id.String())

	var studentIDs []uuid.UUID
	err := s.txScope.Execute(ctx, func(repos appshared.Repositories) error {
		exists, err := repos.Schools().Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return shared.NotFound("school", id)
		}

		studentIDs, err = repos.Students().ListIDsBySchool(ctx, id)
		if err != nil {
			return fmt.Errorf("list students: %w", err)
		}
		for _, studentID := range studentIDs {
			if err := deleteStudentBilling(ctx, repos, studentID); err != nil {
				return err
			}
		}
		if err := repos.Payments().DeleteBySchool(ctx, id); err != nil {
			return fmt.Errorf("delete school payments: %w", err)
		}
		if err := repos.Invoices().DeleteBySchool(ctx, id); err != nil {
			return fmt.Errorf("delete school invoices: %w", err)
		}
		if err := repos.Students().DeleteBySchool(ctx, id); err != nil {
			return fmt.Errorf("delete school students: %w", err)
		}
		return repos.Schools().Delete(ctx, id)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.cache.InvalidateSchool(ctx, id)
	for _, studentID := range studentIDs {
		s.cache.InvalidateStudent(ctx, studentID)
	}
	s.logger.Info("School deleted",
		zap.String("school_id", id.String()),
		zap.Int("students", len(studentIDs)),
	)
	return nil
}

func deleteStudentBilling(ctx context.Context, repos appshared.Repositories, studentID uuid.UUID) error {
	if err := repos.Payments().DeleteByStudent(ctx, studentID); err != nil {
		return fmt.Errorf("delete student payments: %w", err)
	}
	if err := repos.Invoices().DeleteByStudent(ctx, studentID); err != nil {
		return fmt.Errorf("delete student invoices: %w", err)
	}
	return nil
}
