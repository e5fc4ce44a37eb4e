package enrollment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	appaccount "github.com/mattilda/backend/internal/application/account"
	appshared "github.com/mattilda/backend/internal/application/shared"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/school"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
	"github.com/mattilda/backend/internal/domain/student"
	"github.com/mattilda/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// StudentService manages students and their moves between schools
type StudentService struct {
	txScope  appshared.TransactionScope
	students student.Repository
	schools  school.Repository
	cache    *appaccount.StatementCache
	logger   *zap.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	txScope appshared.TransactionScope,
	students student.Repository,
	schools school.Repository,
	cache *appaccount.StatementCache,
	logger *zap.Logger,
) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		txScope:  txScope,
		students: students,
		schools:  schools,
		cache:    cache,
		logger:   logger,
	}
}

// CreateStudentRequest represents a request to enroll a student
type CreateStudentRequest struct {
	SchoolID uuid.UUID
	Profile  student.Profile
}

// UpdateStudentRequest carries the fields to change; nil fields are kept
type UpdateStudentRequest struct {
	SchoolID    *uuid.UUID
	FirstName   *string
	LastName    *string
	Email       *string
	StudentCode *string
	DateOfBirth *time.Time
	IsActive    *bool
}

// Create enrolls a student in an existing school
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*student.Student, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "student", "create")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrSchoolID, req.SchoolID.String())

	st, err := student.NewStudent(req.SchoolID, req.Profile)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos appshared.Repositories) error {
		exists, err := repos.Schools().Exists(ctx, req.SchoolID)
		if err != nil {
			return err
		}
		if !exists {
			return shared.NotFound("school", req.SchoolID)
		}
		if err := ensureUniqueIdentity(ctx, repos.Students(), st); err != nil {
			return err
		}
		return repos.Students().Save(ctx, st)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.cache.InvalidateSchool(ctx, st.SchoolID)
	s.logger.Info("Student created",
		zap.String("student_id", st.ID.String()),
		zap.String("school_id", st.SchoolID.String()),
	)
	return st, nil
}

// Get returns a student by ID
func (s *StudentService) Get(ctx context.Context, id uuid.UUID) (*student.Student, error) {
	return s.students.FindByID(ctx, id)
}

// List returns a page of students
func (s *StudentService) List(ctx context.Context, filter student.Filter, page shared.PageRequest) (shared.Page[student.Student], error) {
	total, err := s.students.Count(ctx, filter)
	if err != nil {
		return shared.Page[student.Student]{}, fmt.Errorf("count students: %w", err)
	}
	items, err := s.students.List(ctx, filter, page)
	if err != nil {
		return shared.Page[student.Student]{}, fmt.Errorf("list students: %w", err)
	}
	return shared.NewPage(items, total, page), nil
}

// Count counts students matching the filter
func (s *StudentService) Count(ctx context.Context, filter student.Filter) (int64, error) {
	return s.students.Count(ctx, filter)
}

// Update changes a student. Moving to another school is refused while the student's
// net debt (total invoiced minus total paid) is positive.
func (s *StudentService) Update(ctx context.Context, id uuid.UUID, req UpdateStudentRequest) (*student.Student, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "student", "update")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrStudentID, id.String())

	var st *student.Student
	var previousSchool uuid.UUID
	err := s.txScope.Execute(ctx, func(repos appshared.Repositories) error {
		var err error
		st, err = repos.Students().FindByID(ctx, id)
		if err != nil {
			return err
		}
		previousSchool = st.SchoolID

		if req.SchoolID != nil && *req.SchoolID != st.SchoolID {
			if err := s.transfer(ctx, repos, st, *req.SchoolID); err != nil {
				return err
			}
		}

		profile := student.Profile{
			FirstName:   st.FirstName,
			LastName:    st.LastName,
			Email:       st.Email,
			StudentCode: st.StudentCode,
			DateOfBirth: st.DateOfBirth,
		}
		if req.FirstName != nil {
			profile.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			profile.LastName = *req.LastName
		}
		if req.Email != nil {
			profile.Email = *req.Email
		}
		if req.StudentCode != nil {
			profile.StudentCode = *req.StudentCode
		}
		if req.DateOfBirth != nil {
			profile.DateOfBirth = req.DateOfBirth
		}
		if err := st.UpdateProfile(profile); err != nil {
			return err
		}
		if req.IsActive != nil {
			st.SetActive(*req.IsActive)
		}
		if err := ensureUniqueIdentity(ctx, repos.Students(), st); err != nil {
			return err
		}
		return repos.Students().Save(ctx, st)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.cache.InvalidateStudent(ctx, st.ID)
	s.cache.InvalidateSchool(ctx, st.SchoolID)
	if previousSchool != st.SchoolID {
		s.cache.InvalidateSchool(ctx, previousSchool)
		s.logger.Info("Student changed school",
			zap.String("student_id", st.ID.String()),
			zap.String("from_school_id", previousSchool.String()),
			zap.String("to_school_id", st.SchoolID.String()),
		)
	}
	return st, nil
}

func (s *StudentService) transfer(ctx context.Context, repos appshared.Repositories, st *student.Student, target uuid.UUID) error {
	exists, err := repos.Schools().Exists(ctx, target)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NotFound("school", target)
	}

	debt, err := netDebt(ctx, repos, st.ID)
	if err != nil {
		return err
	}
	if debt.IsPositive() {
		return shared.NewDebtBlockedTransferError(debt.Decimal())
	}
	return st.MoveToSchool(target)
}

func netDebt(ctx context.Context, repos appshared.Repositories, studentID uuid.UUID) (valueobject.Money, error) {
	invoiced, err := repos.Invoices().SumTotal(ctx, billing.InvoiceFilter{StudentID: &studentID})
	if err != nil {
		return valueobject.Zero(), fmt.Errorf("sum student invoices: %w", err)
	}
	paid, err := repos.Payments().SumAmount(ctx, billing.PaymentFilter{StudentID: &studentID})
	if err != nil {
		return valueobject.Zero(), fmt.Errorf("sum student payments: %w", err)
	}
	return invoiced.Sub(paid), nil
}

// Delete removes a student with its invoices and payments in one transaction
func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "student", "delete")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrStudentID, id.String())

	var st *student.Student
	err := s.txScope.Execute(ctx, func(repos appshared.Repositories) error {
		var err error
		st, err = repos.Students().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := deleteStudentBilling(ctx, repos, id); err != nil {
			return err
		}
		return repos.Students().Delete(ctx, id)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.cache.InvalidateStudent(ctx, id)
	s.cache.InvalidateSchool(ctx, st.SchoolID)
	return nil
}

// ensureUniqueIdentity checks the global email and the per-school student code
func ensureUniqueIdentity(ctx context.Context, students student.Repository, st *student.Student) error {
	if st.Email != "" {
		existing, err := students.FindByEmail(ctx, st.Email)
		switch {
		case err == nil && existing.ID != st.ID:
			return shared.Conflict("email %s is already registered", st.Email)
		case err != nil && !errors.Is(err, shared.ErrNotFound):
			return fmt.Errorf("check student email: %w", err)
		}
	}
	if st.StudentCode != "" {
		existing, err := students.FindByCode(ctx, st.SchoolID, st.StudentCode)
		switch {
		case err == nil && existing.ID != st.ID:
			return shared.Conflict("student code %s already exists in this school", st.StudentCode)
		case err != nil && !errors.Is(err, shared.ErrNotFound):
			return fmt.Errorf("check student code: %w", err)
		}
	}
	return nil
}
