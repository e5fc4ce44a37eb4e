package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	appaccount "github.com/mattilda/backend/internal/application/account"
	appshared "github.com/mattilda/backend/internal/application/shared"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
	"github.com/mattilda/backend/internal/domain/student"
	"github.com/mattilda/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// InvoiceService manages invoices. Every mutation drops the statement caches of the
// invoice's student and school before returning.
type InvoiceService struct {
	txScope     appshared.TransactionScope
	invoices    billing.InvoiceRepository
	payments    billing.PaymentRepository
	students    student.Repository
	invalidator *appaccount.Invalidator
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	txScope appshared.TransactionScope,
	invoices billing.InvoiceRepository,
	payments billing.PaymentRepository,
	students student.Repository,
	invalidator *appaccount.Invalidator,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		txScope:     txScope,
		invoices:    invoices,
		payments:    payments,
		students:    students,
		invalidator: invalidator,
		logger:      logger,
	}
}

// CreateInvoiceRequest represents a request to bill a student.
// SchoolID is optional; when set it must be the student's school.
// A zero IssueDate defaults to today.
type CreateInvoiceRequest struct {
	StudentID     uuid.UUID
	SchoolID      *uuid.UUID
	InvoiceNumber string
	TotalAmount   valueobject.Money
	Description   string
	IssueDate     time.Time
	DueDate       time.Time
}

// UpdateInvoiceRequest carries the fields to change; nil fields are kept.
// Status may only be set to cancelled.
type UpdateInvoiceRequest struct {
	StudentID     *uuid.UUID
	InvoiceNumber *string
	TotalAmount   *valueobject.Money
	Description   *string
	IssueDate     *time.Time
	DueDate       *time.Time
	Status        *billing.InvoiceStatus
}

// Create creates an invoice for a student
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*billing.Invoice, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "create")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrStudentID, req.StudentID.String(),
		telemetry.SpanAttrAmount, req.TotalAmount.String(),
	)

	issue := req.IssueDate
	if issue.IsZero() {
		issue = time.Now().UTC()
	}

	var inv *billing.Invoice
	err := s.txScope.Execute(ctx, func(repos appshared.Repositories) error {
		st, err := repos.Students().FindByID(ctx, req.StudentID)
		if err != nil {
			return err
		}
		if req.SchoolID != nil && *req.SchoolID != st.SchoolID {
			return shared.Mismatch("student %s does not belong to school %s", st.ID, *req.SchoolID)
		}

		inv, err = billing.NewInvoice(st.SchoolID, st.ID, billing.InvoiceDetails{
			InvoiceNumber: req.InvoiceNumber,
			TotalAmount:   req.TotalAmount,
			Description:   req.Description,
			IssueDate:     issue,
			DueDate:       req.DueDate,
		})
		if err != nil {
			return err
		}
		if err := ensureUniqueNumber(ctx, repos.Invoices(), inv.SchoolID, inv.InvoiceNumber, uuid.Nil); err != nil {
			return err
		}
		return repos.Invoices().Save(ctx, inv)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.invalidator.InvalidateForInvoice(ctx, inv.ID); err != nil {
		s.logger.Warn("Falling back to direct statement invalidation", zap.String("invoice_id", inv.ID.String()), zap.Error(err))
		s.invalidator.InvalidateScopes(ctx, inv.SchoolID, inv.StudentID)
	}

	s.logger.Info("Invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("school_id", inv.SchoolID.String()),
	)
	return inv, nil
}

// Get returns an invoice with its payments attached
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	return s.invoices.FindByIDWithPayments(ctx, id)
}

// List returns invoices matching the filter, newest first
func (s *InvoiceService) List(ctx context.Context, filter billing.InvoiceFilter, page shared.PageRequest) (shared.Page[billing.Invoice], error) {
	total, err := s.invoices.Count(ctx, filter)
	if err != nil {
		return shared.Page[billing.Invoice]{}, fmt.Errorf("count invoices: %w", err)
	}
	items, err := s.invoices.List(ctx, filter, page)
	if err != nil {
		return shared.Page[billing.Invoice]{}, fmt.Errorf("list invoices: %w", err)
	}
	return shared.NewPage(items, total, page), nil
}

// Count counts invoices matching the filter
func (s *InvoiceService) Count(ctx context.Context, filter billing.InvoiceFilter) (int64, error) {
	return s.invoices.Count(ctx, filter)
}

// Update changes invoice details and re-derives the status against the new total.
// The only explicit status change accepted is the administrative move to cancelled.
func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*billing.Invoice, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "update")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrInvoiceID, id.String())

	if req.Status != nil && *req.Status != billing.InvoiceStatusCancelled {
		err := shared.Validation("status can only be set to %q; other statuses follow payments", billing.InvoiceStatusCancelled)
		telemetry.RecordError(span, err)
		return nil, err
	}

	var inv *billing.Invoice
	var previousSchool, previousStudent uuid.UUID
	err := s.txScope.Execute(ctx, func(repos appshared.Repositories) error {
		var err error
		inv, err = repos.Invoices().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		previousSchool, previousStudent = inv.SchoolID, inv.StudentID

		paid, err := repos.Payments().SumAmount(ctx, billing.PaymentFilter{InvoiceID: &inv.ID})
		if err != nil {
			return fmt.Errorf("sum invoice payments: %w", err)
		}

		if req.StudentID != nil && *req.StudentID != inv.StudentID {
			if err := reassignStudent(ctx, repos, inv, *req.StudentID); err != nil {
				return err
			}
		}

		details := billing.InvoiceDetails{
			InvoiceNumber: inv.InvoiceNumber,
			TotalAmount:   inv.TotalAmount,
			Description:   inv.Description,
			IssueDate:     inv.IssueDate,
			DueDate:       inv.DueDate,
		}
		if req.InvoiceNumber != nil {
			details.InvoiceNumber = *req.InvoiceNumber
		}
		if req.TotalAmount != nil {
			details.TotalAmount = *req.TotalAmount
		}
		if req.Description != nil {
			details.Description = *req.Description
		}
		if req.IssueDate != nil {
			details.IssueDate = *req.IssueDate
		}
		if req.DueDate != nil {
			details.DueDate = *req.DueDate
		}
		if err := inv.Update(details, paid); err != nil {
			return err
		}
		if err := ensureUniqueNumber(ctx, repos.Invoices(), inv.SchoolID, inv.InvoiceNumber, inv.ID); err != nil {
			return err
		}
		if req.Status != nil {
			inv.Cancel()
		}
		return repos.Invoices().Save(ctx, inv)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.invalidator.InvalidateForInvoice(ctx, inv.ID); err != nil {
		s.logger.Warn("Falling back to direct statement invalidation", zap.String("invoice_id", inv.ID.String()), zap.Error(err))
		s.invalidator.InvalidateScopes(ctx, inv.SchoolID, inv.StudentID)
	}
	if previousStudent != inv.StudentID || previousSchool != inv.SchoolID {
		s.invalidator.InvalidateScopes(ctx, previousSchool, previousStudent)
	}
	return inv, nil
}

// reassignStudent moves an invoice to another student. Payments carry the invoice's
// school and student, so an invoice with payments cannot move.
func reassignStudent(ctx context.Context, repos appshared.Repositories, inv *billing.Invoice, studentID uuid.UUID) error {
	count, err := repos.Payments().Count(ctx, billing.PaymentFilter{InvoiceID: &inv.ID})
	if err != nil {
		return fmt.Errorf("count invoice payments: %w", err)
	}
	if count > 0 {
		return shared.NewDomainError(shared.CodeInvalidState, "cannot reassign an invoice that already has payments")
	}
	st, err := repos.Students().FindByID(ctx, studentID)
	if err != nil {
		return err
	}
	inv.StudentID = st.ID
	inv.SchoolID = st.SchoolID
	return nil
}

// Delete removes an invoice and its payments in one transaction
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "delete")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrInvoiceID, id.String())

	var inv *billing.Invoice
	err := s.txScope.Execute(ctx, func(repos appshared.Repositories) error {
		var err error
		inv, err = repos.Invoices().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Payments().DeleteByInvoice(ctx, id); err != nil {
			return fmt.Errorf("delete invoice payments: %w", err)
		}
		return repos.Invoices().Delete(ctx, id)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.invalidator.InvalidateScopes(ctx, inv.SchoolID, inv.StudentID)
	return nil
}

func ensureUniqueNumber(ctx context.Context, invoices billing.InvoiceRepository, schoolID uuid.UUID, number string, self uuid.UUID) error {
	existing, err := invoices.FindByNumber(ctx, schoolID, number)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("check invoice number: %w", err)
	}
	if existing.ID != self {
		return shared.Conflict("invoice number %s already exists in this school", number)
	}
	return nil
}
