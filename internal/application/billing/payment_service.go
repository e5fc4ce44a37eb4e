package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	appaccount "github.com/mattilda/backend/internal/application/account"
	appshared "github.com/mattilda/backend/internal/application/shared"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
	"github.com/mattilda/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PaymentService admits payments against invoices and keeps invoice status in step
// with the paid sum.
type PaymentService struct {
	txScope     appshared.TransactionScope
	invoices    billing.InvoiceRepository
	payments    billing.PaymentRepository
	invalidator *appaccount.Invalidator
	logger      *zap.Logger
	metrics     *telemetry.BillingMetrics
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	txScope appshared.TransactionScope,
	invoices billing.InvoiceRepository,
	payments billing.PaymentRepository,
	invalidator *appaccount.Invalidator,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		txScope:     txScope,
		invoices:    invoices,
		payments:    payments,
		invalidator: invalidator,
		logger:      logger,
	}
}

// SetBillingMetrics sets the billing metrics collector
func (s *PaymentService) SetBillingMetrics(m *telemetry.BillingMetrics) {
	s.metrics = m
}

// CreatePaymentRequest represents a request to pay part or all of an invoice
type CreatePaymentRequest struct {
	InvoiceID uuid.UUID
	Amount    valueobject.Money
	Metadata  billing.PaymentMetadata
}

// CreatePayment admits a payment if it does not exceed the invoice's pending balance.
// The check and the write run under a row lock on the invoice so concurrent payments
// against the same invoice are serialized. Statement caches of the invoice's student
// and school are invalidated before returning.
func (s *PaymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*billing.Payment, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "create")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrInvoiceID, req.InvoiceID.String(),
		telemetry.SpanAttrAmount, req.Amount.String(),
	)

	if !req.Amount.IsPositive() {
		err := shared.Validation("amount must be greater than 0")
		telemetry.RecordError(span, err)
		s.recordRejected(ctx, "invalid_amount")
		return nil, err
	}

	var payment *billing.Payment
	var opErr error
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(telemetry.OperationCreatePayment, nil), func(c context.Context) {
		opErr = s.txScope.Execute(c, func(repos appshared.Repositories) error {
			inv, err := repos.Invoices().FindByIDForUpdate(c, req.InvoiceID)
			if err != nil {
				return err
			}
			if err := inv.CanAcceptPayment(); err != nil {
				return err
			}

			paid, err := repos.Payments().SumAmount(c, billing.PaymentFilter{InvoiceID: &inv.ID})
			if err != nil {
				return fmt.Errorf("sum invoice payments: %w", err)
			}
			pending := inv.PendingAmount(paid)
			if req.Amount.GreaterThan(pending) {
				return shared.NewOverpaymentError(pending.ClampZero().Decimal(), req.Amount.Decimal())
			}

			p, err := billing.NewPayment(inv, req.Amount, req.Metadata)
			if err != nil {
				return err
			}
			if err := repos.Payments().Create(c, p); err != nil {
				return fmt.Errorf("save payment: %w", err)
			}
			telemetry.AddEvent(span, "payment_persisted", "pending_before", pending.String())

			if _, err := recomputeStatus(c, repos, inv); err != nil {
				return err
			}
			payment = p
			return nil
		})
	})
	if opErr != nil {
		telemetry.RecordError(span, opErr)
		s.recordRejected(ctx, rejectionReason(opErr))
		return nil, opErr
	}

	if err := s.invalidator.InvalidateForPayment(ctx, payment.ID); err != nil {
		s.logger.Warn("Falling back to direct statement invalidation",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err),
		)
		s.invalidator.InvalidateScopes(ctx, payment.SchoolID, payment.StudentID)
	}

	if s.metrics != nil {
		s.metrics.RecordPaymentAdmitted(ctx, payment.PaymentMethod, payment.Amount.Decimal())
	}
	s.logger.Info("Payment admitted",
		zap.String("payment_id", payment.ID.String()),
		zap.String("invoice_id", payment.InvoiceID.String()),
		zap.String("amount", payment.Amount.String()),
	)
	return payment, nil
}

// RecomputeStatus re-derives an invoice's status from its payments and persists it
// when it changed. Calling it repeatedly has no further effect.
func (s *PaymentService) RecomputeStatus(ctx context.Context, invoiceID uuid.UUID) (billing.InvoiceStatus, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "recompute_status")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrInvoiceID, invoiceID.String())

	var status billing.InvoiceStatus
	var changed bool
	var inv *billing.Invoice
	err := s.txScope.Execute(ctx, func(repos appshared.Repositories) error {
		var err error
		inv, err = repos.Invoices().FindByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		before := inv.Status
		status, err = recomputeStatus(ctx, repos, inv)
		changed = before != status
		return err
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return "", err
	}
	if changed {
		s.invalidator.InvalidateScopes(ctx, inv.SchoolID, inv.StudentID)
	}
	return status, nil
}

func recomputeStatus(ctx context.Context, repos appshared.Repositories, inv *billing.Invoice) (billing.InvoiceStatus, error) {
	paid, err := repos.Payments().SumAmount(ctx, billing.PaymentFilter{InvoiceID: &inv.ID})
	if err != nil {
		return "", fmt.Errorf("sum invoice payments: %w", err)
	}
	if inv.RecomputeStatus(paid) {
		if err := repos.Invoices().UpdateStatus(ctx, inv.ID, inv.Status); err != nil {
			return "", fmt.Errorf("update invoice status: %w", err)
		}
	}
	return inv.Status, nil
}

// ListPayments returns the payments of an invoice, newest payment_date first
func (s *PaymentService) ListPayments(ctx context.Context, invoiceID uuid.UUID, page shared.PageRequest) (shared.Page[billing.Payment], error) {
	if _, err := s.invoices.FindByID(ctx, invoiceID); err != nil {
		return shared.Page[billing.Payment]{}, err
	}
	total, err := s.payments.Count(ctx, billing.PaymentFilter{InvoiceID: &invoiceID})
	if err != nil {
		return shared.Page[billing.Payment]{}, fmt.Errorf("count payments: %w", err)
	}
	items, err := s.payments.ListByInvoice(ctx, invoiceID, page)
	if err != nil {
		return shared.Page[billing.Payment]{}, fmt.Errorf("list payments: %w", err)
	}
	return shared.NewPage(items, total, page), nil
}

func (s *PaymentService) recordRejected(ctx context.Context, reason string) {
	if s.metrics != nil {
		s.metrics.RecordPaymentRejected(ctx, reason)
	}
}

func rejectionReason(err error) string {
	var overpay *shared.OverpaymentError
	switch {
	case errors.As(err, &overpay):
		return "overpayment"
	case shared.IsNotFound(err):
		return "invoice_not_found"
	case errors.Is(err, shared.ErrInvalidState):
		return "invoice_cancelled"
	case errors.Is(err, shared.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
