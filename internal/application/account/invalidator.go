package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/billing"
)

// Invalidator maps billing mutations to the statement namespaces they make stale.
// It must run before the mutating request returns.
type Invalidator struct {
	invoices billing.InvoiceRepository
	payments billing.PaymentRepository
	cache    *StatementCache
}

// NewInvalidator creates an Invalidator
func NewInvalidator(invoices billing.InvoiceRepository, payments billing.PaymentRepository, cache *StatementCache) *Invalidator {
	return &Invalidator{
		invoices: invoices,
		payments: payments,
		cache:    cache,
	}
}

// InvalidateScopes drops the statement namespaces of a school and a student.
// Either ID may be uuid.Nil.
func (i *Invalidator) InvalidateScopes(ctx context.Context, schoolID, studentID uuid.UUID) {
	i.cache.InvalidateStudent(ctx, studentID)
	i.cache.InvalidateSchool(ctx, schoolID)
}

// InvalidateForInvoice resolves the invoice's student and school and drops both namespaces
func (i *Invalidator) InvalidateForInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	inv, err := i.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("resolve invoice %s for invalidation: %w", invoiceID, err)
	}
	i.InvalidateScopes(ctx, inv.SchoolID, inv.StudentID)
	return nil
}

// InvalidateForPayment resolves the payment's invoice and invalidates like InvalidateForInvoice
func (i *Invalidator) InvalidateForPayment(ctx context.Context, paymentID uuid.UUID) error {
	p, err := i.payments.FindByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("resolve payment %s for invalidation: %w", paymentID, err)
	}
	return i.InvalidateForInvoice(ctx, p.InvoiceID)
}
