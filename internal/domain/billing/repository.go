package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
)

// InvoiceFilter narrows invoice listings and aggregates. Nil fields are ignored.
type InvoiceFilter struct {
	SchoolID  *uuid.UUID
	StudentID *uuid.UUID
	Status    *InvoiceStatus
}

// PaymentFilter narrows payment aggregates. Nil fields are ignored.
type PaymentFilter struct {
	InvoiceID *uuid.UUID
	SchoolID  *uuid.UUID
	StudentID *uuid.UUID
}

// InvoiceBalance is an invoice total next to the sum of its payments
type InvoiceBalance struct {
	InvoiceID   uuid.UUID
	TotalAmount valueobject.Money
	PaidAmount  valueobject.Money
}

// Pending returns total minus paid, which may be negative
func (b InvoiceBalance) Pending() valueobject.Money {
	return b.TotalAmount.Sub(b.PaidAmount)
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID returns shared.ErrNotFound when the invoice does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByIDWithPayments loads the invoice and its payments ordered by payment_date desc
	FindByIDWithPayments(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByIDForUpdate loads the invoice holding a row lock until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an invoice by number within a school
	FindByNumber(ctx context.Context, schoolID uuid.UUID, number string) (*Invoice, error)

	// List returns invoices ordered by created_at desc
	List(ctx context.Context, filter InvoiceFilter, page shared.PageRequest) ([]Invoice, error)

	// ListForStatement returns invoices ordered by due_date desc, created_at desc with payments attached
	ListForStatement(ctx context.Context, filter InvoiceFilter, page shared.PageRequest) ([]Invoice, error)

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)

	// SumTotal sums total_amount over the matching invoices in a single aggregate query
	SumTotal(ctx context.Context, filter InvoiceFilter) (valueobject.Money, error)

	// BalancesByStudent returns every invoice of a student with its paid sum
	BalancesByStudent(ctx context.Context, studentID uuid.UUID) ([]InvoiceBalance, error)

	// Save creates or updates an invoice (payments are not saved)
	Save(ctx context.Context, inv *Invoice) error

	// UpdateStatus writes only the status column
	UpdateStatus(ctx context.Context, id uuid.UUID, status InvoiceStatus) error

	// Delete removes one invoice row
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByStudent removes every invoice of a student
	DeleteByStudent(ctx context.Context, studentID uuid.UUID) error

	// DeleteBySchool removes every invoice of a school
	DeleteBySchool(ctx context.Context, schoolID uuid.UUID) error
}

// PaymentRepository defines the interface for payment persistence.
// Payments are append-only; deletes exist only for cascades.
type PaymentRepository interface {
	// FindByID returns shared.ErrNotFound when the payment does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// ListByInvoice returns payments of an invoice ordered by payment_date desc
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID, page shared.PageRequest) ([]Payment, error)

	// Count counts payments matching the filter
	Count(ctx context.Context, filter PaymentFilter) (int64, error)

	// SumAmount sums amount over the matching payments in a single aggregate query
	SumAmount(ctx context.Context, filter PaymentFilter) (valueobject.Money, error)

	// Create inserts a new payment
	Create(ctx context.Context, p *Payment) error

	// DeleteByInvoice removes every payment of an invoice
	DeleteByInvoice(ctx context.Context, invoiceID uuid.UUID) error

	// DeleteByStudent removes every payment of a student
	DeleteByStudent(ctx context.Context, studentID uuid.UUID) error

	// DeleteBySchool removes every payment of a school
	DeleteBySchool(ctx context.Context, schoolID uuid.UUID) error
}
