package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
)

// Payment is an append-only settlement against one invoice. SchoolID and StudentID
// are copied from the invoice so aggregates never need a join.
type Payment struct {
	shared.BaseEntity
	InvoiceID        uuid.UUID
	SchoolID         uuid.UUID
	StudentID        uuid.UUID
	Amount           valueobject.Money
	PaymentMethod    string
	PaymentReference string
	Notes            string
	PaymentDate      time.Time
}

// PaymentMetadata holds the optional free-form fields of a payment
type PaymentMetadata struct {
	PaymentMethod    string
	PaymentReference string
	Notes            string
	PaymentDate      *time.Time
}

// NewPayment creates a payment for inv. Admission against the pending balance is
// checked by the caller while holding the invoice lock.
func NewPayment(inv *Invoice, amount valueobject.Money, meta PaymentMetadata) (*Payment, error) {
	if inv == nil {
		return nil, shared.Validation("invoice is required")
	}
	if !amount.IsPositive() {
		return nil, shared.Validation("amount must be greater than 0")
	}
	if err := shared.ValidateMaxLength("payment_method", meta.PaymentMethod, 50); err != nil {
		return nil, err
	}
	if err := shared.ValidateMaxLength("payment_reference", meta.PaymentReference, 100); err != nil {
		return nil, err
	}
	if err := shared.ValidateMaxLength("notes", meta.Notes, 500); err != nil {
		return nil, err
	}

	p := &Payment{
		BaseEntity:       shared.NewBaseEntity(),
		InvoiceID:        inv.ID,
		SchoolID:         inv.SchoolID,
		StudentID:        inv.StudentID,
		Amount:           amount,
		PaymentMethod:    meta.PaymentMethod,
		PaymentReference: meta.PaymentReference,
		Notes:            meta.Notes,
		PaymentDate:      valueOrZero(meta.PaymentDate),
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = p.CreatedAt
	}
	return p, nil
}

func valueOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
