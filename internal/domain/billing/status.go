package billing

import (
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents where an invoice stands relative to its payments
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPartial   InvoiceStatus = "partial"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled" // administrative override only
)

// IsValid checks if the status is a known value
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPartial, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal reports whether payments can no longer change the status
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusCancelled
}

// StatusFor derives the payment-driven status of an invoice.
// paid >= total wins first, so a zero-total invoice is paid.
func StatusFor(total, paid valueobject.Money) InvoiceStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return InvoiceStatusPaid
	case paid.IsPositive():
		return InvoiceStatusPartial
	default:
		return InvoiceStatusPending
	}
}
