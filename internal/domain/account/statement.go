// Package account holds the read models produced by account aggregation.
//
// Two notions of "what is owed" coexist on purpose:
//   - Totals.TotalPending is invoiced minus paid over the whole scope, so an
//     overpaid invoice offsets another invoice's balance.
//   - Debt (see ClampedDebt) clamps each invoice's pending amount at zero
//     before summing, so overpayment never reduces debt elsewhere.
package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
)

// Totals are the three headline figures of a statement
type Totals struct {
	TotalInvoiced valueobject.Money `json:"total_invoiced"`
	TotalPaid     valueobject.Money `json:"total_paid"`
	TotalPending  valueobject.Money `json:"total_pending"`
}

// NewTotals derives TotalPending from the two aggregates
func NewTotals(invoiced, paid valueobject.Money) Totals {
	return Totals{
		TotalInvoiced: invoiced,
		TotalPaid:     paid,
		TotalPending:  invoiced.Sub(paid),
	}
}

// PaymentLine is a payment as shown inside a statement
type PaymentLine struct {
	ID               uuid.UUID         `json:"id"`
	Amount           valueobject.Money `json:"amount"`
	PaymentMethod    string            `json:"payment_method,omitempty"`
	PaymentReference string            `json:"payment_reference,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	PaymentDate      time.Time         `json:"payment_date"`
	CreatedAt        time.Time         `json:"created_at"`
}

// InvoiceLine is an invoice as shown inside a statement
type InvoiceLine struct {
	ID            uuid.UUID             `json:"id"`
	SchoolID      uuid.UUID             `json:"school_id"`
	StudentID     uuid.UUID             `json:"student_id"`
	InvoiceNumber string                `json:"invoice_number"`
	TotalAmount   valueobject.Money     `json:"total_amount"`
	Description   string                `json:"description,omitempty"`
	IssueDate     string                `json:"issue_date"`
	DueDate       string                `json:"due_date"`
	Status        billing.InvoiceStatus `json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	Payments      []PaymentLine         `json:"payments"`
}

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// NewInvoiceLine converts an invoice and its loaded payments
func NewInvoiceLine(inv billing.Invoice) InvoiceLine {
	payments := make([]PaymentLine, len(inv.Payments))
	for i, p := range inv.Payments {
		payments[i] = PaymentLine{
			ID:               p.ID,
			Amount:           p.Amount,
			PaymentMethod:    p.PaymentMethod,
			PaymentReference: p.PaymentReference,
			Notes:            p.Notes,
			PaymentDate:      p.PaymentDate,
			CreatedAt:        p.CreatedAt,
		}
	}
	return InvoiceLine{
		ID:            inv.ID,
		SchoolID:      inv.SchoolID,
		StudentID:     inv.StudentID,
		InvoiceNumber: inv.InvoiceNumber,
		TotalAmount:   inv.TotalAmount,
		Description:   inv.Description,
		IssueDate:     inv.IssueDate.Format(DateLayout),
		DueDate:       inv.DueDate.Format(DateLayout),
		Status:        inv.Status,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
		Payments:      payments,
	}
}

// NewInvoiceLines converts a slice of invoices
func NewInvoiceLines(invoices []billing.Invoice) []InvoiceLine {
	lines := make([]InvoiceLine, len(invoices))
	for i, inv := range invoices {
		lines[i] = NewInvoiceLine(inv)
	}
	return lines
}

// SchoolStatement is the account status of a school
type SchoolStatement struct {
	SchoolID      uuid.UUID `json:"school_id"`
	SchoolName    string    `json:"school_name"`
	TotalStudents int64     `json:"total_students"`
	Totals
	TotalInvoices int64         `json:"total_invoices"`
	Invoices      []InvoiceLine `json:"invoices"`
	Skip          int           `json:"skip"`
	Limit         int           `json:"limit"`
}

// StudentStatement is the account status of a student
type StudentStatement struct {
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
	SchoolID    uuid.UUID `json:"school_id"`
	SchoolName  string    `json:"school_name"`
	Totals
	TotalInvoices int64         `json:"total_invoices"`
	Invoices      []InvoiceLine `json:"invoices"`
	Skip          int           `json:"skip"`
	Limit         int           `json:"limit"`
}
