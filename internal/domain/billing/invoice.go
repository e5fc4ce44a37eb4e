package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
)

// Invoice is an amount a student owes to its school.
// Payments are loaded only when the caller asks for them.
type Invoice struct {
	shared.BaseEntity
	SchoolID      uuid.UUID
	StudentID     uuid.UUID
	InvoiceNumber string
	TotalAmount   valueobject.Money
	Description   string
	IssueDate     time.Time
	DueDate       time.Time
	Status        InvoiceStatus
	Payments      []Payment
}

// InvoiceDetails groups the fields that can be set on creation and update
type InvoiceDetails struct {
	InvoiceNumber string
	TotalAmount   valueobject.Money
	Description   string
	IssueDate     time.Time
	DueDate       time.Time
}

// NewInvoice creates an invoice for a student of the given school.
// The caller guarantees the student belongs to schoolID.
func NewInvoice(schoolID, studentID uuid.UUID, d InvoiceDetails) (*Invoice, error) {
	if schoolID == uuid.Nil {
		return nil, shared.Validation("school_id is required")
	}
	if studentID == uuid.Nil {
		return nil, shared.Validation("student_id is required")
	}
	inv := &Invoice{
		BaseEntity: shared.NewBaseEntity(),
		SchoolID:   schoolID,
		StudentID:  studentID,
	}
	if err := inv.applyDetails(d); err != nil {
		return nil, err
	}
	inv.Status = StatusFor(inv.TotalAmount, valueobject.Zero())
	inv.CreatedAt = inv.UpdatedAt
	return inv, nil
}

// Update replaces the invoice details. paid is the current sum of payments; the new
// total may not drop below it. Status is re-derived against the new total unless cancelled.
func (i *Invoice) Update(d InvoiceDetails, paid valueobject.Money) error {
	if d.TotalAmount.LessThan(paid) {
		return shared.Validation("total_amount %s cannot be lower than the amount already paid %s", d.TotalAmount, paid)
	}
	if err := i.applyDetails(d); err != nil {
		return err
	}
	i.RecomputeStatus(paid)
	return nil
}

func (i *Invoice) applyDetails(d InvoiceDetails) error {
	if err := shared.ValidateRequired("invoice_number", d.InvoiceNumber, 50); err != nil {
		return err
	}
	if d.TotalAmount.IsNegative() {
		return shared.Validation("total_amount cannot be negative")
	}
	if err := shared.ValidateMaxLength("description", d.Description, 500); err != nil {
		return err
	}
	if d.IssueDate.IsZero() || d.DueDate.IsZero() {
		return shared.Validation("issue_date and due_date are required")
	}
	issue, due := truncateToDate(d.IssueDate), truncateToDate(d.DueDate)
	if due.Before(issue) {
		return shared.Validation("due_date must be on or after issue_date")
	}

	i.InvoiceNumber = strings.TrimSpace(d.InvoiceNumber)
	i.TotalAmount = d.TotalAmount
	i.Description = d.Description
	i.IssueDate = issue
	i.DueDate = due
	i.Touch()
	return nil
}

// PendingAmount returns total minus paid. It is negative only for overpaid legacy data.
func (i *Invoice) PendingAmount(paid valueobject.Money) valueobject.Money {
	return i.TotalAmount.Sub(paid)
}

// CanAcceptPayment checks that the invoice is still open to payments
func (i *Invoice) CanAcceptPayment() error {
	if i.Status.IsTerminal() {
		return shared.NewDomainError(shared.CodeInvalidState, "cannot register payments on a cancelled invoice")
	}
	return nil
}

// RecomputeStatus sets Status from the paid sum and reports whether it changed.
// A cancelled invoice keeps its status.
func (i *Invoice) RecomputeStatus(paid valueobject.Money) bool {
	if i.Status.IsTerminal() {
		return false
	}
	next := StatusFor(i.TotalAmount, paid)
	if next == i.Status {
		return false
	}
	i.Status = next
	i.Touch()
	return true
}

// Cancel moves the invoice into the administrative cancelled state
func (i *Invoice) Cancel() {
	if i.Status == InvoiceStatusCancelled {
		return
	}
	i.Status = InvoiceStatusCancelled
	i.Touch()
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
