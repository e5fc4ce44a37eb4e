package shared

import (
	"context"

	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/school"
	"github.com/mattilda/backend/internal/domain/student"
)

// TransactionScope runs a unit of work atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories provides access to all repositories within a transaction.
// All repositories returned share the same underlying database transaction.
type Repositories interface {
	Schools() school.Repository
	Students() student.Repository
	Invoices() billing.InvoiceRepository
	Payments() billing.PaymentRepository
}

// NoOpTransactionScope runs the function against the given repositories without a transaction.
// This is useful for testing with mocked repositories.
type NoOpTransactionScope struct {
	schools  school.Repository
	students student.Repository
	invoices billing.InvoiceRepository
	payments billing.PaymentRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	schools school.Repository,
	students student.Repository,
	invoices billing.InvoiceRepository,
	payments billing.PaymentRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		schools:  schools,
		students: students,
		invoices: invoices,
		payments: payments,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s)
}

// Schools returns the school repository.
func (s *NoOpTransactionScope) Schools() school.Repository { return s.schools }

// Students returns the student repository.
func (s *NoOpTransactionScope) Students() student.Repository { return s.students }

// Invoices returns the invoice repository.
func (s *NoOpTransactionScope) Invoices() billing.InvoiceRepository { return s.invoices }

// Payments returns the payment repository.
func (s *NoOpTransactionScope) Payments() billing.PaymentRepository { return s.payments }
