package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appaccount "github.com/mattilda/backend/internal/application/account"
	appbilling "github.com/mattilda/backend/internal/application/billing"
	"github.com/mattilda/backend/internal/application/enrollment"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/school"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
	"github.com/mattilda/backend/internal/domain/student"
	"github.com/mattilda/backend/internal/infrastructure/cache"
	"github.com/mattilda/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Fixture wires every application service to one database and an in-memory statement store
type Fixture struct {
	DB    *gorm.DB
	Store *cache.InMemoryStatementStore
	Cache *appaccount.StatementCache

	Schools  *enrollment.SchoolService
	Students *enrollment.StudentService
	Invoices *appbilling.InvoiceService
	Payments *appbilling.PaymentService
	Accounts *appaccount.AccountService
}

// NewFixture builds the services on a fresh in-memory SQLite database
func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	return NewFixtureWithDB(t, NewSQLiteDB(t))
}

// NewFixtureWithDB builds the services on db
func NewFixtureWithDB(t *testing.T, db *gorm.DB) *Fixture {
	t.Helper()

	logger := zap.NewNop()
	store := cache.NewInMemoryStatementStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	schools := persistence.NewGormSchoolRepository(db)
	students := persistence.NewGormStudentRepository(db)
	invoices := persistence.NewGormInvoiceRepository(db)
	payments := persistence.NewGormPaymentRepository(db)
	txScope := persistence.NewGormTransactionScope(db)

	statementCache := appaccount.NewStatementCache(store, logger)
	invalidator := appaccount.NewInvalidator(invoices, payments, statementCache)

	return &Fixture{
		DB:       db,
		Store:    store,
		Cache:    statementCache,
		Schools:  enrollment.NewSchoolService(txScope, schools, statementCache, logger),
		Students: enrollment.NewStudentService(txScope, students, schools, statementCache, logger),
		Invoices: appbilling.NewInvoiceService(txScope, invoices, payments, students, invalidator, logger),
		Payments: appbilling.NewPaymentService(txScope, invoices, payments, invalidator, logger),
		Accounts: appaccount.NewAccountService(schools, students, invoices, payments, statementCache, logger),
	}
}

// CreateSchool creates an active school named name
func (f *Fixture) CreateSchool(t *testing.T, name string) *school.School {
	t.Helper()
	sc, err := f.Schools.Create(context.Background(), enrollment.SchoolInput{Name: name})
	require.NoError(t, err)
	return sc
}

// CreateStudent enrolls a student in schoolID
func (f *Fixture) CreateStudent(t *testing.T, schoolID uuid.UUID, first, last string) *student.Student {
	t.Helper()
	st, err := f.Students.Create(context.Background(), enrollment.CreateStudentRequest{
		SchoolID: schoolID,
		Profile:  student.Profile{FirstName: first, LastName: last},
	})
	require.NoError(t, err)
	return st
}

// CreateInvoice bills studentID for total, due 30 days after 2025-01-01
func (f *Fixture) CreateInvoice(t *testing.T, studentID uuid.UUID, number, total string) *billing.Invoice {
	t.Helper()
	inv, err := f.Invoices.Create(context.Background(), appbilling.CreateInvoiceRequest{
		StudentID:     studentID,
		InvoiceNumber: number,
		TotalAmount:   valueobject.MustMoney(total),
		IssueDate:     Date(2025, time.January, 1),
		DueDate:       Date(2025, time.January, 31),
	})
	require.NoError(t, err)
	return inv
}

// Pay admits a payment of amount against invoiceID
func (f *Fixture) Pay(invoiceID uuid.UUID, amount string) (*billing.Payment, error) {
	return f.Payments.CreatePayment(context.Background(), appbilling.CreatePaymentRequest{
		InvoiceID: invoiceID,
		Amount:    valueobject.MustMoney(amount),
		Metadata:  billing.PaymentMetadata{PaymentMethod: "transfer"},
	})
}
