package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormInvoiceRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY "invoices"."id" LIMIT \$2 FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "school_id", "student_id", "invoice_number", "total_amount", "status"}).
			AddRow(id, uuid.New(), uuid.New(), "INV-1", "100.00", "pending"))

	inv, err := NewGormInvoiceRepository(db.DB).FindByIDForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "INV-1", inv.InvoiceNumber)
	assert.Equal(t, "100.00", inv.TotalAmount.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormInvoiceRepository_SumTotal_SingleAggregate(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	schoolID := uuid.New()
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) AS total FROM "invoices" WHERE school_id = \$1`).
		WithArgs(schoolID).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("1234.50"))

	total, err := NewGormInvoiceRepository(db.DB).SumTotal(context.Background(), billing.InvoiceFilter{SchoolID: &schoolID})
	require.NoError(t, err)
	assert.Equal(t, "1234.50", total.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPaymentRepository_SumAmount_SingleAggregate(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	studentID := uuid.New()
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) AS total FROM "payments" WHERE student_id = \$1`).
		WithArgs(studentID).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("0"))

	total, err := NewGormPaymentRepository(db.DB).SumAmount(context.Background(), billing.PaymentFilter{StudentID: &studentID})
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormInvoiceRepository_BalancesByStudent_LeftJoin(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	studentID := uuid.New()
	invoiceID := uuid.New()
	mock.ExpectQuery(`SELECT invoices.id AS invoice_id, invoices.total_amount AS total_amount, COALESCE\(SUM\(payments.amount\), 0\) AS paid_amount FROM "invoices" LEFT JOIN payments ON payments.invoice_id = invoices.id WHERE invoices.student_id = \$1 GROUP BY invoices.id, invoices.total_amount`).
		WithArgs(studentID).
		WillReturnRows(sqlmock.NewRows([]string{"invoice_id", "total_amount", "paid_amount"}).
			AddRow(invoiceID.String(), "80.00", "100.00"))

	balances, err := NewGormInvoiceRepository(db.DB).BalancesByStudent(context.Background(), studentID)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, invoiceID, balances[0].InvoiceID)
	assert.Equal(t, "-20.00", balances[0].Pending().String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
