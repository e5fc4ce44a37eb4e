package account_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	appaccount "github.com/mattilda/backend/internal/application/account"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
	"github.com/mattilda/backend/internal/infrastructure/persistence"
	"github.com/mattilda/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var firstPage = shared.PageRequest{Skip: 0, Limit: 10}

func TestSchoolStatement(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	sc := f.CreateSchool(t, "Lincoln High")
	ana := f.CreateStudent(t, sc.ID, "Ana", "Lopez")
	ben := f.CreateStudent(t, sc.ID, "Ben", "Ruiz")
	invA := f.CreateInvoice(t, ana.ID, "INV-001", "1000.00")
	f.CreateInvoice(t, ben.ID, "INV-002", "500.00")
	_, err := f.Pay(invA.ID, "300.00")
	require.NoError(t, err)

	st, err := f.Accounts.GetSchoolAccountStatus(ctx, sc.ID, firstPage)
	require.NoError(t, err)
	assert.Equal(t, "Lincoln High", st.SchoolName)
	assert.Equal(t, int64(2), st.TotalStudents)
	assert.Equal(t, "1500.00", st.TotalInvoiced.String())
	assert.Equal(t, "300.00", st.TotalPaid.String())
	assert.Equal(t, "1200.00", st.TotalPending.String())
	assert.Equal(t, int64(2), st.TotalInvoices)
	require.Len(t, st.Invoices, 2)

	var paidLine int
	for _, line := range st.Invoices {
		if line.ID == invA.ID {
			require.Len(t, line.Payments, 1)
			assert.Equal(t, billing.InvoiceStatusPartial, line.Status)
			paidLine++
		}
	}
	assert.Equal(t, 1, paidLine)

	paged, err := f.Accounts.GetSchoolAccountStatus(ctx, sc.ID, shared.PageRequest{Skip: 1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, paged.Invoices, 1)
	assert.Equal(t, int64(2), paged.TotalInvoices)
	assert.Equal(t, "1500.00", paged.TotalInvoiced.String())

	_, err = f.Accounts.GetSchoolAccountStatus(ctx, uuid.New(), firstPage)
	assert.True(t, shared.IsNotFound(err))
}

func TestSchoolStatement_CountsOnlyActiveStudents(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	sc := f.CreateSchool(t, "Lincoln High")
	f.CreateStudent(t, sc.ID, "Ana", "Lopez")
	ben := f.CreateStudent(t, sc.ID, "Ben", "Ruiz")
	require.NoError(t, f.DB.Table("students").Where("id = ?", ben.ID).Update("is_active", false).Error)

	st, err := f.Accounts.GetSchoolAccountStatus(ctx, sc.ID, firstPage)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.TotalStudents)
	assert.Equal(t, "0.00", st.TotalPending.String())
}

func TestStudentStatement(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	sc := f.CreateSchool(t, "Lincoln High")
	ana := f.CreateStudent(t, sc.ID, "Ana", "Lopez")
	ben := f.CreateStudent(t, sc.ID, "Ben", "Ruiz")
	inv := f.CreateInvoice(t, ana.ID, "INV-001", "1000.00")
	f.CreateInvoice(t, ben.ID, "INV-002", "500.00")
	_, err := f.Pay(inv.ID, "300.00")
	require.NoError(t, err)

	st, err := f.Accounts.GetStudentAccountStatus(ctx, ana.ID, firstPage)
	require.NoError(t, err)
	assert.Equal(t, "Ana Lopez", st.StudentName)
	assert.Equal(t, sc.ID, st.SchoolID)
	assert.Equal(t, "Lincoln High", st.SchoolName)
	assert.Equal(t, "1000.00", st.TotalInvoiced.String())
	assert.Equal(t, "300.00", st.TotalPaid.String())
	assert.Equal(t, "700.00", st.TotalPending.String())
	assert.Equal(t, int64(1), st.TotalInvoices)

	_, err = f.Accounts.GetStudentAccountStatus(ctx, uuid.New(), firstPage)
	assert.True(t, shared.IsNotFound(err))
}

func TestStudentDebt(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	sc := f.CreateSchool(t, "Lincoln High")
	other := f.CreateSchool(t, "Roosevelt")
	ana := f.CreateStudent(t, sc.ID, "Ana", "Lopez")
	ben := f.CreateStudent(t, sc.ID, "Ben", "Ruiz")
	inv := f.CreateInvoice(t, ana.ID, "INV-001", "1000.00")
	f.CreateInvoice(t, ben.ID, "INV-002", "500.00")
	_, err := f.Pay(inv.ID, "300.00")
	require.NoError(t, err)

	debt, err := f.Accounts.GetStudentDebt(ctx, ana.ID, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, "700.00", debt.String())

	_, err = f.Accounts.GetStudentDebt(ctx, ana.ID, other.ID)
	assert.ErrorIs(t, err, shared.ErrMismatch)

	_, err = f.Accounts.GetStudentDebt(ctx, uuid.New(), sc.ID)
	assert.True(t, shared.IsNotFound(err))

	total, err := f.Accounts.GetSchoolTotalDebt(ctx, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, "1200.00", total.String())

	empty, err := f.Accounts.GetSchoolTotalDebt(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", empty.String())

	_, err = f.Accounts.GetSchoolTotalDebt(ctx, uuid.New())
	assert.True(t, shared.IsNotFound(err))
}

func TestStudentDebt_ClampsOverpaidInvoices(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	sc := f.CreateSchool(t, "Lincoln High")
	ana := f.CreateStudent(t, sc.ID, "Ana", "Lopez")
	first := f.CreateInvoice(t, ana.ID, "INV-001", "100.00")
	f.CreateInvoice(t, ana.ID, "INV-002", "50.00")
	_, err := f.Pay(first.ID, "100.00")
	require.NoError(t, err)

	// Lower the total behind the service's back so the invoice is overpaid.
	require.NoError(t, f.DB.Table("invoices").Where("id = ?", first.ID).Update("total_amount", "40.00").Error)

	debt, err := f.Accounts.GetStudentDebt(ctx, ana.ID, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, "50.00", debt.String())
}

func TestStatementTotalsMatchPerInvoiceSums(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	sc := f.CreateSchool(t, "Lincoln High")
	ana := f.CreateStudent(t, sc.ID, "Ana", "Lopez")
	ben := f.CreateStudent(t, sc.ID, "Ben", "Ruiz")

	payments := map[string][]string{
		"INV-001": {"100.00", "250.50"},
		"INV-002": {"999.99"},
		"INV-003": nil,
		"INV-004": {"0.01", "0.02", "10.00"},
		"INV-005": {"75.25"},
	}
	owners := map[string]uuid.UUID{
		"INV-001": ana.ID, "INV-002": ana.ID, "INV-003": ana.ID,
		"INV-004": ben.ID, "INV-005": ben.ID,
	}
	totals := map[string]string{
		"INV-001": "500.00", "INV-002": "999.99", "INV-003": "42.10",
		"INV-004": "20.00", "INV-005": "300.00",
	}
	for number, amounts := range payments {
		inv := f.CreateInvoice(t, owners[number], number, totals[number])
		for _, amount := range amounts {
			_, err := f.Pay(inv.ID, amount)
			require.NoError(t, err)
		}
	}
	// Payments of another school must not leak into the totals.
	other := f.CreateSchool(t, "Roosevelt")
	outsider := f.CreateStudent(t, other.ID, "Cal", "Diaz")
	_, err := f.Pay(f.CreateInvoice(t, outsider.ID, "INV-001", "80.00").ID, "80.00")
	require.NoError(t, err)

	invoiceRepo := persistence.NewGormInvoiceRepository(f.DB)
	paymentRepo := persistence.NewGormPaymentRepository(f.DB)

	perInvoice := func(filter billing.InvoiceFilter) (invoiced, paid, debt valueobject.Money) {
		invoices, err := invoiceRepo.List(ctx, filter, shared.PageRequest{Limit: shared.MaxPageLimit})
		require.NoError(t, err)
		invoiced, paid, debt = valueobject.Zero(), valueobject.Zero(), valueobject.Zero()
		for i := range invoices {
			sum, err := paymentRepo.SumAmount(ctx, billing.PaymentFilter{InvoiceID: &invoices[i].ID})
			require.NoError(t, err)
			invoiced = invoiced.Add(invoices[i].TotalAmount)
			paid = paid.Add(sum)
			debt = debt.Add(invoices[i].TotalAmount.Sub(sum).ClampZero())
		}
		return invoiced, paid, debt
	}

	invoiced, paid, debt := perInvoice(billing.InvoiceFilter{SchoolID: &sc.ID})
	st, err := f.Accounts.GetSchoolAccountStatus(ctx, sc.ID, firstPage)
	require.NoError(t, err)
	assert.Equal(t, invoiced.String(), st.TotalInvoiced.String())
	assert.Equal(t, paid.String(), st.TotalPaid.String())
	assert.Equal(t, invoiced.Sub(paid).String(), st.TotalPending.String())
	assert.Equal(t, "1435.77", st.TotalPaid.String())

	totalDebt, err := f.Accounts.GetSchoolTotalDebt(ctx, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, debt.String(), totalDebt.String())

	for _, studentID := range []uuid.UUID{ana.ID, ben.ID} {
		invoiced, paid, debt := perInvoice(billing.InvoiceFilter{StudentID: &studentID})
		stmt, err := f.Accounts.GetStudentAccountStatus(ctx, studentID, firstPage)
		require.NoError(t, err)
		assert.Equal(t, invoiced.String(), stmt.TotalInvoiced.String())
		assert.Equal(t, paid.String(), stmt.TotalPaid.String())

		studentDebt, err := f.Accounts.GetStudentDebt(ctx, studentID, sc.ID)
		require.NoError(t, err)
		assert.Equal(t, debt.String(), studentDebt.String())
	}
}

func TestStatementCache_Coherence(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	sc := f.CreateSchool(t, "Lincoln High")
	ana := f.CreateStudent(t, sc.ID, "Ana", "Lopez")
	inv := f.CreateInvoice(t, ana.ID, "INV-001", "1000.00")

	warm, err := f.Accounts.GetSchoolAccountStatus(ctx, sc.ID, firstPage)
	require.NoError(t, err)
	assert.Equal(t, "0.00", warm.TotalPaid.String())
	_, err = f.Accounts.GetStudentAccountStatus(ctx, ana.ID, firstPage)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Store.Size())

	_, err = f.Pay(inv.ID, "250.00")
	require.NoError(t, err)
	assert.Equal(t, 0, f.Store.Size())

	fresh, err := f.Accounts.GetSchoolAccountStatus(ctx, sc.ID, firstPage)
	require.NoError(t, err)
	assert.Equal(t, "250.00", fresh.TotalPaid.String())

	student, err := f.Accounts.GetStudentAccountStatus(ctx, ana.ID, firstPage)
	require.NoError(t, err)
	assert.Equal(t, "750.00", student.TotalPending.String())
}

func TestStatementCache_ServesCachedPages(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	sc := f.CreateSchool(t, "Lincoln High")
	ana := f.CreateStudent(t, sc.ID, "Ana", "Lopez")
	f.CreateInvoice(t, ana.ID, "INV-001", "100.00")

	_, err := f.Accounts.GetSchoolAccountStatus(ctx, sc.ID, firstPage)
	require.NoError(t, err)

	// A write that bypasses the services is invisible until the entry is invalidated.
	require.NoError(t, f.DB.Table("invoices").Where("school_id = ?", sc.ID).Update("total_amount", "900.00").Error)

	cached, err := f.Accounts.GetSchoolAccountStatus(ctx, sc.ID, firstPage)
	require.NoError(t, err)
	assert.Equal(t, "100.00", cached.TotalInvoiced.String())

	other, err := f.Accounts.GetSchoolAccountStatus(ctx, sc.ID, shared.PageRequest{Skip: 0, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, "900.00", other.TotalInvoiced.String())

	f.Cache.InvalidateSchool(ctx, sc.ID)
	refreshed, err := f.Accounts.GetSchoolAccountStatus(ctx, sc.ID, firstPage)
	require.NoError(t, err)
	assert.Equal(t, "900.00", refreshed.TotalInvoiced.String())
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func (failingStore) DeleteByPrefix(context.Context, string) error {
	return errors.New("connection refused")
}

func TestStatementCache_DegradesToMiss(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	f := testutil.NewFixtureWithDB(t, db)
	ctx := context.Background()

	sc := f.CreateSchool(t, "Lincoln High")
	ana := f.CreateStudent(t, sc.ID, "Ana", "Lopez")
	f.CreateInvoice(t, ana.ID, "INV-001", "100.00")

	accounts := appaccount.NewAccountService(
		persistence.NewGormSchoolRepository(db),
		persistence.NewGormStudentRepository(db),
		persistence.NewGormInvoiceRepository(db),
		persistence.NewGormPaymentRepository(db),
		appaccount.NewStatementCache(failingStore{}, zap.NewNop()),
		zap.NewNop(),
	)

	st, err := accounts.GetSchoolAccountStatus(ctx, sc.ID, firstPage)
	require.NoError(t, err)
	assert.Equal(t, "100.00", st.TotalInvoiced.String())

	debt, err := accounts.GetStudentDebt(ctx, ana.ID, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", debt.String())
}

func TestStatementKeys(t *testing.T) {
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	assert.Equal(t, "school:11111111-1111-1111-1111-111111111111:statement:", appaccount.NamespacePrefix(appaccount.ScopeSchool, id))
	assert.Equal(t,
		"student:11111111-1111-1111-1111-111111111111:statement:skip:20:limit:10",
		appaccount.StatementKey(appaccount.ScopeStudent, id, shared.PageRequest{Skip: 20, Limit: 10}),
	)

	c := appaccount.NewStatementCache(nil, nil, appaccount.WithTTL(5*time.Second))
	assert.Equal(t, 5*time.Second, c.TTL())
	assert.Equal(t, appaccount.DefaultStatementTTL, appaccount.NewStatementCache(nil, nil, appaccount.WithTTL(0)).TTL())
}
