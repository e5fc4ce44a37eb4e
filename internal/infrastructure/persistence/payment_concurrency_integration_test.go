//go:build integration

package persistence_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	appbilling "github.com/mattilda/backend/internal/application/billing"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
	"github.com/mattilda/backend/internal/testutil"
	"github.com/mattilda/backend/internal/testutil/pgtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_ConcurrentPaymentsNeverOverpay(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	tdb := pgtest.New(t)
	f := testutil.NewFixtureWithDB(t, tdb.DB)
	ctx := context.Background()

	sc := f.CreateSchool(t, "Lincoln High")
	st := f.CreateStudent(t, sc.ID, "Ana", "Lopez")
	inv := f.CreateInvoice(t, st.ID, "INV-001", "100.00")

	const workers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
		rejected int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.Payments.CreatePayment(ctx, appbilling.CreatePaymentRequest{
				InvoiceID: inv.ID,
				Amount:    valueobject.MustMoney("15.00"),
			})
			mu.Lock()
			defer mu.Unlock()
			var overpay *shared.OverpaymentError
			switch {
			case err == nil:
				admitted++
			case errors.As(err, &overpay):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 6, admitted)
	assert.Equal(t, workers-6, rejected)

	got, err := f.Invoices.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusPartial, got.Status)

	debt, err := f.Accounts.GetStudentDebt(ctx, st.ID, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.00", debt.String())
}

func TestPostgres_SchemaConstraints(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	tdb := pgtest.New(t)
	f := testutil.NewFixtureWithDB(t, tdb.DB)

	sc := f.CreateSchool(t, "Lincoln High")
	st := f.CreateStudent(t, sc.ID, "Ana", "Lopez")
	inv := f.CreateInvoice(t, st.ID, "INV-001", "100.00")

	err := tdb.DB.Exec("UPDATE invoices SET status = 'overdue' WHERE id = ?", inv.ID).Error
	assert.Error(t, err)

	err = tdb.DB.Exec("UPDATE invoices SET total_amount = -1 WHERE id = ?", inv.ID).Error
	assert.Error(t, err)

	tdb.Truncate(t)
	var n int64
	require.NoError(t, tdb.DB.Table("schools").Count(&n).Error)
	assert.Zero(t, n)
}
