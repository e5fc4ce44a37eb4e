package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appbilling "github.com/mattilda/backend/internal/application/billing"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
	"github.com/mattilda/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceService_Create(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	sc := f.CreateSchool(t, "Lincoln High")
	other := f.CreateSchool(t, "Roosevelt")
	st := f.CreateStudent(t, sc.ID, "Ana", "Lopez")

	t.Run("defaults school and issue date", func(t *testing.T) {
		inv, err := f.Invoices.Create(ctx, appbilling.CreateInvoiceRequest{
			StudentID:     st.ID,
			InvoiceNumber: "INV-001",
			TotalAmount:   valueobject.MustMoney("250.00"),
			DueDate:       time.Now().UTC().AddDate(0, 1, 0),
		})
		require.NoError(t, err)
		assert.Equal(t, sc.ID, inv.SchoolID)
		assert.False(t, inv.IssueDate.IsZero())
		assert.Equal(t, billing.InvoiceStatusPending, inv.Status)
	})

	t.Run("school must match the student", func(t *testing.T) {
		_, err := f.Invoices.Create(ctx, appbilling.CreateInvoiceRequest{
			StudentID:     st.ID,
			SchoolID:      &other.ID,
			InvoiceNumber: "INV-002",
			TotalAmount:   valueobject.MustMoney("10.00"),
			IssueDate:     testutil.Date(2025, time.March, 1),
			DueDate:       testutil.Date(2025, time.March, 31),
		})
		assert.ErrorIs(t, err, shared.ErrMismatch)
	})

	t.Run("duplicate number in the school", func(t *testing.T) {
		_, err := f.Invoices.Create(ctx, appbilling.CreateInvoiceRequest{
			StudentID:     st.ID,
			InvoiceNumber: "INV-001",
			TotalAmount:   valueobject.MustMoney("10.00"),
			IssueDate:     testutil.Date(2025, time.March, 1),
			DueDate:       testutil.Date(2025, time.March, 31),
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("due before issue", func(t *testing.T) {
		_, err := f.Invoices.Create(ctx, appbilling.CreateInvoiceRequest{
			StudentID:     st.ID,
			InvoiceNumber: "INV-003",
			TotalAmount:   valueobject.MustMoney("10.00"),
			IssueDate:     testutil.Date(2025, time.March, 31),
			DueDate:       testutil.Date(2025, time.March, 1),
		})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := f.Invoices.Create(ctx, appbilling.CreateInvoiceRequest{
			StudentID:     uuid.New(),
			InvoiceNumber: "INV-004",
			TotalAmount:   valueobject.MustMoney("10.00"),
			IssueDate:     testutil.Date(2025, time.March, 1),
			DueDate:       testutil.Date(2025, time.March, 31),
		})
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestInvoiceService_Update(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	sc := f.CreateSchool(t, "Lincoln High")
	ana := f.CreateStudent(t, sc.ID, "Ana", "Lopez")
	ben := f.CreateStudent(t, sc.ID, "Ben", "Ruiz")
	inv := f.CreateInvoice(t, ana.ID, "INV-001", "100.00")

	t.Run("status other than cancelled is refused", func(t *testing.T) {
		paid := billing.InvoiceStatusPaid
		_, err := f.Invoices.Update(ctx, inv.ID, appbilling.UpdateInvoiceRequest{Status: &paid})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("reassign without payments", func(t *testing.T) {
		updated, err := f.Invoices.Update(ctx, inv.ID, appbilling.UpdateInvoiceRequest{StudentID: &ben.ID})
		require.NoError(t, err)
		assert.Equal(t, ben.ID, updated.StudentID)
	})

	_, err := f.Pay(inv.ID, "60.00")
	require.NoError(t, err)

	t.Run("reassign with payments", func(t *testing.T) {
		_, err := f.Invoices.Update(ctx, inv.ID, appbilling.UpdateInvoiceRequest{StudentID: &ana.ID})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("total below paid", func(t *testing.T) {
		total := valueobject.MustMoney("59.99")
		_, err := f.Invoices.Update(ctx, inv.ID, appbilling.UpdateInvoiceRequest{TotalAmount: &total})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("lowering total to the paid sum settles the invoice", func(t *testing.T) {
		total := valueobject.MustMoney("60.00")
		updated, err := f.Invoices.Update(ctx, inv.ID, appbilling.UpdateInvoiceRequest{TotalAmount: &total})
		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusPaid, updated.Status)

		stored, err := f.Invoices.Get(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusPaid, stored.Status)

		status, err := f.Payments.RecomputeStatus(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusPaid, status)
	})

	t.Run("raising total reopens the invoice", func(t *testing.T) {
		total := valueobject.MustMoney("120.00")
		updated, err := f.Invoices.Update(ctx, inv.ID, appbilling.UpdateInvoiceRequest{TotalAmount: &total})
		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusPartial, updated.Status)

		_, err = f.Pay(inv.ID, "60.00")
		require.NoError(t, err)
		stored, err := f.Invoices.Get(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusPaid, stored.Status)
	})

	t.Run("cancel", func(t *testing.T) {
		cancelled := billing.InvoiceStatusCancelled
		updated, err := f.Invoices.Update(ctx, inv.ID, appbilling.UpdateInvoiceRequest{Status: &cancelled})
		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusCancelled, updated.Status)

		status, err := f.Payments.RecomputeStatus(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusCancelled, status)
	})
}

func TestInvoiceService_ListAndDelete(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	sc := f.CreateSchool(t, "Lincoln High")
	st := f.CreateStudent(t, sc.ID, "Ana", "Lopez")
	first := f.CreateInvoice(t, st.ID, "INV-001", "100.00")
	f.CreateInvoice(t, st.ID, "INV-002", "200.00")
	_, err := f.Pay(first.ID, "100.00")
	require.NoError(t, err)

	paid := billing.InvoiceStatusPaid
	count, err := f.Invoices.Count(ctx, billing.InvoiceFilter{SchoolID: &sc.ID, Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	page, err := f.Invoices.List(ctx, billing.InvoiceFilter{StudentID: &st.ID}, shared.PageRequest{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.False(t, page.HasNext)

	require.NoError(t, f.Invoices.Delete(ctx, first.ID))
	_, err = f.Invoices.Get(ctx, first.ID)
	assert.True(t, shared.IsNotFound(err))

	var payments int64
	require.NoError(t, f.DB.Table("payments").Where("invoice_id = ?", first.ID).Count(&payments).Error)
	assert.Zero(t, payments)

	assert.True(t, shared.IsNotFound(f.Invoices.Delete(ctx, first.ID)))
}
