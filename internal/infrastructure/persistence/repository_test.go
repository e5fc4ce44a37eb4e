package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appshared "github.com/mattilda/backend/internal/application/shared"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/school"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
	"github.com/mattilda/backend/internal/domain/student"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createSchool(t *testing.T, db *gorm.DB, name string) *school.School {
	t.Helper()
	sc, err := school.NewSchool(name, "", "", "")
	require.NoError(t, err)
	require.NoError(t, NewGormSchoolRepository(db).Save(context.Background(), sc))
	return sc
}

func createStudent(t *testing.T, db *gorm.DB, schoolID uuid.UUID, first, last string) *student.Student {
	t.Helper()
	st, err := student.NewStudent(schoolID, student.Profile{FirstName: first, LastName: last})
	require.NoError(t, err)
	require.NoError(t, NewGormStudentRepository(db).Save(context.Background(), st))
	return st
}

func createInvoice(t *testing.T, db *gorm.DB, st *student.Student, number, total string, due time.Time) *billing.Invoice {
	t.Helper()
	inv, err := billing.NewInvoice(st.SchoolID, st.ID, billing.InvoiceDetails{
		InvoiceNumber: number,
		TotalAmount:   valueobject.MustMoney(total),
		IssueDate:     due.AddDate(0, 0, -30),
		DueDate:       due,
	})
	require.NoError(t, err)
	require.NoError(t, NewGormInvoiceRepository(db).Save(context.Background(), inv))
	return inv
}

func createPayment(t *testing.T, db *gorm.DB, inv *billing.Invoice, amount string, paidOn time.Time) *billing.Payment {
	t.Helper()
	p, err := billing.NewPayment(inv, valueobject.MustMoney(amount), billing.PaymentMetadata{
		PaymentMethod: "transfer",
		PaymentDate:   &paidOn,
	})
	require.NoError(t, err)
	require.NoError(t, NewGormPaymentRepository(db).Create(context.Background(), p))
	return p
}

func TestGormSchoolRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSchoolRepository(db)
	ctx := context.Background()

	beta := createSchool(t, db, "Beta Academy")
	alpha := createSchool(t, db, "Alpha School")
	closed := createSchool(t, db, "Closed School")
	closed.Deactivate()
	require.NoError(t, repo.Save(ctx, closed))

	t.Run("FindByID round trips fields", func(t *testing.T) {
		found, err := repo.FindByID(ctx, alpha.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alpha School", found.Name)
		assert.True(t, found.IsActive)
	})

	t.Run("FindByID returns not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("Exists", func(t *testing.T) {
		ok, err := repo.Exists(ctx, beta.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Exists(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("List orders by name and pages", func(t *testing.T) {
		all, err := repo.List(ctx, school.Filter{}, shared.PageRequest{Skip: 0, Limit: 10})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Alpha School", all[0].Name)
		assert.Equal(t, "Beta Academy", all[1].Name)

		second, err := repo.List(ctx, school.Filter{}, shared.PageRequest{Skip: 1, Limit: 1})
		require.NoError(t, err)
		require.Len(t, second, 1)
		assert.Equal(t, beta.ID, second[0].ID)
	})

	t.Run("Count honors the active filter", func(t *testing.T) {
		active := true
		count, err := repo.Count(ctx, school.Filter{IsActive: &active})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, closed.ID))
		assert.ErrorIs(t, repo.Delete(ctx, closed.ID), shared.ErrNotFound)
	})
}

func TestGormStudentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStudentRepository(db)
	ctx := context.Background()

	sc := createSchool(t, db, "North")
	other := createSchool(t, db, "South")

	dob := day(2012, time.March, 4)
	ana, err := student.NewStudent(sc.ID, student.Profile{
		FirstName:   "Ana",
		LastName:    "Zamora",
		Email:       "ana@example.com",
		StudentCode: "S-001",
		DateOfBirth: &dob,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, ana))
	bo := createStudent(t, db, sc.ID, "Bo", "Abril")
	createStudent(t, db, other.ID, "Cy", "Mena")

	t.Run("optional fields survive the round trip", func(t *testing.T) {
		found, err := repo.FindByID(ctx, ana.ID)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", found.Email)
		assert.Equal(t, "S-001", found.StudentCode)
		require.NotNil(t, found.DateOfBirth)
		assert.True(t, dob.Equal(*found.DateOfBirth))

		plain, err := repo.FindByID(ctx, bo.ID)
		require.NoError(t, err)
		assert.Empty(t, plain.Email)
		assert.Nil(t, plain.DateOfBirth)
	})

	t.Run("FindByEmail and FindByCode", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, ana.ID, found.ID)

		found, err = repo.FindByCode(ctx, sc.ID, "S-001")
		require.NoError(t, err)
		assert.Equal(t, ana.ID, found.ID)

		_, err = repo.FindByCode(ctx, other.ID, "S-001")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		dup, err := student.NewStudent(other.ID, student.Profile{FirstName: "Dup", LastName: "Licate", Email: "ana@example.com"})
		require.NoError(t, err)
		err = repo.Save(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("students without email do not collide", func(t *testing.T) {
		createStudent(t, db, other.ID, "No", "Email")
	})

	t.Run("List orders by last then first name", func(t *testing.T) {
		list, err := repo.List(ctx, student.Filter{SchoolID: &sc.ID}, shared.PageRequest{Limit: 10})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Abril", list[0].LastName)
		assert.Equal(t, "Zamora", list[1].LastName)
	})

	t.Run("ListIDsBySchool includes inactive students", func(t *testing.T) {
		bo.SetActive(false)
		require.NoError(t, repo.Save(ctx, bo))

		ids, err := repo.ListIDsBySchool(ctx, sc.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{ana.ID, bo.ID}, ids)

		active := true
		count, err := repo.Count(ctx, student.Filter{SchoolID: &sc.ID, IsActive: &active})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("DeleteBySchool", func(t *testing.T) {
		require.NoError(t, repo.DeleteBySchool(ctx, sc.ID))
		count, err := repo.Count(ctx, student.Filter{SchoolID: &sc.ID})
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestGormInvoiceRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	payments := NewGormPaymentRepository(db)
	ctx := context.Background()

	sc := createSchool(t, db, "North")
	st := createStudent(t, db, sc.ID, "Ana", "Zamora")
	sibling := createStudent(t, db, sc.ID, "Bo", "Zamora")

	march := createInvoice(t, db, st, "INV-1", "100.00", day(2024, time.March, 1))
	april := createInvoice(t, db, st, "INV-2", "50.50", day(2024, time.April, 1))
	createInvoice(t, db, sibling, "INV-3", "10.00", day(2024, time.May, 1))

	createPayment(t, db, march, "30.00", day(2024, time.February, 10))
	createPayment(t, db, march, "20.25", day(2024, time.February, 20))

	t.Run("FindByNumber is scoped to the school", func(t *testing.T) {
		found, err := repo.FindByNumber(ctx, sc.ID, "INV-2")
		require.NoError(t, err)
		assert.Equal(t, april.ID, found.ID)

		_, err = repo.FindByNumber(ctx, uuid.New(), "INV-2")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate number in a school is a conflict", func(t *testing.T) {
		dup, err := billing.NewInvoice(sc.ID, st.ID, billing.InvoiceDetails{
			InvoiceNumber: "INV-1",
			TotalAmount:   valueobject.MustMoney("1.00"),
			IssueDate:     day(2024, time.January, 1),
			DueDate:       day(2024, time.January, 2),
		})
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Save(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("FindByIDWithPayments orders payments newest first", func(t *testing.T) {
		found, err := repo.FindByIDWithPayments(ctx, march.ID)
		require.NoError(t, err)
		require.Len(t, found.Payments, 2)
		assert.Equal(t, "20.25", found.Payments[0].Amount.String())
		assert.Equal(t, "30.00", found.Payments[1].Amount.String())
		assert.True(t, day(2024, time.March, 1).Equal(found.DueDate))
	})

	t.Run("FindByID leaves payments unloaded", func(t *testing.T) {
		found, err := repo.FindByID(ctx, march.ID)
		require.NoError(t, err)
		assert.Nil(t, found.Payments)
	})

	t.Run("FindByIDForUpdate on sqlite reads without locking", func(t *testing.T) {
		found, err := repo.FindByIDForUpdate(ctx, april.ID)
		require.NoError(t, err)
		assert.Equal(t, "INV-2", found.InvoiceNumber)
	})

	t.Run("ListForStatement orders by due date desc", func(t *testing.T) {
		list, err := repo.ListForStatement(ctx, billing.InvoiceFilter{StudentID: &st.ID}, shared.PageRequest{Limit: 10})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, april.ID, list[0].ID)
		assert.Equal(t, march.ID, list[1].ID)
		assert.Len(t, list[1].Payments, 2)
		assert.Empty(t, list[0].Payments)
	})

	t.Run("SumTotal by school and student", func(t *testing.T) {
		total, err := repo.SumTotal(ctx, billing.InvoiceFilter{SchoolID: &sc.ID})
		require.NoError(t, err)
		assert.Equal(t, "160.50", total.String())

		total, err = repo.SumTotal(ctx, billing.InvoiceFilter{StudentID: &st.ID})
		require.NoError(t, err)
		assert.Equal(t, "150.50", total.String())

		nobody := uuid.New()
		total, err = repo.SumTotal(ctx, billing.InvoiceFilter{StudentID: &nobody})
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("BalancesByStudent joins paid sums", func(t *testing.T) {
		balances, err := repo.BalancesByStudent(ctx, st.ID)
		require.NoError(t, err)
		require.Len(t, balances, 2)

		byID := map[uuid.UUID]billing.InvoiceBalance{}
		for _, b := range balances {
			byID[b.InvoiceID] = b
		}
		assert.Equal(t, "50.25", byID[march.ID].PaidAmount.String())
		assert.Equal(t, "49.75", byID[march.ID].Pending().String())
		assert.True(t, byID[april.ID].PaidAmount.IsZero())
	})

	t.Run("UpdateStatus writes only the status", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, march.ID, billing.InvoiceStatusPartial))
		found, err := repo.FindByID(ctx, march.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusPartial, found.Status)
		assert.Equal(t, "100.00", found.TotalAmount.String())

		assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), billing.InvoiceStatusPaid), shared.ErrNotFound)
	})

	t.Run("Count with status filter", func(t *testing.T) {
		status := billing.InvoiceStatusPending
		count, err := repo.Count(ctx, billing.InvoiceFilter{SchoolID: &sc.ID, Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("DeleteByStudent after its payments", func(t *testing.T) {
		require.NoError(t, payments.DeleteByStudent(ctx, st.ID))
		require.NoError(t, repo.DeleteByStudent(ctx, st.ID))
		count, err := repo.Count(ctx, billing.InvoiceFilter{StudentID: &st.ID})
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestGormPaymentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)
	ctx := context.Background()

	sc := createSchool(t, db, "North")
	st := createStudent(t, db, sc.ID, "Ana", "Zamora")
	inv := createInvoice(t, db, st, "INV-1", "100.00", day(2024, time.March, 1))

	first := createPayment(t, db, inv, "0.10", day(2024, time.January, 1))
	createPayment(t, db, inv, "0.20", day(2024, time.January, 2))
	last := createPayment(t, db, inv, "33.33", day(2024, time.January, 3))

	t.Run("payments carry the invoice's school and student", func(t *testing.T) {
		found, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, sc.ID, found.SchoolID)
		assert.Equal(t, st.ID, found.StudentID)
		assert.Equal(t, "transfer", found.PaymentMethod)
	})

	t.Run("SumAmount is exact to the cent", func(t *testing.T) {
		sum, err := repo.SumAmount(ctx, billing.PaymentFilter{InvoiceID: &inv.ID})
		require.NoError(t, err)
		assert.Equal(t, "33.63", sum.String())

		sum, err = repo.SumAmount(ctx, billing.PaymentFilter{SchoolID: &sc.ID, StudentID: &st.ID})
		require.NoError(t, err)
		assert.Equal(t, "33.63", sum.String())
	})

	t.Run("ListByInvoice pages newest first", func(t *testing.T) {
		page, err := repo.ListByInvoice(ctx, inv.ID, shared.PageRequest{Skip: 0, Limit: 2})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, last.ID, page[0].ID)

		rest, err := repo.ListByInvoice(ctx, inv.ID, shared.PageRequest{Skip: 2, Limit: 2})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, first.ID, rest[0].ID)
	})

	t.Run("Count and DeleteByInvoice", func(t *testing.T) {
		count, err := repo.Count(ctx, billing.PaymentFilter{InvoiceID: &inv.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)

		require.NoError(t, repo.DeleteByInvoice(ctx, inv.ID))
		count, err = repo.Count(ctx, billing.PaymentFilter{InvoiceID: &inv.ID})
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("FindByID missing", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestGormTransactionScope(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()

	sc := createSchool(t, db, "North")

	t.Run("rolls back every write when fn fails", func(t *testing.T) {
		var created uuid.UUID
		err := scope.Execute(ctx, func(repos appshared.Repositories) error {
			st, err := student.NewStudent(sc.ID, student.Profile{FirstName: "Temp", LastName: "Student"})
			require.NoError(t, err)
			created = st.ID
			if err := repos.Students().Save(ctx, st); err != nil {
				return err
			}
			return assert.AnError
		})
		require.ErrorIs(t, err, assert.AnError)

		_, err = NewGormStudentRepository(db).FindByID(ctx, created)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("commits on success", func(t *testing.T) {
		var created uuid.UUID
		err := scope.Execute(ctx, func(repos appshared.Repositories) error {
			st, err := student.NewStudent(sc.ID, student.Profile{FirstName: "Kept", LastName: "Student"})
			require.NoError(t, err)
			created = st.ID
			return repos.Students().Save(ctx, st)
		})
		require.NoError(t, err)

		_, err = NewGormStudentRepository(db).FindByID(ctx, created)
		assert.NoError(t, err)
	})
}
