package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
	"github.com/mattilda/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID without payments
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "invoice", id)
	}
	return model.ToDomain(), nil
}

// FindByIDWithPayments finds an invoice and preloads its payments, newest first
func (r *GormInvoiceRepository) FindByIDWithPayments(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Payments", orderPayments).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "invoice", id)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds an invoice with SELECT ... FOR UPDATE.
// Must be called inside a transaction; the lock is held until commit or rollback.
func (r *GormInvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	query := r.db.WithContext(ctx)
	if supportsRowLocks(r.db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model models.InvoiceModel
	if err := query.First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "invoice", id)
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an invoice by number within a school
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, schoolID uuid.UUID, number string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("school_id = ? AND invoice_number = ?", schoolID, number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns invoices matching the filter, newest first
func (r *GormInvoiceRepository) List(ctx context.Context, filter billing.InvoiceFilter, page shared.PageRequest) ([]billing.Invoice, error) {
	var rows []models.InvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter).
		Order("created_at DESC").
		Order("id ASC")
	if err := paginate(query, page).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainInvoices(rows), nil
}

// ListForStatement returns invoices ordered by due date then creation time, both newest
// first, with their payments preloaded
func (r *GormInvoiceRepository) ListForStatement(ctx context.Context, filter billing.InvoiceFilter, page shared.PageRequest) ([]billing.Invoice, error) {
	var rows []models.InvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter).
		Preload("Payments", orderPayments).
		Order("due_date DESC").
		Order("created_at DESC").
		Order("id ASC")
	if err := paginate(query, page).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainInvoices(rows), nil
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter billing.InvoiceFilter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumTotal sums total_amount over the matching invoices
func (r *GormInvoiceRepository) SumTotal(ctx context.Context, filter billing.InvoiceFilter) (valueobject.Money, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Scan(&result).Error; err != nil {
		return valueobject.Zero(), err
	}
	return valueobject.FromDecimal(result.Total), nil
}

// BalancesByStudent returns every invoice of the student with the sum of its payments.
// Invoices without payments report a zero paid amount.
func (r *GormInvoiceRepository) BalancesByStudent(ctx context.Context, studentID uuid.UUID) ([]billing.InvoiceBalance, error) {
	var rows []struct {
		InvoiceID   uuid.UUID
		TotalAmount decimal.Decimal
		PaidAmount  decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Table("invoices").
		Select("invoices.id AS invoice_id, invoices.total_amount AS total_amount, COALESCE(SUM(payments.amount), 0) AS paid_amount").
		Joins("LEFT JOIN payments ON payments.invoice_id = invoices.id").
		Where("invoices.student_id = ?", studentID).
		Group("invoices.id, invoices.total_amount").
		Order("invoices.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	balances := make([]billing.InvoiceBalance, len(rows))
	for i, row := range rows {
		balances[i] = billing.InvoiceBalance{
			InvoiceID:   row.InvoiceID,
			TotalAmount: valueobject.FromDecimal(row.TotalAmount),
			PaidAmount:  valueobject.FromDecimal(row.PaidAmount),
		}
	}
	return balances, nil
}

// Save creates or updates an invoice. Payments are never written through the invoice.
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(inv)
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error
	return translateWriteError(err, "invoice")
}

// UpdateStatus writes only the status column
func (r *GormInvoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status billing.InvoiceStatus) error {
	result := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("invoice", id)
	}
	return nil
}

// Delete deletes an invoice row
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("invoice", id)
	}
	return nil
}

// DeleteByStudent deletes every invoice of a student
func (r *GormInvoiceRepository) DeleteByStudent(ctx context.Context, studentID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("student_id = ?", studentID).Delete(&models.InvoiceModel{}).Error
}

// DeleteBySchool deletes every invoice of a school
func (r *GormInvoiceRepository) DeleteBySchool(ctx context.Context, schoolID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("school_id = ?", schoolID).Delete(&models.InvoiceModel{}).Error
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter billing.InvoiceFilter) *gorm.DB {
	if filter.SchoolID != nil {
		query = query.Where("school_id = ?", *filter.SchoolID)
	}
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

func orderPayments(db *gorm.DB) *gorm.DB {
	return db.Order("payment_date DESC").Order("created_at DESC")
}

func toDomainInvoices(rows []models.InvoiceModel) []billing.Invoice {
	invoices := make([]billing.Invoice, len(rows))
	for i := range rows {
		invoices[i] = *rows[i].ToDomain()
	}
	return invoices
}

// Ensure GormInvoiceRepository implements billing.InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
