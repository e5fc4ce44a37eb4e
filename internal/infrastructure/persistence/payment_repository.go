package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
	"github.com/mattilda/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements billing.PaymentRepository using GORM.
// Payments are append-only; there is no update path.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "payment", id)
	}
	return model.ToDomain(), nil
}

// ListByInvoice returns a page of an invoice's payments, newest payment_date first
func (r *GormPaymentRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID, page shared.PageRequest) ([]billing.Payment, error) {
	var rows []models.PaymentModel
	query := orderPayments(r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID))
	if err := paginate(query, page).Find(&rows).Error; err != nil {
		return nil, err
	}

	payments := make([]billing.Payment, len(rows))
	for i := range rows {
		payments[i] = *rows[i].ToDomain()
	}
	return payments, nil
}

// Count counts payments matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter billing.PaymentFilter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumAmount sums amount over the matching payments
func (r *GormPaymentRepository) SumAmount(ctx context.Context, filter billing.PaymentFilter) (valueobject.Money, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter).
		Select("COALESCE(SUM(amount), 0) AS total").
		Scan(&result).Error; err != nil {
		return valueobject.Zero(), err
	}
	return valueobject.FromDecimal(result.Total), nil
}

// Create inserts a new payment
func (r *GormPaymentRepository) Create(ctx context.Context, p *billing.Payment) error {
	model := models.PaymentModelFromDomain(p)
	return translateWriteError(r.db.WithContext(ctx).Create(model).Error, "payment")
}

// DeleteByInvoice deletes every payment of an invoice
func (r *GormPaymentRepository) DeleteByInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).Delete(&models.PaymentModel{}).Error
}

// DeleteByStudent deletes every payment of a student
func (r *GormPaymentRepository) DeleteByStudent(ctx context.Context, studentID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("student_id = ?", studentID).Delete(&models.PaymentModel{}).Error
}

// DeleteBySchool deletes every payment of a school
func (r *GormPaymentRepository) DeleteBySchool(ctx context.Context, schoolID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("school_id = ?", schoolID).Delete(&models.PaymentModel{}).Error
}

func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter billing.PaymentFilter) *gorm.DB {
	if filter.InvoiceID != nil {
		query = query.Where("invoice_id = ?", *filter.InvoiceID)
	}
	if filter.SchoolID != nil {
		query = query.Where("school_id = ?", *filter.SchoolID)
	}
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	return query
}

// Ensure GormPaymentRepository implements billing.PaymentRepository
var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
