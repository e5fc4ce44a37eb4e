package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReceivablesProvider implements ReceivablesProvider with aggregate queries over
// the invoices and payments tables.
type GormReceivablesProvider struct {
	db *gorm.DB
}

// NewGormReceivablesProvider creates a new GormReceivablesProvider.
func NewGormReceivablesProvider(db *gorm.DB) *GormReceivablesProvider {
	return &GormReceivablesProvider{db: db}
}

// InvoiceCountsByStatus returns the number of invoices per status.
func (p *GormReceivablesProvider) InvoiceCountsByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string `gorm:"column:status"`
		Total  int64  `gorm:"column:total"`
	}

	var rows []row
	err := p.db.WithContext(ctx).
		Table("invoices").
		Select("status, COUNT(*) AS total").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

// OutstandingBalance returns total invoiced minus total paid, excluding cancelled invoices.
func (p *GormReceivablesProvider) OutstandingBalance(ctx context.Context) (decimal.Decimal, error) {
	var invoiced, paid struct{ Total decimal.Decimal }

	db := p.db.WithContext(ctx)
	if err := db.Table("invoices").
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("status <> ?", "cancelled").
		Scan(&invoiced).Error; err != nil {
		return decimal.Zero, err
	}
	if err := db.Table("payments").
		Select("COALESCE(SUM(payments.amount), 0) AS total").
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("invoices.status <> ?", "cancelled").
		Scan(&paid).Error; err != nil {
		return decimal.Zero, err
	}
	return invoiced.Total.Sub(paid.Total).Round(2), nil
}
