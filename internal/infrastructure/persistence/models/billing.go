package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// InvoiceModel is the persistence model for the Invoice entity
type InvoiceModel struct {
	BaseModel
	SchoolID      uuid.UUID             `gorm:"type:uuid;not null;index;uniqueIndex:idx_invoice_school_number,priority:1"`
	StudentID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	InvoiceNumber string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_school_number,priority:2"`
	TotalAmount   decimal.Decimal       `gorm:"type:numeric(12,2);not null"`
	Description   string                `gorm:"type:varchar(500)"`
	IssueDate     datatypes.Date        `gorm:"type:date;not null"`
	DueDate       datatypes.Date        `gorm:"type:date;not null;index"`
	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Payments      []PaymentModel        `gorm:"foreignKey:InvoiceID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
// Payments are converted only when they were preloaded.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		BaseEntity:    m.BaseModel.ToDomain(),
		SchoolID:      m.SchoolID,
		StudentID:     m.StudentID,
		InvoiceNumber: m.InvoiceNumber,
		TotalAmount:   valueobject.FromDecimal(m.TotalAmount),
		Description:   m.Description,
		IssueDate:     dateToTime(m.IssueDate),
		DueDate:       dateToTime(m.DueDate),
		Status:        m.Status,
	}
	if m.Payments != nil {
		inv.Payments = make([]billing.Payment, len(m.Payments))
		for i := range m.Payments {
			inv.Payments[i] = *m.Payments[i].ToDomain()
		}
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice entity.
// Payments are never written through the invoice.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.SchoolID = inv.SchoolID
	m.StudentID = inv.StudentID
	m.InvoiceNumber = inv.InvoiceNumber
	m.TotalAmount = inv.TotalAmount.Decimal()
	m.Description = inv.Description
	m.IssueDate = datatypes.Date(inv.IssueDate)
	m.DueDate = datatypes.Date(inv.DueDate)
	m.Status = inv.Status
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice entity
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// PaymentModel is the persistence model for the Payment entity.
// school_id and student_id are denormalized from the invoice for aggregate queries.
type PaymentModel struct {
	BaseModel
	InvoiceID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	SchoolID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	StudentID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentMethod    string          `gorm:"type:varchar(50)"`
	PaymentReference string          `gorm:"type:varchar(100)"`
	Notes            string          `gorm:"type:varchar(500)"`
	PaymentDate      time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseEntity:       m.BaseModel.ToDomain(),
		InvoiceID:        m.InvoiceID,
		SchoolID:         m.SchoolID,
		StudentID:        m.StudentID,
		Amount:           valueobject.FromDecimal(m.Amount),
		PaymentMethod:    m.PaymentMethod,
		PaymentReference: m.PaymentReference,
		Notes:            m.Notes,
		PaymentDate:      m.PaymentDate,
	}
}

// FromDomain populates the persistence model from a domain Payment entity
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.InvoiceID = p.InvoiceID
	m.SchoolID = p.SchoolID
	m.StudentID = p.StudentID
	m.Amount = p.Amount.Decimal()
	m.PaymentMethod = p.PaymentMethod
	m.PaymentReference = p.PaymentReference
	m.Notes = p.Notes
	m.PaymentDate = p.PaymentDate
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// AllModels lists every model in migration order
func AllModels() []any {
	return []any{
		&SchoolModel{},
		&StudentModel{},
		&InvoiceModel{},
		&PaymentModel{},
	}
}
