// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free of
// ORM concerns.
//
// Structure:
// - base.go: BaseModel shared by every table
// - enrollment.go: schools and students
// - billing.go: invoices and payments
package models
