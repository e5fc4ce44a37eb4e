package persistence

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattilda/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes mapped to domain errors
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// notFound maps gorm.ErrRecordNotFound to a NOT_FOUND domain error
func notFound(err error, resource string, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NotFound(resource, id)
	}
	return err
}

// translateWriteError maps constraint violations raised by the database to domain errors.
// Application checks run first; this covers the race between check and insert.
func translateWriteError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.Conflict("%s already exists", resource)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return shared.Validation("%s references a missing record", resource)
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return shared.Validation("%s violates a constraint", resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return shared.Conflict("%s already exists", resource)
		case pgForeignKeyViolation:
			return shared.Validation("%s references a missing record", resource)
		case pgCheckViolation:
			return shared.Validation("%s violates constraint %s", resource, pgErr.ConstraintName)
		}
	}
	return err
}

// paginate applies offset and limit. A zero limit leaves the query unbounded.
func paginate(db *gorm.DB, page shared.PageRequest) *gorm.DB {
	if page.Skip > 0 {
		db = db.Offset(page.Skip)
	}
	if page.Limit > 0 {
		db = db.Limit(page.Limit)
	}
	return db
}

// supportsRowLocks reports whether the dialect understands SELECT ... FOR UPDATE
func supportsRowLocks(db *gorm.DB) bool {
	return db.Dialector.Name() != "sqlite"
}
