package shared

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error codes shared by every bounded context
const (
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeValidation          = "VALIDATION_ERROR"
	CodeInvalidState        = "INVALID_STATE"
	CodeMismatch            = "MISMATCH"
	CodeOverpayment         = "OVERPAYMENT"
	CodeDebtBlockedTransfer = "DEBT_BLOCKED_TRANSFER"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so wrapped sentinels match with errors.Is.
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if !errors.As(target, &de) {
		return false
	}
	return e.Code == de.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput  = NewDomainError(CodeValidation, "Invalid input provided")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrMismatch      = NewDomainError(CodeMismatch, "Related resources do not match")
)

// NotFound builds a NOT_FOUND error naming the missing resource.
func NotFound(resource string, id fmt.Stringer) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %s not found", resource, id))
}

// Validation builds a VALIDATION_ERROR with the given message.
func Validation(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

// Conflict builds an ALREADY_EXISTS error with the given message.
func Conflict(format string, args ...any) *DomainError {
	return NewDomainError(CodeAlreadyExists, fmt.Sprintf(format, args...))
}

// Mismatch builds a MISMATCH error with the given message.
func Mismatch(format string, args ...any) *DomainError {
	return NewDomainError(CodeMismatch, fmt.Sprintf(format, args...))
}

// OverpaymentError is returned when a payment would exceed the invoice's pending balance.
type OverpaymentError struct {
	*DomainError
	Pending   decimal.Decimal
	Requested decimal.Decimal
}

// NewOverpaymentError creates an OverpaymentError for the given pending and requested amounts.
func NewOverpaymentError(pending, requested decimal.Decimal) *OverpaymentError {
	return &OverpaymentError{
		DomainError: NewDomainError(CodeOverpayment, fmt.Sprintf(
			"payment amount %s exceeds pending balance %s",
			requested.StringFixed(2), pending.StringFixed(2),
		)),
		Pending:   pending,
		Requested: requested,
	}
}

// Unwrap exposes the embedded DomainError to errors.As.
func (e *OverpaymentError) Unwrap() error {
	return e.DomainError
}

// DebtBlockedTransferError is returned when a student with outstanding debt is moved to another school.
type DebtBlockedTransferError struct {
	*DomainError
	Debt decimal.Decimal
}

// NewDebtBlockedTransferError creates a DebtBlockedTransferError carrying the outstanding debt.
func NewDebtBlockedTransferError(debt decimal.Decimal) *DebtBlockedTransferError {
	return &DebtBlockedTransferError{
		DomainError: NewDomainError(CodeDebtBlockedTransfer, fmt.Sprintf(
			"cannot change school: student has pending debt of $%s", debt.StringFixed(2),
		)),
		Debt: debt,
	}
}

// Unwrap exposes the embedded DomainError to errors.As.
func (e *DebtBlockedTransferError) Unwrap() error {
	return e.DomainError
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
