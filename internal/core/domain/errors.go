package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Entity errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrLoanNotFound        = errors.New("loan not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// ValidationError reports malformed or out-of-range user input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// OwnershipMismatchError is returned when a payment's declared customer
// does not own the target loan.
type OwnershipMismatchError struct {
	LoanCustomerID     uint
	ProvidedCustomerID uint
}

func (e *OwnershipMismatchError) Error() string {
	return fmt.Sprintf("loan belongs to customer %d, provided customer %d",
		e.LoanCustomerID, e.ProvidedCustomerID)
}

// PaymentMismatchError is returned when the interest payment does not equal
// the interest currently due. Carries both values so the caller can re-fetch
// and resubmit.
type PaymentMismatchError struct {
	Required decimal.Decimal
	Provided decimal.Decimal
}

func (e *PaymentMismatchError) Error() string {
	return fmt.Sprintf("invalid interest payment: required %s, provided %s",
		e.Required.StringFixed(2), e.Provided.StringFixed(2))
}

// InvalidStateError signals corrupted stored loan state detected during
// derivation (for example a negative outstanding principal). This is a data
// integrity failure, not a user error.
type InvalidStateError struct {
	LoanID  uint
	Message string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("loan %d is in an invalid state: %s", e.LoanID, e.Message)
}
