package model

import "errors"

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeItemsRequired    = "ITEMS_REQUIRED"
	ErrCodeInvalidPrice     = "INVALID_PRICE"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodeCustomerRequired = "CUSTOMER_REQUIRED"
	ErrCodeInvalidEmail     = "INVALID_EMAIL"
	ErrCodeInvalidStatus    = "INVALID_STATUS"
	ErrCodeInvalidLimit     = "INVALID_LIMIT"
	ErrCodeInvalidOffset    = "INVALID_OFFSET"
	ErrCodeReferenceTaken   = "REFERENCE_TAKEN"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a stable code.
type DomainError struct {
	Code     string
	Message  string
	conflict bool
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewValidationError creates a domain error for malformed or incomplete input.
func NewValidationError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// NewConflictError creates a domain error for a uniqueness violation.
func NewConflictError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, conflict: true}
}

// Common domain errors
var (
	ErrItemsRequired    = NewValidationError(ErrCodeItemsRequired, "items required")
	ErrInvalidPrice     = NewValidationError(ErrCodeInvalidPrice, "item price must not be negative")
	ErrInvalidQuantity  = NewValidationError(ErrCodeInvalidQuantity, "item quantity must be greater than zero")
	ErrCustomerRequired = NewValidationError(ErrCodeCustomerRequired, "customer required")
	ErrInvalidEmail     = NewValidationError(ErrCodeInvalidEmail, "invalid email")
	ErrInvalidStatus    = NewValidationError(ErrCodeInvalidStatus, "status must be pending, approved, rejected or expired")
	ErrInvalidLimit     = NewValidationError(ErrCodeInvalidLimit, "limit must be between 1 and 100")
	ErrInvalidOffset    = NewValidationError(ErrCodeInvalidOffset, "offset must not be negative")
	ErrReferenceTaken   = NewConflictError(ErrCodeReferenceTaken, "reference number already taken")
	ErrProductNotFound  = NewValidationError(ErrCodeProductNotFound, "product not found")
)

// IsValidation reports whether err is a recoverable input validation failure.
func IsValidation(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && !de.conflict
}

// IsConflict reports whether err is a uniqueness violation.
func IsConflict(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.conflict
}

// ErrorResponse is the failure envelope returned by all endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
