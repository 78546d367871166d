package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewPreconditionFailed creates a precondition failure with a structured reason.
// The reason is surfaced verbatim to the caller so it must not leak internals.
func NewPreconditionFailed(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    "PRECONDITION_FAILED",
		Message: fmt.Sprintf(format, args...),
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("PRECONDITION_FAILED", "Insufficient available stock")
	ErrMissingIdempotency  = NewDomainError("INVALID_INPUT", "Missing or blank idempotency key")
	ErrIdempotencyConflict = NewDomainError("IDEMPOTENCY_CONFLICT", "Idempotency key already recorded by a concurrent request")
	ErrIntegrity           = NewDomainError("INTEGRITY", "Store rejected a write that violates an invariant")
	ErrConfiguration       = NewDomainError("CONFIGURATION", "Required ambient configuration row is missing")
)
