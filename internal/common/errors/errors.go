// Package errors provides standardized error handling for the quoting and
// checkout flows.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Quoting flow
	ErrCodeValidationFailed         ErrorCode = "VALIDATION_FAILED"
	ErrCodeRemotePricingUnavailable ErrorCode = "REMOTE_PRICING_UNAVAILABLE"
	ErrCodeUnreadableTable          ErrorCode = "UNREADABLE_TABLE"
	ErrCodeQuoteComputationFailed   ErrorCode = "QUOTE_COMPUTATION_FAILED"

	// Checkout flow
	ErrCodeAuthorizationDeclined ErrorCode = "AUTHORIZATION_DECLINED"
	ErrCodeIssuanceDegraded      ErrorCode = "ISSUANCE_DEGRADED"
	ErrCodeCartEmpty             ErrorCode = "CART_EMPTY"

	// Admin surface
	ErrCodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrCodeIntentNotFound ErrorCode = "INTENT_NOT_FOUND"
	ErrCodeLeadNotFound   ErrorCode = "LEAD_NOT_FOUND"
	ErrCodePolicyNotFound ErrorCode = "POLICY_NOT_FOUND"

	// Infrastructure
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeStorageUnavailable       ErrorCode = "STORAGE_UNAVAILABLE"
	ErrCodeInternal                 ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is lets errors.Is match on code equality between StandardErrors.
func (e *StandardError) Is(target error) bool {
	var std *StandardError
	if errors.As(target, &std) {
		return e.Code == std.Code
	}
	return false
}

// CodeOf extracts the ErrorCode from any error, defaulting to INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	var std *StandardError
	if errors.As(err, &std) {
		return std.Code
	}
	return ErrCodeInternal
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable input validation error.
// Validation failures block submission and are surfaced inline.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRemotePricingUnavailableError marks a failed remote pricing attempt.
// Callers treat it as a signal to run the local fallback, never as terminal.
func NewRemotePricingUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRemotePricingUnavailable,
		Message:   "Remote pricing service unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnreadableTableError creates an error for rate sheets that cannot be
// parsed as tabular data. During quoting it downgrades to the built-in
// defaults; on upload it is surfaced to the caller.
func NewUnreadableTableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnreadableTable,
		Message:   "Rate table could not be parsed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQuoteComputationFailedError is terminal for the quoting flow: both the
// remote call and the local fallback failed.
func NewQuoteComputationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQuoteComputationFailed,
		Message:   "Unable to compute quote",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthorizationDeclinedError carries the authorizer's message verbatim.
func NewAuthorizationDeclinedError(reason string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthorizationDeclined,
		Message:   reason,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewIssuanceDegradedError records that policy issuance fell back to a
// client-generated identifier. It is informational: checkout still succeeds.
func NewIssuanceDegradedError(policyID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIssuanceDegraded,
		Message:   "Policy issuance degraded to local identifier",
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"policyId": policyID},
		Timestamp: time.Now().UTC(),
	}
}

// NewCartEmptyError signals checkout was attempted without a stored quote.
func NewCartEmptyError() *StandardError {
	return &StandardError{
		Code:      ErrCodeCartEmpty,
		Message:   "No quote in cart",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnauthorizedError creates an admin-session error.
func NewUnauthorizedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   "Unauthorized",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates a not-found error with the given code.
func NewNotFoundError(code ErrorCode, id string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   "Record not found",
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageUnavailableError creates a retryable key-value store error.
func NewStorageUnavailableError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageUnavailable,
		Message:   "Key-value store error",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
