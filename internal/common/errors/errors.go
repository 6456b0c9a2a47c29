// Package errors provides standardized error handling for the HTTP API.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidGoal        ErrorCode = "INVALID_GOAL"
	ErrCodeInvalidAmount      ErrorCode = "INVALID_AMOUNT"
	ErrCodeProfileNotFound    ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeUserExists         ErrorCode = "USER_EXISTS"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeResourceNotFound   ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeRateLimited        ErrorCode = "RATE_LIMITED"
	ErrCodeDatabaseFailed     ErrorCode = "DATABASE_ERROR"
	ErrCodeCatalogNotLoaded   ErrorCode = "CATALOG_NOT_LOADED"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// APIError represents a structured application error with an HTTP mapping.
type APIError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Status    int       `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError creates a 400 validation error. The message must
// name the invalid field; callers assert on it.
func NewValidationFailedError(message string) *APIError {
	return &APIError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidGoalError creates a 400 error enumerating the accepted goals.
func NewInvalidGoalError(allowed []string) *APIError {
	msg := "Invalid or missing goal. Use: "
	for i, g := range allowed {
		if i > 0 {
			if i == len(allowed)-1 {
				msg += ", or "
			} else {
				msg += ", "
			}
		}
		msg += g
	}
	return &APIError{
		Code:      ErrCodeInvalidGoal,
		Message:   msg,
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidAmountError creates a 400 error for a non-positive requested amount.
func NewInvalidAmountError() *APIError {
	return &APIError{
		Code:      ErrCodeInvalidAmount,
		Message:   "requestedAmount must be a positive number",
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileNotFoundError creates a 400 error instructing profile setup first.
func NewProfileNotFoundError() *APIError {
	return &APIError{
		Code:      ErrCodeProfileNotFound,
		Message:   "Please complete your financial profile first",
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserExistsError creates a 400 duplicate-registration error.
func NewUserExistsError() *APIError {
	return &APIError{
		Code:      ErrCodeUserExists,
		Message:   "User already exists with this email",
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidCredentialsError creates a 401 login failure error. The message
// does not reveal which of email/password was wrong.
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:      ErrCodeInvalidCredentials,
		Message:   "Invalid email or password",
		Status:    http.StatusUnauthorized,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnauthorizedError creates a 401 token error.
func NewUnauthorizedError(details string) *APIError {
	return &APIError{
		Code:      ErrCodeUnauthorized,
		Message:   "Not authorized",
		Details:   details,
		Status:    http.StatusUnauthorized,
		Timestamp: time.Now().UTC(),
	}
}

// NewResourceNotFoundError creates a 404 error.
func NewResourceNotFoundError(resource string) *APIError {
	return &APIError{
		Code:      ErrCodeResourceNotFound,
		Message:   fmt.Sprintf("%s not found", resource),
		Status:    http.StatusNotFound,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError creates a 429 error.
func NewRateLimitedError() *APIError {
	return &APIError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many requests, please try again later",
		Status:    http.StatusTooManyRequests,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseError creates a 500 database error.
func NewDatabaseError(err error) *APIError {
	return &APIError{
		Code:      ErrCodeDatabaseFailed,
		Message:   "Database operation failed",
		Details:   err.Error(),
		Status:    http.StatusInternalServerError,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogNotLoadedError signals a startup-ordering programming error: the
// offer catalog must be loaded before traffic is accepted.
func NewCatalogNotLoadedError() *APIError {
	return &APIError{
		Code:      ErrCodeCatalogNotLoaded,
		Message:   "Loan offer catalog not loaded",
		Details:   "catalog must be loaded at startup, before the server accepts requests",
		Status:    http.StatusInternalServerError,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *APIError {
	return &APIError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Status:    http.StatusInternalServerError,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsClientError reports whether the code maps to a 4xx status.
func IsClientError(err *APIError) bool {
	return err.Status >= 400 && err.Status < 500
}
