// Package errors defines the application-level error taxonomy. Every failure
// surfaced to a caller maps to a stable business code and transport status;
// raw diagnostic text never crosses the API boundary.
package errors

import (
	"net/http"

	"stayhub/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Token verification failures. These are terminal for the current request
// and are never retried.
var (
	ErrTokenMalformed = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_MALFORMED",
		"The credential could not be parsed",
		"",
	)

	ErrTokenSignatureInvalid = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_SIGNATURE_INVALID",
		"The credential signature is invalid",
		"",
	)

	ErrTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
		"The credential has expired",
		"",
	)

	ErrWrongTokenType = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_TYPE_MISMATCH",
		"The credential type is not valid for this operation",
		"",
	)
)

// Identity and account-linking failures.
var (
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Email or password is incorrect",
		"",
	)

	ErrIdentityDisabled = NewBaseError(
		http.StatusUnauthorized,
		"IDENTITY_DISABLED",
		"This account has been deactivated",
		"",
	)

	ErrIdentityNotFound = NewBaseError(
		http.StatusNotFound,
		"IDENTITY_NOT_FOUND",
		"No account exists for this identifier",
		"",
	)

	ErrIdentityAlreadyExists = NewBaseError(
		http.StatusConflict,
		"IDENTITY_ALREADY_EXISTS",
		"An account already exists for this email or username",
		"",
	)

	// ErrAccountConflict is permanent and user-facing: a different federated
	// credential is already bound to this email. It must never be collapsed
	// into a transient or generic failure.
	ErrAccountConflict = NewBaseError(
		http.StatusConflict,
		"ACCOUNT_CONFLICT",
		"This email is already linked to a different federated account",
		"",
	)

	ErrMissingAssertionFields = NewBaseError(
		http.StatusBadRequest,
		"MISSING_USER_INFO",
		"The federated provider did not supply the required account fields",
		"",
	)
)

// Deployment and infrastructure failures.
var (
	// ErrRoleCatalogMisconfigured indicates the role catalog is missing a
	// required entry. This is a deployment error, logged at error severity.
	ErrRoleCatalogMisconfigured = NewBaseError(
		http.StatusInternalServerError,
		"ROLE_CATALOG_MISCONFIGURED",
		"The role catalog is misconfigured",
		"",
	)

	// ErrIdentityStoreUnavailable is the only failure class eligible for
	// caller-side retry.
	ErrIdentityStoreUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"IDENTITY_STORE_UNAVAILABLE",
		"The identity store is temporarily unavailable",
		"",
	)
)

// Generic failures.
var (
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"The request input failed validation",
		"",
	)

	// ErrAccessDenied is the fallback for unrecognized authentication
	// failures; it deliberately carries no diagnostic detail.
	ErrAccessDenied = NewBaseError(
		http.StatusUnauthorized,
		"ACCESS_DENIED",
		"Access denied",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"You do not have permission to access this resource",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// StoreExecuteError represents an identity-store execution failure,
// implementing the AppError interface. It maps to the transient
// IDENTITY_STORE_UNAVAILABLE class so callers know a retry may help.
type StoreExecuteError struct {
	err     error
	details string
}

// NewStoreExecuteError creates a store-related error
func NewStoreExecuteError(err error, details string) AppError {
	return &StoreExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StoreExecuteError) Error() string {
	return errors.Wrap(e.err, "identity store execution failed").Error()
}

// Unwrap exposes the underlying store error for errors.Is/As checks.
func (e *StoreExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *StoreExecuteError) HTTPCode() int {
	return http.StatusServiceUnavailable
}

// ErrorCode returns the business error code
func (e *StoreExecuteError) ErrorCode() string {
	return "IDENTITY_STORE_UNAVAILABLE"
}

// Message returns the user-friendly error message
func (e *StoreExecuteError) Message() string {
	return "The identity store is temporarily unavailable"
}

// Details returns detailed error information
func (e *StoreExecuteError) Details() string {
	return e.details
}
