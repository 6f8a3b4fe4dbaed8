package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spec-kit/list-manager/internal/domain"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewValidationError reports a malformed request. It matches domain.ErrValidation.
func NewValidationError(message string, details map[string]any) error {
	return &DomainError{
		Code:       "VALIDATION_FAILED",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
		Err:        domain.ErrValidation,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

type mapping struct {
	target  error
	code    string
	message string
	status  int
}

// Messages are deliberately generic: callers must not learn which emails exist
// or why a credential was rejected.
var mappings = []mapping{
	{domain.ErrMissingCredential, "MISSING_CREDENTIAL", "authentication required", http.StatusUnauthorized},
	{domain.ErrInvalidCredential, "INVALID_CREDENTIAL", "invalid or expired token", http.StatusUnauthorized},
	{domain.ErrUserInactive, "USER_INACTIVE", "user is inactive, talk with an admin", http.StatusUnauthorized},
	{domain.ErrInvalidCredentials, "INVALID_CREDENTIALS", "email / password do not match", http.StatusUnauthorized},
	{domain.ErrTooManyAttempts, "TOO_MANY_ATTEMPTS", "too many login attempts, try again later", http.StatusTooManyRequests},
	{domain.ErrForbidden, "FORBIDDEN", "insufficient role", http.StatusForbidden},
	{domain.ErrUserNotFound, "USER_NOT_FOUND", "user not found", http.StatusNotFound},
	{domain.ErrDuplicateEmail, "DUPLICATE_EMAIL", "email already registered", http.StatusConflict},
	{domain.ErrNotFound, "NOT_FOUND", "resource not found", http.StatusNotFound},
	{domain.ErrConflict, "CONFLICT", "resource already exists", http.StatusConflict},
	{domain.ErrValidation, "VALIDATION_FAILED", "invalid request", http.StatusBadRequest},
}

// ToDomainError converts any error into a DomainError. Unknown errors become
// a generic internal error that keeps the cause for server-side logging.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return &DomainError{Code: m.code, Message: m.message, HTTPStatus: m.status, Err: err}
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
