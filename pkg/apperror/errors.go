package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrBadRequest        = errors.New("bad request")
	ErrInternal          = errors.New("internal server error")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// Kind is the closed vocabulary of business-rule failures. Handlers render it
// verbatim in the error body so clients can branch without parsing messages.
type Kind string

const (
	KindAuthRequired  Kind = "auth_required"
	KindAuthForbidden Kind = "auth_forbidden"

	KindBlankField           Kind = "blank_field"
	KindTooShort             Kind = "too_short"
	KindInvalidDuration      Kind = "invalid_duration"
	KindPastStartTime        Kind = "past_start_time"
	KindTeacherRoleMismatch  Kind = "teacher_role_mismatch"
	KindStudentRoleMismatch  Kind = "student_role_mismatch"
	KindDuplicateName        Kind = "duplicate_name"
	KindDuplicateEmail       Kind = "duplicate_email"
	KindDuplicateEnrollment  Kind = "duplicate_enrollment"
	KindInvalidEmailFormat   Kind = "invalid_email_format"
	KindFutureBirthdate      Kind = "future_birthdate"
	KindInvalidRoleReference Kind = "invalid_role_reference"

	KindReferenceNotFound Kind = "reference_not_found"
	KindInvalidPayload    Kind = "invalid_payload"
	KindRateLimited       Kind = "rate_limited"
	KindInternal          Kind = "internal"
)

// AppError is a typed failure carrying an HTTP status code, a machine-readable
// kind and the field that violated a rule (validation failures only).
type AppError struct {
	Code    int
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with an explicit status code.
func New(code int, kind Kind, message string) *AppError {
	return &AppError{Code: code, Kind: kind, Message: message}
}

// Validation creates a bad-request failure for a violated domain rule.
func Validation(kind Kind, field, message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: kind, Field: field, Message: message}
}

// AuthRequired is the verdict for anonymous callers on guarded actions.
func AuthRequired() *AppError {
	return &AppError{Code: http.StatusUnauthorized, Kind: KindAuthRequired, Message: "authorization required"}
}

// Forbidden is the verdict for authenticated callers with an insufficient role.
func Forbidden(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Kind: KindAuthForbidden, Message: message}
}

// NotFound is a show-by-id or show-by-alternate-key miss (renders as 404).
func NotFound(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Kind: KindReferenceNotFound, Message: message}
}

// ReferenceNotFound is a lookup miss inside a mutation. It renders as 400,
// matching the generic bad-request treatment of unresolved references.
func ReferenceNotFound(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindReferenceNotFound, Message: message}
}

// BadRequest is a generic 400 without a validation kind of its own.
func BadRequest(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindInvalidPayload, Message: message}
}

// MapErrorToStatus maps an error to an HTTP status code. AppErrors carry their
// own code; sentinels fall back to their conventional mapping.
func MapErrorToStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrRateLimitExceeded) {
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// KindOf extracts the failure kind, defaulting to internal for untyped errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != "" {
		return appErr.Kind
	}
	if errors.Is(err, ErrNotFound) {
		return KindReferenceNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return KindAuthRequired
	}
	if errors.Is(err, ErrForbidden) {
		return KindAuthForbidden
	}
	if errors.Is(err, ErrRateLimitExceeded) {
		return KindRateLimited
	}
	return KindInternal
}
