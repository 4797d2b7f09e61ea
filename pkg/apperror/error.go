package apperror

import (
	"errors"
	"net/http"
)

// Kind is the machine-readable error category sent to clients.
type Kind string

const (
	KindValidation          Kind = "VALIDATION_ERROR"
	KindUnauthorized        Kind = "UNAUTHORIZED"
	KindInvalidCredentials  Kind = "INVALID_CREDENTIALS"
	KindForbidden           Kind = "FORBIDDEN"
	KindNotVerified         Kind = "NOT_VERIFIED"
	KindNotFound            Kind = "NOT_FOUND"
	KindConflict            Kind = "CONFLICT"
	KindInvalidOrExpiredOTP Kind = "INVALID_OR_EXPIRED_OTP"
	KindTooManyRequests     Kind = "TOO_MANY_REQUESTS"
	KindEmailDispatchFailed Kind = "EMAIL_DISPATCH_FAILED"
	KindExternalService     Kind = "EXTERNAL_SERVICE_ERROR"
	KindInternal            Kind = "INTERNAL"
)

type AppError struct {
	Code    int         `json:"code"`
	Kind    Kind        `json:"kind"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// KindOf returns the kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

// Validation carries the per-field messages produced by pkg/validation.
func Validation(messages []string) *AppError {
	e := New(http.StatusBadRequest, KindValidation, "Validation failed", nil)
	e.Details = messages
	return e
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthorized, message, nil)
}

func InvalidCredentials() *AppError {
	return New(http.StatusUnauthorized, KindInvalidCredentials, "Invalid email or password", nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindForbidden, message, nil)
}

func NotVerified() *AppError {
	return New(http.StatusForbidden, KindNotVerified, "Account is not verified. Check your email for the verification code", nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, KindConflict, message, nil)
}

func InvalidOrExpiredOTP() *AppError {
	return New(http.StatusBadRequest, KindInvalidOrExpiredOTP, "Invalid or expired verification code", nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, KindTooManyRequests, message, nil)
}

func EmailDispatchFailed(err error) *AppError {
	return New(http.StatusBadGateway, KindEmailDispatchFailed, "Could not send verification email. Please try again", err)
}

func ExternalService(message string, err error) *AppError {
	return New(http.StatusBadGateway, KindExternalService, message, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}
