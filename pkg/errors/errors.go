package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors - Sentinel errors for use with errors.Is()
var (
	ErrInvalidRequestShape      = errors.New("invalid request shape")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrMissingOrMalformedHeader = errors.New("authorization header missing or malformed")
	ErrInvalidOrExpiredToken    = errors.New("invalid or expired token")
	ErrUnauthenticated          = errors.New("unauthenticated")
	ErrForbidden                = errors.New("forbidden")
	ErrNotFound                 = errors.New("resource not found")
	ErrInternalServer           = errors.New("internal server error")
)

const (
	msgInvalidCredentials       = "Invalid credentials."
	msgMissingOrMalformedHeader = "Authorization header missing or malformed."
	msgInvalidOrExpiredToken    = "Invalid or expired token."
	msgUnauthenticated          = "Authentication required."
	msgInternalServer           = "Internal server error"

	codeInternalServer = "INTERNAL_SERVER_ERROR"
)

// Custom error type with context
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Constructors
func InvalidRequestShape(msg string) *AppError {
	return &AppError{Code: "INVALID_REQUEST_SHAPE", Message: msg, Err: ErrInvalidRequestShape}
}

func InvalidCredentials() *AppError {
	return &AppError{Code: "INVALID_CREDENTIALS", Message: msgInvalidCredentials, Err: ErrInvalidCredentials}
}

func MissingOrMalformedHeader() *AppError {
	return &AppError{Code: "MISSING_OR_MALFORMED_HEADER", Message: msgMissingOrMalformedHeader, Err: ErrMissingOrMalformedHeader}
}

// InvalidOrExpiredToken hides the cause from the caller; cause is kept for logs.
func InvalidOrExpiredToken(cause error) *AppError {
	return &AppError{Code: "INVALID_OR_EXPIRED_TOKEN", Message: msgInvalidOrExpiredToken, Err: join(ErrInvalidOrExpiredToken, cause)}
}

func Unauthenticated() *AppError {
	return &AppError{Code: "UNAUTHENTICATED", Message: msgUnauthenticated, Err: ErrUnauthenticated}
}

func Forbidden(msg string) *AppError {
	return &AppError{Code: "FORBIDDEN", Message: msg, Err: ErrForbidden}
}

func NotFound(msg string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: msg, Err: ErrNotFound}
}

func InternalServer(msg string, err error) *AppError {
	return &AppError{Code: codeInternalServer, Message: msg, Err: join(ErrInternalServer, err)}
}

// StatusCode maps an error to the HTTP status of its taxonomy kind.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequestShape):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrMissingOrMalformedHeader),
		errors.Is(err, ErrInvalidOrExpiredToken),
		errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show a caller. Server errors never
// expose their detail.
func PublicMessage(err error) string {
	if StatusCode(err) >= http.StatusInternalServerError {
		return msgInternalServer
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return http.StatusText(StatusCode(err))
}

// Code returns the machine-readable code of an AppError, or the internal
// server error code for anything else.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return codeInternalServer
}

func join(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return errors.Join(kind, cause)
}
