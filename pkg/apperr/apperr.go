package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in the response envelope. Stable across releases;
// clients branch on these rather than on messages.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeUnavailable       = "UNAVAILABLE"
	CodeNotEligible       = "NOT_ELIGIBLE"
	CodeInvalidSignature  = "INVALID_SIGNATURE"
	CodeValidation        = "VALIDATION_ERROR"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL"
)

// Error is an application error carrying the HTTP status the transport
// layer should answer with.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

func NotFound(format string, args ...any) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Code: CodeForbidden, Message: msg}
}

func InvalidTransition(from, to string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("invalid status transition from %s to %s", from, to),
	}
}

func CannotCancel() *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidTransition,
		Message: "order cannot be cancelled at this stage",
	}
}

func Unavailable(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeUnavailable, Message: msg}
}

func NotEligible(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeNotEligible, Message: msg}
}

func InvalidSignature(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeInvalidSignature, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Code: CodeValidation, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Code: CodeConflict, Message: msg}
}

func Internal(msg string) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: msg}
}

// From extracts an *Error, wrapping anything unknown as an internal error
// so stack details never reach the client.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal("internal server error")
}

// Is reports whether err is an application error with the given code.
func Is(err error, code string) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}
