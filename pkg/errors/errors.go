package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeHTTPStatus ErrorType = "http_status"
	ErrorTypeRateLimit  ErrorType = "rate_limit"
	ErrorTypeParsing    ErrorType = "parsing"
	ErrorTypeNoContent  ErrorType = "no_content"
	ErrorTypeInput      ErrorType = "input"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// Error carries a type, an optional HTTP status code and the underlying cause
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error", e.Type)
	if e.Code != 0 {
		msg = fmt.Sprintf("%s (code %d)", msg, e.Code)
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a typed error
func New(t ErrorType, code int, format string, args ...interface{}) *Error {
	return &Error{Type: t, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a typed error around cause
func Wrap(t ErrorType, cause error, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...), Err: cause}
}

// TypeOf returns the type of the first *Error in err's chain
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// IsType reports whether err's chain holds an *Error of type t
func IsType(err error, t ErrorType) bool {
	return err != nil && TypeOf(err) == t
}

// IsRetryable checks if an error type should be retried.
// A profile page answering with any non-200 status is retried as well as
// transport failures; parse and input problems never change between attempts.
func IsRetryable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeNetwork, ErrorTypeHTTPStatus, ErrorTypeRateLimit:
		return true
	default:
		return false
	}
}
