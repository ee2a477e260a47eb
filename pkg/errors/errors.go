package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeNetwork      ErrorType = "network"
	ErrorTypeRateLimit    ErrorType = "rate_limit"
	ErrorTypeAuth         ErrorType = "auth"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeServerError  ErrorType = "server_error"
	ErrorTypeStructure    ErrorType = "structure"
	ErrorTypeFetch        ErrorType = "fetch"
	ErrorTypeEmptyPayload ErrorType = "empty_payload"
	ErrorTypeDecode       ErrorType = "decode"
	ErrorTypeEncode       ErrorType = "encode"
	ErrorTypeEmptyOutput  ErrorType = "empty_output"
	ErrorTypeVerification ErrorType = "verification"
	ErrorTypeConfig       ErrorType = "config"
	ErrorTypeUnknown      ErrorType = "unknown"
)

// Error represents a classified error with optional HTTP status information
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// TypeOf extracts the ErrorType from err. Errors that did not originate in
// this package report ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// IsFatal checks if an error must end the current collection's run.
// Structural lookups and authentication are never retried; every other
// failure is logged for its item and skipped.
func IsFatal(err error) bool {
	switch TypeOf(err) {
	case ErrorTypeStructure, ErrorTypeAuth:
		return true
	default:
		return false
	}
}

// IsWarning checks if an error is advisory only. A post-write verification
// mismatch does not fail the item that produced it.
func IsWarning(err error) bool {
	return TypeOf(err) == ErrorTypeVerification
}
