// Package errors defines the coded error type every layer of the service
// raises. A Code classifies the failure; api/responses maps it to an HTTP
// status through MetadataFor.
package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// Code classifies a failure for clients and for the response writer.
type Code string

const (
	CodeValidation Code = "VALIDATION_ERROR"
	CodeNotFound   Code = "NOT_FOUND"
	CodeConflict   Code = "CONFLICT"
	CodeConfig     Code = "CONFIG_ERROR"
	CodeDependency Code = "DEPENDENCY_ERROR"
	CodeInternal   Code = "INTERNAL_ERROR"
)

// Metadata describes how a code surfaces at the HTTP edge.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

// MetadataFor resolves the edge behavior of a code. Unknown codes are
// treated as internal.
func MetadataFor(code Code) Metadata {
	switch code {
	case CodeValidation:
		return Metadata{HTTPStatus: http.StatusBadRequest, PublicMessage: "validation failed", DetailsAllowed: true}
	case CodeNotFound:
		return Metadata{HTTPStatus: http.StatusNotFound, PublicMessage: "resource not found"}
	case CodeConflict:
		return Metadata{HTTPStatus: http.StatusConflict, PublicMessage: "conflict detected", DetailsAllowed: true}
	case CodeConfig:
		return Metadata{HTTPStatus: http.StatusInternalServerError, PublicMessage: "server configuration incomplete"}
	case CodeDependency:
		return Metadata{HTTPStatus: http.StatusInternalServerError, Retryable: true, PublicMessage: "downstream provider failed", DetailsAllowed: true}
	default:
		return Metadata{HTTPStatus: http.StatusInternalServerError, Retryable: true, PublicMessage: "internal server error"}
	}
}

// Error is a coded error with an optional structured details payload and
// an optional wrapped cause.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

// New builds a coded error with no cause.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap builds a coded error around a cause. A nil cause degrades to New.
func Wrap(code Code, cause error, message string) *Error {
	if cause == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: cause}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

// WithDetails attaches a structured payload, typically a field→message map.
func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As extracts the first coded error in err's chain, or nil.
func As(err error) *Error {
	var coded *Error
	if err != nil && stdErrors.As(err, &coded) {
		return coded
	}
	return nil
}
