package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes for the error kinds this subsystem produces. Every service error is
// one of these; handlers map Status straight onto the HTTP response.
const (
	CodeNotFound     = "not_found"
	CodePrecondition = "precondition_failed"
	CodeValidation   = "validation_failed"
	CodeMapping      = "mapping_failed"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// NotFound reports a referenced entity that does not exist in storage.
func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

// Precondition reports a violated persistence precondition, e.g. updating an
// entity that was never saved, or re-saving one that already exists.
func Precondition(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodePrecondition, fmt.Errorf(format, args...))
}

// Validation reports invalid input: blank required fields, duplicate unique
// values, unknown enum names where no fallback is defined.
func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeValidation, fmt.Errorf(format, args...))
}

// Mapping wraps a DTO reconstruction failure, keeping the original cause.
func Mapping(cause error) *Error {
	return New(http.StatusBadRequest, CodeMapping, fmt.Errorf("mapping error: %w", cause))
}

func hasCode(err error, code string) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

func IsNotFound(err error) bool     { return hasCode(err, CodeNotFound) }
func IsPrecondition(err error) bool { return hasCode(err, CodePrecondition) }
func IsValidation(err error) bool   { return hasCode(err, CodeValidation) }
func IsMapping(err error) bool      { return hasCode(err, CodeMapping) }
