// Package errors defines the coded errors shared by the trieviz CLI and
// HTTP API.
//
// Codes are grouped by prefix: INVALID_* for rejected input (HTTP 400),
// *_NOT_FOUND for missing files, tools and prefixes, CONVERSION_FAILED when
// Graphviz or an external converter fails. Callers import the package as
// errs to keep the standard library's errors available:
//
//	if errs.Is(err, errs.ErrCodeInvalidFormat) { ... }
//	return errs.Wrap(errs.ErrCodeConversion, err, "render %s", format)
package errors

import (
	"errors"
	"fmt"
	"slices"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidKeywords Code = "INVALID_KEYWORDS"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidOrder    Code = "INVALID_ORDER"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeToolNotFound Code = "TOOL_NOT_FOUND"

	ErrCodeConversion  Code = "CONVERSION_FAILED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a Code with a message for humans and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain carries one of codes.
func Is(err error, codes ...Code) bool {
	got := GetCode(err)
	return got != "" && slices.Contains(codes, got)
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the first *Error in err's chain,
// without code or cause, or err.Error() for other errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsInvalid reports whether err carries one of the INVALID_* codes.
// The HTTP API maps these to 400 responses.
func IsInvalid(err error) bool {
	return Is(err, ErrCodeInvalidInput, ErrCodeInvalidKeywords, ErrCodeInvalidFormat,
		ErrCodeInvalidOrder, ErrCodeInvalidPath, ErrCodeInvalidConfig)
}
