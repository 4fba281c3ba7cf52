// Package errors defines the coded errors shared by the CLI and the HTTP API.
//
// Codes are grouped by prefix: INVALID_* for rejected input, *NOT_FOUND for
// misses at a user-facing boundary, STRUCTURAL for a tree that cannot be laid
// out, NETWORK_ERROR and TIMEOUT for remote caches, and INTERNAL_ERROR for
// everything else. Each code maps to one HTTP status.
//
// A path lookup that misses inside the core is an ordinary (nil, false)
// result. Only the CLI and the API turn it into ErrCodeNodeNotFound.
//
//	err := errors.New(errors.ErrCodeInvalidTree, "document %d is not an object", i)
//	if errors.Is(err, errors.ErrCodeInvalidTree) { ... }
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error class.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidTree   Code = "INVALID_TREE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidOption Code = "INVALID_OPTION"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeNodeNotFound Code = "NODE_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeStructural Code = "STRUCTURAL"

	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

var statusByCode = map[Code]int{
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeInvalidTree:   http.StatusBadRequest,
	ErrCodeInvalidFormat: http.StatusBadRequest,
	ErrCodeInvalidOption: http.StatusBadRequest,
	ErrCodeInvalidPath:   http.StatusBadRequest,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeNodeNotFound:  http.StatusNotFound,
	ErrCodeFileNotFound:  http.StatusNotFound,
	ErrCodeStructural:    http.StatusUnprocessableEntity,
	ErrCodeUnsupported:   http.StatusNotImplemented,
	ErrCodeNetwork:       http.StatusServiceUnavailable,
	ErrCodeTimeout:       http.StatusServiceUnavailable,
}

// Error carries a Code, a message meant for users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap is New with a cause, reachable through errors.Unwrap.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Join drops nil errors and returns nil when nothing remains. Is and GetCode
// see the first coded error in the list.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// find returns the outermost *Error in err's chain.
func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := find(err)
	return ok && e.Code == code
}

// GetCode returns "" when err carries no code.
func GetCode(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix and cause from coded errors.
func UserMessage(err error) string {
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus is the status the API answers with for err. Uncoded errors are
// 500.
func HTTPStatus(err error) int {
	if s, ok := statusByCode[GetCode(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}
