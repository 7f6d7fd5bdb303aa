// Package errorx provides errors carrying a business code, used to tell the
// HTTP boundary which kind of failure happened without leaking internals.
package errorx

import (
	"errors"
	"fmt"
)

// CodeError is an error with a business code. It wraps an optional cause and
// works with errors.Is / errors.As.
type CodeError struct {
	Code  int
	Msg   string
	cause error
}

func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap returns the wrapped cause.
func (e *CodeError) Unwrap() error {
	return e.cause
}

// Is matches any CodeError carrying the same code, so sentinel values such
// as ErrQueryFailed can be used with errors.Is.
func (e *CodeError) Is(target error) bool {
	var t *CodeError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && t.cause == nil
}

// New creates a CodeError without a cause.
func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg}
}

// Newf creates a CodeError with a formatted message.
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to err.
// Usage: errorx.Wrap(err, errorx.CodeQueryFailed, "load direct friends")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg, cause: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{Code: code, Msg: fmt.Sprintf(format, args...), cause: err}
}

// GetCode extracts the business code from err, CodeServerBusy when err is not a CodeError.
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

const (
	CodeSuccess          = 1000
	CodeInvalidParam     = 1001
	CodeNotFound         = 1002
	CodeUnauthorized     = 1003
	CodeQueryFailed      = 1004
	CodeUnsupportedEvent = 1005
	CodeServerBusy       = 1006
)

var (
	ErrInvalidParam     = New(CodeInvalidParam, "invalid parameter")
	ErrNotFound         = New(CodeNotFound, "not found")
	ErrUnauthorized     = New(CodeUnauthorized, "unauthorized")
	ErrQueryFailed      = New(CodeQueryFailed, "query failed")
	ErrUnsupportedEvent = New(CodeUnsupportedEvent, "unsupported event kind")
	ErrServerBusy       = New(CodeServerBusy, "operation failed")
)

// QueryFailure wraps a storage or collaborator failure.
func QueryFailure(err error, op string) *CodeError {
	return Wrap(err, CodeQueryFailed, op)
}
