package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Error is a failure with a Code, a message safe to show a player, and an
// optional cause.
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause == nil {
		return msg
	}
	return msg + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithMeta attaches key to the error and returns it
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any, 1)
	}
	e.Meta[key] = value
	return e
}

// New creates an error with code
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap adds message to err. The code and meta of the nearest *Error in the
// chain carry over; a foreign error becomes Internal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	out := &Error{Code: CodeInternal, Message: message, Cause: err}
	if inner := find(err); inner != nil {
		out.Code = inner.Code
		out.Meta = maps.Clone(inner.Meta)
	}
	return out
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode is Wrap that replaces the code
func WrapWithCode(err error, code Code, message string) *Error {
	out := Wrap(err, message)
	if out != nil {
		out.Code = code
	}
	return out
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

func InvalidArgumentf(format string, args ...any) *Error {
	return New(CodeInvalidArgument, fmt.Sprintf(format, args...))
}

// FailedPrecondition is used for actions out of turn or in the wrong phase
func FailedPrecondition(message string) *Error {
	return New(CodeFailedPrecondition, message)
}

func FailedPreconditionf(format string, args ...any) *Error {
	return New(CodeFailedPrecondition, fmt.Sprintf(format, args...))
}

func Internal(message string) *Error {
	return New(CodeInternal, message)
}

func Internalf(format string, args ...any) *Error {
	return New(CodeInternal, fmt.Sprintf(format, args...))
}

// Unavailable is used when a store cannot be reached
func Unavailable(message string) *Error {
	return New(CodeUnavailable, message)
}

func Unavailablef(format string, args ...any) *Error {
	return New(CodeUnavailable, fmt.Sprintf(format, args...))
}

func find(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Is is errors.Is from the standard library
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the code of the nearest *Error in the chain, CodeOK for
// nil and CodeInternal for anything else.
func GetCode(err error) Code {
	switch e := find(err); {
	case err == nil:
		return CodeOK
	case e != nil:
		return e.Code
	default:
		return CodeInternal
	}
}

// GetMeta returns the meta of the nearest *Error in the chain
func GetMeta(err error) map[string]any {
	if e := find(err); e != nil {
		return e.Meta
	}
	return nil
}

// GetMessage returns the player-facing message, or err.Error() for errors
// from outside this package.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := find(err); e != nil {
		return e.Message
	}
	return err.Error()
}

func IsNotFound(err error) bool           { return GetCode(err) == CodeNotFound }
func IsInvalidArgument(err error) bool    { return GetCode(err) == CodeInvalidArgument }
func IsFailedPrecondition(err error) bool { return GetCode(err) == CodeFailedPrecondition }
func IsInternal(err error) bool           { return GetCode(err) == CodeInternal }
func IsUnavailable(err error) bool        { return GetCode(err) == CodeUnavailable }
