// Package rpgerr provides the kernel's three-class error taxonomy
// (invalid command, no-op at execution, invariant violation) with
// context-carried metadata for post-mortem debugging.
package rpgerr

import (
	"errors"
	"fmt"
)

// Code categorizes why the kernel refused or short-circuited an action.
type Code string

const (
	// CodeInvalidCommand marks a command rejected at queue time: it never
	// mutates state and never appears in the event log.
	CodeInvalidCommand Code = "invalid_command"
	// CodeNoOp marks an action whose preconditions changed between planning
	// and resolution (target already down, out of range, ammo exhausted).
	// The resolver still emits a diagnostic event and consumes the command.
	CodeNoOp Code = "no_op"
	// CodeInvariant marks a condition that should never happen (missing
	// component, out-of-bounds coordinate). The resolver treats the action
	// as a no-op and continues; it never panics.
	CodeInvariant Code = "invariant"
)

// Error is a kernel error carrying a Code and optional metadata.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

func (e *Error) Error() string {
	if e == nil {
		return "rpgerr: nil error"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Option configures an Error at construction time.
type Option func(*Error)

// WithMeta attaches a metadata field to the error.
func WithMeta(key string, value any) Option {
	return func(e *Error) {
		if e.Meta == nil {
			e.Meta = make(map[string]any)
		}
		e.Meta[key] = value
	}
}

// New creates an error with the given code and message.
func New(code Code, message string, opts ...Option) *Error {
	err := &Error{Code: code, Message: message}
	for _, opt := range opts {
		opt(err)
	}
	return err
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// InvalidCommand creates a CodeInvalidCommand error.
func InvalidCommand(reason string, opts ...Option) *Error {
	return New(CodeInvalidCommand, reason, opts...)
}

// NoOp creates a CodeNoOp error.
func NoOp(reason string, opts ...Option) *Error {
	return New(CodeNoOp, reason, opts...)
}

// Invariant creates a CodeInvariant error.
func Invariant(reason string, opts ...Option) *Error {
	return New(CodeInvariant, reason, opts...)
}

// GetCode extracts the Code from any error, CodeInvariant if unrecognized.
func GetCode(err error) Code {
	var rerr *Error
	if errors.As(err, &rerr) && rerr != nil {
		return rerr.Code
	}
	return CodeInvariant
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}
