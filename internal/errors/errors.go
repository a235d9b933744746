package errors

import (
	"errors"
	"fmt"
)

// Metadata keys shared by the container, persistence and storage layers
const (
	MetaIndex    = "index"
	MetaStackID  = "stack_id"
	MetaCapacity = "capacity"
	MetaName     = "name"
)

// Error is the structured error returned throughout rpg-inventory.
// Meta records the slot, stack, capacity or save the failure concerns.
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Error renders "CODE: message" followed by the cause, if any
func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause == nil {
		return msg
	}
	return msg + ": " + e.Cause.Error()
}

// Unwrap returns the cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code, so
// errors.Is(err, errors.Full("")) asks "is this a Full error".
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithMeta records one metadata entry and returns e
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any, 2)
	}
	e.Meta[key] = value
	return e
}

// WithIndex records the slot index involved
func (e *Error) WithIndex(index int) *Error {
	return e.WithMeta(MetaIndex, index)
}

// WithStackID records the stack involved
func (e *Error) WithStackID(id string) *Error {
	return e.WithMeta(MetaStackID, id)
}

// WithCapacity records the container capacity at the time of the failure
func (e *Error) WithCapacity(capacity int) *Error {
	return e.WithMeta(MetaCapacity, capacity)
}

// WithName records the save name involved
func (e *Error) WithName(name string) *Error {
	return e.WithMeta(MetaName, name)
}

// New returns an error with the given code
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf is New with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds context to err. An *Error anywhere in the chain lends its code
// and a copy of its metadata; any other cause is CodeInternal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{Code: CodeInternal, Message: message, Cause: err}
	var cause *Error
	if errors.As(err, &cause) {
		wrapped.Code = cause.Code
		wrapped.Meta = copyMeta(cause.Meta)
	}
	return wrapped
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode is Wrap with the code replaced, for example to report a
// decode failure as DataLoss whatever the codec said
func WrapWithCode(err error, code Code, message string) *Error {
	wrapped := Wrap(err, message)
	if wrapped != nil {
		wrapped.Code = code
	}
	return wrapped
}

// WrapWithCodef is WrapWithCode with a formatted message
func WrapWithCodef(err error, code Code, format string, args ...any) *Error {
	return WrapWithCode(err, code, fmt.Sprintf(format, args...))
}

func copyMeta(meta map[string]any) map[string]any {
	if len(meta) == 0 {
		return nil
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}

// NotFound reports a missing stack, slot, item or save
func NotFound(message string) *Error { return New(CodeNotFound, message) }

// NotFoundf is NotFound with a formatted message
func NotFoundf(format string, args ...any) *Error { return Newf(CodeNotFound, format, args...) }

// InvalidArgument reports bad input: nil entries, bad quantities or capacities, bad names
func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

// InvalidArgumentf is InvalidArgument with a formatted message
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExists reports a name that is taken
func AlreadyExists(message string) *Error { return New(CodeAlreadyExists, message) }

// AlreadyExistsf is AlreadyExists with a formatted message
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Full reports a container without the free slot an operation needed
func Full(message string) *Error { return New(CodeFull, message) }

// Fullf is Full with a formatted message
func Fullf(format string, args ...any) *Error { return Newf(CodeFull, format, args...) }

// Inconsistent reports a broken container invariant
func Inconsistent(message string) *Error { return New(CodeInconsistent, message) }

// Inconsistentf is Inconsistent with a formatted message
func Inconsistentf(format string, args ...any) *Error {
	return Newf(CodeInconsistent, format, args...)
}

// Internal reports an unexpected failure
func Internal(message string) *Error { return New(CodeInternal, message) }

// Internalf is Internal with a formatted message
func Internalf(format string, args ...any) *Error { return Newf(CodeInternal, format, args...) }

// Unavailable reports a storage backend that cannot be reached
func Unavailable(message string) *Error { return New(CodeUnavailable, message) }

// Unavailablef is Unavailable with a formatted message
func Unavailablef(format string, args ...any) *Error {
	return Newf(CodeUnavailable, format, args...)
}

// DataLoss reports a save that is malformed, truncated or fails verification
func DataLoss(message string) *Error { return New(CodeDataLoss, message) }

// DataLossf is DataLoss with a formatted message
func DataLossf(format string, args ...any) *Error { return Newf(CodeDataLoss, format, args...) }

// Canceled reports an operation stopped by its context
func Canceled(message string) *Error { return New(CodeCanceled, message) }
