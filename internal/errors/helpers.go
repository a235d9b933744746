package errors

import (
	"context"
	"errors"
)

// As is errors.As narrowed to *Error
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is is the standard library errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the code of the first *Error in the chain. Context
// cancellation maps to CodeCanceled and deadlines to CodeUnavailable;
// anything else is CodeInternal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var e *Error
	switch {
	case errors.As(err, &e):
		return e.Code
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return CodeUnavailable
	default:
		return CodeInternal
	}
}

// GetMeta returns the metadata of the first *Error in the chain
func GetMeta(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		return e.Meta
	}
	return nil
}

// GetMessage returns the message of the first *Error in the chain, or the
// plain error text
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsNotFound reports whether err is CodeNotFound
func IsNotFound(err error) bool { return GetCode(err) == CodeNotFound }

// IsInvalidArgument reports whether err is CodeInvalidArgument
func IsInvalidArgument(err error) bool { return GetCode(err) == CodeInvalidArgument }

// IsAlreadyExists reports whether err is CodeAlreadyExists
func IsAlreadyExists(err error) bool { return GetCode(err) == CodeAlreadyExists }

// IsFull reports whether err is CodeFull
func IsFull(err error) bool { return GetCode(err) == CodeFull }

// IsInconsistent reports whether err is CodeInconsistent
func IsInconsistent(err error) bool { return GetCode(err) == CodeInconsistent }

// IsInternal reports whether err is CodeInternal
func IsInternal(err error) bool { return GetCode(err) == CodeInternal }

// IsUnavailable reports whether err is CodeUnavailable
func IsUnavailable(err error) bool { return GetCode(err) == CodeUnavailable }

// IsDataLoss reports whether err is CodeDataLoss
func IsDataLoss(err error) bool { return GetCode(err) == CodeDataLoss }

// IsCanceled reports whether err is CodeCanceled
func IsCanceled(err error) bool { return GetCode(err) == CodeCanceled }
