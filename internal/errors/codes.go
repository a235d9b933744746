package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK              Code = "OK"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeAlreadyExists   Code = "ALREADY_EXISTS"
	CodeCanceled        Code = "CANCELED"
	CodeInternal        Code = "INTERNAL"
	CodeUnavailable     Code = "UNAVAILABLE"
	CodeDataLoss        Code = "DATA_LOSS"

	// CodeFull means a container had no free slot when one was required.
	CodeFull Code = "FULL"

	// CodeInconsistent signals a broken container invariant. It is a
	// programming error, never a condition callers are expected to recover from.
	CodeInconsistent Code = "INCONSISTENT"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}
