package errors

import (
	"fmt"
	"strings"
)

// MetaValidationErrors is the metadata key under which ToError stores the
// per-field messages (map[string][]string)
const MetaValidationErrors = "validation_errors"

// ValidationError collects messages per field. Fields are reported in the
// order they first failed.
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
	order  []string
}

// NewValidationError returns an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Error lists every failing field, e.g.
// "validation failed: capacity: must be positive; name: is required"
func (v *ValidationError) Error() string {
	if !v.HasErrors() {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, field := range v.order {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(strings.Join(v.Fields[field], ", "))
	}
	return b.String()
}

// AddFieldError records message against field
func (v *ValidationError) AddFieldError(field, message string) {
	if _, seen := v.Fields[field]; !seen {
		v.order = append(v.order, field)
	}
	v.Fields[field] = append(v.Fields[field], message)
}

// AddFieldErrorf is AddFieldError with a formatted message
func (v *ValidationError) AddFieldErrorf(field, format string, args ...any) {
	v.AddFieldError(field, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any field failed
func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

// ToError returns an InvalidArgument error describing every field, or nil
func (v *ValidationError) ToError() *Error {
	if !v.HasErrors() {
		return nil
	}
	return InvalidArgument(v.Error()).WithMeta(MetaValidationErrors, v.Fields)
}

// ValidationBuilder accumulates field failures for a Config.Validate or an
// input check and turns them into one InvalidArgument error:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidatePositive("capacity", cfg.Capacity, vb)
//	return vb.Build()
type ValidationBuilder struct {
	err *ValidationError
}

// NewValidationBuilder returns an empty builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{err: NewValidationError()}
}

// Field records message against field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.err.AddFieldError(field, message)
	return vb
}

// Fieldf is Field with a formatted message
func (vb *ValidationBuilder) Fieldf(field, format string, args ...any) *ValidationBuilder {
	vb.err.AddFieldErrorf(field, format, args...)
	return vb
}

// RequiredField records a missing field
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// InvalidField records a field whose value is not acceptable
func (vb *ValidationBuilder) InvalidField(field, reason string) *ValidationBuilder {
	return vb.Fieldf(field, "is invalid: %s", reason)
}

// Build returns nil when nothing failed
func (vb *ValidationBuilder) Build() error {
	if err := vb.err.ToError(); err != nil {
		return err
	}
	return nil
}

// ValidateRequired fails field when value is blank
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateMaxLength fails field when value is longer than maxLen bytes
func ValidateMaxLength(field, value string, maxLen int, vb *ValidationBuilder) {
	if len(value) > maxLen {
		vb.Fieldf(field, "must be no more than %d characters", maxLen)
	}
}

// ValidatePositive fails field when value is zero or negative
func ValidatePositive(field string, value int, vb *ValidationBuilder) {
	if value <= 0 {
		vb.Field(field, "must be positive")
	}
}

// ValidateRange fails field when value is outside [lo, hi]
func ValidateRange(field string, value, lo, hi int, vb *ValidationBuilder) {
	if value < lo || value > hi {
		vb.Fieldf(field, "must be between %d and %d", lo, hi)
	}
}

// ValidateEnum fails field when value is not one of allowed
func ValidateEnum(field, value string, allowed []string, vb *ValidationBuilder) {
	for _, a := range allowed {
		if a == value {
			return
		}
	}
	vb.Fieldf(field, "must be one of: %s", strings.Join(allowed, ", "))
}
