package domainerrors

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError names one offending field and a human-readable reason.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field failure for a record so clients see all
// problems in one response rather than fixing them one at a time.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s: %s", CodeValidation, strings.Join(parts, "; "))
}

// As lets HasCode/CodeOf treat a ValidationError as a coded error.
func (e *ValidationError) As(target any) bool {
	if t, ok := target.(**Error); ok {
		*t = &Error{Code: CodeValidation, Message: "one or more fields are invalid"}
		return true
	}
	return false
}

// Validation accumulates field errors during record validation.
// The zero value is ready to use.
type Validation struct {
	fields []FieldError
}

// Add records a failure for the named field.
func (v *Validation) Add(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

// Empty reports whether no failures were recorded.
func (v *Validation) Empty() bool { return len(v.fields) == 0 }

// Err returns the collected ValidationError, or nil when everything passed.
func (v *Validation) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

// FieldsOf extracts the field errors from err, nil when err is not a
// ValidationError.
func FieldsOf(err error) []FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
