package types

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries per-field validation messages. The central error
// handler renders it as a 422 with an {"errors": {field: message}} body.
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field, message := range e.Errors {
		fields = append(fields, fmt.Sprintf("%s %s", field, message))
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: map[string]string{field: message}}
}
