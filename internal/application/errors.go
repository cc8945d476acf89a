package application

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when the referenced employee, department or
	// availability entry does not exist.
	ErrNotFound = errors.New("hr directory: not found")
	// ErrAlreadyExists is returned when an imported record reuses an id.
	ErrAlreadyExists = errors.New("hr directory: already exists")
)

// ValidationError maps input field names to the first problem found with each.
type ValidationError struct {
	FieldErrors map[string]string
}

func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	fields := v.Fields()
	if len(fields) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

// HasErrors reports whether any field was rejected.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// Fields returns the rejected field names in sorted order.
func (v *ValidationError) Fields() []string {
	if v == nil {
		return nil
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Add records message for field unless the field was already rejected.
func (v *ValidationError) Add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	if _, seen := v.FieldErrors[field]; !seen {
		v.FieldErrors[field] = message
	}
}
