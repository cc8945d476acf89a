package http

import (
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/example/hr-directory/internal/application"
	"github.com/example/hr-directory/internal/calendar"
)

const (
	minEmployeeNameLength   = 2
	minDepartmentNameLength = 2
	minDescriptionLength    = 5
)

// form trims submitted values and collects field errors for one request body.
type form struct {
	errs application.ValidationError
}

func (f *form) err() error {
	if !f.errs.HasErrors() {
		return nil
	}
	errs := f.errs
	return &errs
}

func (f *form) text(value string) string {
	return strings.TrimSpace(value)
}

func (f *form) textPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

// optional trims value and treats a blank string as absent.
func (f *form) optional(value *string) *string {
	trimmed := f.textPtr(value)
	if trimmed == nil || *trimmed == "" {
		return nil
	}
	return trimmed
}

// nullable keeps the absent/null distinction and clears the field for a blank string.
func (f *form) nullable(value nullableString) application.NullableString {
	patch := value.patch()
	patch.Value = f.optional(patch.Value)
	return patch
}

func (f *form) minLength(field, label, value string, minimum int) {
	if utf8.RuneCountInString(value) < minimum {
		f.errs.Add(field, label+" must be at least "+strconv.Itoa(minimum)+" characters")
	}
}

func (f *form) required(field, label, value string) bool {
	if value == "" {
		f.errs.Add(field, label+" is required")
		return false
	}
	return true
}

func (f *form) email(value string) {
	if !f.required("email", "email", value) {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		f.errs.Add("email", "email is invalid")
	}
}

func (f *form) hireDate(value string) {
	if f.required("hire_date", "hire date", value) && !calendar.ValidDate(value) {
		f.errs.Add("hire_date", "hire date must be formatted as YYYY-MM-DD")
	}
}

func (f *form) clock(field, label, value string) {
	if f.required(field, label, value) && !calendar.ValidClock(value) {
		f.errs.Add(field, label+" must be formatted as HH:MM")
	}
}

// date parses value as a calendar day. It returns the zero time, and records
// a field error, when value is blank or malformed.
func (f *form) date(cal *calendar.Calendar, field, value string) time.Time {
	value = strings.TrimSpace(value)
	if !f.required(field, field, value) {
		return time.Time{}
	}
	day, err := cal.ParseDate(value)
	if err != nil {
		f.errs.Add(field, field+" must be formatted as YYYY-MM-DD")
		return time.Time{}
	}
	return day
}

func (f *form) status(value string) application.AvailabilityStatus {
	status := application.AvailabilityStatus(strings.TrimSpace(value))
	if !status.Valid() {
		f.errs.Add("status", "status must be available or unavailable")
	}
	return status
}
