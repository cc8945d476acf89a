// Package calendar answers calendar-day questions about instants in a fixed
// location: whether two instants fall on the same day and which Monday-start
// week contains an instant.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of calendar days.
const DateLayout = "2006-01-02"

// ClockLayout is the wire format of wall-clock times of day.
const ClockLayout = "15:04"

// DaysPerWeek is the length of a week view.
const DaysPerWeek = 7

// ErrInvalidDate indicates a value that is not a YYYY-MM-DD calendar day.
var ErrInvalidDate = errors.New("calendar: invalid date")

// Calendar interprets instants in a single location.
type Calendar struct {
	location *time.Location
}

// New constructs a Calendar bound to loc. If loc is nil, time.Local is used.
func New(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{location: loc}
}

// Location returns the location the calendar works in.
func (c *Calendar) Location() *time.Location {
	if c == nil || c.location == nil {
		return time.Local
	}
	return c.location
}

// SameDay reports whether a and b fall on the same calendar day.
func (c *Calendar) SameDay(a, b time.Time) bool {
	loc := c.Location()
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns midnight of the day containing t.
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	loc := c.Location()
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// StartOfWeek returns midnight of the Monday on or before t.
func (c *Calendar) StartOfWeek(t time.Time) time.Time {
	start := c.StartOfDay(t)
	// Go numbers Sunday as 0; shift so Monday is day 0.
	offset := (int(start.Weekday()) + 6) % 7
	return start.AddDate(0, 0, -offset)
}

// Week returns the seven consecutive days, Monday first, of the week containing t.
func (c *Calendar) Week(t time.Time) []time.Time {
	start := c.StartOfWeek(t)
	days := make([]time.Time, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}

// InWeek reports whether t falls within the Monday-start week containing reference.
func (c *Calendar) InWeek(t, reference time.Time) bool {
	start := c.StartOfWeek(reference)
	end := start.AddDate(0, 0, DaysPerWeek)
	local := t.In(c.Location())
	return !local.Before(start) && local.Before(end)
}

// ParseDate parses a YYYY-MM-DD value as midnight in the calendar's location.
func (c *Calendar) ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}
	parsed, err := time.ParseInLocation(DateLayout, trimmed, c.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return parsed, nil
}

// FormatDate renders t as YYYY-MM-DD in the calendar's location.
func (c *Calendar) FormatDate(t time.Time) string {
	return t.In(c.Location()).Format(DateLayout)
}

// ValidDate reports whether value is a YYYY-MM-DD calendar day.
func ValidDate(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// ValidClock reports whether value is an HH:MM time of day.
func ValidClock(value string) bool {
	if len(value) != len(ClockLayout) {
		return false
	}
	_, err := time.Parse(ClockLayout, value)
	return err == nil
}
