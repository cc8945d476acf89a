package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestCalendar_SameDay(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	cal := New(tokyo)

	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want bool
	}{
		{
			name: "different hours on one day",
			a:    time.Date(2024, time.March, 4, 1, 0, 0, 0, tokyo),
			b:    time.Date(2024, time.March, 4, 23, 59, 0, 0, tokyo),
			want: true,
		},
		{
			name: "adjacent days",
			a:    time.Date(2024, time.March, 4, 23, 59, 0, 0, tokyo),
			b:    time.Date(2024, time.March, 5, 0, 0, 0, 0, tokyo),
			want: false,
		},
		{
			name: "utc instants that share a local day",
			a:    time.Date(2024, time.March, 3, 16, 0, 0, 0, time.UTC),
			b:    time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "same day number in another month",
			a:    time.Date(2024, time.March, 4, 9, 0, 0, 0, tokyo),
			b:    time.Date(2024, time.April, 4, 9, 0, 0, 0, tokyo),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cal.SameDay(tt.a, tt.b); got != tt.want {
				t.Fatalf("SameDay(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCalendar_Week(t *testing.T) {
	t.Parallel()

	cal := New(time.UTC)

	t.Run("starts on monday", func(t *testing.T) {
		t.Parallel()

		// Thursday.
		reference := time.Date(2024, time.March, 7, 15, 30, 0, 0, time.UTC)
		days := cal.Week(reference)
		if len(days) != DaysPerWeek {
			t.Fatalf("expected %d days, got %d", DaysPerWeek, len(days))
		}
		want := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
		if !days[0].Equal(want) {
			t.Fatalf("expected week to start %v, got %v", want, days[0])
		}
		if days[6].Weekday() != time.Sunday {
			t.Fatalf("expected week to end on sunday, got %v", days[6].Weekday())
		}
	})

	t.Run("sunday belongs to the preceding week", func(t *testing.T) {
		t.Parallel()

		sunday := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
		start := cal.StartOfWeek(sunday)
		if want := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
			t.Fatalf("expected %v, got %v", want, start)
		}
	})

	t.Run("in week bounds are half open", func(t *testing.T) {
		t.Parallel()

		reference := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)
		if !cal.InWeek(time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), reference) {
			t.Fatalf("expected monday midnight to be in week")
		}
		if cal.InWeek(time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), reference) {
			t.Fatalf("expected next monday to be outside week")
		}
	})
}

func TestCalendar_ParseDate(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("EST", -5*60*60)
	cal := New(loc)

	parsed, err := cal.ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if parsed.Location() != loc || parsed.Hour() != 0 || parsed.Day() != 29 {
		t.Fatalf("unexpected parsed date %v", parsed)
	}
	if got := cal.FormatDate(parsed); got != "2024-02-29" {
		t.Fatalf("expected round trip, got %q", got)
	}

	for _, bad := range []string{"", "2024-13-01", "03/04/2024", "2023-02-29"} {
		if _, err := cal.ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", bad, err)
		}
	}
}

func TestValidClock(t *testing.T) {
	t.Parallel()

	for value, want := range map[string]bool{
		"09:00": true,
		"23:59": true,
		"24:00": false,
		"9:00":  false,
		"09:60": false,
		"":      false,
	} {
		if got := ValidClock(value); got != want {
			t.Fatalf("ValidClock(%q) = %v, want %v", value, got, want)
		}
	}
}

func TestNewDefaultsToLocal(t *testing.T) {
	t.Parallel()

	if New(nil).Location() != time.Local {
		t.Fatalf("expected time.Local when no location is supplied")
	}
	var cal *Calendar
	if cal.Location() != time.Local {
		t.Fatalf("expected nil calendar to report time.Local")
	}
}
