package model // package model defines the persisted entities of the room scheduler

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the wire and storage format for calendar dates.
const dateLayout = "2006-01-02"

// Date is a naive calendar date with no time-of-day and no timezone.  The
// scheduler deliberately works with local dates only; all weekday and
// comparison logic goes through this type so no code path ever touches a
// time.Time with a non-midnight clock.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// String renders the date in "YYYY-MM-DD" form, which is also the format
// stored in the DATE columns of the database.
func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

// Time converts the date to a time.Time at midnight UTC.  UTC is used only as
// a neutral carrier; no timezone conversion ever happens on a Date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday reports the day of the week using Go's convention (Sunday = 0),
// which is the same convention class slots are stored with.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.Time().Before(o.Time()) }

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool { return d.Time().After(o.Time()) }

// Equal reports whether d and o are the same calendar date.
func (d Date) Equal(o Date) bool { return d == o }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// MarshalJSON encodes the date as a "YYYY-MM-DD" JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" JSON string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
