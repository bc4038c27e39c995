// Package civildate represents plain calendar dates with no time zone.
// Dates travel through the system as ISO "YYYY-MM-DD" strings, so lexical
// order and chronological order agree and the string is usable as a sort
// and range key.
package civildate

import (
	"fmt"
	"time"
)

const layout = "2006-01-02"

// Date represents a civil calendar date.
type Date struct {
	value time.Time
}

// New constructs a date from its parts.
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates a time value to its civil date.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return New(y, m, d)
}

// Today returns the current civil date in local time.
func Today() Date {
	return FromTime(time.Now())
}

// Parse parses the ISO string value and returns a date.
func Parse(value string) (Date, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", value)
	}

	return Date{t}, nil
}

// MustParse parses the string value and returns a date. If an error
// occurs the function panics.
func MustParse(value string) Date {
	d, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return d
}

// String returns the ISO representation of the date.
func (d Date) String() string {
	return d.value.Format(layout)
}

// Equal provides support for the go-cmp package and testing.
func (d Date) Equal(d2 Date) bool {
	return d.value.Equal(d2.value)
}

// MarshalText provides support for logging and any marshal needs.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Compare returns -1, 0 or 1 depending on whether d is before, equal to
// or after d2.
func (d Date) Compare(d2 Date) int {
	return d.value.Compare(d2.value)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.value.IsZero()
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.value.Weekday()
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.value.Day()
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{d.value.AddDate(0, 0, n)}
}

// Time returns the date as a UTC midnight time value.
func (d Date) Time() time.Time {
	return d.value
}
