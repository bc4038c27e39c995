// Package daytime represents 24-hour "HH:MM" times of day. The string
// form is the wire and storage format; the numeric form feeds the hours
// arithmetic.
package daytime

import (
	"fmt"
	"strconv"
	"strings"
)

// Time represents a time of day with minute precision.
type Time struct {
	hour   int
	minute int
}

// New constructs a time of day from its parts.
func New(hour, minute int) (Time, error) {
	if hour < 0 || hour > 23 {
		return Time{}, fmt.Errorf("invalid hour %d", hour)
	}
	if minute < 0 || minute > 59 {
		return Time{}, fmt.Errorf("invalid minute %d", minute)
	}

	return Time{hour: hour, minute: minute}, nil
}

// Parse parses the "HH:MM" string value and returns a time of day.
func Parse(value string) (Time, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return Time{}, fmt.Errorf("invalid time %q", value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return Time{}, fmt.Errorf("invalid time %q", value)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return Time{}, fmt.Errorf("invalid time %q", value)
	}

	return New(hour, minute)
}

// MustParse parses the string value and returns a time of day. If an
// error occurs the function panics.
func MustParse(value string) Time {
	t, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return t
}

// String returns the "HH:MM" representation of the time.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// Equal provides support for the go-cmp package and testing.
func (t Time) Equal(t2 Time) bool {
	return t == t2
}

// MarshalText provides support for logging and any marshal needs.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Hours returns the time of day as fractional hours since midnight.
func (t Time) Hours() float64 {
	return float64(t.hour) + float64(t.minute)/60
}

// Span returns the length in hours of the window from start to end.
// An end before the start means the window crosses midnight and a day
// is added; the result is never negative.
func Span(start, end Time) float64 {
	diff := end.Hours() - start.Hours()
	if diff < 0 {
		diff += 24
	}

	return diff
}
