package civildate

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// Month represents one calendar month, the planning unit of the roster.
type Month struct {
	year  int
	month time.Month
}

// NewMonth constructs a month from its parts.
func NewMonth(year int, month time.Month) Month {
	return Month{year: year, month: month}
}

// ParseMonth parses the "YYYY-MM" string value and returns a month.
func ParseMonth(value string) (Month, error) {
	t, err := time.Parse(monthLayout, value)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q", value)
	}

	return Month{year: t.Year(), month: t.Month()}, nil
}

// String returns the "YYYY-MM" representation of the month.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.year, m.month)
}

// Equal provides support for the go-cmp package and testing.
func (m Month) Equal(m2 Month) bool {
	return m == m2
}

// Year returns the year of the month.
func (m Month) Year() int {
	return m.year
}

// Month returns the month of the year.
func (m Month) Month() time.Month {
	return m.month
}

// First returns the first day of the month.
func (m Month) First() Date {
	return New(m.year, m.month, 1)
}

// Last returns the last day of the month, leap years included.
func (m Month) Last() Date {
	return Date{m.First().value.AddDate(0, 1, -1)}
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.Last().Day()
}

// Contains reports whether the date falls inside the month.
func (m Month) Contains(d Date) bool {
	return d.value.Year() == m.year && d.value.Month() == m.month
}

// Next returns the following month.
func (m Month) Next() Month {
	t := m.First().value.AddDate(0, 1, 0)
	return Month{year: t.Year(), month: t.Month()}
}
