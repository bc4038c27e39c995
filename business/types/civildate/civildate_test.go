package civildate

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	d, err := Parse("2024-02-29")
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if d.String() != "2024-02-29" {
		t.Errorf("String() = %q, want %q", d.String(), "2024-02-29")
	}
	if d.Weekday() != time.Thursday {
		t.Errorf("Weekday() = %v, want Thursday", d.Weekday())
	}

	if _, err := Parse("2023-02-29"); err == nil {
		t.Error("Parse(2023-02-29): expected error for non-leap year")
	}
	if _, err := Parse("29.02.2024"); err == nil {
		t.Error("Parse(29.02.2024): expected error for wrong layout")
	}
}

func TestOrdering(t *testing.T) {
	a := MustParse("2024-01-31")
	b := MustParse("2024-02-01")

	if a.Compare(b) != -1 {
		t.Error("expected 2024-01-31 before 2024-02-01")
	}
	if a.String() >= b.String() {
		t.Error("lexical order must agree with chronological order")
	}
}

func TestAddDays(t *testing.T) {
	d := MustParse("2024-02-28")

	if got := d.AddDays(1); got.String() != "2024-02-29" {
		t.Errorf("AddDays(1) = %s, want 2024-02-29", got)
	}
	if got := d.AddDays(2); got.String() != "2024-03-01" {
		t.Errorf("AddDays(2) = %s, want 2024-03-01", got)
	}
	if got := d.AddDays(-28); got.String() != "2024-01-31" {
		t.Errorf("AddDays(-28) = %s, want 2024-01-31", got)
	}
}

func TestMonth(t *testing.T) {
	tests := []struct {
		value string
		first string
		last  string
		days  int
	}{
		{value: "2024-02", first: "2024-02-01", last: "2024-02-29", days: 29},
		{value: "2023-02", first: "2023-02-01", last: "2023-02-28", days: 28},
		{value: "2024-12", first: "2024-12-01", last: "2024-12-31", days: 31},
		{value: "2024-04", first: "2024-04-01", last: "2024-04-30", days: 30},
	}

	for _, tt := range tests {
		m, err := ParseMonth(tt.value)
		if err != nil {
			t.Errorf("ParseMonth(%q): unexpected error: %v", tt.value, err)
			continue
		}
		if got := m.First().String(); got != tt.first {
			t.Errorf("%s First() = %s, want %s", tt.value, got, tt.first)
		}
		if got := m.Last().String(); got != tt.last {
			t.Errorf("%s Last() = %s, want %s", tt.value, got, tt.last)
		}
		if got := m.Days(); got != tt.days {
			t.Errorf("%s Days() = %d, want %d", tt.value, got, tt.days)
		}
	}
}

func TestMonthContains(t *testing.T) {
	m := NewMonth(2024, time.February)

	if !m.Contains(MustParse("2024-02-29")) {
		t.Error("expected 2024-02 to contain 2024-02-29")
	}
	if m.Contains(MustParse("2024-03-01")) {
		t.Error("expected 2024-02 to not contain 2024-03-01")
	}
	if m.Contains(MustParse("2023-02-15")) {
		t.Error("expected 2024-02 to not contain 2023-02-15")
	}
}

func TestMonthNext(t *testing.T) {
	m := NewMonth(2024, time.December)
	if got := m.Next().String(); got != "2025-01" {
		t.Errorf("Next() = %s, want 2025-01", got)
	}
}
