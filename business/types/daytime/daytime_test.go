package daytime

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		value   string
		want    string
		wantErr bool
	}{
		{value: "06:00", want: "06:00"},
		{value: "6:00", want: "06:00"},
		{value: "23:59", want: "23:59"},
		{value: "00:00", want: "00:00"},
		{value: "24:00", wantErr: true},
		{value: "12:60", wantErr: true},
		{value: "noon", wantErr: true},
		{value: "12", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.value)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got %v", tt.value, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tt.value, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.value, got.String(), tt.want)
		}
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{name: "day shift", start: "06:00", end: "14:00", want: 8},
		{name: "overnight", start: "22:00", end: "06:00", want: 8},
		{name: "half hour", start: "08:30", end: "12:00", want: 3.5},
		{name: "full day", start: "00:00", end: "00:00", want: 0},
		{name: "one minute before midnight", start: "23:59", end: "00:00", want: 1.0 / 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Span(MustParse(tt.start), MustParse(tt.end))
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Span(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestHours(t *testing.T) {
	if got := MustParse("10:45").Hours(); got != 10.75 {
		t.Errorf("Hours() = %v, want 10.75", got)
	}
}
