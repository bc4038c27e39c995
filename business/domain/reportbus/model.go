package reportbus

import "fmt"

// Mode selects the export layout.
type Mode struct {
	value string
}

var (
	ModeByEmployee = Mode{"by_employee"}
	ModeByObject   = Mode{"by_object"}
	ModeMatrix     = Mode{"matrix"}
)

var modes = map[string]Mode{
	ModeByEmployee.value: ModeByEmployee,
	ModeByObject.value:   ModeByObject,
	ModeMatrix.value:     ModeMatrix,
}

// ParseMode parses the string value and returns a mode if one exists.
func ParseMode(value string) (Mode, error) {
	mode, exists := modes[value]
	if !exists {
		return Mode{}, fmt.Errorf("invalid report mode %q", value)
	}

	return mode, nil
}

// String returns the name of the mode.
func (m Mode) String() string {
	return m.value
}

// Table is a rendered report: a title, a header row and data rows. The
// exporter writes it out cell by cell.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}
