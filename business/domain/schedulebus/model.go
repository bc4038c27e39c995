package schedulebus

import (
	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/domain/employeebus"
	"github.com/wachdienst/dienstplan/business/domain/shiftbus"
	"github.com/wachdienst/dienstplan/business/types/civildate"
	"github.com/wachdienst/dienstplan/business/types/daytime"
)

// Cell is one day in the calendar grid. Days padding the grid out to
// whole weeks belong to the neighbouring months and carry InMonth false.
type Cell struct {
	Date    civildate.Date
	InMonth bool
	IsToday bool
	Shifts  []shiftbus.Shift
}

// Calendar is the month view: whole Monday-started weeks.
type Calendar struct {
	Month civildate.Month
	Cells []Cell
}

// MatrixCell is one employee-day cell of the roster grid.
type MatrixCell struct {
	Date      civildate.Date
	Shift     *shiftbus.Shift
	CanAssign bool
}

// MatrixRow is one employee's month.
type MatrixRow struct {
	Employee employeebus.Employee
	Cells    []MatrixCell
}

// Matrix is the employee-by-day roster grid over the days of one month.
type Matrix struct {
	Month civildate.Month
	Days  []civildate.Date
	Rows  []MatrixRow
}

// Draft is the prefilled assignment dialog state for an empty cell.
type Draft struct {
	EmployeeID uuid.UUID
	Date       civildate.Date
	StartTime  daytime.Time
	EndTime    daytime.Time
	ObjectID   *uuid.UUID
}
