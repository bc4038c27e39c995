package scheduleapp

import (
	"encoding/json"

	"github.com/wachdienst/dienstplan/business/domain/schedulebus"
	"github.com/wachdienst/dienstplan/business/domain/shiftbus"
)

type shift struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	ObjectID  string `json:"objectId,omitempty"`
	Location  string `json:"location"`
}

func toAppShift(bus shiftbus.Shift) shift {
	app := shift{
		ID:        bus.ID.String(),
		StartTime: bus.StartTime.String(),
		EndTime:   bus.EndTime.String(),
		Location:  bus.Snapshot.Location,
	}

	if bus.ObjectID != nil {
		app.ObjectID = bus.ObjectID.String()
	}

	return app
}

// =============================================================================

type calendarCell struct {
	Date    string  `json:"date"`
	InMonth bool    `json:"inMonth"`
	IsToday bool    `json:"isToday"`
	Shifts  []shift `json:"shifts"`
}

// Calendar is the whole-week month grid.
type Calendar struct {
	Month string         `json:"month"`
	Cells []calendarCell `json:"cells"`
}

// Encode implements the web.Encoder interface.
func (c Calendar) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

func toAppCalendar(bus schedulebus.Calendar) Calendar {
	cells := make([]calendarCell, len(bus.Cells))
	for i, cell := range bus.Cells {
		shifts := make([]shift, len(cell.Shifts))
		for j, s := range cell.Shifts {
			shifts[j] = toAppShift(s)
		}

		cells[i] = calendarCell{
			Date:    cell.Date.String(),
			InMonth: cell.InMonth,
			IsToday: cell.IsToday,
			Shifts:  shifts,
		}
	}

	return Calendar{
		Month: bus.Month.String(),
		Cells: cells,
	}
}

// =============================================================================

type matrixCell struct {
	Date      string `json:"date"`
	Shift     *shift `json:"shift,omitempty"`
	CanAssign bool   `json:"canAssign"`
}

type matrixRow struct {
	EmployeeID   string       `json:"employeeId"`
	EmployeeName string       `json:"employeeName"`
	Role         string       `json:"role"`
	Cells        []matrixCell `json:"cells"`
}

type draftDefaults struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	ObjectID  string `json:"objectId,omitempty"`
}

// Matrix is the employee-by-day roster grid plus the defaults the
// assignment dialog prefills for empty cells.
type Matrix struct {
	Month string        `json:"month"`
	Days  []string      `json:"days"`
	Rows  []matrixRow   `json:"rows"`
	Draft draftDefaults `json:"draft"`
}

// Encode implements the web.Encoder interface.
func (m Matrix) Encode() ([]byte, string, error) {
	data, err := json.Marshal(m)
	return data, "application/json", err
}

func toAppMatrix(bus schedulebus.Matrix, draft schedulebus.Draft) Matrix {
	days := make([]string, len(bus.Days))
	for i, d := range bus.Days {
		days[i] = d.String()
	}

	rows := make([]matrixRow, len(bus.Rows))
	for i, row := range bus.Rows {
		cells := make([]matrixCell, len(row.Cells))
		for j, cell := range row.Cells {
			mc := matrixCell{
				Date:      cell.Date.String(),
				CanAssign: cell.CanAssign,
			}

			if cell.Shift != nil {
				s := toAppShift(*cell.Shift)
				mc.Shift = &s
			}

			cells[j] = mc
		}

		rows[i] = matrixRow{
			EmployeeID:   row.Employee.ID.String(),
			EmployeeName: row.Employee.Name.String(),
			Role:         row.Employee.Role.String(),
			Cells:        cells,
		}
	}

	app := Matrix{
		Month: bus.Month.String(),
		Days:  days,
		Rows:  rows,
		Draft: draftDefaults{
			StartTime: draft.StartTime.String(),
			EndTime:   draft.EndTime.String(),
		},
	}

	if draft.ObjectID != nil {
		app.Draft.ObjectID = draft.ObjectID.String()
	}

	return app
}

// =============================================================================

// Hours is one employee's monthly total.
type Hours struct {
	EmployeeID string  `json:"employeeId"`
	Month      string  `json:"month"`
	Hours      float64 `json:"hours"`
}

// Encode implements the web.Encoder interface.
func (h Hours) Encode() ([]byte, string, error) {
	data, err := json.Marshal(h)
	return data, "application/json", err
}
