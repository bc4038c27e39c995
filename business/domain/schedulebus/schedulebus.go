// Package schedulebus builds the roster views. Everything here is a pure
// projection over employees, objects and shifts: recomputable at any
// time, no store access, no side effects. Live update notifications
// simply recompute and compare with Equal to skip no-op re-renders.
package schedulebus

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/domain/employeebus"
	"github.com/wachdienst/dienstplan/business/domain/objectbus"
	"github.com/wachdienst/dienstplan/business/domain/permbus"
	"github.com/wachdienst/dienstplan/business/domain/shiftbus"
	"github.com/wachdienst/dienstplan/business/domain/templatebus"
	"github.com/wachdienst/dienstplan/business/types/civildate"
	"github.com/wachdienst/dienstplan/business/types/daytime"
)

// BuildCalendar lays the month out as whole Monday-started weeks. The
// grid runs from the Monday on or before the 1st through the Sunday on
// or after the last day, always 35 or 42 cells.
func BuildCalendar(month civildate.Month, today civildate.Date, shifts []shiftbus.Shift) Calendar {
	first := month.First()

	lead := (int(first.Weekday()) + 6) % 7
	total := lead + month.Days()
	if total%7 != 0 {
		total += 7 - total%7
	}

	byDate := make(map[civildate.Date][]shiftbus.Shift)
	for _, s := range shifts {
		byDate[s.Date] = append(byDate[s.Date], s)
	}

	cells := make([]Cell, total)
	for i := range cells {
		date := first.AddDays(i - lead)
		cells[i] = Cell{
			Date:    date,
			InMonth: month.Contains(date),
			IsToday: date.Equal(today),
			Shifts:  byDate[date],
		}
	}

	return Calendar{
		Month: month,
		Cells: cells,
	}
}

// BuildMatrix builds the employee-by-day roster grid. Rows keep the
// caller's employee order; columns cover only the days of the month.
// CanAssign on every cell comes from the permission resolver against the
// object as it is assigned right now, not as it was snapshotted.
func BuildMatrix(month civildate.Month, employees []employeebus.Employee, shifts []shiftbus.Shift, objects []objectbus.WorkObject, actor permbus.Actor) Matrix {
	days := make([]civildate.Date, month.Days())
	first := month.First()
	for i := range days {
		days[i] = first.AddDays(i)
	}

	objByID := make(map[uuid.UUID]objectbus.WorkObject, len(objects))
	for _, o := range objects {
		objByID[o.ID] = o
	}

	type cellKey struct {
		employee uuid.UUID
		date     civildate.Date
	}
	byCell := make(map[cellKey][]shiftbus.Shift)
	for _, s := range shifts {
		if !month.Contains(s.Date) {
			continue
		}
		k := cellKey{employee: s.EmployeeID, date: s.Date}
		byCell[k] = append(byCell[k], s)
	}

	rows := make([]MatrixRow, len(employees))
	for i, emp := range employees {
		cells := make([]MatrixCell, len(days))

		for j, day := range days {
			cell := MatrixCell{
				Date: day,
			}

			target := permbus.Target{
				EmployeeID: emp.ID,
			}

			if shift, ok := shiftbus.Winner(byCell[cellKey{employee: emp.ID, date: day}]); ok {
				s := shift
				cell.Shift = &s

				if s.ObjectID != nil {
					if obj, exists := objByID[*s.ObjectID]; exists {
						target.Object = objectbus.PermView(obj)
					}
				}
			}

			cell.CanAssign = permbus.Resolve(actor, target).CanAssign
			cells[j] = cell
		}

		rows[i] = MatrixRow{
			Employee: emp,
			Cells:    cells,
		}
	}

	return Matrix{
		Month: month,
		Days:  days,
		Rows:  rows,
	}
}

// NewDraft prefills the assignment dialog for an empty cell: the
// tenant's first object when one exists and the 06:00 to 14:00 day
// shift.
func NewDraft(employeeID uuid.UUID, date civildate.Date, objects []objectbus.WorkObject) Draft {
	d := Draft{
		EmployeeID: employeeID,
		Date:       date,
		StartTime:  daytime.MustParse("06:00"),
		EndTime:    daytime.MustParse("14:00"),
	}

	if len(objects) > 0 {
		id := objects[0].ID
		d.ObjectID = &id
	}

	return d
}

// ApplyTemplate copies the template times onto the draft. Object and
// date stay as they are.
func ApplyTemplate(d Draft, tpl templatebus.ShiftTemplate) Draft {
	d.StartTime = tpl.StartTime
	d.EndTime = tpl.EndTime

	return d
}

// MonthlyHours sums the employee's worked hours across the month,
// overnight corrected and rounded to one decimal.
func MonthlyHours(month civildate.Month, employeeID uuid.UUID, shifts []shiftbus.Shift) float64 {
	var total float64

	for _, s := range shifts {
		if s.EmployeeID != employeeID || !month.Contains(s.Date) {
			continue
		}
		total += s.Hours()
	}

	return math.Round(total*10) / 10
}

// =============================================================================

// Equal reports whether the two calendars render identically. Shift
// order inside a cell carries no meaning and is ignored.
func (c Calendar) Equal(c2 Calendar) bool {
	if !c.Month.Equal(c2.Month) || len(c.Cells) != len(c2.Cells) {
		return false
	}

	for i := range c.Cells {
		if !c.Cells[i].equal(c2.Cells[i]) {
			return false
		}
	}

	return true
}

func (c Cell) equal(c2 Cell) bool {
	if !c.Date.Equal(c2.Date) || c.InMonth != c2.InMonth || c.IsToday != c2.IsToday {
		return false
	}

	return shiftsEqual(c.Shifts, c2.Shifts)
}

// Equal reports whether the two matrices render identically.
func (m Matrix) Equal(m2 Matrix) bool {
	if !m.Month.Equal(m2.Month) || len(m.Rows) != len(m2.Rows) {
		return false
	}

	for i := range m.Rows {
		r, r2 := m.Rows[i], m2.Rows[i]

		if r.Employee.ID != r2.Employee.ID || len(r.Cells) != len(r2.Cells) {
			return false
		}

		for j := range r.Cells {
			if !r.Cells[j].equal(r2.Cells[j]) {
				return false
			}
		}
	}

	return true
}

func (c MatrixCell) equal(c2 MatrixCell) bool {
	if !c.Date.Equal(c2.Date) || c.CanAssign != c2.CanAssign {
		return false
	}

	if (c.Shift == nil) != (c2.Shift == nil) {
		return false
	}

	if c.Shift == nil {
		return true
	}

	return shiftEqual(*c.Shift, *c2.Shift)
}

func shiftsEqual(a, b []shiftbus.Shift) bool {
	if len(a) != len(b) {
		return false
	}

	as := append([]shiftbus.Shift(nil), a...)
	bs := append([]shiftbus.Shift(nil), b...)

	byID := func(s []shiftbus.Shift) func(i, j int) bool {
		return func(i, j int) bool { return s[i].ID.String() < s[j].ID.String() }
	}
	sort.Slice(as, byID(as))
	sort.Slice(bs, byID(bs))

	for i := range as {
		if !shiftEqual(as[i], bs[i]) {
			return false
		}
	}

	return true
}

func shiftEqual(a, b shiftbus.Shift) bool {
	if a.ID != b.ID || a.EmployeeID != b.EmployeeID || !a.Date.Equal(b.Date) {
		return false
	}

	if !a.StartTime.Equal(b.StartTime) || !a.EndTime.Equal(b.EndTime) {
		return false
	}

	if (a.ObjectID == nil) != (b.ObjectID == nil) {
		return false
	}

	if a.ObjectID != nil && *a.ObjectID != *b.ObjectID {
		return false
	}

	return a.Snapshot == b.Snapshot
}
