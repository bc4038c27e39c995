// Package reportbus flattens a roster month into export tables. Building
// a table is read only and pure; rendering it to a file is the app
// layer's job.
package reportbus

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/domain/employeebus"
	"github.com/wachdienst/dienstplan/business/domain/objectbus"
	"github.com/wachdienst/dienstplan/business/domain/permbus"
	"github.com/wachdienst/dienstplan/business/domain/shiftbus"
	"github.com/wachdienst/dienstplan/business/types/civildate"
)

var (
	ErrTargetNotFound = errors.New("report target not found")
)

// Build produces the table for the requested mode. Actors without roster
// privileges silently get their own by-employee export no matter what
// they asked for.
func Build(mode Mode, target uuid.UUID, month civildate.Month, employees []employeebus.Employee, objects []objectbus.WorkObject, shifts []shiftbus.Shift, actor permbus.Actor) (Table, error) {
	if !privileged(actor) {
		mode = ModeByEmployee
		target = actor.ID
	}

	switch mode {
	case ModeByEmployee:
		return buildByEmployee(target, month, employees, objects, shifts)

	case ModeByObject:
		return buildByObject(target, month, employees, objects, shifts)

	case ModeMatrix:
		return buildMatrix(month, employees, shifts), nil
	}

	return Table{}, fmt.Errorf("unknown report mode %q", mode)
}

func privileged(actor permbus.Actor) bool {
	if actor.Owner {
		return true
	}

	return permbus.Resolve(actor, permbus.Target{}).CanView
}

func buildByEmployee(employeeID uuid.UUID, month civildate.Month, employees []employeebus.Employee, objects []objectbus.WorkObject, shifts []shiftbus.Shift) (Table, error) {
	emp, ok := findEmployee(employees, employeeID)
	if !ok {
		return Table{}, fmt.Errorf("employee[%s]: %w", employeeID, ErrTargetNotFound)
	}

	objByID := indexObjects(objects)

	var monthShifts []shiftbus.Shift
	for _, s := range shifts {
		if s.EmployeeID == employeeID && month.Contains(s.Date) {
			monthShifts = append(monthShifts, s)
		}
	}

	sort.Slice(monthShifts, func(i, j int) bool {
		return monthShifts[i].Date.Compare(monthShifts[j].Date) < 0
	})

	rows := make([][]string, len(monthShifts))
	for i, s := range monthShifts {
		rows[i] = []string{
			s.Date.String(),
			s.Date.Weekday().String(),
			s.StartTime.String(),
			s.EndTime.String(),
			objectLabel(s, objByID),
			s.Snapshot.Address,
		}
	}

	return Table{
		Title:   fmt.Sprintf("Dienstplan %s %s", emp.Name, month),
		Headers: []string{"Date", "Weekday", "Start", "End", "Object", "Address"},
		Rows:    rows,
	}, nil
}

func buildByObject(objectID uuid.UUID, month civildate.Month, employees []employeebus.Employee, objects []objectbus.WorkObject, shifts []shiftbus.Shift) (Table, error) {
	obj, ok := findObject(objects, objectID)
	if !ok {
		return Table{}, fmt.Errorf("object[%s]: %w", objectID, ErrTargetNotFound)
	}

	empByID := make(map[uuid.UUID]employeebus.Employee, len(employees))
	for _, e := range employees {
		empByID[e.ID] = e
	}

	type row struct {
		name  string
		shift shiftbus.Shift
	}

	var entries []row
	for _, s := range shifts {
		if s.ObjectID == nil || *s.ObjectID != objectID || !month.Contains(s.Date) {
			continue
		}

		name := s.EmployeeID.String()
		if emp, exists := empByID[s.EmployeeID]; exists {
			name = emp.Name.String()
		}

		entries = append(entries, row{name: name, shift: s})
	}

	sort.Slice(entries, func(i, j int) bool {
		if c := entries[i].shift.Date.Compare(entries[j].shift.Date); c != 0 {
			return c < 0
		}
		return entries[i].name < entries[j].name
	})

	rows := make([][]string, len(entries))
	for i, r := range entries {
		rows[i] = []string{
			r.name,
			r.shift.Date.String(),
			r.shift.Date.Weekday().String(),
			r.shift.StartTime.String(),
			r.shift.EndTime.String(),
		}
	}

	return Table{
		Title:   fmt.Sprintf("Dienstplan %s %s", obj.Name, month),
		Headers: []string{"Employee", "Date", "Weekday", "Start", "End"},
		Rows:    rows,
	}, nil
}

func buildMatrix(month civildate.Month, employees []employeebus.Employee, shifts []shiftbus.Shift) Table {
	days := month.Days()

	headers := make([]string, 1+days)
	headers[0] = "Employee"
	for d := 1; d <= days; d++ {
		headers[d] = fmt.Sprintf("%d", d)
	}

	type cellKey struct {
		employee uuid.UUID
		day      int
	}
	byCell := make(map[cellKey][]shiftbus.Shift)
	for _, s := range shifts {
		if !month.Contains(s.Date) {
			continue
		}
		k := cellKey{employee: s.EmployeeID, day: s.Date.Day()}
		byCell[k] = append(byCell[k], s)
	}

	rows := make([][]string, len(employees))
	for i, emp := range employees {
		row := make([]string, 1+days)
		row[0] = emp.Name.String()

		for d := 1; d <= days; d++ {
			if s, ok := shiftbus.Winner(byCell[cellKey{employee: emp.ID, day: d}]); ok {
				row[d] = s.StartTime.String() + "-" + s.EndTime.String()
			}
		}

		rows[i] = row
	}

	return Table{
		Title:   fmt.Sprintf("Dienstplan %s", month),
		Headers: headers,
		Rows:    rows,
	}
}

// =============================================================================

func objectLabel(s shiftbus.Shift, objByID map[uuid.UUID]objectbus.WorkObject) string {
	if s.Snapshot.Location != "" {
		return s.Snapshot.Location
	}

	if s.ObjectID != nil {
		if obj, exists := objByID[*s.ObjectID]; exists {
			return obj.Name.String()
		}
	}

	return ""
}

func indexObjects(objects []objectbus.WorkObject) map[uuid.UUID]objectbus.WorkObject {
	m := make(map[uuid.UUID]objectbus.WorkObject, len(objects))
	for _, o := range objects {
		m[o.ID] = o
	}

	return m
}

func findEmployee(employees []employeebus.Employee, id uuid.UUID) (employeebus.Employee, bool) {
	for _, e := range employees {
		if e.ID == id {
			return e, true
		}
	}

	return employeebus.Employee{}, false
}

func findObject(objects []objectbus.WorkObject, id uuid.UUID) (objectbus.WorkObject, bool) {
	for _, o := range objects {
		if o.ID == id {
			return o, true
		}
	}

	return objectbus.WorkObject{}, false
}
