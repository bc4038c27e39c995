package schedulebus

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/domain/employeebus"
	"github.com/wachdienst/dienstplan/business/domain/objectbus"
	"github.com/wachdienst/dienstplan/business/domain/permbus"
	"github.com/wachdienst/dienstplan/business/domain/shiftbus"
	"github.com/wachdienst/dienstplan/business/domain/templatebus"
	"github.com/wachdienst/dienstplan/business/types/civildate"
	"github.com/wachdienst/dienstplan/business/types/daytime"
	"github.com/wachdienst/dienstplan/business/types/name"
	"github.com/wachdienst/dienstplan/business/types/role"
)

var (
	teamLead = permbus.Actor{ID: uuid.New(), Role: role.MustParse("team_lead")}

	empA = employeebus.Employee{ID: uuid.New(), Name: name.MustParse("Petra Schmidt")}
	empB = employeebus.Employee{ID: uuid.New(), Name: name.MustParse("Jonas Weber")}
)

func testShift(employeeID uuid.UUID, date string, start string, end string) shiftbus.Shift {
	return shiftbus.Shift{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       civildate.MustParse(date),
		StartTime:  daytime.MustParse(start),
		EndTime:    daytime.MustParse(end),
	}
}

func TestBuildCalendarGrid(t *testing.T) {
	tests := []struct {
		month string
		cells int
		first string
		last  string
	}{
		// February 2024 starts on a Thursday and has 29 days.
		{month: "2024-02", cells: 35, first: "2024-01-29", last: "2024-03-03"},
		// June 2025 starts on a Sunday, the worst case lead of 6.
		{month: "2025-06", cells: 42, first: "2025-05-26", last: "2025-07-06"},
		// March 2025 needs six weeks.
		{month: "2025-03", cells: 42, first: "2025-02-24", last: "2025-04-06"},
		// September 2025 starts on a Monday, no lead at all.
		{month: "2025-09", cells: 35, first: "2025-09-01", last: "2025-10-05"},
		// February 2021 is the rare perfect four week month.
		{month: "2021-02", cells: 28, first: "2021-02-01", last: "2021-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			month, err := civildate.ParseMonth(tt.month)
			if err != nil {
				t.Fatalf("ParseMonth: unexpected error: %v", err)
			}

			cal := BuildCalendar(month, civildate.MustParse("2020-01-01"), nil)

			if len(cal.Cells) != tt.cells {
				t.Fatalf("cells = %d, want %d", len(cal.Cells), tt.cells)
			}
			if got := cal.Cells[0].Date.String(); got != tt.first {
				t.Errorf("first cell = %s, want %s", got, tt.first)
			}
			if got := cal.Cells[len(cal.Cells)-1].Date.String(); got != tt.last {
				t.Errorf("last cell = %s, want %s", got, tt.last)
			}
			if cal.Cells[0].Date.Weekday() != time.Monday {
				t.Error("grid must start on a Monday")
			}
			if cal.Cells[len(cal.Cells)-1].Date.Weekday() != time.Sunday {
				t.Error("grid must end on a Sunday")
			}
		})
	}
}

func TestBuildCalendarCells(t *testing.T) {
	month, _ := civildate.ParseMonth("2024-02")
	today := civildate.MustParse("2024-02-15")

	shifts := []shiftbus.Shift{
		testShift(empA.ID, "2024-02-15", "06:00", "14:00"),
		testShift(empB.ID, "2024-02-15", "14:00", "22:00"),
		testShift(empA.ID, "2024-01-29", "06:00", "14:00"),
	}

	cal := BuildCalendar(month, today, shifts)

	var todayCell, padCell *Cell
	for i := range cal.Cells {
		switch cal.Cells[i].Date.String() {
		case "2024-02-15":
			todayCell = &cal.Cells[i]
		case "2024-01-29":
			padCell = &cal.Cells[i]
		}
	}

	if todayCell == nil || padCell == nil {
		t.Fatal("expected both cells in the grid")
	}

	if !todayCell.IsToday || !todayCell.InMonth {
		t.Errorf("today cell flags = %+v", todayCell)
	}
	if len(todayCell.Shifts) != 2 {
		t.Errorf("today cell shifts = %d, want 2", len(todayCell.Shifts))
	}

	if padCell.InMonth {
		t.Error("January padding cell must not be InMonth")
	}
	if len(padCell.Shifts) != 1 {
		t.Errorf("padding cell shifts = %d, want 1; padding days still show their shifts", len(padCell.Shifts))
	}
}

func TestBuildMatrix(t *testing.T) {
	month, _ := civildate.ParseMonth("2024-02")

	leadID := uuid.New()
	lead := leadID
	obj := objectbus.WorkObject{ID: uuid.New(), Name: name.MustParse("Lagerhalle Nord"), AssignedLeadID: &lead}

	assigned := testShift(empA.ID, "2024-02-10", "06:00", "14:00")
	assigned.ObjectID = &obj.ID
	outside := testShift(empA.ID, "2024-03-01", "06:00", "14:00")

	objLead := permbus.Actor{ID: leadID, Role: role.MustParse("obj_lead")}

	m := BuildMatrix(month, []employeebus.Employee{empA, empB}, []shiftbus.Shift{assigned, outside}, []objectbus.WorkObject{obj}, objLead)

	if len(m.Days) != 29 {
		t.Fatalf("days = %d, want 29", len(m.Days))
	}
	if len(m.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(m.Rows))
	}
	if m.Rows[0].Employee.ID != empA.ID || m.Rows[1].Employee.ID != empB.ID {
		t.Error("rows must keep the caller's employee order")
	}

	rowA := m.Rows[0]
	cell10 := rowA.Cells[9]
	if cell10.Shift == nil || cell10.Shift.ID != assigned.ID {
		t.Fatal("expected the assigned shift on Feb 10")
	}
	if !cell10.CanAssign {
		t.Error("object lead must assign on a cell holding their object")
	}

	// Empty cells carry no object, so the object lead may not assign.
	if cell11 := rowA.Cells[10]; cell11.Shift != nil || cell11.CanAssign {
		t.Errorf("Feb 11 cell = %+v, want empty and not assignable", cell11)
	}

	for _, cell := range rowA.Cells {
		if cell.Shift != nil && cell.Shift.ID == outside.ID {
			t.Error("March shift must not appear in the February matrix")
		}
	}
}

func TestBuildMatrixDuplicateCell(t *testing.T) {
	month, _ := civildate.ParseMonth("2024-02")

	older := testShift(empA.ID, "2024-02-10", "06:00", "14:00")
	older.CreatedAt = time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	newer := testShift(empA.ID, "2024-02-10", "14:00", "22:00")
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)

	m := BuildMatrix(month, []employeebus.Employee{empA}, []shiftbus.Shift{older, newer}, nil, teamLead)

	cell := m.Rows[0].Cells[9]
	if cell.Shift == nil || cell.Shift.ID != newer.ID {
		t.Error("duplicate cell must show the most recently created shift")
	}
}

func TestNewDraft(t *testing.T) {
	date := civildate.MustParse("2024-02-10")
	objs := []objectbus.WorkObject{
		{ID: uuid.New(), Name: name.MustParse("Lagerhalle Nord")},
		{ID: uuid.New(), Name: name.MustParse("Buerokomplex Mitte")},
	}

	d := NewDraft(empA.ID, date, objs)

	if d.StartTime.String() != "06:00" || d.EndTime.String() != "14:00" {
		t.Errorf("draft times = %s-%s, want 06:00-14:00", d.StartTime, d.EndTime)
	}
	if d.ObjectID == nil || *d.ObjectID != objs[0].ID {
		t.Error("draft must preselect the first object")
	}

	if d := NewDraft(empA.ID, date, nil); d.ObjectID != nil {
		t.Error("draft without objects must leave ObjectID nil")
	}
}

func TestApplyTemplate(t *testing.T) {
	date := civildate.MustParse("2024-02-10")
	objs := []objectbus.WorkObject{{ID: uuid.New(), Name: name.MustParse("Lagerhalle Nord")}}

	d := NewDraft(empA.ID, date, objs)

	tpl := templatebus.ShiftTemplate{
		Name:      name.MustParse("Nachtschicht"),
		StartTime: daytime.MustParse("22:00"),
		EndTime:   daytime.MustParse("06:00"),
	}

	got := ApplyTemplate(d, tpl)

	if got.StartTime.String() != "22:00" || got.EndTime.String() != "06:00" {
		t.Errorf("times = %s-%s, want the template times", got.StartTime, got.EndTime)
	}
	if got.ObjectID == nil || *got.ObjectID != objs[0].ID {
		t.Error("template must not touch the draft object")
	}
	if !got.Date.Equal(date) || got.EmployeeID != empA.ID {
		t.Error("template must not touch the draft cell")
	}
}

func TestMonthlyHours(t *testing.T) {
	month, _ := civildate.ParseMonth("2024-02")

	shifts := []shiftbus.Shift{
		testShift(empA.ID, "2024-02-01", "06:00", "14:00"),
		testShift(empA.ID, "2024-02-02", "22:00", "06:00"),
		testShift(empA.ID, "2024-02-03", "09:10", "12:30"),
		testShift(empA.ID, "2024-03-01", "06:00", "14:00"),
		testShift(empB.ID, "2024-02-01", "06:00", "14:00"),
	}

	// 8 + 8 + 3h20m, rounded to one decimal.
	if got := MonthlyHours(month, empA.ID, shifts); got != 19.3 {
		t.Errorf("MonthlyHours = %v, want 19.3", got)
	}

	if got := MonthlyHours(month, uuid.New(), shifts); got != 0 {
		t.Errorf("MonthlyHours for unknown employee = %v, want 0", got)
	}
}

func TestCalendarEqual(t *testing.T) {
	month, _ := civildate.ParseMonth("2024-02")
	today := civildate.MustParse("2024-02-15")

	a := testShift(empA.ID, "2024-02-15", "06:00", "14:00")
	b := testShift(empB.ID, "2024-02-15", "14:00", "22:00")

	cal1 := BuildCalendar(month, today, []shiftbus.Shift{a, b})
	cal2 := BuildCalendar(month, today, []shiftbus.Shift{b, a})

	if !cal1.Equal(cal2) {
		t.Error("shift order inside a cell must not break equality")
	}

	changed := a
	changed.StartTime = daytime.MustParse("07:00")
	cal3 := BuildCalendar(month, today, []shiftbus.Shift{changed, b})

	if cal1.Equal(cal3) {
		t.Error("a changed start time must break equality")
	}

	cal4 := BuildCalendar(month, civildate.MustParse("2024-02-16"), []shiftbus.Shift{a, b})
	if cal1.Equal(cal4) {
		t.Error("a moved today marker must break equality")
	}
}

func TestMatrixEqual(t *testing.T) {
	month, _ := civildate.ParseMonth("2024-02")

	a := testShift(empA.ID, "2024-02-10", "06:00", "14:00")

	m1 := BuildMatrix(month, []employeebus.Employee{empA, empB}, []shiftbus.Shift{a}, nil, teamLead)
	m2 := BuildMatrix(month, []employeebus.Employee{empA, empB}, []shiftbus.Shift{a}, nil, teamLead)

	if !m1.Equal(m2) {
		t.Error("identical inputs must produce equal matrices")
	}

	moved := a
	moved.Date = civildate.MustParse("2024-02-11")
	m3 := BuildMatrix(month, []employeebus.Employee{empA, empB}, []shiftbus.Shift{moved}, nil, teamLead)

	if m1.Equal(m3) {
		t.Error("a moved shift must break equality")
	}

	m4 := BuildMatrix(month, []employeebus.Employee{empB, empA}, []shiftbus.Shift{a}, nil, teamLead)
	if m1.Equal(m4) {
		t.Error("a changed row order must break equality")
	}
}
