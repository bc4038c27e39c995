package reportbus

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/domain/employeebus"
	"github.com/wachdienst/dienstplan/business/domain/objectbus"
	"github.com/wachdienst/dienstplan/business/domain/permbus"
	"github.com/wachdienst/dienstplan/business/domain/shiftbus"
	"github.com/wachdienst/dienstplan/business/types/civildate"
	"github.com/wachdienst/dienstplan/business/types/daytime"
	"github.com/wachdienst/dienstplan/business/types/name"
	"github.com/wachdienst/dienstplan/business/types/role"
)

var (
	teamLead = permbus.Actor{ID: uuid.New(), Role: role.MustParse("team_lead")}

	empA = employeebus.Employee{ID: uuid.New(), Name: name.MustParse("Petra Schmidt")}
	empB = employeebus.Employee{ID: uuid.New(), Name: name.MustParse("Jonas Weber")}

	obj = objectbus.WorkObject{ID: uuid.New(), Name: name.MustParse("Lagerhalle Nord"), Address: "Industriestrasse 44"}
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

func testMonth(t *testing.T) civildate.Month {
	t.Helper()

	month, err := civildate.ParseMonth("2024-02")
	if err != nil {
		t.Fatalf("ParseMonth: unexpected error: %v", err)
	}

	return month
}

func TestParseMode(t *testing.T) {
	for _, value := range []string{"by_employee", "by_object", "matrix"} {
		mode, err := ParseMode(value)
		if err != nil {
			t.Errorf("ParseMode(%q): unexpected error: %v", value, err)
		}
		if mode.String() != value {
			t.Errorf("ParseMode(%q).String() = %q", value, mode.String())
		}
	}

	if _, err := ParseMode("weekly"); err == nil {
		t.Error("ParseMode(weekly): expected error")
	}
}

func TestBuildByEmployee(t *testing.T) {
	later := testShift(empA.ID, "2024-02-20", "14:00", "22:00")
	later.ObjectID = &obj.ID

	earlier := testShift(empA.ID, "2024-02-05", "06:00", "14:00")
	earlier.Snapshot = shiftbus.Snapshot{Location: "Lagerhalle Nord", Address: "Industriestrasse 44"}

	shifts := []shiftbus.Shift{
		later,
		earlier,
		testShift(empA.ID, "2024-03-01", "06:00", "14:00"),
		testShift(empB.ID, "2024-02-05", "06:00", "14:00"),
	}

	table, err := Build(ModeByEmployee, empA.ID, testMonth(t), []employeebus.Employee{empA, empB}, []objectbus.WorkObject{obj}, shifts, teamLead)
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}

	if table.Title != "Dienstplan Petra Schmidt 2024-02" {
		t.Errorf("Title = %q", table.Title)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}

	first := table.Rows[0]
	if first[0] != "2024-02-05" || first[1] != "Monday" || first[2] != "06:00" || first[3] != "14:00" {
		t.Errorf("first row = %v", first)
	}
	if first[4] != "Lagerhalle Nord" || first[5] != "Industriestrasse 44" {
		t.Errorf("first row object columns = %v, want the snapshot values", first[4:])
	}

	// The second shift has an empty snapshot, so the live object name
	// fills in.
	second := table.Rows[1]
	if second[0] != "2024-02-20" || second[4] != "Lagerhalle Nord" {
		t.Errorf("second row = %v", second)
	}
}

func TestBuildByEmployeeUnknownTarget(t *testing.T) {
	_, err := Build(ModeByEmployee, uuid.New(), testMonth(t), []employeebus.Employee{empA}, nil, nil, teamLead)
	if !errors.Is(err, ErrTargetNotFound) {
		t.Errorf("Build: got %v, want ErrTargetNotFound", err)
	}
}

func TestBuildByObject(t *testing.T) {
	sameDayB := testShift(empB.ID, "2024-02-05", "14:00", "22:00")
	sameDayB.ObjectID = &obj.ID
	sameDayA := testShift(empA.ID, "2024-02-05", "06:00", "14:00")
	sameDayA.ObjectID = &obj.ID
	laterA := testShift(empA.ID, "2024-02-12", "06:00", "14:00")
	laterA.ObjectID = &obj.ID

	shifts := []shiftbus.Shift{
		laterA,
		sameDayB,
		sameDayA,
		testShift(empA.ID, "2024-02-06", "06:00", "14:00"),
	}

	table, err := Build(ModeByObject, obj.ID, testMonth(t), []employeebus.Employee{empA, empB}, []objectbus.WorkObject{obj}, shifts, teamLead)
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}

	if table.Title != "Dienstplan Lagerhalle Nord 2024-02" {
		t.Errorf("Title = %q", table.Title)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("rows = %d, want 3; only the object's shifts belong", len(table.Rows))
	}

	// Date ascending, employee name breaking the same-day tie.
	if table.Rows[0][0] != "Jonas Weber" || table.Rows[1][0] != "Petra Schmidt" {
		t.Errorf("same day order = %q, %q", table.Rows[0][0], table.Rows[1][0])
	}
	if table.Rows[2][1] != "2024-02-12" {
		t.Errorf("last row date = %q", table.Rows[2][1])
	}
}

func TestBuildByObjectUnknownTarget(t *testing.T) {
	_, err := Build(ModeByObject, uuid.New(), testMonth(t), nil, []objectbus.WorkObject{obj}, nil, teamLead)
	if !errors.Is(err, ErrTargetNotFound) {
		t.Errorf("Build: got %v, want ErrTargetNotFound", err)
	}
}

func TestBuildMatrix(t *testing.T) {
	shifts := []shiftbus.Shift{
		testShift(empA.ID, "2024-02-05", "06:00", "14:00"),
		testShift(empB.ID, "2024-02-29", "22:00", "06:00"),
	}

	table, err := Build(ModeMatrix, uuid.Nil, testMonth(t), []employeebus.Employee{empA, empB}, nil, shifts, teamLead)
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}

	if table.Title != "Dienstplan 2024-02" {
		t.Errorf("Title = %q", table.Title)
	}
	if len(table.Headers) != 30 {
		t.Fatalf("headers = %d, want employee column plus 29 days", len(table.Headers))
	}
	if table.Headers[1] != "1" || table.Headers[29] != "29" {
		t.Errorf("day headers = %q ... %q", table.Headers[1], table.Headers[29])
	}

	rowA := table.Rows[0]
	if rowA[0] != "Petra Schmidt" {
		t.Errorf("row label = %q", rowA[0])
	}
	if rowA[5] != "06:00-14:00" {
		t.Errorf("day 5 cell = %q, want 06:00-14:00", rowA[5])
	}
	if rowA[6] != "" {
		t.Errorf("empty day cell = %q, want blank", rowA[6])
	}

	if got := table.Rows[1][29]; got != "22:00-06:00" {
		t.Errorf("leap day cell = %q, want 22:00-06:00", got)
	}
}

func TestBuildWorkerForced(t *testing.T) {
	worker := permbus.Actor{ID: empB.ID, Role: role.MustParse("worker")}

	shifts := []shiftbus.Shift{
		testShift(empA.ID, "2024-02-05", "06:00", "14:00"),
		testShift(empB.ID, "2024-02-06", "14:00", "22:00"),
	}

	// The worker asks for the full matrix and gets their own by-employee
	// export instead.
	table, err := Build(ModeMatrix, uuid.Nil, testMonth(t), []employeebus.Employee{empA, empB}, nil, shifts, worker)
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}

	if table.Title != "Dienstplan Jonas Weber 2024-02" {
		t.Errorf("Title = %q, want the worker's own export", table.Title)
	}
	if len(table.Rows) != 1 || table.Rows[0][0] != "2024-02-06" {
		t.Errorf("rows = %v, want only the worker's shift", table.Rows)
	}
}

func TestBuildObjLeadKeepsMode(t *testing.T) {
	objLead := permbus.Actor{ID: uuid.New(), Role: role.MustParse("obj_lead")}

	table, err := Build(ModeMatrix, uuid.Nil, testMonth(t), []employeebus.Employee{empA}, nil, nil, objLead)
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}

	if table.Title != "Dienstplan 2024-02" {
		t.Errorf("Title = %q, want the requested matrix", table.Title)
	}
}
