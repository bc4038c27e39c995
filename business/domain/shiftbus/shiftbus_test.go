package shiftbus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/domain/objectbus"
	"github.com/wachdienst/dienstplan/business/domain/permbus"
	"github.com/wachdienst/dienstplan/business/sdk/order"
	"github.com/wachdienst/dienstplan/business/sdk/page"
	"github.com/wachdienst/dienstplan/business/sdk/sqldb"
	"github.com/wachdienst/dienstplan/business/types/civildate"
	"github.com/wachdienst/dienstplan/business/types/daytime"
	"github.com/wachdienst/dienstplan/business/types/name"
	"github.com/wachdienst/dienstplan/business/types/role"
)

type fakeShiftStore struct {
	shifts map[uuid.UUID]Shift
}

func newFakeShiftStore() *fakeShiftStore {
	return &fakeShiftStore{shifts: make(map[uuid.UUID]Shift)}
}

func (s *fakeShiftStore) NewWithTx(tx sqldb.CommitRollbacker) (Storer, error) {
	return s, nil
}

func (s *fakeShiftStore) Create(_ context.Context, shift Shift) error {
	for _, existing := range s.shifts {
		if existing.TenantID == shift.TenantID && existing.EmployeeID == shift.EmployeeID && existing.Date.Equal(shift.Date) {
			return sqldb.ErrDBDuplicatedEntry{Column: "shifts_cell_key"}
		}
	}
	s.shifts[shift.ID] = shift
	return nil
}

func (s *fakeShiftStore) Update(_ context.Context, shift Shift) error {
	s.shifts[shift.ID] = shift
	return nil
}

func (s *fakeShiftStore) Delete(_ context.Context, tenantID uuid.UUID, shiftID uuid.UUID) error {
	delete(s.shifts, shiftID)
	return nil
}

func (s *fakeShiftStore) Query(_ context.Context, tenantID uuid.UUID, from civildate.Date, to civildate.Date) ([]Shift, error) {
	var shifts []Shift
	for _, shift := range s.shifts {
		if shift.TenantID != tenantID {
			continue
		}
		if shift.Date.Compare(from) >= 0 && shift.Date.Compare(to) <= 0 {
			shifts = append(shifts, shift)
		}
	}
	return shifts, nil
}

func (s *fakeShiftStore) QueryByID(_ context.Context, tenantID uuid.UUID, shiftID uuid.UUID) (Shift, error) {
	shift, ok := s.shifts[shiftID]
	if !ok || shift.TenantID != tenantID {
		return Shift{}, ErrNotFound
	}
	return shift, nil
}

func (s *fakeShiftStore) QueryByCell(_ context.Context, tenantID uuid.UUID, employeeID uuid.UUID, date civildate.Date) ([]Shift, error) {
	var shifts []Shift
	for _, shift := range s.shifts {
		if shift.TenantID == tenantID && shift.EmployeeID == employeeID && shift.Date.Equal(date) {
			shifts = append(shifts, shift)
		}
	}
	return shifts, nil
}

// inject places a shift directly into the store, bypassing the unique
// cell check, the way rows written before the index could.
func (s *fakeShiftStore) inject(shift Shift) {
	s.shifts[shift.ID] = shift
}

type fakeObjectStore struct {
	objs map[uuid.UUID]objectbus.WorkObject
}

func newFakeObjectStore(objs ...objectbus.WorkObject) *fakeObjectStore {
	s := &fakeObjectStore{objs: make(map[uuid.UUID]objectbus.WorkObject)}
	for _, obj := range objs {
		s.objs[obj.ID] = obj
	}
	return s
}

func (s *fakeObjectStore) NewWithTx(tx sqldb.CommitRollbacker) (objectbus.Storer, error) {
	return s, nil
}

func (s *fakeObjectStore) Create(_ context.Context, obj objectbus.WorkObject) error {
	s.objs[obj.ID] = obj
	return nil
}

func (s *fakeObjectStore) Update(_ context.Context, obj objectbus.WorkObject) error {
	s.objs[obj.ID] = obj
	return nil
}

func (s *fakeObjectStore) Delete(_ context.Context, tenantID uuid.UUID, objectID uuid.UUID) error {
	delete(s.objs, objectID)
	return nil
}

func (s *fakeObjectStore) Query(_ context.Context, filter objectbus.QueryFilter, orderBy order.By, page page.Page) ([]objectbus.WorkObject, error) {
	var objs []objectbus.WorkObject
	for _, obj := range s.objs {
		objs = append(objs, obj)
	}
	return objs, nil
}

func (s *fakeObjectStore) Count(_ context.Context, filter objectbus.QueryFilter) (int, error) {
	return len(s.objs), nil
}

func (s *fakeObjectStore) QueryByID(_ context.Context, tenantID uuid.UUID, objectID uuid.UUID) (objectbus.WorkObject, error) {
	obj, ok := s.objs[objectID]
	if !ok || obj.TenantID != tenantID {
		return objectbus.WorkObject{}, objectbus.ErrNotFound
	}
	return obj, nil
}

// =============================================================================

var (
	tenantID = uuid.New()
	leadID   = uuid.New()
	workerID = uuid.New()

	teamLead = permbus.Actor{ID: uuid.New(), Role: role.MustParse("team_lead")}
	objLead  = permbus.Actor{ID: leadID, Role: role.MustParse("obj_lead")}
	worker   = permbus.Actor{ID: workerID, Role: role.MustParse("worker")}
)

func testObject() objectbus.WorkObject {
	lead := leadID
	return objectbus.WorkObject{
		ID:             uuid.New(),
		TenantID:       tenantID,
		Name:           name.MustParse("Lagerhalle Nord"),
		Address:        "Industriestrasse 44",
		Client:         "Logistik Nord GmbH",
		Uniform:        "Schwarz",
		Notes:          "Tor 3",
		AssignedLeadID: &lead,
	}
}

func newTestCore(objs ...objectbus.WorkObject) (*Core, *fakeShiftStore) {
	store := newFakeShiftStore()
	core := NewCore(store, objectbus.NewCore(newFakeObjectStore(objs...)))
	return core, store
}

func testNewShift(obj *objectbus.WorkObject) NewShift {
	ns := NewShift{
		TenantID:   tenantID,
		EmployeeID: workerID,
		Date:       civildate.MustParse("2024-02-15"),
		StartTime:  daytime.MustParse("06:00"),
		EndTime:    daytime.MustParse("14:00"),
	}
	if obj != nil {
		id := obj.ID
		ns.ObjectID = &id
	}
	return ns
}

func TestCreateSnapshot(t *testing.T) {
	obj := testObject()
	core, _ := newTestCore(obj)
	ctx := context.Background()

	shift, err := core.Create(ctx, teamLead, testNewShift(&obj))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	want := Snapshot{
		Location: "Lagerhalle Nord",
		Address:  "Industriestrasse 44",
		Client:   "Logistik Nord GmbH",
		Uniform:  "Schwarz",
		Notes:    "Tor 3",
	}
	if shift.Snapshot != want {
		t.Errorf("Snapshot = %+v, want %+v", shift.Snapshot, want)
	}
	if shift.ObjectID == nil || *shift.ObjectID != obj.ID {
		t.Error("expected ObjectID to reference the work object")
	}
}

func TestSnapshotSurvivesObjectEdit(t *testing.T) {
	obj := testObject()
	objStore := newFakeObjectStore(obj)
	objectBus := objectbus.NewCore(objStore)
	store := newFakeShiftStore()
	core := NewCore(store, objectBus)
	ctx := context.Background()

	shift, err := core.Create(ctx, teamLead, testNewShift(&obj))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	newName := name.MustParse("Umbenannt")
	if _, err := objectBus.Update(ctx, obj, objectbus.UpdateWorkObject{Name: &newName}); err != nil {
		t.Fatalf("object Update: unexpected error: %v", err)
	}

	stored, err := core.QueryByID(ctx, tenantID, shift.ID)
	if err != nil {
		t.Fatalf("QueryByID: unexpected error: %v", err)
	}
	if stored.Snapshot.Location != "Lagerhalle Nord" {
		t.Errorf("Snapshot.Location = %q, want the name at save time", stored.Snapshot.Location)
	}
}

func TestCreateFreeTextLocation(t *testing.T) {
	core, _ := newTestCore()
	ctx := context.Background()

	ns := testNewShift(nil)
	ns.Location = "Sondereinsatz Messe"

	shift, err := core.Create(ctx, teamLead, ns)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if shift.ObjectID != nil {
		t.Error("expected no ObjectID on a free text shift")
	}
	if shift.Snapshot.Location != "Sondereinsatz Messe" {
		t.Errorf("Snapshot.Location = %q, want the free text", shift.Snapshot.Location)
	}
	if shift.Snapshot.Address != "" {
		t.Error("expected empty snapshot details on a free text shift")
	}
}

func TestCreateOccupiedCell(t *testing.T) {
	obj := testObject()
	core, _ := newTestCore(obj)
	ctx := context.Background()

	if _, err := core.Create(ctx, teamLead, testNewShift(&obj)); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if _, err := core.Create(ctx, teamLead, testNewShift(&obj)); !errors.Is(err, ErrShiftExists) {
		t.Errorf("Create on occupied cell: got %v, want ErrShiftExists", err)
	}
}

func TestCreateUnknownObject(t *testing.T) {
	core, _ := newTestCore()
	ctx := context.Background()

	unknown := uuid.New()
	ns := testNewShift(nil)
	ns.ObjectID = &unknown

	if _, err := core.Create(ctx, teamLead, ns); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Create with unknown object: got %v, want ErrObjectNotFound", err)
	}
}

func TestCreatePermissions(t *testing.T) {
	obj := testObject()

	otherLead := uuid.New()
	foreign := testObject()
	foreign.AssignedLeadID = &otherLead

	tests := []struct {
		name    string
		actor   permbus.Actor
		obj     *objectbus.WorkObject
		wantErr error
	}{
		{name: "team lead on any object", actor: teamLead, obj: &foreign},
		{name: "object lead on own object", actor: objLead, obj: &obj},
		{name: "object lead on foreign object", actor: objLead, obj: &foreign, wantErr: ErrPermissionDenied},
		{name: "object lead on objectless cell", actor: objLead, wantErr: ErrPermissionDenied},
		{name: "worker never assigns", actor: worker, obj: &obj, wantErr: ErrPermissionDenied},
		{name: "owner on any object", actor: permbus.Actor{ID: uuid.New(), Owner: true}, obj: &foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, _ := newTestCore(obj, foreign)

			_, err := core.Create(context.Background(), tt.actor, testNewShift(tt.obj))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateGateUsesCurrentObject(t *testing.T) {
	// The shift starts on the lead's object, then the object is handed to
	// another lead. The original lead must lose the cell.
	obj := testObject()
	objStore := newFakeObjectStore(obj)
	objectBus := objectbus.NewCore(objStore)
	store := newFakeShiftStore()
	core := NewCore(store, objectBus)
	ctx := context.Background()

	shift, err := core.Create(ctx, objLead, testNewShift(&obj))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	otherLead := uuid.New()
	if _, err := objectBus.Update(ctx, obj, objectbus.UpdateWorkObject{AssignedLeadID: &otherLead}); err != nil {
		t.Fatalf("object Update: unexpected error: %v", err)
	}

	start := daytime.MustParse("08:00")
	if _, err := core.Update(ctx, objLead, shift, UpdateShift{StartTime: &start}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("Update after reassignment: got %v, want ErrPermissionDenied", err)
	}
}

func TestUpdateDetachObject(t *testing.T) {
	obj := testObject()
	core, _ := newTestCore(obj)
	ctx := context.Background()

	shift, err := core.Create(ctx, teamLead, testNewShift(&obj))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	detach := uuid.Nil
	updated, err := core.Update(ctx, teamLead, shift, UpdateShift{ObjectID: &detach})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	if updated.ObjectID != nil {
		t.Error("expected ObjectID cleared")
	}
	if updated.Snapshot.Location != "Lagerhalle Nord" {
		t.Errorf("Snapshot.Location = %q, want the prior location kept as free text", updated.Snapshot.Location)
	}
	if updated.Snapshot.Address != "" {
		t.Error("expected object details cleared on detach")
	}
}

func TestUpdateTimes(t *testing.T) {
	obj := testObject()
	core, _ := newTestCore(obj)
	ctx := context.Background()

	shift, err := core.Create(ctx, teamLead, testNewShift(&obj))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	start := daytime.MustParse("22:00")
	end := daytime.MustParse("06:00")
	updated, err := core.Update(ctx, teamLead, shift, UpdateShift{StartTime: &start, EndTime: &end})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	if updated.Hours() != 8 {
		t.Errorf("Hours() = %v, want 8 for the overnight shift", updated.Hours())
	}
}

func TestDeleteIdempotent(t *testing.T) {
	obj := testObject()
	core, _ := newTestCore(obj)
	ctx := context.Background()

	shift, err := core.Create(ctx, teamLead, testNewShift(&obj))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if err := core.Delete(ctx, teamLead, tenantID, shift.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}
	if err := core.Delete(ctx, teamLead, tenantID, shift.ID); err != nil {
		t.Errorf("repeated Delete: got %v, want success", err)
	}
	if err := core.Delete(ctx, teamLead, tenantID, uuid.New()); err != nil {
		t.Errorf("Delete of unknown id: got %v, want success", err)
	}
}

func TestDeletePermission(t *testing.T) {
	obj := testObject()
	core, _ := newTestCore(obj)
	ctx := context.Background()

	shift, err := core.Create(ctx, teamLead, testNewShift(&obj))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if err := core.Delete(ctx, worker, tenantID, shift.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("Delete by worker: got %v, want ErrPermissionDenied", err)
	}
}

func TestWinner(t *testing.T) {
	older := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	a := Shift{ID: uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000000"), CreatedAt: older}
	b := Shift{ID: uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000000"), CreatedAt: newer}
	c := Shift{ID: uuid.MustParse("cccccccc-0000-0000-0000-000000000000"), CreatedAt: newer}

	if _, ok := Winner(nil); ok {
		t.Error("Winner(nil): expected no winner")
	}

	if got, _ := Winner([]Shift{a, b}); got.ID != b.ID {
		t.Errorf("Winner = %s, want the more recently created %s", got.ID, b.ID)
	}

	// Equal creation times fall back to the larger id.
	if got, _ := Winner([]Shift{b, c}); got.ID != c.ID {
		t.Errorf("Winner = %s, want the larger id %s", got.ID, c.ID)
	}
}

func TestQueryForCellDuplicates(t *testing.T) {
	core, store := newTestCore()
	ctx := context.Background()

	date := civildate.MustParse("2024-02-15")
	older := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	loser := Shift{ID: uuid.New(), TenantID: tenantID, EmployeeID: workerID, Date: date, CreatedAt: older}
	winner := Shift{ID: uuid.New(), TenantID: tenantID, EmployeeID: workerID, Date: date, CreatedAt: older.Add(time.Hour)}
	store.inject(loser)
	store.inject(winner)

	got, ok, err := core.QueryForCell(ctx, tenantID, workerID, date)
	if err != nil {
		t.Fatalf("QueryForCell: unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("QueryForCell: expected an occupied cell")
	}
	if got.ID != winner.ID {
		t.Errorf("QueryForCell = %s, want %s", got.ID, winner.ID)
	}

	_, ok, err = core.QueryForCell(ctx, tenantID, workerID, date.AddDays(1))
	if err != nil {
		t.Fatalf("QueryForCell: unexpected error: %v", err)
	}
	if ok {
		t.Error("QueryForCell on an empty cell: expected no shift")
	}
}
