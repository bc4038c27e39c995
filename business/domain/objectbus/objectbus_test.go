package objectbus

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/domain/permbus"
	"github.com/wachdienst/dienstplan/business/sdk/order"
	"github.com/wachdienst/dienstplan/business/sdk/page"
	"github.com/wachdienst/dienstplan/business/sdk/sqldb"
	"github.com/wachdienst/dienstplan/business/types/name"
	"github.com/wachdienst/dienstplan/business/types/role"
)

type fakeStore struct {
	objs map[uuid.UUID]WorkObject
}

func newFakeStore() *fakeStore {
	return &fakeStore{objs: make(map[uuid.UUID]WorkObject)}
}

func (s *fakeStore) NewWithTx(tx sqldb.CommitRollbacker) (Storer, error) {
	return s, nil
}

func (s *fakeStore) Create(_ context.Context, obj WorkObject) error {
	s.objs[obj.ID] = obj
	return nil
}

func (s *fakeStore) Update(_ context.Context, obj WorkObject) error {
	s.objs[obj.ID] = obj
	return nil
}

func (s *fakeStore) Delete(_ context.Context, tenantID uuid.UUID, objectID uuid.UUID) error {
	delete(s.objs, objectID)
	return nil
}

func (s *fakeStore) Query(_ context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]WorkObject, error) {
	var objs []WorkObject
	for _, obj := range s.objs {
		if filter.TenantID != nil && obj.TenantID != *filter.TenantID {
			continue
		}
		if filter.AssignedLeadID != nil {
			if obj.AssignedLeadID == nil || *obj.AssignedLeadID != *filter.AssignedLeadID {
				continue
			}
		}
		objs = append(objs, obj)
	}

	sort.Slice(objs, func(i, j int) bool {
		return objs[i].Name.String() < objs[j].Name.String()
	})

	return objs, nil
}

func (s *fakeStore) Count(_ context.Context, filter QueryFilter) (int, error) {
	objs, _ := s.Query(context.Background(), filter, DefaultOrderBy, page.MustParse("1", "100"))
	return len(objs), nil
}

func (s *fakeStore) QueryByID(_ context.Context, tenantID uuid.UUID, objectID uuid.UUID) (WorkObject, error) {
	obj, ok := s.objs[objectID]
	if !ok || obj.TenantID != tenantID {
		return WorkObject{}, ErrNotFound
	}
	return obj, nil
}

// =============================================================================

func TestQueryForActor(t *testing.T) {
	tenantID := uuid.New()
	leadID := uuid.New()
	otherLeadID := uuid.New()

	core := NewCore(newFakeStore())
	ctx := context.Background()

	mine := leadID
	foreign := otherLeadID
	seed := []NewWorkObject{
		{TenantID: tenantID, Name: name.MustParse("Lagerhalle Nord"), AssignedLeadID: &mine},
		{TenantID: tenantID, Name: name.MustParse("Buerokomplex Mitte"), AssignedLeadID: &foreign},
		{TenantID: tenantID, Name: name.MustParse("Parkhaus Sued")},
	}
	for _, no := range seed {
		if _, err := core.Create(ctx, no); err != nil {
			t.Fatalf("Create: unexpected error: %v", err)
		}
	}

	pg := page.MustParse("1", "100")

	tests := []struct {
		name  string
		actor permbus.Actor
		want  int
	}{
		{name: "object lead sees only their objects", actor: permbus.Actor{ID: leadID, Role: role.MustParse("obj_lead")}, want: 1},
		{name: "team lead sees everything", actor: permbus.Actor{ID: leadID, Role: role.MustParse("team_lead")}, want: 3},
		{name: "worker sees everything", actor: permbus.Actor{ID: uuid.New(), Role: role.MustParse("worker")}, want: 3},
		{name: "owner sees everything", actor: permbus.Actor{ID: leadID, Owner: true}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objs, err := core.QueryForActor(ctx, tenantID, tt.actor, DefaultOrderBy, pg)
			if err != nil {
				t.Fatalf("QueryForActor: unexpected error: %v", err)
			}
			if len(objs) != tt.want {
				t.Errorf("objects = %d, want %d", len(objs), tt.want)
			}
		})
	}
}

func TestUpdateClearLead(t *testing.T) {
	tenantID := uuid.New()
	leadID := uuid.New()

	core := NewCore(newFakeStore())
	ctx := context.Background()

	obj, err := core.Create(ctx, NewWorkObject{TenantID: tenantID, Name: name.MustParse("Lagerhalle Nord"), AssignedLeadID: &leadID})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	none := uuid.Nil
	updated, err := core.Update(ctx, obj, UpdateWorkObject{AssignedLeadID: &none})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	if updated.AssignedLeadID != nil {
		t.Error("expected the lead assignment cleared")
	}

	newLead := uuid.New()
	updated, err = core.Update(ctx, updated, UpdateWorkObject{AssignedLeadID: &newLead})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	if updated.AssignedLeadID == nil || *updated.AssignedLeadID != newLead {
		t.Error("expected the new lead assigned")
	}
}

func TestDeleteIdempotent(t *testing.T) {
	tenantID := uuid.New()

	core := NewCore(newFakeStore())
	ctx := context.Background()

	obj, err := core.Create(ctx, NewWorkObject{TenantID: tenantID, Name: name.MustParse("Lagerhalle Nord")})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if err := core.Delete(ctx, tenantID, obj.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}
	if err := core.Delete(ctx, tenantID, obj.ID); err != nil {
		t.Errorf("repeated Delete: got %v, want success", err)
	}
}
