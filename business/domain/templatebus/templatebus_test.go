package templatebus

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/sdk/sqldb"
	"github.com/wachdienst/dienstplan/business/types/daytime"
	"github.com/wachdienst/dienstplan/business/types/name"
)

type fakeStore struct {
	tpls map[uuid.UUID]ShiftTemplate
}

func newFakeStore() *fakeStore {
	return &fakeStore{tpls: make(map[uuid.UUID]ShiftTemplate)}
}

func (s *fakeStore) NewWithTx(tx sqldb.CommitRollbacker) (Storer, error) {
	return s, nil
}

func (s *fakeStore) Create(_ context.Context, tpl ShiftTemplate) error {
	s.tpls[tpl.ID] = tpl
	return nil
}

func (s *fakeStore) Delete(_ context.Context, tenantID uuid.UUID, templateID uuid.UUID) error {
	delete(s.tpls, templateID)
	return nil
}

func (s *fakeStore) Query(_ context.Context, tenantID uuid.UUID) ([]ShiftTemplate, error) {
	var tpls []ShiftTemplate
	for _, tpl := range s.tpls {
		if tpl.TenantID == tenantID {
			tpls = append(tpls, tpl)
		}
	}

	sort.Slice(tpls, func(i, j int) bool {
		return tpls[i].Name.String() < tpls[j].Name.String()
	})

	return tpls, nil
}

func (s *fakeStore) QueryByID(_ context.Context, tenantID uuid.UUID, templateID uuid.UUID) (ShiftTemplate, error) {
	tpl, ok := s.tpls[templateID]
	if !ok || tpl.TenantID != tenantID {
		return ShiftTemplate{}, ErrNotFound
	}
	return tpl, nil
}

// =============================================================================

func TestCreateAndQuery(t *testing.T) {
	tenantID := uuid.New()
	core := NewCore(newFakeStore())
	ctx := context.Background()

	seed := []NewShiftTemplate{
		{TenantID: tenantID, Name: name.MustParse("Nachtschicht"), StartTime: daytime.MustParse("22:00"), EndTime: daytime.MustParse("06:00")},
		{TenantID: tenantID, Name: name.MustParse("Fruehschicht"), StartTime: daytime.MustParse("06:00"), EndTime: daytime.MustParse("14:00")},
		{TenantID: uuid.New(), Name: name.MustParse("Fremde Schicht"), StartTime: daytime.MustParse("08:00"), EndTime: daytime.MustParse("16:00")},
	}
	for _, nt := range seed {
		if _, err := core.Create(ctx, nt); err != nil {
			t.Fatalf("Create: unexpected error: %v", err)
		}
	}

	tpls, err := core.Query(ctx, tenantID)
	if err != nil {
		t.Fatalf("Query: unexpected error: %v", err)
	}

	if len(tpls) != 2 {
		t.Fatalf("templates = %d, want only the tenant's 2", len(tpls))
	}
	if tpls[0].Name.String() != "Fruehschicht" || tpls[1].Name.String() != "Nachtschicht" {
		t.Errorf("order = %s, %s; want name ascending", tpls[0].Name, tpls[1].Name)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	tenantID := uuid.New()
	core := NewCore(newFakeStore())
	ctx := context.Background()

	tpl, err := core.Create(ctx, NewShiftTemplate{TenantID: tenantID, Name: name.MustParse("Fruehschicht"), StartTime: daytime.MustParse("06:00"), EndTime: daytime.MustParse("14:00")})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if err := core.Delete(ctx, tenantID, tpl.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}
	if err := core.Delete(ctx, tenantID, tpl.ID); err != nil {
		t.Errorf("repeated Delete: got %v, want success", err)
	}

	if _, err := core.QueryByID(ctx, tenantID, tpl.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("QueryByID after delete: got %v, want ErrNotFound", err)
	}
}
