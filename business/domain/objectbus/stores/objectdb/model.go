package objectdb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/domain/objectbus"
	"github.com/wachdienst/dienstplan/business/types/name"
)

type workObjectDB struct {
	ID             uuid.UUID  `db:"object_id"`
	TenantID       uuid.UUID  `db:"tenant_id"`
	Name           string     `db:"name"`
	Address        string     `db:"address"`
	Client         string     `db:"client"`
	Uniform        string     `db:"uniform"`
	Notes          string     `db:"notes"`
	AssignedLeadID *uuid.UUID `db:"assigned_lead_id"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

func toDBWorkObject(bus objectbus.WorkObject) workObjectDB {
	return workObjectDB{
		ID:             bus.ID,
		TenantID:       bus.TenantID,
		Name:           bus.Name.String(),
		Address:        bus.Address,
		Client:         bus.Client,
		Uniform:        bus.Uniform,
		Notes:          bus.Notes,
		AssignedLeadID: bus.AssignedLeadID,
		CreatedAt:      bus.CreatedAt.UTC(),
		UpdatedAt:      bus.UpdatedAt.UTC(),
	}
}

func toBusWorkObject(db workObjectDB) (objectbus.WorkObject, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return objectbus.WorkObject{}, fmt.Errorf("parse name: %w", err)
	}

	bus := objectbus.WorkObject{
		ID:             db.ID,
		TenantID:       db.TenantID,
		Name:           nme,
		Address:        db.Address,
		Client:         db.Client,
		Uniform:        db.Uniform,
		Notes:          db.Notes,
		AssignedLeadID: db.AssignedLeadID,
		CreatedAt:      db.CreatedAt.In(time.Local),
		UpdatedAt:      db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusWorkObjects(dbs []workObjectDB) ([]objectbus.WorkObject, error) {
	bus := make([]objectbus.WorkObject, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusWorkObject(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
