package templatedb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/domain/templatebus"
	"github.com/wachdienst/dienstplan/business/types/daytime"
	"github.com/wachdienst/dienstplan/business/types/name"
)

type shiftTemplateDB struct {
	ID        uuid.UUID `db:"template_id"`
	TenantID  uuid.UUID `db:"tenant_id"`
	Name      string    `db:"name"`
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`
	CreatedAt time.Time `db:"created_at"`
}

func toDBShiftTemplate(bus templatebus.ShiftTemplate) shiftTemplateDB {
	return shiftTemplateDB{
		ID:        bus.ID,
		TenantID:  bus.TenantID,
		Name:      bus.Name.String(),
		StartTime: bus.StartTime.String(),
		EndTime:   bus.EndTime.String(),
		CreatedAt: bus.CreatedAt.UTC(),
	}
}

func toBusShiftTemplate(db shiftTemplateDB) (templatebus.ShiftTemplate, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return templatebus.ShiftTemplate{}, fmt.Errorf("parse name: %w", err)
	}

	start, err := daytime.Parse(db.StartTime)
	if err != nil {
		return templatebus.ShiftTemplate{}, fmt.Errorf("parse start time: %w", err)
	}

	end, err := daytime.Parse(db.EndTime)
	if err != nil {
		return templatebus.ShiftTemplate{}, fmt.Errorf("parse end time: %w", err)
	}

	bus := templatebus.ShiftTemplate{
		ID:        db.ID,
		TenantID:  db.TenantID,
		Name:      nme,
		StartTime: start,
		EndTime:   end,
		CreatedAt: db.CreatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusShiftTemplates(dbs []shiftTemplateDB) ([]templatebus.ShiftTemplate, error) {
	bus := make([]templatebus.ShiftTemplate, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusShiftTemplate(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
