package shiftdb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/domain/shiftbus"
	"github.com/wachdienst/dienstplan/business/types/civildate"
	"github.com/wachdienst/dienstplan/business/types/daytime"
)

type shiftDB struct {
	ID           uuid.UUID  `db:"shift_id"`
	TenantID     uuid.UUID  `db:"tenant_id"`
	EmployeeID   uuid.UUID  `db:"employee_id"`
	Date         time.Time  `db:"date"`
	StartTime    string     `db:"start_time"`
	EndTime      string     `db:"end_time"`
	ObjectID     *uuid.UUID `db:"object_id"`
	SnapLocation string     `db:"snap_location"`
	SnapAddress  string     `db:"snap_address"`
	SnapClient   string     `db:"snap_client"`
	SnapUniform  string     `db:"snap_uniform"`
	SnapNotes    string     `db:"snap_notes"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func toDBShift(bus shiftbus.Shift) shiftDB {
	return shiftDB{
		ID:           bus.ID,
		TenantID:     bus.TenantID,
		EmployeeID:   bus.EmployeeID,
		Date:         bus.Date.Time(),
		StartTime:    bus.StartTime.String(),
		EndTime:      bus.EndTime.String(),
		ObjectID:     bus.ObjectID,
		SnapLocation: bus.Snapshot.Location,
		SnapAddress:  bus.Snapshot.Address,
		SnapClient:   bus.Snapshot.Client,
		SnapUniform:  bus.Snapshot.Uniform,
		SnapNotes:    bus.Snapshot.Notes,
		CreatedAt:    bus.CreatedAt.UTC(),
		UpdatedAt:    bus.UpdatedAt.UTC(),
	}
}

func toBusShift(db shiftDB) (shiftbus.Shift, error) {
	start, err := daytime.Parse(db.StartTime)
	if err != nil {
		return shiftbus.Shift{}, fmt.Errorf("parse start time: %w", err)
	}

	end, err := daytime.Parse(db.EndTime)
	if err != nil {
		return shiftbus.Shift{}, fmt.Errorf("parse end time: %w", err)
	}

	bus := shiftbus.Shift{
		ID:         db.ID,
		TenantID:   db.TenantID,
		EmployeeID: db.EmployeeID,
		Date:       civildate.FromTime(db.Date),
		StartTime:  start,
		EndTime:    end,
		ObjectID:   db.ObjectID,
		Snapshot: shiftbus.Snapshot{
			Location: db.SnapLocation,
			Address:  db.SnapAddress,
			Client:   db.SnapClient,
			Uniform:  db.SnapUniform,
			Notes:    db.SnapNotes,
		},
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusShifts(dbs []shiftDB) ([]shiftbus.Shift, error) {
	bus := make([]shiftbus.Shift, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusShift(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
