// Package shiftbus provides business access to the shift store. A shift
// is one employee on one civil date; a cell holds at most one shift.
package shiftbus

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/domain/objectbus"
	"github.com/wachdienst/dienstplan/business/domain/permbus"
	"github.com/wachdienst/dienstplan/business/sdk/sqldb"
	"github.com/wachdienst/dienstplan/business/types/civildate"
	"github.com/wachdienst/dienstplan/foundation/otel"
)

var (
	ErrNotFound         = errors.New("shift not found")
	ErrShiftExists      = errors.New("employee already has a shift on this date")
	ErrPermissionDenied = errors.New("actor may not assign this cell")
	ErrObjectNotFound   = errors.New("work object not found")
)

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, shift Shift) error
	Update(ctx context.Context, shift Shift) error
	Delete(ctx context.Context, tenantID uuid.UUID, shiftID uuid.UUID) error
	Query(ctx context.Context, tenantID uuid.UUID, from civildate.Date, to civildate.Date) ([]Shift, error)
	QueryByID(ctx context.Context, tenantID uuid.UUID, shiftID uuid.UUID) (Shift, error)
	QueryByCell(ctx context.Context, tenantID uuid.UUID, employeeID uuid.UUID, date civildate.Date) ([]Shift, error)
}

type Core struct {
	storer    Storer
	objectBus *objectbus.Core
}

func NewCore(storer Storer, objectBus *objectbus.Core) *Core {
	return &Core{
		storer:    storer,
		objectBus: objectBus,
	}
}

func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	objectBus, err := c.objectBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer, objectBus), nil
}

// Create writes a new shift into an empty cell. The permission gate and
// the snapshot both use the work object as it exists right now. A cell
// that already holds a shift returns ErrShiftExists.
func (c *Core) Create(ctx context.Context, actor permbus.Actor, ns NewShift) (Shift, error) {
	ctx, span := otel.AddSpan(ctx, "business.shiftbus.create")
	defer span.End()

	obj, err := c.resolveObject(ctx, ns.TenantID, ns.ObjectID)
	if err != nil {
		return Shift{}, err
	}

	if err := c.gate(actor, ns.EmployeeID, obj); err != nil {
		return Shift{}, err
	}

	if _, occupied, err := c.QueryForCell(ctx, ns.TenantID, ns.EmployeeID, ns.Date); err != nil {
		return Shift{}, fmt.Errorf("querycell: %w", err)
	} else if occupied {
		return Shift{}, ErrShiftExists
	}

	now := time.Now()

	shift := Shift{
		ID:         uuid.New(),
		TenantID:   ns.TenantID,
		EmployeeID: ns.EmployeeID,
		Date:       ns.Date,
		StartTime:  ns.StartTime,
		EndTime:    ns.EndTime,
		Snapshot:   takeSnapshot(obj, ns.Location),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if obj != nil {
		id := obj.ID
		shift.ObjectID = &id
	}

	if err := c.storer.Create(ctx, shift); err != nil {
		// The unique cell index backstops the read-then-write race.
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return Shift{}, ErrShiftExists
		}
		return Shift{}, fmt.Errorf("create: %w", err)
	}

	return shift, nil
}

// Update rewrites an existing shift. The gate runs against the shift's
// current object before any field changes. Employee and date are fixed;
// moving a shift is a delete plus a create. Concurrent updates to the
// same cell are last write wins.
func (c *Core) Update(ctx context.Context, actor permbus.Actor, shift Shift, us UpdateShift) (Shift, error) {
	ctx, span := otel.AddSpan(ctx, "business.shiftbus.update")
	defer span.End()

	current, err := c.resolveObject(ctx, shift.TenantID, shift.ObjectID)
	if err != nil && !errors.Is(err, ErrObjectNotFound) {
		return Shift{}, err
	}

	if err := c.gate(actor, shift.EmployeeID, current); err != nil {
		return Shift{}, err
	}

	if us.StartTime != nil {
		shift.StartTime = *us.StartTime
	}

	if us.EndTime != nil {
		shift.EndTime = *us.EndTime
	}

	if us.ObjectID != nil {
		if *us.ObjectID == uuid.Nil {
			shift.ObjectID = nil
			loc := shift.Snapshot.Location
			if us.Location != nil {
				loc = *us.Location
			}
			shift.Snapshot = takeSnapshot(nil, loc)
		} else {
			obj, err := c.resolveObject(ctx, shift.TenantID, us.ObjectID)
			if err != nil {
				return Shift{}, err
			}
			if err := c.gate(actor, shift.EmployeeID, obj); err != nil {
				return Shift{}, err
			}
			id := obj.ID
			shift.ObjectID = &id
			shift.Snapshot = takeSnapshot(obj, "")
		}
	} else if us.Location != nil && shift.ObjectID == nil {
		shift.Snapshot = takeSnapshot(nil, *us.Location)
	}

	shift.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, shift); err != nil {
		return Shift{}, fmt.Errorf("update: %w", err)
	}

	return shift, nil
}

// Delete removes the shift after gating against its current object. A
// missing id is a success so retried deletes stay safe.
func (c *Core) Delete(ctx context.Context, actor permbus.Actor, tenantID uuid.UUID, shiftID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.shiftbus.delete")
	defer span.End()

	shift, err := c.storer.QueryByID(ctx, tenantID, shiftID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("querybyid: %w", err)
	}

	obj, err := c.resolveObject(ctx, tenantID, shift.ObjectID)
	if err != nil && !errors.Is(err, ErrObjectNotFound) {
		return err
	}

	if err := c.gate(actor, shift.EmployeeID, obj); err != nil {
		return err
	}

	if err := c.storer.Delete(ctx, tenantID, shiftID); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves the shifts in the inclusive civil date range.
func (c *Core) Query(ctx context.Context, tenantID uuid.UUID, from civildate.Date, to civildate.Date) ([]Shift, error) {
	ctx, span := otel.AddSpan(ctx, "business.shiftbus.query")
	defer span.End()

	shifts, err := c.storer.Query(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return shifts, nil
}

// QueryByID finds the shift by the specified ID.
func (c *Core) QueryByID(ctx context.Context, tenantID uuid.UUID, shiftID uuid.UUID) (Shift, error) {
	ctx, span := otel.AddSpan(ctx, "business.shiftbus.queryByID")
	defer span.End()

	shift, err := c.storer.QueryByID(ctx, tenantID, shiftID)
	if err != nil {
		return Shift{}, fmt.Errorf("query: shiftID[%s]: %w", shiftID, err)
	}

	return shift, nil
}

// QueryForCell returns the shift occupying the cell, if any. Data written
// before the unique cell index can hold duplicates; the most recently
// created shift wins, with the larger id breaking exact ties.
func (c *Core) QueryForCell(ctx context.Context, tenantID uuid.UUID, employeeID uuid.UUID, date civildate.Date) (Shift, bool, error) {
	ctx, span := otel.AddSpan(ctx, "business.shiftbus.queryForCell")
	defer span.End()

	shifts, err := c.storer.QueryByCell(ctx, tenantID, employeeID, date)
	if err != nil {
		return Shift{}, false, fmt.Errorf("querybycell: %w", err)
	}

	shift, ok := Winner(shifts)

	return shift, ok, nil
}

// Winner picks the shift that owns a cell out of a duplicate set.
func Winner(shifts []Shift) (Shift, bool) {
	if len(shifts) == 0 {
		return Shift{}, false
	}

	sort.Slice(shifts, func(i, j int) bool {
		if !shifts[i].CreatedAt.Equal(shifts[j].CreatedAt) {
			return shifts[i].CreatedAt.After(shifts[j].CreatedAt)
		}
		return shifts[i].ID.String() > shifts[j].ID.String()
	})

	return shifts[0], true
}

// =============================================================================

func (c *Core) resolveObject(ctx context.Context, tenantID uuid.UUID, objectID *uuid.UUID) (*objectbus.WorkObject, error) {
	if objectID == nil || *objectID == uuid.Nil {
		return nil, nil
	}

	obj, err := c.objectBus.QueryByID(ctx, tenantID, *objectID)
	if err != nil {
		if errors.Is(err, objectbus.ErrNotFound) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("querybyid: objectID[%s]: %w", *objectID, err)
	}

	return &obj, nil
}

func (c *Core) gate(actor permbus.Actor, employeeID uuid.UUID, obj *objectbus.WorkObject) error {
	target := permbus.Target{
		EmployeeID: employeeID,
	}

	if obj != nil {
		target.Object = objectbus.PermView(*obj)
	}

	if !permbus.Resolve(actor, target).CanAssign {
		return ErrPermissionDenied
	}

	return nil
}

func takeSnapshot(obj *objectbus.WorkObject, location string) Snapshot {
	if obj == nil {
		return Snapshot{
			Location: location,
		}
	}

	return Snapshot{
		Location: obj.Name.String(),
		Address:  obj.Address,
		Client:   obj.Client,
		Uniform:  obj.Uniform,
		Notes:    obj.Notes,
	}
}
