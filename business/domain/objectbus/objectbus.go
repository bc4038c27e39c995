// Package objectbus provides business access to the work object registry.
// Work objects are the guarded sites shifts are assigned against.
package objectbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/domain/permbus"
	"github.com/wachdienst/dienstplan/business/sdk/order"
	"github.com/wachdienst/dienstplan/business/sdk/page"
	"github.com/wachdienst/dienstplan/business/sdk/sqldb"
	"github.com/wachdienst/dienstplan/business/types/role"
	"github.com/wachdienst/dienstplan/foundation/otel"
)

var ErrNotFound = errors.New("work object not found")

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, obj WorkObject) error
	Update(ctx context.Context, obj WorkObject) error
	Delete(ctx context.Context, tenantID uuid.UUID, objectID uuid.UUID) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]WorkObject, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, tenantID uuid.UUID, objectID uuid.UUID) (WorkObject, error)
}

type Core struct {
	storer Storer
}

func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer), nil
}

func (c *Core) Create(ctx context.Context, no NewWorkObject) (WorkObject, error) {
	ctx, span := otel.AddSpan(ctx, "business.objectbus.create")
	defer span.End()

	now := time.Now()

	obj := WorkObject{
		ID:             uuid.New(),
		TenantID:       no.TenantID,
		Name:           no.Name,
		Address:        no.Address,
		Client:         no.Client,
		Uniform:        no.Uniform,
		Notes:          no.Notes,
		AssignedLeadID: no.AssignedLeadID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := c.storer.Create(ctx, obj); err != nil {
		return WorkObject{}, fmt.Errorf("create: %w", err)
	}

	return obj, nil
}

// Update applies the non-nil fields to the object. Shift snapshots taken
// from earlier versions of the object are left untouched.
func (c *Core) Update(ctx context.Context, obj WorkObject, uo UpdateWorkObject) (WorkObject, error) {
	ctx, span := otel.AddSpan(ctx, "business.objectbus.update")
	defer span.End()

	if uo.Name != nil {
		obj.Name = *uo.Name
	}

	if uo.Address != nil {
		obj.Address = *uo.Address
	}

	if uo.Client != nil {
		obj.Client = *uo.Client
	}

	if uo.Uniform != nil {
		obj.Uniform = *uo.Uniform
	}

	if uo.Notes != nil {
		obj.Notes = *uo.Notes
	}

	if uo.AssignedLeadID != nil {
		if *uo.AssignedLeadID == uuid.Nil {
			obj.AssignedLeadID = nil
		} else {
			lead := *uo.AssignedLeadID
			obj.AssignedLeadID = &lead
		}
	}

	obj.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, obj); err != nil {
		return WorkObject{}, fmt.Errorf("update: %w", err)
	}

	return obj, nil
}

// Delete removes the object. Deleting an id that does not exist is a
// success so retried deletes stay safe.
func (c *Core) Delete(ctx context.Context, tenantID uuid.UUID, objectID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.objectbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, tenantID, objectID); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of work objects.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]WorkObject, error) {
	ctx, span := otel.AddSpan(ctx, "business.objectbus.query")
	defer span.End()

	objs, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return objs, nil
}

// Count returns the total number of work objects matching the filter.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.objectbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the work object by the specified ID.
func (c *Core) QueryByID(ctx context.Context, tenantID uuid.UUID, objectID uuid.UUID) (WorkObject, error) {
	ctx, span := otel.AddSpan(ctx, "business.objectbus.queryByID")
	defer span.End()

	obj, err := c.storer.QueryByID(ctx, tenantID, objectID)
	if err != nil {
		return WorkObject{}, fmt.Errorf("query: objectID[%s]: %w", objectID, err)
	}

	return obj, nil
}

// QueryForActor retrieves the objects the caller works with. Object leads
// see only the objects they lead; every other caller sees the whole
// registry.
func (c *Core) QueryForActor(ctx context.Context, tenantID uuid.UUID, actor permbus.Actor, orderBy order.By, page page.Page) ([]WorkObject, error) {
	ctx, span := otel.AddSpan(ctx, "business.objectbus.queryForActor")
	defer span.End()

	filter := QueryFilter{
		TenantID: &tenantID,
	}

	if !actor.Owner && actor.Role.Equal(role.ObjLead) {
		lead := actor.ID
		filter.AssignedLeadID = &lead
	}

	objs, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return objs, nil
}

// PermView is the resolver's view of the object.
func PermView(obj WorkObject) *permbus.Object {
	return &permbus.Object{
		ID:             obj.ID,
		AssignedLeadID: obj.AssignedLeadID,
	}
}
