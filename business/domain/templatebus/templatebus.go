// Package templatebus provides business access to the shift template
// registry. Templates are named start/end time pairs; editing one means
// deleting it and creating a replacement.
package templatebus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/sdk/sqldb"
	"github.com/wachdienst/dienstplan/foundation/otel"
)

var ErrNotFound = errors.New("shift template not found")

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, tpl ShiftTemplate) error
	Delete(ctx context.Context, tenantID uuid.UUID, templateID uuid.UUID) error
	Query(ctx context.Context, tenantID uuid.UUID) ([]ShiftTemplate, error)
	QueryByID(ctx context.Context, tenantID uuid.UUID, templateID uuid.UUID) (ShiftTemplate, error)
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

func (c *Core) Create(ctx context.Context, nt NewShiftTemplate) (ShiftTemplate, error) {
	ctx, span := otel.AddSpan(ctx, "business.templatebus.create")
	defer span.End()

	tpl := ShiftTemplate{
		ID:        uuid.New(),
		TenantID:  nt.TenantID,
		Name:      nt.Name,
		StartTime: nt.StartTime,
		EndTime:   nt.EndTime,
		CreatedAt: time.Now(),
	}

	if err := c.storer.Create(ctx, tpl); err != nil {
		return ShiftTemplate{}, fmt.Errorf("create: %w", err)
	}

	return tpl, nil
}

// Delete removes the template. A missing id is a success.
func (c *Core) Delete(ctx context.Context, tenantID uuid.UUID, templateID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.templatebus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, tenantID, templateID); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves the tenant's templates ordered by name.
func (c *Core) Query(ctx context.Context, tenantID uuid.UUID) ([]ShiftTemplate, error) {
	ctx, span := otel.AddSpan(ctx, "business.templatebus.query")
	defer span.End()

	tpls, err := c.storer.Query(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return tpls, nil
}

// QueryByID finds the template by the specified ID.
func (c *Core) QueryByID(ctx context.Context, tenantID uuid.UUID, templateID uuid.UUID) (ShiftTemplate, error) {
	ctx, span := otel.AddSpan(ctx, "business.templatebus.queryByID")
	defer span.End()

	tpl, err := c.storer.QueryByID(ctx, tenantID, templateID)
	if err != nil {
		return ShiftTemplate{}, fmt.Errorf("query: templateID[%s]: %w", templateID, err)
	}

	return tpl, nil
}
