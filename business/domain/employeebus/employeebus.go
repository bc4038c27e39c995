// Package employeebus provides business access to the employee roster.
// Employees are never hard deleted so historical shifts keep resolving
// their ids.
package employeebus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/sdk/order"
	"github.com/wachdienst/dienstplan/business/sdk/page"
	"github.com/wachdienst/dienstplan/business/sdk/sqldb"
	"github.com/wachdienst/dienstplan/foundation/otel"
)

var (
	ErrNotFound    = errors.New("employee not found")
	ErrUniqueEmail = errors.New("email is not unique")
)

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, emp Employee) error
	Update(ctx context.Context, emp Employee) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Employee, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, employeeID uuid.UUID) (Employee, error)
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

func (c *Core) Create(ctx context.Context, ne NewEmployee) (Employee, error) {
	ctx, span := otel.AddSpan(ctx, "business.employeebus.create")
	defer span.End()

	now := time.Now()

	emp := Employee{
		ID:        uuid.New(),
		TenantID:  ne.TenantID,
		Name:      ne.Name,
		Role:      ne.Role,
		Email:     ne.Email,
		Phone:     ne.Phone,
		Address:   ne.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, emp); err != nil {
		return Employee{}, fmt.Errorf("create: %w", err)
	}

	return emp, nil
}

func (c *Core) Update(ctx context.Context, emp Employee, ue UpdateEmployee) (Employee, error) {
	ctx, span := otel.AddSpan(ctx, "business.employeebus.update")
	defer span.End()

	if ue.Name != nil {
		emp.Name = *ue.Name
	}

	if ue.Role != nil {
		emp.Role = *ue.Role
	}

	if ue.Email != nil {
		emp.Email = *ue.Email
	}

	if ue.Phone != nil {
		emp.Phone = *ue.Phone
	}

	if ue.Address != nil {
		emp.Address = *ue.Address
	}

	emp.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, emp); err != nil {
		return Employee{}, fmt.Errorf("update: %w", err)
	}

	return emp, nil
}

// Query retrieves a list of employees.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Employee, error) {
	ctx, span := otel.AddSpan(ctx, "business.employeebus.query")
	defer span.End()

	emps, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return emps, nil
}

// Count returns the total number of employees matching the filter.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.employeebus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the employee by the specified ID.
func (c *Core) QueryByID(ctx context.Context, employeeID uuid.UUID) (Employee, error) {
	ctx, span := otel.AddSpan(ctx, "business.employeebus.queryByID")
	defer span.End()

	emp, err := c.storer.QueryByID(ctx, employeeID)
	if err != nil {
		return Employee{}, fmt.Errorf("query: employeeID[%s]: %w", employeeID, err)
	}

	return emp, nil
}
