// Package employeeapp maintains the app layer api for the employee
// domain.
package employeeapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/app/sdk/errs"
	"github.com/wachdienst/dienstplan/app/sdk/mid"
	"github.com/wachdienst/dienstplan/app/sdk/query"
	"github.com/wachdienst/dienstplan/business/domain/employeebus"
	"github.com/wachdienst/dienstplan/business/sdk/order"
	"github.com/wachdienst/dienstplan/business/sdk/page"
	"github.com/wachdienst/dienstplan/business/sdk/web"
)

type app struct {
	employeeBus *employeebus.Core
}

func newApp(employeeBus *employeebus.Core) *app {
	return &app{
		employeeBus: employeeBus,
	}
}

// create adds a new employee to the roster.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewEmployee
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	ne, err := toBusNewEmployee(app, tenantID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	emp, err := a.employeeBus.Create(ctx, ne)
	if err != nil {
		if errors.Is(err, employeebus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, employeebus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: emp[%+v]: %s", ne, err)
	}

	return toAppEmployee(emp)
}

// update applies partial changes to an employee. Workers may only
// change their own record; changing roles is reserved for supervisors.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateEmployee
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	actor, err := mid.GetActor(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "actor missing in context: %s", err)
	}

	employeeID, err := uuid.Parse(web.Param(r, "employee_id"))
	if err != nil {
		return errs.NewFieldErrors("employee_id", err)
	}

	if !actor.IsPrivileged() {
		if actor.ID != employeeID {
			return errs.Errorf(errs.PermissionDenied, "employee %s cannot update employee %s", actor.ID, employeeID)
		}
		if app.Role != nil {
			return errs.Errorf(errs.PermissionDenied, "employee %s cannot change their own role", actor.ID)
		}
	}

	emp, err := a.employeeBus.QueryByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employeebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "query employee: %s", err)
	}

	if emp.TenantID != tenantID {
		return errs.New(errs.NotFound, employeebus.ErrNotFound)
	}

	ue, err := toBusUpdateEmployee(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updEmp, err := a.employeeBus.Update(ctx, emp, ue)
	if err != nil {
		if errors.Is(err, employeebus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, employeebus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: employeeID[%s] ue[%+v]: %s", emp.ID, ue, err)
	}

	return toAppEmployee(updEmp)
}

// query returns the tenant's employees with paging.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	page, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, employeebus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	filter := employeebus.QueryFilter{TenantID: &tenantID}

	emps, err := a.employeeBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.employeeBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppEmployees(emps), total, page)
}

// queryByID returns an employee by their ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	employeeID, err := uuid.Parse(web.Param(r, "employee_id"))
	if err != nil {
		return errs.NewFieldErrors("employee_id", err)
	}

	emp, err := a.employeeBus.QueryByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employeebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "query: employeeID[%s]: %s", employeeID, err)
	}

	if emp.TenantID != tenantID {
		return errs.New(errs.NotFound, employeebus.ErrNotFound)
	}

	return toAppEmployee(emp)
}
