// Package scheduleapp maintains the app layer api for the roster views.
package scheduleapp

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/app/sdk/errs"
	"github.com/wachdienst/dienstplan/app/sdk/mid"
	"github.com/wachdienst/dienstplan/business/domain/employeebus"
	"github.com/wachdienst/dienstplan/business/domain/objectbus"
	"github.com/wachdienst/dienstplan/business/domain/schedulebus"
	"github.com/wachdienst/dienstplan/business/domain/shiftbus"
	"github.com/wachdienst/dienstplan/business/sdk/order"
	"github.com/wachdienst/dienstplan/business/sdk/page"
	"github.com/wachdienst/dienstplan/business/sdk/web"
	"github.com/wachdienst/dienstplan/business/types/civildate"
)

type app struct {
	employeeBus *employeebus.Core
	objectBus   *objectbus.Core
	shiftBus    *shiftbus.Core
}

func newApp(employeeBus *employeebus.Core, objectBus *objectbus.Core, shiftBus *shiftbus.Core) *app {
	return &app{
		employeeBus: employeeBus,
		objectBus:   objectBus,
		shiftBus:    shiftBus,
	}
}

// calendar returns the whole-week month grid with every shift of the
// tenant placed on its date.
func (a *app) calendar(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	month, err := parseMonth(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	// The grid pads out to whole weeks, so the query range does too.
	shifts, err := a.shiftBus.Query(ctx, tenantID, month.First().AddDays(-6), month.Last().AddDays(6))
	if err != nil {
		return errs.Errorf(errs.Internal, "query shifts: %s", err)
	}

	cal := schedulebus.BuildCalendar(month, civildate.Today(), shifts)

	return toAppCalendar(cal)
}

// matrix returns the employee-by-day roster grid.
func (a *app) matrix(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	actor, err := mid.GetPermActor(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "actor missing in context: %s", err)
	}

	month, err := parseMonth(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	employees, objects, shifts, err := a.loadMonth(ctx, tenantID, month)
	if err != nil {
		return errs.Errorf(errs.Internal, "load month: %s", err)
	}

	matrix := schedulebus.BuildMatrix(month, employees, shifts, objects, actor)
	draft := schedulebus.NewDraft(uuid.Nil, month.First(), objects)

	return toAppMatrix(matrix, draft)
}

// hours returns one employee's monthly total.
func (a *app) hours(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	month, err := parseMonth(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	employeeID, err := uuid.Parse(web.Param(r, "employee_id"))
	if err != nil {
		return errs.NewFieldErrors("employee_id", err)
	}

	shifts, err := a.shiftBus.Query(ctx, tenantID, month.First(), month.Last())
	if err != nil {
		return errs.Errorf(errs.Internal, "query shifts: %s", err)
	}

	return Hours{
		EmployeeID: employeeID.String(),
		Month:      month.String(),
		Hours:      schedulebus.MonthlyHours(month, employeeID, shifts),
	}
}

// =============================================================================

func (a *app) loadMonth(ctx context.Context, tenantID uuid.UUID, month civildate.Month) ([]employeebus.Employee, []objectbus.WorkObject, []shiftbus.Shift, error) {
	all := page.MustParse("1", "1000")

	employees, err := a.employeeBus.Query(ctx, employeebus.QueryFilter{TenantID: &tenantID}, employeebus.DefaultOrderBy, all)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("query employees: %w", err)
	}

	objects, err := a.objectBus.Query(ctx, objectbus.QueryFilter{TenantID: &tenantID}, order.NewBy(objectbus.OrderByName, order.ASC), all)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("query objects: %w", err)
	}

	shifts, err := a.shiftBus.Query(ctx, tenantID, month.First(), month.Last())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("query shifts: %w", err)
	}

	return employees, objects, shifts, nil
}

func parseMonth(r *http.Request) (civildate.Month, error) {
	year, err := strconv.Atoi(web.Param(r, "year"))
	if err != nil {
		return civildate.Month{}, fmt.Errorf("invalid year: %w", err)
	}

	monthNum, err := strconv.Atoi(web.Param(r, "month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		return civildate.Month{}, fmt.Errorf("invalid month")
	}

	return civildate.NewMonth(year, time.Month(monthNum)), nil
}
