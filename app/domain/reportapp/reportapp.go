// Package reportapp maintains the app layer api for roster exports. The
// report tables come out of the business layer; this package only turns
// them into .xlsx files on the response writer.
package reportapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/app/sdk/errs"
	"github.com/wachdienst/dienstplan/app/sdk/mid"
	"github.com/wachdienst/dienstplan/business/domain/employeebus"
	"github.com/wachdienst/dienstplan/business/domain/objectbus"
	"github.com/wachdienst/dienstplan/business/domain/reportbus"
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

// export renders the requested month as an .xlsx download.
func (a *app) export(ctx context.Context, r *http.Request) web.Encoder {
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

	mode, target, err := parseModeTarget(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	all := page.MustParse("1", "1000")

	employees, err := a.employeeBus.Query(ctx, employeebus.QueryFilter{TenantID: &tenantID}, employeebus.DefaultOrderBy, all)
	if err != nil {
		return errs.Errorf(errs.Internal, "query employees: %s", err)
	}

	objects, err := a.objectBus.Query(ctx, objectbus.QueryFilter{TenantID: &tenantID}, order.NewBy(objectbus.OrderByName, order.ASC), all)
	if err != nil {
		return errs.Errorf(errs.Internal, "query objects: %s", err)
	}

	shifts, err := a.shiftBus.Query(ctx, tenantID, month.First(), month.Last())
	if err != nil {
		return errs.Errorf(errs.Internal, "query shifts: %s", err)
	}

	table, err := reportbus.Build(mode, target, month, employees, objects, shifts, actor)
	if err != nil {
		if errors.Is(err, reportbus.ErrTargetNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "build report: %s", err)
	}

	w := web.GetWriter(ctx)
	if w == nil {
		return errs.Errorf(errs.Internal, "writer missing in context")
	}

	if err := writeXLSX(w, table, filename(table, month)); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "write xlsx: %s", err)
	}

	return web.NewNoResponse()
}

// =============================================================================

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

func parseModeTarget(r *http.Request) (reportbus.Mode, uuid.UUID, error) {
	values := r.URL.Query()

	modeStr := values.Get("mode")
	if modeStr == "" {
		modeStr = reportbus.ModeMatrix.String()
	}

	mode, err := reportbus.ParseMode(modeStr)
	if err != nil {
		return reportbus.Mode{}, uuid.Nil, err
	}

	var target uuid.UUID

	switch mode {
	case reportbus.ModeByEmployee:
		target, err = uuid.Parse(values.Get("employee_id"))
		if err != nil {
			return reportbus.Mode{}, uuid.Nil, fmt.Errorf("invalid employee_id: %w", err)
		}

	case reportbus.ModeByObject:
		target, err = uuid.Parse(values.Get("object_id"))
		if err != nil {
			return reportbus.Mode{}, uuid.Nil, fmt.Errorf("invalid object_id: %w", err)
		}
	}

	return mode, target, nil
}

func filename(table reportbus.Table, month civildate.Month) string {
	label := strings.TrimPrefix(table.Title, "Dienstplan ")
	label = strings.TrimSuffix(label, " "+month.String())
	label = strings.ReplaceAll(strings.TrimSpace(label), " ", "_")

	if label == "" {
		return fmt.Sprintf("Dienstplan_%s.xlsx", month)
	}

	return fmt.Sprintf("Dienstplan_%s_%s.xlsx", label, month)
}
