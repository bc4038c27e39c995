// Package shiftapp maintains the app layer api for the shift domain.
package shiftapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/app/sdk/errs"
	"github.com/wachdienst/dienstplan/app/sdk/mid"
	"github.com/wachdienst/dienstplan/business/domain/shiftbus"
	"github.com/wachdienst/dienstplan/business/sdk/web"
	"github.com/wachdienst/dienstplan/business/types/civildate"
)

type app struct {
	shiftBus *shiftbus.Core
}

func newApp(shiftBus *shiftbus.Core) *app {
	return &app{
		shiftBus: shiftBus,
	}
}

// executeUnderTransaction returns a copy of the api bound to the
// transaction found in the context.
func (a *app) executeUnderTransaction(ctx context.Context) (*app, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return nil, err
	}

	shiftBus, err := a.shiftBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return newApp(shiftBus), nil
}

// save creates or rewrites a shift depending on whether the payload
// carries an id.
func (a *app) save(ctx context.Context, r *http.Request) web.Encoder {
	a, err := a.executeUnderTransaction(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	var app SaveShift
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	actor, err := mid.GetPermActor(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "actor missing in context: %s", err)
	}

	if app.ID == "" {
		ns, err := toBusNewShift(app, tenantID)
		if err != nil {
			return errs.New(errs.InvalidArgument, err)
		}

		shift, err := a.shiftBus.Create(ctx, actor, ns)
		if err != nil {
			return saveError(err, ns.EmployeeID)
		}

		// Hand back the stored row rather than the request payload.
		stored, err := a.shiftBus.QueryByID(ctx, tenantID, shift.ID)
		if err != nil {
			return errs.Errorf(errs.InternalOnlyLog, "reread: shiftID[%s]: %s", shift.ID, err)
		}

		return toAppShift(stored)
	}

	shiftID, err := uuid.Parse(app.ID)
	if err != nil {
		return errs.NewFieldErrors("id", err)
	}

	shift, err := a.shiftBus.QueryByID(ctx, tenantID, shiftID)
	if err != nil {
		if errors.Is(err, shiftbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "query shift: %s", err)
	}

	us, err := toBusUpdateShift(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updShift, err := a.shiftBus.Update(ctx, actor, shift, us)
	if err != nil {
		return saveError(err, shift.EmployeeID)
	}

	stored, err := a.shiftBus.QueryByID(ctx, tenantID, updShift.ID)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "reread: shiftID[%s]: %s", updShift.ID, err)
	}

	return toAppShift(stored)
}

// delete removes a shift. Deleting an unknown id succeeds.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	a, err := a.executeUnderTransaction(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	actor, err := mid.GetPermActor(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "actor missing in context: %s", err)
	}

	shiftID, err := uuid.Parse(web.Param(r, "shift_id"))
	if err != nil {
		return errs.NewFieldErrors("shift_id", err)
	}

	if err := a.shiftBus.Delete(ctx, actor, tenantID, shiftID); err != nil {
		if errors.Is(err, shiftbus.ErrPermissionDenied) {
			return errs.New(errs.PermissionDenied, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "delete: shiftID[%s]: %s", shiftID, err)
	}

	return nil
}

// query returns the tenant's shifts in the inclusive date range.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	values := r.URL.Query()

	from, err := civildate.Parse(values.Get("from"))
	if err != nil {
		return errs.NewFieldErrors("from", err)
	}

	to, err := civildate.Parse(values.Get("to"))
	if err != nil {
		return errs.NewFieldErrors("to", err)
	}

	shifts, err := a.shiftBus.Query(ctx, tenantID, from, to)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	return toAppShifts(shifts)
}

func saveError(err error, employeeID uuid.UUID) web.Encoder {
	switch {
	case errors.Is(err, shiftbus.ErrShiftExists):
		return errs.New(errs.Aborted, err)

	case errors.Is(err, shiftbus.ErrPermissionDenied):
		return errs.New(errs.PermissionDenied, err)

	case errors.Is(err, shiftbus.ErrObjectNotFound):
		return errs.New(errs.InvalidArgument, err)
	}

	return errs.Errorf(errs.InternalOnlyLog, "save: employeeID[%s]: %s", employeeID, err)
}
