// Package objectapp maintains the app layer api for the work object
// domain.
package objectapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/app/sdk/errs"
	"github.com/wachdienst/dienstplan/app/sdk/mid"
	"github.com/wachdienst/dienstplan/app/sdk/query"
	"github.com/wachdienst/dienstplan/business/domain/objectbus"
	"github.com/wachdienst/dienstplan/business/sdk/order"
	"github.com/wachdienst/dienstplan/business/sdk/page"
	"github.com/wachdienst/dienstplan/business/sdk/web"
)

type app struct {
	objectBus *objectbus.Core
}

func newApp(objectBus *objectbus.Core) *app {
	return &app{
		objectBus: objectBus,
	}
}

// create adds a new work object to the registry.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewWorkObject
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	no, err := toBusNewWorkObject(app, tenantID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	obj, err := a.objectBus.Create(ctx, no)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "create: obj[%+v]: %s", no, err)
	}

	return toAppWorkObject(obj)
}

// update applies partial changes to a work object.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateWorkObject
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	objectID, err := uuid.Parse(web.Param(r, "object_id"))
	if err != nil {
		return errs.NewFieldErrors("object_id", err)
	}

	obj, err := a.objectBus.QueryByID(ctx, tenantID, objectID)
	if err != nil {
		if errors.Is(err, objectbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "query object: %s", err)
	}

	uo, err := toBusUpdateWorkObject(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updObj, err := a.objectBus.Update(ctx, obj, uo)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: objectID[%s] uo[%+v]: %s", obj.ID, uo, err)
	}

	return toAppWorkObject(updObj)
}

// delete removes a work object. Deleting an unknown id succeeds.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	objectID, err := uuid.Parse(web.Param(r, "object_id"))
	if err != nil {
		return errs.NewFieldErrors("object_id", err)
	}

	if err := a.objectBus.Delete(ctx, tenantID, objectID); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: objectID[%s]: %s", objectID, err)
	}

	return nil
}

// query returns the objects visible to the caller with paging.
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

	actor, err := mid.GetPermActor(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "actor missing in context: %s", err)
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, objectbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	objs, err := a.objectBus.QueryForActor(ctx, tenantID, actor, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.objectBus.Count(ctx, objectbus.QueryFilter{TenantID: &tenantID})
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppWorkObjects(objs), total, page)
}

// queryByID returns a work object by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	objectID, err := uuid.Parse(web.Param(r, "object_id"))
	if err != nil {
		return errs.NewFieldErrors("object_id", err)
	}

	obj, err := a.objectBus.QueryByID(ctx, tenantID, objectID)
	if err != nil {
		if errors.Is(err, objectbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "query: objectID[%s]: %s", objectID, err)
	}

	return toAppWorkObject(obj)
}
