// Package templateapp maintains the app layer api for the shift template
// domain.
package templateapp

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/app/sdk/errs"
	"github.com/wachdienst/dienstplan/app/sdk/mid"
	"github.com/wachdienst/dienstplan/business/domain/templatebus"
	"github.com/wachdienst/dienstplan/business/sdk/web"
)

type app struct {
	templateBus *templatebus.Core
}

func newApp(templateBus *templatebus.Core) *app {
	return &app{
		templateBus: templateBus,
	}
}

// create adds a new shift template.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewShiftTemplate
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	nt, err := toBusNewShiftTemplate(app, tenantID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tpl, err := a.templateBus.Create(ctx, nt)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "create: tpl[%+v]: %s", nt, err)
	}

	return toAppShiftTemplate(tpl)
}

// delete removes a shift template. Deleting an unknown id succeeds.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	templateID, err := uuid.Parse(web.Param(r, "template_id"))
	if err != nil {
		return errs.NewFieldErrors("template_id", err)
	}

	if err := a.templateBus.Delete(ctx, tenantID, templateID); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: templateID[%s]: %s", templateID, err)
	}

	return nil
}

// query returns the tenant's templates.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	tpls, err := a.templateBus.Query(ctx, tenantID)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	return toAppShiftTemplates(tpls)
}
