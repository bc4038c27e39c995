package mid

import (
	"context"
	"net/http"

	"github.com/wachdienst/dienstplan/app/sdk/auth"
	"github.com/wachdienst/dienstplan/app/sdk/errs"
	"github.com/wachdienst/dienstplan/business/sdk/web"
)

// Authorize validates the authenticated actor may perform the given action
// against the route's resource. Object-scoped assign decisions are taken
// deeper, in the shift domain.
func Authorize(ath *auth.Auth, res auth.Resource, act auth.Action) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			actor, err := GetActor(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			if err := ath.Authorize(ctx, actor, res, act); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
