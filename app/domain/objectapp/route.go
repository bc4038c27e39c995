package objectapp

import (
	"net/http"

	"github.com/wachdienst/dienstplan/app/sdk/auth"
	"github.com/wachdienst/dienstplan/app/sdk/mid"
	"github.com/wachdienst/dienstplan/business/domain/objectbus"
	"github.com/wachdienst/dienstplan/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth      *auth.Auth
	ObjectBus *objectbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	read := mid.Authorize(cfg.Auth, auth.ResourceObjects, auth.ActionRead)
	write := mid.Authorize(cfg.Auth, auth.ResourceObjects, auth.ActionWrite)

	api := newApp(cfg.ObjectBus)

	app.HandlerFunc(http.MethodGet, version, "/objects", api.query, authen, read)
	app.HandlerFunc(http.MethodGet, version, "/objects/{object_id}", api.queryByID, authen, read)
	app.HandlerFunc(http.MethodPost, version, "/objects", api.create, authen, write)
	app.HandlerFunc(http.MethodPut, version, "/objects/{object_id}", api.update, authen, write)
	app.HandlerFunc(http.MethodDelete, version, "/objects/{object_id}", api.delete, authen, write)
}
