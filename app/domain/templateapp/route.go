package templateapp

import (
	"net/http"

	"github.com/wachdienst/dienstplan/app/sdk/auth"
	"github.com/wachdienst/dienstplan/app/sdk/mid"
	"github.com/wachdienst/dienstplan/business/domain/templatebus"
	"github.com/wachdienst/dienstplan/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth        *auth.Auth
	TemplateBus *templatebus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	read := mid.Authorize(cfg.Auth, auth.ResourceTemplates, auth.ActionRead)
	write := mid.Authorize(cfg.Auth, auth.ResourceTemplates, auth.ActionWrite)

	api := newApp(cfg.TemplateBus)

	app.HandlerFunc(http.MethodGet, version, "/templates", api.query, authen, read)
	app.HandlerFunc(http.MethodPost, version, "/templates", api.create, authen, write)
	app.HandlerFunc(http.MethodDelete, version, "/templates/{template_id}", api.delete, authen, write)
}
