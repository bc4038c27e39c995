package employeeapp

import (
	"net/http"

	"github.com/wachdienst/dienstplan/app/sdk/auth"
	"github.com/wachdienst/dienstplan/app/sdk/mid"
	"github.com/wachdienst/dienstplan/business/domain/employeebus"
	"github.com/wachdienst/dienstplan/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth        *auth.Auth
	EmployeeBus *employeebus.Core
}

// Routes adds specific routes for this group. Updates are gated in the
// handler so employees can maintain their own record.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	read := mid.Authorize(cfg.Auth, auth.ResourceEmployees, auth.ActionRead)
	write := mid.Authorize(cfg.Auth, auth.ResourceEmployees, auth.ActionWrite)

	api := newApp(cfg.EmployeeBus)

	app.HandlerFunc(http.MethodGet, version, "/employees", api.query, authen, read)
	app.HandlerFunc(http.MethodGet, version, "/employees/{employee_id}", api.queryByID, authen, read)
	app.HandlerFunc(http.MethodPost, version, "/employees", api.create, authen, write)
	app.HandlerFunc(http.MethodPut, version, "/employees/{employee_id}", api.update, authen)
}
