package scheduleapp

import (
	"net/http"

	"github.com/wachdienst/dienstplan/app/sdk/auth"
	"github.com/wachdienst/dienstplan/app/sdk/mid"
	"github.com/wachdienst/dienstplan/business/domain/employeebus"
	"github.com/wachdienst/dienstplan/business/domain/objectbus"
	"github.com/wachdienst/dienstplan/business/domain/shiftbus"
	"github.com/wachdienst/dienstplan/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth        *auth.Auth
	EmployeeBus *employeebus.Core
	ObjectBus   *objectbus.Core
	ShiftBus    *shiftbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	read := mid.Authorize(cfg.Auth, auth.ResourceSchedule, auth.ActionRead)

	api := newApp(cfg.EmployeeBus, cfg.ObjectBus, cfg.ShiftBus)

	app.HandlerFunc(http.MethodGet, version, "/schedule/{year}/{month}/calendar", api.calendar, authen, read)
	app.HandlerFunc(http.MethodGet, version, "/schedule/{year}/{month}/matrix", api.matrix, authen, read)
	app.HandlerFunc(http.MethodGet, version, "/schedule/{year}/{month}/hours/{employee_id}", api.hours, authen, read)
}
