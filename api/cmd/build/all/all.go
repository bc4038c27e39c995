// Package all binds all the routes into the specified app.
package all

import (
	"github.com/wachdienst/dienstplan/app/domain/checkapp"
	"github.com/wachdienst/dienstplan/app/domain/employeeapp"
	"github.com/wachdienst/dienstplan/app/domain/objectapp"
	"github.com/wachdienst/dienstplan/app/domain/reportapp"
	"github.com/wachdienst/dienstplan/app/domain/scheduleapp"
	"github.com/wachdienst/dienstplan/app/domain/shiftapp"
	"github.com/wachdienst/dienstplan/app/domain/templateapp"
	"github.com/wachdienst/dienstplan/app/sdk/mux"
	"github.com/wachdienst/dienstplan/business/sdk/sqldb"
	"github.com/wachdienst/dienstplan/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

func (add) Add(app *web.App, cfg mux.Config) {
	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	employeeapp.Routes(app, employeeapp.Config{
		Auth:        cfg.AuthConfig.Auth,
		EmployeeBus: cfg.BusConfig.EmployeeBus,
	})

	objectapp.Routes(app, objectapp.Config{
		Auth:      cfg.AuthConfig.Auth,
		ObjectBus: cfg.BusConfig.ObjectBus,
	})

	templateapp.Routes(app, templateapp.Config{
		Auth:        cfg.AuthConfig.Auth,
		TemplateBus: cfg.BusConfig.TemplateBus,
	})

	shiftapp.Routes(app, shiftapp.Config{
		Log:      cfg.Log,
		DB:       sqldb.NewBeginner(cfg.DB),
		Auth:     cfg.AuthConfig.Auth,
		ShiftBus: cfg.BusConfig.ShiftBus,
	})

	scheduleapp.Routes(app, scheduleapp.Config{
		Auth:        cfg.AuthConfig.Auth,
		EmployeeBus: cfg.BusConfig.EmployeeBus,
		ObjectBus:   cfg.BusConfig.ObjectBus,
		ShiftBus:    cfg.BusConfig.ShiftBus,
	})

	reportapp.Routes(app, reportapp.Config{
		Auth:        cfg.AuthConfig.Auth,
		EmployeeBus: cfg.BusConfig.EmployeeBus,
		ObjectBus:   cfg.BusConfig.ObjectBus,
		ShiftBus:    cfg.BusConfig.ShiftBus,
	})
}
