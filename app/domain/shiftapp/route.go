package shiftapp

import (
	"net/http"

	"github.com/wachdienst/dienstplan/app/sdk/auth"
	"github.com/wachdienst/dienstplan/app/sdk/mid"
	"github.com/wachdienst/dienstplan/business/domain/shiftbus"
	"github.com/wachdienst/dienstplan/business/sdk/sqldb"
	"github.com/wachdienst/dienstplan/business/sdk/web"
	"github.com/wachdienst/dienstplan/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log      *logger.Logger
	DB       sqldb.Beginner
	Auth     *auth.Auth
	ShiftBus *shiftbus.Core
}

// Routes adds specific routes for this group. Mutations run inside a
// database transaction so the permission read and the write agree.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	read := mid.Authorize(cfg.Auth, auth.ResourceShifts, auth.ActionRead)
	write := mid.Authorize(cfg.Auth, auth.ResourceShifts, auth.ActionWrite)
	tran := mid.BeginCommitRollback(cfg.Log, cfg.DB)

	api := newApp(cfg.ShiftBus)

	app.HandlerFunc(http.MethodGet, version, "/shifts", api.query, authen, read)
	app.HandlerFunc(http.MethodPost, version, "/shifts", api.save, authen, write, tran)
	app.HandlerFunc(http.MethodDelete, version, "/shifts/{shift_id}", api.delete, authen, write, tran)
}
