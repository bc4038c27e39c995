package templateapp

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/app/sdk/errs"
	"github.com/wachdienst/dienstplan/business/domain/templatebus"
	"github.com/wachdienst/dienstplan/business/types/daytime"
	"github.com/wachdienst/dienstplan/business/types/name"
)

// ShiftTemplate represents information about an individual template.
type ShiftTemplate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Encode implements the web.Encoder interface.
func (t ShiftTemplate) Encode() ([]byte, string, error) {
	data, err := json.Marshal(t)
	return data, "application/json", err
}

func toAppShiftTemplate(bus templatebus.ShiftTemplate) ShiftTemplate {
	return ShiftTemplate{
		ID:        bus.ID.String(),
		Name:      bus.Name.String(),
		StartTime: bus.StartTime.String(),
		EndTime:   bus.EndTime.String(),
	}
}

// ShiftTemplates is the list response.
type ShiftTemplates []ShiftTemplate

// Encode implements the web.Encoder interface.
func (ts ShiftTemplates) Encode() ([]byte, string, error) {
	data, err := json.Marshal(ts)
	return data, "application/json", err
}

func toAppShiftTemplates(tpls []templatebus.ShiftTemplate) ShiftTemplates {
	app := make(ShiftTemplates, len(tpls))
	for i, tpl := range tpls {
		app[i] = toAppShiftTemplate(tpl)
	}
	return app
}

// =============================================================================

// NewShiftTemplate defines the data needed to add a new template.
type NewShiftTemplate struct {
	Name      string `json:"name" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *NewShiftTemplate) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewShiftTemplate) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewShiftTemplate(app NewShiftTemplate, tenantID uuid.UUID) (templatebus.NewShiftTemplate, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return templatebus.NewShiftTemplate{}, fmt.Errorf("parse name: %w", err)
	}

	start, err := daytime.Parse(app.StartTime)
	if err != nil {
		return templatebus.NewShiftTemplate{}, fmt.Errorf("parse start time: %w", err)
	}

	end, err := daytime.Parse(app.EndTime)
	if err != nil {
		return templatebus.NewShiftTemplate{}, fmt.Errorf("parse end time: %w", err)
	}

	bus := templatebus.NewShiftTemplate{
		TenantID:  tenantID,
		Name:      nme,
		StartTime: start,
		EndTime:   end,
	}

	return bus, nil
}
