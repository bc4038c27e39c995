package objectapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/app/sdk/errs"
	"github.com/wachdienst/dienstplan/business/domain/objectbus"
	"github.com/wachdienst/dienstplan/business/types/name"
)

// WorkObject represents information about an individual work object.
type WorkObject struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	Client         string `json:"client"`
	Uniform        string `json:"uniform"`
	Notes          string `json:"notes"`
	AssignedLeadID string `json:"assignedLeadId,omitempty"`
	DateCreated    string `json:"dateCreated"`
	DateUpdated    string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (o WorkObject) Encode() ([]byte, string, error) {
	data, err := json.Marshal(o)
	return data, "application/json", err
}

func toAppWorkObject(bus objectbus.WorkObject) WorkObject {
	app := WorkObject{
		ID:          bus.ID.String(),
		Name:        bus.Name.String(),
		Address:     bus.Address,
		Client:      bus.Client,
		Uniform:     bus.Uniform,
		Notes:       bus.Notes,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}

	if bus.AssignedLeadID != nil {
		app.AssignedLeadID = bus.AssignedLeadID.String()
	}

	return app
}

func toAppWorkObjects(objs []objectbus.WorkObject) []WorkObject {
	app := make([]WorkObject, len(objs))
	for i, obj := range objs {
		app[i] = toAppWorkObject(obj)
	}
	return app
}

// =============================================================================

// NewWorkObject defines the data needed to add a new work object.
type NewWorkObject struct {
	Name           string `json:"name" validate:"required"`
	Address        string `json:"address"`
	Client         string `json:"client"`
	Uniform        string `json:"uniform"`
	Notes          string `json:"notes"`
	AssignedLeadID string `json:"assignedLeadId" validate:"omitempty,uuid"`
}

// Decode implements the web.Decoder interface.
func (app *NewWorkObject) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewWorkObject) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewWorkObject(app NewWorkObject, tenantID uuid.UUID) (objectbus.NewWorkObject, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return objectbus.NewWorkObject{}, fmt.Errorf("parse name: %w", err)
	}

	bus := objectbus.NewWorkObject{
		TenantID: tenantID,
		Name:     nme,
		Address:  app.Address,
		Client:   app.Client,
		Uniform:  app.Uniform,
		Notes:    app.Notes,
	}

	if app.AssignedLeadID != "" {
		lead, err := uuid.Parse(app.AssignedLeadID)
		if err != nil {
			return objectbus.NewWorkObject{}, fmt.Errorf("parse assigned lead: %w", err)
		}
		bus.AssignedLeadID = &lead
	}

	return bus, nil
}

// =============================================================================

// UpdateWorkObject defines the data needed to update a work object. An
// empty string for assignedLeadId clears the lead.
type UpdateWorkObject struct {
	Name           *string `json:"name"`
	Address        *string `json:"address"`
	Client         *string `json:"client"`
	Uniform        *string `json:"uniform"`
	Notes          *string `json:"notes"`
	AssignedLeadID *string `json:"assignedLeadId" validate:"omitempty"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateWorkObject) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateWorkObject) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateWorkObject(app UpdateWorkObject) (objectbus.UpdateWorkObject, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return objectbus.UpdateWorkObject{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	bus := objectbus.UpdateWorkObject{
		Name:    nme,
		Address: app.Address,
		Client:  app.Client,
		Uniform: app.Uniform,
		Notes:   app.Notes,
	}

	if app.AssignedLeadID != nil {
		if *app.AssignedLeadID == "" {
			nilID := uuid.Nil
			bus.AssignedLeadID = &nilID
		} else {
			lead, err := uuid.Parse(*app.AssignedLeadID)
			if err != nil {
				return objectbus.UpdateWorkObject{}, fmt.Errorf("parse assigned lead: %w", err)
			}
			bus.AssignedLeadID = &lead
		}
	}

	return bus, nil
}
