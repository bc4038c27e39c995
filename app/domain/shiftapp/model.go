package shiftapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/app/sdk/errs"
	"github.com/wachdienst/dienstplan/business/domain/shiftbus"
	"github.com/wachdienst/dienstplan/business/types/civildate"
	"github.com/wachdienst/dienstplan/business/types/daytime"
)

// Shift represents information about an individual shift.
type Shift struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employeeId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	ObjectID    string `json:"objectId,omitempty"`
	Location    string `json:"location"`
	Address     string `json:"address"`
	Client      string `json:"client"`
	Uniform     string `json:"uniform"`
	Notes       string `json:"notes"`
	Hours       float64 `json:"hours"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (s Shift) Encode() ([]byte, string, error) {
	data, err := json.Marshal(s)
	return data, "application/json", err
}

func toAppShift(bus shiftbus.Shift) Shift {
	app := Shift{
		ID:          bus.ID.String(),
		EmployeeID:  bus.EmployeeID.String(),
		Date:        bus.Date.String(),
		StartTime:   bus.StartTime.String(),
		EndTime:     bus.EndTime.String(),
		Location:    bus.Snapshot.Location,
		Address:     bus.Snapshot.Address,
		Client:      bus.Snapshot.Client,
		Uniform:     bus.Snapshot.Uniform,
		Notes:       bus.Snapshot.Notes,
		Hours:       bus.Hours(),
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}

	if bus.ObjectID != nil {
		app.ObjectID = bus.ObjectID.String()
	}

	return app
}

// Shifts is the list response.
type Shifts []Shift

// Encode implements the web.Encoder interface.
func (ss Shifts) Encode() ([]byte, string, error) {
	data, err := json.Marshal(ss)
	return data, "application/json", err
}

func toAppShifts(shifts []shiftbus.Shift) Shifts {
	app := make(Shifts, len(shifts))
	for i, s := range shifts {
		app[i] = toAppShift(s)
	}
	return app
}

// =============================================================================

// SaveShift defines the data needed to write a shift. An id makes it an
// update of that shift; no id creates a new one.
type SaveShift struct {
	ID         string `json:"id" validate:"omitempty,uuid"`
	EmployeeID string `json:"employeeId" validate:"required,uuid"`
	Date       string `json:"date" validate:"required"`
	StartTime  string `json:"startTime" validate:"required"`
	EndTime    string `json:"endTime" validate:"required"`
	ObjectID   string `json:"objectId" validate:"omitempty,uuid"`
	Location   string `json:"location"`
}

// Decode implements the web.Decoder interface.
func (app *SaveShift) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app SaveShift) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewShift(app SaveShift, tenantID uuid.UUID) (shiftbus.NewShift, error) {
	employeeID, err := uuid.Parse(app.EmployeeID)
	if err != nil {
		return shiftbus.NewShift{}, fmt.Errorf("parse employee id: %w", err)
	}

	date, err := civildate.Parse(app.Date)
	if err != nil {
		return shiftbus.NewShift{}, fmt.Errorf("parse date: %w", err)
	}

	start, err := daytime.Parse(app.StartTime)
	if err != nil {
		return shiftbus.NewShift{}, fmt.Errorf("parse start time: %w", err)
	}

	end, err := daytime.Parse(app.EndTime)
	if err != nil {
		return shiftbus.NewShift{}, fmt.Errorf("parse end time: %w", err)
	}

	bus := shiftbus.NewShift{
		TenantID:   tenantID,
		EmployeeID: employeeID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Location:   app.Location,
	}

	if app.ObjectID != "" {
		objectID, err := uuid.Parse(app.ObjectID)
		if err != nil {
			return shiftbus.NewShift{}, fmt.Errorf("parse object id: %w", err)
		}
		bus.ObjectID = &objectID
	}

	return bus, nil
}

func toBusUpdateShift(app SaveShift) (shiftbus.UpdateShift, error) {
	start, err := daytime.Parse(app.StartTime)
	if err != nil {
		return shiftbus.UpdateShift{}, fmt.Errorf("parse start time: %w", err)
	}

	end, err := daytime.Parse(app.EndTime)
	if err != nil {
		return shiftbus.UpdateShift{}, fmt.Errorf("parse end time: %w", err)
	}

	bus := shiftbus.UpdateShift{
		StartTime: &start,
		EndTime:   &end,
	}

	if app.ObjectID != "" {
		objectID, err := uuid.Parse(app.ObjectID)
		if err != nil {
			return shiftbus.UpdateShift{}, fmt.Errorf("parse object id: %w", err)
		}
		bus.ObjectID = &objectID
	} else {
		nilID := uuid.Nil
		bus.ObjectID = &nilID
		loc := app.Location
		bus.Location = &loc
	}

	return bus, nil
}
