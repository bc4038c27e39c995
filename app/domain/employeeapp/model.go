package employeeapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/app/sdk/errs"
	"github.com/wachdienst/dienstplan/business/domain/employeebus"
	"github.com/wachdienst/dienstplan/business/types/name"
	"github.com/wachdienst/dienstplan/business/types/role"
)

// Employee represents information about an individual employee.
type Employee struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (e Employee) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

func toAppEmployee(bus employeebus.Employee) Employee {
	return Employee{
		ID:          bus.ID.String(),
		Name:        bus.Name.String(),
		Role:        bus.Role.String(),
		Email:       bus.Email.Address,
		Phone:       bus.Phone,
		Address:     bus.Address,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppEmployees(emps []employeebus.Employee) []Employee {
	app := make([]Employee, len(emps))
	for i, emp := range emps {
		app[i] = toAppEmployee(emp)
	}
	return app
}

// =============================================================================

// NewEmployee defines the data needed to add a new employee.
type NewEmployee struct {
	Name    string `json:"name" validate:"required"`
	Role    string `json:"role" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Decode implements the web.Decoder interface.
func (app *NewEmployee) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewEmployee) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewEmployee(app NewEmployee, tenantID uuid.UUID) (employeebus.NewEmployee, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return employeebus.NewEmployee{}, fmt.Errorf("parse name: %w", err)
	}

	empRole, err := role.Parse(app.Role)
	if err != nil {
		return employeebus.NewEmployee{}, fmt.Errorf("parse role: %w", err)
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return employeebus.NewEmployee{}, fmt.Errorf("parse email: %w", err)
	}

	bus := employeebus.NewEmployee{
		TenantID: tenantID,
		Name:     nme,
		Role:     empRole,
		Email:    *addr,
		Phone:    app.Phone,
		Address:  app.Address,
	}

	return bus, nil
}

// =============================================================================

// UpdateEmployee defines the data needed to update an employee.
type UpdateEmployee struct {
	Name    *string `json:"name"`
	Role    *string `json:"role"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateEmployee) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateEmployee) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateEmployee(app UpdateEmployee) (employeebus.UpdateEmployee, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return employeebus.UpdateEmployee{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	var empRole *role.Role
	if app.Role != nil {
		r, err := role.Parse(*app.Role)
		if err != nil {
			return employeebus.UpdateEmployee{}, fmt.Errorf("parse role: %w", err)
		}
		empRole = &r
	}

	var addr *mail.Address
	if app.Email != nil {
		var err error
		addr, err = mail.ParseAddress(*app.Email)
		if err != nil {
			return employeebus.UpdateEmployee{}, fmt.Errorf("parse email: %w", err)
		}
	}

	bus := employeebus.UpdateEmployee{
		Name:    nme,
		Role:    empRole,
		Email:   addr,
		Phone:   app.Phone,
		Address: app.Address,
	}

	return bus, nil
}
