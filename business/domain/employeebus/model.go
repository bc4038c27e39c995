package employeebus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/types/name"
	"github.com/wachdienst/dienstplan/business/types/role"
)

type Employee struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      name.Name
	Role      role.Role
	Email     mail.Address
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEmployee contains information needed to create a new employee.
type NewEmployee struct {
	TenantID uuid.UUID
	Name     name.Name
	Role     role.Role
	Email    mail.Address
	Phone    string
	Address  string
}

// UpdateEmployee contains information needed to update an employee.
type UpdateEmployee struct {
	Name    *name.Name
	Role    *role.Role
	Email   *mail.Address
	Phone   *string
	Address *string
}
