package employeebus

import (
	"net/mail"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/types/name"
	"github.com/wachdienst/dienstplan/business/types/role"
)

type QueryFilter struct {
	ID       *uuid.UUID
	TenantID *uuid.UUID
	Name     *name.Name
	Role     *role.Role
	Email    *mail.Address
}
