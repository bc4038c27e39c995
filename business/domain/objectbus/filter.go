package objectbus

import (
	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/types/name"
)

type QueryFilter struct {
	ID             *uuid.UUID
	TenantID       *uuid.UUID
	Name           *name.Name
	AssignedLeadID *uuid.UUID
}
