package objectbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/types/name"
)

// WorkObject represents a guarded site in the tenant's registry. Names
// are free text and may repeat.
type WorkObject struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	Name           name.Name
	Address        string
	Client         string
	Uniform        string
	Notes          string
	AssignedLeadID *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewWorkObject contains information needed to create a new work object.
type NewWorkObject struct {
	TenantID       uuid.UUID
	Name           name.Name
	Address        string
	Client         string
	Uniform        string
	Notes          string
	AssignedLeadID *uuid.UUID
}

// UpdateWorkObject contains information needed to update a work object.
// AssignedLeadID set to uuid.Nil clears the lead assignment.
type UpdateWorkObject struct {
	Name           *name.Name
	Address        *string
	Client         *string
	Uniform        *string
	Notes          *string
	AssignedLeadID *uuid.UUID
}
