package templatebus

import (
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/types/daytime"
	"github.com/wachdienst/dienstplan/business/types/name"
)

// ShiftTemplate is a reusable start/end time pair. Applying one to a
// draft copies the times and nothing else.
type ShiftTemplate struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      name.Name
	StartTime daytime.Time
	EndTime   daytime.Time
	CreatedAt time.Time
}

// NewShiftTemplate contains information needed to create a new template.
type NewShiftTemplate struct {
	TenantID  uuid.UUID
	Name      name.Name
	StartTime daytime.Time
	EndTime   daytime.Time
}
