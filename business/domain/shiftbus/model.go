package shiftbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/types/civildate"
	"github.com/wachdienst/dienstplan/business/types/daytime"
)

// Snapshot carries the object details copied onto the shift when it was
// saved. Later edits to the object registry leave it untouched, so the
// roster keeps showing what was agreed at assignment time. Location holds
// free text when the shift has no object.
type Snapshot struct {
	Location string
	Address  string
	Client   string
	Uniform  string
	Notes    string
}

// Shift is one employee working one civil date. A start after the end
// means the shift runs past midnight.
type Shift struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	EmployeeID uuid.UUID
	Date       civildate.Date
	StartTime  daytime.Time
	EndTime    daytime.Time
	ObjectID   *uuid.UUID
	Snapshot   Snapshot
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Hours is the worked span in hours, overnight corrected.
func (s Shift) Hours() float64 {
	return daytime.Span(s.StartTime, s.EndTime)
}

// NewShift contains information needed to create a new shift. Location is
// used only when ObjectID is nil.
type NewShift struct {
	TenantID   uuid.UUID
	EmployeeID uuid.UUID
	Date       civildate.Date
	StartTime  daytime.Time
	EndTime    daytime.Time
	ObjectID   *uuid.UUID
	Location   string
}

// UpdateShift contains information needed to update a shift. ObjectID set
// to uuid.Nil detaches the object and keeps the snapshot location as free
// text unless Location replaces it.
type UpdateShift struct {
	StartTime *daytime.Time
	EndTime   *daytime.Time
	ObjectID  *uuid.UUID
	Location  *string
}
