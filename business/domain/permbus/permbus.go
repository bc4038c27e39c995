// Package permbus resolves what a caller may do with a roster cell. The
// resolver is a pure function over the actor and the cell's current
// object assignment; it holds no state and touches no store.
package permbus

import (
	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/types/role"
)

// Actor is the business-layer view of the authenticated caller. Owner
// marks the tenant owner, who carries no roster role.
type Actor struct {
	ID    uuid.UUID
	Owner bool
	Role  role.Role
}

// Object is the slice of a work object the resolver needs.
type Object struct {
	ID             uuid.UUID
	AssignedLeadID *uuid.UUID
}

// Target identifies the cell under decision. Object is the cell's
// currently assigned work object at action time, nil when the cell has
// none. The assignment in force now governs the decision, not the one
// present when the shift was first written.
type Target struct {
	EmployeeID uuid.UUID
	Object     *Object
}

// Decision is what the actor may do with the target cell.
type Decision struct {
	CanView   bool
	CanAssign bool
}

// Resolve applies the permission rule table.
//
// Tenant owners and team leads assign everywhere. Object leads assign
// only on cells whose current object they lead; cells without an object
// are denied to them. Workers never assign and view only their own row.
func Resolve(actor Actor, target Target) Decision {
	if actor.Owner {
		return Decision{CanView: true, CanAssign: true}
	}

	switch actor.Role {
	case role.TeamLead:
		return Decision{CanView: true, CanAssign: true}

	case role.ObjLead:
		d := Decision{CanView: true}
		if target.Object != nil && target.Object.AssignedLeadID != nil && *target.Object.AssignedLeadID == actor.ID {
			d.CanAssign = true
		}
		return d

	case role.Worker:
		return Decision{CanView: target.EmployeeID == actor.ID}
	}

	return Decision{}
}
