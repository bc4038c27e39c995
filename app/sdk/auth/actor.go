package auth

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/types/role"
)

// Kind distinguishes the two caller populations. Providers are tenant
// owners and carry no roster role; employees carry one of the roster roles.
type Kind struct {
	value string
}

var (
	KindProvider = Kind{"provider"}
	KindEmployee = Kind{"employee"}
)

var kinds = map[string]Kind{
	KindProvider.value: KindProvider,
	KindEmployee.value: KindEmployee,
}

// ParseKind parses the string value and returns an actor kind if one exists.
func ParseKind(value string) (Kind, error) {
	kind, exists := kinds[value]
	if !exists {
		return Kind{}, fmt.Errorf("invalid actor kind %q", value)
	}

	return kind, nil
}

// String returns the name of the kind.
func (k Kind) String() string {
	return k.value
}

// Equal provides support for the go-cmp package and testing.
func (k Kind) Equal(k2 Kind) bool {
	return k.value == k2.value
}

// =============================================================================

// Actor represents the authenticated caller for the duration of a request.
type Actor struct {
	ID       uuid.UUID
	Kind     Kind
	Role     role.Role
	TenantID uuid.UUID
}

// IsProvider reports whether the actor is the tenant owner.
func (a Actor) IsProvider() bool {
	return a.Kind.Equal(KindProvider)
}

// IsPrivileged reports whether the actor manages rosters rather than just
// appearing on them. Workers self-serve their own data only.
func (a Actor) IsPrivileged() bool {
	if a.IsProvider() {
		return true
	}

	return a.Role.Equal(role.TeamLead) || a.Role.Equal(role.ObjLead)
}

// subject is the enforcer subject string for this actor.
func (a Actor) subject() string {
	if a.IsProvider() {
		return "KIND:PROVIDER"
	}

	return "ROLE:" + a.Role.String()
}

// =============================================================================

// Resource identifies a route family for the route-level gate.
type Resource struct {
	value string
}

var (
	ResourceEmployees = Resource{"employees"}
	ResourceObjects   = Resource{"objects"}
	ResourceTemplates = Resource{"templates"}
	ResourceShifts    = Resource{"shifts"}
	ResourceSchedule  = Resource{"schedule"}
	ResourceReports   = Resource{"reports"}
)

// String returns the name of the resource.
func (r Resource) String() string {
	return r.value
}

// Action is what the route does to its resource.
type Action struct {
	value string
}

var (
	ActionRead  = Action{"read"}
	ActionWrite = Action{"write"}
)

// String returns the name of the action.
func (a Action) String() string {
	return a.value
}

// policies holds the role-scoped route permissions. Providers bypass the
// table entirely via the matcher. Team leads mirror the provider surface,
// object leads may also write shifts and templates but manage nothing
// else, and workers read their own slice of the roster.
var policies = [][]string{
	{"ROLE:team_lead", "employees", "read"},
	{"ROLE:team_lead", "employees", "write"},
	{"ROLE:team_lead", "objects", "read"},
	{"ROLE:team_lead", "objects", "write"},
	{"ROLE:team_lead", "templates", "read"},
	{"ROLE:team_lead", "templates", "write"},
	{"ROLE:team_lead", "shifts", "read"},
	{"ROLE:team_lead", "shifts", "write"},
	{"ROLE:team_lead", "schedule", "read"},
	{"ROLE:team_lead", "reports", "read"},

	{"ROLE:obj_lead", "employees", "read"},
	{"ROLE:obj_lead", "objects", "read"},
	{"ROLE:obj_lead", "templates", "read"},
	{"ROLE:obj_lead", "templates", "write"},
	{"ROLE:obj_lead", "shifts", "read"},
	{"ROLE:obj_lead", "shifts", "write"},
	{"ROLE:obj_lead", "schedule", "read"},
	{"ROLE:obj_lead", "reports", "read"},

	{"ROLE:worker", "employees", "read"},
	{"ROLE:worker", "objects", "read"},
	{"ROLE:worker", "shifts", "read"},
	{"ROLE:worker", "schedule", "read"},
	{"ROLE:worker", "reports", "read"},
}
