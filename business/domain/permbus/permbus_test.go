package permbus

import (
	"testing"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/types/role"
)

func TestResolve(t *testing.T) {
	leadID := uuid.New()
	otherLeadID := uuid.New()
	workerID := uuid.New()
	otherEmployeeID := uuid.New()

	ledObject := &Object{ID: uuid.New(), AssignedLeadID: &leadID}
	foreignObject := &Object{ID: uuid.New(), AssignedLeadID: &otherLeadID}
	unledObject := &Object{ID: uuid.New()}

	tests := []struct {
		name   string
		actor  Actor
		target Target
		want   Decision
	}{
		{
			name:   "owner assigns everywhere",
			actor:  Actor{ID: uuid.New(), Owner: true},
			target: Target{EmployeeID: otherEmployeeID, Object: foreignObject},
			want:   Decision{CanView: true, CanAssign: true},
		},
		{
			name:   "owner assigns objectless cells",
			actor:  Actor{ID: uuid.New(), Owner: true},
			target: Target{EmployeeID: otherEmployeeID},
			want:   Decision{CanView: true, CanAssign: true},
		},
		{
			name:   "team lead assigns everywhere",
			actor:  Actor{ID: uuid.New(), Role: role.TeamLead},
			target: Target{EmployeeID: otherEmployeeID, Object: foreignObject},
			want:   Decision{CanView: true, CanAssign: true},
		},
		{
			name:   "object lead assigns own object",
			actor:  Actor{ID: leadID, Role: role.ObjLead},
			target: Target{EmployeeID: otherEmployeeID, Object: ledObject},
			want:   Decision{CanView: true, CanAssign: true},
		},
		{
			name:   "object lead denied on foreign object",
			actor:  Actor{ID: leadID, Role: role.ObjLead},
			target: Target{EmployeeID: otherEmployeeID, Object: foreignObject},
			want:   Decision{CanView: true},
		},
		{
			name:   "object lead denied on unled object",
			actor:  Actor{ID: leadID, Role: role.ObjLead},
			target: Target{EmployeeID: otherEmployeeID, Object: unledObject},
			want:   Decision{CanView: true},
		},
		{
			name:   "object lead denied on objectless cell",
			actor:  Actor{ID: leadID, Role: role.ObjLead},
			target: Target{EmployeeID: otherEmployeeID},
			want:   Decision{CanView: true},
		},
		{
			name:   "worker views own row only",
			actor:  Actor{ID: workerID, Role: role.Worker},
			target: Target{EmployeeID: workerID, Object: ledObject},
			want:   Decision{CanView: true},
		},
		{
			name:   "worker denied on foreign row",
			actor:  Actor{ID: workerID, Role: role.Worker},
			target: Target{EmployeeID: otherEmployeeID},
			want:   Decision{},
		},
		{
			name:   "unknown role denied",
			actor:  Actor{ID: uuid.New()},
			target: Target{EmployeeID: otherEmployeeID, Object: ledObject},
			want:   Decision{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.actor, tt.target)
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
