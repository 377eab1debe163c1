package domain

import (
	"testing"

	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

func TestScopeMatches(t *testing.T) {
	tests := []struct {
		name  string
		scope Scope
		n     Notification
		want  bool
	}{
		{"admin sees admin", ScopeFor(auth.RoleAdmin, 1), Notification{ForRole: ForAdmin}, true},
		{"admin sees all", ScopeFor(auth.RoleAdmin, 1), Notification{ForRole: ForAll}, true},
		{"admin does not see manager", ScopeFor(auth.RoleAdmin, 1), Notification{ForRole: ForManager}, false},

		{"manager sees manager", ScopeFor(auth.RoleManager, 5), Notification{ForRole: ForManager}, true},
		{"manager sees all", ScopeFor(auth.RoleManager, 5), Notification{ForRole: ForAll}, true},
		{"manager sees own admin alert", ScopeFor(auth.RoleManager, 5), Notification{ForRole: ForAdmin, ManagerID: 5}, true},
		{"manager does not see others admin alert", ScopeFor(auth.RoleManager, 5), Notification{ForRole: ForAdmin, ManagerID: 6}, false},

		{"staff sees all", ScopeFor(auth.RoleStaff, 9), Notification{ForRole: ForAll}, true},
		{"staff does not see admin", ScopeFor(auth.RoleStaff, 9), Notification{ForRole: ForAdmin}, false},
		{"staff does not see own raised alert", ScopeFor(auth.RoleStaff, 9), Notification{ForRole: ForAdmin, ManagerID: 9}, false},
		{"pharmacist sees all", ScopeFor(auth.RolePharmacist, 4), Notification{ForRole: ForAll}, true},
		{"pharmacist does not see manager", ScopeFor(auth.RolePharmacist, 4), Notification{ForRole: ForManager}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scope.Matches(&tt.n); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
