package authz

import (
	"testing"

	"github.com/taskhive/taskhive/internal/apperrors"
	"github.com/taskhive/taskhive/internal/models"
)

func TestAuthorizePolicy(t *testing.T) {
	owner := &Identity{ID: 1, Username: "alice", Role: models.RoleProjectOwner}
	member := &Identity{ID: 2, Username: "bob", Role: models.RoleMember}

	cases := []struct {
		name     string
		identity *Identity
		action   Action
		wantKind apperrors.Kind
		wantErr  bool
	}{
		{"project create as owner", owner, ActionCreateProject, 0, false},
		{"project create as member", member, ActionCreateProject, apperrors.KindAuthorization, true},
		{"project create anonymous", nil, ActionCreateProject, apperrors.KindAuthentication, true},
		{"task create as member", member, ActionCreateTask, 0, false},
		{"task create as owner", owner, ActionCreateTask, 0, false},
		{"task create anonymous", nil, ActionCreateTask, apperrors.KindAuthentication, true},
		{"change password anonymous", nil, ActionChangePassword, apperrors.KindAuthentication, true},
		{"change password as member", member, ActionChangePassword, 0, false},
		{"list members anonymous", nil, ActionListMembers, 0, false},
		{"update project anonymous", nil, ActionUpdateProject, 0, false},
		{"delete member anonymous", nil, ActionDeleteMember, 0, false},
		{"login anonymous", nil, ActionLogin, 0, false},
		{"unknown action denied", owner, Action("drop_tables"), apperrors.KindAuthorization, true},
	}

	guard := NewGuard()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := guard.Authorize(tc.identity, tc.action)
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("expected allow, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected deny")
			}
			if !apperrors.IsKind(err, tc.wantKind) {
				t.Fatalf("expected kind %d, got %v", tc.wantKind, err)
			}
		})
	}
}
