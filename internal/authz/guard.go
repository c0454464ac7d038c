// Package authz decides allow/deny for every inbound action from a single
// declarative policy table. The guard never mutates state and never touches
// storage; resolving the identity is the transport layer's job.
package authz

import (
	"github.com/taskhive/taskhive/internal/apperrors"
	"github.com/taskhive/taskhive/internal/models"
)

// Identity is a resolved member identity attached to a request.
type Identity struct {
	ID       uint
	Username string
	Role     string
}

type Action string

const (
	ActionSignup         Action = "signup"
	ActionLogin          Action = "login"
	ActionCheckSession   Action = "check_session"
	ActionLogout         Action = "logout"
	ActionChangePassword Action = "change_password"

	ActionListMembers  Action = "list_members"
	ActionCreateMember Action = "create_member"
	ActionReadMember   Action = "read_member"
	ActionUpdateMember Action = "update_member"
	ActionDeleteMember Action = "delete_member"

	ActionListProjects  Action = "list_projects"
	ActionCreateProject Action = "create_project"
	ActionReadProject   Action = "read_project"
	ActionUpdateProject Action = "update_project"
	ActionDeleteProject Action = "delete_project"

	ActionListTasks  Action = "list_tasks"
	ActionCreateTask Action = "create_task"
	ActionReadTask   Action = "read_task"
	ActionUpdateTask Action = "update_task"
	ActionDeleteTask Action = "delete_task"
)

// Requirement gates an action. Zero value means open access, which several
// actions deliberately have; listing them here keeps the permissiveness
// declared instead of accidental.
type Requirement struct {
	Identity bool
	Roles    []string
}

var policy = map[Action]Requirement{
	ActionSignup:         {},
	ActionLogin:          {},
	ActionCheckSession:   {Identity: true},
	ActionLogout:         {Identity: true},
	ActionChangePassword: {Identity: true},

	ActionListMembers:  {},
	ActionCreateMember: {},
	ActionReadMember:   {},
	ActionUpdateMember: {},
	ActionDeleteMember: {},

	ActionListProjects:  {},
	ActionCreateProject: {Identity: true, Roles: []string{models.RoleProjectOwner}},
	ActionReadProject:   {},
	ActionUpdateProject: {},
	ActionDeleteProject: {},

	ActionListTasks:  {},
	ActionCreateTask: {Identity: true},
	ActionReadTask:   {},
	ActionUpdateTask: {},
	ActionDeleteTask: {},
}

type Guard struct{}

func NewGuard() *Guard {
	return &Guard{}
}

// Authorize checks identity against the policy for action. Actions missing
// from the table are denied.
func (g *Guard) Authorize(identity *Identity, action Action) error {
	req, ok := policy[action]
	if !ok {
		return apperrors.Authorization("Action %q is not permitted", action)
	}

	if !req.Identity {
		return nil
	}

	if identity == nil {
		return apperrors.Authentication("Authentication required")
	}

	if len(req.Roles) == 0 {
		return nil
	}

	for _, role := range req.Roles {
		if identity.Role == role {
			return nil
		}
	}

	return apperrors.Authorization("User not authorized to perform this action")
}
