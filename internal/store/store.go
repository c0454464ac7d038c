// Package store defines the entity store contract: CRUD plus list per
// entity, with uniqueness and foreign-key invariants enforced at this
// boundary so violations surface as typed errors rather than driver
// failures. Every mutation either fully applies or leaves prior state
// unchanged.
package store

import (
	"strings"
	"time"

	"github.com/taskhive/taskhive/internal/apperrors"
	"github.com/taskhive/taskhive/internal/models"
)

type Store interface {
	CreateMember(m *models.Member) error
	MemberByID(id uint) (*models.Member, error)
	MemberByUsername(username string) (*models.Member, error)
	Members() ([]models.Member, error)
	UpdateMember(id uint, patch MemberPatch) (*models.Member, error)
	// DeleteMember removes the member together with its owned projects
	// (and their tasks) and any tasks assigned to it, atomically.
	DeleteMember(id uint) error

	CreateProject(p *models.Project) error
	ProjectByID(id uint) (*models.Project, error)
	Projects() ([]models.Project, error)
	ProjectsByOwner(ownerID uint) ([]models.Project, error)
	UpdateProject(id uint, patch ProjectPatch) (*models.Project, error)
	// DeleteProject removes the project and every task referencing it in
	// the same atomic operation.
	DeleteProject(id uint) error

	CreateTask(t *models.Task) error
	TaskByID(id uint) (*models.Task, error)
	Tasks() ([]models.Task, error)
	TasksByProject(projectID uint) ([]models.Task, error)
	TasksByAssignee(memberID uint) ([]models.Task, error)
	UpdateTask(id uint, patch TaskPatch) (*models.Task, error)
	DeleteTask(id uint) error
}

// MemberPatch is a sparse update: only non-nil fields are written.
type MemberPatch struct {
	Username     *string
	FullName     *string
	Credential   *string
	Email        *string
	Role         *string
	Gender       *string
	MemberNo     *string
	DateOfBirth  *time.Time
	MemberStatus *string
	IDNo         *string
	Address      *string
}

// Apply overwrites only the fields the patch supplies.
func (p MemberPatch) Apply(m *models.Member) {
	if p.Username != nil {
		m.Username = *p.Username
	}
	if p.FullName != nil {
		m.FullName = *p.FullName
	}
	if p.Credential != nil {
		m.Credential = *p.Credential
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.Role != nil {
		m.Role = *p.Role
	}
	if p.Gender != nil {
		m.Gender = *p.Gender
	}
	if p.MemberNo != nil {
		m.MemberNo = *p.MemberNo
	}
	if p.DateOfBirth != nil {
		m.DateOfBirth = *p.DateOfBirth
	}
	if p.MemberStatus != nil {
		m.MemberStatus = *p.MemberStatus
	}
	if p.IDNo != nil {
		m.IDNo = *p.IDNo
	}
	if p.Address != nil {
		m.Address = *p.Address
	}
}

type ProjectPatch struct {
	ProjectName *string
	Details     *string
	Deadline    *time.Time
}

func (p ProjectPatch) Apply(target *models.Project) {
	if p.ProjectName != nil {
		target.ProjectName = *p.ProjectName
	}
	if p.Details != nil {
		target.Details = *p.Details
	}
	if p.Deadline != nil {
		target.Deadline = p.Deadline
	}
}

type TaskPatch struct {
	TaskName         *string
	Description      *string
	Status           *string
	Deadline         *time.Time
	ProjectID        *uint
	AssignedMemberID *uint
}

func (p TaskPatch) Apply(t *models.Task) {
	if p.TaskName != nil {
		t.TaskName = *p.TaskName
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Deadline != nil {
		t.Deadline = p.Deadline
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	if p.AssignedMemberID != nil {
		t.AssignedMemberID = *p.AssignedMemberID
	}
}

// ValidateMember checks the field-level invariants every implementation
// enforces before insert and after applying a patch. Uniqueness and
// foreign keys are implementation concerns.
func ValidateMember(m *models.Member) error {
	switch {
	case m.Username == "":
		return apperrors.Validation("username is required")
	case m.FullName == "":
		return apperrors.Validation("full_name is required")
	case m.Email == "":
		return apperrors.Validation("email is required")
	case m.Gender == "":
		return apperrors.Validation("gender is required")
	case m.MemberNo == "":
		return apperrors.Validation("member_no is required")
	case m.DateOfBirth.IsZero():
		return apperrors.Validation("date_of_birth is required")
	case m.MemberStatus == "":
		return apperrors.Validation("member_status is required")
	case m.IDNo == "":
		return apperrors.Validation("id_no is required")
	case m.Credential == "":
		return apperrors.Validation("password is required")
	}

	if !strings.Contains(m.Email, "@") {
		return apperrors.Validation("Invalid email format")
	}

	if !validRole(m.Role) {
		return apperrors.Validation("Role must be either 'member', 'project_owner'")
	}

	return nil
}

func ValidateProject(p *models.Project) error {
	if p.ProjectName == "" {
		return apperrors.Validation("project_name is required")
	}
	if p.OwnerID == 0 {
		return apperrors.Validation("owner_id is required")
	}
	return nil
}

func ValidateTask(t *models.Task) error {
	switch {
	case t.TaskName == "":
		return apperrors.Validation("task_name is required")
	case t.ProjectID == 0:
		return apperrors.Validation("project_id is required")
	case t.AssignedMemberID == 0:
		return apperrors.Validation("assigned_member_id is required")
	}

	if !validStatus(t.Status) {
		return apperrors.Validation("Status must be one of 'pending', 'in-progress', 'completed'")
	}

	return nil
}

func validRole(role string) bool {
	for _, r := range models.Roles {
		if role == r {
			return true
		}
	}
	return false
}

func validStatus(status string) bool {
	for _, s := range models.TaskStatuses {
		if status == s {
			return true
		}
	}
	return false
}
