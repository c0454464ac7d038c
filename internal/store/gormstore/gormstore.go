// Package gormstore implements the store contract on postgres via gorm.
// Every mutation runs inside a transaction so a failed create/update/delete
// never leaves partial state visible.
package gormstore

import (
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taskhive/taskhive/internal/apperrors"
	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/store"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateMember(m *models.Member) error {
	if err := store.ValidateMember(m); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkMemberUniqueness(tx, m, 0); err != nil {
			return err
		}
		if err := tx.Create(m).Error; err != nil {
			return translateCreateErr(err, "Failed to create user")
		}
		return nil
	})
}

func (s *Store) MemberByID(id uint) (*models.Member, error) {
	var m models.Member
	if err := s.db.First(&m, id).Error; err != nil {
		return nil, translateReadErr(err, "User not found")
	}
	return &m, nil
}

func (s *Store) MemberByUsername(username string) (*models.Member, error) {
	var m models.Member
	if err := s.db.Where("username = ?", username).First(&m).Error; err != nil {
		return nil, translateReadErr(err, "User not found")
	}
	return &m, nil
}

func (s *Store) Members() ([]models.Member, error) {
	var members []models.Member
	if err := s.db.Order("id").Find(&members).Error; err != nil {
		return nil, internal(err, "Failed to retrieve users")
	}
	return members, nil
}

func (s *Store) UpdateMember(id uint, patch store.MemberPatch) (*models.Member, error) {
	var updated models.Member

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&updated, id).Error; err != nil {
			return translateReadErr(err, "User not found")
		}

		patch.Apply(&updated)

		if err := store.ValidateMember(&updated); err != nil {
			return err
		}
		if err := checkMemberUniqueness(tx, &updated, id); err != nil {
			return err
		}
		if err := tx.Save(&updated).Error; err != nil {
			return translateCreateErr(err, "Failed to update user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Store) DeleteMember(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var m models.Member
		if err := tx.First(&m, id).Error; err != nil {
			return translateReadErr(err, "User not found")
		}

		var ownedIDs []uint
		if err := tx.Model(&models.Project{}).Where("owner_id = ?", id).Pluck("id", &ownedIDs).Error; err != nil {
			return internal(err, "Failed to delete user")
		}
		if len(ownedIDs) > 0 {
			if err := tx.Where("project_id IN ?", ownedIDs).Delete(&models.Task{}).Error; err != nil {
				return internal(err, "Failed to delete user")
			}
			if err := tx.Where("id IN ?", ownedIDs).Delete(&models.Project{}).Error; err != nil {
				return internal(err, "Failed to delete user")
			}
		}
		if err := tx.Where("assigned_member_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return internal(err, "Failed to delete user")
		}
		if err := tx.Delete(&m).Error; err != nil {
			return internal(err, "Failed to delete user")
		}
		return nil
	})
}

func (s *Store) CreateProject(p *models.Project) error {
	if err := store.ValidateProject(p); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Member{}, p.OwnerID, "Owner not found"); err != nil {
			return err
		}
		if err := tx.Create(p).Error; err != nil {
			return translateCreateErr(err, "Failed to create project")
		}
		return nil
	})
}

func (s *Store) ProjectByID(id uint) (*models.Project, error) {
	var p models.Project
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, translateReadErr(err, "Project not found")
	}
	return &p, nil
}

func (s *Store) Projects() ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Order("id").Find(&projects).Error; err != nil {
		return nil, internal(err, "Failed to retrieve projects")
	}
	return projects, nil
}

func (s *Store) ProjectsByOwner(ownerID uint) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Where("owner_id = ?", ownerID).Order("id").Find(&projects).Error; err != nil {
		return nil, internal(err, "Failed to retrieve projects")
	}
	return projects, nil
}

func (s *Store) UpdateProject(id uint, patch store.ProjectPatch) (*models.Project, error) {
	var updated models.Project

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&updated, id).Error; err != nil {
			return translateReadErr(err, "Project not found")
		}

		patch.Apply(&updated)

		if err := store.ValidateProject(&updated); err != nil {
			return err
		}
		if err := tx.Save(&updated).Error; err != nil {
			return internal(err, "Failed to update project")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Store) DeleteProject(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var p models.Project
		if err := tx.First(&p, id).Error; err != nil {
			return translateReadErr(err, "Project not found")
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return internal(err, "Failed to delete project")
		}
		if err := tx.Delete(&p).Error; err != nil {
			return internal(err, "Failed to delete project")
		}
		return nil
	})
}

func (s *Store) CreateTask(t *models.Task) error {
	if t.Status == "" {
		t.Status = models.TaskStatusPending
	}
	if err := store.ValidateTask(t); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Project{}, t.ProjectID, "Project not found"); err != nil {
			return err
		}
		if err := ensureExists(tx, &models.Member{}, t.AssignedMemberID, "Assigned member not found"); err != nil {
			return err
		}
		if err := tx.Create(t).Error; err != nil {
			return translateCreateErr(err, "Failed to create task")
		}
		return nil
	})
}

func (s *Store) TaskByID(id uint) (*models.Task, error) {
	var t models.Task
	if err := s.db.First(&t, id).Error; err != nil {
		return nil, translateReadErr(err, "Task not found")
	}
	return &t, nil
}

func (s *Store) Tasks() ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.Order("id").Find(&tasks).Error; err != nil {
		return nil, internal(err, "Failed to retrieve tasks")
	}
	return tasks, nil
}

func (s *Store) TasksByProject(projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.Where("project_id = ?", projectID).Order("id").Find(&tasks).Error; err != nil {
		return nil, internal(err, "Failed to retrieve tasks")
	}
	return tasks, nil
}

func (s *Store) TasksByAssignee(memberID uint) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.Where("assigned_member_id = ?", memberID).Order("id").Find(&tasks).Error; err != nil {
		return nil, internal(err, "Failed to retrieve tasks")
	}
	return tasks, nil
}

func (s *Store) UpdateTask(id uint, patch store.TaskPatch) (*models.Task, error) {
	var updated models.Task

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&updated, id).Error; err != nil {
			return translateReadErr(err, "Task not found")
		}

		patch.Apply(&updated)

		if err := store.ValidateTask(&updated); err != nil {
			return err
		}
		if patch.ProjectID != nil {
			if err := ensureExists(tx, &models.Project{}, updated.ProjectID, "Project not found"); err != nil {
				return err
			}
		}
		if patch.AssignedMemberID != nil {
			if err := ensureExists(tx, &models.Member{}, updated.AssignedMemberID, "Assigned member not found"); err != nil {
				return err
			}
		}
		if err := tx.Save(&updated).Error; err != nil {
			return internal(err, "Failed to update task")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Store) DeleteTask(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var t models.Task
		if err := tx.First(&t, id).Error; err != nil {
			return translateReadErr(err, "Task not found")
		}
		if err := tx.Delete(&t).Error; err != nil {
			return internal(err, "Failed to delete task")
		}
		return nil
	})
}

func checkMemberUniqueness(tx *gorm.DB, m *models.Member, selfID uint) error {
	checks := []struct {
		column  string
		value   string
		message string
	}{
		{"username", m.Username, "Username already exists. Please use a different one."},
		{"email", m.Email, "Email already exists. Please use a different one."},
		{"member_no", m.MemberNo, "Member number already exists. Please use a different one."},
		{"id_no", m.IDNo, "ID number already exists. Please use a different one."},
	}

	for _, check := range checks {
		var count int64
		query := tx.Model(&models.Member{}).Where(check.column+" = ?", check.value)
		if selfID != 0 {
			query = query.Where("id <> ?", selfID)
		}
		if err := query.Count(&count).Error; err != nil {
			return internal(err, "Failed to validate user")
		}
		if count > 0 {
			return apperrors.Validation("%s", check.message)
		}
	}
	return nil
}

func ensureExists(tx *gorm.DB, model interface{}, id uint, message string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return internal(err, "Failed to validate reference")
	}
	if count == 0 {
		return apperrors.NotFound("%s", message)
	}
	return nil
}

func translateReadErr(err error, notFoundMessage string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("%s", notFoundMessage)
	}
	return internal(err, "Internal server error")
}

// translateCreateErr catches unique violations that slip past the explicit
// checks when two requests race on the same value.
func translateCreateErr(err error, message string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperrors.Validation("Value already exists. Please use a different one.")
	}
	return internal(err, message)
}

func internal(err error, message string) error {
	log.Printf("store: %v", err)
	return apperrors.Internal(err, message)
}
