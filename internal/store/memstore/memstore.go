// Package memstore is a mutex-guarded, in-memory implementation of the
// store contract. It backs the test suite and mirrors the invariant checks
// of the postgres store exactly.
package memstore

import (
	"sync"

	"github.com/taskhive/taskhive/internal/apperrors"
	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/store"
)

type Store struct {
	mu sync.Mutex

	members  map[uint]models.Member
	projects map[uint]models.Project
	tasks    map[uint]models.Task

	memberOrder  []uint
	projectOrder []uint
	taskOrder    []uint

	memberSeq  uint
	projectSeq uint
	taskSeq    uint
}

func New() *Store {
	return &Store{
		members:  make(map[uint]models.Member),
		projects: make(map[uint]models.Project),
		tasks:    make(map[uint]models.Task),
	}
}

func (s *Store) CreateMember(m *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := store.ValidateMember(m); err != nil {
		return err
	}
	if err := s.checkMemberUniquenessLocked(m, 0); err != nil {
		return err
	}

	s.memberSeq++
	m.ID = s.memberSeq
	s.members[m.ID] = *m
	s.memberOrder = append(s.memberOrder, m.ID)
	return nil
}

func (s *Store) MemberByID(id uint) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memberLocked(id)
}

func (s *Store) MemberByUsername(username string) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.memberOrder {
		if m := s.members[id]; m.Username == username {
			found := m
			return &found, nil
		}
	}
	return nil, apperrors.NotFound("User not found")
}

func (s *Store) Members() ([]models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := make([]models.Member, 0, len(s.memberOrder))
	for _, id := range s.memberOrder {
		members = append(members, s.members[id])
	}
	return members, nil
}

func (s *Store) UpdateMember(id uint, patch store.MemberPatch) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.members[id]
	if !ok {
		return nil, apperrors.NotFound("User not found")
	}

	updated := current
	patch.Apply(&updated)

	if err := store.ValidateMember(&updated); err != nil {
		return nil, err
	}
	if err := s.checkMemberUniquenessLocked(&updated, id); err != nil {
		return nil, err
	}

	s.members[id] = updated
	found := updated
	return &found, nil
}

func (s *Store) DeleteMember(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; !ok {
		return apperrors.NotFound("User not found")
	}

	ownedIDs := make([]uint, 0)
	for _, projectID := range s.projectOrder {
		if s.projects[projectID].OwnerID == id {
			ownedIDs = append(ownedIDs, projectID)
		}
	}
	for _, projectID := range ownedIDs {
		s.removeProjectLocked(projectID)
	}

	assignedIDs := make([]uint, 0)
	for _, taskID := range s.taskOrder {
		if s.tasks[taskID].AssignedMemberID == id {
			assignedIDs = append(assignedIDs, taskID)
		}
	}
	for _, taskID := range assignedIDs {
		s.removeTaskLocked(taskID)
	}

	delete(s.members, id)
	s.memberOrder = removeID(s.memberOrder, id)
	return nil
}

func (s *Store) CreateProject(p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := store.ValidateProject(p); err != nil {
		return err
	}
	if _, ok := s.members[p.OwnerID]; !ok {
		return apperrors.NotFound("Owner not found")
	}

	s.projectSeq++
	p.ID = s.projectSeq
	s.projects[p.ID] = *p
	s.projectOrder = append(s.projectOrder, p.ID)
	return nil
}

func (s *Store) ProjectByID(id uint) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, apperrors.NotFound("Project not found")
	}
	found := p
	return &found, nil
}

func (s *Store) Projects() ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := make([]models.Project, 0, len(s.projectOrder))
	for _, id := range s.projectOrder {
		projects = append(projects, s.projects[id])
	}
	return projects, nil
}

func (s *Store) ProjectsByOwner(ownerID uint) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := make([]models.Project, 0)
	for _, id := range s.projectOrder {
		if p := s.projects[id]; p.OwnerID == ownerID {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (s *Store) UpdateProject(id uint, patch store.ProjectPatch) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.projects[id]
	if !ok {
		return nil, apperrors.NotFound("Project not found")
	}

	updated := current
	patch.Apply(&updated)

	if err := store.ValidateProject(&updated); err != nil {
		return nil, err
	}

	s.projects[id] = updated
	found := updated
	return &found, nil
}

func (s *Store) DeleteProject(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return apperrors.NotFound("Project not found")
	}
	s.removeProjectLocked(id)
	return nil
}

func (s *Store) CreateTask(t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Status == "" {
		t.Status = models.TaskStatusPending
	}
	if err := store.ValidateTask(t); err != nil {
		return err
	}
	if _, ok := s.projects[t.ProjectID]; !ok {
		return apperrors.NotFound("Project not found")
	}
	if _, ok := s.members[t.AssignedMemberID]; !ok {
		return apperrors.NotFound("Assigned member not found")
	}

	s.taskSeq++
	t.ID = s.taskSeq
	s.tasks[t.ID] = *t
	s.taskOrder = append(s.taskOrder, t.ID)
	return nil
}

func (s *Store) TaskByID(id uint) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, apperrors.NotFound("Task not found")
	}
	found := t
	return &found, nil
}

func (s *Store) Tasks() ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]models.Task, 0, len(s.taskOrder))
	for _, id := range s.taskOrder {
		tasks = append(tasks, s.tasks[id])
	}
	return tasks, nil
}

func (s *Store) TasksByProject(projectID uint) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasksByProjectLocked(projectID), nil
}

func (s *Store) TasksByAssignee(memberID uint) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]models.Task, 0)
	for _, id := range s.taskOrder {
		if t := s.tasks[id]; t.AssignedMemberID == memberID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (s *Store) UpdateTask(id uint, patch store.TaskPatch) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tasks[id]
	if !ok {
		return nil, apperrors.NotFound("Task not found")
	}

	updated := current
	patch.Apply(&updated)

	if err := store.ValidateTask(&updated); err != nil {
		return nil, err
	}
	if patch.ProjectID != nil {
		if _, ok := s.projects[updated.ProjectID]; !ok {
			return nil, apperrors.NotFound("Project not found")
		}
	}
	if patch.AssignedMemberID != nil {
		if _, ok := s.members[updated.AssignedMemberID]; !ok {
			return nil, apperrors.NotFound("Assigned member not found")
		}
	}

	s.tasks[id] = updated
	found := updated
	return &found, nil
}

func (s *Store) DeleteTask(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return apperrors.NotFound("Task not found")
	}
	s.removeTaskLocked(id)
	return nil
}

func (s *Store) memberLocked(id uint) (*models.Member, error) {
	m, ok := s.members[id]
	if !ok {
		return nil, apperrors.NotFound("User not found")
	}
	found := m
	return &found, nil
}

func (s *Store) checkMemberUniquenessLocked(m *models.Member, selfID uint) error {
	for _, id := range s.memberOrder {
		if id == selfID {
			continue
		}
		other := s.members[id]
		switch {
		case other.Username == m.Username:
			return apperrors.Validation("Username already exists. Please use a different one.")
		case other.Email == m.Email:
			return apperrors.Validation("Email already exists. Please use a different one.")
		case other.MemberNo == m.MemberNo:
			return apperrors.Validation("Member number already exists. Please use a different one.")
		case other.IDNo == m.IDNo:
			return apperrors.Validation("ID number already exists. Please use a different one.")
		}
	}
	return nil
}

func (s *Store) removeProjectLocked(id uint) {
	for _, t := range s.tasksByProjectLocked(id) {
		s.removeTaskLocked(t.ID)
	}
	delete(s.projects, id)
	s.projectOrder = removeID(s.projectOrder, id)
}

func (s *Store) removeTaskLocked(id uint) {
	delete(s.tasks, id)
	s.taskOrder = removeID(s.taskOrder, id)
}

func (s *Store) tasksByProjectLocked(projectID uint) []models.Task {
	tasks := make([]models.Task, 0)
	for _, id := range s.taskOrder {
		if t := s.tasks[id]; t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

func removeID(ids []uint, id uint) []uint {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
