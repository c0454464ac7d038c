// Package serialize renders entities as transport-safe mappings. Every
// relation is expanded in exactly one direction, which is what keeps the
// entity graph cycle-free: members expand into their projects and tasks,
// projects into their tasks, tasks into nothing but scalar ids.
package serialize

import (
	"time"

	"github.com/taskhive/taskhive/internal/models"
)

const dateLayout = "2006-01-02"

// Date renders a date as ISO-8601 YYYY-MM-DD.
func Date(t time.Time) string {
	return t.Format(dateLayout)
}

func datePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return Date(*t)
}

// Task renders scalar fields only; the project and assigned member appear
// as foreign-key ids, never as nested objects.
func Task(t models.Task) map[string]interface{} {
	return map[string]interface{}{
		"id":                 t.ID,
		"task_name":          t.TaskName,
		"description":        t.Description,
		"status":             t.Status,
		"deadline":           datePtr(t.Deadline),
		"project_id":         t.ProjectID,
		"assigned_member_id": t.AssignedMemberID,
	}
}

// Project includes its tasks but never its owner member.
func Project(p models.Project, tasks []models.Task) map[string]interface{} {
	rendered := make([]map[string]interface{}, 0, len(tasks))
	for _, t := range tasks {
		rendered = append(rendered, Task(t))
	}

	return map[string]interface{}{
		"id":           p.ID,
		"project_name": p.ProjectName,
		"details":      p.Details,
		"deadline":     datePtr(p.Deadline),
		"owner_id":     p.OwnerID,
		"tasks":        rendered,
	}
}

// Member includes its owned projects (each with that project's tasks) and
// its assigned tasks. The credential never appears.
func Member(m models.Member, owned []models.Project, tasksByProject map[uint][]models.Task, assigned []models.Task) map[string]interface{} {
	projects := make([]map[string]interface{}, 0, len(owned))
	for _, p := range owned {
		projects = append(projects, Project(p, tasksByProject[p.ID]))
	}

	assignedTasks := make([]map[string]interface{}, 0, len(assigned))
	for _, t := range assigned {
		assignedTasks = append(assignedTasks, Task(t))
	}

	return map[string]interface{}{
		"id":             m.ID,
		"username":       m.Username,
		"full_name":      m.FullName,
		"email":          m.Email,
		"role":           m.Role,
		"gender":         m.Gender,
		"member_no":      m.MemberNo,
		"date_of_birth":  Date(m.DateOfBirth),
		"member_status":  m.MemberStatus,
		"id_no":          m.IDNo,
		"address":        m.Address,
		"projects_owned": projects,
		"assigned_tasks": assignedTasks,
	}
}
