package serialize

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/taskhive/taskhive/internal/models"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestTaskScalarOnly(t *testing.T) {
	deadline := date(2025, 3, 1)
	rendered := Task(models.Task{
		ID:               3,
		TaskName:         "Write docs",
		Status:           models.TaskStatusPending,
		Deadline:         &deadline,
		ProjectID:        1,
		AssignedMemberID: 2,
	})

	if rendered["deadline"] != "2025-03-01" {
		t.Fatalf("expected ISO date, got %v", rendered["deadline"])
	}
	if rendered["project_id"] != uint(1) || rendered["assigned_member_id"] != uint(2) {
		t.Fatalf("expected scalar foreign keys, got %v", rendered)
	}
	for _, key := range []string{"project", "assigned_member", "tasks"} {
		if _, ok := rendered[key]; ok {
			t.Fatalf("task must not expand relations, found %q", key)
		}
	}
}

func TestNilDeadlineRendersNull(t *testing.T) {
	rendered := Task(models.Task{ID: 1, TaskName: "x", Status: "pending", ProjectID: 1, AssignedMemberID: 1})

	if rendered["deadline"] != nil {
		t.Fatalf("expected nil deadline, got %v", rendered["deadline"])
	}
}

func TestProjectExcludesOwner(t *testing.T) {
	rendered := Project(models.Project{ID: 1, ProjectName: "P1", OwnerID: 9}, nil)

	if rendered["owner_id"] != uint(9) {
		t.Fatalf("expected owner_id scalar, got %v", rendered["owner_id"])
	}
	if _, ok := rendered["owner"]; ok {
		t.Fatalf("project must not expand its owner")
	}
	if tasks, ok := rendered["tasks"].([]map[string]interface{}); !ok || len(tasks) != 0 {
		t.Fatalf("expected empty tasks slice, got %v", rendered["tasks"])
	}
}

func TestMemberGraphBreaksCycles(t *testing.T) {
	member := models.Member{
		ID:           1,
		Username:     "alice",
		FullName:     "Alice",
		Email:        "a@x.com",
		Role:         models.RoleProjectOwner,
		Gender:       "F",
		MemberNo:     "M000001",
		DateOfBirth:  date(1990, 1, 1),
		MemberStatus: "active",
		IDNo:         "ID1",
		Credential:   "$2a$10$secret",
	}
	project := models.Project{ID: 1, ProjectName: "P1", OwnerID: 1}
	task := models.Task{ID: 1, TaskName: "T1", Status: "pending", ProjectID: 1, AssignedMemberID: 1}

	rendered := Member(member, []models.Project{project}, map[uint][]models.Task{1: {task}}, []models.Task{task})

	// The whole graph must be expressible as JSON, which it cannot be if
	// any relation loops back.
	raw, err := json.Marshal(rendered)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if rendered["date_of_birth"] != "1990-01-01" {
		t.Fatalf("expected ISO date of birth, got %v", rendered["date_of_birth"])
	}

	projects, ok := rendered["projects_owned"].([]map[string]interface{})
	if !ok || len(projects) != 1 {
		t.Fatalf("expected one owned project, got %v", rendered["projects_owned"])
	}
	if _, ok := projects[0]["owner"]; ok {
		t.Fatalf("owned project must not serialize its owner back")
	}
	tasks, ok := projects[0]["tasks"].([]map[string]interface{})
	if !ok || len(tasks) != 1 {
		t.Fatalf("expected the project's task to be nested, got %v", projects[0]["tasks"])
	}
	for _, key := range []string{"assigned_member", "member", "projects_owned"} {
		if _, ok := tasks[0][key]; ok {
			t.Fatalf("nested task must stay scalar, found %q", key)
		}
	}

	assigned, ok := rendered["assigned_tasks"].([]map[string]interface{})
	if !ok || len(assigned) != 1 {
		t.Fatalf("expected one assigned task, got %v", rendered["assigned_tasks"])
	}

	if _, ok := rendered["credential"]; ok {
		t.Fatalf("credential must never be serialized")
	}
	if strings.Contains(string(raw), "$2a$10$secret") {
		t.Fatalf("credential hash leaked into output")
	}
}
