package models

import "time"

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// TaskStatuses lists the values accepted by the status column. Any status
// may follow any other; there are no transition constraints.
var TaskStatuses = []string{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}

type Task struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	TaskName         string     `gorm:"size:100;not null" json:"task_name"`
	Description      string     `gorm:"size:500" json:"description"`
	Status           string     `gorm:"size:20;not null;default:pending" json:"status"`
	Deadline         *time.Time `gorm:"type:date" json:"deadline"`
	ProjectID        uint       `gorm:"not null;index" json:"project_id"`
	AssignedMemberID uint       `gorm:"not null;index" json:"assigned_member_id"`

	// Relationships
	Project        Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	AssignedMember Member  `gorm:"foreignKey:AssignedMemberID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}
