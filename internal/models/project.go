package models

import "time"

type Project struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProjectName string     `gorm:"size:100;not null" json:"project_name"`
	Details     string     `gorm:"size:500" json:"details"`
	Deadline    *time.Time `gorm:"type:date" json:"deadline"`
	OwnerID     uint       `gorm:"not null;index" json:"owner_id"`

	// Relationships
	Owner Member `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Tasks []Task `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (Project) TableName() string {
	return "projects"
}
