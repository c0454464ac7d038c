package models

import "time"

const (
	RoleMember       = "member"
	RoleProjectOwner = "project_owner"
)

// Roles lists the values accepted by the role column.
var Roles = []string{RoleMember, RoleProjectOwner}

type Member struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	FullName     string    `gorm:"size:100;not null" json:"full_name"`
	Credential   string    `gorm:"column:password_hash;not null" json:"-"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Role         string    `gorm:"size:20;not null;default:member" json:"role"`
	Gender       string    `gorm:"size:10;not null" json:"gender"`
	MemberNo     string    `gorm:"size:50;uniqueIndex;not null" json:"member_no"`
	DateOfBirth  time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	MemberStatus string    `gorm:"size:20;not null" json:"member_status"`
	IDNo         string    `gorm:"size:20;uniqueIndex;not null" json:"id_no"`
	Address      string    `gorm:"size:200" json:"address"`

	// Relationships
	OwnedProjects []Project `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	AssignedTasks []Task    `gorm:"foreignKey:AssignedMemberID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (Member) TableName() string {
	return "members"
}
