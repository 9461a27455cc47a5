package models

import "time"

const AssignmentRoleAssignee = "assignee"

type CardAssignment struct {
	CardID     uint64    `gorm:"primarykey" json:"card_id"`
	UserID     uint64    `gorm:"primarykey" json:"user_id"`
	Role       string    `gorm:"type:varchar(20);not null;default:'assignee'" json:"role"`
	AssignedAt time.Time `json:"assigned_at"`

	// Relations
	Card Card `gorm:"foreignKey:CardID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
