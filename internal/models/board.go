package models

import "time"

type BoardVisibility string

const (
	VisibilityPrivate      BoardVisibility = "private"
	VisibilityPublic       BoardVisibility = "public"
	VisibilityWorkspace    BoardVisibility = "workspace"
	VisibilityOrganization BoardVisibility = "organization"
)

// Valid reports whether v is one of the known visibility values.
func (v BoardVisibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityPublic, VisibilityWorkspace, VisibilityOrganization:
		return true
	}
	return false
}

type Board struct {
	ID         uint64          `gorm:"primarykey" json:"id"`
	Title      string          `gorm:"type:varchar(255);not null" json:"title"`
	OwnerID    uint64          `gorm:"not null;index" json:"owner_id"`
	Visibility BoardVisibility `gorm:"type:varchar(20);not null;default:'private'" json:"visibility"`
	Background *string         `gorm:"type:varchar(255)" json:"background"`
	IsClosed   bool            `gorm:"not null;default:false" json:"is_closed"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relations
	Owner   User          `gorm:"foreignKey:OwnerID" json:"-"`
	Columns []Column      `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"columns,omitempty"`
	Labels  []Label       `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"labels,omitempty"`
	Members []BoardMember `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}
