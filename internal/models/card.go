package models

import "time"

type Card struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	ColumnID    uint64    `gorm:"not null;index" json:"column_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Position    float64   `gorm:"not null;default:0" json:"position"`
	IsArchived  bool      `gorm:"not null;default:false" json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Column      Column           `gorm:"foreignKey:ColumnID" json:"-"`
	Labels      []Label          `gorm:"many2many:card_labels" json:"labels,omitempty"`
	Assignments []CardAssignment `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
}
