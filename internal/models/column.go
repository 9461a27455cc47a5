package models

import "time"

// Column is an ordered container of cards within a board. Ordering among the
// columns of a board follows Position ascending, with ID breaking ties.
type Column struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	BoardID    uint64    `gorm:"not null;index" json:"board_id"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	Position   float64   `gorm:"not null;default:0" json:"position"`
	IsArchived bool      `gorm:"not null;default:false" json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Board Board  `gorm:"foreignKey:BoardID" json:"-"`
	Cards []Card `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
}
