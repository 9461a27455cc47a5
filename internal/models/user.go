package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName     string    `gorm:"type:varchar(255)" json:"full_name"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	OwnedBoards []Board           `gorm:"foreignKey:OwnerID" json:"-"`
	Memberships []BoardMember     `gorm:"foreignKey:UserID" json:"-"`
	Assignments []CardAssignment  `gorm:"foreignKey:UserID" json:"-"`
}
