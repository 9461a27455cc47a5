package models

type Label struct {
	ID      uint64  `gorm:"primarykey" json:"id"`
	BoardID uint64  `gorm:"not null;index" json:"board_id"`
	Title   *string `gorm:"type:varchar(255)" json:"title"`
	Color   string  `gorm:"type:varchar(20);not null" json:"color"`

	// Relations
	Board Board  `gorm:"foreignKey:BoardID" json:"-"`
	Cards []Card `gorm:"many2many:card_labels" json:"-"`
}
