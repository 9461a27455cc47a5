package database

import "gorm.io/gorm"

// Paginate applies offset/limit pagination to a GORM query
func Paginate(offset, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(limit)
	}
}
