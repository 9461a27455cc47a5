package repository

import (
	"github.com/huyng/kanban-api/internal/models"
	"github.com/huyng/kanban-api/internal/ordering"
	"gorm.io/gorm"
)

// GormColumnRepository is a GORM implementation of ColumnRepository
type GormColumnRepository struct {
	db *gorm.DB
}

// NewColumnRepository creates a new ColumnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &GormColumnRepository{db: db}
}

// Create creates a new column
func (r *GormColumnRepository) Create(column *models.Column) error {
	return r.db.Create(column).Error
}

// FindByID finds a column by ID
func (r *GormColumnRepository) FindByID(id uint64) (*models.Column, error) {
	var column models.Column
	if err := r.db.First(&column, id).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// ListByBoard lists all columns of a board, archived included. Duplicate
// positions resolve deterministically through the id tie-break.
func (r *GormColumnRepository) ListByBoard(boardID uint64) ([]models.Column, error) {
	var columns []models.Column
	err := r.db.Where("board_id = ?", boardID).
		Order("position ASC, id ASC").
		Find(&columns).Error
	return columns, err
}

// ListIDs returns the ids of all columns
func (r *GormColumnRepository) ListIDs() ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Column{}).Pluck("id", &ids).Error
	return ids, err
}

// Update updates a column
func (r *GormColumnRepository) Update(column *models.Column) error {
	return r.db.Save(column).Error
}

// DeleteAndCompact deletes the column (with its cards and their assignments
// and label links) and shifts every later sibling down by one rank unit,
// all in one transaction.
func (r *GormColumnRepository) DeleteAndCompact(column *models.Column) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		cardIDs := tx.Model(&models.Card{}).
			Select("id").
			Where("column_id = ?", column.ID)

		if err := tx.Where("card_id IN (?)", cardIDs).
			Delete(&models.CardAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Table("card_labels").
			Where("card_id IN (?)", cardIDs).
			Delete(nil).Error; err != nil {
			return err
		}
		if err := tx.Where("column_id = ?", column.ID).Delete(&models.Card{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Column{}, column.ID).Error; err != nil {
			return err
		}

		return tx.Model(&models.Column{}).
			Where("board_id = ? AND position > ?", column.BoardID, column.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	})
}

// Renumber rewrites the board's column positions with evenly spaced ranks
func (r *GormColumnRepository) Renumber(boardID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var columns []models.Column
		if err := tx.Where("board_id = ?", boardID).
			Order("position ASC, id ASC").
			Find(&columns).Error; err != nil {
			return err
		}

		fresh := ordering.Renumber(len(columns))
		for i := range columns {
			if err := tx.Model(&models.Column{}).
				Where("id = ?", columns[i].ID).
				UpdateColumn("position", fresh[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
