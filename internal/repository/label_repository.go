package repository

import (
	"github.com/huyng/kanban-api/internal/models"
	"gorm.io/gorm"
)

// GormLabelRepository is a GORM implementation of LabelRepository
type GormLabelRepository struct {
	db *gorm.DB
}

// NewLabelRepository creates a new LabelRepository
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &GormLabelRepository{db: db}
}

// Create creates a new label
func (r *GormLabelRepository) Create(label *models.Label) error {
	return r.db.Create(label).Error
}

// FindByID finds a label by ID
func (r *GormLabelRepository) FindByID(id uint64) (*models.Label, error) {
	var label models.Label
	if err := r.db.First(&label, id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// ListByBoard lists the labels of a board
func (r *GormLabelRepository) ListByBoard(boardID uint64) ([]models.Label, error) {
	var labels []models.Label
	err := r.db.Where("board_id = ?", boardID).Order("id ASC").Find(&labels).Error
	return labels, err
}

// Update updates a label
func (r *GormLabelRepository) Update(label *models.Label) error {
	return r.db.Save(label).Error
}

// Delete removes a label and its card associations
func (r *GormLabelRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("card_labels").
			Where("label_id = ?", id).
			Delete(nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Label{}, id).Error
	})
}

// Attach links a label to a card
func (r *GormLabelRepository) Attach(card *models.Card, label *models.Label) error {
	return r.db.Model(card).Association("Labels").Append(label)
}

// Detach unlinks a label from a card
func (r *GormLabelRepository) Detach(card *models.Card, label *models.Label) error {
	return r.db.Model(card).Association("Labels").Delete(label)
}
