package repository

import (
	"github.com/huyng/kanban-api/internal/models"
	"github.com/huyng/kanban-api/internal/ordering"
	"gorm.io/gorm"
)

// GormCardRepository is a GORM implementation of CardRepository
type GormCardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &GormCardRepository{db: db}
}

// Create creates a new card
func (r *GormCardRepository) Create(card *models.Card) error {
	return r.db.Create(card).Error
}

// FindByID finds a card by ID with optional preloading
func (r *GormCardRepository) FindByID(id uint64, preload ...string) (*models.Card, error) {
	var card models.Card
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&card, id).Error; err != nil {
		return nil, err
	}

	return &card, nil
}

// ListByColumn lists all cards of a column, archived included, ordered by
// position with the id tie-break. excludeID removes the card being moved
// from its own sibling set.
func (r *GormCardRepository) ListByColumn(columnID, excludeID uint64) ([]models.Card, error) {
	query := r.db.Where("column_id = ?", columnID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var cards []models.Card
	err := query.Order("position ASC, id ASC").Find(&cards).Error
	return cards, err
}

// ListVisibleByColumn lists non-archived cards with labels and assignments
func (r *GormCardRepository) ListVisibleByColumn(columnID uint64) ([]models.Card, error) {
	var cards []models.Card
	err := r.db.
		Preload("Labels").
		Preload("Assignments").
		Preload("Assignments.User").
		Where("column_id = ? AND is_archived = ?", columnID, false).
		Order("position ASC, id ASC").
		Find(&cards).Error
	return cards, err
}

// Update updates a card
func (r *GormCardRepository) Update(card *models.Card) error {
	return r.db.Save(card).Error
}

// DeleteAndCompact deletes the card (with its assignments and label links)
// and shifts every later sibling in the same column down by one rank unit,
// all in one transaction.
func (r *GormCardRepository) DeleteAndCompact(card *models.Card) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", card.ID).
			Delete(&models.CardAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Table("card_labels").
			Where("card_id = ?", card.ID).
			Delete(nil).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Card{}, card.ID).Error; err != nil {
			return err
		}

		return tx.Model(&models.Card{}).
			Where("column_id = ? AND position > ?", card.ColumnID, card.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	})
}

// AddAssignment assigns a user to a card
func (r *GormCardRepository) AddAssignment(assignment *models.CardAssignment) error {
	return r.db.Create(assignment).Error
}

// FindAssignment finds a specific card assignment
func (r *GormCardRepository) FindAssignment(cardID, userID uint64) (*models.CardAssignment, error) {
	var assignment models.CardAssignment
	if err := r.db.Where("card_id = ? AND user_id = ?", cardID, userID).
		First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListAssignments lists the assignments of a card with users attached
func (r *GormCardRepository) ListAssignments(cardID uint64) ([]models.CardAssignment, error) {
	var assignments []models.CardAssignment
	err := r.db.Preload("User").
		Where("card_id = ?", cardID).
		Find(&assignments).Error
	return assignments, err
}

// Renumber rewrites the column's card positions with evenly spaced ranks
func (r *GormCardRepository) Renumber(columnID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var cards []models.Card
		if err := tx.Where("column_id = ?", columnID).
			Order("position ASC, id ASC").
			Find(&cards).Error; err != nil {
			return err
		}

		fresh := ordering.Renumber(len(cards))
		for i := range cards {
			if err := tx.Model(&models.Card{}).
				Where("id = ?", cards[i].ID).
				UpdateColumn("position", fresh[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
