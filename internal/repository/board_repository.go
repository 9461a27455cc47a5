package repository

import (
	"github.com/huyng/kanban-api/internal/database"
	"github.com/huyng/kanban-api/internal/models"
	"gorm.io/gorm"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// CreateWithOwner creates the board and the owner's admin membership
// atomically; either both rows exist afterwards or neither does.
func (r *GormBoardRepository) CreateWithOwner(board *models.Board, member *models.BoardMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}

		member.BoardID = board.ID

		return tx.Create(member).Error
	})
}

// FindByID finds a board by ID
func (r *GormBoardRepository) FindByID(id uint64) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindDetail loads the board with its columns, their cards, labels and
// members. Archived filtering happens in the service, not here.
func (r *GormBoardRepository) FindDetail(id uint64) (*models.Board, error) {
	var board models.Board
	err := r.db.
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Preload("Columns.Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Preload("Columns.Cards.Labels").
		Preload("Columns.Cards.Assignments").
		Preload("Labels").
		Preload("Members").
		Preload("Members.User").
		First(&board, id).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// ListForMember lists non-closed boards the user is a member of, newest first
func (r *GormBoardRepository) ListForMember(userID uint64, offset, limit int) ([]models.Board, int64, error) {
	query := r.db.Model(&models.Board{}).
		Joins("JOIN board_members ON board_members.board_id = boards.id").
		Where("board_members.user_id = ? AND boards.is_closed = ?", userID, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var boards []models.Board
	err := query.
		Order("boards.created_at DESC").
		Scopes(database.Paginate(offset, limit)).
		Find(&boards).Error
	if err != nil {
		return nil, 0, err
	}

	return boards, total, nil
}

// ListIDs returns the ids of all non-closed boards
func (r *GormBoardRepository) ListIDs() ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Board{}).
		Where("is_closed = ?", false).
		Pluck("id", &ids).Error
	return ids, err
}

// Update updates a board
func (r *GormBoardRepository) Update(board *models.Board) error {
	return r.db.Save(board).Error
}

// Delete removes the board and everything it owns in one transaction:
// assignments and label links of its cards, the cards, the labels, the
// membership roster, the columns, then the board row itself.
func (r *GormBoardRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var columnIDs []uint64
		if err := tx.Model(&models.Column{}).
			Where("board_id = ?", id).
			Pluck("id", &columnIDs).Error; err != nil {
			return err
		}

		if len(columnIDs) > 0 {
			cardIDs := tx.Model(&models.Card{}).
				Select("id").
				Where("column_id IN ?", columnIDs)

			if err := tx.Where("card_id IN (?)", cardIDs).
				Delete(&models.CardAssignment{}).Error; err != nil {
				return err
			}
			if err := tx.Table("card_labels").
				Where("card_id IN (?)", cardIDs).
				Delete(nil).Error; err != nil {
				return err
			}
			if err := tx.Where("column_id IN ?", columnIDs).
				Delete(&models.Card{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("board_id = ?", id).Delete(&models.Label{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.BoardMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.Column{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Board{}, id).Error
	})
}

// AddMember adds a member to a board
func (r *GormBoardRepository) AddMember(member *models.BoardMember) error {
	return r.db.Create(member).Error
}

// FindMember finds a specific board member
func (r *GormBoardRepository) FindMember(boardID, userID uint64) (*models.BoardMember, error) {
	var member models.BoardMember
	if err := r.db.Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}
