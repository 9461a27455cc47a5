package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huyng/kanban-api/internal/models"
	"github.com/huyng/kanban-api/internal/ordering"
	"github.com/huyng/kanban-api/internal/repository"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

var (
	ErrColumnNotFound        = errors.New("column not found")
	ErrColumnTitleRequired   = errors.New("column title cannot be empty")
	ErrColumnAlreadyArchived = errors.New("column is already archived")
	ErrColumnNotArchived     = errors.New("column is not archived")
)

// ColumnService owns the column lifecycle within a board.
type ColumnService struct {
	columnRepo repository.ColumnRepository
	boardRepo  repository.BoardRepository
	membership *MembershipService
}

// NewColumnService creates a new ColumnService.
func NewColumnService(columnRepo repository.ColumnRepository, boardRepo repository.BoardRepository, membership *MembershipService) *ColumnService {
	return &ColumnService{
		columnRepo: columnRepo,
		boardRepo:  boardRepo,
		membership: membership,
	}
}

// CreateColumnInput represents parameters to create a new column.
type CreateColumnInput struct {
	BoardID uint64
	Title   string
	UserID  uint64
}

// Create appends a column at the end of the board's ordering.
func (s *ColumnService) Create(input CreateColumnInput) (*models.Column, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrColumnTitleRequired
	}

	if _, err := s.boardRepo.FindByID(input.BoardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	if _, err := s.membership.RequireMember(input.BoardID, input.UserID); err != nil {
		return nil, err
	}

	siblings, err := s.columnRepo.ListByBoard(input.BoardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}

	column := &models.Column{
		BoardID:  input.BoardID,
		Title:    input.Title,
		Position: ordering.Append(columnPositions(siblings)),
	}

	if err := s.columnRepo.Create(column); err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}

	return column, nil
}

// List returns the board's non-archived columns in order.
func (s *ColumnService) List(boardID, userID uint64) ([]models.Column, error) {
	if _, err := s.boardRepo.FindByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	if _, err := s.membership.RequireMember(boardID, userID); err != nil {
		return nil, err
	}

	columns, err := s.columnRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}

	return lo.Filter(columns, func(col models.Column, _ int) bool {
		return !col.IsArchived
	}), nil
}

// UpdateColumnInput represents a partial column update. NewIndex repositions
// the column among all other columns of its board.
type UpdateColumnInput struct {
	Title    *string
	NewIndex *int
}

// Update applies a title change, a reposition, or both. Repositioning derives
// a fresh fractional key from the target slot's neighbours; the old position
// value plays no part.
func (s *ColumnService) Update(columnID uint64, input UpdateColumnInput, userID uint64) (*models.Column, error) {
	column, err := s.findColumn(columnID)
	if err != nil {
		return nil, err
	}

	if _, err := s.membership.RequireMember(column.BoardID, userID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrColumnTitleRequired
		}
		column.Title = *input.Title
	}

	if input.NewIndex != nil {
		siblings, err := s.columnRepo.ListByBoard(column.BoardID)
		if err != nil {
			return nil, fmt.Errorf("failed to list columns: %w", err)
		}
		others := lo.Filter(siblings, func(col models.Column, _ int) bool {
			return col.ID != column.ID
		})

		column.Position = ordering.AtIndex(columnPositions(others), *input.NewIndex)
	}

	if err := s.columnRepo.Update(column); err != nil {
		return nil, fmt.Errorf("failed to update column: %w", err)
	}

	return column, nil
}

// Archive soft-deletes the column; it disappears from listings but survives
// until permanently deleted.
func (s *ColumnService) Archive(columnID, userID uint64) (*models.Column, error) {
	column, err := s.findColumn(columnID)
	if err != nil {
		return nil, err
	}

	if _, err := s.membership.RequireMember(column.BoardID, userID); err != nil {
		return nil, err
	}

	if column.IsArchived {
		return nil, ErrColumnAlreadyArchived
	}

	column.IsArchived = true
	if err := s.columnRepo.Update(column); err != nil {
		return nil, fmt.Errorf("failed to archive column: %w", err)
	}

	return column, nil
}

// Unarchive restores an archived column.
func (s *ColumnService) Unarchive(columnID, userID uint64) (*models.Column, error) {
	column, err := s.findColumn(columnID)
	if err != nil {
		return nil, err
	}

	if _, err := s.membership.RequireMember(column.BoardID, userID); err != nil {
		return nil, err
	}

	if !column.IsArchived {
		return nil, ErrColumnNotArchived
	}

	column.IsArchived = false
	if err := s.columnRepo.Update(column); err != nil {
		return nil, fmt.Errorf("failed to restore column: %w", err)
	}

	return column, nil
}

// DeletePermanent removes an archived column for good and compacts the
// positions of the columns after it by one rank unit.
func (s *ColumnService) DeletePermanent(columnID, userID uint64) error {
	column, err := s.findColumn(columnID)
	if err != nil {
		return err
	}

	if _, err := s.membership.RequireMember(column.BoardID, userID); err != nil {
		return err
	}

	if !column.IsArchived {
		return ErrColumnNotArchived
	}

	if err := s.columnRepo.DeleteAndCompact(column); err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}

	return nil
}

func (s *ColumnService) findColumn(columnID uint64) (*models.Column, error) {
	column, err := s.columnRepo.FindByID(columnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to find column: %w", err)
	}
	return column, nil
}

func columnPositions(columns []models.Column) []float64 {
	return lo.Map(columns, func(col models.Column, _ int) float64 {
		return col.Position
	})
}
