package services

import (
	"errors"
	"fmt"

	"github.com/huyng/kanban-api/internal/models"
	"github.com/huyng/kanban-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrLabelNotFound   = errors.New("label not found")
	ErrLabelWrongBoard = errors.New("label does not belong to the card's board")
)

// LabelService owns board labels and their card associations.
type LabelService struct {
	labelRepo  repository.LabelRepository
	cardRepo   repository.CardRepository
	columnRepo repository.ColumnRepository
	boardRepo  repository.BoardRepository
	membership *MembershipService
}

// NewLabelService creates a new LabelService.
func NewLabelService(
	labelRepo repository.LabelRepository,
	cardRepo repository.CardRepository,
	columnRepo repository.ColumnRepository,
	boardRepo repository.BoardRepository,
	membership *MembershipService,
) *LabelService {
	return &LabelService{
		labelRepo:  labelRepo,
		cardRepo:   cardRepo,
		columnRepo: columnRepo,
		boardRepo:  boardRepo,
		membership: membership,
	}
}

// CreateLabelInput represents parameters to create a new label.
type CreateLabelInput struct {
	BoardID uint64
	Title   *string
	Color   string
	UserID  uint64
}

// Create adds a label to a board.
func (s *LabelService) Create(input CreateLabelInput) (*models.Label, error) {
	if _, err := s.boardRepo.FindByID(input.BoardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	if _, err := s.membership.RequireMember(input.BoardID, input.UserID); err != nil {
		return nil, err
	}

	label := &models.Label{
		BoardID: input.BoardID,
		Title:   input.Title,
		Color:   input.Color,
	}
	if err := s.labelRepo.Create(label); err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}

	return label, nil
}

// ListByBoard returns the board's labels.
func (s *LabelService) ListByBoard(boardID, userID uint64) ([]models.Label, error) {
	if _, err := s.boardRepo.FindByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	if _, err := s.membership.RequireMember(boardID, userID); err != nil {
		return nil, err
	}

	labels, err := s.labelRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

// UpdateLabelInput represents a partial label update.
type UpdateLabelInput struct {
	Title *string
	Color *string
}

// Update applies a title and/or color change.
func (s *LabelService) Update(labelID uint64, input UpdateLabelInput, userID uint64) (*models.Label, error) {
	label, err := s.findLabel(labelID)
	if err != nil {
		return nil, err
	}

	if _, err := s.membership.RequireMember(label.BoardID, userID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		label.Title = input.Title
	}
	if input.Color != nil {
		label.Color = *input.Color
	}

	if err := s.labelRepo.Update(label); err != nil {
		return nil, fmt.Errorf("failed to update label: %w", err)
	}

	return label, nil
}

// Delete removes a label from its board and from every card carrying it.
func (s *LabelService) Delete(labelID, userID uint64) error {
	label, err := s.findLabel(labelID)
	if err != nil {
		return err
	}

	if _, err := s.membership.RequireMember(label.BoardID, userID); err != nil {
		return err
	}

	if err := s.labelRepo.Delete(label.ID); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}

// Attach links a label to a card. Both must belong to the same board; the
// card's board is resolved through its column, never taken from the client.
func (s *LabelService) Attach(cardID, labelID, userID uint64) error {
	card, label, err := s.authorizePair(cardID, labelID, userID)
	if err != nil {
		return err
	}

	if err := s.labelRepo.Attach(card, label); err != nil {
		return fmt.Errorf("failed to attach label: %w", err)
	}
	return nil
}

// Detach unlinks a label from a card.
func (s *LabelService) Detach(cardID, labelID, userID uint64) error {
	card, label, err := s.authorizePair(cardID, labelID, userID)
	if err != nil {
		return err
	}

	if err := s.labelRepo.Detach(card, label); err != nil {
		return fmt.Errorf("failed to detach label: %w", err)
	}
	return nil
}

func (s *LabelService) authorizePair(cardID, labelID, userID uint64) (*models.Card, *models.Label, error) {
	card, err := s.cardRepo.FindByID(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCardNotFound
		}
		return nil, nil, fmt.Errorf("failed to find card: %w", err)
	}

	column, err := s.columnRepo.FindByID(card.ColumnID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find column: %w", err)
	}

	if _, err := s.membership.RequireMember(column.BoardID, userID); err != nil {
		return nil, nil, err
	}

	label, err := s.findLabel(labelID)
	if err != nil {
		return nil, nil, err
	}
	if label.BoardID != column.BoardID {
		return nil, nil, ErrLabelWrongBoard
	}

	return card, label, nil
}

func (s *LabelService) findLabel(labelID uint64) (*models.Label, error) {
	label, err := s.labelRepo.FindByID(labelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLabelNotFound
		}
		return nil, fmt.Errorf("failed to find label: %w", err)
	}
	return label, nil
}
