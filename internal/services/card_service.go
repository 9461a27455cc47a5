package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huyng/kanban-api/internal/events"
	"github.com/huyng/kanban-api/internal/models"
	"github.com/huyng/kanban-api/internal/ordering"
	"github.com/huyng/kanban-api/internal/repository"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

var (
	ErrCardNotFound        = errors.New("card not found")
	ErrCardTitleRequired   = errors.New("card title cannot be empty")
	ErrCardAlreadyArchived = errors.New("card is already archived")
	ErrCardNotArchived     = errors.New("card is not archived")
	ErrAssigneeNotFound    = errors.New("assignee does not exist")
	ErrAssigneeNotMember   = errors.New("assignee is not a member of the board")
	ErrAlreadyAssigned     = errors.New("user is already assigned to this card")
)

// CardService owns the card lifecycle within a column, including moves
// across columns and user assignments.
type CardService struct {
	cardRepo   repository.CardRepository
	columnRepo repository.ColumnRepository
	userRepo   repository.UserRepository
	membership *MembershipService
	publisher  events.Publisher
}

// NewCardService creates a new CardService.
func NewCardService(
	cardRepo repository.CardRepository,
	columnRepo repository.ColumnRepository,
	userRepo repository.UserRepository,
	membership *MembershipService,
	publisher events.Publisher,
) *CardService {
	return &CardService{
		cardRepo:   cardRepo,
		columnRepo: columnRepo,
		userRepo:   userRepo,
		membership: membership,
		publisher:  publisher,
	}
}

// ListInColumn returns the column's non-archived cards in order with labels
// and assignments attached.
func (s *CardService) ListInColumn(columnID, userID uint64) ([]models.Card, error) {
	if _, err := s.authorizeColumn(columnID, userID); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.ListVisibleByColumn(columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// CreateCardInput represents parameters to create a new card.
type CreateCardInput struct {
	ColumnID    uint64
	Title       string
	Description string
	UserID      uint64
}

// Create appends a card at the end of the column's ordering.
func (s *CardService) Create(input CreateCardInput) (*models.Card, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrCardTitleRequired
	}

	if _, err := s.authorizeColumn(input.ColumnID, input.UserID); err != nil {
		return nil, err
	}

	siblings, err := s.cardRepo.ListByColumn(input.ColumnID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	card := &models.Card{
		ColumnID:    input.ColumnID,
		Title:       input.Title,
		Description: input.Description,
		Position:    ordering.Append(cardPositions(siblings)),
	}

	if err := s.cardRepo.Create(card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	return card, nil
}

// UpdateCardInput represents a partial card update. Setting NewIndex or a
// different ColumnID moves the card; the position is recomputed against the
// destination column's siblings.
type UpdateCardInput struct {
	Title       *string
	Description *string
	NewIndex    *int
	ColumnID    *uint64
}

// Update applies field changes and handles moves within or across columns.
// Authorization runs against the destination column's board, resolved
// through the persisted chain rather than any client-supplied board id.
func (s *CardService) Update(cardID uint64, input UpdateCardInput, userID uint64) (*models.Card, error) {
	card, err := s.findCard(cardID)
	if err != nil {
		return nil, err
	}

	targetColumnID := card.ColumnID
	if input.ColumnID != nil {
		targetColumnID = *input.ColumnID
	}

	if _, err := s.authorizeColumn(targetColumnID, userID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrCardTitleRequired
		}
		card.Title = *input.Title
	}
	if input.Description != nil {
		card.Description = *input.Description
	}

	moving := input.NewIndex != nil || targetColumnID != card.ColumnID
	if moving {
		targetIndex := 0
		if input.NewIndex != nil {
			targetIndex = *input.NewIndex
		}

		siblings, err := s.cardRepo.ListByColumn(targetColumnID, card.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list cards: %w", err)
		}

		// Column reference and position change together in one update.
		card.ColumnID = targetColumnID
		card.Position = ordering.AtIndex(cardPositions(siblings), targetIndex)
	}

	if err := s.cardRepo.Update(card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return card, nil
}

// Archive soft-deletes the card.
func (s *CardService) Archive(cardID, userID uint64) (*models.Card, error) {
	card, err := s.findCard(cardID)
	if err != nil {
		return nil, err
	}

	if _, err := s.authorizeColumn(card.ColumnID, userID); err != nil {
		return nil, err
	}

	if card.IsArchived {
		return nil, ErrCardAlreadyArchived
	}

	card.IsArchived = true
	if err := s.cardRepo.Update(card); err != nil {
		return nil, fmt.Errorf("failed to archive card: %w", err)
	}

	return card, nil
}

// Unarchive restores an archived card.
func (s *CardService) Unarchive(cardID, userID uint64) (*models.Card, error) {
	card, err := s.findCard(cardID)
	if err != nil {
		return nil, err
	}

	if _, err := s.authorizeColumn(card.ColumnID, userID); err != nil {
		return nil, err
	}

	if !card.IsArchived {
		return nil, ErrCardNotArchived
	}

	card.IsArchived = false
	if err := s.cardRepo.Update(card); err != nil {
		return nil, fmt.Errorf("failed to restore card: %w", err)
	}

	return card, nil
}

// DeletePermanent removes an archived card for good and compacts the
// positions of the cards after it by one rank unit.
func (s *CardService) DeletePermanent(cardID, userID uint64) error {
	card, err := s.findCard(cardID)
	if err != nil {
		return err
	}

	if _, err := s.authorizeColumn(card.ColumnID, userID); err != nil {
		return err
	}

	if !card.IsArchived {
		return ErrCardNotArchived
	}

	if err := s.cardRepo.DeleteAndCompact(card); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	return nil
}

// AddAssignee assigns a user to the card. The assignee must exist and must
// itself be a member of the card's board.
func (s *CardService) AddAssignee(cardID, assigneeID, actorID uint64) (*models.CardAssignment, error) {
	card, err := s.findCard(cardID)
	if err != nil {
		return nil, err
	}

	column, err := s.authorizeColumn(card.ColumnID, actorID)
	if err != nil {
		return nil, err
	}

	assignee, err := s.userRepo.FindByID(assigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to find assignee: %w", err)
	}

	isMember, err := s.membership.IsMember(column.BoardID, assigneeID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrAssigneeNotMember
	}

	if _, err := s.cardRepo.FindAssignment(cardID, assigneeID); err == nil {
		return nil, ErrAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify assignment: %w", err)
	}

	assignment := &models.CardAssignment{
		CardID:     cardID,
		UserID:     assigneeID,
		Role:       models.AssignmentRoleAssignee,
		AssignedAt: time.Now(),
	}

	if err := s.cardRepo.AddAssignment(assignment); err != nil {
		return nil, fmt.Errorf("failed to assign user: %w", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(events.CardAssigned, events.CardAssignedPayload{
			CardID:        card.ID,
			CardTitle:     card.Title,
			AssigneeEmail: assignee.Email,
		})
	}

	return assignment, nil
}

// ListAssignees returns the card's assignments with users attached.
func (s *CardService) ListAssignees(cardID, actorID uint64) ([]models.CardAssignment, error) {
	card, err := s.findCard(cardID)
	if err != nil {
		return nil, err
	}

	if _, err := s.authorizeColumn(card.ColumnID, actorID); err != nil {
		return nil, err
	}

	assignments, err := s.cardRepo.ListAssignments(card.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

// authorizeColumn resolves the column's owning board and requires the user
// to be a member of it.
func (s *CardService) authorizeColumn(columnID, userID uint64) (*models.Column, error) {
	column, err := s.columnRepo.FindByID(columnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to find column: %w", err)
	}

	if _, err := s.membership.RequireMember(column.BoardID, userID); err != nil {
		return nil, err
	}

	return column, nil
}

func (s *CardService) findCard(cardID uint64) (*models.Card, error) {
	card, err := s.cardRepo.FindByID(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	return card, nil
}

func cardPositions(cards []models.Card) []float64 {
	return lo.Map(cards, func(card models.Card, _ int) float64 {
		return card.Position
	})
}
