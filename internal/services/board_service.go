package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huyng/kanban-api/internal/models"
	"github.com/huyng/kanban-api/internal/repository"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

var (
	ErrBoardNotFound      = errors.New("board not found")
	ErrBoardTitleRequired = errors.New("board title cannot be empty")
	ErrInvalidVisibility  = errors.New("invalid board visibility")
	ErrBoardAlreadyClosed = errors.New("board is already closed")
	ErrBoardNotClosed     = errors.New("board must be closed before permanent deletion")
)

// BoardService owns the board lifecycle and its membership roster.
type BoardService struct {
	boardRepo  repository.BoardRepository
	membership *MembershipService
}

// NewBoardService creates a new BoardService.
func NewBoardService(boardRepo repository.BoardRepository, membership *MembershipService) *BoardService {
	return &BoardService{
		boardRepo:  boardRepo,
		membership: membership,
	}
}

// CreateBoardInput represents parameters to create a new board.
type CreateBoardInput struct {
	Title      string
	Visibility models.BoardVisibility
	Background *string
	OwnerID    uint64
}

// Create creates a board and enrolls the owner as its first admin member.
// The two inserts share a transaction; no board exists without its owner row.
func (s *BoardService) Create(input CreateBoardInput) (*models.Board, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrBoardTitleRequired
	}
	if input.Visibility == "" {
		input.Visibility = models.VisibilityPrivate
	}
	if !input.Visibility.Valid() {
		return nil, ErrInvalidVisibility
	}

	board := &models.Board{
		Title:      input.Title,
		Visibility: input.Visibility,
		Background: input.Background,
		OwnerID:    input.OwnerID,
	}

	member := &models.BoardMember{
		UserID:   input.OwnerID,
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	}

	if err := s.boardRepo.CreateWithOwner(board, member); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return board, nil
}

// ListForMember returns non-closed boards the user belongs to, newest first.
func (s *BoardService) ListForMember(userID uint64, offset, limit int) ([]models.Board, int64, error) {
	boards, total, err := s.boardRepo.ListForMember(userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, total, nil
}

// GetDetail returns the board with its non-archived columns and cards, both
// ordered by position. The fetch is a single eager load; archived entries are
// filtered here because archival is a business rule, not a query concern.
func (s *BoardService) GetDetail(boardID, userID uint64) (*models.Board, error) {
	board, err := s.boardRepo.FindDetail(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	if err := s.membership.RequireViewer(board, userID); err != nil {
		return nil, err
	}

	board.Columns = lo.Filter(board.Columns, func(col models.Column, _ int) bool {
		return !col.IsArchived
	})
	for i := range board.Columns {
		board.Columns[i].Cards = lo.Filter(board.Columns[i].Cards, func(card models.Card, _ int) bool {
			return !card.IsArchived
		})
	}

	return board, nil
}

// AddMember adds a user to the board roster. Only members with a managing
// role may extend the roster.
func (s *BoardService) AddMember(boardID, userID, actorID uint64) (*models.BoardMember, error) {
	if _, err := s.findBoard(boardID); err != nil {
		return nil, err
	}

	actor, err := s.membership.RequireMember(boardID, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanManage() {
		return nil, ErrNotBoardOwner
	}

	if member, err := s.boardRepo.FindMember(boardID, userID); err == nil {
		return member, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify board membership: %w", err)
	}

	member := &models.BoardMember{
		BoardID:  boardID,
		UserID:   userID,
		Role:     models.RoleMember,
		JoinedAt: time.Now(),
	}
	if err := s.boardRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add board member: %w", err)
	}

	return member, nil
}

// Delete is two-phase and owner-only. With permanent=false it closes an open
// board; with permanent=true it irreversibly deletes a board that has already
// been closed, cascading to columns, cards, labels and memberships.
func (s *BoardService) Delete(boardID, userID uint64, permanent bool) error {
	board, err := s.findBoard(boardID)
	if err != nil {
		return err
	}

	if err := s.membership.RequireOwner(board, userID); err != nil {
		return err
	}

	if permanent {
		if !board.IsClosed {
			return ErrBoardNotClosed
		}
		if err := s.boardRepo.Delete(board.ID); err != nil {
			return fmt.Errorf("failed to delete board: %w", err)
		}
		return nil
	}

	if board.IsClosed {
		return ErrBoardAlreadyClosed
	}

	board.IsClosed = true
	if err := s.boardRepo.Update(board); err != nil {
		return fmt.Errorf("failed to close board: %w", err)
	}

	return nil
}

func (s *BoardService) findBoard(boardID uint64) (*models.Board, error) {
	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}
	return board, nil
}
