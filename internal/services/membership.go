package services

import (
	"errors"
	"fmt"

	"github.com/huyng/kanban-api/internal/models"
	"github.com/huyng/kanban-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotBoardMember = errors.New("you do not have permission to access this board")
	ErrNotBoardOwner  = errors.New("only the board owner can perform this action")
)

// MembershipService gates board, column and card mutations on verified board
// membership. Column and card operations resolve the owning board through the
// persisted ownership chain, never from client-supplied ids.
type MembershipService struct {
	boardRepo repository.BoardRepository
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(boardRepo repository.BoardRepository) *MembershipService {
	return &MembershipService{
		boardRepo: boardRepo,
	}
}

// RequireMember returns the membership row for (boardID, userID) or
// ErrNotBoardMember when none exists.
func (s *MembershipService) RequireMember(boardID, userID uint64) (*models.BoardMember, error) {
	member, err := s.boardRepo.FindMember(boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotBoardMember
		}
		return nil, fmt.Errorf("failed to verify board membership: %w", err)
	}
	return member, nil
}

// RequireOwner fails with ErrNotBoardOwner unless userID owns the board.
func (s *MembershipService) RequireOwner(board *models.Board, userID uint64) error {
	if board.OwnerID != userID {
		return ErrNotBoardOwner
	}
	return nil
}

// RequireViewer authorizes read access: public boards are readable by any
// principal, every other visibility requires membership.
func (s *MembershipService) RequireViewer(board *models.Board, userID uint64) error {
	if board.Visibility == models.VisibilityPublic {
		return nil
	}
	_, err := s.RequireMember(board.ID, userID)
	return err
}

// IsMember reports membership without treating absence as an error.
func (s *MembershipService) IsMember(boardID, userID uint64) (bool, error) {
	_, err := s.boardRepo.FindMember(boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to verify board membership: %w", err)
	}
	return true, nil
}
