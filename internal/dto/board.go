package dto

import (
	"time"

	"github.com/huyng/kanban-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// BoardDTO represents a board in API responses
type BoardDTO struct {
	ID         uint64                 `json:"id"`
	Title      string                 `json:"title"`
	OwnerID    uint64                 `json:"owner_id"`
	Visibility models.BoardVisibility `json:"visibility"`
	Background *string                `json:"background"`
	IsClosed   bool                   `json:"is_closed"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// BoardMemberDTO represents a member in a board's roster
type BoardMemberDTO struct {
	User     UserDTO          `json:"user"`
	Role     models.BoardRole `json:"role"`
	JoinedAt time.Time        `json:"joined_at"`
}

// BoardDetailDTO represents a board with its full visible contents
type BoardDetailDTO struct {
	BoardDTO
	Columns []ColumnDTO      `json:"columns"`
	Labels  []LabelDTO       `json:"labels"`
	Members []BoardMemberDTO `json:"members"`
}

// LabelDTO represents a label in API responses
type LabelDTO struct {
	ID      uint64  `json:"id"`
	BoardID uint64  `json:"board_id"`
	Title   *string `json:"title"`
	Color   string  `json:"color"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}
}

// ToBoardDTO converts a Board model to BoardDTO
func ToBoardDTO(board models.Board) BoardDTO {
	return BoardDTO{
		ID:         board.ID,
		Title:      board.Title,
		OwnerID:    board.OwnerID,
		Visibility: board.Visibility,
		Background: board.Background,
		IsClosed:   board.IsClosed,
		CreatedAt:  board.CreatedAt,
		UpdatedAt:  board.UpdatedAt,
	}
}

// ToBoardMemberDTO converts a board member to DTO
func ToBoardMemberDTO(member models.BoardMember) BoardMemberDTO {
	return BoardMemberDTO{
		User:     ToUserDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

// ToLabelDTO converts a Label model to LabelDTO
func ToLabelDTO(label models.Label) LabelDTO {
	return LabelDTO{
		ID:      label.ID,
		BoardID: label.BoardID,
		Title:   label.Title,
		Color:   label.Color,
	}
}

// ToBoardDetailDTO converts a board with its preloaded contents to a detailed DTO
func ToBoardDetailDTO(board models.Board) BoardDetailDTO {
	columns := make([]ColumnDTO, len(board.Columns))
	for i, column := range board.Columns {
		columns[i] = ToColumnDTO(column)
	}

	labels := make([]LabelDTO, len(board.Labels))
	for i, label := range board.Labels {
		labels[i] = ToLabelDTO(label)
	}

	members := make([]BoardMemberDTO, len(board.Members))
	for i, member := range board.Members {
		members[i] = ToBoardMemberDTO(member)
	}

	return BoardDetailDTO{
		BoardDTO: ToBoardDTO(board),
		Columns:  columns,
		Labels:   labels,
		Members:  members,
	}
}
