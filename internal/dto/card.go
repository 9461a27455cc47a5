package dto

import (
	"time"

	"github.com/huyng/kanban-api/internal/models"
)

// ColumnDTO represents a column in API responses
type ColumnDTO struct {
	ID         uint64    `json:"id"`
	BoardID    uint64    `json:"board_id"`
	Title      string    `json:"title"`
	Position   float64   `json:"position"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Cards      []CardDTO `json:"cards,omitempty"`
}

// CardAssignmentDTO represents a card assignment in API responses
type CardAssignmentDTO struct {
	User       UserDTO   `json:"user"`
	Role       string    `json:"role"`
	AssignedAt time.Time `json:"assigned_at"`
}

// CardDTO represents a card in API responses
type CardDTO struct {
	ID          uint64              `json:"id"`
	ColumnID    uint64              `json:"column_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Position    float64             `json:"position"`
	IsArchived  bool                `json:"is_archived"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Labels      []LabelDTO          `json:"labels,omitempty"`
	Assignments []CardAssignmentDTO `json:"assignments,omitempty"`
}

// ToColumnDTO converts a Column model to ColumnDTO
func ToColumnDTO(column models.Column) ColumnDTO {
	dto := ColumnDTO{
		ID:         column.ID,
		BoardID:    column.BoardID,
		Title:      column.Title,
		Position:   column.Position,
		IsArchived: column.IsArchived,
		CreatedAt:  column.CreatedAt,
		UpdatedAt:  column.UpdatedAt,
	}

	// Include cards if preloaded
	if len(column.Cards) > 0 {
		dto.Cards = make([]CardDTO, len(column.Cards))
		for i, card := range column.Cards {
			dto.Cards[i] = ToCardDTO(card)
		}
	}

	return dto
}

// ToCardAssignmentDTO converts a card assignment to DTO
func ToCardAssignmentDTO(assignment models.CardAssignment) CardAssignmentDTO {
	return CardAssignmentDTO{
		User:       ToUserDTO(assignment.User),
		Role:       assignment.Role,
		AssignedAt: assignment.AssignedAt,
	}
}

// ToCardDTO converts a Card model to CardDTO
func ToCardDTO(card models.Card) CardDTO {
	dto := CardDTO{
		ID:          card.ID,
		ColumnID:    card.ColumnID,
		Title:       card.Title,
		Description: card.Description,
		Position:    card.Position,
		IsArchived:  card.IsArchived,
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}

	// Include labels if preloaded
	if len(card.Labels) > 0 {
		dto.Labels = make([]LabelDTO, len(card.Labels))
		for i, label := range card.Labels {
			dto.Labels[i] = ToLabelDTO(label)
		}
	}

	// Include assignments if preloaded
	if len(card.Assignments) > 0 {
		dto.Assignments = make([]CardAssignmentDTO, len(card.Assignments))
		for i, assignment := range card.Assignments {
			dto.Assignments[i] = ToCardAssignmentDTO(assignment)
		}
	}

	return dto
}
