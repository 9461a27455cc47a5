package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huyng/kanban-api/internal/dto"
	apierrors "github.com/huyng/kanban-api/internal/errors"
	"github.com/huyng/kanban-api/internal/middleware"
	"github.com/huyng/kanban-api/internal/models"
	"github.com/huyng/kanban-api/internal/services"
)

// CardHandler coordinates card-related HTTP handlers.
type CardHandler struct {
	cardService *services.CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService *services.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// CreateCard appends a card at the end of a column's ordering.
func (h *CardHandler) CreateCard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	columnID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid column ID")
		return
	}

	type CreateCardRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.cardService.Create(services.CreateCardInput{
		ColumnID:    columnID,
		Title:       req.Title,
		Description: req.Description,
		UserID:      userID,
	})
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCardDTO(*card))
}

// ListCards returns a column's active cards in display order.
func (h *CardHandler) ListCards(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	columnID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid column ID")
		return
	}

	cards, err := h.cardService.ListInColumn(columnID, userID)
	if err != nil {
		respondCardError(c, err)
		return
	}

	cardDTOs := make([]dto.CardDTO, len(cards))
	for i, card := range cards {
		cardDTOs[i] = dto.ToCardDTO(card)
	}

	c.JSON(http.StatusOK, gin.H{"cards": cardDTOs})
}

// UpdateCard edits card fields and handles moves within or across columns.
func (h *CardHandler) UpdateCard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	cardID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid card ID")
		return
	}

	type UpdateCardRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		ColumnID    *uint64 `json:"column_id"`
		NewIndex    *int    `json:"new_index"`
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.cardService.Update(cardID, services.UpdateCardInput{
		Title:       req.Title,
		Description: req.Description,
		ColumnID:    req.ColumnID,
		NewIndex:    req.NewIndex,
	}, userID)
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCardDTO(*card))
}

// ArchiveCard hides a card from board views without destroying it.
func (h *CardHandler) ArchiveCard(c *gin.Context) {
	h.setArchived(c, true)
}

// UnarchiveCard restores an archived card to board views.
func (h *CardHandler) UnarchiveCard(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *CardHandler) setArchived(c *gin.Context, archived bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	cardID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid card ID")
		return
	}

	var card *models.Card
	if archived {
		card, err = h.cardService.Archive(cardID, userID)
	} else {
		card, err = h.cardService.Unarchive(cardID, userID)
	}
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCardDTO(*card))
}

// DeleteCard permanently removes an archived card.
func (h *CardHandler) DeleteCard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	cardID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid card ID")
		return
	}

	if err := h.cardService.DeletePermanent(cardID, userID); err != nil {
		respondCardError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddAssignee assigns a board member to a card.
func (h *CardHandler) AddAssignee(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	cardID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid card ID")
		return
	}

	type AddAssigneeRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req AddAssigneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.cardService.AddAssignee(cardID, req.UserID, actorID)
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCardAssignmentDTO(*assignment))
}

// ListAssignees returns the users assigned to a card.
func (h *CardHandler) ListAssignees(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	cardID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid card ID")
		return
	}

	assignments, err := h.cardService.ListAssignees(cardID, actorID)
	if err != nil {
		respondCardError(c, err)
		return
	}

	assignmentDTOs := make([]dto.CardAssignmentDTO, len(assignments))
	for i, assignment := range assignments {
		assignmentDTOs[i] = dto.ToCardAssignmentDTO(assignment)
	}

	c.JSON(http.StatusOK, gin.H{"assignments": assignmentDTOs})
}

func respondCardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCardNotFound):
		apierrors.NotFound(c, "Card not found")
	case errors.Is(err, services.ErrColumnNotFound):
		apierrors.NotFound(c, "Column not found")
	case errors.Is(err, services.ErrCardTitleRequired):
		apierrors.BadRequest(c, "Card title cannot be empty")
	case errors.Is(err, services.ErrCardAlreadyArchived):
		apierrors.InvalidState(c, "Card is already archived")
	case errors.Is(err, services.ErrCardNotArchived):
		apierrors.InvalidState(c, "Card must be archived before permanent deletion")
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, "Assignee does not exist")
	case errors.Is(err, services.ErrAssigneeNotMember):
		apierrors.BadRequest(c, "Assignee is not a member of the board")
	case errors.Is(err, services.ErrAlreadyAssigned):
		apierrors.Conflict(c, "User is already assigned to this card")
	case errors.Is(err, services.ErrNotBoardMember):
		apierrors.Forbidden(c, "You do not have permission to access this board")
	default:
		apierrors.InternalError(c, "Something went wrong")
	}
}
