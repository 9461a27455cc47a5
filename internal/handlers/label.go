package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huyng/kanban-api/internal/dto"
	apierrors "github.com/huyng/kanban-api/internal/errors"
	"github.com/huyng/kanban-api/internal/middleware"
	"github.com/huyng/kanban-api/internal/services"
)

// LabelHandler coordinates label-related HTTP handlers.
type LabelHandler struct {
	labelService *services.LabelService
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(labelService *services.LabelService) *LabelHandler {
	return &LabelHandler{
		labelService: labelService,
	}
}

// CreateLabel adds a label to a board.
func (h *LabelHandler) CreateLabel(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	boardID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid board ID")
		return
	}

	type CreateLabelRequest struct {
		Title *string `json:"title"`
		Color string  `json:"color" binding:"required"`
	}

	var req CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	label, err := h.labelService.Create(services.CreateLabelInput{
		BoardID: boardID,
		Title:   req.Title,
		Color:   req.Color,
		UserID:  userID,
	})
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLabelDTO(*label))
}

// ListLabels returns a board's labels.
func (h *LabelHandler) ListLabels(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	boardID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid board ID")
		return
	}

	labels, err := h.labelService.ListByBoard(boardID, userID)
	if err != nil {
		respondLabelError(c, err)
		return
	}

	labelDTOs := make([]dto.LabelDTO, len(labels))
	for i, label := range labels {
		labelDTOs[i] = dto.ToLabelDTO(label)
	}

	c.JSON(http.StatusOK, gin.H{"labels": labelDTOs})
}

// UpdateLabel changes a label's title and/or color.
func (h *LabelHandler) UpdateLabel(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	labelID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid label ID")
		return
	}

	type UpdateLabelRequest struct {
		Title *string `json:"title"`
		Color *string `json:"color"`
	}

	var req UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	label, err := h.labelService.Update(labelID, services.UpdateLabelInput{
		Title: req.Title,
		Color: req.Color,
	}, userID)
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelDTO(*label))
}

// DeleteLabel removes a label from its board and from every card carrying it.
func (h *LabelHandler) DeleteLabel(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	labelID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid label ID")
		return
	}

	if err := h.labelService.Delete(labelID, userID); err != nil {
		respondLabelError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AttachLabel puts a label on a card. The label must belong to the card's board.
func (h *LabelHandler) AttachLabel(c *gin.Context) {
	h.toggleLabel(c, true)
}

// DetachLabel removes a label from a card.
func (h *LabelHandler) DetachLabel(c *gin.Context) {
	h.toggleLabel(c, false)
}

func (h *LabelHandler) toggleLabel(c *gin.Context, attach bool) {
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

	labelID, err := parseIDParam(c, "labelId")
	if err != nil {
		apierrors.BadRequest(c, "Invalid label ID")
		return
	}

	if attach {
		err = h.labelService.Attach(cardID, labelID, userID)
	} else {
		err = h.labelService.Detach(cardID, labelID, userID)
	}
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondLabelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrLabelNotFound):
		apierrors.NotFound(c, "Label not found")
	case errors.Is(err, services.ErrCardNotFound):
		apierrors.NotFound(c, "Card not found")
	case errors.Is(err, services.ErrBoardNotFound):
		apierrors.NotFound(c, "Board not found")
	case errors.Is(err, services.ErrLabelWrongBoard):
		apierrors.BadRequest(c, "Label does not belong to the card's board")
	case errors.Is(err, services.ErrNotBoardMember):
		apierrors.Forbidden(c, "You do not have permission to access this board")
	default:
		apierrors.InternalError(c, "Something went wrong")
	}
}
