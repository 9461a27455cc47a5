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

// ColumnHandler coordinates column-related HTTP handlers.
type ColumnHandler struct {
	columnService *services.ColumnService
}

// NewColumnHandler creates a new ColumnHandler.
func NewColumnHandler(columnService *services.ColumnService) *ColumnHandler {
	return &ColumnHandler{
		columnService: columnService,
	}
}

// CreateColumn appends a column at the end of a board's ordering.
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
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

	type CreateColumnRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.columnService.Create(services.CreateColumnInput{
		BoardID: boardID,
		Title:   req.Title,
		UserID:  userID,
	})
	if err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToColumnDTO(*column))
}

// ListColumns returns a board's active columns in display order.
func (h *ColumnHandler) ListColumns(c *gin.Context) {
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

	columns, err := h.columnService.List(boardID, userID)
	if err != nil {
		respondColumnError(c, err)
		return
	}

	columnDTOs := make([]dto.ColumnDTO, len(columns))
	for i, column := range columns {
		columnDTOs[i] = dto.ToColumnDTO(column)
	}

	c.JSON(http.StatusOK, gin.H{"columns": columnDTOs})
}

// UpdateColumn renames a column and/or moves it to a new slot in the ordering.
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
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

	type UpdateColumnRequest struct {
		Title    *string `json:"title"`
		NewIndex *int    `json:"new_index"`
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.columnService.Update(columnID, services.UpdateColumnInput{
		Title:    req.Title,
		NewIndex: req.NewIndex,
	}, userID)
	if err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToColumnDTO(*column))
}

// ArchiveColumn hides a column from board views without destroying it.
func (h *ColumnHandler) ArchiveColumn(c *gin.Context) {
	h.setArchived(c, true)
}

// UnarchiveColumn restores an archived column to board views.
func (h *ColumnHandler) UnarchiveColumn(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *ColumnHandler) setArchived(c *gin.Context, archived bool) {
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

	var column *models.Column
	if archived {
		column, err = h.columnService.Archive(columnID, userID)
	} else {
		column, err = h.columnService.Unarchive(columnID, userID)
	}
	if err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToColumnDTO(*column))
}

// DeleteColumn permanently removes an archived column together with its cards.
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
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

	if err := h.columnService.DeletePermanent(columnID, userID); err != nil {
		respondColumnError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondColumnError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrColumnNotFound):
		apierrors.NotFound(c, "Column not found")
	case errors.Is(err, services.ErrBoardNotFound):
		apierrors.NotFound(c, "Board not found")
	case errors.Is(err, services.ErrColumnTitleRequired):
		apierrors.BadRequest(c, "Column title cannot be empty")
	case errors.Is(err, services.ErrColumnAlreadyArchived):
		apierrors.InvalidState(c, "Column is already archived")
	case errors.Is(err, services.ErrColumnNotArchived):
		apierrors.InvalidState(c, "Column must be archived before permanent deletion")
	case errors.Is(err, services.ErrNotBoardMember):
		apierrors.Forbidden(c, "You do not have permission to access this board")
	default:
		apierrors.InternalError(c, "Something went wrong")
	}
}
