package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huyng/kanban-api/internal/dto"
	apierrors "github.com/huyng/kanban-api/internal/errors"
	"github.com/huyng/kanban-api/internal/middleware"
	"github.com/huyng/kanban-api/internal/models"
	"github.com/huyng/kanban-api/internal/services"
	"github.com/huyng/kanban-api/internal/utils"
)

// BoardHandler coordinates board-related HTTP handlers.
type BoardHandler struct {
	boardService *services.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// CreateBoard creates a board owned by the current user.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateBoardRequest struct {
		Title      string  `json:"title" binding:"required"`
		Visibility string  `json:"visibility"`
		Background *string `json:"background"`
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.Create(services.CreateBoardInput{
		Title:      req.Title,
		Visibility: models.BoardVisibility(req.Visibility),
		Background: req.Background,
		OwnerID:    userID,
	})
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardDTO(*board))
}

// ListBoards returns the open boards the current user belongs to.
func (h *BoardHandler) ListBoards(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	boards, total, err := h.boardService.ListForMember(userID, params.Offset, params.Limit)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	boardDTOs := make([]dto.BoardDTO, len(boards))
	for i, board := range boards {
		boardDTOs[i] = dto.ToBoardDTO(board)
	}

	c.JSON(http.StatusOK, gin.H{
		"boards": boardDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetBoard returns a board with its visible columns, cards, labels and members.
func (h *BoardHandler) GetBoard(c *gin.Context) {
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

	board, err := h.boardService.GetDetail(boardID, userID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDetailDTO(*board))
}

// DeleteBoard closes a board, or permanently deletes an already closed board
// when ?permanent=true is given.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
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

	permanent := c.Query("permanent") == "true"

	if err := h.boardService.Delete(boardID, userID, permanent); err != nil {
		respondBoardError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddMember enrolls a user into the board's roster.
func (h *BoardHandler) AddMember(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	boardID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid board ID")
		return
	}

	type AddMemberRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.boardService.AddMember(boardID, req.UserID, actorID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardMemberDTO(*member))
}

func parseIDParam(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

func respondBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBoardNotFound):
		apierrors.NotFound(c, "Board not found")
	case errors.Is(err, services.ErrBoardTitleRequired):
		apierrors.BadRequest(c, "Board title cannot be empty")
	case errors.Is(err, services.ErrInvalidVisibility):
		apierrors.BadRequest(c, "Invalid board visibility")
	case errors.Is(err, services.ErrBoardAlreadyClosed):
		apierrors.InvalidState(c, "Board is already closed")
	case errors.Is(err, services.ErrBoardNotClosed):
		apierrors.InvalidState(c, "Board must be closed before permanent deletion")
	case errors.Is(err, services.ErrNotBoardMember):
		apierrors.Forbidden(c, "You do not have permission to access this board")
	case errors.Is(err, services.ErrNotBoardOwner):
		apierrors.Forbidden(c, "Only the board owner can perform this action")
	default:
		apierrors.InternalError(c, "Something went wrong")
	}
}
