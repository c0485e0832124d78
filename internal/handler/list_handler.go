package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/delfruit/catalog/internal/auth"
	"github.com/delfruit/catalog/internal/list"
	"github.com/delfruit/catalog/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// ListInput defines the list creation payload.
type ListInput struct {
	Name        string `json:"name" binding:"required" example:"Favorites"`
	Description string `json:"description"`
}

// AddGameInput names the game to add to a list.
type AddGameInput struct {
	GameID int64 `json:"gameId" binding:"required" example:"42"`
}

// ListResponse is the client-facing shape of a list.
type ListResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newListResponse(l models.GameList) ListResponse {
	return ListResponse{
		ID:          l.ID,
		UserID:      l.UserID,
		Name:        l.Name,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
	}
}

// endregion

// ListHandler exposes the list membership service over HTTP.
type ListHandler struct {
	lists *list.Service
}

func NewListHandler(svc *list.Service) *ListHandler {
	return &ListHandler{lists: svc}
}

// Create godoc
// @Summary      Create a list
// @Description  Creates a new curated list owned by the caller.
// @Tags         lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ListInput true "List Info"
// @Success      200  {object}  ListResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /lists [post]
func (h *ListHandler) Create(c *gin.Context) {
	var input ListInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	l, err := h.lists.Create(list.NewList{
		Name:        input.Name,
		Description: input.Description,
	}, auth.ContextFrom(c))
	switch {
	case errors.Is(err, list.ErrForbidden):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
	case errors.Is(err, list.ErrBadInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case err != nil:
		internalError(c, "lists.create", err)
	default:
		c.JSON(http.StatusOK, newListResponse(*l))
	}
}

// AddGame godoc
// @Summary      Add a game to a list
// @Description  Adds a game to a list the caller owns. Adding a game that is already present succeeds without change.
// @Tags         lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        listId path int          true "List ID"
// @Param        input  body AddGameInput true "Game to add"
// @Success      204  "added or already present"
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the list owner"
// @Failure      404  {object}  ErrorResponse "List not found"
// @Router       /lists/{listId}/games [put]
func (h *ListHandler) AddGame(c *gin.Context) {
	listID, err := strconv.ParseInt(c.Param("listId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "listId must be a number"})
		return
	}

	var input AddGameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	_, err = h.lists.AddGame(listID, input.GameID, auth.ContextFrom(c))
	switch {
	case errors.Is(err, list.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not the list owner"})
	case errors.Is(err, list.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "List not found"})
	case err != nil:
		internalError(c, "lists.addGame", err)
	default:
		c.Status(http.StatusNoContent)
	}
}
