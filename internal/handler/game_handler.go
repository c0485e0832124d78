package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/delfruit/catalog/internal/auth"
	"github.com/delfruit/catalog/internal/catalog"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// GameInput defines the creation payload.
type GameInput struct {
	Name        string     `json:"name" binding:"required" example:"I Wanna Be The Example"`
	SortName    string     `json:"sortName" example:"example"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	Author      string     `json:"author" example:"Alice Bob"`
	Collab      bool       `json:"collab"`
	DateCreated *time.Time `json:"dateCreated"`
}

// GamePatchInput defines a partial update; absent fields are left alone.
type GamePatchInput struct {
	Name        *string    `json:"name"`
	SortName    *string    `json:"sortName"`
	Description *string    `json:"description"`
	URL         *string    `json:"url"`
	Author      *string    `json:"author"`
	Collab      *bool      `json:"collab"`
	DateCreated *time.Time `json:"dateCreated"`
	Removed     *bool      `json:"removed"`
}

// endregion

// GameHandler exposes the catalog service over HTTP.
type GameHandler struct {
	catalog *catalog.Service
}

func NewGameHandler(svc *catalog.Service) *GameHandler {
	return &GameHandler{catalog: svc}
}

// List godoc
// @Summary      Get a list of games
// @Description  Retrieves a filtered, sorted, paginated list of games. Removed games are included only for administrators.
// @Tags         games
// @Produce      json
// @Param        q          query  string  false  "Search query for game name"
// @Param        page       query  int     false  "Page number"      default(0)
// @Param        limit      query  int     false  "Items per page"   default(50)
// @Param        order_col  query  string  false  "Sort column: sort_name or date_created"
// @Param        order_dir  query  string  false  "Sort direction: ASC or DESC"
// @Success      200  {array}  catalog.Game
// @Failure      500  {object} ErrorResponse
// @Router       /games [get]
func (h *GameHandler) List(c *gin.Context) {
	opts := catalog.ListOptions{
		NameQuery:     c.Query("q"),
		SortColumn:    c.Query("order_col"),
		SortDirection: c.Query("order_dir"),
		Page:          parsePage(c),
		Limit:         parseLimit(c),
	}

	games, err := h.catalog.List(opts, auth.ContextFrom(c))
	if err != nil {
		internalError(c, "games.list", err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// Get godoc
// @Summary      Get a single game
// @Description  Retrieves one game by numeric id, or a random visible game for the id token "random".
// @Tags         games
// @Produce      json
// @Param        id  path  string  true  "Game ID or the literal 'random'"
// @Success      200  {object}  catalog.Game
// @Failure      400  {object}  ErrorResponse "id must be a number"
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *GameHandler) Get(c *gin.Context) {
	game, err := h.catalog.Get(c.Param("id"), auth.ContextFrom(c))
	switch {
	case errors.Is(err, catalog.ErrBadInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id must be a number"})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Game not found"})
	case err != nil:
		internalError(c, "games.get", err)
	default:
		c.JSON(http.StatusOK, game)
	}
}

// Create godoc
// @Summary      Create a new game
// @Description  Creates a new catalog entry attributed to the calling administrator.
// @Tags         admin-games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  catalog.Game
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Router       /games [post]
func (h *GameHandler) Create(c *gin.Context) {
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	game, err := h.catalog.Create(catalog.NewGame{
		Name:        input.Name,
		SortName:    input.SortName,
		Description: input.Description,
		URL:         input.URL,
		AuthorRaw:   input.Author,
		Collab:      input.Collab,
		DateCreated: input.DateCreated,
	}, auth.ContextFrom(c))
	switch {
	case errors.Is(err, catalog.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin access required"})
	case errors.Is(err, catalog.ErrBadInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case err != nil:
		internalError(c, "games.create", err)
	default:
		c.JSON(http.StatusCreated, game)
	}
}

// Patch godoc
// @Summary      Update a game
// @Description  Applies a partial update and returns the full updated game.
// @Tags         admin-games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int             true  "Game ID"
// @Param        input body  GamePatchInput  true  "Fields to update"
// @Success      200  {object}  catalog.Game
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [patch]
func (h *GameHandler) Patch(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id must be a number"})
		return
	}

	var input GamePatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	game, err := h.catalog.Update(catalog.Patch{
		ID:          id,
		Name:        input.Name,
		SortName:    input.SortName,
		Description: input.Description,
		URL:         input.URL,
		AuthorRaw:   input.Author,
		Collab:      input.Collab,
		DateCreated: input.DateCreated,
		Removed:     input.Removed,
	}, auth.ContextFrom(c))
	switch {
	case errors.Is(err, catalog.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin access required"})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Game not found"})
	case err != nil:
		internalError(c, "games.update", err)
	default:
		c.JSON(http.StatusOK, game)
	}
}

// Delete godoc
// @Summary      Soft-delete a game
// @Description  Marks a game removed. Deleting an already-removed game is reported, not an error.
// @Tags         admin-games
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Game ID"
// @Success      200  {object}  map[string]string "{"message": "Game is already deleted"}"
// @Success      204  "removed"
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [delete]
func (h *GameHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id must be a number"})
		return
	}

	alreadyRemoved, err := h.catalog.SoftDelete(id, auth.ContextFrom(c))
	switch {
	case errors.Is(err, catalog.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin access required"})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Game not found"})
	case err != nil:
		internalError(c, "games.delete", err)
	case alreadyRemoved:
		c.JSON(http.StatusOK, gin.H{"message": "Game is already deleted"})
	default:
		c.Status(http.StatusNoContent)
	}
}
