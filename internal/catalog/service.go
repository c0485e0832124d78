// Package catalog implements the catalog access layer: visibility rules,
// whitelisted ordering, normalization of stored rows into client-facing
// games, and the role-gated mutations.
package catalog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/delfruit/catalog/internal/access"
	"github.com/delfruit/catalog/internal/models"
)

// Canonical sort tokens. The store maps these to column references; raw
// caller strings never reach query construction.
const (
	SortByName        = "sort_name"
	SortByDateCreated = "date_created"

	DirAscending  = "ASC"
	DirDescending = "DESC"

	// RandomID is the id token selecting a uniformly random visible game.
	RandomID = "random"

	DefaultLimit = 50
	maxLimit     = 200
)

var (
	sortColumns    = []string{SortByName, SortByDateCreated}
	sortDirections = []string{DirAscending, DirDescending}
)

// Query is the storage-facing listing request. Every field has been
// validated or whitelisted before a Query is built.
type Query struct {
	NameQuery      string
	OrderBy        string
	OrderDir       string
	Offset         int
	Limit          int
	IncludeRemoved bool
}

// Store is the storage collaborator the service runs against. Lookups
// return (nil, nil) when no row is visible under the given predicate.
type Store interface {
	List(q Query) ([]models.RatedGame, error)
	ByID(id int64, includeRemoved bool) (*models.RatedGame, error)
	Random(includeRemoved bool) (*models.RatedGame, error)
	Create(g *models.Game) error
	// Update applies the given fields to the row with this id and reports
	// whether such a row exists. Applying identical values still counts
	// as found.
	Update(id int64, fields map[string]any) (bool, error)
}

// Game is the client-facing shape of a catalog entry.
type Game struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	SortName    string     `json:"sortName"`
	Author      []string   `json:"author"`
	Collab      bool       `json:"collab"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url,omitempty"`
	DateCreated *time.Time `json:"dateCreated"`
	Rating      *float64   `json:"rating"`
	Difficulty  *float64   `json:"difficulty"`
	Removed     bool       `json:"removed"`
}

// ListOptions carries raw caller input for a listing. Sort strings are
// whitelisted and page/limit clamped inside List.
type ListOptions struct {
	NameQuery     string
	SortColumn    string
	SortDirection string
	Page          int
	Limit         int
}

// NewGame is the creation payload.
type NewGame struct {
	Name        string
	SortName    string
	Description string
	URL         string
	AuthorRaw   string
	Collab      bool
	DateCreated *time.Time
}

// Patch is a partial update; only non-nil fields are written. ID selects
// the target and is never itself modified.
type Patch struct {
	ID          int64
	Name        *string
	SortName    *string
	Description *string
	URL         *string
	AuthorRaw   *string
	Collab      *bool
	DateCreated *time.Time
	Removed     *bool
}

func (p Patch) fields() map[string]any {
	m := make(map[string]any)
	if p.Name != nil {
		m["name"] = *p.Name
	}
	if p.SortName != nil {
		m["sort_name"] = *p.SortName
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.URL != nil {
		m["url"] = *p.URL
	}
	if p.AuthorRaw != nil {
		m["author_raw"] = *p.AuthorRaw
	}
	if p.Collab != nil {
		m["collab"] = *p.Collab
	}
	if p.DateCreated != nil {
		m["date_created"] = *p.DateCreated
	}
	if p.Removed != nil {
		m["removed"] = *p.Removed
	}
	return m
}

// Service implements the catalog operations over a Store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns the page of games visible to the caller. Administrators see
// removed rows; everyone else never does, whatever the filter and sort
// input look like.
func (s *Service) List(opts ListOptions, ctx access.Context) ([]Game, error) {
	page := opts.Page
	if page < 0 {
		page = 0
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	q := Query{
		NameQuery:      opts.NameQuery,
		OrderBy:        resolveWhitelist(opts.SortColumn, sortColumns, SortByName),
		OrderDir:       resolveWhitelist(opts.SortDirection, sortDirections, DirAscending),
		Offset:         page * limit,
		Limit:          limit,
		IncludeRemoved: ctx.Admin,
	}

	rows, err := s.store.List(q)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	games := make([]Game, 0, len(rows))
	for _, row := range rows {
		games = append(games, normalizeGame(row))
	}
	return games, nil
}

// Get resolves an id token to a single visible game. The token is either a
// numeric id or RandomID. A removed game and a missing one are reported
// identically to non-admins.
func (s *Service) Get(idToken string, ctx access.Context) (*Game, error) {
	var (
		row *models.RatedGame
		err error
	)
	if idToken == RandomID {
		row, err = s.store.Random(ctx.Admin)
	} else {
		id, parseErr := strconv.ParseInt(idToken, 10, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: id must be a number", ErrBadInput)
		}
		row, err = s.store.ByID(id, ctx.Admin)
	}
	if err != nil {
		return nil, fmt.Errorf("get game %q: %w", idToken, err)
	}
	if row == nil {
		return nil, ErrNotFound
	}
	game := normalizeGame(*row)
	return &game, nil
}

// Create persists a new game attributed to the caller. Admin only.
func (s *Service) Create(in NewGame, ctx access.Context) (*Game, error) {
	if !ctx.Admin || !ctx.Authenticated() {
		return nil, ErrForbidden
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrBadInput)
	}
	sortName := in.SortName
	if sortName == "" {
		sortName = in.Name
	}

	game := models.Game{
		Name:        in.Name,
		SortName:    sortName,
		Description: in.Description,
		URL:         in.URL,
		AuthorRaw:   in.AuthorRaw,
		Collab:      in.Collab,
		AddedByID:   *ctx.UserID,
	}
	if in.DateCreated != nil {
		game.DateCreated = *in.DateCreated
	}

	if err := s.store.Create(&game); err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	created := normalizeGame(models.RatedGame{Game: game})
	return &created, nil
}

// Update applies a partial patch and returns the re-read game. Admin only;
// the role check runs before any storage access. Writing values identical
// to the stored ones is a successful no-op.
func (s *Service) Update(p Patch, ctx access.Context) (*Game, error) {
	if !ctx.Admin {
		return nil, ErrForbidden
	}

	found, err := s.store.Update(p.ID, p.fields())
	if err != nil {
		return nil, fmt.Errorf("update game %d: %w", p.ID, err)
	}
	if !found {
		return nil, ErrNotFound
	}

	row, err := s.store.ByID(p.ID, true)
	if err != nil {
		return nil, fmt.Errorf("update game %d: %w", p.ID, err)
	}
	if row == nil {
		return nil, ErrNotFound
	}
	game := normalizeGame(*row)
	return &game, nil
}

// SoftDelete marks a game removed. Admin only. The returned flag reports
// whether the game was already removed, in which case nothing is written.
func (s *Service) SoftDelete(id int64, ctx access.Context) (alreadyRemoved bool, err error) {
	if !ctx.Admin {
		return false, ErrForbidden
	}

	row, err := s.store.ByID(id, true)
	if err != nil {
		return false, fmt.Errorf("delete game %d: %w", id, err)
	}
	if row == nil {
		return false, ErrNotFound
	}
	if row.Removed {
		return true, nil
	}

	removed := true
	found, err := s.store.Update(id, Patch{Removed: &removed}.fields())
	if err != nil {
		return false, fmt.Errorf("delete game %d: %w", id, err)
	}
	if !found {
		return false, ErrNotFound
	}
	return false, nil
}

func normalizeGame(row models.RatedGame) Game {
	return Game{
		ID:          row.ID,
		Name:        row.Name,
		SortName:    row.SortName,
		Author:      NormalizeAuthor(row.AuthorRaw, row.Collab),
		Collab:      row.Collab,
		Description: row.Description,
		URL:         row.URL,
		DateCreated: NormalizeDate(row.DateCreated),
		Rating:      row.Rating,
		Difficulty:  row.Difficulty,
		Removed:     row.Removed,
	}
}
