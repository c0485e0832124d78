// Package list implements curated-list membership: list creation and the
// idempotent, ownership-checked addition of games to a list.
package list

import (
	"errors"
	"fmt"

	"github.com/delfruit/catalog/internal/access"
	"github.com/delfruit/catalog/internal/models"
)

var (
	// ErrNotFound means the target list does not exist. List existence is
	// not sensitive, so this is distinct from ErrForbidden.
	ErrNotFound = errors.New("list not found")

	// ErrForbidden means the caller is anonymous or is not the list's
	// owner. Ownership is exact-match; administrators get no bypass.
	ErrForbidden = errors.New("not the list owner")

	ErrBadInput = errors.New("bad input")
)

// Outcome reports what an AddGame call did.
type Outcome int

const (
	Added Outcome = iota
	AlreadyPresent
)

// Store is the storage collaborator. Get returns (nil, nil) when the list
// does not exist. AddEntry must be duplicate-safe under concurrency: it
// reports false, without error, when the membership row already exists.
type Store interface {
	Get(id int64) (*models.GameList, error)
	Create(l *models.GameList) error
	GameIDs(listID int64) ([]int64, error)
	AddEntry(listID, gameID int64) (inserted bool, err error)
}

// NewList is the creation payload.
type NewList struct {
	Name        string
	Description string
}

// Service implements list membership over a Store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create persists a new list owned by the caller.
func (s *Service) Create(in NewList, ctx access.Context) (*models.GameList, error) {
	if !ctx.Authenticated() {
		return nil, ErrForbidden
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrBadInput)
	}

	l := models.GameList{
		UserID:      *ctx.UserID,
		Name:        in.Name,
		Description: in.Description,
	}
	if err := s.store.Create(&l); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}
	return &l, nil
}

// AddGame adds a game to a list. Repeated and concurrent calls for the same
// (list, game) pair leave exactly one membership row: the pre-check catches
// the common repeat, and the store's uniqueness guarantee catches the race.
func (s *Service) AddGame(listID, gameID int64, ctx access.Context) (Outcome, error) {
	if !ctx.Authenticated() {
		return 0, ErrForbidden
	}

	l, err := s.store.Get(listID)
	if err != nil {
		return 0, fmt.Errorf("add game %d to list %d: %w", gameID, listID, err)
	}
	if l == nil {
		return 0, ErrNotFound
	}
	if l.UserID != *ctx.UserID {
		return 0, ErrForbidden
	}

	ids, err := s.store.GameIDs(listID)
	if err != nil {
		return 0, fmt.Errorf("add game %d to list %d: %w", gameID, listID, err)
	}
	for _, id := range ids {
		if id == gameID {
			return AlreadyPresent, nil
		}
	}

	inserted, err := s.store.AddEntry(listID, gameID)
	if err != nil {
		return 0, fmt.Errorf("add game %d to list %d: %w", gameID, listID, err)
	}
	if !inserted {
		return AlreadyPresent, nil
	}
	return Added, nil
}
