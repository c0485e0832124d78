package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/delfruit/catalog/internal/access"
	"github.com/delfruit/catalog/internal/models"
)

// fakeStore is an in-memory Store that mimics the query semantics of the
// real one. It errors on any order token outside the canonical set, so a
// whitelist bypass fails tests loudly instead of silently sorting.
type fakeStore struct {
	rows    []models.RatedGame
	nextID  int64
	updates int
}

func (f *fakeStore) List(q Query) ([]models.RatedGame, error) {
	if q.OrderBy != SortByName && q.OrderBy != SortByDateCreated {
		return nil, fmt.Errorf("unexpected order column %q", q.OrderBy)
	}
	if q.OrderDir != DirAscending && q.OrderDir != DirDescending {
		return nil, fmt.Errorf("unexpected order direction %q", q.OrderDir)
	}

	var out []models.RatedGame
	for _, r := range f.rows {
		if r.Removed && !q.IncludeRemoved {
			continue
		}
		if q.NameQuery != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(q.NameQuery)) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		var less bool
		if q.OrderBy == SortByDateCreated {
			less = out[i].DateCreated.Before(out[j].DateCreated)
		} else {
			less = out[i].SortName < out[j].SortName
		}
		if q.OrderDir == DirDescending {
			return !less
		}
		return less
	})

	if q.Offset >= len(out) {
		return nil, nil
	}
	out = out[q.Offset:]
	if q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeStore) ByID(id int64, includeRemoved bool) (*models.RatedGame, error) {
	for _, r := range f.rows {
		if r.ID == id {
			if r.Removed && !includeRemoved {
				return nil, nil
			}
			row := r
			return &row, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Random(includeRemoved bool) (*models.RatedGame, error) {
	for _, r := range f.rows {
		if r.Removed && !includeRemoved {
			continue
		}
		row := r
		return &row, nil
	}
	return nil, nil
}

func (f *fakeStore) Create(g *models.Game) error {
	f.nextID++
	g.ID = f.nextID
	f.rows = append(f.rows, models.RatedGame{Game: *g})
	return nil
}

func (f *fakeStore) Update(id int64, fields map[string]any) (bool, error) {
	for i := range f.rows {
		if f.rows[i].ID != id {
			continue
		}
		f.updates++
		for k, v := range fields {
			switch k {
			case "name":
				f.rows[i].Name = v.(string)
			case "sort_name":
				f.rows[i].SortName = v.(string)
			case "description":
				f.rows[i].Description = v.(string)
			case "url":
				f.rows[i].URL = v.(string)
			case "author_raw":
				f.rows[i].AuthorRaw = v.(string)
			case "collab":
				f.rows[i].Collab = v.(bool)
			case "date_created":
				f.rows[i].DateCreated = v.(time.Time)
			case "removed":
				f.rows[i].Removed = v.(bool)
			}
		}
		return true, nil
	}
	return false, nil
}

func game(id int64, name string, removed bool) models.RatedGame {
	return models.RatedGame{Game: models.Game{ID: id, Name: name, SortName: strings.ToLower(name), Removed: removed}}
}

func admin() access.Context   { return access.ForUser(1, true) }
func regular() access.Context { return access.ForUser(2, false) }

func TestListHidesRemovedFromNonAdmins(t *testing.T) {
	store := &fakeStore{rows: []models.RatedGame{
		game(1, "Alpha", false),
		game(2, "Beta", true),
		game(3, "Gamma", false),
	}}
	svc := NewService(store)

	games, err := svc.List(ListOptions{}, access.Anonymous())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, g := range games {
		if g.Removed {
			t.Fatalf("removed game %d leaked to anonymous caller", g.ID)
		}
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 visible games, got %d", len(games))
	}

	games, err = svc.List(ListOptions{}, admin())
	if err != nil {
		t.Fatalf("list as admin: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("expected admin to see all 3 games, got %d", len(games))
	}
}

func TestListHidesRemovedUnderAdversarialSortInput(t *testing.T) {
	store := &fakeStore{rows: []models.RatedGame{
		game(1, "Alpha", false),
		game(2, "Beta", true),
	}}
	svc := NewService(store)

	for _, col := range []string{"removed", "g.removed; --", "1=1", "RANDOM()"} {
		games, err := svc.List(ListOptions{SortColumn: col, SortDirection: "DESC; DROP TABLE games"}, regular())
		if err != nil {
			t.Fatalf("sort %q: %v", col, err)
		}
		for _, g := range games {
			if g.Removed {
				t.Fatalf("sort %q leaked a removed game", col)
			}
		}
	}
}

func TestListBogusSortColumnFallsBackToSortName(t *testing.T) {
	store := &fakeStore{rows: []models.RatedGame{
		game(3, "C", false),
		game(1, "A", false),
		game(2, "B", false),
	}}
	svc := NewService(store)

	games, err := svc.List(ListOptions{Page: 0, Limit: 2, SortColumn: "bogus"}, regular())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(games))
	}
	if games[0].Name != "A" || games[1].Name != "B" {
		t.Fatalf("expected sort_name ascending [A B], got [%s %s]", games[0].Name, games[1].Name)
	}
}

func TestListDefaultsAndClampsPagination(t *testing.T) {
	var rows []models.RatedGame
	for i := int64(1); i <= 300; i++ {
		rows = append(rows, game(i, fmt.Sprintf("Game %03d", i), false))
	}
	store := &fakeStore{rows: rows}
	svc := NewService(store)

	games, err := svc.List(ListOptions{}, regular())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(games) != DefaultLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultLimit, len(games))
	}

	games, err = svc.List(ListOptions{Limit: 100000}, regular())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(games) != maxLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxLimit, len(games))
	}

	games, err = svc.List(ListOptions{Page: -5, Limit: -1}, regular())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(games) != DefaultLimit {
		t.Fatalf("expected negative input to fall back to defaults, got %d rows", len(games))
	}
}

func TestListNormalizesEveryRow(t *testing.T) {
	collab := game(1, "Duo", false)
	collab.Collab = true
	collab.AuthorRaw = "Alice Bob"
	solo := game(2, "Solo", false)
	solo.AuthorRaw = "Carol"
	store := &fakeStore{rows: []models.RatedGame{collab, solo}}
	svc := NewService(store)

	games, err := svc.List(ListOptions{}, regular())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(games[0].Author) != 2 || games[0].Author[0] != "Alice" {
		t.Fatalf("collab author not split: %v", games[0].Author)
	}
	if len(games[1].Author) != 1 || games[1].Author[0] != "Carol" {
		t.Fatalf("solo author mangled: %v", games[1].Author)
	}
	for _, g := range games {
		if g.DateCreated != nil {
			t.Fatalf("zero date should normalize to nil, got %v", g.DateCreated)
		}
	}
}

func TestGetByIDConflatesRemovedAndMissing(t *testing.T) {
	store := &fakeStore{rows: []models.RatedGame{game(1, "Hidden", true)}}
	svc := NewService(store)

	_, err := svc.Get("1", regular())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("removed game for non-admin: expected ErrNotFound, got %v", err)
	}
	_, err = svc.Get("99", regular())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing game: expected ErrNotFound, got %v", err)
	}

	g, err := svc.Get("1", admin())
	if err != nil {
		t.Fatalf("admin get: %v", err)
	}
	if !g.Removed {
		t.Fatalf("expected admin to see the removed row")
	}
}

func TestGetRejectsNonNumericID(t *testing.T) {
	svc := NewService(&fakeStore{})
	_, err := svc.Get("abc", regular())
	if !errors.Is(err, ErrBadInput) {
		t.Fatalf("expected ErrBadInput, got %v", err)
	}
}

func TestGetRandomRespectsVisibility(t *testing.T) {
	store := &fakeStore{rows: []models.RatedGame{
		game(1, "Gone", true),
		game(2, "AlsoGone", true),
	}}
	svc := NewService(store)

	_, err := svc.Get(RandomID, regular())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("random over only-removed store: expected ErrNotFound, got %v", err)
	}

	g, err := svc.Get(RandomID, admin())
	if err != nil {
		t.Fatalf("random as admin: %v", err)
	}
	if g == nil {
		t.Fatal("expected a game for admin random")
	}
}

func TestGetRandomNormalizesResult(t *testing.T) {
	row := game(1, "Duo", false)
	row.Collab = true
	row.AuthorRaw = "Alice Bob"
	svc := NewService(&fakeStore{rows: []models.RatedGame{row}})

	g, err := svc.Get(RandomID, regular())
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if len(g.Author) != 2 {
		t.Fatalf("random result not normalized: %v", g.Author)
	}
}

func TestCreateRequiresAdmin(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	_, err := svc.Create(NewGame{Name: "New"}, regular())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(store.rows) != 0 {
		t.Fatal("non-admin create reached storage")
	}

	g, err := svc.Create(NewGame{Name: "New"}, admin())
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if g.Removed {
		t.Fatal("new games must start not removed")
	}
	if g.SortName != "New" {
		t.Fatalf("expected sort name defaulted from name, got %q", g.SortName)
	}
}

func TestUpdateRejectsNonAdminBeforeStorage(t *testing.T) {
	store := &fakeStore{rows: []models.RatedGame{game(1, "Alpha", false)}}
	svc := NewService(store)

	name := "Renamed"
	_, err := svc.Update(Patch{ID: 1, Name: &name}, regular())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if store.updates != 0 {
		t.Fatal("non-admin patch reached storage")
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := NewService(&fakeStore{})
	name := "x"
	_, err := svc.Update(Patch{ID: 7, Name: &name}, admin())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePatchesOnlyPresentFields(t *testing.T) {
	row := game(1, "Alpha", false)
	row.Description = "original"
	store := &fakeStore{rows: []models.RatedGame{row}}
	svc := NewService(store)

	name := "Alpha II"
	g, err := svc.Update(Patch{ID: 1, Name: &name}, admin())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if g.Name != "Alpha II" {
		t.Fatalf("name not updated: %q", g.Name)
	}
	if g.Description != "original" {
		t.Fatalf("absent field was touched: %q", g.Description)
	}
	if g.ID != 1 {
		t.Fatalf("id must be immutable, got %d", g.ID)
	}
}

func TestUpdateIdenticalValuesIsFound(t *testing.T) {
	store := &fakeStore{rows: []models.RatedGame{game(1, "Alpha", false)}}
	svc := NewService(store)

	name := "Alpha"
	g, err := svc.Update(Patch{ID: 1, Name: &name}, admin())
	if err != nil {
		t.Fatalf("idempotent update: %v", err)
	}
	if g.Name != "Alpha" {
		t.Fatalf("got %q", g.Name)
	}
}

func TestSoftDeleteIsIdempotent(t *testing.T) {
	store := &fakeStore{rows: []models.RatedGame{game(1, "Alpha", false)}}
	svc := NewService(store)

	already, err := svc.SoftDelete(1, admin())
	if err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if already {
		t.Fatal("first delete reported already removed")
	}
	if !store.rows[0].Removed {
		t.Fatal("game not marked removed")
	}
	writes := store.updates

	already, err = svc.SoftDelete(1, admin())
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if !already {
		t.Fatal("second delete should report already removed")
	}
	if store.updates != writes {
		t.Fatal("second delete performed a redundant write")
	}
}

func TestSoftDeleteAuthorization(t *testing.T) {
	store := &fakeStore{rows: []models.RatedGame{game(1, "Alpha", false)}}
	svc := NewService(store)

	if _, err := svc.SoftDelete(1, regular()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.SoftDelete(9, admin()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
