// Package store provides the gorm-backed storage collaborators for the
// catalog and list services.
package store

import (
	"errors"

	"github.com/delfruit/catalog/internal/catalog"
	"github.com/delfruit/catalog/internal/models"

	"gorm.io/gorm"
)

// sortColumns maps the canonical sort tokens to column references. Nothing
// else ever reaches the ORDER BY clause.
var sortColumns = map[string]string{
	catalog.SortByName:        "games.sort_name",
	catalog.SortByDateCreated: "games.date_created",
}

// GameStore implements catalog.Store on a gorm connection.
type GameStore struct {
	db *gorm.DB
}

func NewGameStore(db *gorm.DB) *GameStore {
	return &GameStore{db: db}
}

// ratedGames builds the base query joining each game with the averages of
// its non-removed ratings. The LEFT JOIN keeps unrated games in the result
// with nil averages; the GROUP BY collapses the rating fan-out.
func (s *GameStore) ratedGames(includeRemoved bool) *gorm.DB {
	db := s.db.Model(&models.Game{}).
		Select("games.*, AVG(r.rating) AS rating, AVG(r.difficulty) AS difficulty").
		Joins("LEFT JOIN ratings r ON r.game_id = games.id AND r.removed = false").
		Group("games.id")
	if !includeRemoved {
		db = db.Where("games.removed = false")
	}
	return db
}

func (s *GameStore) List(q catalog.Query) ([]models.RatedGame, error) {
	db := s.ratedGames(q.IncludeRemoved)
	if q.NameQuery != "" {
		db = db.Where("games.name ILIKE ?", "%"+q.NameQuery+"%")
	}

	var rows []models.RatedGame
	err := db.Order(orderClause(q.OrderBy, q.OrderDir)).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GameStore) ByID(id int64, includeRemoved bool) (*models.RatedGame, error) {
	var row models.RatedGame
	err := s.ratedGames(includeRemoved).
		Where("games.id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *GameStore) Random(includeRemoved bool) (*models.RatedGame, error) {
	var row models.RatedGame
	err := s.ratedGames(includeRemoved).
		Order("RANDOM()").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *GameStore) Create(g *models.Game) error {
	return s.db.Create(g).Error
}

func (s *GameStore) Update(id int64, fields map[string]any) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Game{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	if len(fields) == 0 {
		return true, nil
	}
	if err := s.db.Model(&models.Game{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return false, err
	}
	return true, nil
}

func orderClause(col, dir string) string {
	column, ok := sortColumns[col]
	if !ok {
		column = sortColumns[catalog.SortByName]
	}
	if dir != catalog.DirDescending {
		dir = catalog.DirAscending
	}
	return column + " " + dir
}
