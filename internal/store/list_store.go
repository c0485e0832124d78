package store

import (
	"errors"

	"github.com/delfruit/catalog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListStore implements list.Store on a gorm connection.
type ListStore struct {
	db *gorm.DB
}

func NewListStore(db *gorm.DB) *ListStore {
	return &ListStore{db: db}
}

func (s *ListStore) Get(id int64) (*models.GameList, error) {
	var l models.GameList
	err := s.db.Take(&l, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *ListStore) Create(l *models.GameList) error {
	return s.db.Create(l).Error
}

func (s *ListStore) GameIDs(listID int64) ([]int64, error) {
	var ids []int64
	err := s.db.Model(&models.GameListEntry{}).
		Where("game_list_id = ?", listID).
		Order("created_at").
		Pluck("game_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// AddEntry inserts a membership row. The entry table's composite primary
// key plus ON CONFLICT DO NOTHING makes concurrent duplicate adds collapse
// into a single row; a suppressed insert is reported as inserted=false.
func (s *ListStore) AddEntry(listID, gameID int64) (bool, error) {
	entry := models.GameListEntry{GameListID: listID, GameID: gameID}
	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
