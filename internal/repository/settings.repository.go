package repository

import (
	"context"
	"errors"

	"github.com/nimasrn/resto-manager/internal/model"
	"github.com/nimasrn/resto-manager/pkg/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct {
	*store.DB
}

func NewSettingsRepository(db *store.DB) *SettingsRepository {
	return &SettingsRepository{
		db,
	}
}

// Get returns the stored settings, or nil when nothing was saved yet.
func (r *SettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	conn, err := r.Session(ctx)
	if err != nil {
		return nil, err
	}

	var entity SettingsEntity
	err = conn.Where("id = ?", model.SettingsID).Take(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toSettingsModel(&entity), nil
}

// Save upserts s under the singleton key, whatever ID the caller supplied,
// and returns that key.
func (r *SettingsRepository) Save(ctx context.Context, s *model.Settings) (string, error) {
	conn, err := r.Session(ctx)
	if err != nil {
		return "", err
	}

	entity := toSettingsEntity(s)
	err = conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(entity).Error
	if err != nil {
		return "", err
	}

	s.ID = entity.ID
	return entity.ID, nil
}
