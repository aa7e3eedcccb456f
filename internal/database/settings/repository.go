// Package settings provides database operations for application bookkeeping
// such as the last library seed and the last annotation audit.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	at, err := repo.GetTime(ctx, entities.SettingKeySeedLastAt)
package settings

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/sutra/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSetting retrieves a setting by key.
func (r *Repository) GetSetting(ctx context.Context, key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &entities.NotFoundError{Resource: "setting", ID: key}
	}
	if err != nil {
		return nil, entities.WrapPersistence("get setting", err)
	}
	return &setting, nil
}

// SetSetting creates or updates a setting.
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	db := r.db.WithContext(ctx)

	var setting entities.Setting
	result := db.Where("key = ?", key).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		setting = entities.Setting{
			Key:   key,
			Value: value,
		}
		return entities.WrapPersistence("create setting", db.Create(&setting).Error)
	} else if result.Error != nil {
		return entities.WrapPersistence("get setting", result.Error)
	}

	setting.Value = value
	return entities.WrapPersistence("update setting", db.Save(&setting).Error)
}

// DeleteSetting removes a setting by key.
func (r *Repository) DeleteSetting(ctx context.Context, key string) error {
	return entities.WrapPersistence("delete setting", r.db.WithContext(ctx).Where("key = ?", key).Delete(&entities.Setting{}).Error)
}

// SetTime stores t as RFC 3339 in UTC.
func (r *Repository) SetTime(ctx context.Context, key string, t time.Time) error {
	return r.SetSetting(ctx, key, t.UTC().Format(time.RFC3339))
}

// GetTime returns the zero time when the key is unset.
func (r *Repository) GetTime(ctx context.Context, key string) (time.Time, error) {
	setting, err := r.GetSetting(ctx, key)
	if errors.Is(err, entities.ErrNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, setting.Value)
	if err != nil {
		return time.Time{}, &entities.ValidationError{Field: key, Value: setting.Value, Message: "not an RFC 3339 time"}
	}
	return t, nil
}
