// Package settingsstore resolves runtime settings that can be changed while
// the reader runs.
//
// Priority: database > environment (via config) > default
package settingsstore

import (
	"context"
	"errors"

	"github.com/mrlokans/sutra/internal/config"
	"github.com/mrlokans/sutra/internal/entities"
)

const (
	SourceDatabase    = "database"
	SourceEnvironment = "environment"
	SourceDefault     = "default"
)

type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (*entities.Setting, error)
	SetSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
}

type SettingsStore struct {
	repo SettingsRepository
	env  config.Maintenance
}

func New(repo SettingsRepository, env config.Maintenance) *SettingsStore {
	return &SettingsStore{repo: repo, env: env}
}

// lookup returns a non-empty database value for key.
func (s *SettingsStore) lookup(ctx context.Context, key string) (string, bool) {
	setting, err := s.repo.GetSetting(ctx, key)
	if err != nil || setting.Value == "" {
		return "", false
	}
	return setting.Value, true
}

func (s *SettingsStore) clear(ctx context.Context, key string) error {
	err := s.repo.DeleteSetting(ctx, key)
	if errors.Is(err, entities.ErrNotFound) {
		return nil
	}
	return err
}
