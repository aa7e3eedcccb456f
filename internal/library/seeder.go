// Package library runs catalog seeding at startup and on demand.
package library

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/mrlokans/sutra/internal/catalog"
	"github.com/mrlokans/sutra/internal/clock"
	"github.com/mrlokans/sutra/internal/database/texts"
	"github.com/mrlokans/sutra/internal/entities"
)

type SeedStore interface {
	SeedIfMissing(ctx context.Context, works []catalog.Work) (texts.SeedResult, error)
}

type SettingsStore interface {
	SetSetting(ctx context.Context, key, value string) error
	SetTime(ctx context.Context, key string, t time.Time) error
}

// Seeder seeds the document store from the catalog. Failures never reach
// the caller: the library stays usable with whatever was committed and the
// next run retries the rest.
type Seeder struct {
	store    SeedStore
	settings SettingsStore
	load     func() ([]catalog.Work, error)
	clock    clock.Clock
}

func NewSeeder(store SeedStore, settings SettingsStore, c clock.Clock) *Seeder {
	return &Seeder{
		store:    store,
		settings: settings,
		load:     catalog.Load,
		clock:    c,
	}
}

// WithLoader replaces the catalog source.
func (s *Seeder) WithLoader(load func() ([]catalog.Work, error)) *Seeder {
	s.load = load
	return s
}

func (s *Seeder) Run(ctx context.Context) texts.SeedResult {
	works, err := s.load()
	if err != nil {
		log.Printf("Seed: failed to load catalog: %v", err)
		return texts.SeedResult{}
	}

	result, err := s.store.SeedIfMissing(ctx, works)
	if err != nil {
		log.Printf("Seed: skipped, will retry on next run: %v", err)
		return result
	}

	log.Printf("Seed: %d inserted, %d already present, %d failed",
		len(result.Inserted), len(result.Skipped), len(result.Failed))

	s.record(ctx, result)
	return result
}

func (s *Seeder) record(ctx context.Context, result texts.SeedResult) {
	if s.settings == nil {
		return
	}
	if err := s.settings.SetTime(ctx, entities.SettingKeySeedLastAt, s.clock.Now()); err != nil {
		log.Printf("Seed: failed to record seed time: %v", err)
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.settings.SetSetting(ctx, entities.SettingKeySeedLastResult, string(data)); err != nil {
		log.Printf("Seed: failed to record seed result: %v", err)
	}
}
