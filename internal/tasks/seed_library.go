package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/sutra/internal/database/texts"
)

// LibrarySeeder runs catalog seeding and reports the outcome per work.
type LibrarySeeder interface {
	Run(ctx context.Context) texts.SeedResult
}

// SeedLibraryTask re-runs catalog seeding without waiting for a restart.
type SeedLibraryTask struct {
	Reason string `json:"reason,omitempty"`
}

// Config returns the queue configuration for seeding tasks.
func (t SeedLibraryTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "seed_library",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SeedLibraryProcessor creates a processor function for SeedLibraryTask.
// Works that failed to insert fail the task so backlite retries it.
func SeedLibraryProcessor(seeder LibrarySeeder) backlite.QueueProcessor[SeedLibraryTask] {
	return func(ctx context.Context, task SeedLibraryTask) error {
		if seeder == nil {
			return fmt.Errorf("library seeder not configured")
		}

		result := seeder.Run(ctx)
		if len(result.Failed) > 0 {
			return fmt.Errorf("seed library: %d works failed: %v", len(result.Failed), result.Failed)
		}

		log.Printf("[TASK] Seeded library (%s): %d inserted, %d already present",
			reasonOrDefault(task.Reason), len(result.Inserted), len(result.Skipped))
		return nil
	}
}

// NewSeedLibraryQueue creates a backlite queue for seeding tasks.
func NewSeedLibraryQueue(seeder LibrarySeeder) backlite.Queue {
	return backlite.NewQueue(SeedLibraryProcessor(seeder))
}

func reasonOrDefault(reason string) string {
	if reason == "" {
		return "manual"
	}
	return reason
}
