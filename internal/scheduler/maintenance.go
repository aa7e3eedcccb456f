package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/sutra/internal/settingsstore"
)

// MaintenanceSettings supplies the effective audit schedule.
type MaintenanceSettings interface {
	GetMaintenanceConfig(ctx context.Context) settingsstore.MaintenanceConfig
}

// Job is the work run on every tick, typically enqueueing an audit task.
type Job func(ctx context.Context) error

// MaintenanceScheduler runs the dangling annotation audit on a cron schedule.
type MaintenanceScheduler struct {
	settings MaintenanceSettings
	job      Job

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	runCtx     context.Context
	cancelFunc context.CancelFunc
}

// NewMaintenanceScheduler creates a new scheduler instance
func NewMaintenanceScheduler(settings MaintenanceSettings, job Job) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		settings: settings,
		job:      job,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if maintenance is enabled
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	config := s.settings.GetMaintenanceConfig(ctx)
	if !config.Enabled {
		log.Printf("Maintenance scheduler: disabled")
		return nil
	}

	if err := settingsstore.ValidateCronSchedule(config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", config.Schedule, err)
	}

	s.runCtx, s.cancelFunc = context.WithCancel(ctx)

	jobCtx := s.runCtx
	entryID, err := s.cron.AddFunc(config.Schedule, func() {
		s.run(jobCtx, "schedule")
	})
	if err != nil {
		s.cancelFunc()
		return fmt.Errorf("failed to schedule maintenance job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := settingsstore.GetNextRunTime(config.Schedule, time.Now())
	log.Printf("Maintenance scheduler: started with schedule '%s' (%s). Next run: %v",
		config.Schedule,
		settingsstore.GetCronDescription(config.Schedule),
		nextRun)

	// Monitor for context cancellation
	runCtx := s.runCtx
	go func() {
		<-runCtx.Done()
		s.stopIfCurrent(runCtx)
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// stopIfCurrent stops only the run started with ctx, so a cancelled earlier
// run never stops a rescheduled one.
func (s *MaintenanceScheduler) stopIfCurrent(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.runCtx == ctx {
		s.stopLocked()
	}
}

func (s *MaintenanceScheduler) stopLocked() {
	if !s.isRunning {
		return
	}

	if s.cancelFunc != nil {
		s.cancelFunc()
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Maintenance scheduler: stopped")
}

// Reschedule updates the schedule (call after settings change)
func (s *MaintenanceScheduler) Reschedule(ctx context.Context) error {
	s.Stop()
	return s.Start(ctx)
}

// RunNow triggers an immediate run outside the schedule.
func (s *MaintenanceScheduler) RunNow(ctx context.Context) error {
	if err := s.job(ctx); err != nil {
		return fmt.Errorf("maintenance job: %w", err)
	}
	return nil
}

// IsRunning returns whether the scheduler is active
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next audit will occur
func (s *MaintenanceScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *MaintenanceScheduler) run(ctx context.Context, trigger string) {
	if ctx.Err() != nil {
		return
	}

	startTime := time.Now()
	if err := s.job(ctx); err != nil {
		log.Printf("Maintenance: %s run failed: %v", trigger, err)
		return
	}
	log.Printf("Maintenance: %s run finished in %v", trigger, time.Since(startTime).Round(time.Millisecond))
}
