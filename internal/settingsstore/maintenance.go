package settingsstore

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/sutra/internal/config"
	"github.com/mrlokans/sutra/internal/entities"
)

// MaintenanceConfig is the effective configuration of the annotation audit.
type MaintenanceConfig struct {
	Enabled  bool   `json:"enabled"`
	Schedule string `json:"schedule"`
}

// MaintenanceConfigInfo includes source information for each field
type MaintenanceConfigInfo struct {
	Enabled       bool   `json:"enabled"`
	EnabledSource string `json:"enabled_source"`

	Schedule       string `json:"schedule"`
	ScheduleSource string `json:"schedule_source"`
	Description    string `json:"description"`
}

// MaintenanceStatus describes the last audit run.
type MaintenanceStatus struct {
	LastRunAt     *time.Time `json:"last_run_at,omitempty"`
	DanglingCount int        `json:"dangling_count"`
}

func (s *SettingsStore) GetMaintenanceEnabled(ctx context.Context) (bool, string) {
	if v, ok := s.lookup(ctx, entities.SettingKeyMaintenanceEnabled); ok {
		enabled, err := strconv.ParseBool(v)
		if err == nil {
			return enabled, SourceDatabase
		}
	}
	return s.env.Enabled, SourceEnvironment
}

func (s *SettingsStore) SetMaintenanceEnabled(ctx context.Context, enabled bool) error {
	return s.repo.SetSetting(ctx, entities.SettingKeyMaintenanceEnabled, strconv.FormatBool(enabled))
}

// GetMaintenanceSchedule returns the cron schedule (database > env > default)
func (s *SettingsStore) GetMaintenanceSchedule(ctx context.Context) (string, string) {
	if v, ok := s.lookup(ctx, entities.SettingKeyMaintenanceSchedule); ok && ValidateCronSchedule(v) == nil {
		return v, SourceDatabase
	}
	if s.env.Schedule != "" && ValidateCronSchedule(s.env.Schedule) == nil {
		return s.env.Schedule, SourceEnvironment
	}
	return config.DefaultMaintenanceSchedule, SourceDefault
}

// SetMaintenanceSchedule stores a validated schedule override.
func (s *SettingsStore) SetMaintenanceSchedule(ctx context.Context, schedule string) error {
	if err := ValidateCronSchedule(schedule); err != nil {
		return &entities.ValidationError{Field: "schedule", Value: schedule, Message: err.Error()}
	}
	return s.repo.SetSetting(ctx, entities.SettingKeyMaintenanceSchedule, schedule)
}

// ClearMaintenanceOverrides drops database overrides so env config applies again.
func (s *SettingsStore) ClearMaintenanceOverrides(ctx context.Context) error {
	if err := s.clear(ctx, entities.SettingKeyMaintenanceEnabled); err != nil {
		return err
	}
	return s.clear(ctx, entities.SettingKeyMaintenanceSchedule)
}

func (s *SettingsStore) GetMaintenanceConfig(ctx context.Context) MaintenanceConfig {
	enabled, _ := s.GetMaintenanceEnabled(ctx)
	schedule, _ := s.GetMaintenanceSchedule(ctx)
	return MaintenanceConfig{Enabled: enabled, Schedule: schedule}
}

func (s *SettingsStore) GetMaintenanceConfigInfo(ctx context.Context) MaintenanceConfigInfo {
	enabled, enabledSource := s.GetMaintenanceEnabled(ctx)
	schedule, scheduleSource := s.GetMaintenanceSchedule(ctx)
	return MaintenanceConfigInfo{
		Enabled:        enabled,
		EnabledSource:  enabledSource,
		Schedule:       schedule,
		ScheduleSource: scheduleSource,
		Description:    GetCronDescription(schedule),
	}
}

// GetMaintenanceStatus reads the bookkeeping written by the last audit.
func (s *SettingsStore) GetMaintenanceStatus(ctx context.Context) MaintenanceStatus {
	var status MaintenanceStatus

	if v, ok := s.lookup(ctx, entities.SettingKeyAuditLastAt); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			status.LastRunAt = &t
		}
	}
	if v, ok := s.lookup(ctx, entities.SettingKeyAuditLastReport); ok {
		var report struct {
			Dangling []json.RawMessage `json:"dangling"`
		}
		if err := json.Unmarshal([]byte(v), &report); err == nil {
			status.DanglingCount = len(report.Dangling)
		}
	}
	return status
}

// ValidateCronSchedule validates a five-field cron expression
func ValidateCronSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule
func GetCronDescription(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "Every hour at :00"
	case "0 */6 * * *":
		return "Every 6 hours"
	case "0 0 * * *":
		return "Daily at midnight"
	case "0 3 * * *":
		return "Daily at 03:00"
	case "0 0 * * 0":
		return "Weekly on Sunday at midnight"
	default:
		return "Custom schedule: " + schedule
	}
}

// GetNextRunTime calculates when the next audit will run after from.
func GetNextRunTime(schedule string, from time.Time) (*time.Time, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(from)
	return &next, nil
}
