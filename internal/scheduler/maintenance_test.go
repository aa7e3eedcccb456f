package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/sutra/internal/settingsstore"
)

type staticSettings settingsstore.MaintenanceConfig

func (s staticSettings) GetMaintenanceConfig(context.Context) settingsstore.MaintenanceConfig {
	return settingsstore.MaintenanceConfig(s)
}

func TestMaintenanceScheduler_Disabled(t *testing.T) {
	s := NewMaintenanceScheduler(staticSettings{Enabled: false, Schedule: "0 3 * * *"}, func(context.Context) error { return nil })

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestMaintenanceScheduler_InvalidSchedule(t *testing.T) {
	s := NewMaintenanceScheduler(staticSettings{Enabled: true, Schedule: "nightly"}, func(context.Context) error { return nil })

	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestMaintenanceScheduler_StartStop(t *testing.T) {
	s := NewMaintenanceScheduler(staticSettings{Enabled: true, Schedule: "0 3 * * *"}, func(context.Context) error { return nil })

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())

	// Starting twice is a no-op.
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	s.Stop()
}

func TestMaintenanceScheduler_Reschedule(t *testing.T) {
	settings := &staticSettings{Enabled: true, Schedule: "0 3 * * *"}
	s := NewMaintenanceScheduler(settings, func(context.Context) error { return nil })

	require.NoError(t, s.Start(context.Background()))
	settings.Schedule = "30 1 * * *"
	require.NoError(t, s.Reschedule(context.Background()))
	defer s.Stop()

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.Equal(t, 1, next.Hour())
	assert.Equal(t, 30, next.Minute())
}

func TestMaintenanceScheduler_RunNow(t *testing.T) {
	calls := 0
	s := NewMaintenanceScheduler(staticSettings{}, func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, s.RunNow(context.Background()))
	assert.Equal(t, 1, calls)

	failing := NewMaintenanceScheduler(staticSettings{}, func(context.Context) error { return errors.New("queue closed") })
	assert.ErrorContains(t, failing.RunNow(context.Background()), "queue closed")
}
