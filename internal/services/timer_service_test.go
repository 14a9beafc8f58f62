package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancebook/internal/errors"
)

func setupTimerService(t *testing.T, now time.Time) (*timerServiceImpl, func(time.Time)) {
	repo := setupRepo(t)
	service := NewTimerService(repo, testConfig()).(*timerServiceImpl)

	current := now
	service.now = func() time.Time { return current }
	advance := func(to time.Time) { current = to }

	return service, advance
}

func TestTimerService_Start(t *testing.T) {
	start := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	service, _ := setupTimerService(t, start)

	clientID := int64(1)
	timer, err := service.Start(context.Background(), TimerStartRequest{
		ClientID:    &clientID,
		Description: "Writing API docs",
	})

	require.NoError(t, err)
	assert.Equal(t, "Writing API docs", timer.Description)
	assert.Equal(t, "dev", timer.CategoryID) // default category
	assert.Equal(t, &clientID, timer.ClientID)

	status, err := service.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Writing API docs", status.Timer.Description)
}

func TestTimerService_Start_RejectsSecondTimer(t *testing.T) {
	start := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	service, _ := setupTimerService(t, start)

	_, err := service.Start(context.Background(), TimerStartRequest{Description: "First"})
	require.NoError(t, err)

	_, err = service.Start(context.Background(), TimerStartRequest{Description: "Second"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))

	// The running timer is untouched by the rejected start.
	status, err := service.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "First", status.Timer.Description)
}

func TestTimerService_Stop(t *testing.T) {
	start := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	service, advance := setupTimerService(t, start)

	_, err := service.Start(context.Background(), TimerStartRequest{Description: "Writing API docs"})
	require.NoError(t, err)

	advance(start.Add(2*time.Hour + 15*time.Minute))
	entry, err := service.Stop(context.Background())

	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.Equal(t, "2026-08-28", entry.Date)
	assert.Equal(t, "09:00", entry.StartTime)
	assert.Equal(t, "11:15", entry.EndTime)
	assert.Equal(t, 2.25, entry.Duration)
	assert.Equal(t, 85.0, entry.Rate) // configured default rate
	assert.True(t, entry.Billable)
	assert.False(t, entry.Invoiced)

	// The timer is cleared once the entry is recorded.
	_, err = service.Status(context.Background())
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestTimerService_Stop_NoTimer(t *testing.T) {
	service, _ := setupTimerService(t, time.Now())

	_, err := service.Stop(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestTimerService_Cancel(t *testing.T) {
	start := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	service, _ := setupTimerService(t, start)

	_, err := service.Start(context.Background(), TimerStartRequest{Description: "Abandoned work"})
	require.NoError(t, err)

	require.NoError(t, service.Cancel(context.Background()))

	// No entry was recorded and the timer is gone.
	_, err = service.Status(context.Background())
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	entryService := NewEntryService(service.repo, testConfig())
	entries, err := entryService.List(context.Background(), emptyFilter())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTimerService_Cancel_Idle(t *testing.T) {
	service, _ := setupTimerService(t, time.Now())

	// Cancelling with no timer running is a no-op.
	assert.NoError(t, service.Cancel(context.Background()))
}

func TestTimerService_Status_Elapsed(t *testing.T) {
	start := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	service, advance := setupTimerService(t, start)

	_, err := service.Start(context.Background(), TimerStartRequest{Description: "Ongoing"})
	require.NoError(t, err)

	advance(start.Add(90 * time.Minute))
	status, err := service.Status(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, status.Elapsed)
}
