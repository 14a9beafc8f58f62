package services

import (
	"context"
	"time"

	"freelancebook/internal/config"
	"freelancebook/internal/domain"
	"freelancebook/internal/errors"
	"freelancebook/internal/logging"
	"freelancebook/internal/repository/sqlite"
)

// defaultCategoryID is used when a timer starts without a category.
const defaultCategoryID = "dev"

// timerServiceImpl implements the TimerService interface
type timerServiceImpl struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
	config *config.Config
	now    func() time.Time
}

// NewTimerService creates a new TimerService instance
func NewTimerService(repo sqlite.Repository, cfg *config.Config) TimerService {
	return &timerServiceImpl{
		repo:   repo,
		mapper: domain.NewMapper(),
		config: cfg,
		now:    time.Now,
	}
}

// Start begins a new timer session. At most one timer runs per session;
// starting while one is running is rejected with a conflict error.
func (t *timerServiceImpl) Start(ctx context.Context, req TimerStartRequest) (*domain.ActiveTimer, error) {
	_, err := t.repo.GetActiveTimer(ctx)
	if err == nil {
		return nil, errors.NewConflictError("start timer", "a timer is already running")
	}
	if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	categoryID := req.CategoryID
	if categoryID == "" {
		categoryID = defaultCategoryID
	}

	timer := domain.ActiveTimer{
		ClientID:    req.ClientID,
		ProjectID:   req.ProjectID,
		Description: req.Description,
		CategoryID:  categoryID,
		StartTime:   t.now(),
	}

	dbTimer := t.mapper.ActiveTimer.ToDatabase(timer)
	if err := t.repo.SaveActiveTimer(ctx, &dbTimer); err != nil {
		return nil, err
	}

	logging.Debugf("timer started at %s\n", timer.StartTime)
	return &timer, nil
}

// Stop finalizes the running timer into a time entry and clears it. The
// duration always derives from wall-clock time at stop, never from the
// last displayed tick. The entry is written before the timer is cleared
// so a failed write leaves the timer running.
func (t *timerServiceImpl) Stop(ctx context.Context) (*domain.TimeEntry, error) {
	dbTimer, err := t.repo.GetActiveTimer(ctx)
	if err != nil {
		return nil, err
	}
	timer := t.mapper.ActiveTimer.FromDatabase(*dbTimer)

	entry := timer.ToTimeEntry(t.now(), t.config.Billing.DefaultHourlyRate)

	dbEntry := t.mapper.TimeEntry.ToDatabase(entry)
	if err := t.repo.CreateTimeEntry(ctx, &dbEntry); err != nil {
		return nil, err
	}

	if err := t.repo.ClearActiveTimer(ctx); err != nil {
		return nil, err
	}

	result := t.mapper.TimeEntry.FromDatabase(dbEntry)
	logging.Debugf("timer stopped, entry %d covers %.2fh\n", result.ID, result.Duration)
	return &result, nil
}

// Cancel discards the running timer without creating an entry. Cancelling
// when no timer runs is a no-op.
func (t *timerServiceImpl) Cancel(ctx context.Context) error {
	return t.repo.ClearActiveTimer(ctx)
}

// Status returns the running timer and its elapsed time. Returns a not
// found error when no timer is running.
func (t *timerServiceImpl) Status(ctx context.Context) (*TimerStatus, error) {
	dbTimer, err := t.repo.GetActiveTimer(ctx)
	if err != nil {
		return nil, err
	}
	timer := t.mapper.ActiveTimer.FromDatabase(*dbTimer)

	return &TimerStatus{
		Timer:   timer,
		Elapsed: timer.Elapsed(t.now()),
	}, nil
}
