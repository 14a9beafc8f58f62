package services

import (
	"context"
	"slices"

	"freelancebook/internal/config"
	"freelancebook/internal/domain"
	"freelancebook/internal/errors"
	"freelancebook/internal/repository/sqlite"
	"freelancebook/internal/validation"
)

// entryFieldColumns maps externally settable entry fields to their record
// store columns. Submitted fields outside this map are silently dropped,
// protecting system-managed state such as the id and the invoiced
// bookkeeping.
var entryFieldColumns = map[string]string{
	"clientId":    "client_id",
	"projectId":   "project_id",
	"description": "description",
	"categoryId":  "category_id",
	"date":        "entry_date",
	"startTime":   "start_time",
	"endTime":     "end_time",
	"duration":    "duration",
	"rate":        "rate",
	"billable":    "billable",
}

// entryServiceImpl implements the EntryService interface
type entryServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	config    *config.Config
	validator *validation.TimeEntryValidator
}

// NewEntryService creates a new EntryService instance
func NewEntryService(repo sqlite.Repository, cfg *config.Config) EntryService {
	return &entryServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		config:    cfg,
		validator: validation.NewTimeEntryValidator(),
	}
}

// Add validates and stores a manually submitted time entry. The duration
// is derived from the time range when not supplied; the invoiced state
// always starts cleared.
func (s *entryServiceImpl) Add(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error) {
	if entry.CategoryID == "" {
		entry.CategoryID = defaultCategoryID
	}
	if entry.Rate == 0 {
		entry.Rate = s.config.Billing.DefaultHourlyRate
	}
	entry.Invoiced = false
	entry.InvoiceID = nil

	if err := s.validator.ValidateForCreation(entry); err != nil {
		return nil, err
	}

	if entry.Duration == 0 {
		duration, err := domain.HoursBetween(entry.StartTime, entry.EndTime)
		if err != nil {
			return nil, errors.NewValidationError("invalid time range", err)
		}
		entry.Duration = duration
	}

	dbEntry := s.mapper.TimeEntry.ToDatabase(entry)
	if err := s.repo.CreateTimeEntry(ctx, &dbEntry); err != nil {
		return nil, err
	}

	created := s.mapper.TimeEntry.FromDatabase(dbEntry)
	return &created, nil
}

// Get retrieves a time entry by ID
func (s *entryServiceImpl) Get(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}

	dbEntry, err := s.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	entry := s.mapper.TimeEntry.FromDatabase(*dbEntry)
	return &entry, nil
}

// Update merges the given fields into an entry. When the time range
// changes without an explicit duration, the duration is rederived from
// the merged range.
func (s *entryServiceImpl) Update(ctx context.Context, id int64, fields map[string]interface{}) (*domain.TimeEntry, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}

	dbEntry, err := s.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	columns := make(map[string]interface{}, len(fields))
	for field, value := range fields {
		if column, ok := entryFieldColumns[field]; ok {
			columns[column] = value
		}
	}

	_, timeChanged := anyKey(columns, "start_time", "end_time")
	if _, explicit := columns["duration"]; timeChanged && !explicit {
		startTime := dbEntry.StartTime
		endTime := dbEntry.EndTime
		if v, ok := columns["start_time"].(string); ok {
			startTime = v
		}
		if v, ok := columns["end_time"].(string); ok {
			endTime = v
		}
		duration, err := domain.HoursBetween(startTime, endTime)
		if err != nil {
			return nil, errors.NewValidationError("invalid time range", err)
		}
		columns["duration"] = duration
	}

	if err := s.repo.UpdateTimeEntryFields(ctx, id, columns); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	entry := s.mapper.TimeEntry.FromDatabase(*updated)
	return &entry, nil
}

// Delete removes a time entry. Deletion is refused while the entry is
// attached to a live invoice; the invoice must be deleted first.
func (s *entryServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.validator.ValidateID(id); err != nil {
		return err
	}

	dbEntry, err := s.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return err
	}
	if dbEntry.Invoiced {
		return errors.NewValidationError("entry is attached to an invoice; delete the invoice first", nil).
			WithContext("invoiceId", dbEntry.InvoiceID)
	}

	return s.repo.DeleteTimeEntry(ctx, id)
}

// List returns the entries matching the filter in insertion order.
func (s *entryServiceImpl) List(ctx context.Context, filter domain.EntryFilter) ([]domain.TimeEntry, error) {
	opts := s.mapper.EntryFilter.ToDatabase(filter)
	dbEntries, err := s.repo.SearchTimeEntries(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s.mapper.TimeEntry.FromDatabaseSlice(dbEntries), nil
}

// SortedList returns the entries matching the filter ordered by date
// descending, ties broken by start time ascending.
func (s *entryServiceImpl) SortedList(ctx context.Context, filter domain.EntryFilter) ([]domain.TimeEntry, error) {
	entries, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return domain.SortEntries(entries), nil
}

// Summarize computes aggregate statistics over the entries matching the
// filter. Filtering happens in the domain so the summary and the filter
// predicate cannot drift apart.
func (s *entryServiceImpl) Summarize(ctx context.Context, filter domain.EntryFilter) (domain.EntryStatistics, error) {
	dbEntries, err := s.repo.SearchTimeEntries(ctx, sqlite.EntrySearchOptions{})
	if err != nil {
		return domain.EntryStatistics{}, err
	}
	all := s.mapper.TimeEntry.FromDatabaseSlice(dbEntries)
	matched := slices.Collect(domain.FilterEntries(all, filter))
	return domain.Aggregate(matched), nil
}

// anyKey reports whether any of the given keys is present in the map.
func anyKey(m map[string]interface{}, keys ...string) (string, bool) {
	for _, key := range keys {
		if _, ok := m[key]; ok {
			return key, true
		}
	}
	return "", false
}
