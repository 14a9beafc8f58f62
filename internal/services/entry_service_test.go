package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancebook/internal/domain"
	"freelancebook/internal/errors"
	"freelancebook/internal/validation"
)

func setupEntryService(t *testing.T) (EntryService, *entryServiceImpl) {
	repo := setupRepo(t)
	service := NewEntryService(repo, testConfig())
	return service, service.(*entryServiceImpl)
}

func TestEntryService_Add(t *testing.T) {
	service, _ := setupEntryService(t)

	entry := domain.TimeEntry{
		ClientID:    1,
		Description: "Code review",
		Date:        "2026-08-28",
		StartTime:   "09:00",
		EndTime:     "11:15",
	}

	created, err := service.Add(context.Background(), entry)

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 2.25, created.Duration)  // derived from the time range
	assert.Equal(t, 85.0, created.Rate)      // configured default rate
	assert.Equal(t, "dev", created.CategoryID)
	assert.False(t, created.Invoiced)
	assert.Nil(t, created.InvoiceID)
}

func TestEntryService_Add_MidnightWrap(t *testing.T) {
	service, _ := setupEntryService(t)

	entry := domain.TimeEntry{
		ClientID:    1,
		Description: "Late night deploy",
		Date:        "2026-08-28",
		StartTime:   "22:30",
		EndTime:     "01:00",
	}

	created, err := service.Add(context.Background(), entry)

	require.NoError(t, err)
	assert.Equal(t, 2.5, created.Duration)
}

func TestEntryService_Add_ExplicitDurationWins(t *testing.T) {
	service, _ := setupEntryService(t)

	entry := billableEntry(1, "Estimated work", 3.0)
	created, err := service.Add(context.Background(), entry)

	require.NoError(t, err)
	assert.Equal(t, 3.0, created.Duration)
}

func TestEntryService_Add_ValidationFailureLeavesNothing(t *testing.T) {
	service, _ := setupEntryService(t)

	entry := domain.TimeEntry{Description: "No client"}
	_, err := service.Add(context.Background(), entry)

	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))

	entries, err := service.List(context.Background(), emptyFilter())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntryService_Add_StripsSubmittedInvoiceState(t *testing.T) {
	service, _ := setupEntryService(t)

	invoiceID := int64(9)
	entry := billableEntry(1, "Sneaky", 1.0)
	entry.Invoiced = true
	entry.InvoiceID = &invoiceID

	created, err := service.Add(context.Background(), entry)

	require.NoError(t, err)
	assert.False(t, created.Invoiced)
	assert.Nil(t, created.InvoiceID)
}

func TestEntryService_Update(t *testing.T) {
	service, impl := setupEntryService(t)
	seeded := seedEntry(t, impl.repo, billableEntry(1, "Code review", 2.25))

	updated, err := service.Update(context.Background(), seeded.ID, map[string]interface{}{
		"description": "Code review and fixes",
		"rate":        95.0,
	})

	require.NoError(t, err)
	assert.Equal(t, "Code review and fixes", updated.Description)
	assert.Equal(t, 95.0, updated.Rate)
	assert.Equal(t, 2.25, updated.Duration) // unrelated fields untouched
}

func TestEntryService_Update_RederivesDuration(t *testing.T) {
	service, impl := setupEntryService(t)
	seeded := seedEntry(t, impl.repo, billableEntry(1, "Code review", 2.25))

	updated, err := service.Update(context.Background(), seeded.ID, map[string]interface{}{
		"endTime": "12:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "12:00", updated.EndTime)
	assert.Equal(t, 3.0, updated.Duration) // 09:00 to 12:00
}

func TestEntryService_Update_ExplicitDurationSkipsRederivation(t *testing.T) {
	service, impl := setupEntryService(t)
	seeded := seedEntry(t, impl.repo, billableEntry(1, "Code review", 2.25))

	updated, err := service.Update(context.Background(), seeded.ID, map[string]interface{}{
		"endTime":  "12:00",
		"duration": 2.75,
	})

	require.NoError(t, err)
	assert.Equal(t, 2.75, updated.Duration)
}

func TestEntryService_Update_DropsProtectedFields(t *testing.T) {
	service, impl := setupEntryService(t)
	seeded := seedEntry(t, impl.repo, billableEntry(1, "Code review", 2.25))

	updated, err := service.Update(context.Background(), seeded.ID, map[string]interface{}{
		"invoiced":  true,
		"invoiceId": int64(7),
		"id":        int64(99),
	})

	require.NoError(t, err)
	assert.Equal(t, seeded.ID, updated.ID)
	assert.False(t, updated.Invoiced)
	assert.Nil(t, updated.InvoiceID)
}

func TestEntryService_Update_NotFound(t *testing.T) {
	service, _ := setupEntryService(t)

	_, err := service.Update(context.Background(), 42, map[string]interface{}{
		"description": "Ghost",
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestEntryService_Delete(t *testing.T) {
	service, impl := setupEntryService(t)
	seeded := seedEntry(t, impl.repo, billableEntry(1, "Code review", 2.25))

	require.NoError(t, service.Delete(context.Background(), seeded.ID))

	_, err := service.Get(context.Background(), seeded.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestEntryService_Delete_RefusedWhileInvoiced(t *testing.T) {
	service, impl := setupEntryService(t)
	seeded := seedEntry(t, impl.repo, billableEntry(1, "Billed work", 2.25))

	invoiceID := int64(3)
	require.NoError(t, impl.repo.SetEntryInvoiceState(context.Background(), seeded.ID, &invoiceID))

	err := service.Delete(context.Background(), seeded.ID)

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

	// The entry survives the refused delete.
	entry, getErr := service.Get(context.Background(), seeded.ID)
	require.NoError(t, getErr)
	assert.True(t, entry.Invoiced)
}

func TestEntryService_List_Filters(t *testing.T) {
	service, impl := setupEntryService(t)

	first := billableEntry(1, "Dev work", 2.0)
	second := billableEntry(2, "Other client", 1.0)
	third := billableEntry(1, "Internal", 0.5)
	third.Billable = false
	third.CategoryID = "admin"
	seedEntry(t, impl.repo, first)
	seedEntry(t, impl.repo, second)
	seedEntry(t, impl.repo, third)

	byClient, err := service.List(context.Background(), domain.EntryFilter{ClientID: int64Ptr(1), Billable: domain.BillableAll})
	require.NoError(t, err)
	assert.Len(t, byClient, 2)

	billableOnly, err := service.List(context.Background(), domain.EntryFilter{ClientID: int64Ptr(1), Billable: domain.BillableOnly})
	require.NoError(t, err)
	require.Len(t, billableOnly, 1)
	assert.Equal(t, "Dev work", billableOnly[0].Description)

	byCategory, err := service.List(context.Background(), domain.EntryFilter{CategoryID: strPtr("admin"), Billable: domain.BillableAll})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Internal", byCategory[0].Description)
}

func TestEntryService_SortedList(t *testing.T) {
	service, impl := setupEntryService(t)

	older := billableEntry(1, "Older", 1.0)
	older.Date = "2026-08-27"
	later := billableEntry(1, "Later same day", 1.0)
	later.StartTime = "14:00"
	later.EndTime = "15:00"
	earlier := billableEntry(1, "Earlier same day", 1.0)
	seedEntry(t, impl.repo, older)
	seedEntry(t, impl.repo, later)
	seedEntry(t, impl.repo, earlier)

	sorted, err := service.SortedList(context.Background(), emptyFilter())

	require.NoError(t, err)
	require.Len(t, sorted, 3)
	assert.Equal(t, "Earlier same day", sorted[0].Description)
	assert.Equal(t, "Later same day", sorted[1].Description)
	assert.Equal(t, "Older", sorted[2].Description)
}

func TestEntryService_Summarize(t *testing.T) {
	service, impl := setupEntryService(t)

	first := billableEntry(1, "Dev", 2.0)
	first.ProjectID = int64Ptr(1)
	second := billableEntry(1, "More dev", 1.5)
	second.ProjectID = int64Ptr(1)
	third := billableEntry(1, "Unbilled", 1.0)
	third.Billable = false
	seedEntry(t, impl.repo, first)
	seedEntry(t, impl.repo, second)
	seedEntry(t, impl.repo, third)

	stats, err := service.Summarize(context.Background(), emptyFilter())

	require.NoError(t, err)
	assert.InDelta(t, 4.5, stats.TotalHours, 0.001)
	assert.InDelta(t, 297.5, stats.BillableAmount, 0.001)
	assert.Equal(t, 1, stats.ProjectCount)
	assert.Equal(t, 1, stats.DayCount)
}

func TestEntryService_Summarize_AppliesFilter(t *testing.T) {
	service, impl := setupEntryService(t)

	mine := billableEntry(1, "Dev", 2.0)
	theirs := billableEntry(2, "Other client", 3.0)
	unbilled := billableEntry(1, "Internal", 1.0)
	unbilled.Billable = false
	seedEntry(t, impl.repo, mine)
	seedEntry(t, impl.repo, theirs)
	seedEntry(t, impl.repo, unbilled)

	stats, err := service.Summarize(context.Background(), domain.EntryFilter{
		ClientID: int64Ptr(1),
		Billable: domain.BillableOnly,
	})

	require.NoError(t, err)
	assert.InDelta(t, 2.0, stats.TotalHours, 0.001)
	assert.InDelta(t, 170.0, stats.BillableAmount, 0.001)
	assert.Equal(t, 1, stats.DayCount)
}
