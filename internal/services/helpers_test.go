package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"freelancebook/internal/config"
	"freelancebook/internal/domain"
	"freelancebook/internal/repository/sqlite"
)

// Helper functions shared by the service tests. All service tests run
// against a real in-memory repository so the allow-lists and scanners are
// exercised together with the service logic.

func setupRepo(t *testing.T) sqlite.Repository {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testConfig() *config.Config {
	return config.NewConfig()
}

func seedEntry(t *testing.T, repo sqlite.Repository, entry domain.TimeEntry) domain.TimeEntry {
	mapper := domain.NewMapper()
	dbEntry := mapper.TimeEntry.ToDatabase(entry)
	require.NoError(t, repo.CreateTimeEntry(context.Background(), &dbEntry))
	return mapper.TimeEntry.FromDatabase(dbEntry)
}

func billableEntry(clientID int64, description string, hours float64) domain.TimeEntry {
	return domain.TimeEntry{
		ClientID:    clientID,
		Description: description,
		CategoryID:  "dev",
		Date:        "2026-08-28",
		StartTime:   "09:00",
		EndTime:     "11:15",
		Duration:    hours,
		Rate:        85,
		Billable:    true,
	}
}

func fixedClock(moment time.Time) func() time.Time {
	return func() time.Time { return moment }
}

func emptyFilter() domain.EntryFilter {
	return domain.EntryFilter{Billable: domain.BillableAll}
}

func int64Ptr(v int64) *int64 {
	return &v
}

func strPtr(s string) *string {
	return &s
}
