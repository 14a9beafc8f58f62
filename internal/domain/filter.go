package domain

import (
	"iter"
	"sort"
)

// BillableFilter selects entries by billable state.
type BillableFilter string

const (
	BillableAll  BillableFilter = "all"
	BillableOnly BillableFilter = "billable"
	BillableNone BillableFilter = "nonbillable"
)

// EntryFilter describes a conjunction of entry predicates. Nil fields and
// BillableAll pass every entry through.
type EntryFilter struct {
	ClientID   *int64
	CategoryID *string
	Billable   BillableFilter
	Date       *string
}

// Matches reports whether the entry satisfies every set predicate.
func (f EntryFilter) Matches(e TimeEntry) bool {
	if f.ClientID != nil && e.ClientID != *f.ClientID {
		return false
	}
	if f.CategoryID != nil && e.CategoryID != *f.CategoryID {
		return false
	}
	switch f.Billable {
	case BillableOnly:
		if !e.Billable {
			return false
		}
	case BillableNone:
		if e.Billable {
			return false
		}
	}
	if f.Date != nil && e.Date != *f.Date {
		return false
	}
	return true
}

// FilterEntries returns a lazy, restartable sequence of the entries
// matching the filter.
func FilterEntries(entries []TimeEntry, f EntryFilter) iter.Seq[TimeEntry] {
	return func(yield func(TimeEntry) bool) {
		for _, e := range entries {
			if !f.Matches(e) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// SortEntries returns a copy of the entries ordered by date descending,
// ties broken by start time ascending. Lexicographic comparison is valid
// because both fields are zero-padded.
func SortEntries(entries []TimeEntry) []TimeEntry {
	sorted := make([]TimeEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].StartTime < sorted[j].StartTime
	})
	return sorted
}

// EntryStatistics summarizes a set of time entries.
type EntryStatistics struct {
	TotalHours     float64
	BillableAmount float64
	ProjectCount   int
	DayCount       int
}

// Aggregate computes summary statistics over the entries. Billable amount
// counts billable entries only; entries without a project reference do not
// contribute a project.
func Aggregate(entries []TimeEntry) EntryStatistics {
	stats := EntryStatistics{}
	projects := make(map[int64]struct{})
	days := make(map[string]struct{})
	for _, e := range entries {
		stats.TotalHours += e.Duration
		stats.BillableAmount += e.BillableAmount()
		if e.ProjectID != nil {
			projects[*e.ProjectID] = struct{}{}
		}
		days[e.Date] = struct{}{}
	}
	stats.ProjectCount = len(projects)
	stats.DayCount = len(days)
	return stats
}
