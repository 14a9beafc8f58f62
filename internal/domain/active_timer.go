package domain

import "time"

// ActiveTimer is the single in-flight time tracking session. At most one
// exists per session; it lives only between start and stop/cancel.
type ActiveTimer struct {
	ClientID    *int64
	ProjectID   *int64
	Description string
	CategoryID  string
	StartTime   time.Time
}

// Elapsed returns the wall-clock time since the timer started. It is a pure
// projection for display purposes and never affects the stop computation.
func (t ActiveTimer) Elapsed(now time.Time) time.Duration {
	return now.Sub(t.StartTime)
}

// ToTimeEntry finalizes the timer into a time entry at the given stop
// instant. Duration is the elapsed wall-clock time in hours rounded to
// 2 decimals; date and clock values derive from the start timestamp.
func (t ActiveTimer) ToTimeEntry(now time.Time, rate float64) TimeEntry {
	entry := TimeEntry{
		ProjectID:   t.ProjectID,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		Date:        FormatDate(t.StartTime),
		StartTime:   FormatClock(t.StartTime),
		EndTime:     FormatClock(now),
		Duration:    Round2(now.Sub(t.StartTime).Hours()),
		Rate:        rate,
		Billable:    true,
		Invoiced:    false,
	}
	if t.ClientID != nil {
		entry.ClientID = *t.ClientID
	}
	return entry
}
