package domain

import (
	"fmt"
	"math"
	"time"
)

// DateFormat is the calendar-day representation used across the domain.
const DateFormat = "2006-01-02"

// ClockFormat is the zero-padded time-of-day representation ("HH:MM").
const ClockFormat = "15:04"

// TimeEntry represents a single unit of tracked work in the domain model.
// Client and project references are stable identifiers; joins against
// client records happen at the display edge, never here.
type TimeEntry struct {
	ID          int64
	ClientID    int64
	ProjectID   *int64
	Description string
	CategoryID  string
	Date        string  // calendar day, DateFormat
	StartTime   string  // time of day, ClockFormat
	EndTime     string  // time of day, ClockFormat
	Duration    float64 // hours, rounded to 2 decimals
	Rate        float64 // currency per hour
	Billable    bool
	Invoiced    bool
	InvoiceID   *int64
}

// BillableAmount returns the chargeable amount for the entry, zero for
// non-billable entries.
func (e TimeEntry) BillableAmount() float64 {
	if !e.Billable {
		return 0
	}
	return e.Duration * e.Rate
}

// InvoiceStateConsistent reports whether the invoiced flag agrees with the
// invoice reference: invoiced is true exactly when an invoice id is set.
func (e TimeEntry) InvoiceStateConsistent() bool {
	return e.Invoiced == (e.InvoiceID != nil)
}

// IsValid checks if the time entry has valid data.
func (e TimeEntry) IsValid() bool {
	if e.ClientID <= 0 {
		return false
	}
	if e.Description == "" {
		return false
	}
	if e.Duration < 0 || e.Rate < 0 {
		return false
	}
	if _, err := time.Parse(DateFormat, e.Date); err != nil {
		return false
	}
	return e.InvoiceStateConsistent()
}

// Round2 rounds a value to 2 decimal places, the precision used for
// durations and currency amounts throughout the domain.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// HoursBetween calculates the duration in hours between two clock values,
// rounded to 2 decimals. An end time earlier than the start time is
// interpreted as rolling over into the next day.
func HoursBetween(startTime, endTime string) (float64, error) {
	start, err := time.Parse(ClockFormat, startTime)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q: %w", startTime, err)
	}
	end, err := time.Parse(ClockFormat, endTime)
	if err != nil {
		return 0, fmt.Errorf("invalid end time %q: %w", endTime, err)
	}
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	return Round2(end.Sub(start).Hours()), nil
}

// FormatClock formats a timestamp as a zero-padded "HH:MM" value.
func FormatClock(t time.Time) string {
	return t.Format(ClockFormat)
}

// FormatDate formats a timestamp as a calendar day.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}
