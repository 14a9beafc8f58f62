package validation

import (
	"freelancebook/internal/domain"
)

// TimeEntryValidator validates time entry input before any mutation.
type TimeEntryValidator struct {
	validator *Validator
}

// NewTimeEntryValidator creates a new TimeEntryValidator instance
func NewTimeEntryValidator() *TimeEntryValidator {
	return &TimeEntryValidator{
		validator: NewValidator(),
	}
}

// ValidateForCreation validates an entry submitted through the manual form
// path. The entry must carry a client, description, date, a parseable time
// range and a non-negative duration and rate.
func (v *TimeEntryValidator) ValidateForCreation(entry domain.TimeEntry) error {
	ve := NewValidationError()

	if !v.validator.IsValidID(entry.ClientID) {
		ve.AddRequiredError("client")
	}
	if !v.validator.IsNonEmptyString(entry.Description) {
		ve.AddRequiredError("description")
	}
	if !v.validator.IsValidDate(entry.Date) {
		ve.AddInvalidFormatError("date", entry.Date, domain.DateFormat)
	}
	if !v.validator.IsValidClock(entry.StartTime) {
		ve.AddInvalidFormatError("startTime", entry.StartTime, "HH:MM")
	}
	if !v.validator.IsValidClock(entry.EndTime) {
		ve.AddInvalidFormatError("endTime", entry.EndTime, "HH:MM")
	}
	if entry.Duration < 0 {
		ve.AddInvalidValueError("duration", entry.Duration, "must not be negative")
	}
	if !v.validator.IsNonNegativeRate(entry.Rate) {
		ve.AddInvalidValueError("rate", entry.Rate, "must not be negative")
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ValidateID validates a time entry identifier
func (v *TimeEntryValidator) ValidateID(id int64) error {
	if !v.validator.IsValidID(id) {
		ve := NewValidationError()
		ve.AddInvalidValueError("id", id, "must be positive")
		return ve
	}
	return nil
}
