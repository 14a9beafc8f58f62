package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancebook/internal/domain"
)

func validEntry() domain.TimeEntry {
	return domain.TimeEntry{
		ClientID:    1,
		Description: "Code review",
		CategoryID:  "dev",
		Date:        "2026-08-28",
		StartTime:   "09:00",
		EndTime:     "11:15",
		Duration:    2.25,
		Rate:        85,
		Billable:    true,
	}
}

func TestTimeEntryValidator_ValidateForCreation(t *testing.T) {
	tests := []struct {
		name          string
		modify        func(*domain.TimeEntry)
		expectedField string
	}{
		{
			name:   "should accept a complete entry",
			modify: func(e *domain.TimeEntry) {},
		},
		{
			name:          "should require a client",
			modify:        func(e *domain.TimeEntry) { e.ClientID = 0 },
			expectedField: "client",
		},
		{
			name:          "should require a description",
			modify:        func(e *domain.TimeEntry) { e.Description = "   " },
			expectedField: "description",
		},
		{
			name:          "should reject a malformed date",
			modify:        func(e *domain.TimeEntry) { e.Date = "28/08/2026" },
			expectedField: "date",
		},
		{
			name:          "should reject a malformed start time",
			modify:        func(e *domain.TimeEntry) { e.StartTime = "9am" },
			expectedField: "startTime",
		},
		{
			name:          "should reject an out-of-range end time",
			modify:        func(e *domain.TimeEntry) { e.EndTime = "24:00" },
			expectedField: "endTime",
		},
		{
			name:          "should reject a negative duration",
			modify:        func(e *domain.TimeEntry) { e.Duration = -1 },
			expectedField: "duration",
		},
		{
			name:          "should reject a negative rate",
			modify:        func(e *domain.TimeEntry) { e.Rate = -85 },
			expectedField: "rate",
		},
	}

	validator := NewTimeEntryValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := validEntry()
			tt.modify(&entry)

			err := validator.ValidateForCreation(entry)

			if tt.expectedField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ve, ok := err.(*ValidationError)
			require.True(t, ok)
			assert.NotEmpty(t, ve.GetFieldErrors(tt.expectedField))
		})
	}
}

func TestTimeEntryValidator_ValidateForCreation_AccumulatesErrors(t *testing.T) {
	entry := validEntry()
	entry.ClientID = 0
	entry.Description = ""
	entry.Rate = -1

	err := NewTimeEntryValidator().ValidateForCreation(entry)

	require.Error(t, err)
	ve, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Len(t, ve.Errors, 3)
}

func TestTimeEntryValidator_ValidateID(t *testing.T) {
	validator := NewTimeEntryValidator()

	assert.NoError(t, validator.ValidateID(1))
	assert.Error(t, validator.ValidateID(0))
	assert.Error(t, validator.ValidateID(-5))
}
