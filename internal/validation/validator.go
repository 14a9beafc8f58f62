package validation

import (
	"regexp"
	"strings"
	"time"

	"freelancebook/internal/domain"
)

// clockRegex matches zero-padded "HH:MM" values.
var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidID checks if an identifier is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidDate checks if a string is a valid calendar day
func (v *Validator) IsValidDate(s string) bool {
	_, err := time.Parse(domain.DateFormat, s)
	return err == nil
}

// IsValidClock checks if a string is a valid zero-padded "HH:MM" value
func (v *Validator) IsValidClock(s string) bool {
	return clockRegex.MatchString(s)
}

// IsNonNegativeRate checks if an hourly rate is usable
func (v *Validator) IsNonNegativeRate(rate float64) bool {
	return rate >= 0
}

// IsValidTaxRate checks if a tax percentage is within 0-100
func (v *Validator) IsValidTaxRate(rate float64) bool {
	return rate >= 0 && rate <= 100
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
