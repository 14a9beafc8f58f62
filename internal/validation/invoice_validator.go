package validation

import (
	"freelancebook/internal/domain"
)

// InvoiceValidator validates invoice generation input. All checks happen
// before any mutation so a rejected generation leaves no trace.
type InvoiceValidator struct {
	validator *Validator
}

// NewInvoiceValidator creates a new InvoiceValidator instance
func NewInvoiceValidator() *InvoiceValidator {
	return &InvoiceValidator{
		validator: NewValidator(),
	}
}

// ValidateGeneration validates the client selection, tax rate and entry
// selection for a new invoice. The selection names each entry at most
// once; a repeated id would bill the same work twice.
func (v *InvoiceValidator) ValidateGeneration(clientID int64, taxRate float64, entryIDs []int64) error {
	ve := NewValidationError()

	if !v.validator.IsValidID(clientID) {
		ve.AddRequiredError("client")
	}
	if !v.validator.IsValidTaxRate(taxRate) {
		ve.AddInvalidRangeError("tax", taxRate, "must be between 0 and 100")
	}
	if len(entryIDs) == 0 {
		ve.AddInvalidValueError("selectedTimeEntries", entryIDs, "at least one time entry must be selected")
	}
	seen := make(map[int64]struct{}, len(entryIDs))
	for _, id := range entryIDs {
		if !v.validator.IsValidID(id) {
			ve.AddInvalidValueError("selectedTimeEntries", id, "entry id must be positive")
			break
		}
		if _, dup := seen[id]; dup {
			ve.AddInvalidValueError("selectedTimeEntries", id, "entry selected more than once")
			break
		}
		seen[id] = struct{}{}
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ValidateSelectedEntry checks that a resolved entry is actually billable
// to the chosen client. Entries violating this are excluded upstream from
// selection candidates; the composer still refuses to silently bill them.
func (v *InvoiceValidator) ValidateSelectedEntry(entry domain.TimeEntry, clientID int64) error {
	ve := NewValidationError()

	if entry.ClientID != clientID {
		ve.AddInvalidValueError("selectedTimeEntries", entry.ID, "entry belongs to a different client")
	}
	if !entry.Billable {
		ve.AddInvalidValueError("selectedTimeEntries", entry.ID, "entry is not billable")
	}
	if entry.Invoiced {
		ve.AddInvalidValueError("selectedTimeEntries", entry.ID, "entry is already invoiced")
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ValidateStatus validates an invoice status value
func (v *InvoiceValidator) ValidateStatus(status domain.InvoiceStatus) error {
	if !status.IsValid() {
		ve := NewValidationError()
		ve.AddInvalidValueError("status", string(status), "must be one of draft, sent, paid, overdue")
		return ve
	}
	return nil
}
