package domain

import "math"

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "draft"
	StatusSent    InvoiceStatus = "sent"
	StatusPaid    InvoiceStatus = "paid"
	StatusOverdue InvoiceStatus = "overdue"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// InvoiceItem is a single line on an invoice, aggregated from one or more
// time entries sharing a project and description.
type InvoiceItem struct {
	ID           int64
	InvoiceID    int64
	Description  string
	Quantity     float64 // summed hours, rounded to 2 decimals
	Rate         float64
	Amount       float64 // quantity x rate accumulated per entry, rounded to 2 decimals
	TimeEntryIDs []int64
}

// Invoice is an immutable billing snapshot generated from a set of time
// entries. TimeEntryIDs is the flattened set of billed entry identifiers;
// each referenced entry carries the back-reference while the invoice exists.
type Invoice struct {
	ID            int64
	InvoiceNumber string
	ClientID      int64
	IssueDate     string // DateFormat
	DueDate       string // DateFormat
	Status        InvoiceStatus
	Items         []InvoiceItem
	Subtotal      float64
	Tax           float64 // absolute amount, not a percentage
	Total         float64
	Notes         string
	PaymentTerms  string
	TimeEntryIDs  []int64
}

// RecalculateTotals recomputes subtotal and total from the current items.
// Tax is held constant; callers that change the tax set it first.
func (inv *Invoice) RecalculateTotals() {
	subtotal := 0.0
	for _, item := range inv.Items {
		subtotal += item.Amount
	}
	inv.Subtotal = Round2(subtotal)
	inv.Total = Round2(inv.Subtotal + inv.Tax)
}

// TotalsConsistent reports whether subtotal equals the sum of item amounts
// and total equals subtotal plus tax, within 2-decimal rounding.
func (inv Invoice) TotalsConsistent() bool {
	subtotal := 0.0
	for _, item := range inv.Items {
		subtotal += item.Amount
	}
	const epsilon = 0.005
	if math.Abs(inv.Subtotal-subtotal) > epsilon {
		return false
	}
	return math.Abs(inv.Total-(inv.Subtotal+inv.Tax)) <= epsilon
}
