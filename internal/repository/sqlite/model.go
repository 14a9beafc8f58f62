package sqlite

import "time"

// TimeEntry is the database representation of a tracked unit of work.
type TimeEntry struct {
	ID          int64
	ClientID    int64
	ProjectID   *int64 // pointer to allow NULL values
	Description string
	CategoryID  string
	EntryDate   string // "2006-01-02"
	StartTime   string // "HH:MM"
	EndTime     string // "HH:MM"
	Duration    float64
	Rate        float64
	Billable    bool
	Invoiced    bool
	InvoiceID   *int64
}

// Invoice is the database representation of an invoice header. Line items
// live in their own table.
type Invoice struct {
	ID            int64
	InvoiceNumber string
	ClientID      int64
	IssueDate     string
	DueDate       string
	Status        string
	Subtotal      float64
	Tax           float64
	Total         float64
	Notes         string
	PaymentTerms  string
}

// InvoiceItem is the database representation of an invoice line item.
// TimeEntryIDs records which entries the line aggregates.
type InvoiceItem struct {
	ID           int64
	InvoiceID    int64
	Description  string
	Quantity     float64
	Rate         float64
	Amount       float64
	TimeEntryIDs []int64
}

// Client is the database representation of a billing counterparty.
type Client struct {
	ID          int64
	Name        string
	ContactName string
	Email       string
	Phone       string
	Status      string
	Address     string
}

// Category is the database representation of a time entry category.
type Category struct {
	ID    string
	Name  string
	Color string
}

// ActiveTimer is the single persisted in-flight timer. The table holds at
// most one row.
type ActiveTimer struct {
	ClientID    *int64
	ProjectID   *int64
	Description string
	CategoryID  string
	StartedAt   time.Time
}
