package services

import (
	"context"
	"time"

	"freelancebook/internal/domain"
)

// TimerStartRequest carries the context captured when a timer starts.
type TimerStartRequest struct {
	ClientID    *int64 `json:"client_id,omitempty"`
	ProjectID   *int64 `json:"project_id,omitempty"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
}

// TimerStatus is a read-only projection of the running timer. Elapsed is
// recomputed from wall clock on every call and never feeds back into the
// stop computation.
type TimerStatus struct {
	Timer   domain.ActiveTimer `json:"timer"`
	Elapsed time.Duration      `json:"elapsed"`
}

// InvoiceGenerationRequest is the input to the invoice composer. Zero
// values for dates, notes and payment terms fall back to the configured
// billing defaults.
type InvoiceGenerationRequest struct {
	ClientID     int64   `json:"client_id"`
	TaxRate      float64 `json:"tax_rate"` // percent, 0-100
	TimeEntryIDs []int64 `json:"time_entry_ids"`
	IssueDate    string  `json:"issue_date,omitempty"`
	DueDate      string  `json:"due_date,omitempty"`
	Notes        string  `json:"notes,omitempty"`
	PaymentTerms string  `json:"payment_terms,omitempty"`
}

// InvoiceUpdate describes a partial invoice update. Nil fields are left
// unchanged. When Items is non-nil the subtotal and total are recomputed
// from the new items; tax is held constant unless Tax is also supplied.
type InvoiceUpdate struct {
	IssueDate    *string
	DueDate      *string
	Status       *domain.InvoiceStatus
	Notes        *string
	PaymentTerms *string
	Tax          *float64
	Items        []domain.InvoiceItem
}

// TimerService is the timer state machine: at most one running timer per
// session, stop finalizes into a time entry, cancel discards.
type TimerService interface {
	Start(ctx context.Context, req TimerStartRequest) (*domain.ActiveTimer, error)
	Stop(ctx context.Context) (*domain.TimeEntry, error)
	Cancel(ctx context.Context) error
	Status(ctx context.Context) (*TimerStatus, error)
}

// EntryService owns the time entry collection: CRUD plus filtered and
// sorted views and aggregate statistics.
type EntryService interface {
	Add(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error)
	Get(ctx context.Context, id int64) (*domain.TimeEntry, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*domain.TimeEntry, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.EntryFilter) ([]domain.TimeEntry, error)
	SortedList(ctx context.Context, filter domain.EntryFilter) ([]domain.TimeEntry, error)
	Summarize(ctx context.Context, filter domain.EntryFilter) (domain.EntryStatistics, error)
}

// InvoiceService owns invoices: the composer, lifecycle operations with
// entry back-reference bookkeeping, and the preview pointer.
type InvoiceService interface {
	Generate(ctx context.Context, req InvoiceGenerationRequest) (*domain.Invoice, error)
	Get(ctx context.Context, id int64) (*domain.Invoice, error)
	List(ctx context.Context) ([]domain.Invoice, error)
	Update(ctx context.Context, id int64, update InvoiceUpdate) (*domain.Invoice, error)
	Delete(ctx context.Context, id int64) error
	Candidates(ctx context.Context, clientID int64) ([]domain.TimeEntry, error)
	SetCurrent(ctx context.Context, id int64) error
	ClearCurrent()
	Current() *domain.Invoice
}

// ClientService manages billing counterparties.
type ClientService interface {
	Create(ctx context.Context, client domain.Client) (*domain.Client, error)
	Get(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
}

// CategoryService manages the category set. EnsureSeeded installs the
// built-in categories on startup; the set grows only through Add.
type CategoryService interface {
	EnsureSeeded(ctx context.Context) error
	Add(ctx context.Context, category domain.Category) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	Timer      TimerService
	Entries    EntryService
	Invoices   InvoiceService
	Clients    ClientService
	Categories CategoryService
}
