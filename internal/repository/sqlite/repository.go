package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"freelancebook/internal/errors"
	"freelancebook/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// EntrySearchOptions contains all possible time entry search parameters.
// Nil fields pass every entry through; set fields combine with AND.
type EntrySearchOptions struct {
	ClientID   *int64
	CategoryID *string
	Billable   *bool
	Date       *string
	InvoiceID  *int64
	Uninvoiced bool
}

// Repository defines the interface for record store operations
type Repository interface {
	// Time entry operations
	CreateTimeEntry(ctx context.Context, entry *TimeEntry) error
	GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error)
	SearchTimeEntries(ctx context.Context, opts EntrySearchOptions) ([]*TimeEntry, error)
	UpdateTimeEntryFields(ctx context.Context, id int64, fields map[string]interface{}) error
	SetEntryInvoiceState(ctx context.Context, id int64, invoiceID *int64) error
	DeleteTimeEntry(ctx context.Context, id int64) error

	// Invoice operations
	CreateInvoice(ctx context.Context, invoice *Invoice, items []*InvoiceItem) error
	GetInvoice(ctx context.Context, id int64) (*Invoice, error)
	ListInvoices(ctx context.Context) ([]*Invoice, error)
	GetInvoiceItems(ctx context.Context, invoiceID int64) ([]*InvoiceItem, error)
	UpdateInvoiceFields(ctx context.Context, id int64, fields map[string]interface{}) error
	ReplaceInvoiceItems(ctx context.Context, invoiceID int64, items []*InvoiceItem) error
	DeleteInvoice(ctx context.Context, id int64) error

	// Client operations
	CreateClient(ctx context.Context, client *Client) error
	GetClient(ctx context.Context, id int64) (*Client, error)
	ListClients(ctx context.Context) ([]*Client, error)

	// Category operations
	CreateCategory(ctx context.Context, category *Category) error
	ListCategories(ctx context.Context) ([]*Category, error)

	// Active timer operations
	GetActiveTimer(ctx context.Context) (*ActiveTimer, error)
	SaveActiveTimer(ctx context.Context, timer *ActiveTimer) error
	ClearActiveTimer(ctx context.Context) error

	// Utility
	Close() error
}

// Allow-lists of externally settable columns. Any other submitted field is
// silently dropped before SQL generation, protecting system-managed fields
// such as identifiers and the invoiced bookkeeping, which change only
// through dedicated operations.
var timeEntryUpdatableFields = map[string]bool{
	"client_id":   true,
	"project_id":  true,
	"description": true,
	"category_id": true,
	"entry_date":  true,
	"start_time":  true,
	"end_time":    true,
	"duration":    true,
	"rate":        true,
	"billable":    true,
}

var invoiceUpdatableFields = map[string]bool{
	"client_id":     true,
	"issue_date":    true,
	"due_date":      true,
	"status":        true,
	"subtotal":      true,
	"tax":           true,
	"total":         true,
	"notes":         true,
	"payment_terms": true,
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewRemoteError("open database", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewRemoteError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTimeEntry creates a new time entry
func (r *SQLiteRepository) CreateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	query := `
	INSERT INTO time_entries
		(client_id, project_id, description, category_id, entry_date, start_time, end_time, duration, rate, billable, invoiced, invoice_id)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		entry.ClientID, entry.ProjectID, entry.Description, entry.CategoryID,
		entry.EntryDate, entry.StartTime, entry.EndTime, entry.Duration,
		entry.Rate, entry.Billable, entry.Invoiced, entry.InvoiceID)
	if err != nil {
		return err
	}

	entry.ID = id
	return nil
}

// GetTimeEntry retrieves a time entry by ID
func (r *SQLiteRepository) GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error) {
	query := `
	SELECT id, client_id, project_id, description, category_id, entry_date, start_time, end_time, duration, rate, billable, invoiced, invoice_id
	FROM time_entries
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanTimeEntry, "time entry", fmt.Sprintf("%d", id), id)
}

// SearchTimeEntries retrieves time entries matching the search options
// in insertion order; presentation ordering is a domain concern.
func (r *SQLiteRepository) SearchTimeEntries(ctx context.Context, opts EntrySearchOptions) ([]*TimeEntry, error) {
	var conditions []string
	var args []interface{}

	if opts.ClientID != nil {
		conditions = append(conditions, "client_id = ?")
		args = append(args, *opts.ClientID)
	}
	if opts.CategoryID != nil {
		conditions = append(conditions, "category_id = ?")
		args = append(args, *opts.CategoryID)
	}
	if opts.Billable != nil {
		conditions = append(conditions, "billable = ?")
		args = append(args, *opts.Billable)
	}
	if opts.Date != nil {
		conditions = append(conditions, "entry_date = ?")
		args = append(args, *opts.Date)
	}
	if opts.InvoiceID != nil {
		conditions = append(conditions, "invoice_id = ?")
		args = append(args, *opts.InvoiceID)
	}
	if opts.Uninvoiced {
		conditions = append(conditions, "invoiced = 0")
	}

	query := `
	SELECT id, client_id, project_id, description, category_id, entry_date, start_time, end_time, duration, rate, billable, invoiced, invoice_id
	FROM time_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id ASC"

	return QueryMultiple(ctx, r.db, query, ScanTimeEntries, "time entries", args...)
}

// UpdateTimeEntryFields merges the given fields into a time entry. Fields
// outside the allow-list are silently dropped; an update with no allowed
// fields is a no-op.
func (r *SQLiteRepository) UpdateTimeEntryFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	assignments, args := buildAssignments(fields, timeEntryUpdatableFields)
	if len(assignments) == 0 {
		return nil
	}

	query := "UPDATE time_entries SET " + strings.Join(assignments, ", ") + " WHERE id = ?"
	args = append(args, id)
	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", fmt.Sprintf("%d", id), args...)
}

// SetEntryInvoiceState updates the invoiced bookkeeping on an entry. A nil
// invoiceID marks the entry as not invoiced; a non-nil one links it.
func (r *SQLiteRepository) SetEntryInvoiceState(ctx context.Context, id int64, invoiceID *int64) error {
	query := "UPDATE time_entries SET invoiced = ?, invoice_id = ? WHERE id = ?"
	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", fmt.Sprintf("%d", id), invoiceID != nil, invoiceID, id)
}

// DeleteTimeEntry deletes a time entry by ID
func (r *SQLiteRepository) DeleteTimeEntry(ctx context.Context, id int64) error {
	query := `DELETE FROM time_entries WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", fmt.Sprintf("%d", id), id)
}

// CreateInvoice creates an invoice header together with its line items in
// a single transaction.
func (r *SQLiteRepository) CreateInvoice(ctx context.Context, invoice *Invoice, items []*InvoiceItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}

	result, err := tx.ExecContext(ctx, `
	INSERT INTO invoices (invoice_number, client_id, issue_date, due_date, status, subtotal, tax, total, notes, payment_terms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		invoice.InvoiceNumber, invoice.ClientID, invoice.IssueDate, invoice.DueDate,
		invoice.Status, invoice.Subtotal, invoice.Tax, invoice.Total,
		invoice.Notes, invoice.PaymentTerms)
	if err != nil {
		tx.Rollback()
		return HandleDatabaseError("create invoice", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return HandleDatabaseError("get last insert ID", err)
	}
	invoice.ID = id

	for _, item := range items {
		item.InvoiceID = id
		result, err := tx.ExecContext(ctx, `
		INSERT INTO invoice_items (invoice_id, description, quantity, rate, amount, time_entry_ids)
		VALUES (?, ?, ?, ?, ?, ?)`,
			item.InvoiceID, item.Description, item.Quantity, item.Rate, item.Amount, JoinIDs(item.TimeEntryIDs))
		if err != nil {
			tx.Rollback()
			return HandleDatabaseError("create invoice item", err)
		}
		if item.ID, err = result.LastInsertId(); err != nil {
			tx.Rollback()
			return HandleDatabaseError("get last insert ID", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit invoice", err)
	}
	return nil
}

// GetInvoice retrieves an invoice header by ID
func (r *SQLiteRepository) GetInvoice(ctx context.Context, id int64) (*Invoice, error) {
	query := `
	SELECT id, invoice_number, client_id, issue_date, due_date, status, subtotal, tax, total, notes, payment_terms
	FROM invoices
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanInvoice, "invoice", fmt.Sprintf("%d", id), id)
}

// ListInvoices retrieves all invoice headers
func (r *SQLiteRepository) ListInvoices(ctx context.Context) ([]*Invoice, error) {
	query := `
	SELECT id, invoice_number, client_id, issue_date, due_date, status, subtotal, tax, total, notes, payment_terms
	FROM invoices
	ORDER BY id ASC`

	return QueryMultiple(ctx, r.db, query, ScanInvoices, "invoices")
}

// GetInvoiceItems retrieves the line items belonging to an invoice
func (r *SQLiteRepository) GetInvoiceItems(ctx context.Context, invoiceID int64) ([]*InvoiceItem, error) {
	query := `
	SELECT id, invoice_id, description, quantity, rate, amount, time_entry_ids
	FROM invoice_items
	WHERE invoice_id = ?
	ORDER BY id ASC`

	return QueryMultiple(ctx, r.db, query, ScanInvoiceItems, "invoice items", invoiceID)
}

// UpdateInvoiceFields merges the given fields into an invoice header.
// Fields outside the allow-list are silently dropped.
func (r *SQLiteRepository) UpdateInvoiceFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	assignments, args := buildAssignments(fields, invoiceUpdatableFields)
	if len(assignments) == 0 {
		return nil
	}

	query := "UPDATE invoices SET " + strings.Join(assignments, ", ") + " WHERE id = ?"
	args = append(args, id)
	return ExecuteWithRowsAffected(ctx, r.db, query, "invoice", fmt.Sprintf("%d", id), args...)
}

// ReplaceInvoiceItems swaps the full line item set of an invoice in a
// single transaction.
func (r *SQLiteRepository) ReplaceInvoiceItems(ctx context.Context, invoiceID int64, items []*InvoiceItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM invoice_items WHERE invoice_id = ?", invoiceID); err != nil {
		tx.Rollback()
		return HandleDatabaseError("delete invoice items", err)
	}

	for _, item := range items {
		item.InvoiceID = invoiceID
		result, err := tx.ExecContext(ctx, `
		INSERT INTO invoice_items (invoice_id, description, quantity, rate, amount, time_entry_ids)
		VALUES (?, ?, ?, ?, ?, ?)`,
			item.InvoiceID, item.Description, item.Quantity, item.Rate, item.Amount, JoinIDs(item.TimeEntryIDs))
		if err != nil {
			tx.Rollback()
			return HandleDatabaseError("create invoice item", err)
		}
		if item.ID, err = result.LastInsertId(); err != nil {
			tx.Rollback()
			return HandleDatabaseError("get last insert ID", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit invoice items", err)
	}
	return nil
}

// DeleteInvoice deletes an invoice header and its line items. Clearing the
// back-references on billed time entries is the service layer's cascade.
func (r *SQLiteRepository) DeleteInvoice(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM invoice_items WHERE invoice_id = ?", id); err != nil {
		tx.Rollback()
		return HandleDatabaseError("delete invoice items", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM invoices WHERE id = ?", id)
	if err != nil {
		tx.Rollback()
		return HandleDatabaseError("delete invoice", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		tx.Rollback()
		return errors.NewNotFoundError("invoice", fmt.Sprintf("%d", id))
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit invoice delete", err)
	}
	return nil
}

// CreateClient creates a new client
func (r *SQLiteRepository) CreateClient(ctx context.Context, client *Client) error {
	query := `
	INSERT INTO clients (name, contact_name, email, phone, status, address)
	VALUES (?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		client.Name, client.ContactName, client.Email, client.Phone, client.Status, client.Address)
	if err != nil {
		return err
	}

	client.ID = id
	return nil
}

// GetClient retrieves a client by ID
func (r *SQLiteRepository) GetClient(ctx context.Context, id int64) (*Client, error) {
	query := `SELECT id, name, contact_name, email, phone, status, address FROM clients WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanClient, "client", fmt.Sprintf("%d", id), id)
}

// ListClients retrieves all clients
func (r *SQLiteRepository) ListClients(ctx context.Context) ([]*Client, error) {
	query := `SELECT id, name, contact_name, email, phone, status, address FROM clients ORDER BY name ASC`
	return QueryMultiple(ctx, r.db, query, ScanClients, "clients")
}

// CreateCategory creates a new category
func (r *SQLiteRepository) CreateCategory(ctx context.Context, category *Category) error {
	query := `INSERT INTO categories (id, name, color) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, category.ID, category.Name, category.Color)
	if err != nil {
		return HandleDatabaseError("create category", err)
	}
	return nil
}

// ListCategories retrieves all categories
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	query := `SELECT id, name, color FROM categories ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanCategories, "categories")
}

// GetActiveTimer retrieves the single active timer row. Returns a not
// found error when no timer is running.
func (r *SQLiteRepository) GetActiveTimer(ctx context.Context) (*ActiveTimer, error) {
	query := `SELECT client_id, project_id, description, category_id, started_at FROM active_timer WHERE id = 1`
	return QuerySingle(ctx, r.db, query, ScanActiveTimer, "active timer", "1")
}

// SaveActiveTimer stores the active timer, replacing any previous row. The
// single-timer invariant is enforced by the timer state machine.
func (r *SQLiteRepository) SaveActiveTimer(ctx context.Context, timer *ActiveTimer) error {
	query := `
	INSERT OR REPLACE INTO active_timer (id, client_id, project_id, description, category_id, started_at)
	VALUES (1, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		timer.ClientID, timer.ProjectID, timer.Description, timer.CategoryID, FormatTimeForDB(timer.StartedAt))
	if err != nil {
		return HandleDatabaseError("save active timer", err)
	}
	return nil
}

// ClearActiveTimer removes the active timer row, if any.
func (r *SQLiteRepository) ClearActiveTimer(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM active_timer WHERE id = 1")
	if err != nil {
		return HandleDatabaseError("clear active timer", err)
	}
	return nil
}

// buildAssignments filters fields against an allow-list and produces SQL
// SET assignments in deterministic column order.
func buildAssignments(fields map[string]interface{}, allowed map[string]bool) ([]string, []interface{}) {
	columns := make([]string, 0, len(fields))
	for column := range fields {
		if allowed[column] {
			columns = append(columns, column)
		}
	}
	sort.Strings(columns)

	assignments := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		assignments = append(assignments, column+" = ?")
		args = append(args, fields[column])
	}
	return assignments, args
}
