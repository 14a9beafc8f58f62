package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTimeEntry scans a single time entry from a database row
func ScanTimeEntry(scanner Scanner) (*TimeEntry, error) {
	entry := &TimeEntry{}
	var projectID, invoiceID sql.NullInt64

	err := scanner.Scan(
		&entry.ID,
		&entry.ClientID,
		&projectID,
		&entry.Description,
		&entry.CategoryID,
		&entry.EntryDate,
		&entry.StartTime,
		&entry.EndTime,
		&entry.Duration,
		&entry.Rate,
		&entry.Billable,
		&entry.Invoiced,
		&invoiceID,
	)
	if err != nil {
		return nil, err
	}

	if projectID.Valid {
		entry.ProjectID = &projectID.Int64
	}
	if invoiceID.Valid {
		entry.InvoiceID = &invoiceID.Int64
	}

	return entry, nil
}

// ScanTimeEntries scans multiple time entries from database rows
func ScanTimeEntries(rows Rows) ([]*TimeEntry, error) {
	var entries []*TimeEntry
	for rows.Next() {
		entry, err := ScanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ScanInvoice scans a single invoice header from a database row
func ScanInvoice(scanner Scanner) (*Invoice, error) {
	inv := &Invoice{}
	var notes, paymentTerms sql.NullString

	err := scanner.Scan(
		&inv.ID,
		&inv.InvoiceNumber,
		&inv.ClientID,
		&inv.IssueDate,
		&inv.DueDate,
		&inv.Status,
		&inv.Subtotal,
		&inv.Tax,
		&inv.Total,
		&notes,
		&paymentTerms,
	)
	if err != nil {
		return nil, err
	}

	inv.Notes = notes.String
	inv.PaymentTerms = paymentTerms.String

	return inv, nil
}

// ScanInvoices scans multiple invoice headers from database rows
func ScanInvoices(rows Rows) ([]*Invoice, error) {
	var invoices []*Invoice
	for rows.Next() {
		inv, err := ScanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return invoices, nil
}

// ScanInvoiceItem scans a single invoice line item from a database row
func ScanInvoiceItem(scanner Scanner) (*InvoiceItem, error) {
	item := &InvoiceItem{}
	var entryIDs sql.NullString

	err := scanner.Scan(
		&item.ID,
		&item.InvoiceID,
		&item.Description,
		&item.Quantity,
		&item.Rate,
		&item.Amount,
		&entryIDs,
	)
	if err != nil {
		return nil, err
	}

	if entryIDs.Valid {
		ids, err := SplitIDs(entryIDs.String)
		if err != nil {
			return nil, err
		}
		item.TimeEntryIDs = ids
	}

	return item, nil
}

// ScanInvoiceItems scans multiple invoice line items from database rows
func ScanInvoiceItems(rows Rows) ([]*InvoiceItem, error) {
	var items []*InvoiceItem
	for rows.Next() {
		item, err := ScanInvoiceItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// ScanClient scans a single client from a database row
func ScanClient(scanner Scanner) (*Client, error) {
	client := &Client{}
	var contactName, email, phone, status, address sql.NullString

	err := scanner.Scan(
		&client.ID,
		&client.Name,
		&contactName,
		&email,
		&phone,
		&status,
		&address,
	)
	if err != nil {
		return nil, err
	}

	client.ContactName = contactName.String
	client.Email = email.String
	client.Phone = phone.String
	client.Status = status.String
	client.Address = address.String

	return client, nil
}

// ScanClients scans multiple clients from database rows
func ScanClients(rows Rows) ([]*Client, error) {
	var clients []*Client
	for rows.Next() {
		client, err := ScanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}

// ScanCategory scans a single category from a database row
func ScanCategory(scanner Scanner) (*Category, error) {
	category := &Category{}
	err := scanner.Scan(&category.ID, &category.Name, &category.Color)
	if err != nil {
		return nil, err
	}
	return category, nil
}

// ScanCategories scans multiple categories from database rows
func ScanCategories(rows Rows) ([]*Category, error) {
	var categories []*Category
	for rows.Next() {
		category, err := ScanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// ScanActiveTimer scans the single active timer row
func ScanActiveTimer(scanner Scanner) (*ActiveTimer, error) {
	timer := &ActiveTimer{}
	var clientID, projectID sql.NullInt64
	var startedAt string

	err := scanner.Scan(&clientID, &projectID, &timer.Description, &timer.CategoryID, &startedAt)
	if err != nil {
		return nil, err
	}

	if clientID.Valid {
		timer.ClientID = &clientID.Int64
	}
	if projectID.Valid {
		timer.ProjectID = &projectID.Int64
	}

	timer.StartedAt, err = ParseTimeFromDB(startedAt)
	if err != nil {
		return nil, err
	}

	return timer, nil
}
