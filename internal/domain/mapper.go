package domain

import (
	"freelancebook/internal/repository/sqlite"
)

// TimeEntryMapper handles conversion between domain and database TimeEntry models.
type TimeEntryMapper struct{}

// ToDatabase converts a domain TimeEntry to a database TimeEntry.
func (m *TimeEntryMapper) ToDatabase(entry TimeEntry) sqlite.TimeEntry {
	return sqlite.TimeEntry{
		ID:          entry.ID,
		ClientID:    entry.ClientID,
		ProjectID:   entry.ProjectID,
		Description: entry.Description,
		CategoryID:  entry.CategoryID,
		EntryDate:   entry.Date,
		StartTime:   entry.StartTime,
		EndTime:     entry.EndTime,
		Duration:    entry.Duration,
		Rate:        entry.Rate,
		Billable:    entry.Billable,
		Invoiced:    entry.Invoiced,
		InvoiceID:   entry.InvoiceID,
	}
}

// FromDatabase converts a database TimeEntry to a domain TimeEntry.
func (m *TimeEntryMapper) FromDatabase(dbEntry sqlite.TimeEntry) TimeEntry {
	return TimeEntry{
		ID:          dbEntry.ID,
		ClientID:    dbEntry.ClientID,
		ProjectID:   dbEntry.ProjectID,
		Description: dbEntry.Description,
		CategoryID:  dbEntry.CategoryID,
		Date:        dbEntry.EntryDate,
		StartTime:   dbEntry.StartTime,
		EndTime:     dbEntry.EndTime,
		Duration:    dbEntry.Duration,
		Rate:        dbEntry.Rate,
		Billable:    dbEntry.Billable,
		Invoiced:    dbEntry.Invoiced,
		InvoiceID:   dbEntry.InvoiceID,
	}
}

// FromDatabaseSlice converts a slice of database TimeEntries to domain TimeEntries.
func (m *TimeEntryMapper) FromDatabaseSlice(dbEntries []*sqlite.TimeEntry) []TimeEntry {
	entries := make([]TimeEntry, len(dbEntries))
	for i, dbEntry := range dbEntries {
		entries[i] = m.FromDatabase(*dbEntry)
	}
	return entries
}

// InvoiceMapper handles conversion between domain and database invoice models.
type InvoiceMapper struct{}

// ToDatabase converts a domain Invoice to a database invoice header.
func (m *InvoiceMapper) ToDatabase(inv Invoice) sqlite.Invoice {
	return sqlite.Invoice{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientID:      inv.ClientID,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Status:        string(inv.Status),
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		Notes:         inv.Notes,
		PaymentTerms:  inv.PaymentTerms,
	}
}

// ItemsToDatabase converts domain invoice items to database items.
func (m *InvoiceMapper) ItemsToDatabase(items []InvoiceItem) []*sqlite.InvoiceItem {
	dbItems := make([]*sqlite.InvoiceItem, len(items))
	for i, item := range items {
		dbItems[i] = &sqlite.InvoiceItem{
			ID:           item.ID,
			InvoiceID:    item.InvoiceID,
			Description:  item.Description,
			Quantity:     item.Quantity,
			Rate:         item.Rate,
			Amount:       item.Amount,
			TimeEntryIDs: item.TimeEntryIDs,
		}
	}
	return dbItems
}

// FromDatabase converts a database invoice header and its items to a
// domain Invoice. TimeEntryIDs are flattened from the item references.
func (m *InvoiceMapper) FromDatabase(dbInvoice sqlite.Invoice, dbItems []*sqlite.InvoiceItem) Invoice {
	inv := Invoice{
		ID:            dbInvoice.ID,
		InvoiceNumber: dbInvoice.InvoiceNumber,
		ClientID:      dbInvoice.ClientID,
		IssueDate:     dbInvoice.IssueDate,
		DueDate:       dbInvoice.DueDate,
		Status:        InvoiceStatus(dbInvoice.Status),
		Subtotal:      dbInvoice.Subtotal,
		Tax:           dbInvoice.Tax,
		Total:         dbInvoice.Total,
		Notes:         dbInvoice.Notes,
		PaymentTerms:  dbInvoice.PaymentTerms,
	}
	for _, dbItem := range dbItems {
		item := InvoiceItem{
			ID:           dbItem.ID,
			InvoiceID:    dbItem.InvoiceID,
			Description:  dbItem.Description,
			Quantity:     dbItem.Quantity,
			Rate:         dbItem.Rate,
			Amount:       dbItem.Amount,
			TimeEntryIDs: dbItem.TimeEntryIDs,
		}
		inv.Items = append(inv.Items, item)
		inv.TimeEntryIDs = append(inv.TimeEntryIDs, dbItem.TimeEntryIDs...)
	}
	return inv
}

// ClientMapper handles conversion between domain and database Client models.
type ClientMapper struct{}

// ToDatabase converts a domain Client to a database Client.
func (m *ClientMapper) ToDatabase(client Client) sqlite.Client {
	return sqlite.Client{
		ID:          client.ID,
		Name:        client.Name,
		ContactName: client.ContactName,
		Email:       client.Email,
		Phone:       client.Phone,
		Status:      client.Status,
		Address:     client.Address,
	}
}

// FromDatabase converts a database Client to a domain Client.
func (m *ClientMapper) FromDatabase(dbClient sqlite.Client) Client {
	return Client{
		ID:          dbClient.ID,
		Name:        dbClient.Name,
		ContactName: dbClient.ContactName,
		Email:       dbClient.Email,
		Phone:       dbClient.Phone,
		Status:      dbClient.Status,
		Address:     dbClient.Address,
	}
}

// CategoryMapper handles conversion between domain and database Category models.
type CategoryMapper struct{}

// ToDatabase converts a domain Category to a database Category.
func (m *CategoryMapper) ToDatabase(category Category) sqlite.Category {
	return sqlite.Category{ID: category.ID, Name: category.Name, Color: category.Color}
}

// FromDatabase converts a database Category to a domain Category.
func (m *CategoryMapper) FromDatabase(dbCategory sqlite.Category) Category {
	return Category{ID: dbCategory.ID, Name: dbCategory.Name, Color: dbCategory.Color}
}

// ActiveTimerMapper handles conversion between domain and database ActiveTimer models.
type ActiveTimerMapper struct{}

// ToDatabase converts a domain ActiveTimer to a database ActiveTimer.
func (m *ActiveTimerMapper) ToDatabase(timer ActiveTimer) sqlite.ActiveTimer {
	return sqlite.ActiveTimer{
		ClientID:    timer.ClientID,
		ProjectID:   timer.ProjectID,
		Description: timer.Description,
		CategoryID:  timer.CategoryID,
		StartedAt:   timer.StartTime,
	}
}

// FromDatabase converts a database ActiveTimer to a domain ActiveTimer.
func (m *ActiveTimerMapper) FromDatabase(dbTimer sqlite.ActiveTimer) ActiveTimer {
	return ActiveTimer{
		ClientID:    dbTimer.ClientID,
		ProjectID:   dbTimer.ProjectID,
		Description: dbTimer.Description,
		CategoryID:  dbTimer.CategoryID,
		StartTime:   dbTimer.StartedAt,
	}
}

// EntryFilterMapper converts domain entry filters to database search options.
type EntryFilterMapper struct{}

// ToDatabase converts a domain EntryFilter to sqlite search options.
func (m *EntryFilterMapper) ToDatabase(f EntryFilter) sqlite.EntrySearchOptions {
	opts := sqlite.EntrySearchOptions{
		ClientID:   f.ClientID,
		CategoryID: f.CategoryID,
		Date:       f.Date,
	}
	switch f.Billable {
	case BillableOnly:
		billable := true
		opts.Billable = &billable
	case BillableNone:
		billable := false
		opts.Billable = &billable
	}
	return opts
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	TimeEntry   *TimeEntryMapper
	Invoice     *InvoiceMapper
	Client      *ClientMapper
	Category    *CategoryMapper
	ActiveTimer *ActiveTimerMapper
	EntryFilter *EntryFilterMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		TimeEntry:   &TimeEntryMapper{},
		Invoice:     &InvoiceMapper{},
		Client:      &ClientMapper{},
		Category:    &CategoryMapper{},
		ActiveTimer: &ActiveTimerMapper{},
		EntryFilter: &EntryFilterMapper{},
	}
}
