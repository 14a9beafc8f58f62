package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"freelancebook/internal/config"
	"freelancebook/internal/domain"
	"freelancebook/internal/errors"
	"freelancebook/internal/logging"
	"freelancebook/internal/repository/sqlite"
	"freelancebook/internal/validation"
)

// invoiceServiceImpl implements the InvoiceService interface
type invoiceServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	config    *config.Config
	validator *validation.InvoiceValidator
	now       func() time.Time

	mu         sync.Mutex
	generating bool
	current    *domain.Invoice
}

// NewInvoiceService creates a new InvoiceService instance
func NewInvoiceService(repo sqlite.Repository, cfg *config.Config) InvoiceService {
	return &invoiceServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		config:    cfg,
		validator: validation.NewInvoiceValidator(),
		now:       time.Now,
	}
}

// Generate composes an invoice from the selected time entries. Validation
// and entry resolution happen before any mutation; the invoice create
// completes before the per-entry back-references are written. Those
// per-entry updates are best-effort: a failure partway through is
// reported as a partial failure with the applied and failed sets, not
// rolled back.
func (s *invoiceServiceImpl) Generate(ctx context.Context, req InvoiceGenerationRequest) (*domain.Invoice, error) {
	if err := s.beginGeneration(); err != nil {
		return nil, err
	}
	defer s.endGeneration()

	if err := s.validator.ValidateGeneration(req.ClientID, req.TaxRate, req.TimeEntryIDs); err != nil {
		return nil, err
	}

	entries, err := s.resolveEntries(ctx, req)
	if err != nil {
		return nil, err
	}

	items := composeItems(entries)

	invoice := domain.Invoice{
		ClientID:     req.ClientID,
		IssueDate:    req.IssueDate,
		DueDate:      req.DueDate,
		Status:       domain.StatusDraft,
		Items:        items,
		Notes:        req.Notes,
		PaymentTerms: req.PaymentTerms,
		TimeEntryIDs: req.TimeEntryIDs,
	}
	s.applyBillingDefaults(&invoice)
	invoice.RecalculateTotals()
	invoice.Tax = domain.Round2(invoice.Subtotal * (req.TaxRate / 100))
	invoice.Total = domain.Round2(invoice.Subtotal + invoice.Tax)

	// The number derives from the invoice set current at creation time.
	// Two sessions generating at once can collide; accepted for a
	// single-user tool.
	existing, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	invoice.InvoiceNumber = domain.NextInvoiceNumber(existing, s.now().Year())

	dbInvoice := s.mapper.Invoice.ToDatabase(invoice)
	dbItems := s.mapper.Invoice.ItemsToDatabase(invoice.Items)
	if err := s.repo.CreateInvoice(ctx, &dbInvoice, dbItems); err != nil {
		return nil, err
	}
	invoice.ID = dbInvoice.ID
	for i, dbItem := range dbItems {
		invoice.Items[i].ID = dbItem.ID
		invoice.Items[i].InvoiceID = dbItem.InvoiceID
	}

	var applied []int64
	failed := make(map[int64]error)
	for _, entryID := range req.TimeEntryIDs {
		if err := s.repo.SetEntryInvoiceState(ctx, entryID, &invoice.ID); err != nil {
			failed[entryID] = err
			continue
		}
		applied = append(applied, entryID)
	}

	s.setCurrentLocked(&invoice)

	if len(failed) > 0 {
		logging.Debugf("invoice %s created with %d unmarked entries\n", invoice.InvoiceNumber, len(failed))
		return &invoice, errors.NewPartialFailureError("mark entries invoiced", applied, failed)
	}

	return &invoice, nil
}

// resolveEntries loads the selected entries and confirms each one is
// billable, unbilled and owned by the requested client. Violations are
// excluded upstream from selection candidates; resolving them here again
// keeps the composer safe against stale selections.
func (s *invoiceServiceImpl) resolveEntries(ctx context.Context, req InvoiceGenerationRequest) ([]domain.TimeEntry, error) {
	entries := make([]domain.TimeEntry, 0, len(req.TimeEntryIDs))
	for _, id := range req.TimeEntryIDs {
		dbEntry, err := s.repo.GetTimeEntry(ctx, id)
		if err != nil {
			return nil, err
		}
		entry := s.mapper.TimeEntry.FromDatabase(*dbEntry)
		if err := s.validator.ValidateSelectedEntry(entry, req.ClientID); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// composeItems groups entries by project and description, accumulating
// the quantity and amount per group in first-seen order.
func composeItems(entries []domain.TimeEntry) []domain.InvoiceItem {
	type group struct {
		projectID   *int64
		description string
		rate        float64
		quantity    float64
		amount      float64
		entryIDs    []int64
	}

	groups := make(map[string]*group)
	var order []string
	for _, entry := range entries {
		key := fmt.Sprintf("%s|%s", formatProjectRef(entry.ProjectID), entry.Description)
		g, ok := groups[key]
		if !ok {
			g = &group{
				projectID:   entry.ProjectID,
				description: entry.Description,
				rate:        entry.Rate,
			}
			groups[key] = g
			order = append(order, key)
		}
		g.quantity += entry.Duration
		g.amount += entry.Duration * entry.Rate
		g.entryIDs = append(g.entryIDs, entry.ID)
	}

	items := make([]domain.InvoiceItem, 0, len(order))
	for _, key := range order {
		g := groups[key]
		description := g.description
		if g.projectID != nil {
			description = fmt.Sprintf("%s (Project #%d)", g.description, *g.projectID)
		}
		items = append(items, domain.InvoiceItem{
			Description:  description,
			Quantity:     domain.Round2(g.quantity),
			Rate:         g.rate,
			Amount:       domain.Round2(g.amount),
			TimeEntryIDs: g.entryIDs,
		})
	}
	return items
}

func formatProjectRef(projectID *int64) string {
	if projectID == nil {
		return ""
	}
	return fmt.Sprintf("%d", *projectID)
}

// applyBillingDefaults fills unset dates, notes and payment terms from
// the configured billing defaults.
func (s *invoiceServiceImpl) applyBillingDefaults(invoice *domain.Invoice) {
	now := s.now()
	if invoice.IssueDate == "" {
		invoice.IssueDate = domain.FormatDate(now)
	}
	if invoice.DueDate == "" {
		invoice.DueDate = domain.FormatDate(now.AddDate(0, 0, s.config.Billing.DueDateOffsetDays))
	}
	if invoice.Notes == "" {
		invoice.Notes = s.config.Billing.DefaultNotes
	}
	if invoice.PaymentTerms == "" {
		invoice.PaymentTerms = s.config.Billing.DefaultPaymentTerms
	}
}

// Get retrieves an invoice with its line items
func (s *invoiceServiceImpl) Get(ctx context.Context, id int64) (*domain.Invoice, error) {
	dbInvoice, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	dbItems, err := s.repo.GetInvoiceItems(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice := s.mapper.Invoice.FromDatabase(*dbInvoice, dbItems)
	return &invoice, nil
}

// List retrieves all invoices with their line items
func (s *invoiceServiceImpl) List(ctx context.Context) ([]domain.Invoice, error) {
	dbInvoices, err := s.repo.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}

	invoices := make([]domain.Invoice, 0, len(dbInvoices))
	for _, dbInvoice := range dbInvoices {
		dbItems, err := s.repo.GetInvoiceItems(ctx, dbInvoice.ID)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, s.mapper.Invoice.FromDatabase(*dbInvoice, dbItems))
	}
	return invoices, nil
}

// Update merges a partial update into an invoice. Supplying items
// replaces the line item set and recomputes the subtotal and total; tax
// is held constant unless also supplied.
func (s *invoiceServiceImpl) Update(ctx context.Context, id int64, update InvoiceUpdate) (*domain.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Status != nil {
		if err := s.validator.ValidateStatus(*update.Status); err != nil {
			return nil, err
		}
	}

	fields := make(map[string]interface{})
	if update.IssueDate != nil {
		fields["issue_date"] = *update.IssueDate
	}
	if update.DueDate != nil {
		fields["due_date"] = *update.DueDate
	}
	if update.Status != nil {
		fields["status"] = string(*update.Status)
	}
	if update.Notes != nil {
		fields["notes"] = *update.Notes
	}
	if update.PaymentTerms != nil {
		fields["payment_terms"] = *update.PaymentTerms
	}
	if update.Tax != nil {
		fields["tax"] = *update.Tax
	}

	if update.Items != nil {
		recalculated := *invoice
		recalculated.Items = update.Items
		recalculated.Tax = invoice.Tax
		if update.Tax != nil {
			recalculated.Tax = *update.Tax
		}
		recalculated.RecalculateTotals()
		fields["subtotal"] = recalculated.Subtotal
		fields["total"] = recalculated.Total

		if err := s.repo.ReplaceInvoiceItems(ctx, id, s.mapper.Invoice.ItemsToDatabase(update.Items)); err != nil {
			return nil, err
		}
	} else if update.Tax != nil {
		fields["total"] = domain.Round2(invoice.Subtotal + *update.Tax)
	}

	if err := s.repo.UpdateInvoiceFields(ctx, id, fields); err != nil {
		return nil, err
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == id {
		s.current = updated
	}
	s.mu.Unlock()

	return updated, nil
}

// Delete removes an invoice, first cascading over every time entry that
// references it and clearing the invoiced state. The cascade is a
// best-effort loop; if any entry fails to clear, the invoice is kept and
// a partial failure is reported so the caller can retry.
func (s *invoiceServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetInvoice(ctx, id); err != nil {
		return err
	}

	linked, err := s.repo.SearchTimeEntries(ctx, sqlite.EntrySearchOptions{InvoiceID: &id})
	if err != nil {
		return err
	}

	var applied []int64
	failed := make(map[int64]error)
	for _, dbEntry := range linked {
		if err := s.repo.SetEntryInvoiceState(ctx, dbEntry.ID, nil); err != nil {
			failed[dbEntry.ID] = err
			continue
		}
		applied = append(applied, dbEntry.ID)
	}
	if len(failed) > 0 {
		return errors.NewPartialFailureError("detach invoiced entries", applied, failed)
	}

	if err := s.repo.DeleteInvoice(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.mu.Unlock()

	return nil
}

// Candidates returns the entries eligible for invoicing to a client:
// billable and not yet invoiced.
func (s *invoiceServiceImpl) Candidates(ctx context.Context, clientID int64) ([]domain.TimeEntry, error) {
	billable := true
	opts := sqlite.EntrySearchOptions{
		ClientID:   &clientID,
		Billable:   &billable,
		Uninvoiced: true,
	}
	dbEntries, err := s.repo.SearchTimeEntries(ctx, opts)
	if err != nil {
		return nil, err
	}
	return domain.SortEntries(s.mapper.TimeEntry.FromDatabaseSlice(dbEntries)), nil
}

// SetCurrent selects the invoice used for preview rendering. A pure
// pointer operation with no side effects on the record.
func (s *invoiceServiceImpl) SetCurrent(ctx context.Context, id int64) error {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	s.setCurrentLocked(invoice)
	return nil
}

// ClearCurrent deselects the preview invoice.
func (s *invoiceServiceImpl) ClearCurrent() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Current returns the invoice selected for preview, or nil.
func (s *invoiceServiceImpl) Current() *domain.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *invoiceServiceImpl) setCurrentLocked(invoice *domain.Invoice) {
	s.mu.Lock()
	s.current = invoice
	s.mu.Unlock()
}

// beginGeneration marks the generation operation in flight, rejecting
// re-entrant submission that would create duplicate invoices.
func (s *invoiceServiceImpl) beginGeneration() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating {
		return errors.NewConflictError("generate invoice", "an invoice generation is already in progress")
	}
	s.generating = true
	return nil
}

// endGeneration clears the in-flight mark on every exit path.
func (s *invoiceServiceImpl) endGeneration() {
	s.mu.Lock()
	s.generating = false
	s.mu.Unlock()
}
