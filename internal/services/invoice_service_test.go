package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancebook/internal/domain"
	"freelancebook/internal/errors"
	"freelancebook/internal/validation"
)

func setupInvoiceService(t *testing.T) (*invoiceServiceImpl, EntryService) {
	repo := setupRepo(t)
	service := NewInvoiceService(repo, testConfig()).(*invoiceServiceImpl)
	service.now = fixedClock(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))
	return service, NewEntryService(repo, testConfig())
}

func TestInvoiceService_Generate(t *testing.T) {
	service, entries := setupInvoiceService(t)

	first := seedEntry(t, service.repo, billableEntry(1, "API development", 2.0))
	second := seedEntry(t, service.repo, billableEntry(1, "Code review", 1.5))

	invoice, err := service.Generate(context.Background(), InvoiceGenerationRequest{
		ClientID:     1,
		TaxRate:      8.5,
		TimeEntryIDs: []int64{first.ID, second.ID},
	})

	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0001", invoice.InvoiceNumber)
	assert.Equal(t, domain.StatusDraft, invoice.Status)
	assert.Len(t, invoice.Items, 2)

	// 3.5h at 85/h, tax 8.5%.
	assert.Equal(t, 297.5, invoice.Subtotal)
	assert.Equal(t, 25.29, invoice.Tax)
	assert.Equal(t, 322.79, invoice.Total)
	assert.True(t, invoice.TotalsConsistent())

	// Billing defaults fill the unset dates and boilerplate.
	assert.Equal(t, "2026-08-28", invoice.IssueDate)
	assert.Equal(t, "2026-09-12", invoice.DueDate)
	assert.Equal(t, "Net 15", invoice.PaymentTerms)
	assert.Equal(t, "Thank you for your business!", invoice.Notes)

	// Every billed entry now carries the back-reference.
	for _, id := range []int64{first.ID, second.ID} {
		entry, err := entries.Get(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, entry.Invoiced)
		require.NotNil(t, entry.InvoiceID)
		assert.Equal(t, invoice.ID, *entry.InvoiceID)
	}

	// The new invoice becomes the current one.
	require.NotNil(t, service.Current())
	assert.Equal(t, invoice.ID, service.Current().ID)
}

func TestInvoiceService_Generate_GroupsByProjectAndDescription(t *testing.T) {
	service, _ := setupInvoiceService(t)

	projectA := billableEntry(1, "API development", 2.0)
	projectA.ProjectID = int64Ptr(4)
	projectAMore := billableEntry(1, "API development", 1.5)
	projectAMore.ProjectID = int64Ptr(4)
	noProject := billableEntry(1, "API development", 1.0)

	first := seedEntry(t, service.repo, projectA)
	second := seedEntry(t, service.repo, projectAMore)
	third := seedEntry(t, service.repo, noProject)

	invoice, err := service.Generate(context.Background(), InvoiceGenerationRequest{
		ClientID:     1,
		TimeEntryIDs: []int64{first.ID, second.ID, third.ID},
	})
	require.NoError(t, err)

	// Same project and description merge; the project-less entry stays
	// its own line. First-seen order is preserved.
	require.Len(t, invoice.Items, 2)

	merged := invoice.Items[0]
	assert.Equal(t, "API development (Project #4)", merged.Description)
	assert.Equal(t, 3.5, merged.Quantity)
	assert.Equal(t, 297.5, merged.Amount)
	assert.Equal(t, []int64{first.ID, second.ID}, merged.TimeEntryIDs)

	single := invoice.Items[1]
	assert.Equal(t, "API development", single.Description)
	assert.Equal(t, 1.0, single.Quantity)
	assert.Equal(t, 85.0, single.Amount)
}

func TestInvoiceService_Generate_SequentialNumbers(t *testing.T) {
	service, _ := setupInvoiceService(t)

	first := seedEntry(t, service.repo, billableEntry(1, "First batch", 1.0))
	second := seedEntry(t, service.repo, billableEntry(1, "Second batch", 1.0))

	one, err := service.Generate(context.Background(), InvoiceGenerationRequest{
		ClientID: 1, TimeEntryIDs: []int64{first.ID},
	})
	require.NoError(t, err)

	two, err := service.Generate(context.Background(), InvoiceGenerationRequest{
		ClientID: 1, TimeEntryIDs: []int64{second.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-0001", one.InvoiceNumber)
	assert.Equal(t, "INV-2026-0002", two.InvoiceNumber)
}

func TestInvoiceService_Generate_EmptySelection(t *testing.T) {
	service, _ := setupInvoiceService(t)

	_, err := service.Generate(context.Background(), InvoiceGenerationRequest{ClientID: 1})

	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))

	// Nothing was created by the rejected request.
	invoices, listErr := service.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, invoices)
}

func TestInvoiceService_Generate_RejectsDuplicateSelection(t *testing.T) {
	service, entries := setupInvoiceService(t)

	entry := seedEntry(t, service.repo, billableEntry(1, "API development", 2.0))

	_, err := service.Generate(context.Background(), InvoiceGenerationRequest{
		ClientID:     1,
		TimeEntryIDs: []int64{entry.ID, entry.ID},
	})

	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))

	// The rejected request billed nothing and touched no entry.
	invoices, listErr := service.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, invoices)

	unchanged, getErr := entries.Get(context.Background(), entry.ID)
	require.NoError(t, getErr)
	assert.False(t, unchanged.Invoiced)
}

func TestInvoiceService_Generate_RejectsForeignEntry(t *testing.T) {
	service, entries := setupInvoiceService(t)

	mine := seedEntry(t, service.repo, billableEntry(1, "Mine", 1.0))
	theirs := seedEntry(t, service.repo, billableEntry(2, "Theirs", 1.0))

	_, err := service.Generate(context.Background(), InvoiceGenerationRequest{
		ClientID:     1,
		TimeEntryIDs: []int64{mine.ID, theirs.ID},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "different client")

	// No entry was marked by the rejected generation.
	entry, getErr := entries.Get(context.Background(), mine.ID)
	require.NoError(t, getErr)
	assert.False(t, entry.Invoiced)
}

func TestInvoiceService_Generate_RejectsAlreadyInvoiced(t *testing.T) {
	service, _ := setupInvoiceService(t)

	entry := seedEntry(t, service.repo, billableEntry(1, "Billed twice", 1.0))

	_, err := service.Generate(context.Background(), InvoiceGenerationRequest{
		ClientID: 1, TimeEntryIDs: []int64{entry.ID},
	})
	require.NoError(t, err)

	_, err = service.Generate(context.Background(), InvoiceGenerationRequest{
		ClientID: 1, TimeEntryIDs: []int64{entry.ID},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already invoiced")
}

func TestInvoiceService_Generate_RejectsReentrantSubmission(t *testing.T) {
	service, _ := setupInvoiceService(t)

	entry := seedEntry(t, service.repo, billableEntry(1, "Work", 1.0))

	require.NoError(t, service.beginGeneration())

	_, err := service.Generate(context.Background(), InvoiceGenerationRequest{
		ClientID: 1, TimeEntryIDs: []int64{entry.ID},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))

	// Once the in-flight submission finishes, generation works again.
	service.endGeneration()
	_, err = service.Generate(context.Background(), InvoiceGenerationRequest{
		ClientID: 1, TimeEntryIDs: []int64{entry.ID},
	})
	assert.NoError(t, err)
}

func TestInvoiceService_Delete_CascadesOverEntries(t *testing.T) {
	service, entries := setupInvoiceService(t)

	first := seedEntry(t, service.repo, billableEntry(1, "A", 1.0))
	second := seedEntry(t, service.repo, billableEntry(1, "B", 2.0))

	invoice, err := service.Generate(context.Background(), InvoiceGenerationRequest{
		ClientID: 1, TimeEntryIDs: []int64{first.ID, second.ID},
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), invoice.ID))

	// Both entries are billable again.
	for _, id := range []int64{first.ID, second.ID} {
		entry, err := entries.Get(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, entry.Invoiced)
		assert.Nil(t, entry.InvoiceID)
	}

	// The invoice and its items are gone, and it is no longer current.
	_, err = service.Get(context.Background(), invoice.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	assert.Nil(t, service.Current())
}

func TestInvoiceService_Delete_NotFound(t *testing.T) {
	service, _ := setupInvoiceService(t)

	err := service.Delete(context.Background(), 42)

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestInvoiceService_Candidates(t *testing.T) {
	service, _ := setupInvoiceService(t)

	eligible := seedEntry(t, service.repo, billableEntry(1, "Open work", 1.0))
	seedEntry(t, service.repo, billableEntry(2, "Other client", 1.0))
	nonBillable := billableEntry(1, "Internal", 1.0)
	nonBillable.Billable = false
	seedEntry(t, service.repo, nonBillable)
	billed := seedEntry(t, service.repo, billableEntry(1, "Already billed", 1.0))

	_, err := service.Generate(context.Background(), InvoiceGenerationRequest{
		ClientID: 1, TimeEntryIDs: []int64{billed.ID},
	})
	require.NoError(t, err)

	candidates, err := service.Candidates(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, eligible.ID, candidates[0].ID)
}

func TestInvoiceService_Update_Status(t *testing.T) {
	service, _ := setupInvoiceService(t)

	entry := seedEntry(t, service.repo, billableEntry(1, "Work", 1.0))
	invoice, err := service.Generate(context.Background(), InvoiceGenerationRequest{
		ClientID: 1, TimeEntryIDs: []int64{entry.ID},
	})
	require.NoError(t, err)

	sent := domain.StatusSent
	updated, err := service.Update(context.Background(), invoice.ID, InvoiceUpdate{Status: &sent})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusSent, updated.Status)
	assert.Equal(t, invoice.InvoiceNumber, updated.InvoiceNumber)

	// The current pointer follows the update.
	require.NotNil(t, service.Current())
	assert.Equal(t, domain.StatusSent, service.Current().Status)
}

func TestInvoiceService_Update_InvalidStatus(t *testing.T) {
	service, _ := setupInvoiceService(t)

	entry := seedEntry(t, service.repo, billableEntry(1, "Work", 1.0))
	invoice, err := service.Generate(context.Background(), InvoiceGenerationRequest{
		ClientID: 1, TimeEntryIDs: []int64{entry.ID},
	})
	require.NoError(t, err)

	bogus := domain.InvoiceStatus("pending")
	_, err = service.Update(context.Background(), invoice.ID, InvoiceUpdate{Status: &bogus})

	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
}

func TestInvoiceService_Update_ItemsRecomputeTotals(t *testing.T) {
	service, _ := setupInvoiceService(t)

	entry := seedEntry(t, service.repo, billableEntry(1, "Work", 2.0))
	invoice, err := service.Generate(context.Background(), InvoiceGenerationRequest{
		ClientID: 1, TaxRate: 10, TimeEntryIDs: []int64{entry.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 170.0, invoice.Subtotal)
	assert.Equal(t, 17.0, invoice.Tax)

	newItems := []domain.InvoiceItem{
		{Description: "Adjusted work", Quantity: 1.0, Rate: 100, Amount: 100.0},
	}
	updated, err := service.Update(context.Background(), invoice.ID, InvoiceUpdate{Items: newItems})

	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 100.0, updated.Subtotal)
	assert.Equal(t, 17.0, updated.Tax) // tax held constant
	assert.Equal(t, 117.0, updated.Total)
}

func TestInvoiceService_CurrentPointer(t *testing.T) {
	service, _ := setupInvoiceService(t)

	entry := seedEntry(t, service.repo, billableEntry(1, "Work", 1.0))
	invoice, err := service.Generate(context.Background(), InvoiceGenerationRequest{
		ClientID: 1, TimeEntryIDs: []int64{entry.ID},
	})
	require.NoError(t, err)

	service.ClearCurrent()
	assert.Nil(t, service.Current())

	require.NoError(t, service.SetCurrent(context.Background(), invoice.ID))
	require.NotNil(t, service.Current())
	assert.Equal(t, invoice.ID, service.Current().ID)

	// Selecting a missing invoice fails and leaves the pointer alone.
	err = service.SetCurrent(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, invoice.ID, service.Current().ID)
}
