package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoice_RecalculateTotals(t *testing.T) {
	invoice := Invoice{
		Items: []InvoiceItem{
			{Amount: 191.25},
			{Amount: 85.00},
		},
		Tax: 23.48,
	}

	invoice.RecalculateTotals()

	assert.Equal(t, 276.25, invoice.Subtotal)
	assert.Equal(t, 23.48, invoice.Tax) // held constant
	assert.Equal(t, 299.73, invoice.Total)
}

func TestInvoice_RecalculateTotals_NoItems(t *testing.T) {
	invoice := Invoice{Tax: 5.0}
	invoice.RecalculateTotals()

	assert.Equal(t, 0.0, invoice.Subtotal)
	assert.Equal(t, 5.0, invoice.Total)
}

func TestInvoice_TotalsConsistent(t *testing.T) {
	consistent := Invoice{
		Items:    []InvoiceItem{{Amount: 100.0}, {Amount: 50.0}},
		Subtotal: 150.0,
		Tax:      12.75,
		Total:    162.75,
	}
	assert.True(t, consistent.TotalsConsistent())

	staleSubtotal := consistent
	staleSubtotal.Subtotal = 140.0
	assert.False(t, staleSubtotal.TotalsConsistent())

	staleTotal := consistent
	staleTotal.Total = 150.0
	assert.False(t, staleTotal.TotalsConsistent())
}

func TestInvoiceStatus_IsValid(t *testing.T) {
	for _, status := range []InvoiceStatus{StatusDraft, StatusSent, StatusPaid, StatusOverdue} {
		assert.True(t, status.IsValid())
	}
	assert.False(t, InvoiceStatus("pending").IsValid())
	assert.False(t, InvoiceStatus("").IsValid())
}
