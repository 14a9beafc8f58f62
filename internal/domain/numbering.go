package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// InvoiceNumberPrefix is the leading component of every invoice number.
const InvoiceNumberPrefix = "INV"

// NextInvoiceNumber produces the next sequential invoice number for the
// given year, formatted as INV-<year>-<seq> with the sequence zero-padded
// to 4 digits. The sequence restarts at 1 each year and is derived from the
// numerically highest existing number in that year, so it must be computed
// against the invoice set current at creation time.
func NextInvoiceNumber(invoices []Invoice, year int) string {
	yearTag := fmt.Sprintf("%s-%d", InvoiceNumberPrefix, year)

	next := 1
	for _, inv := range invoices {
		if !strings.Contains(inv.InvoiceNumber, yearTag) {
			continue
		}
		seq, ok := parseSequence(inv.InvoiceNumber)
		if ok && seq+1 > next {
			next = seq + 1
		}
	}

	return fmt.Sprintf("%s-%d-%04d", InvoiceNumberPrefix, year, next)
}

// parseSequence extracts the numeric sequence component from an invoice
// number of the form PREFIX-YEAR-SEQ.
func parseSequence(number string) (int, bool) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 {
		return 0, false
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, false
	}
	return seq, true
}
