package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"freelancebook/internal/domain"
	"freelancebook/internal/services"
)

var (
	// Colors
	primaryColor = lipgloss.Color("39")  // Blue
	mutedColor   = lipgloss.Color("241") // Gray
	successColor = lipgloss.Color("76")  // Green
	errorColor   = lipgloss.Color("196") // Red

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	runningStyle = lipgloss.NewStyle().Bold(true).Foreground(successColor)

	statusStyles = map[domain.InvoiceStatus]lipgloss.Style{
		domain.StatusDraft:   lipgloss.NewStyle().Foreground(mutedColor),
		domain.StatusSent:    lipgloss.NewStyle().Foreground(primaryColor),
		domain.StatusPaid:    lipgloss.NewStyle().Foreground(successColor),
		domain.StatusOverdue: lipgloss.NewStyle().Bold(true).Foreground(errorColor),
	}
)

// Renderer formats domain values for terminal output.
type Renderer struct {
	currency string
}

// NewRenderer creates a renderer using the configured currency symbol.
func NewRenderer(currency string) *Renderer {
	if currency == "" {
		currency = "$"
	}
	return &Renderer{currency: currency}
}

// Money formats an amount with the currency symbol.
func (r *Renderer) Money(amount float64) string {
	return fmt.Sprintf("%s%.2f", r.currency, amount)
}

// Hours formats a duration in decimal hours.
func (r *Renderer) Hours(hours float64) string {
	return fmt.Sprintf("%.2fh", hours)
}

// Status renders an invoice status with its lifecycle color.
func (r *Renderer) Status(status domain.InvoiceStatus) string {
	if style, ok := statusStyles[status]; ok {
		return style.Render(string(status))
	}
	return string(status)
}

// TimerStatus renders the running timer with live elapsed time.
func (r *Renderer) TimerStatus(status *services.TimerStatus) string {
	var b strings.Builder
	b.WriteString(runningStyle.Render("● timer running"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Description: %s\n", status.Timer.Description))
	b.WriteString(fmt.Sprintf("  Category:    %s\n", status.Timer.CategoryID))
	if status.Timer.ClientID != nil {
		b.WriteString(fmt.Sprintf("  Client:      #%d\n", *status.Timer.ClientID))
	}
	if status.Timer.ProjectID != nil {
		b.WriteString(fmt.Sprintf("  Project:     #%d\n", *status.Timer.ProjectID))
	}
	b.WriteString(fmt.Sprintf("  Started:     %s\n", status.Timer.StartTime.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("  Elapsed:     %s\n", formatElapsed(status.Elapsed)))
	return b.String()
}

// EntryTable renders time entries as an aligned table.
func (r *Renderer) EntryTable(entries []domain.TimeEntry) string {
	if len(entries) == 0 {
		return mutedStyle.Render("No time entries found.") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%-5s %-12s %-13s %-8s %-9s %-4s %-4s %s",
		"ID", "Date", "Time", "Hours", "Amount", "Bill", "Inv", "Description")))
	b.WriteString("\n")
	for _, e := range entries {
		line := fmt.Sprintf("%-5d %-12s %-13s %-8s %-9s %-4s %-4s %s",
			e.ID, e.Date, e.StartTime+"-"+e.EndTime,
			r.Hours(e.Duration), r.Money(e.BillableAmount()),
			yesNo(e.Billable), yesNo(e.Invoiced), e.Description)
		if e.Invoiced {
			line = mutedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// EntrySummary renders aggregate statistics for a set of entries.
func (r *Renderer) EntrySummary(stats domain.EntryStatistics) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Total hours:     %s\n", r.Hours(stats.TotalHours)))
	b.WriteString(fmt.Sprintf("  Billable amount: %s\n", r.Money(stats.BillableAmount)))
	b.WriteString(fmt.Sprintf("  Projects:        %d\n", stats.ProjectCount))
	b.WriteString(fmt.Sprintf("  Days worked:     %d\n", stats.DayCount))
	return b.String()
}

// InvoiceTable renders invoice headers as an aligned table.
func (r *Renderer) InvoiceTable(invoices []domain.Invoice) string {
	if len(invoices) == 0 {
		return mutedStyle.Render("No invoices found.") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%-5s %-14s %-7s %-12s %-12s %-10s %s",
		"ID", "Number", "Client", "Issued", "Due", "Total", "Status")))
	b.WriteString("\n")
	for _, inv := range invoices {
		b.WriteString(fmt.Sprintf("%-5d %-14s %-7d %-12s %-12s %-10s %s\n",
			inv.ID, inv.InvoiceNumber, inv.ClientID, inv.IssueDate, inv.DueDate,
			r.Money(inv.Total), r.Status(inv.Status)))
	}
	return b.String()
}

// InvoiceDetail renders a full invoice with line items and totals.
func (r *Renderer) InvoiceDetail(inv *domain.Invoice) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Invoice %s", inv.InvoiceNumber)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Client:  #%d\n", inv.ClientID))
	b.WriteString(fmt.Sprintf("  Issued:  %s    Due: %s\n", inv.IssueDate, inv.DueDate))
	b.WriteString(fmt.Sprintf("  Status:  %s\n\n", r.Status(inv.Status)))

	b.WriteString(fmt.Sprintf("  %-42s %8s %9s %10s\n", "Description", "Hours", "Rate", "Amount"))
	for _, item := range inv.Items {
		b.WriteString(fmt.Sprintf("  %-42s %8s %9s %10s\n",
			truncate(item.Description, 42), r.Hours(item.Quantity),
			r.Money(item.Rate), r.Money(item.Amount)))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %61s %10s\n", "Subtotal:", r.Money(inv.Subtotal)))
	b.WriteString(fmt.Sprintf("  %61s %10s\n", "Tax:", r.Money(inv.Tax)))
	b.WriteString(fmt.Sprintf("  %61s %10s\n", "Total:", r.Money(inv.Total)))

	if inv.PaymentTerms != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("\n  Terms: %s\n", inv.PaymentTerms)))
	}
	if inv.Notes != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s\n", inv.Notes)))
	}
	return b.String()
}

// ClientTable renders clients as an aligned table.
func (r *Renderer) ClientTable(clients []domain.Client) string {
	if len(clients) == 0 {
		return mutedStyle.Render("No clients found.") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%-5s %-24s %-24s %-10s", "ID", "Name", "Email", "Status")))
	b.WriteString("\n")
	for _, c := range clients {
		b.WriteString(fmt.Sprintf("%-5d %-24s %-24s %-10s\n", c.ID, c.Name, c.Email, c.Status))
	}
	return b.String()
}

// CategoryList renders the category set, coloring names when the stored
// hex color is understood by the terminal profile.
func (r *Renderer) CategoryList(categories []domain.Category) string {
	var b strings.Builder
	for _, c := range categories {
		name := c.Name
		if c.Color != "" {
			name = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(c.Name)
		}
		b.WriteString(fmt.Sprintf("  %-10s %s\n", c.ID, name))
	}
	return b.String()
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
