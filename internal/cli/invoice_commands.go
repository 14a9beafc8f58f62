package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"freelancebook/internal/domain"
	"freelancebook/internal/errors"
	"freelancebook/internal/services"
)

// InvoiceCommand handles the invoice subcommands
type InvoiceCommand struct {
	root         *RootCommand
	errorHandler *ErrorHandler
}

func newInvoiceCmd(r *RootCommand) *cobra.Command {
	handler := &InvoiceCommand{
		root:         r,
		errorHandler: NewErrorHandler(),
	}

	invoiceCmd := &cobra.Command{
		Use:   "invoice",
		Short: "Generate and manage invoices",
		Long:  "Generate invoices from time entries, inspect them and manage their lifecycle.",
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an invoice from time entries",
		Long: `Generate an invoice for a client from selected time entries.

Entries sharing a project and description are merged into one line item.
Every billed entry is marked invoiced and back-references the invoice.
The invoice number is sequential within the calendar year.

Examples:
  fb invoice generate --client 1 --entries 3,4,7
  fb invoice generate --client 1 --entries 3,4 --tax 8.5 --due 2026-09-30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			entriesArg, _ := cmd.Flags().GetString("entries")
			entryIDs, err := parseIDList(entriesArg)
			if err != nil {
				return err
			}

			req := services.InvoiceGenerationRequest{TimeEntryIDs: entryIDs}
			req.ClientID, _ = cmd.Flags().GetInt64("client")
			if cmd.Flags().Changed("tax") {
				req.TaxRate, _ = cmd.Flags().GetFloat64("tax")
			} else {
				req.TaxRate = r.config.Billing.DefaultTaxRate
			}
			req.IssueDate, _ = cmd.Flags().GetString("issue")
			req.DueDate, _ = cmd.Flags().GetString("due")
			req.Notes, _ = cmd.Flags().GetString("notes")
			req.PaymentTerms, _ = cmd.Flags().GetString("terms")

			return handler.generate(ctx, req)
		},
	}
	generateCmd.Flags().Int64("client", 0, "Client ID to bill (required)")
	generateCmd.Flags().String("entries", "", "Comma-separated time entry IDs (required)")
	generateCmd.Flags().Float64("tax", 0, "Tax percentage, 0-100 (default: configured tax)")
	generateCmd.Flags().String("issue", "", "Issue date, YYYY-MM-DD (default: today)")
	generateCmd.Flags().String("due", "", "Due date, YYYY-MM-DD (default: issue + configured offset)")
	generateCmd.Flags().String("notes", "", "Invoice notes (default: configured notes)")
	generateCmd.Flags().String("terms", "", "Payment terms (default: configured terms)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return handler.list(ctx)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a full invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return handler.show(ctx, id)
		},
	}

	candidatesCmd := &cobra.Command{
		Use:   "candidates",
		Short: "List entries eligible for invoicing",
		Long:  "List a client's billable, not yet invoiced time entries. These are the entries invoice generate accepts.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			clientID, _ := cmd.Flags().GetInt64("client")
			return handler.candidates(ctx, clientID)
		},
	}
	candidatesCmd.Flags().Int64("client", 0, "Client ID (required)")

	statusCmd := &cobra.Command{
		Use:   "status [id] [status]",
		Short: "Change an invoice's status",
		Long:  "Set an invoice's lifecycle status: draft, sent, paid or overdue.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return handler.setStatus(ctx, id, domain.InvoiceStatus(args[1]))
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an invoice",
		Long: `Delete an invoice and release its time entries.

Every entry billed on the invoice becomes uninvoiced again and can be
billed on a future invoice. If some entries cannot be released, the
invoice is kept so the command can be retried.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return handler.delete(ctx, id)
		},
	}

	invoiceCmd.AddCommand(generateCmd, listCmd, showCmd, candidatesCmd, statusCmd, deleteCmd)
	return invoiceCmd
}

func (c *InvoiceCommand) generate(ctx context.Context, req services.InvoiceGenerationRequest) error {
	invoice, err := c.root.app.services.Invoices.Generate(ctx, req)
	if err != nil {
		// A partial failure still created the invoice; show it before
		// reporting what was left undone.
		if _, partial := errors.AsPartialFailure(err); partial && invoice != nil {
			fmt.Printf("Generated invoice %s (#%d)\n", invoice.InvoiceNumber, invoice.ID)
		}
		return c.errorHandler.Handle("generate invoice", err)
	}
	renderer := c.root.renderer()
	fmt.Printf("Generated invoice %s (#%d): %s\n", invoice.InvoiceNumber, invoice.ID, renderer.Money(invoice.Total))
	fmt.Print(renderer.InvoiceDetail(invoice))
	return nil
}

func (c *InvoiceCommand) list(ctx context.Context) error {
	invoices, err := c.root.app.services.Invoices.List(ctx)
	if err != nil {
		return c.errorHandler.Handle("list invoices", err)
	}
	fmt.Print(c.root.renderer().InvoiceTable(invoices))
	return nil
}

func (c *InvoiceCommand) show(ctx context.Context, id int64) error {
	invoice, err := c.root.app.services.Invoices.Get(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("show invoice", err)
	}
	fmt.Print(c.root.renderer().InvoiceDetail(invoice))
	return nil
}

func (c *InvoiceCommand) candidates(ctx context.Context, clientID int64) error {
	entries, err := c.root.app.services.Invoices.Candidates(ctx, clientID)
	if err != nil {
		return c.errorHandler.Handle("list invoice candidates", err)
	}
	fmt.Print(c.root.renderer().EntryTable(entries))
	return nil
}

func (c *InvoiceCommand) setStatus(ctx context.Context, id int64, status domain.InvoiceStatus) error {
	update := services.InvoiceUpdate{Status: &status}
	invoice, err := c.root.app.services.Invoices.Update(ctx, id, update)
	if err != nil {
		return c.errorHandler.Handle("update invoice status", err)
	}
	fmt.Printf("Invoice %s is now %s\n", invoice.InvoiceNumber, c.root.renderer().Status(invoice.Status))
	return nil
}

func (c *InvoiceCommand) delete(ctx context.Context, id int64) error {
	if err := c.root.app.services.Invoices.Delete(ctx, id); err != nil {
		return c.errorHandler.Handle("delete invoice", err)
	}
	fmt.Printf("Deleted invoice #%d; its time entries are uninvoiced again\n", id)
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("id", arg, "must be a positive number")
	}
	return id, nil
}

func parseIDList(arg string) ([]int64, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, errors.NewInvalidInputError("entries", arg, "at least one entry id is required")
	}
	parts := strings.Split(arg, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, errors.NewInvalidInputError("entries", part, "entry ids must be numbers")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
