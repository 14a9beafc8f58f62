package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"freelancebook/internal/domain"
	"freelancebook/internal/errors"
)

// EntryCommand handles the entry subcommands
type EntryCommand struct {
	root         *RootCommand
	errorHandler *ErrorHandler
}

func newEntryCmd(r *RootCommand) *cobra.Command {
	handler := &EntryCommand{
		root:         r,
		errorHandler: NewErrorHandler(),
	}

	entryCmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage time entries",
		Long:  "Add, list, update and delete time entries.",
	}

	addCmd := &cobra.Command{
		Use:   "add [description]",
		Short: "Add a time entry",
		Long: `Record a time entry manually.

The duration is derived from the start and end times when --hours is not
given; an end time earlier than the start time is read as crossing
midnight. The rate falls back to the configured default.

Examples:
  fb entry add "Code review" --client 1 --date 2026-08-28 --start 09:00 --end 11:15
  fb entry add "Design pass" --client 2 --project 4 --date 2026-08-28 --start 22:30 --end 01:00 --category design`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			entry := domain.TimeEntry{Description: strings.Join(args, " ")}
			entry.ClientID, _ = cmd.Flags().GetInt64("client")
			if projectID, _ := cmd.Flags().GetInt64("project"); projectID > 0 {
				entry.ProjectID = &projectID
			}
			entry.CategoryID, _ = cmd.Flags().GetString("category")
			entry.Date, _ = cmd.Flags().GetString("date")
			entry.StartTime, _ = cmd.Flags().GetString("start")
			entry.EndTime, _ = cmd.Flags().GetString("end")
			entry.Duration, _ = cmd.Flags().GetFloat64("hours")
			entry.Rate, _ = cmd.Flags().GetFloat64("rate")
			entry.Billable, _ = cmd.Flags().GetBool("billable")

			return handler.add(ctx, entry)
		},
	}
	addCmd.Flags().Int64("client", 0, "Client ID (required)")
	addCmd.Flags().Int64("project", 0, "Project ID")
	addCmd.Flags().String("category", "", "Work category (default: dev)")
	addCmd.Flags().String("date", "", "Entry date, YYYY-MM-DD (required)")
	addCmd.Flags().String("start", "", "Start time, HH:MM (required)")
	addCmd.Flags().String("end", "", "End time, HH:MM (required)")
	addCmd.Flags().Float64("hours", 0, "Duration in decimal hours (derived from times when omitted)")
	addCmd.Flags().Float64("rate", 0, "Hourly rate (default: configured rate)")
	addCmd.Flags().Bool("billable", true, "Whether the entry is billable")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries",
		Long: `List time entries, newest date first. All given filters must match.

Examples:
  fb entry list                                  # All entries
  fb entry list --client 1 --billable billable   # Billable work for client 1
  fb entry list --date 2026-08-28 --summary      # One day, with totals`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			filter := domain.EntryFilter{Billable: domain.BillableAll}
			if clientID, _ := cmd.Flags().GetInt64("client"); clientID > 0 {
				filter.ClientID = &clientID
			}
			if category, _ := cmd.Flags().GetString("category"); category != "" {
				filter.CategoryID = &category
			}
			if billable, _ := cmd.Flags().GetString("billable"); billable != "" {
				filter.Billable = domain.BillableFilter(billable)
			}
			if date, _ := cmd.Flags().GetString("date"); date != "" {
				filter.Date = &date
			}
			summary, _ := cmd.Flags().GetBool("summary")

			return handler.list(ctx, filter, summary)
		},
	}
	listCmd.Flags().Int64("client", 0, "Filter by client ID")
	listCmd.Flags().String("category", "", "Filter by category")
	listCmd.Flags().String("billable", "", "Filter by billable state: all, billable, nonbillable")
	listCmd.Flags().String("date", "", "Filter by date, YYYY-MM-DD")
	listCmd.Flags().Bool("summary", false, "Append aggregate statistics")

	updateCmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a time entry",
		Long: `Update fields of an existing time entry. Only the given flags change;
the duration is rederived when a time changes without an explicit --hours.
The invoiced state cannot be changed here; it is managed by invoicing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.NewInvalidInputError("id", args[0], "entry id must be a number")
			}

			fields := make(map[string]interface{})
			if cmd.Flags().Changed("client") {
				v, _ := cmd.Flags().GetInt64("client")
				fields["clientId"] = v
			}
			if cmd.Flags().Changed("project") {
				v, _ := cmd.Flags().GetInt64("project")
				fields["projectId"] = v
			}
			if cmd.Flags().Changed("description") {
				v, _ := cmd.Flags().GetString("description")
				fields["description"] = v
			}
			if cmd.Flags().Changed("category") {
				v, _ := cmd.Flags().GetString("category")
				fields["categoryId"] = v
			}
			if cmd.Flags().Changed("date") {
				v, _ := cmd.Flags().GetString("date")
				fields["date"] = v
			}
			if cmd.Flags().Changed("start") {
				v, _ := cmd.Flags().GetString("start")
				fields["startTime"] = v
			}
			if cmd.Flags().Changed("end") {
				v, _ := cmd.Flags().GetString("end")
				fields["endTime"] = v
			}
			if cmd.Flags().Changed("hours") {
				v, _ := cmd.Flags().GetFloat64("hours")
				fields["duration"] = v
			}
			if cmd.Flags().Changed("rate") {
				v, _ := cmd.Flags().GetFloat64("rate")
				fields["rate"] = v
			}
			if cmd.Flags().Changed("billable") {
				v, _ := cmd.Flags().GetBool("billable")
				fields["billable"] = v
			}

			return handler.update(ctx, id, fields)
		},
	}
	updateCmd.Flags().Int64("client", 0, "New client ID")
	updateCmd.Flags().Int64("project", 0, "New project ID")
	updateCmd.Flags().String("description", "", "New description")
	updateCmd.Flags().String("category", "", "New category")
	updateCmd.Flags().String("date", "", "New date, YYYY-MM-DD")
	updateCmd.Flags().String("start", "", "New start time, HH:MM")
	updateCmd.Flags().String("end", "", "New end time, HH:MM")
	updateCmd.Flags().Float64("hours", 0, "New duration in decimal hours")
	updateCmd.Flags().Float64("rate", 0, "New hourly rate")
	updateCmd.Flags().Bool("billable", true, "New billable state")

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a time entry",
		Long:  "Delete a time entry. Entries attached to an invoice are refused; delete the invoice first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.NewInvalidInputError("id", args[0], "entry id must be a number")
			}
			return handler.delete(ctx, id)
		},
	}

	entryCmd.AddCommand(addCmd, listCmd, updateCmd, deleteCmd)
	return entryCmd
}

func (c *EntryCommand) add(ctx context.Context, entry domain.TimeEntry) error {
	created, err := c.root.app.services.Entries.Add(ctx, entry)
	if err != nil {
		return c.errorHandler.Handle("add entry", err)
	}
	renderer := c.root.renderer()
	fmt.Printf("Added entry #%d: %s (%s, %s)\n",
		created.ID, created.Description, renderer.Hours(created.Duration), renderer.Money(created.BillableAmount()))
	return nil
}

func (c *EntryCommand) list(ctx context.Context, filter domain.EntryFilter, summary bool) error {
	entries, err := c.root.app.services.Entries.SortedList(ctx, filter)
	if err != nil {
		return c.errorHandler.Handle("list entries", err)
	}
	renderer := c.root.renderer()
	fmt.Print(renderer.EntryTable(entries))

	if summary {
		stats := domain.Aggregate(entries)
		fmt.Println()
		fmt.Print(renderer.EntrySummary(stats))
	}
	return nil
}

func (c *EntryCommand) update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return errors.NewInvalidInputError("fields", "", "no fields given; see fb entry update --help")
	}
	updated, err := c.root.app.services.Entries.Update(ctx, id, fields)
	if err != nil {
		return c.errorHandler.Handle("update entry", err)
	}
	fmt.Printf("Updated entry #%d\n", updated.ID)
	return nil
}

func (c *EntryCommand) delete(ctx context.Context, id int64) error {
	if err := c.root.app.services.Entries.Delete(ctx, id); err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}
	fmt.Printf("Deleted entry #%d\n", id)
	return nil
}
