package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"freelancebook/internal/services"
)

// TimerCommand handles the timer subcommands
type TimerCommand struct {
	root         *RootCommand
	errorHandler *ErrorHandler
}

func newTimerCmd(r *RootCommand) *cobra.Command {
	handler := &TimerCommand{
		root:         r,
		errorHandler: NewErrorHandler(),
	}

	timerCmd := &cobra.Command{
		Use:   "timer",
		Short: "Control the running timer",
		Long:  "Start, stop, cancel or inspect the single running timer. Stopping finalizes the session into a time entry.",
	}

	startCmd := &cobra.Command{
		Use:   "start [description]",
		Short: "Start the timer",
		Long:  "Start tracking time. Only one timer can run at a time; starting while one runs is rejected.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			req := services.TimerStartRequest{
				Description: strings.Join(args, " "),
			}
			if clientID, _ := cmd.Flags().GetInt64("client"); clientID > 0 {
				req.ClientID = &clientID
			}
			if projectID, _ := cmd.Flags().GetInt64("project"); projectID > 0 {
				req.ProjectID = &projectID
			}
			req.CategoryID, _ = cmd.Flags().GetString("category")

			return handler.start(ctx, req)
		},
	}
	startCmd.Flags().Int64("client", 0, "Client ID the session belongs to")
	startCmd.Flags().Int64("project", 0, "Project ID the session belongs to")
	startCmd.Flags().String("category", "", "Work category (default: dev)")

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the timer and record a time entry",
		Long:  "Stop the running timer. The session is finalized into a billable time entry at the default hourly rate.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return handler.stop(ctx)
		},
	}

	cancelCmd := &cobra.Command{
		Use:   "cancel",
		Short: "Discard the running timer",
		Long:  "Discard the running timer without recording a time entry. Does nothing when no timer is running.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return handler.cancel(ctx)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return handler.status(ctx)
		},
	}

	timerCmd.AddCommand(startCmd, stopCmd, cancelCmd, statusCmd)
	return timerCmd
}

func (c *TimerCommand) start(ctx context.Context, req services.TimerStartRequest) error {
	timer, err := c.root.app.services.Timer.Start(ctx, req)
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}
	fmt.Printf("Timer started: %s\n", timer.Description)
	return nil
}

func (c *TimerCommand) stop(ctx context.Context) error {
	entry, err := c.root.app.services.Timer.Stop(ctx)
	if err != nil {
		return c.errorHandler.Handle("stop timer", err)
	}
	renderer := c.root.renderer()
	fmt.Printf("Timer stopped. Recorded entry #%d: %s (%s, %s)\n",
		entry.ID, entry.Description, renderer.Hours(entry.Duration), renderer.Money(entry.BillableAmount()))
	return nil
}

func (c *TimerCommand) cancel(ctx context.Context) error {
	if err := c.root.app.services.Timer.Cancel(ctx); err != nil {
		return c.errorHandler.Handle("cancel timer", err)
	}
	fmt.Println("Timer discarded")
	return nil
}

func (c *TimerCommand) status(ctx context.Context) error {
	status, err := c.root.app.services.Timer.Status(ctx)
	if err != nil {
		if c.errorHandler.IsNotFoundError(err) {
			fmt.Println("No timer running")
			return nil
		}
		return c.errorHandler.Handle("get timer status", err)
	}
	fmt.Print(c.root.renderer().TimerStatus(status))
	return nil
}
