package cli

import (
	"time"

	"github.com/spf13/cobra"

	"freelancebook/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
	app    *App
	closer func() error
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config) *RootCommand {
	root := &RootCommand{
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "fb",
		Short: "Freelancer time tracking and invoicing",
		Long: `FreelanceBook (fb) tracks billable time and turns it into invoices.

FEATURES:
  • Start, stop and cancel a running timer that finalizes into time entries
  • Add, list, update and delete time entries with filters and summaries
  • Generate invoices from selected entries, grouped by project and description
  • Sequential invoice numbers per calendar year (INV-2026-0001)
  • Manage clients and work categories

EXAMPLES:
  fb timer start "Writing API docs" --client 1      # Start the timer
  fb timer stop                                     # Finalize into a time entry
  fb entry add "Code review" --client 1 --date 2026-08-28 --start 09:00 --end 11:15
  fb entry list --client 1 --billable billable      # Filter entries
  fb invoice generate --client 1 --tax 8.5 --entries 3,4,7
  fb invoice show 1                                 # Render a full invoice

CONFIGURATION:
  Priority order: command-line flags > environment variables > config file > defaults
  Config file: ~/.freelancebook/config.yaml (override with FB_CONFIG)

    FB_DB_DIR                   Database directory (default: ~/.freelancebook)
    FB_DB_FILENAME              Database filename (default: freelancebook.db)
    FB_BILLING_DEFAULT_RATE     Default hourly rate (default: 85)
    FB_BILLING_DEFAULT_TAX      Default tax percentage (default: 0)
    FB_BILLING_PAYMENT_TERMS    Default payment terms (default: Net 15)
    FB_BILLING_DUE_OFFSET_DAYS  Days until due date (default: 15)
    FB_DISPLAY_CURRENCY         Currency symbol (default: $)
    FB_APP_TIMEOUT              Command timeout (default: 60s)
    FB_APP_VERBOSE              Verbose output (default: false)

GETTING HELP:
  fb [command] --help           Get help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := root.applyFlagOverrides(); err != nil {
				return err
			}
			app, closer, err := NewAppWithDefaultRepository(cmd.Context(), root.config)
			if err != nil {
				return err
			}
			root.app = app
			root.closer = closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if root.closer != nil {
				return root.closer()
			}
			return nil
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides FB_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides FB_DB_FILENAME)")
	flags.Float64("default-rate", 0, "Default hourly rate (overrides FB_BILLING_DEFAULT_RATE)")
	flags.Float64("default-tax", -1, "Default tax percentage (overrides FB_BILLING_DEFAULT_TAX)")
	flags.String("currency", "", "Currency symbol (overrides FB_DISPLAY_CURRENCY)")
	flags.Duration("app-timeout", 0, "Command timeout (overrides FB_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides FB_APP_VERBOSE)")
}

// applyFlagOverrides updates the configuration with values from command-line flags
func (r *RootCommand) applyFlagOverrides() error {
	flags := r.cmd.PersistentFlags()

	if dbDir, _ := flags.GetString("db-dir"); dbDir != "" {
		r.config.Database.Dir = dbDir
	}
	if dbFilename, _ := flags.GetString("db-filename"); dbFilename != "" {
		r.config.Database.Filename = dbFilename
	}
	if rate, _ := flags.GetFloat64("default-rate"); rate > 0 {
		r.config.Billing.DefaultHourlyRate = rate
	}
	if tax, _ := flags.GetFloat64("default-tax"); tax >= 0 {
		r.config.Billing.DefaultTaxRate = tax
	}
	if currency, _ := flags.GetString("currency"); currency != "" {
		r.config.Display.Currency = currency
	}
	if timeout, _ := flags.GetDuration("app-timeout"); timeout > 0 {
		r.config.Application.Timeout = timeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
	}

	return r.config.Validate()
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		newTimerCmd(r),
		newEntryCmd(r),
		newInvoiceCmd(r),
		newClientCmd(r),
		newCategoryCmd(r),
	)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// renderer builds a Renderer from the current display configuration.
func (r *RootCommand) renderer() *Renderer {
	return NewRenderer(r.config.Display.Currency)
}
