package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the freelance dashboard core
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Billing     BillingConfig     `yaml:"billing"`
	Display     DisplayConfig     `yaml:"display"`
	Application ApplicationConfig `yaml:"application"`
}

// DatabaseConfig holds record store configuration
type DatabaseConfig struct {
	Dir          string        `yaml:"dir" env:"FB_DB_DIR"`
	Filename     string        `yaml:"filename" env:"FB_DB_FILENAME"`
	QueryTimeout time.Duration `yaml:"query_timeout" env:"FB_DB_QUERY_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"FB_DB_WRITE_TIMEOUT"`
}

// BillingConfig holds the named business defaults. These are the single
// source of truth for values the call sites used to hard-code.
type BillingConfig struct {
	DefaultHourlyRate   float64 `yaml:"default_hourly_rate" env:"FB_BILLING_DEFAULT_RATE"`
	DefaultTaxRate      float64 `yaml:"default_tax_rate" env:"FB_BILLING_DEFAULT_TAX"`
	DefaultPaymentTerms string  `yaml:"default_payment_terms" env:"FB_BILLING_PAYMENT_TERMS"`
	DefaultNotes        string  `yaml:"default_notes" env:"FB_BILLING_NOTES"`
	DueDateOffsetDays   int     `yaml:"due_date_offset_days" env:"FB_BILLING_DUE_OFFSET_DAYS"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat string `yaml:"time_format" env:"FB_DISPLAY_TIME_FORMAT"`
	Currency   string `yaml:"currency" env:"FB_DISPLAY_CURRENCY"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"FB_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"FB_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".freelancebook")

	return &Config{
		Database: DatabaseConfig{
			Dir:          defaultDBDir,
			Filename:     "freelancebook.db",
			QueryTimeout: 10 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Billing: BillingConfig{
			DefaultHourlyRate:   85,
			DefaultTaxRate:      0,
			DefaultPaymentTerms: "Net 15",
			DefaultNotes:        "Thank you for your business!",
			DueDateOffsetDays:   15,
		},
		Display: DisplayConfig{
			TimeFormat: "2006-01-02 15:04",
			Currency:   "$",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	if dir := os.Getenv("FB_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("FB_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("FB_DB_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.QueryTimeout = d
		}
	}
	if timeout := os.Getenv("FB_DB_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.WriteTimeout = d
		}
	}

	if rate := os.Getenv("FB_BILLING_DEFAULT_RATE"); rate != "" {
		if r, err := strconv.ParseFloat(rate, 64); err == nil {
			c.Billing.DefaultHourlyRate = r
		}
	}
	if tax := os.Getenv("FB_BILLING_DEFAULT_TAX"); tax != "" {
		if r, err := strconv.ParseFloat(tax, 64); err == nil {
			c.Billing.DefaultTaxRate = r
		}
	}
	if terms := os.Getenv("FB_BILLING_PAYMENT_TERMS"); terms != "" {
		c.Billing.DefaultPaymentTerms = terms
	}
	if notes := os.Getenv("FB_BILLING_NOTES"); notes != "" {
		c.Billing.DefaultNotes = notes
	}
	if offset := os.Getenv("FB_BILLING_DUE_OFFSET_DAYS"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil {
			c.Billing.DueDateOffsetDays = n
		}
	}

	if format := os.Getenv("FB_DISPLAY_TIME_FORMAT"); format != "" {
		c.Display.TimeFormat = format
	}
	if currency := os.Getenv("FB_DISPLAY_CURRENCY"); currency != "" {
		c.Display.Currency = currency
	}

	if timeout := os.Getenv("FB_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("FB_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Billing.DefaultHourlyRate < 0 {
		return &ConfigError{Field: "billing.default_hourly_rate", Message: "default hourly rate must not be negative"}
	}
	if c.Billing.DefaultTaxRate < 0 || c.Billing.DefaultTaxRate > 100 {
		return &ConfigError{Field: "billing.default_tax_rate", Message: "default tax rate must be between 0 and 100"}
	}
	if c.Billing.DueDateOffsetDays < 0 {
		return &ConfigError{Field: "billing.due_date_offset_days", Message: "due date offset must not be negative"}
	}

	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
