package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "freelancebook.db", cfg.Database.Filename)
	assert.Equal(t, 85.0, cfg.Billing.DefaultHourlyRate)
	assert.Equal(t, 0.0, cfg.Billing.DefaultTaxRate)
	assert.Equal(t, "Net 15", cfg.Billing.DefaultPaymentTerms)
	assert.Equal(t, "Thank you for your business!", cfg.Billing.DefaultNotes)
	assert.Equal(t, 15, cfg.Billing.DueDateOffsetDays)
	assert.Equal(t, "$", cfg.Display.Currency)
	assert.Equal(t, 60*time.Second, cfg.Application.Timeout)

	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("FB_DB_DIR", "/tmp/fb-test")
	t.Setenv("FB_BILLING_DEFAULT_RATE", "120")
	t.Setenv("FB_BILLING_DEFAULT_TAX", "8.5")
	t.Setenv("FB_BILLING_DUE_OFFSET_DAYS", "30")
	t.Setenv("FB_DISPLAY_CURRENCY", "€")
	t.Setenv("FB_APP_TIMEOUT", "90s")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/tmp/fb-test", cfg.Database.Dir)
	assert.Equal(t, 120.0, cfg.Billing.DefaultHourlyRate)
	assert.Equal(t, 8.5, cfg.Billing.DefaultTaxRate)
	assert.Equal(t, 30, cfg.Billing.DueDateOffsetDays)
	assert.Equal(t, "€", cfg.Display.Currency)
	assert.Equal(t, 90*time.Second, cfg.Application.Timeout)
}

func TestConfig_LoadFromEnvironment_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("FB_BILLING_DEFAULT_RATE", "lots")
	t.Setenv("FB_APP_TIMEOUT", "soon")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, 85.0, cfg.Billing.DefaultHourlyRate)
	assert.Equal(t, 60*time.Second, cfg.Application.Timeout)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		modify        func(*Config)
		expectedField string
	}{
		{
			name:          "should reject an empty database dir",
			modify:        func(c *Config) { c.Database.Dir = "" },
			expectedField: "database.dir",
		},
		{
			name:          "should reject a negative rate",
			modify:        func(c *Config) { c.Billing.DefaultHourlyRate = -1 },
			expectedField: "billing.default_hourly_rate",
		},
		{
			name:          "should reject a tax rate above 100",
			modify:        func(c *Config) { c.Billing.DefaultTaxRate = 150 },
			expectedField: "billing.default_tax_rate",
		},
		{
			name:          "should reject a non-positive timeout",
			modify:        func(c *Config) { c.Application.Timeout = 0 },
			expectedField: "application.timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			configErr, ok := err.(*ConfigError)
			require.True(t, ok)
			assert.Equal(t, tt.expectedField, configErr.Field)
		})
	}
}

func TestConfig_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
billing:
  default_hourly_rate: 110
  default_payment_terms: Net 30
display:
  currency: "£"
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, 110.0, cfg.Billing.DefaultHourlyRate)
	assert.Equal(t, "Net 30", cfg.Billing.DefaultPaymentTerms)
	assert.Equal(t, "£", cfg.Display.Currency)
	// Untouched values keep their defaults.
	assert.Equal(t, "freelancebook.db", cfg.Database.Filename)
}

func TestConfig_LoadFromFile_Missing(t *testing.T) {
	cfg := NewConfig()

	// A missing config file is not an error; defaults stand.
	assert.NoError(t, cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	t.Setenv("FB_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	rate := 130.0
	verbose := true
	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		DefaultHourlyRate: &rate,
		Verbose:           &verbose,
	})

	require.NoError(t, err)
	assert.Equal(t, 130.0, cfg.Billing.DefaultHourlyRate)
	assert.True(t, cfg.Application.Verbose)
}

func TestParseDurationWithFallback(t *testing.T) {
	assert.Equal(t, 30*time.Second, ParseDurationWithFallback("30s", time.Minute))
	assert.Equal(t, time.Minute, ParseDurationWithFallback("soon", time.Minute))
}
