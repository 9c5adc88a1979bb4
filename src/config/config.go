package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"stock-fundamentals/src/helpers"
	"stock-fundamentals/src/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables layered over the file.
const (
	EnvOutputDir       = "FUNDAMENTALS_OUTPUT_DIR"
	EnvOutputFile      = "FUNDAMENTALS_OUTPUT_FILE"
	EnvLogLevel        = "FUNDAMENTALS_LOG_LEVEL"
	EnvProviderType    = "FUNDAMENTALS_PROVIDER_TYPE"
	EnvProviderBaseURL = "FUNDAMENTALS_PROVIDER_BASE_URL"
	EnvFixturePath     = "FUNDAMENTALS_FIXTURE_PATH"
	EnvTracingEnabled  = "FUNDAMENTALS_TRACING_ENABLED"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return helpers.NewConfigurationError(fmt.Sprintf("failed to load env file '%s'", path), err)
	}
	return nil
}

// -----------------------------------------------------------------------------

// NewConfig reads the YAML file at configPath on top of DefaultConfig,
// expands ${VAR} references, applies FUNDAMENTALS_* overrides and validates.
func NewConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, helpers.NewConfigurationError(fmt.Sprintf("failed to read config file '%s'", configPath), err)
	}

	modelConfig := DefaultConfig()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &modelConfig); err != nil {
		return nil, helpers.NewConfigurationError("failed to parse config from YAML", err)
	}

	config := &Config{MConfig: &modelConfig}

	if err := config.applyEnv(); err != nil {
		return nil, helpers.NewConfigurationError("invalid environment override", err)
	}

	if err := config.Validate(); err != nil {
		return nil, helpers.NewConfigurationError("config validation failed", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvOutputDir); ok {
		c.Output.Directory = v
	}
	if v, ok := os.LookupEnv(EnvOutputFile); ok {
		c.Output.FileName = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvProviderType); ok {
		c.Provider.Type = v
	}
	if v, ok := os.LookupEnv(EnvProviderBaseURL); ok {
		c.Provider.BaseURL = v
	}
	if v, ok := os.LookupEnv(EnvFixturePath); ok {
		c.Provider.FixturePath = v
	}
	if v, ok := os.LookupEnv(EnvTracingEnabled); ok {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTracingEnabled, err)
		}
		c.Tracing.Enabled = enabled
	}
	return nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level %q must be one of debug, info, warn, error", c.LogLevel)
	}

	if c.Output.FileName == "" {
		return fmt.Errorf("output.file_name is required")
	}
	if strings.ContainsAny(c.Output.FileName, `/\`) {
		return fmt.Errorf("output.file_name %q must not contain a path separator", c.Output.FileName)
	}
	switch c.Output.NumberFormat {
	case "shortest":
	case "fixed":
		if c.Output.DecimalPlaces < 0 {
			return fmt.Errorf("output.decimal_places must not be negative")
		}
	default:
		return fmt.Errorf("output.number_format %q must be shortest or fixed", c.Output.NumberFormat)
	}

	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("network.timeout must be greater than 0")
	}

	switch c.Provider.Type {
	case "yahoo":
		if c.Provider.BaseURL == "" {
			return fmt.Errorf("provider.base_url is required for yahoo")
		}
	case "fixture":
		if c.Provider.FixturePath == "" {
			return fmt.Errorf("provider.fixture_path is required for fixture")
		}
	default:
		return fmt.Errorf("provider.type %q must be yahoo or fixture", c.Provider.Type)
	}

	if err := c.Metrics.Validate(); err != nil {
		return err
	}

	extra := []string{c.Output.TickerColumn, c.Output.TimestampColumn, c.Output.SessionColumn}
	seen := make(map[string]bool, len(c.Metrics)+len(extra))
	for _, col := range c.Metrics.Columns() {
		seen[col] = true
	}
	for _, col := range extra {
		if col == "" {
			continue
		}
		if seen[col] {
			return fmt.Errorf("output column %q is used twice", col)
		}
		seen[col] = true
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
