package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/castinsight/castdash/schema"
	"github.com/rs/zerolog"
)

// Default values for configuration.
const (
	DefaultSchema          = "datamart"
	DefaultAddr            = ":8888"
	DefaultPrecision       = 1
	DefaultShutdownTimeout = 10 * time.Second
	DefaultQueryTimeout    = 30 * time.Second
	MaxResultLimit         = 1000
	MaxTrendMonths         = 36
)

// Log formats.
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration of the dashboard.
// This struct is the "final, validated" config and is never mutated after setup.
type Config struct {
	DBBackend schema.DatabaseBackend
	DBConnect string // Please use env var as this is plaintext
	DBSchema  string

	Limit     int
	Months    int
	Synthetic bool // Allow synthesized trends when history is missing

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	Addr            string
	ShutdownTimeout time.Duration
	QueryTimeout    time.Duration

	LogLevel  string
	LogFormat string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Datamart ---
	DBBackend string `mapstructure:"db-backend"`
	DBConnect string `mapstructure:"db-connect"`
	DBSchema  string `mapstructure:"db-schema"`

	// --- Panels ---
	Limit     int    `mapstructure:"limit"`
	Months    int    `mapstructure:"months"`
	Synthetic string `mapstructure:"synthetic"`

	// --- Output ---
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	// --- Server ---
	Addr            string `mapstructure:"addr"`
	ShutdownTimeout string `mapstructure:"shutdown-timeout"`
	QueryTimeout    string `mapstructure:"query-timeout"`

	// --- Logging ---
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processServerConfig(cfg, input); err != nil {
		return err
	}
	return processLogConfig(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfig validates the datamart backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.DBBackend = schema.DatabaseBackend(strings.ToLower(input.DBBackend))
	if cfg.DBBackend == "" {
		cfg.DBBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.DBBackend]; !ok {
		return fmt.Errorf("invalid datamart backend '%s'. must be sqlite, mysql, postgresql, none", input.DBBackend)
	}
	cfg.DBConnect = input.DBConnect
	if err := ValidateDatabaseConnectionString(cfg.DBBackend, cfg.DBConnect); err != nil {
		return err
	}

	cfg.DBSchema = strings.TrimSpace(input.DBSchema)
	if cfg.DBSchema == "" {
		cfg.DBSchema = DefaultSchema
	}
	if !IsIdentifier(cfg.DBSchema) {
		return fmt.Errorf("invalid db-schema '%s'. must contain only letters, digits and underscores", input.DBSchema)
	}
	return nil
}

// validateSimpleInputs processes and validates the panel and output fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	synthetic, err := ParseBoolString(input.Synthetic)
	if err != nil {
		return fmt.Errorf("invalid --synthetic value: %w", err)
	}
	cfg.Synthetic = synthetic

	// --- 1. Limit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.Limit = input.Limit

	// --- 2. Months Validation ---
	if input.Months <= 0 || input.Months > MaxTrendMonths {
		return fmt.Errorf("months must be greater than 0 and cannot exceed %d (received %d)", MaxTrendMonths, input.Months)
	}
	cfg.Months = input.Months

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	if cfg.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", cfg.Width)
	}
	return nil
}

// processServerConfig parses the listen address and the timeouts.
func processServerConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.Addr = input.Addr
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	shutdown, err := parseDurationOr(input.ShutdownTimeout, DefaultShutdownTimeout)
	if err != nil {
		return fmt.Errorf("invalid shutdown-timeout: %w", err)
	}
	cfg.ShutdownTimeout = shutdown

	query, err := parseDurationOr(input.QueryTimeout, DefaultQueryTimeout)
	if err != nil {
		return fmt.Errorf("invalid query-timeout: %w", err)
	}
	cfg.QueryTimeout = query
	return nil
}

// processLogConfig validates the log level and format.
func processLogConfig(cfg *Config, input *ConfigRawInput) error {
	if _, err := ParseLogLevel(input.LogLevel); err != nil {
		return err
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = zerolog.InfoLevel.String()
	}

	cfg.LogFormat = strings.ToLower(input.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = LogFormatConsole
	case LogFormatJSON, LogFormatConsole:
	default:
		return fmt.Errorf("invalid log format '%s'. must be json, console", input.LogFormat)
	}
	return nil
}

// parseDurationOr parses a Go duration and falls back to def for empty input.
func parseDurationOr(s string, def time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive (received %s)", s)
	}
	return d, nil
}
