package contract

import (
	"testing"
	"time"

	"github.com/castinsight/castdash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns the raw input the CLI produces with all defaults applied.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		DBBackend: "sqlite",
		Limit:     50,
		Months:    6,
		Synthetic: "yes",
		Precision: 1,
		Output:    "text",
		Color:     "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError string
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "zero limit", mutate: func(in *ConfigRawInput) { in.Limit = 0 }, expectError: "limit must be greater than 0"},
		{name: "limit above max", mutate: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, expectError: "cannot exceed"},
		{name: "zero months", mutate: func(in *ConfigRawInput) { in.Months = 0 }, expectError: "months must be greater than 0"},
		{name: "months above max", mutate: func(in *ConfigRawInput) { in.Months = MaxTrendMonths + 1 }, expectError: "months"},
		{name: "precision too high", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: "precision must be 1 or 2"},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: "invalid output format"},
		{name: "parquet without file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: "requires --output-file"},
		{name: "negative width", mutate: func(in *ConfigRawInput) { in.Width = -1 }, expectError: "width cannot be negative"},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: "invalid --color value"},
		{name: "invalid synthetic", mutate: func(in *ConfigRawInput) { in.Synthetic = "" }, expectError: "invalid --synthetic value"},
		{name: "invalid backend", mutate: func(in *ConfigRawInput) { in.DBBackend = "oracle" }, expectError: "invalid datamart backend"},
		{name: "mysql without connection", mutate: func(in *ConfigRawInput) { in.DBBackend = "mysql" }, expectError: "db-connect is required"},
		{name: "bad schema name", mutate: func(in *ConfigRawInput) { in.DBSchema = "data; drop" }, expectError: "invalid db-schema"},
		{name: "bad shutdown timeout", mutate: func(in *ConfigRawInput) { in.ShutdownTimeout = "soon" }, expectError: "invalid shutdown-timeout"},
		{name: "negative query timeout", mutate: func(in *ConfigRawInput) { in.QueryTimeout = "-1s" }, expectError: "invalid query-timeout"},
		{name: "bad log level", mutate: func(in *ConfigRawInput) { in.LogLevel = "loud" }, expectError: "invalid log level"},
		{name: "bad log format", mutate: func(in *ConfigRawInput) { in.LogFormat = "xml" }, expectError: "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, schema.SQLiteBackend, cfg.DBBackend)
	assert.Equal(t, DefaultSchema, cfg.DBSchema)
	assert.Equal(t, 50, cfg.Limit)
	assert.Equal(t, 6, cfg.Months)
	assert.True(t, cfg.Synthetic)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.Equal(t, DefaultQueryTimeout, cfg.QueryTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, LogFormatConsole, cfg.LogFormat)
}

func TestProcessAndValidateOverrides(t *testing.T) {
	input := validInput()
	input.DBBackend = "PostgreSQL"
	input.DBConnect = "host=localhost port=5432 user=operator dbname=cast"
	input.DBSchema = "demo_central"
	input.Output = "JSON"
	input.Synthetic = "no"
	input.Addr = "127.0.0.1:9090"
	input.ShutdownTimeout = "3s"
	input.QueryTimeout = "1m"
	input.LogLevel = "DEBUG"
	input.LogFormat = "json"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.PostgreSQLBackend, cfg.DBBackend)
	assert.Equal(t, "demo_central", cfg.DBSchema)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.False(t, cfg.Synthetic)
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, time.Minute, cfg.QueryTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Limit: 10, DBSchema: "datamart"}
	clone := cfg.Clone()
	clone.Limit = 20

	assert.Equal(t, 10, cfg.Limit)
	assert.Equal(t, "datamart", clone.DBSchema)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none empty", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/datamart", false},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/datamart", true},
		{"mysql missing database", schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=cast", false},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=cast", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
