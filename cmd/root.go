package cmd

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/internal/datamart"
	"github.com/castinsight/castdash/schema"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// logger is the process logger, configured from --log-level and --log-format.
var logger = zerolog.Nop()

// store is the datamart opened by sharedSetup.
var store *datamart.Store

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "castdash",
	Short: "Executive dashboard metrics over a CAST DataMart.",
	Long: `castdash reads the latest CAST Imaging snapshots of your application portfolio
and turns them into health, risk, security and trend panels for the terminal, a REST API
or AI agents.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		contract.LogWarn("Ignoring .env", err)
	}

	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".castdash") // Name of config file (without extension)
		viper.SetConfigType("yaml")      // We'll use YAML format
		viper.AddConfigPath(".")         // Look in the current directory
		viper.AddConfigPath("$HOME")     // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("CASTDASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Deployments configured for the web dashboard keep working unchanged
	legacy := contract.LegacyEnvDefaults(os.Getenv)

	// Set defaults in Viper
	viper.SetDefault("db-backend", cmp.Or(string(legacy.DBBackend), string(schema.SQLiteBackend)))
	viper.SetDefault("db-connect", legacy.DBConnect)
	viper.SetDefault("db-schema", cmp.Or(legacy.DBSchema, contract.DefaultSchema))
	viper.SetDefault("limit", schema.DefaultSummaryLimit)
	viper.SetDefault("months", schema.DefaultTrendMonths)
	viper.SetDefault("synthetic", "yes")
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
	viper.SetDefault("addr", cmp.Or(legacy.Addr, contract.DefaultAddr))
	viper.SetDefault("shutdown-timeout", contract.DefaultShutdownTimeout.String())
	viper.SetDefault("query-timeout", contract.DefaultQueryTimeout.String())
	viper.SetDefault("log-level", zerolog.InfoLevel.String())
	viper.SetDefault("log-format", contract.LogFormatConsole)
}

// loadConfig merges defaults, file, env and flags, then validates them into cfg.
func loadConfig() error {
	// 1. Read config file.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	color.NoColor = !cfg.UseColors
	logger = contract.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	return nil
}

// sharedSetup validates the configuration and opens the datamart.
func sharedSetup(ctx context.Context, _ *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	var err error
	store, err = datamart.Open(ctx, cfg.DBBackend, cfg.DBConnect, cfg.DBSchema, logger)
	if err != nil {
		return fmt.Errorf("failed to open datamart: %w", err)
	}
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// configSetupWrapper validates the configuration without touching the datamart.
// Migrations use it since the tables may not exist yet.
func configSetupWrapper(_ *cobra.Command, _ []string) error {
	return loadConfig()
}

// Execute runs the root command and releases the datamart afterwards.
func Execute() error {
	defer func() {
		if store != nil {
			_ = store.Close()
		}
	}()
	return rootCmd.Execute()
}
