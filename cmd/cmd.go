// Package cmd defines the command-line interface for castdash.
package cmd

import (
	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(portfolioCmd)
	rootCmd.AddCommand(riskCmd)
	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(techCmd)
	rootCmd.AddCommand(architectureCmd)
	rootCmd.AddCommand(securityCmd)
	rootCmd.AddCommand(performanceCmd)
	rootCmd.AddCommand(applicationsCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(appCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(datamartCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the trend subcommands to the parent trends command
	trendsCmd.AddCommand(trendsHealthCmd)
	trendsCmd.AddCommand(trendsQualityCmd)

	// Add the application subcommands to the parent app command
	appCmd.AddCommand(appHealthCmd)
	appCmd.AddCommand(appViolationsCmd)
	appCmd.AddCommand(appRisksCmd)
	appCmd.AddCommand(appProductivityCmd)
	appCmd.AddCommand(appISOCmd)
	appCmd.AddCommand(appCWECmd)

	// Add the datamart subcommands to the parent datamart command
	datamartCmd.AddCommand(datamartMigrateCmd)
	datamartCmd.AddCommand(datamartSeedCmd)
	datamartCmd.AddCommand(datamartStatusCmd)
	datamartCmd.AddCommand(datamartExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("db-backend", string(schema.SQLiteBackend), "Datamart backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("db-connect", "", "Datamart connection string (e.g., host=... dbname=... for postgresql, user:pass@tcp(host:port)/dbname for mysql)")
	rootCmd.PersistentFlags().String("db-schema", contract.DefaultSchema, "PostgreSQL schema holding the datamart tables")
	rootCmd.PersistentFlags().IntP("limit", "l", schema.DefaultSummaryLimit, "Number of applications to display")
	rootCmd.PersistentFlags().IntP("months", "m", schema.DefaultTrendMonths, "Number of months in trend panels")
	rootCmd.PersistentFlags().String("synthetic", "yes", "Synthesize trends when the datamart has no history (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("query-timeout", contract.DefaultQueryTimeout.String(), "Timeout of each datamart query")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", contract.LogFormatConsole, "Log format: console or json")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Listen address of the REST API")
	serveCmd.Flags().String("shutdown-timeout", contract.DefaultShutdownTimeout.String(), "Grace period for in-flight requests on shutdown")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of datamartMigrateCmd to Viper
	datamartMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(datamartMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding datamart migrate flags", err)
	}
}
