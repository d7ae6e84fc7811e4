package cmd

import (
	"os"

	"github.com/castinsight/castdash/core"
	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/internal/datamart"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// datamartCmd focused on datamart management.
//
// Note: migrate only validates the configuration. The other subcommands open
// the datamart like every panel does.
var datamartCmd = &cobra.Command{
	Use:   "datamart",
	Short: "Manage the CAST DataMart used by the panels",
	Long: `Manage the datamart read by every castdash panel.

The production datamart is the PostgreSQL schema populated by CAST Imaging.
A local SQLite datamart can be created and seeded for demos and tests.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (empty panels)

Subcommands:
  migrate - Create or roll back the datamart tables
  seed    - Load a demo portfolio
  status  - Show connection details and row counts
  export  - Export summaries and health scores to Parquet

Examples:
  # Local demo datamart
  castdash datamart migrate
  castdash datamart seed
  castdash portfolio

  # Check the production datamart
  castdash datamart status --db-backend postgresql --db-connect "host=cast dbname=postgres user=operator"`,
}

// datamartMigrateCmd runs the datamart schema migrations.
var datamartMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or roll back the datamart tables",
	Long: `Manage schema versions of a datamart created by castdash.

Never run this against a datamart populated by CAST Imaging: those tables are
owned by the Imaging extraction.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  castdash datamart migrate

  # Rollback to initial state
  castdash datamart migrate --target-version 0`,
	PreRunE: configSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := datamart.Migrate(rootCtx, cfg.DBBackend, cfg.DBConnect, cfg.DBSchema, targetVersion, cmd.OutOrStdout()); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// datamartSeedCmd loads the demo portfolio.
var datamartSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the datamart content with a demo portfolio",
	Long: `Load a deterministic demo portfolio into a migrated datamart.

Every application gets several monthly snapshots so trends have real history.

WARNING: existing rows in the datamart tables are deleted.

Examples:
  castdash datamart migrate && castdash datamart seed`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := store.Seed(rootCtx); err != nil {
			contract.LogFatal("Failed to seed datamart", err)
		}
		cmd.Printf("Seeded %s datamart.\n", cfg.DBBackend)
	},
}

// datamartStatusCmd shows datamart status.
var datamartStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display datamart connection details and row counts",
	Long: `Show the backend, the connection state, the number of applications and
snapshots, the latest analysis date and row counts per table.

Examples:
  castdash datamart status
  castdash datamart status --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStatus(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Failed to get datamart status", err)
		}
	},
}

// datamartExportCmd exports the datamart to Parquet files.
var datamartExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export summaries and health scores to Parquet",
	Long: `Export the latest application summaries and the health scores of every
snapshot to Parquet for BI tools.

Writes <output-file>.summaries.parquet and <output-file>.health_scores.parquet.

Requires: --output-file parameter

Examples:
  castdash datamart export --output-file castdash
  duckdb -c "SELECT * FROM read_parquet('castdash.summaries.parquet') LIMIT 10"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := datamart.ExecuteExport(rootCtx, store, store, cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export datamart", err)
		}
	},
}
