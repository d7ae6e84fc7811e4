package cmd

import (
	"github.com/castinsight/castdash/core"
	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/schema"
	"github.com/spf13/cobra"
)

// runAppPanel resolves the <key> argument and runs a per-application executor.
func runAppPanel(execute core.AppExecutorFunc, name string) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, args []string) {
		key, err := schema.ParseApplicationKey(args[0])
		if err != nil {
			contract.LogFatal("Invalid application", err)
		}
		if err := execute(rootCtx, cfg, store, key); err != nil {
			contract.LogFatal("Cannot compute "+name+" panel", err)
		}
	}
}

// appCmd groups the per-application panels.
var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Drill into one application by id or name.",
	Long: `Show the detailed panels of a single application.

The <key> argument is the numeric application id or the application name.
Input made only of digits is always treated as an id.

Subcommands:
  health       - Health factors, technologies and sizing of the latest snapshot
  violations   - Violations per technology and rule
  risks        - Risk profile derived from health and violations
  productivity - Delivery and debt indicators
  iso          - ISO 5055 compliance over the last snapshots
  cwe          - Common Weakness Enumeration findings

Examples:
  castdash applications
  castdash app health 12
  castdash app violations "Claims Engine"`,
}

var appHealthCmd = &cobra.Command{
	Use:     "health <key>",
	Short:   "Show health factors and sizing of an application.",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAppPanel(core.ExecuteApplicationHealth, "application health"),
}

var appViolationsCmd = &cobra.Command{
	Use:     "violations <key>",
	Short:   "Show violations of an application per technology and rule.",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAppPanel(core.ExecuteApplicationViolations, "application violations"),
}

var appRisksCmd = &cobra.Command{
	Use:     "risks <key>",
	Short:   "Show the risk profile of an application.",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAppPanel(core.ExecuteApplicationRisk, "application risk"),
}

var appProductivityCmd = &cobra.Command{
	Use:     "productivity <key>",
	Short:   "Show delivery and technical debt indicators of an application.",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAppPanel(core.ExecuteApplicationProductivity, "application productivity"),
}

var appISOCmd = &cobra.Command{
	Use:     "iso <key>",
	Short:   "Show ISO 5055 compliance of an application over time.",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAppPanel(core.ExecuteISOTrends, "ISO 5055 trend"),
}

var appCWECmd = &cobra.Command{
	Use:   "cwe <key>",
	Short: "Show CWE findings of an application.",
	Long: `Show Common Weakness Enumeration findings of an application.

The datamart carries no CWE mapping, so the findings are synthesized from a
fixed catalogue and flagged as such.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAppPanel(core.ExecuteCWEFindings, "CWE"),
}
