package cmd

import (
	"github.com/castinsight/castdash/core"
	"github.com/castinsight/castdash/internal/contract"
	"github.com/spf13/cobra"
)

// runPanel adapts a portfolio executor to a cobra Run function.
func runPanel(execute core.ExecutorFunc, name string) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		if err := execute(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Cannot compute "+name+" panel", err)
		}
	}
}

// portfolioCmd prints the executive portfolio headline.
var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Show the portfolio headline: applications, health, LOC, debt.",
	Long: `Summarize the latest snapshot of every application in the datamart.

Shows:
- Number of applications
- Average health score (Total Quality Index, 1 to 4)
- Total lines of code
- Total technical debt
- Number of critical applications (health below 2.5)

Examples:
  # Portfolio headline from the local datamart
  castdash portfolio

  # Same numbers as JSON for a BI tool
  castdash portfolio --output json --output-file portfolio.json`,
	PreRunE: sharedSetupWrapper,
	Run:     runPanel(core.ExecutePortfolio, "portfolio"),
}

// riskCmd prints the number of applications per risk tier.
var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Show how many applications fall in each risk tier.",
	Long: `Count the applications of the latest snapshot per risk tier.

Tiers follow the health score of each application:
- Critical: below 2.0
- High:     2.0 to 2.5
- Medium:   2.5 to 3.0
- Low:      3.0 and above

Examples:
  castdash risk
  castdash risk --output csv`,
	PreRunE: sharedSetupWrapper,
	Run:     runPanel(core.ExecuteRiskDistribution, "risk distribution"),
}

// appsCmd prints the most recently analyzed applications.
var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "Show the most recently analyzed applications.",
	Long: `List the latest snapshot of each application, newest analysis first.

Each row carries the health score, the derived risk level, lines of code,
technical debt, business unit and analysis date.

Examples:
  # Ten most recent applications
  castdash apps --limit 10

  # Full list as Parquet for DuckDB
  castdash apps --limit 1000 --output parquet --output-file apps.parquet`,
	PreRunE: sharedSetupWrapper,
	Run:     runPanel(core.ExecuteSummaries, "application summaries"),
}

// techCmd prints health per technology.
var techCmd = &cobra.Command{
	Use:   "tech",
	Short: "Show average health per technology.",
	Long: `Group the latest snapshots by technology and average their health.

Each technology gets a quality grade (Good, Fair, Poor).

Examples:
  castdash tech`,
	PreRunE: sharedSetupWrapper,
	Run:     runPanel(core.ExecuteTechnologyHealth, "technology health"),
}

// architectureCmd prints the complexity rating of the largest applications.
var architectureCmd = &cobra.Command{
	Use:   "architecture",
	Short: "Show the largest applications with their weighted complexity.",
	Long: `Rate the largest applications by weighted object complexity.

Complexity weighs high complexity objects three times, medium ones twice and
low ones once. A portfolio summary of all applications follows the list.

Examples:
  castdash architecture`,
	PreRunE: sharedSetupWrapper,
	Run:     runPanel(core.ExecuteArchitecture, "architecture"),
}

// securityCmd prints the weakest applications by security score.
var securityCmd = &cobra.Command{
	Use:   "security",
	Short: "Show applications with the weakest security scores.",
	Long: `List the applications with the lowest Security health factor.

Each row includes the number of critical security violations.

Examples:
  castdash security
  castdash security --output json`,
	PreRunE: sharedSetupWrapper,
	Run:     runPanel(core.ExecuteSecurity, "security"),
}

// performanceCmd prints the weakest applications by performance efficiency.
var performanceCmd = &cobra.Command{
	Use:   "performance",
	Short: "Show applications with the weakest performance efficiency.",
	Long: `List the applications with the lowest performance efficiency score.

The criterion is resolved from the datamart's own criterion names. When no
performance criterion exists, the panel falls back to overall health and says so.

Examples:
  castdash performance`,
	PreRunE: sharedSetupWrapper,
	Run:     runPanel(core.ExecutePerformance, "performance"),
}

// applicationsCmd lists the applications of the datamart.
var applicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "List applications with their id and latest analysis date.",
	Long: `List every application that has a latest snapshot, ordered by name.

Use the id or the name with the app subcommands.

Examples:
  castdash applications
  castdash app health 12`,
	PreRunE: sharedSetupWrapper,
	Run:     runPanel(core.ExecuteApplications, "applications"),
}

// overviewCmd prints the executive panels together.
var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the executive overview in one go.",
	Long: `Compute the portfolio headline, risk distribution, technology health and
health trend concurrently and print them together.

Examples:
  castdash overview
  castdash overview --output csv --output-file overview.csv`,
	PreRunE: sharedSetupWrapper,
	Run:     runPanel(core.ExecuteOverview, "overview"),
}

// trendsCmd groups the monthly trend panels.
var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show monthly health or code quality trends.",
	Long: `Show monthly averages over the last --months months.

When the datamart holds no dated history the series is synthesized around the
current score and flagged as such. Disable with --synthetic no.

Subcommands:
  health  - Total Quality Index per month
  quality - Maintainability, reliability, security and performance per month`,
}

// trendsHealthCmd prints the monthly health series.
var trendsHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show the monthly Total Quality Index.",
	Long: `Average the Total Quality Index per month.

Examples:
  castdash trends health --months 12`,
	PreRunE: sharedSetupWrapper,
	Run:     runPanel(core.ExecuteHealthTrend, "health trend"),
}

// trendsQualityCmd prints the monthly code quality series.
var trendsQualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Show monthly maintainability, reliability, security and performance.",
	Long: `Average the four code quality health factors per month.

Examples:
  castdash trends quality --months 6 --output csv`,
	PreRunE: sharedSetupWrapper,
	Run:     runPanel(core.ExecuteQualityTrend, "code quality trend"),
}
