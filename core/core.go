// Package core answers the dashboard panels. It fetches datamart rows, hands
// them to the aggregation packages and prints the results.
package core

import (
	"context"
	"time"

	"github.com/castinsight/castdash/core/synth"
	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/internal/outwriter"
	"github.com/castinsight/castdash/schema"
)

// ExecutorFunc defines the function signature for executing a portfolio panel.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, store contract.Datamart) error

// AppExecutorFunc defines the function signature for executing a per-application panel.
type AppExecutorFunc func(ctx context.Context, cfg *contract.Config, store contract.Datamart, key schema.ApplicationKey) error

// newDashboardFor builds the dashboard used by the CLI executors.
func newDashboardFor(cfg *contract.Config, store contract.Datamart) *Dashboard {
	return NewDashboard(store, synth.NewRandom(), cfg)
}

// execute computes one panel and prints it with its writer method.
func execute[T any](
	ctx context.Context,
	cfg *contract.Config,
	store contract.Datamart,
	panel func(*Dashboard, context.Context) (T, error),
	write func(*outwriter.OutWriter, T, *contract.Config, time.Duration) error,
) error {
	start := time.Now()
	result, err := panel(newDashboardFor(cfg, store), ctx)
	if err != nil {
		return err
	}
	return write(outwriter.NewOutWriter(), result, cfg, time.Since(start))
}

// keyedPanel binds an application key to a per-application dashboard method.
func keyedPanel[T any](key schema.ApplicationKey, panel func(*Dashboard, context.Context, schema.ApplicationKey) (T, error)) func(*Dashboard, context.Context) (T, error) {
	return func(d *Dashboard, ctx context.Context) (T, error) {
		return panel(d, ctx, key)
	}
}

// ExecutePortfolio prints the executive portfolio headline.
func ExecutePortfolio(ctx context.Context, cfg *contract.Config, store contract.Datamart) error {
	return execute(ctx, cfg, store, (*Dashboard).Portfolio, (*outwriter.OutWriter).WritePortfolio)
}

// ExecuteRiskDistribution prints the portfolio risk tiers.
func ExecuteRiskDistribution(ctx context.Context, cfg *contract.Config, store contract.Datamart) error {
	return execute(ctx, cfg, store, (*Dashboard).RiskDistribution, (*outwriter.OutWriter).WriteRiskDistribution)
}

// ExecuteSummaries prints the most recently analyzed applications, up to cfg.Limit.
func ExecuteSummaries(ctx context.Context, cfg *contract.Config, store contract.Datamart) error {
	summaries := func(d *Dashboard, ctx context.Context) ([]schema.ApplicationSummary, error) {
		return d.ApplicationSummaries(ctx, cfg.Limit)
	}
	return execute(ctx, cfg, store, summaries, (*outwriter.OutWriter).WriteSummaries)
}

// ExecuteHealthTrend prints the monthly health series over cfg.Months.
func ExecuteHealthTrend(ctx context.Context, cfg *contract.Config, store contract.Datamart) error {
	trend := func(d *Dashboard, ctx context.Context) (schema.HealthTrend, error) {
		return d.HealthTrend(ctx, cfg.Months)
	}
	return execute(ctx, cfg, store, trend, (*outwriter.OutWriter).WriteHealthTrend)
}

// ExecuteQualityTrend prints the monthly code quality series over cfg.Months.
func ExecuteQualityTrend(ctx context.Context, cfg *contract.Config, store contract.Datamart) error {
	trend := func(d *Dashboard, ctx context.Context) (schema.QualityTrend, error) {
		return d.QualityTrend(ctx, cfg.Months)
	}
	return execute(ctx, cfg, store, trend, (*outwriter.OutWriter).WriteQualityTrend)
}

// ExecuteTechnologyHealth prints the average health per technology.
func ExecuteTechnologyHealth(ctx context.Context, cfg *contract.Config, store contract.Datamart) error {
	return execute(ctx, cfg, store, (*Dashboard).TechnologyHealth, (*outwriter.OutWriter).WriteTechnologyHealth)
}

// ExecuteArchitecture prints the architecture complexity panel.
func ExecuteArchitecture(ctx context.Context, cfg *contract.Config, store contract.Datamart) error {
	return execute(ctx, cfg, store, (*Dashboard).ArchitectureComplexity, (*outwriter.OutWriter).WriteArchitecture)
}

// ExecuteSecurity prints the security panel.
func ExecuteSecurity(ctx context.Context, cfg *contract.Config, store contract.Datamart) error {
	return execute(ctx, cfg, store, (*Dashboard).SecurityMetrics, (*outwriter.OutWriter).WriteSecurity)
}

// ExecutePerformance prints the performance panel.
func ExecutePerformance(ctx context.Context, cfg *contract.Config, store contract.Datamart) error {
	return execute(ctx, cfg, store, (*Dashboard).PerformanceMetrics, (*outwriter.OutWriter).WritePerformance)
}

// ExecuteApplications prints the applications with a latest snapshot.
func ExecuteApplications(ctx context.Context, cfg *contract.Config, store contract.Datamart) error {
	return execute(ctx, cfg, store, (*Dashboard).Applications, (*outwriter.OutWriter).WriteApplications)
}

// ExecuteOverview prints the executive panels, fetched concurrently.
func ExecuteOverview(ctx context.Context, cfg *contract.Config, store contract.Datamart) error {
	return execute(ctx, cfg, store, (*Dashboard).Overview, (*outwriter.OutWriter).WriteOverview)
}

// ExecuteApplicationHealth prints the health scorecard of one application.
func ExecuteApplicationHealth(ctx context.Context, cfg *contract.Config, store contract.Datamart, key schema.ApplicationKey) error {
	return execute(ctx, cfg, store, keyedPanel(key, (*Dashboard).ApplicationHealth), (*outwriter.OutWriter).WriteApplicationHealth)
}

// ExecuteApplicationViolations prints the violations of one application.
func ExecuteApplicationViolations(ctx context.Context, cfg *contract.Config, store contract.Datamart, key schema.ApplicationKey) error {
	return execute(ctx, cfg, store, keyedPanel(key, (*Dashboard).ApplicationViolations), (*outwriter.OutWriter).WriteApplicationViolations)
}

// ExecuteApplicationRisk prints the source object risk analysis of one application.
func ExecuteApplicationRisk(ctx context.Context, cfg *contract.Config, store contract.Datamart, key schema.ApplicationKey) error {
	return execute(ctx, cfg, store, keyedPanel(key, (*Dashboard).ApplicationRisk), (*outwriter.OutWriter).WriteApplicationRisk)
}

// ExecuteApplicationProductivity prints the productivity panel of one application.
func ExecuteApplicationProductivity(ctx context.Context, cfg *contract.Config, store contract.Datamart, key schema.ApplicationKey) error {
	return execute(ctx, cfg, store, keyedPanel(key, (*Dashboard).ApplicationProductivity), (*outwriter.OutWriter).WriteApplicationProductivity)
}

// ExecuteISOTrends prints the ISO-5055 compliance history of one application.
func ExecuteISOTrends(ctx context.Context, cfg *contract.Config, store contract.Datamart, key schema.ApplicationKey) error {
	return execute(ctx, cfg, store, keyedPanel(key, (*Dashboard).ISOTrends), (*outwriter.OutWriter).WriteISOTrends)
}

// ExecuteCWEFindings prints the CWE weakness categories of one application.
func ExecuteCWEFindings(ctx context.Context, cfg *contract.Config, store contract.Datamart, key schema.ApplicationKey) error {
	return execute(ctx, cfg, store, keyedPanel(key, (*Dashboard).CWEFindings), (*outwriter.OutWriter).WriteCWEFindings)
}

// ExecuteStatus prints the status of the configured datamart.
func ExecuteStatus(ctx context.Context, cfg *contract.Config, store contract.Datamart) error {
	status, err := newDashboardFor(cfg, store).Status(ctx)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteStatus(status, cfg)
}
