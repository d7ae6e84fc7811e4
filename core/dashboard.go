package core

import (
	"context"
	"fmt"

	"github.com/castinsight/castdash/core/agg"
	"github.com/castinsight/castdash/core/appderive"
	"github.com/castinsight/castdash/core/synth"
	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/schema"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned when a requested application has no latest snapshot.
var ErrNotFound = schema.ErrNotFound

// Dashboard answers every panel of the dashboard. It fetches rows from the
// datamart, hands them to the aggregation core and falls back to the
// synthesizer when a trend has no history.
type Dashboard struct {
	store contract.Datamart
	synth synth.Provider
	cfg   *contract.Config
}

// NewDashboard wires a dashboard. A nil provider disables synthesized trends.
func NewDashboard(store contract.Datamart, provider synth.Provider, cfg *contract.Config) *Dashboard {
	return &Dashboard{store: store, synth: provider, cfg: cfg}
}

// queryCtx bounds a single datamart round trip with the configured timeout.
func (d *Dashboard) queryCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.cfg == nil || d.cfg.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.cfg.QueryTimeout)
}

// fetch runs one datamart query under the query timeout and wraps its error.
func (d *Dashboard) fetch(ctx context.Context, what string, query func(context.Context) ([]schema.Row, error)) ([]schema.Row, error) {
	qctx, cancel := d.queryCtx(ctx)
	defer cancel()
	rows, err := query(qctx)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", what, err)
	}
	return rows, nil
}

func (d *Dashboard) synthetic() bool {
	return d.synth != nil && d.cfg != nil && d.cfg.Synthetic
}

func (d *Dashboard) limit(requested int) int {
	if requested > 0 {
		return requested
	}
	if d.cfg != nil && d.cfg.Limit > 0 {
		return d.cfg.Limit
	}
	return schema.DefaultSummaryLimit
}

func (d *Dashboard) months(requested int) int {
	if requested > 0 {
		return requested
	}
	if d.cfg != nil && d.cfg.Months > 0 {
		return d.cfg.Months
	}
	return schema.DefaultTrendMonths
}

// Health reports whether the datamart answers.
func (d *Dashboard) Health(ctx context.Context) (bool, error) {
	qctx, cancel := d.queryCtx(ctx)
	defer cancel()
	if err := d.store.Ping(qctx); err != nil {
		return false, fmt.Errorf("ping datamart: %w", err)
	}
	return true, nil
}

// Portfolio returns the executive headline.
func (d *Dashboard) Portfolio(ctx context.Context) (schema.PortfolioMetrics, error) {
	rows, err := d.fetch(ctx, "portfolio", d.store.PortfolioRows)
	if err != nil {
		return schema.PortfolioMetrics{}, err
	}
	return agg.Portfolio(rows), nil
}

// RiskDistribution returns the non-empty risk buckets.
func (d *Dashboard) RiskDistribution(ctx context.Context) ([]schema.RiskBucket, error) {
	rows, err := d.fetch(ctx, "risk distribution", d.store.RiskRows)
	if err != nil {
		return nil, err
	}
	return agg.RiskDistribution(rows), nil
}

// ApplicationSummaries returns the most recently analyzed applications.
// A non-positive limit uses the configured one.
func (d *Dashboard) ApplicationSummaries(ctx context.Context, limit int) ([]schema.ApplicationSummary, error) {
	rows, err := d.fetch(ctx, "application summaries", d.store.SummaryRows)
	if err != nil {
		return nil, err
	}
	return agg.ApplicationSummaries(rows, d.limit(limit)), nil
}

// HealthTrend returns the monthly Total Quality Index series. Without any
// dated history it returns a synthesized series anchored on the current
// average, or an empty series when synthesis is disabled.
func (d *Dashboard) HealthTrend(ctx context.Context, months int) (schema.HealthTrend, error) {
	months = d.months(months)
	rows, err := d.fetch(ctx, "health history", d.store.HealthHistoryRows)
	if err != nil {
		return schema.HealthTrend{}, err
	}
	if points, ok := agg.HealthTrend(rows, months); ok {
		return schema.HealthTrend{Points: points}, nil
	}
	if !d.synthetic() {
		return schema.HealthTrend{Points: []schema.HealthTrendPoint{}}, nil
	}

	latest, err := d.fetch(ctx, "latest criteria", d.store.LatestCriterionRows)
	if err != nil {
		return schema.HealthTrend{}, err
	}
	var anchor *float64
	if avg, ok := agg.CriterionAverage(latest, schema.CriterionTQI); ok {
		anchor = &avg
	}
	return d.synth.HealthTrend(anchor, months), nil
}

// QualityTrend returns the monthly maintainability, reliability, security and
// performance series, synthesized like HealthTrend when history is missing.
func (d *Dashboard) QualityTrend(ctx context.Context, months int) (schema.QualityTrend, error) {
	months = d.months(months)
	rows, err := d.fetch(ctx, "quality history", d.store.QualityHistoryRows)
	if err != nil {
		return schema.QualityTrend{}, err
	}
	if points, ok := agg.QualityTrend(rows, months); ok {
		return schema.QualityTrend{Points: points}, nil
	}
	if !d.synthetic() {
		return schema.QualityTrend{Points: []schema.QualityTrendPoint{}}, nil
	}

	latest, err := d.fetch(ctx, "latest criteria", d.store.LatestCriterionRows)
	if err != nil {
		return schema.QualityTrend{}, err
	}
	return d.synth.QualityTrend(agg.QualityAnchors(latest), months), nil
}

// TechnologyHealth returns the average Total Quality Index per technology.
func (d *Dashboard) TechnologyHealth(ctx context.Context) ([]schema.TechnologyHealth, error) {
	rows, err := d.fetch(ctx, "technology health", d.store.TechnologyRows)
	if err != nil {
		return nil, err
	}
	return agg.TechnologyHealth(rows), nil
}

// ArchitectureComplexity returns the complexity panel.
func (d *Dashboard) ArchitectureComplexity(ctx context.Context) (schema.ArchitectureComplexity, error) {
	rows, err := d.fetch(ctx, "architecture", d.store.ArchitectureRows)
	if err != nil {
		return schema.ArchitectureComplexity{}, err
	}
	return agg.ArchitectureComplexity(rows), nil
}

// SecurityMetrics returns the security panel.
func (d *Dashboard) SecurityMetrics(ctx context.Context) (schema.SecurityMetrics, error) {
	rows, err := d.fetch(ctx, "security", d.store.SecurityRows)
	if err != nil {
		return schema.SecurityMetrics{}, err
	}
	return agg.SecurityMetrics(rows), nil
}

// PerformanceMetrics returns the performance panel. When no performance-like
// criterion exists in the datamart it falls back to the weakest scores of any
// criterion.
func (d *Dashboard) PerformanceMetrics(ctx context.Context) (schema.PerformanceMetrics, error) {
	qctx, cancel := d.queryCtx(ctx)
	names, err := d.store.CriterionNames(qctx)
	cancel()
	if err != nil {
		return schema.PerformanceMetrics{}, fmt.Errorf("query criterion names: %w", err)
	}

	criterion, ok := agg.ResolvePerformanceCriterion(names)
	if !ok {
		rows, err := d.fetch(ctx, "performance fallback", d.store.PerformanceFallbackRows)
		if err != nil {
			return schema.PerformanceMetrics{}, err
		}
		return agg.PerformanceMetrics(rows, true), nil
	}

	rows, err := d.fetch(ctx, "performance", func(qctx context.Context) ([]schema.Row, error) {
		return d.store.PerformanceRows(qctx, criterion)
	})
	if err != nil {
		return schema.PerformanceMetrics{}, err
	}
	out := agg.PerformanceMetrics(rows, false)
	out.Criterion = criterion
	return out, nil
}

// Applications lists the applications that have a latest snapshot.
func (d *Dashboard) Applications(ctx context.Context) ([]schema.ApplicationRef, error) {
	rows, err := d.fetch(ctx, "applications", d.store.ApplicationRows)
	if err != nil {
		return nil, err
	}
	return agg.ListApplications(rows), nil
}

// ApplicationHealth returns the scorecard of one application.
func (d *Dashboard) ApplicationHealth(ctx context.Context, key schema.ApplicationKey) (schema.ApplicationHealth, error) {
	rows, err := d.fetch(ctx, "application health", keyed(d.store.AppHealthRows, key))
	if err != nil {
		return schema.ApplicationHealth{}, err
	}
	out, err := appderive.HealthScorecard(rows)
	if err != nil {
		return out, fmt.Errorf("%w: %s", err, key)
	}
	return out, nil
}

// ApplicationViolations returns the violations of one application by technology.
func (d *Dashboard) ApplicationViolations(ctx context.Context, key schema.ApplicationKey) (schema.ApplicationViolations, error) {
	rows, err := d.fetch(ctx, "application violations", keyed(d.store.AppViolationRows, key))
	if err != nil {
		return schema.ApplicationViolations{}, err
	}
	out, err := appderive.ViolationsByTechnology(rows, key)
	if err != nil {
		return out, fmt.Errorf("%w: %s", err, key)
	}
	return out, nil
}

// ApplicationRisk returns the risk analysis of one application.
func (d *Dashboard) ApplicationRisk(ctx context.Context, key schema.ApplicationKey) (schema.ApplicationRisk, error) {
	rows, err := d.fetch(ctx, "application risks", keyed(d.store.AppRiskRows, key))
	if err != nil {
		return schema.ApplicationRisk{}, err
	}
	out, err := appderive.RiskAnalysis(rows)
	if err != nil {
		return out, fmt.Errorf("%w: %s", err, key)
	}
	return out, nil
}

// ApplicationProductivity returns the productivity panel of one application.
func (d *Dashboard) ApplicationProductivity(ctx context.Context, key schema.ApplicationKey) (schema.ApplicationProductivity, error) {
	rows, err := d.fetch(ctx, "application productivity", keyed(d.store.AppProductivityRows, key))
	if err != nil {
		return schema.ApplicationProductivity{}, err
	}
	out, err := appderive.Productivity(rows)
	if err != nil {
		return out, fmt.Errorf("%w: %s", err, key)
	}
	return out, nil
}

// ISOTrends returns the ISO-5055 compliance history of one application.
func (d *Dashboard) ISOTrends(ctx context.Context, key schema.ApplicationKey) ([]schema.ISOTrendPoint, error) {
	rows, err := d.fetch(ctx, "application iso trends", keyed(d.store.AppISORows, key))
	if err != nil {
		return nil, err
	}
	out, err := appderive.ISOTrends(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, key)
	}
	return out, nil
}

// CWEFindings returns the CWE panel of one application. The datamart has no
// CWE tables, so the findings always come from the synthesizer, and only for
// an application that has a latest snapshot.
func (d *Dashboard) CWEFindings(ctx context.Context, key schema.ApplicationKey) ([]schema.CWEFinding, error) {
	qctx, cancel := d.queryCtx(ctx)
	defer cancel()
	exists, err := d.store.AppExists(qctx, key)
	if err != nil {
		return nil, fmt.Errorf("query application: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", appderive.ErrApplicationNotFound, key)
	}
	if d.synth == nil {
		return []schema.CWEFinding{}, nil
	}
	return d.synth.CWEFindings(key), nil
}

// Overview fetches the executive panels concurrently and fails with the first error.
func (d *Dashboard) Overview(ctx context.Context) (schema.Overview, error) {
	var out schema.Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		portfolio, err := d.Portfolio(gctx)
		out.Portfolio = portfolio
		return err
	})
	g.Go(func() error {
		buckets, err := d.RiskDistribution(gctx)
		out.RiskDistribution = buckets
		return err
	})
	g.Go(func() error {
		techs, err := d.TechnologyHealth(gctx)
		out.TechnologyHealth = techs
		return err
	})
	g.Go(func() error {
		trend, err := d.HealthTrend(gctx, 0)
		out.HealthTrend = trend
		return err
	})

	if err := g.Wait(); err != nil {
		return schema.Overview{}, err
	}
	return out, nil
}

// Status returns information about the configured datamart.
func (d *Dashboard) Status(ctx context.Context) (schema.DatamartStatus, error) {
	qctx, cancel := d.queryCtx(ctx)
	defer cancel()
	status, err := d.store.Status(qctx)
	if err != nil {
		return status, fmt.Errorf("datamart status: %w", err)
	}
	return status, nil
}

// keyed binds an application key to a per-application query.
func keyed(query func(context.Context, schema.ApplicationKey) ([]schema.Row, error), key schema.ApplicationKey) func(context.Context) ([]schema.Row, error) {
	return func(ctx context.Context) ([]schema.Row, error) {
		return query(ctx, key)
	}
}
