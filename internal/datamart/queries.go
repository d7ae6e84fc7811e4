package datamart

import (
	"context"

	"github.com/castinsight/castdash/schema"
)

const portfolioQuery = `
	SELECT
		snap.application_name,
		health.score,
		size.technical_debt_total,
		size.nb_code_lines,
		snap.analysis_date
	FROM {health} health
	JOIN {size} size ON health.snapshot_id = size.snapshot_id
	JOIN {snap} snap ON health.snapshot_id = snap.snapshot_id
	WHERE snap.is_latest = TRUE
		AND health.business_criterion_name = {p1}
`

const riskQuery = `
	SELECT
		snap.application_name,
		health.score
	FROM {health} health
	JOIN {snap} snap ON health.snapshot_id = snap.snapshot_id
	WHERE snap.is_latest = TRUE
		AND health.business_criterion_name = {p1}
`

const summaryQuery = `
	SELECT
		snap.application_name,
		health.score,
		size.technical_debt_total,
		snap.analysis_date,
		app.{bu} AS business_unit
	FROM {health} health
	JOIN {size} size ON health.snapshot_id = size.snapshot_id
	JOIN {snap} snap ON health.snapshot_id = snap.snapshot_id
	LEFT JOIN {apps} app ON snap.application_name = app.application_name
	WHERE snap.is_latest = TRUE
		AND health.business_criterion_name = {p1}
	ORDER BY snap.analysis_date DESC
`

const summaryNoBusinessUnitQuery = `
	SELECT
		snap.application_name,
		health.score,
		size.technical_debt_total,
		snap.analysis_date
	FROM {health} health
	JOIN {size} size ON health.snapshot_id = size.snapshot_id
	JOIN {snap} snap ON health.snapshot_id = snap.snapshot_id
	WHERE snap.is_latest = TRUE
		AND health.business_criterion_name = {p1}
	ORDER BY snap.analysis_date DESC
`

const technologyQuery = `
	SELECT
		viol.technology,
		health.score
	FROM {viol} viol
	JOIN {snap} snap ON viol.snapshot_id = snap.snapshot_id
	JOIN {health} health ON viol.snapshot_id = health.snapshot_id
		AND health.business_criterion_name = {p1}
	WHERE snap.is_latest = TRUE
`

const architectureQuery = `
	SELECT
		snap.application_name,
		size.nb_code_lines,
		size.nb_files,
		size.nb_artifacts,
		size.nb_complexity_high,
		size.nb_complexity_medium,
		size.nb_complexity_low,
		arch.score AS architecture_score
	FROM {size} size
	JOIN {snap} snap ON size.snapshot_id = snap.snapshot_id
	LEFT JOIN {health} arch ON size.snapshot_id = arch.snapshot_id
		AND arch.business_criterion_name = {p1}
	WHERE snap.is_latest = TRUE
	ORDER BY size.nb_code_lines DESC
`

const securityQuery = `
	SELECT
		snap.application_name,
		sec.score AS security_score,
		COALESCE(viol.total_violations, 0) AS total_violations,
		COALESCE(viol.critical_violations, 0) AS critical_violations
	FROM {health} sec
	JOIN {snap} snap ON sec.snapshot_id = snap.snapshot_id
	LEFT JOIN (
		SELECT
			snapshot_id,
			SUM(nb_violations) AS total_violations,
			SUM(critical_contributions) AS critical_violations
		FROM {viol}
		GROUP BY snapshot_id
	) viol ON sec.snapshot_id = viol.snapshot_id
	WHERE snap.is_latest = TRUE
		AND sec.business_criterion_name = {p1}
	ORDER BY sec.score ASC
`

// criterionNamesQuery puts the canonical performance criterion first so the
// ISO variant never wins the performance probe.
const criterionNamesQuery = `
	SELECT business_criterion_name
	FROM {health}
	GROUP BY business_criterion_name
	ORDER BY CASE WHEN business_criterion_name = {p1} THEN 0 ELSE 1 END, business_criterion_name
`

const performanceQuery = `
	SELECT
		snap.application_name,
		perf.score AS performance_score,
		eff.score AS efficiency_score,
		size.nb_code_lines,
		snap.analysis_date
	FROM {health} perf
	JOIN {snap} snap ON perf.snapshot_id = snap.snapshot_id
	LEFT JOIN {health} eff ON perf.snapshot_id = eff.snapshot_id
		AND eff.business_criterion_name = {p1}
	LEFT JOIN {size} size ON perf.snapshot_id = size.snapshot_id
	WHERE snap.is_latest = TRUE
		AND perf.business_criterion_name = {p2}
	ORDER BY perf.score ASC
`

const performanceFallbackQuery = `
	SELECT
		snap.application_name,
		hs.score AS performance_score,
		NULL AS efficiency_score,
		size.nb_code_lines,
		snap.analysis_date
	FROM {health} hs
	JOIN {snap} snap ON hs.snapshot_id = snap.snapshot_id
	LEFT JOIN {size} size ON hs.snapshot_id = size.snapshot_id
	WHERE snap.is_latest = TRUE
		AND hs.score IS NOT NULL
		AND hs.score < 3
	ORDER BY hs.score ASC
`

const latestCriterionQuery = `
	SELECT
		snap.application_name,
		health.business_criterion_name,
		health.score,
		health.compliance_score,
		snap.analysis_date
	FROM {health} health
	JOIN {snap} snap ON health.snapshot_id = snap.snapshot_id
	WHERE snap.is_latest = TRUE
	ORDER BY snap.application_name, health.business_criterion_name
`

const applicationsQuery = `
	SELECT
		snap.application_id,
		snap.application_name,
		MAX(snap.analysis_date) AS analysis_date
	FROM {snap} snap
	WHERE snap.is_latest = TRUE
	GROUP BY snap.application_name, snap.application_id
	ORDER BY snap.application_name
`

const healthHistoryQuery = `
	SELECT
		snap.application_name,
		snap.analysis_date,
		health.score
	FROM {health} health
	JOIN {snap} snap ON health.snapshot_id = snap.snapshot_id
	WHERE health.business_criterion_name = {p1}
	ORDER BY snap.analysis_date
`

const qualityHistoryQuery = `
	SELECT
		snap.analysis_date,
		maint.score AS maintainability_score,
		rel.score AS reliability_score,
		sec.score AS security_score,
		perf.score AS performance_score
	FROM {snap} snap
	LEFT JOIN {health} maint ON snap.snapshot_id = maint.snapshot_id
		AND maint.business_criterion_name = {p1}
	LEFT JOIN {health} rel ON snap.snapshot_id = rel.snapshot_id
		AND rel.business_criterion_name = {p2}
	LEFT JOIN {health} sec ON snap.snapshot_id = sec.snapshot_id
		AND sec.business_criterion_name = {p3}
	LEFT JOIN {health} perf ON snap.snapshot_id = perf.snapshot_id
		AND perf.business_criterion_name = {p4}
	ORDER BY snap.analysis_date
`

// PortfolioRows implements the Datamart interface.
func (s *Store) PortfolioRows(ctx context.Context) ([]schema.Row, error) {
	return s.query(ctx, portfolioQuery, schema.CriterionTQI)
}

// RiskRows implements the Datamart interface.
func (s *Store) RiskRows(ctx context.Context) ([]schema.Row, error) {
	return s.query(ctx, riskQuery, schema.CriterionTQI)
}

// SummaryRows implements the Datamart interface. Datamarts without an
// application dimension are read again without the business unit.
func (s *Store) SummaryRows(ctx context.Context) ([]schema.Row, error) {
	rows, err := s.query(ctx, summaryQuery, schema.CriterionTQI)
	if err == nil {
		return rows, nil
	}
	s.logger.Warn().Err(err).Msg("summary query with business unit failed, retrying without it")
	return s.query(ctx, summaryNoBusinessUnitQuery, schema.CriterionTQI)
}

// TechnologyRows implements the Datamart interface.
func (s *Store) TechnologyRows(ctx context.Context) ([]schema.Row, error) {
	return s.query(ctx, technologyQuery, schema.CriterionTQI)
}

// ArchitectureRows implements the Datamart interface.
func (s *Store) ArchitectureRows(ctx context.Context) ([]schema.Row, error) {
	return s.query(ctx, architectureQuery, schema.CriterionArchitecture)
}

// SecurityRows implements the Datamart interface.
func (s *Store) SecurityRows(ctx context.Context) ([]schema.Row, error) {
	return s.query(ctx, securityQuery, schema.CriterionSecurity)
}

// CriterionNames implements the Datamart interface.
func (s *Store) CriterionNames(ctx context.Context) ([]string, error) {
	rows, err := s.query(ctx, criterionNamesQuery, schema.CriterionPerformance)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		if name := r.String(schema.ColCriterion); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// PerformanceRows implements the Datamart interface. Efficiency is read from
// the same criterion as performance.
func (s *Store) PerformanceRows(ctx context.Context, criterion string) ([]schema.Row, error) {
	return s.query(ctx, performanceQuery, criterion, criterion)
}

// PerformanceFallbackRows implements the Datamart interface.
func (s *Store) PerformanceFallbackRows(ctx context.Context) ([]schema.Row, error) {
	return s.query(ctx, performanceFallbackQuery)
}

// LatestCriterionRows implements the Datamart interface.
func (s *Store) LatestCriterionRows(ctx context.Context) ([]schema.Row, error) {
	return s.query(ctx, latestCriterionQuery)
}

// ApplicationRows implements the Datamart interface.
func (s *Store) ApplicationRows(ctx context.Context) ([]schema.Row, error) {
	return s.query(ctx, applicationsQuery)
}

// HealthHistoryRows implements the Datamart interface.
func (s *Store) HealthHistoryRows(ctx context.Context) ([]schema.Row, error) {
	return s.query(ctx, healthHistoryQuery, schema.CriterionTQI)
}

// QualityHistoryRows implements the Datamart interface.
func (s *Store) QualityHistoryRows(ctx context.Context) ([]schema.Row, error) {
	return s.query(ctx, qualityHistoryQuery,
		schema.CriterionChangeability,
		schema.CriterionRobustness,
		schema.CriterionSecurity,
		schema.CriterionPerformance,
	)
}
