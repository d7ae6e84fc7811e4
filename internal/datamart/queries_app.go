package datamart

import (
	"context"
	"fmt"

	"github.com/castinsight/castdash/schema"
)

const appHealthQuery = `
	SELECT
		snap.application_name,
		health.business_criterion_name,
		health.score,
		health.compliance_score,
		size.technical_debt_total,
		size.nb_code_lines,
		size.nb_files,
		snap.analysis_date
	FROM {health} health
	JOIN {snap} snap ON health.snapshot_id = snap.snapshot_id
	LEFT JOIN {size} size ON health.snapshot_id = size.snapshot_id
	WHERE snap.is_latest = TRUE
		AND %s
	ORDER BY health.business_criterion_name
`

const appExistsQuery = `
	SELECT COUNT(*) AS snapshots
	FROM {snap} snap
	WHERE snap.is_latest = TRUE
		AND %s
`

// appViolationsQuery starts from the snapshot so that an application without
// violations still yields one row of nulls.
const appViolationsQuery = `
	SELECT
		viol.technology,
		viol.rule_name,
		viol.nb_violations,
		viol.critical_contributions,
		snap.application_name
	FROM {snap} snap
	LEFT JOIN {viol} viol ON snap.snapshot_id = viol.snapshot_id
		AND viol.nb_violations > 0
	WHERE snap.is_latest = TRUE
		AND %s
	ORDER BY viol.technology, viol.nb_violations DESC
`

const appRiskQuery = `
	SELECT
		snap.application_name,
		viol.technology,
		viol.rule_name,
		viol.nb_violations,
		viol.critical_contributions,
		size.nb_complexity_high,
		size.nb_complexity_medium,
		size.nb_complexity_low
	FROM {snap} snap
	LEFT JOIN {viol} viol ON snap.snapshot_id = viol.snapshot_id
	LEFT JOIN {size} size ON snap.snapshot_id = size.snapshot_id
	WHERE snap.is_latest = TRUE
		AND %s
`

const appProductivityQuery = `
	SELECT
		snap.application_name,
		size.nb_code_lines,
		size.nb_files,
		size.nb_artifacts,
		size.technical_debt_total,
		health.score AS quality_score,
		snap.analysis_date
	FROM {snap} snap
	LEFT JOIN {size} size ON snap.snapshot_id = size.snapshot_id
	LEFT JOIN {health} health ON snap.snapshot_id = health.snapshot_id
		AND health.business_criterion_name = '` + schema.CriterionTQI + `'
	WHERE snap.is_latest = TRUE
		AND %s
`

// appISOQuery reads every snapshot, not only the latest one.
const appISOQuery = `
	SELECT
		snap.analysis_date,
		h1.compliance_score AS iso_security,
		h2.compliance_score AS iso_maintainability,
		h3.compliance_score AS iso_reliability,
		h4.compliance_score AS iso_performance
	FROM {snap} snap
	LEFT JOIN {health} h1 ON snap.snapshot_id = h1.snapshot_id
		AND h1.business_criterion_name = '` + schema.CriterionISOSecurity + `'
	LEFT JOIN {health} h2 ON snap.snapshot_id = h2.snapshot_id
		AND h2.business_criterion_name = '` + schema.CriterionISOMaintainability + `'
	LEFT JOIN {health} h3 ON snap.snapshot_id = h3.snapshot_id
		AND h3.business_criterion_name = '` + schema.CriterionISOReliability + `'
	LEFT JOIN {health} h4 ON snap.snapshot_id = h4.snapshot_id
		AND h4.business_criterion_name = '` + schema.CriterionISOPerformance + `'
	WHERE %s
	ORDER BY snap.analysis_date DESC
`

// appQuery runs a per-application query. The key predicate holds the only bind value.
func (s *Store) appQuery(ctx context.Context, query string, key schema.ApplicationKey) ([]schema.Row, error) {
	filter, value := keyFilter(key)
	return s.query(ctx, fmt.Sprintf(query, filter), value)
}

// AppExists implements the Datamart interface.
func (s *Store) AppExists(ctx context.Context, key schema.ApplicationKey) (bool, error) {
	rows, err := s.appQuery(ctx, appExistsQuery, key)
	if err != nil || len(rows) == 0 {
		return false, err
	}
	return rows[0].Int("snapshots") > 0, nil
}

// AppHealthRows implements the Datamart interface.
func (s *Store) AppHealthRows(ctx context.Context, key schema.ApplicationKey) ([]schema.Row, error) {
	return s.appQuery(ctx, appHealthQuery, key)
}

// AppViolationRows implements the Datamart interface.
func (s *Store) AppViolationRows(ctx context.Context, key schema.ApplicationKey) ([]schema.Row, error) {
	return s.appQuery(ctx, appViolationsQuery, key)
}

// AppRiskRows implements the Datamart interface.
func (s *Store) AppRiskRows(ctx context.Context, key schema.ApplicationKey) ([]schema.Row, error) {
	return s.appQuery(ctx, appRiskQuery, key)
}

// AppProductivityRows implements the Datamart interface.
func (s *Store) AppProductivityRows(ctx context.Context, key schema.ApplicationKey) ([]schema.Row, error) {
	return s.appQuery(ctx, appProductivityQuery, key)
}

// AppISORows implements the Datamart interface.
func (s *Store) AppISORows(ctx context.Context, key schema.ApplicationKey) ([]schema.Row, error) {
	return s.appQuery(ctx, appISOQuery, key)
}
