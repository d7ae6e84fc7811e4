package schema

import "time"

// DatamartStatus represents the status of the datamart store.
type DatamartStatus struct {
	Backend          string           `json:"backend"`
	Schema           string           `json:"schema"`
	Connected        bool             `json:"connected"`
	Applications     int              `json:"applications"`
	Snapshots        int              `json:"snapshots"`
	LatestAnalysis   *time.Time       `json:"latest_analysis"`
	MigrationVersion int              `json:"migration_version"`
	TableRows        map[string]int64 `json:"table_rows"`
}

// ApplicationSummaryRecord is the flat columnar form of an application summary.
type ApplicationSummaryRecord struct {
	ApplicationName string
	BusinessUnit    *string
	AnalysisDate    time.Time
	HealthScore     float64
	TechnicalDebt   float64
	RiskLevel       string
}

// HealthScoreRecord is the flat columnar form of one latest health score.
type HealthScoreRecord struct {
	ApplicationName string
	AnalysisDate    time.Time
	Criterion       string
	Score           float64
	ComplianceScore *float64
	Grade           string
}
