package schema

// Custom string types for type safety.
type (
	// RiskLevel represents a qualitative risk tier.
	RiskLevel string

	// Grade represents a letter grade on the A-F ladder.
	Grade string

	// QualityGrade represents a grade on the Good/Fair/Poor ladder.
	QualityGrade string

	// Compliance represents a compliance band for percentage scores.
	Compliance string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend holding the datamart.
	DatabaseBackend string
)

// Risk tiers. The 4-tier portfolio ladder uses all four values, the 3-tier
// security ladder never produces RiskCritical.
const (
	RiskCritical RiskLevel = "Critical"
	RiskHigh     RiskLevel = "High"
	RiskMedium   RiskLevel = "Medium"
	RiskLow      RiskLevel = "Low"
)

// Letter grades.
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Quality grades. GradeNA is only used when a scorecard has no overall criterion.
const (
	GradeGood QualityGrade = "Good"
	GradeFair QualityGrade = "Fair"
	GradePoor QualityGrade = "Poor"
	GradeNA   QualityGrade = "N/A"
)

// Compliance bands.
const (
	ComplianceExcellent        Compliance = "Excellent"
	ComplianceGood             Compliance = "Good"
	ComplianceNeedsImprovement Compliance = "NeedsImprovement"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All datamart backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Business criterion names as they appear in APP_HEALTH_SCORES.
const (
	CriterionTQI           = "Total Quality Index"
	CriterionArchitecture  = "Architectural Design"
	CriterionSecurity      = "Security"
	CriterionChangeability = "Changeability"
	CriterionRobustness    = "Robustness"
	CriterionPerformance   = "Performance Efficiency"

	CriterionISOSecurity        = "ISO-5055-Security"
	CriterionISOMaintainability = "ISO-5055-Maintainability"
	CriterionISOReliability     = "ISO-5055-Reliability"
	CriterionISOPerformance     = "ISO-5055-Performance-Efficiency"
)

// ISOMarker is the case-insensitive word that marks a compliance-style criterion.
const ISOMarker = "iso"

// Column names shared by the datamart queries and the aggregation core.
const (
	ColSnapshotID        = "snapshot_id"
	ColApplicationID     = "application_id"
	ColApplicationName   = "application_name"
	ColAnalysisDate      = "analysis_date"
	ColCriterion         = "business_criterion_name"
	ColScore             = "score"
	ColComplianceScore   = "compliance_score"
	ColHealthScore       = "health_score"
	ColTechnicalDebt     = "technical_debt_total"
	ColCodeLines         = "nb_code_lines"
	ColFiles             = "nb_files"
	ColArtifacts         = "nb_artifacts"
	ColComplexityHigh    = "nb_complexity_high"
	ColComplexityMedium  = "nb_complexity_medium"
	ColComplexityLow     = "nb_complexity_low"
	ColTechnology        = "technology"
	ColRuleName          = "rule_name"
	ColViolations        = "nb_violations"
	ColCriticalContrib   = "critical_contributions"
	ColBusinessUnit      = "business_unit"
	ColArchitectureScore = "architecture_score"
	ColSecurityScore     = "security_score"
	ColTotalViolations   = "total_violations"
	ColCriticalTotal     = "critical_violations"
	ColPerformanceScore  = "performance_score"
	ColMaintainScore     = "maintainability_score"
	ColReliabilityScore  = "reliability_score"
	ColEfficiencyScore   = "efficiency_score"
	ColQualityScore      = "quality_score"
	ColISOSecurity       = "iso_security"
	ColISOMaintain       = "iso_maintainability"
	ColISOReliability    = "iso_reliability"
	ColISOPerformance    = "iso_performance"
)

// Display colors shared by the dashboard panels.
const (
	ColorCritical = "#ef4444"
	ColorHigh     = "#f97316"
	ColorMedium   = "#f59e0b"
	ColorLow      = "#10b981"
	ColorUnknown  = "#60a5fa"

	ColorExcellent        = "green"
	ColorGood             = "purple"
	ColorNeedsImprovement = "red"
)

// Panel limits and defaults.
const (
	DefaultSummaryLimit = 50
	DefaultTrendMonths  = 6
	PanelListCap        = 20
	ISOTrendCap         = 10
)

// AllRiskLevels lists the 4-tier ladder from worst to best.
var AllRiskLevels = []RiskLevel{RiskCritical, RiskHigh, RiskMedium, RiskLow}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid datamart backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
