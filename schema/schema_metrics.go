package schema

import "time"

// PortfolioMetrics is the executive headline over the latest snapshot of every application.
type PortfolioMetrics struct {
	TotalApplications  int        `json:"total_applications"`
	AvgHealthScore     float64    `json:"avg_health_score"`
	TotalTechnicalDebt float64    `json:"total_technical_debt"`
	TotalLOC           int        `json:"total_loc"`
	CriticalRiskApps   int        `json:"critical_risk_apps"`
	LastAnalysisDate   *time.Time `json:"last_analysis_date"`
}

// RiskBucket is one non-empty tier of the portfolio risk distribution.
type RiskBucket struct {
	Label            RiskLevel `json:"label"`
	ApplicationCount int       `json:"application_count"`
	Color            string    `json:"color"`
}

// ApplicationSummary is one row of the application summaries panel.
type ApplicationSummary struct {
	ApplicationName string     `json:"application_name"`
	HealthScore     float64    `json:"health_score"`
	TechnicalDebt   float64    `json:"technical_debt"`
	AnalysisDate    *time.Time `json:"analysis_date"`
	RiskLevel       RiskLevel  `json:"risk_level"`
	BusinessUnit    *string    `json:"business_unit"`
}

// HealthTrendPoint is the average Total Quality Index of one month.
type HealthTrendPoint struct {
	Period   string  `json:"period"`
	AvgScore float64 `json:"avg_score"`
}

// HealthTrend is a monthly health series. Synthetic is set when the points
// were generated for display continuity instead of read from history.
type HealthTrend struct {
	Points    []HealthTrendPoint `json:"points"`
	Synthetic bool               `json:"synthetic"`
}

// QualityTrendPoint holds the monthly averages of four quality criteria.
type QualityTrendPoint struct {
	Period               string  `json:"period"`
	MaintainabilityScore float64 `json:"maintainability_score"`
	ReliabilityScore     float64 `json:"reliability_score"`
	SecurityScore        float64 `json:"security_score"`
	PerformanceScore     float64 `json:"performance_score"`
}

// QualityTrend is a monthly multi-criterion series.
type QualityTrend struct {
	Points    []QualityTrendPoint `json:"points"`
	Synthetic bool                `json:"synthetic"`
}

// QualityAnchors are the current averages the quality synthesizer starts from.
// A nil field means the datamart had no value for that criterion.
type QualityAnchors struct {
	Maintainability *float64
	Reliability     *float64
	Security        *float64
	Performance     *float64
}

// TechnologyHealth is the average health of applications using one technology.
type TechnologyHealth struct {
	TechnologyName string  `json:"technology_name"`
	AvgScore       float64 `json:"avg_score"`
}

// ArchitectureApp is one application in the architecture complexity panel.
type ArchitectureApp struct {
	ApplicationName   string    `json:"application_name"`
	LinesOfCode       int       `json:"lines_of_code"`
	Files             int       `json:"files"`
	Artifacts         int       `json:"artifacts"`
	ComplexityScore   int       `json:"complexity_score"`
	ArchitectureScore float64   `json:"architecture_score"`
	ComplexityRating  RiskLevel `json:"complexity_rating"`
}

// ArchitectureSummary is computed over every application, not only the listed ones.
type ArchitectureSummary struct {
	TotalApplications    int     `json:"total_applications"`
	TotalLinesOfCode     int     `json:"total_lines_of_code"`
	AvgArchitectureScore float64 `json:"avg_architecture_score"`
	HighComplexityApps   int     `json:"high_complexity_apps"`
	MediumComplexityApps int     `json:"medium_complexity_apps"`
	LowComplexityApps    int     `json:"low_complexity_apps"`
}

// ArchitectureComplexity pairs the full-set summary with the capped application list.
type ArchitectureComplexity struct {
	Summary      ArchitectureSummary `json:"summary"`
	Applications []ArchitectureApp   `json:"applications"`
}

// SecurityApp is one application in the security panel.
type SecurityApp struct {
	ApplicationName    string       `json:"application_name"`
	SecurityScore      float64      `json:"security_score"`
	SecurityGrade      QualityGrade `json:"security_grade"`
	CriticalViolations int          `json:"critical_violations"`
	TotalViolations    int          `json:"total_violations"`
	RiskLevel          RiskLevel    `json:"risk_level"`
}

// SecuritySummary is computed over every application with a security score.
type SecuritySummary struct {
	TotalApplications       int     `json:"total_applications"`
	AvgSecurityScore        float64 `json:"avg_security_score"`
	TotalCriticalViolations int     `json:"total_critical_violations"`
	HighRiskApplications    int     `json:"high_risk_applications"`
	MediumRiskApplications  int     `json:"medium_risk_applications"`
	LowRiskApplications     int     `json:"low_risk_applications"`
}

// SecurityMetrics pairs the security summary with the worst-first application list.
type SecurityMetrics struct {
	Summary      SecuritySummary `json:"summary"`
	Applications []SecurityApp   `json:"applications"`
}

// PerformanceApp is one application in the performance panel.
type PerformanceApp struct {
	ApplicationName   string       `json:"application_name"`
	PerformanceScore  float64      `json:"performance_score"`
	EfficiencyScore   float64      `json:"efficiency_score"`
	LinesOfCode       int          `json:"lines_of_code"`
	PerformanceRating QualityGrade `json:"performance_rating"`
}

// PerformanceSummary aggregates the performance panel.
type PerformanceSummary struct {
	TotalApplications   int     `json:"total_applications"`
	AvgPerformanceScore float64 `json:"avg_performance_score"`
	PoorPerformanceApps int     `json:"poor_performance_apps"`
	FairPerformanceApps int     `json:"fair_performance_apps"`
	GoodPerformanceApps int     `json:"good_performance_apps"`
	AvgEfficiencyScore  float64 `json:"avg_efficiency_score"`
}

// PerformanceMetrics is the performance panel. Criterion is empty and
// Fallback is set when the datamart has no performance-like criterion.
type PerformanceMetrics struct {
	Summary      PerformanceSummary `json:"summary"`
	Applications []PerformanceApp   `json:"applications"`
	Criterion    string             `json:"criterion,omitempty"`
	Fallback     bool               `json:"fallback"`
}

// ApplicationRef identifies an application with a latest snapshot.
type ApplicationRef struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	LatestAnalysis *time.Time `json:"latest_analysis"`
}

// Overview bundles the executive panels rendered together.
type Overview struct {
	Portfolio        PortfolioMetrics   `json:"portfolio"`
	RiskDistribution []RiskBucket       `json:"risk_distribution"`
	TechnologyHealth []TechnologyHealth `json:"technology_health"`
	HealthTrend      HealthTrend        `json:"health_trend"`
}
