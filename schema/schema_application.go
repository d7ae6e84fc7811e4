package schema

import "time"

// CriterionScore is one scorecard line. Score is the display value, which is a
// percentage for ISO criteria; Grade always reflects the raw score.
type CriterionScore struct {
	Score float64      `json:"score"`
	Grade QualityGrade `json:"grade"`
}

// ApplicationHealth is the per-application health scorecard.
type ApplicationHealth struct {
	ApplicationName string                    `json:"application_name"`
	TechnicalDebt   float64                   `json:"technical_debt"`
	LinesOfCode     int                       `json:"lines_of_code"`
	FilesCount      int                       `json:"files_count"`
	AnalysisDate    *time.Time                `json:"analysis_date"`
	HealthScores    map[string]CriterionScore `json:"health_scores"`
	OverallScore    float64                   `json:"overall_score"`
	OverallGrade    QualityGrade              `json:"overall_grade"`
}

// RuleViolation is the rule-level breakdown inside a technology.
type RuleViolation struct {
	RulePattern           string `json:"rule_pattern"`
	Violations            int    `json:"violations"`
	CriticalContributions int    `json:"critical_contributions"`
}

// TechnologyViolations groups the violations of one technology.
type TechnologyViolations struct {
	Technology         string          `json:"technology"`
	TotalViolations    int             `json:"total_violations"`
	CriticalViolations int             `json:"critical_violations"`
	Rules              []RuleViolation `json:"rules"`
}

// ApplicationViolations is the per-application violations panel.
type ApplicationViolations struct {
	ApplicationName string                 `json:"application_name"`
	TotalViolations int                    `json:"total_violations"`
	Technologies    []TechnologyViolations `json:"technologies"`
}

// ComplexityAnalysis describes the complexity buckets of one application.
type ComplexityAnalysis struct {
	HighComplexityObjects   int       `json:"high_complexity_objects"`
	MediumComplexityObjects int       `json:"medium_complexity_objects"`
	LowComplexityObjects    int       `json:"low_complexity_objects"`
	TotalObjects            int       `json:"total_objects"`
	ComplexityScore         int       `json:"complexity_score"`
	RiskLevel               RiskLevel `json:"risk_level"`
}

// ViolationAnalysis describes the violation pressure of one application.
type ViolationAnalysis struct {
	CriticalViolations int     `json:"critical_violations"`
	TotalViolations    int     `json:"total_violations"`
	RiskDensity        float64 `json:"risk_density"`
}

// ApplicationRisk is the per-application source object risk analysis.
type ApplicationRisk struct {
	ApplicationName    string             `json:"application_name"`
	ComplexityAnalysis ComplexityAnalysis `json:"complexity_analysis"`
	ViolationAnalysis  ViolationAnalysis  `json:"violation_analysis"`
	OverallRiskRating  RiskLevel          `json:"overall_risk_rating"`
}

// SizeMetrics are the volume facts of one application.
type SizeMetrics struct {
	LinesOfCode       int `json:"lines_of_code"`
	NumberOfFiles     int `json:"number_of_files"`
	NumberOfArtifacts int `json:"number_of_artifacts"`
	AvgLinesPerFile   int `json:"avg_lines_per_file"`
}

// QualityMetrics relate quality to volume and debt.
type QualityMetrics struct {
	QualityScore      float64 `json:"quality_score"`
	TechnicalDebt     float64 `json:"technical_debt"`
	DebtRatio         float64 `json:"debt_ratio"`
	QualityEfficiency int     `json:"quality_efficiency"`
}

// ProductivityIndicators are the headline productivity signals.
type ProductivityIndicators struct {
	CodeDensity          int       `json:"code_density"`
	MaintainabilityIndex float64   `json:"maintainability_index"`
	TechnicalDebtImpact  RiskLevel `json:"technical_debt_impact"`
}

// ApplicationProductivity is the per-application productivity panel.
type ApplicationProductivity struct {
	ApplicationName        string                 `json:"application_name"`
	SizeMetrics            SizeMetrics            `json:"size_metrics"`
	QualityMetrics         QualityMetrics         `json:"quality_metrics"`
	ProductivityIndicators ProductivityIndicators `json:"productivity_indicators"`
	AnalysisDate           *time.Time             `json:"analysis_date"`
}

// ISOTrendPoint is the ISO-5055 compliance of one snapshot, in percent.
type ISOTrendPoint struct {
	Date            string `json:"date"`
	Security        int    `json:"security"`
	Maintainability int    `json:"maintainability"`
	Reliability     int    `json:"reliability"`
	Performance     int    `json:"performance"`
}

// CWERule is a rule contributing to a CWE finding.
type CWERule struct {
	RuleName       string `json:"rule_name"`
	ViolationCount int    `json:"violation_count"`
}

// CWEFinding is one weakness category in the CWE panel.
type CWEFinding struct {
	CWEID           string    `json:"cwe_id"`
	CWEName         string    `json:"cwe_name"`
	Description     string    `json:"description"`
	Severity        RiskLevel `json:"severity"`
	TotalViolations int       `json:"total_violations"`
	Rules           []CWERule `json:"rules"`
}
