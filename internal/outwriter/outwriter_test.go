package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/schema"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func testConfig(mode schema.OutputMode) *contract.Config {
	return &contract.Config{
		DBBackend: schema.SQLiteBackend,
		Precision: 1,
		Output:    mode,
		Width:     200,
	}
}

var analyzed = time.Date(2026, time.September, 15, 9, 30, 0, 0, time.UTC)

func sampleSummaries() []schema.ApplicationSummary {
	return []schema.ApplicationSummary{
		{ApplicationName: "Legacy Billing", BusinessUnit: ptr("Finance"), HealthScore: 1.84, TechnicalDebt: 3240000, AnalysisDate: &analyzed, RiskLevel: schema.RiskCritical},
		{ApplicationName: "HR Self-Service", HealthScore: 2.64, TechnicalDebt: 201000, AnalysisDate: &analyzed, RiskLevel: schema.RiskMedium},
	}
}

func summariesBuilder(s []schema.ApplicationSummary) panelBuilder {
	return func(f formatter) []panelTable { return single(summariesTable(s, f)) }
}

func TestRenderPanel_JSON(t *testing.T) {
	m := schema.PortfolioMetrics{TotalApplications: 6, AvgHealthScore: 2.71, CriticalRiskApps: 2, LastAnalysisDate: &analyzed}
	var buf bytes.Buffer

	err := renderPanel(&buf, testConfig(schema.JSONOut), time.Second, m, func(f formatter) []panelTable {
		return single(portfolioTable(m, f))
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(6), decoded["total_applications"])
	assert.Equal(t, float64(2), decoded["critical_risk_apps"])
	assert.Equal(t, "2026-09-15T09:30:00Z", decoded["last_analysis_date"])
}

func TestPortfolioTable_HealthGrade(t *testing.T) {
	f := formatter{precision: 2, plain: true}

	rows := portfolioTable(schema.PortfolioMetrics{TotalApplications: 6, AvgHealthScore: 2.71}, f).rows
	assert.Contains(t, rows, []string{"health_grade", "C"})

	rows = portfolioTable(schema.PortfolioMetrics{}, f).rows
	assert.Contains(t, rows, []string{"health_grade", "N/A"})
}

func TestRenderPanel_CSV(t *testing.T) {
	var buf bytes.Buffer
	summaries := sampleSummaries()

	err := renderPanel(&buf, testConfig(schema.CSVOut), time.Second, summaries, summariesBuilder(summaries))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "rank,application_name,business_unit,health_score,risk_level,technical_debt,analysis_date", lines[0])
	assert.Equal(t, "1,Legacy Billing,Finance,1.8,Critical,3240000.00,2026-09-15T09:30:00Z", lines[1])
	assert.Equal(t, "2,HR Self-Service,,2.6,Medium,201000.00,2026-09-15T09:30:00Z", lines[2])
}

func TestRenderPanel_Text(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	summaries := sampleSummaries()

	err := renderPanel(&buf, testConfig(schema.TextOut), 42*time.Millisecond, summaries, summariesBuilder(summaries))
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Application Summaries\n"))
	assert.Contains(t, out, "Legacy Billing")
	assert.Contains(t, out, "3,240,000")
	assert.Contains(t, out, "Critical")
	assert.Contains(t, out, "Showing 2 applications (total technical debt: 3,441,000)")
	assert.Contains(t, out, "Panel computed in 42ms. Datamart backend: sqlite")
}

func TestRenderPanel_ParquetUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := renderPanel(&buf, testConfig(schema.ParquetOut), 0, nil, summariesBuilder(nil))
	require.ErrorIs(t, err, ErrParquetUnsupported)

	cfg := testConfig(schema.ParquetOut)
	cfg.OutputFile = filepath.Join(t.TempDir(), "risk.parquet")
	err = NewOutWriter().WriteRiskDistribution(nil, cfg, 0)
	require.ErrorIs(t, err, ErrParquetUnsupported)
}

func TestWriteSummaries_Parquet(t *testing.T) {
	cfg := testConfig(schema.ParquetOut)
	cfg.OutputFile = filepath.Join(t.TempDir(), "summaries.parquet")

	require.NoError(t, NewOutWriter().WriteSummaries(sampleSummaries(), cfg, 0))

	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWritePortfolio_File(t *testing.T) {
	cfg := testConfig(schema.JSONOut)
	cfg.OutputFile = filepath.Join(t.TempDir(), "portfolio.json")

	require.NoError(t, NewOutWriter().WritePortfolio(schema.PortfolioMetrics{TotalApplications: 3}, cfg, 0))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"total_applications": 3`)
}

func TestWriteOverview_CSVSections(t *testing.T) {
	overview := schema.Overview{
		Portfolio:        schema.PortfolioMetrics{TotalApplications: 6},
		RiskDistribution: []schema.RiskBucket{{Label: schema.RiskCritical, ApplicationCount: 1, Color: "#dc3545"}},
		TechnologyHealth: []schema.TechnologyHealth{{TechnologyName: "JEE", AvgScore: 3.1}},
		HealthTrend:      schema.HealthTrend{Points: []schema.HealthTrendPoint{{Period: "2026-09", AvgScore: 2.7}}},
	}
	cfg := testConfig(schema.CSVOut)
	cfg.OutputFile = filepath.Join(t.TempDir(), "overview.csv")

	require.NoError(t, NewOutWriter().WriteOverview(overview, cfg, 0))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	sections := strings.Split(strings.TrimSpace(string(content)), "\n\n")
	require.Len(t, sections, 4)
	assert.True(t, strings.HasPrefix(sections[0], "metric,value\ntotal_applications,6"))
	assert.Equal(t, "risk_level,applications,color\nCritical,1,#dc3545", sections[1])
	assert.Equal(t, "rank,technology,avg_score,grade\n1,JEE,3.1,Good", sections[2])
	assert.Equal(t, "period,avg_score\n2026-09,2.7", sections[3])
}

func TestPanelFooters(t *testing.T) {
	f := formatter{precision: 1, plain: true}

	trend := healthTrendTable(schema.HealthTrend{Synthetic: true}, f)
	assert.Equal(t, []string{synthesizedNote}, trend.footer)

	quality := qualityTrendTable(schema.QualityTrend{}, f)
	assert.Empty(t, quality.footer)

	fallback := performanceTable(schema.PerformanceMetrics{Fallback: true}, f)
	assert.Contains(t, fallback.footer[0], "No performance criterion")

	resolved := performanceTable(schema.PerformanceMetrics{Criterion: schema.CriterionPerformance}, f)
	assert.Equal(t, "Criterion: "+schema.CriterionPerformance, resolved.footer[0])
}

func TestApplicationHealthTable(t *testing.T) {
	f := formatter{precision: 2, plain: true}
	h := schema.ApplicationHealth{
		ApplicationName: "Claims Engine",
		AnalysisDate:    &analyzed,
		HealthScores: map[string]schema.CriterionScore{
			schema.CriterionTQI:      {Score: 2.31, Grade: schema.GradeFair},
			schema.CriterionSecurity: {Score: 2.11, Grade: schema.GradeFair},
		},
		OverallScore: 2.31,
		OverallGrade: schema.GradeFair,
	}

	table := applicationHealthTable(h, f)

	require.Len(t, table.rows, 2)
	assert.Less(t, table.rows[0][0], table.rows[1][0], "criteria are sorted by name")
	assert.Equal(t, "Claims Engine (analyzed 2026-09-15T09:30:00Z)", table.title)
	assert.Equal(t, "Overall: 2.31 (Fair)", table.footer[0])
}

func TestViolationsTable(t *testing.T) {
	f := formatter{precision: 1, plain: true}
	v := schema.ApplicationViolations{
		ApplicationName: "Legacy Billing",
		TotalViolations: 30,
		Technologies: []schema.TechnologyViolations{
			{Technology: "Cobol", TotalViolations: 20, Rules: []schema.RuleViolation{
				{RulePattern: "Avoid GOTO", Violations: 12, CriticalContributions: 4},
				{RulePattern: "Close cursors", Violations: 8},
			}},
			{Technology: "SQL", TotalViolations: 10, Rules: []schema.RuleViolation{
				{RulePattern: "Avoid SELECT *", Violations: 10, CriticalContributions: 2},
			}},
		},
	}

	table := violationsTable(v, f)

	require.Len(t, table.rows, 3)
	assert.Equal(t, []string{"Cobol", "Avoid GOTO", "12", "4"}, table.rows[0])
	assert.Equal(t, []string{"SQL", "Avoid SELECT *", "10", "2"}, table.rows[2])
	assert.Equal(t, "Total violations: 30 across 2 technologies", table.footer[0])
}

func TestISOTrendTable(t *testing.T) {
	f := formatter{plain: true}
	points := []schema.ISOTrendPoint{
		{Date: "2026-09-15", Security: 97, Maintainability: 96, Reliability: 98, Performance: 99},
		{Date: "2026-08-15", Security: 96, Maintainability: 91, Reliability: 97, Performance: 95},
		{Date: "2026-07-15", Security: 88, Maintainability: 92, Reliability: 93, Performance: 94},
	}

	table := isoTrendTable(points, f)

	require.Len(t, table.rows, 3)
	assert.Equal(t, string(schema.ComplianceExcellent), table.rows[0][5])
	assert.Equal(t, string(schema.ComplianceGood), table.rows[1][5])
	assert.Equal(t, string(schema.ComplianceNeedsImprovement), table.rows[2][5])
}

func TestCWETable(t *testing.T) {
	f := formatter{plain: true}
	findings := []schema.CWEFinding{{
		CWEID:           "CWE-89",
		CWEName:         "SQL Injection",
		Severity:        schema.RiskCritical,
		TotalViolations: 5,
		Rules:           []schema.CWERule{{RuleName: "Avoid dynamic SQL", ViolationCount: 3}, {RuleName: "Use bind variables", ViolationCount: 2}},
	}}

	table := cweTable(findings, f)

	require.Len(t, table.rows, 1)
	assert.Equal(t, "Critical", table.rows[0][2])
	assert.Equal(t, "Avoid dynamic SQL (3); Use bind variables (2)", table.rows[0][4])
}

func TestApplicationRiskAndProductivityTables(t *testing.T) {
	f := formatter{precision: 1}
	risk := applicationRiskTable(schema.ApplicationRisk{
		ApplicationName:   "Claims Engine",
		OverallRiskRating: schema.RiskHigh,
	}, f)
	assert.Equal(t, "Claims Engine source object risk", risk.title)
	assert.Equal(t, []string{"metric", "value"}, risk.columns)
	assert.Equal(t, "Overall Risk Rating", risk.rows[len(risk.rows)-1][0])

	productivity := productivityTable(schema.ApplicationProductivity{
		ApplicationName: "Claims Engine",
		SizeMetrics:     schema.SizeMetrics{LinesOfCode: 245000},
	}, f)
	assert.Equal(t, []string{"Lines Of Code", "245,000"}, productivity.rows[0])
	assert.Equal(t, []string{"Analysis Date", "-"}, productivity.rows[len(productivity.rows)-1])
}

func TestWriteStatus(t *testing.T) {
	status := schema.DatamartStatus{Backend: "sqlite", Schema: "datamart", Connected: true, Applications: 6, TableRows: map[string]int64{"dim_snapshots": 24}}

	jsonCfg := testConfig(schema.JSONOut)
	jsonCfg.OutputFile = filepath.Join(t.TempDir(), "status.json")
	require.NoError(t, NewOutWriter().WriteStatus(status, jsonCfg))
	content, err := os.ReadFile(jsonCfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"applications": 6`)

	textCfg := testConfig(schema.TextOut)
	textCfg.OutputFile = filepath.Join(t.TempDir(), "status.txt")
	require.NoError(t, NewOutWriter().WriteStatus(status, textCfg))
	content, err = os.ReadFile(textCfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "dim_snapshots: 24 rows")
}

func TestGetMaxTableNameWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{width: 200, expected: 50},
		{width: 90, expected: 30},
		{width: 60, expected: 15},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetMaxTableNameWidth(&contract.Config{Width: tt.width}))
	}
}
