package agg

import (
	_ "embed"
	"encoding/json"
	"testing"
	"time"

	"github.com/castinsight/castdash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/latest_portfolio.json
var latestPortfolioFixture []byte

func loadRows(t *testing.T, raw []byte) []schema.Row {
	t.Helper()
	var rows []schema.Row
	require.NoError(t, json.Unmarshal(raw, &rows))
	return rows
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPortfolio(t *testing.T) {
	got := Portfolio(loadRows(t, latestPortfolioFixture))

	assert.Equal(t, 5, got.TotalApplications)
	assert.Equal(t, 2.74, got.AvgHealthScore)
	assert.Equal(t, 145861.5, got.TotalTechnicalDebt)
	assert.Equal(t, 987000, got.TotalLOC)
	assert.Equal(t, 2, got.CriticalRiskApps)
	require.NotNil(t, got.LastAnalysisDate)
	assert.True(t, day(2024, 5, 28).Equal(*got.LastAnalysisDate))
}

func TestPortfolioEmpty(t *testing.T) {
	got := Portfolio(nil)
	assert.Equal(t, schema.PortfolioMetrics{}, got)
	assert.Nil(t, got.LastAnalysisDate)
}

func TestPortfolioCriticalThresholdIsLooserThanClassifier(t *testing.T) {
	// 2.2 is High on the risk ladder but still counts as critical in the headline.
	rows := []schema.Row{
		{schema.ColApplicationName: "A", schema.ColScore: 2.2},
		{schema.ColApplicationName: "B", schema.ColScore: 2.5},
	}
	assert.Equal(t, 1, Portfolio(rows).CriticalRiskApps)
}

func TestPortfolioCountsDistinctApplications(t *testing.T) {
	rows := []schema.Row{
		{schema.ColApplicationName: "A", schema.ColScore: 3.0, schema.ColCodeLines: 10},
		{schema.ColApplicationName: "A", schema.ColScore: 2.0, schema.ColCodeLines: 5},
		{schema.ColApplicationName: "B", schema.ColScore: nil},
	}
	got := Portfolio(rows)
	assert.Equal(t, 2, got.TotalApplications)
	assert.Equal(t, 2.5, got.AvgHealthScore)
	assert.Equal(t, 15, got.TotalLOC)
}

func TestRiskDistribution(t *testing.T) {
	got := RiskDistribution(loadRows(t, latestPortfolioFixture))
	assert.Equal(t, []schema.RiskBucket{
		{Label: schema.RiskCritical, ApplicationCount: 1, Color: "#ef4444"},
		{Label: schema.RiskHigh, ApplicationCount: 1, Color: "#f97316"},
		{Label: schema.RiskMedium, ApplicationCount: 1, Color: "#f59e0b"},
		{Label: schema.RiskLow, ApplicationCount: 2, Color: "#10b981"},
	}, got)
}

func TestRiskDistributionOmitsEmptyBuckets(t *testing.T) {
	rows := []schema.Row{{schema.ColScore: 3.9}, {schema.ColScore: 1.1}, {schema.ColScore: nil}}
	got := RiskDistribution(rows)
	require.Len(t, got, 2)
	assert.Equal(t, schema.RiskCritical, got[0].Label)
	assert.Equal(t, schema.RiskLow, got[1].Label)
	assert.Empty(t, RiskDistribution(nil))
}

func TestApplicationSummaries(t *testing.T) {
	rows := loadRows(t, latestPortfolioFixture)

	all := ApplicationSummaries(rows, 0)
	require.Len(t, all, 5)
	names := make([]string, 0, len(all))
	for _, s := range all {
		names = append(names, s.ApplicationName)
	}
	assert.Equal(t, []string{"Claims", "Billing", "Ledger", "Portal", "Mobile"}, names)

	assert.Equal(t, schema.RiskHigh, all[0].RiskLevel)
	require.NotNil(t, all[0].BusinessUnit)
	assert.Equal(t, "Insurance", *all[0].BusinessUnit)
	assert.Nil(t, all[3].BusinessUnit)

	top := ApplicationSummaries(rows, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Claims", top[0].ApplicationName)
	assert.Equal(t, "Billing", top[1].ApplicationName)
}

func TestApplicationSummariesKeepsMostRecentRow(t *testing.T) {
	rows := []schema.Row{
		{schema.ColApplicationName: "A", schema.ColScore: 2.0, schema.ColAnalysisDate: day(2024, 1, 1)},
		{schema.ColApplicationName: "A", schema.ColScore: 3.4, schema.ColAnalysisDate: day(2024, 2, 1)},
		{schema.ColApplicationName: "A", schema.ColScore: 1.0, schema.ColAnalysisDate: day(2023, 12, 1)},
	}
	got := ApplicationSummaries(rows, -1)
	require.Len(t, got, 1)
	assert.Equal(t, 3.4, got[0].HealthScore)
	assert.Equal(t, schema.RiskLow, got[0].RiskLevel)
}

func TestApplicationSummariesDefaultLimit(t *testing.T) {
	rows := make([]schema.Row, 0, 60)
	for i := range 60 {
		rows = append(rows, schema.Row{
			schema.ColApplicationName: string(rune('A'+i%26)) + string(rune('a'+i/26)),
			schema.ColAnalysisDate:    day(2024, 1, 1).AddDate(0, 0, i),
		})
	}
	assert.Len(t, ApplicationSummaries(rows, 0), schema.DefaultSummaryLimit)
}

func TestTechnologyHealthOrdering(t *testing.T) {
	rows := []schema.Row{
		{schema.ColTechnology: "Cobol", schema.ColScore: 1.2},
		{schema.ColTechnology: "JEE", schema.ColScore: 3.8},
		{schema.ColTechnology: ".NET", schema.ColScore: 2.5},
	}
	got := TechnologyHealth(rows)
	require.Len(t, got, 3)
	assert.Equal(t, []float64{3.8, 2.5, 1.2}, []float64{got[0].AvgScore, got[1].AvgScore, got[2].AvgScore})
	assert.Equal(t, "JEE", got[0].TechnologyName)
}

func TestTechnologyHealthAveragesRows(t *testing.T) {
	rows := []schema.Row{
		{schema.ColTechnology: "JEE", schema.ColScore: 3.0},
		{schema.ColTechnology: "JEE", schema.ColScore: 2.0},
		{schema.ColTechnology: "JEE", schema.ColScore: nil},
	}
	got := TechnologyHealth(rows)
	require.Len(t, got, 1)
	assert.Equal(t, 2.5, got[0].AvgScore)
}

func TestListApplications(t *testing.T) {
	rows := []schema.Row{
		{schema.ColApplicationID: int64(7), schema.ColApplicationName: "Zeta", schema.ColAnalysisDate: day(2024, 3, 1)},
		{schema.ColApplicationID: int64(2), schema.ColApplicationName: "Alpha", schema.ColAnalysisDate: day(2024, 1, 1)},
		{schema.ColApplicationID: int64(2), schema.ColApplicationName: "Alpha", schema.ColAnalysisDate: day(2024, 4, 1)},
		{schema.ColApplicationID: int64(9), schema.ColApplicationName: "Mid", schema.ColAnalysisDate: nil},
	}
	got := ListApplications(rows)
	require.Len(t, got, 3)
	assert.Equal(t, "Alpha", got[0].Name)
	assert.Equal(t, 2, got[0].ID)
	require.NotNil(t, got[0].LatestAnalysis)
	assert.True(t, day(2024, 4, 1).Equal(*got[0].LatestAnalysis))
	assert.Equal(t, "Mid", got[1].Name)
	assert.Nil(t, got[1].LatestAnalysis)
	assert.Equal(t, "Zeta", got[2].Name)
}

func TestCriterionAverage(t *testing.T) {
	rows := []schema.Row{
		{schema.ColCriterion: schema.CriterionTQI, schema.ColScore: 3.0},
		{schema.ColCriterion: schema.CriterionTQI, schema.ColScore: 2.0},
		{schema.ColCriterion: schema.CriterionSecurity, schema.ColScore: 1.0},
		{schema.ColCriterion: schema.CriterionTQI, schema.ColScore: nil},
	}
	avg, ok := CriterionAverage(rows, schema.CriterionTQI)
	assert.True(t, ok)
	assert.Equal(t, 2.5, avg)

	_, ok = CriterionAverage(rows, schema.CriterionRobustness)
	assert.False(t, ok)
}
