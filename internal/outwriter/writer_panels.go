package outwriter

import (
	"fmt"
	"strconv"

	"github.com/castinsight/castdash/core/classify"
	"github.com/castinsight/castdash/schema"
)

// label returns a metric key as-is for CSV and as a title for tables.
func (f formatter) label(key string) string {
	if f.plain {
		return key
	}
	return headerTitle(key)
}

// keyValueTable builds a two-column metric/value table.
func keyValueTable(f formatter, pairs [][2]string) panelTable {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{f.label(p[0]), p[1]}
	}
	return panelTable{columns: []string{"metric", "value"}, rows: rows}
}

func portfolioTable(m schema.PortfolioMetrics, f formatter) panelTable {
	grade := string(schema.GradeNA)
	if m.TotalApplications > 0 {
		grade = f.letter(classify.GradeFromScore(m.AvgHealthScore))
	}
	t := keyValueTable(f, [][2]string{
		{"total_applications", f.count(m.TotalApplications)},
		{"avg_health_score", f.float(m.AvgHealthScore)},
		{"health_grade", grade},
		{"critical_risk_apps", f.count(m.CriticalRiskApps)},
		{"total_loc", f.count(m.TotalLOC)},
		{"total_technical_debt", f.money(m.TotalTechnicalDebt)},
		{"last_analysis_date", f.date(m.LastAnalysisDate)},
	})
	t.title = "Portfolio"
	return t
}

func riskDistributionTable(buckets []schema.RiskBucket, f formatter) panelTable {
	rows := make([][]string, 0, len(buckets))
	total := 0
	for _, b := range buckets {
		rows = append(rows, []string{f.risk(b.Label), f.count(b.ApplicationCount), b.Color})
		total += b.ApplicationCount
	}
	return panelTable{
		title:   "Risk Distribution",
		columns: []string{"risk_level", "applications", "color"},
		rows:    rows,
		footer:  []string{fmt.Sprintf("%d applications across %d risk tiers", total, len(buckets))},
	}
}

func summariesTable(summaries []schema.ApplicationSummary, f formatter) panelTable {
	rows := make([][]string, 0, len(summaries))
	var debt float64
	for i, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			f.name(s.ApplicationName),
			f.text(s.BusinessUnit),
			f.float(s.HealthScore),
			f.risk(s.RiskLevel),
			f.money(s.TechnicalDebt),
			f.date(s.AnalysisDate),
		})
		debt += s.TechnicalDebt
	}
	return panelTable{
		title:   "Application Summaries",
		columns: []string{"rank", "application_name", "business_unit", "health_score", "risk_level", "technical_debt", "analysis_date"},
		rows:    rows,
		footer:  []string{fmt.Sprintf("Showing %d applications (total technical debt: %s)", len(summaries), f.money(debt))},
	}
}

// synthesizedNote marks series that were generated instead of read from history.
const synthesizedNote = "Synthesized series: the datamart has no dated history for this trend"

func healthTrendTable(trend schema.HealthTrend, f formatter) panelTable {
	rows := make([][]string, 0, len(trend.Points))
	for _, p := range trend.Points {
		rows = append(rows, []string{p.Period, f.float(p.AvgScore)})
	}
	t := panelTable{
		title:   "Health Trend",
		columns: []string{"period", "avg_score"},
		rows:    rows,
	}
	if trend.Synthetic {
		t.footer = append(t.footer, synthesizedNote)
	}
	return t
}

func qualityTrendTable(trend schema.QualityTrend, f formatter) panelTable {
	rows := make([][]string, 0, len(trend.Points))
	for _, p := range trend.Points {
		rows = append(rows, []string{
			p.Period,
			f.float(p.MaintainabilityScore),
			f.float(p.ReliabilityScore),
			f.float(p.SecurityScore),
			f.float(p.PerformanceScore),
		})
	}
	t := panelTable{
		title:   "Code Quality Trend",
		columns: []string{"period", "maintainability", "reliability", "security", "performance"},
		rows:    rows,
	}
	if trend.Synthetic {
		t.footer = append(t.footer, synthesizedNote)
	}
	return t
}

func technologyTable(techs []schema.TechnologyHealth, f formatter) panelTable {
	rows := make([][]string, 0, len(techs))
	for i, tech := range techs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			f.name(tech.TechnologyName),
			f.float(tech.AvgScore),
			f.grade(classify.QualityGrade(tech.AvgScore)),
		})
	}
	return panelTable{
		title:   "Technology Health",
		columns: []string{"rank", "technology", "avg_score", "grade"},
		rows:    rows,
	}
}

func architectureTable(arch schema.ArchitectureComplexity, f formatter) panelTable {
	rows := make([][]string, 0, len(arch.Applications))
	for _, app := range arch.Applications {
		rows = append(rows, []string{
			f.name(app.ApplicationName),
			f.count(app.LinesOfCode),
			f.count(app.Files),
			f.count(app.Artifacts),
			f.count(app.ComplexityScore),
			f.risk(app.ComplexityRating),
			f.float(app.ArchitectureScore),
		})
	}
	sum := arch.Summary
	return panelTable{
		title:   "Architecture Complexity",
		columns: []string{"application_name", "lines_of_code", "files", "artifacts", "complexity_score", "complexity_rating", "architecture_score"},
		rows:    rows,
		footer: []string{
			fmt.Sprintf("%d applications, %s lines of code, avg architecture score %s",
				sum.TotalApplications, f.count(sum.TotalLinesOfCode), f.float(sum.AvgArchitectureScore)),
			fmt.Sprintf("Complexity: %d high, %d medium, %d low",
				sum.HighComplexityApps, sum.MediumComplexityApps, sum.LowComplexityApps),
		},
	}
}

func securityTable(sec schema.SecurityMetrics, f formatter) panelTable {
	rows := make([][]string, 0, len(sec.Applications))
	for _, app := range sec.Applications {
		rows = append(rows, []string{
			f.name(app.ApplicationName),
			f.float(app.SecurityScore),
			f.grade(app.SecurityGrade),
			f.risk(app.RiskLevel),
			f.count(app.CriticalViolations),
			f.count(app.TotalViolations),
		})
	}
	sum := sec.Summary
	return panelTable{
		title:   "Security",
		columns: []string{"application_name", "security_score", "security_grade", "risk_level", "critical_violations", "total_violations"},
		rows:    rows,
		footer: []string{
			fmt.Sprintf("%d applications, avg security score %s, %s critical violations",
				sum.TotalApplications, f.float(sum.AvgSecurityScore), f.count(sum.TotalCriticalViolations)),
			fmt.Sprintf("Risk: %d high, %d medium, %d low",
				sum.HighRiskApplications, sum.MediumRiskApplications, sum.LowRiskApplications),
		},
	}
}

func performanceTable(perf schema.PerformanceMetrics, f formatter) panelTable {
	rows := make([][]string, 0, len(perf.Applications))
	for _, app := range perf.Applications {
		rows = append(rows, []string{
			f.name(app.ApplicationName),
			f.float(app.PerformanceScore),
			f.float(app.EfficiencyScore),
			f.count(app.LinesOfCode),
			f.grade(app.PerformanceRating),
		})
	}
	sum := perf.Summary
	source := "Criterion: " + perf.Criterion
	if perf.Fallback {
		source = "No performance criterion in the datamart, showing low-scoring applications"
	}
	return panelTable{
		title:   "Performance",
		columns: []string{"application_name", "performance_score", "efficiency_score", "lines_of_code", "performance_rating"},
		rows:    rows,
		footer: []string{
			source,
			fmt.Sprintf("%d applications, avg performance %s, avg efficiency %s (poor %d, fair %d, good %d)",
				sum.TotalApplications, f.float(sum.AvgPerformanceScore), f.float(sum.AvgEfficiencyScore),
				sum.PoorPerformanceApps, sum.FairPerformanceApps, sum.GoodPerformanceApps),
		},
	}
}

func applicationsTable(apps []schema.ApplicationRef, f formatter) panelTable {
	rows := make([][]string, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, []string{strconv.Itoa(app.ID), f.name(app.Name), f.date(app.LatestAnalysis)})
	}
	return panelTable{
		title:   "Applications",
		columns: []string{"id", "name", "latest_analysis"},
		rows:    rows,
		footer:  []string{fmt.Sprintf("%d applications with a latest snapshot", len(apps))},
	}
}

func overviewTables(o schema.Overview, f formatter) []panelTable {
	return []panelTable{
		portfolioTable(o.Portfolio, f),
		riskDistributionTable(o.RiskDistribution, f),
		technologyTable(o.TechnologyHealth, f),
		healthTrendTable(o.HealthTrend, f),
	}
}
