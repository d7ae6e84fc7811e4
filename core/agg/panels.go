package agg

import (
	"sort"
	"strings"

	"github.com/castinsight/castdash/core/classify"
	"github.com/castinsight/castdash/schema"
)

// ArchitectureComplexity rates every application by weighted object
// complexity. The summary covers all rows; the list is sorted by lines of
// code (largest first) and capped at schema.PanelListCap.
//
// Columns: application_name, nb_code_lines, nb_files, nb_artifacts,
// nb_complexity_high|medium|low, architecture_score.
func ArchitectureComplexity(rows []schema.Row) schema.ArchitectureComplexity {
	apps := make([]schema.ArchitectureApp, 0, len(rows))
	var summary schema.ArchitectureSummary
	var archSum float64

	for _, r := range rows {
		weighted := classify.ComplexityScore(
			r.Int(schema.ColComplexityHigh),
			r.Int(schema.ColComplexityMedium),
			r.Int(schema.ColComplexityLow),
		)
		app := schema.ArchitectureApp{
			ApplicationName:   r.String(schema.ColApplicationName),
			LinesOfCode:       r.Int(schema.ColCodeLines),
			Files:             r.Int(schema.ColFiles),
			Artifacts:         r.Int(schema.ColArtifacts),
			ComplexityScore:   weighted,
			ArchitectureScore: r.Float(schema.ColArchitectureScore),
			ComplexityRating:  classify.ComplexityRating(weighted),
		}
		apps = append(apps, app)

		summary.TotalLinesOfCode += app.LinesOfCode
		archSum += app.ArchitectureScore
		switch app.ComplexityRating {
		case schema.RiskHigh:
			summary.HighComplexityApps++
		case schema.RiskMedium:
			summary.MediumComplexityApps++
		default:
			summary.LowComplexityApps++
		}
	}

	summary.TotalApplications = len(apps)
	if len(apps) > 0 {
		summary.AvgArchitectureScore = classify.Round(archSum/float64(len(apps)), 2)
	}
	sort.SliceStable(apps, func(i, j int) bool { return apps[i].LinesOfCode > apps[j].LinesOfCode })

	return schema.ArchitectureComplexity{
		Summary:      summary,
		Applications: capList(apps, schema.PanelListCap),
	}
}

// SecurityMetrics grades every application on the Security criterion using
// the 3-tier security ladder. The summary covers all rows; the list is sorted
// by score (weakest first) and capped at schema.PanelListCap.
//
// Columns: application_name, security_score, total_violations,
// critical_violations.
func SecurityMetrics(rows []schema.Row) schema.SecurityMetrics {
	apps := make([]schema.SecurityApp, 0, len(rows))
	var summary schema.SecuritySummary
	var scoreSum float64

	for _, r := range rows {
		score := r.Float(schema.ColSecurityScore)
		app := schema.SecurityApp{
			ApplicationName:    r.String(schema.ColApplicationName),
			SecurityScore:      score,
			SecurityGrade:      classify.QualityGrade(score),
			CriticalViolations: r.Int(schema.ColCriticalTotal),
			TotalViolations:    r.Int(schema.ColTotalViolations),
			RiskLevel:          classify.SecurityRisk(score),
		}
		apps = append(apps, app)

		scoreSum += score
		summary.TotalCriticalViolations += app.CriticalViolations
		switch app.RiskLevel {
		case schema.RiskHigh:
			summary.HighRiskApplications++
		case schema.RiskMedium:
			summary.MediumRiskApplications++
		default:
			summary.LowRiskApplications++
		}
	}

	summary.TotalApplications = len(apps)
	if len(apps) > 0 {
		summary.AvgSecurityScore = classify.Round(scoreSum/float64(len(apps)), 2)
	}
	sort.SliceStable(apps, func(i, j int) bool { return apps[i].SecurityScore < apps[j].SecurityScore })

	return schema.SecurityMetrics{
		Summary:      summary,
		Applications: capList(apps, schema.PanelListCap),
	}
}

// ResolvePerformanceCriterion returns the first criterion name that looks like
// a performance measure ("performance" or "efficiency", any case).
func ResolvePerformanceCriterion(names []string) (string, bool) {
	for _, name := range names {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "performance") || strings.Contains(lower, "efficiency") {
			return name, true
		}
	}
	return "", false
}

// PerformanceMetrics rates applications on their performance score.
//
// With fallback false the rows carry the resolved performance criterion and
// the summary covers all of them. With fallback true the rows are any latest
// score below 3, and only the weakest schema.PanelListCap rows are kept and
// summarized. In both modes the list is sorted weakest first.
//
// Columns: application_name, performance_score, efficiency_score (nullable),
// nb_code_lines.
func PerformanceMetrics(rows []schema.Row, fallback bool) schema.PerformanceMetrics {
	apps := make([]schema.PerformanceApp, 0, len(rows))
	for _, r := range rows {
		score := r.Float(schema.ColPerformanceScore)
		apps = append(apps, schema.PerformanceApp{
			ApplicationName:   r.String(schema.ColApplicationName),
			PerformanceScore:  score,
			EfficiencyScore:   r.Float(schema.ColEfficiencyScore),
			LinesOfCode:       r.Int(schema.ColCodeLines),
			PerformanceRating: classify.PerformanceRating(score),
		})
	}
	sort.SliceStable(apps, func(i, j int) bool { return apps[i].PerformanceScore < apps[j].PerformanceScore })
	if fallback {
		apps = capList(apps, schema.PanelListCap)
	}

	var summary schema.PerformanceSummary
	var perfSum, effSum float64
	for _, app := range apps {
		perfSum += app.PerformanceScore
		effSum += app.EfficiencyScore
		switch app.PerformanceRating {
		case schema.GradePoor:
			summary.PoorPerformanceApps++
		case schema.GradeFair:
			summary.FairPerformanceApps++
		default:
			summary.GoodPerformanceApps++
		}
	}
	summary.TotalApplications = len(apps)
	if len(apps) > 0 {
		summary.AvgPerformanceScore = classify.Round(perfSum/float64(len(apps)), 2)
		summary.AvgEfficiencyScore = classify.Round(effSum/float64(len(apps)), 2)
	}

	return schema.PerformanceMetrics{
		Summary:      summary,
		Applications: capList(apps, schema.PanelListCap),
		Fallback:     fallback,
	}
}
