package outwriter

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/castinsight/castdash/core/classify"
	"github.com/castinsight/castdash/schema"
)

func applicationHealthTable(h schema.ApplicationHealth, f formatter) panelTable {
	rows := make([][]string, 0, len(h.HealthScores))
	for _, criterion := range slices.Sorted(maps.Keys(h.HealthScores)) {
		score := h.HealthScores[criterion]
		rows = append(rows, []string{criterion, f.float(score.Score), f.grade(score.Grade)})
	}
	return panelTable{
		title:   fmt.Sprintf("%s (analyzed %s)", h.ApplicationName, f.date(h.AnalysisDate)),
		columns: []string{"criterion", "score", "grade"},
		rows:    rows,
		footer: []string{
			fmt.Sprintf("Overall: %s (%s)", f.float(h.OverallScore), f.grade(h.OverallGrade)),
			fmt.Sprintf("Technical debt: %s, %s lines of code in %s files",
				f.money(h.TechnicalDebt), f.count(h.LinesOfCode), f.count(h.FilesCount)),
		},
	}
}

func violationsTable(v schema.ApplicationViolations, f formatter) panelTable {
	var rows [][]string
	for _, tech := range v.Technologies {
		for _, rule := range tech.Rules {
			rows = append(rows, []string{
				tech.Technology,
				rule.RulePattern,
				f.count(rule.Violations),
				f.count(rule.CriticalContributions),
			})
		}
	}
	return panelTable{
		title:   v.ApplicationName + " violations",
		columns: []string{"technology", "rule_pattern", "violations", "critical_contributions"},
		rows:    rows,
		footer:  []string{fmt.Sprintf("Total violations: %s across %d technologies", f.count(v.TotalViolations), len(v.Technologies))},
	}
}

func applicationRiskTable(r schema.ApplicationRisk, f formatter) panelTable {
	c, v := r.ComplexityAnalysis, r.ViolationAnalysis
	t := keyValueTable(f, [][2]string{
		{"high_complexity_objects", f.count(c.HighComplexityObjects)},
		{"medium_complexity_objects", f.count(c.MediumComplexityObjects)},
		{"low_complexity_objects", f.count(c.LowComplexityObjects)},
		{"total_objects", f.count(c.TotalObjects)},
		{"complexity_score", f.count(c.ComplexityScore)},
		{"complexity_risk", f.risk(c.RiskLevel)},
		{"critical_violations", f.count(v.CriticalViolations)},
		{"total_violations", f.count(v.TotalViolations)},
		{"risk_density", strconv.FormatFloat(v.RiskDensity, 'f', 2, 64)},
		{"overall_risk_rating", f.risk(r.OverallRiskRating)},
	})
	t.title = r.ApplicationName + " source object risk"
	return t
}

func productivityTable(p schema.ApplicationProductivity, f formatter) panelTable {
	s, q, i := p.SizeMetrics, p.QualityMetrics, p.ProductivityIndicators
	t := keyValueTable(f, [][2]string{
		{"lines_of_code", f.count(s.LinesOfCode)},
		{"number_of_files", f.count(s.NumberOfFiles)},
		{"number_of_artifacts", f.count(s.NumberOfArtifacts)},
		{"avg_lines_per_file", f.count(s.AvgLinesPerFile)},
		{"quality_score", f.float(q.QualityScore)},
		{"technical_debt", f.money(q.TechnicalDebt)},
		{"debt_ratio", strconv.FormatFloat(q.DebtRatio, 'f', 2, 64)},
		{"quality_efficiency", f.count(q.QualityEfficiency)},
		{"code_density", f.count(i.CodeDensity)},
		{"maintainability_index", f.float(i.MaintainabilityIndex)},
		{"technical_debt_impact", f.risk(i.TechnicalDebtImpact)},
		{"analysis_date", f.date(p.AnalysisDate)},
	})
	t.title = p.ApplicationName + " productivity"
	return t
}

func isoTrendTable(points []schema.ISOTrendPoint, f formatter) panelTable {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		band, _ := classify.ComplianceBand(float64(min(p.Security, p.Maintainability, p.Reliability, p.Performance)))
		rows = append(rows, []string{
			p.Date,
			f.percent(p.Security),
			f.percent(p.Maintainability),
			f.percent(p.Reliability),
			f.percent(p.Performance),
			string(band),
		})
	}
	return panelTable{
		title:   "ISO-5055 compliance",
		columns: []string{"date", "security", "maintainability", "reliability", "performance", "weakest_band"},
		rows:    rows,
	}
}

func cweTable(findings []schema.CWEFinding, f formatter) panelTable {
	rows := make([][]string, 0, len(findings))
	for _, finding := range findings {
		rules := make([]string, len(finding.Rules))
		for i, rule := range finding.Rules {
			rules[i] = fmt.Sprintf("%s (%d)", rule.RuleName, rule.ViolationCount)
		}
		rows = append(rows, []string{
			finding.CWEID,
			finding.CWEName,
			f.risk(finding.Severity),
			f.count(finding.TotalViolations),
			strings.Join(rules, "; "),
		})
	}
	return panelTable{
		title:   "CWE findings",
		columns: []string{"cwe_id", "cwe_name", "severity", "total_violations", "rules"},
		rows:    rows,
	}
}
