// Package appderive computes the per-application panels of the application
// owner view from the rows of one application's latest snapshot.
package appderive

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/castinsight/castdash/core/classify"
	"github.com/castinsight/castdash/schema"
)

// ErrApplicationNotFound is returned when no latest snapshot matches the key.
var ErrApplicationNotFound = fmt.Errorf("application %w", schema.ErrNotFound)

// HealthScorecard builds the scorecard from one row per business criterion.
// Name, debt, size and date come from the first row.
//
// Columns: application_name, business_criterion_name, score, compliance_score,
// technical_debt_total, nb_code_lines, nb_files, analysis_date.
func HealthScorecard(rows []schema.Row) (schema.ApplicationHealth, error) {
	if len(rows) == 0 {
		return schema.ApplicationHealth{}, ErrApplicationNotFound
	}
	first := rows[0]
	out := schema.ApplicationHealth{
		ApplicationName: first.String(schema.ColApplicationName),
		TechnicalDebt:   first.Float(schema.ColTechnicalDebt),
		LinesOfCode:     first.Int(schema.ColCodeLines),
		FilesCount:      first.Int(schema.ColFiles),
		AnalysisDate:    first.TimePtr(schema.ColAnalysisDate),
		HealthScores:    make(map[string]schema.CriterionScore, len(rows)),
		OverallGrade:    schema.GradeNA,
	}
	for _, r := range rows {
		name := r.String(schema.ColCriterion)
		raw := r.Float(schema.ColScore)
		display := raw
		if IsComplianceCriterion(name) {
			display = math.Round(r.Float(schema.ColComplianceScore) * 100)
		}
		out.HealthScores[name] = schema.CriterionScore{
			Score: display,
			Grade: classify.QualityGrade(raw),
		}
	}
	if tqi, ok := out.HealthScores[schema.CriterionTQI]; ok {
		out.OverallScore = tqi.Score
		out.OverallGrade = tqi.Grade
	}
	return out, nil
}

// IsComplianceCriterion reports whether a criterion is shown as a compliance
// percentage rather than a 1-4 score. The marker must be a whole word of the
// name, optionally glued to a standard number ("ISO-5055", "ISO5055"), so
// names like "Comparison" stay scores.
func IsComplianceCriterion(name string) bool {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		rest, ok := strings.CutPrefix(w, schema.ISOMarker)
		if ok && strings.TrimLeftFunc(rest, unicode.IsDigit) == "" {
			return true
		}
	}
	return false
}

// ViolationsByTechnology groups rule violations by technology, keeping the
// order in which technologies first appear. Rows without violations are
// ignored, so an application whose snapshot has none yields an empty
// breakdown. No rows at all means the key matched no snapshot.
//
// Columns: application_name, technology, rule_name, nb_violations,
// critical_contributions.
func ViolationsByTechnology(rows []schema.Row, key schema.ApplicationKey) (schema.ApplicationViolations, error) {
	if len(rows) == 0 {
		return schema.ApplicationViolations{}, ErrApplicationNotFound
	}
	out := schema.ApplicationViolations{
		ApplicationName: key.String(),
		Technologies:    make([]schema.TechnologyViolations, 0),
	}
	for _, r := range rows {
		if name := r.String(schema.ColApplicationName); name != "" {
			out.ApplicationName = name
			break
		}
	}
	index := make(map[string]int)
	for _, r := range rows {
		violations := r.Int(schema.ColViolations)
		if violations <= 0 {
			continue
		}
		tech := r.String(schema.ColTechnology)
		i, ok := index[tech]
		if !ok {
			i = len(out.Technologies)
			index[tech] = i
			out.Technologies = append(out.Technologies, schema.TechnologyViolations{
				Technology: tech,
				Rules:      make([]schema.RuleViolation, 0),
			})
		}
		critical := r.Int(schema.ColCriticalContrib)
		group := &out.Technologies[i]
		group.TotalViolations += violations
		group.CriticalViolations += critical
		group.Rules = append(group.Rules, schema.RuleViolation{
			RulePattern:           r.String(schema.ColRuleName),
			Violations:            violations,
			CriticalContributions: critical,
		})
		out.TotalViolations += violations
	}
	return out, nil
}

// RiskAnalysis rates the source objects of an application. Sizing columns are
// read from the first row; every row is one violation measure (or a single
// row of nulls when the snapshot has none).
//
// Columns: application_name, nb_complexity_high|medium|low, nb_violations,
// critical_contributions.
func RiskAnalysis(rows []schema.Row) (schema.ApplicationRisk, error) {
	if len(rows) == 0 {
		return schema.ApplicationRisk{}, ErrApplicationNotFound
	}
	first := rows[0]
	high := first.Int(schema.ColComplexityHigh)
	medium := first.Int(schema.ColComplexityMedium)
	low := first.Int(schema.ColComplexityLow)
	total := high + medium + low
	weighted := classify.ComplexityScore(high, medium, low)

	var critical, violations int
	for _, r := range rows {
		if r.Float(schema.ColCriticalContrib) > 0 {
			critical++
		}
		violations += r.Int(schema.ColViolations)
	}
	var density float64
	if total > 0 {
		density = classify.Round(float64(violations)/float64(total), 2)
	}

	return schema.ApplicationRisk{
		ApplicationName: first.String(schema.ColApplicationName),
		ComplexityAnalysis: schema.ComplexityAnalysis{
			HighComplexityObjects:   high,
			MediumComplexityObjects: medium,
			LowComplexityObjects:    low,
			TotalObjects:            total,
			ComplexityScore:         weighted,
			RiskLevel:               classify.ComplexityRating(weighted),
		},
		ViolationAnalysis: schema.ViolationAnalysis{
			CriticalViolations: critical,
			TotalViolations:    violations,
			RiskDensity:        density,
		},
		OverallRiskRating: classify.OverallRisk(weighted, critical),
	}, nil
}

// Productivity relates size, debt and quality of an application.
//
// Columns: application_name, nb_code_lines, nb_files, nb_artifacts,
// technical_debt_total, quality_score, analysis_date.
func Productivity(rows []schema.Row) (schema.ApplicationProductivity, error) {
	if len(rows) == 0 {
		return schema.ApplicationProductivity{}, ErrApplicationNotFound
	}
	r := rows[0]
	loc := r.Int(schema.ColCodeLines)
	files := r.Int(schema.ColFiles)
	debt := r.Float(schema.ColTechnicalDebt)
	quality := r.Float(schema.ColQualityScore)

	var perFile int
	if files > 0 {
		perFile = int(math.Round(float64(loc) / float64(files)))
	}
	var ratio float64
	if loc > 0 {
		ratio = classify.Round(debt/float64(loc), 4)
	}
	var efficiency int
	if quality > 0 {
		efficiency = int(math.Round(float64(loc) / 1000 * quality))
	}

	return schema.ApplicationProductivity{
		ApplicationName: r.String(schema.ColApplicationName),
		SizeMetrics: schema.SizeMetrics{
			LinesOfCode:       loc,
			NumberOfFiles:     files,
			NumberOfArtifacts: r.Int(schema.ColArtifacts),
			AvgLinesPerFile:   perFile,
		},
		QualityMetrics: schema.QualityMetrics{
			QualityScore:      quality,
			TechnicalDebt:     debt,
			DebtRatio:         ratio,
			QualityEfficiency: efficiency,
		},
		ProductivityIndicators: schema.ProductivityIndicators{
			CodeDensity:          perFile,
			MaintainabilityIndex: quality,
			TechnicalDebtImpact:  classify.DebtImpact(ratio),
		},
		AnalysisDate: r.TimePtr(schema.ColAnalysisDate),
	}, nil
}

// ISOTrends converts per-snapshot ISO-5055 compliance into percentages, newest
// snapshot first. At most schema.ISOTrendCap points are returned. Every
// snapshot of the application yields a row, so no rows means no application.
//
// Columns: analysis_date, iso_security, iso_maintainability, iso_reliability,
// iso_performance.
func ISOTrends(rows []schema.Row) ([]schema.ISOTrendPoint, error) {
	if len(rows) == 0 {
		return nil, ErrApplicationNotFound
	}
	pct := func(r schema.Row, col string) int {
		return int(math.Round(r.Float(col) * 100))
	}
	dated := make([]schema.Row, len(rows))
	copy(dated, rows)
	sort.SliceStable(dated, func(i, j int) bool {
		ti, _ := dated[i].Time(schema.ColAnalysisDate)
		tj, _ := dated[j].Time(schema.ColAnalysisDate)
		return ti.After(tj)
	})

	out := make([]schema.ISOTrendPoint, 0, min(len(dated), schema.ISOTrendCap))
	for _, r := range dated {
		if len(out) == schema.ISOTrendCap {
			break
		}
		var date string
		if t, ok := r.Time(schema.ColAnalysisDate); ok {
			date = t.Format(time.DateOnly)
		}
		out = append(out, schema.ISOTrendPoint{
			Date:            date,
			Security:        pct(r, schema.ColISOSecurity),
			Maintainability: pct(r, schema.ColISOMaintain),
			Reliability:     pct(r, schema.ColISOReliability),
			Performance:     pct(r, schema.ColISOPerformance),
		})
	}
	return out, nil
}
