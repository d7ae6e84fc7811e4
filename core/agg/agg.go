// Package agg turns materialized datamart rows into the portfolio panels of
// the dashboard. Aggregators never fail: missing or unparsable values degrade
// to 0, nil or empty results.
//
// Each aggregator documents the columns it reads. Rows are expected to come
// from the latest snapshot of each application unless stated otherwise.
package agg

import (
	"sort"
	"time"

	"github.com/castinsight/castdash/core/classify"
	"github.com/castinsight/castdash/schema"
)

// portfolioCriticalThreshold is the Portfolio headline's own "critical" cut-off.
// It is deliberately looser than the Critical tier of RiskLevelFromScore.
const portfolioCriticalThreshold = 2.5

// Portfolio computes the executive headline.
//
// Columns: application_name, score (Total Quality Index), technical_debt_total,
// nb_code_lines, analysis_date.
func Portfolio(rows []schema.Row) schema.PortfolioMetrics {
	var (
		out      schema.PortfolioMetrics
		apps     = make(map[string]struct{})
		sum      float64
		scored   int
		debt     float64
		lastSeen time.Time
	)
	for _, r := range rows {
		apps[r.String(schema.ColApplicationName)] = struct{}{}
		if !r.IsNull(schema.ColScore) {
			s := r.Float(schema.ColScore)
			sum += s
			scored++
			if s < portfolioCriticalThreshold {
				out.CriticalRiskApps++
			}
		}
		debt += r.Float(schema.ColTechnicalDebt)
		out.TotalLOC += r.Int(schema.ColCodeLines)
		if t, ok := r.Time(schema.ColAnalysisDate); ok && t.After(lastSeen) {
			lastSeen = t
		}
	}
	out.TotalApplications = len(apps)
	if scored > 0 {
		out.AvgHealthScore = classify.Round(sum/float64(scored), 2)
	}
	out.TotalTechnicalDebt = classify.Round(debt, 2)
	if !lastSeen.IsZero() {
		out.LastAnalysisDate = &lastSeen
	}
	return out
}

// RiskDistribution buckets applications by the 4-tier risk ladder. Only
// non-empty buckets are returned, worst tier first.
//
// Columns: score (Total Quality Index). Rows without a score are skipped.
func RiskDistribution(rows []schema.Row) []schema.RiskBucket {
	counts := make(map[schema.RiskLevel]int, len(schema.AllRiskLevels))
	for _, r := range rows {
		if r.IsNull(schema.ColScore) {
			continue
		}
		counts[classify.RiskLevelFromScore(r.Float(schema.ColScore))]++
	}
	buckets := make([]schema.RiskBucket, 0, len(counts))
	for _, level := range schema.AllRiskLevels {
		if n := counts[level]; n > 0 {
			buckets = append(buckets, schema.RiskBucket{
				Label:            level,
				ApplicationCount: n,
				Color:            classify.RiskColor(level),
			})
		}
	}
	return buckets
}

// ApplicationSummaries keeps the most recent row per application, sorts by
// analysis date (newest first) and returns at most limit summaries. A
// non-positive limit means schema.DefaultSummaryLimit.
//
// Columns: application_name, score, technical_debt_total, analysis_date,
// business_unit (optional).
func ApplicationSummaries(rows []schema.Row, limit int) []schema.ApplicationSummary {
	if limit <= 0 {
		limit = schema.DefaultSummaryLimit
	}

	type latest struct {
		row  schema.Row
		date time.Time
	}
	byApp := make(map[string]latest)
	order := make([]string, 0)
	for _, r := range rows {
		name := r.String(schema.ColApplicationName)
		date, _ := r.Time(schema.ColAnalysisDate)
		prev, seen := byApp[name]
		if !seen {
			order = append(order, name)
		}
		if !seen || date.After(prev.date) {
			byApp[name] = latest{row: r, date: date}
		}
	}

	out := make([]schema.ApplicationSummary, 0, len(order))
	for _, name := range order {
		r := byApp[name].row
		score := r.Float(schema.ColScore)
		out = append(out, schema.ApplicationSummary{
			ApplicationName: name,
			HealthScore:     score,
			TechnicalDebt:   r.Float(schema.ColTechnicalDebt),
			AnalysisDate:    r.TimePtr(schema.ColAnalysisDate),
			RiskLevel:       classify.RiskLevelFromScore(score),
			BusinessUnit:    r.NullableString(schema.ColBusinessUnit),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return timeOf(out[i].AnalysisDate).After(timeOf(out[j].AnalysisDate))
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TechnologyHealth averages the Total Quality Index per technology, best first.
//
// Columns: technology, score.
func TechnologyHealth(rows []schema.Row) []schema.TechnologyHealth {
	type acc struct {
		sum float64
		n   int
	}
	byTech := make(map[string]*acc)
	order := make([]string, 0)
	for _, r := range rows {
		if r.IsNull(schema.ColScore) {
			continue
		}
		tech := r.String(schema.ColTechnology)
		a, ok := byTech[tech]
		if !ok {
			a = &acc{}
			byTech[tech] = a
			order = append(order, tech)
		}
		a.sum += r.Float(schema.ColScore)
		a.n++
	}

	out := make([]schema.TechnologyHealth, 0, len(order))
	for _, tech := range order {
		a := byTech[tech]
		out = append(out, schema.TechnologyHealth{
			TechnologyName: tech,
			AvgScore:       classify.Round(a.sum/float64(a.n), 2),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgScore > out[j].AvgScore })
	return out
}

// ListApplications returns one reference per application with its latest
// analysis date, ordered by name.
//
// Columns: application_id, application_name, analysis_date.
func ListApplications(rows []schema.Row) []schema.ApplicationRef {
	type key struct {
		id   int
		name string
	}
	latest := make(map[key]time.Time)
	keys := make([]key, 0)
	for _, r := range rows {
		k := key{id: r.Int(schema.ColApplicationID), name: r.String(schema.ColApplicationName)}
		t, _ := r.Time(schema.ColAnalysisDate)
		prev, seen := latest[k]
		if !seen {
			keys = append(keys, k)
		}
		if !seen || t.After(prev) {
			latest[k] = t
		}
	}
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].name < keys[j].name })

	out := make([]schema.ApplicationRef, 0, len(keys))
	for _, k := range keys {
		ref := schema.ApplicationRef{ID: k.id, Name: k.name}
		if t := latest[k]; !t.IsZero() {
			ref.LatestAnalysis = &t
		}
		out = append(out, ref)
	}
	return out
}

// CriterionAverage averages the non-null scores of one criterion, rounded to
// two decimals. ok is false when no row carries a score for it.
//
// Columns: business_criterion_name, score.
func CriterionAverage(rows []schema.Row, criterion string) (float64, bool) {
	var sum float64
	var n int
	for _, r := range rows {
		if r.String(schema.ColCriterion) != criterion || r.IsNull(schema.ColScore) {
			continue
		}
		sum += r.Float(schema.ColScore)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return classify.Round(sum/float64(n), 2), true
}

func timeOf(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func capList[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
