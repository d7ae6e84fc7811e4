package agg

import (
	"sort"

	"github.com/castinsight/castdash/core/classify"
	"github.com/castinsight/castdash/schema"
)

// mean accumulates non-null values of one series inside a month bucket.
type mean struct {
	sum float64
	n   int
}

func (m *mean) add(r schema.Row, col string) {
	if r.IsNull(col) {
		return
	}
	m.sum += r.Float(col)
	m.n++
}

func (m mean) value() float64 {
	if m.n == 0 {
		return 0
	}
	return classify.Round(m.sum/float64(m.n), 2)
}

// recentPeriods sorts month keys and keeps the most recent n, oldest first.
func recentPeriods(periods []string, n int) []string {
	if n <= 0 {
		n = schema.DefaultTrendMonths
	}
	sort.Strings(periods)
	if len(periods) > n {
		periods = periods[len(periods)-n:]
	}
	return periods
}

// HealthTrend averages the Total Quality Index per calendar month across all
// snapshots and returns the most recent months buckets, oldest first. Months
// whose scores are all null are skipped. ok is false when no month has a
// score, which is the caller's cue to synthesize a series instead.
//
// Columns: analysis_date, score.
func HealthTrend(rows []schema.Row, months int) ([]schema.HealthTrendPoint, bool) {
	buckets := make(map[string]*mean)
	periods := make([]string, 0)
	for _, r := range rows {
		t, ok := r.Time(schema.ColAnalysisDate)
		if !ok {
			continue
		}
		p := schema.MonthBucket(t)
		b, seen := buckets[p]
		if !seen {
			b = &mean{}
			buckets[p] = b
			periods = append(periods, p)
		}
		b.add(r, schema.ColScore)
	}

	scored := periods[:0]
	for _, p := range periods {
		if buckets[p].n > 0 {
			scored = append(scored, p)
		}
	}
	if len(scored) == 0 {
		return nil, false
	}

	periods = recentPeriods(scored, months)
	points := make([]schema.HealthTrendPoint, 0, len(periods))
	for _, p := range periods {
		points = append(points, schema.HealthTrendPoint{Period: p, AvgScore: buckets[p].value()})
	}
	return points, true
}

// qualityBucket holds the four monthly series of the quality trend.
type qualityBucket struct {
	maintainability mean
	reliability     mean
	security        mean
	performance     mean
}

// QualityTrend averages Changeability (maintainability), Robustness
// (reliability), Security and Performance Efficiency per calendar month across
// all snapshots. Only months with a maintainability value are kept; ok is
// false when there is none.
//
// Columns: analysis_date, maintainability_score, reliability_score,
// security_score, performance_score (all nullable).
func QualityTrend(rows []schema.Row, months int) ([]schema.QualityTrendPoint, bool) {
	buckets := make(map[string]*qualityBucket)
	periods := make([]string, 0)
	for _, r := range rows {
		t, ok := r.Time(schema.ColAnalysisDate)
		if !ok {
			continue
		}
		p := schema.MonthBucket(t)
		b, seen := buckets[p]
		if !seen {
			b = &qualityBucket{}
			buckets[p] = b
			periods = append(periods, p)
		}
		b.maintainability.add(r, schema.ColMaintainScore)
		b.reliability.add(r, schema.ColReliabilityScore)
		b.security.add(r, schema.ColSecurityScore)
		b.performance.add(r, schema.ColPerformanceScore)
	}

	kept := periods[:0]
	for _, p := range periods {
		if buckets[p].maintainability.n > 0 {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return nil, false
	}

	periods = recentPeriods(kept, months)
	points := make([]schema.QualityTrendPoint, 0, len(periods))
	for _, p := range periods {
		b := buckets[p]
		points = append(points, schema.QualityTrendPoint{
			Period:               p,
			MaintainabilityScore: b.maintainability.value(),
			ReliabilityScore:     b.reliability.value(),
			SecurityScore:        b.security.value(),
			PerformanceScore:     b.performance.value(),
		})
	}
	return points, true
}

// QualityAnchors collects the current averages of the quality criteria.
//
// Columns: business_criterion_name, score.
func QualityAnchors(rows []schema.Row) schema.QualityAnchors {
	var anchors schema.QualityAnchors
	pick := func(criterion string) *float64 {
		if avg, ok := CriterionAverage(rows, criterion); ok {
			return &avg
		}
		return nil
	}
	anchors.Maintainability = pick(schema.CriterionChangeability)
	anchors.Reliability = pick(schema.CriterionRobustness)
	anchors.Security = pick(schema.CriterionSecurity)
	anchors.Performance = pick(schema.CriterionPerformance)
	return anchors
}
