// Package synth produces display-continuity series for panels whose history
// is missing from the datamart. Its output is padding, not a forecast, and
// every series it returns is marked Synthetic.
package synth

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/castinsight/castdash/schema"
)

// Provider generates substitute panel data. The dashboard only calls it when
// the real aggregation reports that no usable history exists.
type Provider interface {
	HealthTrend(anchor *float64, months int) schema.HealthTrend
	QualityTrend(anchors schema.QualityAnchors, months int) schema.QualityTrend
	CWEFindings(key schema.ApplicationKey) []schema.CWEFinding
}

// Tuning of the generated series.
const (
	DefaultHealthAnchor = 3.0
	HealthJitter        = 0.15
	QualityJitter       = 0.1
	DriftSpan           = 0.2
	MinScore            = 1.0
	MaxScore            = 4.0
)

// Default quality anchors used when the datamart has no current average.
const (
	DefaultMaintainability = 2.8
	DefaultReliability     = 3.1
	DefaultSecurity        = 2.9
	DefaultPerformance     = 3.0
)

// Random is the default Provider. It draws uniform jitter from its source.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

var _ Provider = &Random{} // Compile-time check

// NewRandom returns a provider seeded from the current time.
func NewRandom() *Random {
	return NewRandomWith(rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

// NewRandomWith returns a provider with an explicit source and clock.
func NewRandomWith(rng *rand.Rand, now func() time.Time) *Random {
	return &Random{rng: rng, now: now}
}

// HealthTrend returns months points ending at the current month, oldest
// first. Older points are pulled down by a linear drift so the series climbs
// toward the anchor. Every point is clamped to the score range.
func (r *Random) HealthTrend(anchor *float64, months int) schema.HealthTrend {
	base := orDefault(anchor, DefaultHealthAnchor)
	periods := r.periods(months)
	points := make([]schema.HealthTrendPoint, 0, len(periods))
	for i, period := range periods {
		back := len(periods) - 1 - i
		points = append(points, schema.HealthTrendPoint{
			Period:   period,
			AvgScore: r.point(base, HealthJitter, back, len(periods)),
		})
	}
	return schema.HealthTrend{Points: points, Synthetic: true}
}

// QualityTrend returns months multi-criterion points shaped like HealthTrend.
func (r *Random) QualityTrend(anchors schema.QualityAnchors, months int) schema.QualityTrend {
	maint := orDefault(anchors.Maintainability, DefaultMaintainability)
	rel := orDefault(anchors.Reliability, DefaultReliability)
	sec := orDefault(anchors.Security, DefaultSecurity)
	perf := orDefault(anchors.Performance, DefaultPerformance)

	periods := r.periods(months)
	points := make([]schema.QualityTrendPoint, 0, len(periods))
	for i, period := range periods {
		back := len(periods) - 1 - i
		points = append(points, schema.QualityTrendPoint{
			Period:               period,
			MaintainabilityScore: r.point(maint, QualityJitter, back, len(periods)),
			ReliabilityScore:     r.point(rel, QualityJitter, back, len(periods)),
			SecurityScore:        r.point(sec, QualityJitter, back, len(periods)),
			PerformanceScore:     r.point(perf, QualityJitter, back, len(periods)),
		})
	}
	return schema.QualityTrend{Points: points, Synthetic: true}
}

// CWEFindings returns the static CWE catalogue. The datamart has no CWE
// tables yet, so the key does not change the result.
func (r *Random) CWEFindings(_ schema.ApplicationKey) []schema.CWEFinding {
	return Catalogue()
}

// point is anchor + uniform jitter - drift, clamped and rounded to 1 decimal.
// back is how many months before the current one the point sits.
func (r *Random) point(anchor, jitter float64, back, months int) float64 {
	r.mu.Lock()
	u := r.rng.Float64()
	r.mu.Unlock()

	drift := float64(back) / float64(months) * DriftSpan
	v := anchor + (u*2-1)*jitter - drift
	v = math.Max(MinScore, math.Min(MaxScore, v))
	return math.Round(v*10) / 10
}

// periods lists "YYYY-MM" months ending at the current month, oldest first.
func (r *Random) periods(months int) []string {
	if months <= 0 {
		months = schema.DefaultTrendMonths
	}
	now := r.now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := make([]string, 0, months)
	for i := months - 1; i >= 0; i-- {
		out = append(out, schema.MonthBucket(first.AddDate(0, -i, 0)))
	}
	return out
}

func orDefault(v *float64, def float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v == 0 {
		return def
	}
	return *v
}
