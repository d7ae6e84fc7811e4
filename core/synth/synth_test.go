package synth

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/castinsight/castdash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

func seeded(seed int64) *Random {
	return NewRandomWith(rand.New(rand.NewSource(seed)), fixedNow)
}

func ptr(v float64) *float64 { return &v }

func TestHealthTrendShape(t *testing.T) {
	got := seeded(1).HealthTrend(ptr(3.2), 6)

	assert.True(t, got.Synthetic)
	require.Len(t, got.Points, 6)
	periods := make([]string, 0, 6)
	for _, p := range got.Points {
		periods = append(periods, p.Period)
	}
	assert.Equal(t, []string{"2023-10", "2023-11", "2023-12", "2024-01", "2024-02", "2024-03"}, periods)
}

func TestHealthTrendBounds(t *testing.T) {
	anchors := []*float64{nil, ptr(1.0), ptr(1.05), ptr(2.7), ptr(3.95), ptr(4.0), ptr(math.NaN())}
	for seed := int64(0); seed < 50; seed++ {
		r := seeded(seed)
		for _, anchor := range anchors {
			base := DefaultHealthAnchor
			if anchor != nil && !math.IsNaN(*anchor) {
				base = *anchor
			}
			got := r.HealthTrend(anchor, 6)
			for i, p := range got.Points {
				assert.GreaterOrEqual(t, p.AvgScore, MinScore)
				assert.LessOrEqual(t, p.AvgScore, MaxScore)
				back := len(got.Points) - 1 - i
				low := base - HealthJitter - float64(back)/6*DriftSpan - 0.05
				high := base + HealthJitter + 0.05
				assert.GreaterOrEqual(t, p.AvgScore, math.Max(MinScore, math.Min(MaxScore, low))-1e-9)
				assert.LessOrEqual(t, p.AvgScore, math.Min(MaxScore, high)+1e-9)
				assert.Equal(t, p.AvgScore, math.Round(p.AvgScore*10)/10)
			}
		}
	}
}

func TestHealthTrendRecentPointsSitCloserToAnchor(t *testing.T) {
	const anchor = 2.8
	var firstGap, lastGap float64
	r := seeded(42)
	for range 500 {
		pts := r.HealthTrend(ptr(anchor), 6).Points
		firstGap += math.Abs(pts[0].AvgScore - anchor)
		lastGap += math.Abs(pts[len(pts)-1].AvgScore - anchor)
	}
	assert.Less(t, lastGap, firstGap)
}

func TestHealthTrendDefaultMonths(t *testing.T) {
	assert.Len(t, seeded(3).HealthTrend(nil, 0).Points, schema.DefaultTrendMonths)
	assert.Len(t, seeded(3).HealthTrend(nil, 12).Points, 12)
}

func TestQualityTrend(t *testing.T) {
	anchors := schema.QualityAnchors{Maintainability: ptr(2.0), Security: ptr(3.9)}
	for seed := int64(0); seed < 30; seed++ {
		got := seeded(seed).QualityTrend(anchors, 4)
		assert.True(t, got.Synthetic)
		require.Len(t, got.Points, 4)
		assert.Equal(t, "2024-03", got.Points[3].Period)
		for _, p := range got.Points {
			for _, v := range []float64{p.MaintainabilityScore, p.ReliabilityScore, p.SecurityScore, p.PerformanceScore} {
				assert.GreaterOrEqual(t, v, MinScore)
				assert.LessOrEqual(t, v, MaxScore)
			}
			assert.InDelta(t, 2.0, p.MaintainabilityScore, QualityJitter+DriftSpan+0.05)
			assert.InDelta(t, DefaultReliability, p.ReliabilityScore, QualityJitter+DriftSpan+0.05)
			assert.InDelta(t, 3.9, p.SecurityScore, QualityJitter+DriftSpan+0.05)
			assert.InDelta(t, DefaultPerformance, p.PerformanceScore, QualityJitter+DriftSpan+0.05)
		}
	}
}

func TestPeriodsAcrossYearBoundary(t *testing.T) {
	r := NewRandomWith(rand.New(rand.NewSource(1)), func() time.Time {
		return time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)
	})
	assert.Equal(t, []string{"2023-11", "2023-12", "2024-01"}, r.periods(3))
}

func TestCWEFindings(t *testing.T) {
	got := seeded(1).CWEFindings(schema.ApplicationByName("Billing"))
	require.Len(t, got, 4)

	ids := []string{"CWE-79", "CWE-89", "CWE-125", "CWE-190"}
	totals := []int{15, 23, 5, 8}
	for i, f := range got {
		assert.Equal(t, ids[i], f.CWEID)
		assert.Equal(t, totals[i], f.TotalViolations)
		assert.Len(t, f.Rules, 2)
	}
	assert.Equal(t, schema.RiskHigh, got[0].Severity)
	assert.Equal(t, schema.RiskMedium, got[3].Severity)

	// Each call hands out an independent copy.
	got[0].Rules[0].ViolationCount = 999
	assert.Equal(t, 8, Catalogue()[0].Rules[0].ViolationCount)
}
