// Package classify maps raw CAST scores and counts onto the grades, risk tiers
// and bands shown by the dashboard. Every function is pure and total: NaN and
// infinite inputs are treated as 0.
package classify

import (
	"math"

	"github.com/castinsight/castdash/schema"
)

// finite returns 0 for NaN and infinities.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// GradeFromScore maps a 1-4 score onto the A-F letter ladder.
func GradeFromScore(score float64) schema.Grade {
	s := finite(score)
	switch {
	case s >= 3.5:
		return schema.GradeA
	case s >= 3.0:
		return schema.GradeB
	case s >= 2.5:
		return schema.GradeC
	case s >= 2.0:
		return schema.GradeD
	default:
		return schema.GradeF
	}
}

// QualityGrade maps a 1-4 score onto the Good/Fair/Poor ladder used by the
// scorecards and the security panel.
func QualityGrade(score float64) schema.QualityGrade {
	s := finite(score)
	switch {
	case s >= 3:
		return schema.GradeGood
	case s >= 2:
		return schema.GradeFair
	default:
		return schema.GradePoor
	}
}

// RiskLevelFromScore is the 4-tier portfolio risk ladder.
func RiskLevelFromScore(score float64) schema.RiskLevel {
	s := finite(score)
	switch {
	case s < 2.0:
		return schema.RiskCritical
	case s < 2.5:
		return schema.RiskHigh
	case s < 3.0:
		return schema.RiskMedium
	default:
		return schema.RiskLow
	}
}

// SecurityRisk is the 3-tier ladder of the security panel. It never yields Critical.
func SecurityRisk(score float64) schema.RiskLevel {
	s := finite(score)
	switch {
	case s < 2:
		return schema.RiskHigh
	case s < 3:
		return schema.RiskMedium
	default:
		return schema.RiskLow
	}
}

// PerformanceRating rates a performance score.
func PerformanceRating(score float64) schema.QualityGrade {
	s := finite(score)
	switch {
	case s < 2:
		return schema.GradePoor
	case s < 3:
		return schema.GradeFair
	default:
		return schema.GradeGood
	}
}

// ComplianceBand places a compliance percentage (0-100) in its band and
// returns the band color.
func ComplianceBand(pct float64) (schema.Compliance, string) {
	p := finite(pct)
	switch {
	case p >= 95:
		return schema.ComplianceExcellent, schema.ColorExcellent
	case p >= 90:
		return schema.ComplianceGood, schema.ColorGood
	default:
		return schema.ComplianceNeedsImprovement, schema.ColorNeedsImprovement
	}
}

// ComplexityScore weights object counts by complexity: 3 high + 2 medium + 1 low.
func ComplexityScore(high, medium, low int) int {
	return 3*high + 2*medium + low
}

// ComplexityRating bands a weighted complexity score.
func ComplexityRating(weighted int) schema.RiskLevel {
	switch {
	case weighted > 100:
		return schema.RiskHigh
	case weighted > 30:
		return schema.RiskMedium
	default:
		return schema.RiskLow
	}
}

// OverallRisk combines weighted complexity and critical violation count.
func OverallRisk(weighted, critical int) schema.RiskLevel {
	switch {
	case weighted > 100 || critical > 50:
		return schema.RiskHigh
	case weighted > 30 || critical > 10:
		return schema.RiskMedium
	default:
		return schema.RiskLow
	}
}

// DebtImpact bands a technical debt per line ratio.
func DebtImpact(ratio float64) schema.RiskLevel {
	r := finite(ratio)
	switch {
	case r > 0.10:
		return schema.RiskHigh
	case r > 0.05:
		return schema.RiskMedium
	default:
		return schema.RiskLow
	}
}

// RiskColor returns the display color of a risk tier.
func RiskColor(level schema.RiskLevel) string {
	switch level {
	case schema.RiskCritical:
		return schema.ColorCritical
	case schema.RiskHigh:
		return schema.ColorHigh
	case schema.RiskMedium:
		return schema.ColorMedium
	case schema.RiskLow:
		return schema.ColorLow
	default:
		return schema.ColorUnknown
	}
}

// Round rounds v half away from zero to the given number of decimals.
// NaN and infinities round to 0.
func Round(v float64, decimals int) float64 {
	v = finite(v)
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
