// Package scoring computes the weighted readiness score from a gap list.
package scoring

import (
	"math"

	"github.com/regtech-labs/finregx/internal/domain"
)

// Weights is the contribution of each category to the overall score.
// The weights sum to 1.0.
var Weights = map[string]float64{
	domain.CategoryCapital:        0.25,
	domain.CategoryGovernance:     0.25,
	domain.CategoryAML:            0.30,
	domain.CategoryDataProtection: 0.20,
}

// severityImpact is the compliance level a gap of the given severity caps
// its category at. HIGH means the category scores zero.
var severityImpact = map[string]float64{
	domain.SeverityHigh:   0.0,
	domain.SeverityMedium: 0.5,
	domain.SeverityLow:    0.7,
}

// defaultImpact applies to gaps carrying an unrecognized severity, such as
// those produced by tenant-defined checks.
const defaultImpact = 0.5

// categoryScores computes the per-category compliance level. Each category
// starts at full compliance and is capped at the impact of its worst gap;
// gaps do not stack.
func categoryScores(gaps []domain.Gap) (map[string]float64, map[string]int) {
	scores := map[string]float64{
		domain.CategoryCapital:        1.0,
		domain.CategoryGovernance:     1.0,
		domain.CategoryAML:            1.0,
		domain.CategoryDataProtection: 1.0,
	}
	counts := map[string]int{
		domain.CategoryCapital:        0,
		domain.CategoryGovernance:     0,
		domain.CategoryAML:            0,
		domain.CategoryDataProtection: 0,
	}

	for _, gap := range gaps {
		if _, ok := scores[gap.Category]; !ok {
			continue
		}
		counts[gap.Category]++

		impact, ok := severityImpact[gap.Severity]
		if !ok {
			impact = defaultImpact
		}
		scores[gap.Category] = math.Min(scores[gap.Category], impact)
	}

	return scores, counts
}

// Score computes the overall readiness report for a gap list. Pure and
// deterministic; an empty gap list yields a perfect score.
func Score(gaps []domain.Gap) domain.ScoreReport {
	scores, counts := categoryScores(gaps)

	var overall float64
	for category, weight := range Weights {
		overall += scores[category] * weight
	}
	percentage := overall * 100

	level, color := readiness(percentage)

	displayScores := make(map[string]float64, len(scores))
	for category, score := range scores {
		displayScores[category] = round2(score * 100)
	}

	var high, medium, low int
	for _, gap := range gaps {
		switch gap.Severity {
		case domain.SeverityHigh:
			high++
		case domain.SeverityMedium:
			medium++
		case domain.SeverityLow:
			low++
		}
	}

	return domain.ScoreReport{
		OverallScore:       round2(percentage),
		ReadinessLevel:     level,
		ReadinessColor:     color,
		CategoryScores:     displayScores,
		CategoryGapCounts:  counts,
		TotalGaps:          len(gaps),
		HighSeverityGaps:   high,
		MediumSeverityGaps: medium,
		LowSeverityGaps:    low,
	}
}

// readiness maps a percentage score to its level and display color.
// Thresholds are inclusive lower bounds.
func readiness(percentage float64) (string, string) {
	switch {
	case percentage >= 90:
		return domain.ReadinessExcellent, "green"
	case percentage >= 75:
		return domain.ReadinessGood, "blue"
	case percentage >= 50:
		return domain.ReadinessModerate, "yellow"
	case percentage >= 25:
		return domain.ReadinessPoor, "orange"
	default:
		return domain.ReadinessCritical, "red"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
