package scoring

import (
	"testing"

	"github.com/regtech-labs/finregx/internal/domain"
)

func TestScoreNoGaps(t *testing.T) {
	report := Score(nil)

	if report.OverallScore != 100.0 {
		t.Errorf("expected 100.0, got %v", report.OverallScore)
	}
	if report.ReadinessLevel != domain.ReadinessExcellent {
		t.Errorf("expected EXCELLENT, got %s", report.ReadinessLevel)
	}
	if report.ReadinessColor != "green" {
		t.Errorf("expected green, got %s", report.ReadinessColor)
	}
	if report.TotalGaps != 0 {
		t.Errorf("expected 0 total gaps, got %d", report.TotalGaps)
	}
	for category, score := range report.CategoryScores {
		if score != 100.0 {
			t.Errorf("category %s: expected 100.0, got %v", category, score)
		}
	}
}

func TestScoreAllCategoriesFailed(t *testing.T) {
	// A startup that mentions nothing: HIGH gaps in Data Protection,
	// Governance and AML, MEDIUM in Capital.
	gaps := []domain.Gap{
		{GapID: domain.GapDataResidency, Category: domain.CategoryDataProtection, Severity: domain.SeverityHigh},
		{GapID: domain.GapComplianceOfficer, Category: domain.CategoryGovernance, Severity: domain.SeverityHigh},
		{GapID: domain.GapCategoryUnknown, Category: domain.CategoryCapital, Severity: domain.SeverityMedium},
		{GapID: domain.GapAMLPolicyMissing, Category: domain.CategoryAML, Severity: domain.SeverityHigh},
		{GapID: domain.GapNoMonitoring, Category: domain.CategoryAML, Severity: domain.SeverityHigh},
	}

	report := Score(gaps)

	// Capital 0.5*0.25 = 0.125, everything else 0: 12.5%.
	if report.OverallScore != 12.5 {
		t.Errorf("expected 12.5, got %v", report.OverallScore)
	}
	if report.ReadinessLevel != domain.ReadinessCritical {
		t.Errorf("expected CRITICAL, got %s", report.ReadinessLevel)
	}
	if report.ReadinessColor != "red" {
		t.Errorf("expected red, got %s", report.ReadinessColor)
	}
	if report.CategoryScores[domain.CategoryCapital] != 50.0 {
		t.Errorf("expected Capital 50.0, got %v", report.CategoryScores[domain.CategoryCapital])
	}
	if report.CategoryScores[domain.CategoryAML] != 0.0 {
		t.Errorf("expected AML 0.0, got %v", report.CategoryScores[domain.CategoryAML])
	}
	if report.CategoryGapCounts[domain.CategoryAML] != 2 {
		t.Errorf("expected 2 AML gaps, got %d", report.CategoryGapCounts[domain.CategoryAML])
	}
	if report.HighSeverityGaps != 4 || report.MediumSeverityGaps != 1 || report.LowSeverityGaps != 0 {
		t.Errorf("severity counts wrong: %d/%d/%d",
			report.HighSeverityGaps, report.MediumSeverityGaps, report.LowSeverityGaps)
	}
}

func TestScoreSingleCapitalShortfall(t *testing.T) {
	// Only Capital fails with a HIGH gap: 100 - 25 = 75, exactly GOOD.
	gaps := []domain.Gap{
		{GapID: domain.GapCapitalShortfall, Category: domain.CategoryCapital, Severity: domain.SeverityHigh},
	}

	report := Score(gaps)

	if report.OverallScore != 75.0 {
		t.Errorf("expected 75.0, got %v", report.OverallScore)
	}
	if report.ReadinessLevel != domain.ReadinessGood {
		t.Errorf("expected GOOD at the 75 boundary, got %s", report.ReadinessLevel)
	}
	if report.CategoryScores[domain.CategoryCapital] != 0.0 {
		t.Errorf("expected Capital 0.0, got %v", report.CategoryScores[domain.CategoryCapital])
	}
}

func TestScoreWorstGapWins(t *testing.T) {
	// Multiple gaps in the same category do not stack: the worst
	// severity caps the category.
	gaps := []domain.Gap{
		{Category: domain.CategoryAML, Severity: domain.SeverityLow},
		{Category: domain.CategoryAML, Severity: domain.SeverityHigh},
		{Category: domain.CategoryAML, Severity: domain.SeverityMedium},
	}

	report := Score(gaps)

	if report.CategoryScores[domain.CategoryAML] != 0.0 {
		t.Errorf("expected AML capped at 0.0, got %v", report.CategoryScores[domain.CategoryAML])
	}
	if report.CategoryGapCounts[domain.CategoryAML] != 3 {
		t.Errorf("expected 3 AML gaps counted, got %d", report.CategoryGapCounts[domain.CategoryAML])
	}
}

func TestScoreUnknownSeverityDefaultsToMedium(t *testing.T) {
	gaps := []domain.Gap{
		{Category: domain.CategoryGovernance, Severity: "WEIRD"},
	}

	report := Score(gaps)

	if report.CategoryScores[domain.CategoryGovernance] != 50.0 {
		t.Errorf("expected Governance 50.0, got %v", report.CategoryScores[domain.CategoryGovernance])
	}
	// Unknown severities count toward the total but no severity bucket.
	if report.TotalGaps != 1 || report.HighSeverityGaps != 0 || report.MediumSeverityGaps != 0 {
		t.Errorf("unexpected counts: total=%d high=%d medium=%d",
			report.TotalGaps, report.HighSeverityGaps, report.MediumSeverityGaps)
	}
}

func TestScoreUnknownCategoryIgnored(t *testing.T) {
	gaps := []domain.Gap{
		{Category: "Cybersecurity", Severity: domain.SeverityHigh},
	}

	report := Score(gaps)

	if report.OverallScore != 100.0 {
		t.Errorf("unknown category must not affect the score, got %v", report.OverallScore)
	}
	if report.TotalGaps != 1 {
		t.Errorf("expected 1 total gap, got %d", report.TotalGaps)
	}
}

func TestReadinessThresholds(t *testing.T) {
	tests := []struct {
		score float64
		level string
		color string
	}{
		{100, domain.ReadinessExcellent, "green"},
		{90, domain.ReadinessExcellent, "green"},
		{89.99, domain.ReadinessGood, "blue"},
		{75, domain.ReadinessGood, "blue"},
		{74.99, domain.ReadinessModerate, "yellow"},
		{50, domain.ReadinessModerate, "yellow"},
		{49.99, domain.ReadinessPoor, "orange"},
		{25, domain.ReadinessPoor, "orange"},
		{24.99, domain.ReadinessCritical, "red"},
		{0, domain.ReadinessCritical, "red"},
	}

	for _, tt := range tests {
		level, color := readiness(tt.score)
		if level != tt.level || color != tt.color {
			t.Errorf("readiness(%v) = %s/%s, want %s/%s", tt.score, level, color, tt.level, tt.color)
		}
	}
}

func TestWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, w := range Weights {
		sum += w
	}
	if sum != 1.0 {
		t.Errorf("weights must sum to 1.0, got %v", sum)
	}
}
