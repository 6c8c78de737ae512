package extract

import (
	"regexp"

	"github.com/regtech-labs/finregx/internal/domain"
)

// Negative evidence takes precedence over positive evidence: a company that
// writes "compliance officer appointment pending" has not appointed one,
// however many positive-looking phrases surround it.
var officerNegativePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)no.*?compliance\s+officer`),
	regexp.MustCompile(`(?i)without.*?compliance\s+officer`),
	regexp.MustCompile(`(?i)compliance\s+officer.*?(?:pending|under review|not yet|will be)`),
	regexp.MustCompile(`(?i)interim.*?compliance`),
}

var officerPositivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)compliance\s+officer[:\s]+([\w\s.]+)`),
	regexp.MustCompile(`(?i)(?:appointed|designated).*?compliance\s+officer`),
	regexp.MustCompile(`(?i)(?:Mr\.|Mrs\.|Ms\.|Dr\.)\s+[\w\s]+.*?compliance\s+officer`),
}

const noOfficerDetail = "No dedicated compliance officer found"

// ComplianceOfficer extracts compliance-officer evidence. Negative patterns
// are evaluated first and short-circuit: the first negative hit yields a
// confirmed-absent finding. Only then are positive patterns tried, the first
// match providing the evidence span. Returns nil when the text says nothing
// about a compliance officer at all.
func ComplianceOfficer(text string) *domain.OfficerFacts {
	for _, pattern := range officerNegativePatterns {
		if pattern.MatchString(text) {
			return &domain.OfficerFacts{
				HasOfficer: false,
				Details:    noOfficerDetail,
			}
		}
	}

	for _, pattern := range officerPositivePatterns {
		if m := pattern.FindString(text); m != "" {
			return &domain.OfficerFacts{
				HasOfficer: true,
				Details:    m,
			}
		}
	}

	return nil
}
