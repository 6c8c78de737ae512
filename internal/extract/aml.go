package extract

import (
	"regexp"

	"github.com/regtech-labs/finregx/internal/domain"
)

var (
	amlPolicyPattern   = regexp.MustCompile(`(?i)AML.*?(?:policy|policies)`)
	amlApprovedPattern = regexp.MustCompile(`(?i)board[\s-]?approved.*?AML|AML.*?board[\s-]?approved`)
	underReviewPattern = regexp.MustCompile(`(?i)under review|pending|draft`)
	monitoringPattern  = regexp.MustCompile(`(?i)(?:transaction|automated)\s+monitoring|monitoring\s+system`)
)

const amlUnderReviewDetail = "AML policy under review"

// AMLPolicy extracts the maturity of the AML/CFT programme. Board approval
// is recognized only when an approval phrase co-occurs with "AML", and any
// under-review/pending/draft language anywhere forces approval back to false
// regardless. Transaction monitoring is detected independently of policy
// presence. Returns nil when the text mentions neither an AML policy nor a
// monitoring system.
func AMLPolicy(text string) *domain.AMLFacts {
	facts := domain.AMLFacts{}

	if amlPolicyPattern.MatchString(text) {
		facts.HasPolicy = true

		if amlApprovedPattern.MatchString(text) {
			facts.IsApproved = true
		}
		if underReviewPattern.MatchString(text) {
			facts.IsApproved = false
			facts.Details = amlUnderReviewDetail
		}
	}

	if monitoringPattern.MatchString(text) {
		facts.HasMonitoring = true
	}

	if !facts.HasPolicy && !facts.HasMonitoring {
		return nil
	}
	return &facts
}
