// Package gaps evaluates an extracted fact set against the regulatory
// knowledge base and produces the list of compliance gaps.
package gaps

import (
	"fmt"
	"strings"

	"github.com/regtech-labs/finregx/internal/domain"
	"github.com/regtech-labs/finregx/internal/kb"
)

// ruleFunc is one self-contained gap-detection rule. Each rule is a total
// function over well-formed fact sets and returns zero or more gaps.
type ruleFunc func(facts domain.FactSet) []domain.Gap

// builtinRules is the fixed, ordered rule sequence. Downstream scoring does
// not depend on the order, but test fixtures and user-facing display do.
var builtinRules = []ruleFunc{
	dataResidency,
	complianceOfficer,
	capitalRequirement,
	amlCompliance,
}

// Analyze runs the fixed rule sequence over the fact set. Pure and
// deterministic: the same facts always yield the same gap list.
func Analyze(facts domain.FactSet) []domain.Gap {
	var all []domain.Gap
	for _, rule := range builtinRules {
		all = append(all, rule(facts)...)
	}
	return all
}

// dataResidency checks Article 2.1.1. Any non-Qatar location mention is a
// violation even when Qatar is also mentioned: partial compliance is not
// compliance.
func dataResidency(facts domain.FactSet) []domain.Gap {
	article, _ := kb.LookupArticle("2.1.1")

	if len(facts.DataLocations) == 0 {
		return []domain.Gap{{
			GapID:          domain.GapDataResidency,
			ArticleID:      article.ID,
			ArticleName:    article.Title,
			Category:       domain.CategoryDataProtection,
			Severity:       domain.SeverityHigh,
			Status:         domain.StatusMissingInfo,
			Description:    "No data storage location information found",
			Requirement:    article.Requirement,
			Recommendation: "Specify data storage locations and ensure compliance with Qatar residency requirements",
		}}
	}

	var nonQatar []string
	for _, loc := range facts.DataLocations {
		if !strings.Contains(strings.ToLower(loc), "qatar") {
			nonQatar = append(nonQatar, loc)
		}
	}

	if len(nonQatar) == 0 {
		return nil
	}

	return []domain.Gap{{
		GapID:          domain.GapDataResidency,
		ArticleID:      article.ID,
		ArticleName:    article.Title,
		Category:       domain.CategoryDataProtection,
		Severity:       domain.SeverityHigh,
		Status:         domain.StatusViolation,
		Description:    fmt.Sprintf("Gap: High Risk. Data storage is outside the State of Qatar. Found locations: %s", strings.Join(nonQatar, ", ")),
		Requirement:    article.Requirement,
		Recommendation: "Migrate all customer PII and transactional data to servers physically located within Qatar",
		ExpertID:       kb.ExpertDataResidency,
	}}
}

// complianceOfficer checks Article 2.2.1.
func complianceOfficer(facts domain.FactSet) []domain.Gap {
	if facts.ComplianceOfficer != nil && facts.ComplianceOfficer.HasOfficer {
		return nil
	}

	article, _ := kb.LookupArticle("2.2.1")
	return []domain.Gap{{
		GapID:          domain.GapComplianceOfficer,
		ArticleID:      article.ID,
		ArticleName:    article.Title,
		Category:       domain.CategoryGovernance,
		Severity:       domain.SeverityHigh,
		Status:         domain.StatusMissingRole,
		Description:    "Gap: Missing Mandatory Document/Role. Requires appointment of dedicated compliance officer",
		Requirement:    article.Requirement,
		Recommendation: "Appoint a designated, independent Compliance Officer and submit CV and credentials to QCB for approval",
	}}
}

// capitalRequirement checks the minimum-capital licensing pathway for the
// detected business category.
func capitalRequirement(facts domain.FactSet) []domain.Gap {
	if facts.BusinessCategory == "" {
		return []domain.Gap{{
			GapID:          domain.GapCategoryUnknown,
			ArticleID:      "N/A",
			ArticleName:    "Capital Requirements",
			Category:       domain.CategoryCapital,
			Severity:       domain.SeverityMedium,
			Status:         domain.StatusMissingInfo,
			Description:    "Unable to determine business category for capital requirement assessment",
			Requirement:    "Business category must be identified",
			Recommendation: "Clearly specify business category (Category 1, 2, or 3)",
		}}
	}

	requirement, _ := kb.LookupCapitalRequirement(facts.BusinessCategory)

	var paidUp *float64
	if facts.Capital != nil {
		paidUp = facts.Capital.PaidUp
	}

	if paidUp == nil {
		return []domain.Gap{{
			GapID:          domain.GapCapitalMissing,
			ArticleID:      "Licensing Pathways",
			ArticleName:    fmt.Sprintf("%s Capital Requirement", facts.BusinessCategory),
			Category:       domain.CategoryCapital,
			Severity:       domain.SeverityHigh,
			Status:         domain.StatusMissingInfo,
			Description:    "No paid-up capital information found",
			Requirement:    fmt.Sprintf("%s requires minimum capital of QAR %s", facts.BusinessCategory, formatQAR(requirement.MinimumCapital)),
			Recommendation: "Provide capital structure documentation",
		}}
	}

	if *paidUp >= requirement.MinimumCapital {
		return nil
	}

	shortfall := requirement.MinimumCapital - *paidUp
	required := requirement.MinimumCapital
	return []domain.Gap{{
		GapID:           domain.GapCapitalShortfall,
		ArticleID:       "Licensing Pathways",
		ArticleName:     fmt.Sprintf("%s Capital Requirement", facts.BusinessCategory),
		Category:        domain.CategoryCapital,
		Severity:        domain.SeverityHigh,
		Status:          domain.StatusDeficiency,
		Description:     fmt.Sprintf("Gap: Financial Deficiency. Capital is QAR %s short of the required minimum", formatQAR(shortfall)),
		Requirement:     fmt.Sprintf("%s requires minimum capital of QAR %s", facts.BusinessCategory, formatQAR(required)),
		Recommendation:  fmt.Sprintf("Increase paid-up capital from QAR %s to QAR %s", formatQAR(*paidUp), formatQAR(required)),
		CurrentCapital:  paidUp,
		RequiredCapital: &required,
		Shortfall:       &shortfall,
	}}
}

// amlCompliance checks Articles 1.1.4 and 1.2.1. The policy-approval gaps
// are mutually exclusive; the monitoring gap is independent, so a document
// can carry both an approval gap and a monitoring gap simultaneously.
func amlCompliance(facts domain.FactSet) []domain.Gap {
	var out []domain.Gap
	aml := facts.AMLPolicy

	policyArticle, _ := kb.LookupArticle("1.1.4")
	switch {
	case aml == nil || !aml.HasPolicy:
		out = append(out, domain.Gap{
			GapID:          domain.GapAMLPolicyMissing,
			ArticleID:      policyArticle.ID,
			ArticleName:    policyArticle.Title,
			Category:       domain.CategoryAML,
			Severity:       domain.SeverityHigh,
			Status:         domain.StatusMissingDocument,
			Description:    "No AML/CFT policy found",
			Requirement:    policyArticle.Requirement,
			Recommendation: "Develop and submit Board-approved AML/CFT Policy",
			ExpertID:       kb.ExpertAML,
			ProgramID:      kb.ProgramAMLWorkshop,
		})
	case !aml.IsApproved:
		out = append(out, domain.Gap{
			GapID:          domain.GapAMLNotApproved,
			ArticleID:      policyArticle.ID,
			ArticleName:    policyArticle.Title,
			Category:       domain.CategoryAML,
			Severity:       domain.SeverityHigh,
			Status:         domain.StatusIncomplete,
			Description:    "AML/CFT policy exists but not Board-approved or under review",
			Requirement:    policyArticle.Requirement,
			Recommendation: "Obtain Board approval for AML/CFT Policy",
			ExpertID:       kb.ExpertAML,
			ProgramID:      kb.ProgramAMLWorkshop,
		})
	}

	if aml == nil || !aml.HasMonitoring {
		monitoringArticle, _ := kb.LookupArticle("1.2.1")
		out = append(out, domain.Gap{
			GapID:          domain.GapNoMonitoring,
			ArticleID:      monitoringArticle.ID,
			ArticleName:    monitoringArticle.Title,
			Category:       domain.CategoryAML,
			Severity:       domain.SeverityHigh,
			Status:         domain.StatusMissingSystem,
			Description:    "No automated transaction monitoring system mentioned",
			Requirement:    monitoringArticle.Requirement,
			Recommendation: "Implement automated transaction monitoring system for suspicious activity detection",
			ExpertID:       kb.ExpertAML,
			ProgramID:      kb.ProgramAMLWorkshop,
		})
	}

	return out
}

// formatQAR renders a monetary value with thousands separators and no
// decimals, matching the knowledge-base article phrasing.
func formatQAR(v float64) string {
	s := fmt.Sprintf("%.0f", v)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
